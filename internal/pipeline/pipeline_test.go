package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ffstrip/internal/catalog"
	"ffstrip/internal/config"
	"ffstrip/internal/logging"
	"ffstrip/internal/media/remux"
	"ffstrip/internal/selection"
)

type fakeInspector struct {
	tracks []catalog.Track
	err    error
	calls  int
}

func (f *fakeInspector) Inspect(context.Context, string) ([]catalog.Track, error) {
	f.calls++
	return f.tracks, f.err
}

type fakeRemuxer struct {
	plans []remux.Plan
	err   error
}

func (f *fakeRemuxer) Remux(_ context.Context, plan remux.Plan) error {
	f.plans = append(f.plans, plan)
	return f.err
}

func sampleTracks() []catalog.Track {
	return []catalog.Track{
		{Index: 0, Kind: catalog.KindVideo},
		{Index: 1, Kind: catalog.KindAudio, Language: "eng"},
		{Index: 2, Kind: catalog.KindAudio, Language: "jpn"},
		{Index: 3, Kind: catalog.KindSubtitle, Language: "eng", ByteCount: 100},
		{Index: 4, Kind: catalog.KindSubtitle, Language: "eng", ByteCount: 50},
	}
}

func newTestRunner(inspector Inspector, remuxer Remuxer) *Runner {
	cfg := config.Default()
	return New(&cfg, logging.NewNop(), inspector, remuxer)
}

func TestRunStripRemuxes(t *testing.T) {
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(&fakeInspector{tracks: sampleTracks()}, remuxer)

	outcome, err := runner.Run(context.Background(), Request{
		Input:  "in.mkv",
		Output: "out.mkv",
		Strip:  []string{"s:smaller"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !outcome.Remuxed {
		t.Fatalf("expected remux to run")
	}
	if len(remuxer.plans) != 1 {
		t.Fatalf("expected 1 remux invocation, got %d", len(remuxer.plans))
	}
	plan := remuxer.plans[0]
	if len(plan.Exclude) != 1 || plan.Exclude[0] != 4 {
		t.Fatalf("unexpected exclusions: %v", plan.Exclude)
	}
	if plan.Input != "in.mkv" || plan.Output != "out.mkv" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if outcome.RunID == "" {
		t.Fatalf("missing run id")
	}
}

func TestRunKeepMode(t *testing.T) {
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(&fakeInspector{tracks: sampleTracks()}, remuxer)

	outcome, err := runner.Run(context.Background(), Request{
		Input:  "in.mkv",
		Output: "out.mkv",
		Keep:   []string{"a:jpn"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []int{1, 3, 4}
	got := outcome.Plan.Exclude
	if len(got) != len(want) {
		t.Fatalf("exclusions %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("exclusions %v, want %v", got, want)
		}
	}
}

func TestRunConflictingModes(t *testing.T) {
	inspector := &fakeInspector{tracks: sampleTracks()}
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(inspector, remuxer)

	_, err := runner.Run(context.Background(), Request{
		Input:  "in.mkv",
		Output: "out.mkv",
		Strip:  []string{"1"},
		Keep:   []string{"2"},
	})
	if !errors.Is(err, selection.ErrConflictingMode) {
		t.Fatalf("Run = %v, want ErrConflictingMode", err)
	}
	if inspector.calls != 0 {
		t.Fatalf("mode conflict must abort before inspection")
	}
	if len(remuxer.plans) != 0 {
		t.Fatalf("mode conflict must not remux")
	}
}

func TestRunMissingOutput(t *testing.T) {
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(&fakeInspector{tracks: sampleTracks()}, remuxer)

	_, err := runner.Run(context.Background(), Request{
		Input: "in.mkv",
		Strip: []string{"1"},
	})
	if !errors.Is(err, ErrMissingOutput) {
		t.Fatalf("Run = %v, want ErrMissingOutput", err)
	}
	if len(remuxer.plans) != 0 {
		t.Fatalf("missing output must not remux")
	}
}

func TestRunEmptyCatalogAbortsBeforeRemux(t *testing.T) {
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(&fakeInspector{tracks: nil}, remuxer)

	_, err := runner.Run(context.Background(), Request{
		Input:  "in.mkv",
		Output: "out.mkv",
		Strip:  []string{"1"},
	})
	if !errors.Is(err, catalog.ErrEmptyCatalog) {
		t.Fatalf("Run = %v, want ErrEmptyCatalog", err)
	}
	if len(remuxer.plans) != 0 {
		t.Fatalf("empty catalog must not remux")
	}
}

func TestRunInspectorFailure(t *testing.T) {
	runner := newTestRunner(&fakeInspector{err: errors.New("boom")}, &fakeRemuxer{})
	_, err := runner.Run(context.Background(), Request{Input: "in.mkv"})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Run = %v, want inspection failure", err)
	}
}

func TestRunInfoOnlySkipsRemux(t *testing.T) {
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(&fakeInspector{tracks: sampleTracks()}, remuxer)

	outcome, err := runner.Run(context.Background(), Request{Input: "in.mkv", Info: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Catalog == nil || outcome.Catalog.Len() != 5 {
		t.Fatalf("catalog not loaded for info run")
	}
	if outcome.Remuxed || len(remuxer.plans) != 0 {
		t.Fatalf("info run must not remux")
	}
}

func TestRunInfoWithTokensSkipsRemux(t *testing.T) {
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(&fakeInspector{tracks: sampleTracks()}, remuxer)

	outcome, err := runner.Run(context.Background(), Request{
		Input:  "in.mkv",
		Output: "out.mkv",
		Strip:  []string{"s:smaller"},
		Info:   true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Remuxed || len(remuxer.plans) != 0 {
		t.Fatalf("info run must not remux even with tokens")
	}

	// Without an output path the listing still succeeds.
	if _, err := runner.Run(context.Background(), Request{
		Input: "in.mkv",
		Strip: []string{"s:smaller"},
		Info:  true,
	}); err != nil {
		t.Fatalf("Run without output: %v", err)
	}
	if len(remuxer.plans) != 0 {
		t.Fatalf("info run must not remux")
	}
}

func TestRunDryRunRendersCommand(t *testing.T) {
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(&fakeInspector{tracks: sampleTracks()}, remuxer)

	outcome, err := runner.Run(context.Background(), Request{
		Input:  "in.mkv",
		Output: "out.mkv",
		Strip:  []string{"3"},
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcome.Remuxed || len(remuxer.plans) != 0 {
		t.Fatalf("dry run must not remux")
	}
	if !strings.Contains(outcome.Command, "-map -0:3") {
		t.Fatalf("command line missing exclusion: %q", outcome.Command)
	}
}

func TestRunSkipsBadTokens(t *testing.T) {
	remuxer := &fakeRemuxer{}
	runner := newTestRunner(&fakeInspector{tracks: sampleTracks()}, remuxer)

	outcome, err := runner.Run(context.Background(), Request{
		Input:  "in.mkv",
		Output: "out.mkv",
		Strip:  []string{"x", "s:smaller"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcome.Selection.Skipped) != 1 {
		t.Fatalf("expected 1 skipped token: %+v", outcome.Selection.Skipped)
	}
	if len(outcome.Plan.Exclude) != 1 || outcome.Plan.Exclude[0] != 4 {
		t.Fatalf("remaining tokens must resolve normally: %v", outcome.Plan.Exclude)
	}
}

func TestRunPropagatesRemuxFailure(t *testing.T) {
	remuxer := &fakeRemuxer{err: errors.New("muxing failed")}
	runner := newTestRunner(&fakeInspector{tracks: sampleTracks()}, remuxer)

	_, err := runner.Run(context.Background(), Request{
		Input:  "in.mkv",
		Output: "out.mkv",
		Strip:  []string{"1"},
	})
	if err == nil || !strings.Contains(err.Error(), "muxing failed") {
		t.Fatalf("Run = %v, want remux failure", err)
	}
}
