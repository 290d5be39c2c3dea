package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ffstrip/internal/catalog"
	"ffstrip/internal/config"
	"ffstrip/internal/logging"
	"ffstrip/internal/media/remux"
	"ffstrip/internal/selection"
)

// ErrMissingOutput is returned when strip or keep tokens are supplied
// without an output path. Nothing is written.
var ErrMissingOutput = errors.New("missing output path")

// Inspector obtains track descriptors for an input file.
type Inspector interface {
	Inspect(ctx context.Context, path string) ([]catalog.Track, error)
}

// Remuxer performs a stream-copy remux according to a plan.
type Remuxer interface {
	Remux(ctx context.Context, plan remux.Plan) error
}

// Request describes one ffstrip invocation.
type Request struct {
	Input  string
	Output string
	Strip  []string
	Keep   []string
	Info   bool
	DryRun bool
}

// Outcome reports what a run did, for rendering by the CLI.
type Outcome struct {
	RunID     string
	Catalog   *catalog.Catalog
	Selection selection.Result
	Plan      remux.Plan
	Command   string // rendered ffmpeg command line
	Remuxed   bool
}

// Runner executes requests against its collaborators.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	inspector Inspector
	remuxer   Remuxer
}

// New constructs a runner. A nil logger falls back to the no-op logger.
func New(cfg *config.Config, logger *slog.Logger, inspector Inspector, remuxer Remuxer) *Runner {
	return &Runner{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
		inspector: inspector,
		remuxer:   remuxer,
	}
}

// Run performs one selection-and-remux pass. Token-level problems are
// logged and skipped; catalog and mode problems abort before anything is
// written.
func (r *Runner) Run(ctx context.Context, req Request) (*Outcome, error) {
	outcome := &Outcome{RunID: uuid.NewString()}
	logger := r.logger.With(logging.String("run_id", outcome.RunID))

	hasTokens := len(req.Strip) > 0 || len(req.Keep) > 0
	if len(req.Strip) > 0 && len(req.Keep) > 0 {
		return nil, selection.ErrConflictingMode
	}
	if hasTokens && !req.Info && req.Output == "" {
		return nil, ErrMissingOutput
	}

	tracks, err := r.inspector.Inspect(ctx, req.Input)
	if err != nil {
		return nil, fmt.Errorf("inspect %q: %w", req.Input, err)
	}
	cat, err := catalog.Load(tracks)
	if err != nil {
		return nil, err
	}
	outcome.Catalog = cat
	logger.Debug("catalog loaded",
		logging.String("input", req.Input),
		logging.Int("tracks", cat.Len()))

	if req.Info || !hasTokens {
		// Listing runs stop at the catalog; nothing is ever written.
		return outcome, nil
	}

	mode := selection.ModeStrip
	tokens := req.Strip
	if len(req.Keep) > 0 {
		mode = selection.ModeKeep
		tokens = req.Keep
	}

	outcome.Selection = selection.Resolve(tokens, mode, cat)
	for _, skipped := range outcome.Selection.Skipped {
		logger.Warn("selection token skipped",
			logging.String("token", skipped.Raw),
			logging.Error(skipped.Err))
	}
	if len(outcome.Selection.Unknown) > 0 {
		// Passed through to ffmpeg unchanged; it decides what to do with
		// indices the source does not have.
		logger.Warn("literal indices not present in source",
			logging.Any("indices", outcome.Selection.Unknown))
	}
	logger.Info("selection resolved",
		logging.String("mode", mode.String()),
		logging.Int("excluded", len(outcome.Selection.Exclude)))

	outcome.Plan = remux.Plan{
		Input:   req.Input,
		Output:  req.Output,
		Exclude: outcome.Selection.Exclude,
	}
	outcome.Command = remux.CommandLine(remux.BuildArgs(r.cfg.FFmpegBinary(), outcome.Plan))

	if req.DryRun {
		logger.Info("dry run, remux not invoked")
		return outcome, nil
	}

	if err := r.remuxer.Remux(ctx, outcome.Plan); err != nil {
		return nil, err
	}
	outcome.Remuxed = true
	logger.Info("remux complete",
		logging.String("output", req.Output),
		logging.Int("excluded", len(outcome.Plan.Exclude)))
	return outcome, nil
}
