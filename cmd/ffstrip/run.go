package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ffstrip/internal/catalog"
	"ffstrip/internal/language"
	"ffstrip/internal/pipeline"
	"ffstrip/internal/selection"
)

type stripRequest struct {
	input  string
	output string
	strip  []string
	keep   []string
	info   bool
	dryRun bool
}

func runStrip(cmd *cobra.Command, ctx *commandContext, req stripRequest) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := ctx.newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	inspector, closeInspector := pipeline.NewInspector(cfg, logger)
	defer closeInspector()

	runner := pipeline.New(cfg, logger, inspector, pipeline.NewRemuxer(cfg))
	outcome, err := runner.Run(cmd.Context(), pipeline.Request{
		Input:  req.input,
		Output: req.output,
		Strip:  req.strip,
		Keep:   req.keep,
		Info:   req.info,
		DryRun: req.dryRun,
	})
	if err != nil {
		switch {
		case errors.Is(err, selection.ErrConflictingMode):
			return errors.New("--strip and --keep cannot be combined")
		case errors.Is(err, pipeline.ErrMissingOutput):
			return errors.New("--strip/--keep require an output path (-o)")
		}
		return err
	}

	out := cmd.OutOrStdout()

	if req.info {
		fmt.Fprintln(out, renderTrackTable(outcome.Catalog))
		return nil
	}
	if len(req.strip) == 0 && len(req.keep) == 0 {
		fmt.Fprintf(out, "%s: %d tracks, nothing selected for removal\n", req.input, outcome.Catalog.Len())
		return nil
	}
	if req.dryRun {
		fmt.Fprintln(out, outcome.Command)
		return nil
	}

	fmt.Fprintf(out, "Wrote %s (%d of %d tracks removed)\n",
		req.output, len(outcome.Plan.Exclude), outcome.Catalog.Len())
	return nil
}

func renderTrackTable(cat *catalog.Catalog) string {
	headers := []string{"#", "Type", "Codec", "Language", "Title", "Forced", "Size"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight}

	rows := make([][]string, 0, cat.Len())
	for _, track := range cat.Tracks() {
		size := ""
		if track.ByteCount > 0 {
			size = humanize.IBytes(track.ByteCount)
		}
		forced := ""
		if track.Forced {
			forced = yesNo(track.Forced)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", track.Index),
			string(track.Kind),
			track.Codec,
			language.DisplayName(track.Language),
			track.Title,
			forced,
			size,
		})
	}
	return renderTable(headers, rows, aligns)
}
