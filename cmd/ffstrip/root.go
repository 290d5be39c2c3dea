package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	var (
		outputFlag string
		stripFlag  []string
		keepFlag   []string
		infoFlag   bool
		dryRunFlag bool
	)

	rootCmd := &cobra.Command{
		Use:           "ffstrip <input>",
		Short:         "Strip unwanted tracks from media files",
		Long:          "ffstrip inspects a media file with ffprobe, resolves track selection tokens\ninto an exclusion set, and stream-copies the remaining tracks with ffmpeg.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runStrip(cmd, ctx, stripRequest{
				input:  args[0],
				output: outputFlag,
				strip:  stripFlag,
				keep:   keepFlag,
				info:   infoFlag,
				dryRun: dryRunFlag,
			})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Destination for the remuxed file")
	rootCmd.Flags().StringArrayVarP(&stripFlag, "strip", "s", nil, "Track to remove (index, a:PATTERN, or s:PATTERN); repeatable")
	rootCmd.Flags().StringArrayVarP(&keepFlag, "keep", "k", nil, "Track to keep (index, a:PATTERN, or s:PATTERN); repeatable")
	rootCmd.Flags().BoolVar(&infoFlag, "info", false, "List the input's tracks and exit")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Print the ffmpeg command without running it")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(&configFlag))

	return rootCmd
}
