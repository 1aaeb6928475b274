package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var projectRootFlag string
	var logLevelFlag string

	ctx := newCommandContext(&configFlag, &projectRootFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "nbexport [notebook]",
		Short: "Export Jupyter notebooks to HTML reports",
		Long: "Without arguments, every notebook under the notebooks directory is exported\n" +
			"into the matching location under the reports directory. With a notebook\n" +
			"path, only that notebook is exported.",
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
			if len(args) == 1 {
				return runExportSingle(cmd, ctx, args[0])
			}
			return runExportAll(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&projectRootFlag, "project-root", "", "Project root containing the notebooks and reports directories")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
