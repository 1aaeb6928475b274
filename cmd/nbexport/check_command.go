package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nbexport/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the converter and project directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cmd.Context(), cfg)
			for _, r := range results {
				fmt.Fprintln(out, renderStatusLine(r.Name, checkKind(r), r.Detail, colorize))
			}

			if preflight.Failed(results) {
				return exitError{code: 1}
			}
			return nil
		},
	}
}
