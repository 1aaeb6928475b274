package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"nbexport/internal/exporter"
	"nbexport/internal/notebook"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the notebooks a batch export would convert",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			// Discovery only; the converter is never invoked.
			exp := exporter.NewFromConfig(cfg, nil, nil, nil)
			notebooks, err := exp.Discover()
			if err != nil {
				return fmt.Errorf("discover notebooks: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(notebooks) == 0 {
				fmt.Fprintf(out, "No notebooks found in %s\n", cfg.Paths.NotebooksDir)
				return nil
			}

			rows := make([][]string, 0, len(notebooks))
			for i, nb := range notebooks {
				report := filepath.Join(filepath.Dir(nb.Rel), notebook.ReportName(nb.Path))
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					filepath.ToSlash(nb.Rel),
					notebook.Title(nb.Path),
					filepath.ToSlash(report),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Notebook", "Title", "Report"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d notebook(s) in %s\n", len(notebooks), cfg.Paths.NotebooksDir)
			return nil
		},
	}
}
