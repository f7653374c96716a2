package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/next-trace/scg-exception/report"
)

func newScanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scan TEXT...",
		Short: "Print the correlation id found in each argument",
		Long: `scan prints one line per argument: the first UUID v4 found in it,
or an empty line when there is none.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			found := 0

			for _, text := range args {
				id := report.FindCorrelation(text)
				if id != "" {
					found++
				}

				if _, err := fmt.Fprintln(a.out, id); err != nil {
					return err
				}
			}

			a.logger.Debug().Int("texts", len(args)).Int("found", found).Msg("scan complete")

			return nil
		},
	}
}
