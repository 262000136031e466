package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the grid and its blocked cells.",
		Long: `stats counts the events per cell and reports the mean and standard
deviation of the counts, the blocking cutoff, and the number of blocked cells,
hotspot regions and invalid nodes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.snapshot()
			if err != nil {
				return err
			}
			sum := snap.Summary()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			fmt.Fprintf(out, "grid:          %d × %d cells of %g\n", sum.Cols, sum.Rows, sum.CellSize)
			fmt.Fprintf(out, "points:        %d (%d outside)\n", sum.Points, sum.Outside)
			fmt.Fprintf(out, "mean per cell: %.4f\n", sum.Mean)
			fmt.Fprintf(out, "std deviation: %.4f\n", sum.StdDev)
			fmt.Fprintf(out, "max per cell:  %d\n", sum.Max)
			fmt.Fprintf(out, "threshold:     %.2f (cutoff %.2f)\n", sum.Threshold, sum.Cutoff)
			fmt.Fprintf(out, "blocked cells: %d in %d regions\n", sum.BlockedCells, sum.Regions)
			fmt.Fprintf(out, "invalid nodes: %d\n", sum.InvalidNodes)
			return nil
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}
