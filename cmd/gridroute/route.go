package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridroute/render"
)

func newRouteCmd(a *app) *cobra.Command {
	var start, end, png string
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Find a least-cost route between two points.",
		Long: `route searches between --start and --end, each given as "x,y". A value
within the tick count of its axis selects a tick by index (0,0 is the bottom
left node; negative values count back from the last one); anything else is a
coordinate and snaps down to the nearest tick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := parsePair(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			to, err := parsePair(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			snap, err := a.snapshot()
			if err != nil {
				return err
			}
			opts, err := a.cfg.SearchOptions()
			if err != nil {
				return err
			}

			rt, err := snap.Route(cmd.Context(), from, to, opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "search time: %.3f s\n", rt.Elapsed.Seconds())
			if !rt.Found {
				fmt.Fprintf(out, "no path from %v to %v (%s)\n", rt.Start, rt.End, rt.Outcome)
				return nil
			}
			fmt.Fprintf(out, "path %v -> %v: %d steps, cost %.1f\n", rt.Start, rt.End, len(rt.Path)-1, rt.Cost)
			for i, n := range rt.Path {
				fmt.Fprintf(out, "  %v  %.6f %.6f\n", n, rt.Points[i].X, rt.Points[i].Y)
			}

			if png != "" {
				if err := render.BlockGraph(snap.Grid(), snap.Blocked(), rt.Points, png); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote %s\n", png)
			}
			return nil
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().StringVar(&start, "start", "", `start point "x,y"`)
	cmd.Flags().StringVar(&end, "end", "", `end point "x,y"`)
	cmd.Flags().StringVar(&png, "png", "", "also draw the route to this image file")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
