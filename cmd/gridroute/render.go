package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridroute/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the events, the counts and the blocked cells.",
		Long: `render writes scatter.png (raw events), heat.png (counts per cell) and
block.png (blocked cells) into --out-dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.snapshot()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			files := []struct {
				name string
				draw func(string) error
			}{
				{"scatter.png", func(f string) error { return render.ScatterGraph(snap.Dataset(), f) }},
				{"heat.png", func(f string) error { return render.HeatGraph(snap.Grid(), f) }},
				{"block.png", func(f string) error { return render.BlockGraph(snap.Grid(), snap.Blocked(), nil, f) }},
			}
			for _, f := range files {
				p := filepath.Join(dir, f.name)
				if err := f.draw(p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
			}
			return nil
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().StringVar(&dir, "out-dir", ".", "output directory")
	return cmd
}
