package main

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridroute/server"
	"github.com/katalvlaran/gridroute/snapshot"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grid and the router over HTTP.",
		Long: `serve builds the grid once and answers route requests over HTTP until
interrupted. PUT /v1/grid changes the cell size or threshold at runtime.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := a.snapshot()
			if err != nil {
				return err
			}
			opts, err := a.cfg.SearchOptions()
			if err != nil {
				return err
			}
			srv, err := server.New(snapshot.NewStore(snap),
				server.WithLogger(a.log),
				server.WithSearchOptions(opts...),
				server.WithRegistry(newRegistry()))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, a.cfg.Server.Addr)
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	return cmd
}

// newRegistry returns a registry carrying the Go runtime and process
// collectors; the server adds its own metrics to it.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
