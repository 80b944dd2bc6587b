package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/metrics"
	"github.com/vango-dev/vtree/pkg/server"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		app  appFlags
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the playground server",
		Long: `Serve the playground over HTTP. Every browser tab gets its own
session; the server streams document patches over WebSocket.

Examples:
  vtree serve
  vtree serve --port=9000 --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			opts := []server.Option{server.WithLogger(logger)}
			if cfg.Metrics.Enabled {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				c := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace(cfg.Metrics.Namespace))
				opts = append(opts, server.WithMetrics(c, reg))
			}

			srv := server.New(app.tree, serverConfig(cfg.Server), opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd.OutOrStdout(), "playground on http://%s", cfg.Server.Address())
			return srv.Run(ctx)
		},
	}

	app.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from "+config.ConfigFileName+")")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from "+config.ConfigFileName+")")

	return cmd
}

func serverConfig(sc config.ServerConfig) *server.Config {
	d := server.DefaultConfig()
	d.Address = sc.Address()
	d.ReadTimeout = config.Duration(sc.ReadTimeout, d.ReadTimeout)
	d.WriteTimeout = config.Duration(sc.WriteTimeout, d.WriteTimeout)
	d.IdleTimeout = config.Duration(sc.IdleTimeout, d.IdleTimeout)
	d.ShutdownTimeout = config.Duration(sc.ShutdownTimeout, d.ShutdownTimeout)
	d.SessionReadTimeout = config.Duration(sc.SessionTimeout, 5*time.Minute)
	d.DevMode = sc.DevMode
	return d
}
