package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/clickaway/internal/demo"
	"github.com/vango-dev/clickaway/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page over WebSocket",
		Long: `Start the event server. Each WebSocket connection to the events
endpoint mounts its own demo page; binary event frames drive it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cfg.Logger(os.Stderr)

			scfg := server.DefaultConfig()
			scfg.Address = cfg.Address()
			scfg.EventsPath = cfg.EventsPath
			scfg.MetricsPath = cfg.MetricsPath
			if !cfg.MetricsEnabled() {
				scfg.MetricsPath = ""
			}
			scfg.ReadTimeout = cfg.ReadTimeoutDuration()
			scfg.MaxMessageSize = cfg.MaxMessageSize
			scfg.Logger = logger

			return server.New(scfg, server.AppFunc(demo.App(logger))).Run()
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on")

	return cmd
}
