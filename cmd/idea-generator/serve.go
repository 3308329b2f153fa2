// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/idea-generator/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Serve starts the HTTP API used by the mobile and web front ends. It
stops cleanly on SIGINT or SIGTERM. Prometheus metrics are served at
/metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.New(a.repo, a.gen, cfg.Server, cfg.UserID, logger, server.NewMetrics())
		return srv.Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", server.DefaultAddr, "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
