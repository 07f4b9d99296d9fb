// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-tags/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search and tag API over HTTP",
	Long: `Serve starts an HTTP server exposing search and tag management as JSON
endpoints, plus /healthz and Prometheus /metrics. The server shuts down
gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	h := server.NewHandler(newService(store), store)
	return server.Run(cmd.Context(), cfg.Server, server.NewRouter(h, logger), logger)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :5000)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
