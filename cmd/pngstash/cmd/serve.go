/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/pngstash/pkg/api"
	"github.com/ssargent/pngstash/pkg/config"
	"github.com/ssargent/pngstash/pkg/stash"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the pngstash REST API server.

Every route under /api/v1 requires the X-API-Key header. Request bodies carry
the raw PNG bytes. Prometheus metrics are served at /metrics.

Examples:
  pngstash serve
  pngstash serve --api-key=mysecretkey --port=8080 --bind=0.0.0.0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := mustApp(cmd)
		if err != nil {
			return err
		}

		serverConfig := api.ServerConfig{
			Port:   a.cfg.Server.Port,
			Bind:   a.cfg.Server.Bind,
			APIKey: a.cfg.Server.APIKey,
		}
		if cmd.Flags().Changed("port") {
			serverConfig.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			serverConfig.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			serverConfig.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		serverConfig.MaxBodyBytes, _ = cmd.Flags().GetInt64("max-body-bytes")

		if serverConfig.APIKey == "" || serverConfig.APIKey == "auto" {
			key, err := config.GenerateSecureKey(32)
			if err != nil {
				return err
			}
			serverConfig.APIKey = key
			fmt.Fprintf(cmd.OutOrStdout(), "Generated API key: %s\n", key)
		}

		registry := api.NewRegistry()
		metrics := api.NewMetrics(registry)

		deps := api.ServerDeps{
			Service:  a.service(stash.WithObserver(metrics)),
			Metrics:  metrics,
			Gatherer: registry,
			Config:   serverConfig,
		}
		// Leave the interface nil when the journal is disabled
		if a.journal != nil {
			deps.Journal = a.journal
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s:%d\n", serverConfig.Bind, serverConfig.Port)

		starter := getContainer().GetServerFactory().CreateServerStarter()
		if err := starter.StartServer(ctx, deps); err != nil {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (default from config)")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to (default from config)")
	serveCmd.Flags().String("api-key", "", "API key for authentication (default from config)")
	serveCmd.Flags().Int64("max-body-bytes", api.DefaultMaxBodyBytes, "Maximum size of an uploaded PNG")
}
