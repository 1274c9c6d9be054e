/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ssargent/fieldsheet/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the Fieldsheet REST API server.

Configuration is read from the config file and overridden by environment
variables (GOOGLE_SPREADSHEET_ID, GOOGLE_SERVICE_ACCOUNT_EMAIL,
GOOGLE_PRIVATE_KEY, PORT, ...) and flags. The server shuts down gracefully
on SIGINT or SIGTERM.

Examples:
  fieldsheet serve
  fieldsheet serve --port 9000 --bind 0.0.0.0
  fieldsheet serve --backend local --data-dir ./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("backend") {
			cfg.Sheet.Backend, _ = cmd.Flags().GetString("backend")
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := api.NewMetrics(reg)

		gw, closeStore, err := newGateway(ctx, cfg, metrics, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Sugar().Warnw("failed to close store", "error", err)
			}
		}()

		if !gw.Configured() {
			logger.Sugar().Warnw("spreadsheet ID not configured; form field requests will fail",
				"env", "GOOGLE_SPREADSHEET_ID")
		}

		logger.Sugar().Infow("starting fieldsheet server",
			"addr", cfg.Addr(),
			"backend", cfg.Sheet.Backend,
			"range", cfg.Sheet.Range)

		api.SwaggerInfo.Host = cfg.Addr()

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx, gw, api.ServerConfig{
			Bind:   cfg.Bind,
			Port:   cfg.Port,
			APIKey: cfg.Security.APIKey,
		}, metrics, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind server to")
	serveCmd.Flags().String("backend", "sheets", "Table store backend (sheets or local)")
	serveCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for the local backend")
}

