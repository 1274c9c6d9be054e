/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/fieldsheet/pkg/config"
	"github.com/ssargent/fieldsheet/pkg/di"
	"github.com/ssargent/fieldsheet/pkg/gateway"
	"github.com/ssargent/fieldsheet/pkg/logging"
)

var container *di.Container

// SetContainer injects the dependency container used by the commands
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fieldsheet",
	Short: "Fieldsheet - form field definitions backed by a spreadsheet",
	Long: `Fieldsheet serves form field definitions stored in a Google Sheets range
over a small REST API. Fields are read with GET /form-fields and replaced
wholesale with POST /form-fields.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: OS-specific location)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig reads the config file when present, falls back to defaults
// otherwise, then applies environment and flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newGateway builds the configured table store and wraps it in a gateway.
// The returned function releases the store.
func newGateway(
	ctx context.Context,
	cfg *config.Config,
	recorder gateway.OperationRecorder,
	logger *zap.Logger,
) (*gateway.Gateway, func() error, error) {
	if container == nil {
		return nil, nil, fmt.Errorf("dependency container not initialized")
	}

	ts, closeFn, err := container.GetStoreFactory().CreateStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create store: %w", err)
	}

	gw := gateway.New(ts, gateway.Config{
		Destination: cfg.Sheet.SpreadsheetID,
		Range:       cfg.Sheet.Range,
	}, recorder, logger)
	return gw, closeFn, nil
}

// setup is shared by the commands that talk to the store
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
