/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/fieldsheet/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a Fieldsheet configuration file",
	Long: `Create a configuration file with a generated API key.

This command will:
- Write a config file with default server and sheet settings
- Record the spreadsheet ID, if given
- Generate an API key clients must send in the X-API-Key header

Google credentials are best supplied through GOOGLE_SERVICE_ACCOUNT_EMAIL and
GOOGLE_PRIVATE_KEY rather than stored in the file.

Examples:
  fieldsheet init --spreadsheet-id 1AbC...
  fieldsheet init --config ./fieldsheet.yaml --force --print-key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		spreadsheetID, _ := cmd.Flags().GetString("spreadsheet-id")
		force, _ := cmd.Flags().GetBool("force")
		printKey, _ := cmd.Flags().GetBool("print-key")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, spreadsheetID)
		if err != nil {
			return fmt.Errorf("bootstrapping config: %w", err)
		}

		cmd.Printf("✅ Configuration created at %s\n", configPath)
		if cfg.Sheet.SpreadsheetID == "" {
			cmd.Printf("No spreadsheet ID set; export GOOGLE_SPREADSHEET_ID before serving.\n")
		}
		if printKey {
			cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		}
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  fieldsheet serve --config %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("spreadsheet-id", "", "Google spreadsheet ID holding the form fields")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	initCmd.Flags().Bool("print-key", false, "Print the generated API key")
}
