/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ssargent/fieldsheet/pkg/config"
)

const serviceName = "fieldsheet.service"

// unitDir is where the systemd unit is written
var unitDir = "/etc/systemd/system"

// serviceCmd represents the service command
var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage Fieldsheet as a systemd service",
	Long: `Manage Fieldsheet as a systemd service for production deployments.

The unit runs "fieldsheet serve" with restart on failure and reads Google
credentials from an optional environment file.`,
}

// installServiceCmd represents the service install command
var installServiceCmd = &cobra.Command{
	Use:   "install",
	Short: "Install Fieldsheet as a systemd service",
	Long: `Install Fieldsheet as a systemd service.

This will:
- Create the configuration file if it does not exist
- Generate the systemd unit file
- Enable and optionally start the service

Examples:
  fieldsheet service install --spreadsheet-id 1AbC...
  fieldsheet service install --user fieldsheet --env-file /etc/fieldsheet/env`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		spreadsheetID, _ := cmd.Flags().GetString("spreadsheet-id")
		user, _ := cmd.Flags().GetString("user")
		envFile, _ := cmd.Flags().GetString("env-file")
		port, _ := cmd.Flags().GetInt("port")
		startNow, _ := cmd.Flags().GetBool("start")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		// systemd operations need root
		if os.Geteuid() != 0 {
			return fmt.Errorf("service install requires root privileges (run with: sudo fieldsheet service install)")
		}

		cmd.Printf("🔧 Installing Fieldsheet systemd service...\n")

		var cfg *config.Config
		var err error
		if config.ConfigExists(configPath) {
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cmd.Printf("✅ Loaded existing configuration\n")
		} else {
			cfg, err = config.BootstrapConfig(configPath, spreadsheetID)
			if err != nil {
				return fmt.Errorf("bootstrapping config: %w", err)
			}
			cmd.Printf("✅ Created new configuration at %s\n", configPath)
		}

		if cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if spreadsheetID != "" {
			cfg.Sheet.SpreadsheetID = spreadsheetID
		}
		if err := config.SaveConfig(cfg, configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		if err := createSystemdUnit(configPath, user, envFile); err != nil {
			return fmt.Errorf("creating systemd unit: %w", err)
		}
		if err := runSystemctlCommand("daemon-reload"); err != nil {
			return fmt.Errorf("reloading systemd: %w", err)
		}
		if err := runSystemctlCommand("enable", serviceName); err != nil {
			return fmt.Errorf("enabling service: %w", err)
		}
		cmd.Printf("✅ Service enabled successfully\n")

		if startNow {
			if err := runSystemctlCommand("start", serviceName); err != nil {
				return fmt.Errorf("starting service: %w", err)
			}
			cmd.Printf("✅ Service started successfully\n")
		}

		cmd.Printf("\n🎉 Fieldsheet service installed!\n")
		cmd.Printf("Service: %s\n", serviceName)
		cmd.Printf("Config: %s\n", configPath)
		cmd.Printf("Port: %d\n", cfg.Port)
		if !startNow {
			cmd.Printf("\nTo start the service: sudo systemctl start %s\n", serviceName)
		}
		cmd.Printf("To view logs: sudo journalctl -u %s -f\n", serviceName)
		return nil
	},
}

func systemctlCmd(use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSystemctlCommand(use, serviceName)
		},
	}
}

// logsCmd represents the service logs command
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show Fieldsheet service logs",
	Long: `Show Fieldsheet service logs using journalctl.

Examples:
  fieldsheet service logs
  fieldsheet service logs -f  # Follow logs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		lines, _ := cmd.Flags().GetInt("lines")
		return runCommand("journalctl", journalArgs(follow, lines)...)
	},
}

// uninstallCmd represents the service uninstall command
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Uninstall the Fieldsheet service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Geteuid() != 0 {
			return fmt.Errorf("service uninstall requires root privileges (run with: sudo fieldsheet service uninstall)")
		}

		cmd.Printf("🗑️  Uninstalling Fieldsheet service...\n")

		_ = runSystemctlCommand("stop", serviceName) // already stopped is fine
		if err := runSystemctlCommand("disable", serviceName); err != nil {
			cmd.Printf("Warning: could not disable service: %v\n", err)
		}

		unitPath := filepath.Join(unitDir, serviceName)
		if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing unit file: %w", err)
		}
		if err := runSystemctlCommand("daemon-reload"); err != nil {
			return fmt.Errorf("reloading systemd: %w", err)
		}

		cmd.Printf("✅ Fieldsheet service uninstalled\n")
		cmd.Printf("Note: the configuration file was not removed\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serviceCmd)

	serviceCmd.AddCommand(installServiceCmd)
	serviceCmd.AddCommand(systemctlCmd("start", "Start the Fieldsheet service"))
	serviceCmd.AddCommand(systemctlCmd("stop", "Stop the Fieldsheet service"))
	serviceCmd.AddCommand(systemctlCmd("restart", "Restart the Fieldsheet service"))
	serviceCmd.AddCommand(systemctlCmd("status", "Show Fieldsheet service status"))
	serviceCmd.AddCommand(logsCmd)
	serviceCmd.AddCommand(uninstallCmd)

	installServiceCmd.Flags().String("spreadsheet-id", "", "Google spreadsheet ID holding the form fields")
	installServiceCmd.Flags().String("user", "fieldsheet", "User to run the service as")
	installServiceCmd.Flags().String("env-file", "/etc/fieldsheet/env",
		"Environment file with GOOGLE_* credentials (optional at runtime)")
	installServiceCmd.Flags().Int("port", 8080, "Port for the service")
	installServiceCmd.Flags().Bool("start", true, "Start the service after installation")

	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().IntP("lines", "n", 0, "Number of lines to show")
}

// systemdUnit renders the unit file. A leading "-" on EnvironmentFile lets
// the service start when the file is missing.
func systemdUnit(configPath, user, envFile string) string {
	return fmt.Sprintf(`[Unit]
Description=Fieldsheet Form Field Server
After=network-online.target
Wants=network-online.target

[Service]
User=%s
Group=%s
EnvironmentFile=-%s
ExecStart=/usr/local/bin/fieldsheet serve --config %s
Restart=on-failure
NoNewPrivileges=true
UMask=0077
ReadWritePaths=%s

[Install]
WantedBy=multi-user.target
`, user, user, envFile, configPath, filepath.Dir(configPath))
}

// createSystemdUnit writes the unit file into unitDir
func createSystemdUnit(configPath, user, envFile string) error {
	unitPath := filepath.Join(unitDir, serviceName)
	return os.WriteFile(unitPath, []byte(systemdUnit(configPath, user, envFile)), 0600)
}

func journalArgs(follow bool, lines int) []string {
	args := []string{"-u", serviceName}
	if follow {
		args = append(args, "-f")
	}
	if lines > 0 {
		args = append(args, fmt.Sprintf("-n%d", lines))
	}
	return args
}

// runSystemctlCommand runs a systemctl command
func runSystemctlCommand(args ...string) error {
	return runCommand("systemctl", args...)
}

// runCommand runs a system command and returns its error
func runCommand(command string, args ...string) error {
	cmd := exec.Command(command, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
