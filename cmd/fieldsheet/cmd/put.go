package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/fieldsheet/pkg/codec"
	"github.com/ssargent/fieldsheet/pkg/gateway"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put -f <file>",
	Short: "Replace the form fields from a file",
	Long: `Replace the whole form field table with the fields in a JSON or YAML
file. The file holds either an object with a formFields array, as accepted by
POST /form-fields, or a bare array of fields. Use "-" to read standard input.

With --watch the command keeps running and writes the fields again every time
the file changes.

Example:
  fieldsheet put -f fields.json
  fieldsheet put -f fields.yaml --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		watch, _ := cmd.Flags().GetBool("watch")
		if file == "" {
			return fmt.Errorf("--file is required")
		}
		if watch && file == "-" {
			return fmt.Errorf("--watch needs a file, not standard input")
		}

		records, err := loadRecords(cmd, file)
		if err != nil {
			return err
		}

		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.Sheet.Backend = backend
		}

		gw, closeStore, err := newGateway(cmd.Context(), cfg, nil, logger)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		if err := gw.Write(cmd.Context(), records); err != nil {
			return err
		}
		cmd.Printf("Successfully wrote %d form fields\n", len(records))

		if !watch {
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", file)
		return watchFile(ctx, file, watchDebounce, logger.Sugar(), func() error {
			records, err := loadRecords(cmd, file)
			if err != nil {
				return err
			}
			if err := gw.Write(ctx, records); err != nil {
				return err
			}
			cmd.Printf("Successfully wrote %d form fields\n", len(records))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().StringP("file", "f", "", "JSON or YAML file with form fields (- for stdin)")
	putCmd.Flags().String("backend", "", "Override the configured table store backend")
	putCmd.Flags().BoolP("watch", "w", false, "Write the fields again whenever the file changes")
}

// loadRecords reads and validates the fields in file
func loadRecords(cmd *cobra.Command, file string) ([]codec.FieldRecord, error) {
	data, err := readInput(cmd, file)
	if err != nil {
		return nil, err
	}
	raw, err := formFieldsPayload(data, isYAML(file))
	if err != nil {
		return nil, err
	}
	return gateway.ParseRecords(raw)
}

func readInput(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}

func isYAML(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	return ext == ".yaml" || ext == ".yml"
}

// formFieldsPayload normalizes the file contents to the JSON value of the
// formFields property
func formFieldsPayload(data []byte, fromYAML bool) (json.RawMessage, error) {
	if fromYAML {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML: %w", err)
		}
		data = converted
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var body struct {
			FormFields json.RawMessage `json:"formFields"`
		}
		if err := json.Unmarshal(trimmed, &body); err != nil {
			return nil, &gateway.ValidationError{Reason: "malformed document", Err: err}
		}
		return body.FormFields, nil
	}
	return trimmed, nil
}
