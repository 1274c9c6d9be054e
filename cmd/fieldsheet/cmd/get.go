package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ssargent/fieldsheet/pkg/codec"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the form fields",
	Long: `Read the form field table and print it as JSON, in the same shape
GET /form-fields returns.

Example:
  fieldsheet get
  fieldsheet get --backend local`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		records, err := gw.Read(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			FormFields []codec.FieldRecord `json:"formFields"`
		}{records})
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().String("backend", "", "Override the configured table store backend")
}
