package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"echo-widget/internal/config"
	"echo-widget/internal/model"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [record-id]",
	Short: "Print the resolved widget configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		id := recordID(cmd, args)
		resolved, source := newResolver(cfg).Resolve(cmd.Context(), id)

		out := model.ResolvedConfig{RecordID: id, Source: string(source), Config: resolved}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
