package cmd

import (
	"fmt"

	"github.com/Pranjal6955/terminal-devtool/libs/mediacore"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the media backend is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := mediacore.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
		h, err := client.Health(cmd.Context())
		if err != nil {
			renderUnhealthy(cmd.OutOrStdout(), client.BaseURL(), err)
			return fmt.Errorf("backend unhealthy: %w", err)
		}
		renderHealth(cmd.OutOrStdout(), client.BaseURL(), h)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
