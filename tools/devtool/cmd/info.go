package cmd

import (
	"github.com/spf13/cobra"
)

var infoInput string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show media metadata (requires backend)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDispatcher(cmd)
		if err != nil {
			return err
		}
		info, err := d.Info(cmd.Context(), infoInput)
		if err != nil {
			return err
		}
		renderMediaInfo(cmd.OutOrStdout(), info)
		return nil
	},
}

func init() {
	infoCmd.Flags().StringVarP(&infoInput, "input", "i", "", "Input file")
	_ = infoCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(infoCmd)
}
