package cmd

import (
	"github.com/spf13/cobra"
)

var (
	compareOriginal  string
	compareProcessed string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare an original and a processed file (requires backend)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDispatcher(cmd)
		if err != nil {
			return err
		}
		res, err := d.Compare(cmd.Context(), compareOriginal, compareProcessed)
		if err != nil {
			return err
		}
		renderCompare(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareOriginal, "original", "", "Original file")
	compareCmd.Flags().StringVar(&compareProcessed, "processed", "", "Processed file")
	_ = compareCmd.MarkFlagRequired("original")
	_ = compareCmd.MarkFlagRequired("processed")

	rootCmd.AddCommand(compareCmd)
}
