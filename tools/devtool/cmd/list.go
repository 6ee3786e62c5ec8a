package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all commands and where they can run",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			table := tablewriter.NewTable(cmd.OutOrStdout(),
				tablewriter.WithHeader([]string{"Command", "Backend", "Local", "RunPod"}),
			)

			table.Append("process", "Yes", "Yes", "Yes")
			table.Append("convert", "Yes", "Yes", "Yes")
			table.Append("compress", "Yes", "Yes", "Yes")
			table.Append("compare", "Yes", "No", "No")
			table.Append("info", "Yes", "No", "No")
			table.Append("health", "Yes", "No", "No")

			table.Render()
		},
	}

	rootCmd.AddCommand(listCmd)
}
