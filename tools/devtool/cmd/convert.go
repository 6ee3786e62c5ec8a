package cmd

import (
	"github.com/Pranjal6955/terminal-devtool/libs/mediacore"
	"github.com/spf13/cobra"
)

var convertReq mediacore.ProcessRequest

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a media file to another format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debugRequest("convert", convertReq)

		d, err := newDispatcher(cmd)
		if err != nil {
			return err
		}
		res, err := d.Convert(cmd.Context(), convertReq)
		if err != nil {
			return err
		}
		renderResult(cmd.OutOrStdout(), "Conversion", res)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertReq.Input, "input", "i", "", "Input file")
	convertCmd.Flags().StringVarP(&convertReq.Output, "output", "o", "", "Output file (default <input-name>.<format> next to the input)")
	convertCmd.Flags().StringVar(&convertReq.Format, "format", "", "Target format, e.g. webm, mp3, gif")
	convertCmd.Flags().BoolVar(&convertReq.DryRun, "dry-run", false, "Print the ffmpeg command without running it")
	_ = convertCmd.MarkFlagRequired("input")
	_ = convertCmd.MarkFlagRequired("format")

	rootCmd.AddCommand(convertCmd)
}
