package cmd

import (
	"github.com/Pranjal6955/terminal-devtool/libs/mediacore"
	"github.com/spf13/cobra"
)

var processReq mediacore.ProcessRequest

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Resize or re-encode a media file",
	Long: `Sends the file to the media backend for processing. When the backend is
unreachable or fails, the same job runs through ffmpeg:

  ffmpeg -i <input> [-s <resolution>] [-b:v <bitrate>] <output>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debugRequest("process", processReq)

		d, err := newDispatcher(cmd)
		if err != nil {
			return err
		}
		res, err := d.Process(cmd.Context(), processReq)
		if err != nil {
			return err
		}
		renderResult(cmd.OutOrStdout(), "Processing", res)
		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&processReq.Input, "input", "i", "", "Input file")
	processCmd.Flags().StringVarP(&processReq.Output, "output", "o", "", "Output file (default processed_<input>)")
	processCmd.Flags().StringVar(&processReq.Resolution, "resolution", "", "Target resolution, e.g. 1280x720")
	processCmd.Flags().StringVar(&processReq.Bitrate, "bitrate", "", "Target video bitrate, e.g. 1000k")
	processCmd.Flags().StringVar(&processReq.Format, "format", "", "Output format, e.g. webm")
	processCmd.Flags().BoolVar(&processReq.DryRun, "dry-run", false, "Print the ffmpeg command without running it")
	_ = processCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(processCmd)
}
