package cmd

import (
	"github.com/Pranjal6955/terminal-devtool/libs/mediacore"
	"github.com/spf13/cobra"
)

var compressReq mediacore.CompressRequest

var compressCmd = &cobra.Command{
	Use:   "compress",
	Short: "Re-encode a video at a target bitrate",
	Long: `Compresses video with libx264 at the given bitrate and copies the audio
stream. The bitrate must be a number followed by k or M, e.g. 800k or 2M.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debugRequest("compress", compressReq)

		d, err := newDispatcher(cmd)
		if err != nil {
			return err
		}
		res, err := d.Compress(cmd.Context(), compressReq)
		if err != nil {
			return err
		}
		renderResult(cmd.OutOrStdout(), "Compression", res)
		return nil
	},
}

func init() {
	compressCmd.Flags().StringVarP(&compressReq.Input, "input", "i", "", "Input video")
	compressCmd.Flags().StringVarP(&compressReq.Output, "output", "o", "", "Output file (default <name>_compressed<ext> next to the input)")
	compressCmd.Flags().StringVar(&compressReq.Bitrate, "bitrate", "", "Target video bitrate, e.g. 800k or 2M")
	compressCmd.Flags().BoolVar(&compressReq.DryRun, "dry-run", false, "Print the ffmpeg command without running it")
	_ = compressCmd.MarkFlagRequired("input")
	_ = compressCmd.MarkFlagRequired("bitrate")

	rootCmd.AddCommand(compressCmd)
}
