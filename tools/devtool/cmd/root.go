package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Pranjal6955/terminal-devtool/libs/mediacore"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/maruel/interrupt"
	"github.com/spf13/cobra"
)

var (
	backendURL     string
	localOnly      bool
	configPath     string
	provider       string
	ffmpegBin      string
	timeout        time.Duration
	verbose        bool
	noColor        bool
	runpodKey      string
	runpodEndpoint string

	// cfg is resolved once per invocation in PersistentPreRunE.
	cfg *mediacore.Config
)

var rootCmd = &cobra.Command{
	Use:   "devtool",
	Short: "devtool is a CLI front-end for ffmpeg and the media backend",
	Long: `devtool processes, converts, compresses, inspects and compares media files.
Requests go to the HTTP media backend when it is reachable; process, convert
and compress fall back to running ffmpeg locally when it is not.`,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Ctrl-C cancels the context, which stops a
// running ffmpeg or backend request.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt.HandleCtrlC()
	go func() {
		select {
		case <-interrupt.Channel:
			cancel()
		case <-ctx.Done():
		}
	}()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend-url", mediacore.DefaultBackendURL, "Media backend base URL (env DEVTOOL_BACKEND_URL)")
	rootCmd.PersistentFlags().BoolVar(&localOnly, "local", false, "Skip the backend and run ffmpeg locally")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", mediacore.DefaultConfigPath(), "Config file")
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", string(mediacore.ProviderLocal), "Where local-mode ffmpeg runs (local, runpod)")
	rootCmd.PersistentFlags().StringVar(&ffmpegBin, "ffmpeg", "ffmpeg", "ffmpeg binary name or path (env DEVTOOL_FFMPEG)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", mediacore.DefaultTimeout, "Backend request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and raw ffmpeg output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&runpodKey, "runpod-key", "", "RunPod API key (env RUNPOD_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&runpodEndpoint, "runpod-endpoint", "", "RunPod ffmpeg endpoint ID (env RUNPOD_ENDPOINT_ID)")
}

// setup layers configuration: defaults, config file, .env and environment,
// then flags the user actually set.
func setup(cmd *cobra.Command, args []string) error {
	// Flag and argument errors are reported before this point; past it,
	// failures are not usage problems.
	cmd.SilenceUsage = true

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	c, err := mediacore.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	if err := c.ApplyEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("backend-url") {
		c.Backend.URL = backendURL
	}
	if flags.Changed("local") {
		c.Local = localOnly
	}
	if flags.Changed("provider") {
		c.Provider = mediacore.Provider(provider)
	}
	if flags.Changed("ffmpeg") {
		c.FFmpeg.Path = ffmpegBin
	}
	if flags.Changed("timeout") {
		c.Backend.Timeout = timeout
	}
	if flags.Changed("runpod-key") {
		c.RunPod.APIKey = runpodKey
	}
	if flags.Changed("runpod-endpoint") {
		c.RunPod.EndpointID = runpodEndpoint
	}

	switch c.Provider {
	case mediacore.ProviderLocal, mediacore.ProviderRunPod:
	default:
		return fmt.Errorf("unknown provider %q (want local or runpod)", c.Provider)
	}

	if noColor {
		color.NoColor = true
	}
	mediacore.SetLogger(mediacore.NewLogger(cmd.ErrOrStderr(), verbose))

	cfg = c
	return nil
}
