package cmd

import (
	"github.com/Pranjal6955/terminal-devtool/libs/mediacore"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

// newDispatcher wires the backend client and the executor selected by
// --provider for one invocation.
func newDispatcher(cmd *cobra.Command) (*mediacore.Dispatcher, error) {
	exec, err := newExecutor(cmd)
	if err != nil {
		return nil, err
	}

	var backend mediacore.Backend
	if !cfg.Local {
		backend = mediacore.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	}
	mediacore.Debug("Dispatcher ready", "backend", cfg.Backend.URL, "local", cfg.Local, "provider", cfg.Provider)
	return mediacore.NewDispatcher(backend, exec, cfg.Local), nil
}

func newExecutor(cmd *cobra.Command) (mediacore.Executor, error) {
	if cfg.Provider == mediacore.ProviderRunPod {
		return mediacore.NewRunPodExecutor(mediacore.RunPodConfig{
			APIKey:     cfg.RunPod.APIKey,
			EndpointID: cfg.RunPod.EndpointID,
			Stdout:     cmd.OutOrStdout(),
		})
	}
	return mediacore.NewLocalExecutor(mediacore.FFmpegConfig{
		Binary:       cfg.FFmpeg.Path,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
		ShowProgress: !verbose,
	}), nil
}

// debugRequest dumps a parsed request when --verbose is set.
func debugRequest(name string, req interface{}) {
	if verbose {
		mediacore.Debug("Parsed "+name+" request", "request", pretty.Sprint(req))
	}
}
