package mediacore

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Provider selects where local-mode commands run.
type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderRunPod Provider = "runpod"
)

// Executor runs ffmpeg commands built by the dispatcher.
type Executor interface {
	Execute(ctx context.Context, c *Command) error
}

// FFmpegConfig holds configuration for local ffmpeg execution.
type FFmpegConfig struct {
	Binary       string // Default "ffmpeg"
	Stdout       io.Writer
	Stderr       io.Writer
	ShowProgress bool
}

// LocalExecutor spawns ffmpeg on this machine and waits for it.
type LocalExecutor struct {
	binary       string
	stdout       io.Writer
	stderr       io.Writer
	showProgress bool
}

// NewLocalExecutor returns an executor for config, filling unset writers with
// the process stdout/stderr.
func NewLocalExecutor(config FFmpegConfig) *LocalExecutor {
	e := &LocalExecutor{
		binary:       config.Binary,
		stdout:       config.Stdout,
		stderr:       config.Stderr,
		showProgress: config.ShowProgress,
	}
	if e.binary == "" {
		e.binary = "ffmpeg"
	}
	if e.stdout == nil {
		e.stdout = os.Stdout
	}
	if e.stderr == nil {
		e.stderr = os.Stderr
	}
	return e
}

// Execute prints the command in dry-run mode, otherwise runs it to completion.
// A non-zero exit is reported with the last lines ffmpeg wrote to stderr.
func (e *LocalExecutor) Execute(ctx context.Context, c *Command) error {
	if c.DryRun {
		fmt.Fprintf(e.stdout, "[dry-run] %s\n", c)
		return nil
	}

	tail := newTailWriter(10)
	var stderr io.Writer = io.MultiWriter(e.stderr, tail)

	var bar *progressbar.ProgressBar
	if e.showProgress {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("ffmpeg"),
			progressbar.OptionSetWriter(e.stderr),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		pw := &progressWriter{onUpdate: func(p Progress) {
			bar.Describe(p.String())
			_ = bar.Add(1)
		}}
		stderr = io.MultiWriter(pw, tail)
	}

	Info("Running ffmpeg", "binary", e.binary, "args", c.Args())
	err := RunBinary(ctx, e.binary, c.Args(), nil, e.stdout, stderr)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		if out := tail.String(); out != "" {
			return fmt.Errorf("ffmpeg failed: %w\n%s", err, out)
		}
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
