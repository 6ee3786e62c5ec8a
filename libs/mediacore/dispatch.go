package mediacore

import (
	"context"
	"errors"
	"fmt"
)

// Mode reports which path produced a result.
type Mode string

const (
	ModeBackend Mode = "backend"
	ModeLocal   Mode = "local"
	ModeRunPod  Mode = "runpod"
)

// Result is the outcome of a process, convert or compress call.
type Result struct {
	Mode    Mode
	Output  string
	Command *Command // nil when the backend did the work
	Message string
	DryRun  bool
}

// Dispatcher routes one invocation to the backend or the local executor.
// It health-checks the backend at most once and is not meant to be reused
// across invocations.
type Dispatcher struct {
	backend   Backend
	executor  Executor
	localOnly bool

	checked bool
	healthy bool
}

// NewDispatcher wires a dispatcher. backend may be nil when localOnly is set.
func NewDispatcher(backend Backend, executor Executor, localOnly bool) *Dispatcher {
	return &Dispatcher{
		backend:   backend,
		executor:  executor,
		localOnly: localOnly || backend == nil,
	}
}

// UseBackend reports whether this invocation talks to the backend. The first
// call runs the health check; a failure switches the invocation to local mode.
func (d *Dispatcher) UseBackend(ctx context.Context) bool {
	if d.localOnly {
		return false
	}
	if !d.checked {
		d.checked = true
		if err := d.backend.HealthCheck(ctx); err != nil {
			Warn("Backend unavailable, continuing in local mode", "error", err)
			d.healthy = false
		} else {
			d.healthy = true
		}
	}
	return d.healthy
}

// Process sends req to the backend and falls back to local ffmpeg when the
// backend is unavailable or fails.
func (d *Dispatcher) Process(ctx context.Context, req ProcessRequest) (*Result, error) {
	cmd, err := ProcessCommand(req)
	if err != nil {
		return nil, err
	}

	if d.UseBackend(ctx) {
		resp, err := d.backend.Process(ctx, req)
		if err == nil {
			return &Result{Mode: ModeBackend, Output: resp.Output, DryRun: req.DryRun}, nil
		}
		if !canFallBack(ctx, err) {
			return nil, err
		}
		Warn("Backend processing failed, falling back to local ffmpeg", "error", err)
	}

	return d.runLocal(ctx, cmd)
}

// Convert changes the container format. On the backend it is a process
// request carrying only the format.
func (d *Dispatcher) Convert(ctx context.Context, req ProcessRequest) (*Result, error) {
	req.Resolution = ""
	req.Bitrate = ""
	cmd, err := ConvertCommand(req)
	if err != nil {
		return nil, err
	}

	if d.UseBackend(ctx) {
		resp, err := d.backend.Process(ctx, req)
		if err == nil {
			return &Result{Mode: ModeBackend, Output: resp.Output, DryRun: req.DryRun}, nil
		}
		if !canFallBack(ctx, err) {
			return nil, err
		}
		Warn("Backend conversion failed, falling back to local ffmpeg", "error", err)
	}

	return d.runLocal(ctx, cmd)
}

// Compress re-encodes at a target bitrate. The bitrate is validated before
// anything touches the network or spawns a process.
func (d *Dispatcher) Compress(ctx context.Context, req CompressRequest) (*Result, error) {
	cmd, err := CompressCommand(req)
	if err != nil {
		return nil, err
	}

	if !req.DryRun && d.UseBackend(ctx) {
		resp, err := d.backend.Compress(ctx, req)
		if err == nil {
			output := resp.Output
			if output == "" {
				output = req.Output
			}
			return &Result{Mode: ModeBackend, Output: output, Message: resp.Message}, nil
		}
		if !canFallBack(ctx, err) {
			return nil, err
		}
		Warn("Backend compression failed, falling back to local ffmpeg", "error", err)
	}

	return d.runLocal(ctx, cmd)
}

// Compare has no local equivalent.
func (d *Dispatcher) Compare(ctx context.Context, original, processed string) (*CompareResult, error) {
	if original == "" || processed == "" {
		return nil, fmt.Errorf("compare: both original and processed paths are required")
	}
	if !d.UseBackend(ctx) {
		return nil, fmt.Errorf("compare %w (backend unavailable or --local set)", ErrBackendRequired)
	}
	return d.backend.Compare(ctx, original, processed)
}

// Info has no local equivalent.
func (d *Dispatcher) Info(ctx context.Context, path string) (*MediaInfo, error) {
	if path == "" {
		return nil, ErrMissingInput
	}
	if !d.UseBackend(ctx) {
		return nil, fmt.Errorf("info %w (backend unavailable or --local set)", ErrBackendRequired)
	}
	return d.backend.Info(ctx, path)
}

// canFallBack reports whether a backend failure may be retried locally. Only
// an unreachable backend or a non-2xx status qualifies; a reply that could not
// be decoded and a cancelled invocation are returned as is.
func canFallBack(ctx context.Context, err error) bool {
	return ctx.Err() == nil && !errors.Is(err, ErrDecode)
}

func (d *Dispatcher) runLocal(ctx context.Context, cmd *Command) (*Result, error) {
	if d.executor == nil {
		return nil, fmt.Errorf("no local executor configured")
	}
	if err := d.executor.Execute(ctx, cmd); err != nil {
		return nil, err
	}
	mode := ModeLocal
	if _, ok := d.executor.(*RunPodExecutor); ok {
		mode = ModeRunPod
	}
	return &Result{Mode: mode, Output: cmd.Output, Command: cmd, DryRun: cmd.DryRun}, nil
}
