package mediacore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/runpod/go-sdk/pkg/sdk"
	"github.com/runpod/go-sdk/pkg/sdk/config"
	rpEndpoint "github.com/runpod/go-sdk/pkg/sdk/endpoint"
)

// RunPodConfig identifies the serverless ffmpeg worker.
type RunPodConfig struct {
	APIKey     string
	EndpointID string
	// Timeout bounds the RunSync call in seconds. Cold starts can take minutes.
	Timeout int
	Stdout  io.Writer
}

// RunPodJobOutput is the worker's answer to an ffmpeg job.
type RunPodJobOutput struct {
	OutputBase64 string `json:"output_base64"`
	Error        string `json:"error,omitempty"`
}

// RunPodJobResponse represents the response from a RunPod serverless job.
type RunPodJobResponse struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	DelayTime     int64           `json:"delayTime"`     // queue delay in milliseconds
	ExecutionTime int64           `json:"executionTime"` // in milliseconds
	Output        RunPodJobOutput `json:"output"`
	Error         string          `json:"error"`
}

// RunPodExecutor runs commands on a RunPod serverless ffmpeg endpoint.
type RunPodExecutor struct {
	config RunPodConfig
	run    runPodJobFunc
}

type runPodJobFunc func(ctx context.Context, key, endpointID string, input map[string]interface{}, timeout int) (*RunPodJobResponse, error)

// NewRunPodExecutor validates config and returns an executor. The API key
// falls back to RUNPOD_API_KEY and the endpoint to RUNPOD_ENDPOINT_ID.
func NewRunPodExecutor(config RunPodConfig) (*RunPodExecutor, error) {
	if config.APIKey == "" {
		config.APIKey = os.Getenv("RUNPOD_API_KEY")
	}
	if config.EndpointID == "" {
		config.EndpointID = os.Getenv("RUNPOD_ENDPOINT_ID")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("runpod API key is required (set via --runpod-key or RUNPOD_API_KEY)")
	}
	if config.EndpointID == "" {
		return nil, fmt.Errorf("runpod endpoint ID is required (set via --runpod-endpoint or RUNPOD_ENDPOINT_ID)")
	}
	if config.Timeout <= 0 {
		config.Timeout = 300
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	return &RunPodExecutor{config: config, run: RunRunPodJobSync}, nil
}

// Execute uploads the input inline, runs the command's options remotely and
// writes the returned file to c.Output. Nothing is written once ctx is done.
func (e *RunPodExecutor) Execute(ctx context.Context, c *Command) error {
	if c.DryRun {
		fmt.Fprintf(e.config.Stdout, "[dry-run] (runpod %s) %s\n", e.config.EndpointID, c)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	Info("Running FFmpeg on RunPod", "input", c.Input, "endpoint", e.config.EndpointID)
	job, err := e.run(ctx, e.config.APIKey, e.config.EndpointID, buildRunPodJobInput(data, c), e.config.Timeout)
	if err != nil {
		return err
	}
	decoded, err := job.Output.decode()
	if err != nil {
		return err
	}

	// The SDK call cannot be interrupted; honour a Ctrl-C that arrived while
	// it was blocked.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(c.Output, decoded, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	Debug("RunPod job finished", "id", job.ID, "queue_ms", job.DelayTime, "exec_ms", job.ExecutionTime)
	return nil
}

func (o RunPodJobOutput) decode() ([]byte, error) {
	if o.Error != "" {
		return nil, fmt.Errorf("runpod worker failed: %s", o.Error)
	}
	if o.OutputBase64 == "" {
		return nil, fmt.Errorf("runpod worker returned no output data")
	}
	data, err := base64.StdEncoding.DecodeString(o.OutputBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode output: %w", err)
	}
	return data, nil
}

// buildRunPodJobInput encodes the worker payload. The worker receives options
// comma-joined, exactly as they would follow "-i <input>" on the command line.
func buildRunPodJobInput(data []byte, c *Command) map[string]interface{} {
	return map[string]interface{}{
		"input_base64": base64.StdEncoding.EncodeToString(data),
		"ffmpeg_args":  strings.Join(c.Options, ","),
		"output_ext":   strings.TrimPrefix(filepath.Ext(c.Output), "."),
	}
}

// NewRunPodEndpointClient creates a RunPod Go SDK endpoint client for the given API key and endpoint ID.
func NewRunPodEndpointClient(apiKey, endpointID string) (*rpEndpoint.Endpoint, error) {
	return rpEndpoint.New(
		&config.Config{ApiKey: &apiKey},
		&rpEndpoint.Option{EndpointId: &endpointID},
	)
}

// RunRunPodJobSync submits a job with the SDK's RunSync, which blocks
// server-side until the job completes or timeout seconds elapse.
func RunRunPodJobSync(ctx context.Context, key, endpointID string, input map[string]interface{}, timeout int) (*RunPodJobResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ep, err := NewRunPodEndpointClient(key, endpointID)
	if err != nil {
		return nil, fmt.Errorf("failed to create RunPod endpoint client: %w", err)
	}

	start := time.Now()
	out, err := ep.RunSync(&rpEndpoint.RunSyncInput{
		JobInput: &rpEndpoint.JobInput{Input: input},
		Timeout:  sdk.Int(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("runsync request failed: %w", err)
	}
	Debug("RunPod RunSync returned", "elapsed", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if out.Error != nil && *out.Error != "" {
		return nil, fmt.Errorf("runpod job failed: %s", *out.Error)
	}

	job := &RunPodJobResponse{
		ID:     deref(out.Id),
		Status: deref(out.Status),
	}
	if out.DelayTime != nil {
		job.DelayTime = int64(*out.DelayTime)
	}
	if out.ExecutionTime != nil {
		job.ExecutionTime = int64(*out.ExecutionTime)
	}
	if out.Output != nil {
		if err := job.setOutput(*out.Output); err != nil {
			return nil, err
		}
	}
	return job, job.statusErr()
}

// setOutput converts the SDK's untyped output into RunPodJobOutput.
func (j *RunPodJobResponse) setOutput(raw interface{}) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal SDK output: %w", err)
	}
	if err := json.Unmarshal(b, &j.Output); err != nil {
		return fmt.Errorf("failed to parse job output: %w, raw: %s", err, b)
	}
	return nil
}

func (j *RunPodJobResponse) statusErr() error {
	switch j.Status {
	case "COMPLETED":
		return nil
	case "FAILED":
		msg := j.Error
		if msg == "" {
			msg = j.Output.Error
		}
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Errorf("runpod job failed: %s", msg)
	default:
		return fmt.Errorf("runsync returned unexpected status: %s", j.Status)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
