package mediacore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the devtool configuration file.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	FFmpeg  BinaryConfig  `yaml:"ffmpeg"`
	RunPod  RunPodSection `yaml:"runpod"`
	// Local skips the backend entirely.
	Local    bool     `yaml:"local"`
	Provider Provider `yaml:"provider"`
}

// BackendConfig locates the HTTP backend.
type BackendConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// BinaryConfig names the ffmpeg executable.
type BinaryConfig struct {
	Path string `yaml:"path"`
}

// RunPodSection holds credentials for --provider runpod.
type RunPodSection struct {
	APIKey     string `yaml:"api_key"`
	EndpointID string `yaml:"endpoint_id"`
}

// DefaultConfigPath is ~/.devtool/config.yaml.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".devtool", "config.yaml")
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:  BackendConfig{URL: DefaultBackendURL, Timeout: DefaultTimeout},
		FFmpeg:   BinaryConfig{Path: "ffmpeg"},
		Provider: ProviderLocal,
	}
}

// LoadConfig reads a YAML config file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.fillDefaults()
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables. A DEVTOOL_LOCAL
// that strconv.ParseBool rejects is an error rather than a silent no-op.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DEVTOOL_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("DEVTOOL_FFMPEG"); v != "" {
		c.FFmpeg.Path = v
	}
	if v := os.Getenv("DEVTOOL_LOCAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEVTOOL_LOCAL %q: want true or false", v)
		}
		c.Local = b
	}
	if v := os.Getenv("RUNPOD_API_KEY"); v != "" {
		c.RunPod.APIKey = v
	}
	if v := os.Getenv("RUNPOD_ENDPOINT_ID"); v != "" {
		c.RunPod.EndpointID = v
	}
	return nil
}

func (c *Config) fillDefaults() {
	if c.Backend.URL == "" {
		c.Backend.URL = DefaultBackendURL
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = DefaultTimeout
	}
	if c.FFmpeg.Path == "" {
		c.FFmpeg.Path = "ffmpeg"
	}
	if c.Provider == "" {
		c.Provider = ProviderLocal
	}
}
