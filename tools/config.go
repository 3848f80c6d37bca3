package tools

import (
	"time"

	"github.com/tailored-agentic-units/dataagent/core/config"
)

// Backend kinds accepted by Config.Backend.
const (
	KindDataset = "dataset"
	KindProcess = "process"
)

const defaultTimeout = 30 * time.Second

// Config holds tool backend parameters.
type Config struct {
	Backend string          `json:"backend,omitempty" yaml:"backend,omitempty"`
	Timeout config.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Process ProcessConfig   `json:"process" yaml:"process"`
}

// ProcessConfig locates the external data server run by ProcessBackend.
type ProcessConfig struct {
	Command string   `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// DefaultConfig returns the default tool configuration: an in-process
// dataset backend with a 30s per-call timeout.
func DefaultConfig() Config {
	return Config{
		Backend: KindDataset,
		Timeout: config.Duration(defaultTimeout),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Backend != "" {
		c.Backend = source.Backend
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
	if source.Process.Command != "" {
		c.Process.Command = source.Process.Command
	}
	if source.Process.Args != nil {
		c.Process.Args = source.Process.Args
	}
}

// CallTimeout returns the configured per-call timeout.
func (c *Config) CallTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout.Std()
}
