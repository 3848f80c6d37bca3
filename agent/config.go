package agent

import (
	"time"

	"github.com/tailored-agentic-units/dataagent/core/config"
)

const (
	defaultProvider    = ProviderOpenAI
	defaultModel       = "phi-3-mini-4k-instruct"
	defaultBaseURL     = "http://localhost:5273/v1"
	defaultCommand     = "foundry"
	defaultTimeout     = 120 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
)

// ModelPlaceholder in Config.Args is replaced by the configured model name.
const ModelPlaceholder = "{model}"

// Config holds inference backend parameters.
type Config struct {
	Provider    string          `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model       string          `json:"model,omitempty" yaml:"model,omitempty"`
	BaseURL     string          `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	APIKey      string          `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Temperature float64         `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Timeout     config.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// RequestsPerMinute throttles the openai provider; 0 disables throttling.
	RequestsPerMinute int `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty"`

	// Command and Args configure the command provider.
	Command string   `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// DefaultConfig returns the configuration for a Foundry Local model served
// on its OpenAI-compatible endpoint.
func DefaultConfig() Config {
	return Config{
		Provider:    defaultProvider,
		Model:       defaultModel,
		BaseURL:     defaultBaseURL,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Timeout:     config.Duration(defaultTimeout),
		Command:     defaultCommand,
		Args:        []string{"model", "run", ModelPlaceholder},
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Provider != "" {
		c.Provider = source.Provider
	}
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.Temperature > 0 {
		c.Temperature = source.Temperature
	}
	if source.MaxTokens > 0 {
		c.MaxTokens = source.MaxTokens
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
	if source.RequestsPerMinute > 0 {
		c.RequestsPerMinute = source.RequestsPerMinute
	}
	if source.Command != "" {
		c.Command = source.Command
	}
	if source.Args != nil {
		c.Args = source.Args
	}
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout.Std()
}
