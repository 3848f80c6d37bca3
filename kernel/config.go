package kernel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/dataagent/agent"
	"github.com/tailored-agentic-units/dataagent/dataset"
	"github.com/tailored-agentic-units/dataagent/memory"
	"github.com/tailored-agentic-units/dataagent/session"
	"github.com/tailored-agentic-units/dataagent/tools"
)

// DefaultSystemPrompt describes the sales dataset and the TOOL_CALL reply
// format to the model.
const DefaultSystemPrompt = "You are a helpful data analyst assistant. " +
	"You have access to a sales database with information about products, categories, regions, and revenue. " +
	"When the user asks a question, determine if you need to query the database. " +
	"If so, respond with a SQL query in the format: TOOL_CALL: execute_query | SELECT ... " +
	"Otherwise, provide a direct answer. Be concise and helpful."

const defaultObserver = "slog"

// Config holds initialization parameters for all kernel subsystems.
// Each section delegates to that subsystem's config-driven constructor.
type Config struct {
	Agent        agent.Config   `json:"agent" yaml:"agent"`
	Tools        tools.Config   `json:"tools" yaml:"tools"`
	Dataset      dataset.Config `json:"dataset" yaml:"dataset"`
	Session      session.Config `json:"session" yaml:"session"`
	Memory       memory.Config  `json:"memory" yaml:"memory"`
	SystemPrompt string         `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
	Observer     string         `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// DefaultConfig returns a Config with defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Agent:        agent.DefaultConfig(),
		Tools:        tools.DefaultConfig(),
		Dataset:      dataset.DefaultConfig(),
		Session:      session.DefaultConfig(),
		Memory:       memory.DefaultConfig(),
		SystemPrompt: DefaultSystemPrompt,
		Observer:     defaultObserver,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Agent.Merge(&source.Agent)
	c.Tools.Merge(&source.Tools)
	c.Dataset.Merge(&source.Dataset)
	c.Session.Merge(&source.Session)
	c.Memory.Merge(&source.Memory)

	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a JSON or YAML (.yaml, .yml) config file, expands
// ${VAR} environment references, merges it with defaults, and returns the
// resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(expanded, &loaded)
	default:
		err = json.Unmarshal(expanded, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
