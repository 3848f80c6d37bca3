package session

// Config holds session parameters. MaxMessages caps the turns carried into
// a new question; the kernel enforces it by discarding whole
// question/answer exchanges, oldest first, before each question. Zero
// keeps every turn.
type Config struct {
	MaxMessages int `json:"max_messages,omitempty" yaml:"max_messages,omitempty"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxMessages > 0 {
		c.MaxMessages = source.MaxMessages
	}
}

// New creates an in-memory Session from configuration.
func New(cfg *Config) (Session, error) {
	return NewMemorySession(), nil
}
