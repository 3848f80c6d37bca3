package dataset

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const (
	defaultDSN     = "file:sales.db?mode=ro"
	defaultMaxRows = 100
)

// Config locates the dataset and bounds query output.
type Config struct {
	Driver  string `json:"driver,omitempty" yaml:"driver,omitempty"`
	DSN     string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	MaxRows int    `json:"max_rows,omitempty" yaml:"max_rows,omitempty"`
}

// DefaultConfig returns a read-only sqlite dataset at ./sales.db.
func DefaultConfig() Config {
	return Config{
		Driver:  DriverSQLite,
		DSN:     defaultDSN,
		MaxRows: defaultMaxRows,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Driver != "" {
		c.Driver = source.Driver
	}
	if source.DSN != "" {
		c.DSN = source.DSN
	}
	if source.MaxRows > 0 {
		c.MaxRows = source.MaxRows
	}
}
