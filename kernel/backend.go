package kernel

import (
	"fmt"
	"io"
	"strings"

	"github.com/tailored-agentic-units/dataagent/dataset"
	"github.com/tailored-agentic-units/dataagent/tools"
)

// newToolBackend builds the tool backend named by cfg.Tools.Backend. The
// returned closer, when non-nil, releases the backend's resources.
func newToolBackend(cfg *Config) (tools.Backend, io.Closer, error) {
	switch strings.ToLower(cfg.Tools.Backend) {
	case tools.KindDataset, "":
		db, err := dataset.Open(&cfg.Dataset)
		if err != nil {
			return nil, nil, err
		}

		reg := tools.NewRegistry(cfg.Tools.CallTimeout())
		if err := dataset.RegisterTools(reg, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return reg, db, nil

	case tools.KindProcess:
		backend, err := tools.NewProcessBackend(&cfg.Tools)
		if err != nil {
			return nil, nil, err
		}
		return backend, nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", tools.ErrUnknownKind, cfg.Tools.Backend)
	}
}
