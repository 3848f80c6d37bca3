package agent

import "errors"

// Sentinel errors for agent construction.
var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrMissingCommand  = errors.New("command provider requires a command")
)
