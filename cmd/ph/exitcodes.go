package main

import (
	"errors"

	"github.com/vanderheijden86/paperhub/pkg/api"
	"github.com/vanderheijden86/paperhub/pkg/mindmap"
)

// Exit codes returned by ph.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration or preference file error
	ExitNotFound     = 3 // Paper not found
	ExitNetworkError = 4 // Paper API unreachable
	ExitDataError    = 5 // Malformed API data or mindmap payload, failed --check
)

var (
	errConfig      = errors.New("configuration error")
	errCheckFailed = errors.New("mindmap check failed")
)

// exitCodeFor maps an error returned by a command to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, errConfig):
		return ExitConfigError
	case api.IsNotFound(err):
		return ExitNotFound
	case api.IsNetworkError(err):
		return ExitNetworkError
	case errors.Is(err, api.ErrInvalidResponse),
		errors.Is(err, errCheckFailed),
		errors.Is(err, mindmap.ErrNoPayload),
		errors.Is(err, mindmap.ErrMalformedPayload),
		errors.Is(err, mindmap.ErrEmptyGraph),
		errors.Is(err, mindmap.ErrCycleDetected),
		errors.Is(err, mindmap.ErrTooLarge):
		return ExitDataError
	default:
		return ExitError
	}
}
