package searxng

import (
	"errors"
	"fmt"

	"github.com/rhuss/mcp-searxng/pkg/api"
)

// TransportError reports a failure below a successful HTTP exchange:
// connection, DNS or TLS faults, timeouts, body read failures and non-2xx
// statuses. StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ToToolError maps err onto the tool error model. ToolErrors pass through,
// transport failures become "Error during search" internal errors and
// anything else becomes an "Unexpected error" internal error.
func ToToolError(err error) *api.ToolError {
	if err == nil {
		return nil
	}

	var te *api.ToolError
	if errors.As(err, &te) {
		return te
	}

	var tr *TransportError
	if errors.As(err, &tr) {
		return api.NewInternalError(fmt.Sprintf("Error during search: %v", tr))
	}

	return api.NewInternalError(fmt.Sprintf("Unexpected error: %v", err))
}
