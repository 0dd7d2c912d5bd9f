package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("missing required configuration")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not logged in")
	ErrTokenMissing     = fmt.Errorf("no usable token stored")
	ErrTokenNotFound    = fmt.Errorf("token record not found")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token saved")
	ErrStateMismatch    = fmt.Errorf("state mismatch")
	ErrCallbackInput    = fmt.Errorf("missing callback parameters")

	// Upstream errors
	ErrUpstreamUnreachable = fmt.Errorf("upstream unreachable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
