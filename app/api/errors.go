package api

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth means the credential is missing, expired, or rejected.
	// The caller is expected to send the user back through login.
	ErrAuth = errors.New("authentication required")

	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrNetwork covers transport failures and unexpected statuses.
	// Operations are never retried automatically.
	ErrNetwork = errors.New("request failed")
)

func statusError(method, path string, status int) error {
	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("%w: %s %s returned %d", ErrAuth, method, path, status)
	case status == 404:
		return fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	default:
		return fmt.Errorf("%w: %s %s returned %d", ErrNetwork, method, path, status)
	}
}
