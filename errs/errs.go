// Package errs holds the error kinds shared by the API client, the scraper and the dataset store.
// Callers match on kinds with errors.Is.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNoToken is returned when an authenticated call is attempted before any token was loaded.
	ErrNoToken = errors.New("no access token")

	// ErrAuth covers rejected credentials and failed token refreshes.
	ErrAuth = errors.New("authentication failed")

	// ErrNotFound is returned for missing dataset folders and files.
	ErrNotFound = errors.New("not found")

	// ErrRequest covers transport failures and unexpected HTTP statuses.
	ErrRequest = errors.New("request failed")

	// ErrConfig is returned for invalid arguments and settings.
	ErrConfig = errors.New("invalid configuration")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Op     string
	Status int
	Kind   error
}

// Status builds a StatusError for op, classifying 401 and 403 as ErrAuth.
func Status(op string, status int) *StatusError {
	kind := ErrRequest
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		kind = ErrAuth
	}
	return &StatusError{Op: op, Status: status, Kind: kind}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

func (e *StatusError) Unwrap() error {
	return e.Kind
}

// Wrap annotates err with op and marks it as kind, keeping err in the chain.
func Wrap(kind error, op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
