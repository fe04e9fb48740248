// Package clients provides the instrumented HTTP client shared by the
// gallery's downstream adapters.
package clients

import "errors"

// Client errors are transport failures. The acl package translates them
// into domain errors.
var (
	// ErrRequestFailed wraps any failure to obtain a response.
	ErrRequestFailed = errors.New("request failed")

	// ErrTimeout marks a request that exceeded its deadline. It is always
	// reported together with ErrRequestFailed.
	ErrTimeout = errors.New("request timed out")
)
