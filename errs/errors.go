// Package errs defines the sentinel errors shared across deflatekit packages.
//
// All exported errors are comparable with errors.Is. Functions that wrap these
// sentinels add call-site context with fmt.Errorf("...: %w", err), so callers
// should always match with errors.Is rather than direct equality.
package errs

import "errors"

var (
	// ErrInvalidConfiguration indicates a bad compression level, strategy or
	// dictionary combination. It is fatal to the operation that reported it
	// (usually session creation) and not recoverable by retrying.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrResourceExhausted indicates backend initialization failed for a
	// reason not attributable to the supplied parameters. The session was not
	// created; the caller may retry later.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrOutOfMemory indicates a buffer pin failed while a nonzero length was
	// requested: the offset/length pair falls outside the caller's buffer, or
	// the buffer has no backing array. Fatal to that call only; the session
	// remains usable.
	ErrOutOfMemory = errors.New("buffer pin failed")

	// ErrBackendFault indicates the compression backend reported an internal
	// or stream-consistency error. The session should be closed by the caller;
	// deflatekit never retries a backend fault automatically.
	ErrBackendFault = errors.New("backend fault")

	// ErrUnsupportedOperation indicates the requested operation is not valid
	// for the active backend or the current session state (for example, a
	// flush against the fast backend, or a checksum query against it). The
	// session state is not corrupted.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrClosedSession indicates an operation was attempted after Close.
	ErrClosedSession = errors.New("session closed")
)
