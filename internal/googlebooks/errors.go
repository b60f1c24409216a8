package googlebooks

import (
	"errors"
	"fmt"
)

// Sentinel errors for Google Books API operations.
var (
	ErrNotFound    = errors.New("googlebooks: volume not found")
	ErrRateLimited = errors.New("googlebooks: rate limited by server")
	ErrBadRequest  = errors.New("googlebooks: bad request")
	ErrServer      = errors.New("googlebooks: server error")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op       string // Operation: "search", "getVolume"
	VolumeID string // If applicable
	Err      error
}

func (e *Error) Error() string {
	if e.VolumeID != "" {
		return fmt.Sprintf("googlebooks %s [%s]: %v", e.Op, e.VolumeID, e.Err)
	}
	return fmt.Sprintf("googlebooks %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, volumeID string, err error) error {
	return &Error{
		Op:       op,
		VolumeID: volumeID,
		Err:      err,
	}
}
