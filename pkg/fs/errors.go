// pkg/fs/errors.go
package fs

import (
	"errors"
	"fmt"
)

// Common filesystem errors that map to FUSE errnos and gRPC status codes
var (
	ErrNotExist          = errors.New("file does not exist")
	ErrPermission        = errors.New("permission denied")
	ErrIO                = errors.New("input/output error")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNoAttribute       = errors.New("no such attribute")
	ErrNoAttributeSpace  = errors.New("no space for attributes")
	ErrRange             = errors.New("attribute buffer too small")
	ErrDeviceUnavailable = errors.New("device unavailable")
)

// FSError represents a filesystem error with additional context.
type FSError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FSError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FSError) Unwrap() error {
	return e.Err
}

// NewError creates a new FSError.
func NewError(op, path string, err error) error {
	return &FSError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}
