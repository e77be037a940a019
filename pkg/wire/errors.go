// Package wire converts between filesystem values and the inspection
// service messages and status codes.
package wire

import (
	"context"
	"errors"
	"log"
	"os"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/example/smallfs/pkg/api"
	"github.com/example/smallfs/pkg/fs"
)

// MapErrorToCode converts a filesystem error to a gRPC status code
func MapErrorToCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrNoAttribute):
		return codes.NotFound
	case errors.Is(err, fs.ErrPermission):
		return codes.PermissionDenied
	case errors.Is(err, fs.ErrRange):
		return codes.OutOfRange
	case errors.Is(err, fs.ErrNoAttributeSpace):
		return codes.ResourceExhausted
	case errors.Is(err, fs.ErrInvalidArgument), errors.Is(err, api.ErrMalformed):
		return codes.InvalidArgument
	case errors.Is(err, fs.ErrDeviceUnavailable):
		return codes.Unavailable
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	}

	// Map standard Go errors
	if errors.Is(err, os.ErrNotExist) {
		return codes.NotFound
	} else if errors.Is(err, os.ErrPermission) {
		return codes.PermissionDenied
	}

	// Default for unrecognized errors
	LogUnknownError(err)
	return codes.Internal
}

// ToStatus wraps a filesystem error in a gRPC status error
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(MapErrorToCode(err), err.Error())
}

// FromStatus converts a gRPC status error returned for op on path back
// into a filesystem error. NotFound from an attribute operation means a
// missing attribute rather than a missing file.
func FromStatus(op, path string, err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return fs.NewError(op, path, err)
	}

	var base error
	switch st.Code() {
	case codes.NotFound:
		if op == "getxattr" || op == "listxattr" {
			base = fs.ErrNoAttribute
		} else {
			base = fs.ErrNotExist
		}
	case codes.PermissionDenied:
		base = fs.ErrPermission
	case codes.OutOfRange:
		base = fs.ErrRange
	case codes.ResourceExhausted:
		base = fs.ErrNoAttributeSpace
	case codes.InvalidArgument:
		base = fs.ErrInvalidArgument
	case codes.Unavailable:
		base = fs.ErrDeviceUnavailable
	case codes.Canceled:
		base = context.Canceled
	case codes.DeadlineExceeded:
		base = context.DeadlineExceeded
	default:
		base = fs.ErrIO
	}
	return &RemoteError{Op: op, Path: path, Base: base, Status: st}
}

// RemoteError is a filesystem error reported by the inspection server
type RemoteError struct {
	Op     string
	Path   string
	Base   error
	Status *status.Status
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Status.Message() + " (" + e.Status.Code().String() + ")"
}

// Unwrap returns the filesystem error the status code maps to
func (e *RemoteError) Unwrap() error {
	return e.Base
}

// GRPCStatus lets status.FromError recover the original status
func (e *RemoteError) GRPCStatus() *status.Status {
	return e.Status
}

// IsRetryable reports whether a call that failed with err may succeed
// if attempted again
func IsRetryable(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case codes.Unavailable, codes.Aborted:
		return true
	default:
		return false
	}
}

// LogUnknownError logs detailed information about unrecognized errors
func LogUnknownError(err error) {
	log.Printf("Unknown error type: %T, message: %v", err, err)
}

// LogRequest logs information about a received request
func LogRequest(op string, reqID string, clientAddr string) {
	log.Printf("SmallFS request: %s, ID: %s, Client: %s", op, reqID, clientAddr)
}

// LogResponse logs information about a response
func LogResponse(op string, reqID string, code codes.Code, duration string) {
	log.Printf("SmallFS response: %s, ID: %s, Status: %s, Duration: %s",
		op, reqID, code.String(), duration)
}

// LogError logs an error with its context
func LogError(op string, reqID string, err error) {
	log.Printf("SmallFS error: %s, ID: %s, Error: %v", op, reqID, err)
}
