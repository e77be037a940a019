package fs

import (
	"context"
)

// FileSystem defines the operations the FUSE adapter and the inspection
// server use to query a mounted volume. Paths are absolute and
// slash-separated, with "/" naming the root directory.
// Implementations must be safe for concurrent use.
type FileSystem interface {
	// GetAttr retrieves attributes for the file at the specified path.
	GetAttr(ctx context.Context, path string) (FileInfo, error)

	// ReadDir lists the directory at the specified path, including
	// the "." and ".." entries.
	ReadDir(ctx context.Context, dir string) ([]DirEntry, error)

	// Open checks that the file at the specified path may be opened
	// with the given access mode.
	Open(ctx context.Context, path string, mode AccessMode) error

	// Read copies file data starting at offset into buf.
	// Returns the number of bytes copied; reading at or past the end of
	// the file copies nothing and is not an error.
	Read(ctx context.Context, path string, buf []byte, offset int64) (int, error)

	// GetXattr copies the value of the named extended attribute into buf.
	// Returns the value length, or ErrRange if buf is too small.
	GetXattr(ctx context.Context, path string, name string, buf []byte) (int, error)

	// SetXattr creates or replaces the named extended attribute.
	SetXattr(ctx context.Context, path string, name string, value []byte) error

	// RemoveXattr removes the named extended attribute.
	RemoveXattr(ctx context.Context, path string, name string) error

	// ListXattr returns the names of the extended attributes of path.
	ListXattr(ctx context.Context, path string) ([]string, error)
}

// MaxXattrSize is the largest extended attribute value the kernel accepts.
const MaxXattrSize = 64 * 1024
