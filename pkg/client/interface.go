package client

import (
	"context"
	"time"

	"github.com/example/smallfs/pkg/fs"
)

// FSClient defines the read-only operations of the inspection service
type FSClient interface {
	// GetAttr retrieves attributes for a file or directory
	GetAttr(ctx context.Context, path string) (fs.FileInfo, error)

	// ReadDir reads the contents of a directory, including "." and ".."
	ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error)

	// Read opens a file read-only and reads up to count bytes at offset.
	// The server may return fewer bytes than requested.
	Read(ctx context.Context, path string, offset int64, count int) ([]byte, error)

	// ListXattr lists the extended attribute names of a path
	ListXattr(ctx context.Context, path string) ([]string, error)

	// GetXattr returns the value of an extended attribute
	GetXattr(ctx context.Context, path string, name string) ([]byte, error)

	// Close closes the client connection and releases all resources
	Close() error
}

// CacheableClient extends FSClient with cache management capabilities
type CacheableClient interface {
	FSClient

	// ClearCache clears all cached attributes
	ClearCache()

	// SetCacheTTL sets the time-to-live for cache entries
	SetCacheTTL(duration time.Duration)
}
