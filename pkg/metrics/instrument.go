package metrics

import (
	"context"
	"time"

	"github.com/example/smallfs/pkg/fs"
)

// instrumented wraps a FileSystem and records every call.
type instrumented struct {
	next    fs.FileSystem
	metrics *Metrics
}

// Instrument returns a FileSystem that forwards to next and records
// each operation in m.
func Instrument(next fs.FileSystem, m *Metrics) fs.FileSystem {
	return &instrumented{next: next, metrics: m}
}

func (i *instrumented) GetAttr(ctx context.Context, path string) (fs.FileInfo, error) {
	start := time.Now()
	info, err := i.next.GetAttr(ctx, path)
	i.metrics.Observe("getattr", time.Since(start), err)
	return info, err
}

func (i *instrumented) ReadDir(ctx context.Context, dir string) ([]fs.DirEntry, error) {
	start := time.Now()
	entries, err := i.next.ReadDir(ctx, dir)
	i.metrics.Observe("readdir", time.Since(start), err)
	return entries, err
}

func (i *instrumented) Open(ctx context.Context, path string, mode fs.AccessMode) error {
	start := time.Now()
	err := i.next.Open(ctx, path, mode)
	i.metrics.Observe("open", time.Since(start), err)
	return err
}

func (i *instrumented) Read(ctx context.Context, path string, buf []byte, offset int64) (int, error) {
	start := time.Now()
	n, err := i.next.Read(ctx, path, buf, offset)
	i.metrics.Observe("read", time.Since(start), err)
	if n > 0 {
		i.metrics.BytesRead.WithLabelValues(path).Add(float64(n))
	}
	return n, err
}

func (i *instrumented) GetXattr(ctx context.Context, path string, name string, buf []byte) (int, error) {
	start := time.Now()
	n, err := i.next.GetXattr(ctx, path, name, buf)
	i.metrics.Observe("getxattr", time.Since(start), err)
	return n, err
}

func (i *instrumented) SetXattr(ctx context.Context, path string, name string, value []byte) error {
	start := time.Now()
	err := i.next.SetXattr(ctx, path, name, value)
	i.metrics.Observe("setxattr", time.Since(start), err)
	return err
}

func (i *instrumented) RemoveXattr(ctx context.Context, path string, name string) error {
	start := time.Now()
	err := i.next.RemoveXattr(ctx, path, name)
	i.metrics.Observe("removexattr", time.Since(start), err)
	return err
}

func (i *instrumented) ListXattr(ctx context.Context, path string) ([]string, error) {
	start := time.Now()
	names, err := i.next.ListXattr(ctx, path)
	i.metrics.Observe("listxattr", time.Since(start), err)
	return names, err
}
