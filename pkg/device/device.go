// Package device provides sector-granular access to the backing file of
// a smallfs volume.
package device

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// SectorSize is the fixed size of every addressable unit on the device.
const SectorSize = 512

// Device errors
var (
	ErrNotFound   = errors.New("device not found")
	ErrShortRead  = errors.New("short sector read")
	ErrSectorSize = errors.New("buffer is not one sector")
	ErrClosed     = errors.New("device is closed")
)

// Device is an open backing file treated as an array of SectorSize
// sectors. Reads and writes use positional I/O, so a Device may be
// shared between goroutines.
type Device struct {
	path string
	f    *os.File
}

// Open opens the backing file at path for reading and writing.
func Open(path string) (*Device, error) {
	return open(path, os.O_RDWR)
}

// OpenReadOnly opens the backing file at path without write access.
// WriteSector on the returned device always fails.
func OpenReadOnly(path string) (*Device, error) {
	return open(path, os.O_RDONLY)
}

func open(path string, flag int) (*Device, error) {
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open device %s: %w", path, err)
	}

	return &Device{path: path, f: f}, nil
}

// Path returns the path the device was opened with.
func (d *Device) Path() string {
	return d.path
}

// ReadSector reads the sector at index. Anything less than a full
// sector is reported as ErrShortRead.
func (d *Device) ReadSector(index int64) ([]byte, error) {
	if d.f == nil {
		return nil, ErrClosed
	}

	buf := make([]byte, SectorSize)
	n, err := d.f.ReadAt(buf, index*SectorSize)
	if n == SectorSize {
		// ReadAt may report io.EOF alongside a full read of the last sector.
		return buf, nil
	}
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sector %d read error: %w", index, err)
	}

	return nil, fmt.Errorf("sector %d: got %d of %d bytes: %w", index, n, SectorSize, ErrShortRead)
}

// WriteSector writes data, which must be exactly one sector long, at
// index.
func (d *Device) WriteSector(index int64, data []byte) error {
	if d.f == nil {
		return ErrClosed
	}
	if len(data) != SectorSize {
		return fmt.Errorf("sector %d: %d bytes: %w", index, len(data), ErrSectorSize)
	}

	if _, err := d.f.WriteAt(data, index*SectorSize); err != nil {
		return fmt.Errorf("sector %d write error: %w", index, err)
	}

	return nil
}

// Sectors returns the number of whole sectors in the backing file.
func (d *Device) Sectors() (int64, error) {
	if d.f == nil {
		return 0, ErrClosed
	}

	fi, err := d.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("device stat error: %w", err)
	}

	return fi.Size() / SectorSize, nil
}

// Flush forces written sectors to durable storage.
func (d *Device) Flush() error {
	if d.f == nil {
		return ErrClosed
	}

	if err := d.f.Sync(); err != nil {
		return fmt.Errorf("device sync error: %w", err)
	}

	return nil
}

// Close flushes the device and releases the backing file.
func (d *Device) Close() error {
	if d.f == nil {
		return ErrClosed
	}

	f := d.f
	d.f = nil

	syncErr := f.Sync()
	if err := f.Close(); err != nil {
		return fmt.Errorf("device close error: %w", err)
	}
	if syncErr != nil {
		return fmt.Errorf("device sync error: %w", syncErr)
	}

	return nil
}
