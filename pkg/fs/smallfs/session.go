package smallfs

import (
	"fmt"
	"log"
	"time"

	"github.com/example/smallfs/pkg/content"
	"github.com/example/smallfs/pkg/device"
	"github.com/example/smallfs/pkg/fs"
	"github.com/example/smallfs/pkg/layout"
	"github.com/example/smallfs/pkg/xattr"
)

// Session is the state of one mounted volume: the open device, the
// sectors decoded from it at startup, the greeting's attribute map and
// the lazily materialized pattern. It is built once, before any request
// is served, and the device and directory are read-only afterwards.
type Session struct {
	device    *device.Device
	allocMap  *layout.AllocationMap
	directory *layout.Directory
	attrs     *xattr.Store
	pattern   *content.Materialized
	openedAt  time.Time
}

// OpenSession opens the device at devicePath and decodes its allocation
// map and directory sectors. Any failure leaves nothing open.
func OpenSession(devicePath string, attrs map[string][]byte) (*Session, error) {
	log.Printf("Device: %s", devicePath)

	dev, err := device.Open(devicePath)
	if err != nil {
		return nil, fs.NewError("init", devicePath, fmt.Errorf("%w: %w", fs.ErrDeviceUnavailable, err))
	}

	s, err := newSession(dev, attrs)
	if err != nil {
		dev.Close()
		return nil, fs.NewError("init", devicePath, fmt.Errorf("%w: %w", fs.ErrDeviceUnavailable, err))
	}

	log.Printf("Decoded %d directory entries from %s", s.directory.Len(), devicePath)
	return s, nil
}

func newSession(dev *device.Device, attrs map[string][]byte) (*Session, error) {
	mapSector, err := dev.ReadSector(layout.MapSector)
	if err != nil {
		return nil, fmt.Errorf("reading allocation map: %w", err)
	}
	allocMap, err := layout.DecodeAllocationMap(mapSector)
	if err != nil {
		return nil, err
	}

	dirSector, err := dev.ReadSector(layout.DirectorySector)
	if err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}
	directory, err := layout.DecodeDirectory(dirSector)
	if err != nil {
		return nil, err
	}

	return &Session{
		device:    dev,
		allocMap:  allocMap,
		directory: directory,
		attrs:     xattr.NewStore(attrs),
		pattern:   content.NewMaterialized(content.PatternSize),
		openedAt:  time.Now(),
	}, nil
}

// Directory returns the decoded root directory.
func (s *Session) Directory() *layout.Directory {
	return s.directory
}

// AllocationMap returns the raw allocation-map sector.
func (s *Session) AllocationMap() *layout.AllocationMap {
	return s.allocMap
}

// Close flushes and releases the device.
func (s *Session) Close() error {
	return s.device.Close()
}
