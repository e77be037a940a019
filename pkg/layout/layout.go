// Package layout describes the on-disk format of a smallfs volume and
// decodes its directory sector.
//
// A volume is an array of device.SectorSize sectors. Sector MapSector
// holds the allocation map and sector DirectorySector holds the root
// directory: MaxRootEntries fixed-width records, each a NameLen-byte
// zero-padded name followed by AllocLen allocation bytes.
package layout

import "github.com/example/smallfs/pkg/device"

const (
	// SectorSize is the size of one on-disk sector.
	SectorSize = device.SectorSize

	// NameLen is the width of the name field of a directory entry.
	NameLen = 6

	// AllocLen is the width of the allocation field of a directory
	// entry, one byte per sector index.
	AllocLen = 26

	// EntrySize is the width of one directory entry.
	EntrySize = NameLen + AllocLen

	// MaxRootEntries is the number of entry slots in the directory sector.
	MaxRootEntries = SectorSize / EntrySize

	// MaxMapEntries is the number of slots in the allocation map.
	MaxMapEntries = 256

	// MaxFileSize is the largest file an allocation field can describe.
	MaxFileSize = AllocLen * SectorSize

	// MapSector is the sector index of the allocation map.
	MapSector = 1

	// DirectorySector is the sector index of the root directory.
	DirectorySector = 2
)
