package layout

import "fmt"

// AllocationMap is the raw allocation-map sector. Its contents are
// retained but not interpreted; a volume only needs the sector to be
// readable.
type AllocationMap struct {
	raw [SectorSize]byte
}

// DecodeAllocationMap copies an allocation-map sector.
func DecodeAllocationMap(sector []byte) (*AllocationMap, error) {
	if len(sector) != SectorSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrSectorSize, len(sector))
	}

	m := &AllocationMap{}
	copy(m.raw[:], sector)
	return m, nil
}

// Bytes returns a copy of the sector.
func (m *AllocationMap) Bytes() []byte {
	b := make([]byte, SectorSize)
	copy(b, m.raw[:])
	return b
}
