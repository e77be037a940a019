package layout

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

var (
	ErrSectorSize = errors.New("directory sector must be one sector long")
	ErrNameLength = errors.New("entry name must be 1 to 6 bytes")
	ErrSlot       = errors.New("entry slot out of range")
)

// Allocation is the raw allocation field of a directory entry.
type Allocation [AllocLen]byte

// Sectors returns the populated sector indices in order. A zero byte
// marks an unused slot.
func (a Allocation) Sectors() []uint8 {
	var sectors []uint8
	for _, s := range a {
		if s != 0 {
			sectors = append(sectors, s)
		}
	}
	return sectors
}

// Entry is one decoded directory record.
type Entry struct {
	Name       string
	Allocation Allocation
}

// Directory is the decoded root directory. Names keep the order in
// which they were first seen in the sector.
type Directory struct {
	entries *linkedhashmap.Map // map[string]Allocation
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{entries: linkedhashmap.New()}
}

// DecodeDirectory decodes a directory sector. Slots whose first byte is
// zero are empty and skipped. When a name repeats, the later record's
// allocation replaces the earlier one.
func DecodeDirectory(sector []byte) (*Directory, error) {
	if len(sector) != SectorSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrSectorSize, len(sector))
	}

	dir := NewDirectory()
	for off := 0; off+EntrySize <= len(sector); off += EntrySize {
		record := sector[off : off+EntrySize]
		if record[0] == 0 {
			continue
		}

		var alloc Allocation
		copy(alloc[:], record[NameLen:])
		dir.entries.Put(decodeName(record[:NameLen]), alloc)
	}

	return dir, nil
}

// decodeName returns the name field up to its first NUL byte.
func decodeName(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return d.entries.Size()
}

// Names returns the entry names in scan order.
func (d *Directory) Names() []string {
	names := make([]string, 0, d.entries.Size())
	d.entries.Each(func(key, _ interface{}) {
		names = append(names, key.(string))
	})
	return names
}

// Lookup returns the allocation recorded for name.
func (d *Directory) Lookup(name string) (Allocation, bool) {
	v, ok := d.entries.Get(name)
	if !ok {
		return Allocation{}, false
	}
	return v.(Allocation), true
}

// Entries returns all entries in scan order.
func (d *Directory) Entries() []Entry {
	entries := make([]Entry, 0, d.entries.Size())
	d.entries.Each(func(key, value interface{}) {
		entries = append(entries, Entry{Name: key.(string), Allocation: value.(Allocation)})
	})
	return entries
}

// PutEntry encodes e into the given slot of a directory sector.
func PutEntry(sector []byte, slot int, e Entry) error {
	if len(sector) != SectorSize {
		return fmt.Errorf("%w: got %d bytes", ErrSectorSize, len(sector))
	}
	if slot < 0 || slot >= MaxRootEntries {
		return fmt.Errorf("%w: %d", ErrSlot, slot)
	}
	if len(e.Name) == 0 || len(e.Name) > NameLen {
		return fmt.Errorf("%w: %q", ErrNameLength, e.Name)
	}

	record := sector[slot*EntrySize : (slot+1)*EntrySize]
	clear(record)
	copy(record[:NameLen], e.Name)
	copy(record[NameLen:], e.Allocation[:])
	return nil
}

// EncodeDirectory builds a directory sector holding entries in
// consecutive slots.
func EncodeDirectory(entries []Entry) ([]byte, error) {
	if len(entries) > MaxRootEntries {
		return nil, fmt.Errorf("%w: %d entries", ErrSlot, len(entries))
	}

	sector := make([]byte, SectorSize)
	for i, e := range entries {
		if err := PutEntry(sector, i, e); err != nil {
			return nil, err
		}
	}
	return sector, nil
}
