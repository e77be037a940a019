package content

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// Materialized is the pattern computed once in full and shared by all
// readers. The first access generates it; concurrent first accesses
// wait for that single generation. The buffer is never written again.
type Materialized struct {
	size        int64
	once        sync.Once
	data        []byte
	generations atomic.Int32
}

// NewMaterialized returns a lazily generated pattern buffer of size
// bytes. Nothing is allocated until the first read.
func NewMaterialized(size int64) *Materialized {
	return &Materialized{size: size}
}

// Size returns the size of the buffer.
func (m *Materialized) Size() int64 {
	return m.size
}

// Bytes returns the generated buffer, generating it on first use.
// Callers must not modify the result.
func (m *Materialized) Bytes() []byte {
	m.once.Do(m.generate)
	return m.data
}

// ReadAt copies the window starting at off into buf and returns the
// number of bytes copied. Reads past the end copy nothing.
func (m *Materialized) ReadAt(buf []byte, off int64) int {
	return readWindow(m.Bytes(), buf, off)
}

// Generated reports whether the buffer has been generated.
func (m *Materialized) Generated() bool {
	return m.generations.Load() > 0
}

// Generations returns how many times the buffer has been generated.
func (m *Materialized) Generations() int {
	return int(m.generations.Load())
}

func (m *Materialized) generate() {
	start := time.Now()
	data := make([]byte, m.size)
	for i := range data {
		data[i] = PatternByte(int64(i))
	}
	m.data = data
	m.generations.Add(1)
	log.Printf("Materialized %s pattern buffer in %v", humanize.Bytes(uint64(m.size)), time.Since(start))
}
