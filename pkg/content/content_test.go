package content

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestPatternByte(t *testing.T) {
	tests := []struct {
		offset int64
		want   byte
	}{
		{0, '\n'},
		{1, 'b'},
		{25, 'z'},
		{26, 'a'},
		{27, '\n'},
		{28, 'c'},
		{54, '\n'},
		{PatternSize - 1, PatternByte((PatternSize - 1) % (26 * 27))},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, PatternByte(tc.offset), "offset %d", tc.offset)
	}
}

func TestReadPatternWindow(t *testing.T) {
	buf := make([]byte, 3)
	n := ReadPattern(buf, 26)
	require.Equal(t, 3, n)
	assert.Equal(t, []byte{'a', '\n', 'c'}, buf)
}

func TestReadPatternDependsOnAbsoluteOffset(t *testing.T) {
	whole := make([]byte, 2000)
	require.Equal(t, len(whole), ReadPattern(whole, 0))

	for _, off := range []int64{0, 1, 26, 27, 100, 1000} {
		buf := make([]byte, 500)
		n := ReadPattern(buf, off)
		require.Equal(t, 500, n)
		assert.Equal(t, whole[off:off+500], buf, "offset %d", off)
	}
}

func TestReadPatternClipsAtEnd(t *testing.T) {
	buf := make([]byte, 10)
	assert.Equal(t, 4, ReadPattern(buf, PatternSize-4))
	assert.Equal(t, 0, ReadPattern(buf, PatternSize))
	assert.Equal(t, 0, ReadPattern(buf, PatternSize+100))
	assert.Equal(t, 0, ReadPattern(buf, -1))
}

func TestReadGreeting(t *testing.T) {
	buf := make([]byte, 100)
	n := ReadGreeting(buf, 0)
	assert.Equal(t, len(Greeting), n)
	assert.Equal(t, Greeting, string(buf[:n]))

	n = ReadGreeting(buf, 6)
	assert.Equal(t, "World!\n", string(buf[:n]))

	assert.Equal(t, 0, ReadGreeting(buf, int64(len(Greeting))))
	assert.Equal(t, 0, ReadGreeting(buf, 1<<40))
}

func TestMaterializedMatchesPattern(t *testing.T) {
	m := NewMaterialized(10000)
	assert.False(t, m.Generated())

	data := m.Bytes()
	require.Len(t, data, 10000)

	direct := make([]byte, 10000)
	ReadPattern(direct, 0)
	assert.Equal(t, direct, data)

	buf := make([]byte, 64)
	n := m.ReadAt(buf, 9990)
	assert.Equal(t, 10, n)
	assert.Equal(t, direct[9990:], buf[:n])
	assert.Equal(t, 0, m.ReadAt(buf, 10000))
}

func TestMaterializedGeneratesOnce(t *testing.T) {
	m := NewMaterialized(1 << 20)

	const callers = 16
	results := make([][]byte, callers)
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			buf := make([]byte, 4096)
			n := m.ReadAt(buf, 12345)
			results[i] = buf[:n]
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, m.Generations())
	for i := 1; i < callers; i++ {
		assert.True(t, bytes.Equal(results[0], results[i]), "caller %d", i)
	}
}

func TestMaterializedFullSizeAgreesWithFormula(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates the full pattern buffer")
	}

	m := NewMaterialized(PatternSize)
	for _, off := range []int64{0, 26, 27, PatternSize - 1} {
		want := make([]byte, 8)
		wn := ReadPattern(want, off)

		got := make([]byte, 8)
		gn := m.ReadAt(got, off)

		require.Equal(t, wn, gn, "offset %d", off)
		assert.Equal(t, want[:wn], got[:gn], "offset %d", off)
	}
	assert.Equal(t, 1, m.Generations())
}
