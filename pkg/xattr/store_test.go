package xattr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSeedIsCopied(t *testing.T) {
	seed := map[string][]byte{"foo": []byte("bar")}
	s := NewStore(seed)
	seed["foo"][0] = 'X'

	v, err := s.Get("foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("bar"), v)
}

func TestSetGetRemove(t *testing.T) {
	s := NewStore(nil)

	_, err := s.Get("k")
	assert.True(t, errors.Is(err, ErrNoAttribute))

	s.Set("k", []byte("v1"))
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v)

	s.Set("k", []byte("v2"))
	v, _ = s.Get("k")
	assert.Equal(t, []byte("v2"), v)

	require.NoError(t, s.Remove("k"))
	_, err = s.Get("k")
	assert.True(t, errors.Is(err, ErrNoAttribute))
	assert.True(t, errors.Is(s.Remove("k"), ErrNoAttribute))
}

func TestValuesAreNotAliased(t *testing.T) {
	s := NewStore(nil)
	value := []byte("abc")
	s.Set("k", value)
	value[0] = 'z'

	got, _ := s.Get("k")
	got[1] = 'z'

	again, _ := s.Get("k")
	assert.Equal(t, []byte("abc"), again)
}

func TestList(t *testing.T) {
	s := NewStore(map[string][]byte{"b": nil, "a": []byte("1")})
	s.Set("c", []byte("3"))
	assert.Equal(t, []string{"a", "b", "c"}, s.List())

	assert.Empty(t, NewStore(nil).List())
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore(nil)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				name := fmt.Sprintf("k%d-%d", i, j%10)
				s.Set(name, []byte(name))
				if v, err := s.Get(name); err == nil && string(v) != name {
					return fmt.Errorf("value %q for %s", v, name)
				}
				s.List()
				_ = s.Remove(name)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
