package smallfs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/example/smallfs/pkg/content"
	"github.com/example/smallfs/pkg/device"
	"github.com/example/smallfs/pkg/fs"
	"github.com/example/smallfs/pkg/layout"
)

// createTestImage writes a four-sector volume whose directory sector
// holds the given entries, and returns its path.
func createTestImage(t *testing.T, dir string, entries ...layout.Entry) string {
	t.Helper()

	image := make([]byte, 4*device.SectorSize)
	sector, err := layout.EncodeDirectory(entries)
	if err != nil {
		t.Fatalf("Failed to encode directory: %v", err)
	}
	copy(image[layout.DirectorySector*device.SectorSize:], sector)

	path := filepath.Join(dir, "disk.img")
	if err := os.WriteFile(path, image, 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}
	return path
}

// setupTestFS creates a temporary volume and opens a FileSystem on it.
func setupTestFS(t *testing.T, cachedPattern bool, entries ...layout.Entry) (*FileSystem, func()) {
	tempDir, err := os.MkdirTemp("", "smallfs-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	fsys, err := NewFileSystem(Options{
		DevicePath:    createTestImage(t, tempDir, entries...),
		CachedPattern: cachedPattern,
	})
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to create FileSystem: %v", err)
	}

	cleanup := func() {
		fsys.Close()
		os.RemoveAll(tempDir)
	}
	return fsys, cleanup
}

func TestFileSystem_Interface(t *testing.T) {
	var _ fs.FileSystem = (*FileSystem)(nil)
}

func TestFileSystem_Init(t *testing.T) {
	tempDir := t.TempDir()

	// Missing device
	_, err := NewFileSystem(Options{DevicePath: filepath.Join(tempDir, "missing.img")})
	if !errors.Is(err, fs.ErrDeviceUnavailable) {
		t.Errorf("Expected ErrDeviceUnavailable for missing device, got %v", err)
	}
	if !errors.Is(err, device.ErrNotFound) {
		t.Errorf("Expected device.ErrNotFound in chain, got %v", err)
	}

	// Device too small to hold the directory sector
	small := filepath.Join(tempDir, "small.img")
	if err := os.WriteFile(small, make([]byte, 2*device.SectorSize+10), 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}
	_, err = NewFileSystem(Options{DevicePath: small})
	if !errors.Is(err, fs.ErrDeviceUnavailable) || !errors.Is(err, device.ErrShortRead) {
		t.Errorf("Expected short read during init, got %v", err)
	}

	// Device without an allocation map sector
	tiny := filepath.Join(tempDir, "tiny.img")
	if err := os.WriteFile(tiny, make([]byte, device.SectorSize), 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}
	if _, err := NewFileSystem(Options{DevicePath: tiny}); !errors.Is(err, device.ErrShortRead) {
		t.Errorf("Expected short read for missing allocation map, got %v", err)
	}
}

func TestFileSystem_GetAttr(t *testing.T) {
	fsys, cleanup := setupTestFS(t, false)
	defer cleanup()

	tests := []struct {
		path  string
		typ   fs.FileType
		mode  fs.FileMode
		nlink uint32
		size  int64
	}{
		{"/", fs.FileTypeDirectory, 0755, 2, 0},
		{"/hello", fs.FileTypeRegular, 0444, 1, 13},
		{"/data", fs.FileTypeRegular, 0444, 1, content.PatternSize},
		{"/data.im", fs.FileTypeRegular, 0444, 1, content.PatternSize},
		{"/nonexistent", fs.FileTypeRegular, 0444, 1, 0},
		{"/a/b/c", fs.FileTypeRegular, 0444, 1, 0},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			info, err := fsys.GetAttr(context.Background(), tc.path)
			if err != nil {
				t.Fatalf("GetAttr failed: %v", err)
			}
			if info.Type != tc.typ {
				t.Errorf("Type = %v, want %v", info.Type, tc.typ)
			}
			if info.Mode != tc.mode {
				t.Errorf("Mode = %o, want %o", info.Mode, tc.mode)
			}
			if info.Nlink != tc.nlink {
				t.Errorf("Nlink = %d, want %d", info.Nlink, tc.nlink)
			}
			if info.Size != tc.size {
				t.Errorf("Size = %d, want %d", info.Size, tc.size)
			}
		})
	}
}

func TestFileSystem_ReadDir(t *testing.T) {
	t.Run("device entry", func(t *testing.T) {
		fsys, cleanup := setupTestFS(t, false, layout.Entry{Name: "abc"})
		defer cleanup()

		entries, err := fsys.ReadDir(context.Background(), "/")
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		want := []string{".", "..", "hello", "data", "abc"}
		if got := entryNames(entries); !reflect.DeepEqual(got, want) {
			t.Errorf("ReadDir names = %v, want %v", got, want)
		}
	})

	t.Run("cached pattern enabled", func(t *testing.T) {
		fsys, cleanup := setupTestFS(t, true, layout.Entry{Name: "one"}, layout.Entry{Name: "two"})
		defer cleanup()

		entries, err := fsys.ReadDir(context.Background(), "/")
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		want := []string{".", "..", "hello", "data", "data.im", "one", "two"}
		if got := entryNames(entries); !reflect.DeepEqual(got, want) {
			t.Errorf("ReadDir names = %v, want %v", got, want)
		}
		if entries[0].Type != fs.FileTypeDirectory || entries[2].Type != fs.FileTypeRegular {
			t.Errorf("Unexpected entry types: %+v", entries)
		}
	})

	t.Run("non-root", func(t *testing.T) {
		fsys, cleanup := setupTestFS(t, false)
		defer cleanup()

		for _, dir := range []string{"/hello", "/abc", ""} {
			if _, err := fsys.ReadDir(context.Background(), dir); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("ReadDir(%q) error = %v, want ErrNotExist", dir, err)
			}
		}
	})
}

func entryNames(entries []fs.DirEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestFileSystem_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("cached pattern disabled", func(t *testing.T) {
		fsys, cleanup := setupTestFS(t, false, layout.Entry{Name: "abc"})
		defer cleanup()

		tests := []struct {
			path string
			mode fs.AccessMode
			want error
		}{
			{"/hello", fs.AccessReadOnly, nil},
			{"/data", fs.AccessReadOnly, nil},
			{"/data.im", fs.AccessReadOnly, fs.ErrNotExist},
			{"/abc", fs.AccessReadOnly, fs.ErrNotExist},
			{"/", fs.AccessReadOnly, fs.ErrNotExist},
			{"/hello", fs.AccessWriteOnly, fs.ErrPermission},
			{"/data", fs.AccessReadWrite, fs.ErrPermission},
			{"/missing", fs.AccessReadWrite, fs.ErrNotExist},
		}
		for _, tc := range tests {
			err := fsys.Open(ctx, tc.path, tc.mode)
			if tc.want == nil && err != nil {
				t.Errorf("Open(%s, %v) failed: %v", tc.path, tc.mode, err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("Open(%s, %v) error = %v, want %v", tc.path, tc.mode, err, tc.want)
			}
		}
	})

	t.Run("cached pattern enabled", func(t *testing.T) {
		fsys, cleanup := setupTestFS(t, true)
		defer cleanup()

		if err := fsys.Open(ctx, "/data.im", fs.AccessReadOnly); err != nil {
			t.Errorf("Open(/data.im) failed: %v", err)
		}
		if err := fsys.Open(ctx, "/data.im", fs.AccessWriteOnly); !errors.Is(err, fs.ErrPermission) {
			t.Errorf("Open(/data.im, O_WRONLY) error = %v, want ErrPermission", err)
		}
	})
}

func TestFileSystem_Read(t *testing.T) {
	fsys, cleanup := setupTestFS(t, false, layout.Entry{Name: "abc"})
	defer cleanup()
	ctx := context.Background()

	testCases := []struct {
		name     string
		path     string
		offset   int64
		size     int
		wantData string
	}{
		{"Greeting whole", "/hello", 0, 100, "Hello World!\n"},
		{"Greeting middle", "/hello", 6, 5, "World"},
		{"Greeting past end", "/hello", 13, 10, ""},
		{"Pattern window", "/data", 26, 3, "a\nc"},
		{"Pattern start", "/data", 0, 4, "\nbcd"},
		{"Pattern at end", "/data", content.PatternSize - 2, 10, string([]byte{content.PatternByte(content.PatternSize - 2), content.PatternByte(content.PatternSize - 1)})},
		{"Pattern past end", "/data", content.PatternSize, 10, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, tc.size)
			n, err := fsys.Read(ctx, tc.path, buf, tc.offset)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if n != len(tc.wantData) {
				t.Errorf("Read length = %d, want %d", n, len(tc.wantData))
			}
			if got := string(buf[:n]); got != tc.wantData {
				t.Errorf("Read data = %q, want %q", got, tc.wantData)
			}
		})
	}

	for _, path := range []string{"/", "/abc", "/data.im", "/missing"} {
		if _, err := fsys.Read(ctx, path, make([]byte, 10), 0); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Read(%s) error = %v, want ErrNotExist", path, err)
		}
	}

	if _, err := fsys.Read(ctx, "/hello", make([]byte, 10), -1); !errors.Is(err, fs.ErrInvalidArgument) {
		t.Errorf("Read with negative offset error = %v, want ErrInvalidArgument", err)
	}
}

func TestFileSystem_ReadCachedPattern(t *testing.T) {
	if testing.Short() {
		t.Skip("materializes the full pattern buffer")
	}

	fsys, cleanup := setupTestFS(t, true)
	defer cleanup()
	ctx := context.Background()

	const readers = 8
	offsets := []int64{0, 26, 27, 12345, content.PatternSize - 3}

	var wg sync.WaitGroup
	errs := make(chan error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, off := range offsets {
				cached := make([]byte, 16)
				cn, err := fsys.Read(ctx, "/data.im", cached, off)
				if err != nil {
					errs <- err
					return
				}
				live := make([]byte, 16)
				ln, _ := fsys.Read(ctx, "/data", live, off)
				if cn != ln || !bytes.Equal(cached[:cn], live[:ln]) {
					errs <- errors.New("cached and live pattern differ")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	if got := fsys.Session().pattern.Generations(); got != 1 {
		t.Errorf("Pattern generated %d times, want 1", got)
	}
}

func TestFileSystem_Xattr(t *testing.T) {
	fsys, cleanup := setupTestFS(t, false)
	defer cleanup()
	ctx := context.Background()

	// Seeded attribute
	buf := make([]byte, 16)
	n, err := fsys.GetXattr(ctx, "/hello", "foo", buf)
	if err != nil || string(buf[:n]) != "bar" {
		t.Errorf("GetXattr(foo) = %q, %v; want \"bar\"", buf[:n], err)
	}

	// Round trip
	if err := fsys.SetXattr(ctx, "/hello", "k", []byte("value")); err != nil {
		t.Fatalf("SetXattr failed: %v", err)
	}
	n, err = fsys.GetXattr(ctx, "/hello", "k", buf)
	if err != nil || string(buf[:n]) != "value" {
		t.Errorf("GetXattr(k) = %q, %v; want \"value\"", buf[:n], err)
	}

	names, err := fsys.ListXattr(ctx, "/hello")
	if err != nil || !reflect.DeepEqual(names, []string{"foo", "k"}) {
		t.Errorf("ListXattr = %v, %v; want [foo k]", names, err)
	}

	// Buffer too small
	if _, err := fsys.GetXattr(ctx, "/hello", "k", make([]byte, 2)); !errors.Is(err, fs.ErrRange) {
		t.Errorf("GetXattr with small buffer error = %v, want ErrRange", err)
	}

	// Remove then get
	if err := fsys.RemoveXattr(ctx, "/hello", "k"); err != nil {
		t.Fatalf("RemoveXattr failed: %v", err)
	}
	if _, err := fsys.GetXattr(ctx, "/hello", "k", buf); !errors.Is(err, fs.ErrNoAttribute) {
		t.Errorf("GetXattr after remove error = %v, want ErrNoAttribute", err)
	}
	if err := fsys.RemoveXattr(ctx, "/hello", "k"); !errors.Is(err, fs.ErrNoAttribute) {
		t.Errorf("RemoveXattr of absent attribute error = %v, want ErrNoAttribute", err)
	}
}

func TestFileSystem_XattrOtherPaths(t *testing.T) {
	fsys, cleanup := setupTestFS(t, true, layout.Entry{Name: "abc"})
	defer cleanup()
	ctx := context.Background()

	for _, path := range []string{"/", "/data", "/data.im", "/abc", "/missing"} {
		if err := fsys.SetXattr(ctx, path, "k", []byte("v")); !errors.Is(err, fs.ErrNoAttributeSpace) {
			t.Errorf("SetXattr(%s) error = %v, want ErrNoAttributeSpace", path, err)
		}
		n, err := fsys.GetXattr(ctx, path, "foo", make([]byte, 16))
		if n != 0 || err != nil {
			t.Errorf("GetXattr(%s) = %d, %v; want 0, nil", path, n, err)
		}
		names, err := fsys.ListXattr(ctx, path)
		if len(names) != 0 || err != nil {
			t.Errorf("ListXattr(%s) = %v, %v; want empty", path, names, err)
		}
		if err := fsys.RemoveXattr(ctx, path, "foo"); !errors.Is(err, fs.ErrNoAttribute) {
			t.Errorf("RemoveXattr(%s) error = %v, want ErrNoAttribute", path, err)
		}
	}
}

func TestFileSystem_CustomAttributes(t *testing.T) {
	tempDir := t.TempDir()
	fsys, err := NewFileSystem(Options{
		DevicePath: createTestImage(t, tempDir),
		Attributes: map[string][]byte{"user.a": []byte("1")},
	})
	if err != nil {
		t.Fatalf("NewFileSystem failed: %v", err)
	}
	defer fsys.Close()

	names, _ := fsys.ListXattr(context.Background(), "/hello")
	if !reflect.DeepEqual(names, []string{"user.a"}) {
		t.Errorf("ListXattr = %v, want [user.a]", names)
	}
}

func TestSession_DecodedState(t *testing.T) {
	var alloc layout.Allocation
	alloc[0] = 5
	fsys, cleanup := setupTestFS(t, false, layout.Entry{Name: "abc", Allocation: alloc})
	defer cleanup()

	s := fsys.Session()
	got, ok := s.Directory().Lookup("abc")
	if !ok || got != alloc {
		t.Errorf("Directory lookup = %v, %v", got, ok)
	}
	if len(s.AllocationMap().Bytes()) != device.SectorSize {
		t.Errorf("Allocation map not retained")
	}
}
