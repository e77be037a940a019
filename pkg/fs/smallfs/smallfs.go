// Package smallfs serves a smallfs volume: three synthetic files next
// to the names recorded in the volume's directory sector.
package smallfs

import (
	"context"

	"github.com/example/smallfs/pkg/content"
	"github.com/example/smallfs/pkg/fs"
	"github.com/example/smallfs/pkg/xattr"
)

// Paths served without device backing.
const (
	RootPath          = "/"
	GreetingPath      = "/hello"
	PatternPath       = "/data"
	CachedPatternPath = "/data.im"
)

// Options configures a FileSystem.
type Options struct {
	// DevicePath is the backing file of the volume.
	DevicePath string

	// CachedPattern exposes CachedPatternPath, the pattern served from
	// a buffer materialized on first read.
	CachedPattern bool

	// Attributes seeds the greeting's extended attributes. Nil uses
	// DefaultAttributes.
	Attributes map[string][]byte
}

// DefaultAttributes returns the attributes the greeting starts with.
func DefaultAttributes() map[string][]byte {
	return map[string][]byte{"foo": []byte("bar")}
}

// FileSystem implements fs.FileSystem for one volume.
type FileSystem struct {
	session       *Session
	cachedPattern bool
}

var _ fs.FileSystem = (*FileSystem)(nil)

// NewFileSystem opens the volume described by opts.
func NewFileSystem(opts Options) (*FileSystem, error) {
	attrs := opts.Attributes
	if attrs == nil {
		attrs = DefaultAttributes()
	}

	session, err := OpenSession(opts.DevicePath, attrs)
	if err != nil {
		return nil, err
	}

	return New(session, opts.CachedPattern), nil
}

// New returns a FileSystem serving session. The FileSystem takes
// ownership of the session.
func New(session *Session, cachedPattern bool) *FileSystem {
	return &FileSystem{
		session:       session,
		cachedPattern: cachedPattern,
	}
}

// Session returns the session the filesystem serves.
func (f *FileSystem) Session() *Session {
	return f.session
}

// Close releases the volume.
func (f *FileSystem) Close() error {
	return f.session.Close()
}

// GetAttr retrieves attributes for the file at the specified path.
// Paths that name nothing are reported as empty read-only files.
func (f *FileSystem) GetAttr(ctx context.Context, path string) (fs.FileInfo, error) {
	info := fs.FileInfo{
		Type:       fs.FileTypeRegular,
		Mode:       0444,
		Nlink:      1,
		ModifyTime: f.session.openedAt,
	}

	switch path {
	case RootPath:
		info.Type = fs.FileTypeDirectory
		info.Mode = 0755
		info.Nlink = 2
	case GreetingPath:
		info.Size = int64(len(content.Greeting))
	case PatternPath, CachedPatternPath:
		info.Size = content.PatternSize
	}

	return info, nil
}

// ReadDir lists the root directory.
func (f *FileSystem) ReadDir(ctx context.Context, dir string) ([]fs.DirEntry, error) {
	if dir != RootPath {
		return nil, fs.NewError("ReadDir", dir, fs.ErrNotExist)
	}

	entries := []fs.DirEntry{
		{Name: ".", Type: fs.FileTypeDirectory},
		{Name: "..", Type: fs.FileTypeDirectory},
		{Name: GreetingPath[1:], Type: fs.FileTypeRegular},
		{Name: PatternPath[1:], Type: fs.FileTypeRegular},
	}
	if f.cachedPattern {
		entries = append(entries, fs.DirEntry{Name: CachedPatternPath[1:], Type: fs.FileTypeRegular})
	}
	for _, name := range f.session.directory.Names() {
		entries = append(entries, fs.DirEntry{Name: name, Type: fs.FileTypeRegular})
	}

	return entries, nil
}

// Open allows read-only opens of the synthetic files.
func (f *FileSystem) Open(ctx context.Context, path string, mode fs.AccessMode) error {
	if !f.servesFile(path) {
		return fs.NewError("Open", path, fs.ErrNotExist)
	}
	if mode != fs.AccessReadOnly {
		return fs.NewError("Open", path, fs.ErrPermission)
	}
	return nil
}

// Read copies file data starting at offset into buf.
func (f *FileSystem) Read(ctx context.Context, path string, buf []byte, offset int64) (int, error) {
	if !f.servesFile(path) {
		return 0, fs.NewError("Read", path, fs.ErrNotExist)
	}
	if offset < 0 {
		return 0, fs.NewError("Read", path, fs.ErrInvalidArgument)
	}

	switch path {
	case GreetingPath:
		return content.ReadGreeting(buf, offset), nil
	case PatternPath:
		return content.ReadPattern(buf, offset), nil
	default:
		return f.session.pattern.ReadAt(buf, offset), nil
	}
}

// servesFile reports whether path is a file with readable content.
func (f *FileSystem) servesFile(path string) bool {
	switch path {
	case GreetingPath, PatternPath:
		return true
	case CachedPatternPath:
		return f.cachedPattern
	default:
		return false
	}
}

// GetXattr copies the value of an attribute of the greeting into buf.
// Other paths have no attributes and read as empty.
func (f *FileSystem) GetXattr(ctx context.Context, path string, name string, buf []byte) (int, error) {
	if path != GreetingPath {
		return 0, nil
	}

	value, err := f.session.attrs.Get(name)
	if err != nil {
		return 0, fs.NewError("GetXattr", path, fs.ErrNoAttribute)
	}
	if len(buf) < len(value) {
		return 0, fs.NewError("GetXattr", path, fs.ErrRange)
	}

	return copy(buf, value), nil
}

// SetXattr sets an attribute of the greeting. Other paths have no room
// for attributes.
func (f *FileSystem) SetXattr(ctx context.Context, path string, name string, value []byte) error {
	if path != GreetingPath {
		return fs.NewError("SetXattr", path, fs.ErrNoAttributeSpace)
	}

	f.session.attrs.Set(name, value)
	return nil
}

// RemoveXattr removes an attribute of the greeting.
func (f *FileSystem) RemoveXattr(ctx context.Context, path string, name string) error {
	if path != GreetingPath {
		return fs.NewError("RemoveXattr", path, fs.ErrNoAttribute)
	}

	if err := f.session.attrs.Remove(name); err != nil {
		if err == xattr.ErrNoAttribute {
			err = fs.ErrNoAttribute
		}
		return fs.NewError("RemoveXattr", path, err)
	}
	return nil
}

// ListXattr lists the attributes of the greeting. Other paths list none.
func (f *FileSystem) ListXattr(ctx context.Context, path string) ([]string, error) {
	if path != GreetingPath {
		return []string{}, nil
	}
	return f.session.attrs.List(), nil
}
