package fuse

import (
	"log"

	"bazil.org/fuse/fs"

	vfs "github.com/example/smallfs/pkg/fs"
)

// SmallFS implements the FUSE filesystem interface on top of a
// vfs.FileSystem. Nodes are addressed by path.
type SmallFS struct {
	fileSystem vfs.FileSystem
	debug      bool
}

// NewSmallFS creates a new FUSE filesystem serving fileSystem
func NewSmallFS(fileSystem vfs.FileSystem, debug bool) *SmallFS {
	return &SmallFS{fileSystem: fileSystem, debug: debug}
}

// Root returns the root directory of the filesystem
func (s *SmallFS) Root() (fs.Node, error) {
	return &Dir{node{fs: s, path: "/"}}, nil
}

// tracef logs a request line when debugging is enabled
func (s *SmallFS) tracef(format string, args ...interface{}) {
	if s.debug {
		log.Printf(format, args...)
	}
}
