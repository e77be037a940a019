package fuse

import (
	"context"
	"path"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	vfs "github.com/example/smallfs/pkg/fs"
)

// Dir represents a directory in the filesystem
type Dir struct {
	node
}

var (
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
	_ fs.NodeGetxattrer     = (*Dir)(nil)
	_ fs.NodeListxattrer    = (*Dir)(nil)
	_ fs.NodeSetxattrer     = (*Dir)(nil)
	_ fs.NodeRemovexattrer  = (*Dir)(nil)
)

// Lookup looks up a specific entry in the directory
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	childPath := path.Join(d.path, name)
	d.fs.tracef("(Lookup %s)", childPath)

	info, err := d.fs.fileSystem.GetAttr(ctx, childPath)
	if err != nil {
		return nil, toErrno(err)
	}

	child := node{fs: d.fs, path: childPath}
	if info.IsDir() {
		return &Dir{child}, nil
	}
	return &File{child}, nil
}

// ReadDirAll returns all entries in the directory
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.tracef("(ReadDirAll %s)", d.path)

	entries, err := d.fs.fileSystem.ReadDir(ctx, d.path)
	if err != nil {
		return nil, toErrno(err)
	}

	dirents := make([]fuse.Dirent, 0, len(entries))
	for _, e := range entries {
		typ := fuse.DT_File
		if e.Type == vfs.FileTypeDirectory {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{Name: e.Name, Type: typ})
	}
	return dirents, nil
}
