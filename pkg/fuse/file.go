package fuse

import (
	"context"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	vfs "github.com/example/smallfs/pkg/fs"
)

// File represents a file in the filesystem. A File is its own handle.
type File struct {
	node
}

var (
	_ fs.Node              = (*File)(nil)
	_ fs.NodeOpener        = (*File)(nil)
	_ fs.HandleReader      = (*File)(nil)
	_ fs.NodeGetxattrer    = (*File)(nil)
	_ fs.NodeListxattrer   = (*File)(nil)
	_ fs.NodeSetxattrer    = (*File)(nil)
	_ fs.NodeRemovexattrer = (*File)(nil)
)

// Open checks the requested access mode against the file
func (f *File) Open(ctx context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fs.Handle, error) {
	f.fs.tracef("(Open %s Flags=%v)", f.path, req.Flags)

	if err := f.fs.fileSystem.Open(ctx, f.path, accessMode(req.Flags)); err != nil {
		return nil, toErrno(err)
	}

	// Content never changes while mounted.
	resp.Flags |= fuse.OpenKeepCache
	return f, nil
}

// accessMode extracts the access mode from open flags
func accessMode(flags fuse.OpenFlags) vfs.AccessMode {
	switch flags & fuse.OpenAccessModeMask {
	case fuse.OpenReadOnly:
		return vfs.AccessReadOnly
	case fuse.OpenWriteOnly:
		return vfs.AccessWriteOnly
	default:
		return vfs.AccessReadWrite
	}
}

// Read reads the requested window of the file
func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	f.fs.tracef("(Read %s offset=%d size=%d)", f.path, req.Offset, req.Size)

	buf := make([]byte, req.Size)
	n, err := f.fs.fileSystem.Read(ctx, f.path, buf, req.Offset)
	if err != nil {
		return toErrno(err)
	}

	resp.Data = buf[:n]
	return nil
}
