package fuse

import (
	"context"
	"os"

	"bazil.org/fuse"

	vfs "github.com/example/smallfs/pkg/fs"
)

// node carries what every FUSE node needs: the filesystem and the path
// it answers for. Attributes and extended attributes are the same for
// files and directories.
type node struct {
	fs   *SmallFS
	path string
}

// Attr sets the attributes of the node
func (n *node) Attr(ctx context.Context, attr *fuse.Attr) error {
	n.fs.tracef("(Attr %s)", n.path)

	info, err := n.fs.fileSystem.GetAttr(ctx, n.path)
	if err != nil {
		return toErrno(err)
	}

	fillAttr(attr, info)
	return nil
}

// fillAttr converts file info to FUSE attributes
func fillAttr(attr *fuse.Attr, info vfs.FileInfo) {
	attr.Mode = os.FileMode(info.Mode & vfs.ModeMask)
	if info.IsDir() {
		attr.Mode |= os.ModeDir
	}
	attr.Nlink = info.Nlink
	attr.Size = uint64(info.Size)
	attr.Blocks = (attr.Size + 511) / 512
	attr.Mtime = info.ModifyTime
	attr.Ctime = info.ModifyTime
	attr.Atime = info.ModifyTime
}

// Getxattr reads an extended attribute. A request size of zero asks
// for the value length only.
func (n *node) Getxattr(ctx context.Context, req *fuse.GetxattrRequest, resp *fuse.GetxattrResponse) error {
	n.fs.tracef("(Getxattr %s %s)", n.path, req.Name)

	size := int(req.Size)
	if size == 0 {
		size = vfs.MaxXattrSize
	}

	buf := make([]byte, size)
	count, err := n.fs.fileSystem.GetXattr(ctx, n.path, req.Name, buf)
	if err != nil {
		return toErrno(err)
	}

	resp.Xattr = buf[:count]
	return nil
}

// Listxattr lists extended attribute names
func (n *node) Listxattr(ctx context.Context, req *fuse.ListxattrRequest, resp *fuse.ListxattrResponse) error {
	n.fs.tracef("(Listxattr %s)", n.path)

	names, err := n.fs.fileSystem.ListXattr(ctx, n.path)
	if err != nil {
		return toErrno(err)
	}

	resp.Append(names...)
	return nil
}

// Setxattr sets an extended attribute
func (n *node) Setxattr(ctx context.Context, req *fuse.SetxattrRequest) error {
	n.fs.tracef("(Setxattr %s %s)", n.path, req.Name)

	return toErrno(n.fs.fileSystem.SetXattr(ctx, n.path, req.Name, req.Xattr))
}

// Removexattr removes an extended attribute
func (n *node) Removexattr(ctx context.Context, req *fuse.RemovexattrRequest) error {
	n.fs.tracef("(Removexattr %s %s)", n.path, req.Name)

	return toErrno(n.fs.fileSystem.RemoveXattr(ctx, n.path, req.Name))
}
