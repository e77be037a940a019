package fuse

import (
	"errors"
	"log"

	"bazil.org/fuse"
	"golang.org/x/sys/unix"

	vfs "github.com/example/smallfs/pkg/fs"
)

// toErrno converts a filesystem error to the errno returned to the kernel
func toErrno(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, vfs.ErrNotExist):
		return fuse.Errno(unix.ENOENT)
	case errors.Is(err, vfs.ErrPermission):
		return fuse.Errno(unix.EACCES)
	case errors.Is(err, vfs.ErrNoAttribute):
		return fuse.Errno(unix.ENODATA)
	case errors.Is(err, vfs.ErrNoAttributeSpace):
		return fuse.Errno(unix.ENOSPC)
	case errors.Is(err, vfs.ErrRange):
		return fuse.Errno(unix.ERANGE)
	case errors.Is(err, vfs.ErrInvalidArgument):
		return fuse.Errno(unix.EINVAL)
	case errors.Is(err, vfs.ErrDeviceUnavailable):
		return fuse.Errno(unix.ENODEV)
	}

	// Default for unrecognized errors
	log.Printf("Unknown error type: %T, message: %v", err, err)
	return fuse.Errno(unix.EIO)
}
