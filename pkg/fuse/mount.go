package fuse

import (
	"context"
	"fmt"
	"log"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	vfs "github.com/example/smallfs/pkg/fs"
)

// MountOptions contains options for mounting the filesystem
type MountOptions struct {
	MountPoint string
	FileSystem vfs.FileSystem
	AllowOther bool
	Debug      bool
}

// Mount mounts the filesystem at the specified mount point and serves
// it until the context is canceled or the kernel unmounts it.
func Mount(ctx context.Context, options MountOptions) error {
	if options.MountPoint == "" {
		return fmt.Errorf("mount point is required")
	}
	if options.FileSystem == nil {
		return fmt.Errorf("file system is required")
	}

	// Not mounted read-only: write opens must reach Open to be refused
	// with EACCES, and the greeting accepts setxattr.
	mountOpts := []fuse.MountOption{
		fuse.FSName("smallfs"),
		fuse.Subtype("smallfs"),
	}

	if options.AllowOther {
		mountOpts = append(mountOpts, fuse.AllowOther())
	}

	if options.Debug {
		fuse.Debug = func(msg interface{}) {
			log.Printf("FUSE: %v", msg)
		}
	}

	// Mount the filesystem
	log.Printf("Mounting FUSE filesystem at %s", options.MountPoint)
	c, err := fuse.Mount(options.MountPoint, mountOpts...)
	if err != nil {
		return fmt.Errorf("failed to mount: %w", err)
	}
	defer c.Close()

	// Serve the filesystem until unmounted
	served := make(chan error, 1)
	go func() {
		log.Println("Starting FUSE server")
		served <- fs.Serve(c, NewSmallFS(options.FileSystem, options.Debug))
	}()

	select {
	case err := <-served:
		if err != nil {
			return fmt.Errorf("error serving filesystem: %w", err)
		}
		log.Println("Filesystem unmounted")
		return nil
	case <-ctx.Done():
	}

	// Unmount
	log.Println("Unmounting filesystem...")
	if err := Unmount(options.MountPoint); err != nil {
		log.Printf("Warning: failed to unmount cleanly: %v", err)
		return err
	}

	if err := <-served; err != nil {
		return fmt.Errorf("error serving filesystem: %w", err)
	}
	return nil
}

// Unmount unmounts the filesystem
func Unmount(mountPoint string) error {
	return fuse.Unmount(mountPoint)
}
