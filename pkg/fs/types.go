package fs

import (
	"time"
)

// FileType represents the type of a file.
type FileType uint32

const (
	// FileTypeRegular is a regular file
	FileTypeRegular FileType = iota
	// FileTypeDirectory is a directory
	FileTypeDirectory
)

// String returns a string representation of the file type
func (ft FileType) String() string {
	switch ft {
	case FileTypeRegular:
		return "regular"
	case FileTypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// FileMode represents the permission bits of a file.
type FileMode uint32

// ModeMask is the mask for the file permission bits
const ModeMask FileMode = 0777

// AccessMode is the access requested when opening a file.
type AccessMode uint8

const (
	// AccessReadOnly opens a file for reading only
	AccessReadOnly AccessMode = iota
	// AccessWriteOnly opens a file for writing only
	AccessWriteOnly
	// AccessReadWrite opens a file for reading and writing
	AccessReadWrite
)

// String returns a string representation of the access mode
func (m AccessMode) String() string {
	switch m {
	case AccessReadOnly:
		return "O_RDONLY"
	case AccessWriteOnly:
		return "O_WRONLY"
	case AccessReadWrite:
		return "O_RDWR"
	default:
		return "unknown"
	}
}

// FileInfo contains information about a file.
type FileInfo struct {
	// Type is the file type
	Type FileType

	// Mode contains the permission bits
	Mode FileMode

	// Size is the file size in bytes
	Size int64

	// Nlink is the number of hard links to the file
	Nlink uint32

	// ModifyTime is the time of last modification
	ModifyTime time.Time
}

// IsDir reports whether the file is a directory.
func (fi FileInfo) IsDir() bool {
	return fi.Type == FileTypeDirectory
}

// DirEntry represents an entry in a directory.
type DirEntry struct {
	// Name is the name of the entry
	Name string

	// Type is the file type of the entry
	Type FileType
}
