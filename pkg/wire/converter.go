package wire

import (
	"fmt"
	"time"

	"github.com/example/smallfs/pkg/api"
	"github.com/example/smallfs/pkg/fs"
)

// FileTypeToProto converts a filesystem file type to its wire name
func FileTypeToProto(t fs.FileType) string {
	switch t {
	case fs.FileTypeDirectory:
		return api.TypeDirectory
	default:
		return api.TypeRegular
	}
}

// ProtoToFileType converts a wire type name to a filesystem file type
func ProtoToFileType(name string) (fs.FileType, error) {
	switch name {
	case api.TypeRegular:
		return fs.FileTypeRegular, nil
	case api.TypeDirectory:
		return fs.FileTypeDirectory, nil
	default:
		return 0, fmt.Errorf("%w: unknown file type %q", api.ErrMalformed, name)
	}
}

// FSInfoToAttributes converts filesystem FileInfo to wire attributes
func FSInfoToAttributes(info fs.FileInfo) api.Attributes {
	return api.Attributes{
		Type:  FileTypeToProto(info.Type),
		Mode:  uint32(info.Mode & fs.ModeMask),
		Size:  info.Size,
		Nlink: info.Nlink,
		Mtime: info.ModifyTime.UTC().Format(time.RFC3339Nano),
	}
}

// AttributesToFSInfo converts wire attributes to filesystem FileInfo
func AttributesToFSInfo(attr api.Attributes) (fs.FileInfo, error) {
	fileType, err := ProtoToFileType(attr.Type)
	if err != nil {
		return fs.FileInfo{}, err
	}
	mtime, err := time.Parse(time.RFC3339Nano, attr.Mtime)
	if err != nil {
		return fs.FileInfo{}, fmt.Errorf("%w: mtime: %v", api.ErrMalformed, err)
	}
	return fs.FileInfo{
		Type:       fileType,
		Mode:       fs.FileMode(attr.Mode) & fs.ModeMask,
		Size:       attr.Size,
		Nlink:      attr.Nlink,
		ModifyTime: mtime,
	}, nil
}

// FSEntriesToProto converts directory entries to their wire form
func FSEntriesToProto(entries []fs.DirEntry) []api.DirEntry {
	out := make([]api.DirEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.DirEntry{Name: e.Name, Type: FileTypeToProto(e.Type)})
	}
	return out
}

// ProtoEntriesToFS converts wire directory entries to filesystem entries
func ProtoEntriesToFS(entries []api.DirEntry) ([]fs.DirEntry, error) {
	out := make([]fs.DirEntry, 0, len(entries))
	for _, e := range entries {
		fileType, err := ProtoToFileType(e.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, fs.DirEntry{Name: e.Name, Type: fileType})
	}
	return out, nil
}
