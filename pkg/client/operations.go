package client

import (
	"context"
	"path"

	"github.com/example/smallfs/pkg/api"
	"github.com/example/smallfs/pkg/fs"
	"github.com/example/smallfs/pkg/wire"
)

// cleanPath makes p absolute and slash-normalized
func cleanPath(p string) string {
	return path.Clean("/" + p)
}

// GetAttr retrieves attributes for a file or directory
func (c *Client) GetAttr(ctx context.Context, p string) (fs.FileInfo, error) {
	p = cleanPath(p)
	if info, ok := c.attrCache.Get(p); ok {
		return info, nil
	}

	var info fs.FileInfo
	err := c.callWithRetry(ctx, "GetAttr", func(ctx context.Context) error {
		resp, err := c.fsClient.GetAttr(ctx, api.Path(p))
		if err != nil {
			return err
		}
		attrs, err := api.AttributesFromProto(resp)
		if err != nil {
			return err
		}
		info, err = wire.AttributesToFSInfo(attrs)
		return err
	})
	if err != nil {
		return fs.FileInfo{}, wire.FromStatus("getattr", p, err)
	}

	c.attrCache.Store(p, info)
	return info, nil
}

// ReadDir reads the contents of a directory
func (c *Client) ReadDir(ctx context.Context, p string) ([]fs.DirEntry, error) {
	p = cleanPath(p)

	var entries []fs.DirEntry
	err := c.callWithRetry(ctx, "ReadDir", func(ctx context.Context) error {
		resp, err := c.fsClient.ReadDir(ctx, api.Path(p))
		if err != nil {
			return err
		}
		decoded, err := api.DirEntriesFromProto(resp)
		if err != nil {
			return err
		}
		entries, err = wire.ProtoEntriesToFS(decoded)
		return err
	})
	if err != nil {
		return nil, wire.FromStatus("readdir", p, err)
	}
	return entries, nil
}

// Read reads data from a file
func (c *Client) Read(ctx context.Context, p string, offset int64, count int) ([]byte, error) {
	p = cleanPath(p)

	var data []byte
	err := c.callWithRetry(ctx, "Read", func(ctx context.Context) error {
		req := api.ReadRequest{Path: p, Offset: offset, Length: int64(count)}
		resp, err := c.fsClient.Read(ctx, req.ToProto())
		if err != nil {
			return err
		}
		data = resp.GetValue()
		return nil
	})
	if err != nil {
		return nil, wire.FromStatus("read", p, err)
	}
	return data, nil
}

// ListXattr lists the extended attribute names of a path
func (c *Client) ListXattr(ctx context.Context, p string) ([]string, error) {
	p = cleanPath(p)

	var names []string
	err := c.callWithRetry(ctx, "ListXattr", func(ctx context.Context) error {
		resp, err := c.fsClient.ListXattr(ctx, api.Path(p))
		if err != nil {
			return err
		}
		names, err = api.NamesFromProto(resp)
		return err
	})
	if err != nil {
		return nil, wire.FromStatus("listxattr", p, err)
	}
	return names, nil
}

// GetXattr returns the value of an extended attribute
func (c *Client) GetXattr(ctx context.Context, p string, name string) ([]byte, error) {
	p = cleanPath(p)

	var value []byte
	err := c.callWithRetry(ctx, "GetXattr", func(ctx context.Context) error {
		resp, err := c.fsClient.GetXattr(ctx, api.XattrRequest{Path: p, Name: name}.ToProto())
		if err != nil {
			return err
		}
		value = resp.GetValue()
		return nil
	})
	if err != nil {
		return nil, wire.FromStatus("getxattr", p, err)
	}
	return value, nil
}
