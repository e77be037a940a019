package server

import (
	"context"
	"testing"

	"github.com/example/smallfs/pkg/api"
)

func TestGetAttr(t *testing.T) {
	server := setupTestServer(t, nil)

	testCases := []struct {
		name     string
		path     string
		wantType string
		wantMode uint32
		wantSize int64
		wantLink uint32
	}{
		{"Root directory", "/", api.TypeDirectory, 0755, 0, 2},
		{"Greeting", "/hello", api.TypeRegular, 0444, 13, 1},
		{"Pattern", "/data", api.TypeRegular, 0444, 100000000, 1},
		{"Device entry", "/abc", api.TypeRegular, 0444, 0, 1},
		{"Unknown path", "/nope", api.TypeRegular, 0444, 0, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := server.GetAttr(context.Background(), api.Path(tc.path))
			if err != nil {
				t.Fatalf("GetAttr RPC failed: %v", err)
			}

			attrs, err := api.AttributesFromProto(resp)
			if err != nil {
				t.Fatalf("Failed to decode attributes: %v", err)
			}
			if attrs.Type != tc.wantType {
				t.Errorf("Type = %s, want %s", attrs.Type, tc.wantType)
			}
			if attrs.Mode != tc.wantMode {
				t.Errorf("Mode = %o, want %o", attrs.Mode, tc.wantMode)
			}
			if attrs.Size != tc.wantSize {
				t.Errorf("Size = %d, want %d", attrs.Size, tc.wantSize)
			}
			if attrs.Nlink != tc.wantLink {
				t.Errorf("Nlink = %d, want %d", attrs.Nlink, tc.wantLink)
			}
		})
	}
}
