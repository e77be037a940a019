package server

import (
	"context"
	"reflect"
	"testing"

	"google.golang.org/grpc/codes"

	"github.com/example/smallfs/pkg/api"
)

func TestReadDir(t *testing.T) {
	server := setupTestServer(t, nil)

	resp, err := server.ReadDir(context.Background(), api.Path("/"))
	if err != nil {
		t.Fatalf("ReadDir RPC failed: %v", err)
	}
	entries, err := api.DirEntriesFromProto(resp)
	if err != nil {
		t.Fatalf("Failed to decode entries: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{".", "..", "hello", "data", "abc"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ReadDir names = %v, want %v", names, want)
	}
	if entries[0].Type != api.TypeDirectory || entries[4].Type != api.TypeRegular {
		t.Errorf("Unexpected entry types: %+v", entries)
	}
}

func TestReadDirCachedPattern(t *testing.T) {
	server, err := NewServer(DefaultConfig(), newTestFileSystem(t, true), nil)
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	resp, err := server.ReadDir(context.Background(), api.Path("/"))
	if err != nil {
		t.Fatalf("ReadDir RPC failed: %v", err)
	}
	entries, _ := api.DirEntriesFromProto(resp)
	if len(entries) != 6 || entries[4].Name != "data.im" {
		t.Errorf("ReadDir entries = %+v, want data.im before abc", entries)
	}
}

func TestReadDirNotDirectory(t *testing.T) {
	server := setupTestServer(t, nil)

	_, err := server.ReadDir(context.Background(), api.Path("/hello"))
	assertCode(t, err, codes.NotFound)
}
