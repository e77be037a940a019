// Package client implements a client for the SmallFS inspection service
package client

import (
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/example/smallfs/pkg/api"
)

// Config contains the client configuration options
type Config struct {
	// ServerAddress is the address of the inspection server (e.g., "127.0.0.1:7070")
	ServerAddress string

	// Timeout is the default timeout for RPC operations
	Timeout time.Duration

	// MaxRetries is the maximum number of retries for operations
	MaxRetries int

	// RetryDelay is the initial delay between retries (will be multiplied by backoff factor)
	RetryDelay time.Duration

	// BackoffFactor is the multiplier for retry delay after each attempt
	BackoffFactor float64

	// MaxCacheSize is the maximum number of entries in the attribute cache
	MaxCacheSize int

	// CacheTTL is the time-to-live for cache entries
	CacheTTL time.Duration
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ServerAddress: "127.0.0.1:7070",
		Timeout:       30 * time.Second,
		MaxRetries:    3,
		RetryDelay:    500 * time.Millisecond,
		BackoffFactor: 2.0,
		MaxCacheSize:  1000,
		CacheTTL:      5 * time.Second,
	}
}

// Client talks to an inspection server and implements FSClient
type Client struct {
	// gRPC connection to the server
	conn *grpc.ClientConn

	// SmallFS service client
	fsClient api.SmallFSClient

	// Client configuration
	config *Config

	// Attribute cache
	attrCache *AttrCache
}

var _ CacheableClient = (*Client)(nil)

// NewClient creates a new client. The connection is established lazily
// on the first call.
func NewClient(config *Config, opts ...grpc.DialOption) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(config.ServerAddress, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection to %s: %w", config.ServerAddress, err)
	}

	return &Client{
		conn:      conn,
		fsClient:  api.NewSmallFSClient(conn),
		config:    config,
		attrCache: NewAttrCache(config.MaxCacheSize, config.CacheTTL),
	}, nil
}

// Close closes the client connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
