// Package server implements the SmallFS inspection service
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	grpcprom "github.com/grpc-ecosystem/go-grpc-middleware/providers/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/netutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/example/smallfs/pkg/api"
	"github.com/example/smallfs/pkg/fs"
	"github.com/example/smallfs/pkg/wire"
)

// Config contains the inspection server configuration
type Config struct {
	// Network address to listen on (e.g. "127.0.0.1:7070")
	ListenAddress string

	// Maximum concurrent requests
	MaxConcurrent int

	// Maximum read size in bytes
	MaxReadSize int

	// Maximum simultaneous client connections; 0 means unlimited
	MaxConnections int

	// Request timeout
	RequestTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ListenAddress:  "127.0.0.1:7070",
		MaxConcurrent:  100,
		MaxReadSize:    1024 * 1024, // 1MB
		MaxConnections: 64,
		RequestTimeout: 30 * time.Second,
	}
}

// Server serves read-only queries against a filesystem over gRPC
type Server struct {
	api.UnimplementedSmallFSServer

	// Configuration
	config *Config

	// The underlying filesystem implementation
	fileSystem fs.FileSystem

	// Worker pool for limiting concurrent requests
	workerPool chan struct{}

	grpcServer *grpc.Server
	metrics    *grpcprom.ServerMetrics

	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a new inspection server. Per-method gRPC metrics
// are registered with reg when it is not nil.
func NewServer(config *Config, fileSystem fs.FileSystem, reg prometheus.Registerer) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxConcurrent <= 0 {
		return nil, fmt.Errorf("max concurrent requests must be positive, got %d", config.MaxConcurrent)
	}
	if config.MaxReadSize <= 0 {
		return nil, fmt.Errorf("max read size must be positive, got %d", config.MaxReadSize)
	}

	s := &Server{
		config:     config,
		fileSystem: fileSystem,
		workerPool: make(chan struct{}, config.MaxConcurrent),
		metrics: grpcprom.NewServerMetrics(
			grpcprom.WithServerHandlingTimeHistogram(),
		),
	}

	s.grpcServer = grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.metrics.UnaryServerInterceptor()),
	)
	api.RegisterSmallFSServer(s.grpcServer, s)
	s.metrics.InitializeMetrics(s.grpcServer)

	if reg != nil {
		if err := reg.Register(s.metrics); err != nil {
			return nil, fmt.Errorf("failed to register gRPC metrics: %w", err)
		}
	}
	return s, nil
}

// Start listens on the configured address and serves until Stop
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	if s.config.MaxConnections > 0 {
		lis = netutil.LimitListener(lis, s.config.MaxConnections)
	}
	return s.Serve(lis)
}

// Serve serves requests arriving on lis until Stop
func (s *Server) Serve(lis net.Listener) error {
	s.mu.Lock()
	s.listener = lis
	s.mu.Unlock()

	log.Printf("SmallFS server starting on %s", lis.Addr())
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Addr returns the address being served, or nil before Serve
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop waits for in-flight requests and stops serving
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
}

// acquireWorker gets a worker from the pool or times out
func (s *Server) acquireWorker(ctx context.Context) error {
	select {
	case s.workerPool <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// releaseWorker returns a worker to the pool
func (s *Server) releaseWorker() {
	<-s.workerPool
}

// processRequest handles common request processing logic
func (s *Server) processRequest(ctx context.Context, op string, process func(ctx context.Context) error) error {
	reqID := uuid.NewString()
	clientAddr := "unknown"
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		clientAddr = p.Addr.String()
	}

	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.RequestTimeout)
		defer cancel()
	}

	// Log request
	wire.LogRequest(op, reqID, clientAddr)
	startTime := time.Now()

	// Acquire worker
	if err := s.acquireWorker(ctx); err != nil {
		wire.LogError(op, reqID, err)
		return wire.ToStatus(err)
	}
	defer s.releaseWorker()

	// Execute the operation
	err := process(ctx)

	// Log the result
	if err != nil {
		wire.LogError(op, reqID, err)
	}
	wire.LogResponse(op, reqID, wire.MapErrorToCode(err), time.Since(startTime).String())
	return wire.ToStatus(err)
}

// GetAttr implements the GetAttr RPC method
func (s *Server) GetAttr(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	var resp *structpb.Struct
	err := s.processRequest(ctx, "GetAttr", func(ctx context.Context) error {
		info, err := s.fileSystem.GetAttr(ctx, req.GetValue())
		if err != nil {
			return err
		}
		resp = wire.FSInfoToAttributes(info).ToProto()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ReadDir implements the ReadDir RPC method
func (s *Server) ReadDir(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	var resp *structpb.ListValue
	err := s.processRequest(ctx, "ReadDir", func(ctx context.Context) error {
		entries, err := s.fileSystem.ReadDir(ctx, req.GetValue())
		if err != nil {
			return err
		}
		resp = api.DirEntriesToProto(wire.FSEntriesToProto(entries))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Read implements the Read RPC method. The file is opened read-only
// first, so refused or hidden files fail the same way they do through
// the mount.
func (s *Server) Read(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	var resp *wrapperspb.BytesValue
	err := s.processRequest(ctx, "Read", func(ctx context.Context) error {
		r, err := api.ReadRequestFromProto(req)
		if err != nil {
			return err
		}
		if r.Length < 0 {
			return fs.NewError("read", r.Path, fs.ErrInvalidArgument)
		}

		// Limit read size
		length := r.Length
		if length > int64(s.config.MaxReadSize) {
			length = int64(s.config.MaxReadSize)
		}

		if err := s.fileSystem.Open(ctx, r.Path, fs.AccessReadOnly); err != nil {
			return err
		}
		buf := make([]byte, length)
		n, err := s.fileSystem.Read(ctx, r.Path, buf, r.Offset)
		if err != nil {
			return err
		}
		resp = wrapperspb.Bytes(buf[:n])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ListXattr implements the ListXattr RPC method
func (s *Server) ListXattr(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	var resp *structpb.ListValue
	err := s.processRequest(ctx, "ListXattr", func(ctx context.Context) error {
		names, err := s.fileSystem.ListXattr(ctx, req.GetValue())
		if err != nil {
			return err
		}
		resp = api.NamesToProto(names)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetXattr implements the GetXattr RPC method
func (s *Server) GetXattr(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	var resp *wrapperspb.BytesValue
	err := s.processRequest(ctx, "GetXattr", func(ctx context.Context) error {
		r, err := api.XattrRequestFromProto(req)
		if err != nil {
			return err
		}
		if r.Name == "" {
			return status.Error(codes.InvalidArgument, "attribute name is required")
		}
		buf := make([]byte, fs.MaxXattrSize)
		n, err := s.fileSystem.GetXattr(ctx, r.Path, r.Name, buf)
		if err != nil {
			return err
		}
		resp = wrapperspb.Bytes(buf[:n])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
