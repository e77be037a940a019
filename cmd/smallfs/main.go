// Command smallfs mounts a smallfs volume.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/example/smallfs/pkg/config"
	"github.com/example/smallfs/pkg/fs/smallfs"
	"github.com/example/smallfs/pkg/fuse"
	"github.com/example/smallfs/pkg/metrics"
	"github.com/example/smallfs/pkg/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "smallfs [flags] DEVICE MOUNTPOINT",
		Short:        "Mount a smallfs volume",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "YAML configuration file")
	flags.Bool("data.im-in-memory", false, "Expose /data.im, the pattern served from memory")
	flags.Bool("debug", false, "Log every FUSE request")
	flags.Bool("allow-other", false, "Allow other users to access the mount")
	flags.String("listen", "", "Address of the inspection server; empty disables it")
	flags.String("metrics-addr", "", "Address serving /metrics; empty disables it")
	flags.Int("max-conns", 0, "Maximum concurrent inspection connections")
	return cmd
}

// loadConfig merges the config file, positional arguments and flags.
func loadConfig(flags *pflag.FlagSet, args []string) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.Device, cfg.MountPoint = args[0], args[1]

	if flags.Changed("data.im-in-memory") {
		cfg.CachedPattern, _ = flags.GetBool("data.im-in-memory")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("allow-other") {
		cfg.AllowOther, _ = flags.GetBool("allow-other")
	}
	if flags.Changed("listen") {
		cfg.Listen, _ = flags.GetString("listen")
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddress, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("max-conns") {
		cfg.MaxConnections, _ = flags.GetInt("max-conns")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Ensure mount point exists
	if _, err := os.Stat(cfg.MountPoint); os.IsNotExist(err) {
		log.Printf("Creating mount point: %s", cfg.MountPoint)
		if err := os.MkdirAll(cfg.MountPoint, 0755); err != nil {
			return fmt.Errorf("failed to create mount point: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}

	fsys, err := smallfs.NewFileSystem(smallfs.Options{
		DevicePath:    cfg.Device,
		CachedPattern: cfg.CachedPattern,
		Attributes:    cfg.AttributeSeed(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := fsys.Close(); err != nil {
			log.Printf("Failed to close device: %v", err)
		}
	}()
	served := metrics.Instrument(fsys, m)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// An external unmount ends the other services too.
		defer stop()
		return fuse.Mount(ctx, fuse.MountOptions{
			MountPoint: cfg.MountPoint,
			FileSystem: served,
			AllowOther: cfg.AllowOther,
			Debug:      cfg.Debug,
		})
	})

	if cfg.Listen != "" {
		srv, err := server.NewServer(cfg.ServerConfig(), served, reg)
		if err != nil {
			stop()
			g.Wait()
			return err
		}
		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			srv.Stop()
			return nil
		})
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		httpServer := &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			log.Printf("Serving metrics on %s", cfg.MetricsAddress)
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	log.Println("smallfs terminated")
	return err
}
