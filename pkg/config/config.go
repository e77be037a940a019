// Package config loads the smallfs daemon configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/smallfs/pkg/server"
)

// Config is the daemon configuration. Command-line flags override
// values loaded from a file.
type Config struct {
	// Device is the backing file of the volume.
	Device string `yaml:"device"`

	// MountPoint is the directory the volume is mounted on.
	MountPoint string `yaml:"mountpoint"`

	// CachedPattern exposes /data.im.
	CachedPattern bool `yaml:"data_im_in_memory"`

	// Debug logs every FUSE request.
	Debug bool `yaml:"debug"`

	// AllowOther lets other users access the mount.
	AllowOther bool `yaml:"allow_other"`

	// Listen is the inspection server address. Empty disables the server.
	Listen string `yaml:"listen"`

	// MetricsAddress serves /metrics. Empty disables it.
	MetricsAddress string `yaml:"metrics_address"`

	// MaxConnections caps concurrent inspection connections.
	MaxConnections int `yaml:"max_connections"`

	// MaxReadSize caps one inspection Read.
	MaxReadSize int `yaml:"max_read_size"`

	// Attributes seeds the greeting's extended attributes.
	Attributes map[string]string `yaml:"attributes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	defaults := server.DefaultConfig()
	return &Config{
		MaxConnections: defaults.MaxConnections,
		MaxReadSize:    defaults.MaxReadSize,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can be served.
func (c *Config) Validate() error {
	var errs []error
	if c.Device == "" {
		errs = append(errs, errors.New("device is required"))
	}
	if c.MountPoint == "" {
		errs = append(errs, errors.New("mountpoint is required"))
	}
	if c.MaxConnections < 0 {
		errs = append(errs, fmt.Errorf("max_connections must not be negative, got %d", c.MaxConnections))
	}
	if c.MaxReadSize <= 0 {
		errs = append(errs, fmt.Errorf("max_read_size must be positive, got %d", c.MaxReadSize))
	}
	return errors.Join(errs...)
}

// AttributeSeed returns the greeting's initial attributes, or nil when
// none are configured.
func (c *Config) AttributeSeed() map[string][]byte {
	if len(c.Attributes) == 0 {
		return nil
	}
	seed := make(map[string][]byte, len(c.Attributes))
	for k, v := range c.Attributes {
		seed[k] = []byte(v)
	}
	return seed
}

// ServerConfig returns the inspection server settings.
func (c *Config) ServerConfig() *server.Config {
	sc := server.DefaultConfig()
	sc.ListenAddress = c.Listen
	sc.MaxConnections = c.MaxConnections
	sc.MaxReadSize = c.MaxReadSize
	return sc
}
