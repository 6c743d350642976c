package paint

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("paint: invalid config")

// Config describes an editing session: the canvas and its history.
//
// Example file:
//
//	width: 1920
//	height: 1080
//	tile_size: 128
//	background: "#ffffff"
//	history:
//	  max_snapshots: 100
//	  min_available_memory: 256MiB
//	  thumbnail_cache: 64
type Config struct {
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	TileSize   int           `yaml:"tile_size"`
	Background string        `yaml:"background"`
	History    HistoryConfig `yaml:"history"`
}

// HistoryConfig controls snapshot retention.
type HistoryConfig struct {
	// MaxSnapshots caps the number of snapshots; 0 means unlimited.
	MaxSnapshots int `yaml:"max_snapshots"`

	// MinAvailableMemory enables pruning when the system has less free
	// memory than this, e.g. "512MiB". Empty disables the guard.
	MinAvailableMemory string `yaml:"min_available_memory"`

	// ThumbnailCache is the number of cached snapshot thumbnails.
	ThumbnailCache int `yaml:"thumbnail_cache"`
}

// LoadConfig reads and validates a YAML session file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("paint: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML session document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("paint: parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TileSize == 0 {
		c.TileSize = DefaultTileSize
	}
	if c.Background == "" {
		c.Background = White.String()
	}
	if c.History.ThumbnailCache == 0 {
		c.History.ThumbnailCache = 64
	}
}

// Validate reports the first problem with c, wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile_size %d must be positive", ErrInvalidConfig, c.TileSize)
	}
	if _, err := ParseHex(c.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalidConfig, err)
	}
	if c.History.MaxSnapshots < 0 {
		return fmt.Errorf("%w: max_snapshots %d is negative", ErrInvalidConfig, c.History.MaxSnapshots)
	}
	if _, err := c.History.minAvailable(); err != nil {
		return fmt.Errorf("%w: min_available_memory: %w", ErrInvalidConfig, err)
	}
	return nil
}

// minAvailable parses MinAvailableMemory; empty means disabled.
func (hc HistoryConfig) minAvailable() (uint64, error) {
	if hc.MinAvailableMemory == "" {
		return 0, nil
	}
	return humanize.ParseBytes(hc.MinAvailableMemory)
}

// NewDocument creates the blank canvas described by c.
func (c *Config) NewDocument() (*Document, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	bg, _ := ParseHex(c.Background)
	return NewDocument(c.Width, c.Height, bg, WithTileSize(c.TileSize)), nil
}

// NewHistory creates the canvas described by c and a history for it.
func (c *Config) NewHistory(opts ...HistoryOption) (*History, error) {
	doc, err := c.NewDocument()
	if err != nil {
		return nil, err
	}
	minAvail, _ := c.History.minAvailable()

	base := []HistoryOption{
		WithMaxSnapshots(c.History.MaxSnapshots),
		WithThumbnailCache(c.History.ThumbnailCache),
	}
	if minAvail > 0 {
		base = append(base, WithMemoryGuard(minAvail))
	}
	return NewHistory(doc, append(base, opts...)...), nil
}
