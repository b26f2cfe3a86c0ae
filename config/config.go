package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all wayfinder configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Graph     GraphConfig     `yaml:"graph"`
	Collision CollisionConfig `yaml:"collision"`
	Search    SearchConfig    `yaml:"search"`
	Smoothing SmoothingConfig `yaml:"smoothing"`
	Logging   LoggingConfig   `yaml:"logging"`

	// VenueDir is the default venue directory or snapshot file.
	VenueDir string `yaml:"venue_dir"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	ReadTimeout    string   `yaml:"read_timeout"`
}

// GraphConfig configures graph compilation and spatial indexing.
type GraphConfig struct {
	QuadtreeCapacity int     `yaml:"quadtree_capacity"`
	QuadtreeMaxDepth int     `yaml:"quadtree_max_depth"`
	IndexPadding     float64 `yaml:"index_padding"`
	// MaxEdgeDistance is the visibility pruning radius in degrees.
	MaxEdgeDistance float64 `yaml:"max_edge_distance"`
	Parallel        bool    `yaml:"parallel"`
	// NearestRadius is the snapping radius for coordinate routing, in degrees.
	NearestRadius float64 `yaml:"nearest_radius"`
}

// CollisionConfig configures obstacle handling.
type CollisionConfig struct {
	WallBufferMeters float64 `yaml:"wall_buffer_meters"`
	FailClosed       bool    `yaml:"fail_closed"`
}

// SearchConfig holds the A* defaults.
type SearchConfig struct {
	FloorChangePenalty float64 `yaml:"floor_change_penalty"`
	HeuristicWeight    float64 `yaml:"heuristic_weight"`
	// CacheSize is the number of node-to-node results kept per loaded venue. Zero disables caching.
	CacheSize int `yaml:"cache_size"`
}

// SmoothingConfig configures route smoothing.
type SmoothingConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Resolution        int     `yaml:"resolution"`
	Sharpness         float64 `yaml:"sharpness"`
	SimplifyTolerance float64 `yaml:"simplify_tolerance"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			ReadTimeout:    "10s",
		},
		Graph: GraphConfig{
			QuadtreeCapacity: 4,
			QuadtreeMaxDepth: 8,
			IndexPadding:     0.00001,
			MaxEdgeDistance:  0.0003,
			Parallel:         true,
			NearestRadius:    0.0002,
		},
		Collision: CollisionConfig{
			WallBufferMeters: 0.5,
		},
		Search: SearchConfig{
			FloorChangePenalty: 10,
			HeuristicWeight:    1,
			CacheSize:          256,
		},
		Smoothing: SmoothingConfig{
			Enabled:    true,
			Resolution: 10,
			Sharpness:  0.85,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("WAYFINDER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("WAYFINDER_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if dir := os.Getenv("WAYFINDER_VENUE_DIR"); dir != "" {
		c.VenueDir = dir
	}
}

// GetReadTimeout returns the server read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server address not configured")
	}
	if _, err := time.ParseDuration(c.Server.ReadTimeout); err != nil {
		return fmt.Errorf("invalid server read timeout %q: %w", c.Server.ReadTimeout, err)
	}
	if c.Graph.QuadtreeCapacity < 1 {
		return fmt.Errorf("quadtree capacity must be at least 1, got %d", c.Graph.QuadtreeCapacity)
	}
	if c.Graph.QuadtreeMaxDepth < 1 || c.Graph.QuadtreeMaxDepth > 32 {
		return fmt.Errorf("quadtree max depth must be within [1, 32], got %d", c.Graph.QuadtreeMaxDepth)
	}
	if c.Graph.MaxEdgeDistance <= 0 {
		return fmt.Errorf("max edge distance must be positive, got %v", c.Graph.MaxEdgeDistance)
	}
	if c.Graph.NearestRadius <= 0 {
		return fmt.Errorf("nearest radius must be positive, got %v", c.Graph.NearestRadius)
	}
	if c.Collision.WallBufferMeters <= 0 {
		return fmt.Errorf("wall buffer must be positive, got %v", c.Collision.WallBufferMeters)
	}
	if c.Search.FloorChangePenalty < 0 || c.Search.HeuristicWeight < 0 {
		return fmt.Errorf("search penalty and heuristic weight must not be negative")
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("route cache size must not be negative, got %d", c.Search.CacheSize)
	}
	if c.Smoothing.Enabled && c.Smoothing.Resolution < 1 {
		return fmt.Errorf("smoothing resolution must be at least 1, got %d", c.Smoothing.Resolution)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
