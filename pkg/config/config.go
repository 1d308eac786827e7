// Package config loads kintree settings.
//
// Settings are resolved in increasing precedence:
//
//  1. built-in defaults ([Default])
//  2. the TOML file at $XDG_CONFIG_HOME/kintree/config.toml, or --config
//  3. a .env file in the working directory, then KINTREE_* variables
//  4. command-line flags, applied by the CLI after [Load]
//
// Example config.toml:
//
//	[source]
//	location = "sheets:1AbCdEf"
//
//	[schema]
//	active = "is_active"
//
//	[layout]
//	node_sep = 160
//
//	[cache]
//	ttl = "30m"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator"
	"github.com/joho/godotenv"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/record"
	"github.com/matzehuels/kintree/pkg/source"
)

const appName = "kintree"

// DefaultKeyPrefix scopes Redis cache keys.
const DefaultKeyPrefix = appName + ":"

// Config is the complete configuration.
type Config struct {
	Source SourceConfig   `toml:"source"`
	Schema record.Schema  `toml:"schema"`
	Layout layout.Options `toml:"layout"`
	Cache  CacheConfig    `toml:"cache"`
	Server ServerConfig   `toml:"server"`
}

// SourceConfig names where the person rows come from. See [source.Open]
// for the location syntax.
type SourceConfig struct {
	Location string `toml:"location"`
}

// CacheConfig controls caching of fetched rows.
type CacheConfig struct {
	Disabled bool          `toml:"disabled"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl" validate:"gte=0"`
	// RedisURL selects Redis instead of the file cache.
	RedisURL string `toml:"redis_url" validate:"omitempty,url"`
	// KeyPrefix is prepended to Redis keys so several deployments can
	// share one database.
	KeyPrefix string `toml:"key_prefix"`
}

// ServerConfig controls `kintree serve`.
type ServerConfig struct {
	Addr       string        `toml:"addr" validate:"required"`
	SessionTTL time.Duration `toml:"session_ttl" validate:"gte=0"`
	// NodeWidth and NodeHeight size the boxes of the server-side layout
	// before a client reports measurements.
	NodeWidth  float64 `toml:"node_width" validate:"gte=0"`
	NodeHeight float64 `toml:"node_height" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Schema: record.DefaultSchema,
		Layout: layout.DefaultOptions(),
		Cache:  CacheConfig{TTL: source.DefaultRowsTTL, KeyPrefix: DefaultKeyPrefix},
		Server: ServerConfig{
			Addr:       "127.0.0.1:8080",
			SessionTTL: 30 * time.Minute,
			NodeWidth:  160,
			NodeHeight: 48,
		},
	}
}

// Dir returns the configuration directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// Path returns the default configuration file path.
func Path() string { return filepath.Join(Dir(), "config.toml") }

// CacheDir returns the default cache directory.
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load resolves the configuration. An empty path reads the default file if
// it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return err
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	return nil
}

// env lists the supported variables.
var env = []struct {
	name string
	set  func(c *Config, v string) error
}{
	{"KINTREE_SOURCE", func(c *Config, v string) error { c.Source.Location = v; return nil }},
	{"KINTREE_CACHE_DIR", func(c *Config, v string) error { c.Cache.Dir = v; return nil }},
	{"KINTREE_REDIS_URL", func(c *Config, v string) error { c.Cache.RedisURL = v; return nil }},
	{"KINTREE_NO_CACHE", func(c *Config, v string) error {
		b, ok := record.ParseBool(v, false)
		if !ok {
			return fmt.Errorf("not a boolean: %q", v)
		}
		c.Cache.Disabled = b
		return nil
	}},
	{"KINTREE_CACHE_TTL", func(c *Config, v string) (err error) {
		c.Cache.TTL, err = time.ParseDuration(v)
		return err
	}},
	{"KINTREE_ADDR", func(c *Config, v string) error { c.Server.Addr = v; return nil }},
}

func (c *Config) applyEnv() error {
	for _, e := range env {
		v, ok := os.LookupEnv(e.name)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if err := e.set(c, strings.TrimSpace(v)); err != nil {
			return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "%s", e.name)
		}
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	return nil
}

// Save writes c as TOML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.Encode(f)
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
