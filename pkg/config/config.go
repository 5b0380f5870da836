// Package config loads gvexport settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/gvexport/config.toml (falling back to
// ~/.config/gvexport/config.toml). Every key is optional:
//
//	format    = "png"      # catalog name, see `gvexport formats list`
//	layout    = "dot"      # -K layout engine
//	engine    = "dot"      # Graphviz binary for the exec backend
//	backend   = "auto"     # auto, graphviz or exec
//	cache_ttl = "24h"
//
//	[server]
//	addr      = ":8080"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gvexport/pkg/errors"
	"github.com/matzehuels/gvexport/pkg/format"
	"github.com/matzehuels/gvexport/pkg/render"
)

const (
	appName  = "gvexport"
	fileName = "config.toml"

	// DefaultAddr is the listen address of `gvexport serve`.
	DefaultAddr = ":8080"
)

// Config holds user settings. Zero values are replaced by [Default] values
// when loading.
type Config struct {
	Format   format.Format  `toml:"format"`
	Layout   string         `toml:"layout"`
	Engine   string         `toml:"engine"`
	Backend  render.Backend `toml:"backend"`
	CacheTTL time.Duration  `toml:"cache_ttl"`
	Server   Server         `toml:"server"`
}

// Server holds settings for the HTTP API.
type Server struct {
	Addr     string `toml:"addr"`
	RedisURL string `toml:"redis_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format:   format.Default,
		Layout:   render.DefaultLayout,
		Engine:   render.DefaultEngine,
		Backend:  render.BackendAuto,
		CacheTTL: render.DefaultTTL,
		Server:   Server{Addr: DefaultAddr},
	}
}

// Dir returns the gvexport config directory using XDG rules.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config at path. With an empty path the default location is
// used and a missing file yields [Default]. An explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML config data on top of [Default].
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	cfg.fillDefaults()
	if cfg.Backend, err = render.ParseBackend(string(cfg.Backend)); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Layout == "" {
		c.Layout = def.Layout
	}
	if c.Engine == "" {
		c.Engine = def.Engine
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = def.CacheTTL
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if !c.Format.Valid() {
		return errors.New(errors.ErrCodeInvalidVariant, "format %d is not in the catalog", int(c.Format))
	}
	if c.CacheTTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache_ttl must not be negative")
	}
	return c.RenderOptions().Validate()
}

// RenderOptions returns the renderer settings of c.
func (c Config) RenderOptions() render.Options {
	return render.Options{
		Layout:  c.Layout,
		Engine:  c.Engine,
		Backend: c.Backend,
		TTL:     c.CacheTTL,
	}
}
