package config

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/ticketgraph/pkg/errors"
	"github.com/matzehuels/ticketgraph/pkg/httputil"
	"github.com/matzehuels/ticketgraph/pkg/layout"
	"github.com/matzehuels/ticketgraph/pkg/render"
	"github.com/matzehuels/ticketgraph/pkg/route"
)

// Defaults.
const (
	DefaultFlaggedField  = "customfield_10200"
	DefaultMaxResults    = 200
	DefaultPageSize      = 100
	DefaultReleaseName   = "Release"
	DefaultOutput        = "dad_graph"
	DefaultMermaidOutput = "dad_mermaid.md"
	DefaultFileName      = "ticketgraph.toml"
)

// DefaultFormats are written when no format is requested.
var DefaultFormats = []string{"drawio", "mermaid", "png"}

// Config is constructed once at startup and passed by reference.
type Config struct {
	Credentials Credentials `toml:"-"`

	JQL          string `toml:"jql"`
	FlaggedField string `toml:"flagged_field"`
	MaxResults   int    `toml:"max_results"`
	PageSize     int    `toml:"page_size"`
	ReleaseName  string `toml:"release_name"`

	Output        string   `toml:"output"`
	MermaidOutput string   `toml:"mermaid_output"`
	Formats       []string `toml:"formats"`

	Layout layout.Config   `toml:"layout"`
	Route  route.Config    `toml:"route"`
	Style  render.Style    `toml:"style"`
	Retry  httputil.Policy `toml:"retry"`
	Cache  CacheConfig     `toml:"cache"`
}

// CacheConfig controls response caching. A zero TTL disables it.
type CacheConfig struct {
	TTL      time.Duration `toml:"ttl"` // Written as a string, e.g. "15m"
	RedisURL string        `toml:"redis_url"`
	Dir      string        `toml:"dir"`
}

// Enabled reports whether responses should be cached.
func (c CacheConfig) Enabled() bool { return c.TTL > 0 }

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		FlaggedField:  DefaultFlaggedField,
		MaxResults:    DefaultMaxResults,
		PageSize:      DefaultPageSize,
		ReleaseName:   DefaultReleaseName,
		Output:        DefaultOutput,
		MermaidOutput: DefaultMermaidOutput,
		Formats:       slices.Clone(DefaultFormats),
		Layout:        layout.DefaultConfig(),
		Route:         route.DefaultConfig(),
		Style:         render.DefaultStyle(),
		Retry:         httputil.DefaultPolicy,
	}
}

// LoadFile decodes a TOML file over the defaults. Keys the file does not
// set keep their default values, and keys it does set are kept as written,
// zero included. Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Load reads path if given, else ./ticketgraph.toml when it exists, else
// returns the defaults. Environment overrides are applied on top.
func Load(path string, getenv func(string) string) (*Config, error) {
	var cfg *Config
	switch {
	case path != "":
		c, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	case fileExists(DefaultFileName):
		c, err := LoadFile(DefaultFileName)
		if err != nil {
			return nil, err
		}
		cfg = c
	default:
		cfg = Default()
	}
	cfg.ApplyEnv(getenv)
	return cfg, nil
}

// ApplyEnv applies environment overrides for the flagged field and the
// Redis URL.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvFlagged)); v != "" {
		c.FlaggedField = v
	}
	if v := strings.TrimSpace(getenv(EnvRedisURL)); v != "" && c.Cache.RedisURL == "" {
		c.Cache.RedisURL = v
	}
}

// Validate checks the settings that do not depend on credentials.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JQL) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "a query is required (--jql or jql in the config file)")
	}
	if c.FlaggedField == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "flagged field must not be empty")
	}
	if c.MaxResults <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max results must be positive, got %d", c.MaxResults)
	}
	if c.PageSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "page size must be positive, got %d", c.PageSize)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Style.FlaggedWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "style flagged_width must be positive, got %d", c.Style.FlaggedWidth)
	}
	if c.Retry.Attempts <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "retry attempts must be positive, got %d", c.Retry.Attempts)
	}
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	return c.Route.Validate()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
