package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/mapstructure"

	"github.com/dshills/indentree/internal/config/loader"
	"github.com/dshills/indentree/internal/logging"
)

// DefaultEnvPrefix is the prefix of environment variables read by Load.
const DefaultEnvPrefix = "INDENTER_"

// DefaultFileNames are tried, in order, by Discover.
var DefaultFileNames = []string{"indenter.toml", "indenter.yaml", "indenter.yml", ".indenter.toml"}

// KnownSections are the top-level sections a settings file may hold.
var KnownSections = []string{"indent", "log"}

// Config is the resolved configuration.
type Config struct {
	Indent IndentConfig `mapstructure:"indent" toml:"indent" yaml:"indent"`
	Log    LogConfig    `mapstructure:"log" toml:"log" yaml:"log"`

	// Path is the file the configuration was read from; empty when only
	// defaults and the environment contributed.
	Path string `mapstructure:"-" toml:"-" yaml:"-"`

	// UnknownSections lists sections of the file outside KnownSections.
	// They are ignored.
	UnknownSections []string `mapstructure:"-" toml:"-" yaml:"-"`
}

// IndentConfig holds the [indent] section.
type IndentConfig struct {
	Width             int  `mapstructure:"width" toml:"width" yaml:"width"`
	AutoCloseComments bool `mapstructure:"autoCloseComments" toml:"autoCloseComments" yaml:"autoCloseComments"`
	Tabs              bool `mapstructure:"tabs" toml:"tabs" yaml:"tabs"`
}

// LogConfig holds the [log] section.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level" yaml:"level"`
	Format string `mapstructure:"format" toml:"format" yaml:"format"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Indent: IndentConfig{Width: 2},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// defaultMap is the lowest configuration layer.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"indent": map[string]any{
			"width":             d.Indent.Width,
			"autoCloseComments": d.Indent.AutoCloseComments,
			"tabs":              d.Indent.Tabs,
		},
		"log": map[string]any{
			"level":  d.Log.Level,
			"format": d.Log.Format,
		},
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
	useEnv    bool
	overrides map[string]any
}

// WithFS sets the file system configuration files are read from.
func WithFS(fs loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// WithoutEnv skips the environment layer.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.useEnv = false
	}
}

// WithOverride sets a value above every other layer, as command line
// flags do.
func WithOverride(path string, value any) Option {
	return func(o *loadOptions) {
		if o.overrides == nil {
			o.overrides = make(map[string]any)
		}
		loader.SetByPath(o.overrides, path, value)
	}
}

// Load resolves the configuration from defaults, the file at path (if
// path is non-empty and the file exists) and the environment.
func Load(path string, opts ...Option) (*Config, error) {
	return LoadContext(context.Background(), path, opts...)
}

// LoadContext is Load with cancellation between layers.
func LoadContext(ctx context.Context, path string, opts ...Option) (*Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), envPrefix: DefaultEnvPrefix, useEnv: true}
	for _, opt := range opts {
		opt(&o)
	}

	merged := defaultMap()
	cfgPath := ""
	var unknown []string

	if path != "" {
		fileMap, err := loader.ForPath(o.fs, path).Load()
		if err != nil {
			return nil, err
		}
		if fileMap != nil {
			unknown = loader.UnknownSections(fileMap, KnownSections)
			merged = loader.DeepMerge(merged, fileMap)
			cfgPath = path
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if o.useEnv {
		envMap, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envMap)
	}

	if o.overrides != nil {
		merged = loader.DeepMerge(merged, o.overrides)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	cfg.Path = cfgPath
	cfg.UnknownSections = unknown
	return cfg, nil
}

// FromMap decodes and validates a merged settings map.
func FromMap(m map[string]any) (*Config, error) {
	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover returns the first of DefaultFileNames present in dir, or ""
// when none exists.
func Discover(fs loader.FileSystem, dir string) string {
	if fs == nil {
		fs = loader.DefaultFS()
	}
	for _, name := range DefaultFileNames {
		p := filepath.Join(dir, name)
		if info, err := fs.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if c.Indent.Width < 0 {
		return &ValidationError{Path: "indent.width", Message: "must not be negative", Value: c.Indent.Width}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}
	if !logging.ValidFormat(c.Log.Format) {
		return &ValidationError{Path: "log.format", Message: "must be text or json", Value: c.Log.Format}
	}
	return nil
}

// AutoCloseComments reports whether block comments are closed on Enter.
func (c *Config) AutoCloseComments() (bool, error) {
	if c == nil {
		return false, ErrNoConfig
	}
	return c.Indent.AutoCloseComments, nil
}

// Logging returns the logging options derived from the [log] section.
func (c *Config) Logging() logging.Options {
	level, _ := logging.ParseLevel(c.Log.Level)
	return logging.Options{Level: level, Format: c.Log.Format}
}
