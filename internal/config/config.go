package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/internal/config/loader"
	"github.com/dshills/actkit/internal/logging"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "actkit.toml"

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "ACTKIT_"

// Config is the validated application configuration.
type Config struct {
	Logging  LoggingConfig  `toml:"logging"`
	Dispatch DispatchConfig `toml:"dispatch"`
	Script   ScriptConfig   `toml:"script"`
	Preview  PreviewConfig  `toml:"preview"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level     string `toml:"level"`
	JSON      bool   `toml:"json"`
	NoColor   bool   `toml:"no_color"`
	Timestamp bool   `toml:"timestamp"`
}

// DispatchConfig configures the dispatch engine.
type DispatchConfig struct {
	Metrics       bool `toml:"metrics"`
	RecoverPanics bool `toml:"recover_panics"`
	LogDispatch   bool `toml:"log_dispatch"`
}

// ScriptConfig configures the Lua callback runtime. Zero disables a limit.
type ScriptConfig struct {
	// TimeoutMS bounds the run time of one callback.
	TimeoutMS int `toml:"timeout_ms"`
	// CallLimit bounds the ui.* calls one callback may make.
	CallLimit int `toml:"call_limit"`
}

// PreviewConfig configures the terminal preview.
type PreviewConfig struct {
	Theme      string `toml:"theme"`
	DebounceMS int    `toml:"debounce_ms"`
}

// Themes lists the preview themes.
var Themes = []string{"default", "mono"}

// Default returns the built-in configuration.
func Default() Config {
	d := dispatcher.DefaultConfig()
	return Config{
		Logging: LoggingConfig{Level: "info", Timestamp: true},
		Dispatch: DispatchConfig{
			Metrics:       d.EnableMetrics,
			RecoverPanics: d.RecoverFromPanic,
			LogDispatch:   d.LogDispatch,
		},
		Script:  ScriptConfig{TimeoutMS: 1000, CallLimit: 10_000},
		Preview: PreviewConfig{Theme: "default", DebounceMS: 150},
	}
}

// Load reads path (DefaultFile when empty) and the environment on top of
// the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
	}
	return FromSources(loader.NewTOMLLoader(path), loader.NewEnvLoader(EnvPrefix))
}

// FromSources layers the given sources over the defaults, in order, and
// validates the result.
func FromSources(sources ...loader.Loader) (Config, error) {
	merged := make(map[string]any)
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	cfg := Default()
	if len(merged) > 0 {
		data, err := toml.Marshal(merged)
		if err != nil {
			return Config{}, fmt.Errorf("config: encoding merged settings: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decoding settings: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "unknown level"})
	}
	if c.Script.TimeoutMS < 0 {
		errs = append(errs, &ValidationError{Path: "script.timeout_ms", Value: c.Script.TimeoutMS, Message: "must not be negative"})
	}
	if c.Script.CallLimit < 0 {
		errs = append(errs, &ValidationError{Path: "script.call_limit", Value: c.Script.CallLimit, Message: "must not be negative"})
	}
	if !slices.Contains(Themes, c.Preview.Theme) {
		errs = append(errs, &ValidationError{Path: "preview.theme", Value: c.Preview.Theme, Message: fmt.Sprintf("want one of %v", Themes)})
	}
	if c.Preview.DebounceMS < 0 {
		errs = append(errs, &ValidationError{Path: "preview.debounce_ms", Value: c.Preview.DebounceMS, Message: "must not be negative"})
	}
	return errors.Join(errs...)
}

// DispatcherConfig returns the engine configuration.
func (c Config) DispatcherConfig() dispatcher.Config {
	d := dispatcher.DefaultConfig().
		WithPanicRecovery(c.Dispatch.RecoverPanics).
		WithDispatchLogging(c.Dispatch.LogDispatch)
	if c.Dispatch.Metrics {
		d = d.WithMetrics()
	}
	return d
}

// LoggerConfig returns the logger configuration.
func (c Config) LoggerConfig() logging.Config {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return logging.Config{
		Level:     level,
		JSON:      c.Logging.JSON,
		NoColor:   c.Logging.NoColor,
		Timestamp: c.Logging.Timestamp,
	}
}

// Logger builds the process logger.
func (c Config) Logger() zerolog.Logger {
	return logging.New(c.LoggerConfig())
}
