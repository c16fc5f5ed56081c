package dispatcher

// Config holds dispatch engine configuration options.
type Config struct {
	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool

	// LogDispatch logs every dispatch at debug level.
	LogDispatch bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		LogDispatch:      true,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithDispatchLogging returns a copy of the config with dispatch logging set.
func (c Config) WithDispatchLogging(enabled bool) Config {
	c.LogDispatch = enabled
	return c
}
