// Package config loads the actkit application configuration.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. The actkit.toml file, including any files it pulls in with @include
//  3. ACTKIT_* environment variables
//
// A file looks like:
//
//	[logging]
//	level = "debug"
//	json = false
//
//	[dispatch]
//	metrics = true
//	recover_panics = true
//	log_dispatch = true
//
//	[script]
//	timeout_ms = 1000
//	call_limit = 10000
//
//	[preview]
//	theme = "default"
//	debounce_ms = 150
//
// Environment variables are named ACTKIT_<SECTION>_<SETTING>, for example
// ACTKIT_SCRIPT_TIMEOUT_MS. The logging variables ACTKIT_LOG_LEVEL,
// ACTKIT_LOG_JSON, ACTKIT_LOG_NOCOLOR and ACTKIT_LOG_TIMESTAMP map to the
// logging section.
package config
