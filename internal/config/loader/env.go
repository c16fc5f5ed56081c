package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // e.g. "ACTKIT_"
	mapping map[string]string // env var -> config path
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// defaultEnvMapping maps variables whose names do not follow the
// SECTION_SETTING convention.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"ACTKIT_LOG_LEVEL":     "logging.level",
		"ACTKIT_LOG_JSON":      "logging.json",
		"ACTKIT_LOG_NOCOLOR":   "logging.no_color",
		"ACTKIT_LOG_TIMESTAMP": "logging.timestamp",
	}
}

// AddMapping maps envVar to a dotted config path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads the environment. Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts ACTKIT_SCRIPT_CALL_LIMIT to
// script.call_limit.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, setting, ok := strings.Cut(name, "_")
	if !ok || section == "" || setting == "" {
		return ""
	}
	return section + "." + setting
}

// parseValue converts a raw variable into a bool, integer, float, JSON
// array or object, or leaves it as a string.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if (strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{")) && gjson.Valid(s) {
		return gjson.Parse(s).Value()
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
