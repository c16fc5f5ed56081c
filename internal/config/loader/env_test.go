package loader

import (
	"strings"
	"testing"
)

func getByPath(data map[string]any, path string) (any, bool) {
	section, key, _ := strings.Cut(path, ".")
	m, ok := data[section].(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

func newTestEnvLoader(env ...string) *EnvLoader {
	l := NewEnvLoader("ACTKIT_")
	l.environ = func() []string { return env }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"ACTKIT_LOG_LEVEL=debug",
		"ACTKIT_LOG_NOCOLOR=true",
		"ACTKIT_SCRIPT_CALL_LIMIT=2000",
		"ACTKIT_PREVIEW_THEME=mono",
		"HOME=/root",
	)
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "logging.level"); !ok || val != "debug" {
		t.Errorf("logging.level = %v, want debug", val)
	}
	if val, ok := getByPath(config, "logging.no_color"); !ok || val != true {
		t.Errorf("logging.no_color = %v, want true", val)
	}
	if val, ok := getByPath(config, "script.call_limit"); !ok || val != int64(2000) {
		t.Errorf("script.call_limit = %v (%T), want 2000", val, val)
	}
	if val, ok := getByPath(config, "preview.theme"); !ok || val != "mono" {
		t.Errorf("preview.theme = %v, want mono", val)
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variables must be ignored")
	}
}

func TestEnvLoader_SkipsSectionOnly(t *testing.T) {
	config, _ := newTestEnvLoader("ACTKIT_DISPATCH=1").Load()
	if len(config) != 0 {
		t.Errorf("config = %v, want empty", config)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := newTestEnvLoader("ACTKIT_METRICS=yes")
	l.AddMapping("ACTKIT_METRICS", "dispatch.metrics")
	config, _ := l.Load()
	if val, ok := getByPath(config, "dispatch.metrics"); !ok || val != true {
		t.Errorf("dispatch.metrics = %v, want true", val)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"1.5", 1.5},
		{"v1.2", "v1.2"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}

	list, ok := parseValue(`["a", 2]`).([]any)
	if !ok || len(list) != 2 || list[0] != "a" || list[1] != float64(2) {
		t.Errorf("JSON array parsed as %v", list)
	}
	if got := parseValue("[not json"); got != "[not json" {
		t.Errorf("invalid JSON should stay a string, got %v", got)
	}
}
