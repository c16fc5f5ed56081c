package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const layoutDoc = `
class = "Window"
id = "main"
title = "Hi"
default_width = 200
child = { class = "Label", id = "status", text = "ready" }
`

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"-log-level", "disabled", "-config", filepath.Join(t.TempDir(), "none.toml")}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeLayout(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ui.toml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "-version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "actkit dev")
}

func TestUsageErrors(t *testing.T) {
	code, _, errOut := execute(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Commands:")

	code, _, errOut = execute(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "frobnicate"`)

	code, _, _ = execute(t, "check")
	assert.Equal(t, 2, code, "check needs a layout")
}

func TestCheck(t *testing.T) {
	path := writeLayout(t, layoutDoc)

	code, out, errOut := execute(t, "check", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "ok, 2 widgets")
}

func TestCheckReportsErrors(t *testing.T) {
	path := writeLayout(t, `
class = "Window"
child = { class = "Label", bogus = 1 }
`)

	code, _, errOut := execute(t, "check", path)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "bogus")
	assert.Contains(t, errOut, "root.child")
}

func TestInspect(t *testing.T) {
	path := writeLayout(t, layoutDoc)

	code, out, errOut := execute(t, "inspect", path)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Window", gjson.Get(out, "class").String())
	assert.Equal(t, "Hi", gjson.Get(out, "title").String())
	assert.Equal(t, "ready", gjson.Get(out, "children.0.text").String())
}

func TestTypes(t *testing.T) {
	code, out, errOut := execute(t, "types")
	require.Equal(t, 0, code, errOut)
	for _, name := range []string{"Window", "VBox", "TreeView", "StatusIcon", "ScrolledWindow"} {
		assert.Contains(t, out, name)
	}
	assert.Regexp(t, `TreeSortable\s+\(capability\)`, out)

	code, out, errOut = execute(t, "types", "TreeView")
	require.Equal(t, 0, code, errOut)
	assert.Regexp(t, `sort_column_id\s+callback\s+TreeSortable`, out)

	code, out, errOut = execute(t, "types", "Window")
	require.Equal(t, 0, code, errOut)
	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "ACTION"))
	assert.Contains(t, out, "title")
	assert.Contains(t, out, "SetTitle")
	assert.Contains(t, out, "resize")

	code, _, errOut = execute(t, "types", "Nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown type "Nope"`)
}
