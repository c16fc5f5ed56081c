package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/toolkit"
)

type call struct {
	method  string
	id      string
	actions action.Map
}

type fakeHost struct {
	calls []call
	ids   map[toolkit.Object]string
	err   error
}

func (h *fakeHost) Apply(id string, actions action.Map) error {
	h.calls = append(h.calls, call{"apply", id, actions})
	return h.err
}

func (h *fakeHost) Compose(id string, actions action.Map) error {
	h.calls = append(h.calls, call{"compose", id, actions})
	return h.err
}

func (h *fakeHost) IDOf(obj toolkit.Object) (string, bool) {
	id, ok := h.ids[obj]
	return id, ok
}

func newRuntime(t *testing.T, opts ...Option) *Runtime {
	t.Helper()
	r := New(opts...)
	t.Cleanup(r.Close)
	return r
}

func TestSandboxRemovesLoaders(t *testing.T) {
	r := newRuntime(t)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		assert.Equal(t, lua.LNil, r.L.GetGlobal(name), name)
	}
	assert.Equal(t, lua.LNil, r.L.GetGlobal("io"))
	assert.Equal(t, lua.LNil, r.L.GetGlobal("os"))

	require.NoError(t, r.LoadString(`local s = require("string"); x = s.upper("ok")`))
	assert.Equal(t, lua.LString("OK"), r.L.GetGlobal("x"))

	err := r.LoadString(`require("os")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
}

func TestCallbackInvokesNamedFunction(t *testing.T) {
	host := &fakeHost{ids: map[toolkit.Object]string{}}
	r := newRuntime(t)
	r.SetHost(host)

	require.NoError(t, r.LoadString(`
		function on_click(id, signal, n)
			ui.set("status", { text = id .. " " .. signal .. " " .. tostring(n), visible = true })
		end
	`))

	btn := toolkit.NewButtonWithLabel("Go")
	host.ids[btn] = "go"

	cb, err := r.Callback("on_click", "clicked")
	require.NoError(t, err)
	_, err = btn.Connect("clicked", cb)
	require.NoError(t, err)
	btn.Emit("clicked", 3)

	require.Len(t, host.calls, 1)
	assert.Equal(t, "apply", host.calls[0].method)
	assert.Equal(t, "status", host.calls[0].id)
	assert.Equal(t, action.Map{"text": "go clicked 3", "visible": true}, host.calls[0].actions)
	assert.Empty(t, r.Errors())
}

func TestCallbackUnknownFunction(t *testing.T) {
	r := newRuntime(t)
	_, err := r.Callback("missing", "clicked")
	assert.ErrorIs(t, err, ErrNoFunction)
}

func TestUIAddAndErrors(t *testing.T) {
	host := &fakeHost{err: errors.New("rejected")}
	r := newRuntime(t)
	r.SetHost(host)

	require.NoError(t, r.LoadString(`
		ok, msg = ui.add("list", { children = { { class = "Label", text = "x" } } })
	`))
	assert.Equal(t, lua.LNil, r.L.GetGlobal("ok"))
	assert.Equal(t, lua.LString("rejected"), r.L.GetGlobal("msg"))

	require.Len(t, host.calls, 1)
	assert.Equal(t, "compose", host.calls[0].method)
	children := host.calls[0].actions["children"].([]any)
	assert.Equal(t, map[string]any{"class": "Label", "text": "x"}, children[0])
}

func TestUISetWithoutHost(t *testing.T) {
	r := newRuntime(t)
	require.NoError(t, r.LoadString(`ok, msg = ui.set("a", {})`))
	assert.Equal(t, lua.LString(ErrNoHost.Error()), r.L.GetGlobal("msg"))
}

func TestInlineFunctionsBecomeCallbacks(t *testing.T) {
	host := &fakeHost{}
	r := newRuntime(t)
	r.SetHost(host)

	require.NoError(t, r.LoadString(`
		ui.set("win", { connect = { destroy = function(id) closed = id end } })
	`))
	require.Len(t, host.calls, 1)

	signals, err := action.Signals(host.calls[0].actions["connect"])
	require.NoError(t, err)

	win := toolkit.NewWindow(toolkit.WindowToplevel)
	_, err = win.Connect("destroy", signals["destroy"])
	require.NoError(t, err)
	win.Destroy()
	assert.Equal(t, lua.LString(win.ID()), r.L.GetGlobal("closed"))
}

func TestLogAndQuit(t *testing.T) {
	var buf bytes.Buffer
	quits := 0
	r := newRuntime(t,
		WithLogger(zerolog.New(&buf)),
		WithQuit(func() { quits++ }),
	)

	require.NoError(t, r.LoadString(`ui.log("hello"); ui.quit()`))
	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"component":"script"`)
	assert.True(t, r.QuitRequested())
	assert.Equal(t, 1, quits)
}

func TestCallLimit(t *testing.T) {
	r := newRuntime(t, WithCallLimit(3))
	err := r.LoadString(`for i = 1, 10 do ui.log("x") end`)
	assert.ErrorIs(t, err, ErrCallLimit)

	require.NoError(t, r.LoadString(`ui.log("budget resets")`))
}

func TestTimeout(t *testing.T) {
	r := newRuntime(t, WithTimeout(50*time.Millisecond))
	err := r.LoadString(`while true do end`)
	assert.ErrorIs(t, err, ErrTimeout)

	require.NoError(t, r.LoadString(`y = 1`), "the state stays usable")
}

func TestCallbackFailuresAreRecorded(t *testing.T) {
	r := newRuntime(t)
	require.NoError(t, r.LoadString(`function boom() error("bad") end`))

	cb, err := r.Callback("boom", "clicked")
	require.NoError(t, err)
	cb(toolkit.NewButton())

	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "boom on clicked")
	assert.Contains(t, errs[0].Error(), "bad")
}

func TestLoadFileAndCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.lua")
	require.NoError(t, os.WriteFile(path, []byte(`function add(a, b) total = a + b end`), 0o644))

	r := newRuntime(t)
	require.NoError(t, r.LoadFile(path))
	require.True(t, r.HasFunction("add"))
	require.NoError(t, r.Call("add", 2, int64(5)))
	assert.Equal(t, lua.LNumber(7), r.L.GetGlobal("total"))

	assert.ErrorIs(t, r.Call("nope"), ErrNoFunction)

	err := r.LoadFile(filepath.Join(t.TempDir(), "missing.lua"))
	assert.Error(t, err)
}

func TestClosed(t *testing.T) {
	r := New()
	r.Close()
	r.Close()
	assert.ErrorIs(t, r.LoadString(`x = 1`), ErrClosed)
}

func TestBridgeRoundTrip(t *testing.T) {
	r := newRuntime(t)
	b := r.bridge

	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{true, true},
		{42, int64(42)},
		{2.5, 2.5},
		{"s", "s"},
		{[]string{"a", "b"}, []any{"a", "b"}},
		{map[string]any{"k": []any{int64(1)}}, map[string]any{"k": []any{int64(1)}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.toGo(b.toLua(tt.in)), fmt.Sprintf("%v", tt.in))
	}

	btn := toolkit.NewButton()
	assert.Equal(t, lua.LString(btn.ID()), b.toLua(btn))
}
