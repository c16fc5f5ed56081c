package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/internal/handlers"
	"github.com/dshills/actkit/toolkit"
)

const tomlDoc = `
class = "Window"
id = "main"
title = "Hi"
default_width = 200

[connect]
destroy = "on_quit"

[child]
class = "VBox"
id = "body"
children = [
    { class = "Label", id = "status", text = "ready" },
    [{ class = "Button", id = "ok", label = "OK" }, { expand = false, order = "end" }],
]
`

const yamlDoc = `
class: Window
id: main
title: Hi
default_width: 200
connect:
  destroy: on_quit
child:
  class: VBox
  id: body
  children:
    - class: Label
      id: status
      text: ready
    - - class: Button
        id: ok
        label: OK
      - expand: false
        order: end
`

const jsonDoc = `{
  "class": "Window",
  "id": "main",
  "title": "Hi",
  "default_width": 200,
  "connect": {"destroy": "on_quit"},
  "child": {
    "class": "VBox",
    "id": "body",
    "children": [
      {"class": "Label", "id": "status", "text": "ready"},
      [{"class": "Button", "id": "ok", "label": "OK"}, {"expand": false, "order": "end"}]
    ]
  }
}`

type fakeCallbacks struct {
	fired []string
}

func (f *fakeCallbacks) Callback(name, signal string) (toolkit.Callback, error) {
	if name == "missing" {
		return nil, errors.New("no such function")
	}
	return func(toolkit.Object, ...any) { f.fired = append(f.fired, name+":"+signal) }, nil
}

func newBuilder(t *testing.T, opts ...BuilderOption) *Builder {
	t.Helper()
	reg := dispatcher.NewRegistry()
	require.NoError(t, handlers.Register(reg))
	table, err := reg.Seal()
	require.NoError(t, err)
	return NewBuilder(dispatcher.New(table), opts...)
}

func TestBuildEveryFormat(t *testing.T) {
	docs := map[Format]string{
		FormatTOML: tomlDoc,
		FormatYAML: yamlDoc,
		FormatJSON: jsonDoc,
	}
	for format, src := range docs {
		t.Run(string(format), func(t *testing.T) {
			doc, err := Parse([]byte(src), format)
			require.NoError(t, err)

			cbs := &fakeCallbacks{}
			tree, err := newBuilder(t, WithCallbacks(cbs)).Build(doc)
			require.NoError(t, err)

			win, ok := tree.Root.(*toolkit.Window)
			require.True(t, ok)
			assert.Equal(t, "Hi", win.Title())
			w, _ := win.DefaultSize()
			assert.Equal(t, 200, w)
			assert.Equal(t, []string{"body", "main", "ok", "status"}, tree.IDs())
			assert.Equal(t, 4, tree.Len())

			body, _ := tree.Lookup("body")
			okBtn, _ := tree.Lookup("ok")
			assert.Same(t, body, win.Child())
			p, found := body.(*toolkit.VBox).Packing(okBtn)
			require.True(t, found)
			assert.Equal(t, toolkit.Packing{Expand: false, Fill: true, End: true}, p)

			path, _ := tree.PathOf(okBtn)
			assert.Equal(t, "root.child.children[1]", path)

			win.Destroy()
			assert.Equal(t, []string{"on_quit:destroy"}, cbs.fired)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		root map[string]any
		want error
		path string
	}{
		{"missing class", map[string]any{"title": "x"}, ErrMissingClass, "root"},
		{"unknown class", map[string]any{"class": "Window", "child": map[string]any{"class": "Slider"}}, ErrUnknownClass, "root.child"},
		{"duplicate id", map[string]any{"class": "HBox", "id": "a", "children": []any{
			map[string]any{"class": "Label", "id": "a"},
		}}, ErrDuplicateID, "root"},
		{"no callbacks", map[string]any{"class": "Button", "connect": map[string]any{"clicked": "go"}}, ErrNoCallbacks, "root"},
		{"unknown action", map[string]any{"class": "Label", "colour": "red"}, dispatcher.ErrUnknownActions, "root"},
		{"bad id", map[string]any{"class": "Label", "id": 3}, action.ErrInvalidArgument, "root"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newBuilder(t).Build(&Document{Root: tt.root})
			require.ErrorIs(t, err, tt.want)
			var ne *NodeError
			require.ErrorAs(t, err, &ne)
			assert.Equal(t, tt.path, ne.Path)
		})
	}
}

func TestBuildCallbackResolutionError(t *testing.T) {
	doc := &Document{Root: map[string]any{
		"class":   "Button",
		"connect": map[string]any{"clicked": "missing"},
	}}
	_, err := newBuilder(t, WithCallbacks(&fakeCallbacks{})).Build(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect: no such function")
}

func TestApplyAndCompose(t *testing.T) {
	doc, err := Parse([]byte(tomlDoc), FormatTOML)
	require.NoError(t, err)
	tree, err := newBuilder(t, WithCallbacks(&fakeCallbacks{})).Build(doc)
	require.NoError(t, err)

	require.NoError(t, tree.Apply("status", action.Map{"text": "done"}))
	status, _ := tree.Lookup("status")
	assert.Equal(t, "done", status.(*toolkit.Label).Text())

	require.NoError(t, tree.Compose("body", action.Map{"children": []any{
		map[string]any{"class": "Entry", "id": "name", "max": int64(8)},
	}}))
	entry, ok := tree.Lookup("name")
	require.True(t, ok)
	body, _ := tree.Lookup("body")
	assert.Equal(t, body, entry.(*toolkit.Entry).Parent())

	err = tree.Apply("nobody", action.Map{})
	assert.ErrorIs(t, err, ErrUnknownID)

	err = tree.Apply("status", action.Map{"label": "x"})
	var ne *NodeError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "root.child.children[0]", ne.Path)
	assert.ErrorIs(t, err, dispatcher.ErrUnknownActions)
}

func TestApplyFailureLeavesNoOrphans(t *testing.T) {
	doc := &Document{Root: map[string]any{"class": "VBox", "id": "body"}}
	tree, err := newBuilder(t).Build(doc)
	require.NoError(t, err)
	body, _ := tree.Lookup("body")

	child := func() []any {
		return []any{map[string]any{"class": "Label", "id": "x", "text": "hi"}}
	}
	err = tree.Apply("body", action.Map{"children": child(), "bogus": 1})
	require.ErrorIs(t, err, dispatcher.ErrUnknownActions)

	_, found := tree.Lookup("x")
	assert.False(t, found)
	assert.Equal(t, 1, tree.Len())
	assert.Empty(t, body.(*toolkit.VBox).Children())

	require.NoError(t, tree.Apply("body", action.Map{"children": child()}))
	x, found := tree.Lookup("x")
	require.True(t, found)
	assert.Equal(t, []toolkit.Object{x}, body.(*toolkit.VBox).Children())
	assert.Equal(t, 2, tree.Len())
}

func TestComposeResolveFailureRestoresIndex(t *testing.T) {
	doc := &Document{Root: map[string]any{"class": "VBox", "id": "body"}}
	tree, err := newBuilder(t).Build(doc)
	require.NoError(t, err)

	err = tree.Compose("body", action.Map{"children": []any{
		map[string]any{"class": "Label", "id": "first"},
		map[string]any{"class": "Nope"},
	}})
	require.ErrorIs(t, err, ErrUnknownClass)
	assert.Equal(t, []string{"body"}, tree.IDs())
}

func TestBuildScrolledSortedTree(t *testing.T) {
	src := `
class = "ScrolledWindow"
id = "scroll"
policy = ["never", "automatic"]

[vadjustment]
class = "Adjustment"
upper = 100
page_size = 10

[child]
class = "TreeView"
id = "files"
rows = [["b.txt", "2"], ["a.txt", "1"]]
sort_column_id = [0, "ascending"]
`
	doc, err := Parse([]byte(src), FormatTOML)
	require.NoError(t, err)
	tree, err := newBuilder(t).Build(doc)
	require.NoError(t, err)

	sw, ok := tree.Root.(*toolkit.ScrolledWindow)
	require.True(t, ok)
	assert.Equal(t, 100.0, sw.Vadjustment().Upper())
	path, ok := tree.PathOf(sw.Vadjustment())
	require.True(t, ok)
	assert.Equal(t, "root.vadjustment", path)

	files, _ := tree.Lookup("files")
	assert.Same(t, files, sw.Child())
	assert.Equal(t, "a.txt", files.(*toolkit.TreeView).Model().Value(0, 0))

	out, err := Describe(tree)
	require.NoError(t, err)
	assert.Equal(t, "never", gjson.GetBytes(out, "policy.0").String())
	assert.Equal(t, "ascending", gjson.GetBytes(out, "children.0.sort_column_id.1").String())
}

func TestDescribe(t *testing.T) {
	doc, err := Parse([]byte(jsonDoc), FormatJSON)
	require.NoError(t, err)
	tree, err := newBuilder(t, WithCallbacks(&fakeCallbacks{})).Build(doc)
	require.NoError(t, err)

	out, err := Describe(tree)
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(out))

	j := gjson.ParseBytes(out)
	assert.Equal(t, "Window", j.Get("class").String())
	assert.Equal(t, "main", j.Get("id").String())
	assert.Equal(t, "Hi", j.Get("title").String())
	assert.Equal(t, int64(200), j.Get("default_size.0").Int())
	assert.True(t, j.Get("visible").Bool())
	assert.Equal(t, "VBox", j.Get("children.0.class").String())
	assert.Equal(t, "ready", j.Get("children.0.children.0.text").String())
	assert.Equal(t, "OK", j.Get("children.0.children.1.label").String())
	assert.Equal(t, "root.child.children[1]", j.Get("children.0.children.1.path").String())
}

func TestWalk(t *testing.T) {
	doc, err := Parse([]byte(tomlDoc), FormatTOML)
	require.NoError(t, err)
	tree, err := newBuilder(t, WithCallbacks(&fakeCallbacks{})).Build(doc)
	require.NoError(t, err)

	var seen []string
	Walk(tree.Root, func(obj toolkit.Object, depth int) {
		id, _ := tree.IDOf(obj)
		seen = append(seen, id)
		if id == "ok" {
			assert.Equal(t, 2, depth)
		}
	})
	assert.Equal(t, []string{"main", "body", "status", "ok"}, seen)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yml")
	require.NoError(t, os.WriteFile(path, []byte("class: Label\ntext: hi\n"), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Equal(t, FormatYAML, doc.Format)
	assert.Equal(t, "Label", doc.Root["class"])

	_, err = Load(filepath.Join(dir, "app.ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Parse([]byte(`[1, 2]`), FormatJSON)
	assert.ErrorIs(t, err, ErrNotNode)

	_, err = Parse([]byte(`{`), FormatJSON)
	assert.Error(t, err)
}
