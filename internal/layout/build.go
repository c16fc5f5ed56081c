package layout

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dshills/actkit/dispatcher"
	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/toolkit"
)

// Callbacks resolves callback names to signal callbacks.
type Callbacks interface {
	Callback(name, signal string) (toolkit.Callback, error)
}

// Builder turns documents into widget trees through an engine.
type Builder struct {
	engine    *dispatcher.Engine
	callbacks Callbacks
	logger    zerolog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithCallbacks sets the resolver of callback names.
func WithCallbacks(c Callbacks) BuilderOption {
	return func(b *Builder) { b.callbacks = c }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a builder dispatching through e.
func NewBuilder(e *dispatcher.Engine, opts ...BuilderOption) *Builder {
	b := &Builder{engine: e, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With().Str("component", "layout").Logger()
	return b
}

// Tree is a built layout.
type Tree struct {
	Root toolkit.Object

	builder *Builder
	ids     map[string]toolkit.Object
	names   map[toolkit.Object]string
	paths   map[toolkit.Object]string
}

// Build creates every widget of doc, children before their parents.
func (b *Builder) Build(doc *Document) (*Tree, error) {
	t := &Tree{
		builder: b,
		ids:     make(map[string]toolkit.Object),
		names:   make(map[toolkit.Object]string),
		paths:   make(map[toolkit.Object]string),
	}
	root, err := b.node(t, doc.Root, "root")
	if err != nil {
		return nil, err
	}
	t.Root = root
	b.logger.Debug().
		Str("source", doc.Source).
		Int("widgets", len(t.paths)).
		Msg("layout built")
	return t, nil
}

// node creates the widget described by n.
func (b *Builder) node(t *Tree, n map[string]any, path string) (toolkit.Object, error) {
	fail := func(err error) (toolkit.Object, error) {
		if _, ok := err.(*NodeError); ok {
			return nil, err
		}
		return nil, &NodeError{Path: path, Err: err}
	}

	class, ok := n["class"].(string)
	if !ok || class == "" {
		return fail(ErrMissingClass)
	}
	typ, ok := toolkit.Lookup(class)
	if !ok {
		return fail(fmt.Errorf("%w: %s", ErrUnknownClass, class))
	}

	var id string
	if v, ok := n["id"]; ok {
		if id, ok = v.(string); !ok || id == "" {
			return fail(fmt.Errorf("%w: id must be a non-empty string", action.ErrInvalidArgument))
		}
		if _, taken := t.ids[id]; taken {
			return fail(fmt.Errorf("%w: %s", ErrDuplicateID, id))
		}
	}

	actions := make(action.Map, len(n))
	for k, v := range n {
		if k != "class" && k != "id" {
			actions[k] = v
		}
	}
	if err := b.resolve(t, actions, path); err != nil {
		return fail(err)
	}

	obj, err := b.engine.Create(typ, actions)
	if err != nil {
		return fail(err)
	}
	if id != "" {
		// A descendant may have claimed the id while the children were built.
		if _, taken := t.ids[id]; taken {
			return fail(fmt.Errorf("%w: %s", ErrDuplicateID, id))
		}
		t.ids[id] = obj
		t.names[obj] = id
	}
	t.paths[obj] = path
	return obj, nil
}

// signalActions hold signal tables rather than nodes.
var signalActions = []string{"connect", "selection_connect"}

// resolve replaces node tables with built widgets and callback names with
// callbacks, in place. Any table argument with a "class" key is a node.
func (b *Builder) resolve(t *Tree, actions action.Map, path string) error {
	for _, key := range actions.Keys() {
		n, ok := actions[key].(map[string]any)
		if !ok || slices.Contains(signalActions, key) {
			continue
		}
		if _, isNode := n["class"]; !isNode {
			continue
		}
		obj, err := b.node(t, n, path+"."+key)
		if err != nil {
			return err
		}
		actions[key] = obj
	}

	if v, ok := actions["children"]; ok {
		if items, ok := v.([]any); ok {
			out := make([]any, len(items))
			for i, item := range items {
				built, err := b.childItem(t, item, fmt.Sprintf("%s.children[%d]", path, i))
				if err != nil {
					return err
				}
				out[i] = built
			}
			actions["children"] = out
		}
	}

	for _, key := range signalActions {
		v, ok := actions[key]
		if !ok {
			continue
		}
		signals, ok := v.(map[string]any)
		if !ok {
			continue
		}
		resolved, err := b.signals(signals)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		actions[key] = resolved
	}
	return nil
}

// childItem builds a children entry: a node, or a [node, packing] pair.
func (b *Builder) childItem(t *Tree, item any, path string) (any, error) {
	switch v := item.(type) {
	case map[string]any:
		return b.node(t, v, path)
	case []any:
		if len(v) == 0 {
			return item, nil
		}
		n, ok := v[0].(map[string]any)
		if !ok {
			return item, nil
		}
		child, err := b.node(t, n, path)
		if err != nil {
			return nil, err
		}
		pair := append([]any{child}, v[1:]...)
		return pair, nil
	default:
		return item, nil
	}
}

func (b *Builder) signals(in map[string]any) (map[string]any, error) {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]any, len(in))
	for _, signal := range names {
		fn, ok := in[signal].(string)
		if !ok {
			out[signal] = in[signal]
			continue
		}
		if b.callbacks == nil {
			return nil, fmt.Errorf("%w: %s = %q", ErrNoCallbacks, signal, fn)
		}
		cb, err := b.callbacks.Callback(fn, signal)
		if err != nil {
			return nil, err
		}
		out[signal] = cb
	}
	return out, nil
}

// Lookup returns the widget with the given id.
func (t *Tree) Lookup(id string) (toolkit.Object, bool) {
	obj, ok := t.ids[id]
	return obj, ok
}

// IDOf returns the id of obj.
func (t *Tree) IDOf(obj toolkit.Object) (string, bool) {
	id, ok := t.names[obj]
	return id, ok
}

// PathOf returns the document path of obj.
func (t *Tree) PathOf(obj toolkit.Object) (string, bool) {
	p, ok := t.paths[obj]
	return p, ok
}

// IDs returns the ids of the tree, sorted.
func (t *Tree) IDs() []string {
	ids := make([]string, 0, len(t.ids))
	for id := range t.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of widgets built.
func (t *Tree) Len() int {
	return len(t.paths)
}

// Apply configures the widget with the given id. Node tables in the
// actions are built and added to the tree first.
func (t *Tree) Apply(id string, actions action.Map) error {
	return t.dispatch(id, actions, t.builder.engine.Configure)
}

// Compose attaches children to the container with the given id.
func (t *Tree) Compose(id string, actions action.Map) error {
	return t.dispatch(id, actions, t.builder.engine.Compose)
}

func (t *Tree) dispatch(id string, actions action.Map, run func(toolkit.Object, action.Map) (toolkit.Object, error)) error {
	obj, ok := t.ids[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownID, id)
	}
	path := t.paths[obj]
	snap := t.snapshot()
	if err := t.builder.resolve(t, actions, path); err != nil {
		t.restore(snap)
		return err
	}
	if _, err := run(obj, actions); err != nil {
		t.restore(snap)
		return &NodeError{Path: path, Err: err}
	}
	return nil
}

type treeSnapshot struct {
	ids   map[string]toolkit.Object
	names map[toolkit.Object]string
	paths map[toolkit.Object]string
}

func (t *Tree) snapshot() treeSnapshot {
	return treeSnapshot{ids: maps.Clone(t.ids), names: maps.Clone(t.names), paths: maps.Clone(t.paths)}
}

// restore drops the widgets built since snap from the index. Those already
// attached to a widget that predates snap are detached again.
func (t *Tree) restore(snap treeSnapshot) {
	for obj := range t.paths {
		if _, old := snap.paths[obj]; old {
			continue
		}
		wl, ok := obj.(toolkit.WidgetLike)
		if !ok {
			continue
		}
		parent, ok := wl.AsWidget().Parent().(toolkit.ContainerLike)
		if !ok {
			continue
		}
		if _, old := snap.paths[parent]; old {
			_ = parent.AsContainer().Remove(obj)
		}
	}
	t.ids, t.names, t.paths = snap.ids, snap.names, snap.paths
}
