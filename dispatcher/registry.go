package dispatcher

import (
	"reflect"
	"sort"
	"sync"

	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// binding is a validated handler definition.
type binding struct {
	def       *handler.Definition
	setters   map[string]handler.SetterSpec
	callbacks map[string]handler.CallbackFunc
}

// Registry maps toolkit types to handler definitions. Definitions for
// capabilities are kept apart from the lineage ones. It is written during
// startup and frozen with Seal; dispatch reads only the sealed Table.
type Registry struct {
	mu           sync.Mutex
	bindings     map[*toolkit.Type]*binding
	capabilities map[*toolkit.Type]*binding
	sealed       *Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:     make(map[*toolkit.Type]*binding),
		capabilities: make(map[*toolkit.Type]*binding),
	}
}

func (r *Registry) table(t *toolkit.Type) map[*toolkit.Type]*binding {
	if t.IsCapability() {
		return r.capabilities
	}
	return r.bindings
}

// Register validates def and records it for def.Type, a type or a
// capability. A definition that fails validation is not recorded.
func (r *Registry) Register(def *handler.Definition) error {
	if def == nil || def.Type == nil {
		return regErr(ErrInvalidHandler, nil, "", "definition has no type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed != nil {
		return regErr(ErrRegistryFrozen, def.Type, "", "register after seal")
	}
	m := r.table(def.Type)
	if _, exists := m[def.Type]; exists {
		return regErr(ErrDuplicateRegistration, def.Type, "", "type already has a handler")
	}

	b, err := bind(def)
	if err != nil {
		return err
	}
	m[def.Type] = b
	return nil
}

// MustRegister registers every definition and panics on the first failure.
// Intended for package initialization.
func (r *Registry) MustRegister(defs ...*handler.Definition) {
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the definition registered for t.
func (r *Registry) Lookup(t *toolkit.Type) (*handler.Definition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.table(t)[t]
	if !ok {
		return nil, false
	}
	return b.def, true
}

// Len returns the number of registered types and capabilities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bindings) + len(r.capabilities)
}

// Sealed reports whether Seal has succeeded.
func (r *Registry) Sealed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sealed != nil
}

// Seal freezes the registry and returns its immutable dispatch table.
// Plans for every registered type are built here. Repeated calls return
// the same table.
func (r *Registry) Seal() (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed != nil {
		return r.sealed, nil
	}

	t := &Table{
		bindings:     make(map[*toolkit.Type]*binding, len(r.bindings)),
		capabilities: make(map[*toolkit.Type]*binding, len(r.capabilities)),
		plans:        make(map[*toolkit.Type]*plan, len(r.bindings)),
	}
	for typ, b := range r.bindings {
		t.bindings[typ] = b
		t.types = append(t.types, typ)
	}
	for c, b := range r.capabilities {
		t.capabilities[c] = b
		t.caps = append(t.caps, c)
	}
	byName := func(a []*toolkit.Type) {
		sort.Slice(a, func(i, j int) bool { return a[i].Name() < a[j].Name() })
	}
	byName(t.types)
	byName(t.caps)

	for _, typ := range t.types {
		p, err := buildPlan(typ, t.bindings, t.capabilities)
		if err != nil {
			return nil, err
		}
		t.plans[typ] = p
	}

	r.sealed = t
	return t, nil
}

// MustSeal is like Seal but panics on error.
func (r *Registry) MustSeal() *Table {
	t, err := r.Seal()
	if err != nil {
		panic(err)
	}
	return t
}

// bind checks def against the handler contract and the served type.
func bind(def *handler.Definition) (*binding, error) {
	typ := def.Type
	if def.New == nil {
		return nil, regErr(ErrInvalidHandler, typ, "", "definition has no handler factory")
	}
	if h := def.New(); isNil(h) {
		return nil, regErr(ErrInvalidHandler, typ, "", "handler factory returned nil")
	}

	b := &binding{
		def:       def,
		setters:   make(map[string]handler.SetterSpec, len(def.Setters)),
		callbacks: make(map[string]handler.CallbackFunc, len(def.Callbacks)),
	}

	for _, s := range def.Setters {
		if s.Action == "" {
			return nil, regErr(ErrInvalidHandler, typ, "", "setter with empty action name")
		}
		if _, dup := b.setters[s.Action]; dup {
			return nil, regErr(ErrInvalidHandler, typ, s.Action, "action declared twice")
		}
		b.setters[s.Action] = s
	}

	names := make([]string, 0, len(def.Callbacks))
	for name := range def.Callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cb := def.Callbacks[name]
		switch {
		case name == "":
			return nil, regErr(ErrInvalidHandler, typ, "", "callback with empty action name")
		case cb == nil:
			return nil, regErr(ErrInvalidHandler, typ, name, "nil callback")
		}
		if _, dup := b.setters[name]; dup {
			return nil, regErr(ErrInvalidHandler, typ, name, "action is both a setter and a callback")
		}
		b.callbacks[name] = cb
	}

	for _, pair := range def.Conflicts {
		if pair[0] == "" || pair[1] == "" || pair[0] == pair[1] {
			return nil, regErr(ErrInvalidHandler, typ, "", "bad conflict pair %q/%q", pair[0], pair[1])
		}
	}

	gt := typ.GoType()
	for _, s := range def.Setters {
		if _, err := resolveSetter(typ, gt, s); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// resolveSetter finds the setter method of s on the Go type gt. For a
// capability gt is its interface.
func resolveSetter(typ *toolkit.Type, gt reflect.Type, s handler.SetterSpec) (reflect.Method, error) {
	name := s.MethodName()
	if gt == nil {
		return reflect.Method{}, regErr(ErrMissingSetterMethod, typ, s.Action, "type %s has no instances to call %s on", typ.Name(), name)
	}
	m, ok := gt.MethodByName(name)
	if !ok {
		return reflect.Method{}, regErr(ErrMissingSetterMethod, typ, s.Action, "%s has no method %s", gt, name)
	}
	// m.Type includes the receiver, except on interfaces.
	ft := m.Type
	args := 2
	if gt.Kind() == reflect.Interface {
		args = 1
	}
	if ft.NumIn() != args || ft.IsVariadic() {
		return reflect.Method{}, regErr(ErrInvalidHandler, typ, s.Action, "%s must take exactly one argument", name)
	}
	switch {
	case ft.NumOut() == 0:
	case ft.NumOut() == 1 && ft.Out(0) == errorType:
	default:
		return reflect.Method{}, regErr(ErrInvalidHandler, typ, s.Action, "%s must return nothing or error", name)
	}
	return m, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// ActionKind tells how an action is consumed.
type ActionKind uint8

const (
	// SetterAction calls a method on the widget.
	SetterAction ActionKind = iota
	// CallbackAction calls a handler callback.
	CallbackAction
)

// String returns the kind name.
func (k ActionKind) String() string {
	if k == SetterAction {
		return "setter"
	}
	return "callback"
}

// ActionInfo describes an action accepted by a type.
type ActionInfo struct {
	Name    string
	Handler *toolkit.Type
	Kind    ActionKind
	// Method is the setter method name, empty for callbacks.
	Method string
}

// Table is the sealed, read-only view of a registry.
type Table struct {
	bindings     map[*toolkit.Type]*binding
	capabilities map[*toolkit.Type]*binding
	plans        map[*toolkit.Type]*plan
	types        []*toolkit.Type
	caps         []*toolkit.Type
}

// Lookup returns the definition registered for a type or capability.
func (t *Table) Lookup(typ *toolkit.Type) (*handler.Definition, bool) {
	m := t.bindings
	if typ.IsCapability() {
		m = t.capabilities
	}
	b, ok := m[typ]
	if !ok {
		return nil, false
	}
	return b.def, true
}

// Types returns the registered types sorted by name.
func (t *Table) Types() []*toolkit.Type {
	return append([]*toolkit.Type(nil), t.types...)
}

// Capabilities returns the registered capabilities sorted by name.
func (t *Table) Capabilities() []*toolkit.Type {
	return append([]*toolkit.Type(nil), t.caps...)
}

// Plan returns the handlers that run for typ: its lineage most-derived
// first, then the capabilities it provides.
func (t *Table) Plan(typ *toolkit.Type) ([]*toolkit.Type, bool) {
	p, ok := t.plans[typ]
	if !ok {
		return nil, false
	}
	out := make([]*toolkit.Type, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.binding.def.Type
	}
	return out, true
}

// Actions returns every action accepted by typ sorted by name. An action
// declared by several handlers on the chain is reported for the
// most-derived one.
func (t *Table) Actions(typ *toolkit.Type) []ActionInfo {
	p, ok := t.plans[typ]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var out []ActionInfo
	for _, s := range p.steps {
		b := s.binding
		for name, spec := range b.setters {
			if !seen[name] {
				seen[name] = true
				out = append(out, ActionInfo{Name: name, Handler: b.def.Type, Kind: SetterAction, Method: spec.MethodName()})
			}
		}
		for name := range b.callbacks {
			if !seen[name] {
				seen[name] = true
				out = append(out, ActionInfo{Name: name, Handler: b.def.Type, Kind: CallbackAction})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
