package toolkit

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Type identifies a concrete widget kind and its place in the lineage.
//
// A Type may instead stand for a capability: an interface facet shared by
// types outside their lineage. Capabilities have no parent and no
// constructor, and a type provides one when its instances implement the
// capability's interface.
type Type struct {
	name    string
	parent  *Type
	newFn   func() Object
	signals []string
	iface   reflect.Type
}

// Root is the universal root of every ancestor chain.
// It has no constructor and declares no signals.
var Root = &Type{name: "root"}

var (
	typesMu      sync.RWMutex
	types        = make(map[string]*Type)
	capabilities = make(map[string]*Type)
)

// NewType declares a type and records it in the toolkit's type table.
// It panics if the name is already taken or parent is nil, since types
// are declared from package initialization.
func NewType(name string, parent *Type, newFn func() Object, signals ...string) *Type {
	if parent == nil {
		panic(fmt.Sprintf("toolkit: type %s has no parent", name))
	}
	if parent.IsCapability() {
		panic(fmt.Sprintf("toolkit: type %s derives from capability %s", name, parent.name))
	}

	typesMu.Lock()
	defer typesMu.Unlock()

	if _, exists := types[name]; exists {
		panic(fmt.Sprintf("toolkit: type %s declared twice", name))
	}

	t := &Type{
		name:    name,
		parent:  parent,
		newFn:   newFn,
		signals: signals,
	}
	types[name] = t
	return t
}

// NewCapability declares a capability provided by every type whose
// instances implement I. It panics if I is not an interface or the name
// is already taken.
func NewCapability[I any](name string) *Type {
	iface := reflect.TypeFor[I]()
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("toolkit: capability %s needs an interface, got %s", name, iface))
	}

	typesMu.Lock()
	defer typesMu.Unlock()

	if _, exists := capabilities[name]; exists {
		panic(fmt.Sprintf("toolkit: capability %s declared twice", name))
	}
	c := &Type{name: name, iface: iface}
	capabilities[name] = c
	return c
}

// LookupCapability returns the capability declared under name.
func LookupCapability(name string) (*Type, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	c, ok := capabilities[name]
	return c, ok
}

// Lookup returns the type declared under name.
func Lookup(name string) (*Type, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := types[name]
	return t, ok
}

// Types returns all declared types sorted by name.
func Types() []*Type {
	typesMu.RLock()
	defer typesMu.RUnlock()

	out := make([]*Type, 0, len(types))
	for _, t := range types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// IsCapability reports whether t stands for a capability.
func (t *Type) IsCapability() bool {
	return t.iface != nil
}

// Provides reports whether instances of t implement capability c.
func (t *Type) Provides(c *Type) bool {
	if !c.IsCapability() {
		return false
	}
	gt := t.GoType()
	return gt != nil && gt.Implements(c.iface)
}

// Capabilities returns the declared capabilities t provides, sorted by name.
func (t *Type) Capabilities() []*Type {
	typesMu.RLock()
	all := make([]*Type, 0, len(capabilities))
	for _, c := range capabilities {
		all = append(all, c)
	}
	typesMu.RUnlock()

	var out []*Type
	for _, c := range all {
		if t.Provides(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// String implements fmt.Stringer.
func (t *Type) String() string {
	return t.name
}

// Parent returns the direct ancestor, or nil for Root and capabilities.
func (t *Type) Parent() *Type {
	return t.parent
}

// Ancestors returns the lineage of t, most-derived first, ending at Root.
func (t *Type) Ancestors() []*Type {
	var chain []*Type
	for cur := t; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	return chain
}

// IsA reports whether u appears on the ancestor chain of t.
func (t *Type) IsA(u *Type) bool {
	for cur := t; cur != nil; cur = cur.parent {
		if cur == u {
			return true
		}
	}
	return false
}

// Constructible reports whether the type can be default-constructed.
func (t *Type) Constructible() bool {
	return t.newFn != nil
}

// New default-constructs an instance of the type.
// It returns nil for types without a constructor (Root).
func (t *Type) New() Object {
	if t.newFn == nil {
		return nil
	}
	return t.newFn()
}

// HasSignal reports whether the signal is declared on the chain of t.
func (t *Type) HasSignal(signal string) bool {
	for cur := t; cur != nil; cur = cur.parent {
		for _, s := range cur.signals {
			if s == signal {
				return true
			}
		}
	}
	return false
}

// Signals returns every signal declared on the chain of t, sorted.
func (t *Type) Signals() []string {
	seen := make(map[string]bool)
	for cur := t; cur != nil; cur = cur.parent {
		for _, s := range cur.signals {
			seen[s] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// GoType returns the Go type of instances built by New, or the interface
// of a capability. It returns nil for types without a constructor.
func (t *Type) GoType() reflect.Type {
	if t.iface != nil {
		return t.iface
	}
	obj := t.New()
	if obj == nil {
		return nil
	}
	return reflect.TypeOf(obj)
}
