package dispatcher

import (
	"fmt"
	"reflect"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/toolkit"
)

// Ancestors returns the ancestor chain of t, most-derived first, ending at
// toolkit.Root.
func Ancestors(t *toolkit.Type) []*toolkit.Type {
	return t.Ancestors()
}

// setterFunc applies one setter to an instance of the plan's Go type.
type setterFunc func(obj toolkit.Object, arg any) error

// step is one handler of a plan with its setters bound to the effective type.
type step struct {
	binding *binding
	setters map[string]setterFunc
}

// plan is the cached dispatch route for one effective type.
type plan struct {
	target    *toolkit.Type
	goType    reflect.Type
	steps     []step
	conflicts []conflict
}

type conflict struct {
	handler *toolkit.Type
	pair    [2]string
}

// buildPlan collects the registered handlers on the chain of target,
// followed by those of the capabilities target provides, and binds their
// setters to the Go type of target. Setters declared on an ancestor
// resolve to the method the effective type exposes, so methods overridden
// through embedding are honored.
func buildPlan(target *toolkit.Type, bindings, capabilities map[*toolkit.Type]*binding) (*plan, error) {
	p := &plan{
		target: target,
		goType: target.GoType(),
	}
	for _, anc := range Ancestors(target) {
		if b, ok := bindings[anc]; ok {
			if err := p.add(anc, b); err != nil {
				return nil, err
			}
		}
	}
	for _, c := range target.Capabilities() {
		if b, ok := capabilities[c]; ok {
			if err := p.add(c, b); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func (p *plan) add(served *toolkit.Type, b *binding) error {
	s := step{binding: b, setters: make(map[string]setterFunc, len(b.setters))}
	for name, spec := range b.setters {
		m, err := resolveSetter(p.target, p.goType, spec)
		if err != nil {
			return err
		}
		s.setters[name] = makeSetter(m)
	}
	for _, pair := range b.def.Conflicts {
		p.conflicts = append(p.conflicts, conflict{handler: served, pair: pair})
	}
	p.steps = append(p.steps, s)
	return nil
}

func makeSetter(m reflect.Method) setterFunc {
	argType := m.Type.In(1)
	returnsErr := m.Type.NumOut() == 1
	return func(obj toolkit.Object, arg any) error {
		av, err := convertArg(arg, argType)
		if err != nil {
			return err
		}
		out := m.Func.Call([]reflect.Value{reflect.ValueOf(obj), av})
		if returnsErr && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	}
}

// convertArg adapts a decoded argument to the setter parameter type.
func convertArg(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: want %s, got nil", action.ErrInvalidArgument, t)
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := action.Int(v)
		if err != nil {
			return reflect.Value{}, err
		}
		if reflect.Zero(t).OverflowInt(int64(n)) {
			return reflect.Value{}, fmt.Errorf("%w: %d overflows %s", action.ErrInvalidArgument, n, t)
		}
		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := action.Int(v)
		if err != nil {
			return reflect.Value{}, err
		}
		if n < 0 || reflect.Zero(t).OverflowUint(uint64(n)) {
			return reflect.Value{}, fmt.Errorf("%w: want %s, got %d", action.ErrInvalidArgument, t, n)
		}
		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Float32, reflect.Float64:
		if rv.CanFloat() || rv.CanInt() || rv.CanUint() {
			return rv.Convert(t), nil
		}
	case reflect.String:
		if rv.Kind() == reflect.String {
			return rv.Convert(t), nil
		}
	case reflect.Bool:
		if rv.Kind() == reflect.Bool {
			return rv.Convert(t), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("%w: want %s, got %T", action.ErrInvalidArgument, t, v)
}

// checkConflicts reports the first declared pair present in actions.
func (p *plan) checkConflicts(actions action.Map) (conflict, bool) {
	for _, c := range p.conflicts {
		if actions.Has(c.pair[0]) && actions.Has(c.pair[1]) {
			return c, true
		}
	}
	return conflict{}, false
}
