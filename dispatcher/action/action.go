// Package action defines the action map consumed by the dispatcher and
// typed accessors for action arguments.
//
// Arguments are opaque to the engine. Handlers validate them with the
// accessors below, which accept both Go values and the shapes produced
// by TOML, YAML and JSON decoders (int64, float64, []any, map[string]any).
package action

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/dshills/actkit/toolkit"
)

// ErrInvalidArgument indicates an argument of the wrong shape for its action.
var ErrInvalidArgument = errors.New("action: invalid argument")

// Map maps action names to arguments. Dispatch removes entries as they
// are consumed.
type Map map[string]any

// Has reports whether the action is pending.
func (m Map) Has(name string) bool {
	_, ok := m[name]
	return ok
}

// Pop removes the action and returns its argument.
func (m Map) Pop(name string) (any, bool) {
	v, ok := m[name]
	if ok {
		delete(m, name)
	}
	return v, ok
}

// PopOr removes the action and returns its argument, or def if absent.
func (m Map) PopOr(name string, def any) any {
	if v, ok := m.Pop(name); ok {
		return v
	}
	return def
}

// Keys returns the pending action names sorted.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func invalid(want string, v any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrInvalidArgument, want, v)
}

// Bool interprets v as a boolean.
func Bool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, invalid("bool", v)
	}
	return b, nil
}

// Int interprets v as an integer. Floats must be integral and every
// value must fit in an int.
func Int(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if int64(int(n)) != n {
			return 0, overflow(v)
		}
		return int(n), nil
	case uint:
		return uintToInt(uint64(n), v)
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return uintToInt(uint64(n), v)
	case uint64:
		return uintToInt(n, v)
	case float32:
		return floatToInt(float64(n), v)
	case float64:
		return floatToInt(n, v)
	default:
		return 0, invalid("integer", v)
	}
}

func overflow(v any) error {
	return fmt.Errorf("%w: %v overflows int", ErrInvalidArgument, v)
}

func uintToInt(n uint64, v any) (int, error) {
	if n > math.MaxInt {
		return 0, overflow(v)
	}
	return int(n), nil
}

func floatToInt(f float64, v any) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, invalid("integer", v)
	}
	// -MinInt is a power of two, so both bounds are exact floats.
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, overflow(v)
	}
	return int(f), nil
}

// String interprets v as a string.
func String(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalid("string", v)
	}
	return s, nil
}

// List interprets v as a list.
func List(v any) ([]any, error) {
	switch l := v.(type) {
	case []any:
		return l, nil
	case []toolkit.Object:
		out := make([]any, len(l))
		for i, o := range l {
			out[i] = o
		}
		return out, nil
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, nil
	default:
		return nil, invalid("list", v)
	}
}

// Table interprets v as a string-keyed table.
func Table(v any) (map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case Map:
		return t, nil
	default:
		return nil, invalid("table", v)
	}
}

// Size interprets v as a (width, height) pair: a [2]int, a two-element
// list, or a table with "width" and "height".
func Size(v any) (int, int, error) {
	switch s := v.(type) {
	case [2]int:
		return s[0], s[1], nil
	case []int:
		if len(s) == 2 {
			return s[0], s[1], nil
		}
	case []any:
		if len(s) == 2 {
			w, err := Int(s[0])
			if err != nil {
				return 0, 0, err
			}
			h, err := Int(s[1])
			if err != nil {
				return 0, 0, err
			}
			return w, h, nil
		}
	case map[string]any:
		w, err := Int(s["width"])
		if err != nil {
			return 0, 0, err
		}
		h, err := Int(s["height"])
		if err != nil {
			return 0, 0, err
		}
		return w, h, nil
	}
	return 0, 0, invalid("(width, height)", v)
}

// Object interprets v as a toolkit object.
func Object(v any) (toolkit.Object, error) {
	o, ok := v.(toolkit.Object)
	if !ok || o == nil {
		return nil, invalid("object", v)
	}
	return o, nil
}

// Signals interprets v as a signal-name to callback table. Callbacks may
// be toolkit.Callback values or plain func(toolkit.Object, ...any).
func Signals(v any) (map[string]toolkit.Callback, error) {
	switch s := v.(type) {
	case map[string]toolkit.Callback:
		return s, nil
	case map[string]any:
		out := make(map[string]toolkit.Callback, len(s))
		for name, cb := range s {
			fn, err := Callback(cb)
			if err != nil {
				return nil, fmt.Errorf("signal %q: %w", name, err)
			}
			out[name] = fn
		}
		return out, nil
	default:
		return nil, invalid("signal table", v)
	}
}

// Callback interprets v as a signal callback.
func Callback(v any) (toolkit.Callback, error) {
	switch cb := v.(type) {
	case toolkit.Callback:
		if cb != nil {
			return cb, nil
		}
	case func(toolkit.Object, ...any):
		if cb != nil {
			return cb, nil
		}
	}
	return nil, invalid("callback", v)
}
