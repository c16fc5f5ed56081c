package script

import (
	"fmt"
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/toolkit"
)

// bridge converts values between Lua and Go.
type bridge struct {
	L *lua.LState

	// fn turns a Lua function into a Go value. Nil drops functions.
	fn func(*lua.LFunction) any
	// object turns a toolkit object into a Lua value. Nil uses its ID.
	object func(toolkit.Object) lua.LValue
}

// toGo converts a Lua value. Integral numbers become int64, other numbers
// float64. Sequences become []any and other tables map[string]any.
func (b *bridge) toGo(lv lua.LValue) any {
	return b.toGoVisited(lv, make(map[*lua.LTable]bool))
}

func (b *bridge) toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)
		return b.tableToGo(v, visited)
	case *lua.LFunction:
		if b.fn == nil {
			return nil
		}
		return b.fn(v)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func (b *bridge) tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = b.toGoVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = b.toGoVisited(v, visited)
	})
	return m
}

// toActions converts a Lua table into an action map.
func (b *bridge) toActions(t *lua.LTable) (action.Map, error) {
	if m, ok := b.toGo(t).(map[string]any); ok {
		return action.Map(m), nil
	}
	return nil, fmt.Errorf("%w: want a table of actions", action.ErrInvalidArgument)
}

// toLua converts a Go value.
func (b *bridge) toLua(v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint32:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := b.L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, b.toLua(item))
		}
		return t
	case []string:
		t := b.L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, lua.LString(item))
		}
		return t
	case []int:
		t := b.L.NewTable()
		for i, item := range val {
			t.RawSetInt(i+1, lua.LNumber(item))
		}
		return t
	case map[string]any:
		t := b.L.NewTable()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			t.RawSetString(k, b.toLua(val[k]))
		}
		return t
	case toolkit.Object:
		if b.object != nil {
			return b.object(val)
		}
		return lua.LString(val.ID())
	case lua.LValue:
		return val
	default:
		ud := b.L.NewUserData()
		ud.Value = v
		return ud
	}
}
