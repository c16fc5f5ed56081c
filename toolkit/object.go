package toolkit

import (
	"fmt"

	"github.com/google/uuid"
)

// Callback is invoked when a connected signal is emitted.
type Callback func(obj Object, args ...any)

// HandlerID identifies one signal connection on an object.
type HandlerID uint64

// Object is implemented by every toolkit instance.
type Object interface {
	// Type returns the most-derived type of the instance.
	Type() *Type

	// ID returns the unique instance identifier.
	ID() string

	// Connect attaches cb to signal.
	Connect(signal string, cb Callback) (HandlerID, error)

	// Disconnect removes a connection. It returns false if id is unknown.
	Disconnect(id HandlerID) bool

	// Emit invokes every callback connected to signal and returns how many ran.
	Emit(signal string, args ...any) int
}

type connection struct {
	id HandlerID
	cb Callback
}

// ObjectBase implements Object. Concrete types embed it through their
// parent struct and call InitObject (or InitWidget) from their constructor.
type ObjectBase struct {
	typ     *Type
	self    Object
	id      string
	nextID  HandlerID
	signals map[string][]connection
}

// InitObject binds the instance to its type. self is the outermost
// struct, passed to signal callbacks.
func (o *ObjectBase) InitObject(t *Type, self Object) {
	o.typ = t
	o.self = self
	o.id = uuid.NewString()
	o.signals = make(map[string][]connection)
}

// Type implements Object.
func (o *ObjectBase) Type() *Type {
	return o.typ
}

// ID implements Object.
func (o *ObjectBase) ID() string {
	return o.id
}

// Connect implements Object.
func (o *ObjectBase) Connect(signal string, cb Callback) (HandlerID, error) {
	if cb == nil {
		return 0, ErrNilCallback
	}
	if !o.typ.HasSignal(signal) {
		return 0, fmt.Errorf("%w: %s has no signal %q", ErrUnknownSignal, o.typ.Name(), signal)
	}
	o.nextID++
	o.signals[signal] = append(o.signals[signal], connection{id: o.nextID, cb: cb})
	return o.nextID, nil
}

// Disconnect implements Object.
func (o *ObjectBase) Disconnect(id HandlerID) bool {
	for signal, conns := range o.signals {
		for i, c := range conns {
			if c.id == id {
				o.signals[signal] = append(conns[:i], conns[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Emit implements Object.
func (o *ObjectBase) Emit(signal string, args ...any) int {
	conns := append([]connection(nil), o.signals[signal]...)
	for _, c := range conns {
		c.cb(o.self, args...)
	}
	return len(conns)
}

// HandlerCount returns the number of callbacks connected to signal.
func (o *ObjectBase) HandlerCount(signal string) int {
	return len(o.signals[signal])
}

// NewObject creates a plain object.
func NewObject() *ObjectBase {
	o := &ObjectBase{}
	o.InitObject(ObjectType, o)
	return o
}
