package handlers

import (
	"fmt"
	"sort"

	"github.com/dshills/actkit/dispatcher/action"
	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// ObjectHandler serves every toolkit object.
type ObjectHandler struct {
	handler.Base
}

// OnActionConnect connects each signal of a signal table.
func (h *ObjectHandler) OnActionConnect(ctx *handler.Context, arg any) error {
	return connectSignals(ctx.Widget, arg)
}

func connectSignals(obj toolkit.Object, arg any) error {
	signals, err := action.Signals(arg)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(signals))
	for name := range signals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := obj.Connect(name, signals[name]); err != nil {
			return fmt.Errorf("connect %s: %w", name, err)
		}
	}
	return nil
}

func objectDefinition() *handler.Definition {
	return handler.Define(toolkit.ObjectType, func() *ObjectHandler { return &ObjectHandler{} }).
		Callback("connect", (*ObjectHandler).OnActionConnect).
		Definition()
}

// StatusIconHandler serves StatusIcon.
type StatusIconHandler struct {
	handler.Base
}

func statusIconDefinition() *handler.Definition {
	return handler.Define(toolkit.StatusIconType, func() *StatusIconHandler { return &StatusIconHandler{} }).
		Set("tooltip_text", "icon_name", "visible").
		Definition()
}
