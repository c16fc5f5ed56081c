package dispatcher

import (
	"errors"

	"github.com/dshills/actkit/dispatcher/handler"
)

// route runs one handler of a plan: Before, then every pending action
// the handler recognizes, then After. Actions are visited in sorted order;
// an action removed by an earlier setter or callback is skipped.
func route(s step, h handler.Handler, ctx *handler.Context) error {
	typ := s.binding.def.Type

	if err := h.Before(ctx); err != nil {
		return &HandlerError{Handler: typ, Stage: StageBefore, Err: err}
	}

	for _, name := range ctx.Actions.Keys() {
		arg, pending := ctx.Actions[name]
		if !pending {
			continue
		}

		if set, ok := s.setters[name]; ok {
			delete(ctx.Actions, name)
			if err := set(ctx.Widget, arg); err != nil {
				return &HandlerError{Handler: typ, Stage: StageSetter, Action: name, Err: err}
			}
			continue
		}

		if cb, ok := s.binding.callbacks[name]; ok {
			delete(ctx.Actions, name)
			err := cb(h, ctx, arg)
			if errors.Is(err, handler.ErrDecline) {
				ctx.Actions[name] = arg
				continue
			}
			if err != nil {
				return &HandlerError{Handler: typ, Stage: StageCallback, Action: name, Err: err}
			}
		}
	}

	if err := h.After(ctx); err != nil {
		return &HandlerError{Handler: typ, Stage: StageAfter, Err: err}
	}
	return nil
}
