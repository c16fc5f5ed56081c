// Package hook provides extensible pre/post dispatch hooks for the dispatch engine.
//
// Hooks intercept every Create, Configure and Compose operation for
// logging, auditing, validation and timing. They are organized by
// priority to control execution order.
//
// # Hook Types
//
//   - PreDispatchHook: called before the engine resolves the operation.
//     Returning an error vetoes the dispatch (ErrDispatchVetoed).
//   - PostDispatchHook: called after the operation finished, with its Outcome.
//
// # Priority System
//
//   - Pre-hooks: higher priority runs first
//   - Post-hooks: lower priority runs first, higher runs last
//
// # Built-in Hooks
//
//   - AuditHook: bounded history of dispatched operations
//   - LoggingHook: zerolog logging of each dispatch
//   - TimingHook: reports dispatch durations
//   - ValidationHook: custom validation before dispatch
//
// # Hook Manager
//
//	manager := hook.NewManager()
//	manager.Register(hook.NewAuditHook(256))
//	manager.Register(hook.NewLoggingHook(logger))
//
//	if err := manager.RunPreDispatch(&op); err == nil {
//	    // dispatch...
//	    manager.RunPostDispatch(&op, &outcome)
//	}
//
// # Thread Safety
//
// All hook types are safe for concurrent use. The Manager copies its hook
// lists under a read lock before running them.
package hook
