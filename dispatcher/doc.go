// Package dispatcher routes declarative widget actions to per-type handlers.
//
// Callers describe the desired state of a widget as an action.Map. The
// engine walks the ancestor chain of the widget's type, runs the handler
// registered for each type on the way and applies every action it can
// to a setter or a callback. Actions nobody consumed are an error.
//
// # Architecture
//
//  1. Registry: maps a toolkit type to a handler.Definition. Setter
//     tables are validated against the type's Go methods when the
//     definition is registered.
//
//  2. Table: the immutable view returned by Registry.Seal. For every
//     registered type it caches the plan, the list of handlers found on
//     the ancestor chain with setters bound to the type's Go methods.
//
//  3. Router: runs one handler of a plan (Before, setters and callbacks,
//     After) against the pending actions.
//
//  4. Engine: orchestrates one Create, Configure or Compose operation.
//
// # Dispatch
//
// When an operation is dispatched:
//
//  1. Pre-dispatch hooks are called (may veto the operation)
//  2. The effective type is resolved from the operation's type or instance
//  3. Conflict pairs declared on the plan are checked against the actions
//  4. On Create, the most-derived handler builds the instance
//  5. Handlers run most-derived first
//  6. Leftover actions fail the operation with ErrUnknownActions
//  7. Post-dispatch hooks are called and metrics are recorded
//
// A handler that fails after earlier handlers already ran leaves the widget
// partially configured. Nothing is rolled back.
//
// # Usage
//
//	reg := dispatcher.NewRegistry()
//	reg.MustRegister(
//	    handler.Define(toolkit.LabelType, func() *LabelHandler { return &LabelHandler{} }).
//	        Set("text", "selectable").
//	        Definition(),
//	)
//	engine := dispatcher.New(reg.MustSeal(), dispatcher.WithLogger(logger))
//
//	label, err := engine.Create(toolkit.LabelType, action.Map{"text": "Hello"})
//
// # Thread Safety
//
// Registration is guarded by a mutex and ends with Seal. A sealed Table is
// never written, so concurrent dispatches need no locks on the read path.
package dispatcher
