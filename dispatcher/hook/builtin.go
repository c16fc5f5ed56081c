package hook

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/actkit/dispatcher/handler"
	"github.com/dshills/actkit/toolkit"
)

// Standard hook priorities.
const (
	PriorityAudit      = 1000 // Runs first (pre) / last (post)
	PriorityValidation = 800  // Validate before processing
	PriorityLogging    = 500
	PriorityTiming     = 100
)

// targetName returns the effective type name of an operation.
func targetName(op *handler.Operation) string {
	switch {
	case op.Type != nil:
		return op.Type.Name()
	case op.Widget != nil:
		return op.Widget.Type().Name()
	default:
		return ""
	}
}

// AuditRecord is one audited dispatch.
type AuditRecord struct {
	ID       string
	Time     time.Time
	Method   handler.Method
	Target   string
	Widget   string
	Actions  []string
	Handlers []string
	Err      error
	Duration time.Duration
}

// AuditHook keeps a bounded history of finished dispatches.
type AuditHook struct {
	mu      sync.RWMutex
	records []AuditRecord
	pending map[*handler.Operation][]string
	maxSize int
}

// NewAuditHook creates an audit hook retaining at most maxSize records
// (0 = unlimited).
func NewAuditHook(maxSize int) *AuditHook {
	return &AuditHook{
		pending: make(map[*handler.Operation][]string),
		maxSize: maxSize,
	}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch captures the requested action names before handlers consume them.
func (h *AuditHook) PreDispatch(op *handler.Operation) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending[op] = op.Actions.Keys()
	return nil
}

// PostDispatch records the outcome.
func (h *AuditHook) PostDispatch(op *handler.Operation, out *handler.Outcome) {
	h.mu.Lock()
	defer h.mu.Unlock()

	actions, ok := h.pending[op]
	if !ok {
		actions = op.Actions.Keys()
	}
	delete(h.pending, op)

	rec := AuditRecord{
		ID:       out.ID,
		Time:     time.Now(),
		Method:   op.Method,
		Target:   targetName(op),
		Actions:  actions,
		Err:      out.Err,
		Duration: out.Duration,
	}
	if out.Target != nil {
		rec.Target = out.Target.Name()
	}
	if out.Widget != nil {
		rec.Widget = out.Widget.ID()
	}
	for _, t := range out.Handlers {
		rec.Handlers = append(rec.Handlers, t.Name())
	}

	h.records = append(h.records, rec)
	if h.maxSize > 0 && len(h.records) > h.maxSize {
		h.records = h.records[len(h.records)-h.maxSize:]
	}
}

// Records returns a copy of the retained records, oldest first.
func (h *AuditHook) Records() []AuditRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]AuditRecord, len(h.records))
	copy(result, h.records)
	return result
}

// Recent returns the most recent n records.
func (h *AuditHook) Recent(n int) []AuditRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n >= len(h.records) {
		n = len(h.records)
	}
	result := make([]AuditRecord, n)
	copy(result, h.records[len(h.records)-n:])
	return result
}

// Clear removes all records.
func (h *AuditHook) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = h.records[:0]
}

// LoggingHook logs every dispatch to a zerolog logger.
type LoggingHook struct {
	logger zerolog.Logger
}

// NewLoggingHook creates a logging hook.
func NewLoggingHook(logger zerolog.Logger) *LoggingHook {
	return &LoggingHook{logger: logger.With().Str("component", "dispatch-hook").Logger()}
}

// Name implements Hook.
func (h *LoggingHook) Name() string { return "logging" }

// Priority implements Hook.
func (h *LoggingHook) Priority() int { return PriorityLogging }

// PreDispatch logs the operation.
func (h *LoggingHook) PreDispatch(op *handler.Operation) error {
	h.logger.Debug().
		Stringer("method", op.Method).
		Str("type", targetName(op)).
		Strs("actions", op.Actions.Keys()).
		Msg("dispatch start")
	return nil
}

// PostDispatch logs the outcome.
func (h *LoggingHook) PostDispatch(op *handler.Operation, out *handler.Outcome) {
	if out.Err != nil {
		h.logger.Warn().
			Str("op", out.ID).
			Stringer("method", op.Method).
			Str("type", targetName(op)).
			Err(out.Err).
			Msg("dispatch failed")
		return
	}
	h.logger.Debug().
		Str("op", out.ID).
		Stringer("method", op.Method).
		Str("type", targetName(op)).
		Dur("duration", out.Duration).
		Msg("dispatch complete")
}

// TimingHook reports the duration of every finished dispatch.
type TimingHook struct {
	callback func(method handler.Method, target *toolkit.Type, duration time.Duration)
}

// NewTimingHook creates a timing hook.
func NewTimingHook(callback func(method handler.Method, target *toolkit.Type, duration time.Duration)) *TimingHook {
	return &TimingHook{callback: callback}
}

// Name implements Hook.
func (h *TimingHook) Name() string { return "timing" }

// Priority implements Hook.
func (h *TimingHook) Priority() int { return PriorityTiming }

// PostDispatch reports the duration.
func (h *TimingHook) PostDispatch(op *handler.Operation, out *handler.Outcome) {
	if h.callback != nil {
		h.callback(op.Method, out.Target, out.Duration)
	}
}

// ValidationHook validates operations before dispatch using a custom function.
type ValidationHook struct {
	name     string
	priority int
	validate func(op *handler.Operation) error
}

// NewValidationHook creates a validation hook.
func NewValidationHook(name string, priority int, validate func(*handler.Operation) error) *ValidationHook {
	return &ValidationHook{
		name:     name,
		priority: priority,
		validate: validate,
	}
}

// Name implements Hook.
func (h *ValidationHook) Name() string { return h.name }

// Priority implements Hook.
func (h *ValidationHook) Priority() int { return h.priority }

// PreDispatch vetoes the operation if validation fails.
func (h *ValidationHook) PreDispatch(op *handler.Operation) error {
	if h.validate == nil {
		return nil
	}
	return h.validate(op)
}
