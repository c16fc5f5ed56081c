package toolkit

import (
	"fmt"
	"strings"
)

// Adjustment is a bounded value with step and page increments, shared by
// scrollable widgets.
type Adjustment struct {
	ObjectBase

	value         float64
	lower         float64
	upper         float64
	stepIncrement float64
	pageIncrement float64
	pageSize      float64
}

// NewAdjustment creates an adjustment. The value is clamped to the range.
func NewAdjustment(value, lower, upper, step, page, pageSize float64) *Adjustment {
	a := &Adjustment{
		lower:         lower,
		upper:         upper,
		stepIncrement: step,
		pageIncrement: page,
		pageSize:      pageSize,
	}
	a.InitObject(AdjustmentType, a)
	a.value = a.clamp(value)
	return a
}

// clamp limits v to [lower, upper-pageSize].
func (a *Adjustment) clamp(v float64) float64 {
	return max(a.lower, min(v, a.upper-a.pageSize))
}

// SetValue sets the value within the range and emits "value-changed"
// when it moves.
func (a *Adjustment) SetValue(v float64) {
	v = a.clamp(v)
	if v == a.value {
		return
	}
	a.value = v
	a.Emit("value-changed")
}

// Value returns the current value.
func (a *Adjustment) Value() float64 { return a.value }

// SetLower sets the minimum value.
func (a *Adjustment) SetLower(v float64) { a.lower = v; a.changed() }

// Lower returns the minimum value.
func (a *Adjustment) Lower() float64 { return a.lower }

// SetUpper sets the maximum value.
func (a *Adjustment) SetUpper(v float64) { a.upper = v; a.changed() }

// Upper returns the maximum value.
func (a *Adjustment) Upper() float64 { return a.upper }

// SetStepIncrement sets the small increment.
func (a *Adjustment) SetStepIncrement(v float64) { a.stepIncrement = v; a.changed() }

// StepIncrement returns the small increment.
func (a *Adjustment) StepIncrement() float64 { return a.stepIncrement }

// SetPageIncrement sets the page increment.
func (a *Adjustment) SetPageIncrement(v float64) { a.pageIncrement = v; a.changed() }

// PageIncrement returns the page increment.
func (a *Adjustment) PageIncrement() float64 { return a.pageIncrement }

// SetPageSize sets the visible page size.
func (a *Adjustment) SetPageSize(v float64) { a.pageSize = v; a.changed() }

// PageSize returns the visible page size.
func (a *Adjustment) PageSize() float64 { return a.pageSize }

// changed emits "changed" after a bound moved and re-clamps the value.
func (a *Adjustment) changed() {
	a.Emit("changed")
	a.SetValue(a.value)
}

// ScrollPolicy decides when a scrollbar is shown.
type ScrollPolicy int

const (
	PolicyAutomatic ScrollPolicy = iota
	PolicyAlways
	PolicyNever
)

var scrollPolicyNames = []string{"automatic", "always", "never"}

// String returns the policy name.
func (p ScrollPolicy) String() string {
	if p < 0 || int(p) >= len(scrollPolicyNames) {
		return "unknown"
	}
	return scrollPolicyNames[p]
}

// ParseScrollPolicy parses a policy name, case-insensitively.
func ParseScrollPolicy(s string) (ScrollPolicy, error) {
	for i, name := range scrollPolicyNames {
		if strings.EqualFold(s, name) {
			return ScrollPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("toolkit: unknown scroll policy %q", s)
}

// ScrolledWindow shows its single child through a pair of adjustments.
type ScrolledWindow struct {
	Bin

	hadjustment *Adjustment
	vadjustment *Adjustment
	hpolicy     ScrollPolicy
	vpolicy     ScrollPolicy
}

// NewScrolledWindow creates a scrolled window. Nil adjustments are
// replaced by fresh ones.
func NewScrolledWindow(hadjustment, vadjustment *Adjustment) *ScrolledWindow {
	s := &ScrolledWindow{}
	s.InitWidget(ScrolledWindowType, s)
	s.SetHadjustment(hadjustment)
	s.SetVadjustment(vadjustment)
	return s
}

// SetHadjustment sets the horizontal adjustment, or a fresh one for nil.
func (s *ScrolledWindow) SetHadjustment(a *Adjustment) {
	if a == nil {
		a = NewAdjustment(0, 0, 0, 0, 0, 0)
	}
	s.hadjustment = a
}

// Hadjustment returns the horizontal adjustment.
func (s *ScrolledWindow) Hadjustment() *Adjustment {
	return s.hadjustment
}

// SetVadjustment sets the vertical adjustment, or a fresh one for nil.
func (s *ScrolledWindow) SetVadjustment(a *Adjustment) {
	if a == nil {
		a = NewAdjustment(0, 0, 0, 0, 0, 0)
	}
	s.vadjustment = a
}

// Vadjustment returns the vertical adjustment.
func (s *ScrolledWindow) Vadjustment() *Adjustment {
	return s.vadjustment
}

// SetPolicy sets the horizontal and vertical scrollbar policies.
func (s *ScrolledWindow) SetPolicy(h, v ScrollPolicy) {
	s.hpolicy = h
	s.vpolicy = v
}

// Policy returns the horizontal and vertical scrollbar policies.
func (s *ScrolledWindow) Policy() (ScrollPolicy, ScrollPolicy) {
	return s.hpolicy, s.vpolicy
}
