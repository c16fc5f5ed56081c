package hook

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/actkit/dispatcher/handler"
)

// chain is a name-unique hook list kept in run order. Writers replace the
// slice instead of mutating it, so a slice read under the lock may be
// used after the lock is released.
type chain[H Hook] struct {
	hooks []H
	// before reports whether a runs before b.
	before func(a, b H) bool
}

func (c *chain[H]) put(h H) {
	next := slices.DeleteFunc(slices.Clone(c.hooks), func(e H) bool { return e.Name() == h.Name() })
	next = append(next, h)
	slices.SortStableFunc(next, func(a, b H) int {
		switch {
		case c.before(a, b):
			return -1
		case c.before(b, a):
			return 1
		default:
			return 0
		}
	})
	c.hooks = next
}

func (c *chain[H]) remove(name string) bool {
	i := slices.IndexFunc(c.hooks, func(e H) bool { return e.Name() == name })
	if i < 0 {
		return false
	}
	c.hooks = slices.Delete(slices.Clone(c.hooks), i, i+1)
	return true
}

func (c *chain[H]) names() []string {
	out := make([]string, len(c.hooks))
	for i, h := range c.hooks {
		out[i] = h.Name()
	}
	return out
}

// Manager runs pre-dispatch hooks highest priority first and
// post-dispatch hooks highest priority last. Registering a name again
// replaces the earlier hook.
type Manager struct {
	mu   sync.RWMutex
	pre  chain[PreDispatchHook]
	post chain[PostDispatchHook]
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		pre: chain[PreDispatchHook]{before: func(a, b PreDispatchHook) bool {
			return a.Priority() > b.Priority()
		}},
		post: chain[PostDispatchHook]{before: func(a, b PostDispatchHook) bool {
			return a.Priority() < b.Priority()
		}},
	}
}

// RegisterPre adds a pre-dispatch hook.
func (m *Manager) RegisterPre(h PreDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pre.put(h)
}

// RegisterPost adds a post-dispatch hook.
func (m *Manager) RegisterPost(h PostDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.post.put(h)
}

// Register adds h to every list whose interface it implements.
func (m *Manager) Register(h Hook) {
	if pre, ok := h.(PreDispatchHook); ok {
		m.RegisterPre(pre)
	}
	if post, ok := h.(PostDispatchHook); ok {
		m.RegisterPost(post)
	}
}

// UnregisterPre removes the pre-dispatch hook called name.
func (m *Manager) UnregisterPre(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pre.remove(name)
}

// UnregisterPost removes the post-dispatch hook called name.
func (m *Manager) UnregisterPost(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.post.remove(name)
}

// Unregister removes name from both lists.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	pre := m.pre.remove(name)
	post := m.post.remove(name)
	return pre || post
}

// RunPreDispatch runs the pre-dispatch hooks. The first error stops the
// chain and is returned wrapped in ErrDispatchVetoed.
func (m *Manager) RunPreDispatch(op *handler.Operation) error {
	m.mu.RLock()
	hooks := m.pre.hooks
	m.mu.RUnlock()

	for _, h := range hooks {
		if err := h.PreDispatch(op); err != nil {
			return fmt.Errorf("%w by %s: %w", ErrDispatchVetoed, h.Name(), err)
		}
	}
	return nil
}

// RunPostDispatch runs every post-dispatch hook.
func (m *Manager) RunPostDispatch(op *handler.Operation, out *handler.Outcome) {
	m.mu.RLock()
	hooks := m.post.hooks
	m.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(op, out)
	}
}

// PreHookCount returns the number of pre-dispatch hooks.
func (m *Manager) PreHookCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pre.hooks)
}

// PostHookCount returns the number of post-dispatch hooks.
func (m *Manager) PostHookCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.post.hooks)
}

// PreHookNames returns the pre-dispatch hook names in run order.
func (m *Manager) PreHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pre.names()
}

// PostHookNames returns the post-dispatch hook names in run order.
func (m *Manager) PostHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.post.names()
}

// Clear removes every hook.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pre.hooks = nil
	m.post.hooks = nil
}
