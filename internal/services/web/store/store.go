// Package store holds the process-wide roster state read by scenes.
//
// Readers take snapshots through GetState; every mutation goes through
// Dispatch, which persists the action before reducing it into memory.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Store exposes read, subscribe, and dispatch semantics over roster state.
type Store interface {
	GetState() State
	Subscribe(listener func(State)) (unsubscribe func())
	Dispatch(ctx context.Context, action Action) error
}

// Effect persists an action before it is reduced. A non-nil error aborts the
// dispatch and leaves state untouched.
type Effect func(ctx context.Context, action Action) error

// Memory is the default Store: in-memory state behind a mutex, with an
// optional persistence effect.
type Memory struct {
	mu          sync.RWMutex
	state       State
	effect      Effect
	listeners   map[int]func(State)
	nextID      int
	dispatching sync.Mutex
}

var _ Store = (*Memory)(nil)

// New builds a store seeded with initial state.
func New(initial State, effect Effect) *Memory {
	return &Memory{
		state:     initial.clone(),
		effect:    effect,
		listeners: make(map[int]func(State)),
	}
}

// GetState returns a snapshot that callers may not share back into the store.
func (m *Memory) GetState() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.clone()
}

// Subscribe registers listener for post-dispatch snapshots.
func (m *Memory) Subscribe(listener func(State)) func() {
	if listener == nil {
		return func() {}
	}
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = listener
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Dispatch runs the effect, reduces the action, then notifies listeners.
//
// Dispatches are serialized so that at most one transition is in flight.
func (m *Memory) Dispatch(ctx context.Context, action Action) error {
	if action == nil {
		return errors.New("action is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	m.dispatching.Lock()
	defer m.dispatching.Unlock()

	if m.effect != nil {
		if err := m.effect(ctx, action); err != nil {
			return fmt.Errorf("dispatch %s: %w", action.ActionType(), err)
		}
	}

	m.mu.Lock()
	next, err := Reduce(m.state, action)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("dispatch %s: %w", action.ActionType(), err)
	}
	m.state = next
	listeners := make([]func(State), 0, len(m.listeners))
	for _, listener := range m.listeners {
		listeners = append(listeners, listener)
	}
	snapshot := next.clone()
	m.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
	return nil
}
