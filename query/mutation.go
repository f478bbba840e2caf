// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

import (
	"errors"
	"log/slog"
	"sync"
)

var ErrPending = errors.New("mutation already pending")

// Mutation tracks in-flight submissions per key (typically a wallet address).
// A second submission for a key is refused until the first one ends.
type Mutation struct {
	name string

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewMutation(name string) *Mutation {
	return &Mutation{name: name, inflight: make(map[string]struct{})}
}

// Begin marks key as pending. It returns false if key was already pending.
func (m *Mutation) Begin(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.inflight[key]; ok {
		return false
	}
	m.inflight[key] = struct{}{}
	return true
}

func (m *Mutation) End(key string) {
	m.mu.Lock()
	delete(m.inflight, key)
	m.mu.Unlock()
}

func (m *Mutation) Pending(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.inflight[key]
	return ok
}

// Run executes fn while key is marked pending
func (m *Mutation) Run(key string, fn func() error) error {
	if !m.Begin(key) {
		slog.Debug("submission refused while pending", "mutation", m.name, "key", key)
		return ErrPending
	}
	defer m.End(key)
	return fn()
}
