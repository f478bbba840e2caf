// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutation_BeginRefusesWhilePending(t *testing.T) {
	m := NewMutation("vote")

	assert.True(t, m.Begin("alice"))
	assert.True(t, m.Pending("alice"))
	assert.False(t, m.Begin("alice"), "second Begin for same key must be refused")

	// Other keys are independent
	assert.True(t, m.Begin("bob"))

	m.End("alice")
	assert.False(t, m.Pending("alice"))
	assert.True(t, m.Begin("alice"))
}

func TestMutation_Run(t *testing.T) {
	m := NewMutation("create")
	boom := errors.New("boom")

	err := m.Run("alice", func() error {
		assert.True(t, m.Pending("alice"))

		// Nested submission while the first is in flight
		inner := m.Run("alice", func() error {
			t.Fatal("nested run must not execute")
			return nil
		})
		assert.ErrorIs(t, inner, ErrPending)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, m.Pending("alice"), "Run must clear pending even on error")
}
