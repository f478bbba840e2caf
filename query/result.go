// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package query

// State of a Result
type State int

const (
	StatePending State = iota
	StateFailed
	StateReady
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Result is the outcome of reading a query: still pending, failed with Err,
// or ready with Value. Views are rendered from a Result, never from ambient flags.
type Result[T any] struct {
	State State
	Value T
	Err   error
}

func Pending[T any]() Result[T] {
	return Result[T]{State: StatePending}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{State: StateFailed, Err: err}
}

func Ready[T any](v T) Result[T] {
	return Result[T]{State: StateReady, Value: v}
}

func (r Result[T]) IsPending() bool { return r.State == StatePending }
func (r Result[T]) IsFailed() bool  { return r.State == StateFailed }
func (r Result[T]) IsReady() bool   { return r.State == StateReady }

// Get returns the value and whether it is ready
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.State == StateReady
}
