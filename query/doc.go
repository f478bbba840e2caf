// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package query caches reads from the program client and tracks in-flight
mutations.

# Results

Every read produces a Result with one of three states:

	r := proposals.Read(ctx)
	switch r.State {
	case query.StatePending: // still loading
	case query.StateFailed:  // r.Err
	case query.StateReady:   // r.Value
	}

# Queries

A Query wraps a fetch function with a TTL cache. Concurrent reads share one
fetch (singleflight). Read waits for the fetch until its context is done and
then falls back to the stale value, or to a pending Result when nothing has
been fetched yet. Invalidate marks the value stale and signals subscribers:

	q := query.New("proposals", client.Proposals, 5*time.Second)
	ch, release := q.Subscribe()
	defer release()

# Mutations

A Mutation refuses a second submission for the same key while the first one
is running:

	err := m.Run(walletAddress, func() error { ... })  // ErrPending if busy
*/
package query
