// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting connects wallet identities and user input to the program client.

Reads are cached queries returning query.Result values, so a caller always
knows whether data is pending, failed or ready. Writes check the identity and
input before anything reaches the program:

	CreateProposal  ErrNotConnected, ErrInvalidForm, ErrPending
	Vote            ErrNotConnected, ErrProposalNotFound, ErrPending

A successful write invalidates the proposal cache and wakes subscribers.
*/
package voting
