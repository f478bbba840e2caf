// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session signing and identifier generation utilities.

# Wallet Sessions

A connected wallet is remembered with an HMAC-SHA256 tag over its public key:

	token := auth.SessionToken(publicKey, secret)   // "<pubkey>.<tag>"
	publicKey, err := auth.ParseSessionToken(token, secret)

The tag is URL-safe base64 without padding. Since it's deterministic, the
same key and secret always produce the same tag, so nothing is stored
server-side. A tampered key or tag yields ErrInvalidSession.

Connecting only proves possession of the cookie, not of the private key.
Signing remains the wallet's job.

# Signatures

The local ledger has no real transactions, so it hands out random
64-byte signatures:

	sig, err := auth.GenerateSignature()

They render as base58 like any other transaction signature.

# IP Hashing

For privacy-preserving log correlation:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
