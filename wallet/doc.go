// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package wallet models the connected wallet as an explicit Identity and
// keeps it in a signed session cookie. Signing transactions is left to the
// wallet itself.
package wallet
