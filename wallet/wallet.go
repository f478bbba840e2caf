// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wallet

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/quickly-vote/auth"
)

const (
	CookieName    = "wallet"
	SessionHeader = "X-Wallet-Session"

	sessionMaxAge = 30 * 24 * time.Hour
)

// Identity is the connected wallet, or its absence. The zero value is
// disconnected.
type Identity struct {
	key       solana.PublicKey
	connected bool
}

func Connected(key solana.PublicKey) Identity {
	return Identity{key: key, connected: true}
}

func Disconnected() Identity {
	return Identity{}
}

// PublicKey returns the wallet address and whether a wallet is connected
func (i Identity) PublicKey() (solana.PublicKey, bool) {
	return i.key, i.connected
}

func (i Identity) IsConnected() bool {
	return i.connected
}

// String returns the base58 address, or "" when disconnected
func (i Identity) String() string {
	if !i.connected {
		return ""
	}
	return i.key.String()
}

// ParsePublicKey validates a base58 wallet address
func ParsePublicKey(s string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}
	if key.IsZero() {
		return solana.PublicKey{}, fmt.Errorf("invalid public key: zero address")
	}
	return key, nil
}

// FromRequest resolves the identity from the session cookie, falling back to
// the X-Wallet-Session header. Anything malformed or unsigned is disconnected.
func FromRequest(r *http.Request, secret string) Identity {
	token := r.Header.Get(SessionHeader)
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		token = c.Value
	}
	if token == "" {
		return Disconnected()
	}

	address, err := auth.ParseSessionToken(token, secret)
	if err != nil {
		return Disconnected()
	}
	key, err := ParsePublicKey(address)
	if err != nil {
		return Disconnected()
	}
	return Connected(key)
}

// Connect stores a signed session for key and returns the session token
func Connect(w http.ResponseWriter, key solana.PublicKey, secret string) string {
	token := auth.SessionToken(key.String(), secret)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// Disconnect clears the session cookie
func Disconnect(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
