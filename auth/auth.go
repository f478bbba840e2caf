// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidToken   = errors.New("invalid token format")
)

// GenerateSignature creates a random transaction signature.
// Used by the local ledger, which has no real transactions to sign.
func GenerateSignature() (solana.Signature, error) {
	var sig solana.Signature
	if _, err := rand.Read(sig[:]); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to generate signature: %w", err)
	}
	return sig, nil
}

// SignSession creates an HMAC tag binding a wallet public key to the server secret
func SignSession(publicKey, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(publicKey))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cookie-safe values
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateSession checks if the tag matches the public key
func ValidateSession(publicKey, tag, secret string) error {
	expected := SignSession(publicKey, secret)
	if !hmac.Equal([]byte(tag), []byte(expected)) {
		return ErrInvalidSession
	}
	return nil
}

// SessionToken joins a public key and its tag into a single cookie value
func SessionToken(publicKey, secret string) string {
	return publicKey + "." + SignSession(publicKey, secret)
}

// ParseSessionToken splits and verifies a session token, returning the public key
func ParseSessionToken(token, secret string) (string, error) {
	publicKey, tag, ok := strings.Cut(token, ".")
	if !ok || publicKey == "" || tag == "" {
		return "", ErrInvalidToken
	}
	if err := ValidateSession(publicKey, tag, secret); err != nil {
		return "", err
	}
	return publicKey, nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for log correlation
	return hex.EncodeToString(sum[:8])
}
