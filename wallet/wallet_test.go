// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wallet

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/quickly-vote/auth"
)

const testSecret = "test-secret"

func TestIdentity(t *testing.T) {
	key := solana.NewWallet().PublicKey()

	id := Connected(key)
	got, ok := id.PublicKey()
	if !ok || !got.Equals(key) {
		t.Errorf("Connected().PublicKey() = %s, %v", got, ok)
	}
	if id.String() != key.String() {
		t.Errorf("String() = %s, want %s", id.String(), key.String())
	}

	none := Disconnected()
	if none.IsConnected() {
		t.Error("Disconnected() should not be connected")
	}
	if _, ok := none.PublicKey(); ok {
		t.Error("Disconnected().PublicKey() should report absent")
	}
	if none.String() != "" {
		t.Errorf("Disconnected().String() = %q, want empty", none.String())
	}

	var zero Identity
	if zero.IsConnected() {
		t.Error("zero Identity should be disconnected")
	}
}

func TestParsePublicKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", false},
		{"system program is zero", "11111111111111111111111111111111", true},
		{"not base58", "0OIl", true},
		{"empty", "", true},
		{"too short", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePublicKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParsePublicKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestConnectThenFromRequest(t *testing.T) {
	key := solana.NewWallet().PublicKey()

	w := httptest.NewRecorder()
	token := Connect(w, key, testSecret)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected one %s cookie, got %v", CookieName, cookies)
	}
	if cookies[0].Value != token {
		t.Errorf("cookie value = %s, want %s", cookies[0].Value, token)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookies[0])

	id := FromRequest(req, testSecret)
	got, ok := id.PublicKey()
	if !ok || !got.Equals(key) {
		t.Errorf("FromRequest() = %s, %v; want %s", got, ok, key)
	}
}

func TestFromRequest(t *testing.T) {
	key := solana.NewWallet().PublicKey()
	valid := auth.SessionToken(key.String(), testSecret)

	tests := []struct {
		name      string
		cookie    string
		header    string
		connected bool
	}{
		{"no session", "", "", false},
		{"valid cookie", valid, "", true},
		{"valid header", "", valid, true},
		{"wrong secret", auth.SessionToken(key.String(), "other"), "", false},
		{"signed but malformed key", auth.SessionToken("not-a-key", testSecret), "", false},
		{"garbage", "garbage", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(SessionHeader, tt.header)
			}

			id := FromRequest(req, testSecret)
			if id.IsConnected() != tt.connected {
				t.Errorf("FromRequest() connected = %v, want %v", id.IsConnected(), tt.connected)
			}
		})
	}
}

func TestDisconnect(t *testing.T) {
	w := httptest.NewRecorder()
	Disconnect(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("expected expired cookie, got MaxAge %d", cookies[0].MaxAge)
	}
}
