// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/quickly-vote/cluster"
)

const toastCookie = "toast"

// TransactionToast announces a sent transaction with an explorer link
func TransactionToast(c cluster.Cluster, sig solana.Signature) ToastVM {
	return ToastVM{
		Message:   "Transaction sent",
		LinkLabel: "View Transaction",
		URL:       c.ExplorerURL("tx/" + sig.String()),
	}
}

// SetToast stores t for the next page the browser loads
func SetToast(w http.ResponseWriter, t ToastVM) {
	b, err := json.Marshal(t)
	if err != nil {
		slog.Error("failed to encode toast", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     toastCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeToast returns the pending toast, if any, and clears it
func TakeToast(w http.ResponseWriter, r *http.Request) *ToastVM {
	c, err := r.Cookie(toastCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     toastCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var t ToastVM
	if err := json.Unmarshal(b, &t); err != nil || t.Message == "" {
		return nil
	}
	return &t
}
