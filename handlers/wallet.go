// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/ui"
	"github.com/danielhkuo/quickly-vote/wallet"
)

type WalletHandler struct {
	cfg     cliparse.Config
	cluster cluster.Cluster
}

func NewWalletHandler(cfg cliparse.Config, c cluster.Cluster) *WalletHandler {
	return &WalletHandler{cfg: cfg, cluster: c}
}

// Connect handles POST /wallet/connect
// Accepts the connect dialog form, or JSON for API clients.
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if isJSON(r) {
		h.connectJSON(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	returnTo := safeReturn(r.PostForm.Get("return"))
	address := strings.TrimSpace(r.PostForm.Get("public_key"))

	key, err := wallet.ParsePublicKey(address)
	if err != nil {
		base := ui.NewBase("Connect Wallet", "page.home", returnTo, wallet.Disconnected(), h.cluster)
		base.Modal = ui.ConnectModal(true, returnTo, address, "Enter a valid wallet address.")
		ui.RenderStatus(w, http.StatusBadRequest, ui.HomeVM{BaseVM: base})
		return
	}

	wallet.Connect(w, key, h.cfg.SessionSecret)
	slog.Info("wallet connected", "wallet", key.String())
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

func (h *WalletHandler) connectJSON(w http.ResponseWriter, r *http.Request) {
	var req models.ConnectWalletRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	key, err := wallet.ParsePublicKey(req.PublicKey)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "public_key must be a base58 wallet address")
		return
	}

	session := wallet.Connect(w, key, h.cfg.SessionSecret)
	slog.Info("wallet connected", "wallet", key.String())
	middleware.JSONResponse(w, http.StatusOK, models.ConnectWalletResponse{
		PublicKey: key.String(),
		Session:   session,
	})
}

// Disconnect handles POST /wallet/disconnect
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	wallet.Disconnect(w)
	if isJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, safeReturn(r.FormValue("return")), http.StatusSeeOther)
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// safeReturn keeps redirects on this site
func safeReturn(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}
