// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/program"
	"github.com/danielhkuo/quickly-vote/ui"
	"github.com/danielhkuo/quickly-vote/voting"
	"github.com/danielhkuo/quickly-vote/wallet"
)

// ProposalHandler serves the HTML form posts of the voting page
type ProposalHandler struct {
	svc     *voting.Service
	cfg     cliparse.Config
	cluster cluster.Cluster
	pages   *PageHandler
}

func NewProposalHandler(svc *voting.Service, cfg cliparse.Config, c cluster.Cluster) *ProposalHandler {
	return &ProposalHandler{
		svc:     svc,
		cfg:     cfg,
		cluster: c,
		pages:   NewPageHandler(svc, cfg, c),
	}
}

// Create handles POST /voting/proposals
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id := wallet.FromRequest(r, h.cfg.SessionSecret)
	form := voting.ProposalForm{
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
	}

	sig, err := h.svc.CreateProposal(r.Context(), id, form)
	switch {
	case err == nil:
	case errors.Is(err, voting.ErrNotConnected):
		http.Redirect(w, r, "/voting?connect=1", http.StatusSeeOther)
		return
	case errors.Is(err, voting.ErrInvalidForm):
		h.pages.renderVoting(w, r, http.StatusBadRequest, id, form, "Title and description are required.")
		return
	case errors.Is(err, voting.ErrPending):
		h.pages.renderVoting(w, r, http.StatusConflict, id, form, "A proposal is already being created.")
		return
	case errors.Is(err, program.ErrProgramNotDeployed):
		h.pages.renderVoting(w, r, http.StatusConflict, id, form, "Program account not found.")
		return
	default:
		slog.Error("failed to create proposal",
			"request_id", middleware.RequestID(r.Context()),
			"creator", id.String(),
			"error", err,
		)
		h.pages.renderVoting(w, r, http.StatusBadGateway, id, form, "Failed to create proposal.")
		return
	}

	ui.SetToast(w, ui.TransactionToast(h.cluster, sig))
	http.Redirect(w, r, "/voting", http.StatusSeeOther)
}

// Refresh handles POST /voting/refresh
// Drops the cached program account and proposals, e.g. after a deploy.
func (h *ProposalHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.svc.Refresh()
	http.Redirect(w, r, "/voting", http.StatusSeeOther)
}

// Vote handles POST /voting/proposals/{key}/vote
// Failures are logged only; the page is shown again with the current tallies.
func (h *ProposalHandler) Vote(w http.ResponseWriter, r *http.Request) {
	key, err := wallet.ParsePublicKey(r.PathValue("key"))
	if err != nil {
		http.Error(w, "invalid proposal key", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var voteFor bool
	switch r.PostForm.Get("choice") {
	case models.ChoiceFor:
		voteFor = true
	case models.ChoiceAgainst:
	default:
		http.Error(w, "choice must be for or against", http.StatusBadRequest)
		return
	}

	id := wallet.FromRequest(r, h.cfg.SessionSecret)
	if !id.IsConnected() {
		http.Redirect(w, r, "/voting?connect=1", http.StatusSeeOther)
		return
	}

	sig, err := h.svc.Vote(r.Context(), id, key, voteFor)
	if err != nil {
		slog.Error("error voting",
			"request_id", middleware.RequestID(r.Context()),
			"proposal", key.String(),
			"voter", id.String(),
			"vote_for", voteFor,
			"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSecret),
			"error", err,
		)
		http.Redirect(w, r, "/voting", http.StatusSeeOther)
		return
	}

	slog.Info("vote cast",
		"proposal", key.String(),
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSecret),
	)
	ui.SetToast(w, ui.TransactionToast(h.cluster, sig))
	http.Redirect(w, r, "/voting", http.StatusSeeOther)
}
