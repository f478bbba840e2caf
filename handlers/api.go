// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/program"
	"github.com/danielhkuo/quickly-vote/query"
	"github.com/danielhkuo/quickly-vote/voting"
	"github.com/danielhkuo/quickly-vote/wallet"
)

// APIHandler serves the JSON API. Writes authenticate with the wallet
// session cookie or the X-Wallet-Session header.
type APIHandler struct {
	svc     *voting.Service
	cfg     cliparse.Config
	cluster cluster.Cluster
}

func NewAPIHandler(svc *voting.Service, cfg cliparse.Config, c cluster.Cluster) *APIHandler {
	return &APIHandler{svc: svc, cfg: cfg, cluster: c}
}

// ListProposals handles GET /api/proposals
func (h *APIHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	resp, err := snapshot(r.Context(), h.svc)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetProgram handles GET /api/program
func (h *APIHandler) GetProgram(w http.ResponseWriter, r *http.Request) {
	exists, err := resultValue(h.svc.ProgramAccount(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ProgramStatusResponse{
		ProgramID: h.cfg.ProgramID,
		Cluster:   h.cluster.Name,
		Exists:    exists,
	})
}

// CreateProposal handles POST /api/proposals
func (h *APIHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id := wallet.FromRequest(r, h.cfg.SessionSecret)
	sig, err := h.svc.CreateProposal(r.Context(), id, voting.ProposalForm{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProposalResponse{
		Signature:   sig.String(),
		ExplorerURL: h.cluster.ExplorerURL("tx/" + sig.String()),
	})
}

// CastVote handles POST /api/proposals/{key}/votes
func (h *APIHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	key, err := wallet.ParsePublicKey(r.PathValue("key"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid proposal key")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id := wallet.FromRequest(r, h.cfg.SessionSecret)
	sig, err := h.svc.Vote(r.Context(), id, key, req.VoteFor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slog.Info("vote cast",
		"proposal", key.String(),
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.SessionSecret),
	)
	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		Signature:   sig.String(),
		ExplorerURL: h.cluster.ExplorerURL("tx/" + sig.String()),
	})
}

// snapshot reads the program account and, when it exists, the proposals
func snapshot(ctx context.Context, svc *voting.Service) (models.ProposalsResponse, error) {
	exists, err := resultValue(svc.ProgramAccount(ctx))
	if err != nil {
		return models.ProposalsResponse{}, err
	}
	resp := models.ProposalsResponse{ProgramAccount: exists, Proposals: []models.Proposal{}}
	if !exists {
		return resp, nil
	}

	proposals, err := resultValue(svc.Proposals(ctx))
	if err != nil {
		return models.ProposalsResponse{}, err
	}
	if proposals != nil {
		resp.Proposals = proposals
	}
	return resp, nil
}

func resultValue[T any](res query.Result[T]) (T, error) {
	switch res.State {
	case query.StatePending:
		var zero T
		return zero, voting.ErrUnavailable
	case query.StateFailed:
		var zero T
		return zero, res.Err
	}
	return res.Value, nil
}

// writeServiceError maps voting and program errors to HTTP statuses
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, voting.ErrNotConnected):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Wallet not connected")
	case errors.Is(err, voting.ErrInvalidForm):
		middleware.ErrorResponse(w, http.StatusBadRequest, "title and description are required")
	case errors.Is(err, voting.ErrPending):
		middleware.ErrorResponse(w, http.StatusConflict, "A previous submission is still pending")
	case errors.Is(err, voting.ErrProposalNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Proposal not found")
	case errors.Is(err, program.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "Wallet already voted on this proposal")
	case errors.Is(err, program.ErrProgramNotDeployed):
		middleware.ErrorResponse(w, http.StatusConflict, "Program account not found")
	case errors.Is(err, program.ErrReadOnly):
		middleware.ErrorResponse(w, http.StatusNotImplemented, "Transactions must be signed by the wallet")
	case errors.Is(err, voting.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Proposals are still loading")
	default:
		slog.Error("program call failed", "request_id", middleware.RequestID(r.Context()), "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Program error: "+strings.TrimSpace(err.Error()))
	}
}
