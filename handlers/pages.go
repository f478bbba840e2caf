// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/query"
	"github.com/danielhkuo/quickly-vote/ui"
	"github.com/danielhkuo/quickly-vote/voting"
	"github.com/danielhkuo/quickly-vote/wallet"
)

// Pages render whatever is ready within this window and show loading states otherwise
const pageReadTimeout = 3 * time.Second

type PageHandler struct {
	svc     *voting.Service
	cfg     cliparse.Config
	cluster cluster.Cluster
}

func NewPageHandler(svc *voting.Service, cfg cliparse.Config, c cluster.Cluster) *PageHandler {
	return &PageHandler{svc: svc, cfg: cfg, cluster: c}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	id := wallet.FromRequest(r, h.cfg.SessionSecret)
	base := h.base(w, r, "Home", "page.home", id)
	base.Hero = &ui.HeroVM{
		Title:    "NFT Governance",
		Subtitle: "Create proposals and vote on them with your wallet.",
	}
	ui.Render(w, ui.HomeVM{BaseVM: base})
}

// Voting handles GET /voting
func (h *PageHandler) Voting(w http.ResponseWriter, r *http.Request) {
	id := wallet.FromRequest(r, h.cfg.SessionSecret)
	h.renderVoting(w, r, http.StatusOK, id, voting.ProposalForm{}, "")
}

// Account handles GET /account
func (h *PageHandler) Account(w http.ResponseWriter, r *http.Request) {
	id := wallet.FromRequest(r, h.cfg.SessionSecret)
	ui.Render(w, ui.BuildAccountVM(h.base(w, r, "Account", "page.account", id), id, h.cluster))
}

func (h *PageHandler) renderVoting(w http.ResponseWriter, r *http.Request, status int, id wallet.Identity, form voting.ProposalForm, errMsg string) {
	ctx, cancel := context.WithTimeout(r.Context(), pageReadTimeout)
	defer cancel()

	account := h.svc.ProgramAccount(ctx)
	proposals := query.Pending[[]models.Proposal]()
	if exists, ok := account.Get(); ok && exists {
		proposals = h.svc.Proposals(ctx)
	}

	create := ui.BuildCreateVM(id, form, h.svc.CreatePending(id))
	create.Error = errMsg

	base := h.base(w, r, "Voting", "page.voting", id)
	base.Hero = &ui.HeroVM{
		Title:    "Voting",
		Subtitle: "Proposals owned by program " + ui.EllipsifyDefault(h.cfg.ProgramID) + " on " + h.cluster.Name + ".",
	}

	ui.RenderStatus(w, status, ui.VotingVM{
		BaseVM: base,
		Create: create,
		List:   ui.BuildListVM(account, proposals, id, h.svc.VotePending(id), h.cluster),
	})
}

// base fills the page chrome and consumes any pending toast
func (h *PageHandler) base(w http.ResponseWriter, r *http.Request, title, tmpl string, id wallet.Identity) ui.BaseVM {
	base := ui.NewBase(title, tmpl, r.URL.Path, id, h.cluster)
	base.Toast = ui.TakeToast(w, r)
	if r.URL.Query().Get("connect") == "1" && !id.IsConnected() {
		base.Modal = ui.ConnectModal(true, r.URL.Path, "", "")
	}
	return base
}
