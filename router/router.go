// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/ui"
	"github.com/danielhkuo/quickly-vote/voting"
)

func NewRouter(svc *voting.Service, cfg cliparse.Config, c cluster.Cluster) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(svc, cfg, c)
	proposalHandler := handlers.NewProposalHandler(svc, cfg, c)
	walletHandler := handlers.NewWalletHandler(cfg, c)
	apiHandler := handlers.NewAPIHandler(svc, cfg, c)
	liveHandler := handlers.NewLiveHandler(svc)

	page := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(middleware.NoCache(h)))
	}
	cors := middleware.CORS(cfg.CORSOrigins)
	api := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithMetrics(cors(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", ui.AssetHandler()))

	// Pages
	mux.HandleFunc("GET /{$}", page(pageHandler.Home))
	mux.HandleFunc("GET /voting", page(pageHandler.Voting))
	mux.HandleFunc("GET /account", page(pageHandler.Account))

	// Form posts
	mux.HandleFunc("POST /voting/proposals", page(proposalHandler.Create))
	mux.HandleFunc("POST /voting/proposals/{key}/vote", page(proposalHandler.Vote))
	mux.HandleFunc("POST /voting/refresh", page(proposalHandler.Refresh))
	mux.HandleFunc("POST /wallet/connect", page(walletHandler.Connect))
	mux.HandleFunc("POST /wallet/disconnect", page(walletHandler.Disconnect))

	// JSON API
	mux.HandleFunc("GET /api/program", api(apiHandler.GetProgram))
	mux.HandleFunc("GET /api/proposals", api(apiHandler.ListProposals))
	mux.HandleFunc("POST /api/proposals", api(apiHandler.CreateProposal))
	mux.HandleFunc("POST /api/proposals/{key}/votes", api(apiHandler.CastVote))
	mux.HandleFunc("POST /api/wallet/connect", api(walletHandler.Connect))
	mux.HandleFunc("POST /api/wallet/disconnect", api(walletHandler.Disconnect))
	mux.HandleFunc("OPTIONS /api/", api(func(w http.ResponseWriter, r *http.Request) {}))

	// Live tallies; long-lived, so only logged
	mux.HandleFunc("GET /ws/proposals", middleware.WithLogging(liveHandler.Proposals))

	return mux
}
