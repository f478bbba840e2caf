// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(status, duration_ms). Every request gets an X-Request-ID; an incoming one is
kept. Handler error logs carry it via RequestID(r.Context()).

# Metrics

WithMetrics counts requests and observes latency per route pattern:

	quickly_vote_http_requests_total{method, route, status}
	quickly_vote_http_request_duration_seconds{method, route}

# Caching

NoCache marks a response as never cacheable. Used for pages showing tallies.

# CORS Middleware

Lets configured origins (CORS_ORIGINS) call the JSON API with credentials:

	cors := middleware.CORS(cfg.CORSOrigins)
	mux.HandleFunc("GET /api/proposals", cors(apiHandler.ListProposals))

Allows methods GET, POST, OPTIONS with headers
Content-Type, Authorization, X-Wallet-Session, X-Request-ID. Other origins
get no CORS headers and a 403 on preflight. Pages and form posts are not
wrapped.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Votes log a hash of it for abuse correlation.
*/
package middleware
