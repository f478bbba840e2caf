// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes of the voting UI.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg, c)

# Endpoints

Operational:

	GET /health
	GET /metrics  - Prometheus metrics
	GET /assets/  - Minified CSS and JS

Pages (no-cache):

	GET  /                              - Home
	GET  /voting                        - Create form and proposal list
	GET  /account                       - Connected wallet
	POST /voting/proposals              - Create proposal
	POST /voting/proposals/{key}/vote   - Vote for or against
	POST /voting/refresh                - Drop cached reads
	POST /wallet/connect                - Connect wallet
	POST /wallet/disconnect             - Disconnect wallet

JSON API (wallet session in the X-Wallet-Session header or cookie; CORS
for the origins in CORS_ORIGINS):

	GET  /api/program
	GET  /api/proposals
	POST /api/proposals
	POST /api/proposals/{key}/votes
	POST /api/wallet/connect
	POST /api/wallet/disconnect

Live updates:

	GET /ws/proposals - Websocket of proposal snapshots

Pages and API routes are logged and counted per route pattern. The
websocket route is logged only.
*/
package router
