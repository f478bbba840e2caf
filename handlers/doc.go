// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the voting UI and its JSON API.

# Handler Types

Each handler is a struct built from the voting service, the config and the
selected cluster:

  - PageHandler: Home, Voting and Account pages
  - ProposalHandler: Form posts that create proposals and cast votes
  - WalletHandler: Wallet connect and disconnect
  - APIHandler: JSON versions of the same operations
  - LiveHandler: Websocket feed of proposal snapshots

	pages := handlers.NewPageHandler(svc, cfg, c)

# Wallet Sessions

The connected wallet travels in a signed cookie, or the X-Wallet-Session
header for API clients. Requests without a valid session are disconnected:
pages show "Connect your wallet" prompts and writes are refused before any
program call is made.

# Forms

	POST /voting/proposals            → Create (title, description)
	POST /voting/proposals/{key}/vote → Vote (choice=for|against)
	POST /voting/refresh              → Refresh

Both redirect to /voting on success and leave a transaction toast for the
next page. A failed create re-renders the form with its input kept. A failed
vote is only logged.

# API

	GET  /api/program
	GET  /api/proposals
	POST /api/proposals              → CreateProposal
	POST /api/proposals/{key}/votes  → CastVote
	POST /api/wallet/connect
	POST /api/wallet/disconnect
	GET  /ws/proposals

Errors use middleware.ErrorResponse; see writeServiceError for the status
mapping.
*/
package handlers
