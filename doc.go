// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote server.

Quickly Vote is a server-rendered UI for an NFT-governance voting program on
Solana. A connected wallet can create proposals and vote for or against
them; tallies refresh after every write and are pushed to open pages over a
websocket.

# Starting the Server

Settings come from flags, the environment, or a .env file:

	PROGRAM_ID=... NFT_MINT=... GOVERNANCE_TOKEN_MINT=... \
	GOVERNANCE_MINT_AUTHORITY=... SESSION_SECRET=... go run .

# Configuration

Required settings:

  - PROGRAM_ID (--program): Voting program address
  - NFT_MINT (--nft-mint): NFT mint carried by every vote
  - GOVERNANCE_TOKEN_MINT (--gov-mint): Governance token mint
  - GOVERNANCE_MINT_AUTHORITY (--gov-authority): Governance mint authority
  - SESSION_SECRET (--session-secret): Secret for wallet session signatures

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - PROGRAM_BACKEND (--backend): ledger (default) or rpc
  - CLUSTER (--cluster): devnet (default), testnet, mainnet-beta, localnet or custom
  - RPC_URL (--rpc): Endpoint for custom clusters
  - DATABASE_TYPE (-t), DATABASE_URL (-d): Ledger storage, sqlite by default
  - AUTO_DEPLOY (--deploy): Create the ledger program account at startup
  - CORS_ORIGINS (--cors-origins): Origins allowed to call the JSON API

# Architecture

  - program: Program client (sqlite/postgres ledger or read-only RPC)
  - query: Cached reads with explicit pending, error and value states
  - voting: Proposal and vote operations for a wallet identity
  - wallet: Wallet identity and sessions
  - cluster: Cluster endpoints and explorer links
  - ui: Templates, view models, markdown and assets
  - handlers: Pages, form posts, JSON API and websocket
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: Request/response and proposal types
  - auth: Signatures, session tokens and IP hashing
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
