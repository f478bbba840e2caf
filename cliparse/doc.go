// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (default for sqlite: quickly-vote.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - Backend: ledger or rpc (default: ledger)
  - Cluster: devnet, testnet, mainnet-beta, localnet or custom (default: devnet)
  - RPCURL: Endpoint override, required for the custom cluster
  - ProgramID: Voting program address (required)
  - AutoDeploy: Create the ledger program account at startup (default: true)
  - NFTMint, GovernanceTokenMint, GovernanceMintAuthority: accounts sent with every vote (required)
  - SessionSecret: Secret for wallet session HMAC (required)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-backend         Program backend
	-cluster         Cluster name
	-rpc             RPC endpoint
	-program         Program ID
	-deploy          Auto deploy (true/false)
	-nft-mint        NFT mint
	-gov-mint        Governance token mint
	-gov-authority   Governance token mint authority
	-session-secret  Wallet session secret

# Environment Variables

Flags fall back to environment variables:

	PORT                      → -p
	DATABASE_URL              → -d
	DATABASE_TYPE             → -t
	PROGRAM_BACKEND           → -backend
	CLUSTER                   → -cluster
	RPC_URL                   → -rpc
	PROGRAM_ID                → -program
	AUTO_DEPLOY               → -deploy
	NFT_MINT                  → -nft-mint
	GOVERNANCE_TOKEN_MINT     → -gov-mint
	GOVERNANCE_MINT_AUTHORITY → -gov-authority
	SESSION_SECRET            → -session-secret

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing, when one exists.

# Validation

ParseFlags returns an error if required values are missing or malformed.
The vote accounts have no default: votes are never sent with placeholder
addresses.
*/
package cliparse
