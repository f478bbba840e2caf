// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the ledger database and creates its schema.

# Connecting

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)  // "sqlite" or "postgres"

sqlite connections are limited to one open connection and have foreign keys
enabled.

# Schema Creation

	err := db.CreateSchema(conn.DB)

Uses IF NOT EXISTS for idempotent execution. Safe to call on every startup.

# Tables

  - program_account: deployed voting programs (program_id)
  - proposal: proposal accounts with for/against tallies
  - vote_record: one row per (proposal_key, voter), with the accounts the
    vote was cast with

Timestamps are stored as BIGINT unix milliseconds so the same schema runs on
both databases.

# Relationships

	program_account 1──* proposal 1──* vote_record

Foreign keys use ON DELETE CASCADE.
*/
package db
