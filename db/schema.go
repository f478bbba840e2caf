// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to sqlite or postgres and verifies the connection
func Open(dbType, url string) (*sqlx.DB, error) {
	driver := dbType
	if dbType != "sqlite" && dbType != "postgres" {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Connect(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dbType, err)
	}

	if dbType == "sqlite" {
		// A single writer avoids SQLITE_BUSY and keeps :memory: databases on one connection
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The schema sticks to types both sqlite and postgres accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Deployed program accounts
CREATE TABLE IF NOT EXISTS program_account (
    program_id TEXT PRIMARY KEY,
    deployed_at BIGINT NOT NULL
);

-- Proposals
CREATE TABLE IF NOT EXISTS proposal (
    proposal_key TEXT PRIMARY KEY,
    program_id TEXT NOT NULL REFERENCES program_account(program_id) ON DELETE CASCADE,
    creator TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    votes_for BIGINT NOT NULL DEFAULT 0,
    votes_against BIGINT NOT NULL DEFAULT 0,
    signature TEXT NOT NULL UNIQUE,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_proposal_program_id ON proposal(program_id, created_at);

-- Vote records (one per voter per proposal)
CREATE TABLE IF NOT EXISTS vote_record (
    proposal_key TEXT NOT NULL REFERENCES proposal(proposal_key) ON DELETE CASCADE,
    voter TEXT NOT NULL,
    vote_for BOOLEAN NOT NULL,
    nft_mint TEXT NOT NULL,
    governance_token_mint TEXT NOT NULL,
    mint_authority TEXT NOT NULL,
    signature TEXT NOT NULL UNIQUE,
    cast_at BIGINT NOT NULL,
    PRIMARY KEY (proposal_key, voter)
);

CREATE INDEX IF NOT EXISTS idx_vote_record_voter ON vote_record(voter);
`
