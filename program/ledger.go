// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/models"
)

// Ledger is a database-backed stand-in for the on-chain voting program,
// used for local development and tests.
type Ledger struct {
	db        *sqlx.DB
	programID solana.PublicKey
	now       func() time.Time
}

func NewLedger(db *sqlx.DB, programID solana.PublicKey) *Ledger {
	return &Ledger{db: db, programID: programID, now: time.Now}
}

func (l *Ledger) ProgramID() solana.PublicKey {
	return l.programID
}

type proposalRow struct {
	Key          string `db:"proposal_key"`
	Creator      string `db:"creator"`
	Title        string `db:"title"`
	Description  string `db:"description"`
	VotesFor     int64  `db:"votes_for"`
	VotesAgainst int64  `db:"votes_against"`
	CreatedAt    int64  `db:"created_at"`
}

// Deploy creates the program account. Deploying twice is a no-op.
func (l *Ledger) Deploy(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, l.db.Rebind(`
		INSERT INTO program_account (program_id, deployed_at)
		VALUES (?, ?)
		ON CONFLICT (program_id) DO NOTHING
	`), l.programID.String(), l.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to deploy program: %w", err)
	}

	slog.Info("program deployed", "program_id", l.programID.String())
	return nil
}

func (l *Ledger) ProgramAccount(ctx context.Context) (bool, error) {
	var exists bool
	err := l.db.GetContext(ctx, &exists, l.db.Rebind(`
		SELECT EXISTS(SELECT 1 FROM program_account WHERE program_id = ?)
	`), l.programID.String())
	if err != nil {
		return false, fmt.Errorf("failed to query program account: %w", err)
	}
	return exists, nil
}

func (l *Ledger) Proposals(ctx context.Context) ([]models.Proposal, error) {
	var rows []proposalRow
	err := l.db.SelectContext(ctx, &rows, l.db.Rebind(`
		SELECT proposal_key, creator, title, description, votes_for, votes_against, created_at
		FROM proposal
		WHERE program_id = ?
		ORDER BY created_at, proposal_key
	`), l.programID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}

	proposals := make([]models.Proposal, 0, len(rows))
	for _, row := range rows {
		p, err := row.toProposal()
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, nil
}

func (l *Ledger) CreateProposal(ctx context.Context, args CreateProposalArgs) (solana.Signature, error) {
	if strings.TrimSpace(args.Title) == "" || strings.TrimSpace(args.Description) == "" {
		return solana.Signature{}, fmt.Errorf("%w: title and description are required", ErrInvalidProposal)
	}
	if args.Creator.IsZero() {
		return solana.Signature{}, fmt.Errorf("%w: creator is required", ErrInvalidProposal)
	}

	deployed, err := l.ProgramAccount(ctx)
	if err != nil {
		return solana.Signature{}, err
	}
	if !deployed {
		return solana.Signature{}, ErrProgramNotDeployed
	}

	// Proposal accounts are fresh keypairs, like an Anchor `init` with a new signer
	key := solana.NewWallet().PublicKey()
	sig, err := auth.GenerateSignature()
	if err != nil {
		return solana.Signature{}, err
	}

	_, err = l.db.ExecContext(ctx, l.db.Rebind(`
		INSERT INTO proposal (proposal_key, program_id, creator, title, description, votes_for, votes_against, signature, created_at)
		VALUES (?, ?, ?, ?, ?, 0, 0, ?, ?)
	`), key.String(), l.programID.String(), args.Creator.String(), args.Title, args.Description, sig.String(), l.now().UnixMilli())
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to insert proposal: %w", err)
	}

	slog.Info("proposal created", "proposal", key.String(), "creator", args.Creator.String())
	return sig, nil
}

func (l *Ledger) Vote(ctx context.Context, args VoteArgs) (solana.Signature, error) {
	if args.Voter.IsZero() {
		return solana.Signature{}, errors.New("voter is required")
	}

	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.GetContext(ctx, &exists, tx.Rebind(`
		SELECT EXISTS(SELECT 1 FROM proposal WHERE proposal_key = ? AND program_id = ?)
	`), args.Proposal.String(), l.programID.String())
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to query proposal: %w", err)
	}
	if !exists {
		return solana.Signature{}, ErrProposalNotFound
	}

	sig, err := auth.GenerateSignature()
	if err != nil {
		return solana.Signature{}, err
	}

	// One vote record per voter and proposal, even across processes
	res, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO vote_record (proposal_key, voter, vote_for, nft_mint, governance_token_mint, mint_authority, signature, cast_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (proposal_key, voter) DO NOTHING
	`), args.Proposal.String(), args.Voter.String(), args.VoteFor,
		args.NFTMint.String(), args.GovernanceTokenMint.String(), args.GovernanceTokenMintAuthority.String(),
		sig.String(), l.now().UnixMilli())
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to insert vote record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to insert vote record: %w", err)
	}
	if n == 0 {
		return solana.Signature{}, ErrAlreadyVoted
	}

	tally := "votes_against = votes_against + 1"
	if args.VoteFor {
		tally = "votes_for = votes_for + 1"
	}
	_, err = tx.ExecContext(ctx, tx.Rebind(`UPDATE proposal SET `+tally+` WHERE proposal_key = ?`), args.Proposal.String())
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to update tally: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return solana.Signature{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	slog.Info("vote recorded", "proposal", args.Proposal.String(), "voter", args.Voter.String(), "vote_for", args.VoteFor)
	return sig, nil
}

func (row proposalRow) toProposal() (models.Proposal, error) {
	key, err := solana.PublicKeyFromBase58(row.Key)
	if err != nil {
		return models.Proposal{}, fmt.Errorf("corrupt proposal key %q: %w", row.Key, err)
	}
	creator, err := solana.PublicKeyFromBase58(row.Creator)
	if err != nil {
		return models.Proposal{}, fmt.Errorf("corrupt creator for %s: %w", row.Key, err)
	}
	return models.Proposal{
		Key:          key,
		Title:        row.Title,
		Description:  row.Description,
		VotesFor:     uint64(row.VotesFor),
		VotesAgainst: uint64(row.VotesAgainst),
		Creator:      creator,
		CreatedAt:    time.UnixMilli(row.CreatedAt).UTC(),
	}, nil
}
