// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/quickly-vote/db"
)

// setupLedger creates an in-memory ledger for testing
func setupLedger(t *testing.T, deploy bool) *Ledger {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn.DB); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	ledger := NewLedger(conn, solana.NewWallet().PublicKey())
	if deploy {
		if err := ledger.Deploy(context.Background()); err != nil {
			t.Fatalf("Failed to deploy program: %v", err)
		}
	}
	return ledger
}

func testAccounts(t *testing.T) VoteAccounts {
	t.Helper()
	return VoteAccounts{
		NFTMint:             solana.NewWallet().PublicKey(),
		GovernanceTokenMint: solana.NewWallet().PublicKey(),
		MintAuthority:       solana.NewWallet().PublicKey(),
	}
}

func TestLedger_ProgramAccount(t *testing.T) {
	ctx := context.Background()
	ledger := setupLedger(t, false)

	exists, err := ledger.ProgramAccount(ctx)
	if err != nil {
		t.Fatalf("ProgramAccount() error = %v", err)
	}
	if exists {
		t.Error("Expected no program account before Deploy")
	}

	if err := ledger.Deploy(ctx); err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	// Second deploy is a no-op
	if err := ledger.Deploy(ctx); err != nil {
		t.Fatalf("second Deploy() error = %v", err)
	}

	exists, err = ledger.ProgramAccount(ctx)
	if err != nil {
		t.Fatalf("ProgramAccount() error = %v", err)
	}
	if !exists {
		t.Error("Expected program account after Deploy")
	}
}

func TestLedger_CreateProposal(t *testing.T) {
	ctx := context.Background()
	ledger := setupLedger(t, true)
	creator := solana.NewWallet().PublicKey()

	sig, err := ledger.CreateProposal(ctx, CreateProposalArgs{
		Creator:     creator,
		Title:       "Upgrade Treasury",
		Description: "Move funds to multisig",
	})
	if err != nil {
		t.Fatalf("CreateProposal() error = %v", err)
	}
	if sig.IsZero() {
		t.Error("Expected non-zero signature")
	}

	proposals, err := ledger.Proposals(ctx)
	if err != nil {
		t.Fatalf("Proposals() error = %v", err)
	}
	if len(proposals) != 1 {
		t.Fatalf("Expected 1 proposal, got %d", len(proposals))
	}

	p := proposals[0]
	if p.Title != "Upgrade Treasury" || p.Description != "Move funds to multisig" {
		t.Errorf("Unexpected proposal content: %+v", p)
	}
	if !p.Creator.Equals(creator) {
		t.Errorf("Creator = %s, want %s", p.Creator, creator)
	}
	if p.VotesFor != 0 || p.VotesAgainst != 0 {
		t.Errorf("Expected zero tallies, got %d/%d", p.VotesFor, p.VotesAgainst)
	}
	if p.Key.IsZero() {
		t.Error("Expected proposal key to be assigned")
	}
	if p.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestLedger_CreateProposalValidation(t *testing.T) {
	ctx := context.Background()
	creator := solana.NewWallet().PublicKey()

	tests := []struct {
		name    string
		deploy  bool
		args    CreateProposalArgs
		wantErr error
	}{
		{"blank title", true, CreateProposalArgs{Creator: creator, Title: "  ", Description: "d"}, ErrInvalidProposal},
		{"blank description", true, CreateProposalArgs{Creator: creator, Title: "t", Description: ""}, ErrInvalidProposal},
		{"no creator", true, CreateProposalArgs{Title: "t", Description: "d"}, ErrInvalidProposal},
		{"not deployed", false, CreateProposalArgs{Creator: creator, Title: "t", Description: "d"}, ErrProgramNotDeployed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := setupLedger(t, tt.deploy)
			_, err := ledger.CreateProposal(ctx, tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateProposal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLedger_Vote(t *testing.T) {
	ctx := context.Background()
	ledger := setupLedger(t, true)
	accounts := testAccounts(t)

	_, err := ledger.CreateProposal(ctx, CreateProposalArgs{
		Creator:     solana.NewWallet().PublicKey(),
		Title:       "Fund grants",
		Description: "Allocate 10% to grants",
	})
	if err != nil {
		t.Fatalf("CreateProposal() error = %v", err)
	}
	proposals, _ := ledger.Proposals(ctx)
	key := proposals[0].Key

	alice := solana.NewWallet().PublicKey()
	bob := solana.NewWallet().PublicKey()
	carol := solana.NewWallet().PublicKey()

	for _, v := range []struct {
		voter   solana.PublicKey
		voteFor bool
	}{{alice, true}, {bob, true}, {carol, false}} {
		if _, err := ledger.Vote(ctx, accounts.Args(key, v.voter, v.voteFor)); err != nil {
			t.Fatalf("Vote() error = %v", err)
		}
	}

	// Alice cannot vote twice, in either direction
	_, err = ledger.Vote(ctx, accounts.Args(key, alice, false))
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted, got %v", err)
	}

	proposals, err = ledger.Proposals(ctx)
	if err != nil {
		t.Fatalf("Proposals() error = %v", err)
	}
	if proposals[0].VotesFor != 2 {
		t.Errorf("VotesFor = %d, want 2", proposals[0].VotesFor)
	}
	if proposals[0].VotesAgainst != 1 {
		t.Errorf("VotesAgainst = %d, want 1", proposals[0].VotesAgainst)
	}

	// Vote record keeps the accounts it was cast with
	var nftMint string
	err = ledger.db.Get(&nftMint, ledger.db.Rebind(`SELECT nft_mint FROM vote_record WHERE voter = ?`), alice.String())
	if err != nil {
		t.Fatalf("Failed to read vote record: %v", err)
	}
	if nftMint != accounts.NFTMint.String() {
		t.Errorf("nft_mint = %s, want %s", nftMint, accounts.NFTMint)
	}
}

func TestLedger_VoteRecordedElsewhere(t *testing.T) {
	ctx := context.Background()
	ledger := setupLedger(t, true)
	accounts := testAccounts(t)

	_, err := ledger.CreateProposal(ctx, CreateProposalArgs{
		Creator:     solana.NewWallet().PublicKey(),
		Title:       "Fund grants",
		Description: "Allocate 10% to grants",
	})
	if err != nil {
		t.Fatalf("CreateProposal() error = %v", err)
	}
	proposals, _ := ledger.Proposals(ctx)
	key := proposals[0].Key
	voter := solana.NewWallet().PublicKey()

	// Another server process stored this voter's record first
	_, err = ledger.db.Exec(ledger.db.Rebind(`
		INSERT INTO vote_record (proposal_key, voter, vote_for, nft_mint, governance_token_mint, mint_authority, signature, cast_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), key.String(), voter.String(), true, accounts.NFTMint.String(), accounts.GovernanceTokenMint.String(),
		accounts.MintAuthority.String(), "elsewhere", 0)
	if err != nil {
		t.Fatalf("Failed to insert vote record: %v", err)
	}

	_, err = ledger.Vote(ctx, accounts.Args(key, voter, false))
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("Expected ErrAlreadyVoted, got %v", err)
	}

	proposals, _ = ledger.Proposals(ctx)
	if proposals[0].VotesFor != 0 || proposals[0].VotesAgainst != 0 {
		t.Errorf("Tally changed on a refused vote: %d/%d", proposals[0].VotesFor, proposals[0].VotesAgainst)
	}
}

func TestLedger_VoteUnknownProposal(t *testing.T) {
	ctx := context.Background()
	ledger := setupLedger(t, true)

	_, err := ledger.Vote(ctx, testAccounts(t).Args(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), true))
	if !errors.Is(err, ErrProposalNotFound) {
		t.Errorf("Expected ErrProposalNotFound, got %v", err)
	}
}

func TestLedger_ConcurrentVotes(t *testing.T) {
	ctx := context.Background()
	ledger := setupLedger(t, true)
	accounts := testAccounts(t)

	_, err := ledger.CreateProposal(ctx, CreateProposalArgs{
		Creator:     solana.NewWallet().PublicKey(),
		Title:       "Concurrent",
		Description: "Many voters at once",
	})
	if err != nil {
		t.Fatalf("CreateProposal() error = %v", err)
	}
	proposals, _ := ledger.Proposals(ctx)
	key := proposals[0].Key

	const voters = 20
	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(voteFor bool) {
			defer wg.Done()
			if _, err := ledger.Vote(ctx, accounts.Args(key, solana.NewWallet().PublicKey(), voteFor)); err != nil {
				errs <- err
			}
		}(i%2 == 0)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Vote() error = %v", err)
	}

	proposals, _ = ledger.Proposals(ctx)
	if proposals[0].VotesFor+proposals[0].VotesAgainst != voters {
		t.Errorf("Expected %d votes, got %d", voters, proposals[0].VotesFor+proposals[0].VotesAgainst)
	}
}

func TestLedger_ProposalsScopedToProgram(t *testing.T) {
	ctx := context.Background()
	ledger := setupLedger(t, true)

	other := NewLedger(ledger.db, solana.NewWallet().PublicKey())
	if err := other.Deploy(ctx); err != nil {
		t.Fatalf("Deploy() error = %v", err)
	}
	_, err := other.CreateProposal(ctx, CreateProposalArgs{
		Creator:     solana.NewWallet().PublicKey(),
		Title:       "Elsewhere",
		Description: "Belongs to another program",
	})
	if err != nil {
		t.Fatalf("CreateProposal() error = %v", err)
	}

	proposals, err := ledger.Proposals(ctx)
	if err != nil {
		t.Fatalf("Proposals() error = %v", err)
	}
	if len(proposals) != 0 {
		t.Errorf("Expected no proposals for this program, got %d", len(proposals))
	}
}
