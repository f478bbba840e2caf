// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/quickly-vote/models"
)

var (
	ErrProgramNotDeployed = errors.New("program account not found")
	ErrProposalNotFound   = errors.New("proposal not found")
	ErrAlreadyVoted       = errors.New("wallet already voted on this proposal")
	ErrInvalidProposal    = errors.New("invalid proposal")
	ErrReadOnly           = errors.New("program client is read-only")
)

// Client is the boundary to the voting program
type Client interface {
	CreateProposal(ctx context.Context, args CreateProposalArgs) (solana.Signature, error)
	Vote(ctx context.Context, args VoteArgs) (solana.Signature, error)
	Proposals(ctx context.Context) ([]models.Proposal, error)
	ProgramAccount(ctx context.Context) (bool, error)
}

type CreateProposalArgs struct {
	Creator     solana.PublicKey
	Title       string
	Description string
}

type VoteArgs struct {
	Proposal                     solana.PublicKey
	VoteFor                      bool
	Voter                        solana.PublicKey
	NFTMint                      solana.PublicKey
	GovernanceTokenMint          solana.PublicKey
	GovernanceTokenMintAuthority solana.PublicKey
}

// VoteAccounts are the accounts every vote instruction carries besides the
// proposal and the voter.
type VoteAccounts struct {
	NFTMint             solana.PublicKey
	GovernanceTokenMint solana.PublicKey
	MintAuthority       solana.PublicKey
}

// ResolveVoteAccounts parses the configured base58 addresses
func ResolveVoteAccounts(nftMint, governanceTokenMint, mintAuthority string) (VoteAccounts, error) {
	var va VoteAccounts
	var err error

	if va.NFTMint, err = solana.PublicKeyFromBase58(nftMint); err != nil {
		return VoteAccounts{}, fmt.Errorf("nft mint: %w", err)
	}
	if va.GovernanceTokenMint, err = solana.PublicKeyFromBase58(governanceTokenMint); err != nil {
		return VoteAccounts{}, fmt.Errorf("governance token mint: %w", err)
	}
	if va.MintAuthority, err = solana.PublicKeyFromBase58(mintAuthority); err != nil {
		return VoteAccounts{}, fmt.Errorf("mint authority: %w", err)
	}
	return va, nil
}

// Args builds the vote instruction arguments for voter on proposal
func (va VoteAccounts) Args(proposal, voter solana.PublicKey, voteFor bool) VoteArgs {
	return VoteArgs{
		Proposal:                     proposal,
		VoteFor:                      voteFor,
		Voter:                        voter,
		NFTMint:                      va.NFTMint,
		GovernanceTokenMint:          va.GovernanceTokenMint,
		GovernanceTokenMintAuthority: va.MintAuthority,
	}
}
