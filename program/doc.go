// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package program is the boundary to the on-chain voting program.

# Client

Everything above this package talks to a Client:

	CreateProposal(ctx, CreateProposalArgs) (solana.Signature, error)
	Vote(ctx, VoteArgs) (solana.Signature, error)
	Proposals(ctx) ([]models.Proposal, error)
	ProgramAccount(ctx) (bool, error)

# Implementations

Ledger keeps program state in sqlite or postgres. It is what the server runs
with locally and what the tests use: Deploy creates the program account,
proposals get fresh keys, and a voter gets one vote per proposal
(ErrAlreadyVoted).

Chain reads a real cluster over JSON-RPC. Proposal accounts are found with
getProgramAccounts and decoded from their borsh layout:

	[8]byte  discriminator  sha256("account:Proposal")[:8]
	string   title
	string   description
	u64      votes_for
	u64      votes_against

Chain does not submit transactions (ErrReadOnly).

# Vote Accounts

Votes carry the NFT mint, the governance token mint and its mint authority.
They are resolved once from configuration:

	va, err := program.ResolveVoteAccounts(cfg.NFTMint, cfg.GovernanceTokenMint, cfg.GovernanceMintAuthority)
	args := va.Args(proposalKey, voterKey, true)
*/
package program
