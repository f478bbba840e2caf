// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package program

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/danielhkuo/quickly-vote/models"
)

// ProposalDiscriminator prefixes every proposal account (Anchor account layout)
var ProposalDiscriminator = accountDiscriminator("Proposal")

func accountDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}

// proposalAccount is the borsh layout of a proposal account
type proposalAccount struct {
	Discriminator [8]byte
	Title         string
	Description   string
	VotesFor      uint64
	VotesAgainst  uint64
}

// Chain reads proposals straight from a cluster over JSON-RPC.
// Transactions are built and signed by the user's wallet, so it cannot write.
type Chain struct {
	rpc       *rpc.Client
	programID solana.PublicKey
}

func NewChain(endpoint string, programID solana.PublicKey) *Chain {
	return &Chain{rpc: rpc.New(endpoint), programID: programID}
}

func (c *Chain) ProgramAccount(ctx context.Context) (bool, error) {
	_, err := c.rpc.GetAccountInfo(ctx, c.programID)
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get program account: %w", err)
	}
	return true, nil
}

func (c *Chain) Proposals(ctx context.Context) ([]models.Proposal, error) {
	accounts, err := c.rpc.GetProgramAccounts(ctx, c.programID)
	if err != nil {
		return nil, fmt.Errorf("failed to get program accounts: %w", err)
	}

	proposals := make([]models.Proposal, 0, len(accounts))
	for _, acc := range accounts {
		if acc == nil || acc.Account == nil || acc.Account.Data == nil {
			continue
		}
		p, ok, err := DecodeProposal(acc.Pubkey, acc.Account.Data.GetBinary())
		if err != nil {
			slog.Warn("skipping undecodable proposal account", "account", acc.Pubkey.String(), "error", err)
			continue
		}
		if ok {
			proposals = append(proposals, p)
		}
	}

	// getProgramAccounts has no defined order
	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].Key.String() < proposals[j].Key.String()
	})
	return proposals, nil
}

func (c *Chain) CreateProposal(ctx context.Context, args CreateProposalArgs) (solana.Signature, error) {
	return solana.Signature{}, ErrReadOnly
}

func (c *Chain) Vote(ctx context.Context, args VoteArgs) (solana.Signature, error) {
	return solana.Signature{}, ErrReadOnly
}

// DecodeProposal decodes a proposal account. ok is false when the data belongs
// to another account type of the program.
func DecodeProposal(key solana.PublicKey, data []byte) (p models.Proposal, ok bool, err error) {
	if len(data) < 8 || !bytes.Equal(data[:8], ProposalDiscriminator[:]) {
		return models.Proposal{}, false, nil
	}

	var acc proposalAccount
	if err := bin.NewBorshDecoder(data).Decode(&acc); err != nil {
		return models.Proposal{}, false, fmt.Errorf("failed to decode proposal %s: %w", key, err)
	}

	return models.Proposal{
		Key:          key,
		Title:        acc.Title,
		Description:  acc.Description,
		VotesFor:     acc.VotesFor,
		VotesAgainst: acc.VotesAgainst,
	}, true, nil
}
