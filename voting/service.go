// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/program"
	"github.com/danielhkuo/quickly-vote/query"
	"github.com/danielhkuo/quickly-vote/wallet"
)

var (
	ErrNotConnected     = errors.New("wallet not connected")
	ErrInvalidForm      = errors.New("title and description are required")
	ErrPending          = query.ErrPending
	ErrProposalNotFound = program.ErrProposalNotFound
	ErrUnavailable      = errors.New("proposals not loaded yet")
)

// DefaultTTL is how long fetched proposals are served from cache
const DefaultTTL = 5 * time.Second

// ProposalForm is the proposal creation form as the user typed it
type ProposalForm struct {
	Title       string
	Description string
}

// Valid reports whether both fields have content after trimming
func (f ProposalForm) Valid() bool {
	return strings.TrimSpace(f.Title) != "" && strings.TrimSpace(f.Description) != ""
}

// Service binds identities and forms to the program client. Reads go through
// cached queries; writes are tracked per wallet so a wallet has at most one
// create and one vote in flight.
type Service struct {
	client   program.Client
	accounts program.VoteAccounts

	proposals      *query.Query[[]models.Proposal]
	programAccount *query.Query[bool]

	creating *query.Mutation
	voting   *query.Mutation
}

func NewService(client program.Client, accounts program.VoteAccounts, ttl time.Duration) *Service {
	return &Service{
		client:         client,
		accounts:       accounts,
		proposals:      query.New[[]models.Proposal]("proposals", client.Proposals, ttl),
		programAccount: query.New[bool]("program-account", client.ProgramAccount, ttl),
		creating:       query.NewMutation("create-proposal"),
		voting:         query.NewMutation("vote"),
	}
}

func (s *Service) Proposals(ctx context.Context) query.Result[[]models.Proposal] {
	return s.proposals.Read(ctx)
}

func (s *Service) ProgramAccount(ctx context.Context) query.Result[bool] {
	return s.programAccount.Read(ctx)
}

// Proposal looks key up in the current proposal collection
func (s *Service) Proposal(ctx context.Context, key solana.PublicKey) (models.Proposal, error) {
	res := s.proposals.Read(ctx)
	switch res.State {
	case query.StatePending:
		return models.Proposal{}, ErrUnavailable
	case query.StateFailed:
		return models.Proposal{}, res.Err
	}

	p, ok := FindProposal(res.Value, key)
	if !ok {
		return models.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

// CreateProposal submits form on behalf of id. The strings are forwarded
// exactly as entered.
func (s *Service) CreateProposal(ctx context.Context, id wallet.Identity, form ProposalForm) (solana.Signature, error) {
	creator, ok := id.PublicKey()
	if !ok {
		return solana.Signature{}, ErrNotConnected
	}
	if !form.Valid() {
		return solana.Signature{}, ErrInvalidForm
	}

	var sig solana.Signature
	err := s.creating.Run(creator.String(), func() error {
		var err error
		sig, err = s.client.CreateProposal(ctx, program.CreateProposalArgs{
			Creator:     creator,
			Title:       form.Title,
			Description: form.Description,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, ErrPending) {
			return solana.Signature{}, err
		}
		return solana.Signature{}, fmt.Errorf("create proposal: %w", err)
	}

	s.proposals.Invalidate()
	slog.Info("proposal submitted", "creator", creator.String(), "signature", sig.String())
	return sig, nil
}

// Vote casts id's vote on the proposal with key
func (s *Service) Vote(ctx context.Context, id wallet.Identity, key solana.PublicKey, voteFor bool) (solana.Signature, error) {
	voter, ok := id.PublicKey()
	if !ok {
		return solana.Signature{}, ErrNotConnected
	}

	if _, err := s.Proposal(ctx, key); err != nil {
		return solana.Signature{}, err
	}

	var sig solana.Signature
	err := s.voting.Run(voter.String(), func() error {
		var err error
		sig, err = s.client.Vote(ctx, s.accounts.Args(key, voter, voteFor))
		return err
	})
	if err != nil {
		if errors.Is(err, ErrPending) {
			return solana.Signature{}, err
		}
		return solana.Signature{}, fmt.Errorf("vote on %s: %w", key, err)
	}

	s.proposals.Invalidate()
	slog.Info("vote submitted", "proposal", key.String(), "voter", voter.String(), "vote_for", voteFor)
	return sig, nil
}

// CreatePending reports whether id has a proposal creation in flight
func (s *Service) CreatePending(id wallet.Identity) bool {
	return id.IsConnected() && s.creating.Pending(id.String())
}

// VotePending reports whether id has a vote in flight
func (s *Service) VotePending(id wallet.Identity) bool {
	return id.IsConnected() && s.voting.Pending(id.String())
}

// SubscribeProposals signals whenever the proposal collection changes
func (s *Service) SubscribeProposals() (<-chan struct{}, func()) {
	return s.proposals.Subscribe()
}

// Refresh drops both caches
func (s *Service) Refresh() {
	s.programAccount.Invalidate()
	s.proposals.Invalidate()
}

// FindProposal looks up key in a fetched proposal collection
func FindProposal(proposals []models.Proposal, key solana.PublicKey) (models.Proposal, bool) {
	for _, p := range proposals {
		if p.Key.Equals(key) {
			return p, true
		}
	}
	return models.Proposal{}, false
}
