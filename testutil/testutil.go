// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/program"
	"github.com/danielhkuo/quickly-vote/wallet"
)

// TestSessionSecret signs wallet sessions in tests
const TestSessionSecret = "test-session-secret"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn.DB); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration with fresh vote accounts
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                    3318,
		DatabaseURL:             ":memory:",
		DatabaseType:            "sqlite",
		Backend:                 cliparse.BackendLedger,
		Cluster:                 "devnet",
		ProgramID:               solana.NewWallet().PublicKey().String(),
		AutoDeploy:              true,
		NFTMint:                 solana.NewWallet().PublicKey().String(),
		GovernanceTokenMint:     solana.NewWallet().PublicKey().String(),
		GovernanceMintAuthority: solana.NewWallet().PublicKey().String(),
		SessionSecret:           TestSessionSecret,
	}
}

// TestVoteAccounts resolves the vote accounts of cfg
func TestVoteAccounts(t *testing.T, cfg cliparse.Config) program.VoteAccounts {
	t.Helper()
	va, err := program.ResolveVoteAccounts(cfg.NFTMint, cfg.GovernanceTokenMint, cfg.GovernanceMintAuthority)
	if err != nil {
		t.Fatalf("Failed to resolve vote accounts: %v", err)
	}
	return va
}

// FakeProgram is an in-memory program client that records every call
type FakeProgram struct {
	mu sync.Mutex

	deployed  bool
	proposals []models.Proposal

	creates []program.CreateProposalArgs
	votes   []program.VoteArgs
	fetches int

	// CreateErr and VoteErr are returned by the next calls when set
	CreateErr error
	VoteErr   error

	// Gate, when set, blocks CreateProposal and Vote until it is closed
	Gate chan struct{}
}

func NewFakeProgram(deployed bool) *FakeProgram {
	return &FakeProgram{deployed: deployed}
}

// AddProposal stores a proposal as if it had been created on chain
func (f *FakeProgram) AddProposal(title, description string) models.Proposal {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := models.Proposal{
		Key:         solana.NewWallet().PublicKey(),
		Title:       title,
		Description: description,
		Creator:     solana.NewWallet().PublicKey(),
		CreatedAt:   time.Now().UTC(),
	}
	f.proposals = append(f.proposals, p)
	return p
}

func (f *FakeProgram) CreateProposal(ctx context.Context, args program.CreateProposalArgs) (solana.Signature, error) {
	f.wait(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates = append(f.creates, args)
	if f.CreateErr != nil {
		return solana.Signature{}, f.CreateErr
	}
	if !f.deployed {
		return solana.Signature{}, program.ErrProgramNotDeployed
	}

	f.proposals = append(f.proposals, models.Proposal{
		Key:         solana.NewWallet().PublicKey(),
		Title:       args.Title,
		Description: args.Description,
		Creator:     args.Creator,
		CreatedAt:   time.Now().UTC(),
	})
	return auth.GenerateSignature()
}

func (f *FakeProgram) Vote(ctx context.Context, args program.VoteArgs) (solana.Signature, error) {
	f.wait(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.votes = append(f.votes, args)
	if f.VoteErr != nil {
		return solana.Signature{}, f.VoteErr
	}
	for i := range f.proposals {
		if !f.proposals[i].Key.Equals(args.Proposal) {
			continue
		}
		if args.VoteFor {
			f.proposals[i].VotesFor++
		} else {
			f.proposals[i].VotesAgainst++
		}
		return auth.GenerateSignature()
	}
	return solana.Signature{}, program.ErrProposalNotFound
}

func (f *FakeProgram) Proposals(ctx context.Context) ([]models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return append([]models.Proposal(nil), f.proposals...), nil
}

func (f *FakeProgram) ProgramAccount(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deployed, nil
}

// Deploy creates the program account
func (f *FakeProgram) Deploy() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deployed = true
}

// Creates returns the recorded CreateProposal calls
func (f *FakeProgram) Creates() []program.CreateProposalArgs {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]program.CreateProposalArgs(nil), f.creates...)
}

// Votes returns the recorded Vote calls
func (f *FakeProgram) Votes() []program.VoteArgs {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]program.VoteArgs(nil), f.votes...)
}

// Fetches counts Proposals calls
func (f *FakeProgram) Fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *FakeProgram) wait(ctx context.Context) {
	if f.Gate == nil {
		return
	}
	select {
	case <-f.Gate:
	case <-ctx.Done():
	}
}

// NewWalletKey returns a fresh wallet address
func NewWalletKey() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

// WithWallet attaches a signed wallet session for key to req
func WithWallet(req *http.Request, key solana.PublicKey) *http.Request {
	req.AddCookie(&http.Cookie{
		Name:  wallet.CookieName,
		Value: auth.SessionToken(key.String(), TestSessionSecret),
	})
	return req
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a url-encoded form POST
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
