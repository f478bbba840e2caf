// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// Vote choices as submitted by HTML forms
const (
	ChoiceFor     = "for"
	ChoiceAgainst = "against"
)

// Request types

type CreateProposalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type VoteRequest struct {
	VoteFor bool `json:"vote_for"`
}

type ConnectWalletRequest struct {
	PublicKey string `json:"public_key"`
}

// Response types

type CreateProposalResponse struct {
	Signature   string `json:"signature"`
	ExplorerURL string `json:"explorer_url"`
}

type VoteResponse struct {
	Signature   string `json:"signature"`
	ExplorerURL string `json:"explorer_url"`
}

type ProposalsResponse struct {
	ProgramAccount bool       `json:"program_account"`
	Proposals      []Proposal `json:"proposals"`
}

type ProgramStatusResponse struct {
	ProgramID string `json:"program_id"`
	Cluster   string `json:"cluster"`
	Exists    bool   `json:"exists"`
}

type ConnectWalletResponse struct {
	PublicKey string `json:"public_key"`
	Session   string `json:"session"`
}

// Domain types

// Proposal mirrors the proposal account owned by the voting program.
type Proposal struct {
	Key          solana.PublicKey `json:"key"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	VotesFor     uint64           `json:"votes_for"`
	VotesAgainst uint64           `json:"votes_against"`
	Creator      solana.PublicKey `json:"creator"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
