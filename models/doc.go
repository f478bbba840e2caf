// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateProposalRequest: title, description
  - VoteRequest: vote_for
  - ConnectWalletRequest: public_key

# Response Types

Types for JSON responses:

  - CreateProposalResponse: signature, explorer_url
  - VoteResponse: signature, explorer_url
  - ProposalsResponse: program_account, proposals
  - ProgramStatusResponse: program_id, cluster, exists
  - ConnectWalletResponse: public_key, session
  - ErrorResponse: error, message

# Domain Types

  - Proposal: the program's proposal account (title, description, tallies)

Public keys marshal as base58 strings.

# Constants

Form vote choices:

	ChoiceFor     = "for"
	ChoiceAgainst = "against"
*/
package models
