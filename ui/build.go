// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"github.com/dustin/go-humanize"
	"github.com/gagliardetto/solana-go"

	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/query"
	"github.com/danielhkuo/quickly-vote/voting"
	"github.com/danielhkuo/quickly-vote/wallet"
)

const (
	CreateAction = "/voting/proposals"
	votePath     = "/voting/proposals/"
)

// BuildCreateVM derives the creation form from what the user typed
func BuildCreateVM(id wallet.Identity, form voting.ProposalForm, pending bool) CreateVM {
	if !id.IsConnected() {
		return CreateVM{}
	}
	return CreateVM{
		Connected:   true,
		Action:      CreateAction,
		Title:       form.Title,
		Description: form.Description,
		Valid:       form.Valid(),
		Pending:     pending,
	}
}

// BuildListVM maps the program account check and the proposal fetch to what
// the list shows. The program account is checked first.
func BuildListVM(account query.Result[bool], proposals query.Result[[]models.Proposal], id wallet.Identity, votePending bool, c cluster.Cluster) ListVM {
	switch account.State {
	case query.StatePending:
		return ListVM{State: ListLoading}
	case query.StateFailed:
		return ListVM{State: ListFailed, Error: account.Err.Error()}
	}
	if !account.Value {
		return ListVM{State: ListNoProgram}
	}

	switch proposals.State {
	case query.StatePending:
		return ListVM{State: ListLoading}
	case query.StateFailed:
		return ListVM{State: ListFailed, Error: proposals.Err.Error()}
	}
	if len(proposals.Value) == 0 {
		return ListVM{State: ListEmpty}
	}

	cards := make([]CardVM, 0, len(proposals.Value))
	for _, p := range proposals.Value {
		cards = append(cards, BuildCardVM(p.Key, proposals, id, votePending, c))
	}
	return ListVM{State: ListReady, Cards: cards}
}

// BuildCardVM renders the card for key. The record is looked up in the
// fetched collection, so tallies are always the latest fetched ones.
func BuildCardVM(key solana.PublicKey, proposals query.Result[[]models.Proposal], id wallet.Identity, votePending bool, c cluster.Cluster) CardVM {
	if !id.IsConnected() {
		return CardVM{}
	}

	k := key.String()
	card := CardVM{
		Connected:   true,
		Key:         k,
		KeyLabel:    EllipsifyDefault(k),
		ExplorerURL: c.ExplorerURL("account/" + k),
		VoteAction:  votePath + k + "/vote",
		VotePending: votePending,
	}

	list, ok := proposals.Get()
	if !ok {
		card.Loading = proposals.IsPending()
		return card
	}
	p, ok := voting.FindProposal(list, key)
	if !ok {
		return card
	}

	card.Found = true
	card.Title = p.Title
	card.Description = p.Description
	card.VotesFor = humanize.Comma(int64(p.VotesFor))
	card.VotesAgainst = humanize.Comma(int64(p.VotesAgainst))
	if !p.CreatedAt.IsZero() {
		card.Created = humanize.Time(p.CreatedAt)
	}
	return card
}

// BuildAccountVM shows the connected wallet with an explorer link
func BuildAccountVM(base BaseVM, id wallet.Identity, c cluster.Cluster) AccountVM {
	vm := AccountVM{BaseVM: base}
	if id.IsConnected() {
		vm.Address = id.String()
		vm.ExplorerURL = c.ExplorerURL("account/" + vm.Address)
	}
	return vm
}

// ConnectModal is the wallet connect dialog. returnTo is where the browser
// lands after connecting.
func ConnectModal(show bool, returnTo, publicKey, errMsg string) *ModalVM {
	return &ModalVM{
		Title:        "Connect Wallet",
		Show:         show,
		BodyTmpl:     "connect_body",
		Data:         ConnectVM{PublicKey: publicKey, Error: errMsg, Return: returnTo},
		SubmitAction: "/wallet/connect",
		SubmitLabel:  "Connect",
		CloseURL:     returnTo,
	}
}
