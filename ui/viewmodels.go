// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/wallet"
)

type NavLink struct {
	Label string
	Path  string
}

// DefaultLinks is the navbar of every page
var DefaultLinks = []NavLink{
	{Label: "Account", Path: "/account"},
	{Label: "Voting", Path: "/voting"},
}

type BaseVM struct {
	Title       string
	Active      string
	ContentTmpl string
	Links       []NavLink

	Wallet      wallet.Identity
	WalletLabel string
	Cluster     string

	Hero  *HeroVM
	Toast *ToastVM
	Modal *ModalVM
}

// NewBase fills the shared page chrome. active is the request path.
func NewBase(title, contentTmpl, active string, id wallet.Identity, c cluster.Cluster) BaseVM {
	return BaseVM{
		Title:       title,
		Active:      active,
		ContentTmpl: contentTmpl,
		Links:       DefaultLinks,
		Wallet:      id,
		WalletLabel: EllipsifyDefault(id.String()),
		Cluster:     c.Name,
	}
}

type HeroVM struct {
	Title    string
	Subtitle string
}

type ToastVM struct {
	Message   string `json:"message"`
	LinkLabel string `json:"link_label,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ModalVM is a dialog with a Close control and an optional submit button.
// BodyTmpl names the template rendered inside it with Data.
type ModalVM struct {
	Title          string
	Show           bool
	BodyTmpl       string
	Data           any
	SubmitAction   string
	SubmitLabel    string
	SubmitDisabled bool
	CloseURL       string
}

func (m ModalVM) HasSubmit() bool {
	return m.SubmitAction != ""
}

// Label returns the submit button text
func (m ModalVM) Label() string {
	if m.SubmitLabel == "" {
		return "Save"
	}
	return m.SubmitLabel
}

// ---------- Voting ----------

type CreateVM struct {
	Connected   bool
	Action      string
	Title       string
	Description string
	Valid       bool
	Pending     bool
	Error       string
}

func (vm CreateVM) SubmitDisabled() bool {
	return vm.Pending || !vm.Valid
}

func (vm CreateVM) SubmitLabel() string {
	if vm.Pending {
		return "Create Proposal ..."
	}
	return "Create Proposal"
}

type ListState int

const (
	ListLoading ListState = iota
	ListFailed
	ListNoProgram
	ListEmpty
	ListReady
)

type ListVM struct {
	State ListState
	Error string
	Cards []CardVM
}

func (vm ListVM) Loading() bool   { return vm.State == ListLoading }
func (vm ListVM) Failed() bool    { return vm.State == ListFailed }
func (vm ListVM) NoProgram() bool { return vm.State == ListNoProgram }
func (vm ListVM) Empty() bool     { return vm.State == ListEmpty }
func (vm ListVM) Ready() bool     { return vm.State == ListReady }

type CardVM struct {
	Connected bool
	Found     bool
	Loading   bool

	Key          string
	KeyLabel     string
	ExplorerURL  string
	Title        string
	Description  string
	VotesFor     string
	VotesAgainst string
	Created      string
	VoteAction   string
	VotePending  bool
}

// ---------- Pages ----------

type HomeVM struct {
	BaseVM
}

type VotingVM struct {
	BaseVM
	Create CreateVM
	List   ListVM
}

type AccountVM struct {
	BaseVM
	Address     string
	ExplorerURL string
}

// ConnectVM is the body of the wallet connect dialog
type ConnectVM struct {
	PublicKey string
	Error     string
	Return    string
}
