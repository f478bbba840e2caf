// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cluster

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

// Cluster names
const (
	Devnet      = "devnet"
	Testnet     = "testnet"
	MainnetBeta = "mainnet-beta"
	Localnet    = "localnet"
	Custom      = "custom"
)

const explorerBase = "https://explorer.solana.com/"

var ErrUnknownCluster = errors.New("unknown cluster")

type Cluster struct {
	Name     string
	Endpoint string
}

// Parse resolves a cluster name to its RPC endpoint. endpoint overrides the
// default and is required for the custom cluster.
func Parse(name, endpoint string) (Cluster, error) {
	var def string
	switch name {
	case Devnet:
		def = rpc.DevNet_RPC
	case Testnet:
		def = rpc.TestNet_RPC
	case MainnetBeta:
		def = rpc.MainNetBeta_RPC
	case Localnet:
		def = rpc.LocalNet_RPC
	case Custom:
		if endpoint == "" {
			return Cluster{}, errors.New("custom cluster requires an RPC endpoint")
		}
	default:
		return Cluster{}, fmt.Errorf("%w: %q", ErrUnknownCluster, name)
	}

	if endpoint == "" {
		endpoint = def
	}
	return Cluster{Name: name, Endpoint: endpoint}, nil
}

// ExplorerURL turns a path such as "tx/<sig>" or "account/<key>" into a
// Solana Explorer link for this cluster
func (c Cluster) ExplorerURL(path string) string {
	path = strings.TrimPrefix(path, "/")

	var q string
	switch c.Name {
	case MainnetBeta, "":
	case Devnet, Testnet:
		q = "?cluster=" + c.Name
	default:
		q = "?cluster=custom&customUrl=" + url.QueryEscape(c.Endpoint)
	}
	return explorerBase + path + q
}
