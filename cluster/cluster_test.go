// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cluster

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		cluster      string
		endpoint     string
		wantEndpoint string
		wantErr      bool
	}{
		{"devnet default", Devnet, "", rpc.DevNet_RPC, false},
		{"testnet default", Testnet, "", rpc.TestNet_RPC, false},
		{"mainnet default", MainnetBeta, "", rpc.MainNetBeta_RPC, false},
		{"localnet default", Localnet, "", rpc.LocalNet_RPC, false},
		{"devnet override", Devnet, "https://rpc.example.com", "https://rpc.example.com", false},
		{"custom with endpoint", Custom, "https://rpc.example.com", "https://rpc.example.com", false},
		{"custom without endpoint", Custom, "", "", true},
		{"unknown", "moonnet", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.cluster, tt.endpoint)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if c.Endpoint != tt.wantEndpoint {
				t.Errorf("Parse() endpoint = %s, want %s", c.Endpoint, tt.wantEndpoint)
			}
			if c.Name != tt.cluster {
				t.Errorf("Parse() name = %s, want %s", c.Name, tt.cluster)
			}
		})
	}

	if _, err := Parse("moonnet", ""); !errors.Is(err, ErrUnknownCluster) {
		t.Errorf("expected ErrUnknownCluster, got %v", err)
	}
}

func TestExplorerURL(t *testing.T) {
	tests := []struct {
		name    string
		cluster Cluster
		path    string
		want    string
	}{
		{
			"mainnet has no cluster param",
			Cluster{Name: MainnetBeta},
			"tx/abc",
			"https://explorer.solana.com/tx/abc",
		},
		{
			"devnet",
			Cluster{Name: Devnet},
			"account/Key111",
			"https://explorer.solana.com/account/Key111?cluster=devnet",
		},
		{
			"leading slash trimmed",
			Cluster{Name: Testnet},
			"/address/Key111",
			"https://explorer.solana.com/address/Key111?cluster=testnet",
		},
		{
			"localnet uses custom url",
			Cluster{Name: Localnet, Endpoint: "http://127.0.0.1:8899"},
			"tx/abc",
			"https://explorer.solana.com/tx/abc?cluster=custom&customUrl=http%3A%2F%2F127.0.0.1%3A8899",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cluster.ExplorerURL(tt.path); got != tt.want {
				t.Errorf("ExplorerURL() = %s, want %s", got, tt.want)
			}
		})
	}
}
