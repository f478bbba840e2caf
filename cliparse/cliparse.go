// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
)

// Program backends
const (
	BackendLedger = "ledger"
	BackendRPC    = "rpc"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// Program client
	Backend    string
	Cluster    string
	RPCURL     string
	ProgramID  string
	AutoDeploy bool

	// Accounts forwarded with every vote
	NFTMint                 string
	GovernanceTokenMint     string
	GovernanceMintAuthority string

	SessionSecret string

	// Origins allowed to call the JSON API cross-origin with credentials
	CORSOrigins []string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	fs.StringVar(&cfg.Backend, "backend", "", "Program backend (ledger or rpc)")
	fs.StringVar(&cfg.Cluster, "cluster", "", "Cluster name (devnet, testnet, mainnet-beta, localnet, custom)")
	fs.StringVar(&cfg.RPCURL, "rpc", "", "RPC endpoint override")
	fs.StringVar(&cfg.ProgramID, "program", "", "Voting program ID")
	deploy := fs.String("deploy", "", "Create the ledger program account at startup (true/false)")

	fs.StringVar(&cfg.NFTMint, "nft-mint", "", "NFT mint address")
	fs.StringVar(&cfg.GovernanceTokenMint, "gov-mint", "", "Governance token mint address")
	fs.StringVar(&cfg.GovernanceMintAuthority, "gov-authority", "", "Governance token mint authority")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Wallet session secret (prefer env)")

	origins := fs.String("cors-origins", "", "Comma-separated origins allowed to call the API")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "quickly-vote.db"
	}

	cfg.Backend = firstNonEmpty(cfg.Backend, os.Getenv("PROGRAM_BACKEND"), BackendLedger)
	if cfg.Backend != BackendLedger && cfg.Backend != BackendRPC {
		return Config{}, errors.New("program backend must be ledger or rpc")
	}
	cfg.Cluster = firstNonEmpty(cfg.Cluster, os.Getenv("CLUSTER"), "devnet")
	cfg.RPCURL = firstNonEmpty(cfg.RPCURL, os.Getenv("RPC_URL"))

	cfg.ProgramID = firstNonEmpty(cfg.ProgramID, os.Getenv("PROGRAM_ID"))
	if cfg.ProgramID == "" {
		return Config{}, errors.New("PROGRAM_ID required")
	}

	deployStr := firstNonEmpty(*deploy, os.Getenv("AUTO_DEPLOY"), "true")
	autoDeploy, err := strconv.ParseBool(deployStr)
	if err != nil {
		return Config{}, errors.New("invalid AUTO_DEPLOY value")
	}
	cfg.AutoDeploy = autoDeploy

	// Vote accounts - MUST be provided, there is no placeholder fallback
	cfg.NFTMint = firstNonEmpty(cfg.NFTMint, os.Getenv("NFT_MINT"))
	if cfg.NFTMint == "" {
		return Config{}, errors.New("NFT_MINT required")
	}
	cfg.GovernanceTokenMint = firstNonEmpty(cfg.GovernanceTokenMint, os.Getenv("GOVERNANCE_TOKEN_MINT"))
	if cfg.GovernanceTokenMint == "" {
		return Config{}, errors.New("GOVERNANCE_TOKEN_MINT required")
	}
	cfg.GovernanceMintAuthority = firstNonEmpty(cfg.GovernanceMintAuthority, os.Getenv("GOVERNANCE_MINT_AUTHORITY"))
	if cfg.GovernanceMintAuthority == "" {
		return Config{}, errors.New("GOVERNANCE_MINT_AUTHORITY required")
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	for _, o := range strings.Split(firstNonEmpty(*origins, os.Getenv("CORS_ORIGINS")), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
