// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/program"
	"github.com/danielhkuo/quickly-vote/router"
	"github.com/danielhkuo/quickly-vote/ui"
	"github.com/danielhkuo/quickly-vote/voting"
)

func main() {
	// A missing .env is fine; the environment and flags still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	c, err := cluster.Parse(cfg.Cluster, cfg.RPCURL)
	if err != nil {
		slog.Error("invalid cluster", "error", err)
		os.Exit(1)
	}

	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		slog.Error("invalid program id", "program_id", cfg.ProgramID, "error", err)
		os.Exit(1)
	}

	accounts, err := program.ResolveVoteAccounts(cfg.NFTMint, cfg.GovernanceTokenMint, cfg.GovernanceMintAuthority)
	if err != nil {
		slog.Error("invalid vote accounts", "error", err)
		os.Exit(1)
	}

	if err := ui.InitTemplates(); err != nil {
		slog.Error("template init failed", "error", err)
		os.Exit(1)
	}

	var client program.Client
	switch cfg.Backend {
	case cliparse.BackendRPC:
		client = program.NewChain(c.Endpoint, programID)
		slog.Info("Using RPC program backend", "endpoint", c.Endpoint)
	default:
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		// Create schema (tables)
		if err := db.CreateSchema(dbConn.DB); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		ledger := program.NewLedger(dbConn, programID)
		if cfg.AutoDeploy {
			if err := ledger.Deploy(context.Background()); err != nil {
				slog.Error("program deploy failed", "error", err)
				os.Exit(1)
			}
		}
		client = ledger
	}

	svc := voting.NewService(client, accounts, voting.DefaultTTL)

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(svc, cfg, c),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "cluster", c.Name, "program_id", programID.String())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
