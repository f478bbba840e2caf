// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/cluster"
	"github.com/danielhkuo/quickly-vote/testutil"
	"github.com/danielhkuo/quickly-vote/voting"
)

type testEnv struct {
	svc     *voting.Service
	fake    *testutil.FakeProgram
	cfg     cliparse.Config
	cluster cluster.Cluster
}

func setupEnv(t *testing.T, deployed bool) testEnv {
	t.Helper()
	cfg := testutil.GetTestConfig()
	fake := testutil.NewFakeProgram(deployed)
	return testEnv{
		svc:     voting.NewService(fake, testutil.TestVoteAccounts(t, cfg), time.Minute),
		fake:    fake,
		cfg:     cfg,
		cluster: cluster.Cluster{Name: cluster.Devnet},
	}
}
