// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cluster names the Solana cluster the app talks to and builds Solana
Explorer links for it:

	c, err := cluster.Parse("devnet", "")
	c.ExplorerURL("tx/" + sig)        // ...?cluster=devnet
	c.ExplorerURL("account/" + key)
*/
package cluster
