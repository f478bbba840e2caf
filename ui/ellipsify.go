// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

// Strings up to this length are shown in full
const ellipsifyMax = 30

// DefaultEdge is how many characters Ellipsify keeps on each side by default
const DefaultEdge = 4

// Ellipsify shortens long identifiers for display: strings of 30 bytes or
// fewer come back unchanged, longer ones keep n bytes from each end joined by "..".
func Ellipsify(s string, n int) string {
	if len(s) <= ellipsifyMax {
		return s
	}
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return s[:n] + ".." + s[len(s)-n:]
}

// EllipsifyDefault shortens s keeping DefaultEdge characters at each end
func EllipsifyDefault(s string) string {
	return Ellipsify(s, DefaultEdge)
}
