// Package testutil holds helpers shared by test code across packages:
// a deterministic run-id source and an slog bridge into testing output.
package testutil

import "sync"

// FixedTokens returns predetermined run identifiers in order.
//
// This enables deterministic test execution and golden comparison: tests
// provide a known sequence of ids and can assert exact stored output.
// Implements store.TokenSource.
//
// Thread-safety: FixedTokens is safe for concurrent use via internal mutex.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a source that returns tokens in order.
//
// Example:
//
//	src := NewFixedTokens("run-1", "run-2")
//	src.Token() // "run-1"
//	src.Token() // "run-2"
//	src.Token() // panic: all tokens exhausted
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Token returns the next predetermined identifier.
//
// Panics if all tokens have been consumed. This is a fail-fast approach
// to catch test misconfiguration (more runs recorded than expected).
func (g *FixedTokens) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedTokens: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
