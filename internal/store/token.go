package store

import "github.com/google/uuid"

// TokenSource produces run identifiers.
type TokenSource interface {
	Token() string
}

// UUIDTokens issues time-sortable UUIDv7 identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, so listing runs
// by id approximates creation order even across databases.
//
// Thread-safety: UUIDTokens is stateless and safe for concurrent use.
type UUIDTokens struct{}

// Token returns a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDTokens) Token() string {
	return uuid.Must(uuid.NewV7()).String()
}
