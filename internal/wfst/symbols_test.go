package wfst

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSymbolTableSeedsEpsilon(t *testing.T) {
	symt := NewSymbolTable()

	assert.Equal(t, 1, symt.Len())
	sym, ok := symt.Symbol(Epsilon)
	require.True(t, ok)
	assert.Equal(t, EpsilonSymbol, sym)
}

func TestAddSymbolIdempotent(t *testing.T) {
	symt := NewSymbolTable()

	a := symt.AddSymbol("a")
	b := symt.AddSymbol("b")
	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)

	// Re-adding returns the existing label and does not grow the table.
	assert.Equal(t, a, symt.AddSymbol("a"))
	assert.Equal(t, 3, symt.Len())
}

func TestSymbolLookups(t *testing.T) {
	symt := NewSymbolTable()
	symt.AddSymbol("a")

	l, ok := symt.Label("a")
	require.True(t, ok)
	assert.Equal(t, 1, l)

	_, ok = symt.Label("missing")
	assert.False(t, ok)

	_, ok = symt.Symbol(99)
	assert.False(t, ok)
	_, ok = symt.Symbol(-1)
	assert.False(t, ok)
}

func TestSymbolsReturnsCopy(t *testing.T) {
	symt := NewSymbolTable()
	symt.AddSymbol("a")

	syms := symt.Symbols()
	require.Equal(t, []string{EpsilonSymbol, "a"}, syms)

	syms[1] = "mutated"
	got, ok := symt.Symbol(1)
	require.True(t, ok)
	assert.Equal(t, "a", got)
}

func TestReadSymbolFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chars.txt")
	// Mixed case, a CRLF line, a blank line, and a precomposed accent.
	content := "A\r\nb\n\né\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	symt, err := ReadSymbolFile(path)
	require.NoError(t, err)

	// eps, a, b, e + combining acute, boundary.
	assert.Equal(t, 5, symt.Len())

	_, ok := symt.Label("a")
	assert.True(t, ok, "symbols are lowercased")

	_, ok = symt.Label("é")
	assert.True(t, ok, "symbols are NFD normalized")
	_, ok = symt.Label("é")
	assert.False(t, ok)

	// The boundary symbol is always appended last.
	l, ok := symt.Label(BoundarySymbol)
	require.True(t, ok)
	assert.Equal(t, symt.Len()-1, l)
}

func TestReadSymbolFileMissing(t *testing.T) {
	_, err := ReadSymbolFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
