package wfst

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// Epsilon is the reserved label for the empty symbol. Every table maps
	// it to EpsilonSymbol at label 0.
	Epsilon = 0

	// EpsilonSymbol is the display name of label 0.
	EpsilonSymbol = "<eps>"

	// BoundarySymbol marks word edges. It is excluded from complement
	// classes and appended to every table loaded from a symbol file.
	BoundarySymbol = "#"

	// BoundaryFallbackLabel is used for Boundary nodes when the table has
	// no entry for BoundarySymbol.
	BoundaryFallbackLabel = 1
)

// SymbolTable is a bijection between symbols and non-negative integer
// labels. Label 0 is always the epsilon symbol. Tables are read-only after
// construction; every automaton that cooperates in a composition, union, or
// concatenation must reference the same instance.
type SymbolTable struct {
	byLabel []string
	byName  map[string]int
}

// NewSymbolTable creates a table containing only the epsilon symbol.
func NewSymbolTable() *SymbolTable {
	t := &SymbolTable{byName: make(map[string]int)}
	t.AddSymbol(EpsilonSymbol)
	return t
}

// AddSymbol inserts a symbol and returns its label. Inserting an existing
// symbol returns the label it already has.
func (t *SymbolTable) AddSymbol(sym string) int {
	if l, ok := t.byName[sym]; ok {
		return l
	}
	l := len(t.byLabel)
	t.byLabel = append(t.byLabel, sym)
	t.byName[sym] = l
	return l
}

// Label returns the label of sym, if present.
func (t *SymbolTable) Label(sym string) (int, bool) {
	l, ok := t.byName[sym]
	return l, ok
}

// Symbol returns the symbol with the given label, if present.
func (t *SymbolTable) Symbol(label int) (string, bool) {
	if label < 0 || label >= len(t.byLabel) {
		return "", false
	}
	return t.byLabel[label], true
}

// Len returns the number of symbols, including epsilon.
func (t *SymbolTable) Len() int { return len(t.byLabel) }

// Symbols returns the symbols in label order. Index i is the symbol for
// label i. The slice is a copy.
func (t *SymbolTable) Symbols() []string {
	out := make([]string, len(t.byLabel))
	copy(out, t.byLabel)
	return out
}

func (t *SymbolTable) String() string {
	var b strings.Builder
	b.WriteString("SymbolTable{")
	for l, s := range t.byLabel {
		if l > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%q", l, s)
	}
	b.WriteString("}")
	return b.String()
}

// ReadSymbolFile loads a symbol inventory: one symbol per line, lowercased
// and NFD-normalized, with the boundary symbol appended at the end. Empty
// lines are skipped.
func ReadSymbolFile(path string) (*SymbolTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read symbol file: %w", err)
	}
	t := NewSymbolTable()
	for _, line := range strings.Split(strings.ToLower(string(data)), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		t.AddSymbol(norm.NFD.String(line))
	}
	t.AddSymbol(BoundarySymbol)
	return t, nil
}
