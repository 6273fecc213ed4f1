package wfst

import "errors"

var (
	// ErrNoStartState is returned by operations that need a start state on
	// an operand that has none.
	ErrNoStartState = errors.New("automaton has no start state")

	// ErrUnsorted is returned by Compose when the left operand is not
	// sorted by output label or the right operand is not sorted by input
	// label. Callers must SortArcs both operands first.
	ErrUnsorted = errors.New("compose operands are not label-sorted")

	// ErrSymbolTable is returned when two automata built over different
	// symbol table instances are combined.
	ErrSymbolTable = errors.New("automata do not share a symbol table")

	// ErrBadState is returned when a state index is out of range.
	ErrBadState = errors.New("state index out of range")
)
