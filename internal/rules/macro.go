package rules

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrMacroRedefined reports a second definition for a macro name under
// the rejecting policy.
var ErrMacroRedefined = errors.New("macro redefined")

// RedefinePolicy selects how a MacroTable treats a second definition
// for an existing name. The first definition always stays in force.
type RedefinePolicy int

const (
	// PolicyIgnore keeps the first definition and logs the attempt.
	PolicyIgnore RedefinePolicy = iota
	// PolicyReject keeps the first definition and returns an error.
	PolicyReject
)

// MacroTable maps macro names to their defining patterns. It is built
// incrementally while walking a script and read-only afterwards.
type MacroTable struct {
	defs   map[string]Node
	policy RedefinePolicy
	log    *slog.Logger
}

// NewMacroTable returns an empty table. A nil logger falls back to
// slog.Default.
func NewMacroTable(policy RedefinePolicy, log *slog.Logger) *MacroTable {
	if log == nil {
		log = slog.Default()
	}
	return &MacroTable{
		defs:   make(map[string]Node),
		policy: policy,
		log:    log,
	}
}

// Define records def under name. A repeated name never replaces the
// first definition: it is either logged and ignored or rejected,
// depending on the table's policy.
func (t *MacroTable) Define(name string, def Node) error {
	if _, ok := t.defs[name]; ok {
		if t.policy == PolicyReject {
			return fmt.Errorf("%w: %q", ErrMacroRedefined, name)
		}
		t.log.Warn("ignoring macro redefinition", "name", name)
		return nil
	}
	t.defs[name] = def
	return nil
}

// Lookup resolves a macro name to its definition.
func (t *MacroTable) Lookup(name string) (Node, bool) {
	def, ok := t.defs[name]
	return def, ok
}

// Len reports the number of defined macros.
func (t *MacroTable) Len() int {
	return len(t.defs)
}
