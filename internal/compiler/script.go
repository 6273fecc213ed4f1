package compiler

import (
	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

// CompileScript compiles one rule file into a single relation. Macro
// definitions accumulate as they appear; rules apply in written order,
// each composed onto the result of the previous one, so a derivation
// through the file passes through every rule. A file with no rules is
// the identity relation.
func (c *Compiler) CompileScript(script rules.Script) (*wfst.Automaton, error) {
	macros := c.newMacroTable()
	var acc *wfst.Automaton

	for _, st := range script.Statements {
		switch s := st.(type) {
		case rules.CommentStmt:
		case rules.MacroDef:
			if err := macros.Define(s.Name, s.Def); err != nil {
				return nil, err
			}
		case rules.RuleStmt:
			frag := c.AssembleRule(macros, s.Rule, false)
			if acc == nil {
				acc = frag
				continue
			}
			acc.SortArcs(wfst.SortByOutput)
			frag.SortArcs(wfst.SortByInput)
			composed, err := wfst.Compose(acc, frag)
			if err != nil {
				return nil, err
			}
			composed.Optimize(pipelineOptimizeTolerance)
			acc = composed
		}
	}

	if acc == nil {
		return wfst.SigmaStar(c.symt), nil
	}
	return acc, nil
}
