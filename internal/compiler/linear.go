package compiler

import (
	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

// CompileLinear folds a script into one relation for words laid out as
// boundary, segment, then up to four tone-and-segment positions. Rules
// union into a running base as alternatives; the base is determinized
// under the functional claim and then composed under a window per tone
// position: stage i expects the source of some rule right after the
// i-th tone-bearing position. Words with more tone positions than the
// window models are not handled correctly.
//
// The window patterns come from the script's own "segment" and "tone"
// macros, so a script that leaves them undefined degrades the windows
// to epsilon.
func (c *Compiler) CompileLinear(script rules.Script) (*wfst.Automaton, error) {
	macros := c.newMacroTable()
	base := wfst.SigmaStar(c.symt)

	for _, st := range script.Statements {
		switch s := st.(type) {
		case rules.CommentStmt:
		case rules.MacroDef:
			if err := macros.Define(s.Name, s.Def); err != nil {
				return nil, err
			}
		case rules.RuleStmt:
			frag := c.AssembleRule(macros, s.Rule, true)
			base.Optimize(pipelineOptimizeTolerance)
			c.union(base, frag)
		}
	}

	det, err := wfst.Determinize(base, wfst.DeterminizeFunctional, determinizeDelta)
	if err != nil {
		return nil, err
	}

	segmentHead := c.CompileNode(macros, rules.Group{rules.Boundary{}, rules.Macro(segmentMacroName)})
	toneSegment := c.CompileNode(macros, rules.Group{rules.Macro(toneMacroName), rules.Macro(segmentMacroName)})

	result := wfst.SigmaStar(c.symt)
	for i := 0; i < maxTonePositions; i++ {
		window := c.identityFragment()
		c.concat(window, segmentHead)
		for j := 0; j < i; j++ {
			c.concat(window, toneSegment)
		}
		c.concat(window, det)

		result.SortArcs(wfst.SortByOutput)
		window.SortArcs(wfst.SortByInput)
		composed, err := wfst.Compose(result, window)
		if err != nil {
			return nil, err
		}
		composed.Optimize(pipelineOptimizeTolerance)
		composed.Minimize(wfst.MinimizeConfig{Delta: minimizeDelta, AllowNondet: false})
		result = composed
	}
	return result, nil
}
