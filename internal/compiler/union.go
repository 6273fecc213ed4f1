package compiler

import (
	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

// CompileUnion combines whole rule files as weighted alternatives: any
// single file can derive the output, and a priced identity branch lets
// words no file matches pass through unchanged.
//
// Files with different rule counts are made weight-commensurable by
// padding the shorter side with fixed-cost fillers, one per missing
// rule application slot. The running padding level is the largest rule
// count seen so far; a shorter file is padded up to it before the
// union, and when a file exceeds it the accumulated result is padded
// instead.
func (c *Compiler) CompileUnion(scripts []rules.Script) (*wfst.Automaton, error) {
	acc := wfst.WeightedSigmaStar(c.symt, ruleApplicationCost)
	level := 1

	for _, script := range scripts {
		fileFst, err := c.CompileScript(script)
		if err != nil {
			return nil, err
		}
		switch n := script.NumRules(); {
		case n < level:
			c.pad(fileFst, level-n)
		case n > level:
			c.pad(acc, n-level)
			level = n
		}
		c.union(acc, fileFst)
	}

	acc.RemoveEpsilons()
	return acc, nil
}

// pad concatenates n fillers onto a, adding a fixed cost per missing
// rule application slot.
func (c *Compiler) pad(a *wfst.Automaton, n int) {
	for i := 0; i < n; i++ {
		c.concat(a, c.filler())
	}
}

// filler is a mandatory epsilon step carrying one rule application's
// cost.
func (c *Compiler) filler() *wfst.Automaton {
	a := wfst.New(c.symt)
	from := a.AddState()
	to := a.AddState()
	setStart(a, from)
	setFinal(a, to, wfst.One())
	addArc(a, from, wfst.Arc{
		In: wfst.Epsilon, Out: wfst.Epsilon, Weight: ruleApplicationCost, To: to,
	})
	return a
}
