package compiler

import (
	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

// CompileNode turns one pattern node into an identity-transducer
// fragment. It is total: unknown symbols and undefined macros degrade
// to epsilon with a logged diagnostic instead of failing the compile.
func (c *Compiler) CompileNode(macros *rules.MacroTable, node rules.Node) *wfst.Automaton {
	switch n := node.(type) {
	case rules.Epsilon, rules.Comment:
		return c.identityFragment()
	case rules.Char:
		return c.labelFragment(c.charLabel(rune(n)))
	case rules.Boundary:
		label, ok := c.symt.Label(wfst.BoundarySymbol)
		if !ok {
			label = wfst.BoundaryFallbackLabel
		}
		return c.labelFragment(label)
	case rules.Group:
		a := c.identityFragment()
		for _, child := range n {
			c.concat(a, c.CompileNode(macros, child))
		}
		return a
	case rules.Disjunction:
		if len(n) == 0 {
			return c.identityFragment()
		}
		a := c.CompileNode(macros, n[0])
		for _, alt := range n[1:] {
			c.union(a, c.CompileNode(macros, alt))
		}
		return a
	case rules.Class:
		return c.labelsFragment(c.classLabels(n))
	case rules.ClassComplement:
		return c.labelsFragment(c.complementLabels(n))
	case rules.Star:
		a := c.CompileNode(macros, n.Inner)
		a.Close(wfst.ClosureStar)
		return a
	case rules.Plus:
		a := c.CompileNode(macros, n.Inner)
		a.Close(wfst.ClosurePlus)
		return a
	case rules.Option:
		a := c.CompileNode(macros, n.Inner)
		super := a.AddSuperFinal()
		addArc(a, a.Start(), wfst.Arc{
			In: wfst.Epsilon, Out: wfst.Epsilon, Weight: wfst.One(), To: super,
		})
		return a
	case rules.Macro:
		def, ok := macros.Lookup(string(n))
		if !ok {
			c.log.Warn("undefined macro, matching the empty string instead", "name", string(n))
			return c.identityFragment()
		}
		return c.CompileNode(macros, def)
	default:
		return c.identityFragment()
	}
}

// charLabel resolves one symbol, degrading to epsilon when the symbol
// is not in the table.
func (c *Compiler) charLabel(r rune) int {
	label, ok := c.symt.Label(string(r))
	if !ok {
		c.log.Warn("symbol not in table, matching epsilon instead", "symbol", string(r))
		return wfst.Epsilon
	}
	return label
}

func (c *Compiler) classLabels(members []rune) []int {
	var labels []int
	for _, r := range members {
		label, ok := c.symt.Label(string(r))
		if !ok {
			c.log.Warn("skipping unknown symbol in class", "symbol", string(r))
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// complementLabels enumerates the whole table minus the excluded
// members. The boundary marker and epsilon are always excluded.
func (c *Compiler) complementLabels(members []rune) []int {
	excluded := map[string]bool{
		wfst.EpsilonSymbol:  true,
		wfst.BoundarySymbol: true,
	}
	for _, r := range members {
		excluded[string(r)] = true
	}
	var labels []int
	for _, sym := range c.symt.Symbols() {
		if excluded[sym] {
			continue
		}
		if label, ok := c.symt.Label(sym); ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// identityFragment is the seed every compiled pattern grows from: one
// state, both start and final, consuming and emitting nothing.
func (c *Compiler) identityFragment() *wfst.Automaton {
	a := wfst.New(c.symt)
	s := a.AddState()
	setStart(a, s)
	setFinal(a, s, wfst.One())
	return a
}

func (c *Compiler) labelFragment(label int) *wfst.Automaton {
	return c.labelsFragment([]int{label})
}

// labelsFragment is a two-state fragment with one parallel transition
// per label. No labels means a fragment matching nothing.
func (c *Compiler) labelsFragment(labels []int) *wfst.Automaton {
	a := wfst.New(c.symt)
	entry := a.AddState()
	exit := a.AddState()
	setStart(a, entry)
	setFinal(a, exit, wfst.One())
	for _, label := range labels {
		addArc(a, entry, wfst.Arc{In: label, Out: label, Weight: wfst.One(), To: exit})
	}
	return a
}
