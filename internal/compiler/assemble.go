package compiler

import (
	"fmt"

	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

// AssembleRule encodes one rewrite rule as a transducer: consume the
// source pattern at one site, emit its underlying part in place, check
// the contexts, copy everything else through, and emit the target
// pattern after the end of the word.
//
// The left context is anchored at the start of the word and the right
// context sits directly after the source; an absent context relaxes to
// the unrestricted sigma-star. With dropLeftContext the left fragment
// is compiled but left out of the chain, for pipelines that supply
// left context by composition order instead.
//
// The source must be a sequence; anything else panics, since the
// parser always produces sequences and a bare node here means a
// hand-built rule is malformed.
func (c *Compiler) AssembleRule(macros *rules.MacroTable, rule rules.RewriteRule, dropLeftContext bool) *wfst.Automaton {
	src, ok := rule.Source.(rules.Group)
	if !ok {
		panic(fmt.Sprintf("rule source must be a sequence, got %T", rule.Source))
	}

	srcFrag := c.CompileNode(macros, src)
	srcFrag.RewriteArcs(eraseOutput)

	undFrag := c.CompileNode(macros, underlyingSequence(src))
	undFrag.RewriteArcs(eraseInput)

	tgtFrag := c.CompileNode(macros, rule.Target)
	tgtFrag.RewriteArcs(eraseInput)

	chain := c.identityFragment()
	if !dropLeftContext {
		c.concat(chain, c.contextFragment(macros, rule.Left))
	}
	c.concat(chain, srcFrag)
	c.concat(chain, undFrag)
	c.concat(chain, c.contextFragment(macros, rule.Right))
	c.concat(chain, wfst.SigmaStar(c.symt))
	c.concat(chain, tgtFrag)

	chain.Optimize(ruleOptimizeTolerance)
	return chain
}

// contextFragment compiles a context pattern, with the empty context
// relaxing to "any sequence of symbols".
func (c *Compiler) contextFragment(macros *rules.MacroTable, ctx rules.Node) *wfst.Automaton {
	if _, ok := ctx.(rules.Epsilon); ok {
		return wfst.SigmaStar(c.symt)
	}
	return c.CompileNode(macros, ctx)
}

// underlyingSequence returns the sub-pattern re-emitted in place of a
// matched source. A literal '>' splits the source into underlying and
// surface parts: the elements between the opening marker and the first
// '>' form the underlying part, as in {3>1>4} where tone 3 is realized
// as the chain 1>4 inside braces. A source that starts at the '>' has
// an empty underlying part and deletes outright; a source without '>'
// is re-emitted whole.
func underlyingSequence(src rules.Group) rules.Group {
	for i, n := range src {
		if ch, ok := n.(rules.Char); ok && rune(ch) == '>' {
			if i <= 1 {
				return rules.Group{}
			}
			return src[1:i]
		}
	}
	return src
}

func eraseOutput(arc wfst.Arc) wfst.Arc {
	arc.Out = wfst.Epsilon
	return arc
}

func eraseInput(arc wfst.Arc) wfst.Arc {
	arc.In = wfst.Epsilon
	return arc
}
