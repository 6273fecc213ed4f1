// Package compiler turns parsed rewrite-rule scripts into weighted
// transducers: single patterns into fragments, rules into rewrite
// relations, and whole rule sets into one combined relation via either
// the windowed linear pipeline or the padded union pipeline.
package compiler

import (
	"log/slog"

	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

const (
	// ruleOptimizeTolerance is the weight tolerance for the cleanup
	// pass run on every freshly assembled rule.
	ruleOptimizeTolerance = 1e-6
	// pipelineOptimizeTolerance is the tighter tolerance used between
	// pipeline stages.
	pipelineOptimizeTolerance = 1e-7
	determinizeDelta          = 1e-7
	minimizeDelta             = 1e-7

	// ruleApplicationCost prices one rule application slot. The filler
	// padding and the pass-through identity branch both use it, which
	// keeps rule files of different lengths rankable against each
	// other.
	ruleApplicationCost wfst.Weight = 10.0

	// maxTonePositions caps how many tone-bearing segment positions
	// the linear pipeline models per word.
	maxTonePositions = 4
)

// Well-known macro names consulted by the linear pipeline.
const (
	segmentMacroName = "segment"
	toneMacroName    = "tone"
)

// Compiler compiles rule scripts over one shared symbol table.
type Compiler struct {
	symt        *wfst.SymbolTable
	log         *slog.Logger
	macroPolicy rules.RedefinePolicy
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger routes compile diagnostics to log.
func WithLogger(log *slog.Logger) Option {
	return func(c *Compiler) { c.log = log }
}

// WithMacroPolicy selects how macro redefinitions are treated.
func WithMacroPolicy(p rules.RedefinePolicy) Option {
	return func(c *Compiler) { c.macroPolicy = p }
}

// New returns a Compiler over symt.
func New(symt *wfst.SymbolTable, opts ...Option) *Compiler {
	c := &Compiler{symt: symt, log: slog.Default(), macroPolicy: rules.PolicyIgnore}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SymbolTable returns the table every compiled automaton references.
func (c *Compiler) SymbolTable() *wfst.SymbolTable { return c.symt }

// newMacroTable starts the per-pass macro table.
func (c *Compiler) newMacroTable() *rules.MacroTable {
	return rules.NewMacroTable(c.macroPolicy, c.log)
}

// The helpers below wrap automaton mutations whose only failure mode
// is mixing symbol tables. Every operand here is built over c.symt.

func (c *Compiler) concat(a, b *wfst.Automaton) {
	if err := a.Concat(b); err != nil {
		panic(err)
	}
}

func (c *Compiler) union(a, b *wfst.Automaton) {
	if err := a.Union(b); err != nil {
		panic(err)
	}
}

func addArc(a *wfst.Automaton, from int, arc wfst.Arc) {
	if err := a.AddArc(from, arc); err != nil {
		panic(err)
	}
}

func setStart(a *wfst.Automaton, s int) {
	if err := a.SetStart(s); err != nil {
		panic(err)
	}
}

func setFinal(a *wfst.Automaton, s int, w wfst.Weight) {
	if err := a.SetFinal(s, w); err != nil {
		panic(err)
	}
}
