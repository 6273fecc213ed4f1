package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

// bestWeights collapses paths to the minimum weight per distinct output.
func bestWeights(paths []wfst.Path) map[string]wfst.Weight {
	best := make(map[string]wfst.Weight, len(paths))
	for _, p := range paths {
		if w, ok := best[p.Output]; !ok || p.Weight.Less(w) {
			best[p.Output] = p.Weight
		}
	}
	return best
}

func TestCompileUnionNoFilesIsPricedIdentity(t *testing.T) {
	c := testCompiler("a", "#")
	fst, err := c.CompileUnion(nil)
	require.NoError(t, err)

	paths := applyIn(t, fst, "a")
	require.NotEmpty(t, paths)
	assert.Equal(t, "a", paths[0].Output)
	assert.Equal(t, ruleApplicationCost, paths[0].Weight, "pass-through costs one rule application per symbol")
}

func TestCompileUnionPadsFilesToOneLevel(t *testing.T) {
	// File A applies one rule, file B applies three in sequence. On input
	// "a" the B derivation costs nothing, the A derivation is padded by
	// two filler slots, and the identity branch pays per symbol plus the
	// same padding.
	fileA := "a -> x / _"
	fileB := "a -> p / _\np -> q / _\nq -> r / _"

	for name, order := range map[string][]string{
		"shorter file first": {fileA, fileB},
		"longer file first":  {fileB, fileA},
	} {
		t.Run(name, func(t *testing.T) {
			c := testCompiler("a", "x", "p", "q", "r", "#")
			scripts := make([]rules.Script, len(order))
			for i, src := range order {
				scripts[i] = mustParse(t, src)
			}
			fst, err := c.CompileUnion(scripts)
			require.NoError(t, err)

			best := bestWeights(applyIn(t, fst, "a"))
			require.Contains(t, best, "apqr")
			require.Contains(t, best, "ax")
			require.Contains(t, best, "a")
			assert.Equal(t, wfst.One(), best["apqr"])
			assert.Equal(t, 2*ruleApplicationCost, best["ax"])
			assert.Equal(t, 3*ruleApplicationCost, best["a"])
		})
	}
}

func TestCompileUnionChainedToneAnnotation(t *testing.T) {
	c := testCompiler("n", "i", "j", "o", "{", "}", ">", "1", "2", "3", "4", "#")
	script := mustParse(t, "! Chained tones resolve to the underlying tone in place,\n"+
		"! with the chain recorded after the word.\n"+
		"tone = [1234]\n"+
		`{3\>1\>4} -> #3\>1\>4##14\>14# / _ [^#]*$tone$tone#`)
	fst, err := c.CompileUnion([]rules.Script{script})
	require.NoError(t, err)

	paths := applyIn(t, fst, "#ni{3>1>4}jo14#")
	require.NotEmpty(t, paths)
	assert.Equal(t, wfst.One(), paths[0].Weight)
	assert.Equal(t, "#ni3jo14##3>1>4##14>14#", paths[0].Output)

	best := bestWeights(paths)
	require.Contains(t, best, "#ni{3>1>4}jo14#")
	assert.Equal(t, 15*ruleApplicationCost, best["#ni{3>1>4}jo14#"],
		"the identity branch pays per symbol and ranks behind the rule derivation")
}

func TestCompileUnionZeroRuleFileStaysCommensurable(t *testing.T) {
	c := testCompiler("a", "#")
	fst, err := c.CompileUnion([]rules.Script{mustParse(t, "! comments only\n")})
	require.NoError(t, err)

	best := bestWeights(applyIn(t, fst, "a"))
	require.Contains(t, best, "a")
	assert.Equal(t, ruleApplicationCost, best["a"],
		"a rule-less file is identity padded up to the seed level")
}
