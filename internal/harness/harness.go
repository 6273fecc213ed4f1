package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sandhi/internal/compiler"
	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/testutil"
	"github.com/roach88/sandhi/internal/validate"
	"github.com/roach88/sandhi/internal/wfst"
)

// Report is the outcome of one scenario run: the validator result for
// each case, in scenario order.
type Report struct {
	Scenario *Scenario
	Results  []validate.Result
}

// Run loads the scenario at path and executes it against the real
// compile and validate pipeline. Case mismatches are reported through t;
// the report is returned for further inspection.
func Run(t *testing.T, path string) *Report {
	t.Helper()
	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	return RunScenario(t, scenario)
}

// RunDir executes every .yaml scenario under dir as a subtest.
func RunDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".yaml")
		path := filepath.Join(dir, entry.Name())
		t.Run(name, func(t *testing.T) {
			Run(t, path)
		})
	}
}

// RunScenario compiles the scenario's scripts per its mode and validates
// every case.
func RunScenario(t *testing.T, scenario *Scenario) *Report {
	t.Helper()

	table := scenarioSymbols(t, scenario)
	c := compiler.New(table, compiler.WithLogger(testutil.NewLogger(t)))
	relation := compileScenario(t, c, scenario)

	v, err := validate.New(c, relation, validate.WithLogger(testutil.NewLogger(t)))
	require.NoError(t, err)

	report := &Report{Scenario: scenario}
	for i, cs := range scenario.Cases {
		res, err := v.Validate(cs.Input, cs.Expected, cs.Intermediate)
		require.NoErrorf(t, err, "case %d", i)

		wantPass := cs.Want != WantFail
		assert.Equalf(t, wantPass, res.Passed,
			"case %d: %s -> %s decoded best %q at %g", i, cs.Input, cs.Expected, res.Best, float64(res.Weight))
		report.Results = append(report.Results, res)
	}

	if scenario.Golden != "" {
		assertGolden(t, scenario.Golden, report)
	}
	return report
}

func scenarioSymbols(t *testing.T, scenario *Scenario) *wfst.SymbolTable {
	t.Helper()
	if scenario.SymbolsFile != "" {
		table, err := wfst.ReadSymbolFile(scenario.SymbolsFile)
		require.NoError(t, err)
		return table
	}
	table := wfst.NewSymbolTable()
	for _, sym := range scenario.Symbols {
		table.AddSymbol(sym)
	}
	table.AddSymbol(wfst.BoundarySymbol)
	return table
}

func compileScenario(t *testing.T, c *compiler.Compiler, scenario *Scenario) *wfst.Automaton {
	t.Helper()
	switch scenario.Mode {
	case ModeScript:
		relation, err := c.CompileScript(parseScript(t, scenario.Script))
		require.NoError(t, err)
		return relation
	case ModeLinear:
		relation, err := c.CompileLinear(parseScript(t, scenario.Script))
		require.NoError(t, err)
		return relation
	case ModeUnion:
		scripts := make([]rules.Script, 0, len(scenario.Scripts))
		for _, src := range scenario.Scripts {
			scripts = append(scripts, parseScript(t, src))
		}
		relation, err := c.CompileUnion(scripts)
		require.NoError(t, err)
		return relation
	default:
		t.Fatalf("unknown mode %q", scenario.Mode)
		return nil
	}
}

func parseScript(t *testing.T, src string) rules.Script {
	t.Helper()
	script, err := rules.ParseScript(src)
	require.NoError(t, err)
	return script
}
