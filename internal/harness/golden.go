package harness

import (
	"strconv"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// renderReport renders the case outcomes as stable text. Candidates are
// already ranked, so the rendered best derivation is deterministic for a
// given rule set and the output diffs cleanly under version control.
func renderReport(report *Report) []byte {
	var sb strings.Builder
	sb.WriteString("scenario: " + report.Scenario.Name + "\n")
	sb.WriteString("mode: " + report.Scenario.Mode + "\n")

	for i, res := range report.Results {
		cs := report.Scenario.Cases[i]
		sb.WriteString("\ncase " + strconv.Itoa(i) + ": " + cs.Input + " -> " + cs.Expected)
		if cs.Intermediate {
			sb.WriteString(" (intermediate)")
		}
		sb.WriteByte('\n')
		if len(res.Candidates) == 0 {
			sb.WriteString("  no derivation\n")
		} else {
			sb.WriteString("  best: " + res.Best + " weight " + formatWeight(float64(res.Weight)) + "\n")
		}
		sb.WriteString("  passed: " + strconv.FormatBool(res.Passed) + "\n")
	}
	return []byte(sb.String())
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}

// assertGolden compares the rendered report against
// testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func assertGolden(t *testing.T, name string, report *Report) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, renderReport(report))
}
