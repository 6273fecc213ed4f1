package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// chainedScript annotates a chained tone realization on a 14-final word.
const chainedScript = "! chained realization 3>1>4 on a 14-final word\n" +
	"tone = [1234]\n" +
	`{3\>1\>4} -> #3\>1\>4##14\>14# / _ [^#]*$tone$tone#` + "\n"

// eraseScript deletes chain markup without annotating, for base
// orthography suites.
const eraseScript = `{3\>1\>4} -> 0 / _` + "\n"

// linearScript alternates segments and single tone positions through the
// windowed pipeline.
const linearScript = "segment = [^1]+\n" +
	"tone = [1]\n" +
	"$tone -> 0 / _\n"

const toneChars = "n\ni\nj\no\n{\n}\n>\n1\n2\n3\n4\n"

const linearChars = "a\nb\nc\nd\ne\n1\n"

const intermediateCSV = "id,form,segmentation\n" +
	"1,ni{3>1>4}jo14,ni3jo14##3>1>4##14>14\n"

const baseCSV = "id,form,segmentation\n" +
	"1,ni{3>1>4}jo14,ni3jo14\n"

// writeProject lays out a project directory and returns the manifest path.
func writeProject(t *testing.T, files map[string]string, manifest string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	path := filepath.Join(dir, "sandhi.cue")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))
	return path
}

// chainedProject is the standard union fixture with the annotated suite.
func chainedProject(t *testing.T) string {
	t.Helper()
	return writeProject(t, map[string]string{
		"chars.txt":          toneChars,
		"rules/g3_chain.txt": chainedScript,
		"tests.csv":          intermediateCSV,
	}, `
symbols: "chars.txt"
mode:    "union"
rules: ["rules/g3_chain.txt"]
tests: "tests.csv"
`)
}

// baseProject pairs the markup-erasing script with a base orthography
// suite.
func baseProject(t *testing.T) string {
	t.Helper()
	return writeProject(t, map[string]string{
		"chars.txt":       toneChars,
		"rules/erase.txt": eraseScript,
		"tests.csv":       baseCSV,
	}, `
symbols: "chars.txt"
mode:    "union"
rules: ["rules/erase.txt"]
tests: "tests.csv"
`)
}

// linearProject drives the windowed pipeline over five-position words.
func linearProject(t *testing.T) string {
	t.Helper()
	return writeProject(t, map[string]string{
		"chars.txt":        linearChars,
		"rules/linear.txt": linearScript,
	}, `
symbols: "chars.txt"
mode:    "linear"
rules: ["rules/linear.txt"]
`)
}

// runSandhi executes the CLI with args and returns stdout and the
// execution error.
func runSandhi(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
