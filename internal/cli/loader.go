package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/roach88/sandhi/internal/compiler"
	"github.com/roach88/sandhi/internal/manifest"
	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

// minimizeDelta is the weight tolerance of the final minimization pass,
// matching the tolerance the compiler uses internally.
const minimizeDelta = 1e-7

// defaultArtifact is the artifact filename when -o is not given.
const defaultArtifact = "fst_segmentation.fst"

// buildProject loads the manifest and the symbol inventory it names and
// returns a compiler configured from it.
func buildProject(path string, log *slog.Logger) (*manifest.Project, *compiler.Compiler, error) {
	p, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	symt, err := wfst.ReadSymbolFile(p.Symbols)
	if err != nil {
		return nil, nil, fmt.Errorf("read symbols: %w", err)
	}
	c := compiler.New(symt, compiler.WithLogger(log), compiler.WithMacroPolicy(p.Policy()))
	return p, c, nil
}

// parseRuleFile reads and parses one rule script, tagging parse errors
// with the file name.
func parseRuleFile(path string) (rules.Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rules.Script{}, fmt.Errorf("read rules: %w", err)
	}
	script, err := rules.ParseScript(string(data))
	if err != nil {
		return rules.Script{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return script, nil
}

// compileRelation compiles the manifest's rule files per its mode. The
// result is not minimized; callers decide the final minimization step.
func compileRelation(p *manifest.Project, c *compiler.Compiler) (*wfst.Automaton, error) {
	scripts := make([]rules.Script, 0, len(p.Rules))
	for _, path := range p.Rules {
		script, err := parseRuleFile(path)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script)
	}
	if p.Mode == manifest.ModeLinear {
		return c.CompileLinear(scripts[0])
	}
	return c.CompileUnion(scripts)
}

// minimizeRelation applies the final minimization used for artifacts.
func minimizeRelation(a *wfst.Automaton) {
	a.Minimize(wfst.MinimizeConfig{Delta: minimizeDelta, AllowNondet: true})
}

// loadRelation reads a previously compiled artifact, or recompiles from
// the manifest when no artifact path is given. Recompiled relations get
// the manifest's minimization setting so they match the written artifact.
func loadRelation(p *manifest.Project, c *compiler.Compiler, fstPath string) (*wfst.Automaton, error) {
	if fstPath == "" {
		relation, err := compileRelation(p, c)
		if err != nil {
			return nil, err
		}
		if p.Options.Minimize {
			minimizeRelation(relation)
		}
		return relation, nil
	}
	f, err := os.Open(fstPath)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()
	relation, err := wfst.ReadText(f, c.SymbolTable())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fstPath, err)
	}
	return relation, nil
}

// writeArtifact serializes the relation in the OpenFST-style text format.
func writeArtifact(a *wfst.Automaton, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	if err := a.WriteText(f); err != nil {
		f.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	return f.Close()
}

// manifestErrorCode maps an error to a stable code and message for
// output, folding manifest positions into the message.
func manifestErrorCode(err error) (string, string) {
	var loadErr *manifest.LoadError
	if errors.As(err, &loadErr) {
		msg := loadErr.Message
		if loadErr.Pos.IsValid() {
			msg = fmt.Sprintf("%s:%d:%d: %s",
				loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column(), loadErr.Message)
		}
		return loadErr.Code, msg
	}
	return manifest.ErrCodeGeneric, err.Error()
}

// outputError reports err through the formatter and converts it to a
// command-level exit code.
func outputError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// formatWeight renders a tropical weight without trailing zeros.
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}
