// Package manifest loads sandhi project manifests written in CUE.
//
// A manifest names the symbol inventory, the rule scripts, the pipeline
// mode that combines them, and optional knobs:
//
//	symbols: "chars.txt"
//	mode:    "union"
//	rules: ["rules/g3_chain.txt", "rules/tone14.txt"]
//	tests: "tests.csv"
//	options: {
//		minimize:    true
//		macroPolicy: "ignore"
//	}
//
// Relative paths resolve against the manifest's directory.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/sandhi/internal/rules"
)

// Pipeline modes accepted by the mode field.
const (
	ModeUnion  = "union"
	ModeLinear = "linear"
)

// Macro policies accepted by options.macroPolicy.
const (
	PolicyIgnore = "ignore"
	PolicyReject = "reject"
)

// Project is a decoded manifest with all paths resolved to absolute or
// manifest-relative form.
type Project struct {
	Symbols string
	Mode    string
	Rules   []string
	Tests   string
	Options Options
}

// Options holds the optional manifest knobs with their defaults applied.
type Options struct {
	Minimize    bool
	MacroPolicy string
}

// Policy maps the manifest's macro policy string onto the rule table's
// redefinition policy.
func (p *Project) Policy() rules.RedefinePolicy {
	if p.Options.MacroPolicy == PolicyReject {
		return rules.PolicyReject
	}
	return rules.PolicyIgnore
}

// Load reads and validates the manifest at path. The first problem found
// is returned as a *LoadError carrying a stable code and, where the CUE
// evaluator provides one, a source position.
func Load(path string) (*Project, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest is a directory: %s", path)}
	}

	dir := filepath.Dir(path)
	ctx := cuecontext.New()
	instances := load.Instances([]string{filepath.Base(path)}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading manifest: %v", inst.Err)}
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building manifest value: %v", err)}
	}

	return decodeProject(value, dir)
}

// decodeProject walks the built CUE value field by field so every
// validation failure can name the field's position.
func decodeProject(value cue.Value, dir string) (*Project, error) {
	p := &Project{Options: Options{Minimize: true, MacroPolicy: PolicyIgnore}}

	symbols, err := requiredString(value, "symbols", ErrCodeSymbols)
	if err != nil {
		return nil, err
	}
	p.Symbols = resolvePath(dir, symbols)
	if err := mustExist(p.Symbols, ErrCodeSymbols); err != nil {
		return nil, err
	}

	mode, err := requiredString(value, "mode", ErrCodeMode)
	if err != nil {
		return nil, err
	}
	if mode != ModeUnion && mode != ModeLinear {
		return nil, &LoadError{
			Code:    ErrCodeMode,
			Message: fmt.Sprintf("mode must be %q or %q, got %q", ModeUnion, ModeLinear, mode),
			Pos:     value.LookupPath(cue.ParsePath("mode")).Pos(),
		}
	}
	p.Mode = mode

	rulesVal := value.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, &LoadError{Code: ErrCodeRules, Message: "rules list is required and must be non-empty"}
	}
	iter, err := rulesVal.List()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRules, Message: fmt.Sprintf("rules: %v", err), Pos: rulesVal.Pos()}
	}
	for iter.Next() {
		item, err := iter.Value().String()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeRules, Message: fmt.Sprintf("rules: %v", err), Pos: iter.Value().Pos()}
		}
		resolved := resolvePath(dir, item)
		if err := mustExist(resolved, ErrCodeRules); err != nil {
			return nil, err
		}
		p.Rules = append(p.Rules, resolved)
	}
	if len(p.Rules) == 0 {
		return nil, &LoadError{Code: ErrCodeRules, Message: "rules list is required and must be non-empty", Pos: rulesVal.Pos()}
	}
	if p.Mode == ModeLinear && len(p.Rules) != 1 {
		return nil, &LoadError{Code: ErrCodeRules, Message: "linear mode takes exactly one rule script", Pos: rulesVal.Pos()}
	}

	if testsVal := value.LookupPath(cue.ParsePath("tests")); testsVal.Exists() {
		tests, err := testsVal.String()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeTests, Message: fmt.Sprintf("tests: %v", err), Pos: testsVal.Pos()}
		}
		p.Tests = resolvePath(dir, tests)
		if err := mustExist(p.Tests, ErrCodeTests); err != nil {
			return nil, err
		}
	}

	if err := decodeOptions(value, &p.Options); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeOptions(value cue.Value, opts *Options) error {
	optsVal := value.LookupPath(cue.ParsePath("options"))
	if !optsVal.Exists() {
		return nil
	}
	if minVal := optsVal.LookupPath(cue.ParsePath("minimize")); minVal.Exists() {
		min, err := minVal.Bool()
		if err != nil {
			return &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("options.minimize: %v", err), Pos: minVal.Pos()}
		}
		opts.Minimize = min
	}
	if polVal := optsVal.LookupPath(cue.ParsePath("macroPolicy")); polVal.Exists() {
		policy, err := polVal.String()
		if err != nil {
			return &LoadError{Code: ErrCodePolicy, Message: fmt.Sprintf("options.macroPolicy: %v", err), Pos: polVal.Pos()}
		}
		if policy != PolicyIgnore && policy != PolicyReject {
			return &LoadError{
				Code:    ErrCodePolicy,
				Message: fmt.Sprintf("options.macroPolicy must be %q or %q, got %q", PolicyIgnore, PolicyReject, policy),
				Pos:     polVal.Pos(),
			}
		}
		opts.MacroPolicy = policy
	}
	return nil
}

func requiredString(value cue.Value, field, code string) (string, error) {
	v := value.LookupPath(cue.ParsePath(field))
	if !v.Exists() {
		return "", &LoadError{Code: code, Message: fmt.Sprintf("%s is required", field)}
	}
	s, err := v.String()
	if err != nil {
		return "", &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", field, err), Pos: v.Pos()}
	}
	return s, nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func mustExist(path, code string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &LoadError{Code: code, Message: fmt.Sprintf("file not found: %s", path)}
	}
	return nil
}
