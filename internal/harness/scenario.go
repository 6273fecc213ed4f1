package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Pipeline modes accepted by the mode field.
const (
	ModeScript = "script"
	ModeUnion  = "union"
	ModeLinear = "linear"
)

// Case outcomes accepted by the want field.
const (
	WantPass = "pass"
	WantFail = "fail"
)

// Scenario defines one end-to-end rule-set test.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Symbols is the inline symbol inventory. The boundary marker is
	// appended automatically. Exactly one of Symbols and SymbolsFile
	// must be given.
	Symbols []string `yaml:"symbols,omitempty"`

	// SymbolsFile is a symbol inventory file, resolved relative to the
	// scenario file location.
	SymbolsFile string `yaml:"symbols_file,omitempty"`

	// Script is the inline rule script for script and linear modes.
	Script string `yaml:"script,omitempty"`

	// Scripts are the inline rule scripts for union mode, one union
	// alternative per entry.
	Scripts []string `yaml:"scripts,omitempty"`

	// Mode selects how the scripts are combined: script, union, or
	// linear.
	Mode string `yaml:"mode"`

	// Cases are the test pairs checked against the compiled relation.
	Cases []Case `yaml:"cases"`

	// Golden optionally names a golden report under testdata/golden
	// that the rendered case results are compared against.
	Golden string `yaml:"golden,omitempty"`
}

// Case is one validated pair within a scenario.
type Case struct {
	// Input is the surface form fed to the relation.
	Input string `yaml:"input"`

	// Expected is the form the best derivation must match.
	Expected string `yaml:"expected"`

	// Intermediate selects the annotated intermediate representation
	// as the comparison target instead of base orthography.
	Intermediate bool `yaml:"intermediate,omitempty"`

	// Want is "pass" (default) or "fail".
	Want string `yaml:"want,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Returns an error
// if the file is missing, malformed, contains unknown fields (typos),
// or fails validation. SymbolsFile paths resolve against the scenario
// file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.SymbolsFile != "" && !filepath.IsAbs(scenario.SymbolsFile) {
		scenario.SymbolsFile = filepath.Join(filepath.Dir(path), scenario.SymbolsFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and coherent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	hasInline := len(s.Symbols) > 0
	hasFile := s.SymbolsFile != ""
	if hasInline == hasFile {
		return fmt.Errorf("exactly one of symbols and symbols_file is required")
	}
	if hasFile {
		if _, err := os.Stat(s.SymbolsFile); os.IsNotExist(err) {
			return fmt.Errorf("symbols file not found: %s", s.SymbolsFile)
		}
	}

	switch s.Mode {
	case ModeScript, ModeLinear:
		if s.Script == "" {
			return fmt.Errorf("mode %q requires script", s.Mode)
		}
		if len(s.Scripts) > 0 {
			return fmt.Errorf("mode %q takes a single script, not scripts", s.Mode)
		}
	case ModeUnion:
		if len(s.Scripts) == 0 {
			return fmt.Errorf("mode %q requires a non-empty scripts list", s.Mode)
		}
		if s.Script != "" {
			return fmt.Errorf("mode %q takes scripts, not script", s.Mode)
		}
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}
	for i, c := range s.Cases {
		if c.Input == "" {
			return fmt.Errorf("cases[%d]: input is required", i)
		}
		switch c.Want {
		case "", WantPass, WantFail:
		default:
			return fmt.Errorf("cases[%d]: want must be %q or %q, got %q", i, WantPass, WantFail, c.Want)
		}
	}
	return nil
}
