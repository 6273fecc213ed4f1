package validate

import (
	"fmt"

	"github.com/roach88/sandhi/internal/compiler"
	"github.com/roach88/sandhi/internal/rules"
	"github.com/roach88/sandhi/internal/wfst"
)

// The two normalization rules mapping annotated forms down to base
// orthography. The first deletes the realization chain after an opening
// brace and its underlying tone, leaving the brace and tone in place;
// the second deletes a whole braced annotation, re-emitting only the
// underlying tone letter. They are alternatives over a priced identity,
// so forms carrying no annotation pass through unchanged at the
// per-symbol cost and any applicable deletion outranks them.
var normalizerRules = []string{
	`\>[1234\>]*} -> 0 / #[^{]*{[1234]* _`,
	`{[1234]\>[1234\>]*} -> 0 / _`,
}

// Normalizer builds the annotation-deleting relation through the same
// rule pipeline as user scripts, one single-rule script per alternative.
func Normalizer(c *compiler.Compiler) (*wfst.Automaton, error) {
	scripts := make([]rules.Script, 0, len(normalizerRules))
	for _, src := range normalizerRules {
		script, err := rules.ParseScript(src)
		if err != nil {
			return nil, fmt.Errorf("parse normalizer rule %q: %w", src, err)
		}
		scripts = append(scripts, script)
	}
	return c.CompileUnion(scripts)
}
