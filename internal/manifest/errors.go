package manifest

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error code constants shared by every manifest consumer.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	// Field validation errors
	ErrCodeSymbols = "E101" // Missing or invalid symbols path
	ErrCodeMode    = "E102" // Invalid pipeline mode
	ErrCodeRules   = "E103" // Missing rule scripts
	ErrCodePolicy  = "E104" // Invalid macro policy
	ErrCodeTests   = "E105" // Invalid tests path
)

// LoadError is a manifest loading or validation error with a stable code
// and, when available, the CUE source position it points at.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
