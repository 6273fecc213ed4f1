package rules

// RewriteRule is one context-sensitive rewrite: Source realized
// in context Left _ Right, with Target emitted after the word.
// Source and Target are always Groups; an absent context is Epsilon.
type RewriteRule struct {
	Left   Node
	Source Node
	Right  Node
	Target Node
}

// Statement is one line of a rule script.
type Statement interface {
	stmt() // Sealed - only these types implement it
}

// CommentStmt is a whole-line comment.
type CommentStmt struct {
	Text string
}

// MacroDef binds a name to a pattern for later $name references.
type MacroDef struct {
	Name string
	Def  Node
}

// RuleStmt is a rewrite-rule line.
type RuleStmt struct {
	Rule RewriteRule
}

func (CommentStmt) stmt() {}
func (MacroDef) stmt()    {}
func (RuleStmt) stmt()    {}

// Script is an ordered sequence of parsed statements.
type Script struct {
	Statements []Statement
}

// NumRules counts the rule statements in the script.
func (s Script) NumRules() int {
	n := 0
	for _, st := range s.Statements {
		if _, ok := st.(RuleStmt); ok {
			n++
		}
	}
	return n
}

// Rules returns the rule statements in script order.
func (s Script) Rules() []RewriteRule {
	var out []RewriteRule
	for _, st := range s.Statements {
		if r, ok := st.(RuleStmt); ok {
			out = append(out, r.Rule)
		}
	}
	return out
}
