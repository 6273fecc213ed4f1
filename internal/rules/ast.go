package rules

import "strings"

// Node is a pattern expression over symbols. Patterns are built from
// literal characters, the boundary marker, symbol classes, grouping,
// alternation, repetition, and macro references.
type Node interface {
	node() // Sealed - only these types implement it
}

// Epsilon matches the empty string.
type Epsilon struct{}

// Char matches exactly one symbol.
type Char rune

// Boundary matches the word-boundary marker.
type Boundary struct{}

// Group matches its members in sequence.
type Group []Node

// Disjunction matches any one of its branches.
type Disjunction []Node

// Class matches any one symbol from its set.
type Class []rune

// ClassComplement matches any one symbol absent from its set. The
// boundary marker and the empty-string symbol are never matched.
type ClassComplement []rune

// Star matches zero or more repetitions of Inner.
type Star struct{ Inner Node }

// Plus matches one or more repetitions of Inner.
type Plus struct{ Inner Node }

// Option matches zero or one occurrence of Inner.
type Option struct{ Inner Node }

// Macro refers to a named pattern defined earlier in the script.
type Macro string

// Comment is an inert placeholder inside a pattern position.
type Comment struct{}

func (Epsilon) node()         {}
func (Char) node()            {}
func (Boundary) node()        {}
func (Group) node()           {}
func (Disjunction) node()     {}
func (Class) node()           {}
func (ClassComplement) node() {}
func (Star) node()            {}
func (Plus) node()            {}
func (Option) node()          {}
func (Macro) node()           {}
func (Comment) node()         {}

// reserved characters need a backslash escape when written literally.
const reserved = `>/_[]()|*+?!=$\# 0`

func escapeRune(r rune) string {
	if strings.ContainsRune(reserved, r) {
		return `\` + string(r)
	}
	return string(r)
}

func (Epsilon) String() string  { return "0" }
func (c Char) String() string   { return escapeRune(rune(c)) }
func (Boundary) String() string { return "#" }
func (Comment) String() string  { return "" }

func (g Group) String() string {
	var b strings.Builder
	for _, n := range g {
		b.WriteString(render(n))
	}
	return b.String()
}

func (d Disjunction) String() string {
	parts := make([]string, len(d))
	for i, n := range d {
		parts[i] = render(n)
	}
	return "(" + strings.Join(parts, "|") + ")"
}

func (c Class) String() string {
	var b strings.Builder
	b.WriteString("[")
	for _, r := range c {
		b.WriteString(escapeRune(r))
	}
	b.WriteString("]")
	return b.String()
}

func (c ClassComplement) String() string {
	var b strings.Builder
	b.WriteString("[^")
	for _, r := range c {
		b.WriteString(escapeRune(r))
	}
	b.WriteString("]")
	return b.String()
}

func (s Star) String() string   { return renderQuantified(s.Inner) + "*" }
func (p Plus) String() string   { return renderQuantified(p.Inner) + "+" }
func (o Option) String() string { return renderQuantified(o.Inner) + "?" }
func (m Macro) String() string  { return "$" + string(m) }

func render(n Node) string {
	type stringer interface{ String() string }
	if s, ok := n.(stringer); ok {
		return s.String()
	}
	return ""
}

// renderQuantified parenthesizes multi-element sequences so the
// quantifier reads as applying to the whole of them.
func renderQuantified(n Node) string {
	if g, ok := n.(Group); ok && len(g) != 1 {
		return "(" + g.String() + ")"
	}
	return render(n)
}
