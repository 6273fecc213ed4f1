package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tok struct {
	typ  TokenType
	text string
}

func lexAll(t *testing.T, input string) []tok {
	t.Helper()
	l := NewLexer(input)
	var out []tok
	for i := 0; i < 1000; i++ {
		next := l.Next()
		if next.Type == TokenEOF {
			return out
		}
		out = append(out, tok{typ: next.Type, text: next.Text})
	}
	t.Fatal("lexer did not reach EOF")
	return nil
}

func TestLexerTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "plain rule",
			input: "14 -> 0 / _ #",
			want: []tok{
				{TokenChar, "1"}, {TokenChar, "4"}, {TokenArrow, ""},
				{TokenZero, ""}, {TokenSlash, ""}, {TokenUnderscore, ""},
				{TokenBoundary, ""},
			},
		},
		{
			name:  "escapes",
			input: `\>\ \[\0`,
			want: []tok{
				{TokenChar, ">"}, {TokenChar, " "}, {TokenChar, "["},
				{TokenChar, "0"},
			},
		},
		{
			name:  "arrow needs both characters",
			input: "a-b->c",
			want: []tok{
				{TokenChar, "a"}, {TokenChar, "-"}, {TokenChar, "b"},
				{TokenArrow, ""}, {TokenChar, "c"},
			},
		},
		{
			name:  "macro definition head",
			input: "tone = [1234]",
			want: []tok{
				{TokenIdent, "tone"}, {TokenEquals, ""}, {TokenLBracket, ""},
				{TokenChar, "1"}, {TokenChar, "2"}, {TokenChar, "3"},
				{TokenChar, "4"}, {TokenRBracket, ""},
			},
		},
		{
			name:  "identifier-looking rule is not a definition",
			input: "ni -> x",
			want: []tok{
				{TokenChar, "n"}, {TokenChar, "i"}, {TokenArrow, ""},
				{TokenChar, "x"},
			},
		},
		{
			name:  "macro reference with quantifier",
			input: "$tone+",
			want:  []tok{{TokenMacroRef, "tone"}, {TokenPlus, ""}},
		},
		{
			name:  "comment collects the rest of the line",
			input: "!  tones of the inventory  ",
			want:  []tok{{TokenComment, "tones of the inventory"}},
		},
		{
			name:  "newlines are tokens",
			input: "a\nb",
			want:  []tok{{TokenChar, "a"}, {TokenNewline, ""}, {TokenChar, "b"}},
		},
		{
			name:  "carriage returns are skipped",
			input: "a\r\nb",
			want:  []tok{{TokenChar, "a"}, {TokenNewline, ""}, {TokenChar, "b"}},
		},
		{
			name:  "class with bare angle member",
			input: "[>]",
			want:  []tok{{TokenLBracket, ""}, {TokenRAngle, ""}, {TokenRBracket, ""}},
		},
		{
			name:  "unknown escape is illegal",
			input: `\q`,
			want:  []tok{{TokenIllegal, `\q`}},
		},
		{
			name:  "dangling escape keeps the newline",
			input: "\\\na",
			want:  []tok{{TokenIllegal, `\`}, {TokenNewline, ""}, {TokenChar, "a"}},
		},
		{
			name:  "indented macro definition",
			input: "  seg = x",
			want: []tok{
				{TokenIdent, "seg"}, {TokenEquals, ""}, {TokenChar, "x"},
			},
		},
		{
			name:  "non-ascii pattern characters",
			input: "ch'é -> 0",
			want: []tok{
				{TokenChar, "c"}, {TokenChar, "h"}, {TokenChar, "'"},
				{TokenChar, "é"}, {TokenArrow, ""}, {TokenZero, ""},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexAll(t, tt.input))
		})
	}
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer("ab\ncd")

	a := l.Next()
	require.Equal(t, TokenChar, a.Type)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, a.Pos)

	b := l.Next()
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 1}, b.Pos)

	nl := l.Next()
	require.Equal(t, TokenNewline, nl.Type)
	assert.Equal(t, Position{Line: 1, Column: 3, Offset: 2}, nl.Pos)

	c := l.Next()
	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 3}, c.Pos)

	d := l.Next()
	assert.Equal(t, Position{Line: 2, Column: 2, Offset: 4}, d.Pos)

	eof := l.Next()
	require.Equal(t, TokenEOF, eof.Type)
	assert.Equal(t, 2, eof.Pos.Line)
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := NewLexer("a")
	require.Equal(t, TokenChar, l.Next().Type)
	require.Equal(t, TokenEOF, l.Next().Type)
	require.Equal(t, TokenEOF, l.Next().Type)
}

func TestLexerMacroRefNeedsName(t *testing.T) {
	toks := lexAll(t, "$ x")
	require.NotEmpty(t, toks)
	assert.Equal(t, TokenIllegal, toks[0].typ)
}
