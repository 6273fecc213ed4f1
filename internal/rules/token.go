package rules

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	// TokenChar carries one literal symbol, either a plain character or
	// the result of unescaping a reserved one.
	TokenChar

	TokenArrow      // ->
	TokenSlash      // /
	TokenUnderscore // _
	TokenLBracket   // [
	TokenRBracket   // ]
	TokenLParen     // (
	TokenRParen     // )
	TokenPipe       // |
	TokenStar       // *
	TokenPlus       // +
	TokenQuestion   // ?
	TokenEquals     // =
	TokenRAngle     // > (legal only inside a symbol class)
	TokenBoundary   // #
	TokenZero       // 0, the empty-string symbol
	TokenIdent      // macro name on the left of '='
	TokenMacroRef   // $name
	TokenComment    // ! to end of line
	TokenNewline
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenIllegal:    "ILLEGAL",
	TokenChar:       "CHAR",
	TokenArrow:      "'->'",
	TokenSlash:      "'/'",
	TokenUnderscore: "'_'",
	TokenLBracket:   "'['",
	TokenRBracket:   "']'",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenPipe:       "'|'",
	TokenStar:       "'*'",
	TokenPlus:       "'+'",
	TokenQuestion:   "'?'",
	TokenEquals:     "'='",
	TokenRAngle:     "'>'",
	TokenBoundary:   "'#'",
	TokenZero:       "'0'",
	TokenIdent:      "IDENT",
	TokenMacroRef:   "MACRO",
	TokenComment:    "COMMENT",
	TokenNewline:    "NEWLINE",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position locates a token in its source text. Line and Column are
// 1-based, Offset is the 0-based rune offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is one lexeme of rule-language source text. Text holds the
// literal character for TokenChar, the name for TokenIdent and
// TokenMacroRef, and the trimmed body for TokenComment.
type Token struct {
	Type TokenType
	Text string
	Pos  Position
}

func (t Token) String() string {
	switch t.Type {
	case TokenChar, TokenIdent, TokenMacroRef:
		return fmt.Sprintf("%s(%s)", t.Type, t.Text)
	default:
		return t.Type.String()
	}
}
