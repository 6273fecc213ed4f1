package rules

import "strings"

// Lexer splits rule-language source text into tokens. Unescaped spaces
// and tabs separate tokens and are otherwise insignificant; newlines
// are significant because scripts are line-oriented.
type Lexer struct {
	input   []rune
	pos     int  // index of current rune
	readPos int  // index of next rune
	ch      rune // current rune, 0 at end of input
	line    int
	col     int

	atLineStart bool
}

// NewLexer returns a lexer over input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: []rune(input), line: 1, atLineStart: true}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.col++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) skipSpace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func (l *Lexer) readIdent() string {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return string(l.input[start:l.pos])
}

// tryMacroDef checks whether the text at the current position is a
// macro-definition head, an identifier followed by '='. On failure the
// lexer state is restored so the same runes lex as ordinary pattern
// characters.
func (l *Lexer) tryMacroDef() (string, bool) {
	pos, readPos, ch, col := l.pos, l.readPos, l.ch, l.col
	name := l.readIdent()
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
	if l.ch == '=' {
		return name, true
	}
	l.pos, l.readPos, l.ch, l.col = pos, readPos, ch, col
	return "", false
}

// Next returns the next token. After the end of input it keeps
// returning TokenEOF.
func (l *Lexer) Next() Token {
	l.skipSpace()
	pos := l.position()
	startOfLine := l.atLineStart
	l.atLineStart = false

	switch l.ch {
	case 0:
		return Token{Type: TokenEOF, Pos: pos}
	case '\n':
		l.readChar()
		l.atLineStart = true
		return Token{Type: TokenNewline, Pos: pos}
	case '!':
		l.readChar()
		start := l.pos
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		text := strings.TrimSpace(string(l.input[start:l.pos]))
		return Token{Type: TokenComment, Text: text, Pos: pos}
	case '\\':
		esc := l.peekChar()
		if esc == 0 || !strings.ContainsRune(reserved, esc) {
			l.readChar()
			lit := `\`
			if l.ch != 0 && l.ch != '\n' {
				lit += string(l.ch)
				l.readChar()
			}
			return Token{Type: TokenIllegal, Text: lit, Pos: pos}
		}
		l.readChar()
		l.readChar()
		return Token{Type: TokenChar, Text: string(esc), Pos: pos}
	case '$':
		l.readChar()
		if !isIdentStart(l.ch) {
			return Token{Type: TokenIllegal, Text: "$", Pos: pos}
		}
		return Token{Type: TokenMacroRef, Text: l.readIdent(), Pos: pos}
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return Token{Type: TokenArrow, Pos: pos}
		}
	}

	if startOfLine && isIdentStart(l.ch) {
		if name, ok := l.tryMacroDef(); ok {
			return Token{Type: TokenIdent, Text: name, Pos: pos}
		}
	}

	if t, ok := operatorTokens[l.ch]; ok {
		l.readChar()
		return Token{Type: t, Pos: pos}
	}

	r := l.ch
	l.readChar()
	return Token{Type: TokenChar, Text: string(r), Pos: pos}
}

var operatorTokens = map[rune]TokenType{
	'/': TokenSlash,
	'_': TokenUnderscore,
	'[': TokenLBracket,
	']': TokenRBracket,
	'(': TokenLParen,
	')': TokenRParen,
	'|': TokenPipe,
	'*': TokenStar,
	'+': TokenPlus,
	'?': TokenQuestion,
	'=': TokenEquals,
	'>': TokenRAngle,
	'#': TokenBoundary,
	'0': TokenZero,
}
