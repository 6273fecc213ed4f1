package rules

import (
	"errors"
	"fmt"
)

// Parser builds a Script from rule-language source text. Parsing
// continues past errors so one pass reports every bad line; the
// accumulated errors come back joined.
type Parser struct {
	lexer *Lexer
	token Token
	errs  []error
}

// ParseScript parses a whole script. The returned Script holds every
// statement that parsed cleanly even when err is non-nil.
func ParseScript(input string) (Script, error) {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	script := p.parseScript()
	return script, errors.Join(p.errs...)
}

func (p *Parser) nextToken() {
	p.token = p.lexer.Next()
}

func (p *Parser) addError(pos Position, format string, args ...any) {
	p.errs = append(p.errs, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// syncToNewline skips the remainder of a malformed line.
func (p *Parser) syncToNewline() {
	for p.token.Type != TokenNewline && p.token.Type != TokenEOF {
		p.nextToken()
	}
}

func (p *Parser) parseScript() Script {
	var script Script
	for p.token.Type != TokenEOF {
		switch p.token.Type {
		case TokenNewline:
			p.nextToken()
		case TokenComment:
			script.Statements = append(script.Statements, CommentStmt{Text: p.token.Text})
			p.nextToken()
		case TokenIdent:
			if st, ok := p.parseMacroDef(); ok {
				script.Statements = append(script.Statements, st)
			}
		default:
			if st, ok := p.parseRule(); ok {
				script.Statements = append(script.Statements, st)
			}
		}
	}
	return script
}

func (p *Parser) parseMacroDef() (MacroDef, bool) {
	name := p.token.Text
	p.nextToken()
	if p.token.Type != TokenEquals {
		p.addError(p.token.Pos, "expected '=' after macro name %q", name)
		p.syncToNewline()
		return MacroDef{}, false
	}
	p.nextToken()
	def := p.parsePattern()
	return MacroDef{Name: name, Def: def}, true
}

func (p *Parser) parseRule() (RuleStmt, bool) {
	src := p.parsePattern(TokenArrow)
	if p.token.Type != TokenArrow {
		p.addError(p.token.Pos, "expected '->' in rule")
		p.syncToNewline()
		return RuleStmt{}, false
	}
	p.nextToken()
	tgt := p.parsePattern(TokenSlash)

	left, right := Node(Epsilon{}), Node(Epsilon{})
	if p.token.Type == TokenSlash {
		p.nextToken()
		lg := p.parsePattern(TokenUnderscore)
		if p.token.Type != TokenUnderscore {
			p.addError(p.token.Pos, "expected '_' in rule context")
			p.syncToNewline()
			return RuleStmt{}, false
		}
		p.nextToken()
		rg := p.parsePattern()
		if len(lg) > 0 {
			left = lg
		}
		if len(rg) > 0 {
			right = rg
		}
	}
	return RuleStmt{Rule: RewriteRule{
		Left:   left,
		Source: src,
		Right:  right,
		Target: tgt,
	}}, true
}

// parsePattern reads a sequence of pattern elements until a stop
// token, a newline, or end of input. The sequence always comes back as
// a Group, possibly empty.
func (p *Parser) parsePattern(stops ...TokenType) Group {
	var seq Group
	for {
		t := p.token.Type
		if t == TokenNewline || t == TokenEOF {
			return seq
		}
		for _, s := range stops {
			if t == s {
				return seq
			}
		}

		var elem Node
		switch t {
		case TokenChar:
			elem = Char([]rune(p.token.Text)[0])
			p.nextToken()
		case TokenZero:
			elem = Epsilon{}
			p.nextToken()
		case TokenBoundary:
			elem = Boundary{}
			p.nextToken()
		case TokenMacroRef:
			elem = Macro(p.token.Text)
			p.nextToken()
		case TokenComment:
			elem = Comment{}
			p.nextToken()
		case TokenLBracket:
			elem = p.parseClass()
		case TokenLParen:
			elem = p.parseParen()
		case TokenStar, TokenPlus, TokenQuestion:
			p.addError(p.token.Pos, "quantifier %s without a preceding pattern", p.token.Type)
			p.nextToken()
			continue
		case TokenRAngle:
			p.addError(p.token.Pos, "unescaped '>' outside a symbol class")
			p.nextToken()
			continue
		case TokenIllegal:
			p.addError(p.token.Pos, "illegal token %q", p.token.Text)
			p.nextToken()
			continue
		default:
			p.addError(p.token.Pos, "unexpected %s in pattern", p.token.Type)
			p.nextToken()
			continue
		}

	postfix:
		for {
			switch p.token.Type {
			case TokenStar:
				elem = Star{Inner: elem}
			case TokenPlus:
				elem = Plus{Inner: elem}
			case TokenQuestion:
				elem = Option{Inner: elem}
			default:
				break postfix
			}
			p.nextToken()
		}
		seq = append(seq, elem)
	}
}

// parseClass reads a [...] or [^...] symbol class.
func (p *Parser) parseClass() Node {
	open := p.token.Pos
	p.nextToken()

	complement := false
	if p.token.Type == TokenChar && p.token.Text == "^" {
		complement = true
		p.nextToken()
	}

	var members []rune
	for {
		switch p.token.Type {
		case TokenRBracket:
			p.nextToken()
			if len(members) == 0 {
				p.addError(open, "empty symbol class")
			}
			if complement {
				return ClassComplement(members)
			}
			return Class(members)
		case TokenNewline, TokenEOF:
			p.addError(open, "unterminated symbol class")
			if complement {
				return ClassComplement(members)
			}
			return Class(members)
		case TokenChar:
			members = append(members, []rune(p.token.Text)[0])
		case TokenZero:
			members = append(members, '0')
		case TokenBoundary:
			members = append(members, '#')
		case TokenRAngle:
			members = append(members, '>')
		case TokenIllegal:
			p.addError(p.token.Pos, "illegal token %q", p.token.Text)
		default:
			p.addError(p.token.Pos, "unexpected %s in symbol class", p.token.Type)
		}
		p.nextToken()
	}
}

// parseParen reads a (...) group, with '|' separating alternatives.
func (p *Parser) parseParen() Node {
	open := p.token.Pos
	p.nextToken()

	var alts []Node
	for {
		alt := p.parsePattern(TokenPipe, TokenRParen)
		alts = append(alts, alt)
		switch p.token.Type {
		case TokenPipe:
			p.nextToken()
		case TokenRParen:
			p.nextToken()
			if len(alts) == 1 {
				return alts[0]
			}
			return Disjunction(alts)
		default:
			p.addError(open, "unterminated group")
			if len(alts) == 1 {
				return alts[0]
			}
			return Disjunction(alts)
		}
	}
}
