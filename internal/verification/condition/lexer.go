package condition

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseError reports where and why a condition failed to parse. It is the
// only error the condition language produces; absent data never errors.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("condition parse error at offset %d: %s", e.Pos, e.Msg)
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenPath // dotted identifier
	tokenNumber
	tokenString
	tokenTrue
	tokenFalse
	tokenBang
	tokenAndAnd
	tokenOrOr
	tokenCmp
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	pos  int
	text string  // paths, strings
	num  float64 // numbers
	op   CmpOp   // comparisons
}

type lexer struct {
	input string
	pos   int
}

func (l *lexer) errf(pos int, format string, args ...any) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) tokens() ([]token, error) {
	var out []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.kind == tokenEOF {
			return out, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: start}, nil
	}

	c := l.input[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokenLParen, pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokenRParen, pos: start}, nil
	case c == '&':
		if l.peek(1) != '&' {
			return token{}, l.errf(start, "expected '&&'")
		}
		l.pos += 2
		return token{kind: tokenAndAnd, pos: start}, nil
	case c == '|':
		if l.peek(1) != '|' {
			return token{}, l.errf(start, "expected '||'")
		}
		l.pos += 2
		return token{kind: tokenOrOr, pos: start}, nil
	case c == '!':
		if l.peek(1) == '=' {
			l.pos += 2
			return token{kind: tokenCmp, pos: start, op: OpNe}, nil
		}
		l.pos++
		return token{kind: tokenBang, pos: start}, nil
	case c == '=':
		if l.peek(1) != '=' {
			return token{}, l.errf(start, "expected '==' (assignment is not supported)")
		}
		l.pos += 2
		return token{kind: tokenCmp, pos: start, op: OpEq}, nil
	case c == '<':
		if l.peek(1) == '=' {
			l.pos += 2
			return token{kind: tokenCmp, pos: start, op: OpLe}, nil
		}
		l.pos++
		return token{kind: tokenCmp, pos: start, op: OpLt}, nil
	case c == '>':
		if l.peek(1) == '=' {
			l.pos += 2
			return token{kind: tokenCmp, pos: start, op: OpGe}, nil
		}
		l.pos++
		return token{kind: tokenCmp, pos: start, op: OpGt}, nil
	case c == '"' || c == '\'':
		return l.lexString()
	case c == '-' || isDigit(c):
		return l.lexNumber()
	case isIdentStart(c):
		return l.lexPath()
	}
	return token{}, l.errf(start, "unexpected character %q", c)
}

func (l *lexer) peek(ahead int) byte {
	if l.pos+ahead >= len(l.input) {
		return 0
	}
	return l.input[l.pos+ahead]
}

func (l *lexer) lexString() (token, error) {
	start := l.pos
	quote := l.input[l.pos]
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch c {
		case quote:
			l.pos++
			return token{kind: tokenString, pos: start, text: sb.String()}, nil
		case '\\':
			if l.pos+1 >= len(l.input) {
				return token{}, l.errf(start, "unterminated string")
			}
			esc := l.input[l.pos+1]
			switch esc {
			case '\\', '\'', '"':
				sb.WriteByte(esc)
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return token{}, l.errf(l.pos, "unsupported escape %q", esc)
			}
			l.pos += 2
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return token{}, l.errf(start, "unterminated string")
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	if l.input[l.pos] == '-' {
		l.pos++
		if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
			return token{}, l.errf(start, "expected digits after '-'")
		}
	}
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.pos++
	}
	text := l.input[start:l.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, l.errf(start, "invalid number %q", text)
	}
	return token{kind: tokenNumber, pos: start, num: n}, nil
}

func (l *lexer) lexPath() (token, error) {
	start := l.pos
	for l.pos < len(l.input) && (isIdentPart(l.input[l.pos]) || l.input[l.pos] == '.') {
		l.pos++
	}
	text := l.input[start:l.pos]
	if strings.HasPrefix(text, ".") || strings.HasSuffix(text, ".") || strings.Contains(text, "..") {
		return token{}, l.errf(start, "malformed path %q", text)
	}
	switch text {
	case "true":
		return token{kind: tokenTrue, pos: start}, nil
	case "false":
		return token{kind: tokenFalse, pos: start}, nil
	}
	return token{kind: tokenPath, pos: start, text: text}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
