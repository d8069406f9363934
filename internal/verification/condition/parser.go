package condition

import "strings"

// Parse compiles a condition string into an expression tree. The grammar,
// loosest binding first:
//
//	or      := and ( '||' and )*
//	and     := not ( '&&' not )*
//	not     := '!' not | cmp
//	cmp     := operand ( ('=='|'!='|'<'|'<='|'>'|'>=') operand )?
//	operand := literal | path | path '.includes' '(' string ')' | '(' or ')'
//
// Comparisons do not chain: a < b < c is a parse error.
func Parse(input string) (Expr, error) {
	lx := &lexer{input: input}
	toks, err := lx.tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, &ParseError{Pos: tok.pos, Msg: "unexpected trailing input"}
	}
	return expr, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenOrOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokenAndAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.peek().kind == tokenBang {
		p.advance()
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	}
	return p.parseCmp()
}

func (p *parser) parseCmp() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenCmp {
		return left, nil
	}
	op := p.advance().op
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind == tokenCmp {
		return nil, &ParseError{Pos: tok.pos, Msg: "chained comparisons are not supported"}
	}
	return Cmp{Op: op, Left: left, Right: right}, nil
}

func (p *parser) parseOperand() (Expr, error) {
	tok := p.peek()
	switch tok.kind {
	case tokenLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.peek(); closing.kind != tokenRParen {
			return nil, &ParseError{Pos: closing.pos, Msg: "expected ')'"}
		}
		p.advance()
		return inner, nil
	case tokenNumber:
		p.advance()
		return Literal{Value: tok.num}, nil
	case tokenString:
		p.advance()
		return Literal{Value: tok.text}, nil
	case tokenTrue:
		p.advance()
		return Literal{Value: true}, nil
	case tokenFalse:
		p.advance()
		return Literal{Value: false}, nil
	case tokenPath:
		p.advance()
		// path.includes("x") lexes as one dotted path ending in ".includes"
		// followed by an argument list.
		if recv, ok := strings.CutSuffix(tok.text, ".includes"); ok && p.peek().kind == tokenLParen {
			return p.parseIncludes(tok.pos, recv)
		}
		return Path{Dotted: tok.text}, nil
	case tokenEOF:
		return nil, &ParseError{Pos: tok.pos, Msg: "unexpected end of condition"}
	}
	return nil, &ParseError{Pos: tok.pos, Msg: "expected a value, field path, or '('"}
}

func (p *parser) parseIncludes(pos int, recv string) (Expr, error) {
	if recv == "" {
		return nil, &ParseError{Pos: pos, Msg: "includes requires a field path receiver"}
	}
	p.advance() // '('
	arg := p.peek()
	if arg.kind != tokenString {
		return nil, &ParseError{Pos: arg.pos, Msg: "includes takes a single string literal"}
	}
	p.advance()
	if closing := p.peek(); closing.kind != tokenRParen {
		return nil, &ParseError{Pos: closing.pos, Msg: "expected ')' after includes argument"}
	}
	p.advance()
	return Includes{Recv: Path{Dotted: recv}, Needle: arg.text}, nil
}
