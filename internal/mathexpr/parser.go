package mathexpr

import "strconv"

type node interface{}

type valueNode struct{}

type literalNode struct {
	value float64
}

type unaryNode struct {
	right node
}

type binaryNode struct {
	op    tokenType
	left  node
	right node
}

type parserState struct {
	tokens []token
	pos    int
}

// parse builds an AST for the token stream with the usual precedence:
// '*' and '/' bind tighter than '+' and '-', all left-associative.
func parse(tokens []token) (node, error) {
	state := parserState{tokens: tokens}
	if state.current().typ == tokenEOF {
		return nil, expressionError("expression is empty")
	}

	root, err := state.parseAdditive()
	if err != nil {
		return nil, err
	}

	if tok := state.current(); tok.typ != tokenEOF {
		return nil, expressionError("unexpected token at position %d", tok.pos)
	}

	return root, nil
}

func (p *parserState) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		typ := p.current().typ
		if typ != tokenPlus && typ != tokenMinus {
			break
		}

		op := p.advance().typ
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}

	return left, nil
}

func (p *parserState) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		typ := p.current().typ
		if typ != tokenStar && typ != tokenSlash {
			break
		}

		op := p.advance().typ
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right}
	}

	return left, nil
}

func (p *parserState) parseUnary() (node, error) {
	if p.current().typ == tokenMinus {
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{right: right}, nil
	}

	return p.parsePrimary()
}

func (p *parserState) parsePrimary() (node, error) {
	tok := p.current()
	switch tok.typ {
	case tokenValue:
		p.advance()
		return valueNode{}, nil
	case tokenNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.literal, 64)
		if err != nil {
			return nil, expressionError("invalid number literal %q at position %d", tok.literal, tok.pos)
		}
		return literalNode{value: value}, nil
	case tokenLParen:
		p.advance()
		expr, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if p.current().typ != tokenRParen {
			return nil, expressionError("missing closing ')' at position %d", p.current().pos)
		}
		p.advance()
		return expr, nil
	default:
		return nil, expressionError("unexpected token at position %d", tok.pos)
	}
}

func (p *parserState) current() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokenEOF, pos: len(p.tokens)}
	}
	return p.tokens[p.pos]
}

func (p *parserState) advance() token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}
