package mathexpr

import (
	"strconv"
	"unicode"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenValue
	tokenNumber
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

type token struct {
	typ     tokenType
	literal string
	pos     int
}

// lex tokenizes an arithmetic expression. Only digits, '.', the four
// operators, parentheses, and whitespace are accepted; any other character
// is an error.
func lex(input string) ([]token, error) {
	tokens := make([]token, 0, len(input)/2)
	pos := 0

	for pos < len(input) {
		r := rune(input[pos])
		if unicode.IsSpace(r) {
			pos++
			continue
		}

		if isDigit(input[pos]) || input[pos] == '.' {
			numberToken, nextPos, err := lexNumber(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, numberToken)
			pos = nextPos
			continue
		}

		switch input[pos] {
		case '+':
			tokens = append(tokens, token{typ: tokenPlus, pos: pos})
		case '-':
			tokens = append(tokens, token{typ: tokenMinus, pos: pos})
		case '*':
			tokens = append(tokens, token{typ: tokenStar, pos: pos})
		case '/':
			tokens = append(tokens, token{typ: tokenSlash, pos: pos})
		case '(':
			tokens = append(tokens, token{typ: tokenLParen, pos: pos})
		case ')':
			tokens = append(tokens, token{typ: tokenRParen, pos: pos})
		default:
			return nil, expressionError("unexpected character %q at position %d", input[pos], pos)
		}
		pos++
	}

	tokens = append(tokens, token{typ: tokenEOF, pos: len(input)})
	return tokens, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func lexNumber(input string, start int) (token, int, error) {
	pos := start
	for pos < len(input) && isDigit(input[pos]) {
		pos++
	}

	if pos < len(input) && input[pos] == '.' {
		pos++
		for pos < len(input) && isDigit(input[pos]) {
			pos++
		}
	}

	literal := input[start:pos]
	if _, err := strconv.ParseFloat(literal, 64); err != nil {
		return token{}, 0, expressionError("invalid number %q at position %d", literal, start)
	}

	return token{typ: tokenNumber, literal: literal, pos: start}, pos, nil
}
