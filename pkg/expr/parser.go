package expr

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"pepasm/pkg/tokbuf"
)

// SyntaxError reports an expression that does not match the grammar.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return "syntax error: " + e.Msg }

type buffer = tokbuf.Buffer[TokenType, Token]

// Parser turns an expression into postfix order following
//
//	E ::= T ['+' E]
//	T ::= F ['*' T]
//	F ::= '(' E ')' | DECIMAL
//
// Both operators associate to the right.
type Parser struct {
	buf *buffer
}

func NewParser(src tokbuf.Source[Token]) *Parser {
	return &Parser{buf: tokbuf.New[TokenType, Token](src)}
}

func (p *Parser) expect(kind TokenType) (Token, error) {
	tok, err := p.buf.MustMatch(kind)
	if err == nil {
		return tok, nil
	}
	var mm *tokbuf.MismatchError[TokenType]
	if errors.As(err, &mm) {
		if mm.AtEnd {
			return tok, &SyntaxError{Msg: fmt.Sprintf("expected %s at end of input", kind)}
		}
		return tok, &SyntaxError{Msg: fmt.Sprintf("expected %s, found %s", kind, mm.Got)}
	}
	return tok, err
}

// E parses a sum.
func (p *Parser) E() ([]Token, error) {
	t, err := p.T()
	if err != nil {
		return nil, err
	}
	if plus, ok := p.buf.MayMatch(PLUS); ok {
		e, err := p.E()
		if err != nil {
			return nil, err
		}
		return append(append(t, e...), plus), nil
	}
	return t, nil
}

// T parses a product.
func (p *Parser) T() ([]Token, error) {
	f, err := p.F()
	if err != nil {
		return nil, err
	}
	if times, ok := p.buf.MayMatch(TIMES); ok {
		t, err := p.T()
		if err != nil {
			return nil, err
		}
		return append(append(f, t...), times), nil
	}
	return f, nil
}

// F parses a literal or a parenthesised sum.
func (p *Parser) F() ([]Token, error) {
	if _, ok := p.buf.MayMatch(PAREN_OPEN); ok {
		e, err := p.E()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(PAREN_CLOSE); err != nil {
			return nil, err
		}
		return e, nil
	}
	dec, err := p.expect(DECIMAL)
	if err != nil {
		return nil, err
	}
	return []Token{dec}, nil
}

// Parse returns the postfix form of a single-line expression. Anything
// after the expression other than the end of the line is an error.
func Parse(text string) ([]Token, error) {
	text = strings.TrimRightFunc(text, unicode.IsSpace) + "\n"
	p := NewParser(NewLexer(text))
	postfix, err := p.E()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EMPTY); err != nil {
		return nil, err
	}
	return postfix, nil
}

// ExpressionString renders postfix tokens separated by single spaces.
func ExpressionString(postfix []Token) string {
	parts := make([]string, 0, len(postfix))
	for _, tok := range postfix {
		if s := tok.Postfix(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
