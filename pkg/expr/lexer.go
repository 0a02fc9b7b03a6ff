package expr

import "unicode"

// maxLiteral caps digit accumulation so huge literals fail the range
// check instead of overflowing.
const maxLiteral = 1 << 32

type lexState int

const (
	stStart lexState = iota
	stSign
	stDec
	stStop
)

// Lexer scans arithmetic expressions. A '-' directly before digits makes a
// negative literal; '+' is always the operator.
type Lexer struct {
	src []rune
	pos int
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

func (l *Lexer) Next() (Token, bool) {
	state := stStart
	value, sign := 0, 1
	tok := Token{Type: EMPTY}
	start := l.pos

	for state != stStop && tok.Type != INVALID {
		prev := l.pos
		var ch rune
		if l.pos < len(l.src) {
			ch = l.src[l.pos]
			l.pos++
		} else {
			if start == prev {
				return Token{}, false
			}
			ch = '\n'
		}

		switch state {
		case stStart:
			switch {
			case ch == '\n':
				state = stStop
			case ch == '(':
				state, tok = stStop, Token{Type: PAREN_OPEN}
			case ch == ')':
				state, tok = stStop, Token{Type: PAREN_CLOSE}
			case ch == '+':
				state, tok = stStop, Token{Type: PLUS}
			case ch == '*':
				state, tok = stStop, Token{Type: TIMES}
			case unicode.IsSpace(ch):
			case ch >= '0' && ch <= '9':
				value, state = int(ch-'0'), stDec
			case ch == '-':
				sign, state = -1, stSign
			default:
				tok = Token{Type: INVALID}
			}

		case stSign:
			if ch >= '0' && ch <= '9' {
				value, state = int(ch-'0'), stDec
			} else {
				l.pos = prev
				tok = Token{Type: INVALID}
			}

		case stDec:
			if ch >= '0' && ch <= '9' {
				value = min(value*10+int(ch-'0'), maxLiteral)
			} else {
				l.pos = prev
				state, tok = stStop, Token{Type: DECIMAL, Value: sign * value}
			}
		}
	}
	return tok, true
}

func (l *Lexer) Tokens() []Token {
	var out []Token
	for {
		tok, ok := l.Next()
		if !ok {
			return out
		}
		out = append(out, tok)
	}
}
