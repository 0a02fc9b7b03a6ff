package asm

import "unicode"

// maxLiteral caps digit accumulation so oversized literals stay out of
// range instead of overflowing.
const maxLiteral = 1 << 32

type lexState int

const (
	stStart lexState = iota
	stComment
	stIdent
	stLeadingZero
	stHexPrefix
	stHex
	stSign
	stDec
	stStop
)

// Lexer is a cursor over the source text that produces one token per call
// to Next. Mismatched look-ahead is pushed back one rune at a time.
type Lexer struct {
	src []rune
	pos int // index of the next rune to consume
}

func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// read consumes one rune.
func (l *Lexer) read() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	r := l.src[l.pos]
	l.pos++
	return r, true
}

// Next scans one token. It returns false once the input is exhausted with
// nothing consumed since the previous token. End of input in the middle of
// a line behaves like a newline.
func (l *Lexer) Next() (Token, bool) {
	state := stStart
	var text []rune
	value := 0
	sign := 1
	tok := Token{Type: EMPTY}
	start := l.pos

	for state != stStop && tok.Type != INVALID {
		prev := l.pos
		ch, ok := l.read()
		if !ok {
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
			case ch == ',':
				state = stStop
				tok = Token{Type: COMMA}
			case unicode.IsSpace(ch):
			case ch == ';':
				state = stComment
			case unicode.IsLetter(ch):
				text = append(text, ch)
				state = stIdent
			case ch == '0':
				state = stLeadingZero
			case isDecimalDigit(ch):
				value = int(ch - '0')
				state = stDec
			case ch == '+' || ch == '-':
				if ch == '-' {
					sign = -1
				}
				state = stSign
			default:
				tok = Token{Type: INVALID, Text: string(ch)}
			}

		case stComment:
			if ch == '\n' {
				l.pos = prev
				state = stStop
				tok = Token{Type: COMMENT, Text: string(text)}
			} else {
				text = append(text, ch)
			}

		case stIdent:
			switch {
			case unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_':
				text = append(text, ch)
			case ch == ':':
				state = stStop
				tok = Token{Type: SYMBOL, Text: string(text)}
			default:
				l.pos = prev
				state = stStop
				tok = Token{Type: IDENTIFIER, Text: string(text)}
			}

		case stLeadingZero:
			switch {
			case isDecimalDigit(ch):
				value = int(ch - '0')
				state = stDec
			case ch == 'x' || ch == 'X':
				state = stHexPrefix
			default:
				l.pos = prev
				state = stStop
				tok = Token{Type: DECIMAL, Value: 0}
			}

		case stHexPrefix:
			if d, ok := hexDigit(ch); ok {
				value = d
				state = stHex
			} else {
				l.pos = prev
				tok = Token{Type: INVALID, Text: "0x"}
			}

		case stHex:
			if d, ok := hexDigit(ch); ok {
				value = accumulate(value, 16, d)
			} else {
				l.pos = prev
				state = stStop
				tok = Token{Type: HEX, Value: value}
			}

		case stSign:
			if isDecimalDigit(ch) {
				value = int(ch - '0')
				state = stDec
			} else {
				l.pos = prev
				tok = Token{Type: INVALID, Text: signText(sign)}
			}

		case stDec:
			if isDecimalDigit(ch) {
				value = accumulate(value, 10, int(ch-'0'))
			} else {
				l.pos = prev
				state = stStop
				tok = Token{Type: DECIMAL, Value: sign * value}
			}
		}
	}

	return tok, true
}

// Tokens drains the lexer.
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

func isDecimalDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

func accumulate(value, base, digit int) int {
	value = value*base + digit
	if value > maxLiteral {
		return maxLiteral
	}
	return value
}

func signText(sign int) string {
	if sign < 0 {
		return "-"
	}
	return "+"
}
