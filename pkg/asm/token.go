package asm

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EMPTY      TokenType = iota // end of logical line
	INVALID                     // unrecognised lexeme
	COMMA                       // ,
	DECIMAL                     // signed decimal literal
	HEX                         // 0x-prefixed literal
	COMMENT                     // ;text
	IDENTIFIER                  // mnemonic, addressing mode or symbol reference
	SYMBOL                      // identifier immediately followed by ':'
)

var tokenNames = [...]string{
	EMPTY:      "EMPTY",
	INVALID:    "INVALID",
	COMMA:      "COMMA",
	DECIMAL:    "DECIMAL",
	HEX:        "HEX",
	COMMENT:    "COMMENT",
	IDENTIFIER: "IDENTIFIER",
	SYMBOL:     "SYMBOL",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit. Text holds the name or comment body,
// Value the integer of a numeric literal.
type Token struct {
	Type  TokenType
	Text  string
	Value int
}

// Kind lets Token drive a tokbuf.Buffer.
func (t Token) Kind() TokenType { return t.Type }

func (t Token) String() string {
	switch t.Type {
	case DECIMAL:
		return fmt.Sprintf("%s(%d)", t.Type, t.Value)
	case HEX:
		return fmt.Sprintf("%s(0x%X)", t.Type, t.Value)
	case COMMENT, IDENTIFIER, SYMBOL:
		return fmt.Sprintf("%s(%q)", t.Type, t.Text)
	default:
		return t.Type.String()
	}
}
