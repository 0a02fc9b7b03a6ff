package asm

import "pepasm/pkg/tokbuf"

// TokenSource is the lazy token stream the parser pulls from. *Lexer is
// the production implementation.
type TokenSource interface {
	Next() (Token, bool)
}

// TokenBuffer gives the parser one token of lookahead.
type TokenBuffer = tokbuf.Buffer[TokenType, Token]

func NewTokenBuffer(src TokenSource) *TokenBuffer {
	return tokbuf.New[TokenType, Token](src)
}
