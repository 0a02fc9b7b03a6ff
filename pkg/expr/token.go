package expr

import "fmt"

type TokenType int

const (
	EMPTY TokenType = iota
	INVALID
	DECIMAL
	PLUS
	TIMES
	PAREN_OPEN
	PAREN_CLOSE
)

var tokenNames = [...]string{
	EMPTY:       "EMPTY",
	INVALID:     "INVALID",
	DECIMAL:     "DECIMAL",
	PLUS:        "PLUS",
	TIMES:       "TIMES",
	PAREN_OPEN:  "PAREN_OPEN",
	PAREN_CLOSE: "PAREN_CLOSE",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

type Token struct {
	Type  TokenType
	Value int
}

func (t Token) Kind() TokenType { return t.Type }

// Postfix is the token as written in postfix notation. Only operands and
// operators have one.
func (t Token) Postfix() string {
	switch t.Type {
	case DECIMAL:
		return fmt.Sprint(t.Value)
	case PLUS:
		return "+"
	case TIMES:
		return "*"
	}
	return ""
}

func (t Token) String() string {
	if t.Type == DECIMAL {
		return fmt.Sprintf("DECIMAL(%d)", t.Value)
	}
	return t.Type.String()
}
