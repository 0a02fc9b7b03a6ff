package asm

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Operand is the argument of a one-operand instruction.
type Operand interface {
	fmt.Stringer
	// Int is the value used for range checks and encoding.
	Int() int
	operandNode()
}

// Identifier is a symbolic operand. Its value is whatever the symbol is
// bound to, 0 until then.
type Identifier struct {
	Symbol *Symbol
}

func (*Identifier) operandNode()     {}
func (o *Identifier) Int() int       { return o.Symbol.Int() }
func (o *Identifier) String() string { return o.Symbol.Name }

// Hexadecimal is an unsigned literal written with a 0x prefix.
type Hexadecimal struct {
	Value int
}

func (*Hexadecimal) operandNode()     {}
func (o *Hexadecimal) Int() int       { return o.Value }
func (o *Hexadecimal) String() string { return fmt.Sprintf("0x%04x", o.Value) }

// Decimal is a signed literal.
type Decimal struct {
	Value int
}

func (*Decimal) operandNode()     {}
func (o *Decimal) Int() int       { return o.Value }
func (o *Decimal) String() string { return strconv.Itoa(o.Value) }

// FitsWord reports whether v can be stored in two bytes, read either as a
// signed or an unsigned quantity.
func FitsWord(v int) bool {
	return v >= -32768 && v <= 0xFFFF
}

// EncodeWord returns the big-endian two-byte form of v.
func EncodeWord(v int) [2]byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(v))
	return b
}

// DecodeWord is the inverse of EncodeWord, modulo 2^16.
func DecodeWord(b [2]byte) uint16 {
	return binary.BigEndian.Uint16(b[:])
}
