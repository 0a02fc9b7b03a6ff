package isa

import (
	"fmt"
	"strings"
)

// AddressingMode selects how an operand forms an effective address.
type AddressingMode uint8

const (
	I   AddressingMode = iota // immediate
	D                         // direct
	N                         // indirect
	S                         // stack-relative
	SF                        // stack-relative deferred
	X                         // indexed
	SX                        // stack-indexed
	SFX                       // stack-deferred indexed
)

var modeNames = [...]string{
	I:   "i",
	D:   "d",
	N:   "n",
	S:   "s",
	SF:  "sf",
	X:   "x",
	SX:  "sx",
	SFX: "sfx",
}

// AllModes lists every addressing mode in encoding order.
var AllModes = []AddressingMode{I, D, N, S, SF, X, SX, SFX}

func (m AddressingMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("AddressingMode(%d)", int(m))
}

// ParseAddressingMode accepts a mode name in any letter case.
func ParseAddressingMode(s string) (AddressingMode, error) {
	lower := strings.ToLower(s)
	for i, name := range modeNames {
		if name == lower {
			return AddressingMode(i), nil
		}
	}
	return 0, fmt.Errorf("invalid addressing mode: %s", s)
}

// AAA returns the three-bit form used by stack and register instructions.
func (m AddressingMode) AAA() uint8 {
	return uint8(m) & 0x07
}

// A returns the one-bit form used by branches, which only distinguish
// immediate from indexed.
func (m AddressingMode) A() (uint8, error) {
	switch m {
	case I:
		return 0, nil
	case X:
		return 1, nil
	}
	return 0, fmt.Errorf("invalid addressing mode for A type: %s", m)
}

// MustA is A for callers that have already validated the mode.
func (m AddressingMode) MustA() uint8 {
	a, err := m.A()
	if err != nil {
		panic(err)
	}
	return a
}

// InstructionType classifies a mnemonic by operand shape and the set of
// addressing modes it accepts.
type InstructionType uint8

const (
	M               InstructionType = iota // no operand
	R                                      // unary register operation
	AIx                                    // branch/call, immediate or indexed
	AAAAll                                 // stack operation, every mode
	AAAImmediate                           // stack operation, immediate only
	RAAAAll                                // register operand, every mode
	RAAANoImmediate                        // register store, every mode but immediate
)

var typeNames = [...]string{
	M:               "M",
	R:               "R",
	AIx:             "A_ix",
	AAAAll:          "AAA_all",
	AAAImmediate:    "AAA_i",
	RAAAAll:         "RAAA_all",
	RAAANoImmediate: "RAAA_noi",
}

func (t InstructionType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("InstructionType(%d)", int(t))
}

// Unary reports whether instructions of this type take no operand.
func (t InstructionType) Unary() bool {
	return t == M || t == R
}

// Allows reports whether am is a legal addressing mode for the type.
// Unary types accept none.
func (t InstructionType) Allows(am AddressingMode) bool {
	if int(am) >= len(modeNames) {
		return false
	}
	switch t {
	case AIx:
		return am == I || am == X
	case AAAAll, RAAAAll:
		return true
	case AAAImmediate:
		return am == I
	case RAAANoImmediate:
		return am != I
	default:
		return false
	}
}
