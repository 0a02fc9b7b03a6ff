package isa

import (
	"fmt"
	"sort"
	"strings"
)

// Opcode bit patterns. Addressing-mode bits are OR-ed into the low bits of
// every instruction that carries an addressing component.
const (
	// M-type
	OpRET     uint8 = 0x01
	OpSRET    uint8 = 0x02
	OpMOVFLGA uint8 = 0x03
	OpMOVAFLG uint8 = 0x04
	OpMOVSPA  uint8 = 0x05
	OpMOVASP  uint8 = 0x06
	OpNOP     uint8 = 0x07

	// R-type
	OpNEGA uint8 = 0x18
	OpNEGX uint8 = 0x19
	OpASLA uint8 = 0x1A
	OpASLX uint8 = 0x1B
	OpASRA uint8 = 0x1C
	OpASRX uint8 = 0x1D
	OpNOTA uint8 = 0x1E
	OpNOTX uint8 = 0x1F
	OpROLA uint8 = 0x20
	OpROLX uint8 = 0x21
	OpRORA uint8 = 0x22
	OpRORX uint8 = 0x23

	// A-type (index bit)
	OpBR   uint8 = 0x24
	OpBRLE uint8 = 0x26
	OpBRLT uint8 = 0x28
	OpBREQ uint8 = 0x2A
	OpBRNE uint8 = 0x2C
	OpBRGE uint8 = 0x2E
	OpBRGT uint8 = 0x30
	OpBRV  uint8 = 0x32
	OpBRC  uint8 = 0x34
	OpCALL uint8 = 0x36

	// AAA-type
	OpSCALL uint8 = 0x38
	OpADDSP uint8 = 0x40
	OpSUBSP uint8 = 0x48

	// RAAA-type
	OpADDA uint8 = 0x50
	OpADDX uint8 = 0x58
	OpSUBA uint8 = 0x60
	OpSUBX uint8 = 0x68
	OpANDA uint8 = 0x70
	OpANDX uint8 = 0x78
	OpORA  uint8 = 0x80
	OpORX  uint8 = 0x88
	OpXORA uint8 = 0x90
	OpXORX uint8 = 0x98
	OpCPWA uint8 = 0xA0
	OpCPWX uint8 = 0xA8
	OpCPBA uint8 = 0xB0
	OpCPBX uint8 = 0xB8
	OpLDWA uint8 = 0xC0
	OpLDWX uint8 = 0xC8
	OpLDBA uint8 = 0xD0
	OpLDBX uint8 = 0xD8
	OpSTWA uint8 = 0xE0
	OpSTWX uint8 = 0xE8
	OpSTBA uint8 = 0xF0
	OpSTBX uint8 = 0xF8
)

type instruction struct {
	bits uint8
	typ  InstructionType
}

var instructions = map[string]instruction{
	"RET":     {OpRET, M},
	"SRET":    {OpSRET, M},
	"MOVFLGA": {OpMOVFLGA, M},
	"MOVAFLG": {OpMOVAFLG, M},
	"MOVSPA":  {OpMOVSPA, M},
	"MOVASP":  {OpMOVASP, M},
	"NOP":     {OpNOP, M},

	"NEGA": {OpNEGA, R},
	"NEGX": {OpNEGX, R},
	"ASLA": {OpASLA, R},
	"ASLX": {OpASLX, R},
	"ASRA": {OpASRA, R},
	"ASRX": {OpASRX, R},
	"NOTA": {OpNOTA, R},
	"NOTX": {OpNOTX, R},
	"ROLA": {OpROLA, R},
	"ROLX": {OpROLX, R},
	"RORA": {OpRORA, R},
	"RORX": {OpRORX, R},

	"BR":   {OpBR, AIx},
	"BRLE": {OpBRLE, AIx},
	"BRLT": {OpBRLT, AIx},
	"BREQ": {OpBREQ, AIx},
	"BRNE": {OpBRNE, AIx},
	"BRGE": {OpBRGE, AIx},
	"BRGT": {OpBRGT, AIx},
	"BRV":  {OpBRV, AIx},
	"BRC":  {OpBRC, AIx},
	"CALL": {OpCALL, AIx},

	"SCALL": {OpSCALL, AAAAll},
	"ADDSP": {OpADDSP, AAAAll},
	"SUBSP": {OpSUBSP, AAAAll},

	"ADDA": {OpADDA, RAAAAll},
	"ADDX": {OpADDX, RAAAAll},
	"SUBA": {OpSUBA, RAAAAll},
	"SUBX": {OpSUBX, RAAAAll},
	"ANDA": {OpANDA, RAAAAll},
	"ANDX": {OpANDX, RAAAAll},
	"ORA":  {OpORA, RAAAAll},
	"ORX":  {OpORX, RAAAAll},
	"XORA": {OpXORA, RAAAAll},
	"XORX": {OpXORX, RAAAAll},
	"CPWA": {OpCPWA, RAAAAll},
	"CPWX": {OpCPWX, RAAAAll},
	"CPBA": {OpCPBA, RAAAAll},
	"CPBX": {OpCPBX, RAAAAll},
	"LDWA": {OpLDWA, RAAAAll},
	"LDWX": {OpLDWX, RAAAAll},
	"LDBA": {OpLDBA, RAAAAll},
	"LDBX": {OpLDBX, RAAAAll},

	"STWA": {OpSTWA, RAAANoImmediate},
	"STWX": {OpSTWX, RAAANoImmediate},
	"STBA": {OpSTBA, RAAANoImmediate},
	"STBX": {OpSTBX, RAAANoImmediate},
}

// Lookup returns the instruction type of a mnemonic. Mnemonics are
// case-insensitive.
func Lookup(mnemonic string) (InstructionType, bool) {
	in, ok := instructions[strings.ToUpper(mnemonic)]
	return in.typ, ok
}

// Bits returns the fixed opcode bits of a mnemonic, with no addressing
// component applied.
func Bits(mnemonic string) (uint8, bool) {
	in, ok := instructions[strings.ToUpper(mnemonic)]
	return in.bits, ok
}

// DefaultMode reports the addressing mode assumed when a mnemonic is written
// without one. Only branches and CALL have a default.
func DefaultMode(mnemonic string) (AddressingMode, bool) {
	in, ok := instructions[strings.ToUpper(mnemonic)]
	if !ok || in.typ != AIx {
		return 0, false
	}
	return I, true
}

// Mnemonics returns every known mnemonic in opcode order.
func Mnemonics() []string {
	out := make([]string, 0, len(instructions))
	for mn := range instructions {
		out = append(out, mn)
	}
	sort.Slice(out, func(i, j int) bool {
		return instructions[out[i]].bits < instructions[out[j]].bits
	})
	return out
}

// EncodeUnary returns the single opcode byte of a zero-operand instruction.
func EncodeUnary(mnemonic string) (uint8, error) {
	in, ok := instructions[strings.ToUpper(mnemonic)]
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic: %s", mnemonic)
	}
	if !in.typ.Unary() {
		return 0, fmt.Errorf("%s requires an operand", strings.ToUpper(mnemonic))
	}
	return in.bits, nil
}

// Encode returns the opcode byte of a one-operand instruction with the
// addressing mode folded in. The mode must be permitted by the mnemonic's
// instruction type.
func Encode(mnemonic string, mode AddressingMode) (uint8, error) {
	mn := strings.ToUpper(mnemonic)
	in, ok := instructions[mn]
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic: %s", mnemonic)
	}
	if !in.typ.Allows(mode) {
		return 0, fmt.Errorf("addressing mode %s not allowed for %s", mode, mn)
	}

	switch in.typ {
	case AIx:
		a, err := mode.A()
		if err != nil {
			return 0, err
		}
		return in.bits | a, nil
	default:
		return in.bits | mode.AAA(), nil
	}
}
