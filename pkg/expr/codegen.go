package expr

import (
	"fmt"

	"pepasm/pkg/asm"
	"pepasm/pkg/isa"
)

// Runtime subroutine labels defined by every lowering.
const (
	PlusLabel  = "plus"
	TimesLabel = "times"
)

// emitter appends instruction lines that share one symbol table.
type emitter struct {
	symbols *asm.SymbolTable
	lines   []asm.Line
	label   *asm.Symbol
}

// mark attaches name as the label of the next emitted instruction.
func (e *emitter) mark(name string) {
	e.label = e.symbols.Define(name)
}

func (e *emitter) take() *asm.Symbol {
	sym := e.label
	e.label = nil
	return sym
}

func (e *emitter) unary(mnemonic string) {
	e.lines = append(e.lines, &asm.MonadicLine{Mnemonic: mnemonic, Symbol: e.take()})
}

func (e *emitter) num(mnemonic string, v int, mode isa.AddressingMode) {
	e.lines = append(e.lines, &asm.DyadicLine{
		Mnemonic: mnemonic,
		Operand:  &asm.Decimal{Value: v},
		Mode:     mode,
		Symbol:   e.take(),
	})
}

func (e *emitter) hex(mnemonic string, v int, mode isa.AddressingMode) {
	e.lines = append(e.lines, &asm.DyadicLine{
		Mnemonic: mnemonic,
		Operand:  &asm.Hexadecimal{Value: v},
		Mode:     mode,
		Symbol:   e.take(),
	})
}

func (e *emitter) ref(mnemonic, target string, mode isa.AddressingMode) {
	e.lines = append(e.lines, &asm.DyadicLine{
		Mnemonic: mnemonic,
		Operand:  &asm.Identifier{Symbol: e.symbols.Reference(target)},
		Mode:     mode,
		Symbol:   e.take(),
	})
}

func (e *emitter) comment(text string) {
	e.lines = append(e.lines, &asm.CommentLine{Comment: text})
}

// ToIR lowers a postfix expression to a stack program. Every literal is
// pushed; every operator calls its runtime subroutine on the top two
// slots, pops one and overwrites the other with the result. The program
// leaves the value in the accumulator and returns, followed by the bodies
// of plus and times. A nil symbols gets a fresh table.
func ToIR(postfix []Token, symbols *asm.SymbolTable) ([]asm.Line, error) {
	if symbols == nil {
		symbols = asm.NewSymbolTable()
	}
	e := &emitter{symbols: symbols}

	e.comment(ExpressionString(postfix))
	for _, tok := range postfix {
		switch tok.Type {
		case DECIMAL:
			if !asm.FitsWord(tok.Value) {
				return nil, fmt.Errorf("literal %d does not fit in a word", tok.Value)
			}
			e.num("LDWA", tok.Value, isa.I)
			e.num("SUBSP", 2, isa.I)
			e.num("STWA", 0, isa.S)
		case PLUS, TIMES:
			target := PlusLabel
			if tok.Type == TIMES {
				target = TimesLabel
			}
			e.ref("CALL", target, isa.I)
			e.num("ADDSP", 2, isa.I)
			e.num("STWA", 0, isa.S)
		default:
			return nil, fmt.Errorf("unexpected %s in postfix expression", tok.Type)
		}
	}
	e.num("LDWA", 0, isa.S)
	e.num("ADDSP", 2, isa.I)
	e.unary("RET")

	e.comment("a + b")
	e.mark(PlusLabel)
	e.num("LDWA", 2, isa.S)
	e.num("ADDA", 4, isa.S)
	e.unary("RET")

	// shift-and-add with the product in a local
	e.comment("a * b")
	e.mark(TimesLabel)
	e.num("SUBSP", 2, isa.I)
	e.num("LDWA", 0, isa.I)
	e.num("STWA", 0, isa.S)
	e.mark("tmLoop")
	e.num("LDWA", 4, isa.S)
	e.ref("BREQ", "tmDone", isa.I)
	e.num("ANDA", 1, isa.I)
	e.ref("BREQ", "tmShift", isa.I)
	e.num("LDWA", 0, isa.S)
	e.num("ADDA", 6, isa.S)
	e.num("STWA", 0, isa.S)
	e.mark("tmShift")
	e.num("LDWA", 6, isa.S)
	e.unary("ASLA")
	e.num("STWA", 6, isa.S)
	e.num("LDWA", 4, isa.S)
	e.unary("ASRA")
	e.hex("ANDA", 0x7FFF, isa.I)
	e.num("STWA", 4, isa.S)
	e.ref("BR", "tmLoop", isa.I)
	e.mark("tmDone")
	e.num("LDWA", 0, isa.S)
	e.num("ADDSP", 2, isa.I)
	e.unary("RET")

	return e.lines, nil
}

// Compile parses text and lowers it in one step.
func Compile(text string, symbols *asm.SymbolTable) ([]Token, []asm.Line, error) {
	postfix, err := Parse(text)
	if err != nil {
		return nil, nil, err
	}
	lines, err := ToIR(postfix, symbols)
	if err != nil {
		return postfix, nil, err
	}
	return postfix, lines, nil
}
