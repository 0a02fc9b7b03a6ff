package asm

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"pepasm/pkg/isa"
)

// ParseError describes why a statement was rejected. An empty Msg renders
// as the generic failure text.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return "Failed to parse line"
	}
	return e.Msg
}

func parseErrorf(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// Parser is a recursive-descent parser over the grammar
//
//	statement   ::= [COMMENT | [SYMBOL] line] EMPTY
//	line        ::= instruction [COMMENT]
//	instruction ::= IDENTIFIER [operand [COMMA IDENTIFIER]]
//	operand     ::= HEX | DECIMAL | IDENTIFIER
//
// Each call to Next yields exactly one IR line per source line.
type Parser struct {
	buf     *TokenBuffer
	symbols *SymbolTable
}

// NewParser reads from src. A nil symbols gets a fresh table.
func NewParser(src TokenSource, symbols *SymbolTable) *Parser {
	if symbols == nil {
		symbols = NewSymbolTable()
	}
	return &Parser{buf: NewTokenBuffer(src), symbols: symbols}
}

// Symbols returns the table the parser defines and references names in.
func (p *Parser) Symbols() *SymbolTable { return p.symbols }

// Next parses one statement. A statement that fails becomes an ErrorLine
// and the remaining tokens of its line are discarded.
func (p *Parser) Next() (Line, bool) {
	if _, ok := p.buf.Peek(); !ok {
		return nil, false
	}
	line, err := p.statement()
	if err != nil {
		p.buf.SkipToNextLine(EMPTY)
		var pe *ParseError
		if errors.As(err, &pe) {
			return &ErrorLine{Message: pe.Msg}, true
		}
		return &ErrorLine{}, true
	}
	return line, true
}

// Lines drains the parser.
func (p *Parser) Lines() []Line {
	var out []Line
	for {
		line, ok := p.Next()
		if !ok {
			return out
		}
		out = append(out, line)
	}
}

func (p *Parser) statement() (Line, error) {
	if _, ok := p.buf.MayMatch(EMPTY); ok {
		return &EmptyLine{}, nil
	}

	var line Line
	if comment, ok := p.buf.MayMatch(COMMENT); ok {
		line = &CommentLine{Comment: comment.Text}
	} else if decl, ok := p.buf.MayMatch(SYMBOL); ok {
		sym := p.symbols.Define(decl.Text)
		code, err := p.line(sym)
		if err != nil {
			return nil, err
		}
		if code == nil {
			return nil, &ParseError{Msg: "Symbol declaration must be followed by instruction"}
		}
		line = code
	} else {
		code, err := p.line(nil)
		if err != nil {
			return nil, err
		}
		if code == nil {
			return nil, &ParseError{}
		}
		line = code
	}

	if _, err := p.buf.MustMatch(EMPTY); err != nil {
		return nil, err
	}
	return line, nil
}

func (p *Parser) line(sym *Symbol) (Line, error) {
	instr, err := p.instruction(sym)
	if err != nil || instr == nil {
		return nil, err
	}
	if comment, ok := p.buf.MayMatch(COMMENT); ok {
		switch l := instr.(type) {
		case *MonadicLine:
			l.Comment = comment.Text
		case *DyadicLine:
			l.Comment = comment.Text
		}
	}
	return instr, nil
}

// instruction returns nil, nil when the next token cannot start one.
func (p *Parser) instruction(sym *Symbol) (Line, error) {
	mn, ok := p.buf.MayMatch(IDENTIFIER)
	if !ok {
		return nil, nil
	}
	mnemonic := strings.ToUpper(mn.Text)
	typ, ok := isa.Lookup(mnemonic)
	if !ok {
		return nil, parseErrorf("Unrecognized mnemonic: %s", mnemonic)
	}

	if typ.Unary() {
		if _, ok := p.operand(); ok {
			return nil, parseErrorf("%s takes no argument", mnemonic)
		}
		return &MonadicLine{Mnemonic: mnemonic, Symbol: sym}, nil
	}

	arg, ok := p.operand()
	if !ok {
		return nil, &ParseError{Msg: "Missing argument"}
	}
	if !FitsWord(arg.Int()) {
		return nil, parseErrorf("Value too large: %s", arg)
	}

	mode, err := p.addressingMode(mnemonic, typ)
	if err != nil {
		return nil, err
	}
	return &DyadicLine{Mnemonic: mnemonic, Operand: arg, Mode: mode, Symbol: sym}, nil
}

func (p *Parser) operand() (Operand, bool) {
	if tok, ok := p.buf.MayMatch(HEX); ok {
		return &Hexadecimal{Value: tok.Value}, true
	}
	if tok, ok := p.buf.MayMatch(DECIMAL); ok {
		return &Decimal{Value: tok.Value}, true
	}
	if tok, ok := p.buf.MayMatch(IDENTIFIER); ok {
		return &Identifier{Symbol: p.symbols.Reference(tok.Text)}, true
	}
	return nil, false
}

// addressingMode parses ",mode", falling back to the mnemonic's default
// when the comma is absent.
func (p *Parser) addressingMode(mnemonic string, typ isa.InstructionType) (isa.AddressingMode, error) {
	if _, ok := p.buf.MayMatch(COMMA); !ok {
		if mode, ok := isa.DefaultMode(mnemonic); ok {
			return mode, nil
		}
		return 0, parseErrorf("Missing addressing mode for %s", mnemonic)
	}
	tok, err := p.buf.MustMatch(IDENTIFIER)
	if err != nil {
		return 0, &ParseError{Msg: "Expected addressing mode after ','"}
	}
	mode, err := isa.ParseAddressingMode(tok.Text)
	if err != nil {
		return 0, parseErrorf("Invalid addressing mode: %s", tok.Text)
	}
	if !typ.Allows(mode) {
		return 0, parseErrorf("Addressing mode %s not allowed for %s", mode, mnemonic)
	}
	return mode, nil
}

// Parse normalises text to end in exactly one newline and returns every
// line, ErrorLines included, in source order.
func Parse(text string, symbols *SymbolTable) []Line {
	text = strings.TrimRightFunc(text, unicode.IsSpace) + "\n"
	return NewParser(NewLexer(text), symbols).Lines()
}
