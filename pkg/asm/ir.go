package asm

import (
	"fmt"
	"strings"

	"pepasm/pkg/isa"
)

// Line is one node of the intermediate representation: a closed set of
// EmptyLine, CommentLine, ErrorLine, MonadicLine and DyadicLine.
type Line interface {
	// Source renders the normalised text of the line.
	Source() string
	// ObjectCode is the binary encoding; empty for non-code lines.
	ObjectCode() []byte
	// Len is the number of bytes the line occupies in memory.
	Len() int
	lineNode()
}

// Addressable lines occupy memory and are placed by the code generator.
type Addressable interface {
	Line
	Address() (int, bool)
	SetAddress(addr int)
	// SymbolDecl is the label this line declares, or nil.
	SymbolDecl() *Symbol
}

// location is the address bookkeeping shared by instruction lines.
type location struct {
	address  int
	assigned bool
}

func (l *location) Address() (int, bool) { return l.address, l.assigned }

func (l *location) SetAddress(addr int) {
	l.address = addr
	l.assigned = true
}

// formatSource lays out a line in fixed columns: label 7, mnemonic 7,
// argument list 12, then the comment.
func formatSource(mnemonic string, args []string, sym *Symbol, comment string) string {
	label := ""
	if sym != nil {
		label = sym.Name + ":"
	}
	if comment != "" {
		comment = ";" + comment
	}
	return fmt.Sprintf("%-7s%-7s%-12s%s", label, mnemonic, strings.Join(args, ","), comment)
}

// EmptyLine is a blank source line.
type EmptyLine struct{}

func (*EmptyLine) lineNode()          {}
func (*EmptyLine) Source() string     { return formatSource("", nil, nil, "") }
func (*EmptyLine) ObjectCode() []byte { return nil }
func (*EmptyLine) Len() int           { return 0 }

// CommentLine is a line holding only a comment.
type CommentLine struct {
	Comment string
}

func (*CommentLine) lineNode()          {}
func (l *CommentLine) Source() string   { return formatSource("", nil, nil, l.Comment) }
func (*CommentLine) ObjectCode() []byte { return nil }
func (*CommentLine) Len() int           { return 0 }

// ErrorLine stands in for a line that failed to parse.
type ErrorLine struct {
	Message string
}

func (*ErrorLine) lineNode() {}

func (l *ErrorLine) Source() string {
	msg := l.Message
	if msg == "" {
		msg = "Failed to parse line"
	}
	return ";ERROR: " + msg
}

func (*ErrorLine) ObjectCode() []byte { return nil }
func (*ErrorLine) Len() int           { return 0 }

// MonadicLine is a zero-operand instruction, one byte long.
type MonadicLine struct {
	location
	Mnemonic string
	Symbol   *Symbol
	Comment  string
}

func (*MonadicLine) lineNode()             {}
func (l *MonadicLine) SymbolDecl() *Symbol { return l.Symbol }
func (*MonadicLine) Len() int              { return 1 }

func (l *MonadicLine) Source() string {
	return formatSource(strings.ToUpper(l.Mnemonic), nil, l.Symbol, l.Comment)
}

func (l *MonadicLine) ObjectCode() []byte {
	op, err := isa.EncodeUnary(l.Mnemonic)
	if err != nil {
		// the parser only builds monadic lines for unary mnemonics
		panic(err)
	}
	return []byte{op}
}

// DyadicLine is a one-operand instruction: opcode byte plus a big-endian
// operand word.
type DyadicLine struct {
	location
	Mnemonic string
	Operand  Operand
	Mode     isa.AddressingMode
	Symbol   *Symbol
	Comment  string
}

func (*DyadicLine) lineNode()             {}
func (l *DyadicLine) SymbolDecl() *Symbol { return l.Symbol }
func (*DyadicLine) Len() int              { return 3 }

func (l *DyadicLine) Source() string {
	args := []string{l.Operand.String(), l.Mode.String()}
	return formatSource(strings.ToUpper(l.Mnemonic), args, l.Symbol, l.Comment)
}

func (l *DyadicLine) ObjectCode() []byte {
	op, err := isa.Encode(l.Mnemonic, l.Mode)
	if err != nil {
		// the parser validates the mode before building the line
		panic(err)
	}
	w := EncodeWord(l.Operand.Int())
	return []byte{op, w[0], w[1]}
}

// String gives a compact debugging form of a line.
func String(line Line) string {
	switch l := line.(type) {
	case *EmptyLine:
		return "EmptyLine()"
	case *CommentLine:
		return fmt.Sprintf("CommentLine(%q)", l.Comment)
	case *ErrorLine:
		return fmt.Sprintf("ErrorLine(%q)", l.Source())
	case *MonadicLine:
		return fmt.Sprintf("MonadicLine(%q)", strings.TrimSpace(l.Source()))
	case *DyadicLine:
		return fmt.Sprintf("DyadicLine(%q)", strings.TrimSpace(l.Source()))
	}
	return fmt.Sprintf("%T", line)
}
