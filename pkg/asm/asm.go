// Package asm is a two-pass assembler for the Pep/10 instruction set:
// text is lexed and parsed into IR lines, the code generator places them
// in memory and resolves labels, and the emitters render object code,
// listings or normalised source.
package asm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	ErrParse   = errors.New("parse failed")
	ErrCodegen = errors.New("code generation failed")
)

// DiagnosticsError carries every diagnostic produced while assembling.
// It unwraps to ErrParse when any line failed to parse, else ErrCodegen.
type DiagnosticsError struct {
	Kind        error
	Diagnostics []string
}

func (e *DiagnosticsError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, strings.Join(e.Diagnostics, "; "))
}

func (e *DiagnosticsError) Unwrap() error { return e.Kind }

type Options struct {
	// BaseAddress is where the first addressable line is placed.
	BaseAddress int
	// OSSymbols seeds the symbol table with the operating-system names.
	OSSymbols bool
	Logger    *slog.Logger
}

type Assembler struct {
	opts Options
	log  *slog.Logger
}

func NewAssembler(opts Options) *Assembler {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Assembler{opts: opts, log: log}
}

// Result is everything a translation produced, successful or not.
type Result struct {
	// Lines is the full parse, one entry per source line.
	Lines []Line
	// Program holds the addressable lines in address order.
	Program     []Addressable
	Symbols     *SymbolTable
	Diagnostics []string
	// SourceMap maps each instruction address to its 1-based source line.
	SourceMap map[uint16]int
}

// ObjectCode is the binary image of the program.
func (r *Result) ObjectCode() []byte { return ObjectCode(r.Program) }

// Listing renders every source line, non-code lines included.
func (r *Result) Listing() []string { return ProgramListing(r.Lines) }

func (r *Result) Source() []string { return Source(r.Lines) }

// Translate parses and generates code without treating diagnostics as
// failures. Each call starts from a fresh symbol table.
func (a *Assembler) Translate(text string) *Result {
	symbols := NewSymbolTable()
	if a.opts.OSSymbols {
		AddOSSymbols(symbols)
	}
	lines := Parse(text, symbols)
	a.log.Debug("parsed", "lines", len(lines), "symbols", symbols.Len())

	program, diags := Generate(lines, a.opts.BaseAddress)
	a.log.Debug("generated", "instructions", len(program), "diagnostics", len(diags))

	sourceMap := make(map[uint16]int, len(program))
	for i, line := range lines {
		if code, ok := line.(Addressable); ok {
			if addr, ok := code.Address(); ok {
				sourceMap[uint16(addr)] = i + 1
			}
		}
	}
	return &Result{Lines: lines, Program: program, Symbols: symbols, Diagnostics: diags, SourceMap: sourceMap}
}

// Assemble translates text and returns its object code. Any diagnostic is
// fatal and reported as a *DiagnosticsError.
func (a *Assembler) Assemble(text string) ([]byte, *Result, error) {
	res := a.Translate(text)
	if len(res.Diagnostics) > 0 {
		kind := ErrCodegen
		for _, line := range res.Lines {
			if _, ok := line.(*ErrorLine); ok {
				kind = ErrParse
				break
			}
		}
		a.log.Warn("assembly failed", "diagnostics", len(res.Diagnostics))
		return nil, res, &DiagnosticsError{Kind: kind, Diagnostics: res.Diagnostics}
	}
	return res.ObjectCode(), res, nil
}

// Assemble runs a fresh assembler with the OS symbols loaded.
func Assemble(text string) ([]byte, error) {
	code, _, err := NewAssembler(Options{OSSymbols: true}).Assemble(text)
	return code, err
}
