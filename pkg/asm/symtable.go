package asm

import (
	"fmt"
	"strings"
)

// Symbol is a named location or constant. Every IR line that mentions the
// same name within one table shares the same *Symbol, so a value bound by
// the code generator is visible everywhere.
type Symbol struct {
	Name        string
	definitions int
	value       int
	bound       bool
}

// IsUndefined reports whether the symbol has only ever been referenced.
func (s *Symbol) IsUndefined() bool { return s.definitions == 0 }

// IsMultiplyDefined reports whether the symbol was declared more than once.
func (s *Symbol) IsMultiplyDefined() bool { return s.definitions > 1 }

// Definitions returns how many times the symbol has been declared.
func (s *Symbol) Definitions() int { return s.definitions }

// Value returns the bound value, if any.
func (s *Symbol) Value() (int, bool) { return s.value, s.bound }

// Int returns the bound value, or 0 before one is assigned.
func (s *Symbol) Int() int {
	if !s.bound {
		return 0
	}
	return s.value
}

// SetValue binds the symbol. Only the code generator and the OS-symbol
// seeding call this.
func (s *Symbol) SetValue(v int) {
	s.value = v
	s.bound = true
}

func (s *Symbol) String() string { return s.Name }

// SymbolTable maps names (case-sensitive) to symbols. Entries are created
// on first use and never removed.
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// Reference returns the symbol for name, creating an undefined one if
// needed. It never counts as a definition.
func (st *SymbolTable) Reference(name string) *Symbol {
	if sym, ok := st.symbols[name]; ok {
		return sym
	}
	sym := &Symbol{Name: name}
	st.symbols[name] = sym
	st.order = append(st.order, name)
	return sym
}

// Define is Reference followed by bumping the definition counter.
func (st *SymbolTable) Define(name string) *Symbol {
	sym := st.Reference(name)
	sym.definitions++
	return sym
}

// Contains reports whether name has been referenced or defined.
func (st *SymbolTable) Contains(name string) bool {
	_, ok := st.symbols[name]
	return ok
}

// Lookup returns the symbol and whether it was found.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Symbols returns every entry in first-use order.
func (st *SymbolTable) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(st.order))
	for _, name := range st.order {
		out = append(out, st.symbols[name])
	}
	return out
}

func (st *SymbolTable) Len() int { return len(st.symbols) }

func (st *SymbolTable) String() string {
	var sb strings.Builder
	sb.WriteString("Symbols\n")
	for _, sym := range st.Symbols() {
		state := "ok"
		switch {
		case sym.IsUndefined():
			state = "undefined"
		case sym.IsMultiplyDefined():
			state = "multiply defined"
		}
		if v, ok := sym.Value(); ok {
			fmt.Fprintf(&sb, "  %-10s 0x%04X  %s\n", sym.Name, uint16(v), state)
		} else {
			fmt.Fprintf(&sb, "  %-10s ------  %s\n", sym.Name, state)
		}
	}
	return sb.String()
}

// OS entry points and memory-mapped I/O cells.
var osSymbols = []struct {
	name  string
	value int
}{
	{"pwrOff", 0xFFFF},
	{"charOut", 0xFFFE},
	{"charIn", 0xFFFD},
	{"DECI", 0},
	{"DECO", 1},
	{"HEXO", 2},
	{"STRO", 3},
	{"SNOP", 4},
}

// AddOSSymbols defines the operating-system symbols with their fixed values
// so user code may reference them without declaring them.
func AddOSSymbols(st *SymbolTable) {
	for _, s := range osSymbols {
		st.Define(s.name).SetValue(s.value)
	}
}
