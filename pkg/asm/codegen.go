package asm

import "fmt"

// Generate walks lines in order, placing every addressable line at the
// running address starting from base and binding its label to that
// address. It returns the addressable lines and a diagnostic for every
// ErrorLine, multiply defined label and reference to an undefined symbol.
// Empty and comment lines are skipped.
func Generate(lines []Line, base int) ([]Addressable, []string) {
	var (
		out    []Addressable
		errs   []string
		cursor = base
	)
	for _, line := range lines {
		if errLine, ok := line.(*ErrorLine); ok {
			errs = append(errs, errLine.Source())
			continue
		}
		code, ok := line.(Addressable)
		if !ok {
			continue
		}

		code.SetAddress(cursor)
		if sym := code.SymbolDecl(); sym != nil {
			if sym.IsMultiplyDefined() {
				errs = append(errs, fmt.Sprintf("Multiply defined symbol: %s", sym))
			} else {
				sym.SetValue(cursor)
			}
		}
		if dy, ok := code.(*DyadicLine); ok {
			if id, ok := dy.Operand.(*Identifier); ok && id.Symbol.IsUndefined() {
				errs = append(errs, fmt.Sprintf("Undefined symbol: %s", id.Symbol))
			}
		}

		out = append(out, code)
		cursor += code.Len()
	}
	return out, errs
}
