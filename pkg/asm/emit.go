package asm

import (
	"bytes"
	"fmt"
	"strings"
)

// ObjectCode concatenates the encodings of every line.
func ObjectCode[L Line](program []L) []byte {
	var buf bytes.Buffer
	for _, line := range program {
		buf.Write(line.ObjectCode())
	}
	return buf.Bytes()
}

// bytesPerRow is how many object-code bytes fit in a listing row.
const bytesPerRow = 3

// Listing renders one line as listing rows: address, object code as hex
// pairs, then source. Code longer than one row continues on rows with a
// blank address and no source.
func Listing(line Line) []string {
	code := line.ObjectCode()
	first := code
	var rest []byte
	if len(code) > bytesPerRow {
		first, rest = code[:bytesPerRow], code[bytesPerRow:]
	}

	address := strings.Repeat(" ", 4)
	if a, ok := line.(Addressable); ok {
		if addr, ok := a.Address(); ok {
			address = fmt.Sprintf("%04X", addr)
		}
	}

	rows := []string{fmt.Sprintf("%4s %-6s %s", address, hexPairs(first), line.Source())}
	for len(rest) > 0 {
		n := min(bytesPerRow, len(rest))
		rows = append(rows, fmt.Sprintf("%4s %-6s", "", hexPairs(rest[:n])))
		rest = rest[n:]
	}
	return rows
}

// ProgramListing concatenates the listing rows of every line.
func ProgramListing[L Line](program []L) []string {
	var rows []string
	for _, line := range program {
		rows = append(rows, Listing(line)...)
	}
	return rows
}

// Source returns the normalised text of every line.
func Source[L Line](program []L) []string {
	out := make([]string, 0, len(program))
	for _, line := range program {
		out = append(out, line.Source())
	}
	return out
}

func hexPairs(b []byte) string {
	return strings.ToUpper(fmt.Sprintf("%x", b))
}
