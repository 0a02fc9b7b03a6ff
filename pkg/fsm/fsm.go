// Package fsm holds the small stand-alone recognisers the command-line tool
// exposes next to the assembler lexer: a table-driven identifier automaton
// and direct-coded decimal and hexadecimal scanners.
package fsm

import "unicode"

type state int

const (
	stA state = iota // start
	stB              // identifier so far
	stC              // rejected
)

type kind int

const (
	letter kind = iota
	digit
)

var transitions = [3][2]state{
	stA: {letter: stB, digit: stC},
	stB: {letter: stB, digit: stB},
	stC: {letter: stC, digit: stC},
}

// IsIdentifier reports whether text is a letter followed by letters or
// digits. Any non-letter counts as a digit.
func IsIdentifier(text string) bool {
	s := stA
	for _, ch := range text {
		k := digit
		if unicode.IsLetter(ch) {
			k = letter
		}
		s = transitions[s][k]
	}
	return s == stB
}

// ParseDecimal accepts an optional sign followed by at least one digit.
func ParseDecimal(text string) (int, bool) {
	const (
		initial = iota
		afterSign
		magnitude
	)
	s, sign, value := initial, 1, 0
	for _, ch := range text {
		switch s {
		case initial:
			switch {
			case ch == '+':
				s = afterSign
			case ch == '-':
				s, sign = afterSign, -1
			case isDigit(ch):
				s, value = magnitude, int(ch-'0')
			default:
				return 0, false
			}
		case afterSign:
			if !isDigit(ch) {
				return 0, false
			}
			s, value = magnitude, int(ch-'0')
		case magnitude:
			if !isDigit(ch) {
				return 0, false
			}
			value = value*10 + int(ch-'0')
		}
	}
	if s != magnitude {
		return 0, false
	}
	return sign * value, true
}

// ParseHex accepts 0x or 0X followed by at least one hex digit.
func ParseHex(text string) (int, bool) {
	const (
		initial = iota
		zero
		prefix
		digits
	)
	s, value := initial, 0
	for _, ch := range text {
		switch s {
		case initial:
			if ch != '0' {
				return 0, false
			}
			s = zero
		case zero:
			if ch != 'x' && ch != 'X' {
				return 0, false
			}
			s = prefix
		case prefix, digits:
			d, ok := hexValue(ch)
			if !ok {
				return 0, false
			}
			s, value = digits, value*16+d
		}
	}
	if s != digits {
		return 0, false
	}
	return value, true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func hexValue(r rune) (int, bool) {
	switch {
	case isDigit(r):
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}
