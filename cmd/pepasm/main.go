// Command pepasm assembles Pep/10 source, compiles arithmetic expressions
// to Pep/10 assembly, and exposes each compiler stage for inspection.
package main

import "github.com/tebeka/atexit"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
