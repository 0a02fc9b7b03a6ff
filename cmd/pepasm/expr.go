package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"pepasm/pkg/asm"
	"pepasm/pkg/expr"
)

func (a *app) exprCmd() *cobra.Command {
	var (
		in      input
		ir      bool
		listing bool
	)
	cmd := &cobra.Command{
		Use:   "expr",
		Short: "Compile an arithmetic expression",
		Long: `Parse an expression of decimals, +, * and parentheses and print it in
postfix. --ir prints the generated assembly program and --listing the
assembled listing with the runtime subroutines resolved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			return a.compileExpr(cmd.OutOrStdout(), text, ir, listing)
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&ir, "ir", false, "print the generated assembly source")
	cmd.Flags().BoolVar(&listing, "listing", false, "print the assembled listing")
	return cmd
}

func (a *app) compileExpr(w io.Writer, text string, ir, listing bool) error {
	postfix, lines, err := expr.Compile(text, asm.NewSymbolTable())
	if err != nil {
		return err
	}
	fmt.Fprintln(w, expr.ExpressionString(postfix))
	if ir {
		writeLines(w, asm.Source(lines))
	}
	if listing {
		if _, diags := asm.Generate(lines, a.cfg.BaseAddress); len(diags) > 0 {
			printDiagnostics(w, diags)
			return &asm.DiagnosticsError{Kind: asm.ErrCodegen, Diagnostics: diags}
		}
		writeLines(w, asm.ProgramListing(lines))
	}
	return nil
}

const replHelp = `Enter an expression to see its postfix form.
  :listing  toggle printing the assembled listing
  :ir       toggle printing the generated source
  :quit     leave`

func (a *app) replCmd() *cobra.Command {
	var history string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Compile expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.repl(cmd.OutOrStdout(), history)
		},
	}
	home, _ := os.UserHomeDir()
	cmd.Flags().StringVar(&history, "history", filepath.Join(home, ".pepasm_history"), "history file")
	return cmd
}

type replState struct {
	ir      bool
	listing bool
}

// command handles a ':' line and reports whether the session should end.
func (s *replState) command(w io.Writer, line string) (quit bool) {
	switch strings.Fields(line)[0] {
	case ":quit", ":q":
		return true
	case ":listing":
		s.listing = !s.listing
		fmt.Fprintf(w, "listing %s\n", onOff(s.listing))
	case ":ir":
		s.ir = !s.ir
		fmt.Fprintf(w, "ir %s\n", onOff(s.ir))
	case ":help":
		fmt.Fprintln(w, replHelp)
	default:
		fmt.Fprintf(w, "unknown command %s, try :help\n", line)
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (a *app) repl(w io.Writer, histPath string) error {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	// shutdown also runs from atexit.Exit.
	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
			_ = ln.Close()
		})
	}
	atexit.Register(shutdown)
	defer shutdown()

	fmt.Fprintln(w, "pepasm expression compiler, :help for commands")
	var state replState
	for {
		line, err := ln.Prompt("expr> ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(w)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if state.command(w, line) {
				return nil
			}
			continue
		}
		if err := a.compileExpr(w, line, state.ir, state.listing); err != nil {
			fmt.Fprintln(w, err)
		}
	}
}
