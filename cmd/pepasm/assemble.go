package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"pepasm/pkg/asm"
	"pepasm/pkg/render"
	"pepasm/pkg/utils"
)

func (a *app) lexCmd() *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   "lex",
		Short: "Print the token stream of an assembly source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			text = strings.TrimRightFunc(text, unicode.IsSpace) + "\n"
			for _, tok := range asm.NewLexer(text).Tokens() {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func (a *app) parseCmd() *cobra.Command {
	var (
		in    input
		dump  bool
		color bool
	)
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print the IR lines of an assembly source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			lines := asm.Parse(text, a.symbolTable())
			if dump {
				printer := pp.New()
				printer.SetOutput(cmd.OutOrStdout())
				printer.SetColoringEnabled(color)
				printer.Println(lines)
				return nil
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), asm.String(line))
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&dump, "dump", false, "pretty-print the full IR structures")
	cmd.Flags().BoolVar(&color, "color", false, "colorize --dump output")
	return cmd
}

func (a *app) asmCmd() *cobra.Command {
	var (
		in  input
		out string
	)
	cmd := &cobra.Command{
		Use:   "asm",
		Short: "Assemble to object code",
		Long: `Assemble a Pep/10 program. Without -o the object code is printed as
hex pairs, sixteen per line. Any parse or code-generation diagnostic is
fatal and nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			res, err := a.assemble(cmd.ErrOrStderr(), text)
			if err != nil {
				return err
			}
			code := res.ObjectCode()
			if out == "-" && in.file != "" {
				out = utils.OutputPath(in.file, ".pepo")
			}
			if out != "" && out != "-" {
				if err := os.WriteFile(out, code, 0o644); err != nil {
					return fmt.Errorf("write object code: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "assembled %d bytes -> %s\n", len(code), out)
				return nil
			}
			writeLines(cmd.OutOrStdout(), hexRows(code, 16))
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "object file; '-' derives it from --file")
	return cmd
}

func hexRows(code []byte, perRow int) []string {
	var rows []string
	for len(code) > 0 {
		n := min(perRow, len(code))
		pairs := make([]string, n)
		for i, b := range code[:n] {
			pairs[i] = fmt.Sprintf("%02X", b)
		}
		rows = append(rows, strings.Join(pairs, " "))
		code = code[n:]
	}
	return rows
}

func (a *app) listingCmd() *cobra.Command {
	var (
		in      input
		pngPath string
		dumpPNG string
	)
	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Print the assembler listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			res, err := a.assemble(cmd.ErrOrStderr(), text)
			if err != nil {
				return err
			}
			rows := res.Listing()
			writeLines(cmd.OutOrStdout(), rows)

			opts := render.Options{Title: a.cfg.Listing.Title, Scale: a.cfg.Listing.Scale}
			if pngPath != "" {
				if err := writePNG(pngPath, func(f *os.File) error {
					return render.WritePNG(f, render.Listing(rows, opts))
				}); err != nil {
					return err
				}
			}
			if dumpPNG != "" {
				code := res.ObjectCode()
				if err := writePNG(dumpPNG, func(f *os.File) error {
					return render.WritePNG(f, render.HexDump(code, a.cfg.BaseAddress, 16, opts))
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&pngPath, "png", "", "also render the listing to this PNG file")
	cmd.Flags().StringVar(&dumpPNG, "dump-png", "", "render a hex dump of the object code to this PNG file")
	return cmd
}

func writePNG(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (a *app) sourceCmd() *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   "source",
		Short: "Print the normalised source text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			res := a.assembler().Translate(text)
			writeLines(cmd.OutOrStdout(), res.Source())
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func (a *app) symbolsCmd() *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Print the symbol table after code generation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			res := a.assembler().Translate(text)
			printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Symbol", "Value", "Definitions", "Status"})
			for _, sym := range res.Symbols.Symbols() {
				value := "----"
				if v, ok := sym.Value(); ok {
					value = fmt.Sprintf("%04X", uint16(v))
				}
				t.AppendRow(table.Row{sym.Name, value, sym.Definitions(), symbolStatus(sym)})
			}
			t.Render()
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func symbolStatus(sym *asm.Symbol) string {
	switch {
	case sym.IsUndefined():
		return "undefined"
	case sym.IsMultiplyDefined():
		return "multiply defined"
	}
	return "ok"
}
