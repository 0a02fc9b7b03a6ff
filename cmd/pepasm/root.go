package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pepasm/internal/config"
	"pepasm/pkg/asm"
)

type app struct {
	cfgPath   string
	base      int
	osSymbols bool
	logFormat string
	verbose   bool

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}
	root := &cobra.Command{
		Use:          "pepasm",
		Short:        "Pep/10 assembler and expression compiler",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", config.DefaultPath, "YAML configuration file")
	pf.IntVar(&a.base, "base", 0, "address of the first instruction")
	pf.BoolVar(&a.osSymbols, "os-symbols", true, "predefine the operating-system symbols")
	pf.StringVar(&a.logFormat, "log-format", "text", "log format: text or json")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log each compiler pass")

	root.AddCommand(
		a.lexCmd(),
		a.parseCmd(),
		a.asmCmd(),
		a.listingCmd(),
		a.sourceCmd(),
		a.symbolsCmd(),
		a.exprCmd(),
		a.replCmd(),
		a.macroCmd(),
		fsmTableCmd(),
		fsmDirectCmd(),
		fsmHexCmd(),
	)
	return root
}

// setup layers flags over the config file and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base") {
		cfg.BaseAddress = a.base
	}
	if flags.Changed("os-symbols") {
		cfg.OSSymbols = a.osSymbols
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := cfg.Log.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Log.Format, "json") {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	a.log = slog.New(handler)
	slog.SetDefault(a.log)
	a.log.Debug("configured", "config", a.cfgPath, "base", cfg.BaseAddress, "os_symbols", cfg.OSSymbols)
	return nil
}

func (a *app) assembler() *asm.Assembler {
	return asm.NewAssembler(asm.Options{
		BaseAddress: a.cfg.BaseAddress,
		OSSymbols:   a.cfg.OSSymbols,
		Logger:      a.log,
	})
}

func (a *app) symbolTable() *asm.SymbolTable {
	st := asm.NewSymbolTable()
	if a.cfg.OSSymbols {
		asm.AddOSSymbols(st)
	}
	return st
}

// assemble fails on any diagnostic after printing each one to w.
func (a *app) assemble(w io.Writer, text string) (*asm.Result, error) {
	_, res, err := a.assembler().Assemble(text)
	if err != nil {
		printDiagnostics(w, res.Diagnostics)
		return nil, err
	}
	return res, nil
}

func printDiagnostics(w io.Writer, diags []string) {
	for _, d := range diags {
		fmt.Fprintln(w, d)
	}
}

// input is the --text/--file pair every source-consuming command takes.
type input struct {
	text string
	file string
}

func (in *input) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.text, "text", "", "source text")
	cmd.Flags().StringVar(&in.file, "file", "", "source file")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	cmd.MarkFlagsOneRequired("text", "file")
}

func (in *input) read() (string, error) {
	if in.file == "" {
		return in.text, nil
	}
	data, err := os.ReadFile(in.file)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

func writeLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, strings.TrimRight(l, " "))
	}
}
