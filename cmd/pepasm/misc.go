package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pepasm/pkg/fsm"
	"pepasm/pkg/macro"
)

func (a *app) macroCmd() *cobra.Command {
	var listing bool
	cmd := &cobra.Command{
		Use:   "macro NAME [ARG...]",
		Short: "Expand an operating-system macro",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := macro.NewRegistry()
			macro.AddOSMacros(reg)
			body, err := reg.Instantiate(args[0], args[1:]...)
			if err != nil {
				return err
			}
			if !listing {
				fmt.Fprint(cmd.OutOrStdout(), body)
				return nil
			}
			res, err := a.assemble(cmd.ErrOrStderr(), body)
			if err != nil {
				return err
			}
			writeLines(cmd.OutOrStdout(), res.Listing())
			return nil
		},
	}
	cmd.Flags().BoolVar(&listing, "listing", false, "assemble the expansion and print its listing")
	return cmd
}

func fsmTableCmd() *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Run the table-driven identifier recogniser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			verdict := "is"
			if !fsm.IsIdentifier(text) {
				verdict = "is not"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s a valid identifier\n", text, verdict)
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func numberCmd(use, short string, scan func(string) (int, bool)) *cobra.Command {
	var in input
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := in.read()
			if err != nil {
				return err
			}
			if n, ok := scan(text); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Number = %d\n", n)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Invalid Entry")
			}
			return nil
		},
	}
	in.register(cmd)
	return cmd
}

func fsmDirectCmd() *cobra.Command {
	return numberCmd("direct", "Run the direct-coded decimal recogniser", fsm.ParseDecimal)
}

func fsmHexCmd() *cobra.Command {
	return numberCmd("hexdirect", "Run the direct-coded hexadecimal recogniser", fsm.ParseHex)
}
