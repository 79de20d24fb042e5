package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"mscript/interpreter-go/pkg/lexer"
	"mscript/interpreter-go/pkg/parser"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			tokens, err := lexer.Tokenize(string(src))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				fmt.Fprintf(out, "%s\t%s\t%s\n", tok.Pos, tok.Kind, tok)
			}
			a.logger.Debug("tokenized", "file", args[0], "tokens", len(tokens))
			return nil
		},
	}
}

func newASTCmd(a *app) *cobra.Command {
	var asJSON, symbols bool
	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			program, err := parser.ParseSource(string(src))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(program); err != nil {
					return fmt.Errorf("encode ast: %w", err)
				}
			} else {
				fmt.Fprintln(out, program.String())
			}
			if symbols {
				names := make([]string, 0, len(program.Symbols))
				for name := range program.Symbols {
					names = append(names, name)
				}
				sort.Strings(names)
				fmt.Fprintln(out, a.palette.header("symbols:"))
				for _, name := range names {
					fmt.Fprintf(out, "  %s\t%s\n", name, program.Symbols[name])
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVar(&symbols, "symbols", false, "also print the symbol table")
	return cmd
}
