package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/luthersystems/lispy/parser"
	"github.com/luthersystems/lispy/parser/lexer"
	"github.com/luthersystems/lispy/parser/rdparser"
	"github.com/spf13/cobra"
)

var (
	readExpression bool
	readTokens     bool
)

// readCmd represents the read command
var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Parse lisp code without evaluating it",
	Long: `Parse lisp code and print each expression as the printer renders it.
With --tokens the token stream is printed instead, one token per line.`,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := readSourceArgs(args, readExpression)
		if err != nil {
			log.Fatal(err)
		}
		for _, src := range sources {
			err := readSource(os.Stdout, src.name, string(src.text), readTokens)
			if err != nil {
				log.Fatal(err)
			}
		}
	},
}

func readSource(w io.Writer, name, text string, tokens bool) error {
	if tokens {
		toks, err := lexer.Tokenize(text)
		if err != nil {
			return err
		}
		for _, tok := range toks {
			fmt.Fprintln(w, tok)
		}
		return nil
	}
	exprs, err := parser.ParseString(name, text)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rdparser.String(exprs))
	return err
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().BoolVarP(&readExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	readCmd.Flags().BoolVarP(&readTokens, "tokens", "t", false,
		"Print tokens instead of expressions")
}
