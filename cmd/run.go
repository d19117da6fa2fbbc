package cmd

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/luthersystems/lispy/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		sources, err := readSourceArgs(args, runExpression)
		if err != nil {
			log.Fatal(err)
		}
		if cmd.Flags().Changed("print") {
			config.Print = runPrint
		}

		env, err := newEnv(config)
		if err != nil {
			log.Fatal(err)
		}
		for _, src := range sources {
			err := runSource(env, src.name, src.text, config.Print)
			if err != nil {
				logError(env, err)
				os.Exit(1)
			}
		}
	},
}

type source struct {
	name string
	text []byte
}

// runSource evaluates each expression in text in order.  When print is true
// the value of every expression is written to the runtime's Stdout.
func runSource(env *lisp.Env, name string, text []byte, print bool) error {
	exprs, err := env.Runtime.Reader.Read(name, bytes.NewReader(text))
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return err
		}
		if print {
			fmt.Fprintln(env.Runtime.Stdout, v)
		}
	}
	return nil
}

// readSourceArgs returns the sources named by command arguments.  When
// isExpr is true the arguments themselves are the source text.
func readSourceArgs(args []string, isExpr bool) ([]source, error) {
	sources := make([]source, len(args))
	if isExpr {
		for i := range args {
			sources[i] = source{name: fmt.Sprintf("expr%d", i+1), text: []byte(args[i])}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = source{name: path, text: b}
	}
	return sources, nil
}

func logError(env *lisp.Env, err error) {
	log.Print(err)
	lerr, ok := err.(*lisp.ErrorVal)
	if ok && lerr.Stack != nil && len(lerr.Stack.Frames) > 0 {
		lerr.Stack.DebugPrint(env.Runtime.Stderr)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
