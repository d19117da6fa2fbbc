// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/rdparser"
)

// DefaultPrompt is the prompt displayed when no expression is pending.
const DefaultPrompt = "lispy> "

// Option configures a REPL.
type Option func(*Repl)

// WithPrompt sets the primary prompt.  The continuation prompt is the same
// width, filled with spaces.
func WithPrompt(prompt string) Option {
	return func(r *Repl) {
		r.prompt = prompt
	}
}

// WithHistoryFile makes the REPL persist line history to path.
func WithHistoryFile(path string) Option {
	return func(r *Repl) {
		r.historyFile = path
	}
}

// Repl evaluates lines of input against a single environment.
type Repl struct {
	env         *lisp.Env
	parser      *rdparser.Interactive
	prompt      string
	historyFile string
}

// New returns a Repl which evaluates input in env.
func New(env *lisp.Env, opts ...Option) *Repl {
	r := &Repl{
		env:    env,
		parser: rdparser.NewInteractive("stdin"),
		prompt: DefaultPrompt,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prompt returns the prompt for the next line of input.
func (r *Repl) Prompt() string {
	if r.parser.IsParsing() {
		return strings.Repeat(" ", len(r.prompt)) // prompt had better be ascii...
	}
	return r.prompt
}

// Reset discards any incomplete expression.
func (r *Repl) Reset() {
	r.parser.Reset()
}

// EvalLine feeds one line of input to the REPL.  The value of each complete
// expression is written to the runtime's Stdout and errors are written to its
// Stderr.  Errors never terminate the session.
func (r *Repl) EvalLine(line string) {
	exprs, err := r.parser.ParseLine(line)
	if err != nil {
		r.errln(err)
		return
	}
	for _, expr := range exprs {
		v, err := r.env.Eval(expr)
		if err != nil {
			r.errln(err)
			r.env.Runtime.Stack.Reset()
			return
		}
		fmt.Fprintln(r.env.Runtime.Stdout, v)
	}
}

// Run reads lines from the terminal until EOF.
func (r *Repl) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.prompt,
		HistoryFile:     r.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          r.env.Runtime.Stdout,
		Stderr:          r.env.Runtime.Stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			r.Reset()
			rl.SetPrompt(r.Prompt())
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		r.EvalLine(line)
		rl.SetPrompt(r.Prompt())
	}
}

// RunRepl runs a simple repl in env
func RunRepl(env *lisp.Env, opts ...Option) error {
	return New(env, opts...).Run()
}

func (r *Repl) errln(err error) {
	fmt.Fprintln(r.env.Runtime.Stderr, err)
	lerr, ok := err.(*lisp.ErrorVal)
	if ok && lerr.Stack != nil && len(lerr.Stack.Frames) > 0 {
		lerr.Stack.DebugPrint(r.env.Runtime.Stderr)
	}
}
