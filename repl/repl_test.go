package repl

import (
	"bytes"
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/lisplib"
	"github.com/luthersystems/lispy/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepl(t *testing.T) (*Repl, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := lisp.NewEnv(nil)
	err := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(&stdout),
		lisp.WithStderr(&stderr),
		lisp.WithLoader(lisplib.LoadLibrary),
	)
	require.NoError(t, err)
	return New(env, WithPrompt("> ")), &stdout, &stderr
}

func TestRepl_evalLine(t *testing.T) {
	r, stdout, stderr := testRepl(t)
	r.EvalLine("(define x 2) (* x 21)")
	assert.Equal(t, "()\n42\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRepl_continuation(t *testing.T) {
	r, stdout, _ := testRepl(t)
	assert.Equal(t, "> ", r.Prompt())
	r.EvalLine("(+ 1")
	assert.Equal(t, "  ", r.Prompt())
	assert.Empty(t, stdout.String())
	r.EvalLine("   2)")
	assert.Equal(t, "> ", r.Prompt())
	assert.Equal(t, "3\n", stdout.String())

	r.EvalLine("(list")
	r.Reset()
	assert.Equal(t, "> ", r.Prompt())
}

func TestRepl_errorsContinue(t *testing.T) {
	r, stdout, stderr := testRepl(t)
	r.EvalLine(")")
	assert.Contains(t, stderr.String(), "unbalanced-delimiter")
	stderr.Reset()

	r.EvalLine("(car (undefined))")
	assert.Contains(t, stderr.String(), "unbound-name: unbound symbol: undefined")
	stderr.Reset()

	r.EvalLine("(car ())")
	assert.Contains(t, stderr.String(), "car: argument is empty")
	assert.Contains(t, stderr.String(), "Stack Trace")

	r.EvalLine("(+ 1 1)")
	assert.Equal(t, "2\n", stdout.String())
}
