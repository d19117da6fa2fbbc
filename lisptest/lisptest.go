// Package lisptest provides harnesses for testing lisp environments.
package lisptest

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/lisplib"
	"github.com/luthersystems/lispy/lisp/lisplib/libtesting"
	"github.com/luthersystems/lispy/parser"
)

// Runner is a test runner.
type Runner struct {
	// Loader is the library loader used to initialize the test environment.
	// When Loader is nil lisplib.LoadLibrary is used.
	Loader lisp.Loader
}

// NewEnv returns a new root environment loaded with r's library.  Output is
// written to stdout.
func (r *Runner) NewEnv(stdout *bytes.Buffer, config ...lisp.Config) (*lisp.Env, error) {
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	env := lisp.NewEnv(nil)
	base := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stdout),
		lisp.WithLoader(loader),
	}
	err := lisp.InitializeUserEnv(env, append(base, config...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %v", err)
	}
	return env, nil
}

// RunTestFile loads the lisp source file at path and runs each test it
// registers as a subtest.  Every test runs in a freshly loaded environment.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := ioutil.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}

	var names []string
	ok := t.Run("$load", func(t *testing.T) {
		suite, _, err := r.load(path, source)
		if err != nil {
			t.Error(err)
			return
		}
		names = make([]string, suite.Len())
		for i := range names {
			names[i] = suite.Test(i).Name
		}
	})
	if !ok {
		return
	}

	for i := range names {
		// All tests run even when one fails.  A failed assertion halts
		// evaluation of the remainder of its own test only.
		t.Run(names[i], func(t *testing.T) {
			suite, env, err := r.load(path, source)
			if err != nil {
				t.Error(err)
				return
			}
			ltest := suite.Test(i)
			_, err = ltest.Fun.Call(nil)
			if err != nil {
				t.Errorf("%s: %v", ltest.Name, err)
				logStack(t, err)
			}
			env.Runtime.Stack.Reset()
		})
	}
}

func (r *Runner) load(path string, source []byte) (*libtesting.TestSuite, *lisp.Env, error) {
	suite := libtesting.NewTestSuite()
	var out bytes.Buffer
	env, err := r.NewEnv(&out, lisp.WithLoader(libtesting.Loader(suite)))
	if err != nil {
		return nil, nil, err
	}
	_, err = env.Load(filepath.Base(path), bytes.NewReader(source))
	if err != nil {
		return nil, nil, err
	}
	return suite, env, nil
}

func logStack(t *testing.T, err error) {
	lerr, ok := err.(*lisp.ErrorVal)
	if !ok || lerr.Stack == nil {
		return
	}
	var buf bytes.Buffer
	lerr.Stack.DebugPrint(&buf)
	t.Log(buf.String())
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.Env.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message
	Output string // output written by the expression, if checked
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated environments loaded
// with the standard library.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	for i, test := range tests {
		var out bytes.Buffer
		env, err := r.NewEnv(&out)
		if err != nil {
			t.Fatal(err)
		}
		for j, expr := range test.TestSequence {
			v, err := parser.ParseString("test", expr.Expr)
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: expected one expression (got %d)", i, test.Name, j, len(v))
				continue
			}
			out.Reset()
			result, err := Eval(env, v[0])
			if err != nil {
				result = err.Error()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if expr.Output != "" && out.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, out.String())
			}
		}
	}
}

// Eval evaluates expr in env and returns the printed result.  Errors are
// reported without source locations or stack traces so that tests remain
// stable.
func Eval(env *lisp.Env, expr lisp.Value) (string, error) {
	v, err := env.Eval(expr)
	if err != nil {
		if lerr, ok := err.(*lisp.ErrorVal); ok {
			return "", fmt.Errorf("%s: %s", lerr.Condition, lerr.Msg)
		}
		return "", err
	}
	return v.String(), nil
}
