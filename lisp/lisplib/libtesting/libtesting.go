// Package libtesting lets test suites be written in lisp source.  A test is
// registered with (test "name" (lambda () ...)) and fails when its body
// returns an error, for example through (assert expr "message").
package libtesting

import (
	"fmt"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/lisplib/internal/libutil"
)

// Loader returns a lisp.Loader that binds the test primitives, registering
// tests in suite.
func Loader(suite *TestSuite) lisp.Loader {
	return func(env *lisp.Env) error {
		return env.AddBuiltins(suite.Builtins()...)
	}
}

// TestSuite is an ordered set of named tests.
type TestSuite struct {
	tests map[string]*Test
	order []string
}

// NewTestSuite returns an empty TestSuite.
func NewTestSuite() *TestSuite {
	return &TestSuite{
		tests: make(map[string]*Test),
	}
}

// Add appends t to the suite.  Test names must be unique.
func (s *TestSuite) Add(t *Test) error {
	if s.tests[t.Name] != nil {
		return fmt.Errorf("test with the same name already defined: %v", t.Name)
	}
	s.order = append(s.order, t.Name)
	s.tests[t.Name] = t
	return nil
}

// Len returns the number of tests in the suite.
func (s *TestSuite) Len() int {
	return len(s.order)
}

// Test returns the i-th test added to the suite.
func (s *TestSuite) Test(i int) *Test {
	return s.tests[s.order[i]]
}

// Builtins returns the primitives which register tests in s and make
// assertions.
func (s *TestSuite) Builtins() []*lisp.Primitive {
	return []*lisp.Primitive{
		libutil.Function("test", lisp.Formals("name", "fn"), s.BuiltinTest),
		libutil.Function("assert", lisp.Formals("x", lisp.OptArgSymbol, "message"), BuiltinAssert),
		libutil.Function("assert-equal", lisp.Formals("expected", "x"), BuiltinAssertEqual),
	}
}

// BuiltinTest registers a test.  The test function takes no arguments.
func (s *TestSuite) BuiltinTest(args []lisp.Value) (lisp.Value, error) {
	name, ok := args[0].(lisp.String)
	if !ok {
		return nil, lisp.Errorf(lisp.PrimitiveError, "test: first argument is not a string: %v", args[0].Type())
	}
	fn, err := libutil.ToCallable("test", args[1])
	if err != nil {
		return nil, err
	}
	err = s.Add(&Test{Name: string(name), Fun: fn})
	if err != nil {
		return nil, lisp.WrapError(lisp.PrimitiveError, err)
	}
	return lisp.Nil(), nil
}

// BuiltinAssert fails unless x is true.
func BuiltinAssert(args []lisp.Value) (lisp.Value, error) {
	if lisp.Truthy(args[0]) {
		return lisp.Nil(), nil
	}
	if len(args) > 1 {
		return nil, lisp.Errorf(lisp.PrimitiveError, "assertion failed: %v", args[1])
	}
	return nil, lisp.Errorf(lisp.PrimitiveError, "assertion failed")
}

// BuiltinAssertEqual fails unless expected and x print identically.
func BuiltinAssertEqual(args []lisp.Value) (lisp.Value, error) {
	expected, x := args[0].String(), args[1].String()
	if expected != x {
		return nil, lisp.Errorf(lisp.PrimitiveError, "assertion failed: expected %s (got %s)", expected, x)
	}
	return lisp.Nil(), nil
}

// Test is a named test function.
type Test struct {
	Name string
	Fun  lisp.Callable
}
