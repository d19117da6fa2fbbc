package lisp

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// Runtime is the state shared by every Env in a chain of environments.
type Runtime struct {
	Stack  *CallStack
	Reader Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StandardRuntime returns a Runtime writing to the process's standard output
// streams.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stack:  &CallStack{MaxHeight: DefaultMaxDepth},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Env is a lisp environment, one frame of name bindings linked to an optional
// parent frame.  Env performs no locking; callers evaluating concurrently
// against a shared Env must serialize access themselves.
type Env struct {
	ID      uint
	Scope   map[Symbol]Value
	Parent  *Env
	Runtime *Runtime
}

// NewEnv returns initializes and returns a new Env.  A nil parent creates a
// root (global) environment with a StandardRuntime.
func NewEnv(parent *Env) *Env {
	var runtime *Runtime
	if parent != nil {
		runtime = parent.Runtime
	} else {
		runtime = StandardRuntime()
	}
	return &Env{
		ID:      getEnvID(),
		Scope:   make(map[Symbol]Value),
		Parent:  parent,
		Runtime: runtime,
	}
}

// Extend returns a new frame whose parent is parent, binding each of names to
// the value at the same index in values.  Extend fails with ArityMismatch if
// the number of names and values differ.
func Extend(parent *Env, names []Symbol, values []Value) (*Env, error) {
	if len(names) != len(values) {
		return nil, Errorf(ArityMismatch, "expected %d arguments (got %d)", len(names), len(values))
	}
	env := NewEnv(parent)
	for i := range names {
		env.Scope[names[i]] = values[i]
	}
	return env, nil
}

// Lookup returns the value bound to name in env or the nearest enclosing frame
// which binds it.  Lookup fails with UnboundName if no frame binds name.
func (env *Env) Lookup(name Symbol) (Value, error) {
	for e := env; e != nil; e = e.Parent {
		v, ok := e.Scope[name]
		if ok {
			return v, nil
		}
	}
	return nil, env.errorf(UnboundName, "unbound symbol: %s", name)
}

// Define binds name to v in env, shadowing any binding of name in an
// enclosing frame.
func (env *Env) Define(name Symbol, v Value) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[name] = v
}

// Root returns the global environment at the end of env's parent chain.
func (env *Env) Root() *Env {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// AddBuiltins binds each of funs to its name in env.  AddBuiltins returns an
// error if a name is already bound in env.
func (env *Env) AddBuiltins(funs ...*Primitive) error {
	for _, f := range funs {
		k := Symbol(f.Name)
		if _, ok := env.Scope[k]; ok {
			return fmt.Errorf("symbol already defined: %s", f.Name)
		}
		env.Scope[k] = f
	}
	return nil
}

// Load reads expressions from r using the runtime's Reader and evaluates them
// in order.  Load returns the value of the last expression.
func (env *Env) Load(name string, r io.Reader) (Value, error) {
	if env.Runtime.Reader == nil {
		return nil, fmt.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	var ret Value = Nil()
	for _, expr := range exprs {
		ret, err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// LoadString evaluates the expressions in source.
func (env *Env) LoadString(name, source string) (Value, error) {
	return env.Load(name, strings.NewReader(source))
}

func (env *Env) errorf(c Condition, format string, v ...interface{}) error {
	err := Errorf(c, format, v...)
	if env.Runtime != nil && env.Runtime.Stack != nil {
		err.Stack = env.Runtime.Stack.Copy()
	}
	return err
}
