package lisp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T, config ...Config) *Env {
	env := NewEnv(nil)
	require.NoError(t, InitializeUserEnv(env, config...))
	add := Fun("+", Formals(VarArgSymbol, "x"), func(args []Value) (Value, error) {
		var sum Int
		for _, v := range args {
			x, ok := v.(Int)
			if !ok {
				return nil, Errorf(PrimitiveError, "+: argument is not an int: %v", v)
			}
			sum += x
		}
		return sum, nil
	})
	require.NoError(t, env.AddBuiltins(add))
	return env
}

func TestEval_selfEvaluating(t *testing.T) {
	env := testEnv(t)
	for _, v := range []Value{Int(3), Float(2.5), String("s"), List{}} {
		ret, err := env.Eval(v)
		require.NoError(t, err)
		assert.Equal(t, v, ret)
	}
	ret, err := env.Eval(Symbol(`"a\nb"`))
	require.NoError(t, err)
	assert.Equal(t, String("a\nb"), ret)
}

func TestEval_defineLookup(t *testing.T) {
	env := testEnv(t)
	ret, err := env.Eval(List{SymDefine, Symbol("x"), Int(10)})
	require.NoError(t, err)
	assert.True(t, IsNil(ret))

	ret, err = env.Eval(Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, Int(10), ret)

	ret, err = env.Eval(List{Symbol("+"), Symbol("x"), Int(1)})
	require.NoError(t, err)
	assert.Equal(t, Int(11), ret)
}

func TestEval_ifShortCircuit(t *testing.T) {
	env := testEnv(t)
	ret, err := env.Eval(List{SymIf, Int(1), Int(2), Symbol("undefined")})
	require.NoError(t, err)
	assert.Equal(t, Int(2), ret)

	ret, err = env.Eval(List{SymIf, List{}, Symbol("undefined"), Int(3)})
	require.NoError(t, err)
	assert.Equal(t, Int(3), ret)

	_, err = env.Eval(List{SymIf, Int(0), Int(2), Symbol("undefined")})
	assert.True(t, errors.Is(err, UnboundName))
}

func TestEval_ifBranchesShareEnv(t *testing.T) {
	env := testEnv(t)
	_, err := env.Eval(List{SymIf, Int(1), List{SymDefine, Symbol("r"), Int(7)}, Int(0)})
	require.NoError(t, err)
	ret, err := env.Eval(Symbol("r"))
	require.NoError(t, err)
	assert.Equal(t, Int(7), ret)
}

func TestEval_malformedForms(t *testing.T) {
	tests := []struct {
		name      string
		expr      List
		condition Condition
	}{
		{"if too short", List{SymIf, Int(1), Int(2)}, ArityMismatch},
		{"if too long", List{SymIf, Int(1), Int(2), Int(3), Int(4)}, ArityMismatch},
		{"define too short", List{SymDefine, Symbol("x")}, ArityMismatch},
		{"define non-symbol", List{SymDefine, Int(1), Int(2)}, InvalidForm},
		{"define string", List{SymDefine, Symbol(`"x"`), Int(2)}, InvalidForm},
		{"lambda without body", List{SymLambda, List{}}, ArityMismatch},
		{"lambda bad params", List{SymLambda, List{Int(1)}, Int(1)}, InvalidForm},
		{"not callable", List{Int(1), Int(2)}, NotCallable},
		{"unbound operator", List{Symbol("nope"), Int(2)}, UnboundName},
		{"primitive failure", List{Symbol("+"), Int(1), String("x")}, PrimitiveError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			env := testEnv(t)
			ret, err := env.Eval(test.expr)
			assert.Nil(t, ret)
			assert.True(t, errors.Is(err, test.condition), "error: %v", err)
			assert.Equal(t, 0, env.Runtime.Stack.Depth)
			assert.Empty(t, env.Runtime.Stack.Frames)
		})
	}
}

func TestEval_argumentOrder(t *testing.T) {
	env := testEnv(t)
	var order []Value
	record := Fun("record", Formals("x"), func(args []Value) (Value, error) {
		order = append(order, args[0])
		return args[0], nil
	})
	list := Fun("list", Formals(VarArgSymbol, "x"), func(args []Value) (Value, error) {
		return List(args), nil
	})
	require.NoError(t, env.AddBuiltins(record, list))
	ret, err := env.Eval(List{
		Symbol("list"),
		List{Symbol("record"), Int(1)},
		List{Symbol("record"), Int(2)},
		List{Symbol("record"), Int(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, List{Int(1), Int(2), Int(3)}, ret)
	assert.Equal(t, []Value{Int(1), Int(2), Int(3)}, order)
}

func TestEval_lambda(t *testing.T) {
	env := testEnv(t)
	adder := List{SymLambda, List{Symbol("n")},
		List{SymLambda, List{Symbol("x")}, List{Symbol("+"), Symbol("x"), Symbol("n")}}}
	_, err := env.Eval(List{SymDefine, Symbol("make-adder"), adder})
	require.NoError(t, err)
	_, err = env.Eval(List{SymDefine, Symbol("add2"), List{Symbol("make-adder"), Int(2)}})
	require.NoError(t, err)

	ret, err := env.Eval(List{Symbol("add2"), Int(40)})
	require.NoError(t, err)
	assert.Equal(t, Int(42), ret)

	fn, err := env.Lookup("add2")
	require.NoError(t, err)
	assert.Equal(t, "(lambda (x) (+ x n))", fn.String())

	_, err = env.Eval(List{Symbol("add2")})
	assert.True(t, errors.Is(err, ArityMismatch))
	assert.EqualError(t, err, "arity-mismatch: add2: expected 1 arguments (got 0)")

	_, err = env.Eval(List{SymDefine, Symbol("alias"), Symbol("add2")})
	require.NoError(t, err)
	_, err = env.Eval(List{Symbol("alias"), Int(1), Int(2)})
	assert.EqualError(t, err, "arity-mismatch: add2: expected 1 arguments (got 2)")

	_, err = env.Eval(List{List{SymLambda, List{Symbol("x")}, Symbol("x")}})
	assert.EqualError(t, err, "arity-mismatch: lambda: expected 1 arguments (got 0)")
}

func TestEval_maximumDepth(t *testing.T) {
	env := testEnv(t, WithMaximumDepth(50))
	loop := List{SymLambda, List{Symbol("n")}, List{Symbol("loop"), Symbol("n")}}
	_, err := env.Eval(List{SymDefine, Symbol("loop"), loop})
	require.NoError(t, err)

	_, err = env.Eval(List{Symbol("loop"), Int(0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, StackOverflow))
	lerr := err.(*ErrorVal)
	require.NotNil(t, lerr.Stack)
	assert.NotEmpty(t, lerr.Stack.Frames)
	assert.Equal(t, "loop", lerr.Stack.Top().Name)
	assert.Equal(t, 0, env.Runtime.Stack.Depth)

	ret, err := env.Eval(List{Symbol("+"), Int(1), Int(1)})
	require.NoError(t, err)
	assert.Equal(t, Int(2), ret)
}

func TestEval_quote(t *testing.T) {
	env := testEnv(t)
	ret, err := env.Eval(Quote(List{Symbol("a"), Symbol("b")}))
	require.NoError(t, err)
	assert.Equal(t, List{Symbol("a"), Symbol("b")}, ret)

	ret, err = Evaluate(Quote(Quote(Symbol("x"))), env)
	require.NoError(t, err)
	assert.Equal(t, "'x", ret.String())
}
