package lisp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnv_lookup(t *testing.T) {
	global := NewEnv(nil)
	global.Define("x", Int(1))
	global.Define("y", Int(2))

	local, err := Extend(global, []Symbol{"x"}, []Value{Float(1.5)})
	require.NoError(t, err)
	assert.Equal(t, global, local.Parent)
	assert.Same(t, global.Runtime, local.Runtime)
	assert.Equal(t, global, local.Root())

	v, err := local.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, Float(1.5), v)

	v, err = local.Lookup("y")
	require.NoError(t, err)
	assert.Equal(t, Int(2), v)

	v, err = global.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, Int(1), v)

	_, err = local.Lookup("z")
	assert.True(t, errors.Is(err, UnboundName))
	assert.Contains(t, err.Error(), "unbound symbol: z")
}

func TestEnv_define(t *testing.T) {
	global := NewEnv(nil)
	local := NewEnv(global)
	local.Define("x", Int(1))

	_, err := global.Lookup("x")
	assert.True(t, errors.Is(err, UnboundName))

	local.Define("x", Int(2))
	v, err := local.Lookup("x")
	require.NoError(t, err)
	assert.Equal(t, Int(2), v)

	assert.Panics(t, func() { local.Define("y", nil) })
}

func TestExtend_arity(t *testing.T) {
	global := NewEnv(nil)
	_, err := Extend(global, []Symbol{"a", "b"}, []Value{Int(1)})
	assert.True(t, errors.Is(err, ArityMismatch))

	env, err := Extend(global, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, env.Scope)
}

func TestEnv_addBuiltins(t *testing.T) {
	env := NewEnv(nil)
	id := Fun("id", Formals("x"), func(args []Value) (Value, error) { return args[0], nil })
	require.NoError(t, env.AddBuiltins(id))
	assert.Error(t, env.AddBuiltins(id))

	v, err := env.Lookup("id")
	require.NoError(t, err)
	assert.Equal(t, id, v)
}

func TestEnv_loadWithoutReader(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.LoadString("test", "1")
	assert.Error(t, err)
}

func TestEnv_ids(t *testing.T) {
	a := NewEnv(nil)
	b := NewEnv(a)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotSame(t, a.Runtime, NewEnv(nil).Runtime)
	assert.Same(t, a.Runtime, b.Runtime)
}
