package lisp

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/luthersystems/lispy/parser/token"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	lerr := Errorf(UnboundName, "unbound symbol: %s", "x")
	assert.Equal(t, "unbound-name: unbound symbol: x", lerr.Error())
	assert.True(t, errors.Is(lerr, UnboundName))
	assert.False(t, errors.Is(lerr, ArityMismatch))
	assert.Nil(t, errors.Unwrap(lerr))

	lerr.Source = &token.Location{File: "test", Line: 2, Col: 5}
	assert.Equal(t, "test:2:5: unbound-name: unbound symbol: x", lerr.Error())
}

func TestErrors_cause(t *testing.T) {
	lerr := Errorf(UnexpectedEnd, "input ended: %v", io.ErrUnexpectedEOF)
	assert.True(t, errors.Is(lerr, UnexpectedEnd))
	assert.True(t, errors.Is(lerr, io.ErrUnexpectedEOF))

	wrapped := fmt.Errorf("loading: %w", lerr)
	assert.True(t, errors.Is(wrapped, UnexpectedEnd))

	var target *ErrorVal
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, UnexpectedEnd, target.Condition)

	werr := WrapError(PrimitiveError, io.ErrClosedPipe)
	assert.Equal(t, "primitive-error: io: read/write on closed pipe", werr.Error())
	assert.True(t, errors.Is(werr, io.ErrClosedPipe))
}

func TestRuntimeErrors(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.Eval(Symbol("missing"))
	assert.True(t, errors.Is(err, UnboundName))
	lerr, ok := err.(*ErrorVal)
	if assert.True(t, ok) {
		assert.NotNil(t, lerr.Stack)
	}
}
