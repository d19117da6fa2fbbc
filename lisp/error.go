package lisp

import (
	"bytes"
	"fmt"

	"github.com/luthersystems/lispy/parser/token"
)

// Condition classifies an error.  A Condition is itself an error so that it
// may be used as the target of errors.Is.
type Condition string

// Error conditions raised by the reader and the evaluator.
const (
	LexError            Condition = "lex-error"
	UnexpectedEnd       Condition = "unexpected-end"
	UnbalancedDelimiter Condition = "unbalanced-delimiter"
	UnboundName         Condition = "unbound-name"
	ArityMismatch       Condition = "arity-mismatch"
	NotCallable         Condition = "not-callable"
	InvalidForm         Condition = "invalid-form"
	ArithmeticError     Condition = "arithmetic-error"
	PrimitiveError      Condition = "primitive-error"
	StackOverflow       Condition = "stack-overflow"
)

// Error implements the error interface.
func (c Condition) Error() string {
	return string(c)
}

// ErrorVal is an error raised while reading or evaluating an expression.
type ErrorVal struct {
	Condition Condition
	Msg       string
	Source    *token.Location // set for errors raised by the reader
	Stack     *CallStack      // copy of the call stack when the error was raised
	Cause     error
}

// Errorf returns an ErrorVal with a formatted message.  If the last argument
// is an error it is used as the ErrorVal's Cause.
func Errorf(c Condition, format string, v ...interface{}) *ErrorVal {
	err := &ErrorVal{
		Condition: c,
		Msg:       fmt.Sprintf(format, v...),
	}
	if len(v) > 0 {
		if cause, ok := v[len(v)-1].(error); ok {
			err.Cause = cause
		}
	}
	return err
}

// WrapError returns an ErrorVal with condition c caused by err.
func WrapError(c Condition, err error) *ErrorVal {
	return &ErrorVal{
		Condition: c,
		Msg:       err.Error(),
		Cause:     err,
	}
}

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	var buf bytes.Buffer
	if e.Source != nil {
		buf.WriteString(e.Source.String())
		buf.WriteString(": ")
	}
	buf.WriteString(string(e.Condition))
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	return buf.String()
}

// Is reports whether target is the Condition of e.
func (e *ErrorVal) Is(target error) bool {
	c, ok := target.(Condition)
	return ok && c == e.Condition
}

// Unwrap returns the cause of e, if any.
func (e *ErrorVal) Unwrap() error {
	return e.Cause
}
