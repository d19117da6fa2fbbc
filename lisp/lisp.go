package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// LType is the type of a Value
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LInt
	LFloat
	LSymbol
	LString
	LList
	LPrimitive
	LLambda
)

var ltypeStrings = []string{
	LInvalid:   "INVALID",
	LInt:       "int",
	LFloat:     "float",
	LSymbol:    "symbol",
	LString:    "string",
	LList:      "list",
	LPrimitive: "primitive",
	LLambda:    "lambda",
}

func (t LType) String() string {
	if int(t) >= len(ltypeStrings) {
		return ltypeStrings[LInvalid]
	}
	return ltypeStrings[t]
}

// Value is a lisp value.  The set of Value implementations is closed: Int,
// Float, Symbol, String, List, *Primitive and *Lambda.
type Value interface {
	Type() LType
	String() string
	lval()
}

// Callable is a Value that can be invoked with a list of evaluated arguments.
type Callable interface {
	Value
	Call(args []Value) (Value, error)
}

// Int is an integer number.
type Int int

// Float is a floating point number.
type Float float64

// Symbol is an identifier.  A symbol whose text begins with a double quote is
// a string literal as produced by the reader, see IsStringLiteral.
type Symbol string

// String is a string value, the result of evaluating a string literal.
type String string

// List is an ordered sequence of values.  The empty List is the nil value.
type List []Value

var (
	_ Callable = (*Primitive)(nil)
	_ Callable = (*Lambda)(nil)
)

func (Int) lval()        {}
func (Float) lval()      {}
func (Symbol) lval()     {}
func (String) lval()     {}
func (List) lval()       {}
func (*Primitive) lval() {}
func (*Lambda) lval()    {}

// Type implements Value.
func (Int) Type() LType { return LInt }

// Type implements Value.
func (Float) Type() LType { return LFloat }

// Type implements Value.
func (Symbol) Type() LType { return LSymbol }

// Type implements Value.
func (String) Type() LType { return LString }

// Type implements Value.
func (List) Type() LType { return LList }

// Type implements Value.
func (*Primitive) Type() LType { return LPrimitive }

// Type implements Value.
func (*Lambda) Type() LType { return LLambda }

func (x Int) String() string {
	return strconv.Itoa(int(x))
}

// String formats x so that it always reads back as a Float.
func (x Float) String() string {
	s := strconv.FormatFloat(float64(x), 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

func (s Symbol) String() string {
	return string(s)
}

// String returns s as a double quoted string literal.
func (s String) String() string {
	return strconv.Quote(string(s))
}

func (v List) String() string {
	return exprString(v, "(", ")")
}

// Nil returns the empty list.
func Nil() List {
	return List{}
}

// IsNil returns true if v is an empty List.
func IsNil(v Value) bool {
	lis, ok := v.(List)
	return ok && len(lis) == 0
}

// IsStringLiteral returns true if s is a string literal read from source text.
func (s Symbol) IsStringLiteral() bool {
	return len(s) > 0 && s[0] == '"'
}

// StringLiteral returns the content of the string literal s with its
// delimiters removed and escape sequences decoded.  An unterminated literal
// yields everything following its opening quote.
func (s Symbol) StringLiteral() String {
	if !s.IsStringLiteral() {
		return String(s)
	}
	body := string(s[1:])
	if terminated(body) {
		body = body[:len(body)-1]
	}
	if !strings.ContainsRune(body, '\\') {
		return String(body)
	}
	var buf strings.Builder
	escape := false
	for _, c := range body {
		if !escape {
			if c == '\\' {
				escape = true
				continue
			}
			buf.WriteRune(c)
			continue
		}
		escape = false
		switch c {
		case 'n':
			buf.WriteRune('\n')
		case 't':
			buf.WriteRune('\t')
		case 'r':
			buf.WriteRune('\r')
		default:
			buf.WriteRune(c)
		}
	}
	return String(buf.String())
}

// terminated returns true if body ends with an unescaped double quote.
func terminated(body string) bool {
	if !strings.HasSuffix(body, `"`) {
		return false
	}
	n := 0
	for i := len(body) - 2; i >= 0 && body[i] == '\\'; i-- {
		n++
	}
	return n%2 == 0
}

// Truthy returns the boolean interpretation of v used by conditionals.
// Numbers are false when zero, strings and lists are false when empty, and all
// other values are true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Int:
		return v != 0
	case Float:
		return v != 0
	case String:
		return v != ""
	case List:
		return len(v) != 0
	case nil:
		return false
	default:
		return true
	}
}

// Bool returns Int 1 if ok is true and Int 0 otherwise.
func Bool(ok bool) Int {
	if ok {
		return 1
	}
	return 0
}

// Quote returns the expression (quote v).
func Quote(v Value) List {
	return List{SymQuote, v}
}

// Formals returns a list of formal argument names for a Primitive.
func Formals(argSymbols ...string) []string {
	return argSymbols
}

// Primitive is a native procedure.
type Primitive struct {
	Name    string
	Formals []string
	Fn      Builtin
}

// Fun returns a Primitive named name which accepts arguments described by
// formals.
func Fun(name string, formals []string, fn Builtin) *Primitive {
	return &Primitive{
		Name:    name,
		Formals: formals,
		Fn:      fn,
	}
}

func (p *Primitive) String() string {
	return fmt.Sprintf("<builtin-function ``%s''>", p.Name)
}

// Call checks the number of arguments against p.Formals and invokes p.Fn.
func (p *Primitive) Call(args []Value) (Value, error) {
	min, max := arity(p.Formals)
	if len(args) < min || (max >= 0 && len(args) > max) {
		return nil, p.arityError(min, max, len(args))
	}
	return p.Fn(args)
}

func (p *Primitive) arityError(min, max, n int) error {
	switch {
	case min == max:
		return Errorf(ArityMismatch, "%s: expected %d arguments (got %d)", p.Name, min, n)
	case max < 0:
		return Errorf(ArityMismatch, "%s: expected at least %d arguments (got %d)", p.Name, min, n)
	default:
		return Errorf(ArityMismatch, "%s: expected %d to %d arguments (got %d)", p.Name, min, max, n)
	}
}

// arity returns the minimum and maximum number of arguments accepted by a
// list of formals.  A negative max means any number of arguments.
func arity(formals []string) (min, max int) {
	optional := false
	for _, f := range formals {
		switch f {
		case VarArgSymbol:
			return min, -1
		case OptArgSymbol:
			optional = true
		default:
			if !optional {
				min++
			}
			max++
		}
	}
	return min, max
}

// Lambda is a user defined procedure closed over the environment in which it
// was created.
type Lambda struct {
	Name   string // set when the lambda is first bound by define
	Params []Symbol
	Body   []Value
	Env    *Env
}

// FunName returns the name fn was defined with, or "lambda" for an anonymous
// procedure.
func (fn *Lambda) FunName() string {
	if fn.Name == "" {
		return string(SymLambda)
	}
	return fn.Name
}

func (fn *Lambda) String() string {
	params := make(List, len(fn.Params))
	for i := range fn.Params {
		params[i] = fn.Params[i]
	}
	expr := List{SymLambda, params}
	expr = append(expr, fn.Body...)
	return expr.String()
}

// Call binds args to fn.Params in a new frame extending fn.Env and evaluates
// the body in that frame.
func (fn *Lambda) Call(args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, Errorf(ArityMismatch, "%s: expected %d arguments (got %d)", fn.FunName(), len(fn.Params), len(args))
	}
	env, err := Extend(fn.Env, fn.Params, args)
	if err != nil {
		return nil, err
	}
	var ret Value = Nil()
	for _, expr := range fn.Body {
		ret, err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func exprString(v List, left string, right string) string {
	if len(v) == 0 {
		return left + right
	}
	if len(v) == 2 && v[0] == SymQuote {
		return "'" + stringOf(v[1])
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range v {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(stringOf(c))
	}
	buf.WriteString(right)
	return buf.String()
}

func stringOf(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}
