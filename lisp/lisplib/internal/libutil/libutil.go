// Package libutil contains helpers shared by the packages of the standard
// library.
package libutil

import (
	"math"
	"math/big"

	"github.com/luthersystems/lispy/lisp"
)

// Function returns a primitive bound to name.  The number of arguments a
// caller supplies is checked against formals before fn is invoked.
func Function(name string, formals []string, fn lisp.Builtin) *lisp.Primitive {
	return lisp.Fun(name, formals, fn)
}

// IsNumeric returns true if v is an Int or a Float.
func IsNumeric(v lisp.Value) bool {
	switch v.(type) {
	case lisp.Int, lisp.Float:
		return true
	}
	return false
}

// IsInt returns true if v is an Int.
func IsInt(v lisp.Value) bool {
	_, ok := v.(lisp.Int)
	return ok
}

// ToFloat converts a numeric value to float64.  ToFloat returns a
// PrimitiveError if v is not a number.
func ToFloat(name string, v lisp.Value) (float64, error) {
	switch v := v.(type) {
	case lisp.Int:
		return float64(v), nil
	case lisp.Float:
		return float64(v), nil
	}
	return 0, NotNumber(name, v)
}

// ToInt converts an Int, or a Float with no fractional part, to int.
func ToInt(name string, v lisp.Value) (int, error) {
	switch v := v.(type) {
	case lisp.Int:
		return int(v), nil
	case lisp.Float:
		f := float64(v)
		if math.Trunc(f) != f {
			return 0, lisp.Errorf(lisp.PrimitiveError, "%s: argument is not an integer: %v", name, v)
		}
		x, err := FloatToInt(name, f)
		if err != nil {
			return 0, err
		}
		return int(x), nil
	}
	return 0, NotNumber(name, v)
}

// FloatToInt converts an integral float to an Int.  Infinities, NaN and values
// outside the range of an int are an ArithmeticError.
func FloatToInt(name string, f float64) (lisp.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, lisp.Errorf(lisp.ArithmeticError, "%s: cannot convert %v to an integer", name, lisp.Float(f))
	}
	if f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, lisp.Errorf(lisp.ArithmeticError, "%s: integer overflow: %v", name, lisp.Float(f))
	}
	return lisp.Int(f), nil
}

// Overflow returns the error reported when an integer result does not fit in
// an Int.
func Overflow(name string) error {
	return lisp.Errorf(lisp.ArithmeticError, "%s: integer overflow", name)
}

// AddInt returns a+b and false if the sum overflows.
func AddInt(a, b int) (int, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

// SubInt returns a-b and false if the difference overflows.
func SubInt(a, b int) (int, bool) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, false
	}
	return c, true
}

// MulInt returns a*b and false if the product overflows.
func MulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// BigToInt converts x to an Int, failing with an ArithmeticError when x is
// out of range.
func BigToInt(name string, x *big.Int) (lisp.Value, error) {
	if !x.IsInt64() || x.Int64() < math.MinInt || x.Int64() > math.MaxInt {
		return nil, Overflow(name)
	}
	return lisp.Int(x.Int64()), nil
}

// ToList asserts that v is a List.
func ToList(name string, v lisp.Value) (lisp.List, error) {
	lis, ok := v.(lisp.List)
	if !ok {
		return nil, lisp.Errorf(lisp.PrimitiveError, "%s: argument is not a list: %v (%v)", name, v, v.Type())
	}
	return lis, nil
}

// ToCallable asserts that v can be called.
func ToCallable(name string, v lisp.Value) (lisp.Callable, error) {
	fn, ok := v.(lisp.Callable)
	if !ok {
		return nil, lisp.Errorf(lisp.NotCallable, "%s: argument is not a function: %v (%v)", name, v, v.Type())
	}
	return fn, nil
}

// NotNumber returns the error reported when a numeric argument is required.
func NotNumber(name string, v lisp.Value) error {
	return lisp.Errorf(lisp.PrimitiveError, "%s: argument is not a number: %v (%v)", name, v, v.Type())
}

// FloatResult returns x as a Float unless x is not finite and the arguments
// were, in which case a domain error is returned.
func FloatResult(name string, x float64, args ...float64) (lisp.Value, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		for _, a := range args {
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return lisp.Float(x), nil
			}
		}
		if math.IsNaN(x) {
			return nil, lisp.Errorf(lisp.ArithmeticError, "%s: math domain error", name)
		}
	}
	return lisp.Float(x), nil
}
