// Package libbase provides the primitives every environment starts with:
// arithmetic, comparison, list manipulation, type predicates and output.
package libbase

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/lisplib/internal/libutil"
)

// LoadPackage binds the base primitives in env.
func LoadPackage(env *lisp.Env) error {
	return env.AddBuiltins(Builtins(env.Runtime)...)
}

// Builtins returns the base primitives.  Primitives that produce output write
// to the streams of rt.
func Builtins(rt *lisp.Runtime) []*lisp.Primitive {
	return []*lisp.Primitive{
		libutil.Function("+", lisp.Formals(lisp.VarArgSymbol, "x"), builtinAdd),
		libutil.Function("-", lisp.Formals("x", lisp.VarArgSymbol, "y"), builtinSub),
		libutil.Function("*", lisp.Formals(lisp.VarArgSymbol, "x"), builtinMul),
		libutil.Function("/", lisp.Formals("x", lisp.VarArgSymbol, "y"), builtinDiv),
		libutil.Function("<", lisp.Formals("a", "b"), compareBuiltin("<", func(c int) bool { return c < 0 })),
		libutil.Function(">", lisp.Formals("a", "b"), compareBuiltin(">", func(c int) bool { return c > 0 })),
		libutil.Function("<=", lisp.Formals("a", "b"), compareBuiltin("<=", func(c int) bool { return c <= 0 })),
		libutil.Function(">=", lisp.Formals("a", "b"), compareBuiltin(">=", func(c int) bool { return c >= 0 })),
		libutil.Function("=", lisp.Formals("a", "b"), builtinEqual),
		libutil.Function("abs", lisp.Formals("x"), builtinAbs),
		libutil.Function("append", lisp.Formals(lisp.VarArgSymbol, "lists"), builtinAppend),
		libutil.Function("apply", lisp.Formals("fn", "args"), builtinApply),
		libutil.Function("begin", lisp.Formals(lisp.VarArgSymbol, "exprs"), builtinBegin),
		libutil.Function("car", lisp.Formals("list"), builtinCar),
		libutil.Function("cdr", lisp.Formals("list"), builtinCdr),
		libutil.Function("cons", lisp.Formals("x", "list"), builtinCons),
		libutil.Function("eq?", lisp.Formals("a", "b"), builtinEq),
		libutil.Function("equal?", lisp.Formals("a", "b"), builtinEqual),
		libutil.Function("expt", lisp.Formals("base", "power"), builtinExpt),
		libutil.Function("length", lisp.Formals("seq"), builtinLength),
		libutil.Function("list", lisp.Formals(lisp.VarArgSymbol, "x"), builtinList),
		libutil.Function("list?", lisp.Formals("x"), builtinIsList),
		libutil.Function("map", lisp.Formals("fn", "list", lisp.VarArgSymbol, "lists"), builtinMap),
		libutil.Function("max", lisp.Formals("x", lisp.VarArgSymbol, "y"), extremumBuiltin("max", 1)),
		libutil.Function("min", lisp.Formals("x", lisp.VarArgSymbol, "y"), extremumBuiltin("min", -1)),
		libutil.Function("not", lisp.Formals("x"), builtinNot),
		libutil.Function("null?", lisp.Formals("x"), builtinIsNull),
		libutil.Function("number?", lisp.Formals("x"), builtinIsNumber),
		libutil.Function("print", lisp.Formals(lisp.VarArgSymbol, "x"), printBuiltin(rt)),
		libutil.Function("procedure?", lisp.Formals("x"), builtinIsProcedure),
		libutil.Function("round", lisp.Formals("x", lisp.OptArgSymbol, "digits"), builtinRound),
		libutil.Function("symbol?", lisp.Formals("x"), builtinIsSymbol),
		libutil.Function("debug-stack", lisp.Formals(), debugStackBuiltin(rt)),
	}
}

// builtinAdd sums numbers.  When every argument is a string or every argument
// is a list the arguments are concatenated instead.
func builtinAdd(args []lisp.Value) (lisp.Value, error) {
	if len(args) > 0 {
		switch args[0].(type) {
		case lisp.String:
			return concatStrings("+", args)
		case lisp.List:
			return builtinAppend(args)
		}
	}
	return fold("+", lisp.Int(0), args, libutil.AddInt,
		func(a, b float64) float64 { return a + b })
}

func builtinSub(args []lisp.Value) (lisp.Value, error) {
	fop := func(a, b float64) float64 { return a - b }
	if len(args) == 1 {
		return fold("-", lisp.Int(0), args, libutil.SubInt, fop)
	}
	return fold("-", args[0], args[1:], libutil.SubInt, fop)
}

func builtinMul(args []lisp.Value) (lisp.Value, error) {
	return fold("*", lisp.Int(1), args, libutil.MulInt,
		func(a, b float64) float64 { return a * b })
}

// builtinDiv performs true division.  The result is always a Float.
func builtinDiv(args []lisp.Value) (lisp.Value, error) {
	acc, err := libutil.ToFloat("/", args[0])
	if err != nil {
		return nil, err
	}
	divisors := args[1:]
	if len(divisors) == 0 {
		divisors = args
		acc = 1
	}
	for _, v := range divisors {
		x, err := libutil.ToFloat("/", v)
		if err != nil {
			return nil, err
		}
		if x == 0 {
			return nil, lisp.Errorf(lisp.ArithmeticError, "/: division by zero")
		}
		acc /= x
	}
	return lisp.Float(acc), nil
}

// fold combines args from left to right starting with init.  Integer
// arithmetic is used until a Float is encountered.  An integer result that
// overflows is an ArithmeticError.
func fold(name string, init lisp.Value, args []lisp.Value, iop func(a, b int) (int, bool), fop func(a, b float64) float64) (lisp.Value, error) {
	if !libutil.IsNumeric(init) {
		return nil, libutil.NotNumber(name, init)
	}
	acc := init
	for _, v := range args {
		if !libutil.IsNumeric(v) {
			return nil, libutil.NotNumber(name, v)
		}
		if a, ok := acc.(lisp.Int); ok {
			if b, ok := v.(lisp.Int); ok {
				c, ok := iop(int(a), int(b))
				if !ok {
					return nil, libutil.Overflow(name)
				}
				acc = lisp.Int(c)
				continue
			}
		}
		a, _ := libutil.ToFloat(name, acc)
		b, _ := libutil.ToFloat(name, v)
		acc = lisp.Float(fop(a, b))
	}
	return acc, nil
}

func concatStrings(name string, args []lisp.Value) (lisp.Value, error) {
	var buf strings.Builder
	for _, v := range args {
		s, ok := v.(lisp.String)
		if !ok {
			return nil, lisp.Errorf(lisp.PrimitiveError, "%s: argument is not a string: %v (%v)", name, v, v.Type())
		}
		buf.WriteString(string(s))
	}
	return lisp.String(buf.String()), nil
}

// compare orders two numbers or two strings.
func compare(name string, a, b lisp.Value) (int, error) {
	if sa, ok := a.(lisp.String); ok {
		sb, ok := b.(lisp.String)
		if !ok {
			return 0, lisp.Errorf(lisp.PrimitiveError, "%s: cannot compare %v with %v", name, a.Type(), b.Type())
		}
		return strings.Compare(string(sa), string(sb)), nil
	}
	if ia, ok := a.(lisp.Int); ok {
		if ib, ok := b.(lisp.Int); ok {
			switch {
			case ia < ib:
				return -1, nil
			case ia > ib:
				return 1, nil
			}
			return 0, nil
		}
	}
	fa, err := libutil.ToFloat(name, a)
	if err != nil {
		return 0, err
	}
	fb, err := libutil.ToFloat(name, b)
	if err != nil {
		return 0, err
	}
	switch {
	case fa < fb:
		return -1, nil
	case fa > fb:
		return 1, nil
	case fa == fb:
		return 0, nil
	}
	return 0, errUnordered
}

// errUnordered is returned by compare when either operand is NaN.
var errUnordered = lisp.Errorf(lisp.ArithmeticError, "unordered comparison")

func compareBuiltin(name string, test func(c int) bool) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		c, err := compare(name, args[0], args[1])
		if err == errUnordered {
			return lisp.Bool(false), nil
		}
		if err != nil {
			return nil, err
		}
		return lisp.Bool(test(c)), nil
	}
}

func builtinEqual(args []lisp.Value) (lisp.Value, error) {
	return lisp.Bool(Equal(args[0], args[1])), nil
}

// Equal reports whether a and b are structurally equal.  Numbers compare by
// value regardless of representation.
func Equal(a, b lisp.Value) bool {
	if libutil.IsNumeric(a) && libutil.IsNumeric(b) {
		if ia, ok := a.(lisp.Int); ok {
			if ib, ok := b.(lisp.Int); ok {
				return ia == ib
			}
		}
		fa, _ := libutil.ToFloat("", a)
		fb, _ := libutil.ToFloat("", b)
		return fa == fb
	}
	switch a := a.(type) {
	case lisp.List:
		b, ok := b.(lisp.List)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case lisp.Symbol:
		b, ok := b.(lisp.Symbol)
		return ok && a == b
	case lisp.String:
		b, ok := b.(lisp.String)
		return ok && a == b
	default:
		return a == b
	}
}

// builtinEq tests identity.  Atoms are identical when they are equal, lists
// only when they share storage.
func builtinEq(args []lisp.Value) (lisp.Value, error) {
	a, b := args[0], args[1]
	la, ok := a.(lisp.List)
	if !ok {
		if _, ok := b.(lisp.List); ok {
			return lisp.Bool(false), nil
		}
		return lisp.Bool(a.Type() == b.Type() && a == b), nil
	}
	lb, ok := b.(lisp.List)
	if !ok || len(la) != len(lb) {
		return lisp.Bool(false), nil
	}
	if len(la) == 0 {
		return lisp.Bool(true), nil
	}
	return lisp.Bool(&la[0] == &lb[0]), nil
}

func builtinAbs(args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case lisp.Int:
		if x == math.MinInt {
			return nil, libutil.Overflow("abs")
		}
		if x < 0 {
			return -x, nil
		}
		return x, nil
	case lisp.Float:
		return lisp.Float(math.Abs(float64(x))), nil
	}
	return nil, libutil.NotNumber("abs", args[0])
}

func builtinAppend(args []lisp.Value) (lisp.Value, error) {
	ret := lisp.List{}
	for _, v := range args {
		lis, err := libutil.ToList("append", v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, lis...)
	}
	return ret, nil
}

func builtinApply(args []lisp.Value) (lisp.Value, error) {
	fn, err := libutil.ToCallable("apply", args[0])
	if err != nil {
		return nil, err
	}
	lis, err := libutil.ToList("apply", args[1])
	if err != nil {
		return nil, err
	}
	fargs := make([]lisp.Value, len(lis))
	copy(fargs, lis)
	return fn.Call(fargs)
}

// builtinBegin returns its last argument.  Arguments have already been
// evaluated in order by the time begin is invoked.
func builtinBegin(args []lisp.Value) (lisp.Value, error) {
	if len(args) == 0 {
		return lisp.Nil(), nil
	}
	return args[len(args)-1], nil
}

func builtinCar(args []lisp.Value) (lisp.Value, error) {
	lis, err := libutil.ToList("car", args[0])
	if err != nil {
		return nil, err
	}
	if len(lis) == 0 {
		return nil, lisp.Errorf(lisp.PrimitiveError, "car: argument is empty")
	}
	return lis[0], nil
}

func builtinCdr(args []lisp.Value) (lisp.Value, error) {
	lis, err := libutil.ToList("cdr", args[0])
	if err != nil {
		return nil, err
	}
	if len(lis) == 0 {
		return nil, lisp.Errorf(lisp.PrimitiveError, "cdr: argument is empty")
	}
	return lis[1:], nil
}

func builtinCons(args []lisp.Value) (lisp.Value, error) {
	lis, err := libutil.ToList("cons", args[1])
	if err != nil {
		return nil, err
	}
	ret := make(lisp.List, 0, len(lis)+1)
	ret = append(ret, args[0])
	return append(ret, lis...), nil
}

// builtinExpt raises base to power.  Integer arguments with a non-negative
// power produce an Int.
func builtinExpt(args []lisp.Value) (lisp.Value, error) {
	if b, ok := args[0].(lisp.Int); ok {
		if p, ok := args[1].(lisp.Int); ok && p >= 0 {
			return exptInt(int(b), int(p))
		}
	}
	b, err := libutil.ToFloat("expt", args[0])
	if err != nil {
		return nil, err
	}
	p, err := libutil.ToFloat("expt", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 && p < 0 {
		return nil, lisp.Errorf(lisp.ArithmeticError, "expt: zero raised to a negative power")
	}
	return libutil.FloatResult("expt", math.Pow(b, p), b, p)
}

// exptInt computes b**p by repeated squaring.
func exptInt(b, p int) (lisp.Value, error) {
	ret, x := 1, b
	var ok bool
	for n := p; n > 0; {
		if n&1 == 1 {
			ret, ok = libutil.MulInt(ret, x)
			if !ok {
				return nil, libutil.Overflow("expt")
			}
		}
		n >>= 1
		if n > 0 {
			x, ok = libutil.MulInt(x, x)
			if !ok {
				return nil, libutil.Overflow("expt")
			}
		}
	}
	return lisp.Int(ret), nil
}

func builtinLength(args []lisp.Value) (lisp.Value, error) {
	switch x := args[0].(type) {
	case lisp.List:
		return lisp.Int(len(x)), nil
	case lisp.String:
		return lisp.Int(len([]rune(string(x)))), nil
	}
	return nil, lisp.Errorf(lisp.PrimitiveError, "length: argument is not a sequence: %v (%v)", args[0], args[0].Type())
}

func builtinList(args []lisp.Value) (lisp.Value, error) {
	ret := make(lisp.List, len(args))
	copy(ret, args)
	return ret, nil
}

func builtinIsList(args []lisp.Value) (lisp.Value, error) {
	_, ok := args[0].(lisp.List)
	return lisp.Bool(ok), nil
}

// builtinMap calls fn with successive elements of each list and stops at the
// end of the shortest list.
func builtinMap(args []lisp.Value) (lisp.Value, error) {
	fn, err := libutil.ToCallable("map", args[0])
	if err != nil {
		return nil, err
	}
	lists := make([]lisp.List, len(args)-1)
	n := -1
	for i, v := range args[1:] {
		lists[i], err = libutil.ToList("map", v)
		if err != nil {
			return nil, err
		}
		if n < 0 || len(lists[i]) < n {
			n = len(lists[i])
		}
	}
	ret := make(lisp.List, n)
	for i := range ret {
		fargs := make([]lisp.Value, len(lists))
		for j := range lists {
			fargs[j] = lists[j][i]
		}
		ret[i], err = fn.Call(fargs)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// extremumBuiltin returns max (sign 1) or min (sign -1).  A single list
// argument is treated as the sequence of candidates.
func extremumBuiltin(name string, sign int) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		if len(args) == 1 {
			if lis, ok := args[0].(lisp.List); ok {
				if len(lis) == 0 {
					return nil, lisp.Errorf(lisp.PrimitiveError, "%s: argument is empty", name)
				}
				args = lis
			}
		}
		best := args[0]
		for _, v := range args[1:] {
			c, err := compare(name, v, best)
			if err != nil && err != errUnordered {
				return nil, err
			}
			if c*sign > 0 {
				best = v
			}
		}
		if len(args) == 1 && !libutil.IsNumeric(best) {
			if _, ok := best.(lisp.String); !ok {
				return nil, libutil.NotNumber(name, best)
			}
		}
		return best, nil
	}
}

func builtinNot(args []lisp.Value) (lisp.Value, error) {
	return lisp.Bool(!lisp.Truthy(args[0])), nil
}

func builtinIsNull(args []lisp.Value) (lisp.Value, error) {
	return lisp.Bool(lisp.IsNil(args[0])), nil
}

func builtinIsNumber(args []lisp.Value) (lisp.Value, error) {
	return lisp.Bool(libutil.IsNumeric(args[0])), nil
}

func builtinIsProcedure(args []lisp.Value) (lisp.Value, error) {
	_, ok := args[0].(lisp.Callable)
	return lisp.Bool(ok), nil
}

func builtinIsSymbol(args []lisp.Value) (lisp.Value, error) {
	_, ok := args[0].(lisp.Symbol)
	return lisp.Bool(ok), nil
}

// builtinRound rounds half to even.  Without digits the result is an Int.  An
// Int rounded to any number of digits remains an Int.
func builtinRound(args []lisp.Value) (lisp.Value, error) {
	x, err := libutil.ToFloat("round", args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		if libutil.IsInt(args[0]) {
			return args[0], nil
		}
		return libutil.FloatToInt("round", math.RoundToEven(x))
	}
	digits, err := libutil.ToInt("round", args[1])
	if err != nil {
		return nil, err
	}
	if n, ok := args[0].(lisp.Int); ok {
		if digits >= 0 {
			return n, nil
		}
		return roundInt(int(n), -digits)
	}
	scale := math.Pow(10, float64(digits))
	return lisp.Float(math.RoundToEven(x*scale) / scale), nil
}

// maxIntDigits is the number of decimal digits in the largest Int.
const maxIntDigits = 19

// roundInt rounds n to a multiple of 10**places, half to even.
func roundInt(n int, places int) (lisp.Value, error) {
	if places > maxIntDigits {
		return lisp.Int(0), nil
	}
	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	q, r := new(big.Int).QuoRem(big.NewInt(int64(n)), unit, new(big.Int))
	twice := new(big.Int).Lsh(new(big.Int).Abs(r), 1)
	c := twice.Cmp(unit)
	if c > 0 || (c == 0 && q.Bit(0) == 1) {
		if r.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		} else {
			q.Add(q, big.NewInt(1))
		}
	}
	return libutil.BigToInt("round", q.Mul(q, unit))
}

// printBuiltin writes its arguments to the runtime's standard output separated
// by spaces.  Strings are written without quotes.
func printBuiltin(rt *lisp.Runtime) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		var buf strings.Builder
		for i, v := range args {
			if i > 0 {
				buf.WriteString(" ")
			}
			if s, ok := v.(lisp.String); ok {
				buf.WriteString(string(s))
				continue
			}
			buf.WriteString(v.String())
		}
		buf.WriteString("\n")
		_, err := fmt.Fprint(rt.Stdout, buf.String())
		if err != nil {
			return nil, lisp.WrapError(lisp.PrimitiveError, err)
		}
		return lisp.Nil(), nil
	}
}

func debugStackBuiltin(rt *lisp.Runtime) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		_, err := rt.Stack.DebugPrint(rt.Stderr)
		if err != nil {
			return nil, lisp.WrapError(lisp.PrimitiveError, err)
		}
		return lisp.Nil(), nil
	}
}
