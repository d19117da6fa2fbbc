// Package libmath binds mathematical constants and functions.
package libmath

import (
	"math"
	"math/big"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/lisp/lisplib/internal/libutil"
)

// LoadPackage adds the math constants and functions to env.
func LoadPackage(env *lisp.Env) error {
	for _, c := range constants {
		env.Define(lisp.Symbol(c.name), lisp.Float(c.value))
	}
	return env.AddBuiltins(builtins...)
}

var constants = []struct {
	name  string
	value float64
}{
	{"pi", math.Pi},
	{"e", math.E},
	{"tau", 2 * math.Pi},
	{"inf", math.Inf(1)},
	{"nan", math.NaN()},
}

var builtins = []*lisp.Primitive{
	libutil.Function("sqrt", lisp.Formals("number"), unary("sqrt", math.Sqrt)),
	libutil.Function("sin", lisp.Formals("number"), unary("sin", math.Sin)),
	libutil.Function("cos", lisp.Formals("number"), unary("cos", math.Cos)),
	libutil.Function("tan", lisp.Formals("number"), unary("tan", math.Tan)),
	libutil.Function("asin", lisp.Formals("number"), unary("asin", math.Asin)),
	libutil.Function("acos", lisp.Formals("number"), unary("acos", math.Acos)),
	libutil.Function("atan", lisp.Formals("number"), unary("atan", math.Atan)),
	libutil.Function("atan2", lisp.Formals("y", "x"), binary("atan2", math.Atan2)),
	libutil.Function("sinh", lisp.Formals("number"), unary("sinh", math.Sinh)),
	libutil.Function("cosh", lisp.Formals("number"), unary("cosh", math.Cosh)),
	libutil.Function("tanh", lisp.Formals("number"), unary("tanh", math.Tanh)),
	libutil.Function("asinh", lisp.Formals("number"), unary("asinh", math.Asinh)),
	libutil.Function("acosh", lisp.Formals("number"), unary("acosh", math.Acosh)),
	libutil.Function("atanh", lisp.Formals("number"), bounded("atanh", -1, 1, math.Atanh)),
	libutil.Function("exp", lisp.Formals("number"), unary("exp", math.Exp)),
	libutil.Function("expm1", lisp.Formals("number"), unary("expm1", math.Expm1)),
	libutil.Function("log", lisp.Formals("number", lisp.OptArgSymbol, "base"), builtinLog),
	libutil.Function("log10", lisp.Formals("number"), unary("log10", math.Log10)),
	libutil.Function("log2", lisp.Formals("number"), unary("log2", math.Log2)),
	libutil.Function("log1p", lisp.Formals("number"), bounded("log1p", -1, math.Inf(1), math.Log1p)),
	libutil.Function("cbrt", lisp.Formals("number"), unary("cbrt", math.Cbrt)),
	libutil.Function("fabs", lisp.Formals("number"), unary("fabs", math.Abs)),
	libutil.Function("fmod", lisp.Formals("x", "y"), binary("fmod", math.Mod)),
	libutil.Function("copysign", lisp.Formals("x", "y"), binary("copysign", math.Copysign)),
	libutil.Function("degrees", lisp.Formals("radians"), unary("degrees", func(x float64) float64 { return x * 180 / math.Pi })),
	libutil.Function("radians", lisp.Formals("degrees"), unary("radians", func(x float64) float64 { return x * math.Pi / 180 })),
	libutil.Function("floor", lisp.Formals("number"), integral("floor", math.Floor)),
	libutil.Function("ceil", lisp.Formals("number"), integral("ceil", math.Ceil)),
	libutil.Function("trunc", lisp.Formals("number"), integral("trunc", math.Trunc)),
	libutil.Function("pow", lisp.Formals("base", "power"), builtinPow),
	libutil.Function("hypot", lisp.Formals(lisp.VarArgSymbol, "coordinates"), builtinHypot),
	libutil.Function("factorial", lisp.Formals("n"), builtinFactorial),
	libutil.Function("gcd", lisp.Formals(lisp.VarArgSymbol, "integers"), builtinGCD),
	libutil.Function("lcm", lisp.Formals(lisp.VarArgSymbol, "integers"), builtinLCM),
	libutil.Function("comb", lisp.Formals("n", "k"), builtinComb),
	libutil.Function("perm", lisp.Formals("n", lisp.OptArgSymbol, "k"), builtinPerm),
	libutil.Function("isnan", lisp.Formals("number"), predicate("isnan", math.IsNaN)),
	libutil.Function("isinf", lisp.Formals("number"), predicate("isinf", func(x float64) bool { return math.IsInf(x, 0) })),
	libutil.Function("isfinite", lisp.Formals("number"), predicate("isfinite", func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) })),
}

// unary wraps a float function.  The result is always a Float.
func unary(name string, fn func(float64) float64) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		x, err := libutil.ToFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return libutil.FloatResult(name, fn(x), x)
	}
}

// bounded wraps a float function defined only on the open interval (lo, hi).
// An infinite bound admits the matching infinity.
func bounded(name string, lo, hi float64, fn func(float64) float64) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		x, err := libutil.ToFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		if (x <= lo && !math.IsInf(lo, -1)) || (x >= hi && !math.IsInf(hi, 1)) {
			return nil, lisp.Errorf(lisp.ArithmeticError, "%s: math domain error", name)
		}
		return libutil.FloatResult(name, fn(x), x)
	}
}

func binary(name string, fn func(x, y float64) float64) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		x, err := libutil.ToFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		y, err := libutil.ToFloat(name, args[1])
		if err != nil {
			return nil, err
		}
		return libutil.FloatResult(name, fn(x, y), x, y)
	}
}

// integral wraps a rounding function whose result is an Int.
func integral(name string, fn func(float64) float64) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		if libutil.IsInt(args[0]) {
			return args[0], nil
		}
		x, err := libutil.ToFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		n, err := libutil.FloatToInt(name, fn(x))
		if err != nil {
			return nil, err
		}
		return n, nil
	}
}

func predicate(name string, fn func(float64) bool) lisp.Builtin {
	return func(args []lisp.Value) (lisp.Value, error) {
		x, err := libutil.ToFloat(name, args[0])
		if err != nil {
			return nil, err
		}
		return lisp.Bool(fn(x)), nil
	}
}

func builtinLog(args []lisp.Value) (lisp.Value, error) {
	x, err := libutil.ToFloat("log", args[0])
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		return libutil.FloatResult("log", math.Log(x), x)
	}
	b, err := libutil.ToFloat("log", args[1])
	if err != nil {
		return nil, err
	}
	if b == 1 {
		return nil, lisp.Errorf(lisp.ArithmeticError, "log: division by zero")
	}
	return libutil.FloatResult("log", math.Log(x)/math.Log(b), x, b)
}

func builtinPow(args []lisp.Value) (lisp.Value, error) {
	b, err := libutil.ToFloat("pow", args[0])
	if err != nil {
		return nil, err
	}
	p, err := libutil.ToFloat("pow", args[1])
	if err != nil {
		return nil, err
	}
	if b == 0 && p < 0 {
		return nil, lisp.Errorf(lisp.ArithmeticError, "pow: math domain error")
	}
	return libutil.FloatResult("pow", math.Pow(b, p), b, p)
}

func builtinHypot(args []lisp.Value) (lisp.Value, error) {
	var ret float64
	for _, v := range args {
		x, err := libutil.ToFloat("hypot", v)
		if err != nil {
			return nil, err
		}
		ret = math.Hypot(ret, x)
	}
	return lisp.Float(ret), nil
}

// maxFactorial is the largest n for which n! fits in a 64-bit int.
const maxFactorial = 20

func builtinFactorial(args []lisp.Value) (lisp.Value, error) {
	n, err := libutil.ToInt("factorial", args[0])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, lisp.Errorf(lisp.ArithmeticError, "factorial: not defined for negative values")
	}
	if n > maxFactorial {
		return nil, lisp.Errorf(lisp.ArithmeticError, "factorial: result overflows an integer: %d", n)
	}
	ret := 1
	for i := 2; i <= n; i++ {
		ret *= i
	}
	return lisp.Int(ret), nil
}

func builtinGCD(args []lisp.Value) (lisp.Value, error) {
	ret := 0
	for _, v := range args {
		n, err := intArg("gcd", v)
		if err != nil {
			return nil, err
		}
		ret = gcd(ret, n)
	}
	return lisp.Int(ret), nil
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// builtinLCM returns the least common multiple of its arguments.  The lcm of
// no arguments is 1 and any zero argument makes the result 0.
func builtinLCM(args []lisp.Value) (lisp.Value, error) {
	ret := big.NewInt(1)
	for _, v := range args {
		n, err := intArg("lcm", v)
		if err != nil {
			return nil, err
		}
		b := big.NewInt(int64(n))
		if ret.Sign() == 0 || b.Sign() == 0 {
			ret.SetInt64(0)
			continue
		}
		g := new(big.Int).GCD(nil, nil, ret, b)
		ret.Mul(ret, b).Quo(ret, g).Abs(ret)
	}
	return libutil.BigToInt("lcm", ret)
}

// maxBinomialK bounds k in comb.  For 2k <= n, C(n, k) >= 2**k, so any larger
// k overflows an Int.
const maxBinomialK = 64

// builtinComb returns the number of ways to choose k items from n.
func builtinComb(args []lisp.Value) (lisp.Value, error) {
	n, k, err := nonNegativePair("comb", args[0], args[1])
	if err != nil {
		return nil, err
	}
	if k > n {
		return lisp.Int(0), nil
	}
	if n-k < k {
		k = n - k
	}
	if k > maxBinomialK {
		return nil, libutil.Overflow("comb")
	}
	return libutil.BigToInt("comb", new(big.Int).Binomial(int64(n), int64(k)))
}

// builtinPerm returns the number of ordered arrangements of k items chosen
// from n.  Without k it returns n!.
func builtinPerm(args []lisp.Value) (lisp.Value, error) {
	kv := args[0]
	if len(args) > 1 {
		kv = args[1]
	}
	n, k, err := nonNegativePair("perm", args[0], kv)
	if err != nil {
		return nil, err
	}
	if k > n {
		return lisp.Int(0), nil
	}
	if k > maxFactorial {
		return nil, libutil.Overflow("perm")
	}
	if k == 0 {
		return lisp.Int(1), nil
	}
	return libutil.BigToInt("perm", new(big.Int).MulRange(int64(n-k+1), int64(n)))
}

func nonNegativePair(name string, a, b lisp.Value) (int, int, error) {
	n, err := intArg(name, a)
	if err != nil {
		return 0, 0, err
	}
	k, err := intArg(name, b)
	if err != nil {
		return 0, 0, err
	}
	if n < 0 || k < 0 {
		return 0, 0, lisp.Errorf(lisp.ArithmeticError, "%s: not defined for negative values", name)
	}
	return n, k, nil
}

// intArg asserts that v is an Int.
func intArg(name string, v lisp.Value) (int, error) {
	n, ok := v.(lisp.Int)
	if !ok {
		return 0, lisp.Errorf(lisp.PrimitiveError, "%s: argument is not an integer: %v (%v)", name, v, v.Type())
	}
	return int(n), nil
}
