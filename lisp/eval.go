package lisp

// Builtin is the native implementation of a Primitive.  A Builtin receives
// the evaluated arguments of an application and returns its result verbatim.
type Builtin func(args []Value) (Value, error)

// Evaluate evaluates expr in env.
func Evaluate(expr Value, env *Env) (Value, error) {
	return env.Eval(expr)
}

// Eval evaluates expr in the context (scope) of env and returns the resulting
// Value.  Any error aborts evaluation of the entire expression.
func (env *Env) Eval(expr Value) (Value, error) {
	stack := env.Runtime.Stack
	err := stack.Enter()
	if err != nil {
		return nil, err
	}
	defer stack.Leave()

	switch expr := expr.(type) {
	case Symbol:
		if expr.IsStringLiteral() {
			return expr.StringLiteral(), nil
		}
		return env.Lookup(expr)
	case Int, Float, String, *Primitive, *Lambda:
		return expr, nil
	case List:
		return env.EvalList(expr)
	default:
		return nil, env.errorf(InvalidForm, "cannot evaluate value: %v", expr)
	}
}

// EvalList evaluates a special form or a procedure application.  The empty
// list evaluates to itself.
func (env *Env) EvalList(expr List) (Value, error) {
	if len(expr) == 0 {
		return expr, nil
	}
	switch expr[0] {
	case SymIf:
		return env.evalIf(expr)
	case SymDefine:
		return env.evalDefine(expr)
	case SymQuote:
		return env.evalQuote(expr)
	case SymLambda:
		return env.evalLambda(expr)
	}
	return env.apply(expr)
}

// evalIf evaluates (if test consequent alternative).  Only the branch selected
// by test is evaluated, in env itself.
func (env *Env) evalIf(expr List) (Value, error) {
	if len(expr) != 4 {
		return nil, env.errorf(ArityMismatch, "if: expected 3 arguments (got %d)", len(expr)-1)
	}
	test, err := env.Eval(expr[1])
	if err != nil {
		return nil, err
	}
	if Truthy(test) {
		return env.Eval(expr[2])
	}
	return env.Eval(expr[3])
}

// evalDefine evaluates (define name expr), binding the value of expr to name
// in env.  An anonymous lambda bound this way takes name as its name.  The
// result is the empty list.
func (env *Env) evalDefine(expr List) (Value, error) {
	if len(expr) != 3 {
		return nil, env.errorf(ArityMismatch, "define: expected 2 arguments (got %d)", len(expr)-1)
	}
	name, ok := expr[1].(Symbol)
	if !ok || name.IsStringLiteral() {
		return nil, env.errorf(InvalidForm, "define: first argument is not a symbol: %v", expr[1])
	}
	v, err := env.Eval(expr[2])
	if err != nil {
		return nil, err
	}
	if fn, ok := v.(*Lambda); ok && fn.Name == "" {
		fn.Name = string(name)
	}
	env.Define(name, v)
	return Nil(), nil
}

func (env *Env) evalQuote(expr List) (Value, error) {
	if len(expr) != 2 {
		return nil, env.errorf(ArityMismatch, "quote: expected 1 argument (got %d)", len(expr)-1)
	}
	return expr[1], nil
}

// evalLambda evaluates (lambda (params ...) body ...) to a closure over env.
func (env *Env) evalLambda(expr List) (Value, error) {
	if len(expr) < 3 {
		return nil, env.errorf(ArityMismatch, "lambda: expected at least 2 arguments (got %d)", len(expr)-1)
	}
	formals, ok := expr[1].(List)
	if !ok {
		return nil, env.errorf(InvalidForm, "lambda: first argument is not a list: %v", expr[1])
	}
	params := make([]Symbol, len(formals))
	seen := make(map[Symbol]bool, len(formals))
	for i, f := range formals {
		sym, ok := f.(Symbol)
		if !ok || sym.IsStringLiteral() {
			return nil, env.errorf(InvalidForm, "lambda: parameter is not a symbol: %v", f)
		}
		if seen[sym] {
			return nil, env.errorf(InvalidForm, "lambda: duplicate parameter: %v", sym)
		}
		seen[sym] = true
		params[i] = sym
	}
	body := make([]Value, len(expr)-2)
	copy(body, expr[2:])
	return &Lambda{Params: params, Body: body, Env: env}, nil
}

// apply evaluates the head of expr to a procedure, evaluates the remaining
// elements left to right, and calls the procedure with them.
func (env *Env) apply(expr List) (Value, error) {
	head, err := env.Eval(expr[0])
	if err != nil {
		return nil, err
	}
	fun, ok := head.(Callable)
	if !ok {
		return nil, env.errorf(NotCallable, "first element of expression is not a function: %v (%v)", head, head.Type())
	}
	args := make([]Value, len(expr)-1)
	for i := range args {
		args[i], err = env.Eval(expr[i+1])
		if err != nil {
			return nil, err
		}
	}
	stack := env.Runtime.Stack
	stack.Push(frameName(expr[0], fun), len(args))
	defer stack.Pop()
	ret, err := fun.Call(args)
	if err != nil {
		if lerr, ok := err.(*ErrorVal); ok && lerr.Stack == nil {
			lerr.Stack = stack.Copy()
		}
		return nil, err
	}
	if ret == nil {
		return Nil(), nil
	}
	return ret, nil
}

func frameName(head Value, fun Callable) string {
	if sym, ok := head.(Symbol); ok {
		return string(sym)
	}
	switch fun := fun.(type) {
	case *Primitive:
		return fun.Name
	case *Lambda:
		return fun.FunName()
	}
	return "<lambda>"
}
