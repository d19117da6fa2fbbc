package lisp

// VarArgSymbol is the symbol that indicates a variadic argument in a
// primitive's list of formal arguments.
const VarArgSymbol = "&rest"

// OptArgSymbol indicates that the following formal arguments of a primitive
// may be omitted.
const OptArgSymbol = "&optional"

// Special form keywords.  A list headed by one of these symbols is interpreted
// by the evaluator itself and the symbol is never looked up.
const (
	SymIf     Symbol = "if"
	SymDefine Symbol = "define"
	SymQuote  Symbol = "quote"
	SymLambda Symbol = "lambda"
)

// DefaultMaxDepth is the maximum evaluation depth of a runtime which has not
// been configured with WithMaximumDepth.
const DefaultMaxDepth = 10000
