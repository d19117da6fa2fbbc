/*
Package parser provides a lisp reader.

	expr   := '(' <expr>* ')' | '[' <expr>* ']' | '{' <expr>* '}' | "'" <expr> | <atom>
	atom   := <int> | <float> | <symbol>
	int    := /[+-]?[0-9]+/
	float  := /[+-]?[0-9]*[.]?[0-9]+([eE][+-]?[0-9]+)?/ | inf | nan
	symbol := <string> | /[^\s\[\]{}()'"`@,;]+/
	string := '"' <strcontent> '"'?

String literals are read as symbols that retain their quotes.  The evaluator
treats such a symbol as a literal rather than a variable reference.
*/
package parser

import (
	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/lexer"
	"github.com/luthersystems/lispy/parser/rdparser"
)

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// ParseString tokenizes and parses every expression in source.
func ParseString(name, source string) ([]lisp.Value, error) {
	toks, err := lexer.Lex(name, []byte(source))
	if err != nil {
		return nil, err
	}
	return rdparser.New(toks).ParseProgram()
}
