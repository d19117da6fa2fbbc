package lexer

import (
	"errors"
	"testing"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		source string
		tokens []string
	}{
		{"empty", "", []string{}},
		{"blank", " \t\n ,, ", []string{}},
		{"application", "(+ 1 2)", []string{"(", "+", "1", "2", ")"}},
		{"nested", "(define x (* 2 3.5))", []string{"(", "define", "x", "(", "*", "2", "3.5", ")", ")"}},
		{"commas", "(list 1,2 , 3)", []string{"(", "list", "1", "2", "3", ")"}},
		{"comment", "(+ 1 ; one\n 2) ; done", []string{"(", "+", "1", "2", ")"}},
		{"comment only", "; nothing here", []string{}},
		{"string", `(print "hello world")`, []string{"(", "print", `"hello world"`, ")"}},
		{"escaped quote", `"a \"b\" c"`, []string{`"a \"b\" c"`}},
		{"unterminated string", `(print "abc`, []string{"(", "print", `"abc`}},
		{"string ends atom", `abc"def"`, []string{"abc", `"def"`}},
		{"brackets", "[a {b}]", []string{"[", "a", "{", "b", "}", "]"}},
		{"quote", "'(a b)", []string{"'", "(", "a", "b", ")"}},
		{"special", "~@x ~y `z ^w @v", []string{"~@", "x", "~", "y", "`", "z", "^", "w", "@", "v"}},
		{"atom with tilde", "a~b", []string{"a~b"}},
		{"negative", "(- -1 -2.5)", []string{"(", "-", "-1", "-2.5", ")"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			toks, err := Tokenize(test.source)
			require.NoError(t, err)
			if len(test.tokens) == 0 {
				assert.Empty(t, toks)
				return
			}
			assert.Equal(t, test.tokens, toks)
		})
	}
}

func TestTokenize_noEmptyTokens(t *testing.T) {
	toks, err := Tokenize(`( "" ; x
	) , ()`)
	require.NoError(t, err)
	for _, tok := range toks {
		assert.NotEmpty(t, tok)
	}
	assert.Equal(t, []string{"(", `""`, ")", "(", ")"}, toks)
}

func TestLex(t *testing.T) {
	toks, err := Lex("test", []byte("(a\n  \"b\")"))
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, token.PAREN_L, toks[0].Type)
	assert.Equal(t, "test:1:1", toks[0].Source.String())

	assert.Equal(t, token.SYMBOL, toks[1].Type)
	assert.Equal(t, "test:1:2", toks[1].Source.String())

	assert.Equal(t, token.STRING, toks[2].Type)
	assert.Equal(t, `"b"`, toks[2].Text)
	assert.Equal(t, "test:2:3", toks[2].Source.String())
	assert.Equal(t, 5, toks[2].Source.Pos)

	assert.Equal(t, token.PAREN_R, toks[3].Type)
}

func TestLex_unbalancedIsNotAnError(t *testing.T) {
	toks, err := Lex("test", []byte(")))((("))
	require.NoError(t, err)
	assert.Len(t, toks, 6)
}

func TestLineIndex(t *testing.T) {
	idx := newLineIndex("f", []byte("ab\ncd\n\nx"))
	loc := idx.location(0)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 1, loc.Col)
	loc = idx.location(4)
	assert.Equal(t, 2, loc.Line)
	assert.Equal(t, 2, loc.Col)
	loc = idx.location(7)
	assert.Equal(t, 4, loc.Line)
	assert.Equal(t, 1, loc.Col)
}

func TestLexError(t *testing.T) {
	err := lisp.Errorf(lisp.LexError, "unexpected text starting with %q", "#")
	assert.True(t, errors.Is(err, lisp.LexError))
	assert.False(t, errors.Is(err, lisp.UnexpectedEnd))
}
