/*
Package lexer splits source text into tokens.

	token     := special | delimiter | string | comment | atom
	special   := '~@'
	delimiter := /[\[\]{}()'`~^@]/
	string    := '"' ( '\' <any> | /[^\\"]/ )* '"'?
	comment   := ';' /.*$/
	atom      := /[^\s\[\]{}()'"`@,;]+/

Whitespace and commas separate tokens and are never emitted.  Comments are
discarded.  A string literal missing its closing quote is accepted and runs to
the end of the input.
*/
package lexer

import (
	"bytes"
	"sort"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// Terminal names produced by the grammar.
const (
	termSeparator = "SEPARATOR"
	termSpecial   = "SPECIAL"
	termDelimiter = "DELIMITER"
	termString    = "STRING"
	termComment   = "COMMENT"
	termAtom      = "ATOM"
)

var grammar = newParsecLexer()

func newParsecLexer() parsec.Parser {
	separator := parsec.Token(`^[\s,]+`, termSeparator)
	special := parsec.Token(`^~@`, termSpecial)
	delimiter := parsec.Token("^[\\[\\]{}()'`~^@]", termDelimiter)
	str := parsec.Token(`^"(?:\\.|[^\\"])*"?`, termString)
	comment := parsec.Token(`^;.*`, termComment)
	atom := parsec.Token("^[^\\s\\[\\]{}()'\"`@,;]+", termAtom)
	// Order matters.  atom comes last because it swallows anything.
	tok := parsec.OrdChoice(nil, separator, special, delimiter, str, comment, atom)
	return parsec.Kleene(nil, tok)
}

// Tokenize splits text into an ordered sequence of token strings.
func Tokenize(text string) ([]string, error) {
	toks, err := Lex("", []byte(text))
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(toks))
	for i := range toks {
		texts[i] = toks[i].Text
	}
	return texts, nil
}

// Lex splits text into tokens annotated with their location in file.
func Lex(file string, text []byte) ([]*token.Token, error) {
	lines := newLineIndex(file, text)
	s := parsec.NewScanner(text)
	root, s := grammar(s)
	cursor := s.GetCursor()
	if len(bytes.TrimSpace(text[cursor:])) != 0 {
		err := lisp.Errorf(lisp.LexError, "unexpected text starting with %q", firstRune(text[cursor:]))
		err.Source = lines.location(cursor)
		return nil, err
	}
	var toks []*token.Token
	for _, term := range terminals(root, nil) {
		switch term.Name {
		case termSeparator, termComment:
			continue
		}
		toks = append(toks, &token.Token{
			Type:   token.Classify(term.Value),
			Text:   term.Value,
			Source: lines.location(term.Position),
		})
	}
	return toks, nil
}

// terminals flattens the node tree produced by the grammar.
func terminals(node parsec.ParsecNode, terms []*parsec.Terminal) []*parsec.Terminal {
	switch node := node.(type) {
	case []parsec.ParsecNode:
		for _, n := range node {
			terms = terminals(n, terms)
		}
	case *parsec.Terminal:
		terms = append(terms, node)
	}
	return terms
}

func firstRune(b []byte) string {
	r := bytes.Runes(b)
	if len(r) == 0 {
		return ""
	}
	return string(r[0])
}

// lineIndex maps byte offsets to line and column numbers.
type lineIndex struct {
	file  string
	start []int // offset of the first byte of each line
}

func newLineIndex(file string, text []byte) *lineIndex {
	idx := &lineIndex{file: file, start: []int{0}}
	for i, c := range text {
		if c == '\n' {
			idx.start = append(idx.start, i+1)
		}
	}
	return idx
}

func (idx *lineIndex) location(pos int) *token.Location {
	line := sort.Search(len(idx.start), func(i int) bool { return idx.start[i] > pos })
	return &token.Location{
		File: idx.file,
		Pos:  pos,
		Line: line,
		Col:  pos - idx.start[line-1] + 1,
	}
}
