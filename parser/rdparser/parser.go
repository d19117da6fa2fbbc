package rdparser

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/lexer"
	"github.com/luthersystems/lispy/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (_ *reader) Read(name string, r io.Reader) ([]lisp.Value, error) {
	text, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	toks, err := lexer.Lex(name, text)
	if err != nil {
		return nil, err
	}
	return New(toks).ParseProgram()
}

// Parse parses one expression from the front of tokens and removes the tokens
// it consumed.  Tokens following the expression are left for the caller.
func Parse(tokens *[]string) (lisp.Value, error) {
	toks := make([]*token.Token, len(*tokens))
	for i, text := range *tokens {
		toks[i] = &token.Token{Type: token.Classify(text), Text: text}
	}
	p := New(toks)
	expr, err := p.ParseExpression()
	*tokens = (*tokens)[len(*tokens)-p.Len():]
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// Parser is a recursive descent lisp parser which consumes a queue of tokens.
type Parser struct {
	toks []*token.Token
	curr *token.Token
}

// New initializes and returns a new Parser that reads toks.
func New(toks []*token.Token) *Parser {
	return &Parser{toks: toks}
}

// Len returns the number of unconsumed tokens.
func (p *Parser) Len() int {
	return len(p.toks)
}

// ParseProgram parses expressions until all tokens have been consumed.
func (p *Parser) ParseProgram() ([]lisp.Value, error) {
	var exprs []lisp.Value
	for p.Len() > 0 {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression pops tokens to form exactly one expression.  If the
// expression is malformed ParseExpression returns an error and no partial
// expression.
func (p *Parser) ParseExpression() (lisp.Value, error) {
	tok := p.ReadToken()
	if tok == nil {
		if p.curr == nil {
			return nil, p.errorf(lisp.UnexpectedEnd, io.EOF, "no expression")
		}
		return nil, p.errorf(lisp.UnexpectedEnd, io.ErrUnexpectedEOF, "unexpected end of input following %s", p.curr.Text)
	}
	switch {
	case tok.Type.IsOpen():
		return p.parseList(tok)
	case tok.Type.IsClose():
		return nil, p.errorf(lisp.UnbalancedDelimiter, nil, "unexpected %s", tok.Text)
	case tok.Type == token.QUOTE:
		return p.parseQuote()
	default:
		return Classify(tok.Text), nil
	}
}

func (p *Parser) parseList(open *token.Token) (lisp.Value, error) {
	closer := open.Type.Closer()
	expr := lisp.List{}
	for {
		peek := p.Peek()
		if peek == nil {
			lerr := p.errorf(lisp.UnbalancedDelimiter, io.ErrUnexpectedEOF, "unmatched %s", open.Text)
			lerr.Source = open.Source
			return nil, lerr
		}
		if peek.Type.IsClose() {
			p.ReadToken()
			if peek.Type != closer {
				return nil, p.errorf(lisp.UnbalancedDelimiter, nil, "unexpected %s (expected %s)", peek.Text, closer)
			}
			return expr, nil
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		expr = append(expr, x)
	}
}

// parseQuote reads 'x as (quote x).
func (p *Parser) parseQuote() (lisp.Value, error) {
	x, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return lisp.Quote(x), nil
}

// ReadToken pops the next token.  ReadToken returns nil when no tokens remain.
func (p *Parser) ReadToken() *token.Token {
	if len(p.toks) == 0 {
		return nil
	}
	p.curr = p.toks[0]
	p.toks[0] = nil
	p.toks = p.toks[1:]
	return p.curr
}

// Token returns the token most recently read.
func (p *Parser) Token() *token.Token {
	return p.curr
}

// Peek returns the next token without consuming it, or nil.
func (p *Parser) Peek() *token.Token {
	if len(p.toks) == 0 {
		return nil
	}
	return p.toks[0]
}

func (p *Parser) errorf(c lisp.Condition, cause error, format string, v ...interface{}) *lisp.ErrorVal {
	err := lisp.Errorf(c, format, v...)
	err.Cause = cause
	if p.curr != nil {
		err.Source = p.curr.Source
	}
	return err
}

// String formats a program, one expression per line.
func String(exprs []lisp.Value) string {
	var buf bytes.Buffer
	for _, expr := range exprs {
		buf.WriteString(expr.String())
		buf.WriteString("\n")
	}
	return buf.String()
}
