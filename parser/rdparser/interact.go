package rdparser

import (
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/lexer"
)

// Interactive implements a parser that is fed source text one line at a time
// and holds on to incomplete input until the lines which complete it arrive.
type Interactive struct {
	Name string
	buf  []string
	mut  sync.RWMutex
}

// NewInteractive initializes and returns a new Interactive parser.
func NewInteractive(name string) *Interactive {
	return &Interactive{Name: name}
}

// Prompt returns a simple prompt that can be used by a REPL.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return "  "
	}
	return "> "
}

// IsParsing returns true if p is holding incomplete input.  IsParsing can be
// called at any time, potentially by concurrent goroutines or when p is nil.
func (p *Interactive) IsParsing() bool {
	if p == nil {
		// definitely not parsing right now
		return false
	}
	p.mut.RLock()
	defer p.mut.RUnlock()
	return len(p.buf) > 0
}

// Reset discards any buffered input.
func (p *Interactive) Reset() {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.buf = nil
}

// ParseLine appends line to the buffered input and parses it.  When the
// buffered input forms complete expressions they are returned and the buffer
// is cleared.  When the input is incomplete ParseLine returns no expressions
// and no error so that the caller can read another line.  If a parse error is
// encountered, the buffered input is discarded so corrected source can be
// re-read.
func (p *Interactive) ParseLine(line string) ([]lisp.Value, error) {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.buf = append(p.buf, line)
	source := strings.Join(p.buf, "\n")
	toks, err := lexer.Lex(p.Name, []byte(source))
	if err != nil {
		p.buf = nil
		return nil, err
	}
	exprs, err := New(toks).ParseProgram()
	if IsIncomplete(err) {
		return nil, nil
	}
	p.buf = nil
	if err != nil {
		return nil, err
	}
	return exprs, nil
}

// IsIncomplete returns true if err indicates that the parsed input ended in
// the middle of an expression.
func IsIncomplete(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
