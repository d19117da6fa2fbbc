package rdparser

import (
	"strconv"
	"strings"

	"github.com/luthersystems/lispy/lisp"
	"github.com/luthersystems/lispy/parser/internal/interntoken"
)

var symbols = interntoken.NewTable()

// Classify converts a non-delimiter token into a leaf expression.  An exact
// decimal integer parse is tried first, then a floating point parse (which
// also accepts "inf" and "nan"), and anything else is a symbol taken verbatim.
// Integer literals too large for an int are read as floats.
//
// Numbers are decimal only.  An underscore may group digits but must sit
// between two of them, so "1_000" is 1000 while "_1" and "1__0" are symbols.
func Classify(text string) lisp.Value {
	num, ok := numeral(text)
	if !ok {
		return lisp.Symbol(symbols.Get(text))
	}
	x, err := strconv.ParseInt(num, 10, 0)
	if err == nil {
		return lisp.Int(x)
	}
	f, err := strconv.ParseFloat(num, 64)
	if err == nil || isRangeError(err) {
		return lisp.Float(f)
	}
	return lisp.Symbol(symbols.Get(text))
}

// numeral strips digit separators from text.  It reports false when text
// cannot be a decimal number: a misplaced underscore or a hexadecimal prefix.
func numeral(text string) (string, bool) {
	unsigned := strings.TrimLeft(text, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return "", false
	}
	if !strings.Contains(text, "_") {
		return text, true
	}
	for i := 0; i < len(text); i++ {
		if text[i] != '_' {
			continue
		}
		if i == 0 || i == len(text)-1 || !isDigit(text[i-1]) || !isDigit(text[i+1]) {
			return "", false
		}
	}
	return strings.ReplaceAll(text, "_", ""), true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isRangeError(err error) bool {
	numerr, ok := err.(*strconv.NumError)
	return ok && numerr.Err == strconv.ErrRange
}
