package token

import "fmt"

// Token is a lexical token.  Tokens are classified by their text alone; Type
// is a convenience derived from Text by the lexer.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	return tok.Text
}

type Type uint

// Type constants used by the lexer and parser.
const (
	INVALID Type = iota

	// Atomic expressions & literals
	SYMBOL
	STRING

	// Reader macro characters
	QUOTE
	SPECIAL

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R
	CURLY_L
	CURLY_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		SYMBOL:  "atom",
		STRING:  "string",
		QUOTE:   "'",
		SPECIAL: "reader-macro",
		PAREN_L: "(",
		PAREN_R: ")",
		BRACE_L: "[",
		BRACE_R: "]",
		CURLY_L: "{",
		CURLY_R: "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Classify returns the Type of a token with the given text.
func Classify(text string) Type {
	switch text {
	case "":
		return INVALID
	case "(":
		return PAREN_L
	case ")":
		return PAREN_R
	case "[":
		return BRACE_L
	case "]":
		return BRACE_R
	case "{":
		return CURLY_L
	case "}":
		return CURLY_R
	case "'":
		return QUOTE
	case "`", "~", "~@", "^", "@":
		return SPECIAL
	}
	if text[0] == '"' {
		return STRING
	}
	return SYMBOL
}

// IsOpen returns true if typ opens a list.
func (typ Type) IsOpen() bool {
	return typ == PAREN_L || typ == BRACE_L || typ == CURLY_L
}

// IsClose returns true if typ closes a list.
func (typ Type) IsClose() bool {
	return typ == PAREN_R || typ == BRACE_R || typ == CURLY_R
}

// Closer returns the delimiter type which closes a list opened by typ.  If typ
// does not open a list INVALID is returned.
func (typ Type) Closer() Type {
	switch typ {
	case PAREN_L:
		return PAREN_R
	case BRACE_L:
		return BRACE_R
	case CURLY_L:
		return CURLY_R
	default:
		return INVALID
	}
}

// Location is a position in source text.
type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
