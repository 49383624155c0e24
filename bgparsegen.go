package bgparsegen

import "fmt"

// --- Token categories -------------------------------------------------------

// TokType is a category type for a Token. The categories cover the complete
// BBNF surface syntax; the first three double as symbol kinds in grammar ASTs.
type TokType int

// Token categories of BBNF.
const (
	NonTerm TokType = iota // non-terminal symbol
	Literal                // terminal (string literal)
	Epsilon                // empty string, written "" or 'epsilon'
	Derive                 // '->'
	Disj                   // '|'
	Conj                   // '&'
	Neg                    // '~'
	Semi                   // ';'
	EOF                    // end of input
	Invalid                // unrecognised input
)

var tokTypeNames = map[TokType]string{
	NonTerm: "NON_TERM",
	Literal: "LITERAL",
	Epsilon: "EPSILON",
	Derive:  "DERIVE",
	Disj:    "DISJ",
	Conj:    "CONJ",
	Neg:     "NEG",
	Semi:    "SC",
	EOF:     "EOF",
	Invalid: "INVALID",
}

func (t TokType) String() string {
	if name, ok := tokTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokType(%d)", int(t))
}

// --- Tokens -----------------------------------------------------------------

// Token is a lexeme read from a BBNF source, together with the position of
// its first character. Line and Col are 1-based.
type Token struct {
	Kind   TokType
	Lexeme string
	Line   int
	Col    int
	Span   Span // byte extent within the input
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Lexeme, t.Line, t.Col)
}

// --- Spans ------------------------------------------------------------------

// Span is a small type capturing an extent of input bytes: a start position
// and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
