package bbnf

import (
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/etchogon-s/bgparsegen"
)

// Tokenizer is the scanner interface consumed by the BBNF parser.
type Tokenizer interface {
	NextToken() bgparsegen.Token
}

var (
	lexerOnce sync.Once
	lexer     *lexmachine.Lexer
	lexerErr  error
)

// skip is an action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// token is an action which wraps a match into a lexmachine token of the
// given kind, with the lexeme as its value.
func token(kind bgparsegen.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}

// literal handles `"…"` matches: strips the quotes, resolves the \" escape,
// and classifies the empty literal as EPSILON.
func literal() lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		content := string(m.Bytes[1 : len(m.Bytes)-1])
		content = strings.ReplaceAll(content, `\"`, `"`)
		if content == "" {
			return s.Token(int(bgparsegen.Epsilon), "", m), nil
		}
		return s.Token(int(bgparsegen.Literal), content, m), nil
	}
}

// epsilonKeyword maps the identifier 'epsilon' to an EPSILON token with an
// empty lexeme.
func epsilonKeyword() lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(bgparsegen.Epsilon), "", m), nil
	}
}

// buildLexer compiles the BBNF token patterns into a DFA, once.
func buildLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		l := lexmachine.NewLexer()
		l.Add([]byte(`( |\t|\n|\r)+`), skip)
		l.Add([]byte(`"([^"\\]|\\.)*"`), literal())
		l.Add([]byte(`epsilon`), epsilonKeyword())
		l.Add([]byte(`[A-Za-z0-9_]+`), token(bgparsegen.NonTerm))
		l.Add([]byte(`->`), token(bgparsegen.Derive))
		l.Add([]byte(`\|`), token(bgparsegen.Disj))
		l.Add([]byte(`&`), token(bgparsegen.Conj))
		l.Add([]byte(`~`), token(bgparsegen.Neg))
		l.Add([]byte(`;`), token(bgparsegen.Semi))
		if err := l.Compile(); err != nil {
			tracer().Errorf("error compiling DFA: %v", err)
			lexerErr = err
			return
		}
		lexer = l
	})
	return lexer, lexerErr
}

// Scanner turns a BBNF source into a lazy sequence of tokens. The zero
// value is not usable; create one with NewScanner.
type Scanner struct {
	name     string
	scanner  *lexmachine.Scanner
	lastLine int
	lastCol  int
}

var _ Tokenizer = (*Scanner)(nil)

// NewScanner creates a scanner for a BBNF source. The name is only used in
// trace output.
func NewScanner(name string, input []byte) (*Scanner, error) {
	l, err := buildLexer()
	if err != nil {
		return nil, err
	}
	s, err := l.Scanner(input)
	if err != nil {
		return nil, err
	}
	return &Scanner{name: name, scanner: s, lastLine: 1, lastCol: 1}, nil
}

// NextToken returns the next token. Unrecognised input yields an INVALID
// token spanning the unconsumed run; after end of input every call yields
// EOF. Each token's line and column point at its lexeme's first character.
func (s *Scanner) NextToken() bgparsegen.Token {
	tok, err, eof := s.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			failTC := ui.FailTC
			if failTC <= ui.StartTC {
				failTC = ui.StartTC + 1
			}
			s.scanner.TC = failTC
			lexeme := ""
			if ui.StartTC < len(ui.Text) {
				end := failTC
				if end > len(ui.Text) {
					end = len(ui.Text)
				}
				lexeme = string(ui.Text[ui.StartTC:end])
			}
			return bgparsegen.Token{
				Kind:   bgparsegen.Invalid,
				Lexeme: lexeme,
				Line:   ui.StartLine,
				Col:    ui.StartColumn,
				Span:   bgparsegen.Span{uint64(ui.StartTC), uint64(failTC)},
			}
		}
		tracer().Errorf("scanner error: %v", err)
		tok, err, eof = s.scanner.Next()
	}
	if eof {
		return bgparsegen.Token{
			Kind:   bgparsegen.EOF,
			Lexeme: "EOF",
			Line:   s.lastLine,
			Col:    s.lastCol,
		}
	}
	t := tok.(*lexmachine.Token)
	s.lastLine = t.EndLine
	s.lastCol = t.EndColumn + 1
	tracer().Debugf("token %s %q at %d:%d", bgparsegen.TokType(t.Type), t.Value, t.StartLine, t.StartColumn)
	return bgparsegen.Token{
		Kind:   bgparsegen.TokType(t.Type),
		Lexeme: t.Value.(string),
		Line:   t.StartLine,
		Col:    t.StartColumn,
		Span:   bgparsegen.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
	}
}
