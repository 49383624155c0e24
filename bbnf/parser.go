package bbnf

import (
	"fmt"

	"github.com/etchogon-s/bgparsegen"
	"github.com/etchogon-s/bgparsegen/grammar"
)

// ParseError is a BBNF syntax diagnostic. Its message format is part of
// the external contract.
type ParseError struct {
	Line     int
	Col      int
	Lexeme   string
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error [ln %d, col %d]: unexpected token '%s' (expecting %s)",
		e.Line, e.Col, e.Lexeme, e.Expected)
}

// ParseString parses a BBNF grammar from a string.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return ParseBytes(name, []byte(content))
}

// ParseBytes parses a BBNF grammar from a byte slice.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	scan, err := NewScanner(name, content)
	if err != nil {
		return nil, err
	}
	return Parse(name, scan)
}

// Parse parses a BBNF grammar from a token stream.
func Parse(name string, scan Tokenizer) (*grammar.Grammar, error) {
	p := &parser{
		scan: scan,
		g:    grammar.NewGrammar(name),
	}
	p.cur = scan.NextToken()
	if err := p.parseGrammar(); err != nil {
		return nil, err
	}
	return p.g, nil
}

type parser struct {
	scan Tokenizer
	cur  bgparsegen.Token
	g    *grammar.Grammar
}

// match advances past the current token if it is of the given kind.
func (p *parser) match(kind bgparsegen.TokType) bool {
	if p.cur.Kind == kind {
		p.cur = p.scan.NextToken()
		return true
	}
	return false
}

// fail builds a diagnostic for the current token.
func (p *parser) fail(expected string) error {
	return &ParseError{
		Line:     p.cur.Line,
		Col:      p.cur.Col,
		Lexeme:   p.cur.Lexeme,
		Expected: expected,
	}
}

// symbol ::= NON_TERM | LITERAL | EPSILON
func (p *parser) parseSymbol() (grammar.Symbol, error) {
	symb := grammar.Symbol{
		Kind: p.cur.Kind,
		Str:  p.cur.Lexeme,
		Line: p.cur.Line,
		Col:  p.cur.Col,
	}
	if !p.match(bgparsegen.NonTerm) && !p.match(bgparsegen.Literal) && !p.match(bgparsegen.Epsilon) {
		return grammar.Symbol{}, p.fail("non-terminal or literal")
	}

	// Record symbol for the alphabet if terminal (epsilon contributes "")
	if symb.Kind != bgparsegen.NonTerm {
		p.g.Alphabet.Add(symb.Str)
	}
	return symb, nil
}

// conjunct ::= [ '~' ] symbol { symbol }
func (p *parser) parseConj() (*grammar.Conjunct, error) {
	pos := true // assume conjunct is positive
	if p.match(bgparsegen.Neg) {
		pos = false
	}

	// Add symbol to sequence until ampersand, pipe or semicolon reached
	var symbols []grammar.Symbol
	for {
		symb, err := p.parseSymbol()
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, symb)
		if p.cur.Kind == bgparsegen.Conj || p.cur.Kind == bgparsegen.Disj || p.cur.Kind == bgparsegen.Semi {
			break
		}
	}

	// In a sequence of more than one symbol, epsilons are redundant
	if len(symbols) > 1 {
		kept := symbols[:0]
		for _, s := range symbols {
			if !s.IsEpsilon() {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			// the whole sequence was spelled with epsilons
			kept = append(kept, symbols[len(symbols)-1:]...)
		}
		symbols = kept
	}
	return &grammar.Conjunct{Pos: pos, Symbols: symbols}, nil
}

// rule ::= conjunct { '&' conjunct }
func (p *parser) parseRule() (*grammar.Rule, error) {
	var conjs []*grammar.Conjunct
	for {
		c, err := p.parseConj()
		if err != nil {
			return nil, err
		}
		conjs = append(conjs, c)
		if !p.match(bgparsegen.Conj) {
			break
		}
	}
	return &grammar.Rule{Conjuncts: conjs}, nil
}

// disjunction tail ::= rule { '|' rule } ';'
func (p *parser) parseDisj() (*grammar.Disjunction, error) {
	var rules []*grammar.Rule
	for {
		r, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
		if !p.match(bgparsegen.Disj) {
			break
		}
	}
	if !p.match(bgparsegen.Semi) {
		return nil, p.fail("';'")
	}
	return &grammar.Disjunction{Rules: rules}, nil
}

// grammar ::= NON_TERM '->' disjunction-tail { NON_TERM '->' disjunction-tail } EOF
// An empty source fails with a diagnostic expecting a non-terminal.
func (p *parser) parseGrammar() error {
	for {
		nt := p.cur.Lexeme
		if !p.match(bgparsegen.NonTerm) {
			return p.fail("non-terminal")
		}
		if !p.match(bgparsegen.Derive) {
			return p.fail("'->'")
		}
		d, err := p.parseDisj()
		if err != nil {
			return err
		}
		p.g.Define(nt, d)
		if p.match(bgparsegen.EOF) {
			return nil
		}
	}
}
