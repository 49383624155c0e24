package grammar

import (
	"sort"

	"github.com/etchogon-s/bgparsegen"
)

// Symbol is one atom within a conjunct: a terminal, a non-terminal reference,
// or epsilon. Kind is one of bgparsegen.NonTerm, bgparsegen.Literal or
// bgparsegen.Epsilon. Line and Col locate the symbol's lexeme in the source.
type Symbol struct {
	Kind bgparsegen.TokType
	Str  string
	Line int
	Col  int
}

// IsNonTerm is true for non-terminal references.
func (s Symbol) IsNonTerm() bool {
	return s.Kind == bgparsegen.NonTerm
}

// IsTerminal is true for terminal literals.
func (s Symbol) IsTerminal() bool {
	return s.Kind == bgparsegen.Literal
}

// IsEpsilon is true for the empty-string symbol.
func (s Symbol) IsEpsilon() bool {
	return s.Kind == bgparsegen.Epsilon
}

// Conjunct is an ordered sequence of symbols. Pos distinguishes positive
// conjuncts from negated ones (written '~' in BBNF). Invariants: a conjunct
// holds at least one symbol, and epsilon symbols only ever appear alone.
type Conjunct struct {
	Pos     bool
	Symbols []Symbol
}

// IsEpsilon reports whether the conjunct denotes the empty string.
func (c *Conjunct) IsEpsilon() bool {
	return len(c.Symbols) == 1 && c.Symbols[0].IsEpsilon()
}

// Rule is the intersection of its conjuncts: a string matches the rule iff
// every positive conjunct accepts it and every negative conjunct rejects it.
type Rule struct {
	Conjuncts []*Conjunct
}

// Disjunction is the union of its rules; it is the right-hand side of one
// non-terminal's derivation.
type Disjunction struct {
	Rules []*Rule
}

// Grammar is a parsed BBNF grammar: a mapping from non-terminal name to
// disjunction plus the alphabet of terminal strings observed during parsing.
type Grammar struct {
	Name     string // usually the source file name
	Disjs    map[string]*Disjunction
	Alphabet *TermSet
}

// NewGrammar creates an empty grammar.
func NewGrammar(name string) *Grammar {
	return &Grammar{
		Name:     name,
		Disjs:    make(map[string]*Disjunction),
		Alphabet: NewTermSet(),
	}
}

// Define binds a non-terminal to a disjunction. A later definition for the
// same name overwrites the earlier one.
func (g *Grammar) Define(nt string, d *Disjunction) {
	if _, ok := g.Disjs[nt]; ok {
		tracer().Infof("non-terminal %q redefined, later definition wins", nt)
	}
	g.Disjs[nt] = d
}

// Disj returns the disjunction derived by a non-terminal, or nil.
func (g *Grammar) Disj(nt string) *Disjunction {
	return g.Disjs[nt]
}

// NonTerminals returns all defined non-terminal names in sorted order.
func (g *Grammar) NonTerminals() []string {
	nts := make([]string, 0, len(g.Disjs))
	for nt := range g.Disjs {
		nts = append(nts, nt)
	}
	sort.Strings(nts)
	return nts
}

// EachNonTerminal calls f for every non-terminal in sorted name order.
func (g *Grammar) EachNonTerminal(f func(nt string, d *Disjunction)) {
	for _, nt := range g.NonTerminals() {
		f(nt, g.Disjs[nt])
	}
}
