package ll

import (
	"github.com/etchogon-s/bgparsegen/grammar"
)

// LL1Analysis holds the results of analysing a grammar for LL(1) parsing:
// the reference graph, the topological ordering of non-terminals, and the
// FIRST and FOLLOW sets. Per-rule FIRST sets and per-conjunct nullability
// live in side-tables keyed by AST node; the AST itself stays untouched.
type LL1Analysis struct {
	g            *grammar.Grammar
	refs         map[string]*grammar.TermSet
	order        []string // topological, leaves first
	first        map[string]*grammar.TermSet
	follow       map[string]*grammar.TermSet
	ruleFirsts   map[*grammar.Rule]*grammar.TermSet
	conjNullable map[*grammar.Conjunct]bool
	ruleNullable map[*grammar.Rule]bool
}

// Analysis analyses a grammar for LL(1) parsing. It never fails: left
// recursion and table conflicts are tolerated in this mode (conflicting
// table cells are overwritten by later rules, see BuildParseTable).
func Analysis(g *grammar.Grammar) *LL1Analysis {
	a := &LL1Analysis{
		g:            g,
		first:        make(map[string]*grammar.TermSet),
		follow:       make(map[string]*grammar.TermSet),
		ruleFirsts:   make(map[*grammar.Rule]*grammar.TermSet),
		conjNullable: make(map[*grammar.Conjunct]bool),
		ruleNullable: make(map[*grammar.Rule]bool),
	}
	a.refs = references(g, false)
	a.order = topologicalOrder(g, a.refs)
	a.computeFirstSets()
	a.computeFollowSets()
	return a
}

// Grammar returns the analysed grammar.
func (a *LL1Analysis) Grammar() *grammar.Grammar {
	return a.g
}

// Order returns the topological ordering of non-terminals, leaves first.
func (a *LL1Analysis) Order() []string {
	return a.order
}

// Refs returns the non-terminals referenced by nt's rules.
func (a *LL1Analysis) Refs(nt string) *grammar.TermSet {
	return a.refs[nt]
}

// First returns FIRST(nt). The empty string is a member iff nt is nullable.
func (a *LL1Analysis) First(nt string) *grammar.TermSet {
	return a.first[nt]
}

// Follow returns FOLLOW(nt).
func (a *LL1Analysis) Follow(nt string) *grammar.TermSet {
	return a.follow[nt]
}

// StartSymbol is the first non-terminal in reverse topological order, i.e.
// the non-terminal no other non-terminal transitively depends on.
func (a *LL1Analysis) StartSymbol() string {
	return a.order[len(a.order)-1]
}

// RuleFirsts returns the cached FIRST set of a rule.
func (a *LL1Analysis) RuleFirsts(r *grammar.Rule) *grammar.TermSet {
	return a.ruleFirsts[r]
}

// RuleNullable reports whether every conjunct of the rule is nullable.
func (a *LL1Analysis) RuleNullable(r *grammar.Rule) bool {
	if v, ok := a.ruleNullable[r]; ok {
		return v
	}
	nullable := true
	for _, c := range r.Conjuncts {
		if !a.conjNullable[c] {
			nullable = false
			break
		}
	}
	a.ruleNullable[r] = nullable
	return nullable
}

// --- FIRST ------------------------------------------------------------------

func (a *LL1Analysis) computeFirstSets() {
	for _, nt := range a.order {
		d := a.g.Disj(nt)
		if d == nil { // referenced but never defined
			a.first[nt] = grammar.NewTermSet()
			continue
		}
		firsts := grammar.NewTermSet()
		for _, r := range d.Rules {
			firsts.Union(a.ruleFirst(r))
		}
		a.first[nt] = firsts
		tracer().Debugf("FIRST(%s) =%s", nt, firsts)
	}
}

// ruleFirst computes the FIRST set of a rule: the intersection of its
// conjuncts' FIRST sets, starting from the whole alphabet. Negative
// conjuncts contribute the whole alphabet and therefore do not constrain
// the intersection.
func (a *LL1Analysis) ruleFirst(r *grammar.Rule) *grammar.TermSet {
	firsts := a.g.Alphabet.Copy()
	for _, c := range r.Conjuncts {
		firsts.Retain(a.conjFirst(c))
	}
	a.ruleFirsts[r] = firsts
	return firsts
}

// conjFirst computes the FIRST set of a conjunct left-to-right, and records
// the conjunct's nullability on the way.
func (a *LL1Analysis) conjFirst(c *grammar.Conjunct) *grammar.TermSet {
	if !c.Pos {
		a.conjNullable[c] = true
		return a.g.Alphabet
	}
	firsts := grammar.NewTermSet()
	for _, sym := range c.Symbols {
		switch {
		case sym.IsEpsilon():
			// epsilon only ever stands alone in a conjunct
			firsts.Add("")
			a.conjNullable[c] = true
			return firsts
		case sym.IsTerminal():
			firsts.Add(sym.Str)
			a.conjNullable[c] = false
			return firsts
		default:
			symFirsts := a.first[sym.Str]
			firsts.Union(symFirsts)
			if symFirsts == nil || !symFirsts.Contains("") {
				a.conjNullable[c] = false
				return firsts
			}
		}
	}
	// every symbol in the conjunct is nullable
	a.conjNullable[c] = true
	return firsts
}

// --- FOLLOW -----------------------------------------------------------------

func (a *LL1Analysis) computeFollowSets() {
	rev := reversed(a.order)
	for i, nt := range rev {
		if i == 0 { // start symbol
			a.followSet(nt).Add("")
		}
		d := a.g.Disj(nt)
		if d == nil {
			continue
		}
		for _, r := range d.Rules {
			for _, c := range r.Conjuncts {
				a.followAddConj(c, nt)
			}
		}
	}
	for _, nt := range a.order { // non-terminals nothing follows get empty sets
		a.followSet(nt)
	}
}

func (a *LL1Analysis) followSet(nt string) *grammar.TermSet {
	if set, ok := a.follow[nt]; ok {
		return set
	}
	set := grammar.NewTermSet()
	a.follow[nt] = set
	return set
}

// followAddConj scans a conjunct for non-terminals and extends their FOLLOW
// sets from the symbols to their right. If everything to the right is
// nullable, the deriving non-terminal's FOLLOW set carries over — except
// into the deriving non-terminal itself.
func (a *LL1Analysis) followAddConj(c *grammar.Conjunct, nt string) {
	for i, sym := range c.Symbols {
		if !sym.IsNonTerm() {
			continue
		}
		cur := a.followSet(sym.Str)
		nonNullableFound := false
		for j := i + 1; j < len(c.Symbols) && !nonNullableFound; j++ {
			next := c.Symbols[j]
			if next.IsTerminal() {
				cur.Add(next.Str)
				nonNullableFound = true
			} else if next.IsNonTerm() {
				nextFirsts := a.first[next.Str]
				cur.Union(nextFirsts)
				if nextFirsts == nil || !nextFirsts.Contains("") {
					nonNullableFound = true
				}
			}
		}
		if !nonNullableFound && nt != sym.Str {
			cur.Union(a.followSet(nt))
		}
	}
}
