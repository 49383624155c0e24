package ll

import (
	"fmt"

	"github.com/etchogon-s/bgparsegen/grammar"
)

// LLkAnalysis holds the results of analysing a grammar for LL(k) parsing:
// PFIRST and PFOLLOW sets over terminal sequences of length ≤ k.
type LLkAnalysis struct {
	g           *grammar.Grammar
	k           int
	refs        map[string]*grammar.TermSet
	order       []string
	pfirst      map[string]*SeqSet
	pfollow     map[string]*SeqSet
	rulePFirsts map[*grammar.Rule]*SeqSet
	sigmaSet    *SeqSet // Σ^≤k, built lazily
}

// KAnalysis analyses a grammar for LL(k) parsing. It fails on k < 1, on
// left-recursive rules, and on rules whose positive conjuncts are
// contradictory.
func KAnalysis(g *grammar.Grammar, k int) (*LLkAnalysis, error) {
	if k < 1 {
		return nil, fmt.Errorf("Error: lookahead depth k must be at least 1")
	}
	g.Alphabet.Add("") // LL(k) convention: epsilon is always part of the alphabet
	a := &LLkAnalysis{
		g:           g,
		k:           k,
		pfirst:      make(map[string]*SeqSet),
		pfollow:     make(map[string]*SeqSet),
		rulePFirsts: make(map[*grammar.Rule]*SeqSet),
	}
	a.refs = references(g, true) // LL(k): negative conjuncts do contribute references
	a.order = topologicalOrder(g, a.refs)
	if err := a.computePFirstSets(); err != nil {
		return nil, err
	}
	a.computePFollowSets()
	return a, nil
}

// Grammar returns the analysed grammar.
func (a *LLkAnalysis) Grammar() *grammar.Grammar {
	return a.g
}

// K returns the lookahead depth.
func (a *LLkAnalysis) K() int {
	return a.k
}

// Order returns the topological ordering of non-terminals, leaves first.
func (a *LLkAnalysis) Order() []string {
	return a.order
}

// Refs returns the non-terminals referenced by nt's rules.
func (a *LLkAnalysis) Refs(nt string) *grammar.TermSet {
	return a.refs[nt]
}

// PFirst returns PFIRST(nt).
func (a *LLkAnalysis) PFirst(nt string) *SeqSet {
	return a.pfirst[nt]
}

// PFollow returns PFOLLOW(nt).
func (a *LLkAnalysis) PFollow(nt string) *SeqSet {
	return a.pfollow[nt]
}

// StartSymbol is the first non-terminal in reverse topological order.
func (a *LLkAnalysis) StartSymbol() string {
	return a.order[len(a.order)-1]
}

// RulePFirsts returns the cached PFIRST set of a rule.
func (a *LLkAnalysis) RulePFirsts(r *grammar.Rule) *SeqSet {
	return a.rulePFirsts[r]
}

// RuleNullable reports whether the rule can derive the empty string, i.e.
// whether its PFIRST set contains the nullable marker.
func (a *LLkAnalysis) RuleNullable(r *grammar.Rule) bool {
	set := a.rulePFirsts[r]
	return set != nil && set.Contains(EpsilonSeq())
}

// sigma returns Σ^≤k: every sequence of non-epsilon alphabet terminals of
// length 1…k, plus the nullable marker. It is the PFIRST of a rule with no
// positive conjuncts and is only materialised when such a rule exists.
func (a *LLkAnalysis) sigma() *SeqSet {
	if a.sigmaSet != nil {
		return a.sigmaSet
	}
	terms := []string{}
	for _, t := range a.g.Alphabet.Values() {
		if t != "" {
			terms = append(terms, t)
		}
	}
	out := NewSeqSet(EpsilonSeq())
	level := []Seq{{}}
	for i := 1; i <= a.k; i++ {
		next := []Seq{}
		for _, q := range level {
			for _, t := range terms {
				ext := append(append(Seq{}, q...), t)
				next = append(next, ext)
				out.Add(ext)
			}
		}
		level = next
	}
	a.sigmaSet = out
	return out
}

func (a *LLkAnalysis) leftRecursionError(nt string) error {
	return fmt.Errorf("Error: grammar contains left recursion in rule for non-terminal %s", nt)
}

func (a *LLkAnalysis) contradictionError(nt string) error {
	return fmt.Errorf("Error: conjuncts in rule for non-terminal %s are contradictory", nt)
}

// --- PFIRST -----------------------------------------------------------------

func (a *LLkAnalysis) computePFirstSets() error {
	for _, nt := range a.order {
		d := a.g.Disj(nt)
		if d == nil { // referenced but never defined
			a.pfirst[nt] = NewSeqSet()
			continue
		}
		firsts := NewSeqSet()
		for _, r := range d.Rules {
			ruleFirsts, err := a.rulePFirst(r, nt)
			if err != nil {
				return err
			}
			firsts.Union(ruleFirsts)
		}
		a.pfirst[nt] = firsts
		tracer().Debugf("PFIRST(%s) =%s", nt, firsts)
	}
	return nil
}

// rulePFirst intersects the PFIRST sets of a rule's positive conjuncts. A
// rule with no positive conjuncts matches everything its negative conjuncts
// leave over, so its PFIRST is the whole bounded alphabet. An empty
// intersection means the positive conjuncts cannot agree on any string.
func (a *LLkAnalysis) rulePFirst(r *grammar.Rule, nt string) (*SeqSet, error) {
	for _, c := range r.Conjuncts {
		if len(c.Symbols) > 0 && c.Symbols[0].IsNonTerm() && c.Symbols[0].Str == nt {
			return nil, a.leftRecursionError(nt)
		}
	}
	var firsts *SeqSet
	for _, c := range r.Conjuncts {
		if !c.Pos {
			continue
		}
		conjFirsts := a.conjPFirst(c, nt)
		if firsts == nil {
			firsts = conjFirsts.Copy()
		} else {
			firsts.Retain(conjFirsts)
		}
	}
	if firsts == nil { // all conjuncts negative
		firsts = a.sigma().Copy()
	}
	if firsts.Size() == 0 {
		return nil, a.contradictionError(nt)
	}
	a.rulePFirsts[r] = firsts
	return firsts, nil
}

// conjPFirst folds the truncating concatenation over a conjunct's symbols.
// A reference to the deriving non-terminal itself cannot consult its own
// (still unfinished) PFIRST set; the accumulator is self-expanded instead.
func (a *LLkAnalysis) conjPFirst(c *grammar.Conjunct, nt string) *SeqSet {
	acc := NewSeqSet(EpsilonSeq())
	for _, sym := range c.Symbols {
		switch {
		case sym.IsEpsilon():
			// identity under concatenation
		case sym.IsTerminal():
			acc = Concat(acc, NewSeqSet(Seq{sym.Str}), a.k)
		case sym.Str == nt:
			acc = selfExpand(acc, a.k)
		default:
			acc = Concat(acc, a.pfirstOf(sym.Str), a.k)
		}
	}
	return acc
}

// pfirstOf returns PFIRST of a non-terminal, or the empty set for
// non-terminals not yet computed (undefined names, or members of a
// reference cycle).
func (a *LLkAnalysis) pfirstOf(nt string) *SeqSet {
	if set, ok := a.pfirst[nt]; ok {
		return set
	}
	return NewSeqSet()
}

// --- PFOLLOW ----------------------------------------------------------------

func (a *LLkAnalysis) computePFollowSets() {
	rev := reversed(a.order)
	for i, nt := range rev {
		if i == 0 { // start symbol
			a.pfollowSet(nt).Add(EpsilonSeq())
		}
		d := a.g.Disj(nt)
		if d == nil {
			continue
		}
		for _, r := range d.Rules {
			for _, c := range r.Conjuncts {
				a.pfollowAddConj(c, nt)
			}
		}
	}
	for _, nt := range a.order { // non-terminals nothing follows get empty sets
		a.pfollowSet(nt)
	}
}

func (a *LLkAnalysis) pfollowSet(nt string) *SeqSet {
	if set, ok := a.pfollow[nt]; ok {
		return set
	}
	set := NewSeqSet()
	a.pfollow[nt] = set
	return set
}

// pfollowAddConj accumulates a partial follow set over each non-terminal's
// suffix within the conjunct. Negative conjuncts are treated structurally
// the same as positive ones: the non-terminals they reference still occupy
// syntactic positions whose context matters.
func (a *LLkAnalysis) pfollowAddConj(c *grammar.Conjunct, nt string) {
	for i, sym := range c.Symbols {
		if !sym.IsNonTerm() {
			continue
		}
		partial := NewSeqSet(EpsilonSeq())
		for j := i + 1; j < len(c.Symbols); j++ {
			next := c.Symbols[j]
			if next.IsTerminal() {
				partial = Concat(partial, NewSeqSet(Seq{next.Str}), a.k)
			} else if next.IsNonTerm() {
				partial = Concat(partial, a.pfirstOf(next.Str), a.k)
			}
		}
		if sym.Str == nt {
			partial = selfExpand(partial, a.k)
		} else {
			partial = Concat(partial, a.pfollowSet(nt), a.k)
		}
		a.pfollowSet(sym.Str).Union(partial)
	}
}
