package ll

import (
	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/etchogon-s/bgparsegen/grammar"
)

// conjunctRefs collects the non-terminals referenced by a conjunct.
func conjunctRefs(c *grammar.Conjunct, refs *grammar.TermSet) {
	for _, s := range c.Symbols {
		if s.IsNonTerm() {
			refs.Add(s.Str)
		}
	}
}

// references builds the adjacency list of non-terminal references: each
// non-terminal is mapped to the set of non-terminals used in the rules it
// derives. In LL(1) mode non-terminals appearing only in negative conjuncts
// contribute no references; in LL(k) mode they do.
func references(g *grammar.Grammar, includeNegative bool) map[string]*grammar.TermSet {
	refs := make(map[string]*grammar.TermSet)
	g.EachNonTerminal(func(nt string, d *grammar.Disjunction) {
		set := grammar.NewTermSet()
		for _, r := range d.Rules {
			for _, c := range r.Conjuncts {
				if !c.Pos && !includeNegative {
					continue
				}
				conjunctRefs(c, set)
			}
		}
		refs[nt] = set
	})
	return refs
}

// topologicalOrder sorts non-terminals children-first by depth-first search
// over the reference graph. Roots are visited in sorted name order, so the
// result is deterministic. Referenced but undefined non-terminals appear in
// the ordering as well; cycles simply yield some post-order, which is
// sufficient for fixed-point-free set computation on non-left-recursive
// grammars.
func topologicalOrder(g *grammar.Grammar, refs map[string]*grammar.TermSet) []string {
	visited := make(map[string]bool)
	order := arraylist.New()
	var dfs func(nt string)
	dfs = func(nt string) {
		visited[nt] = true
		if set, ok := refs[nt]; ok {
			set.Each(func(s string) {
				if !visited[s] {
					dfs(s)
				}
			})
		}
		order.Add(nt)
	}
	for _, nt := range g.NonTerminals() {
		if !visited[nt] {
			dfs(nt)
		}
	}
	nts := make([]string, 0, order.Size())
	for _, v := range order.Values() {
		nts = append(nts, v.(string))
	}
	tracer().Debugf("topological order: %v", nts)
	return nts
}

// reversed returns a reversed copy of a non-terminal ordering.
func reversed(order []string) []string {
	rev := make([]string, len(order))
	for i, nt := range order {
		rev[len(order)-1-i] = nt
	}
	return rev
}
