package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/etchogon-s/bgparsegen/bbnf"
	"github.com/etchogon-s/bgparsegen/grammar"
)

func mustParse(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, err := bbnf.ParseString("test", src)
	if err != nil {
		t.Fatalf("cannot parse test grammar: %v", err)
	}
	return g
}

func wantSet(t *testing.T, label string, got *grammar.TermSet, want ...string) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s: set is nil", label)
	}
	if !got.Equals(grammar.NewTermSet(want...)) {
		t.Errorf("%s: expected%s, got%s", label, grammar.NewTermSet(want...), got)
	}
}

func TestFirstOfTerminalDisjunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := Analysis(mustParse(t, `S -> "a" | "b" ;`))
	wantSet(t, "FIRST(S)", a.First("S"), "a", "b")
	wantSet(t, "FOLLOW(S)", a.Follow("S"), "")
	if a.StartSymbol() != "S" {
		t.Errorf("expected start symbol S, got %s", a.StartSymbol())
	}
}

func TestFirstOfRightRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := Analysis(mustParse(t, `S -> "a" S | epsilon ;`))
	wantSet(t, "FIRST(S)", a.First("S"), "a", "")
	wantSet(t, "FOLLOW(S)", a.Follow("S"), "")
	rules := a.Grammar().Disj("S").Rules
	if a.RuleNullable(rules[0]) {
		t.Errorf("rule 'a' S must not be nullable")
	}
	if !a.RuleNullable(rules[1]) {
		t.Errorf("epsilon rule must be nullable")
	}
}

func TestFirstAndFollowAcrossNonTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := Analysis(mustParse(t, `S -> "a" B ; B -> "b" | epsilon ;`))
	wantSet(t, "FIRST(B)", a.First("B"), "b", "")
	wantSet(t, "FIRST(S)", a.First("S"), "a")
	wantSet(t, "FOLLOW(B)", a.Follow("B"), "")
	wantSet(t, "FOLLOW(S)", a.Follow("S"), "")
	if a.StartSymbol() != "S" {
		t.Errorf("expected start symbol S, got %s", a.StartSymbol())
	}
}

func TestFollowThroughNullableSuffix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := Analysis(mustParse(t, `S -> A B "z" ; A -> "a" ; B -> "b" | epsilon ;`))
	// B is nullable, so FOLLOW(A) sees both FIRST(B) and the terminal z
	wantSet(t, "FOLLOW(A)", a.Follow("A"), "b", "", "z")
	wantSet(t, "FOLLOW(B)", a.Follow("B"), "z")
}

func TestNegativeConjunctDoesNotConstrainFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := Analysis(mustParse(t, `S -> "a" "b" "c" & ~ "a" "b" "d" ;`))
	wantSet(t, "FIRST(S)", a.First("S"), "a")
}

func TestConjunctionIntersectsFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := Analysis(mustParse(t, `S -> A & B ; A -> "a" "b" "c" ; B -> "a" "b" "c" ;`))
	wantSet(t, "FIRST(A)", a.First("A"), "a")
	wantSet(t, "FIRST(S)", a.First("S"), "a")
	if a.StartSymbol() != "S" {
		t.Errorf("expected start symbol S, got %s", a.StartSymbol())
	}
}

func TestTopologicalOrderVisitsLeavesFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := Analysis(mustParse(t, `S -> A B ; A -> "a" ; B -> A "b" ;`))
	order := a.Order()
	pos := map[string]int{}
	for i, nt := range order {
		if _, seen := pos[nt]; seen {
			t.Fatalf("non-terminal %s ordered twice", nt)
		}
		pos[nt] = i
	}
	if len(order) != 3 {
		t.Fatalf("expected 3 ordered non-terminals, got %v", order)
	}
	if !(pos["A"] < pos["B"] && pos["B"] < pos["S"]) {
		t.Errorf("callees must come before callers, got %v", order)
	}
}

func TestFirstSubsetOfAlphabet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	g := mustParse(t, `S -> "a" B | epsilon ; B -> "b" C ; C -> "c" | epsilon ;`)
	a := Analysis(g)
	allowed := g.Alphabet.Copy()
	allowed.Add("")
	for _, nt := range a.Order() {
		a.First(nt).Each(func(s string) {
			if !allowed.Contains(s) {
				t.Errorf("FIRST(%s) member %q outside alphabet", nt, s)
			}
		})
	}
}

func TestAnalysisIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	g := mustParse(t, `S -> "a" B ; B -> "b" | epsilon ;`)
	a1 := Analysis(g)
	a2 := Analysis(g)
	for _, nt := range a1.Order() {
		if !a1.First(nt).Equals(a2.First(nt)) {
			t.Errorf("FIRST(%s) differs between runs", nt)
		}
		if !a1.Follow(nt).Equals(a2.Follow(nt)) {
			t.Errorf("FOLLOW(%s) differs between runs", nt)
		}
	}
}
