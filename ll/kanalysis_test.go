package ll

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func mustKAnalysis(t *testing.T, src string, k int) *LLkAnalysis {
	t.Helper()
	a, err := KAnalysis(mustParse(t, src), k)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}
	return a
}

func TestKRejectsBadLookaheadDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	_, err := KAnalysis(mustParse(t, `S -> "a" ;`), 0)
	if err == nil {
		t.Fatalf("k = 0 must be rejected")
	}
}

func TestPFirstDistinguishesTwoTokenLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := mustKAnalysis(t, `S -> "a" "a" | "a" "b" ;`, 2)
	want := NewSeqSet(Seq{"a", "a"}, Seq{"a", "b"})
	if !a.PFirst("S").Equals(want) {
		t.Errorf("PFIRST(S): expected%s, got%s", want, a.PFirst("S"))
	}
	if !a.PFollow("S").Equals(NewSeqSet(EpsilonSeq())) {
		t.Errorf("PFOLLOW(S) of the start symbol must be the marker, got%s", a.PFollow("S"))
	}
}

func TestK1CoincidesWithLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	src := `S -> "a" B | epsilon ; B -> "b" C ; C -> "c" | epsilon ;`
	l1 := Analysis(mustParse(t, src))
	lk := mustKAnalysis(t, src, 1)
	for _, nt := range lk.Order() {
		// PFIRST members at k = 1 are singletons or the marker; their keys
		// must coincide with the LL(1) FIRST terminals
		first := []string{}
		lk.PFirst(nt).Each(func(q Seq) {
			if len(q) != 1 {
				t.Errorf("PFIRST(%s) member %v is not a singleton at k=1", nt, q)
			}
			first = append(first, q.Key())
		})
		if got, want := strings.Join(first, "|"), strings.Join(l1.First(nt).Values(), "|"); got != want {
			t.Errorf("PFIRST(%s) = %q, FIRST(%s) = %q", nt, got, nt, want)
		}
	}
}

func TestSelfRecursiveConjunctExpands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := mustKAnalysis(t, `S -> "a" S | epsilon ;`, 2)
	want := NewSeqSet(EpsilonSeq(), Seq{"a"}, Seq{"a", "a"})
	if !a.PFirst("S").Equals(want) {
		t.Errorf("PFIRST(S): expected%s, got%s", want, a.PFirst("S"))
	}
}

func TestLeftRecursionIsRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	_, err := KAnalysis(mustParse(t, `S -> S "a" | "b" ;`), 2)
	if err == nil {
		t.Fatalf("left recursion must be rejected")
	}
	want := "Error: grammar contains left recursion in rule for non-terminal S"
	if err.Error() != want {
		t.Errorf("diagnostic mismatch:\n  got  %q\n  want %q", err.Error(), want)
	}
}

func TestContradictoryConjunctsAreRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	_, err := KAnalysis(mustParse(t, `S -> "a" & "b" ;`), 1)
	if err == nil {
		t.Fatalf("contradictory positive conjuncts must be rejected")
	}
	want := "Error: conjuncts in rule for non-terminal S are contradictory"
	if err.Error() != want {
		t.Errorf("diagnostic mismatch:\n  got  %q\n  want %q", err.Error(), want)
	}
}

func TestPurelyNegativeRuleGetsBoundedAlphabet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := mustKAnalysis(t, `S -> ~ "a" ;`, 2)
	// Σ^≤2 over the alphabet {a}: marker, a, aa
	want := NewSeqSet(EpsilonSeq(), Seq{"a"}, Seq{"a", "a"})
	if !a.PFirst("S").Equals(want) {
		t.Errorf("PFIRST(S): expected%s, got%s", want, a.PFirst("S"))
	}
}

func TestPFollowPropagatesThroughSuffix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	a := mustKAnalysis(t, `S -> A "z" ; A -> "a" ;`, 2)
	want := NewSeqSet(Seq{"z"})
	if !a.PFollow("A").Equals(want) {
		t.Errorf("PFOLLOW(A): expected%s, got%s", want, a.PFollow("A"))
	}
}
