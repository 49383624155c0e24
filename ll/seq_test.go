package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSeqKeyAndEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	if !EpsilonSeq().IsEpsilon() {
		t.Errorf("nullable marker must report IsEpsilon")
	}
	if EpsilonSeq().Key() != "" {
		t.Errorf("nullable marker must stringify to the empty key")
	}
	if (Seq{"a", "b"}).Key() != "ab" {
		t.Errorf("sequence keys concatenate their terminals")
	}
}

func TestConcatStripsAndTruncates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	A := NewSeqSet(Seq{"a"}, EpsilonSeq())
	B := NewSeqSet(Seq{"b", "c"})
	got := Concat(A, B, 2)
	want := NewSeqSet(Seq{"a", "b"}, Seq{"b", "c"})
	if !got.Equals(want) {
		t.Errorf("expected%s, got%s", want, got)
	}
}

func TestConcatCollapsesToEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	got := Concat(NewSeqSet(EpsilonSeq()), NewSeqSet(EpsilonSeq()), 3)
	if got.Size() != 1 || !got.Contains(EpsilonSeq()) {
		t.Errorf("epsilon ++ epsilon must collapse back to the marker, got%s", got)
	}
}

func TestSelfExpandUnrollsRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	acc := NewSeqSet(Seq{"a"})
	got := selfExpand(acc, 2)
	// two levels of self-recursion over a 1-terminal prefix: a and aa
	want := NewSeqSet(Seq{"a"}, Seq{"a", "a"})
	if !got.Equals(want) {
		t.Errorf("expected%s, got%s", want, got)
	}
}

func TestSeqSetOrderingIsStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	s := NewSeqSet(Seq{"b"}, Seq{"a", "b"}, Seq{"a"}, EpsilonSeq())
	vals := s.Values()
	if len(vals) != 4 {
		t.Fatalf("expected 4 members, got %d", len(vals))
	}
	if vals[0].Key() != "" || vals[1].Key() != "a" || vals[2].Key() != "ab" || vals[3].Key() != "b" {
		t.Errorf("unexpected iteration order: %v", vals)
	}
}
