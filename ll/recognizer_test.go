package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func ll1Recognizer(t *testing.T, src string) *Recognizer {
	t.Helper()
	return NewRecognizer(BuildParseTable(Analysis(mustParse(t, src))))
}

func llkRecognizer(t *testing.T, src string, k int) *KRecognizer {
	t.Helper()
	return NewKRecognizer(BuildKParseTable(mustKAnalysis(t, src, k)))
}

func checkAccepts(t *testing.T, rec interface {
	Accept(string) (bool, error)
}, accepted, rejected []string) {
	t.Helper()
	for _, input := range accepted {
		ok, err := rec.Accept(input)
		if !ok {
			t.Errorf("input %q should be accepted, got error %v", input, err)
		}
	}
	for _, input := range rejected {
		if ok, _ := rec.Accept(input); ok {
			t.Errorf("input %q should be rejected", input)
		}
	}
}

func TestRecognizeTerminalDisjunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := ll1Recognizer(t, `S -> "a" | "b" ;`)
	checkAccepts(t, rec, []string{"a", "b"}, []string{"ab", "ba"})
}

func TestRecognizeRightRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := ll1Recognizer(t, `S -> "a" S | epsilon ;`)
	checkAccepts(t, rec, []string{"", "a", "aaa"}, []string{"b"})
}

func TestRecognizeOptionalTail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := ll1Recognizer(t, `S -> "a" B ; B -> "b" | epsilon ;`)
	checkAccepts(t, rec, []string{"a", "ab"}, []string{"b", "abb"})
}

func TestRecognizeConjunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := ll1Recognizer(t, `S -> A & B ; A -> "a" "b" "c" ; B -> "a" "b" "c" ;`)
	checkAccepts(t, rec, []string{"abc"}, []string{"ab", "abcc", ""})
}

func TestRecognizeNegation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := ll1Recognizer(t, `S -> "a" "b" "c" & ~ "a" "b" "d" ;`)
	checkAccepts(t, rec, []string{"abc"}, []string{"abd", "ab"})
}

func TestRecognizeNegationVeto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	// B also derives abc, so the negative conjunct vetoes the rule
	rec := ll1Recognizer(t, `S -> A & ~ B ; A -> "a" "b" "c" ; B -> "a" "b" "c" ;`)
	checkAccepts(t, rec, nil, []string{"abc"})
}

func TestRecognizerErrorFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := ll1Recognizer(t, `S -> "a" "b" ;`)
	ok, err := rec.Accept("a")
	if ok || err == nil {
		t.Fatalf("expected a parser diagnostic")
	}
	want := `Parser error [ln 1, col 2]: unexpected token 'EOF' (expecting "b")`
	if err.Error() != want {
		t.Errorf("diagnostic mismatch:\n  got  %q\n  want %q", err.Error(), want)
	}
}

func TestRecognizerLexError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := ll1Recognizer(t, `S -> "a" | "b" ;`)
	ok, err := rec.Accept("ax")
	if ok || err == nil {
		t.Fatalf("expected a lexer diagnostic")
	}
	want := "Lexer error [ln 1, col 2]: unexpected sequence 'x'"
	if err.Error() != want {
		t.Errorf("diagnostic mismatch:\n  got  %q\n  want %q", err.Error(), want)
	}
}

func TestRecognizeMultiCharTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := ll1Recognizer(t, `S -> "if" S | "x" ;`)
	checkAccepts(t, rec, []string{"x", "ifx", "if if x"}, []string{"if"})
}

func TestKRecognizeTwoTokenLookahead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := llkRecognizer(t, `S -> "a" "a" | "a" "b" ;`, 2)
	checkAccepts(t, rec, []string{"aa", "ab"}, []string{"a", "ba", "aab"})
}

func TestKRecognizeNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.ll")
	defer teardown()
	//
	rec := llkRecognizer(t, `S -> "a" S | epsilon ;`, 2)
	checkAccepts(t, rec, []string{"", "a", "aaaa"}, []string{"b"})
}
