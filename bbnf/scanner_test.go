package bbnf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/etchogon-s/bgparsegen"
)

func scanAll(t *testing.T, input string) []bgparsegen.Token {
	scan, err := NewScanner("test", []byte(input))
	if err != nil {
		t.Fatalf("cannot create scanner: %v", err)
	}
	var toks []bgparsegen.Token
	for {
		tok := scan.NextToken()
		toks = append(toks, tok)
		if tok.Kind == bgparsegen.EOF {
			return toks
		}
		if len(toks) > 100 {
			t.Fatalf("scanner does not terminate")
		}
	}
}

func kinds(toks []bgparsegen.Token) []bgparsegen.TokType {
	out := make([]bgparsegen.TokType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanSimpleRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.bbnf")
	defer teardown()
	//
	toks := scanAll(t, `S -> "a" | "b" ;`)
	want := []bgparsegen.TokType{
		bgparsegen.NonTerm, bgparsegen.Derive, bgparsegen.Literal,
		bgparsegen.Disj, bgparsegen.Literal, bgparsegen.Semi, bgparsegen.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), toks)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if toks[0].Lexeme != "S" || toks[2].Lexeme != "a" || toks[4].Lexeme != "b" {
		t.Errorf("unexpected lexemes: %v", toks)
	}
}

func TestScanOperators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.bbnf")
	defer teardown()
	//
	toks := scanAll(t, `A -> B & ~ C ;`)
	want := []bgparsegen.TokType{
		bgparsegen.NonTerm, bgparsegen.Derive, bgparsegen.NonTerm,
		bgparsegen.Conj, bgparsegen.Neg, bgparsegen.NonTerm,
		bgparsegen.Semi, bgparsegen.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestScanEpsilonForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.bbnf")
	defer teardown()
	//
	toks := scanAll(t, `epsilon ""`)
	if toks[0].Kind != bgparsegen.Epsilon || toks[0].Lexeme != "" {
		t.Errorf("keyword epsilon should scan as EPSILON with empty lexeme, got %v", toks[0])
	}
	if toks[1].Kind != bgparsegen.Epsilon || toks[1].Lexeme != "" {
		t.Errorf("empty literal should scan as EPSILON with empty lexeme, got %v", toks[1])
	}
}

func TestScanEpsilonPrefixIdent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.bbnf")
	defer teardown()
	//
	toks := scanAll(t, `epsilonX epsilon_2`)
	if toks[0].Kind != bgparsegen.NonTerm || toks[0].Lexeme != "epsilonX" {
		t.Errorf("identifier starting with 'epsilon' must stay NON_TERM, got %v", toks[0])
	}
	if toks[1].Kind != bgparsegen.NonTerm || toks[1].Lexeme != "epsilon_2" {
		t.Errorf("identifier starting with 'epsilon' must stay NON_TERM, got %v", toks[1])
	}
}

func TestScanLiteralEscape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.bbnf")
	defer teardown()
	//
	toks := scanAll(t, `"say \"hi\""`)
	if toks[0].Kind != bgparsegen.Literal {
		t.Fatalf("expected LITERAL, got %v", toks[0])
	}
	if toks[0].Lexeme != `say "hi"` {
		t.Errorf("escape not resolved, lexeme %q", toks[0].Lexeme)
	}
}

func TestScanBareMinusIsInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.bbnf")
	defer teardown()
	//
	toks := scanAll(t, `- >`)
	if toks[0].Kind != bgparsegen.Invalid {
		t.Errorf("bare '-' should scan as INVALID, got %v", toks[0])
	}
}

func TestScanPositions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bgparsegen.bbnf")
	defer teardown()
	//
	toks := scanAll(t, "S -> A ;\nA -> \"x\" ;\n")
	// token 4 is the 'A' starting line 2
	if toks[4].Line != 2 || toks[4].Col != 1 {
		t.Errorf("expected A at ln 2, col 1; got ln %d, col %d", toks[4].Line, toks[4].Col)
	}
	if toks[6].Line != 2 || toks[6].Col != 6 {
		t.Errorf("expected literal at ln 2, col 6; got ln %d, col %d", toks[6].Line, toks[6].Col)
	}
}
