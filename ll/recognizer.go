package ll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etchogon-s/bgparsegen/grammar"
)

// ParseRunError is a recognition diagnostic. Its message format matches the
// one an emitted parser prints.
type ParseRunError struct {
	Line     int
	Col      int
	Tok      string
	Expected string
}

func (e *ParseRunError) Error() string {
	return fmt.Sprintf("Parser error [ln %d, col %d]: unexpected token '%s' (expecting %s)",
		e.Line, e.Col, e.Tok, e.Expected)
}

// runner holds the shared parse state of the table-driven recognizers. Its
// conjunct semantics mirror the code an emitted parser runs: every positive
// conjunct of a rule must consume exactly the same substring, and no
// negative conjunct may succeed on it.
type runner struct {
	sent    Sentence
	pos     int
	err     *ParseRunError
	parseNT func(nt string, unwanted bool) bool
}

func (r *runner) reset(sent Sentence) {
	r.sent = sent
	r.pos = 0
	r.err = nil
}

func (r *runner) lookahead() string {
	if r.pos < len(r.sent.Tokens) {
		return r.sent.Tokens[r.pos].Lex
	}
	return ""
}

// fail records the first diagnostic; later failures are echoes of it.
func (r *runner) fail(expected string) {
	if r.err != nil {
		return
	}
	line, col, tok := r.sent.EndLine, r.sent.EndCol, "EOF"
	if r.pos < len(r.sent.Tokens) {
		t := r.sent.Tokens[r.pos]
		line, col, tok = t.Line, t.Col, t.Lex
	}
	r.err = &ParseRunError{Line: line, Col: col, Tok: tok, Expected: expected}
}

func (r *runner) parseTerminal(t string, unwanted bool) bool {
	if r.pos < len(r.sent.Tokens) && r.sent.Tokens[r.pos].Lex == t {
		r.pos++
		return true
	}
	if !unwanted {
		r.fail(strconv.Quote(t))
	}
	return false
}

func (r *runner) parseConjSymbols(c *grammar.Conjunct, unwanted bool) bool {
	for _, sym := range c.Symbols {
		switch {
		case sym.IsEpsilon():
			// matches the empty string, consumes nothing
		case sym.IsTerminal():
			if !r.parseTerminal(sym.Str, unwanted) {
				return false
			}
		default:
			if !r.parseNT(sym.Str, unwanted) {
				return false
			}
		}
	}
	return true
}

// applyRule implements the conjunctive semantics. The first conjunct fixes
// the substring [start,end); every further positive conjunct reparses it
// and must stop exactly at end; every negative conjunct fails the rule if
// it succeeds on exactly that substring.
func (r *runner) applyRule(rule *grammar.Rule, unwanted bool) bool {
	if len(rule.Conjuncts) == 1 && rule.Conjuncts[0].Pos {
		return r.parseConjSymbols(rule.Conjuncts[0], unwanted)
	}
	start := r.pos
	end := r.pos
	for i, c := range rule.Conjuncts {
		if c.Pos {
			if i == 0 {
				if !r.parseConjSymbols(c, unwanted) {
					return false
				}
				end = r.pos
			} else {
				r.pos = start
				if !r.parseConjSymbols(c, unwanted) {
					return false
				}
				if r.pos != end {
					return false
				}
			}
		} else {
			r.pos = start
			matched := r.parseConjSymbols(c, true)
			if matched && r.pos == end {
				return false
			}
		}
	}
	r.pos = end
	return true
}

func (r *runner) accept(start string) (bool, error) {
	ok := r.parseNT(start, false)
	if ok && r.pos == len(r.sent.Tokens) {
		return true, nil
	}
	if ok && r.pos < len(r.sent.Tokens) {
		r.fail("end of input")
	}
	if r.err == nil {
		r.fail("a derivable sentence")
	}
	return false, r.err
}

// --- LL(1) recognizer -------------------------------------------------------

// Recognizer executes the conjunctive predictive parse for an LL(1) table.
// It accepts a string iff the emitted parser for the same grammar would.
type Recognizer struct {
	runner
	table *ParseTable
}

// NewRecognizer creates a recognizer for a built LL(1) table.
func NewRecognizer(t *ParseTable) *Recognizer {
	r := &Recognizer{table: t}
	r.runner.parseNT = r.parseNonTerm
	return r
}

// Accept tokenises the input against the grammar's terminals and runs the
// predictive parse from the start symbol. The whole sentence must be
// consumed.
func (r *Recognizer) Accept(input string) (bool, error) {
	sent, err := Tokenize(input, r.table.Terminals())
	if err != nil {
		return false, err
	}
	r.reset(sent)
	return r.accept(r.table.StartSymbol())
}

func (r *Recognizer) parseNonTerm(nt string, unwanted bool) bool {
	rule, ok := r.table.Rule(nt, r.lookahead())
	if !ok {
		if !unwanted {
			r.fail(r.table.Expected(nt))
		}
		return false
	}
	return r.applyRule(rule, unwanted)
}

// --- LL(k) recognizer -------------------------------------------------------

// KRecognizer executes the conjunctive predictive parse for an LL(k) table.
// Dispatch joins the next j lookahead tokens, longest join first, and
// applies the first table entry whose key equals the join.
type KRecognizer struct {
	runner
	table *KParseTable
}

// NewKRecognizer creates a recognizer for a built LL(k) table.
func NewKRecognizer(t *KParseTable) *KRecognizer {
	r := &KRecognizer{table: t}
	r.runner.parseNT = r.parseNonTerm
	return r
}

// Accept tokenises the input against the grammar's terminals and runs the
// predictive parse from the start symbol.
func (r *KRecognizer) Accept(input string) (bool, error) {
	sent, err := Tokenize(input, r.table.Terminals())
	if err != nil {
		return false, err
	}
	r.reset(sent)
	return r.accept(r.table.StartSymbol())
}

func (r *KRecognizer) lookjoin(j int) string {
	var b strings.Builder
	for x := 0; x < j; x++ {
		b.WriteString(r.sent.Tokens[r.pos+x].Lex)
	}
	return b.String()
}

func (r *KRecognizer) parseNonTerm(nt string, unwanted bool) bool {
	for j := r.table.K(); j >= 0; j-- {
		if j > len(r.sent.Tokens)-r.pos {
			continue
		}
		if id, ok := r.table.Lookup(nt, r.lookjoin(j)); ok {
			return r.applyRule(r.table.RuleByID(id), unwanted)
		}
	}
	if !unwanted {
		r.fail(r.table.Expected(nt))
	}
	return false
}
