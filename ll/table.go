package ll

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/etchogon-s/bgparsegen/grammar"
	"github.com/etchogon-s/bgparsegen/internal/sparse"
)

// ParseTable is the LL(1) predictive dispatch table: it maps a pair of
// non-terminal and lookahead terminal to the rule to apply. Rows are
// non-terminals, columns are alphabet terminals, and cells hold rule
// serials into a side list. Cells are overwritten on conflict — the grammar
// is assumed LL(1) — with HasConflicts recording that it happened.
type ParseTable struct {
	g            *grammar.Grammar
	start        string
	nts          []string
	terms        []string
	ntIndex      map[string]int
	termIndex    map[string]int
	matrix       *sparse.IntMatrix
	rules        []*grammar.Rule
	ruleNT       []string
	HasConflicts bool
}

// BuildParseTable constructs the LL(1) parsing table from a finished
// analysis. A rule lands in cell (N, t) iff t is in the rule's FIRST set,
// or the rule is nullable and t is in FOLLOW(N).
func BuildParseTable(a *LL1Analysis) *ParseTable {
	t := &ParseTable{
		g:         a.g,
		start:     a.StartSymbol(),
		nts:       a.g.NonTerminals(),
		terms:     a.g.Alphabet.Values(),
		ntIndex:   make(map[string]int),
		termIndex: make(map[string]int),
	}
	for i, nt := range t.nts {
		t.ntIndex[nt] = i
	}
	for j, s := range t.terms {
		t.termIndex[s] = j
	}
	t.matrix = sparse.NewIntMatrix(len(t.nts), len(t.terms), sparse.DefaultNullValue)
	for _, nt := range t.nts {
		i := t.ntIndex[nt]
		for _, r := range t.g.Disj(nt).Rules {
			serial := len(t.rules)
			t.rules = append(t.rules, r)
			t.ruleNT = append(t.ruleNT, nt)
			nullable := a.RuleNullable(r)
			firsts := a.RuleFirsts(r)
			for j, s := range t.terms {
				if firsts.Contains(s) || (nullable && a.Follow(nt).Contains(s)) {
					if prev := t.matrix.Value(i, j); prev != t.matrix.NullValue() && prev != int32(serial) {
						tracer().Infof("LL(1) conflict at (%s, %q), rule %d overwrites rule %d", nt, s, serial, prev)
						t.HasConflicts = true
					}
					t.matrix.Set(i, j, int32(serial))
				}
			}
		}
	}
	return t
}

// StartSymbol returns the grammar's start symbol.
func (t *ParseTable) StartSymbol() string {
	return t.start
}

// NonTerminals returns the table's row labels in order.
func (t *ParseTable) NonTerminals() []string {
	return t.nts
}

// Terminals returns the non-epsilon alphabet terminals, the token
// vocabulary of the generated parser's input.
func (t *ParseTable) Terminals() []string {
	out := []string{}
	for _, s := range t.terms {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Rule returns the rule to apply for a non-terminal under a lookahead
// terminal, if the table holds an entry.
func (t *ParseTable) Rule(nt, lookahead string) (*grammar.Rule, bool) {
	i, ok := t.ntIndex[nt]
	if !ok {
		return nil, false
	}
	j, ok := t.termIndex[lookahead]
	if !ok {
		return nil, false
	}
	v := t.matrix.Value(i, j)
	if v == t.matrix.NullValue() {
		return nil, false
	}
	return t.rules[v], true
}

// Entry is one (lookahead, rule) cell of a non-terminal's table row.
type Entry struct {
	Lookahead string
	Serial    int
	Rule      *grammar.Rule
}

// Entries returns a non-terminal's cells in lookahead order.
func (t *ParseTable) Entries(nt string) []Entry {
	i, ok := t.ntIndex[nt]
	if !ok {
		return nil
	}
	entries := []Entry{}
	for j, s := range t.terms {
		if v := t.matrix.Value(i, j); v != t.matrix.NullValue() {
			entries = append(entries, Entry{Lookahead: s, Serial: int(v), Rule: t.rules[v]})
		}
	}
	return entries
}

// Expected renders the lookahead terminals a non-terminal's row accepts,
// for use in diagnostics.
func (t *ParseTable) Expected(nt string) string {
	parts := []string{}
	for _, e := range t.Entries(nt) {
		if e.Lookahead == "" {
			parts = append(parts, "epsilon")
		} else {
			parts = append(parts, strconv.Quote(e.Lookahead))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " or ")
}

// TableString renders the table in the driver's stable report format.
func (t *ParseTable) TableString() string {
	var b strings.Builder
	for _, nt := range t.nts {
		for _, e := range t.Entries(nt) {
			b.WriteString("NON-TERMINAL " + nt + ", STRING ")
			if e.Lookahead == "" {
				b.WriteString("epsilon")
			} else {
				b.WriteString(e.Lookahead)
			}
			b.WriteString("\n")
			b.WriteString(e.Rule.ASTString(1))
		}
	}
	return b.String()
}

// WriteHTML exports the parsing table as an HTML matrix.
func (t *ParseTable) WriteHTML(w io.Writer) {
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table of size = %d<p>", t.matrix.ValueCount()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, s := range t.terms {
		if s == "" {
			s = "&epsilon;"
		}
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", s))
	}
	io.WriteString(w, "</tr>\n")
	for i, nt := range t.nts {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", nt))
		for j := range t.terms {
			td := "&nbsp;"
			if v := t.matrix.Value(i, j); v != t.matrix.NullValue() {
				td = fmt.Sprintf("%d", v)
			}
			io.WriteString(w, "<td>"+td+"</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// WritePretty renders the table as a terminal matrix.
func (t *ParseTable) WritePretty(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	header := []string{""}
	for _, s := range t.terms {
		if s == "" {
			s = "epsilon"
		}
		header = append(header, s)
	}
	tw.SetHeader(header)
	for i, nt := range t.nts {
		row := []string{nt}
		for j := range t.terms {
			cell := ""
			if v := t.matrix.Value(i, j); v != t.matrix.NullValue() {
				cell = fmt.Sprintf("rule %d", v)
			}
			row = append(row, cell)
		}
		tw.Append(row)
	}
	tw.Render()
}
