package ll

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/exp/slices"

	"github.com/etchogon-s/bgparsegen/grammar"
)

// KParseTable is the LL(k) predictive dispatch table. Every rule carries an
// integer id into a side list; entries map a non-terminal and a stringified
// lookahead sequence to a rule id. Later entries overwrite earlier ones.
type KParseTable struct {
	g       *grammar.Grammar
	k       int
	start   string
	entries map[string]map[string]int
	rules   []*grammar.Rule
	ruleNT  []string
}

// BuildKParseTable constructs the LL(k) parsing table from a finished
// analysis. For each rule the lookahead sequences are the concatenation of
// the rule's PFIRST set with the deriving non-terminal's PFOLLOW set.
func BuildKParseTable(a *LLkAnalysis) *KParseTable {
	t := &KParseTable{
		g:       a.g,
		k:       a.k,
		start:   a.StartSymbol(),
		entries: make(map[string]map[string]int),
	}
	for _, nt := range a.g.NonTerminals() {
		row := make(map[string]int)
		t.entries[nt] = row
		for _, r := range a.g.Disj(nt).Rules {
			id := len(t.rules)
			t.rules = append(t.rules, r)
			t.ruleNT = append(t.ruleNT, nt)
			seqs := Concat(a.RulePFirsts(r), a.PFollow(nt), a.k)
			seqs.Each(func(q Seq) {
				key := q.Key()
				if prev, ok := row[key]; ok && prev != id {
					tracer().Infof("LL(%d) conflict at (%s, %q), rule %d overwrites rule %d", a.k, nt, key, id, prev)
				}
				row[key] = id
			})
		}
	}
	return t
}

// K returns the lookahead depth.
func (t *KParseTable) K() int {
	return t.k
}

// StartSymbol returns the grammar's start symbol.
func (t *KParseTable) StartSymbol() string {
	return t.start
}

// Terminals returns the non-epsilon alphabet terminals.
func (t *KParseTable) Terminals() []string {
	out := []string{}
	for _, s := range t.g.Alphabet.Values() {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Lookup returns the rule id for a non-terminal under a stringified
// lookahead sequence.
func (t *KParseTable) Lookup(nt, key string) (int, bool) {
	row, ok := t.entries[nt]
	if !ok {
		return 0, false
	}
	id, ok := row[key]
	return id, ok
}

// RuleByID resolves a rule id.
func (t *KParseTable) RuleByID(id int) *grammar.Rule {
	return t.rules[id]
}

// RuleCount returns the number of rules in the side list.
func (t *KParseTable) RuleCount() int {
	return len(t.rules)
}

// KEntry is one (lookahead key, rule id) cell of a non-terminal's row.
type KEntry struct {
	Key string
	ID  int
}

// Entries returns a non-terminal's cells in key order.
func (t *KParseTable) Entries(nt string) []KEntry {
	row, ok := t.entries[nt]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(row))
	for key := range row {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	entries := make([]KEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, KEntry{Key: key, ID: row[key]})
	}
	return entries
}

// Expected renders the lookahead keys a non-terminal's row accepts, for use
// in diagnostics.
func (t *KParseTable) Expected(nt string) string {
	parts := []string{}
	for _, e := range t.Entries(nt) {
		if e.Key == "" {
			parts = append(parts, "epsilon")
		} else {
			parts = append(parts, strconv.Quote(e.Key))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " or ")
}

// TableString renders the table in the driver's stable report format.
func (t *KParseTable) TableString() string {
	var b strings.Builder
	for _, nt := range t.g.NonTerminals() {
		for _, e := range t.Entries(nt) {
			b.WriteString("NON-TERMINAL " + nt + ", STRING ")
			if e.Key == "" {
				b.WriteString("epsilon")
			} else {
				b.WriteString(e.Key)
			}
			b.WriteString("\n")
			b.WriteString(fmt.Sprintf("    RULE %d\n", e.ID))
		}
	}
	return b.String()
}

// RulesString renders the rule side list in the driver's stable report
// format.
func (t *KParseTable) RulesString() string {
	var b strings.Builder
	for id, r := range t.rules {
		b.WriteString(fmt.Sprintf("RULE %d\n", id))
		for _, c := range r.Conjuncts {
			b.WriteString(c.ASTString(1))
		}
	}
	return b.String()
}

// WritePretty renders the table as a terminal listing.
func (t *KParseTable) WritePretty(w io.Writer) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"non-terminal", "lookahead", "rule"})
	for _, nt := range t.g.NonTerminals() {
		for _, e := range t.Entries(nt) {
			key := e.Key
			if key == "" {
				key = "epsilon"
			}
			tw.Append([]string{nt, key, fmt.Sprintf("%d", e.ID)})
		}
	}
	tw.Render()
}
