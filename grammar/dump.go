package grammar

import (
	"strings"
)

// The AST dump formats below are part of the driver's stable stdout
// contract; test fixtures compare them verbatim.

func indent(depth int) string {
	return strings.Repeat("    ", depth)
}

func symbolString(s Symbol, depth int) string {
	var b strings.Builder
	b.WriteString(indent(depth))
	if s.IsNonTerm() {
		b.WriteString("NON-")
	}
	b.WriteString("TERMINAL: ")
	if s.Str == "" {
		b.WriteString("epsilon")
	} else {
		b.WriteString(s.Str)
	}
	b.WriteString("\n")
	return b.String()
}

// ASTString renders the conjunct with its polarity and symbol sequence.
func (c *Conjunct) ASTString(depth int) string {
	var b strings.Builder
	b.WriteString(indent(depth))
	if c.Pos {
		b.WriteString("+VE")
	} else {
		b.WriteString("-VE")
	}
	b.WriteString(" CONJUNCT:\n")
	for _, s := range c.Symbols {
		b.WriteString(symbolString(s, depth+1))
	}
	return b.String()
}

// ASTString renders the rule and its conjuncts.
func (r *Rule) ASTString(depth int) string {
	var b strings.Builder
	b.WriteString(indent(depth))
	b.WriteString("RULE:\n")
	for _, c := range r.Conjuncts {
		b.WriteString(c.ASTString(depth + 1))
	}
	return b.String()
}

// ASTString renders the disjunction's rules.
func (d *Disjunction) ASTString(depth int) string {
	var b strings.Builder
	for _, r := range d.Rules {
		b.WriteString(r.ASTString(depth + 1))
	}
	return b.String()
}

// ASTString renders the whole grammar, one non-terminal per block, in
// sorted name order.
func (g *Grammar) ASTString() string {
	var b strings.Builder
	g.EachNonTerminal(func(nt string, d *Disjunction) {
		b.WriteString("NON-TERMINAL " + nt + "\n")
		b.WriteString(d.ASTString(0))
	})
	return b.String()
}
