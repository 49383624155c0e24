/*
Package grammar defines the AST for Boolean BNF grammars.

A Grammar maps non-terminal names to disjunctions. A Disjunction is a
non-empty ordered list of rules, interpreted as their union. A Rule is a
non-empty ordered list of conjuncts, interpreted as their intersection: a
string matches the rule iff it is accepted by every positive conjunct and
rejected by every negative one. A Conjunct is an ordered sequence of
symbols plus a polarity flag.

Non-terminal references inside symbols are by name, resolved against the
grammar map. Mutually recursive grammars therefore never form cyclic
ownership: conjuncts are owned by their rule, rules by their disjunction,
and disjunctions by the grammar map.

The AST is immutable after construction; analysis results live in
side-tables owned by package ll.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The bgparsegen authors
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bgparsegen.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("bgparsegen.grammar")
}
