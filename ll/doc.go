/*
Package ll implements predictive-parsing analysis for BBNF grammars.

Two analysis variants exist as modes of the same pipeline:

■ LL(1): Analysis computes classical single-terminal FIRST and FOLLOW sets
over the Boolean rule algebra. Negative conjuncts do not constrain FIRST
(they contribute the whole alphabet to the rule intersection).

■ LL(k): KAnalysis computes PFIRST and PFOLLOW sets whose members are
terminal sequences of length ≤ k, folded together with a truncating
concatenation. Self-recursive conjuncts are approximated by a closed-form
k-fold expansion instead of a fixed point; left-recursive rules and rules
with contradictory positive conjuncts are rejected.

Both modes process non-terminals in topological order of their reference
graph for FIRST, and in reverse topological order for FOLLOW. Analysis
results live in the analysis value and in side-tables keyed by AST node,
never on the AST itself, so analysing the same grammar twice yields
identical results.

BuildParseTable and BuildKParseTable turn a finished analysis into the
predictive dispatch tables, and Recognizer/KRecognizer execute the
conjunctive predictive parse directly from those tables.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The bgparsegen authors
*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bgparsegen.ll'.
func tracer() tracing.Trace {
	return tracing.Select("bgparsegen.ll")
}
