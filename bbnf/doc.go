/*
Package bbnf lexes and parses the Boolean BNF notation.

The scanner is backed by a lexmachine DFA. It produces tokens of the kinds
defined in the base package; unrecognised input surfaces as INVALID tokens
rather than scanner-level failures, so the parser owns all diagnostics. The
parser is a recursive-descent parser over the token stream and builds the
grammar AST of package grammar:

    grammar      ::= disjunction { disjunction } EOF
    disjunction  ::= NON_TERM '->' rule { '|' rule } ';'
    rule         ::= conjunct { '&' conjunct }
    conjunct     ::= [ '~' ] symbol { symbol }
    symbol       ::= NON_TERM | LITERAL | EPSILON

A source holding no disjunction at all is rejected with a parse error at
EOF; the empty grammar is not accepted.

Every terminal encountered is recorded in the grammar's alphabet. Inside a
conjunct of more than one symbol, epsilon symbols are redundant and are
dropped during parsing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The bgparsegen authors
*/
package bbnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bgparsegen.bbnf'.
func tracer() tracing.Trace {
	return tracing.Select("bgparsegen.bbnf")
}
