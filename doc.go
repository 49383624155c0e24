/*
Package bgparsegen is a parser generator for Boolean BNF (BBNF).

BBNF extends context-free notation with rule-level conjunction ('&') and
negation ('~'): a non-terminal derives a disjunction of rules, each rule is
an intersection of conjuncts, and each conjunct is a possibly negated
sequence of symbols. Given a BBNF grammar the toolchain analyses it,
constructs an LL(1) or LL(k) predictive parsing table, and emits a
standalone recursive-descent parser that validates positive and negative
conjuncts against a common substring. Package structure is as follows:

■ bbnf: scanner and recursive-descent parser for the BBNF notation itself.

■ grammar: the grammar AST (symbols, conjuncts, rules, disjunctions) and
the terminal alphabet.

■ ll: dependency ordering, FIRST/FOLLOW and PFIRST/PFOLLOW computation,
parse-table construction, and table-driven recognizers.

■ codegen: the code emitter producing the generated parser.

The base package contains the token vocabulary shared by the scanner and
the grammar AST.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The bgparsegen authors
*/
package bgparsegen
