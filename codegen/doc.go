/*
Package codegen emits standalone recursive-descent parsers.

The emitted artefact is a self-contained Go main package. It embeds the
grammar's terminal alphabet, lexes its input by longest-match over the
known terminals, and carries one parsing function per terminal and per
non-terminal. Non-terminal functions dispatch on lookahead — a single token
lexeme in LL(1) mode, joined token sequences in LL(k) mode — and implement
the conjunctive rule semantics: every positive conjunct of a rule must
consume exactly the same substring, and no negative conjunct may succeed on
it.

Output is deterministic and textually stable for a given grammar, so test
fixtures can compare it byte for byte; the header carries a structhash
fingerprint of the grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The bgparsegen authors
*/
package codegen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bgparsegen.codegen'.
func tracer() tracing.Trace {
	return tracing.Select("bgparsegen.codegen")
}
