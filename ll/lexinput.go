package ll

import (
	"fmt"
	"sort"
	"strings"
)

// InputToken is one element of the sentence consumed by a recognizer — and,
// in spirit, by an emitted parser, which carries the same lexer inlined.
type InputToken struct {
	Lex  string
	Line int
	Col  int
}

// Sentence is a tokenised input together with the position just past its
// last token, used to report errors at end of input.
type Sentence struct {
	Tokens  []InputToken
	EndLine int
	EndCol  int
}

// LexError is a sentence-level lexing diagnostic. Its message format is
// part of the external contract.
type LexError struct {
	Line int
	Col  int
	Seq  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Lexer error [ln %d, col %d]: unexpected sequence '%s'", e.Line, e.Col, e.Seq)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Tokenize splits an input string into a sentence of known terminals. At
// every position the longest matching terminal wins; whitespace separates
// tokens and is skipped. Any character run matching no terminal aborts with
// a LexError covering the run.
func Tokenize(input string, terminals []string) (Sentence, error) {
	terms := make([]string, 0, len(terminals))
	for _, t := range terminals {
		if t != "" {
			terms = append(terms, t)
		}
	}
	// longest first, ties lexicographic
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i]) != len(terms[j]) {
			return len(terms[i]) > len(terms[j])
		}
		return terms[i] < terms[j]
	})

	sent := Sentence{}
	line, col := 1, 1
	i := 0
	advance := func(n int) {
		for j := 0; j < n; j++ {
			if input[i+j] == '\n' || input[i+j] == '\r' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += n
	}
	match := func() string {
		for _, t := range terms {
			if strings.HasPrefix(input[i:], t) {
				return t
			}
		}
		return ""
	}
	for i < len(input) {
		if isSpaceByte(input[i]) {
			advance(1)
			continue
		}
		t := match()
		if t == "" {
			startLine, startCol, start := line, col, i
			for i < len(input) && !isSpaceByte(input[i]) && match() == "" {
				advance(1)
			}
			return sent, &LexError{Line: startLine, Col: startCol, Seq: input[start:i]}
		}
		sent.Tokens = append(sent.Tokens, InputToken{Lex: t, Line: line, Col: col})
		advance(len(t))
	}
	sent.EndLine, sent.EndCol = line, col
	return sent, nil
}
