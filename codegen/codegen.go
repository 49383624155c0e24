package codegen

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/cnf/structhash"

	"github.com/etchogon-s/bgparsegen/grammar"
	"github.com/etchogon-s/bgparsegen/ll"
)

// fingerprintable is the stable projection of a grammar that goes into the
// emitted header's provenance line.
type fingerprintable struct {
	Name     string
	AST      string
	Alphabet []string
}

func fingerprint(g *grammar.Grammar) string {
	fp, err := structhash.Hash(fingerprintable{
		Name:     g.Name,
		AST:      g.ASTString(),
		Alphabet: g.Alphabet.Values(),
	}, 1)
	if err != nil {
		tracer().Errorf("cannot fingerprint grammar: %v", err)
		return "unknown"
	}
	return fp
}

// lexTerminals orders the known terminals for the emitted lexer: longest
// first, so that longest-match wins, ties resolved lexicographically.
func lexTerminals(terms []string) []string {
	out := append([]string{}, terms...)
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func emitHeader(b *bytes.Buffer, g *grammar.Grammar) {
	fmt.Fprintf(b, "// Code generated by bgparsegen from grammar %q. DO NOT EDIT.\n", g.Name)
	fmt.Fprintf(b, "// grammar fingerprint: %s\n", fingerprint(g))
	b.WriteString("\npackage main\n\n")
	b.WriteString("import (\n\t\"fmt\"\n\t\"os\"\n\t\"strings\"\n)\n")
}

// emitRuntime writes the token type, the parse state, and the sentence
// lexer shared by both modes.
func emitRuntime(b *bytes.Buffer, terms []string) {
	b.WriteString(`
type tok struct {
	lex  string
	line int
	col  int
}

var (
	sentence []tok
	pos      int
	failMsg  string
	endLine  = 1
	endCol   = 1
)
`)
	b.WriteString("\nvar terminals = []string{")
	for _, t := range lexTerminals(terms) {
		fmt.Fprintf(b, "\n\t%q,", t)
	}
	if len(terms) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	b.WriteString(`
func parseFail(expected string) {
	if failMsg != "" {
		return
	}
	line, col, lex := endLine, endCol, "EOF"
	if pos < len(sentence) {
		line, col, lex = sentence[pos].line, sentence[pos].col, sentence[pos].lex
	}
	failMsg = fmt.Sprintf("Parser error [ln %d, col %d]: unexpected token '%s' (expecting %s)", line, col, lex, expected)
}

func lexFail(line, col int, seq string) {
	fmt.Printf("Lexer error [ln %d, col %d]: unexpected sequence '%s'\n", line, col, seq)
	os.Exit(1)
}

func readSentence(data []byte) {
	input := string(data)
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
	isSpace := func(c byte) bool {
		return c == ' ' || c == '\t' || c == '\n' || c == '\r'
	}
	match := func() string {
		for _, t := range terminals {
			if strings.HasPrefix(input[i:], t) {
				return t
			}
		}
		return ""
	}
	for i < len(input) {
		if isSpace(input[i]) {
			advance(1)
			continue
		}
		t := match()
		if t == "" {
			startLine, startCol, start := line, col, i
			for i < len(input) && !isSpace(input[i]) && match() == "" {
				advance(1)
			}
			lexFail(startLine, startCol, input[start:i])
		}
		sentence = append(sentence, tok{lex: t, line: line, col: col})
		advance(len(t))
	}
	endLine, endCol = line, col
}
`)
}

func emitLookahead(b *bytes.Buffer) {
	b.WriteString(`
func lookahead() string {
	if pos < len(sentence) {
		return sentence[pos].lex
	}
	return ""
}
`)
}

func emitLookjoin(b *bytes.Buffer) {
	b.WriteString(`
func lookjoin(j int) string {
	s := ""
	for x := 0; x < j; x++ {
		s += sentence[pos+x].lex
	}
	return s
}
`)
}

// emitTerminals writes one numbered parsing function per alphabet terminal.
func emitTerminals(b *bytes.Buffer, terms []string) map[string]int {
	termNos := make(map[string]int)
	for i, t := range terms {
		termNos[t] = i
		fmt.Fprintf(b, `
func terminal%d(unwanted bool) bool {
	if pos < len(sentence) && sentence[pos].lex == %q {
		pos++
		return true
	}
	if !unwanted {
		parseFail(%q)
	}
	return false
}
`, i, t, strconv.Quote(t))
	}
	return termNos
}

// seqExpr renders a conjunct's symbol sequence as a conjunction of parsing
// calls. Epsilon symbols contribute nothing; a fully epsilon sequence
// renders empty.
func seqExpr(c *grammar.Conjunct, termNos, ntNos map[string]int, arg string) string {
	expr := ""
	for _, sym := range c.Symbols {
		var call string
		switch {
		case sym.IsEpsilon():
			continue
		case sym.IsTerminal():
			call = fmt.Sprintf("terminal%d(%s)", termNos[sym.Str], arg)
		default:
			call = fmt.Sprintf("nonTerminal%d(%s)", ntNos[sym.Str], arg)
		}
		if expr != "" {
			expr += " && "
		}
		expr += call
	}
	return expr
}

// emitRuleBody writes the conjunctive parse for one rule, at two tabs of
// indentation. The caller supplies the surrounding dispatch branch.
func emitRuleBody(b *bytes.Buffer, r *grammar.Rule, termNos, ntNos map[string]int) {
	if len(r.Conjuncts) == 1 && r.Conjuncts[0].Pos {
		if expr := seqExpr(r.Conjuncts[0], termNos, ntNos, "unwanted"); expr != "" {
			fmt.Fprintf(b, "\t\tif !(%s) {\n\t\t\treturn false\n\t\t}\n", expr)
		}
		return
	}
	b.WriteString("\t\tstart := pos\n")
	if !r.Conjuncts[0].Pos {
		// no leading positive conjunct fixes the substring: it is empty
		b.WriteString("\t\tend := pos\n")
	}
	for i, c := range r.Conjuncts {
		if c.Pos {
			if i == 0 {
				if expr := seqExpr(c, termNos, ntNos, "unwanted"); expr != "" {
					fmt.Fprintf(b, "\t\tif !(%s) {\n\t\t\treturn false\n\t\t}\n", expr)
				}
				b.WriteString("\t\tend := pos\n")
			} else {
				b.WriteString("\t\tpos = start\n")
				if expr := seqExpr(c, termNos, ntNos, "unwanted"); expr != "" {
					fmt.Fprintf(b, "\t\tif !(%s) {\n\t\t\treturn false\n\t\t}\n", expr)
				}
				b.WriteString("\t\tif pos != end {\n\t\t\treturn false\n\t\t}\n")
			}
		} else {
			expr := seqExpr(c, termNos, ntNos, "true")
			if expr == "" {
				expr = "true"
			}
			b.WriteString("\t\tpos = start\n")
			fmt.Fprintf(b, "\t\tneg%d := %s\n", i, expr)
			fmt.Fprintf(b, "\t\tif neg%d && pos == end {\n\t\t\treturn false\n\t\t}\n", i)
		}
	}
	if !r.Conjuncts[len(r.Conjuncts)-1].Pos {
		b.WriteString("\t\tpos = end\n")
	}
}

func emitMain(b *bytes.Buffer, startNo int) {
	fmt.Fprintf(b, `
func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: ./parser <input file>")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Println("Error opening file")
		os.Exit(1)
	}
	readSentence(data)
	if nonTerminal%d(false) && pos == len(sentence) {
		fmt.Println("Parsing successful")
		return
	}
	if pos < len(sentence) {
		parseFail("end of input")
	}
	if failMsg != "" {
		fmt.Println(failMsg)
	}
	fmt.Println("Parsing failed")
	os.Exit(1)
}
`, startNo)
}

// --- LL(1) emission ---------------------------------------------------------

// EmitLL1 writes a standalone LL(1) parser for an analysed grammar. The
// non-terminal functions are numbered in topological order, so the start
// symbol owns the highest number and main calls it.
func EmitLL1(w io.Writer, a *ll.LL1Analysis, t *ll.ParseTable) error {
	b := &bytes.Buffer{}
	emitHeader(b, a.Grammar())
	emitRuntime(b, t.Terminals())
	emitLookahead(b)
	termNos := emitTerminals(b, t.Terminals())

	order := a.Order()
	ntNos := make(map[string]int)
	for i, nt := range order {
		ntNos[nt] = i
	}
	for i, nt := range order {
		fmt.Fprintf(b, "\nfunc nonTerminal%d(unwanted bool) bool {\n", i)
		for _, e := range t.Entries(nt) {
			fmt.Fprintf(b, "\tif lookahead() == %q {\n", e.Lookahead)
			emitRuleBody(b, e.Rule, termNos, ntNos)
			b.WriteString("\t\treturn true\n\t}\n")
		}
		b.WriteString("\tif !unwanted {\n")
		fmt.Fprintf(b, "\t\tparseFail(%q)\n", t.Expected(nt))
		b.WriteString("\t}\n\treturn false\n}\n")
	}
	emitMain(b, len(order)-1)
	tracer().Infof("emitted LL(1) parser, %d bytes", b.Len())
	_, err := w.Write(b.Bytes())
	return err
}

// --- LL(k) emission ---------------------------------------------------------

// EmitLLk writes a standalone LL(k) parser. Each non-terminal's table row
// is emitted beside its function as a package-level map ktable<i> from
// joined lookahead sequences to rule ids; the function dispatches longest
// join first.
func EmitLLk(w io.Writer, a *ll.LLkAnalysis, t *ll.KParseTable) error {
	b := &bytes.Buffer{}
	emitHeader(b, a.Grammar())
	emitRuntime(b, t.Terminals())
	emitLookjoin(b)
	termNos := emitTerminals(b, t.Terminals())

	order := a.Order()
	ntNos := make(map[string]int)
	for i, nt := range order {
		ntNos[nt] = i
	}
	for i, nt := range order {
		entries := t.Entries(nt)
		fmt.Fprintf(b, "\nvar ktable%d = map[string]int{", i)
		for _, e := range entries {
			fmt.Fprintf(b, "\n\t%q: %d,", e.Key, e.ID)
		}
		if len(entries) > 0 {
			b.WriteString("\n")
		}
		b.WriteString("}\n")

		fmt.Fprintf(b, "\nfunc nonTerminal%d(unwanted bool) bool {\n", i)
		fmt.Fprintf(b, "\tr := -1\n\tfor j := %d; j >= 0; j-- {\n", t.K())
		b.WriteString("\t\tif j > len(sentence)-pos {\n\t\t\tcontinue\n\t\t}\n")
		fmt.Fprintf(b, "\t\tif id, ok := ktable%d[lookjoin(j)]; ok {\n\t\t\tr = id\n\t\t\tbreak\n\t\t}\n\t}\n", i)
		b.WriteString("\tswitch r {\n")
		emitted := map[int]bool{}
		for _, e := range entries {
			if emitted[e.ID] {
				continue
			}
			emitted[e.ID] = true
			fmt.Fprintf(b, "\tcase %d:\n", e.ID)
			// rule bodies reuse the two-tab emitter inside the case arm
			emitRuleBody(b, t.RuleByID(e.ID), termNos, ntNos)
			b.WriteString("\t\treturn true\n")
		}
		b.WriteString("\t}\n")
		b.WriteString("\tif !unwanted {\n")
		fmt.Fprintf(b, "\t\tparseFail(%q)\n", t.Expected(nt))
		b.WriteString("\t}\n\treturn false\n}\n")
	}
	emitMain(b, len(order)-1)
	tracer().Infof("emitted LL(%d) parser, %d bytes", t.K(), b.Len())
	_, err := w.Write(b.Bytes())
	return err
}
