package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"

	"github.com/etchogon-s/bgparsegen/bbnf"
	"github.com/etchogon-s/bgparsegen/codegen"
	"github.com/etchogon-s/bgparsegen/grammar"
	"github.com/etchogon-s/bgparsegen/ll"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2025 The bgparsegen authors
*/

// tracer traces with key 'bgparsegen.cli'.
func tracer() tracing.Trace {
	return tracing.Select("bgparsegen.cli")
}

var traceKeys = []string{
	"bgparsegen.cli",
	"bgparsegen.bbnf",
	"bgparsegen.grammar",
	"bgparsegen.ll",
	"bgparsegen.codegen",
}

func traceLevel(name string) tracing.TraceLevel {
	switch name {
	case "Debug":
		return tracing.LevelDebug
	case "Info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// fatal reports a diagnostic once and terminates. All errors of the
// pipeline end up here; there is no recovery and no multi-error collection.
func fatal(msg string) {
	fmt.Println(msg)
	os.Exit(1)
}

func main() {
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	outName := flag.String("o", "rd_parser.go", "output file for the generated parser")
	htmlName := flag.String("html", "", "write the LL(1) parsing table as HTML to this file")
	pretty := flag.Bool("pretty", false, "additionally render the parsing table as a terminal matrix")
	debug := flag.Bool("debug", false, "dump the raw grammar AST to stderr")
	repl := flag.Bool("repl", false, "recognise sentences interactively instead of emitting a parser")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: bgparsegen [flags] <grammar-file> <algo-or-k>")
		flag.PrintDefaults()
	}
	flag.Parse()
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(traceLevel(*tlevel))
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fatal("Error opening file")
	}
	g, err := bbnf.ParseBytes(flag.Arg(0), data)
	if err != nil {
		fatal(err.Error())
	}
	if *debug {
		pp.Fprintln(os.Stderr, g)
	}

	opts := driverOpts{
		out:    *outName,
		html:   *htmlName,
		pretty: *pretty,
		repl:   *repl,
	}
	// 'll1' (or any non-numeric mode argument, as in the historical driver)
	// selects LL(1); a number selects LL(k).
	if k, convErr := strconv.Atoi(flag.Arg(1)); convErr == nil {
		runLLk(g, k, opts)
	} else {
		runLL1(g, opts)
	}
}

type driverOpts struct {
	out    string
	html   string
	pretty bool
	repl   bool
}

// reportCommon prints the mode-independent sections of the analysis report.
func reportCommon(g *grammar.Grammar, refs func(string) *grammar.TermSet, order []string) {
	fmt.Printf("Alphabet:%s\n", g.Alphabet)
	fmt.Printf("\nGrammar AST\n%s", g.ASTString())
	fmt.Printf("\nReferenced Non-Terminals\n")
	for _, nt := range g.NonTerminals() {
		fmt.Printf("%s:%s\n", nt, refs(nt))
	}
	fmt.Printf("\nOrder of Computing FIRST Sets:")
	for _, nt := range order {
		fmt.Printf(" %s", nt)
	}
	fmt.Printf("\n")
}

func runLL1(g *grammar.Grammar, opts driverOpts) {
	a := ll.Analysis(g)
	reportCommon(g, a.Refs, a.Order())
	fmt.Printf("\nFIRST Sets\n")
	for _, nt := range a.Order() {
		fmt.Printf("%s:%s\n", nt, a.First(nt))
	}
	fmt.Printf("\nFOLLOW Sets\n")
	order := a.Order()
	for i := len(order) - 1; i >= 0; i-- {
		fmt.Printf("%s:%s\n", order[i], a.Follow(order[i]))
	}

	t := ll.BuildParseTable(a)
	fmt.Printf("\nParsing Table\n%s", t.TableString())
	if t.HasConflicts {
		tracer().Infof("grammar is not LL(1), conflicting table cells were overwritten")
	}
	if opts.pretty {
		pterm.Info.Println("parsing table matrix")
		t.WritePretty(os.Stdout)
	}
	if opts.html != "" {
		f, err := os.Create(opts.html)
		if err != nil {
			fatal("Error opening file")
		}
		t.WriteHTML(f)
		f.Close()
	}
	if opts.repl {
		runREPL(ll.NewRecognizer(t))
		return
	}
	emit(opts.out, func(f *os.File) error { return codegen.EmitLL1(f, a, t) })
}

func runLLk(g *grammar.Grammar, k int, opts driverOpts) {
	a, err := ll.KAnalysis(g, k)
	if err != nil {
		fatal(err.Error())
	}
	reportCommon(g, a.Refs, a.Order())
	fmt.Printf("\nPFIRST Sets\n")
	for _, nt := range a.Order() {
		fmt.Printf("%s:%s\n", nt, a.PFirst(nt))
	}
	fmt.Printf("\nPFOLLOW Sets\n")
	order := a.Order()
	for i := len(order) - 1; i >= 0; i-- {
		fmt.Printf("%s:%s\n", order[i], a.PFollow(order[i]))
	}

	t := ll.BuildKParseTable(a)
	fmt.Printf("\nParsing Table\n%s", t.TableString())
	fmt.Printf("\nRules\n%s", t.RulesString())
	if opts.pretty {
		pterm.Info.Println("parsing table matrix")
		t.WritePretty(os.Stdout)
	}
	if opts.repl {
		runREPL(ll.NewKRecognizer(t))
		return
	}
	emit(opts.out, func(f *os.File) error { return codegen.EmitLLk(f, a, t) })
}

func emit(name string, gen func(*os.File) error) {
	f, err := os.Create(name)
	if err != nil {
		fatal("Error opening file")
	}
	defer f.Close()
	if err := gen(f); err != nil {
		fatal(err.Error())
	}
	tracer().Infof("generated parser written to %s", name)
}
