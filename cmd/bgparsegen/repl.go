package main

import (
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
)

// acceptor is the slice of the recognizers the REPL needs.
type acceptor interface {
	Accept(input string) (bool, error)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// runREPL reads sentences line by line and recognises each one against the
// analysed grammar.
func runREPL(rec acceptor) {
	initDisplay()
	pterm.Info.Println("enter sentences, one per line; quit with <ctrl>D")
	rl, err := readline.New("bgparsegen> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		ok, rerr := rec.Accept(line)
		if ok {
			pterm.Info.Println("accepted")
			continue
		}
		if rerr != nil {
			pterm.Error.Println(rerr.Error())
		} else {
			pterm.Error.Println("rejected")
		}
	}
	println("Good bye!")
}
