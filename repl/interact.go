package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/masqdata/masq/parser"
	"github.com/masqdata/masq/session"
)

const (
	masqHistory = ".masq_history"
)

type lineReader struct {
	line *liner.State
	r    *strings.Reader
}

func (lr *lineReader) ReadRune() (r rune, size int, err error) {
	for {
		if lr.r == nil {
			s, err := lr.line.Prompt("masq: ")
			if err != nil {
				return 0, 0, err
			}
			lr.line.AppendHistory(s)
			// Statements end at a newline; the prompt strips it.
			lr.r = strings.NewReader(s + "\n")
		}

		r, sz, err := lr.r.ReadRune()
		if err == io.EOF {
			lr.r = nil
		} else if err != nil {
			return 0, 0, err
		} else {
			return r, sz, nil
		}
	}
}

func Interact() session.Handler {
	line := liner.NewLiner()

	if f, err := os.Open(masqHistory); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	return func(ses *session.Session) {
		defer line.Close()

		ReplStmts(ses, parser.NewParser(&lineReader{line: line}, "console"), os.Stdout)

		if f, err := os.Create(masqHistory); err != nil {
			fmt.Fprintf(os.Stderr, "masq: error writing history file, %s: %s", masqHistory, err)
		} else {
			line.WriteHistory(f)
			f.Close()
		}
	}
}
