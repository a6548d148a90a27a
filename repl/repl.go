package repl

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/masqdata/masq/parser"
	"github.com/masqdata/masq/session"
	"github.com/masqdata/masq/stmt"
	"github.com/masqdata/masq/tab"
)

func renderDataset(w io.Writer, ds *tab.Dataset) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader(ds.ColumnNames())

	row := make([]string, ds.NumColumns())
	for rdx := 0; rdx < ds.NumRows(); rdx += 1 {
		for cdx, v := range ds.Row(rdx) {
			if s, ok := v.(tab.StringValue); ok {
				row[cdx] = string(s)
			} else {
				row[cdx] = tab.Format(v)
			}
		}
		tw.Append(row)
	}
	tw.Render()
	fmt.Fprintf(w, "(%d rows)\n", tw.NumLines())
}

func run(ses *session.Session, st stmt.Stmt, w io.Writer) error {
	switch st := st.(type) {
	case *stmt.Let:
		val, err := ses.Let(st.Name, st.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %s\n", st.Name, tab.Format(val))
	case *stmt.Filter:
		cnt, err := ses.Filter(st.Pred)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d rows kept\n", cnt)
	case *stmt.Eval:
		val, err := ses.Eval(st.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, tab.Format(val))
	case *stmt.Select:
		err := ses.Select(st.Names, st.Lenient)
		if err != nil {
			return err
		}
		ds, _ := ses.Dataset()
		fmt.Fprintf(w, "%d columns kept\n", ds.NumColumns())
	case *stmt.Show:
		ds, _ := ses.Dataset()
		if ds == nil {
			return fmt.Errorf("repl: no current dataset")
		}
		renderDataset(w, ds)
	case *stmt.Load:
		ds, err := ses.Load(st.Path, st.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %d rows loaded\n", st.Name, ds.NumRows())
	case *stmt.Save:
		if st.Path != "" {
			err := ses.SaveFile(st.Path)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s saved\n", st.Path)
		} else {
			err := ses.Save()
			if err != nil {
				return err
			}
			_, nam := ses.Dataset()
			fmt.Fprintf(w, "%s saved\n", nam)
		}
	case *stmt.Use:
		ds, err := ses.Use(st.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %d rows\n", st.Name, ds.NumRows())
	case *stmt.Datasets:
		names, err := ses.Datasets()
		if err != nil {
			return err
		}
		tw := tablewriter.NewWriter(w)
		tw.SetAutoFormatHeaders(false)
		tw.SetHeader([]string{"dataset"})
		for _, nam := range names {
			tw.Append([]string{nam})
		}
		tw.Render()
	default:
		panic(fmt.Sprintf("repl: unexpected statement: %#v", st))
	}
	return nil
}

// ReplStmts parses and runs statements until the reader is exhausted,
// writing results and errors to w.
func ReplStmts(ses *session.Session, p parser.Parser, w io.Writer) {
	for {
		st, err := p.Parse()
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}

		err = run(ses, st, w)
		if err != nil {
			fmt.Fprintln(w, err)
		}
	}
}

func Handler(rr io.RuneReader, w io.Writer) session.Handler {
	return func(ses *session.Session) {
		src := fmt.Sprintf("%s@%s", ses.User, ses.Type)
		if ses.Addr != "" {
			src = fmt.Sprintf("%s:%s", src, ses.Addr)
		}
		ReplStmts(ses, parser.NewParser(rr, src), w)
	}
}
