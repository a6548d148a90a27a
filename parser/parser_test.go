package parser_test

import (
	"io"
	"strings"
	"testing"

	"github.com/masqdata/masq/parser"
)

func TestParse(t *testing.T) {
	failed := []string{
		"",
		"let",
		"let x",
		"let x =",
		"let 123 = 1",
		"filter",
		"eval",
		"select",
		"select ,",
		"select a,",
		"load",
		"load 'p'",
		"load 'p' as",
		"use",
		"bogus",
		"let x = 1 +",
		"let x = (1 + 2",
		"let x = .bogus.y",
		"let x = .data[",
		"let x = .data[y",
		"let x = f(1,",
	}

	for i, f := range failed {
		p := parser.NewParser(strings.NewReader(f), "failed tests")
		st, err := p.Parse()
		if err == nil {
			t.Errorf("Parse(%q) did not fail, got %s", f, st)
		} else if i == 0 && err != io.EOF {
			t.Errorf("Parse(%q) got %s want io.EOF", f, err)
		}
	}

	cases := []struct {
		sql string
		ret string
	}{
		{"let x = 1", "let x = 1"},
		{"let x = 1 + 2", "let x = (1 + 2)"},
		{"let min = .env.min", "let min = .env.min"},
		{"filter x > 0", "filter (x > 0)"},
		{"filter .data.x > .env.min", "filter (.data.x > .env.min)"},
		{"filter not done", "filter (NOT done)"},
		{"filter x > 0 and y > 0", "filter ((x > 0) AND (y > 0))"},
		{"filter x > 0 or y > 0", "filter ((x > 0) OR (y > 0))"},
		{"eval sum(x)", "eval sum(x)"},
		{"eval x > avg(x)", "eval (x > avg(x))"},
		{"eval .data[k]", "eval .data[k]"},
		{"eval .data[.env.var]", "eval .data[.env.var]"},
		{"eval .data['na' || 'me']", "eval .data[('na' || 'me')]"},
		{"eval -x + 1", "eval ((- x) + 1)"},
		{"eval 1 + 2 * 3", "eval (1 + (2 * 3))"},
		{"eval (1 + 2) * 3", "eval ((1 + 2) * 3)"},
		{"eval 1 * 2 + 3", "eval ((1 * 2) + 3)"},
		{"eval 10 - 2 - 3", "eval ((10 - 2) - 3)"},
		{"eval 1 - 2 - 3 - 4", "eval (((1 - 2) - 3) - 4)"},
		{"eval 100 / 10 / 5", "eval ((100 / 10) / 5)"},
		{"eval 1 - 2 * 3 - 4", "eval ((1 - (2 * 3)) - 4)"},
		{"eval a and b and c", "eval ((a AND b) AND c)"},
		{"eval not a and b and c", "eval (((NOT a) AND b) AND c)"},
		{"eval a == b", "eval (a == b)"},
		{"eval a = b", "eval (a == b)"},
		{"eval a != b and c <= d", "eval ((a != b) AND (c <= d))"},
		{"eval concat(a, ' ', b)", "eval concat(a, ' ', b)"},
		{"eval f()", "eval f()"},
		{"eval 1.5 % 2", "eval (1.5 % 2)"},
		{"eval null", "eval NULL"},
		{"eval true and false", "eval (true AND false)"},
		{"select a, b, c", "select a, b, c"},
		{"select? a, b", "select? a, b"},
		{"show", "show"},
		{"load 'sales.csv' as sales", "load 'sales.csv' as sales"},
		{"save", "save"},
		{"save 'out.csv'", "save 'out.csv'"},
		{"use sales", "use sales"},
		{"datasets", "datasets"},
	}

	for _, c := range cases {
		p := parser.NewParser(strings.NewReader(c.sql), "parse tests")
		st, err := p.Parse()
		if err != nil {
			t.Errorf("Parse(%q) failed with %s", c.sql, err)
		} else if st.String() != c.ret {
			t.Errorf("Parse(%q) got %s want %s", c.sql, st, c.ret)
		}
	}
}

func TestParseMultiple(t *testing.T) {
	src := `
let min = 1
filter x > min; eval sum(x)
-- a comment
show
`
	want := []string{
		"let min = 1",
		"filter (x > min)",
		"eval sum(x)",
		"show",
	}

	p := parser.NewParser(strings.NewReader(src), "multiple tests")
	for i := 0; ; i += 1 {
		st, err := p.Parse()
		if err == io.EOF {
			if i != len(want) {
				t.Errorf("Parse got %d statements want %d", i, len(want))
			}
			break
		}
		if err != nil {
			t.Fatalf("Parse failed with %s", err)
		}
		if i >= len(want) {
			t.Fatalf("Parse got too many statements: %s", st)
		}
		if st.String() != want[i] {
			t.Errorf("Parse got %s want %s", st, want[i])
		}
	}
}

func TestParseExpr(t *testing.T) {
	cases := []struct {
		src string
		ret string
	}{
		{"x + y * z", "(x + (y * z))"},
		{".data.x", ".data.x"},
		{"not a or b", "((NOT a) OR b)"},
		{"- 2 + 3", "((- 2) + 3)"},
		{"'it''s'", "'it's'"},
	}

	for _, c := range cases {
		p := parser.NewParser(strings.NewReader(c.src), "expr tests")
		e, err := p.ParseExpr()
		if err != nil {
			t.Errorf("ParseExpr(%q) failed with %s", c.src, err)
		} else if e.String() != c.ret {
			t.Errorf("ParseExpr(%q) got %s want %s", c.src, e, c.ret)
		}
	}
}
