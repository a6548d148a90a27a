package expr_test

import (
	"testing"

	. "github.com/masqdata/masq/expr"
)

func TestExpr(t *testing.T) {
	cases := []struct {
		e Expr
		s string
	}{
		{
			e: &Binary{
				Op:    DivideOp,
				Left:  &Unary{Op: NegateOp, Expr: Int64Literal(123)},
				Right: Int64Literal(456),
			},
			s: "((- 123) / 456)",
		},
		{
			e: &Binary{
				Op:    GreaterThanOp,
				Left:  Sym("x"),
				Right: ScopeVar("min"),
			},
			s: "(x > .env.min)",
		},
		{
			e: &Binary{
				Op:    GreaterThanOp,
				Left:  &Index{Key: ScopeVar("var")},
				Right: ScopeVar("min"),
			},
			s: "(.data[.env.var] > .env.min)",
		},
		{
			e: &Call{
				Name: "abc",
				Args: []Expr{
					&Unary{Op: NegateOp, Expr: Int64Literal(123)},
					Int64Literal(456),
					&Binary{Op: AddOp, Left: Column("def"), Right: Int64Literal(789)},
				},
			},
			s: "abc((- 123), 456, (.data.def + 789))",
		},
		{
			e: &Unary{Op: NotOp, Expr: &Binary{Op: AndOp, Left: True(), Right: False()}},
			s: "(NOT (true AND false))",
		},
	}

	for _, c := range cases {
		if c.e.String() != c.s {
			t.Errorf("%q.String() != %q", c.e.String(), c.s)
		}
	}
}

func TestExprEqual(t *testing.T) {
	cases := []struct {
		e1, e2 Expr
		eq     bool
	}{
		{e1: Sym("x"), e2: Sym("x"), eq: true},
		{e1: Sym("x"), e2: Column("x"), eq: false},
		{e1: Column("x"), e2: ScopeVar("x"), eq: false},
		{e1: &Index{Key: Sym("k")}, e2: &Index{Key: Sym("k")}, eq: true},
		{e1: &Index{Key: Sym("k")}, e2: Sym("k"), eq: false},
		{e1: Int64Literal(1), e2: Int64Literal(1), eq: true},
		{e1: Int64Literal(1), e2: Float64Literal(1), eq: true},
		{
			e1: &Binary{Op: AddOp, Left: Sym("x"), Right: Int64Literal(1)},
			e2: &Binary{Op: AddOp, Left: Sym("x"), Right: Int64Literal(1)},
			eq: true,
		},
		{
			e1: &Binary{Op: AddOp, Left: Sym("x"), Right: Int64Literal(1)},
			e2: &Binary{Op: SubtractOp, Left: Sym("x"), Right: Int64Literal(1)},
			eq: false,
		},
	}

	for _, c := range cases {
		if c.e1.Equal(c.e2) != c.eq {
			t.Errorf("%s.Equal(%s) got %v want %v", c.e1, c.e2, !c.eq, c.eq)
		}
	}
}
