package expr_test

import (
	"fmt"
	"testing"

	. "github.com/masqdata/masq/expr"
	"github.com/masqdata/masq/resolve"
	"github.com/masqdata/masq/tab"
)

type testContext struct {
	cols  map[string][]tab.Value
	scope map[string]tab.Value
	row   int
}

func (tc testContext) Resolve(sym string, mode resolve.Mode) (tab.Value, error) {
	vals, isCol := tc.cols[sym]
	val, isVar := tc.scope[sym]

	switch mode {
	case resolve.Default:
		if isCol {
			return vals[tc.row], nil
		}
		if isVar {
			return val, nil
		}
		return nil, &resolve.UnknownSymbolError{Symbol: sym}
	case resolve.ColumnOnly, resolve.ColumnByIndex:
		if isCol {
			return vals[tc.row], nil
		}
		return nil, &resolve.UnknownColumnError{Column: sym}
	case resolve.ScopeOnly:
		if isVar {
			return val, nil
		}
		return nil, &resolve.UnknownScopeVariableError{Variable: sym}
	}
	panic("unexpected mode")
}

func (tc testContext) ResolveKey(key tab.Value) (tab.Value, error) {
	s, ok := key.(tab.StringValue)
	if !ok {
		return nil, fmt.Errorf("resolve: column key: want string got %s", tab.Format(key))
	}
	return tc.Resolve(string(s), resolve.ColumnByIndex)
}

func (tc testContext) ResolveColumn(sym string, mode resolve.Mode) ([]tab.Value, error) {
	if vals, ok := tc.cols[sym]; ok {
		return vals, nil
	}
	return nil, &resolve.UnknownColumnError{Column: sym}
}

func (tc testContext) ResolveColumnKey(key tab.Value) ([]tab.Value, error) {
	s, ok := key.(tab.StringValue)
	if !ok {
		return nil, fmt.Errorf("resolve: column key: want string got %s", tab.Format(key))
	}
	return tc.ResolveColumn(string(s), resolve.ColumnByIndex)
}

func intVals(vals ...int64) []tab.Value {
	ret := make([]tab.Value, 0, len(vals))
	for _, v := range vals {
		ret = append(ret, tab.Int64Value(v))
	}
	return ret
}

func TestCompile(t *testing.T) {
	cases := []struct {
		e Expr
		s string
	}{
		{
			e: &Binary{Op: AddOp, Left: Int64Literal(1), Right: Int64Literal(2)},
			s: `"+"(1, 2)`,
		},
		{
			e: &Binary{
				Op:   AddOp,
				Left: &Binary{Op: MultiplyOp, Left: Int64Literal(1), Right: Int64Literal(2)},
				Right: &Binary{
					Op:    DivideOp,
					Left:  Int64Literal(3),
					Right: &Unary{Op: NegateOp, Expr: Int64Literal(4)},
				},
			},
			s: `"+"("*"(1, 2), "/"(3, negate(4)))`,
		},
		{
			e: &Unary{Op: NoOp, Expr: Sym("x")},
			s: "x",
		},
		{
			e: &Call{Name: "abs", Args: []Expr{&Unary{Op: NegateOp, Expr: Sym("x")}}},
			s: `abs(negate(x))`,
		},
		{
			e: &Binary{Op: GreaterThanOp, Left: &Index{Key: ScopeVar("k")},
				Right: ScopeVar("min")},
			s: `">"(.data[.env.k], .env.min)`,
		},
		{
			e: &Call{Name: "sum", Args: []Expr{Column("x")}},
			s: "sum(.data.x)",
		},
	}

	for i, c := range cases {
		ce, err := Compile(c.e)
		if err != nil {
			t.Errorf("Compile(cases[%d]) failed with %s", i, err)
			continue
		}
		if ce.String() != c.s {
			t.Errorf("Compile(cases[%d]) got %s want %s", i, ce, c.s)
		}
	}
}

func TestCompileFail(t *testing.T) {
	cases := []Expr{
		&Call{Name: "nope", Args: []Expr{Int64Literal(1)}},
		&Call{Name: "abs", Args: []Expr{}},
		&Call{Name: "abs", Args: []Expr{Int64Literal(1), Int64Literal(2)}},
		&Call{Name: "concat", Args: []Expr{Int64Literal(1)}},
		&Call{Name: "sum", Args: []Expr{Int64Literal(1)}},
		&Call{Name: "sum", Args: []Expr{Column("x"), Column("y")}},
	}

	for i, e := range cases {
		if _, err := Compile(e); err == nil {
			t.Errorf("Compile(cases[%d]: %s) did not fail", i, e)
		}
	}
}

func TestEval(t *testing.T) {
	tc := testContext{
		cols: map[string][]tab.Value{
			"x": intVals(1, 0, 3),
			"v": intVals(10, 20, 30),
		},
		scope: map[string]tab.Value{
			"min": tab.Int64Value(1),
			"v":   tab.StringValue("x"),
		},
		row: 2,
	}

	cases := []struct {
		e    Expr
		r    tab.Value
		fail bool
	}{
		{e: &Binary{Op: AddOp, Left: Int64Literal(1), Right: Int64Literal(2)},
			r: tab.Int64Value(3)},
		{e: &Binary{Op: AddOp, Left: Int64Literal(1), Right: Float64Literal(2.5)},
			r: tab.Float64Value(3.5)},
		{e: &Binary{Op: SubtractOp, Left: Sym("x"), Right: ScopeVar("min")},
			r: tab.Int64Value(2)},
		{e: &Binary{Op: GreaterThanOp, Left: Sym("x"), Right: Sym("min")},
			r: tab.BoolValue(true)},
		{e: &Binary{Op: ModuloOp, Left: Sym("v"), Right: Int64Literal(7)},
			r: tab.Int64Value(2)},
		{e: &Unary{Op: NotOp, Expr: &Binary{Op: EqualOp, Left: Sym("x"),
			Right: Int64Literal(3)}}, r: tab.BoolValue(false)},
		{e: &Binary{Op: ConcatOp, Left: StringLiteral("a"), Right: StringLiteral("b")},
			r: tab.StringValue("ab")},

		// nulls propagate through ordinary calls
		{e: &Binary{Op: AddOp, Left: Nil(), Right: Int64Literal(2)}, r: nil},
		{e: &Binary{Op: ConcatOp, Left: Nil(), Right: StringLiteral("b")},
			r: tab.StringValue("b")},

		// indirection: .data[.env.v] resolves the column named by the
		// scope variable v, while .env.v is the string itself
		{e: &Index{Key: ScopeVar("v")}, r: tab.Int64Value(3)},
		{e: &Binary{Op: EqualOp, Left: &Index{Key: ScopeVar("v")}, Right: Sym("x")},
			r: tab.BoolValue(true)},

		// aggregates see the whole column even in a row context
		{e: &Call{Name: "sum", Args: []Expr{Column("x")}}, r: tab.Int64Value(4)},
		{e: &Call{Name: "count", Args: []Expr{Column("v")}}, r: tab.Int64Value(3)},
		{e: &Call{Name: "max", Args: []Expr{&Index{Key: ScopeVar("v")}}},
			r: tab.Int64Value(3)},
		{e: &Call{Name: "avg", Args: []Expr{Column("v")}}, r: tab.Int64Value(20)},
		{e: &Call{Name: "mean", Args: []Expr{Column("v")}}, r: tab.Int64Value(20)},
		{e: &Call{Name: "min", Args: []Expr{Column("x")}}, r: tab.Int64Value(0)},

		// null handling functions see their null arguments
		{e: &Call{Name: "coalesce", Args: []Expr{Nil(), Nil(), Int64Literal(7)}},
			r: tab.Int64Value(7)},
		{e: &Call{Name: "coalesce", Args: []Expr{Nil()}}, r: nil},
		{e: &Call{Name: "is_null", Args: []Expr{Nil()}}, r: tab.BoolValue(true)},
		{e: &Call{Name: "is_null", Args: []Expr{Int64Literal(1)}}, r: tab.BoolValue(false)},
		{e: &Call{Name: "is_int", Args: []Expr{Sym("x")}}, r: tab.BoolValue(true)},
		{e: &Call{Name: "is_float", Args: []Expr{Sym("x")}}, r: tab.BoolValue(false)},
		{e: &Call{Name: "is_string", Args: []Expr{ScopeVar("v")}}, r: tab.BoolValue(true)},
		{e: &Call{Name: "is_bool", Args: []Expr{True()}}, r: tab.BoolValue(true)},

		{e: &Binary{Op: AddOp, Left: Sym("x"), Right: StringLiteral("abc")}, fail: true},
		{e: &Binary{Op: AndOp, Left: Int64Literal(1), Right: True()}, fail: true},
		{e: &Binary{Op: DivideOp, Left: Int64Literal(1), Right: Int64Literal(0)},
			fail: true},
		{e: &Index{Key: ScopeVar("min")}, fail: true},
		{e: Sym("zzz"), fail: true},
	}

	for _, c := range cases {
		ce, err := Compile(c.e)
		if err != nil {
			t.Errorf("Compile(%s) failed with %s", c.e, err)
			continue
		}
		r, err := ce.Eval(tc)
		if c.fail {
			if err == nil {
				t.Errorf("Eval(%s) did not fail", c.e)
			}
			continue
		}
		if err != nil {
			t.Errorf("Eval(%s) failed with %s", c.e, err)
		} else if tab.Compare(r, c.r) != 0 {
			t.Errorf("Eval(%s) got %s want %s", c.e, tab.Format(r), tab.Format(c.r))
		}
	}
}

func TestEvalTypeMismatch(t *testing.T) {
	tc := testContext{
		cols:  map[string][]tab.Value{"x": intVals(1)},
		scope: map[string]tab.Value{},
		row:   0,
	}

	e := &Binary{Op: LessThanOp, Left: Sym("x"), Right: StringLiteral("abc")}
	ce, err := Compile(e)
	if err != nil {
		t.Fatalf("Compile(%s) failed with %s", e, err)
	}
	_, err = ce.Eval(tc)
	tme, ok := err.(*TypeMismatchError)
	if !ok {
		t.Fatalf("Eval(%s) failed with %T want TypeMismatchError", e, err)
	}
	if tab.Compare(tme.Got, tab.StringValue("abc")) != 0 {
		t.Errorf("TypeMismatchError.Got got %s want 'abc'", tab.Format(tme.Got))
	}
}

func TestEvalSameSymbolTwoModes(t *testing.T) {
	// one expression, same text, different modes: the column form sees
	// the column, the scope form sees the scope variable
	tc := testContext{
		cols:  map[string][]tab.Value{"v": intVals(10)},
		scope: map[string]tab.Value{"v": tab.Int64Value(99)},
		row:   0,
	}

	e := &Binary{Op: AddOp, Left: Sym("v"), Right: ScopeVar("v")}
	ce, err := Compile(e)
	if err != nil {
		t.Fatalf("Compile(%s) failed with %s", e, err)
	}
	r, err := ce.Eval(tc)
	if err != nil {
		t.Fatalf("Eval(%s) failed with %s", e, err)
	}
	if tab.Compare(r, tab.Int64Value(109)) != 0 {
		t.Errorf("Eval(%s) got %s want 109", e, tab.Format(r))
	}
}
