package resolve_test

import (
	"testing"

	"github.com/masqdata/masq/resolve"
	"github.com/masqdata/masq/tab"
)

func testContext(t *testing.T) resolve.Context {
	t.Helper()

	ds := tab.MustDataset(
		tab.IntColumn("x", 1, 0, 3),
		tab.IntColumn("v", 10, 20, 30),
	)
	return resolve.Context{
		Dataset: ds,
		Row:     1,
		Scope: tab.NewScope(map[string]tab.Value{
			"min": tab.Int64Value(1),
			"v":   tab.StringValue("from scope"),
		}),
	}
}

func TestResolve(t *testing.T) {
	ctx := testContext(t)

	cases := []struct {
		sym  string
		mode resolve.Mode
		val  tab.Value
		fail error
	}{
		// default mode: column, then scope, then unknown
		{sym: "x", mode: resolve.Default, val: tab.Int64Value(0)},
		{sym: "min", mode: resolve.Default, val: tab.Int64Value(1)},
		{sym: "zzz", mode: resolve.Default, fail: &resolve.UnknownSymbolError{}},

		// a column always beats a scope variable with the same name
		{sym: "v", mode: resolve.Default, val: tab.Int64Value(20)},
		// ... and ScopeOnly is the escape hatch
		{sym: "v", mode: resolve.ScopeOnly, val: tab.StringValue("from scope")},

		{sym: "x", mode: resolve.ColumnOnly, val: tab.Int64Value(0)},
		{sym: "min", mode: resolve.ColumnOnly, fail: &resolve.UnknownColumnError{}},
		{sym: "x", mode: resolve.ScopeOnly, fail: &resolve.UnknownScopeVariableError{}},
		{sym: "x", mode: resolve.ColumnByIndex, val: tab.Int64Value(0)},
		{sym: "zzz", mode: resolve.ColumnByIndex, fail: &resolve.UnknownColumnError{}},
	}

	for _, c := range cases {
		val, err := resolve.Resolve(c.sym, ctx, c.mode)
		if c.fail != nil {
			if err == nil {
				t.Errorf("Resolve(%s, %s) did not fail", c.sym, c.mode)
				continue
			}
			switch c.fail.(type) {
			case *resolve.UnknownSymbolError:
				if _, ok := err.(*resolve.UnknownSymbolError); !ok {
					t.Errorf("Resolve(%s, %s) failed with %T want UnknownSymbolError",
						c.sym, c.mode, err)
				}
			case *resolve.UnknownColumnError:
				if _, ok := err.(*resolve.UnknownColumnError); !ok {
					t.Errorf("Resolve(%s, %s) failed with %T want UnknownColumnError",
						c.sym, c.mode, err)
				}
			case *resolve.UnknownScopeVariableError:
				if _, ok := err.(*resolve.UnknownScopeVariableError); !ok {
					t.Errorf(
						"Resolve(%s, %s) failed with %T want UnknownScopeVariableError",
						c.sym, c.mode, err)
				}
			}
			continue
		}
		if err != nil {
			t.Errorf("Resolve(%s, %s) failed with %s", c.sym, c.mode, err)
		} else if tab.Compare(val, c.val) != 0 {
			t.Errorf("Resolve(%s, %s) got %v want %v", c.sym, c.mode, val, c.val)
		}
	}
}

func TestResolveErrorNames(t *testing.T) {
	ctx := testContext(t)

	_, err := resolve.Resolve("missing", ctx, resolve.ColumnOnly)
	ce, ok := err.(*resolve.UnknownColumnError)
	if !ok {
		t.Fatalf("Resolve(missing, column) failed with %T want UnknownColumnError", err)
	}
	if ce.Column != "missing" {
		t.Errorf("UnknownColumnError.Column got %s want missing", ce.Column)
	}

	_, err = resolve.Resolve("missing", ctx, resolve.ScopeOnly)
	se, ok := err.(*resolve.UnknownScopeVariableError)
	if !ok {
		t.Fatalf("Resolve(missing, scope) failed with %T want UnknownScopeVariableError",
			err)
	}
	if se.Variable != "missing" {
		t.Errorf("UnknownScopeVariableError.Variable got %s want missing", se.Variable)
	}
}

func TestResolveKey(t *testing.T) {
	ctx := testContext(t)

	val, err := resolve.ResolveKey(tab.StringValue("x"), ctx)
	if err != nil {
		t.Fatalf("ResolveKey('x') failed with %s", err)
	}
	if tab.Compare(val, tab.Int64Value(0)) != 0 {
		t.Errorf("ResolveKey('x') got %v want 0", val)
	}

	_, err = resolve.ResolveKey(tab.StringValue("nope"), ctx)
	ce, ok := err.(*resolve.UnknownColumnError)
	if !ok {
		t.Fatalf("ResolveKey('nope') failed with %T want UnknownColumnError", err)
	}
	if ce.Column != "nope" {
		t.Errorf("UnknownColumnError.Column got %s want nope", ce.Column)
	}

	if _, err = resolve.ResolveKey(tab.Int64Value(1), ctx); err == nil {
		t.Error("ResolveKey(1) did not fail")
	}
}

func TestResolveWholeColumn(t *testing.T) {
	ctx := testContext(t)
	ctx.Row = resolve.WholeColumn

	if _, err := resolve.Resolve("x", ctx, resolve.Default); err == nil {
		t.Error("Resolve(x) outside a row context did not fail")
	}
	// scope lookups do not need a row
	if _, err := resolve.Resolve("min", ctx, resolve.ScopeOnly); err != nil {
		t.Errorf("Resolve(min, scope) failed with %s", err)
	}
}
