// Package resolve decides whether a symbol referenced inside an expression
// names a dataset column or an ambient scope variable.
//
// In Default mode a column always wins over a scope variable with the same
// name. That precedence is deliberate and load bearing: expressions are
// written against datasets whose column names the author may not control,
// so a quiet scope capture would change results based on data the author
// never saw. The cost is the opposite hazard, a scope variable shadowed by
// a column; callers who mean the scope variable must say so with ScopeOnly.
package resolve

import (
	"fmt"

	"github.com/masqdata/masq/tab"
)

type Mode int

const (
	// Default resolves to a column if one matches, then to a scope
	// variable.
	Default Mode = iota
	// ColumnOnly resolves only against dataset columns.
	ColumnOnly
	// ScopeOnly resolves only against the ambient scope.
	ScopeOnly
	// ColumnByIndex treats a runtime value, not a literal token, as a
	// column name.
	ColumnByIndex
)

func (m Mode) String() string {
	switch m {
	case Default:
		return "default"
	case ColumnOnly:
		return "column"
	case ScopeOnly:
		return "scope"
	case ColumnByIndex:
		return "column-by-index"
	}
	return ""
}

// Context pairs one dataset view with one scope. Row is the current row
// for row-wise evaluation; WholeColumn selects column-wise evaluation.
type Context struct {
	Dataset *tab.Dataset
	Row     int
	Scope   tab.Scope
}

// WholeColumn marks a context as column-wise.
const WholeColumn = -1

type UnknownSymbolError struct {
	Symbol string
}

func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("resolve: unknown symbol: %s", err.Symbol)
}

type UnknownColumnError struct {
	Column string
}

func (err *UnknownColumnError) Error() string {
	return fmt.Sprintf("resolve: unknown column: %s", err.Column)
}

type UnknownScopeVariableError struct {
	Variable string
}

func (err *UnknownScopeVariableError) Error() string {
	return fmt.Sprintf("resolve: unknown scope variable: %s", err.Variable)
}

// Resolve looks up sym in ctx according to mode. It is a pure lookup:
// no partial results, errors are returned as values carrying the
// offending name. ColumnByIndex lookups should go through ResolveKey.
func Resolve(sym string, ctx Context, mode Mode) (tab.Value, error) {
	switch mode {
	case Default:
		if ctx.Dataset != nil && ctx.Dataset.HasColumn(sym) {
			return columnValue(sym, ctx)
		}
		if val, ok := ctx.Scope.Lookup(sym); ok {
			return val, nil
		}
		return nil, &UnknownSymbolError{Symbol: sym}
	case ColumnOnly, ColumnByIndex:
		if ctx.Dataset != nil && ctx.Dataset.HasColumn(sym) {
			return columnValue(sym, ctx)
		}
		return nil, &UnknownColumnError{Column: sym}
	case ScopeOnly:
		if val, ok := ctx.Scope.Lookup(sym); ok {
			return val, nil
		}
		return nil, &UnknownScopeVariableError{Variable: sym}
	}
	panic(fmt.Sprintf("resolve: unexpected mode: %d", mode))
}

// ResolveKey resolves a computed key, typically produced by evaluating a
// sub-expression, as a column name. The key is often user entered; a
// failure carries the attempted key so the caller can report which value
// was invalid.
func ResolveKey(key tab.Value, ctx Context) (tab.Value, error) {
	s, ok := key.(tab.StringValue)
	if !ok {
		return nil, fmt.Errorf("resolve: column key: want string got %s", tab.Format(key))
	}
	return Resolve(string(s), ctx, ColumnByIndex)
}

func columnValue(sym string, ctx Context) (tab.Value, error) {
	if ctx.Row == WholeColumn {
		return nil, fmt.Errorf("resolve: column %s referenced outside a row context", sym)
	}
	val, ok := ctx.Dataset.Cell(sym, ctx.Row)
	if !ok {
		return nil, fmt.Errorf("resolve: column %s: no row %d", sym, ctx.Row)
	}
	return val, nil
}
