// Package eval evaluates expression trees against a dataset and an
// ambient scope. Evaluation is a pure function of its inputs: no state
// survives a call and the dataset and scope are never mutated, so
// callers may run any number of evaluations concurrently over shared
// immutable inputs.
package eval

import (
	"fmt"

	"github.com/masqdata/masq/expr"
	"github.com/masqdata/masq/resolve"
	"github.com/masqdata/masq/tab"
)

type evalContext struct {
	rctx resolve.Context
}

func (ec evalContext) Resolve(sym string, mode resolve.Mode) (tab.Value, error) {
	return resolve.Resolve(sym, ec.rctx, mode)
}

func (ec evalContext) ResolveKey(key tab.Value) (tab.Value, error) {
	return resolve.ResolveKey(key, ec.rctx)
}

func (ec evalContext) ResolveColumn(sym string, mode resolve.Mode) ([]tab.Value, error) {
	if mode == resolve.ScopeOnly {
		return nil, fmt.Errorf("eval: %s: scope variables are not columns", sym)
	}
	if ec.rctx.Dataset == nil || !ec.rctx.Dataset.HasColumn(sym) {
		return nil, &resolve.UnknownColumnError{Column: sym}
	}
	col, _ := ec.rctx.Dataset.Column(sym)
	return col.Values, nil
}

func (ec evalContext) ResolveColumnKey(key tab.Value) ([]tab.Value, error) {
	s, ok := key.(tab.StringValue)
	if !ok {
		return nil, fmt.Errorf("eval: column key: want string got %s", tab.Format(key))
	}
	return ec.ResolveColumn(string(s), resolve.ColumnByIndex)
}

// Evaluate evaluates e column-wise: no current row, so plain column
// references fail and columns are reached through aggregates. Used for
// scalar results such as thresholds and summaries.
func Evaluate(e expr.Expr, ds *tab.Dataset, scope tab.Scope) (tab.Value, error) {
	ce, err := expr.Compile(e)
	if err != nil {
		return nil, err
	}
	return ce.Eval(evalContext{
		rctx: resolve.Context{Dataset: ds, Row: resolve.WholeColumn, Scope: scope},
	})
}

// EvaluateRow evaluates e against row rdx of ds.
func EvaluateRow(e expr.Expr, ds *tab.Dataset, rdx int, scope tab.Scope) (tab.Value, error) {
	if ds == nil || rdx < 0 || rdx >= ds.NumRows() {
		return nil, fmt.Errorf("eval: no row %d", rdx)
	}
	ce, err := expr.Compile(e)
	if err != nil {
		return nil, err
	}
	return ce.Eval(evalContext{
		rctx: resolve.Context{Dataset: ds, Row: rdx, Scope: scope},
	})
}

type RowError struct {
	Row int
	Err error
}

// RowErrors reports every row whose predicate evaluation failed during
// FilterRows. Offending rows are never silently dropped; the caller
// gets the full batch.
type RowErrors []RowError

func (errs RowErrors) Error() string {
	s := fmt.Sprintf("eval: %d rows failed", len(errs))
	for i, re := range errs {
		if i == 5 {
			s += fmt.Sprintf("; and %d more", len(errs)-i)
			break
		}
		s += fmt.Sprintf("; row %d: %s", re.Row, re.Err)
	}
	return s
}

// FilterRows evaluates pred once per row of ds and returns a new dataset
// containing the rows where pred was true, preserving column order and
// types. A null predicate result excludes the row, matching null
// propagation through comparisons; a non-boolean result is a row error.
// Any row error fails the whole call with RowErrors.
func FilterRows(pred expr.Expr, ds *tab.Dataset, scope tab.Scope) (*tab.Dataset, error) {
	ce, err := expr.Compile(pred)
	if err != nil {
		return nil, err
	}

	var keep []int
	var errs RowErrors
	for rdx := 0; rdx < ds.NumRows(); rdx += 1 {
		val, err := ce.Eval(evalContext{
			rctx: resolve.Context{Dataset: ds, Row: rdx, Scope: scope},
		})
		if err != nil {
			errs = append(errs, RowError{Row: rdx, Err: err})
			continue
		}
		if val == nil {
			continue
		}
		b, ok := val.(tab.BoolValue)
		if !ok {
			errs = append(errs,
				RowError{
					Row: rdx,
					Err: &expr.TypeMismatchError{Want: "boolean", Got: val},
				})
			continue
		}
		if b {
			keep = append(keep, rdx)
		}
	}

	if errs != nil {
		return nil, errs
	}
	return ds.KeepRows(keep), nil
}
