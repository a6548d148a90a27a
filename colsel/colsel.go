// Package colsel resolves selection specifications into concrete,
// validated lists of column names.
package colsel

import (
	"fmt"

	"github.com/masqdata/masq/resolve"
	"github.com/masqdata/masq/tab"
)

// Spec resolves to an ordered list of column names for a dataset.
type Spec interface {
	fmt.Stringer
	selectColumns(ds *tab.Dataset) ([]string, error)
}

// SelectionError wraps the failure that stopped a selection; strict name
// selection wraps an UnknownColumnError naming the first missing entry.
type SelectionError struct {
	Err error
}

func (err *SelectionError) Error() string {
	return fmt.Sprintf("colsel: %s", err.Err)
}

func (err *SelectionError) Unwrap() error {
	return err.Err
}

// Names selects explicitly requested columns, in requested order rather
// than dataset order. Strict fails on the first missing name; lenient
// silently drops missing names. The lenient behavior is a requested
// policy, not a default: callers passing user input must choose whether
// malformed input degrades output or surfaces an error.
type Names struct {
	Names  []string
	Strict bool
}

func (ns Names) String() string {
	s := "names("
	for i, nam := range ns.Names {
		if i > 0 {
			s += ", "
		}
		s += nam
	}
	if !ns.Strict {
		s += "; lenient"
	}
	return s + ")"
}

func (ns Names) selectColumns(ds *tab.Dataset) ([]string, error) {
	names := make([]string, 0, len(ns.Names))
	for _, nam := range ns.Names {
		if !ds.HasColumn(nam) {
			if ns.Strict {
				return nil, &SelectionError{Err: &resolve.UnknownColumnError{Column: nam}}
			}
			continue
		}
		names = append(names, nam)
	}
	return names, nil
}

// Info is the column metadata a predicate selects on.
type Info struct {
	Name string
	Type tab.DataType

	// Min and Max are set for numeric columns with at least one
	// non-null value.
	Min tab.Value
	Max tab.Value
}

// Where selects the columns whose metadata satisfies pred, in dataset
// column order.
type Where struct {
	Pred func(info Info) bool
}

func (w Where) String() string {
	return "where(...)"
}

func (w Where) selectColumns(ds *tab.Dataset) ([]string, error) {
	var names []string
	for _, col := range ds.Columns() {
		if w.Pred(colInfo(col)) {
			names = append(names, col.Name)
		}
	}
	return names, nil
}

func colInfo(col tab.Column) Info {
	info := Info{Name: col.Name, Type: col.Type}
	if col.Type != tab.IntegerType && col.Type != tab.FloatType {
		return info
	}
	for _, val := range col.Values {
		if val == nil {
			continue
		}
		if info.Min == nil {
			info.Min = val
			info.Max = val
			continue
		}
		if cmp, err := val.Compare(info.Min); err == nil && cmp < 0 {
			info.Min = val
		}
		if cmp, err := val.Compare(info.Max); err == nil && cmp > 0 {
			info.Max = val
		}
	}
	return info
}

// Union composes specs: the selections are concatenated in spec order
// with duplicates dropped.
type Union []Spec

func (u Union) String() string {
	s := "union("
	for i, spec := range u {
		if i > 0 {
			s += ", "
		}
		s += spec.String()
	}
	return s + ")"
}

func (u Union) selectColumns(ds *tab.Dataset) ([]string, error) {
	var names []string
	seen := map[string]struct{}{}
	for _, spec := range u {
		more, err := spec.selectColumns(ds)
		if err != nil {
			return nil, err
		}
		for _, nam := range more {
			if _, ok := seen[nam]; ok {
				continue
			}
			seen[nam] = struct{}{}
			names = append(names, nam)
		}
	}
	return names, nil
}

// Select resolves spec against ds. The result never contains a name
// absent from ds.
func Select(spec Spec, ds *tab.Dataset) ([]string, error) {
	return spec.selectColumns(ds)
}

// Project builds a new dataset holding only the selected columns, in
// selection order.
func Project(spec Spec, ds *tab.Dataset) (*tab.Dataset, error) {
	names, err := spec.selectColumns(ds)
	if err != nil {
		return nil, err
	}

	cols := make([]tab.Column, 0, len(names))
	for _, nam := range names {
		col, _ := ds.Column(nam)
		cols = append(cols, col)
	}
	return tab.NewDataset(cols...)
}

// Apply transforms each selected column with fn, in selection order,
// leaving unselected columns untouched and preserving dataset column
// order. fn must return a column with the same number of rows; the name
// of the returned column is ignored.
func Apply(spec Spec, ds *tab.Dataset, fn func(col tab.Column) (tab.Column, error)) (*tab.Dataset,
	error) {

	names, err := spec.selectColumns(ds)
	if err != nil {
		return nil, err
	}

	changed := map[string]tab.Column{}
	for _, nam := range names {
		col, _ := ds.Column(nam)
		ncol, err := fn(col)
		if err != nil {
			return nil, err
		}
		if ncol.Len() != col.Len() {
			return nil, fmt.Errorf("colsel: column %s: transform returned %d rows; want %d",
				nam, ncol.Len(), col.Len())
		}
		ncol.Name = nam
		changed[nam] = ncol
	}

	cols := make([]tab.Column, 0, ds.NumColumns())
	for _, col := range ds.Columns() {
		if ncol, ok := changed[col.Name]; ok {
			cols = append(cols, ncol)
		} else {
			cols = append(cols, col)
		}
	}
	return tab.NewDataset(cols...)
}
