package tab

import (
	"fmt"
)

// Dataset is an ordered collection of uniquely named, equal length columns.
// Datasets are treated as immutable once built: operations that change the
// shape of a dataset return a new one.
type Dataset struct {
	cols   []Column
	byName map[string]int
}

func NewDataset(cols ...Column) (*Dataset, error) {
	ds := Dataset{
		cols:   cols,
		byName: map[string]int{},
	}
	for cdx, col := range cols {
		if col.Name == "" {
			return nil, fmt.Errorf("tab: column %d: missing name", cdx)
		}
		if _, dup := ds.byName[col.Name]; dup {
			return nil, fmt.Errorf("tab: duplicate column %s", col.Name)
		}
		if err := col.check(); err != nil {
			return nil, err
		}
		if col.Len() != cols[0].Len() {
			return nil, fmt.Errorf("tab: column %s: %d rows; want %d", col.Name, col.Len(),
				cols[0].Len())
		}
		ds.byName[col.Name] = cdx
	}
	return &ds, nil
}

func MustDataset(cols ...Column) *Dataset {
	ds, err := NewDataset(cols...)
	if err != nil {
		panic(err)
	}
	return ds
}

func (ds *Dataset) NumColumns() int {
	return len(ds.cols)
}

func (ds *Dataset) NumRows() int {
	if len(ds.cols) == 0 {
		return 0
	}
	return ds.cols[0].Len()
}

// ColumnNames returns names in dataset column order.
func (ds *Dataset) ColumnNames() []string {
	names := make([]string, len(ds.cols))
	for cdx, col := range ds.cols {
		names[cdx] = col.Name
	}
	return names
}

func (ds *Dataset) Columns() []Column {
	return ds.cols
}

func (ds *Dataset) Column(nam string) (Column, bool) {
	cdx, ok := ds.byName[nam]
	if !ok {
		return Column{}, false
	}
	return ds.cols[cdx], true
}

func (ds *Dataset) HasColumn(nam string) bool {
	_, ok := ds.byName[nam]
	return ok
}

// Cell returns the value of column nam at row rdx.
func (ds *Dataset) Cell(nam string, rdx int) (Value, bool) {
	cdx, ok := ds.byName[nam]
	if !ok {
		return nil, false
	}
	if rdx < 0 || rdx >= ds.cols[cdx].Len() {
		return nil, false
	}
	return ds.cols[cdx].Values[rdx], true
}

// Row copies row rdx into a new slice, in column order.
func (ds *Dataset) Row(rdx int) []Value {
	row := make([]Value, len(ds.cols))
	for cdx, col := range ds.cols {
		row[cdx] = col.Values[rdx]
	}
	return row
}

// KeepRows builds a new dataset containing the rows at the given indexes,
// in the given order. Column names, types, and order are preserved.
func (ds *Dataset) KeepRows(rows []int) *Dataset {
	cols := make([]Column, len(ds.cols))
	for cdx, col := range ds.cols {
		vals := make([]Value, 0, len(rows))
		for _, rdx := range rows {
			vals = append(vals, col.Values[rdx])
		}
		cols[cdx] = Column{Name: col.Name, Type: col.Type, Values: vals}
	}

	ret, err := NewDataset(cols...)
	if err != nil {
		panic(fmt.Sprintf("tab: keep rows: %s", err))
	}
	return ret
}

func (ds *Dataset) String() string {
	s := "["
	for cdx, col := range ds.cols {
		if cdx > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s %s", col.Name, col.Type)
	}
	return s + fmt.Sprintf("] (%d rows)", ds.NumRows())
}
