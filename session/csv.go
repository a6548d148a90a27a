package session

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/masqdata/masq/tab"
)

func parseCSVValue(s string) tab.Value {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return tab.Int64Value(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return tab.Float64Value(f)
	}
	if s == "true" || s == "false" {
		return tab.BoolValue(s == "true")
	}
	return tab.StringValue(s)
}

// ReadCSV builds a dataset from CSV data. The first record names the
// columns; column types are inferred from the values. Empty fields
// become nulls.
func ReadCSV(r io.Reader) (*tab.Dataset, error) {
	cr := csv.NewReader(r)
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("session: %s", err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("session: missing csv header")
	}

	names := recs[0]
	vals := make([][]tab.Value, len(names))
	for _, rec := range recs[1:] {
		for cdx, s := range rec {
			vals[cdx] = append(vals[cdx], parseCSVValue(s))
		}
	}

	cols := make([]tab.Column, 0, len(names))
	for cdx, nam := range names {
		col, err := tab.InferColumn(nam, vals[cdx])
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	return tab.NewDataset(cols...)
}

// WriteCSV writes a dataset as CSV with a header record. Nulls become
// empty fields.
func WriteCSV(w io.Writer, ds *tab.Dataset) error {
	cw := csv.NewWriter(w)
	err := cw.Write(ds.ColumnNames())
	if err != nil {
		return err
	}

	rec := make([]string, ds.NumColumns())
	for rdx := 0; rdx < ds.NumRows(); rdx += 1 {
		for cdx, val := range ds.Row(rdx) {
			if val == nil {
				rec[cdx] = ""
			} else if sv, ok := val.(tab.StringValue); ok {
				rec[cdx] = string(sv)
			} else {
				rec[cdx] = val.String()
			}
		}
		err = cw.Write(rec)
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
