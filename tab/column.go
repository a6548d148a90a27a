package tab

import (
	"fmt"
)

// Column is a named, typed, ordered sequence of values with one entry per
// row. Entries may be null; every non-null entry must match the column's
// declared type (integer entries are allowed in float columns).
type Column struct {
	Name   string
	Type   DataType
	Values []Value
}

func (col Column) Len() int {
	return len(col.Values)
}

func (col Column) check() error {
	for rdx, v := range col.Values {
		if v == nil {
			continue
		}
		dt, ok := TypeOf(v)
		if !ok {
			return fmt.Errorf("tab: column %s: unexpected value %v", col.Name, v)
		}
		if dt == col.Type {
			continue
		}
		if col.Type == FloatType && dt == IntegerType {
			continue
		}
		return fmt.Errorf("tab: column %s: row %d: want %s got %s", col.Name, rdx, col.Type,
			dt)
	}
	return nil
}

// InferColumn builds a column from values, inferring the narrowest type
// that fits all non-null entries. A column of only nulls is a string
// column; mixing integers and floats infers a float column.
func InferColumn(nam string, vals []Value) (Column, error) {
	var dt DataType
	for _, v := range vals {
		vt, ok := TypeOf(v)
		if !ok {
			if v == nil {
				continue
			}
			return Column{}, fmt.Errorf("tab: column %s: unexpected value %v", nam, v)
		}
		if dt == 0 || dt == vt {
			dt = vt
		} else if (dt == IntegerType && vt == FloatType) ||
			(dt == FloatType && vt == IntegerType) {

			dt = FloatType
		} else {
			return Column{}, fmt.Errorf("tab: column %s: mixed %s and %s values", nam, dt,
				vt)
		}
	}
	if dt == 0 {
		dt = StringType
	}
	return Column{Name: nam, Type: dt, Values: vals}, nil
}

func IntColumn(nam string, vals ...int64) Column {
	col := Column{Name: nam, Type: IntegerType, Values: make([]Value, 0, len(vals))}
	for _, v := range vals {
		col.Values = append(col.Values, Int64Value(v))
	}
	return col
}

func FloatColumn(nam string, vals ...float64) Column {
	col := Column{Name: nam, Type: FloatType, Values: make([]Value, 0, len(vals))}
	for _, v := range vals {
		col.Values = append(col.Values, Float64Value(v))
	}
	return col
}

func StringColumn(nam string, vals ...string) Column {
	col := Column{Name: nam, Type: StringType, Values: make([]Value, 0, len(vals))}
	for _, v := range vals {
		col.Values = append(col.Values, StringValue(v))
	}
	return col
}

func BoolColumn(nam string, vals ...bool) Column {
	col := Column{Name: nam, Type: BooleanType, Values: make([]Value, 0, len(vals))}
	for _, v := range vals {
		col.Values = append(col.Values, BoolValue(v))
	}
	return col
}
