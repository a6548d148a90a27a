package tab_test

import (
	"testing"

	"github.com/masqdata/masq/tab"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		v1, v2 tab.Value
		cmp    int
	}{
		{nil, tab.BoolValue(true), -1},
		{nil, nil, 0},

		{tab.BoolValue(false), nil, 1},
		{tab.BoolValue(true), tab.BoolValue(true), 0},
		{tab.BoolValue(false), tab.BoolValue(false), 0},
		{tab.BoolValue(false), tab.BoolValue(true), -1},
		{tab.BoolValue(true), tab.BoolValue(false), 1},
		{tab.BoolValue(false), tab.Float64Value(1.23), -1},

		{tab.Float64Value(1.23), tab.BoolValue(false), 1},
		{tab.Float64Value(1.23), tab.Int64Value(123), -1},
		{tab.Float64Value(1.23), tab.StringValue("abc"), -1},
		{tab.Float64Value(1.23), tab.Float64Value(2.34), -1},
		{tab.Float64Value(1.23), tab.Float64Value(1.23), 0},
		{tab.Float64Value(1.23), tab.Float64Value(0.12), 1},

		{tab.Int64Value(123), tab.BoolValue(false), 1},
		{tab.Int64Value(123), tab.Float64Value(1.23), 1},
		{tab.Int64Value(123), tab.StringValue("abc"), -1},
		{tab.Int64Value(123), tab.Int64Value(234), -1},
		{tab.Int64Value(123), tab.Int64Value(123), 0},
		{tab.Int64Value(123), tab.Int64Value(12), 1},

		{tab.StringValue("abc"), tab.BoolValue(false), 1},
		{tab.StringValue("abc"), tab.Float64Value(1.23), 1},
		{tab.StringValue("abc"), tab.Int64Value(123), 1},
		{tab.StringValue("def"), tab.StringValue("ghi"), -1},
		{tab.StringValue("def"), tab.StringValue("def"), 0},
		{tab.StringValue("def"), tab.StringValue("abc"), 1},
	}

	for _, c := range cases {
		cmp := tab.Compare(c.v1, c.v2)
		if cmp != c.cmp {
			t.Errorf("Compare(%v, %v) got %d want %d", c.v1, c.v2, cmp, c.cmp)
		}
	}
}

func TestConvertValue(t *testing.T) {
	cases := []struct {
		dt   tab.DataType
		v    tab.Value
		r    tab.Value
		fail bool
	}{
		{dt: tab.BooleanType, v: tab.StringValue("t"), r: tab.BoolValue(true)},
		{dt: tab.BooleanType, v: tab.StringValue(" no\n"), r: tab.BoolValue(false)},
		{dt: tab.BooleanType, v: tab.StringValue("maybe"), fail: true},
		{dt: tab.BooleanType, v: tab.Int64Value(1), fail: true},
		{dt: tab.StringType, v: tab.Int64Value(123), r: tab.StringValue("123")},
		{dt: tab.StringType, v: tab.Float64Value(1.5), r: tab.StringValue("1.5")},
		{dt: tab.FloatType, v: tab.Int64Value(123), r: tab.Float64Value(123)},
		{dt: tab.FloatType, v: tab.StringValue("1.25"), r: tab.Float64Value(1.25)},
		{dt: tab.FloatType, v: tab.StringValue("abc"), fail: true},
		{dt: tab.IntegerType, v: tab.StringValue(" 123 "), r: tab.Int64Value(123)},
		{dt: tab.IntegerType, v: tab.StringValue("1.5"), fail: true},
		{dt: tab.IntegerType, v: tab.BoolValue(true), fail: true},
	}

	for _, c := range cases {
		r, err := tab.ConvertValue(c.dt, c.v)
		if c.fail {
			if err == nil {
				t.Errorf("ConvertValue(%s, %v) did not fail", c.dt, c.v)
			}
			continue
		}
		if err != nil {
			t.Errorf("ConvertValue(%s, %v) failed with %s", c.dt, c.v, err)
			continue
		}
		if tab.Compare(r, c.r) != 0 {
			t.Errorf("ConvertValue(%s, %v) got %v want %v", c.dt, c.v, r, c.r)
		}
	}
}
