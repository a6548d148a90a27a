package expr

import (
	"fmt"

	"github.com/masqdata/masq/tab"
)

// Aggregates operate on a whole column regardless of the row the rest of
// the expression is evaluated against, so filter x > avg(x) works. The
// argument must name a column: a reference or an indirection.
type Aggregator interface {
	Accumulate(val tab.Value) error
	Total() (tab.Value, error)
}

type MakeAggregator func() Aggregator

var aggFuncs = map[string]MakeAggregator{
	"avg":   makeAvgAggregator,
	"count": makeCountAggregator,
	"max":   makeMaxAggregator,
	"mean":  makeAvgAggregator,
	"min":   makeMinAggregator,
	"sum":   makeSumAggregator,
}

func compileAggregate(c *Call, maker MakeAggregator) (CExpr, error) {
	if len(c.Args) != 1 {
		return nil, fmt.Errorf("expr: function \"%s\": want 1 argument got %d", c.Name,
			len(c.Args))
	}

	switch a := c.Args[0].(type) {
	case *Ref:
		return &colAgg{name: c.Name, maker: maker, ref: a}, nil
	case *Index:
		key, err := Compile(a.Key)
		if err != nil {
			return nil, err
		}
		return &colAgg{name: c.Name, maker: maker, key: key}, nil
	}
	return nil, fmt.Errorf("expr: function \"%s\": want a column reference got %s", c.Name,
		c.Args[0])
}

type colAgg struct {
	name  string
	maker MakeAggregator
	ref   *Ref
	key   CExpr
}

func (ca *colAgg) String() string {
	if ca.ref != nil {
		return fmt.Sprintf("%s(%s)", ca.name, ca.ref)
	}
	return fmt.Sprintf("%s(.data[%s])", ca.name, ca.key)
}

func (ca *colAgg) Eval(ectx EvalContext) (tab.Value, error) {
	var vals []tab.Value
	var err error
	if ca.ref != nil {
		vals, err = ectx.ResolveColumn(ca.ref.Name, ca.ref.Mode)
	} else {
		var key tab.Value
		key, err = ca.key.Eval(ectx)
		if err != nil {
			return nil, err
		}
		vals, err = ectx.ResolveColumnKey(key)
	}
	if err != nil {
		return nil, err
	}

	agg := ca.maker()
	for _, val := range vals {
		err = agg.Accumulate(val)
		if err != nil {
			return nil, err
		}
	}
	return agg.Total()
}

type sumAggregator struct {
	sum     tab.Value
	nonNull bool
}

func (sa *sumAggregator) Accumulate(val tab.Value) error {
	if !sa.nonNull {
		switch val.(type) {
		case tab.Float64Value, tab.Int64Value:
			sa.sum = val
			sa.nonNull = true
		}
		return nil
	}

	var err error
	sa.sum, err = numFunc(sa.sum, val,
		func(i0, i1 tab.Int64Value) tab.Value {
			return i0 + i1
		},
		func(f0, f1 tab.Float64Value) tab.Value {
			return f0 + f1
		})
	return err
}

func (sa *sumAggregator) Total() (tab.Value, error) {
	if sa.nonNull {
		return sa.sum, nil
	}
	return nil, nil
}

func makeSumAggregator() Aggregator {
	return &sumAggregator{}
}

type avgAggregator struct {
	sumAggregator
	count tab.Int64Value
}

func (aa *avgAggregator) Accumulate(val tab.Value) error {
	switch val.(type) {
	case tab.Float64Value, tab.Int64Value:
		aa.count += 1
	}
	return aa.sumAggregator.Accumulate(val)
}

func (aa *avgAggregator) Total() (tab.Value, error) {
	if aa.nonNull {
		switch s := aa.sum.(type) {
		case tab.Float64Value:
			return s / tab.Float64Value(aa.count), nil
		case tab.Int64Value:
			if s%aa.count == 0 {
				return s / aa.count, nil
			}
			return tab.Float64Value(s) / tab.Float64Value(aa.count), nil
		}
	}
	return nil, nil
}

func makeAvgAggregator() Aggregator {
	return &avgAggregator{}
}

type countAggregator struct {
	count int64
}

func (ca *countAggregator) Accumulate(val tab.Value) error {
	if val != nil {
		ca.count += 1
	}
	return nil
}

func (ca *countAggregator) Total() (tab.Value, error) {
	return tab.Int64Value(ca.count), nil
}

func makeCountAggregator() Aggregator {
	return &countAggregator{}
}

type maxAggregator struct {
	max     tab.Value
	nonNull bool
}

func (ma *maxAggregator) Accumulate(val tab.Value) error {
	if ma.nonNull {
		cmp, err := ma.max.Compare(val)
		if err == nil && cmp < 0 {
			ma.max = val
		}
	} else if val != nil {
		ma.max = val
		ma.nonNull = true
	}
	return nil
}

func (ma *maxAggregator) Total() (tab.Value, error) {
	if ma.nonNull {
		return ma.max, nil
	}
	return nil, nil
}

func makeMaxAggregator() Aggregator {
	return &maxAggregator{}
}

type minAggregator struct {
	min     tab.Value
	nonNull bool
}

func (ma *minAggregator) Accumulate(val tab.Value) error {
	if ma.nonNull {
		cmp, err := ma.min.Compare(val)
		if err == nil && cmp > 0 {
			ma.min = val
		}
	} else if val != nil {
		ma.min = val
		ma.nonNull = true
	}
	return nil
}

func (ma *minAggregator) Total() (tab.Value, error) {
	if ma.nonNull {
		return ma.min, nil
	}
	return nil, nil
}

func makeMinAggregator() Aggregator {
	return &minAggregator{}
}
