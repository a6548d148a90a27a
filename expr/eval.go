package expr

import (
	"fmt"

	"github.com/masqdata/masq/resolve"
	"github.com/masqdata/masq/tab"
)

// TypeMismatchError reports an operand whose type does not fit the
// operator. Integer and float operands promote to float; no other
// coercion happens.
type TypeMismatchError struct {
	Want string
	Got  tab.Value
}

func (err *TypeMismatchError) Error() string {
	return fmt.Sprintf("expr: want %s got %s", err.Want, tab.Format(err.Got))
}

func (l *Literal) Eval(ectx EvalContext) (tab.Value, error) {
	return l.Value, nil
}

type symRef struct {
	name string
	mode resolve.Mode
}

func (sr *symRef) String() string {
	return (&Ref{Name: sr.name, Mode: sr.mode}).String()
}

func (sr *symRef) Eval(ectx EvalContext) (tab.Value, error) {
	return ectx.Resolve(sr.name, sr.mode)
}

type indexRef struct {
	key CExpr
}

func (xr *indexRef) String() string {
	return fmt.Sprintf(".data[%s]", xr.key)
}

func (xr *indexRef) Eval(ectx EvalContext) (tab.Value, error) {
	key, err := xr.key.Eval(ectx)
	if err != nil {
		return nil, err
	}
	return ectx.ResolveKey(key)
}

type call struct {
	call *callFunc
	args []CExpr
}

func (c *call) String() string {
	s := fmt.Sprintf("%s(", c.call.name)
	for i, a := range c.args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	s += ")"
	return s
}

func (c *call) Eval(ectx EvalContext) (tab.Value, error) {
	args := make([]tab.Value, len(c.args))
	for i, a := range c.args {
		var err error
		args[i], err = a.Eval(ectx)
		if err != nil {
			return nil, err
		} else if args[i] == nil && !c.call.handleNull {
			return nil, nil
		}
	}
	return c.call.fn(args)
}

func numFunc(a0 tab.Value, a1 tab.Value, ifn func(i0, i1 tab.Int64Value) tab.Value,
	ffn func(f0, f1 tab.Float64Value) tab.Value) (tab.Value, error) {

	switch a0 := a0.(type) {
	case tab.Float64Value:
		switch a1 := a1.(type) {
		case tab.Float64Value:
			return ffn(a0, a1), nil
		case tab.Int64Value:
			return ffn(a0, tab.Float64Value(a1)), nil
		}
	case tab.Int64Value:
		switch a1 := a1.(type) {
		case tab.Float64Value:
			return ffn(tab.Float64Value(a0), a1), nil
		case tab.Int64Value:
			return ifn(a0, a1), nil
		}
	default:
		return nil, &TypeMismatchError{Want: "number", Got: a0}
	}
	return nil, &TypeMismatchError{Want: "number", Got: a1}
}

func intFunc(a0 tab.Value, a1 tab.Value, ifn func(i0, i1 tab.Int64Value) tab.Value) (tab.Value,
	error) {

	if a0, ok := a0.(tab.Int64Value); ok {
		if a1, ok := a1.(tab.Int64Value); ok {
			return ifn(a0, a1), nil
		}
		return nil, &TypeMismatchError{Want: "integer", Got: a1}
	}
	return nil, &TypeMismatchError{Want: "integer", Got: a0}
}

func compareFunc(a0, a1 tab.Value) (int, error) {
	cmp, err := a0.Compare(a1)
	if err != nil {
		return 0, &TypeMismatchError{Want: typeName(a0), Got: a1}
	}
	return cmp, nil
}

func typeName(v tab.Value) string {
	switch v.(type) {
	case tab.BoolValue:
		return "boolean"
	case tab.Float64Value, tab.Int64Value:
		return "number"
	case tab.StringValue:
		return "string"
	}
	return "null"
}

func addCall(args []tab.Value) (tab.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 tab.Int64Value) tab.Value {
			return i0 + i1
		},
		func(f0, f1 tab.Float64Value) tab.Value {
			return f0 + f1
		})
}

func andCall(args []tab.Value) (tab.Value, error) {
	if a0, ok := args[0].(tab.BoolValue); ok {
		if a1, ok := args[1].(tab.BoolValue); ok {
			return a0 && a1, nil
		}
		return nil, &TypeMismatchError{Want: "boolean", Got: args[1]}
	}
	return nil, &TypeMismatchError{Want: "boolean", Got: args[0]}
}

func concatCall(args []tab.Value) (tab.Value, error) {
	s := ""
	for _, a := range args {
		if a == nil {
			continue
		}
		switch v := a.(type) {
		case tab.BoolValue:
			if v {
				s += tab.TrueString
			} else {
				s += tab.FalseString
			}
		case tab.StringValue:
			s += string(v)
		case tab.Float64Value:
			s += fmt.Sprintf("%v", v)
		case tab.Int64Value:
			s += fmt.Sprintf("%v", v)
		default:
			panic("unexpected tab.Value")
		}
	}
	return tab.StringValue(s), nil
}

func divideCall(args []tab.Value) (tab.Value, error) {
	if i1, ok := args[1].(tab.Int64Value); ok && i1 == 0 {
		return nil, fmt.Errorf("expr: division by zero")
	}
	return numFunc(args[0], args[1],
		func(i0, i1 tab.Int64Value) tab.Value {
			return i0 / i1
		},
		func(f0, f1 tab.Float64Value) tab.Value {
			return f0 / f1
		})
}

func equalCall(args []tab.Value) (tab.Value, error) {
	cmp, err := compareFunc(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return tab.BoolValue(cmp == 0), nil
}

func greaterEqualCall(args []tab.Value) (tab.Value, error) {
	cmp, err := compareFunc(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return tab.BoolValue(cmp >= 0), nil
}

func greaterThanCall(args []tab.Value) (tab.Value, error) {
	cmp, err := compareFunc(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return tab.BoolValue(cmp > 0), nil
}

func lessEqualCall(args []tab.Value) (tab.Value, error) {
	cmp, err := compareFunc(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return tab.BoolValue(cmp <= 0), nil
}

func lessThanCall(args []tab.Value) (tab.Value, error) {
	cmp, err := compareFunc(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return tab.BoolValue(cmp < 0), nil
}

func moduloCall(args []tab.Value) (tab.Value, error) {
	if i1, ok := args[1].(tab.Int64Value); ok && i1 == 0 {
		return nil, fmt.Errorf("expr: division by zero")
	}
	return intFunc(args[0], args[1],
		func(i0, i1 tab.Int64Value) tab.Value {
			return i0 % i1
		})
}

func multiplyCall(args []tab.Value) (tab.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 tab.Int64Value) tab.Value {
			return i0 * i1
		},
		func(f0, f1 tab.Float64Value) tab.Value {
			return f0 * f1
		})
}

func negateCall(args []tab.Value) (tab.Value, error) {
	switch a0 := args[0].(type) {
	case tab.Float64Value:
		return -a0, nil
	case tab.Int64Value:
		return -a0, nil
	}
	return nil, &TypeMismatchError{Want: "number", Got: args[0]}
}

func notEqualCall(args []tab.Value) (tab.Value, error) {
	cmp, err := compareFunc(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return tab.BoolValue(cmp != 0), nil
}

func notCall(args []tab.Value) (tab.Value, error) {
	if a0, ok := args[0].(tab.BoolValue); ok {
		return tab.BoolValue(a0 == false), nil
	}
	return nil, &TypeMismatchError{Want: "boolean", Got: args[0]}
}

func orCall(args []tab.Value) (tab.Value, error) {
	if a0, ok := args[0].(tab.BoolValue); ok {
		if a1, ok := args[1].(tab.BoolValue); ok {
			return a0 || a1, nil
		}
		return nil, &TypeMismatchError{Want: "boolean", Got: args[1]}
	}
	return nil, &TypeMismatchError{Want: "boolean", Got: args[0]}
}

func subtractCall(args []tab.Value) (tab.Value, error) {
	return numFunc(args[0], args[1],
		func(i0, i1 tab.Int64Value) tab.Value {
			return i0 - i1
		},
		func(f0, f1 tab.Float64Value) tab.Value {
			return f0 - f1
		})
}

func absCall(args []tab.Value) (tab.Value, error) {
	switch a0 := args[0].(type) {
	case tab.Float64Value:
		if a0 < 0 {
			return -a0, nil
		}
		return a0, nil
	case tab.Int64Value:
		if a0 < 0 {
			return -a0, nil
		}
		return a0, nil
	}
	return nil, &TypeMismatchError{Want: "number", Got: args[0]}
}

func coalesceCall(args []tab.Value) (tab.Value, error) {
	for _, a := range args {
		if a != nil {
			return a, nil
		}
	}
	return nil, nil
}

func isNullCall(args []tab.Value) (tab.Value, error) {
	return tab.BoolValue(args[0] == nil), nil
}

func isBoolCall(args []tab.Value) (tab.Value, error) {
	_, ok := args[0].(tab.BoolValue)
	return tab.BoolValue(ok), nil
}

func isIntCall(args []tab.Value) (tab.Value, error) {
	_, ok := args[0].(tab.Int64Value)
	return tab.BoolValue(ok), nil
}

func isFloatCall(args []tab.Value) (tab.Value, error) {
	_, ok := args[0].(tab.Float64Value)
	return tab.BoolValue(ok), nil
}

func isStringCall(args []tab.Value) (tab.Value, error) {
	_, ok := args[0].(tab.StringValue)
	return tab.BoolValue(ok), nil
}
