package expr

import (
	"fmt"
	"math"

	"github.com/masqdata/masq/resolve"
	"github.com/masqdata/masq/tab"
)

// EvalContext supplies name resolution during evaluation. Compilation
// never resolves names: the mode tag on every reference is consulted per
// symbol at evaluation time, so the same text can resolve differently in
// one expression.
type EvalContext interface {
	Resolve(sym string, mode resolve.Mode) (tab.Value, error)
	ResolveKey(key tab.Value) (tab.Value, error)
	ResolveColumn(sym string, mode resolve.Mode) ([]tab.Value, error)
	ResolveColumnKey(key tab.Value) ([]tab.Value, error)
}

type CExpr interface {
	fmt.Stringer
	Eval(ectx EvalContext) (tab.Value, error)
}

// Compile lowers an expression tree to a compiled form: operators and
// function names are bound to their implementations and arity is
// checked. References are left unresolved.
func Compile(e Expr) (CExpr, error) {
	switch e := e.(type) {
	case *Literal:
		return e, nil
	case *Ref:
		return &symRef{name: e.Name, mode: e.Mode}, nil
	case *Index:
		key, err := Compile(e.Key)
		if err != nil {
			return nil, err
		}
		return &indexRef{key: key}, nil
	case *Unary:
		if e.Op == NoOp {
			return Compile(e.Expr)
		}
		cf := opFuncs[e.Op]
		a1, err := Compile(e.Expr)
		if err != nil {
			return nil, err
		}
		return &call{cf, []CExpr{a1}}, nil
	case *Binary:
		cf := opFuncs[e.Op]
		a1, err := Compile(e.Left)
		if err != nil {
			return nil, err
		}
		a2, err := Compile(e.Right)
		if err != nil {
			return nil, err
		}
		return &call{cf, []CExpr{a1, a2}}, nil
	case *Call:
		if maker, ok := aggFuncs[e.Name]; ok {
			return compileAggregate(e, maker)
		}
		cf, ok := idFuncs[e.Name]
		if !ok {
			return nil, fmt.Errorf("expr: function \"%s\" not found", e.Name)
		}
		if len(e.Args) < int(cf.minArgs) {
			return nil, fmt.Errorf("expr: function \"%s\": minimum %d arguments got %d",
				e.Name, cf.minArgs, len(e.Args))
		}
		if len(e.Args) > int(cf.maxArgs) {
			return nil, fmt.Errorf("expr: function \"%s\": maximum %d arguments got %d",
				e.Name, cf.maxArgs, len(e.Args))
		}

		args := make([]CExpr, len(e.Args))
		for i, a := range e.Args {
			var err error
			args[i], err = Compile(a)
			if err != nil {
				return nil, err
			}
		}
		return &call{cf, args}, nil
	default:
		panic(fmt.Sprintf("missing case for expr: %T", e))
	}
}

type callFunc struct {
	fn         func(args []tab.Value) (tab.Value, error)
	minArgs    int16
	maxArgs    int16
	handleNull bool
	name       string
}

var opFuncs = map[Op]*callFunc{
	AddOp:          {fn: addCall, minArgs: 2, maxArgs: 2},
	AndOp:          {fn: andCall, minArgs: 2, maxArgs: 2},
	ConcatOp:       {fn: concatCall, minArgs: 2, maxArgs: 2, handleNull: true},
	DivideOp:       {fn: divideCall, minArgs: 2, maxArgs: 2},
	EqualOp:        {fn: equalCall, minArgs: 2, maxArgs: 2},
	GreaterEqualOp: {fn: greaterEqualCall, minArgs: 2, maxArgs: 2},
	GreaterThanOp:  {fn: greaterThanCall, minArgs: 2, maxArgs: 2},
	LessEqualOp:    {fn: lessEqualCall, minArgs: 2, maxArgs: 2},
	LessThanOp:     {fn: lessThanCall, minArgs: 2, maxArgs: 2},
	ModuloOp:       {fn: moduloCall, minArgs: 2, maxArgs: 2},
	MultiplyOp:     {fn: multiplyCall, minArgs: 2, maxArgs: 2},
	NegateOp:       {fn: negateCall, minArgs: 1, maxArgs: 1},
	NotEqualOp:     {fn: notEqualCall, minArgs: 2, maxArgs: 2},
	NotOp:          {fn: notCall, minArgs: 1, maxArgs: 1},
	OrOp:           {fn: orCall, minArgs: 2, maxArgs: 2},
	SubtractOp:     {fn: subtractCall, minArgs: 2, maxArgs: 2},
}

var idFuncs = map[string]*callFunc{
	"abs":       {fn: absCall, minArgs: 1, maxArgs: 1},
	"coalesce":  {fn: coalesceCall, minArgs: 1, maxArgs: math.MaxInt16, handleNull: true},
	"concat":    {fn: concatCall, minArgs: 2, maxArgs: math.MaxInt16, handleNull: true},
	"is_bool":   {fn: isBoolCall, minArgs: 1, maxArgs: 1, handleNull: true},
	"is_float":  {fn: isFloatCall, minArgs: 1, maxArgs: 1, handleNull: true},
	"is_int":    {fn: isIntCall, minArgs: 1, maxArgs: 1, handleNull: true},
	"is_null":   {fn: isNullCall, minArgs: 1, maxArgs: 1, handleNull: true},
	"is_string": {fn: isStringCall, minArgs: 1, maxArgs: 1, handleNull: true},
}

func init() {
	for op, cf := range opFuncs {
		if op == NegateOp {
			// SubtractOp prints as - too
			cf.name = "negate"
		} else {
			cf.name = fmt.Sprintf("\"%s\"", op)
		}
		if op == NegateOp || op == NotOp {
			if cf.minArgs != 1 || cf.maxArgs != 1 {
				panic(fmt.Sprintf("opFuncs[%s]: minArgs != 1 || maxArgs != 1", op))
			}
		} else {
			if cf.minArgs != 2 || cf.maxArgs != 2 {
				panic(fmt.Sprintf("opFuncs[%s]: minArgs != 2 || maxArgs != 2", op))
			}
		}
	}

	for id, cf := range idFuncs {
		cf.name = id
		if cf.minArgs < 0 || cf.maxArgs < cf.minArgs {
			panic(fmt.Sprintf("idFuncs[%s]: minArgs < 0 || maxArgs < minArgs", id))
		}
	}
}
