package expr

import (
	"fmt"

	"github.com/masqdata/masq/resolve"
	"github.com/masqdata/masq/tab"
)

type Expr interface {
	fmt.Stringer
	Equal(e Expr) bool
}

type Op int

const (
	AddOp Op = iota
	AndOp
	ConcatOp
	DivideOp
	EqualOp
	GreaterEqualOp
	GreaterThanOp
	LessEqualOp
	LessThanOp
	ModuloOp
	MultiplyOp
	NegateOp
	NoOp
	NotEqualOp
	NotOp
	OrOp
	SubtractOp
)

var ops = [...]struct {
	name       string
	precedence int
}{
	AddOp:          {"+", 7},
	AndOp:          {"AND", 2},
	ConcatOp:       {"||", 10},
	DivideOp:       {"/", 8},
	EqualOp:        {"==", 4},
	GreaterEqualOp: {">=", 5},
	GreaterThanOp:  {">", 5},
	LessEqualOp:    {"<=", 5},
	LessThanOp:     {"<", 5},
	ModuloOp:       {"%", 8},
	MultiplyOp:     {"*", 8},
	NegateOp:       {"-", 9},
	NoOp:           {"", 11},
	NotEqualOp:     {"!=", 4},
	NotOp:          {"NOT", 3},
	OrOp:           {"OR", 1},
	SubtractOp:     {"-", 7},
}

func (op Op) Precedence() int {
	return ops[op].precedence
}

func (op Op) String() string {
	return ops[op].name
}

type Literal struct {
	Value tab.Value
}

func (l *Literal) String() string {
	return tab.Format(l.Value)
}

func (l *Literal) Equal(e Expr) bool {
	l2, ok := e.(*Literal)
	if !ok {
		return false
	}
	return tab.Compare(l.Value, l2.Value) == 0
}

func Nil() *Literal {
	return &Literal{nil}
}

func True() *Literal {
	return &Literal{tab.BoolValue(true)}
}

func False() *Literal {
	return &Literal{tab.BoolValue(false)}
}

func Int64Literal(i int64) *Literal {
	return &Literal{tab.Int64Value(i)}
}

func Float64Literal(f float64) *Literal {
	return &Literal{tab.Float64Value(f)}
}

func StringLiteral(s string) *Literal {
	return &Literal{tab.StringValue(s)}
}

// Ref is a symbol reference carrying the resolution mode that pins where
// the symbol may resolve. The mode travels on the node so that two
// references with the same text in one expression can resolve
// differently.
type Ref struct {
	Name string
	Mode resolve.Mode
}

func (r *Ref) String() string {
	switch r.Mode {
	case resolve.ColumnOnly:
		return fmt.Sprintf(".data.%s", r.Name)
	case resolve.ScopeOnly:
		return fmt.Sprintf(".env.%s", r.Name)
	}
	return r.Name
}

func (r *Ref) Equal(e Expr) bool {
	r2, ok := e.(*Ref)
	if !ok {
		return false
	}
	return r.Name == r2.Name && r.Mode == r2.Mode
}

// Sym references a symbol in default mode: columns first, then scope.
func Sym(nam string) *Ref {
	return &Ref{Name: nam, Mode: resolve.Default}
}

// Column references a dataset column and nothing else.
func Column(nam string) *Ref {
	return &Ref{Name: nam, Mode: resolve.ColumnOnly}
}

// ScopeVar references an ambient scope variable and nothing else.
func ScopeVar(nam string) *Ref {
	return &Ref{Name: nam, Mode: resolve.ScopeOnly}
}

// Index references a dataset column whose name is the result of
// evaluating Key: the indirection form .data[key].
type Index struct {
	Key Expr
}

func (x *Index) String() string {
	return fmt.Sprintf(".data[%s]", x.Key)
}

func (x *Index) Equal(e Expr) bool {
	x2, ok := e.(*Index)
	if !ok {
		return false
	}
	return x.Key.Equal(x2.Key)
}

type Unary struct {
	Op   Op
	Expr Expr
}

func (u *Unary) String() string {
	if ops[u.Op].name == "" {
		return u.Expr.String()
	}
	return fmt.Sprintf("(%s %s)", ops[u.Op].name, u.Expr)
}

func (u *Unary) Equal(e Expr) bool {
	u2, ok := e.(*Unary)
	if !ok {
		return false
	}
	return u.Op == u2.Op && u.Expr.Equal(u2.Expr)
}

type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, ops[b.Op].name, b.Right)
}

func (b *Binary) Equal(e Expr) bool {
	b2, ok := e.(*Binary)
	if !ok {
		return false
	}
	return b.Op == b2.Op && b.Left.Equal(b2.Left) && b.Right.Equal(b2.Right)
}

type Call struct {
	Name string
	Args []Expr
}

func (c *Call) String() string {
	s := fmt.Sprintf("%s(", c.Name)
	for i, a := range c.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	s += ")"
	return s
}

func (c *Call) Equal(e Expr) bool {
	c2, ok := e.(*Call)
	if !ok {
		return false
	}
	if c.Name != c2.Name || len(c.Args) != len(c2.Args) {
		return false
	}
	for i := range c.Args {
		if !c.Args[i].Equal(c2.Args[i]) {
			return false
		}
	}
	return true
}
