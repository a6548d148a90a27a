// Package stmt declares the statements of the interactive surface. The
// core packages never see statements; a statement is how the host asks
// for an expression to be evaluated against the session state.
package stmt

import (
	"fmt"

	"github.com/masqdata/masq/expr"
)

type Stmt interface {
	fmt.Stringer
}

// Let binds a scope variable for the rest of the session.
type Let struct {
	Name string
	Expr expr.Expr
}

func (s *Let) String() string {
	return fmt.Sprintf("let %s = %s", s.Name, s.Expr)
}

// Filter replaces the current dataset with the rows satisfying Pred.
type Filter struct {
	Pred expr.Expr
}

func (s *Filter) String() string {
	return fmt.Sprintf("filter %s", s.Pred)
}

// Eval evaluates an expression column-wise and prints the result.
type Eval struct {
	Expr expr.Expr
}

func (s *Eval) String() string {
	return fmt.Sprintf("eval %s", s.Expr)
}

// Select projects the current dataset to the named columns. Lenient
// selection drops missing names instead of failing.
type Select struct {
	Names   []string
	Lenient bool
}

func (s *Select) String() string {
	ret := "select"
	if s.Lenient {
		ret += "?"
	}
	for i, nam := range s.Names {
		if i > 0 {
			ret += ","
		}
		ret += " " + nam
	}
	return ret
}

// Show prints the current dataset.
type Show struct{}

func (_ *Show) String() string {
	return "show"
}

// Load reads a CSV file into the session as the current dataset.
type Load struct {
	Path string
	Name string
}

func (s *Load) String() string {
	return fmt.Sprintf("load '%s' as %s", s.Path, s.Name)
}

// Save writes the current dataset to the open dataset store, or to a
// CSV file when Path is set.
type Save struct {
	Path string
}

func (s *Save) String() string {
	if s.Path != "" {
		return fmt.Sprintf("save '%s'", s.Path)
	}
	return "save"
}

// Use makes a stored dataset the current dataset.
type Use struct {
	Name string
}

func (s *Use) String() string {
	return fmt.Sprintf("use %s", s.Name)
}

// Datasets lists the datasets in the open store.
type Datasets struct{}

func (_ *Datasets) String() string {
	return "datasets"
}
