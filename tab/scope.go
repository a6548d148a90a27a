package tab

// Scope is a snapshot of caller supplied variables, independent of any
// dataset. NewScope copies the mapping so that a scope can not observe
// later mutation by the caller; one scope value may be shared by any
// number of concurrent evaluations.
type Scope struct {
	vars map[string]Value
}

func NewScope(vars map[string]Value) Scope {
	s := Scope{vars: map[string]Value{}}
	for nam, val := range vars {
		s.vars[nam] = val
	}
	return s
}

func EmptyScope() Scope {
	return Scope{vars: map[string]Value{}}
}

func (s Scope) Lookup(nam string) (Value, bool) {
	val, ok := s.vars[nam]
	return val, ok
}

func (s Scope) Has(nam string) bool {
	_, ok := s.vars[nam]
	return ok
}

// With returns a new scope with nam bound to val; the receiver is
// unchanged.
func (s Scope) With(nam string, val Value) Scope {
	vars := make(map[string]Value, len(s.vars)+1)
	for n, v := range s.vars {
		vars[n] = v
	}
	vars[nam] = val
	return Scope{vars: vars}
}

func (s Scope) Names() []string {
	names := make([]string, 0, len(s.vars))
	for nam := range s.vars {
		names = append(names, nam)
	}
	return names
}
