package token

import (
	"fmt"
)

const (
	EOF = -(iota + 1)
	EndOfStatement
	Error
	Identifier
	Reserved
	String
	Integer
	Float

	BarBar
	LessEqual
	GreaterEqual
	EqualEqual
	BangEqual
)

const (
	Comma    = ','
	Dot      = '.'
	LParen   = '('
	RParen   = ')'
	LBracket = '['
	RBracket = ']'
	Question = '?'
)

const (
	Minus   = '-'
	Plus    = '+'
	Star    = '*'
	Slash   = '/'
	Percent = '%'
	Equal   = '='
	Less    = '<'
	Greater = '>'
	Bar     = '|'
	Bang    = '!'
)

var operators = map[rune]string{
	BarBar:       "||",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	EqualEqual:   "==",
	BangEqual:    "!=",
}

var (
	opRunes = map[rune]bool{
		'-': true, '+': true, '*': true, '/': true, '%': true, '=': true, '<': true,
		'>': true, '|': true, '!': true,
	}
	Operators = map[string]rune{}
)

func init() {
	for r, s := range operators {
		Operators[s] = r
	}
}

func IsOpRune(r rune) bool {
	_, ok := opRunes[r]
	return ok
}

func Format(r rune) string {
	if r > 0 {
		return fmt.Sprintf("rune %c", r)
	}
	if s, ok := operators[r]; ok {
		return s
	}

	switch r {
	case EOF:
		return "EOF"
	case EndOfStatement:
		return "EndOfStatement"
	case Error:
		return "Error"
	case Identifier:
		return "Identifier"
	case Reserved:
		return "Reserved"
	case String:
		return "String"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	}

	return fmt.Sprintf("unknown token %d", r)
}
