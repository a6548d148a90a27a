package parser

import (
	"fmt"
	"io"
	"runtime"

	"github.com/masqdata/masq/expr"
	"github.com/masqdata/masq/parser/scanner"
	"github.com/masqdata/masq/parser/token"
	"github.com/masqdata/masq/stmt"
)

type Parser interface {
	Parse() (stmt.Stmt, error)
	ParseExpr() (expr.Expr, error)
}

type parser struct {
	scanner   scanner.Scanner
	sctx      scanner.ScanCtx
	unscanned bool
}

func NewParser(rr io.RuneReader, fn string) Parser {
	var p parser
	p.scanner.Init(rr, fn)
	return &p
}

func (p *parser) Parse() (st stmt.Stmt, err error) {
	for {
		r := p.scan()
		if r == token.EOF {
			return nil, io.EOF
		}
		if r != token.EndOfStatement {
			break
		}
	}
	p.unscan()

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			st = nil
		}
	}()

	st = p.parseStmt()
	p.expectEndOfStatement()
	return
}

func (p *parser) ParseExpr() (e expr.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); ok {
				panic(r)
			}
			err = r.(error)
			e = nil
		}
	}()

	e = p.parseExpr()
	p.expectEndOfStatement()
	return
}

func (p *parser) error(msg string) {
	panic(fmt.Errorf("%s: %s", p.sctx.Position, msg))
}

func (p *parser) scan() rune {
	if p.unscanned {
		p.unscanned = false
		return p.sctx.Token
	}

	if p.scanner.Scan(&p.sctx) == token.Error {
		p.error(p.sctx.Error.Error())
	}
	return p.sctx.Token
}

func (p *parser) unscan() {
	p.unscanned = true
}

func (p *parser) got() string {
	switch p.sctx.Token {
	case token.EOF:
		return "end of input"
	case token.EndOfStatement:
		return "end of statement"
	case token.Identifier:
		return fmt.Sprintf("identifier %s", p.sctx.Identifier)
	case token.Reserved:
		return fmt.Sprintf("reserved word %s", p.sctx.Identifier)
	case token.String:
		return fmt.Sprintf("string %q", p.sctx.String)
	case token.Integer:
		return fmt.Sprintf("integer %d", p.sctx.Integer)
	case token.Float:
		return fmt.Sprintf("float %f", p.sctx.Float)
	}

	return token.Format(p.sctx.Token)
}

func (p *parser) expectReserved(words ...string) string {
	t := p.scan()
	if t == token.Reserved {
		for _, kw := range words {
			if kw == p.sctx.Identifier {
				return kw
			}
		}
	}

	want := ""
	for i, kw := range words {
		if i > 0 {
			want += " or "
		}
		want += kw
	}
	p.error(fmt.Sprintf("expected %s got %s", want, p.got()))
	return ""
}

func (p *parser) optionalReserved(words ...string) bool {
	t := p.scan()
	if t == token.Reserved {
		for _, kw := range words {
			if kw == p.sctx.Identifier {
				return true
			}
		}
	}

	p.unscan()
	return false
}

func (p *parser) expectIdentifier(msg string) string {
	if p.scan() != token.Identifier {
		p.error(fmt.Sprintf("%s got %s", msg, p.got()))
	}
	return p.sctx.Identifier
}

func (p *parser) expectTokens(tokens ...rune) rune {
	t := p.scan()
	for _, mt := range tokens {
		if t == mt {
			return t
		}
	}

	want := ""
	for i, mt := range tokens {
		if i > 0 {
			want += " or "
		}
		want += token.Format(mt)
	}
	p.error(fmt.Sprintf("expected %s got %s", want, p.got()))
	return 0
}

func (p *parser) maybeToken(mr rune) bool {
	if p.scan() == mr {
		return true
	}
	p.unscan()
	return false
}

func (p *parser) expectEndOfStatement() {
	r := p.scan()
	if r != token.EOF && r != token.EndOfStatement {
		p.error(fmt.Sprintf("expected end of statement got %s", p.got()))
	}
}

func (p *parser) expectString(msg string) string {
	if p.scan() != token.String {
		p.error(fmt.Sprintf("%s got %s", msg, p.got()))
	}
	return p.sctx.String
}

/*
<stmt>:
      let <name> = <expr>
    | filter <expr>
    | eval <expr>
    | select [?] <name> [, ...]
    | show
    | load '<path>' as <name>
    | save ['<path>']
    | use <name>
    | datasets
*/
func (p *parser) parseStmt() stmt.Stmt {
	switch p.expectReserved("let", "filter", "eval", "select", "show", "load", "save", "use",
		"datasets") {
	case "let":
		nam := p.expectIdentifier("expected a variable name")
		p.expectTokens(token.Equal)
		return &stmt.Let{Name: nam, Expr: p.parseExpr()}
	case "filter":
		return &stmt.Filter{Pred: p.parseExpr()}
	case "eval":
		return &stmt.Eval{Expr: p.parseExpr()}
	case "select":
		s := stmt.Select{Lenient: p.maybeToken(token.Question)}
		for {
			s.Names = append(s.Names, p.expectIdentifier("expected a column name"))
			if !p.maybeToken(token.Comma) {
				break
			}
		}
		return &s
	case "show":
		return &stmt.Show{}
	case "load":
		path := p.expectString("expected a file path")
		p.expectReserved("as")
		return &stmt.Load{Path: path, Name: p.expectIdentifier("expected a dataset name")}
	case "save":
		var s stmt.Save
		if p.scan() == token.String {
			s.Path = p.sctx.String
		} else {
			p.unscan()
		}
		return &s
	case "use":
		return &stmt.Use{Name: p.expectIdentifier("expected a dataset name")}
	case "datasets":
		return &stmt.Datasets{}
	}
	panic("unreachable")
}

/*
<expr>:
      <literal>
    | - <expr>
    | not <expr>
    | ( <expr> )
    | <expr> <op> <expr>
    | <name>
    | .data . <name>
    | .data [ <expr> ]
    | .env . <name>
    | <func> ( [<expr> [,...]] )
<op>:
      + - * / %
    | = == != < <= > >=
    | ||
    | and | or
*/

var binaryOps = map[rune]expr.Op{
	token.BarBar:       expr.ConcatOp,
	token.Equal:        expr.EqualOp,
	token.EqualEqual:   expr.EqualOp,
	token.BangEqual:    expr.NotEqualOp,
	token.Greater:      expr.GreaterThanOp,
	token.GreaterEqual: expr.GreaterEqualOp,
	token.Less:         expr.LessThanOp,
	token.LessEqual:    expr.LessEqualOp,
	token.Minus:        expr.SubtractOp,
	token.Percent:      expr.ModuloOp,
	token.Plus:         expr.AddOp,
	token.Slash:        expr.DivideOp,
	token.Star:         expr.MultiplyOp,
}

func (p *parser) parseExpr() expr.Expr {
	var e expr.Expr
	r := p.scan()
	if r == token.Reserved {
		switch p.sctx.Identifier {
		case "true":
			e = expr.True()
		case "false":
			e = expr.False()
		case "null":
			e = expr.Nil()
		case "not":
			e = p.parseUnaryExpr(expr.NotOp)
		default:
			p.error(fmt.Sprintf("unexpected reserved word %s", p.sctx.Identifier))
		}
	} else if r == token.String {
		e = expr.StringLiteral(p.sctx.String)
	} else if r == token.Integer {
		e = expr.Int64Literal(p.sctx.Integer)
	} else if r == token.Float {
		e = expr.Float64Literal(p.sctx.Float)
	} else if r == token.Identifier {
		nam := p.sctx.Identifier
		if p.maybeToken(token.LParen) {
			// <func> ( <expr> [,...] )
			c := &expr.Call{Name: nam}
			if !p.maybeToken(token.RParen) {
				for {
					c.Args = append(c.Args, p.parseExpr())
					if p.maybeToken(token.RParen) {
						break
					}
					p.expectTokens(token.Comma)
				}
			}
			e = c
		} else {
			e = expr.Sym(nam)
		}
	} else if r == token.Dot {
		e = p.parsePinnedRef()
	} else if r == token.Minus {
		// - <expr>
		e = p.parseUnaryExpr(expr.NegateOp)
	} else if r == token.LParen {
		// ( <expr> )
		e = &expr.Unary{Op: expr.NoOp, Expr: p.parseExpr()}
		if p.scan() != token.RParen {
			p.error(fmt.Sprintf("expected closing parenthesis got %s", p.got()))
		}
	} else {
		p.error(fmt.Sprintf("expected an expression got %s", p.got()))
	}

	var op expr.Op
	r = p.scan()
	op, ok := binaryOps[r]
	if !ok {
		if r == token.Reserved && p.sctx.Identifier == "and" {
			op = expr.AndOp
		} else if r == token.Reserved && p.sctx.Identifier == "or" {
			op = expr.OrOp
		} else {
			p.unscan()
			return e
		}
	}

	e2 := p.parseExpr()
	if b2, ok := e2.(*expr.Binary); ok && b2.Op.Precedence() <= op.Precedence() {
		// operators of the same precedence associate left: op binds below
		// every operator on the left spine at or below its precedence
		b := b2
		for {
			bl, ok := b.Left.(*expr.Binary)
			if !ok || bl.Op.Precedence() > op.Precedence() {
				break
			}
			b = bl
		}
		b.Left = &expr.Binary{Op: op, Left: e, Right: b.Left}
		e = e2
	} else {
		e = &expr.Binary{Op: op, Left: e, Right: e2}
	}
	return e
}

// .data . <name> | .data [ <expr> ] | .env . <name>
func (p *parser) parsePinnedRef() expr.Expr {
	nam := p.expectIdentifier("expected data or env")
	switch nam {
	case "data":
		if p.maybeToken(token.LBracket) {
			key := p.parseExpr()
			p.expectTokens(token.RBracket)
			return &expr.Index{Key: key}
		}
		p.expectTokens(token.Dot)
		return expr.Column(p.expectIdentifier("expected a column name"))
	case "env":
		p.expectTokens(token.Dot)
		return expr.ScopeVar(p.expectIdentifier("expected a variable name"))
	}
	p.error(fmt.Sprintf("expected data or env got %s", nam))
	return nil
}

func (p *parser) parseUnaryExpr(op expr.Op) expr.Expr {
	e := p.parseExpr()

	// a unary operator binds tighter than any binary operator below it
	if b, ok := e.(*expr.Binary); ok && b.Op.Precedence() < op.Precedence() {
		for {
			bl, ok := b.Left.(*expr.Binary)
			if !ok || bl.Op.Precedence() >= op.Precedence() {
				break
			}
			b = bl
		}
		b.Left = &expr.Unary{Op: op, Expr: b.Left}
		return e
	}
	return &expr.Unary{Op: op, Expr: e}
}
