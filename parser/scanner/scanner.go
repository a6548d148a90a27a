package scanner

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/masqdata/masq/parser/token"
)

// Reserved words; everything else that scans like an identifier is one.
var reserved = map[string]bool{
	"and": true, "or": true, "not": true, "true": true, "false": true, "null": true,
	"let": true, "filter": true, "eval": true, "select": true, "show": true,
	"load": true, "save": true, "use": true, "datasets": true, "as": true,
}

type Position struct {
	Filename string
	Line     int
	Column   int
}

func (pos Position) String() string {
	s := pos.Filename
	if pos.Line > 0 {
		s += fmt.Sprintf(":%d:%d", pos.Line, pos.Column)
	}
	return s
}

type ScanCtx struct {
	Token      rune
	Error      error
	Identifier string // Identifier and Reserved
	String     string
	Integer    int64
	Float      float64
	Position
}

type Scanner struct {
	initialized bool
	rr          io.RuneReader
	unread      bool
	read        rune
	filename    string
	line        int
	column      int
	buffer      bytes.Buffer
}

func (s *Scanner) Init(rr io.RuneReader, fn string) {
	if s.initialized {
		panic("scanner already initialized")
	}
	s.initialized = true

	s.rr = rr
	s.filename = fn
	s.line = 1
}

func (s *Scanner) Scan(sctx *ScanCtx) rune {
	s.buffer.Reset()
	sctx.Filename = s.filename
	sctx.Token = s.scan(sctx)
	return sctx.Token
}

func (s *Scanner) scan(sctx *ScanCtx) rune {
	r := s.readRune(sctx)

	for {
		if r < 0 {
			return r
		}
		if r == '\n' {
			// statements end at a newline or a semicolon
			return token.EndOfStatement
		}
		if !unicode.IsSpace(r) {
			break
		}

		r = s.readRune(sctx)
	}

	if r == ';' {
		return token.EndOfStatement
	}

	if r == '-' {
		if r2 := s.readRune(sctx); r2 == '-' {
			for {
				r2 = s.readRune(sctx)
				if r2 < 0 {
					return r2
				}

				if r2 == '\n' {
					// the comment runs to the end of the statement
					return token.EndOfStatement
				}
			}
		} else if r2 < 0 {
			return r2
		} else {
			s.unreadRune()
		}
	}

	sctx.Column = s.column
	sctx.Line = s.line

	if unicode.IsLetter(r) || r == '_' {
		return s.scanIdentifier(sctx, r)
	} else if unicode.IsDigit(r) {
		return s.scanNumber(sctx, r)
	} else if r == '\'' {
		return s.scanString(sctx)
	} else if token.IsOpRune(r) {
		s.buffer.WriteRune(r)
		r2 := s.readRune(sctx)
		if r2 == '-' || r2 == '+' {
			s.unreadRune()
			return r
		} else if token.IsOpRune(r2) {
			s.buffer.WriteRune(r2)
			if r3, ok := token.Operators[s.buffer.String()]; ok {
				return r3
			}
			sctx.Error = fmt.Errorf("scanner: unexpected operator %s", s.buffer.String())
			return token.Error
		}
		s.unreadRune()
		return r
	} else if r == '.' || r == ',' || r == '(' || r == ')' || r == '[' || r == ']' ||
		r == '?' {

		return r
	}

	sctx.Error = fmt.Errorf("scanner: unexpected character '%c'", r)
	return token.Error
}

func (s *Scanner) readRune(sctx *ScanCtx) rune {
	if s.unread {
		s.unread = false
		return s.read
	}

	var err error
	s.read, _, err = s.rr.ReadRune()
	if err == io.EOF {
		s.read = token.EOF
		return token.EOF
	} else if err != nil {
		sctx.Error = err
		return token.Error
	}

	if s.read == '\n' {
		s.line += 1
		s.column = 0
	} else {
		s.column += 1
	}

	return s.read
}

func (s *Scanner) unreadRune() {
	s.unread = true
}

func (s *Scanner) scanIdentifier(sctx *ScanCtx, r rune) rune {
	for {
		s.buffer.WriteRune(r)
		r = s.readRune(sctx)
		if r < 0 {
			break
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			s.unreadRune()
			break
		}
	}

	sctx.Identifier = s.buffer.String()
	if reserved[strings.ToLower(sctx.Identifier)] {
		sctx.Identifier = strings.ToLower(sctx.Identifier)
		return token.Reserved
	}
	return token.Identifier
}

func (s *Scanner) scanNumber(sctx *ScanCtx, r rune) rune {
	float := false
	for {
		s.buffer.WriteRune(r)
		r = s.readRune(sctx)
		if r == '.' {
			if float {
				sctx.Error = fmt.Errorf("scanner: unexpected character '.'")
				return token.Error
			}
			float = true
			continue
		}
		if r < 0 {
			break
		}
		if !unicode.IsDigit(r) {
			s.unreadRune()
			break
		}
	}

	if float {
		f, err := strconv.ParseFloat(s.buffer.String(), 64)
		if err != nil {
			sctx.Error = fmt.Errorf("scanner: %s", err)
			return token.Error
		}
		sctx.Float = f
		return token.Float
	}

	i, err := strconv.ParseInt(s.buffer.String(), 10, 64)
	if err != nil {
		sctx.Error = fmt.Errorf("scanner: %s", err)
		return token.Error
	}
	sctx.Integer = i
	return token.Integer
}

func (s *Scanner) scanString(sctx *ScanCtx) rune {
	for {
		r := s.readRune(sctx)
		if r < 0 {
			sctx.Error = fmt.Errorf("scanner: unterminated string")
			return token.Error
		}
		if r == '\'' {
			r = s.readRune(sctx)
			if r != '\'' {
				if r > 0 {
					s.unreadRune()
				}
				break
			}
		}
		s.buffer.WriteRune(r)
	}

	sctx.String = s.buffer.String()
	return token.String
}
