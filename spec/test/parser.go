package test

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	verr "github.com/nihei9/rime/error"
	"github.com/nihei9/rime/engine"
	"github.com/nihei9/rime/syntax"
)

type StatementKind string

const (
	// StatementKindValid asserts that a pattern is well-formed.
	StatementKindValid = StatementKind("valid")

	// StatementKindInvalid asserts that a pattern is rejected with a specific error kind.
	StatementKindInvalid = StatementKind("invalid")

	// StatementKindMatch asserts that a pattern finds a specific number of non-overlapping matches in a text.
	StatementKindMatch = StatementKind("match")
)

type Statement struct {
	Kind    StatementKind
	Pattern string

	// Error is set only for the invalid statements.
	Error syntax.ErrorKind

	// Text and Count are set only for the match statements.
	Text  string
	Count int

	// Row is the 1-based line number of the statement in the test case file.
	Row int
}

func (s *Statement) String() string {
	switch s.Kind {
	case StatementKindInvalid:
		return fmt.Sprintf("%v %v %q", s.Kind, s.Error, s.Pattern)
	case StatementKindMatch:
		return fmt.Sprintf("%v %q %q %v", s.Kind, s.Pattern, s.Text, s.Count)
	default:
		return fmt.Sprintf("%v %q", s.Kind, s.Pattern)
	}
}

type TestCase struct {
	Description string
	Statements  []*Statement
}

// ParseTestCase reads a test case. A test case file is either a sequence of statements or a free-form
// description and a sequence of statements separated by a line consisting of three or more hyphens.
func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}

	var desc string
	var body *testCasePart
	rowOffset := 0
	switch len(parts) {
	case 0:
		return &TestCase{}, nil
	case 1:
		body = parts[0]
	case 2:
		desc = string(parts[0].buf)
		body = parts[1]
		rowOffset = parts[0].lineCount + 1
	default:
		return nil, &verr.SpecError{
			Cause: synErrTooManyParts,
			Row:   parts[0].lineCount + parts[1].lineCount + 2,
			Col:   1,
		}
	}

	lex, err := newLexer(bytes.NewReader(body.buf), rowOffset)
	if err != nil {
		return nil, err
	}
	p := &parser{
		lex: lex,
	}
	stmts, err := p.parse()
	if err != nil {
		return nil, err
	}

	return &TestCase{
		Description: desc,
		Statements:  stmts,
	}, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = engine.MustCompile(`^\s*-{3,}\s*$`)

func isDelimiter(line []byte) bool {
	ok, err := reDelim.MatchString(string(line))
	return err == nil && ok
}

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if isDelimiter(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if isDelimiter(line) {
			return buf.Bytes(), lineCount, nil
		}
		buf.WriteByte('\n')
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

func raiseSyntaxError(synErr *SyntaxError, detail string, pos Position) {
	panic(&verr.SpecError{
		Cause:  synErr,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

func (p *parser) parse() (stmts []*Statement, retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			panic(v)
		}
		retErr = err
	}()
	return p.parseStatements(), nil
}

func (p *parser) parseStatements() []*Statement {
	var stmts []*Statement
	for {
		for p.consume(tokenKindNewline) {
		}
		if p.consume(tokenKindEOF) {
			return stmts
		}
		stmts = append(stmts, p.parseStatement())
		if p.consume(tokenKindEOF) {
			return stmts
		}
		if !p.consume(tokenKindNewline) {
			raiseSyntaxError(synErrStmtNoNewline, p.peekedTok.text, p.peekedTok.pos)
		}
	}
}

func (p *parser) parseStatement() *Statement {
	switch {
	case p.consume(tokenKindKWValid):
		row := p.lastTok.pos.Row
		return &Statement{
			Kind:    StatementKindValid,
			Pattern: p.parseString(synErrNoPattern),
			Row:     row,
		}
	case p.consume(tokenKindKWInvalid):
		row := p.lastTok.pos.Row
		if !p.consume(tokenKindID) {
			raiseSyntaxError(synErrNoErrorKind, "", p.peekedTok.pos)
		}
		kind, ok := syntax.KindByName(p.lastTok.text)
		if !ok {
			raiseSyntaxError(synErrUnknownErrorKind, p.lastTok.text, p.lastTok.pos)
		}
		return &Statement{
			Kind:    StatementKindInvalid,
			Pattern: p.parseString(synErrNoPattern),
			Error:   kind,
			Row:     row,
		}
	case p.consume(tokenKindKWMatch):
		row := p.lastTok.pos.Row
		pat := p.parseString(synErrNoPattern)
		text := p.parseString(synErrNoText)
		if !p.consume(tokenKindInteger) {
			raiseSyntaxError(synErrNoMatchCount, "", p.peekedTok.pos)
		}
		return &Statement{
			Kind:    StatementKindMatch,
			Pattern: pat,
			Text:    text,
			Count:   p.lastTok.num,
			Row:     row,
		}
	}
	raiseSyntaxError(synErrNoStatement, p.peekedTok.text, p.peekedTok.pos)
	return nil
}

func (p *parser) parseString(synErr *SyntaxError) string {
	if !p.consume(tokenKindString) {
		raiseSyntaxError(synErr, "", p.peekedTok.pos)
	}
	return p.lastTok.text
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			panic(err)
		}
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(synErrInvalidToken, tok.text, tok.pos)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}
