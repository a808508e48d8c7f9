package test

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	verr "github.com/nihei9/rime/error"
)

type tokenKind string

const (
	tokenKindKWValid   = tokenKind("valid")
	tokenKindKWInvalid = tokenKind("invalid")
	tokenKindKWMatch   = tokenKind("match")
	tokenKindID        = tokenKind("id")
	tokenKindInteger   = tokenKind("integer")
	tokenKindString    = tokenKind("string")
	tokenKindNewline   = tokenKind("newline")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid token")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	num  int
	pos  Position
}

func newSymbolToken(kind tokenKind, pos Position) *token {
	return &token{
		kind: kind,
		pos:  pos,
	}
}

func newTextToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

func newIntegerToken(num int, text string, pos Position) *token {
	return &token{
		kind: tokenKindInteger,
		text: text,
		num:  num,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

// The entries defined earlier take precedence when two entries match the same lexeme, so the keywords
// precede the identifier.
func genLexSpec() *mlspec.LexSpec {
	return &mlspec.LexSpec{
		Name: "rime_test",
		Entries: []*mlspec.LexEntry{
			{Kind: "white_space", Pattern: `[\u{0009}\u{0020}]+`},
			{Kind: "newline", Pattern: `\u{000A}|\u{000D}\u{000A}`},
			{Kind: "line_comment", Pattern: `#[^\u{000A}\u{000D}]*`},
			{Kind: "kw_valid", Pattern: `valid`},
			{Kind: "kw_invalid", Pattern: `invalid`},
			{Kind: "kw_match", Pattern: `match`},
			{Kind: "integer", Pattern: `0|[1-9][0-9]*`},
			{Kind: "identifier", Pattern: `[a-z_][0-9a-z_]*`},
			{Kind: "interpreted_string", Pattern: `"([^"\\\u{000A}]|\\[^\u{000A}])*"`},
			{Kind: "raw_string", Pattern: "`[^`\\u{000A}]*`"},
		},
	}
}

var (
	lexSpec        *mlspec.CompiledLexSpec
	lexSpecErr     error
	lexSpecCompile sync.Once
)

func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	lexSpecCompile.Do(func() {
		s, err, cErrs := mlcompiler.Compile(genLexSpec(), mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				lexSpecErr = fmt.Errorf("failed to compile the test case lexer: %v", b.String())
				return
			}
			lexSpecErr = err
			return
		}
		lexSpec = s
	})
	return lexSpec, lexSpecErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type lexer struct {
	s *mlspec.CompiledLexSpec
	d *mldriver.Lexer

	// rowOffset is the number of lines preceding the source in the test case file.
	rowOffset int
}

func newLexer(src io.Reader, rowOffset int) (*lexer, error) {
	s, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s:         s,
		d:         d,
		rowOffset: rowOffset,
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return newEOFToken(l.pos(tok)), nil
		}
		if tok.Invalid {
			text := string(tok.Lexeme)
			if strings.HasPrefix(text, `"`) || strings.HasPrefix(text, "`") {
				return nil, &verr.SpecError{
					Cause: synErrUnclosedString,
					Row:   l.pos(tok).Row,
					Col:   l.pos(tok).Col,
				}
			}
			return newTextToken(tokenKindInvalid, text, l.pos(tok)), nil
		}
		kind := l.kindName(tok)
		if kind != "white_space" && kind != "line_comment" {
			break
		}
	}

	pos := l.pos(tok)
	text := string(tok.Lexeme)
	switch l.kindName(tok) {
	case "newline":
		return newSymbolToken(tokenKindNewline, pos), nil
	case "kw_valid":
		return newSymbolToken(tokenKindKWValid, pos), nil
	case "kw_invalid":
		return newSymbolToken(tokenKindKWInvalid, pos), nil
	case "kw_match":
		return newSymbolToken(tokenKindKWMatch, pos), nil
	case "integer":
		num, err := strconv.Atoi(text)
		if err != nil {
			return nil, &verr.SpecError{
				Cause:  synErrMatchCountOverflow,
				Detail: text,
				Row:    pos.Row,
				Col:    pos.Col,
			}
		}
		return newIntegerToken(num, text, pos), nil
	case "identifier":
		return newTextToken(tokenKindID, text, pos), nil
	case "interpreted_string":
		return newTextToken(tokenKindString, unquote(text[1:len(text)-1]), pos), nil
	case "raw_string":
		return newTextToken(tokenKindString, text[1:len(text)-1], pos), nil
	default:
		return newTextToken(tokenKindInvalid, text, pos), nil
	}
}

func (l *lexer) kindName(tok *mldriver.Token) string {
	return l.s.KindNames[tok.KindID].String()
}

func (l *lexer) pos(tok *mldriver.Token) Position {
	return newPosition(l.rowOffset+tok.Row+1, tok.Col+1)
}

// unquote interprets only \" and \\ so that the other escape sequences reach the pattern verbatim.
func unquote(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
