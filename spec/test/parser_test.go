package test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	verr "github.com/nihei9/rime/error"
	"github.com/nihei9/rime/syntax"
)

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		testCase *TestCase
		synErr   *SyntaxError
		row      int
	}{
		{
			caption: "a test case can contain only statements",
			src: `valid "a+b"
invalid unclosed_group "(a"
match "a" "banana" 3
`,
			testCase: &TestCase{
				Statements: []*Statement{
					{Kind: StatementKindValid, Pattern: "a+b", Row: 1},
					{Kind: StatementKindInvalid, Pattern: "(a", Error: syntax.ErrUnclosedGroup, Row: 2},
					{Kind: StatementKindMatch, Pattern: "a", Text: "banana", Count: 3, Row: 3},
				},
			},
		},
		{
			caption: "a description precedes the statements",
			src: `Quantifier bounds must be ordered.
See the brace quantifier rules.
---
valid "a{2,3}"
invalid quantifier_range_inverted "a{3,2}"
`,
			testCase: &TestCase{
				Description: "Quantifier bounds must be ordered.\nSee the brace quantifier rules.",
				Statements: []*Statement{
					{Kind: StatementKindValid, Pattern: "a{2,3}", Row: 4},
					{Kind: StatementKindInvalid, Pattern: "a{3,2}", Error: syntax.ErrQuantifierRangeInverted, Row: 5},
				},
			},
		},
		{
			caption: "an interpreted string unescapes only \\\" and \\\\",
			src:     `valid "\d+\"\\"`,
			testCase: &TestCase{
				Statements: []*Statement{
					{Kind: StatementKindValid, Pattern: `\d+"\`, Row: 1},
				},
			},
		},
		{
			caption: "a raw string is taken verbatim",
			src:     "valid `\\\\\"`",
			testCase: &TestCase{
				Statements: []*Statement{
					{Kind: StatementKindValid, Pattern: `\\"`, Row: 1},
				},
			},
		},
		{
			caption: "comments and blank lines are skipped",
			src: `# leading comment

valid "a" # trailing comment


match "x*" "" 1
`,
			testCase: &TestCase{
				Statements: []*Statement{
					{Kind: StatementKindValid, Pattern: "a", Row: 3},
					{Kind: StatementKindMatch, Pattern: "x*", Text: "", Count: 1, Row: 6},
				},
			},
		},
		{
			caption:  "an empty test case has no statements",
			src:      "",
			testCase: &TestCase{},
		},
		{
			caption: "a statement must start with a keyword",
			src:     `"a"`,
			synErr:  synErrNoStatement,
			row:     1,
		},
		{
			caption: "a valid statement needs a pattern",
			src:     `valid`,
			synErr:  synErrNoPattern,
			row:     1,
		},
		{
			caption: "an invalid statement needs an error kind",
			src:     `invalid "(a"`,
			synErr:  synErrNoErrorKind,
			row:     1,
		},
		{
			caption: "an error kind must be known",
			src:     `invalid unbalanced_paren "(a"`,
			synErr:  synErrUnknownErrorKind,
			row:     1,
		},
		{
			caption: "a match statement needs a text",
			src:     `match "a"`,
			synErr:  synErrNoText,
			row:     1,
		},
		{
			caption: "a match statement needs a count",
			src:     `match "a" "aa"`,
			synErr:  synErrNoMatchCount,
			row:     1,
		},
		{
			caption: "two statements cannot share a line",
			src:     `valid "a" valid "b"`,
			synErr:  synErrStmtNoNewline,
			row:     1,
		},
		{
			caption: "the row of an error counts the description lines",
			src: `description
---
valid "a"
valid
valid "b"
`,
			synErr: synErrNoPattern,
			row:    4,
		},
		{
			caption: "a test case has at most two parts",
			src: `description
---
valid "a"
---
valid "b"
`,
			synErr: synErrTooManyParts,
			row:    4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tc, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.synErr != nil {
				var specErr *verr.SpecError
				if !errors.As(err, &specErr) {
					t.Fatalf("an unexpected error occurred: %v", err)
				}
				if specErr.Cause != tt.synErr {
					t.Fatalf("unexpected syntax error: want: %v, got: %v", tt.synErr, specErr.Cause)
				}
				if specErr.Row != tt.row {
					t.Fatalf("unexpected row: want: %v, got: %v", tt.row, specErr.Row)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.testCase, tc); diff != "" {
				t.Fatalf("unexpected test case (-want +got):\n%v", diff)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{src: ``, expected: ``},
		{src: `abc`, expected: `abc`},
		{src: `\"`, expected: `"`},
		{src: `\\`, expected: `\`},
		{src: `\\d`, expected: `\d`},
		{src: `\d\w`, expected: `\d\w`},
		{src: `a\`, expected: `a\`},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := unquote(tt.src)
			if got != tt.expected {
				t.Fatalf("unexpected string: want: %v, got: %v", tt.expected, got)
			}
		})
	}
}
