package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/rime/error"
	"github.com/nihei9/rime/syntax"
)

func TestCheckPattern(t *testing.T) {
	tests := []struct {
		caption string
		pattern string
		wide    bool
		kind    syntax.ErrorKind
		col     int
	}{
		{
			caption: "a well-formed pattern passes",
			pattern: `a{2,3}`,
		},
		{
			caption: "the column points at the unclosed parenthesis",
			pattern: `a(b|c`,
			kind:    syntax.ErrUnclosedGroup,
			col:     2,
		},
		{
			caption: "the column counts characters rather than bytes",
			pattern: `éé{3,2}`,
			kind:    syntax.ErrQuantifierRangeInverted,
			col:     3,
		},
		{
			caption: "the column counts characters rather than UTF-16 code units",
			pattern: "\U0001F600\U0001F600{3,2}",
			wide:    true,
			kind:    syntax.ErrQuantifierRangeInverted,
			col:     3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			err := checkPattern(&sourcePattern{
				name:    "test",
				src:     tt.pattern,
				row:     1,
				pattern: tt.pattern,
			}, tt.wide)
			if tt.kind == "" {
				if err != nil {
					t.Fatalf("unexpected error occurred: %v", err)
				}
				return
			}
			var specErr *verr.SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("unexpected error: %v", err)
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("unexpected error kind: want: %v, got: %v", tt.kind, err)
			}
			if specErr.Col != tt.col {
				t.Fatalf("unexpected column: want: %v, got: %v", tt.col, specErr.Col)
			}
		})
	}
}

func TestCheckPatterns(t *testing.T) {
	pats, err := readPatterns(strings.NewReader("a+\n(a\r\n[z-a]\n"), "patterns.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(pats) != 3 {
		t.Fatalf("unexpected pattern count: want: 3, got: %v", len(pats))
	}

	var out, errOut bytes.Buffer
	invalid := checkPatterns(&out, &errOut, pats, false)
	if invalid != 2 {
		t.Fatalf("unexpected invalid pattern count: want: 2, got: %v", invalid)
	}
	if out.String() != "ok: a+\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
	msg := errOut.String()
	for _, want := range []string{
		"patterns.txt: 2:1: error: ",
		"unclosed_group",
		"patterns.txt: 3:2: error: ",
		"class_range_inverted",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("a diagnostic must contain %q:\n%v", want, msg)
		}
	}
}
