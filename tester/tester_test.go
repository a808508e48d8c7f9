package tester

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nihei9/rime/engine"
	tspec "github.com/nihei9/rime/spec/test"
)

func TestTester_Run(t *testing.T) {
	tests := []struct {
		testSrc  string
		opts     []engine.CompileOption
		failures int
	}{
		{
			testSrc: `
Well-formed patterns
---
valid "a|b"
valid "(?:ab)+"
valid "[a-z]{2,3}"
valid "(?=x)\\1"
`,
		},
		{
			testSrc: `
Malformed patterns
---
invalid unclosed_group "(a"
invalid quantifier_range_inverted "a{3,2}"
invalid class_range_inverted "[z-a]"
invalid dangling_quantifier "*a"
`,
		},
		{
			testSrc: `
match "a" "banana" 3
match "an" "banana" 2
match "x*" "" 1
`,
		},
		{
			testSrc: `
match "A" "banana" 3
`,
			opts: []engine.CompileOption{engine.IgnoreCase()},
		},
		{
			testSrc: `
valid "(a"
invalid unclosed_group "(a)"
invalid unclosed_group "a{3,2}"
match "a" "banana" 2
match "(a" "banana" 0
`,
			failures: 5,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			c, err := tspec.ParseTestCase(strings.NewReader(tt.testSrc))
			if err != nil {
				t.Fatal(err)
			}
			tester := &Tester{
				Options: tt.opts,
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
					},
				},
			}
			rs := tester.Run()
			if len(rs) != 1 {
				t.Fatalf("unexpected result count: want: 1, got: %v", len(rs))
			}
			r := rs[0]
			if tt.failures == 0 {
				if r.Error != nil {
					t.Fatalf("unexpected error occurred: %v", r)
				}
				return
			}
			if r.Error == nil {
				t.Fatal("this test must fail, but it passed")
			}
			if len(r.Failures) != tt.failures {
				t.Fatalf("unexpected failure count: want: %v, got: %v\n%v", tt.failures, len(r.Failures), r)
			}
		})
	}
}

func TestTester_Run_ReportsParseErrors(t *testing.T) {
	cause := errors.New("broken test case")
	tester := &Tester{
		Cases: []*TestCaseWithMetadata{
			{
				FilePath: "broken.rime",
				Error:    cause,
			},
		},
	}
	rs := tester.Run()
	if !errors.Is(rs[0].Error, cause) {
		t.Fatalf("unexpected error: want: %v, got: %v", cause, rs[0].Error)
	}
	if !strings.HasPrefix(rs[0].String(), "Failed broken.rime:") {
		t.Fatalf("unexpected result: %v", rs[0])
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		filepath.Join(dir, "a.rime"): "valid \"a\"\n",
		filepath.Join(sub, "b.rime"): "match \"b\" \"bb\" 2\n",
		filepath.Join(sub, "c.rime"): "valid\n",
	}
	for path, src := range files {
		if err := os.WriteFile(path, []byte(src), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cases := ListTestCases(dir)
	if len(cases) != len(files) {
		t.Fatalf("unexpected test case count: want: %v, got: %v", len(files), len(cases))
	}
	for _, c := range cases {
		wantErr := filepath.Base(c.FilePath) == "c.rime"
		if wantErr && c.Error == nil {
			t.Fatalf("%v must fail to parse", c.FilePath)
		}
		if !wantErr && c.Error != nil {
			t.Fatalf("unexpected error occurred: %v: %v", c.FilePath, c.Error)
		}
	}

	rs := (&Tester{Cases: cases}).Run()
	for _, r := range rs {
		passed := r.Error == nil
		if passed != (filepath.Base(r.TestCasePath) != "c.rime") {
			t.Fatalf("unexpected result: %v", r)
		}
	}

	missing := ListTestCases(filepath.Join(dir, "missing.rime"))
	if len(missing) != 1 || missing[0].Error == nil {
		t.Fatal("a missing path must yield a test case with an error")
	}
}

func TestTester_Run_Testdata(t *testing.T) {
	cases := ListTestCases(filepath.Join("..", "testdata"))
	if len(cases) == 0 {
		t.Fatal("no test case was found")
	}
	for _, c := range cases {
		if c.Error != nil {
			t.Fatalf("failed to read a test case: %v: %v", c.FilePath, c.Error)
		}
	}
	for _, r := range (&Tester{Cases: cases}).Run() {
		if r.Error != nil {
			t.Fatalf("unexpected error occurred: %v", r)
		}
	}
}
