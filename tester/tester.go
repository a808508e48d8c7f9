package tester

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/rime/engine"
	tspec "github.com/nihei9/rime/spec/test"
	"github.com/nihei9/rime/syntax"
)

// StatementFailure describes a statement whose expectation did not hold.
type StatementFailure struct {
	Statement *tspec.Statement
	Message   string
}

type TestResult struct {
	TestCasePath string
	Error        error
	Failures     []*StatementFailure
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Failures) == 0 {
			return msg
		}
		var failureLines []string
		for _, f := range r.Failures {
			failureLines = append(failureLines, fmt.Sprintf("line %v: %v", f.Statement.Row, f.Statement))
			failureLines = append(failureLines, fmt.Sprintf("%v%v", indent1, f.Message))
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(failureLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *tspec.TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*tspec.TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return tspec.ParseTestCase(f)
}

type Tester struct {
	// Options apply to the patterns of the match statements.
	Options []engine.CompileOption
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(c, t.Options))
	}
	return rs
}

func runTest(c *TestCaseWithMetadata, opts []engine.CompileOption) *TestResult {
	if c.Error != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        c.Error,
		}
	}

	var failures []*StatementFailure
	for _, stmt := range c.TestCase.Statements {
		msg, ok := runStatement(stmt, opts)
		if ok {
			continue
		}
		failures = append(failures, &StatementFailure{
			Statement: stmt,
			Message:   msg,
		})
	}
	if len(failures) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("%v of %v statements failed", len(failures), len(c.TestCase.Statements)),
			Failures:     failures,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func runStatement(stmt *tspec.Statement, opts []engine.CompileOption) (string, bool) {
	switch stmt.Kind {
	case tspec.StatementKindValid:
		err := syntax.Validate(stmt.Pattern)
		if err != nil {
			return fmt.Sprintf("want: valid, got: %v", err), false
		}
	case tspec.StatementKindInvalid:
		err := syntax.Validate(stmt.Pattern)
		if err == nil {
			return fmt.Sprintf("want: %v, got: valid", stmt.Error), false
		}
		if !errors.Is(err, stmt.Error) {
			return fmt.Sprintf("want: %v, got: %v", stmt.Error, err), false
		}
	case tspec.StatementKindMatch:
		re, err := engine.Compile(stmt.Pattern, opts...)
		if err != nil {
			return fmt.Sprintf("want: %v matches, got: %v", stmt.Count, err), false
		}
		n, err := re.Count(stmt.Text)
		if err != nil {
			return fmt.Sprintf("want: %v matches, got: %v", stmt.Count, err), false
		}
		if n != stmt.Count {
			return fmt.Sprintf("want: %v matches, got: %v matches", stmt.Count, n), false
		}
	default:
		return fmt.Sprintf("unknown statement kind: %v", stmt.Kind), false
	}
	return "", true
}
