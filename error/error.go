package error

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// SpecError is a diagnostic tied to a position in a source. The offending line is read from Source when it
// is set, otherwise from FilePath.
type SpecError struct {
	Cause      error
	Detail     string
	FilePath   string
	SourceName string
	Source     string
	Row        int
	Col        int
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 && e.Col != 0 {
		fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
	} else if e.Row != 0 {
		fmt.Fprintf(&b, "%v: ", e.Row)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := e.line()
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
		if e.Col > 0 && e.Col <= utf8.RuneCountInString(line)+1 {
			fmt.Fprintf(&b, "\n    %v^", strings.Repeat(" ", e.Col-1))
		}
	}

	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

func (e *SpecError) line() string {
	if e.Source != "" {
		return sourceLine(e.Source, e.Row)
	}
	return readLine(e.FilePath, e.Row)
}

func sourceLine(src string, row int) string {
	if row <= 0 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if row > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[row-1], "\r")
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
