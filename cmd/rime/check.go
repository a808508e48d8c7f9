package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	verr "github.com/nihei9/rime/error"
	"github.com/nihei9/rime/syntax"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	source *string
	utf16  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check [<pattern>...]",
		Short: "Check the syntax of patterns",
		Example: `  rime check 'a{2,3}' '(a|b'
  cat patterns.txt | rime check`,
		RunE: runCheck,
	}
	checkFlags.source = cmd.Flags().StringP("source", "s", "", "file path containing one pattern per line (default stdin)")
	checkFlags.utf16 = cmd.Flags().Bool("utf16", false, "validate the patterns as UTF-16 code unit sequences")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var pats []*sourcePattern
	if len(args) > 0 {
		for i, arg := range args {
			pats = append(pats, &sourcePattern{
				name:    fmt.Sprintf("arg#%v", i+1),
				src:     arg,
				row:     1,
				pattern: arg,
			})
		}
	} else {
		src := os.Stdin
		name := "stdin"
		if *checkFlags.source != "" {
			f, err := os.Open(*checkFlags.source)
			if err != nil {
				return fmt.Errorf("Cannot open the source file %s: %w", *checkFlags.source, err)
			}
			defer f.Close()
			src = f
			name = *checkFlags.source
		}
		var err error
		pats, err = readPatterns(src, name)
		if err != nil {
			return fmt.Errorf("Cannot read patterns: %w", err)
		}
	}

	invalid := checkPatterns(os.Stdout, os.Stderr, pats, *checkFlags.utf16)
	if invalid > 0 {
		return fmt.Errorf("%v of %v patterns are invalid", invalid, len(pats))
	}
	return nil
}

type sourcePattern struct {
	name string

	// src is the whole text the pattern was read from, and row is the 1-based line number of the pattern
	// in src.
	src string
	row int

	pattern string
}

func readPatterns(r io.Reader, name string) ([]*sourcePattern, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src := string(b)
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	if src == "" {
		return nil, nil
	}
	pats := make([]*sourcePattern, len(lines))
	for i, line := range lines {
		pats[i] = &sourcePattern{
			name:    name,
			src:     src,
			row:     i + 1,
			pattern: strings.TrimSuffix(line, "\r"),
		}
	}
	return pats, nil
}

// checkPatterns writes ok lines to w and diagnostics to errW, and returns the number of invalid patterns.
func checkPatterns(w, errW io.Writer, pats []*sourcePattern, wide bool) int {
	invalid := 0
	for _, p := range pats {
		err := checkPattern(p, wide)
		if err != nil {
			fmt.Fprintln(errW, err)
			invalid++
			continue
		}
		fmt.Fprintf(w, "ok: %v\n", p.pattern)
	}
	return invalid
}

func checkPattern(p *sourcePattern, wide bool) error {
	var err error
	var units []uint16
	if wide {
		units = syntax.EncodeUTF16(p.pattern)
		err = syntax.ValidateUTF16(units)
	} else {
		err = syntax.Validate(p.pattern)
	}
	if err == nil {
		return nil
	}
	var pErr *syntax.ParseError
	if !errors.As(err, &pErr) {
		return err
	}

	// A column counts characters, whereas an offset counts bytes or UTF-16 code units.
	var col int
	if wide {
		col = len(utf16.Decode(units[:pErr.Offset])) + 1
	} else {
		col = utf8.RuneCountInString(p.pattern[:pErr.Offset]) + 1
	}
	return &verr.SpecError{
		Cause:      pErr,
		Detail:     pErr.Kind.String(),
		SourceName: p.name,
		Source:     p.src,
		Row:        p.row,
		Col:        col,
	}
}
