package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nihei9/rime/engine"
	"github.com/spf13/cobra"
)

var matchFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "match <pattern>",
		Short:   "Print the matches of a pattern",
		Example: `  echo 'banana' | rime match 'an'`,
		Args:    cobra.ExactArgs(1),
		RunE:    runMatch,
	}
	matchFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	re, err := engine.Compile(args[0], compileOptions()...)
	if err != nil {
		synErr := checkPattern(&sourcePattern{
			name:    "pattern",
			src:     args[0],
			row:     1,
			pattern: args[0],
		}, false)
		if synErr != nil {
			return synErr
		}
		return err
	}

	src := os.Stdin
	if *matchFlags.source != "" {
		f, err := os.Open(*matchFlags.source)
		if err != nil {
			return fmt.Errorf("Cannot open the source file %s: %w", *matchFlags.source, err)
		}
		defer f.Close()
		src = f
	}
	text, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("Cannot read the source: %w", err)
	}

	return printMatches(os.Stdout, re, string(text))
}

func printMatches(w io.Writer, re *engine.Regexp, text string) error {
	ms := re.SearchAll(text)
	for ms.Next() {
		m := ms.Match()
		fmt.Fprintf(w, "%v:%v: %q\n", m.Index, m.Length, m.Text)
	}
	return ms.Err()
}
