// Package engine compiles validated patterns into matchers. Matching itself is delegated to regexp2 running
// in ECMAScript mode; this package only guarantees that a malformed pattern never reaches it.
package engine

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/nihei9/rime/syntax"
)

type compileConfig struct {
	options regexp2.RegexOptions
	timeout time.Duration
}

type CompileOption func(config *compileConfig)

func IgnoreCase() CompileOption {
	return func(config *compileConfig) {
		config.options |= regexp2.IgnoreCase
	}
}

// Multiline makes ^ and $ match at line boundaries.
func Multiline() CompileOption {
	return func(config *compileConfig) {
		config.options |= regexp2.Multiline
	}
}

// MatchTimeout bounds the time a single match operation may take. Zero means no timeout.
func MatchTimeout(d time.Duration) CompileOption {
	return func(config *compileConfig) {
		config.timeout = d
	}
}

// Regexp is a compiled pattern. It is safe for concurrent use.
type Regexp struct {
	expr string
	re   *regexp2.Regexp
}

// Compile validates pattern and compiles it. When the pattern is malformed, the returned error is the
// *syntax.ParseError describing it.
//
// POSIX bracket tokens such as [[:digit:]], [[=a=]], and [[.-.]] pass the validation, but regexp2 in
// ECMAScript mode doesn't implement them, so the compiled pattern doesn't match the set a token names.
// Use \d, \s, \w, or explicit ranges instead.
func Compile(pattern string, opts ...CompileOption) (*Regexp, error) {
	err := syntax.Validate(pattern)
	if err != nil {
		return nil, err
	}

	config := &compileConfig{
		options: regexp2.ECMAScript,
	}
	for _, opt := range opts {
		opt(config)
	}

	re, err := regexp2.Compile(pattern, config.options)
	if err != nil {
		return nil, fmt.Errorf("failed to compile a pattern %q: %w", pattern, err)
	}
	if config.timeout > 0 {
		re.MatchTimeout = config.timeout
	}
	return &Regexp{
		expr: pattern,
		re:   re,
	}, nil
}

func MustCompile(pattern string, opts ...CompileOption) *Regexp {
	re, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return re
}

// String returns the source pattern.
func (r *Regexp) String() string {
	return r.expr
}

func (r *Regexp) MatchString(text string) (bool, error) {
	return r.re.MatchString(text)
}

// Count returns the number of matches SearchAll yields.
func (r *Regexp) Count(text string) (int, error) {
	ms := r.SearchAll(text)
	n := 0
	for ms.Next() {
		n++
	}
	if err := ms.Err(); err != nil {
		return 0, err
	}
	return n, nil
}
