package syntax

import (
	"fmt"
	"strings"
)

// ErrorKind identifies the grammar rule a pattern violates. An ErrorKind is itself an error, so callers
// can test a returned error with errors.Is(err, syntax.ErrUnclosedGroup).
type ErrorKind string

const (
	ErrDanglingEscape           ErrorKind = "dangling_escape"
	ErrUnescapedSyntaxCharacter ErrorKind = "unescaped_syntax_character"
	ErrDanglingQuantifier       ErrorKind = "dangling_quantifier"

	// brace quantifiers
	ErrQuantifierMissingDigits ErrorKind = "quantifier_missing_digits"
	ErrQuantifierMalformed     ErrorKind = "quantifier_malformed"
	ErrQuantifierRangeInverted ErrorKind = "quantifier_range_inverted"
	ErrUnclosedQuantifier      ErrorKind = "unclosed_quantifier"

	ErrUnknownEscape ErrorKind = "unknown_escape"

	// bracket expressions
	ErrUnclosedCharacterClass    ErrorKind = "unclosed_character_class"
	ErrInvalidClassRangeEndpoint ErrorKind = "invalid_class_range_endpoint"
	ErrClassRangeInverted        ErrorKind = "class_range_inverted"
	ErrMalformedPosixClass       ErrorKind = "malformed_posix_class"
	ErrBackReferenceInClass      ErrorKind = "back_reference_in_class"

	// groups
	ErrUnclosedGroup             ErrorKind = "unclosed_group"
	ErrInvalidLookaheadAssertion ErrorKind = "invalid_lookahead_assertion"

	ErrExpectedAlternationOrEnd ErrorKind = "expected_alternation_or_end"
	ErrTrailingInput            ErrorKind = "trailing_input"
)

var errorMessages = map[ErrorKind]string{
	ErrDanglingEscape:            "incompleted escape sequence; unexpected EOF following \\",
	ErrUnescapedSyntaxCharacter:  "a syntax character must be escaped",
	ErrDanglingQuantifier:        "a quantifier must have an operand",
	ErrQuantifierMissingDigits:   "a quantifier needs digits before '}' or ','",
	ErrQuantifierMalformed:       "invalid quantifier; only digits and one ',' can appear between braces",
	ErrQuantifierRangeInverted:   "a quantifier with invalid order",
	ErrUnclosedQuantifier:        "unclosed quantifier",
	ErrUnknownEscape:             "invalid escape sequence",
	ErrUnclosedCharacterClass:    "unclosed bracket expression",
	ErrInvalidClassRangeEndpoint: "a range expression needs single characters as its endpoints",
	ErrClassRangeInverted:        "a range expression with invalid order",
	ErrMalformedPosixClass:       "invalid POSIX class expression",
	ErrBackReferenceInClass:      "a back-reference is unavailable in a bracket expression",
	ErrUnclosedGroup:             "unclosed grouping expression",
	ErrInvalidLookaheadAssertion: "invalid grouping expression; (? must be followed by :, =, or !",
	ErrExpectedAlternationOrEnd:  "| or the end of the pattern was expected",
	ErrTrailingInput:             "unexpected trailing input",
}

// ErrorKinds lists every kind in a stable order.
var ErrorKinds = []ErrorKind{
	ErrDanglingEscape,
	ErrUnescapedSyntaxCharacter,
	ErrDanglingQuantifier,
	ErrQuantifierMissingDigits,
	ErrQuantifierMalformed,
	ErrQuantifierRangeInverted,
	ErrUnclosedQuantifier,
	ErrUnknownEscape,
	ErrUnclosedCharacterClass,
	ErrInvalidClassRangeEndpoint,
	ErrClassRangeInverted,
	ErrMalformedPosixClass,
	ErrBackReferenceInClass,
	ErrUnclosedGroup,
	ErrInvalidLookaheadAssertion,
	ErrExpectedAlternationOrEnd,
	ErrTrailingInput,
}

func (k ErrorKind) Error() string {
	if msg, ok := errorMessages[k]; ok {
		return msg
	}
	return string(k)
}

func (k ErrorKind) String() string {
	return string(k)
}

// KindByName returns the kind whose name is name, such as "unclosed_group".
func KindByName(name string) (ErrorKind, bool) {
	k := ErrorKind(strings.TrimSpace(name))
	if _, ok := errorMessages[k]; !ok {
		return "", false
	}
	return k, true
}

// ParseError reports the first grammar violation found in a pattern.
type ParseError struct {
	Kind ErrorKind

	// Offset is the position of the offending code unit. Validate reports a byte offset, and the other
	// entry points report an index into the unit sequence they received.
	Offset int

	Detail string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v at offset %v", e.Kind.Error(), e.Offset)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
