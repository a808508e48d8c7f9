package test

import "fmt"

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

var (
	// lexical errors
	synErrInvalidToken   = newSyntaxError("invalid token")
	synErrUnclosedString = newSyntaxError("unclosed string")

	// syntax errors
	synErrTooManyParts       = newSyntaxError("a test case consists of an optional description and statements separated by ---")
	synErrNoStatement        = newSyntaxError("a statement must start with valid, invalid, or match")
	synErrStmtNoNewline      = newSyntaxError("a statement must be followed by a newline")
	synErrNoPattern          = newSyntaxError("a pattern string is missing")
	synErrNoText             = newSyntaxError("a text string is missing")
	synErrNoErrorKind        = newSyntaxError("an error kind is missing")
	synErrUnknownErrorKind   = newSyntaxError("unknown error kind")
	synErrNoMatchCount       = newSyntaxError("a match count is missing")
	synErrMatchCountOverflow = newSyntaxError("a match count is too large")
)
