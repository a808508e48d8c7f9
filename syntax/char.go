package syntax

import "unicode"

// Unit is a code unit of a pattern. uint8 covers byte strings, uint16 covers UTF-16 (wide) strings, and
// int32 covers sequences of Unicode scalar values.
type Unit interface {
	~uint8 | ~uint16 | ~int32
}

const nullChar = '\u0000'

// eof is returned by peek when the cursor reaches the end sentinel.
const eof rune = -1

// Syntax characters must be escaped to be matched literally.
var syntaxChars = map[rune]struct{}{
	'^':  {},
	'$':  {},
	'\\': {},
	'.':  {},
	'(':  {},
	'[':  {},
	']':  {},
	'}':  {},
}

var quantifierPrefixChars = map[rune]struct{}{
	'*': {},
	'+': {},
	'?': {},
	'{': {},
}

var controlEscapes = map[rune]rune{
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

var charClassEscapes = map[rune]struct{}{
	'd': {},
	'D': {},
	's': {},
	'S': {},
	'w': {},
	'W': {},
}

// posixIntroducers open (and close) a POSIX token in a bracket expression: [:alpha:], [=a=], and [.a.].
var posixIntroducers = map[rune]struct{}{
	':': {},
	'=': {},
	'.': {},
}

var posixClassNames = map[string]struct{}{
	"alnum":  {},
	"alpha":  {},
	"blank":  {},
	"cntrl":  {},
	"d":      {},
	"digit":  {},
	"graph":  {},
	"lower":  {},
	"print":  {},
	"punct":  {},
	"s":      {},
	"space":  {},
	"upper":  {},
	"w":      {},
	"xdigit": {},
}

func isSyntaxChar(c rune) bool {
	_, ok := syntaxChars[c]
	return ok
}

func isQuantifierPrefix(c rune) bool {
	_, ok := quantifierPrefixChars[c]
	return ok
}

func isCharClassEscape(c rune) bool {
	_, ok := charClassEscapes[c]
	return ok
}

func isPosixIntroducer(c rune) bool {
	_, ok := posixIntroducers[c]
	return ok
}

func isPosixClassName(name string) bool {
	_, ok := posixClassNames[name]
	return ok
}

// isPosixDelimiter reports whether c terminates the name part of a POSIX token.
func isPosixDelimiter(c rune) bool {
	return isPosixIntroducer(c) || c == ']'
}

func isDecimalDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isControlLetter(c rune) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

func hexValue(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// isIdentifierPart reports whether c belongs to ID_Continue. Such characters cannot be identity-escaped
// because escapes like \q are reserved for future use.
func isIdentifierPart(c rune) bool {
	if c == '_' || isDecimalDigit(c) || isControlLetter(c) {
		return true
	}
	if c < 0x80 || c > unicode.MaxRune {
		return false
	}
	return unicode.In(c, unicode.L, unicode.Nl, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
