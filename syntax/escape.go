package syntax

import "fmt"

type escapeKind string

const (
	escapeKindNullChar       escapeKind = "null character"
	escapeKindBackReference  escapeKind = "back-reference"
	escapeKindCharClass      escapeKind = "character class escape"
	escapeKindControl        escapeKind = "control escape"
	escapeKindControlLetter  escapeKind = "control letter"
	escapeKindHex            escapeKind = "hex escape"
	escapeKindUnicode        escapeKind = "unicode escape"
	escapeKindIdentity       escapeKind = "identity escape"
	escapeKindClassBackspace escapeKind = "backspace"
)

// escape is the outcome of an escape sequence. value holds the character the escape denotes when the
// escape denotes a single character; see concrete.
type escape struct {
	kind  escapeKind
	value rune
}

func (e escape) concrete() bool {
	switch e.kind {
	case escapeKindBackReference, escapeKindCharClass:
		return false
	}
	return true
}

// parseEscape parses an escape sequence starting at a \. inClass selects the ClassEscape rules: \b means
// a backspace, and back-references are rejected.
func (p *parser[U]) parseEscape(inClass bool) escape {
	start := p.pos
	p.advance()
	if p.atEnd() {
		p.raiseParseError(ErrDanglingEscape, start, "")
	}

	c := p.peek()
	switch {
	case isDecimalDigit(c):
		return p.parseDecimalEscape(start, inClass)
	case isCharClassEscape(c):
		p.advance()
		return escape{
			kind: escapeKindCharClass,
		}
	case inClass && c == 'b':
		p.advance()
		return escape{
			kind:  escapeKindClassBackspace,
			value: '\b',
		}
	}
	return p.parseCharEscape(start)
}

func (p *parser[U]) parseDecimalEscape(start int, inClass bool) escape {
	// Only a lone 0 is the null character; 0 followed by digits is a back-reference like any other digit run.
	if p.peek() == '0' && !isDecimalDigit(p.peekAt(1)) {
		p.advance()
		return escape{
			kind:  escapeKindNullChar,
			value: nullChar,
		}
	}
	digits := p.scanDigits()
	if inClass {
		p.raiseParseError(ErrBackReferenceInClass, start, fmt.Sprintf("\\%v", digits))
	}
	return escape{
		kind: escapeKindBackReference,
	}
}

func (p *parser[U]) parseCharEscape(start int) escape {
	c := p.peek()
	if v, ok := controlEscapes[c]; ok {
		p.advance()
		return escape{
			kind:  escapeKindControl,
			value: v,
		}
	}
	switch c {
	case 'c':
		l := p.peekAt(1)
		if !isControlLetter(l) {
			p.raiseParseError(ErrUnknownEscape, start, "\\c must be followed by an ASCII letter")
		}
		p.pos += 2
		return escape{
			kind:  escapeKindControlLetter,
			value: l % 32,
		}
	case 'x':
		v, ok := p.peekHex(1, 2)
		if !ok {
			p.raiseParseError(ErrUnknownEscape, start, "\\x must be followed by 2 hex digits")
		}
		p.pos += 3
		return escape{
			kind:  escapeKindHex,
			value: v,
		}
	case 'u':
		v, ok := p.peekHex(1, 4)
		if !ok {
			p.raiseParseError(ErrUnknownEscape, start, "\\u must be followed by 4 hex digits")
		}
		p.pos += 5
		return escape{
			kind:  escapeKindUnicode,
			value: v,
		}
	}
	if isIdentifierPart(c) {
		p.raiseParseError(ErrUnknownEscape, start, fmt.Sprintf("\\%v is not supported", string(c)))
	}
	p.advance()
	return escape{
		kind:  escapeKindIdentity,
		value: c,
	}
}

// peekHex decodes n hex digits starting offset units ahead of the cursor without consuming them.
func (p *parser[U]) peekHex(offset, n int) (rune, bool) {
	var v rune
	for i := 0; i < n; i++ {
		d, ok := hexValue(p.peekAt(offset + i))
		if !ok {
			return 0, false
		}
		v = v<<4 | d
	}
	return v, true
}
