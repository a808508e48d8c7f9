package syntax

import (
	"fmt"
	"strings"
)

// parseQuantifier consumes a repetition operator and its lazy suffix, if any. Bounds are kept as decimal
// digit strings so that a bound of any length can be ordered.
func (p *parser[U]) parseQuantifier() {
	if p.atEnd() {
		return
	}
	switch p.peek() {
	case '*', '+', '?':
		p.advance()
	case '{':
		p.parseBraceQuantifier()
	default:
		return
	}
	p.consume('?')
}

// parseBraceQuantifier parses {n}, {n,}, and {n,m}.
//
// a{2,5}
//
//	^^^^^
//	||||`-- expect }
//	|||`-- upper bound (optional)
//	||`-- ,
//	|`-- lower bound (required)
//	`-- {
func (p *parser[U]) parseBraceQuantifier() {
	open := p.pos
	p.advance()

	min := p.scanDigits()
	if p.atEnd() {
		p.raiseParseError(ErrUnclosedQuantifier, open, "")
	}
	switch c := p.peek(); c {
	case '}':
		if min == "" {
			p.raiseParseError(ErrQuantifierMissingDigits, p.pos, "{} needs a repeat count")
		}
		p.advance()
		return
	case ',':
		if min == "" {
			p.raiseParseError(ErrQuantifierMissingDigits, p.pos, ", needs a preceding lower bound")
		}
		p.advance()
	default:
		p.raiseParseError(ErrQuantifierMalformed, p.pos, fmt.Sprintf("unexpected %v", string(c)))
	}

	max := p.scanDigits()
	if p.atEnd() {
		p.raiseParseError(ErrUnclosedQuantifier, open, "")
	}
	if c := p.peek(); c != '}' {
		if c == ',' {
			p.raiseParseError(ErrQuantifierMalformed, p.pos, ", can appear only once")
		}
		p.raiseParseError(ErrQuantifierMalformed, p.pos, fmt.Sprintf("unexpected %v", string(c)))
	}
	p.advance()

	if max != "" && compareDecimal(min, max) > 0 {
		p.raiseParseError(ErrQuantifierRangeInverted, open, fmt.Sprintf("{%v,%v}", min, max))
	}
}

func (p *parser[U]) scanDigits() string {
	var b strings.Builder
	for !p.atEnd() && isDecimalDigit(p.peek()) {
		b.WriteByte(byte(p.peek()))
		p.advance()
	}
	return b.String()
}

// compareDecimal compares two non-empty decimal digit strings by their values.
func compareDecimal(a, b string) int {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func trimLeadingZeros(s string) string {
	return strings.TrimLeft(s, "0")
}
