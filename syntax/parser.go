package syntax

import "fmt"

// parser is a recursive descent parser over a single forward cursor. Grammar violations are raised as a
// panic carrying a *ParseError, and ValidateUnits recovers it.
type parser[U Unit] struct {
	src []U
	pos int
}

func (p *parser[U]) atEnd() bool {
	return p.pos >= len(p.src)
}

func (p *parser[U]) peek() rune {
	return p.peekAt(0)
}

// peekAt returns the unit n positions ahead of the cursor without consuming anything.
func (p *parser[U]) peekAt(n int) rune {
	i := p.pos + n
	if i >= len(p.src) {
		return eof
	}
	return rune(p.src[i])
}

func (p *parser[U]) advance() {
	p.pos++
}

func (p *parser[U]) consume(c rune) bool {
	if p.atEnd() || p.peek() != c {
		return false
	}
	p.pos++
	return true
}

func (p *parser[U]) raiseParseError(kind ErrorKind, offset int, detail string) {
	panic(&ParseError{
		Kind:   kind,
		Offset: offset,
		Detail: detail,
	})
}

func (p *parser[U]) parsePattern() {
	p.parseDisjunction()
	if !p.atEnd() {
		if p.peek() == ')' {
			p.raiseParseError(ErrTrailingInput, p.pos, ") needs preceding (")
		}
		p.raiseParseError(ErrTrailingInput, p.pos, "")
	}
}

// parseDisjunction also parses the body of a group; it returns at the end of the input or at a ) that
// closes the group.
func (p *parser[U]) parseDisjunction() {
	for {
		p.parseAlternative()
		if p.atEnd() || p.peek() == ')' {
			return
		}
		// parseAlternative returns only at |, ), or the end of the input, so the following error is raised
		// only when a rule below stops at some other unit.
		if !p.consume('|') {
			p.raiseParseError(ErrExpectedAlternationOrEnd, p.pos, fmt.Sprintf("unexpected %v", string(p.peek())))
		}
	}
}

func (p *parser[U]) parseAlternative() {
	for !p.atEnd() {
		switch p.peek() {
		case '|', ')':
			return
		}
		p.parseTerm()
	}
}

// parseTerm doesn't try a quantifier after an assertion; assertions are not quantifiable.
func (p *parser[U]) parseTerm() {
	if p.parseAssertion() {
		return
	}
	p.parseAtom()
	p.parseQuantifier()
}

func (p *parser[U]) parseAssertion() bool {
	switch p.peek() {
	case '^', '$':
		p.advance()
		return true
	case '\\':
		if p.pos+1 >= len(p.src) {
			p.raiseParseError(ErrDanglingEscape, p.pos, "")
		}
		switch p.peekAt(1) {
		case 'b', 'B':
			p.pos += 2
			return true
		}
	}
	return false
}

func (p *parser[U]) parseAtom() {
	switch p.peek() {
	case '.':
		p.advance()
	case '\\':
		p.parseEscape(false)
	case '[':
		p.parseCharacterClass()
	case '(':
		p.parseGroup()
	default:
		p.parsePatternChar()
	}
}

func (p *parser[U]) parsePatternChar() {
	c := p.peek()
	if isQuantifierPrefix(c) {
		p.raiseParseError(ErrDanglingQuantifier, p.pos, fmt.Sprintf("%v needs an operand", string(c)))
	}
	if isSyntaxChar(c) {
		p.raiseParseError(ErrUnescapedSyntaxCharacter, p.pos, fmt.Sprintf("%v must be escaped", string(c)))
	}
	p.advance()
}

func (p *parser[U]) parseGroup() {
	open := p.pos
	p.advance()
	if p.atEnd() {
		p.raiseParseError(ErrUnclosedGroup, open, "")
	}
	if p.consume('?') {
		if p.atEnd() {
			p.raiseParseError(ErrUnclosedGroup, open, "")
		}
		// (?: is a non-capturing group, and (?= and (?! are lookahead assertions.
		switch c := p.peek(); c {
		case ':', '=', '!':
			p.advance()
		default:
			p.raiseParseError(ErrInvalidLookaheadAssertion, p.pos, fmt.Sprintf("(?%v is not supported", string(c)))
		}
	}
	p.parseDisjunction()
	if !p.consume(')') {
		p.raiseParseError(ErrUnclosedGroup, open, "")
	}
}
