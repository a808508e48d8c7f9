package syntax

import (
	"fmt"
	"strings"
)

type classAtomKind string

const (
	// classAtomKindChar denotes exactly one character.
	classAtomKindChar classAtomKind = "character"
	// classAtomKindSet denotes a set of characters such as \d or [:alpha:].
	classAtomKindSet classAtomKind = "set"
)

type classAtom struct {
	kind classAtomKind
	char rune
}

func newCharClassAtom(c rune) classAtom {
	return classAtom{
		kind: classAtomKindChar,
		char: c,
	}
}

func newSetClassAtom() classAtom {
	return classAtom{
		kind: classAtomKindSet,
	}
}

// parseCharacterClass parses a bracket expression. A ^ following the [ negates the class; the negation has
// no effect on the validity of the rest of the expression.
func (p *parser[U]) parseCharacterClass() {
	open := p.pos
	p.advance()
	p.consume('^')
	p.parseClassRanges(open)
	if !p.consume(']') {
		p.raiseParseError(ErrUnclosedCharacterClass, open, "")
	}
}

// [a-z-]
//
//	^^^^^
//	||||`-- literal - because ] follows it
//	|||`-- range terminator
//	||`-- range operator
//	|`-- range initiator
//	`-- bracket expression opener
func (p *parser[U]) parseClassRanges(open int) {
	for {
		if p.atEnd() {
			p.raiseParseError(ErrUnclosedCharacterClass, open, "")
		}
		if p.peek() == ']' {
			return
		}

		fromPos := p.pos
		from := p.parseClassAtom(open)
		if p.peek() != '-' || p.peekAt(1) == ']' || p.pos+1 >= len(p.src) {
			continue
		}
		p.advance()
		toPos := p.pos
		to := p.parseClassAtom(open)

		if from.kind != classAtomKindChar {
			p.raiseParseError(ErrInvalidClassRangeEndpoint, fromPos, "the range initiator denotes a set of characters")
		}
		if to.kind != classAtomKindChar {
			p.raiseParseError(ErrInvalidClassRangeEndpoint, toPos, "the range terminator denotes a set of characters")
		}
		if from.char > to.char {
			p.raiseParseError(ErrClassRangeInverted, fromPos, fmt.Sprintf("%X..%X", from.char, to.char))
		}
	}
}

func (p *parser[U]) parseClassAtom(open int) classAtom {
	if p.atEnd() {
		p.raiseParseError(ErrUnclosedCharacterClass, open, "")
	}
	c := p.peek()
	switch {
	case c == '\\':
		e := p.parseEscape(true)
		if !e.concrete() {
			return newSetClassAtom()
		}
		return newCharClassAtom(e.value)
	case c == '[' && isPosixIntroducer(p.peekAt(1)):
		p.parsePosixClass(open)
		return newSetClassAtom()
	}
	p.advance()
	return newCharClassAtom(c)
}

// parsePosixClass parses [:name:], [=name=], or [.name.] inside a bracket expression.
func (p *parser[U]) parsePosixClass(open int) {
	start := p.pos
	p.advance()
	intro := p.peek()
	p.advance()

	var name strings.Builder
	for !p.atEnd() && !isPosixDelimiter(p.peek()) {
		name.WriteRune(p.peek())
		p.advance()
	}
	if p.atEnd() {
		p.raiseParseError(ErrUnclosedCharacterClass, open, "")
	}
	if name.Len() == 0 {
		p.raiseParseError(ErrMalformedPosixClass, start, "a POSIX class needs a name")
	}
	if p.peek() != intro {
		p.raiseParseError(ErrMalformedPosixClass, p.pos, fmt.Sprintf("[%v must be closed with %v]", string(intro), string(intro)))
	}
	p.advance()
	if p.atEnd() {
		p.raiseParseError(ErrUnclosedCharacterClass, open, "")
	}
	if p.peek() != ']' {
		p.raiseParseError(ErrMalformedPosixClass, p.pos, fmt.Sprintf("[%v must be closed with %v]", string(intro), string(intro)))
	}
	p.advance()

	if intro == ':' && !isPosixClassName(name.String()) {
		p.raiseParseError(ErrMalformedPosixClass, start, fmt.Sprintf("unknown class name: %v", name.String()))
	}
}
