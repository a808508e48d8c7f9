// Package syntax validates regular-expression patterns written in an ECMAScript-like dialect with POSIX
// bracket classes. It reports the first grammar rule a pattern violates and where it happened; it never
// builds a syntax tree nor executes a pattern.
package syntax

import "unicode/utf16"

// Validate reports whether pattern is well-formed. The pattern is read as a sequence of Unicode scalar
// values, and the offset of a returned *ParseError is a byte offset into pattern.
func Validate(pattern string) error {
	err := ValidateUnits([]rune(pattern))
	if err == nil {
		return nil
	}
	pErr := err.(*ParseError)
	pErr.Offset = byteOffset(pattern, pErr.Offset)
	return pErr
}

// ValidateUTF16 is the wide-character counterpart of Validate. A surrogate pair is read as two units, and
// the offset of a returned *ParseError is a unit index.
func ValidateUTF16(pattern []uint16) error {
	return ValidateUnits(pattern)
}

// ValidateUnits validates any code unit sequence. The offset of a returned *ParseError is a unit index.
func ValidateUnits[U Unit](pattern []U) (retErr error) {
	p := &parser[U]{
		src: pattern,
	}
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(*ParseError)
		if !ok {
			panic(v)
		}
		retErr = err
	}()

	p.parsePattern()
	return nil
}

// MustValidate returns pattern unchanged and panics when it is malformed. It is intended for patterns known
// at build time, such as package-level variables.
func MustValidate(pattern string) string {
	err := Validate(pattern)
	if err != nil {
		panic(err)
	}
	return pattern
}

// EncodeUTF16 converts s to the unit sequence ValidateUTF16 takes.
func EncodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

func byteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runeIndex {
			return i
		}
		n++
	}
	return len(s)
}
