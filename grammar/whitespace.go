package grammar

import (
	"regexp"
)

// DefaultWhitespacePattern is the pattern of StdWhitespace.
// RE2 \s is ASCII only, so vertical tab, NEL and Unicode space separators
// (NBSP, ideographic space, line and paragraph separators) are listed explicitly.
const DefaultWhitespacePattern = `[\s\v\x{85}\p{Z}]+`

// Whitespace is a whitespace skipping policy: none or a pattern.
type Whitespace struct {
	pattern string
	re      *regexp.Regexp
}

// NoWhitespace disables whitespace skipping.
var NoWhitespace = Whitespace{}

// StdWhitespace skips DefaultWhitespacePattern.
var StdWhitespace = Whitespace{DefaultWhitespacePattern, regexp.MustCompile(`^(?:` + DefaultWhitespacePattern + `)`)}

// NewWhitespace creates whitespace policy skipping text matching pattern.
func NewWhitespace(pattern string) (Whitespace, error) {
	if pattern == DefaultWhitespacePattern {
		return StdWhitespace, nil
	}

	re, e := regexp.Compile(`^(?:` + pattern + `)`)
	if e != nil {
		return NoWhitespace, patternError(pattern, e)
	}
	return Whitespace{pattern, re}, nil
}

// On tells whether whitespace is skipped.
func (w Whitespace) On() bool {
	return w.re != nil
}

// Pattern returns whitespace pattern or empty string.
func (w Whitespace) Pattern() string {
	return w.pattern
}

// Skip returns position of the first non-whitespace byte at or after pos.
func (w Whitespace) Skip(text string, pos int) int {
	if w.re == nil || pos >= len(text) {
		return pos
	}

	loc := w.re.FindStringIndex(text[pos:])
	if loc == nil {
		return pos
	}
	return pos + loc[1]
}

// Only tells whether text starting at pos consists of whitespace only.
func (w Whitespace) Only(text string, pos int) bool {
	return w.Skip(text, pos) == len(text)
}

func (w Whitespace) key() string {
	if w.re == nil {
		return "-"
	}
	return "+" + w.pattern
}
