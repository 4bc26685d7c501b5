// Package source defines input buffer and position counters used by parser.
package source

import (
	"strings"
	"unicode/utf8"
)

// Pos holds cumulative counters of consumed input: characters, lines, and columns.
// Counters are 0-based, Line and Col methods return 1-based values.
type Pos struct {
	name            string
	char, line, col int
}

// NewPos creates zero position for named source, name may be empty.
func NewPos(name string) Pos {
	return Pos{name: name}
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	return p.name
}

// Char returns number of characters consumed so far.
func (p Pos) Char() int {
	return p.char
}

// Line returns 1-based line number.
func (p Pos) Line() int {
	return p.line + 1
}

// Col returns 1-based column number.
func (p Pos) Col() int {
	return p.col + 1
}

// Advance returns position after consuming first count bytes of text.
// tabs is tab stop width, values less than 2 disable tab expansion.
func (p Pos) Advance(text string, count, tabs int) Pos {
	if count > len(text) {
		count = len(text)
	}
	consumed := text[:count]
	p.char += utf8.RuneCountInString(consumed)
	lineStart := 0
	if i := strings.LastIndexByte(consumed, '\n'); i >= 0 {
		p.line += strings.Count(consumed, "\n")
		p.col = 0
		lineStart = i + 1
	}
	p.col = advanceCol(p.col, consumed[lineStart:], tabs)
	return p
}

func advanceCol(col int, text string, tabs int) int {
	if tabs < 2 {
		return col + utf8.RuneCountInString(text)
	}

	for _, r := range text {
		if r == '\t' {
			col += tabs - col%tabs
		} else {
			col++
		}
	}
	return col
}
