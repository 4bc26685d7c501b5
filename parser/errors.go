package parser

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ava12/grammatic"
	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/source"
)

// Parse error codes.
const (
	ParseFailedError = iota + grammatic.ParseErrors
	InitHookError
)

// Internal error codes.
const (
	UnexpectedSuspendError = iota + grammatic.InternalErrors
	UnknownMatchTypeError
	UnknownRootError
)

// FoundTextLen is the maximum number of characters of unmatched text quoted in error message.
const FoundTextLen = 16

func unexpectedSuspendError(g *grammar.Grammar, id grammar.ID) *grammatic.Error {
	return grammatic.FormatError(UnexpectedSuspendError, "%s requested more data when at EOF", g.Node(id).Name)
}

func unknownMatchTypeError(mt MatchType) *grammatic.Error {
	return grammatic.FormatError(UnknownMatchTypeError, "invalid match type %s", mt.String())
}

func unknownMatchTypeNameError(name string) *grammatic.Error {
	return grammatic.FormatError(UnknownMatchTypeError, "invalid match type %q", name)
}

func unknownRootError(id grammar.ID) *grammatic.Error {
	return grammatic.FormatError(UnknownRootError, "unknown root grammar node #%d", id)
}

func initHookError(pos source.Pos, name string, e error) *grammatic.Error {
	return grammatic.FormatErrorPos(pos, InitHookError, "init hook of %s failed: %s", name, e.Error())
}

// ParseError is returned when input text does not match the grammar.
// It unwraps to *grammatic.Error with ParseFailedError code.
type ParseError struct {
	// Message has the form "Expected X or Y: Found '...'".
	Message string
	// SourceName is the name of parsed source or empty string.
	SourceName string
	// Buffer is the text buffer parser was matching against.
	Buffer string
	// Pos is byte offset of the failure in Buffer.
	Pos int
	// Char is 0-based character offset of the failure since the last reset.
	Char int
	// Line and Col are 1-based line and column of the failure.
	Line, Col int
	// Expected lists grammar nodes expected at failure position.
	Expected []grammar.ID
	// Grammar is the grammar Expected nodes belong to.
	Grammar *grammar.Grammar
}

func newParseError(g *grammar.Grammar, buf string, pos, char, line, col int, expected []grammar.ID) *ParseError {
	return &ParseError{
		Message:  expectedMessage(g, buf, pos, expected),
		Buffer:   buf,
		Pos:      pos,
		Char:     char,
		Line:     line,
		Col:      col,
		Expected: expected,
		Grammar:  g,
	}
}

func expectedMessage(g *grammar.Grammar, buf string, pos int, expected []grammar.ID) string {
	if len(expected) == 0 {
		return ""
	}

	descs := make([]string, len(expected))
	for i, id := range expected {
		descs[i] = g.Node(id).Desc
	}
	sort.Strings(descs)

	found := buf[pos:]
	if utf8.RuneCountInString(found) > FoundTextLen {
		runes := []rune(found)
		found = string(runes[:FoundTextLen])
	}
	if found == "" {
		found = "(end of input)"
	} else {
		found = grammar.Quote(found)
	}
	return "Expected " + strings.Join(descs, " or ") + ": Found " + found
}

func (e *ParseError) Error() string {
	var prefix string
	if e.Line > 0 {
		prefix = "[line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Col) + "] "
	} else {
		prefix = "[char " + strconv.Itoa(e.Char+1) + "] "
	}
	if e.SourceName != "" {
		prefix = e.SourceName + ": " + prefix
	}
	return prefix + e.Message
}

func (e *ParseError) Unwrap() error {
	return grammatic.NewError(ParseFailedError, e.Error(), e.SourceName, e.Line, e.Col)
}

// ExpectedDescs returns sorted descriptions of expected grammar nodes.
func (e *ParseError) ExpectedDescs() []string {
	descs := make([]string, len(e.Expected))
	for i, id := range e.Expected {
		descs[i] = e.Grammar.Node(id).Desc
	}
	sort.Strings(descs)
	return descs
}
