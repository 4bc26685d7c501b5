/*
Package grammatic is an incremental backtracking parser library.

Consists of subpackages:
  - cmd/grammatic: console utility checking, describing, dumping grammars and parsing files with them;
  - describe: renders EBNF-like description of a grammar;
  - grammar: defines grammar nodes, grammar builder, and reference resolution;
  - langdef: converts grammar description (written in Go-style EBNF) to grammar;
  - parser: defines matching engine and parser session;
  - source: defines input buffer and position counters used by parser;
  - tree: parse tree nodes, postprocessing, queries, and traversal helpers.

Typical usage is:

1. Build grammar using grammar.Builder or load it from EBNF description using langdef.

2. Create parser bound to the top grammar node, optionally providing session data,
reference overrides, and init hooks.

3. Feed the parser text chunks, lines, or files. Parser returns nil result while it
needs more text, parse tree when a match is found, or *parser.ParseError.
*/
package grammatic

import (
	"errors"
	"fmt"
)

// Error classes, each class holds up to 100 codes.
const (
	DefinitionErrors = 1   // grammar builder
	ReferenceErrors  = 101 // reference resolution
	ParseErrors      = 201 // parser, input does not match
	InternalErrors   = 301 // parser, misconfiguration or broken invariant
	LoaderErrors     = 401 // langdef
)

const classSize = 100

// Error is a coded error returned by grammatic packages.
type Error struct {
	Code int

	// Message is the full message, source name and position included.
	Message string

	// SourceName, Line and Col locate the error in source text, zero values mean unknown.
	SourceName string
	Line, Col  int
}

// SourcePos supplies source name and position for FormatErrorPos.
type SourcePos interface {
	SourceName() string
	Line() int
	Col() int
}

// NewError creates Error. Source name and position are appended to the message
// when all of them are known.
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg = fmt.Sprintf("%s in %s at line %d col %d", msg, name, line, col)
	}
	return &Error{Code: code, Message: msg, SourceName: name, Line: line, Col: col}
}

func (e *Error) Error() string {
	return e.Message
}

// Class returns the class of error code.
func (e *Error) Class() int {
	return CodeClass(e.Code)
}

// FormatError creates Error without source position, msg is a fmt format if params are given.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos is like FormatError, but takes source name and position from pos.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// ErrorCode returns code of the first *Error found in err chain or 0.
func ErrorCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// CodeClass returns error class code belongs to, or 0 for non-positive code.
func CodeClass(code int) int {
	if code <= 0 {
		return 0
	}
	return (code-1)/classSize*classSize + 1
}

// ErrorClass returns class of the first *Error found in err chain or 0.
func ErrorClass(err error) int {
	return CodeClass(ErrorCode(err))
}
