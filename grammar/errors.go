package grammar

import (
	"fmt"

	"github.com/ava12/grammatic"
)

// Grammar definition error codes.
const (
	InvalidItemError = iota + grammatic.DefinitionErrors
	InvalidPatternError
	InvalidCharSetError
	InvalidBoundsError
	FrozenNodeError
	UnknownNodeError
)

// Reference resolution error codes.
const (
	UnknownReferenceError = iota + grammatic.ReferenceErrors
	BadReferenceError
)

func invalidItemError(item any) *grammatic.Error {
	return grammatic.FormatError(InvalidItemError, "object of type %T cannot be converted to grammar", item)
}

func patternError(pattern string, e error) *grammatic.Error {
	return grammatic.FormatError(InvalidPatternError, "incorrect whitespace pattern %q (%s)", pattern, e.Error())
}

func charSetError(spec, reason string) *grammatic.Error {
	return grammatic.FormatError(InvalidCharSetError, "incorrect character set %q: %s", spec, reason)
}

func boundsError(name string, min, max int) *grammatic.Error {
	return grammatic.FormatError(InvalidBoundsError, "%s: incorrect repetition bounds %d..%d", name, min, max)
}

func frozenNodeError(name string) *grammatic.Error {
	return grammatic.FormatError(FrozenNodeError, "cannot change identity of %s after its hash is taken", name)
}

func unknownNodeError(id ID) *grammatic.Error {
	return grammatic.FormatError(UnknownNodeError, "unknown grammar node #%d", id)
}

func unknownReferenceError(name string) *grammatic.Error {
	return grammatic.FormatError(UnknownReferenceError, "unable to resolve reference to %s", Quote(name))
}

func badReferenceError(name string, target any) *grammatic.Error {
	return grammatic.FormatError(BadReferenceError, "resolving reference to %s: %s does not appear to be a valid grammar", Quote(name), fmt.Sprint(target))
}
