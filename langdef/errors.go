package langdef

import (
	"github.com/ava12/grammatic"
)

// Loader error codes.
const (
	SyntaxError = iota + grammatic.LoaderErrors
	VerifyError
	EmptyGrammarError
	ReadError
)

func syntaxError(name string, e error) *grammatic.Error {
	return grammatic.NewError(SyntaxError, "syntax error: "+e.Error(), name, 0, 0)
}

func verifyError(name string, e error) *grammatic.Error {
	return grammatic.NewError(VerifyError, "incorrect grammar: "+e.Error(), name, 0, 0)
}

func emptyGrammarError(name string) *grammatic.Error {
	return grammatic.NewError(EmptyGrammarError, "no productions defined", name, 0, 0)
}

func readError(name string, e error) *grammatic.Error {
	return grammatic.NewError(ReadError, "cannot read "+name+": "+e.Error(), name, 0, 0)
}
