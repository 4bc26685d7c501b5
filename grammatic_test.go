package grammatic_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ava12/grammatic"
	"github.com/ava12/grammatic/source"
)

func TestNewError(t *testing.T) {
	e := grammatic.NewError(grammatic.ParseErrors, "failed", "input", 2, 5)
	assert.Equal(t, "failed in input at line 2 col 5", e.Error())
	assert.Equal(t, "input", e.SourceName)

	e = grammatic.NewError(grammatic.ParseErrors, "failed", "", 2, 5)
	assert.Equal(t, "failed", e.Error())

	e = grammatic.FormatError(grammatic.LoaderErrors, "%d%%", 100)
	assert.Equal(t, "100%", e.Error())
	e = grammatic.FormatError(grammatic.LoaderErrors, "100%")
	assert.Equal(t, "100%", e.Error())

	e = grammatic.FormatErrorPos(source.NewPos("src"), grammatic.InternalErrors, "bad %s", "state")
	assert.Equal(t, "bad state in src at line 1 col 1", e.Error())
	assert.Equal(t, 1, e.Line)
}

func TestErrorCode(t *testing.T) {
	e := grammatic.FormatError(grammatic.ReferenceErrors+2, "unknown")
	wrapped := fmt.Errorf("loading: %w", e)

	assert.Equal(t, grammatic.ReferenceErrors+2, grammatic.ErrorCode(wrapped))
	assert.Equal(t, grammatic.ReferenceErrors, grammatic.ErrorClass(wrapped))
	assert.Equal(t, grammatic.ReferenceErrors, e.Class())
	assert.Equal(t, 0, grammatic.ErrorCode(fmt.Errorf("plain")))
	assert.Equal(t, 0, grammatic.ErrorClass(nil))
}

func TestCodeClass(t *testing.T) {
	samples := map[int]int{
		0:   0,
		-5:  0,
		1:   grammatic.DefinitionErrors,
		100: grammatic.DefinitionErrors,
		101: grammatic.ReferenceErrors,
		250: grammatic.ParseErrors,
		301: grammatic.InternalErrors,
		499: grammatic.LoaderErrors,
	}
	for code, class := range samples {
		assert.Equal(t, class, grammatic.CodeClass(code), "code %d", code)
	}
}
