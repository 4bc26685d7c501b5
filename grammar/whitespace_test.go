package grammar

import (
	"testing"

	. "github.com/ava12/grammatic/internal/test"
)

func TestStdWhitespace(t *testing.T) {
	samples := []struct {
		text string
		skip int
	}{
		{" \t\r\nx", 4},
		{"\vx", 1},
		{"\u0085x", 2},
		{"\u00a0x", 2},
		{"\u3000x", 3},
		{"\u2028\u2029x", 6},
		{"x ", 0},
		{"\u200bx", 0},
	}

	for i, s := range samples {
		got := StdWhitespace.Skip(s.text, 0)
		Assert(t, got == s.skip, "sample #%d: expecting %d, got %d", i, s.skip, got)
	}

	ExpectBool(t, true, StdWhitespace.Only("\u00a0 \u3000", 0))
	ExpectBool(t, false, StdWhitespace.Only(" x ", 0))
}

func TestNewWhitespaceDefault(t *testing.T) {
	ws, e := NewWhitespace(DefaultWhitespacePattern)
	ExpectNoError(t, e)
	ExpectString(t, DefaultWhitespacePattern, ws.Pattern())
	ExpectInt(t, 2, ws.Skip(" x", 0))
}
