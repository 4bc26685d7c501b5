package source

import (
	"testing"
)

type result struct {
	char, line, col int
}

func TestPosAdvance(t *testing.T) {
	samples := []struct {
		text  string
		count int
		tabs  int
		res   result
	}{
		{"", 0, 1, result{0, 1, 1}},
		{"abc", 2, 1, result{2, 1, 3}},
		{"abc", 10, 1, result{3, 1, 4}},
		{"a\nbc", 4, 1, result{4, 2, 3}},
		{"a\n\nb", 4, 1, result{4, 3, 2}},
		{"a\n", 2, 1, result{2, 2, 1}},
		{"\tx", 2, 1, result{2, 1, 3}},
		{"\tx", 2, 8, result{2, 1, 10}},
		{"ab\tx", 4, 4, result{4, 1, 6}},
		{"ab\n\t\tx", 6, 4, result{6, 2, 10}},
		{"äöü", 4, 1, result{2, 1, 3}},
	}

	for i, s := range samples {
		p := NewPos("").Advance(s.text, s.count, s.tabs)
		got := result{p.Char(), p.Line(), p.Col()}
		if got != s.res {
			t.Errorf("sample #%d: expecting %v, got %v", i, s.res, got)
		}
	}
}

func TestPosAdvanceCumulative(t *testing.T) {
	p := NewPos("src")
	p = p.Advance("ab", 2, 1)
	p = p.Advance("c\td", 3, 4)
	got := result{p.Char(), p.Line(), p.Col()}
	expected := result{5, 1, 6}
	if got != expected {
		t.Errorf("expecting %v, got %v", expected, got)
	}
	p = p.Advance("\nxy", 3, 4)
	got = result{p.Char(), p.Line(), p.Col()}
	expected = result{8, 2, 3}
	if got != expected {
		t.Errorf("expecting %v, got %v", expected, got)
	}
	if p.SourceName() != "src" {
		t.Errorf("expecting source name %q, got %q", "src", p.SourceName())
	}
}

func TestBufferAppend(t *testing.T) {
	b := NewBuffer("", true, false)

	b.Append("abc", Unset, Unset)
	if b.String() != "abc" || !b.BOL() || b.EOF() {
		t.Fatalf("unexpected state after first chunk: %q %v %v", b.String(), b.BOL(), b.EOF())
	}

	b.Append("def", On, Unset)
	if b.String() != "abc\ndef" {
		t.Errorf("expecting new line before chunk, got %q", b.String())
	}

	b.Append("", Unset, On)
	if !b.EOF() {
		t.Errorf("expecting eof flag set")
	}

	b.Append("x", Unset, Unset)
	if b.EOF() {
		t.Errorf("expecting eof flag reset by non-empty chunk")
	}
}

func TestBufferEmptyBOL(t *testing.T) {
	b := NewBuffer("", true, false)
	b.Append("", Off, Unset)
	if b.BOL() {
		t.Errorf("expecting bol reset on empty buffer")
	}
	b.Append("a", On, Unset)
	if b.String() != "a" {
		t.Errorf("expecting no new line on empty buffer, got %q", b.String())
	}
	if !b.BOL() {
		t.Errorf("expecting bol set on empty buffer")
	}

	b.Append("b", Off, Unset)
	if b.String() != "ab" || !b.BOL() {
		t.Errorf("expecting bol kept on non-empty buffer, got %q, bol %v", b.String(), b.BOL())
	}
}

func TestBufferSkip(t *testing.T) {
	b := NewBuffer("ab\ncd", false, false)
	b.Skip(3)
	if b.String() != "cd" || !b.BOL() {
		t.Errorf("expecting \"cd\" at line start, got %q, bol %v", b.String(), b.BOL())
	}
	b.Skip(1)
	if b.String() != "d" || b.BOL() {
		t.Errorf("expecting \"d\" not at line start, got %q, bol %v", b.String(), b.BOL())
	}
	b.Skip(0)
	if b.String() != "d" {
		t.Errorf("expecting unchanged buffer, got %q", b.String())
	}
}

func TestBufferComplete(t *testing.T) {
	b := NewBuffer("abcdef", true, false)
	c := b.Complete(3)
	if c.String() != "abc" || !c.EOF() || !c.BOL() {
		t.Errorf("unexpected complete buffer: %q %v %v", c.String(), c.BOL(), c.EOF())
	}
	if b.EOF() {
		t.Errorf("source buffer must stay open")
	}
	b.Clear()
	if b.Len() != 0 || !b.BOL() || b.EOF() {
		t.Errorf("unexpected state after Clear")
	}
}
