package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/grammatic"
	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/parser"
	"github.com/ava12/grammatic/tree"
)

func build(t *testing.T, f func(b *grammar.Builder) grammar.ID) (*grammar.Grammar, grammar.ID) {
	t.Helper()
	b := grammar.NewBuilder()
	root := f(b)
	g, e := b.Build()
	require.NoError(t, e)
	return g, root
}

func newParser(t *testing.T, f func(b *grammar.Builder) grammar.ID, opts ...parser.Option) *parser.Parser {
	t.Helper()
	g, root := build(t, f)
	p, e := parser.New(g, root, opts...)
	require.NoError(t, e)
	return p
}

func texts(rs []*parser.Result) []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.Node().Text()
	}
	return result
}

func parseError(t *testing.T, e error) *parser.ParseError {
	t.Helper()
	var pe *parser.ParseError
	require.True(t, errors.As(e, &pe), "expecting ParseError, got %v", e)
	return pe
}

func TestMatchTypes(t *testing.T) {
	alts := func(b *grammar.Builder) grammar.ID {
		return b.Or("aa", "aaaa", "a", "aaa")
	}
	samples := []struct {
		mt       parser.MatchType
		expected string
	}{
		{parser.First, "aa"},
		{parser.Last, "aaa"},
		{parser.Longest, "aaaa"},
		{parser.Shortest, "a"},
	}

	for _, s := range samples {
		t.Run(s.mt.String(), func(t *testing.T) {
			p := newParser(t, alts)
			r, e := p.ParseString("aaaa", parser.Match(s.mt))
			require.NoError(t, e)
			require.NotNil(t, r)
			assert.Equal(t, s.expected, r.Node().Text())
			assert.Equal(t, len(s.expected), r.Len)
			assert.Equal(t, "aaaa"[len(s.expected):], p.Remainder())
		})
	}

	p := newParser(t, alts, parser.WithMatchType(parser.All))
	r, e := p.ParseString("aaaa")
	require.NoError(t, e)
	assert.Equal(t, []string{"aa", "aaaa", "a", "aaa"}, texts(r.All))
	assert.Equal(t, 4, r.Len)
}

func TestUnknownMatchType(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Literal("a")
	})
	_, e := p.ParseString("a", parser.Match(parser.MatchType(42)))
	assert.Equal(t, parser.UnknownMatchTypeError, grammatic.ErrorCode(e))

	mt, e := parser.ParseMatchType("Longest")
	assert.NoError(t, e)
	assert.Equal(t, parser.Longest, mt)
	_, e = parser.ParseMatchType("best")
	assert.Equal(t, parser.UnknownMatchTypeError, grammatic.ErrorCode(e))
}

func TestRepeatOrder(t *testing.T) {
	samples := []struct {
		greedy   bool
		expected []string
	}{
		{true, []string{"aaaa", "aaa", "aa", "a"}},
		{false, []string{"a", "aa", "aaa", "aaaa"}},
	}

	for _, s := range samples {
		p := newParser(t, func(b *grammar.Builder) grammar.ID {
			return b.Repeat("a", grammar.Min(1), grammar.Max(4), grammar.Greedy(s.greedy))
		})
		r, e := p.ParseString("aaaa", parser.Match(parser.All))
		require.NoError(t, e)
		assert.Equal(t, s.expected, texts(r.All), "greedy: %t", s.greedy)
	}
}

func TestAllOwnsChildren(t *testing.T) {
	initialized := make(map[*tree.Node]int)
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Repeat("a", grammar.Min(1), grammar.Max(4))
	}, parser.WithInitHook(parser.AnyNode, func(n *tree.Node, _ any) error {
		initialized[n]++
		return nil
	}))
	r, e := p.ParseString("aaaa", parser.Match(parser.All))
	require.NoError(t, e)
	require.Len(t, r.All, 4)

	seen := make(map[*tree.Node]bool)
	for i, sub := range r.All {
		top := sub.Node()
		for j, c := range top.Children() {
			assert.True(t, c.Parent() == top, "match #%d, child #%d has foreign parent", i, j)
			assert.Equal(t, 1, tree.NodeLevel(c))
			assert.Equal(t, j, tree.SiblingIndex(c))
			assert.False(t, seen[c], "match #%d, child #%d is shared", i, j)
			seen[c] = true
		}
	}
	for n, count := range initialized {
		assert.Equal(t, 1, count, "%s initialized more than once", n.Text())
	}
}

func TestLiteral(t *testing.T) {
	abc := func(b *grammar.Builder) grammar.ID {
		return b.Literal("ABC")
	}

	p := newParser(t, abc)
	r, e := p.ParseString("ABCD")
	require.NoError(t, e)
	assert.Equal(t, 3, r.Len)
	assert.Equal(t, "ABC", r.Node().Text())
	assert.Equal(t, "D", p.Remainder())

	for _, text := range []string{"ABD", "abc", "XABC"} {
		p = newParser(t, abc)
		_, e = p.ParseString(text, parser.EOF())
		pe := parseError(t, e)
		assert.Equal(t, 0, pe.Pos, text)
	}

	p = newParser(t, abc)
	r, e = p.ParseString("AB")
	assert.NoError(t, e)
	assert.Nil(t, r)
	r, e = p.ParseString("C")
	require.NoError(t, e)
	assert.Equal(t, "ABC", r.Node().Text())
	assert.Equal(t, 3, p.Pos().Char())
}

func TestListChildren(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.ListOf("ABC")
	})
	r, e := p.ParseString("ABC,ABC,ABC", parser.EOF())
	require.NoError(t, e)
	n := r.Node()
	require.Len(t, n.Children(), 3)
	for _, c := range n.Children() {
		assert.Equal(t, "ABC", c.Text())
		assert.Same(t, n, c.Parent())
	}
	assert.Len(t, n.Separators(), 2)
	assert.Empty(t, cmp.Diff([]string{"ABC", ",", "ABC", ",", "ABC"}, n.Tokens()))
}

func TestFurthestError(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Define("G", b.Or([]any{"a", "b", "c"}, []any{"a", "x"}))
	})
	_, e := p.ParseString("abd", parser.EOF())
	pe := parseError(t, e)
	assert.Equal(t, 2, pe.Pos)
	assert.Equal(t, "Expected 'c': Found 'd'", pe.Message)
	assert.Equal(t, "[line 1, column 3] Expected 'c': Found 'd'", pe.Error())

	p = newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Or([]any{"a", "b"}, []any{"a", "c"})
	})
	_, e = p.ParseString("ad", parser.EOF())
	pe = parseError(t, e)
	assert.Equal(t, 1, pe.Pos)
	assert.Equal(t, []string{"'b'", "'c'"}, pe.ExpectedDescs())
	assert.Equal(t, "Expected 'b' or 'c': Found 'd'", pe.Message)
	assert.Equal(t, parser.ParseFailedError, grammatic.ErrorCode(e))
}

func TestErrorOverride(t *testing.T) {
	var number grammar.ID
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		number = b.Define("NUMBER", b.Word("0-9", ""), grammar.Desc("a number"))
		return b.Define("STMT", "x", "=", number)
	})
	_, e := p.ParseString("x = y", parser.EOF())
	pe := parseError(t, e)
	assert.Equal(t, 4, pe.Pos)
	assert.Equal(t, []grammar.ID{number}, pe.Expected)
	assert.Equal(t, "Expected a number: Found 'y'", pe.Message)

	var eq grammar.ID
	p = newParser(t, func(b *grammar.Builder) grammar.ID {
		eq = b.Define("ASSIGN", "x", "=", "1", grammar.ErrorOverride(true))
		return eq
	})
	_, e = p.ParseString("x = 2", parser.EOF())
	pe = parseError(t, e)
	assert.Equal(t, 0, pe.Pos)
	assert.Equal(t, []grammar.ID{eq}, pe.Expected)
}

func TestEndOfInputMessage(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Define("A", "a", "b")
	})
	_, e := p.ParseString("a", parser.EOF())
	pe := parseError(t, e)
	assert.Equal(t, "[line 1, column 2] Expected 'b': Found (end of input)", pe.Error())
	assert.Equal(t, 1, pe.Char)
	assert.Equal(t, "a", pe.Buffer)
}

func TestExcept(t *testing.T) {
	var except grammar.ID
	threeCaps := func(b *grammar.Builder) grammar.ID {
		except = b.Except(b.Word("A-Z", "", grammar.Count(3)), "ABC")
		return except
	}

	for _, text := range []string{"AAA", "ABD"} {
		p := newParser(t, threeCaps)
		r, e := p.ParseString(text, parser.EOF())
		require.NoError(t, e, text)
		assert.Equal(t, text, r.Node().Text())
	}

	p := newParser(t, threeCaps)
	_, e := p.ParseString("ABC", parser.EOF())
	pe := parseError(t, e)
	assert.Equal(t, []grammar.ID{except}, pe.Expected)

	p = newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Except(b.Word("a-z", ""), "if")
	})
	r, e := p.ParseString("iffy", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, "iffy", r.Node().Text())
	r, e = p.ParseString("if", parser.Reset(), parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, "i", r.Node().Text())
}

func TestRefOverride(t *testing.T) {
	var item, alt grammar.ID
	g, root := build(t, func(b *grammar.Builder) grammar.ID {
		item = b.Define("ITEM", "a")
		alt = b.Literal("b")
		return b.Define("ROOT", b.Ref("ITEM"))
	})

	p, e := parser.New(g, root)
	require.NoError(t, e)
	r, e := p.ParseString("a", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, item, r.Node().Child(0).ID())

	p, e = parser.New(g, root, parser.WithRefs(map[string]grammar.ID{"ITEM": alt}))
	require.NoError(t, e)
	r, e = p.ParseString("b", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, alt, r.Node().Child(0).ID())
	_, e = p.ParseString("a", parser.Reset(), parser.EOF())
	pe := parseError(t, e)
	assert.Equal(t, []grammar.ID{alt}, pe.Expected)

	p, e = parser.New(g, root, parser.WithRefs(map[string]grammar.ID{"ITEM": grammar.NoNode}))
	require.NoError(t, e)
	_, e = p.ParseString("a", parser.EOF())
	assert.NoError(t, e)
}

func TestUnknownRef(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Define("ROOT", b.Ref("MISSING"))
	})
	_, e := p.ParseString("a", parser.EOF())
	assert.Equal(t, grammar.UnknownReferenceError, grammatic.ErrorCode(e))

	g, _ := build(t, func(b *grammar.Builder) grammar.ID { return b.Empty() })
	_, e = parser.New(g, 42)
	assert.Equal(t, parser.UnknownRootError, grammatic.ErrorCode(e))
}

func statement(b *grammar.Builder) grammar.ID {
	ident := b.Word("a-z", "")
	num := b.Word("0-9", "")
	return b.Define("STMT", ident, "=", num, ";")
}

func TestIncrementalEquivalence(t *testing.T) {
	text := "abc = 123;"
	p := newParser(t, statement)
	whole, e := p.ParseString(text, parser.EOF())
	require.NoError(t, e)
	expected := whole.Node().Tokens()
	require.Equal(t, []string{"abc", "=", "123", ";"}, expected)

	for i := 0; i < len(text); i++ {
		p := newParser(t, statement)
		r, e := p.ParseString(text[:i])
		require.NoError(t, e, "split at %d", i)
		require.Nil(t, r, "split at %d", i)

		r, e = p.ParseString(text[i:], parser.EOF())
		require.NoError(t, e, "split at %d", i)
		require.NotNil(t, r, "split at %d", i)
		assert.Empty(t, cmp.Diff(expected, r.Node().Tokens()), "split at %d", i)
		assert.Equal(t, len(text), r.Len, "split at %d", i)
	}
}

func TestResetIdempotence(t *testing.T) {
	fresh := newParser(t, statement)
	expected, e := fresh.ParseString("x = 1;", parser.EOF())
	require.NoError(t, e)

	p := newParser(t, statement)
	r, e := p.ParseString("abc = 12")
	require.NoError(t, e)
	require.Nil(t, r)
	p.Reset()
	assert.Equal(t, "", p.Remainder())
	assert.Equal(t, 0, p.Pos().Char())

	r, e = p.ParseString("x = 1;", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, expected.Node().Tokens(), r.Node().Tokens())
	assert.Equal(t, fresh.Pos(), p.Pos())
}

func TestWhitespaceBeforeEOF(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Define("A", "a")
	})
	rs, e := p.ParseMulti("a a  ", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, []string{"a", " a"}, texts(rs))
	assert.Equal(t, "  ", p.Remainder())

	p = newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Define("A", "a", grammar.SkipWhitespace(false))
	})
	rs, e = p.ParseMulti("a ", parser.EOF())
	assert.Len(t, rs, 1)
	pe := parseError(t, e)
	assert.Equal(t, "[line 1, column 2] Expected 'a': Found ' '", pe.Error())
}

func TestTabsAndLines(t *testing.T) {
	x := func(b *grammar.Builder) grammar.ID {
		return b.Define("A", "x")
	}

	p := newParser(t, x, parser.WithTabs(4))
	_, e := p.ParseString("\t\ty", parser.EOF())
	assert.Equal(t, "[line 1, column 9] Expected 'x': Found 'y'", parseError(t, e).Error())

	p = newParser(t, x)
	_, e = p.ParseString("\t\ty", parser.EOF())
	assert.Equal(t, "[line 1, column 3] Expected 'x': Found 'y'", parseError(t, e).Error())

	p = newParser(t, x, parser.WithTabs(4))
	rs, e := p.ParseMulti("x\n\tx\ny", parser.EOF())
	assert.Len(t, rs, 2)
	pe := parseError(t, e)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, 1, pe.Col)
	assert.Equal(t, 5, pe.Char)
	assert.Equal(t, 2, p.Pos().Line())
	assert.Equal(t, 6, p.Pos().Col())
}

func TestParseLines(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Define("WORD", b.Word("a-z", ""))
	})
	rs, e := p.ParseLines([]string{"ab", "c d\n", "ef"}, parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, []string{"abc", " d", "\nef"}, texts(rs))
	assert.Equal(t, "", p.Remainder())
}

func TestOptional(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Seq("a", b.Optional("b"), "c")
	})
	r, e := p.ParseString("ac", parser.EOF())
	require.NoError(t, e)
	n := r.Node()
	require.Len(t, n.Children(), 3)
	assert.Nil(t, n.Child(1))
	assert.Equal(t, "c", n.Child(2).Text())

	r, e = p.ParseString("abc", parser.Reset(), parser.EOF())
	require.NoError(t, e)
	require.Len(t, r.Node().Children(), 3)
	assert.Equal(t, "b", r.Node().Child(1).Text())
}

func TestNotFollowedBy(t *testing.T) {
	kw := func(b *grammar.Builder) grammar.ID {
		return b.Define("KW", "if", b.NotFollowedBy(b.Word("a-z", "")), grammar.SkipWhitespace(false))
	}

	p := newParser(t, kw)
	r, e := p.ParseString("if x", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, "if", r.Node().Text())

	p = newParser(t, kw)
	_, e = p.ParseString("iffy", parser.EOF())
	pe := parseError(t, e)
	assert.Equal(t, 2, pe.Pos)
	assert.Equal(t, "Expected anything except WORD('a-z'): Found 'fy'", pe.Message)
}

func TestSpecials(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Seq(b.BOL(), "a", b.EOF())
	})
	r, e := p.ParseString("a")
	assert.NoError(t, e)
	assert.Nil(t, r)
	r, e = p.ParseString("", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, "a", r.Node().Text())

	p = newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Seq("a", b.EOL(), "b", grammar.SkipWhitespace(false))
	})
	r, e = p.ParseString("a\r\nb", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, []string{"a", "\r\n", "b"}, r.Node().Tokens())

	p = newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Repeat(b.Any(), grammar.Count(2))
	})
	r, e = p.ParseString("é!", parser.EOF())
	require.NoError(t, e)
	assert.Equal(t, "é!", r.Node().Text())
	assert.Equal(t, 2, p.Pos().Char())

	p = newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Word("0-9", "")
	})
	r, e = p.ParseString("12")
	assert.NoError(t, e)
	assert.Nil(t, r)
	r, e = p.ParseString("3 ")
	require.NoError(t, e)
	assert.Equal(t, "123", r.Node().Text())
}

func TestZeroLengthMatch(t *testing.T) {
	p := newParser(t, func(b *grammar.Builder) grammar.ID {
		return b.Define("NOTHING", nil)
	})
	rs, e := p.ParseMulti("abc")
	require.NoError(t, e)
	assert.Len(t, rs, 1)
	assert.Equal(t, 0, rs[0].Len)
	assert.Equal(t, "abc", p.Remainder())
}

func TestInitHooks(t *testing.T) {
	var seen []string
	hook := func(n *tree.Node, data any) error {
		seen = append(seen, data.(string)+":"+n.Text())
		return nil
	}
	p := newParser(t, statement, parser.WithInitHook("STMT", hook), parser.WithData("default"))
	_, e := p.ParseString("a = 1;", parser.EOF())
	require.NoError(t, e)
	_, e = p.ParseString("b = 2;", parser.Reset(), parser.EOF(), parser.Data("override"))
	require.NoError(t, e)
	assert.Equal(t, []string{"default:a = 1;", "override:b = 2;"}, seen)

	failing := errors.New("rejected")
	p = newParser(t, statement, parser.WithInitHook(parser.AnyNode, func(n *tree.Node, data any) error {
		return failing
	}))
	_, e = p.ParseString("a = 1;", parser.EOF())
	assert.Equal(t, parser.InitHookError, grammatic.ErrorCode(e))

	p = newParser(t, statement, parser.WithSourceName("conf"), parser.WithInitHook("STMT", func(n *tree.Node, data any) error {
		return failing
	}))
	_, e = p.ParseString("a = 1;", parser.EOF())
	require.Error(t, e)
	assert.Contains(t, e.Error(), "init hook of STMT failed: rejected in conf at line 1 col 1")
}
