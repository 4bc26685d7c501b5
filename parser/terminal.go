package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/tree"
)

type literalMatcher struct {
	id    grammar.ID
	index int
	done  bool
}

func (m *literalMatcher) next(c *ctx) result {
	if m.done {
		return failure(m.index, m.id)
	}

	n := c.node(m.id)
	rest := c.buf.String()[m.index:]
	if len(rest) < len(n.Text) && strings.HasPrefix(n.Text, rest) && !c.buf.EOF() {
		return suspended
	}

	m.done = true
	if strings.HasPrefix(rest, n.Text) {
		return success(len(n.Text), tree.NewText(c.g, m.id, n.Text))
	}
	return failure(m.index, m.id)
}

// partialRune tells whether text starts with an incomplete UTF-8 sequence that may be completed later.
func partialRune(c *ctx, text string) bool {
	return !c.buf.EOF() && !utf8.FullRuneInString(text)
}

type anyMatcher struct {
	id    grammar.ID
	index int
	done  bool
}

func (m *anyMatcher) next(c *ctx) result {
	if m.done {
		return failure(m.index, m.id)
	}

	text := c.buf.String()
	if m.index == len(text) || partialRune(c, text[m.index:]) {
		if c.buf.EOF() {
			m.done = true
			return failure(m.index, m.id)
		}
		return suspended
	}

	m.done = true
	_, size := utf8.DecodeRuneInString(text[m.index:])
	return success(size, tree.New(c.g, m.id, text, m.index, m.index+size, nil))
}

type emptyMatcher struct {
	id    grammar.ID
	index int
	done  bool
}

func (m *emptyMatcher) next(c *ctx) result {
	if m.done {
		return failure(m.index, m.id)
	}

	m.done = true
	return success(0, tree.NewText(c.g, m.id, ""))
}

type bolMatcher struct {
	id    grammar.ID
	index int
	done  bool
}

func (m *bolMatcher) next(c *ctx) result {
	if m.done {
		return failure(m.index, m.id)
	}

	m.done = true
	var bol bool
	if m.index > 0 {
		prev := c.buf.String()[m.index-1]
		bol = (prev == '\n' || prev == '\r')
	} else {
		bol = c.buf.BOL()
	}
	if bol {
		return success(0, tree.NewText(c.g, m.id, ""))
	}
	return failure(m.index, m.id)
}

// eofMatcher waits at the end of buffer until end of input is signaled.
type eofMatcher struct {
	id    grammar.ID
	index int
	done  bool
}

func (m *eofMatcher) next(c *ctx) result {
	if m.done {
		return failure(m.index, m.id)
	}

	atEnd := (m.index == c.buf.Len())
	if atEnd && !c.buf.EOF() {
		return suspended
	}

	m.done = true
	if atEnd {
		return success(0, tree.NewText(c.g, m.id, ""))
	}
	return failure(m.index, m.id)
}

// wordMatcher matches a run of characters, the first one from start set and the rest from rest set.
// ends[k] is the end offset of k-character match.
type wordMatcher struct {
	id       grammar.ID
	index    int
	ends     []int
	complete bool
	counted  bool
	count    int
}

func (m *wordMatcher) scan(c *ctx, n *grammar.Node) {
	text := c.buf.String()
	pos := m.ends[len(m.ends)-1]
	for !m.complete {
		k := len(m.ends) - 1
		if k >= n.Max {
			m.complete = true
			break
		}
		if pos >= len(text) {
			m.complete = c.buf.EOF()
			break
		}
		if partialRune(c, text[pos:]) {
			break
		}

		r, size := utf8.DecodeRuneInString(text[pos:])
		set := n.Rest
		if k == 0 {
			set = n.Start
		}
		if !set.Contains(r) {
			m.complete = true
			break
		}

		pos += size
		m.ends = append(m.ends, pos)
	}
}

func (m *wordMatcher) yield(c *ctx, k int) result {
	return success(m.ends[k]-m.index, tree.New(c.g, m.id, c.buf.String(), m.index, m.ends[k], nil))
}

func (m *wordMatcher) next(c *ctx) result {
	n := c.node(m.id)
	if m.ends == nil {
		m.ends = []int{m.index}
		m.count = n.Min
	}
	m.scan(c, n)
	found := len(m.ends) - 1

	if !n.Greedy {
		if m.count <= found {
			m.count++
			return m.yield(c, m.count-1)
		}
		if m.complete {
			return failure(m.index, m.id)
		}
		return suspended
	}

	if !m.complete {
		return suspended
	}
	if !m.counted {
		m.counted = true
		m.count = found
	}
	if m.count >= n.Min {
		m.count--
		return m.yield(c, m.count+1)
	}
	return failure(m.index, m.id)
}
