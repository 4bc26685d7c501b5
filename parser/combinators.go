package parser

import (
	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/tree"
)

// orMatcher passes through all matches of each alternative in order.
type orMatcher struct {
	id    grammar.ID
	index int
	alt   int
	child matcher
	best  expectation
}

func (m *orMatcher) next(c *ctx) result {
	n := c.node(m.id)
	for {
		if m.child == nil {
			if m.alt >= len(n.Children) {
				if m.best.isZero() {
					return failure(m.index, m.id)
				}
				return failureOf(m.best)
			}
			m.child = newMatcher(c, n.Children[m.alt], m.index)
		}

		r := m.child.next(c)
		switch r.status {
		case needMore:
			return c.suspend(n.Children[m.alt])
		case failed:
			m.best.update(r.err)
			m.child = nil
			m.alt++
		default:
			return r
		}
	}
}

// exceptMatcher passes through matches of primary node unless excluded node matches the same text.
type exceptMatcher struct {
	id      grammar.ID
	index   int
	primary matcher
	best    expectation
	done    bool
}

func (m *exceptMatcher) next(c *ctx) result {
	n := c.node(m.id)
	if m.primary == nil {
		m.primary = newMatcher(c, n.Children[0], m.index)
	}

	for !m.done {
		r := m.primary.next(c)
		switch r.status {
		case needMore:
			return c.suspend(n.Children[0])
		case fatal:
			return r
		case failed:
			m.best.update(r.err)
			m.done = true
		default:
			excluded, e := m.excluded(c, n.Children[1], r.len)
			if e != nil {
				return fatalError(e)
			}
			if !excluded {
				return r
			}
		}
	}

	if m.best.isZero() || m.best.pos == m.index {
		return failure(m.index, m.id)
	}
	return failureOf(m.best)
}

// excluded tells whether node x matches exactly length bytes at match position,
// the text after matched span is not visible to x.
func (m *exceptMatcher) excluded(c *ctx, x grammar.ID, length int) (bool, error) {
	xc := c.withBuffer(c.buf.Complete(m.index + length))
	xm := newMatcher(xc, x, m.index)
	for {
		r := xm.next(xc)
		switch r.status {
		case needMore:
			return false, unexpectedSuspendError(c.g, x)
		case fatal:
			return false, r.fatal
		case failed:
			return false, nil
		default:
			if r.len == length {
				return true, nil
			}
		}
	}
}

// notFollowedByMatcher matches empty string if guarded node does not match at the same position.
type notFollowedByMatcher struct {
	id    grammar.ID
	index int
	child matcher
	done  bool
}

func (m *notFollowedByMatcher) next(c *ctx) result {
	if m.done {
		return failure(m.index, m.id)
	}

	n := c.node(m.id)
	if m.child == nil {
		m.child = newMatcher(c, n.Children[0], m.index)
	}
	r := m.child.next(c)
	switch r.status {
	case needMore:
		return c.suspend(n.Children[0])
	case fatal:
		return r
	case failed:
		m.done = true
		return success(0, tree.NewText(c.g, m.id, ""))
	default:
		m.done = true
		return failure(m.index, m.id)
	}
}

// refMatcher resolves reference on first call and delegates to the target node.
type refMatcher struct {
	id     grammar.ID
	index  int
	target matcher
}

func (m *refMatcher) next(c *ctx) result {
	if m.target == nil {
		t, e := c.g.Resolve(m.id, c.refs)
		if e != nil {
			return fatalError(e)
		}
		m.target = newMatcher(c, t, m.index)
	}
	return m.target.next(c)
}
