package parser

import (
	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/tree"
)

type seqState int

const (
	seqForward seqState = iota
	seqForwardYielded
	seqSkipWhitespace
	seqChild
	seqBacktrack
	seqBacktrackYielded
	seqBacktrackChild
	seqDone
)

// sequenceMatcher matches child slots of sequences and repetitions by depth-first search.
//
// Non-greedy matcher yields each match as soon as enough slots are matched (shortest first),
// greedy matcher yields matches while backtracking (longest first).
// Matched slots are kept on frame stack, so that the last matched slot may be asked
// for an alternative when the next slot fails.
type sequenceMatcher struct {
	id       grammar.ID
	index    int
	state    seqState
	pos      int
	prewsPos int
	firstPos int
	objs     []*tree.Node
	stack    frameStack
	child    matcher
	best     expectation
	final    result
}

func newSequence(id grammar.ID, index int) *sequenceMatcher {
	return &sequenceMatcher{id: id, index: index, pos: index, firstPos: -1}
}

func (m *sequenceMatcher) yield(c *ctx) result {
	objs := make([]*tree.Node, len(m.objs))
	copy(objs, m.objs)
	return success(m.pos-m.index, tree.New(c.g, m.id, c.buf.String(), m.index, m.pos, objs))
}

func (m *sequenceMatcher) next(c *ctx) result {
	n := c.node(m.id)
	for {
		switch m.state {
		case seqForward:
			if !n.Greedy && len(m.objs) >= n.Min {
				m.state = seqForwardYielded
				return m.yield(c)
			}
			m.state = seqForwardYielded

		case seqForwardYielded:
			if len(m.objs) >= n.Max {
				m.state = seqBacktrack
				continue
			}
			m.prewsPos = m.pos
			m.state = seqSkipWhitespace

		case seqSkipWhitespace:
			if n.Whitespace.On() {
				m.pos = n.Whitespace.Skip(c.buf.String(), m.pos)
				if m.pos >= c.buf.Len() && !c.buf.EOF() {
					return suspended
				}
			}
			if m.firstPos < 0 {
				m.firstPos = m.pos
			}
			m.child = newMatcher(c, n.Child(len(m.objs)), m.pos)
			m.state = seqChild

		case seqChild:
			r := m.child.next(c)
			switch r.status {
			case needMore:
				return c.suspend(n.Child(len(m.objs)))
			case fatal:
				return r
			case failed:
				m.best.update(r.err)
				m.pos = m.prewsPos
				m.child = nil
				m.state = seqBacktrack
			default:
				m.objs = append(m.objs, r.node)
				m.stack.Push(frame{m.pos, m.child})
				m.child = nil
				m.pos += r.len
				m.state = seqForward
			}

		case seqBacktrack:
			if n.Greedy && len(m.objs) >= n.Min {
				m.state = seqBacktrackYielded
				return m.yield(c)
			}
			m.state = seqBacktrackYielded

		case seqBacktrackYielded:
			if m.stack.IsEmpty() {
				m.final = m.failure(n)
				m.state = seqDone
				continue
			}
			m.pos = m.stack.Top().pos
			m.state = seqBacktrackChild

		case seqBacktrackChild:
			top := m.stack.Top()
			r := top.m.next(c)
			switch r.status {
			case needMore:
				return c.suspend(n.Child(len(m.objs) - 1))
			case fatal:
				return r
			case failed:
				m.best.update(r.err)
				m.stack.Drop()
				m.objs = m.objs[:len(m.objs)-1]
				m.state = seqBacktrack
			default:
				m.objs[len(m.objs)-1] = r.node
				m.pos += r.len
				m.state = seqForward
			}

		default:
			return m.final
		}
	}
}

// failure reports the node itself instead of the furthest child failure if the node overrides errors
// or if it is a described wrapper of a single slot that failed at its start.
func (m *sequenceMatcher) failure(n *grammar.Node) result {
	if n.ErrorOverride || m.best.isZero() {
		return failure(m.index, m.id)
	}
	if n.Len() == 1 && m.best.pos == m.firstPos && n.Desc != n.Name {
		return failure(m.index, m.id)
	}
	return failureOf(m.best)
}
