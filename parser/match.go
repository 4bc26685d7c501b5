package parser

import (
	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/internal/ints"
	"github.com/ava12/grammatic/source"
	"github.com/ava12/grammatic/tree"
)

type status int

const (
	// matched: a match of length len, more alternatives may follow.
	matched status = iota
	// needMore: cannot decide until buffer is extended, call next again after that.
	needMore
	// failed: no (more) matches, err holds the furthest failure.
	failed
	// fatal: configuration or internal error, matching must stop.
	fatal
)

// expectation is a failure position and the set of grammar nodes expected there.
type expectation struct {
	pos int
	ids *ints.Set
}

func (x expectation) isZero() bool {
	return x.ids == nil
}

// update keeps the furthest failure, failures at the same position are merged.
func (x *expectation) update(y expectation) {
	if y.ids == nil {
		return
	}
	if x.ids == nil || y.pos > x.pos {
		x.pos = y.pos
		x.ids = y.ids.Copy()
	} else if y.pos == x.pos {
		x.ids.Union(y.ids)
	}
}

func (x expectation) expected() []grammar.ID {
	if x.ids == nil {
		return nil
	}

	items := x.ids.ToSlice()
	ids := make([]grammar.ID, len(items))
	for i, item := range items {
		ids[i] = grammar.ID(item)
	}
	return ids
}

type result struct {
	status status
	len    int
	node   *tree.Node
	err    expectation
	fatal  error
}

func success(length int, node *tree.Node) result {
	return result{status: matched, len: length, node: node}
}

func failure(pos int, id grammar.ID) result {
	return result{status: failed, err: expectation{pos, ints.NewSet(int(id))}}
}

func failureOf(x expectation) result {
	return result{status: failed, err: x}
}

func fatalError(e error) result {
	return result{status: fatal, fatal: e}
}

var suspended = result{status: needMore}

// ctx is the matching context passed to every matcher call.
// Buffer may be extended between calls, but text before the end of buffer never changes.
type ctx struct {
	g    *grammar.Grammar
	buf  *source.Buffer
	refs grammar.Scope
}

func (c *ctx) node(id grammar.ID) *grammar.Node {
	return c.g.Node(id)
}

// suspend reports that a child of node id needs more text.
func (c *ctx) suspend(id grammar.ID) result {
	if c.buf.EOF() {
		return fatalError(unexpectedSuspendError(c.g, id))
	}
	return suspended
}

// withBuffer returns context matching against buf.
func (c *ctx) withBuffer(buf *source.Buffer) *ctx {
	return &ctx{g: c.g, buf: buf, refs: c.refs}
}

// matcher is a resumable match attempt of a grammar node at a fixed position.
// Each next call returns the next match, a suspension, or the final failure.
// After the final failure next keeps returning failures.
type matcher interface {
	next(c *ctx) result
}

func newMatcher(c *ctx, id grammar.ID, index int) matcher {
	n := c.node(id)
	switch n.Kind {
	case grammar.SeqKind, grammar.RepeatKind, grammar.ListKind:
		return newSequence(id, index)
	case grammar.LiteralKind:
		return &literalMatcher{id: id, index: index}
	case grammar.WordKind:
		return &wordMatcher{id: id, index: index}
	case grammar.AnyKind:
		return &anyMatcher{id: id, index: index}
	case grammar.EmptyKind:
		return &emptyMatcher{id: id, index: index}
	case grammar.BOLKind:
		return &bolMatcher{id: id, index: index}
	case grammar.EOFKind:
		return &eofMatcher{id: id, index: index}
	case grammar.OrKind:
		return &orMatcher{id: id, index: index}
	case grammar.ExceptKind:
		return &exceptMatcher{id: id, index: index}
	case grammar.NotFollowedByKind:
		return &notFollowedByMatcher{id: id, index: index}
	case grammar.RefKind:
		return &refMatcher{id: id, index: index}
	default:
		return &emptyMatcher{id: id, index: index, done: true}
	}
}
