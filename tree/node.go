// Package tree defines parse tree nodes, their postprocessing, queries, and traversal helpers.
package tree

import (
	"strings"

	"github.com/ava12/grammatic/grammar"
)

// Node is a parse tree node produced by a successful match of a grammar node.
//
// Until postprocessing a node refers to a slice of the input buffer and holds
// transient children. Postprocessing materializes the text, replaces collapsed
// children with their own children, and runs the init hook.
type Node struct {
	g        *grammar.Grammar
	id       grammar.ID
	text     string
	children []*Node
	seps     []*Node
	all      []*Node
	parent   *Node

	// Data is free for use by init hooks.
	Data any

	src        string
	start, end int
	pending    bool
}

// InitFunc is called for each postprocessed node, error aborts postprocessing.
type InitFunc func(n *Node) error

// New creates node for match of grammar node id spanning src[start:end].
func New(g *grammar.Grammar, id grammar.ID, src string, start, end int, children []*Node) *Node {
	return &Node{
		g:        g,
		id:       id,
		children: children,
		src:      src,
		start:    start,
		end:      end,
		pending:  true,
	}
}

// NewText creates node for match of grammar node id with known text and no children.
func NewText(g *grammar.Grammar, id grammar.ID, text string) *Node {
	return &Node{g: g, id: id, src: text, end: len(text), pending: true}
}

// Grammar returns grammar the node belongs to.
func (n *Node) Grammar() *grammar.Grammar {
	return n.g
}

// ID returns ID of matched grammar node.
func (n *Node) ID() grammar.ID {
	return n.id
}

// Def returns definition of matched grammar node.
func (n *Node) Def() *grammar.Node {
	return n.g.Node(n.id)
}

// Name returns name of matched grammar node.
func (n *Node) Name() string {
	return n.Def().Name
}

// Text returns matched text.
func (n *Node) Text() string {
	if n.pending {
		return n.src[n.start:n.end]
	}
	return n.text
}

// String returns matched text.
func (n *Node) String() string {
	return n.Text()
}

// Len returns matched text length in bytes.
func (n *Node) Len() int {
	if n.pending {
		return n.end - n.start
	}
	return len(n.text)
}

// Children returns child nodes; nil child stands for a skipped optional element.
// Separators of list nodes are not included.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Separators returns separator nodes of a list node.
func (n *Node) Separators() []*Node {
	return n.seps
}

// Parent returns parent node assigned during postprocessing.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsTerminal tells whether matched grammar node is a terminal.
func (n *Node) IsTerminal() bool {
	return n.Def().Terminal
}

// IsEmpty tells whether node has neither children nor text of its own:
// non-terminal without children or empty word.
func (n *Node) IsEmpty() bool {
	d := n.Def()
	if d.Kind == grammar.WordKind {
		return n.Text() == ""
	}
	return len(n.children) == 0 && !d.Terminal
}

// HasTag tells whether matched grammar node is tagged with tag.
func (n *Node) HasTag(tag string) bool {
	return n.Def().HasTag(tag)
}

// Repr returns debug representation: grammar node name followed by child texts.
func (n *Node) Repr() string {
	details := make([]string, 0, len(n.children))
	for _, c := range n.children {
		if c == nil {
			details = append(details, "nil")
		} else {
			details = append(details, grammar.Quote(c.Text()))
		}
	}
	if len(details) == 0 {
		details = append(details, grammar.Quote(n.Text()))
	}
	return n.Name() + "<" + strings.Join(details, ", ") + ">"
}

// Clone returns a deep copy of the subtree rooted at n, detached from its parent.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n
	c.parent = nil
	if n.all == nil {
		c.children = cloneNodes(n.children, nil)
		c.seps = cloneNodes(n.seps, nil)
		return &c
	}

	copies := make(map[*Node]*Node, len(n.all))
	c.all = cloneNodes(n.all, copies)
	c.children = cloneNodes(n.children, copies)
	c.seps = cloneNodes(n.seps, copies)
	return &c
}

// cloneNodes clones ns reusing already made copies.
func cloneNodes(ns []*Node, copies map[*Node]*Node) []*Node {
	if ns == nil {
		return nil
	}

	result := make([]*Node, len(ns))
	for i, n := range ns {
		if c, found := copies[n]; found && n != nil {
			result[i] = c
			continue
		}
		result[i] = n.Clone()
		if copies != nil && n != nil {
			copies[n] = result[i]
		}
	}
	return result
}

// Postprocess finalizes node attached to parent and returns nodes to be used in its place:
// the node itself or, if the node collapses, its (postprocessed) children.
func (n *Node) Postprocess(parent *Node, init InitFunc) ([]*Node, error) {
	n.parent = parent
	if n.pending {
		n.text = n.src[n.start:n.end]
		d := n.Def()
		if d.Kind == grammar.ListKind {
			n.flattenList()
		}

		if d.Collapse {
			var result []*Node
			for _, c := range n.collapsed() {
				if c == nil {
					result = append(result, nil)
					continue
				}
				pp, e := c.Postprocess(parent, init)
				if e != nil {
					return nil, e
				}
				result = append(result, pp...)
			}
			return result, nil
		}

		if e := n.postprocessChildren(init); e != nil {
			return nil, e
		}
		n.pending = false
		n.src = ""
	}

	if init != nil {
		if e := init(n); e != nil {
			return nil, e
		}
	}
	return []*Node{n}, nil
}

// flattenList turns raw list children (element, pair, pair...) into element, separator, element... sequence.
func (n *Node) flattenList() {
	if n.all != nil || len(n.children) == 0 {
		return
	}

	all := []*Node{n.children[0]}
	for _, pair := range n.children[1:] {
		all = append(all, pair.children...)
	}
	n.all = all
}

func (n *Node) collapsed() []*Node {
	elems := n.children
	if n.all != nil {
		elems = n.all
	}
	if len(elems) == 0 {
		return []*Node{nil}
	}

	var result []*Node
	for _, e := range elems {
		if !e.Def().CollapseSkip {
			result = append(result, e)
		}
	}
	if len(result) > 0 {
		return result
	}
	return elems
}

func (n *Node) postprocessChildren(init InitFunc) error {
	if n.all == nil {
		var children []*Node
		for _, c := range n.children {
			pp, e := c.Postprocess(n, init)
			if e != nil {
				return e
			}
			children = append(children, pp...)
		}
		n.children = children
		return nil
	}

	var all, children, seps []*Node
	for i, c := range n.all {
		pp, e := c.Postprocess(n, init)
		if e != nil {
			return e
		}
		all = append(all, pp...)
		if i%2 == 0 {
			children = append(children, pp...)
		} else {
			seps = append(seps, pp...)
		}
	}
	n.all, n.children, n.seps = all, children, seps
	return nil
}

// Terminals returns terminal nodes of the subtree in text order, including list separators.
func (n *Node) Terminals() []*Node {
	if n.IsTerminal() {
		return []*Node{n}
	}

	var result []*Node
	elems := n.children
	if n.all != nil {
		elems = n.all
	}
	for _, c := range elems {
		if c != nil {
			result = append(result, c.Terminals()...)
		}
	}
	return result
}

// Tokens returns texts of terminal nodes.
func (n *Node) Tokens() []string {
	ts := n.Terminals()
	result := make([]string, len(ts))
	for i, t := range ts {
		result[i] = t.Text()
	}
	return result
}

type stepFunc func(n *Node, step int) bool

// search yields nodes matching path steps; deep search looks through the whole subtree at each step.
func (n *Node) search(match stepFunc, deep bool, steps, step int, yield func(*Node) bool) bool {
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if match(c, step) {
			if step+1 < steps {
				if !c.search(match, deep, steps, step+1, yield) {
					return false
				}
			} else if !yield(c) {
				return false
			}
		} else if deep {
			if !c.search(match, deep, steps, step, yield) {
				return false
			}
		}
	}
	return true
}

func (n *Node) first(match stepFunc, deep bool, steps int) *Node {
	if steps == 0 {
		return nil
	}

	var result *Node
	n.search(match, deep, steps, 0, func(found *Node) bool {
		result = found
		return false
	})
	return result
}

func (n *Node) collect(match stepFunc, deep bool, steps int) []*Node {
	if steps == 0 {
		return nil
	}

	var result []*Node
	n.search(match, deep, steps, 0, func(found *Node) bool {
		result = append(result, found)
		return true
	})
	return result
}

func idPath(path []grammar.ID) stepFunc {
	return func(n *Node, step int) bool {
		return n.id == path[step]
	}
}

func tagPath(path []string) stepFunc {
	return func(n *Node, step int) bool {
		return n.HasTag(path[step])
	}
}

// Get returns the first direct child matching grammar node path[0],
// then its first direct child matching path[1] and so on, or nil.
func (n *Node) Get(path ...grammar.ID) *Node {
	return n.first(idPath(path), false, len(path))
}

// GetAll returns all nodes reachable through direct children matching path.
func (n *Node) GetAll(path ...grammar.ID) []*Node {
	return n.collect(idPath(path), false, len(path))
}

// Find is like Get, but searches the whole subtree at each path step.
func (n *Node) Find(path ...grammar.ID) *Node {
	return n.first(idPath(path), true, len(path))
}

// FindAll is like GetAll, but searches the whole subtree at each path step.
func (n *Node) FindAll(path ...grammar.ID) []*Node {
	return n.collect(idPath(path), true, len(path))
}

// FindTag is like Find, but matches nodes by grammar node tags.
func (n *Node) FindTag(path ...string) *Node {
	return n.first(tagPath(path), true, len(path))
}

// FindTagAll is like FindAll, but matches nodes by grammar node tags.
func (n *Node) FindTagAll(path ...string) []*Node {
	return n.collect(tagPath(path), true, len(path))
}
