package tree

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/ava12/grammatic/grammar"
)

// Ancestor returns parent node for level 0, grandparent for level 1, and so on, or nil.
func Ancestor(n *Node, level int) *Node {
	for n != nil && level >= 0 {
		n = n.parent
		level--
	}
	return n
}

// NodeLevel returns the number of ancestors of n.
func NodeLevel(n *Node) (l int) {
	if n == nil {
		return
	}

	p := n.parent
	for p != nil {
		l++
		p = p.parent
	}
	return
}

// SiblingIndex returns index of n among its parent's children or -1.
func SiblingIndex(n *Node) int {
	if n == nil || n.parent == nil {
		return -1
	}

	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// NthChild returns i-th child of n, negative i counts from the last child (-1).
func NthChild(n *Node, i int) *Node {
	if n == nil {
		return nil
	}

	if i < 0 {
		i += len(n.children)
	}
	return n.Child(i)
}

// NthSibling returns sibling of n at offset i or nil.
func NthSibling(n *Node, i int) *Node {
	index := SiblingIndex(n)
	if index < 0 {
		return nil
	}
	return n.parent.Child(index + i)
}

const AllLevels = -1

// NumOfChildren returns the number of non-nil descendants of parent up to levels deep.
func NumOfChildren(parent *Node, levels int) int {
	if parent == nil {
		return 0
	}

	i := 0
	for _, c := range parent.children {
		if c == nil {
			continue
		}
		i++
		if levels != 0 {
			i += NumOfChildren(c, levels-1)
		}
	}
	return i
}

// FirstTerminal returns the leftmost terminal node of the subtree or nil.
func FirstTerminal(n *Node) *Node {
	if n == nil {
		return nil
	}
	ts := n.Terminals()
	if len(ts) == 0 {
		return nil
	}
	return ts[0]
}

// LastTerminal returns the rightmost terminal node of the subtree or nil.
func LastTerminal(n *Node) *Node {
	if n == nil {
		return nil
	}
	ts := n.Terminals()
	if len(ts) == 0 {
		return nil
	}
	return ts[len(ts)-1]
}

// NodeVisitor is called for each visited node and tells whether to visit its children and next siblings.
type NodeVisitor func(n *Node) (walkChildren, walkSiblings bool)

type WalkMode int

const (
	WalkLtr WalkMode = 0
	WalkRtl WalkMode = 1
)

// Walk visits n and its descendants depth-first, skipping nil children.
func Walk(n *Node, mode WalkMode, visitor NodeVisitor) {
	if n != nil {
		visitNode(n, visitor, (mode&WalkRtl) != 0)
	}
}

func visitNode(n *Node, v NodeVisitor, rtl bool) (visitSiblings bool) {
	vc, vs := v(n)
	if !vc {
		return vs
	}

	cs := n.children
	for i := range cs {
		c := cs[i]
		if rtl {
			c = cs[len(cs)-1-i]
		}
		if c != nil && !visitNode(c, v, rtl) {
			break
		}
	}
	return vs
}

type NodeFilter func(n *Node) bool
type NodeExtractor func(n *Node) []*Node

type NodeSelector func(n *Node) []*Node

// Selector applies a chain of node selectors to input nodes,
// the result contains no duplicates and keeps the order nodes were found.
type Selector struct {
	selectors []NodeSelector
}

func NewSelector() *Selector {
	return &Selector{}
}

func (s *Selector) Apply(input ...*Node) []*Node {
	index := linkedhashset.New()
	hasTransformers := (len(s.selectors) > 0)

	for i, n := range input {
		if n == nil {
			continue
		}

		var ns []*Node
		if hasTransformers {
			ns = selectNodes(input[i:i+1], s.selectors)
		} else {
			ns = input[i : i+1]
		}

		for _, tn := range ns {
			if tn != nil {
				index.Add(tn)
			}
		}
	}

	res := make([]*Node, 0, index.Size())
	for _, v := range index.Values() {
		res = append(res, v.(*Node))
	}
	return res
}

func selectNodes(ns []*Node, nss []NodeSelector) []*Node {
	res := make([]*Node, 0)
	s := nss[0]
	nss = nss[1:]
	goDeeper := (len(nss) > 0)
	for _, n := range ns {
		if goDeeper {
			res = append(res, selectNodes(s(n), nss)...)
		} else {
			res = append(res, s(n)...)
		}
	}
	return res
}

func (s *Selector) Use(ns NodeSelector) *Selector {
	if ns != nil {
		s.selectors = append(s.selectors, ns)
	}
	return s
}

func (s *Selector) Filter(nf NodeFilter) *Selector {
	return s.Use(func(n *Node) []*Node {
		if nf(n) {
			return []*Node{n}
		} else {
			return nil
		}
	})
}

func (s *Selector) Extract(ne NodeExtractor) *Selector {
	return s.Use(func(n *Node) []*Node {
		return ne(n)
	})
}

// Search selects descendants of each node (the node itself included) matching nf;
// deepSearch enables searching inside matched nodes.
func (s *Selector) Search(nf NodeFilter, deepSearch bool) *Selector {
	return s.Use(func(n *Node) []*Node {
		res := make([]*Node, 0)
		visitNode(n, func(nn *Node) (vc, vs bool) {
			if nf(nn) {
				res = append(res, nn)
				return deepSearch, true
			} else {
				return true, true
			}
		}, false)
		return res
	})
}

func IsNot(f NodeFilter) NodeFilter {
	return func(n *Node) bool {
		return !f(n)
	}
}

func IsAny(fs ...NodeFilter) NodeFilter {
	return func(n *Node) bool {
		for _, f := range fs {
			if f(n) {
				return true
			}
		}
		return false
	}
}

func IsAll(fs ...NodeFilter) NodeFilter {
	return func(n *Node) bool {
		for _, f := range fs {
			if !f(n) {
				return false
			}
		}
		return true
	}
}

// IsA matches nodes by grammar node names.
func IsA(names ...string) NodeFilter {
	return func(n *Node) bool {
		tn := n.Name()
		for _, name := range names {
			if tn == name {
				return true
			}
		}

		return false
	}
}

// IsOf matches nodes by grammar node IDs.
func IsOf(ids ...grammar.ID) NodeFilter {
	return func(n *Node) bool {
		for _, id := range ids {
			if n.id == id {
				return true
			}
		}
		return false
	}
}

// HasTag matches nodes tagged with any of tags.
func HasTag(tags ...string) NodeFilter {
	return func(n *Node) bool {
		for _, tag := range tags {
			if n.HasTag(tag) {
				return true
			}
		}
		return false
	}
}

// IsALiteral matches terminal nodes by text.
func IsALiteral(texts ...string) NodeFilter {
	return func(n *Node) bool {
		if !n.IsTerminal() {
			return false
		}

		t := n.Text()
		for _, text := range texts {
			if text == t {
				return true
			}
		}

		return false
	}
}

func Any(nss ...NodeExtractor) NodeExtractor {
	return func(n *Node) (res []*Node) {
		for _, ns := range nss {
			res = ns(n)
			if len(res) > 0 {
				break
			}
		}
		return
	}
}

func All(nss ...NodeExtractor) NodeExtractor {
	return func(n *Node) (res []*Node) {
		for _, ns := range nss {
			res = append(res, ns(n)...)
		}
		return
	}
}

func Ancestors(levels ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range levels {
			nn := Ancestor(n, i)
			if nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}

func NthChildren(indexes ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range indexes {
			nn := NthChild(n, i)
			if nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}

func NthSiblings(indexes ...int) NodeExtractor {
	return func(n *Node) []*Node {
		res := make([]*Node, 0)
		for _, i := range indexes {
			nn := NthSibling(n, i)
			if nn != nil {
				res = append(res, nn)
			}
		}
		return res
	}
}
