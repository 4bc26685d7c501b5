// Package grammar defines grammar nodes, grammar builder, and reference resolution.
//
// All nodes of a grammar live in a single arena (Grammar) and refer to each other by ID,
// so self-recursive and mutually recursive grammars need no live object cycles.
// Nodes are created by Builder; a built grammar is read-only and may be shared
// by any number of concurrent parsers.
package grammar

import (
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID is an index of a node in grammar arena.
type ID int

// NoNode denotes missing node.
const NoNode ID = -1

// Unbounded is the maximum repetition count of unbounded repetitions.
const Unbounded = math.MaxInt

// Kind selects matching algorithm of a node.
type Kind int

const (
	SeqKind Kind = iota
	LiteralKind
	WordKind
	AnyKind
	EmptyKind
	BOLKind
	EOFKind
	OrKind
	ExceptKind
	RepeatKind
	ListKind
	NotFollowedByKind
	RefKind
)

var kindNames = [...]string{
	SeqKind:           "GRAMMAR",
	LiteralKind:       "LITERAL",
	WordKind:          "WORD",
	AnyKind:           "ANY",
	EmptyKind:         "EMPTY",
	BOLKind:           "BOL",
	EOFKind:           "EOF",
	OrKind:            "OR",
	ExceptKind:        "EXCEPT",
	RepeatKind:        "REPEAT",
	ListKind:          "LIST_OF",
	NotFollowedByKind: "NOT_FOLLOWED_BY",
	RefKind:           "REF",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a grammar node definition.
//
// Children layout depends on Kind:
//   - SeqKind: sequence elements;
//   - OrKind: alternatives;
//   - ExceptKind: primary node and excluded node;
//   - RepeatKind, NotFollowedByKind: single repeated (guarded) node;
//   - ListKind: element and (separator, element) pair node;
//   - other kinds: no children.
type Node struct {
	Kind Kind
	// Name is used in descriptions and by init hooks; anonymous nodes have names like "<OR>".
	Name string
	// Desc is used in error messages.
	Desc     string
	Children []ID
	// Min and Max bound the number of matched child slots.
	Min, Max int
	Greedy   bool
	// Collapse replaces parse tree node with its children during postprocessing.
	Collapse bool
	// CollapseSkip drops parse tree node from collapsed parent's children when other children exist.
	CollapseSkip bool
	Terminal     bool
	// ErrorOverride makes node report itself as the failing node instead of its children.
	ErrorOverride bool
	Whitespace    Whitespace
	Tags          []string

	// Text is the matched string of LiteralKind node.
	Text string
	// Start and Rest are character sets of WordKind node.
	Start, Rest CharSet
	// Ref, Default, and Scope define RefKind node.
	Ref     string
	Default ID
	Scope   Scope

	frozen bool
}

// Len returns the number of child slots to match: number of children for sequences
// and maximum repetition count for repetitions.
func (n *Node) Len() int {
	switch n.Kind {
	case RepeatKind, ListKind:
		return n.Max
	case SeqKind:
		return len(n.Children)
	default:
		return 0
	}
}

// Child returns node ID for child slot i, i must be less than Len().
func (n *Node) Child(i int) ID {
	switch n.Kind {
	case RepeatKind:
		return n.Children[0]
	case ListKind:
		if i == 0 {
			return n.Children[0]
		}
		return n.Children[1]
	default:
		return n.Children[i]
	}
}

// HasTag tells whether node is tagged with tag.
func (n *Node) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsAnonymous tells whether node has a generated name like "<GRAMMAR>".
func (n *Node) IsAnonymous() bool {
	return strings.HasPrefix(n.Name, "<")
}

// Frozen tells whether identity-relevant fields of node are immutable.
func (n *Node) Frozen() bool {
	return n.frozen
}

// Grammar is an arena of grammar nodes plus a symbol table of named nodes.
type Grammar struct {
	nodes []Node
	names map[string]ID
	order []string
}

func newGrammar() *Grammar {
	return &Grammar{names: make(map[string]ID)}
}

// Len returns the number of nodes.
func (g *Grammar) Len() int {
	return len(g.nodes)
}

// Valid tells whether id refers to a node of g.
func (g *Grammar) Valid(id ID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns node definition or nil if id is not valid.
// Returned node must not be modified, use Modify instead.
func (g *Grammar) Node(id ID) *Node {
	if !g.Valid(id) {
		return nil
	}
	return &g.nodes[id]
}

// Lookup returns ID of named node, Grammar serves as the default reference scope.
func (g *Grammar) Lookup(name string) (ID, bool) {
	id, found := g.names[name]
	return id, found
}

// Names returns names of defined nodes in definition order.
func (g *Grammar) Names() []string {
	return append([]string(nil), g.order...)
}

func (g *Grammar) define(name string, id ID) {
	if _, found := g.names[name]; !found {
		g.order = append(g.order, name)
	}
	g.names[name] = id
}

func (g *Grammar) add(n Node) ID {
	g.nodes = append(g.nodes, n)
	return ID(len(g.nodes) - 1)
}

func identity(n *Node) string {
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	sb.WriteByte(0)
	if n.Kind == LiteralKind {
		sb.WriteString(n.Text)
		return sb.String()
	}

	sb.WriteString(n.Name)
	sb.WriteByte(0)
	for _, c := range n.Children {
		sb.WriteString(strconv.Itoa(int(c)))
		sb.WriteByte(',')
	}
	sb.WriteByte(0)
	sb.WriteString(strconv.Itoa(n.Min))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(n.Max))
	sb.WriteByte(0)
	sb.WriteString(strconv.FormatBool(n.Collapse))
	sb.WriteString(strconv.FormatBool(n.Greedy))
	sb.WriteByte(0)
	sb.WriteString(n.Whitespace.key())
	switch n.Kind {
	case WordKind:
		sb.WriteByte(0)
		sb.WriteString(n.Start.String())
		sb.WriteByte(0)
		sb.WriteString(n.Rest.String())
	case RefKind:
		sb.WriteByte(0)
		sb.WriteString(n.Ref)
	}
	return sb.String()
}

// Hash returns structural identity hash of a node.
// Identity-relevant fields of the node become immutable.
func (g *Grammar) Hash(id ID) uint64 {
	n := g.Node(id)
	if n == nil {
		return 0
	}

	n.frozen = true
	return xxhash.Sum64String(identity(n))
}

// Equal tells whether two nodes are structurally equal.
func (g *Grammar) Equal(a, b ID) bool {
	na, nb := g.Node(a), g.Node(b)
	if na == nil || nb == nil {
		return na == nb
	}
	return identity(na) == identity(nb)
}

// Modify applies fn to a copy of node definition and stores the result.
// Changing identity-relevant fields of a frozen node is an error, node remains unchanged.
func (g *Grammar) Modify(id ID, fn func(n *Node)) error {
	n := g.Node(id)
	if n == nil {
		return unknownNodeError(id)
	}

	c := *n
	c.Children = append([]ID(nil), n.Children...)
	c.Tags = append([]string(nil), n.Tags...)
	fn(&c)
	c.frozen = n.frozen
	if n.frozen && identity(&c) != identity(n) {
		return frozenNodeError(n.Name)
	}

	*n = c
	return nil
}
