package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ava12/grammatic/internal/ints"
)

// Quote returns text quoted with single quotes (or double quotes if text contains
// single quotes only) with control characters escaped.
func Quote(text string) string {
	q := byte('\'')
	if strings.IndexByte(text, '\'') >= 0 && strings.IndexByte(text, '"') < 0 {
		q = '"'
	}

	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range text {
		switch {
		case r == rune(q) || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case !strconv.IsPrint(r):
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

// Details returns description of node contents in constructor-like form.
// Named nodes are not expanded except the top one.
func (g *Grammar) Details(id ID) string {
	return g.details(id, -1, ints.NewSet())
}

// DetailsDepth is like Details, but expands nested sequences at most depth levels,
// negative depth means no limit.
func (g *Grammar) DetailsDepth(id ID, depth int) string {
	return g.details(id, depth, ints.NewSet())
}

func (g *Grammar) details(id ID, depth int, visited *ints.Set) string {
	n := g.Node(id)
	if n == nil {
		return fmt.Sprintf("#%d", id)
	}
	if n.Terminal || n.Kind == RefKind {
		return n.Name
	}
	if visited.Contains(int(id)) {
		return n.Name
	}

	visited.Add(int(id))
	defer visited.Remove(int(id))

	list := func(ids []ID, d int) []string {
		result := make([]string, len(ids))
		for i, c := range ids {
			result[i] = g.details(c, d, visited)
		}
		return result
	}

	switch n.Kind {
	case SeqKind:
		if depth == 0 {
			return n.Name
		}
		if len(n.Children) == 1 {
			return g.details(n.Children[0], depth-1, visited)
		}
		return "(" + strings.Join(list(n.Children, depth-1), ", ") + ")"

	case OrKind:
		return "(" + strings.Join(list(n.Children, depth), " | ") + ")"

	case ExceptKind:
		return "EXCEPT(" + strings.Join(list(n.Children, depth), ", ") + ")"

	case NotFollowedByKind:
		return "NOT_FOLLOWED_BY(" + g.details(n.Children[0], depth, visited) + ")"

	case RepeatKind:
		child := g.details(n.Children[0], depth, visited)
		if n.Name == "<OPTIONAL>" {
			return "OPTIONAL(" + child + ")"
		}
		return "REPEAT(" + child + boundsDetails(n) + ")"

	case ListKind:
		sep := g.details(g.nodes[n.Children[1]].Children[0], depth, visited)
		return "LIST_OF(" + g.details(n.Children[0], depth, visited) + ", sep=" + sep + boundsDetails(n) + ")"
	}

	return n.Name
}

func boundsDetails(n *Node) string {
	if n.Min == n.Max {
		return ", count=" + strconv.Itoa(n.Min)
	}
	result := ""
	if n.Min != 1 {
		result += ", min=" + strconv.Itoa(n.Min)
	}
	if n.Max != Unbounded {
		result += ", max=" + strconv.Itoa(n.Max)
	}
	return result
}
