// Package describe renders grammar as a list of EBNF-like rules.
//
// Every named sequence reachable from the top node becomes a rule, other nodes
// are rendered inline. Nodes that have no EBNF form (words, lookaheads,
// unresolved references) are rendered as special sequences "? ... ?".
package describe

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/mattn/go-runewidth"

	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/internal/ints"
	"github.com/ava12/grammatic/internal/queue"
)

// SpecialStyle selects the text of special sequences.
type SpecialStyle int

const (
	// DescStyle uses node description (default).
	DescStyle SpecialStyle = iota
	// NameStyle uses node name.
	NameStyle
	// DetailsStyle uses node details as returned by grammar.Grammar.Details.
	DetailsStyle
)

var styleNames = [...]string{
	DescStyle:    "desc",
	NameStyle:    "name",
	DetailsStyle: "details",
}

func (s SpecialStyle) String() string {
	if s >= 0 && int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "SpecialStyle(" + strconv.Itoa(int(s)) + ")"
}

// ParseSpecialStyle converts style name to SpecialStyle.
func ParseSpecialStyle(name string) (SpecialStyle, error) {
	for i, n := range styleNames {
		if n == name {
			return SpecialStyle(i), nil
		}
	}
	return DescStyle, fmt.Errorf("unknown special sequence style %q", name)
}

// AutoIndent makes wrapped lines indented up to the first line right-hand side.
const AutoIndent = -1

// RootName is the name of the rule describing anonymous top node.
const RootName = "grammar"

type settings struct {
	wrap, indent  int
	align, expand bool
	style         SpecialStyle
}

// Option configures description.
type Option func(s *settings)

// Wrap sets maximum line width, 0 disables wrapping. Default is 80.
func Wrap(width int) Option {
	return func(s *settings) {
		s.wrap = width
	}
}

// Align makes all right-hand sides start at the same column. Enabled by default.
func Align(align bool) Option {
	return func(s *settings) {
		s.align = align
	}
}

// Indent sets indentation of wrapped lines. Default is AutoIndent.
func Indent(indent int) Option {
	return func(s *settings) {
		s.indent = indent
	}
}

// ExpandTerminals makes named terminal sequences described by rules too.
func ExpandTerminals(expand bool) Option {
	return func(s *settings) {
		s.expand = expand
	}
}

// Special sets special sequence style.
func Special(style SpecialStyle) Option {
	return func(s *settings) {
		s.style = style
	}
}

// Rule is a single EBNF rule.
type Rule struct {
	Name, Body string
}

type describer struct {
	g        *grammar.Grammar
	s        settings
	visiting *ints.Set
}

func newDescriber(g *grammar.Grammar, opts []Option) *describer {
	d := &describer{
		g: g,
		s: settings{
			wrap:   80,
			indent: AutoIndent,
			align:  true,
		},
		visiting: ints.NewSet(),
	}
	for _, opt := range opts {
		opt(&d.s)
	}
	return d
}

// Rules returns rules describing node root and every named sequence it depends on,
// in breadth-first order.
func Rules(g *grammar.Grammar, root grammar.ID, opts ...Option) []Rule {
	return newDescriber(g, opts).rules(root)
}

// Lines returns formatted rules.
func Lines(g *grammar.Grammar, root grammar.ID, opts ...Option) []string {
	d := newDescriber(g, opts)
	return d.format(d.rules(root))
}

// Fprint writes formatted rules to w, one rule per line.
func Fprint(w io.Writer, g *grammar.Grammar, root grammar.ID, opts ...Option) error {
	for _, line := range Lines(g, root, opts...) {
		if _, e := io.WriteString(w, line+"\n"); e != nil {
			return e
		}
	}
	return nil
}

func (d *describer) rules(root grammar.ID) []Rule {
	if !d.g.Valid(root) {
		return nil
	}

	var result []Rule
	todo := queue.New(root)
	seen := hashset.New(root)
	enqueue := func(ids []grammar.ID) {
		for _, id := range ids {
			if !seen.Contains(id) {
				seen.Add(id)
				todo.Append(id)
			}
		}
	}

	for !todo.IsEmpty() {
		id, _ := todo.First()
		body, nts, ok := d.rhs(id)
		if ok {
			name, _ := d.lhs(id)
			result = append(result, Rule{name, body})
			enqueue(nts)
		} else if len(result) == 0 {
			body, nts = d.lhs(id)
			result = append(result, Rule{RootName, body})
			enqueue(nts)
		}
	}
	return result
}

func (d *describer) hasRule(n *grammar.Node) bool {
	return n.Kind == grammar.SeqKind && !n.IsAnonymous() && (d.s.expand || !n.Terminal)
}

func (d *describer) rhs(id grammar.ID) (string, []grammar.ID, bool) {
	n := d.g.Node(id)
	if !d.hasRule(n) {
		return "", nil, false
	}

	body, nts := d.list(n.Children, ", ")
	return body, nts, true
}

func (d *describer) list(ids []grammar.ID, sep string) (string, []grammar.ID) {
	names := make([]string, len(ids))
	var nts []grammar.ID
	for i, id := range ids {
		var childNts []grammar.ID
		names[i], childNts = d.lhs(id)
		nts = append(nts, childNts...)
	}
	return strings.Join(names, sep), nts
}

// lhs returns text used when node occurs in a rule body and the list of nodes having own rules.
func (d *describer) lhs(id grammar.ID) (string, []grammar.ID) {
	n := d.g.Node(id)
	if n == nil {
		return "#" + strconv.Itoa(int(id)), nil
	}
	if d.visiting.Contains(int(id)) {
		return d.special(id, ""), nil
	}

	d.visiting.Add(int(id))
	defer d.visiting.Remove(int(id))

	switch n.Kind {
	case grammar.SeqKind:
		if n.IsAnonymous() {
			return d.list(n.Children, ", ")
		}
		if d.hasRule(n) {
			return n.Name, []grammar.ID{id}
		}
		return n.Name, nil

	case grammar.LiteralKind:
		return grammar.Quote(n.Text), nil

	case grammar.EmptyKind:
		return "(*empty*)", nil

	case grammar.OrKind:
		text, nts := d.list(n.Children, " | ")
		return "( " + text + " )", nts

	case grammar.ExceptKind:
		text, nts := d.list(n.Children, " - ")
		return "( " + text + " )", nts

	case grammar.NotFollowedByKind:
		text, nts := d.lhs(n.Children[0])
		return d.special(id, "not followed by "+text), nts

	case grammar.RepeatKind:
		text, nts := d.lhs(n.Children[0])
		return repetition(text, n.Min, n.Max), nts

	case grammar.ListKind:
		elem, nts := d.lhs(n.Children[0])
		pair, pairNts := d.lhs(n.Children[1])
		nts = append(nts, pairNts...)
		restMin, restMax := n.Min-1, n.Max
		if restMin < 0 {
			restMin = 0
		}
		if restMax != grammar.Unbounded {
			restMax--
		}
		text := elem
		if rest := repetition(pair, restMin, restMax); rest != "" {
			text += ", " + rest
		}
		if n.Min == 0 {
			text = "[" + text + "]"
		}
		return text, nts

	case grammar.WordKind:
		return d.special(id, ""), nil

	case grammar.RefKind:
		target, e := d.g.Resolve(id, nil)
		if e != nil {
			return d.special(id, ""), nil
		}
		return d.lhs(target)
	}

	return n.Name, nil
}

func repetition(text string, min, max int) string {
	if min == 0 && max == 1 {
		return "[" + text + "]"
	}

	group := text
	if strings.Contains(text, ",") {
		group = "( " + text + " )"
	}
	var parts []string
	switch min {
	case 0:
	case 1:
		parts = append(parts, group)
	default:
		parts = append(parts, strconv.Itoa(min)+" * "+group)
	}

	extra := max - min
	switch {
	case max == grammar.Unbounded:
		parts = append(parts, "{"+text+"}")
	case extra == 1:
		parts = append(parts, "["+text+"]")
	case extra > 1:
		parts = append(parts, strconv.Itoa(extra)+" * ["+text+"]")
	}
	return strings.Join(parts, ", ")
}

func (d *describer) special(id grammar.ID, desc string) string {
	n := d.g.Node(id)
	var text string
	switch d.s.style {
	case DetailsStyle:
		text = d.g.Details(id)
	case NameStyle:
		text = n.Name
	default:
		text = desc
		if text == "" {
			text = n.Desc
		}
		if text == "" {
			text = n.Name
		}
	}
	return "? " + text + " ?"
}

func (d *describer) format(rules []Rule) []string {
	width := d.s.wrap
	alignWidth := 0
	if d.s.align {
		maxAlign := width*3/4 - 2
		for _, r := range rules {
			w := runewidth.StringWidth(r.Name)
			if (width <= 0 || w <= maxAlign) && w > alignWidth {
				alignWidth = w
			}
		}
	}

	indent := d.s.indent
	if indent < 0 {
		if alignWidth > 0 {
			indent = alignWidth + 3
		} else {
			indent = 8
		}
	}

	var result []string
	for _, r := range rules {
		name := r.Name
		if pad := alignWidth - runewidth.StringWidth(name); pad > 0 {
			name += strings.Repeat(" ", pad)
		}
		result = append(result, wrap(name+" = "+r.Body+";", width, indent)...)
	}
	return result
}

// wrap breaks text at spaces so that lines fit width where possible.
// Words are never broken, space runs at line breaks are dropped.
func wrap(text string, width, indent int) []string {
	if width <= 0 {
		return []string{text}
	}

	var result []string
	pad := strings.Repeat(" ", indent)
	line := ""
	lineWidth := 0
	hasWords := false
	space := ""
	for _, chunk := range chunks(text) {
		if chunk[0] == ' ' {
			if hasWords {
				space = chunk
			}
			continue
		}

		w := runewidth.StringWidth(chunk)
		if hasWords && lineWidth+len(space)+w > width {
			result = append(result, line)
			line, lineWidth, space = pad, indent, ""
		}
		line += space + chunk
		lineWidth += len(space) + w
		space = ""
		hasWords = true
	}
	return append(result, line)
}

// chunks splits text to alternating runs of spaces and non-spaces.
func chunks(text string) []string {
	var result []string
	start := 0
	for i := 1; i <= len(text); i++ {
		if i == len(text) || (text[i] == ' ') != (text[start] == ' ') {
			result = append(result, text[start:i])
			start = i
		}
	}
	return result
}
