package grammar

import (
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("grammatic.grammar")

// BuilderOption configures Builder.
type BuilderOption func(*Builder)

// WithDefaultWhitespace sets whitespace policy of composite nodes that do not set their own policy.
// Initial policy is StdWhitespace.
func WithDefaultWhitespace(ws Whitespace) BuilderOption {
	return func(b *Builder) {
		b.ws = ws
	}
}

// Builder creates grammar nodes.
//
// Methods creating composite nodes accept items of the following types:
//   - ID: existing node;
//   - string: literal;
//   - nil: EMPTY node;
//   - []any or []ID: nested items, flattened (Or and Except make sequences of them);
//   - Option: node setting override.
//
// Any other item is a definition error. The first error is kept and reported
// by Err and Build, methods return NoNode after an error.
type Builder struct {
	g        *Grammar
	ws       Whitespace
	err      error
	literals map[string]ID
	specials map[string]ID
}

// NewBuilder creates a builder for a new grammar.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		g:        newGrammar(),
		ws:       StdWhitespace,
		literals: make(map[string]ID),
		specials: make(map[string]ID),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Err returns the first definition error or nil.
func (b *Builder) Err() error {
	return b.err
}

// Grammar returns grammar being built.
func (b *Builder) Grammar() *Grammar {
	return b.g
}

// Build returns built grammar and the first definition error.
func (b *Builder) Build() (*Grammar, error) {
	return b.g, b.err
}

func (b *Builder) fail(e error) ID {
	if b.err == nil {
		b.err = e
	}
	log.Error(e.Error())
	return NoNode
}

func (b *Builder) settings(opts []Option) (*settings, bool) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.err != nil {
		b.fail(s.err)
		return s, false
	}
	return s, b.err == nil
}

// items regularizes items, nested []any are flattened into result if flatten is set
// or converted to sequence nodes otherwise.
func (b *Builder) items(items []any, flatten bool) ([]ID, *settings, bool) {
	var ids []ID
	s := &settings{}
	var walk func(items []any, top bool) bool
	walk = func(items []any, top bool) bool {
		for _, item := range items {
			var id ID
			switch v := item.(type) {
			case Option:
				v(s)
				continue
			case ID:
				if !b.g.Valid(v) {
					b.fail(unknownNodeError(v))
					return false
				}
				id = v
			case string:
				id = b.Literal(v)
			case nil:
				id = b.Empty()
			case []ID:
				for _, c := range v {
					if !b.g.Valid(c) {
						b.fail(unknownNodeError(c))
						return false
					}
				}
				if flatten || !top {
					ids = append(ids, v...)
					continue
				}
				id = b.Seq(idsToItems(v)...)
			case []any:
				if flatten || !top {
					if !walk(v, false) {
						return false
					}
					continue
				}
				id = b.Seq(v...)
			default:
				b.fail(invalidItemError(item))
				return false
			}
			if id == NoNode {
				return false
			}
			ids = append(ids, id)
		}
		return true
	}

	if !walk(items, true) {
		return nil, s, false
	}
	if s.err != nil {
		b.fail(s.err)
		return nil, s, false
	}
	return ids, s, b.err == nil
}

func idsToItems(ids []ID) []any {
	result := make([]any, len(ids))
	for i, id := range ids {
		result[i] = id
	}
	return result
}

func (b *Builder) add(n Node, s *settings) ID {
	if s != nil {
		s.apply(&n)
	} else if n.Desc == "" {
		n.Desc = n.Name
	}
	if n.Min < 0 || n.Min > n.Max {
		return b.fail(boundsError(n.Name, n.Min, n.Max))
	}
	return b.g.add(n)
}

func (b *Builder) special(name string, create func() ID) ID {
	if id, found := b.specials[name]; found {
		return id
	}
	id := create()
	if id != NoNode {
		b.specials[name] = id
	}
	return id
}

func (b *Builder) group(items []any) ID {
	if len(items) == 0 {
		return b.Empty()
	}
	return b.Seq(items...)
}

func (b *Builder) descs(ids []ID, sep string) string {
	descs := make([]string, len(ids))
	for i, id := range ids {
		descs[i] = b.g.nodes[id].Desc
	}
	return strings.Join(descs, sep)
}

// Seq creates anonymous sequence node.
// Single item without options is returned as is.
func (b *Builder) Seq(items ...any) ID {
	ids, s, ok := b.items(items, true)
	if !ok {
		return NoNode
	}
	if len(ids) == 1 && s.empty() {
		return ids[0]
	}

	return b.seq("<GRAMMAR>", ids, s)
}

func (b *Builder) seq(name string, ids []ID, s *settings) ID {
	n := Node{
		Kind:       SeqKind,
		Name:       name,
		Children:   ids,
		Greedy:     true,
		Whitespace: b.ws,
	}
	s.apply(&n)
	n.Min = len(ids)
	n.Max = len(ids)
	return b.g.add(n)
}

// Define creates named sequence node and registers it in grammar symbol table.
func (b *Builder) Define(name string, items ...any) ID {
	ids, s, ok := b.items(items, true)
	if !ok {
		return NoNode
	}

	id := b.seq(name, ids, s)
	b.g.define(name, id)
	return id
}

// Alias registers existing node in grammar symbol table.
func (b *Builder) Alias(name string, id ID) ID {
	if !b.g.Valid(id) {
		return b.fail(unknownNodeError(id))
	}

	b.g.define(name, id)
	return id
}

// Literal creates node matching text.
func (b *Builder) Literal(text string, opts ...Option) ID {
	s, ok := b.settings(opts)
	if !ok {
		return NoNode
	}
	if s.empty() {
		if id, found := b.literals[text]; found {
			return id
		}
	}

	id := b.add(Node{
		Kind:         LiteralKind,
		Name:         "L(" + Quote(text) + ")",
		Desc:         Quote(text),
		Terminal:     true,
		CollapseSkip: true,
		Text:         text,
		Max:          1,
		Greedy:       true,
	}, s)
	if s.empty() && id != NoNode {
		b.literals[text] = id
	}
	return id
}

// Word creates node matching a run of characters: the first one from start set,
// the rest from rest set. Empty rest means the same set as start.
// Default repetition bounds are 1 and Unbounded.
func (b *Builder) Word(start, rest string, opts ...Option) ID {
	s, ok := b.settings(opts)
	if !ok {
		return NoNode
	}

	name := "WORD(" + Quote(start) + ")"
	if rest == "" {
		rest = start
	} else {
		name = "WORD(" + Quote(start) + ", " + Quote(rest) + ")"
	}
	startSet, e := ParseCharSet(start)
	if e != nil {
		return b.fail(e)
	}
	restSet, e := ParseCharSet(rest)
	if e != nil {
		return b.fail(e)
	}

	return b.word(name, startSet, restSet, s)
}

func (b *Builder) word(name string, start, rest CharSet, s *settings) ID {
	return b.add(Node{
		Kind:     WordKind,
		Name:     name,
		Min:      1,
		Max:      Unbounded,
		Greedy:   true,
		Terminal: true,
		Start:    start,
		Rest:     rest,
	}, s)
}

// AnyExcept creates word node matching characters not listed in chars.
func (b *Builder) AnyExcept(chars string, opts ...Option) ID {
	return b.Word("^"+chars, "", append([]Option{Name("ANY_EXCEPT(" + Quote(chars) + ")")}, opts...)...)
}

// Any returns node matching any single character.
func (b *Builder) Any() ID {
	return b.special("ANY", func() ID {
		return b.add(Node{Kind: AnyKind, Name: "ANY", Desc: "any character", Terminal: true, Min: 1, Max: 1}, nil)
	})
}

// Empty returns node matching empty string.
func (b *Builder) Empty() ID {
	return b.special("EMPTY", func() ID {
		return b.add(Node{
			Kind:         EmptyKind,
			Name:         "EMPTY",
			Desc:         "(nothing)",
			Terminal:     true,
			Collapse:     true,
			CollapseSkip: true,
			Max:          1,
		}, nil)
	})
}

// BOL returns node matching empty string at the beginning of a line.
func (b *Builder) BOL() ID {
	return b.special("BOL", func() ID {
		return b.add(Node{Kind: BOLKind, Name: "BOL", Desc: "beginning of line", Terminal: true, Max: 1}, nil)
	})
}

// EOF returns node matching empty string at the end of input.
func (b *Builder) EOF() ID {
	return b.special("EOF", func() ID {
		return b.add(Node{Kind: EOFKind, Name: "EOF", Desc: "end of file", Terminal: true, Max: 1}, nil)
	})
}

// EOL returns node matching line terminator: "\n\r", "\r\n", "\r", or "\n".
func (b *Builder) EOL() ID {
	return b.special("EOL", func() ID {
		or := b.Or(b.Literal("\n\r"), b.Literal("\r\n"), b.Literal("\r"), b.Literal("\n"))
		if or == NoNode {
			return NoNode
		}
		return b.add(Node{
			Kind:         SeqKind,
			Name:         "EOL",
			Desc:         "end of line",
			Children:     []ID{or},
			Min:          1,
			Max:          1,
			Greedy:       true,
			Terminal:     true,
			CollapseSkip: true,
		}, nil)
	})
}

// Space returns node matching a run of whitespace characters.
func (b *Builder) Space() ID {
	return b.special("SPACE", func() ID {
		return b.word("SPACE", SpaceSet, SpaceSet, &settings{desc: ptr("whitespace")})
	})
}

// RestOfLine returns node matching (possibly empty) text up to line terminator.
func (b *Builder) RestOfLine() ID {
	return b.special("REST_OF_LINE", func() ID {
		return b.AnyExcept("\r\n", Min(0), Name("REST_OF_LINE"), Desc("rest of the line"))
	})
}

func ptr[T any](v T) *T {
	return &v
}

// Or creates alternation node. Nested alternations are merged,
// []any items become sequence alternatives.
func (b *Builder) Or(items ...any) ID {
	ids, s, ok := b.items(items, false)
	if !ok {
		return NoNode
	}

	var alts []ID
	for _, id := range ids {
		n := &b.g.nodes[id]
		if n.Kind == OrKind {
			alts = append(alts, n.Children...)
		} else {
			alts = append(alts, id)
		}
	}
	return b.add(Node{
		Kind:     OrKind,
		Name:     "<OR>",
		Desc:     b.descs(alts, " or "),
		Children: alts,
		Min:      1,
		Max:      1,
		Greedy:   true,
	}, s)
}

// Except creates node matching primary item unless excluded item matches the same text.
func (b *Builder) Except(primary, excluded any, opts ...Option) ID {
	s, ok := b.settings(opts)
	if !ok {
		return NoNode
	}
	p := b.Seq(primary)
	if p == NoNode {
		return NoNode
	}
	x := b.Seq(excluded)
	if x == NoNode {
		return NoNode
	}

	return b.add(Node{
		Kind:     ExceptKind,
		Name:     "<EXCEPT>",
		Desc:     b.descs([]ID{p}, "") + " except " + b.descs([]ID{x}, ""),
		Children: []ID{p, x},
		Min:      1,
		Max:      1,
		Greedy:   true,
	}, s)
}

// Repeat creates node matching items repeatedly.
// Default repetition bounds are 1 and Unbounded, default order is greedy.
func (b *Builder) Repeat(items ...any) ID {
	ids, s, ok := b.items(items, true)
	if !ok {
		return NoNode
	}

	return b.repeat(ids, s)
}

func (b *Builder) repeat(ids []ID, s *settings) ID {
	child := b.group(idsToItems(ids))
	if child == NoNode {
		return NoNode
	}
	return b.add(Node{
		Kind:       RepeatKind,
		Name:       "<REPEAT>",
		Children:   []ID{child},
		Min:        1,
		Max:        Unbounded,
		Greedy:     true,
		Whitespace: b.ws,
	}, s)
}

// ListOf creates node matching items repeatedly with separator between repetitions.
// Default separator is ",".
func (b *Builder) ListOf(items ...any) ID {
	ids, s, ok := b.items(items, true)
	if !ok {
		return NoNode
	}

	elem := b.group(idsToItems(ids))
	if elem == NoNode {
		return NoNode
	}
	var sep ID
	if s.hasSep {
		sep = b.Seq(s.sep)
	} else {
		sep = b.Literal(",")
	}
	if sep == NoNode {
		return NoNode
	}

	ws := b.ws
	if s.ws != nil {
		ws = *s.ws
	}
	pair := b.g.add(Node{
		Kind:       SeqKind,
		Name:       "<GRAMMAR>",
		Desc:       "<GRAMMAR>",
		Children:   []ID{sep, elem},
		Min:        2,
		Max:        2,
		Greedy:     true,
		Whitespace: ws,
	})
	return b.add(Node{
		Kind:       ListKind,
		Name:       "<LIST>",
		Children:   []ID{elem, pair},
		Min:        1,
		Max:        Unbounded,
		Greedy:     true,
		Whitespace: b.ws,
	}, s)
}

// Optional creates node matching items or empty string.
// Resulting parse tree node is collapsed, missing match is represented by nil child.
func (b *Builder) Optional(items ...any) ID {
	ids, s, ok := b.items(items, true)
	if !ok {
		return NoNode
	}

	o := &settings{
		name:     ptr("<OPTIONAL>"),
		collapse: ptr(true),
		ws:       &NoWhitespace,
	}
	mergeSettings(o, s)
	o.min = ptr(0)
	o.max = ptr(1)
	return b.repeat(ids, o)
}

// ZeroOrMore creates node matching items any number of times.
func (b *Builder) ZeroOrMore(items ...any) ID {
	return b.Repeat(append(append([]any(nil), items...), Min(0), Max(Unbounded))...)
}

// OneOrMore creates node matching items at least once.
func (b *Builder) OneOrMore(items ...any) ID {
	return b.Repeat(append(append([]any(nil), items...), Min(1), Max(Unbounded))...)
}

// NotFollowedBy creates zero-length node matching only if items do not match at the same position.
func (b *Builder) NotFollowedBy(items ...any) ID {
	ids, s, ok := b.items(items, true)
	if !ok {
		return NoNode
	}

	child := b.group(idsToItems(ids))
	if child == NoNode {
		return NoNode
	}
	return b.add(Node{
		Kind:     NotFollowedByKind,
		Name:     "<NOT_FOLLOWED_BY>",
		Desc:     "anything except " + b.g.nodes[child].Desc,
		Children: []ID{child},
		Min:      1,
		Max:      1,
		Greedy:   true,
		Collapse: true,
	}, s)
}

// Ref creates reference to named node. Reference is resolved at parse time
// or by Grammar.ResolveRefs. Default and InScope options are applicable.
func (b *Builder) Ref(name string, opts ...Option) ID {
	s, ok := b.settings(opts)
	if !ok {
		return NoNode
	}

	def := NoNode
	if s.hasDefault {
		def = b.Seq(s.def)
		if def == NoNode {
			return NoNode
		}
	}
	var scope Scope = b.g
	if s.hasScope {
		scope = s.scope
	}
	return b.add(Node{
		Kind:    RefKind,
		Name:    "REF(" + Quote(name) + ")",
		Ref:     name,
		Default: def,
		Scope:   scope,
		Min:     1,
		Max:     1,
		Greedy:  true,
	}, s)
}

func mergeSettings(dst, src *settings) {
	if src.name != nil {
		dst.name = src.name
	}
	if src.desc != nil {
		dst.desc = src.desc
	}
	if src.min != nil {
		dst.min = src.min
	}
	if src.max != nil {
		dst.max = src.max
	}
	if src.greedy != nil {
		dst.greedy = src.greedy
	}
	if src.collapse != nil {
		dst.collapse = src.collapse
	}
	if src.collapseSkip != nil {
		dst.collapseSkip = src.collapseSkip
	}
	if src.terminal != nil {
		dst.terminal = src.terminal
	}
	if src.errorOverride != nil {
		dst.errorOverride = src.errorOverride
	}
	if src.ws != nil {
		dst.ws = src.ws
	}
	dst.tags = append(dst.tags, src.tags...)
	dst.count += src.count
}
