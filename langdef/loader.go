package langdef

import (
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"

	"github.com/ava12/grammatic/grammar"
)

var log = commonlog.GetLogger("grammatic.langdef")

type settings struct {
	start string
	ws    grammar.Whitespace
}

// Option configures grammar loading.
type Option func(s *settings)

// Start sets the name of start production.
func Start(name string) Option {
	return func(s *settings) {
		s.start = name
	}
}

// Whitespace sets whitespace policy of syntactic productions, grammar.StdWhitespace by default.
func Whitespace(ws grammar.Whitespace) Option {
	return func(s *settings) {
		s.ws = ws
	}
}

// ParseString parses grammar description and returns a grammar and its start node on success.
// Returns nil and *grammatic.Error on error.
func ParseString(name, content string, opts ...Option) (*grammar.Grammar, grammar.ID, error) {
	return Parse(name, strings.NewReader(content), opts...)
}

// ParseBytes is like ParseString.
func ParseBytes(name string, content []byte, opts ...Option) (*grammar.Grammar, grammar.ID, error) {
	return Parse(name, strings.NewReader(string(content)), opts...)
}

// ParseFile reads grammar description from named file.
func ParseFile(name string, opts ...Option) (*grammar.Grammar, grammar.ID, error) {
	f, e := os.Open(name)
	if e != nil {
		return nil, grammar.NoNode, readError(name, e)
	}

	defer f.Close()
	return Parse(name, f, opts...)
}

// Parse reads grammar description from r, name is used in error messages.
func Parse(name string, r io.Reader, opts ...Option) (*grammar.Grammar, grammar.ID, error) {
	s := &settings{ws: grammar.StdWhitespace}
	for _, opt := range opts {
		opt(s)
	}

	prods, e := ebnf.Parse(name, r)
	if e != nil {
		return nil, grammar.NoNode, syntaxError(name, e)
	}
	if len(prods) == 0 {
		return nil, grammar.NoNode, emptyGrammarError(name)
	}

	order := productionOrder(prods)
	start := s.start
	if start == "" {
		start = order[0].Name.String
	}
	if e = ebnf.Verify(prods, start); e != nil {
		return nil, grammar.NoNode, verifyError(name, e)
	}

	c := &converter{b: grammar.NewBuilder(grammar.WithDefaultWhitespace(s.ws))}
	for _, p := range order {
		c.define(p)
	}
	g, e := c.b.Build()
	if e != nil {
		return nil, grammar.NoNode, e
	}

	root, _ := g.Lookup(start)
	e = g.ResolveRefs(root, grammar.ResolveOptions{Recurse: true, Follow: true})
	if e != nil {
		return nil, grammar.NoNode, e
	}

	log.Debugf("%s: loaded %d productions, start: %s", name, len(order), start)
	return g, root, nil
}

func productionOrder(prods ebnf.Grammar) []*ebnf.Production {
	result := make([]*ebnf.Production, 0, len(prods))
	for _, p := range prods {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Pos().Offset < result[j].Pos().Offset
	})
	return result
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(r)
}

type converter struct {
	b *grammar.Builder
	// options of composite nodes of current production
	opts []any
}

func (c *converter) define(p *ebnf.Production) {
	name := p.Name.String
	if isLexical(name) {
		c.opts = []any{grammar.SkipWhitespace(false)}
		items := append(c.terms(p.Expr), grammar.Terminal(true), grammar.ErrorOverride(true), grammar.SkipWhitespace(false))
		c.b.Define(name, items...)
	} else {
		c.opts = nil
		c.b.Define(name, c.terms(p.Expr)...)
	}
}

// terms returns direct children of production defined by x: terms of a sequence
// become separate children, so that parse tree node of the production holds them.
func (c *converter) terms(x ebnf.Expression) []any {
	switch x := x.(type) {
	case *ebnf.Group:
		return c.terms(x.Body)

	case ebnf.Sequence:
		items := make([]any, len(x))
		for i, term := range x {
			items[i] = c.item(term)
		}
		return items
	}

	return []any{c.item(x)}
}

func (c *converter) composite(items ...any) []any {
	return append(items, c.opts...)
}

func (c *converter) item(x ebnf.Expression) any {
	switch x := x.(type) {
	case *ebnf.Name:
		return c.b.Ref(x.String)

	case *ebnf.Token:
		return c.b.Literal(x.String)

	case *ebnf.Range:
		lo, _ := utf8.DecodeRuneInString(x.Begin.String)
		hi, _ := utf8.DecodeRuneInString(x.End.String)
		desc := grammar.Quote(x.Begin.String) + " … " + grammar.Quote(x.End.String)
		return c.b.Word(charSpec(lo)+"-"+charSpec(hi), "", grammar.Count(1), grammar.Desc(desc))

	case *ebnf.Group:
		return c.item(x.Body)

	case *ebnf.Option:
		return c.b.Optional(c.composite(c.item(x.Body))...)

	case *ebnf.Repetition:
		return c.b.ZeroOrMore(c.composite(c.item(x.Body))...)

	case ebnf.Alternative:
		items := make([]any, len(x))
		for i, alt := range x {
			items[i] = c.item(alt)
		}
		return c.b.Or(items...)

	case ebnf.Sequence:
		items := make([]any, len(x))
		for i, term := range x {
			items[i] = c.item(term)
		}
		return c.b.Seq(c.composite(items...)...)
	}

	return nil
}

// charSpec escapes characters special in grammar.CharSet specification.
func charSpec(r rune) string {
	switch r {
	case '\\', '^', '-':
		return `\` + string(r)
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\f':
		return `\f`
	case '\v':
		return `\v`
	}
	return string(r)
}
