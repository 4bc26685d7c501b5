// Package parser defines matching engine and parser session.
//
// Matching is incremental: parser accumulates text chunks in a buffer and keeps
// suspended match state between calls, so a match spanning several chunks continues
// from where it stopped. Parser is not safe for concurrent use, but any number
// of parsers may share a grammar.
package parser

import (
	"bufio"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/source"
	"github.com/ava12/grammatic/tree"
)

var log = commonlog.GetLogger("grammatic.parser")

// Result is a successful match.
type Result struct {
	// Len is the length of consumed text in bytes.
	Len int
	// Nodes is the postprocessed parse tree: a single node unless top grammar node collapses.
	// Collapsed empty match is represented by nil node.
	Nodes []*tree.Node
	// All holds every match when All match type is used, Len is the longest one then.
	All []*Result
}

// Node returns the first parse tree node or nil.
func (r *Result) Node() *tree.Node {
	if r == nil || len(r.Nodes) == 0 {
		return nil
	}
	return r.Nodes[0]
}

type candidate struct {
	len  int
	node *tree.Node
}

// Parser matches text against grammar node.
type Parser struct {
	g         *grammar.Grammar
	root      grammar.ID
	matchType MatchType
	data      any
	refs      grammar.Scope
	tabs      int
	name      string
	hooks     map[string][]InitHook

	buf     *source.Buffer
	pos     source.Pos
	state   matcher
	matches []candidate
}

// New creates parser matching text against grammar node root.
func New(g *grammar.Grammar, root grammar.ID, opts ...Option) (*Parser, error) {
	if !g.Valid(root) {
		return nil, unknownRootError(root)
	}

	p := &Parser{
		g:     g,
		root:  root,
		tabs:  1,
		hooks: make(map[string][]InitHook),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Reset()
	return p, nil
}

// Grammar returns parser grammar.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// Root returns top grammar node.
func (p *Parser) Root() grammar.ID {
	return p.root
}

// Reset clears buffered text and position counters.
func (p *Parser) Reset() {
	p.pos = source.NewPos(p.name)
	p.ClearRemainder()
}

// ClearRemainder drops buffered text not matched yet, position counters stay as is.
func (p *Parser) ClearRemainder() {
	p.buf = source.NewBuffer("", true, false)
	p.state = nil
	p.matches = nil
}

// Remainder returns buffered text not matched yet.
func (p *Parser) Remainder() string {
	return p.buf.String()
}

// Pos returns counters of consumed text.
func (p *Parser) Pos() source.Pos {
	return p.pos
}

// ParseString appends text to buffer and tries to match it.
// Returns nil result if more text is needed, text remaining after the match stays buffered.
func (p *Parser) ParseString(text string, opts ...ParseOption) (*Result, error) {
	rs, e := p.parseChunk(text, settingsOf(opts), 1)
	if len(rs) == 0 {
		return nil, e
	}
	return rs[0], e
}

// ParseMulti is like ParseString, but keeps matching buffered text while possible
// and returns all matches in order.
func (p *Parser) ParseMulti(text string, opts ...ParseOption) ([]*Result, error) {
	return p.parseChunk(text, settingsOf(opts), 0)
}

// ParseLines feeds lines one by one and returns all matches in order.
// BOL option applies to the first line only; with EOF option end of input is signaled
// after the last line.
func (p *Parser) ParseLines(lines []string, opts ...ParseOption) ([]*Result, error) {
	var results []*Result
	e := p.parseLines(func(yield func(string) error) error {
		for _, line := range lines {
			if e := yield(line); e != nil {
				return e
			}
		}
		return nil
	}, settingsOf(opts), func(r *Result) error {
		results = append(results, r)
		return nil
	})
	return results, e
}

// ParseReader feeds lines read from r and calls fn for each match.
// End of input is signaled after the last line.
// Error returned by fn stops parsing and is returned as is.
func (p *Parser) ParseReader(r io.Reader, fn func(*Result) error, opts ...ParseOption) error {
	s := settingsOf(opts)
	s.eof = source.On
	br := bufio.NewReader(r)
	return p.parseLines(func(yield func(string) error) error {
		for {
			line, e := br.ReadString('\n')
			if line != "" {
				if ye := yield(line); ye != nil {
					return ye
				}
			}
			if e == io.EOF {
				return nil
			}
			if e != nil {
				return e
			}
		}
	}, s, fn)
}

// ParseFile resets parser and feeds lines of named file like ParseReader.
// File name becomes the source name reported in errors.
func (p *Parser) ParseFile(name string, fn func(*Result) error, opts ...ParseOption) error {
	f, e := os.Open(name)
	if e != nil {
		return e
	}

	defer f.Close()
	p.name = name
	p.Reset()
	return p.ParseReader(f, fn, opts...)
}

func settingsOf(opts []ParseOption) *parseSettings {
	s := &parseSettings{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (p *Parser) parseLines(lines func(yield func(string) error) error, s *parseSettings, fn func(*Result) error) error {
	eof := s.eof
	first := true
	e := lines(func(line string) error {
		ls := *s
		ls.eof = source.Off
		if !first {
			ls.bol = source.Unset
			ls.reset = false
		}
		first = false
		rs, e := p.parseChunk(line, &ls, 0)
		for _, r := range rs {
			if fe := fn(r); fe != nil {
				return fe
			}
		}
		return e
	})
	if e != nil || eof != source.On {
		return e
	}

	ls := *s
	ls.bol = source.Unset
	ls.reset = ls.reset && first
	rs, e := p.parseChunk("", &ls, 0)
	for _, r := range rs {
		if fe := fn(r); fe != nil {
			return fe
		}
	}
	return e
}

// parseChunk appends text and collects up to limit (or unlimited if 0) matches.
func (p *Parser) parseChunk(text string, s *parseSettings, limit int) ([]*Result, error) {
	if s.reset {
		p.Reset()
	}
	p.buf.Append(text, s.bol, s.eof)
	log.Debugf("appended %d bytes, buffer %d bytes, bol: %t, eof: %t", len(text), p.buf.Len(), p.buf.BOL(), p.buf.EOF())

	data := p.data
	if s.hasData {
		data = s.data
	}
	mt := p.matchType
	if s.hasMT {
		mt = s.matchType
	}

	var results []*Result
	for {
		r, e := p.parse(data, mt)
		if e != nil {
			return results, e
		}
		if r == nil {
			break
		}

		p.advance(r.Len)
		results = append(results, r)
		if r.Len == 0 || (limit > 0 && len(results) >= limit) {
			break
		}
		if !p.buf.EOF() && p.buf.Len() == 0 {
			break
		}
	}
	return results, nil
}

func (p *Parser) advance(count int) {
	if count > 0 {
		p.state = nil
		p.pos = p.pos.Advance(p.buf.String(), count, p.tabs)
		p.buf.Skip(count)
	}
}

// parse runs suspended or new match attempt at buffer start.
// Returns nil result if more text is needed or there is nothing to match at end of input.
func (p *Parser) parse(data any, mt MatchType) (*Result, error) {
	if !mt.valid() {
		return nil, unknownMatchTypeError(mt)
	}

	c := &ctx{g: p.g, buf: p.buf, refs: p.refs}
	if p.state == nil {
		p.matches = nil
		p.state = newMatcher(c, p.root, 0)
	}

	for {
		r := p.state.next(c)
		switch r.status {
		case fatal:
			p.state = nil
			p.matches = nil
			return nil, r.fatal

		case needMore:
			if p.buf.EOF() {
				p.state = nil
				p.matches = nil
				return nil, unexpectedSuspendError(p.g, p.root)
			}
			log.Debug("suspended for more text")
			return nil, nil

		case failed:
			if len(p.matches) > 0 {
				return p.selectMatch(data, mt)
			}

			p.state = nil
			return nil, p.failure(r.err)

		default:
			p.matches = append(p.matches, candidate{r.len, r.node})
			if mt == First {
				return p.selectMatch(data, mt)
			}
		}
	}
}

// failure converts final match failure to error.
// Failure at the end of buffer holding nothing but whitespace means no match yet.
func (p *Parser) failure(x expectation) error {
	text := p.buf.String()
	if text == "" {
		return nil
	}
	if x.pos == len(text) {
		ws := p.g.Node(p.root).Whitespace
		if ws.On() && ws.Only(text, 0) {
			return nil
		}
	}

	errPos := p.pos.Advance(text, x.pos, p.tabs)
	log.Debugf("parse failed at char %d", errPos.Char())
	pe := newParseError(p.g, text, x.pos, errPos.Char(), errPos.Line(), errPos.Col(), x.expected())
	pe.SourceName = p.name
	return pe
}

func (p *Parser) selectMatch(data any, mt MatchType) (*Result, error) {
	matches := p.matches
	p.state = nil
	p.matches = nil

	var m candidate
	switch mt {
	case First:
		m = matches[0]
	case Last:
		m = matches[len(matches)-1]
	case Longest:
		m = matches[0]
		for _, c := range matches[1:] {
			if c.len > m.len {
				m = c
			}
		}
	case Shortest:
		m = matches[0]
		for _, c := range matches[1:] {
			if c.len < m.len {
				m = c
			}
		}
	case All:
		result := &Result{}
		for _, c := range matches {
			c.node = c.node.Clone()
			r, e := p.postprocess(c, data)
			if e != nil {
				return nil, e
			}
			result.All = append(result.All, r)
			if c.len > result.Len {
				result.Len = c.len
			}
		}
		log.Debugf("accepted %d matches, longest %d bytes", len(matches), result.Len)
		return result, nil
	}

	log.Debugf("accepted match of %d bytes", m.len)
	return p.postprocess(m, data)
}

func (p *Parser) postprocess(c candidate, data any) (*Result, error) {
	nodes, e := c.node.Postprocess(nil, p.initFunc(data))
	if e != nil {
		return nil, e
	}
	return &Result{Len: c.len, Nodes: nodes}, nil
}

func (p *Parser) initFunc(data any) tree.InitFunc {
	if len(p.hooks) == 0 {
		return nil
	}

	return func(n *tree.Node) error {
		for _, hook := range p.hooks[n.Name()] {
			if e := hook(n, data); e != nil {
				return initHookError(p.pos, n.Name(), e)
			}
		}
		for _, hook := range p.hooks[AnyNode] {
			if e := hook(n, data); e != nil {
				return initHookError(p.pos, n.Name(), e)
			}
		}
		return nil
	}
}
