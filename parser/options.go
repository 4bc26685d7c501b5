package parser

import (
	"strconv"
	"strings"

	"github.com/ava12/grammatic/grammar"
	"github.com/ava12/grammatic/source"
	"github.com/ava12/grammatic/tree"
)

// MatchType selects which of several possible matches is returned.
type MatchType int

const (
	// First is the first match found (default).
	First MatchType = iota
	// Last is the last match found.
	Last
	// Longest is the match consuming the most text, the first one among equal.
	Longest
	// Shortest is the match consuming the least text, the first one among equal.
	Shortest
	// All returns every match in the order found.
	All
)

var matchTypeNames = [...]string{
	First:    "first",
	Last:     "last",
	Longest:  "longest",
	Shortest: "shortest",
	All:      "all",
}

func (mt MatchType) String() string {
	if mt >= 0 && int(mt) < len(matchTypeNames) {
		return matchTypeNames[mt]
	}
	return "MatchType(" + strconv.Itoa(int(mt)) + ")"
}

func (mt MatchType) valid() bool {
	return mt >= First && mt <= All
}

// ParseMatchType converts match type name (case-insensitive) to MatchType.
func ParseMatchType(name string) (MatchType, error) {
	name = strings.ToLower(name)
	for i, n := range matchTypeNames {
		if n == name {
			return MatchType(i), nil
		}
	}
	return First, unknownMatchTypeNameError(name)
}

// AnyNode is the name used to register init hook called for every parse tree node.
const AnyNode = ""

// InitHook is called for each postprocessed parse tree node with session data.
// Error aborts parsing.
type InitHook func(n *tree.Node, data any) error

// Option configures Parser.
type Option func(p *Parser)

// WithMatchType sets default match type, initially First.
func WithMatchType(mt MatchType) Option {
	return func(p *Parser) {
		p.matchType = mt
	}
}

// WithData sets default session data passed to init hooks.
func WithData(data any) Option {
	return func(p *Parser) {
		p.data = data
	}
}

// WithRefs sets reference overrides, grammar.NoNode values are ignored.
func WithRefs(refs map[string]grammar.ID) Option {
	return WithResolver(grammar.MapScope(refs))
}

// WithResolver sets reference override lookup.
func WithResolver(scope grammar.Scope) Option {
	return func(p *Parser) {
		p.refs = scope
	}
}

// WithTabs sets tab stop width used for column counting, values less than 2 disable tab expansion.
func WithTabs(tabs int) Option {
	return func(p *Parser) {
		p.tabs = tabs
	}
}

// WithSourceName sets source name reported in errors.
func WithSourceName(name string) Option {
	return func(p *Parser) {
		p.name = name
	}
}

// WithInitHook registers hook called for parse tree nodes of grammar nodes named name,
// or for every node if name is AnyNode. Hooks are called in registration order.
func WithInitHook(name string, hook InitHook) Option {
	return func(p *Parser) {
		if hook != nil {
			p.hooks[name] = append(p.hooks[name], hook)
		}
	}
}

type parseSettings struct {
	bol, eof  source.Flag
	reset     bool
	data      any
	hasData   bool
	matchType MatchType
	hasMT     bool
}

// ParseOption modifies a single parse call.
type ParseOption func(s *parseSettings)

// BOL tells whether text starts a line. It is not usually needed: initial buffer starts a line,
// and subsequent chunks continue the text.
func BOL(bol bool) ParseOption {
	return func(s *parseSettings) {
		s.bol = source.FlagOf(bol)
	}
}

// EOF signals that no more text will follow.
func EOF() ParseOption {
	return func(s *parseSettings) {
		s.eof = source.On
	}
}

// Reset resets parser before parsing.
func Reset() ParseOption {
	return func(s *parseSettings) {
		s.reset = true
	}
}

// Data overrides session data for this call.
func Data(data any) ParseOption {
	return func(s *parseSettings) {
		s.data = data
		s.hasData = true
	}
}

// Match overrides match type for this call.
func Match(mt MatchType) ParseOption {
	return func(s *parseSettings) {
		s.matchType = mt
		s.hasMT = true
	}
}
