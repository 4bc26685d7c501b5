package grammar

// Option overrides a node setting.
// Options may be passed to Builder methods mixed with child items.
type Option func(*settings)

type settings struct {
	name, desc    *string
	min, max      *int
	greedy        *bool
	collapse      *bool
	collapseSkip  *bool
	terminal      *bool
	errorOverride *bool
	ws            *Whitespace
	tags          []string
	sep, def      any
	hasSep        bool
	hasDefault    bool
	scope         Scope
	hasScope      bool
	err           error
	count         int
}

func (s *settings) empty() bool {
	return s.count == 0
}

func (s *settings) apply(n *Node) {
	if s.name != nil {
		n.Name = *s.name
	}
	if s.desc != nil {
		n.Desc = *s.desc
	}
	if s.min != nil {
		n.Min = *s.min
	}
	if s.max != nil {
		n.Max = *s.max
	}
	if s.greedy != nil {
		n.Greedy = *s.greedy
	}
	if s.collapse != nil {
		n.Collapse = *s.collapse
	}
	if s.collapseSkip != nil {
		n.CollapseSkip = *s.collapseSkip
	}
	if s.terminal != nil {
		n.Terminal = *s.terminal
	}
	if s.errorOverride != nil {
		n.ErrorOverride = *s.errorOverride
	}
	if s.ws != nil {
		n.Whitespace = *s.ws
	}
	if len(s.tags) > 0 {
		n.Tags = append(n.Tags, s.tags...)
	}
	if n.Desc == "" {
		n.Desc = n.Name
	}
}

func option(f func(s *settings)) Option {
	return func(s *settings) {
		s.count++
		f(s)
	}
}

// Name sets node name.
func Name(name string) Option {
	return option(func(s *settings) { s.name = &name })
}

// Desc sets node description used in error messages.
func Desc(desc string) Option {
	return option(func(s *settings) { s.desc = &desc })
}

// Min sets minimum repetition count.
func Min(n int) Option {
	return option(func(s *settings) { s.min = &n })
}

// Max sets maximum repetition count, Unbounded or negative value means no limit.
func Max(n int) Option {
	if n < 0 {
		n = Unbounded
	}
	return option(func(s *settings) { s.max = &n })
}

// Count sets both minimum and maximum repetition counts.
func Count(n int) Option {
	return option(func(s *settings) {
		s.min = &n
		s.max = &n
	})
}

// Greedy selects longest-first (true) or shortest-first (false) result order.
func Greedy(greedy bool) Option {
	return option(func(s *settings) { s.greedy = &greedy })
}

// Collapse makes parse tree node replaced with its children.
func Collapse(collapse bool) Option {
	return option(func(s *settings) { s.collapse = &collapse })
}

// CollapseSkip makes parse tree node dropped from collapsed parent when other children exist.
func CollapseSkip(skip bool) Option {
	return option(func(s *settings) { s.collapseSkip = &skip })
}

// Terminal marks node as a terminal, Terminals enumeration does not descend into terminals.
func Terminal(terminal bool) Option {
	return option(func(s *settings) { s.terminal = &terminal })
}

// ErrorOverride makes node report itself as the failing node.
func ErrorOverride(override bool) Option {
	return option(func(s *settings) { s.errorOverride = &override })
}

// SkipWhitespace enables (using DefaultWhitespacePattern) or disables whitespace skipping.
func SkipWhitespace(on bool) Option {
	ws := NoWhitespace
	if on {
		ws = StdWhitespace
	}
	return WithWhitespace(ws)
}

// WithWhitespace sets whitespace policy.
func WithWhitespace(ws Whitespace) Option {
	return option(func(s *settings) { s.ws = &ws })
}

// WhitespacePattern enables skipping of text matching regular expression pattern.
func WhitespacePattern(pattern string) Option {
	ws, e := NewWhitespace(pattern)
	return option(func(s *settings) {
		if e != nil {
			s.err = e
		} else {
			s.ws = &ws
		}
	})
}

// Tags adds tags to node.
func Tags(tags ...string) Option {
	return option(func(s *settings) { s.tags = append(s.tags, tags...) })
}

// Sep sets list separator item, default is ",".
func Sep(item any) Option {
	return option(func(s *settings) {
		s.sep = item
		s.hasSep = true
	})
}

// Default sets node used when reference cannot be resolved by name.
func Default(item any) Option {
	return option(func(s *settings) {
		s.def = item
		s.hasDefault = true
	})
}

// InScope sets reference lookup scope, nil disables scope lookup.
// Default scope is the symbol table of the grammar being built.
func InScope(scope Scope) Option {
	return option(func(s *settings) {
		s.scope = scope
		s.hasScope = true
	})
}
