package grammar

import (
	"github.com/ava12/grammatic"
	"github.com/ava12/grammatic/internal/ints"
)

// Scope maps names to grammar nodes. Lookup result NoNode is treated as not found.
type Scope interface {
	Lookup(name string) (ID, bool)
}

// MapScope is a Scope backed by a map.
type MapScope map[string]ID

func (s MapScope) Lookup(name string) (ID, bool) {
	id, found := s[name]
	return id, found
}

// ScopeFunc is a Scope backed by a function.
type ScopeFunc func(name string) (ID, bool)

func (f ScopeFunc) Lookup(name string) (ID, bool) {
	return f(name)
}

// Resolve returns node referenced by RefKind node id; other nodes are returned as is.
// Lookup order is: overrides (may be nil), reference scope, reference default.
// Only one level of references is resolved.
func (g *Grammar) Resolve(id ID, overrides Scope) (ID, error) {
	n := g.Node(id)
	if n == nil {
		return NoNode, unknownNodeError(id)
	}
	if n.Kind != RefKind {
		return id, nil
	}

	target := NoNode
	if overrides != nil {
		if t, found := overrides.Lookup(n.Ref); found {
			target = t
		}
	}
	if target == NoNode && n.Scope != nil {
		if t, found := n.Scope.Lookup(n.Ref); found {
			target = t
		}
	}
	if target == NoNode {
		target = n.Default
	}

	if target == NoNode {
		return NoNode, unknownReferenceError(n.Ref)
	}
	if !g.Valid(target) {
		return NoNode, badReferenceError(n.Ref, target)
	}
	return target, nil
}

// ResolveOptions control ResolveRefs pass.
type ResolveOptions struct {
	// Refs override reference lookup by name.
	Refs Scope
	// Recurse enables resolving references in child nodes.
	Recurse bool
	// Follow enables resolving references in resolved targets, requires Recurse.
	Follow bool
	// MissingOK leaves unresolvable references in place instead of returning an error.
	MissingOK bool
	// Skip lists nodes not to be searched for references.
	Skip []ID
}

// ResolveRefs replaces references among children of node root with referenced nodes.
// Each node is visited once, so cyclic grammars are safe.
func (g *Grammar) ResolveRefs(root ID, opts ResolveOptions) error {
	visited := ints.NewSet()
	for _, id := range opts.Skip {
		if id >= 0 {
			visited.Add(int(id))
		}
	}
	return g.resolveRefs(root, &opts, visited)
}

func (g *Grammar) resolveRefs(id ID, opts *ResolveOptions, visited *ints.Set) error {
	if !g.Valid(id) {
		return unknownNodeError(id)
	}
	if visited.Contains(int(id)) {
		return nil
	}

	visited.Add(int(id))
	n := &g.nodes[id]
	children := make([]ID, len(n.Children))
	changed := false
	var recurse []ID

	for i, c := range n.Children {
		rec := opts.Recurse
		for steps := 0; g.nodes[c].Kind == RefKind && steps < len(g.nodes); steps++ {
			t, e := g.Resolve(c, opts.Refs)
			if e != nil {
				if opts.MissingOK && grammatic.ErrorCode(e) == UnknownReferenceError {
					break
				}
				return e
			}

			log.Debugf("%s: %s resolved to %s", n.Name, g.nodes[c].Name, g.nodes[t].Name)
			c = t
			changed = true
			if !opts.Follow {
				rec = false
				break
			}
		}
		children[i] = c
		if rec {
			recurse = append(recurse, c)
		}
	}

	if changed {
		e := g.Modify(id, func(n *Node) {
			n.Children = children
		})
		if e != nil {
			return e
		}
	}

	for _, c := range recurse {
		if e := g.resolveRefs(c, opts, visited); e != nil {
			return e
		}
	}
	return nil
}
