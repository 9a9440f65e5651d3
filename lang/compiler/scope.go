package compiler

import "github.com/dolthub/swiss"

// ScopeKind identifies the kind of a scope in the chain.
type ScopeKind int8

//nolint:revive
const (
	GlobalScope ScopeKind = iota
	FunctionScope
	BlockScope
)

// Scope is a node in a parent-linked chain mapping declared names to
// local slot indices. All blocks of one function (and of the top level)
// share one flat slot namespace: the slot counter lives on the chain's
// function root and block scopes borrow it, so a chunk's local count is
// the total number of slots ever declared anywhere in its chain.
//
// Name lookup walks the chain from the innermost scope outward but stops
// at a function boundary: there are no closures, so a name declared in an
// enclosing function (or at the top level) is not visible inside a
// function body.
type Scope struct {
	kind     ScopeKind
	parent   *Scope
	bindings *swiss.Map[string, uint32]
	next     *uint32 // slot counter shared by the chain's function root
}

// NewGlobalScope creates the root scope of a compilation unit.
func NewGlobalScope() *Scope {
	return &Scope{
		kind:     GlobalScope,
		bindings: swiss.NewMap[string, uint32](8),
		next:     new(uint32),
	}
}

// PushBlock creates a child block scope sharing the slot namespace of s.
func (s *Scope) PushBlock() *Scope {
	return &Scope{
		kind:     BlockScope,
		parent:   s,
		bindings: swiss.NewMap[string, uint32](8),
		next:     s.next,
	}
}

// PushFunction creates a child function scope with a fresh slot
// namespace.
func (s *Scope) PushFunction() *Scope {
	return &Scope{
		kind:     FunctionScope,
		parent:   s,
		bindings: swiss.NewMap[string, uint32](8),
		next:     new(uint32),
	}
}

// Pop discards the scope and returns its parent. Names declared only in
// the popped scope stop resolving; their slots remain reserved.
func (s *Scope) Pop() *Scope { return s.parent }

// Kind returns the scope's kind.
func (s *Scope) Kind() ScopeKind { return s.kind }

// Declare assigns the next unused slot of the chain to name and returns
// it. Declaring a name already bound in this scope silently re-binds it
// to a fresh slot; the previous slot stays reserved but unreachable.
func (s *Scope) Declare(name string) uint32 {
	slot := *s.next
	*s.next++
	s.bindings.Put(name, slot)
	return slot
}

// Lookup returns the slot of the innermost declaration of name, walking
// the chain outward but never across a function boundary.
func (s *Scope) Lookup(name string) (uint32, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if slot, ok := sc.bindings.Get(name); ok {
			return slot, true
		}
		if sc.kind == FunctionScope {
			break
		}
	}
	return 0, false
}

// LocalCount returns the total number of slots declared in the scope's
// chain, including slots of popped block scopes.
func (s *Scope) LocalCount() int { return int(*s.next) }

// Clone returns a deep copy of the scope chain. Block scopes of a cloned
// chain keep sharing their function root's slot counter.
func (s *Scope) Clone() *Scope {
	if s == nil {
		return nil
	}
	parent := s.parent.Clone()

	clone := &Scope{
		kind:     s.kind,
		parent:   parent,
		bindings: swiss.NewMap[string, uint32](8),
	}
	s.bindings.Iter(func(name string, slot uint32) bool {
		clone.bindings.Put(name, slot)
		return false
	})

	if s.kind == BlockScope && parent != nil {
		clone.next = parent.next
	} else {
		next := *s.next
		clone.next = &next
	}
	return clone
}
