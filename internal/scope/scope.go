// Package scope implements the scope graph (spec.md §4.1): a node-keyed
// set of environments, each holding four symbol maps (values, functions,
// types, concepts), with ancestor queries used by the name resolver and
// declaration checker.
//
// Grounded on the teacher's internal/types/env.go parent-chain
// environment (TypeEnv.Extend/Lookup over a single bindings map),
// generalized from one map to spec.md's four disjoint namespaces and from
// an implicit tree of freshly allocated environments to an explicit,
// AST-node-keyed graph with lazy, reused allocation (spec.md §3 "Scope/
// Environment" invariant: "created lazily on first entry and reused on
// subsequent visits").
package scope

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// Namespace selects which of the four maps an operation targets.
type Namespace int

const (
	Values Namespace = iota
	Functions
	Types
	Concepts
)

// Kind identifies the enclosing construct an Inside/Outscope query looks
// for.
type Kind int

const (
	KindFunction Kind = iota
	KindLoop
	KindTest
	KindWorkspace
)

// Environment is one node's scope: four disjoint symbol tables plus a
// link to the parent environment and the AST node it encloses (spec.md
// §3 "Scope/Environment").
type Environment struct {
	Node     ast.Node
	Parent   *Environment
	values   map[string]*types.Declaration
	funcs    map[string]*types.Declaration
	types_   map[string]*types.Declaration
	concepts map[string]*types.Declaration

	// enclosingKind tags what construct this environment represents, for
	// Inside/Outscope to test without a type switch on Node.
	enclosingKind *Kind
	opaqueFor     map[Kind]bool // e.g. a function is opaque for `loop` queries
}

func newEnvironment(node ast.Node, parent *Environment) *Environment {
	return &Environment{
		Node:     node,
		Parent:   parent,
		values:   make(map[string]*types.Declaration),
		funcs:    make(map[string]*types.Declaration),
		types_:   make(map[string]*types.Declaration),
		concepts: make(map[string]*types.Declaration),
	}
}

func (e *Environment) mapFor(ns Namespace) map[string]*types.Declaration {
	switch ns {
	case Values:
		return e.values
	case Functions:
		return e.funcs
	case Types:
		return e.types_
	case Concepts:
		return e.concepts
	default:
		return nil
	}
}

// Graph is the persistent, AST-node-keyed set of environments shared by
// all five passes (spec.md §2: "All passes share the same persistent
// state: a scope graph keyed by AST nodes").
type Graph struct {
	envs    map[ast.Node]*Environment
	current *Environment
	stack   []*Environment
}

// NewGraph creates an empty scope graph with no current environment.
func NewGraph() *Graph {
	return &Graph{envs: make(map[ast.Node]*Environment)}
}

// Begin returns the environment for node, creating it (parented to the
// current environment) if this is the first visit, and makes it current.
func (g *Graph) Begin(node ast.Node) *Environment {
	env, ok := g.envs[node]
	if !ok {
		env = newEnvironment(node, g.current)
		g.envs[node] = env
	}
	g.stack = append(g.stack, g.current)
	g.current = env
	return env
}

// End pops back to the parent environment that was current before the
// matching Begin.
func (g *Graph) End() {
	if len(g.stack) == 0 {
		return
	}
	g.current = g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
}

// Current returns the environment on top of the scope stack.
func (g *Graph) Current() *Environment { return g.current }

// EnvFor returns the (already created) environment for node, or nil.
func (g *Graph) EnvFor(node ast.Node) *Environment { return g.envs[node] }

// MarkKind tags env as enclosing construct k, and opaque tags it opaque
// to queries of the given kinds (e.g. a function body is opaque for
// `loop` queries, spec.md §4.1).
func (e *Environment) MarkKind(k Kind, opaqueTo ...Kind) {
	kk := k
	e.enclosingKind = &kk
	if len(opaqueTo) > 0 {
		e.opaqueFor = make(map[Kind]bool, len(opaqueTo))
		for _, o := range opaqueTo {
			e.opaqueFor[o] = true
		}
	}
}

// Define binds name in namespace ns within env, silently ignoring `_`
// (spec.md §3 invariant, §4.1 contract). On first binding it stamps the
// declaration's Scope with env's node. Double-binding returns the
// pre-existing entry unchanged; callers must check for conflicts
// themselves (spec.md §4.1: "callers must check for conflicts and emit
// their own diagnostics").
func (e *Environment) Define(ns Namespace, name string, decl *types.Declaration) *types.Declaration {
	if name == "_" {
		return decl
	}
	m := e.mapFor(ns)
	if existing, ok := m[name]; ok {
		return existing
	}
	if decl.Annotation.Scope == nil {
		decl.Annotation.Scope = e.Node
	}
	m[name] = decl
	return decl
}

// Entries returns env's own symbol table for namespace ns (no parent
// walk), for callers that need to enumerate every name a scope declares
// directly — e.g. the `core` workspace injection step (spec.md §4.2: "all
// of its top-level symbols injected... into every other workspace's root
// environment").
func (e *Environment) Entries(ns Namespace) map[string]*types.Declaration {
	return e.mapFor(ns)
}

// Lookup finds name in namespace ns, walking parents if recursive is
// true (spec.md §4.1 "define/lookup(name, kind, recursive?)").
func (e *Environment) Lookup(ns Namespace, name string, recursive bool) (*types.Declaration, bool) {
	for env := e; env != nil; env = env.Parent {
		if d, ok := env.mapFor(ns)[name]; ok {
			return d, true
		}
		if !recursive {
			break
		}
	}
	return nil, false
}

// LookupAny searches values, then builtin/user types, then functions,
// then concepts, in the order spec.md §4.3 step 3 specifies, walking
// ancestors.
func (e *Environment) LookupAny(name string) (*types.Declaration, Namespace, bool) {
	for _, ns := range [...]Namespace{Values, Types, Functions, Concepts} {
		if d, ok := e.Lookup(ns, name, true); ok {
			return d, ns, true
		}
	}
	return nil, 0, false
}

// Inside reports whether e is lexically inside a construct of kind k,
// stopping at workspace boundaries for function/loop/test queries and
// treating a function declaration as opaque for loop queries (spec.md
// §4.1).
func (e *Environment) Inside(k Kind) bool {
	_, ok := e.Outscope(k)
	return ok
}

// Outscope returns the nearest enclosing environment of kind k, or
// (nil, false) if none exists before a workspace boundary.
func (e *Environment) Outscope(k Kind) (*Environment, bool) {
	for env := e; env != nil; env = env.Parent {
		if env.opaqueFor[k] {
			return nil, false
		}
		if env.enclosingKind != nil && *env.enclosingKind == k {
			return env, true
		}
		if env.enclosingKind != nil && *env.enclosingKind == KindWorkspace {
			return nil, false
		}
	}
	return nil, false
}

// AllSymbols collects every name bound in e and its ancestors across all
// four namespaces, used by the name resolver's "did you mean" suggester
// (spec.md §4.3 step 4).
func (e *Environment) AllSymbols() []string {
	seen := map[string]bool{}
	var out []string
	for env := e; env != nil; env = env.Parent {
		for _, m := range []map[string]*types.Declaration{env.values, env.funcs, env.types_, env.concepts} {
			for name := range m {
				if !seen[name] {
					seen[name] = true
					out = append(out, name)
				}
			}
		}
	}
	return out
}
