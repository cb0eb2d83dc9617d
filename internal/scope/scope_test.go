package scope

import (
	"testing"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// fakeNode is a minimal ast.Node stand-in, since scope keys environments by
// node identity rather than by anything derived from the node's contents.
type fakeNode struct{ name string }

func (f *fakeNode) String() string     { return f.name }
func (f *fakeNode) Position() ast.Pos { return ast.Pos{} }

func decl(name string, k types.Kind) *types.Declaration {
	return &types.Declaration{Kind: k, Name: name}
}

func TestBeginReusesSameEnvironmentAcrossVisits(t *testing.T) {
	g := NewGraph()
	node := &fakeNode{"fn"}

	e1 := g.Begin(node)
	e1.Define(Values, "x", decl("x", types.KindVar))
	g.End()

	e2 := g.Begin(node)
	if e2 != e1 {
		t.Fatalf("Begin on a previously visited node must return the same environment")
	}
	if _, ok := e2.Lookup(Values, "x", false); !ok {
		t.Fatalf("expected x to survive across Begin/End on the same node")
	}
	g.End()
}

func TestDefineIgnoresBlankIdentifier(t *testing.T) {
	g := NewGraph()
	env := g.Begin(&fakeNode{"root"})
	env.Define(Values, "_", decl("_", types.KindVar))
	if _, ok := env.Lookup(Values, "_", false); ok {
		t.Fatalf("`_` must never be bound")
	}
}

func TestDefineDoublyBoundNameKeepsFirstEntry(t *testing.T) {
	g := NewGraph()
	env := g.Begin(&fakeNode{"root"})
	first := decl("x", types.KindConst)
	second := decl("x", types.KindVar)

	env.Define(Values, "x", first)
	got := env.Define(Values, "x", second)
	if got != first {
		t.Fatalf("Define on an already-bound name must return the existing declaration, not rebind")
	}
}

func TestNamespacesAreDisjoint(t *testing.T) {
	g := NewGraph()
	env := g.Begin(&fakeNode{"root"})
	env.Define(Values, "Point", decl("Point", types.KindVar))
	env.Define(Types, "Point", decl("Point", types.KindTypeRecord))

	v, ok := env.Lookup(Values, "Point", false)
	if !ok || v.Kind != types.KindVar {
		t.Fatalf("expected a value named Point")
	}
	ty, ok := env.Lookup(Types, "Point", false)
	if !ok || ty.Kind != types.KindTypeRecord {
		t.Fatalf("expected a distinct type named Point in its own namespace")
	}
}

func TestLookupRecursiveWalksParents(t *testing.T) {
	g := NewGraph()
	outer := g.Begin(&fakeNode{"outer"})
	outer.Define(Values, "x", decl("x", types.KindVar))
	inner := g.Begin(&fakeNode{"inner"})
	g.End()
	g.End()

	if _, ok := inner.Lookup(Values, "x", false); ok {
		t.Fatalf("non-recursive lookup must not see the parent's bindings")
	}
	if _, ok := inner.Lookup(Values, "x", true); !ok {
		t.Fatalf("recursive lookup must see the parent's bindings")
	}
}

func TestInsideFindsOwnLoopAndFunctionBodyIsOpaque(t *testing.T) {
	g := NewGraph()
	ws := g.Begin(&fakeNode{"ws"})
	ws.MarkKind(KindWorkspace)
	fn := g.Begin(&fakeNode{"fn"})
	fn.MarkKind(KindFunction)
	loop := g.Begin(&fakeNode{"for"})
	loop.MarkKind(KindLoop)
	g.End()
	g.End()
	g.End()

	if !loop.Inside(KindLoop) {
		t.Fatalf("a loop environment must find itself via Outscope(KindLoop)")
	}

	// A second chain: a function body nested inside a loop must not see
	// that enclosing loop.
	g2 := NewGraph()
	outerLoop := g2.Begin(&fakeNode{"outer-for"})
	outerLoop.MarkKind(KindLoop)
	fnBody := g2.Begin(&fakeNode{"fn-body"})
	fnBody.MarkKind(KindFunction, KindLoop)
	g2.End()
	g2.End()

	if fnBody.Inside(KindLoop) {
		t.Fatalf("a function body must be opaque to a `break`/`continue` query into an enclosing loop")
	}
}

func TestEntriesReturnsOnlyOwnBindingsNotInherited(t *testing.T) {
	g := NewGraph()
	parent := g.Begin(&fakeNode{"parent"})
	parent.Define(Values, "a", decl("a", types.KindConst))
	child := g.Begin(&fakeNode{"child"})
	child.Define(Values, "b", decl("b", types.KindConst))
	g.End()
	g.End()

	entries := child.Entries(Values)
	if _, ok := entries["a"]; ok {
		t.Fatalf("Entries must not include inherited parent bindings")
	}
	if _, ok := entries["b"]; !ok {
		t.Fatalf("Entries must include the environment's own bindings")
	}
}

func TestAllSymbolsDedupsAcrossAncestors(t *testing.T) {
	g := NewGraph()
	parent := g.Begin(&fakeNode{"parent"})
	parent.Define(Values, "shared", decl("shared", types.KindConst))
	child := g.Begin(&fakeNode{"child"})
	child.Define(Functions, "shared", decl("shared", types.KindFunction))
	child.Define(Values, "local", decl("local", types.KindVar))

	names := map[string]int{}
	for _, n := range child.AllSymbols() {
		names[n]++
	}
	if names["shared"] != 1 {
		t.Fatalf("AllSymbols must report `shared` once even though it is bound in two namespaces across two environments, got %d", names["shared"])
	}
	if names["local"] != 1 {
		t.Fatalf("expected local to be reported once")
	}
}
