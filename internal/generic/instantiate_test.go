package generic

import (
	"testing"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/types"
)

// mapCache is a minimal Cache backed by a plain map, standing in for
// workspace.Workspace's real instantiation cache in these unit tests.
type mapCache map[string]*types.Declaration

func (c mapCache) LookupInstantiation(mangled string) (*types.Declaration, bool) {
	d, ok := c[mangled]
	return d, ok
}

func (c mapCache) CacheInstantiation(mangled string, decl *types.Declaration) *types.Declaration {
	c[mangled] = decl
	return decl
}

func identityFuncDecl() (*types.Declaration, *ast.FuncDecl) {
	fd := &ast.FuncDecl{
		Name:   "identity",
		Params: []*ast.Parameter{{Name: "x", Type: &ast.NamedTypeExpr{Path: &ast.Identifier{Name: "T"}}}},
		Return: &ast.NamedTypeExpr{Path: &ast.Identifier{Name: "T"}},
		Body:   &ast.BlockExpr{},
	}
	decl := &types.Declaration{
		Kind: types.KindFunction,
		Name: "identity",
		Node: fd,
		Generic: &ast.GenericClause{
			TypeParams: []*ast.GenericTypeParam{{Name: "T"}},
		},
	}
	return decl, fd
}

func TestInstantiateSubstitutesSignatureTypes(t *testing.T) {
	decl, _ := identityFuncDecl()
	in := NewInstantiator(diag.NewCollector(), nil)
	cache := mapCache{}

	inst := in.Instantiate(cache, Request{Decl: decl, Args: []Arg{{Type: types.I32}}})
	if inst == nil {
		t.Fatalf("expected a non-nil instantiation")
	}
	fd, ok := inst.Node.(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected the instantiation's Node to remain a *ast.FuncDecl")
	}
	if _, ok := fd.Params[0].Type.(*ast.ResolvedTypeExpr); !ok {
		t.Fatalf("expected the parameter type to be substituted to a resolved type, got %T", fd.Params[0].Type)
	}
	if inst.Generic != nil {
		t.Fatalf("an instantiation must no longer carry its own generic clause")
	}
}

func TestInstantiateCachesByMangledName(t *testing.T) {
	decl, _ := identityFuncDecl()
	in := NewInstantiator(diag.NewCollector(), nil)
	cache := mapCache{}

	first := in.Instantiate(cache, Request{Decl: decl, Args: []Arg{{Type: types.I32}}})
	second := in.Instantiate(cache, Request{Decl: decl, Args: []Arg{{Type: types.I32}}})
	if first != second {
		t.Fatalf("expected repeated requests for the same mangled name to return the identical declaration")
	}
}

func TestInstantiateRejectsRecursionPastMaxDepth(t *testing.T) {
	decl, fd := identityFuncDecl()
	sink := diag.NewCollector()
	in := NewInstantiator(sink, nil)
	cache := mapCache{}

	// Simulate MaxDepth frames already on the stack, as a runaway generic
	// recursion would leave behind, then attempt one more.
	for i := 0; i < MaxDepth; i++ {
		in.depth = append(in.depth, "frame")
	}
	_ = fd

	inst := in.Instantiate(cache, Request{Decl: decl, Args: []Arg{{Type: types.I32}}})
	if inst != nil {
		t.Fatalf("expected instantiation past MaxDepth to abort with nil")
	}
	var sawAbort bool
	for _, r := range sink.Reports {
		if r.Code == diag.GEN002 {
			sawAbort = true
		}
	}
	if !sawAbort {
		t.Fatalf("expected a GEN002 diagnostic, got %+v", sink.Reports)
	}
}

func TestInstantiateRunsConstraintCheckerAndRejectsOnFailure(t *testing.T) {
	decl, _ := identityFuncDecl()
	decl.Generic.TypeParams[0].Constraint = &ast.NamedTypeExpr{Path: &ast.Identifier{Name: "Addable"}}
	sink := diag.NewCollector()

	var sawDecl *types.Declaration
	checker := func(d *types.Declaration, sub *Substitution) (bool, string, string) {
		sawDecl = d
		return false, "T", "i32 does not satisfy Addable"
	}
	in := NewInstantiator(sink, checker)
	cache := mapCache{}

	inst := in.Instantiate(cache, Request{Decl: decl, Args: []Arg{{Type: types.I32}}})
	if inst != nil {
		t.Fatalf("expected instantiation to fail when the constraint checker rejects it")
	}
	if sawDecl != decl {
		t.Fatalf("expected the constraint checker to be called with the original (unmangled) declaration")
	}
	if _, cached := cache.LookupInstantiation(Mangle("identity", []Arg{{Type: types.I32}})); cached {
		t.Fatalf("a constraint violation must not populate the cache")
	}
	var sawGEN003 bool
	for _, r := range sink.Reports {
		if r.Code == diag.GEN003 {
			sawGEN003 = true
		}
	}
	if !sawGEN003 {
		t.Fatalf("expected a GEN003 diagnostic, got %+v", sink.Reports)
	}
}

func TestInstantiateRunsConstraintCheckerAndAcceptsOnSuccess(t *testing.T) {
	decl, _ := identityFuncDecl()
	decl.Generic.TypeParams[0].Constraint = &ast.NamedTypeExpr{Path: &ast.Identifier{Name: "Addable"}}

	checker := func(d *types.Declaration, sub *Substitution) (bool, string, string) {
		return true, "", ""
	}
	in := NewInstantiator(diag.NewCollector(), checker)
	cache := mapCache{}

	inst := in.Instantiate(cache, Request{Decl: decl, Args: []Arg{{Type: types.I32}}})
	if inst == nil {
		t.Fatalf("expected instantiation to succeed when the constraint checker accepts it")
	}
}
