package generic

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/types"
)

// MaxDepth bounds generic instantiation recursion (spec.md §4.6: "a
// depth-stack guard, fatal past a fixed depth" — set past any legitimate
// nesting a hand-written generic could need, same order of magnitude as
// the teacher's own recursion guards).
const MaxDepth = 10

// Request is one instantiation call: the generic declaration being
// instantiated, plus the argument list (deduced or explicit).
type Request struct {
	Decl *types.Declaration
	Args []Arg
}

// Instantiator runs the seven-step procedure spec.md §4.6 describes:
// mangle the name, check the cache, push the depth stack (abort past
// MaxDepth), clone the declaration's AST subtree, build the substitution,
// splice it through the clone via Substitutor, then hand the clone back
// to the caller (the checker's pass 3/4) to re-enter through the normal
// checking path. Caching is keyed by mangled name on the owning
// workspace, mirroring the teacher's InstanceEnv keyed by
// "ClassName:NormalizedType" in internal/types/instances.go.
type Instantiator struct {
	sink        diag.Sink
	constraints ConstraintChecker
	depth       []string // stack of mangled names currently being instantiated
}

// ConstraintChecker validates an instantiation's bound arguments against
// the declaration's own concept constraints (spec.md §4.6 step 4: "verify
// that every type parameter's concept constraint, if any, holds for its
// bound argument before the instantiation is cached"). It returns
// ok=false plus the offending parameter's name and a human-readable
// reason on violation. The concrete implementation lives in
// internal/check, which closes over the concept engine and scope graph
// this package cannot import without a cycle (package concept already
// imports package generic for Substitution/Arg).
type ConstraintChecker func(decl *types.Declaration, sub *Substitution) (ok bool, param, reason string)

// Cache is the per-workspace instantiation cache spec.md §4.6 requires so
// that repeated requests for the same mangled name return the identical
// Declaration rather than re-cloning (spec.md §8: "instantiation is
// deduplicated by mangled name within a workspace").
type Cache interface {
	LookupInstantiation(mangled string) (*types.Declaration, bool)
	CacheInstantiation(mangled string, decl *types.Declaration) *types.Declaration
}

// NewInstantiator creates an instantiator reporting to sink, validating
// every instantiation's bound arguments with constraints (may be nil to
// skip constraint checking entirely, e.g. in tests of unrelated behavior).
func NewInstantiator(sink diag.Sink, constraints ConstraintChecker) *Instantiator {
	return &Instantiator{sink: sink, constraints: constraints}
}

// Instantiate runs the full procedure, returning the (possibly cached)
// instantiated declaration, or nil, already reported, when the request
// recurses into itself or exceeds MaxDepth (GEN002) or a constraint does
// not hold (GEN003).
func (in *Instantiator) Instantiate(cache Cache, req Request) *types.Declaration {
	mangled := Mangle(req.Decl.Name, req.Args)

	if cached, ok := cache.LookupInstantiation(mangled); ok {
		return cached
	}

	pos := declSpan(req.Decl)
	for _, d := range in.depth {
		if d == mangled {
			in.sink.Publish(diag.NewAbort(diag.GEN002, "generic",
				"generic instantiation recursion involving "+mangled, pos).
				WithData("mangled", mangled))
			return nil
		}
	}
	if len(in.depth) >= MaxDepth {
		in.sink.Publish(diag.NewAbort(diag.GEN002, "generic",
			"generic instantiation depth exceeded instantiating "+mangled, pos).
			WithData("mangled", mangled).WithData("depth", len(in.depth)))
		return nil
	}

	in.depth = append(in.depth, mangled)
	defer func() { in.depth = in.depth[:len(in.depth)-1] }()

	clone := cloneDecl(req.Decl)
	clone.Name = req.Decl.Name
	clone.Parent = req.Decl
	clone.Generic = nil // an instantiation is no longer itself generic
	// The template's type still names the generic parameters; callers
	// rebuild the instantiation's type from the substituted node.
	clone.Annotation.Type = nil

	sub := NewSubstitution(clone.Node)
	bindGenericClause(sub, req.Decl, req.Args)

	if node := clone.Node; node != nil {
		substituteDeclNode(sub, node)
	}

	if in.constraints != nil {
		if ok, param, reason := in.constraints(req.Decl, sub); !ok {
			in.sink.Publish(diag.New(diag.GEN003, "generic",
				"generic constraint not satisfied for "+param+" instantiating "+mangled+": "+reason, pos).
				WithData("mangled", mangled).WithData("param", param))
			return nil
		}
	}

	// Cache before the caller re-enters the checker on the clone, so a
	// recursive reference inside the clone's own body resolves to the same
	// instantiation rather than looping.
	return cache.CacheInstantiation(mangled, clone)
}

// declSpan builds a zero-width span at the declaration's own node position,
// used as the primary span for depth/recursion diagnostics that have no
// single call-site to point at.
func declSpan(d *types.Declaration) ast.Span {
	if d == nil || d.Node == nil {
		return ast.Span{}
	}
	p := d.Node.Position()
	return ast.Span{Start: p, End: p}
}

// bindGenericClause walks the owning declaration's own generic clause in
// declared order, pairing each type/const parameter with its positional
// argument.
func bindGenericClause(sub *Substitution, owner *types.Declaration, args []Arg) {
	if owner.Generic == nil {
		return
	}
	i := 0
	for _, tp := range owner.Generic.TypeParams {
		if i >= len(args) {
			break
		}
		decl := &types.Declaration{Kind: types.KindGenericTypeParameter, Name: tp.Name, Node: tp}
		sub.Bind(decl, Binding{Type: args[i].Type}, false)
		i++
	}
	for _, cp := range owner.Generic.ConstParams {
		if i >= len(args) {
			break
		}
		decl := &types.Declaration{Kind: types.KindGenericConstParameter, Name: cp.Name, Node: cp}
		sub.Bind(decl, Binding{Const: args[i].Const}, false)
		i++
	}
}

// cloneDecl performs a shallow copy of the declaration record; the AST
// subtree underneath is deep-cloned separately by cloneNode so the
// original generic template is never mutated (spec.md §4.6 step 3:
// "clone... before substituting").
func cloneDecl(d *types.Declaration) *types.Declaration {
	c := *d
	c.Members = append([]*types.Declaration(nil), d.Members...)
	c.Node = cloneNode(d.Node)
	return &c
}

// cloneNode deep-clones the subset of AST node kinds a generic
// declaration's body can be (function/type/concept/extend), so
// substitution never mutates the shared template.
func cloneNode(n ast.Node) ast.Node {
	switch x := n.(type) {
	case *ast.FuncDecl:
		c := *x
		c.Params = clonedParams(x.Params)
		c.Body = cloneBlock(x.Body)
		return &c
	case *ast.TypeDecl:
		c := *x
		c.Fields = clonedFields(x.Fields)
		return &c
	case *ast.ConceptDecl:
		c := *x
		return &c
	case *ast.ExtendDecl:
		c := *x
		return &c
	default:
		return n
	}
}

func clonedParams(ps []*ast.Parameter) []*ast.Parameter {
	out := make([]*ast.Parameter, len(ps))
	for i, p := range ps {
		cp := *p
		out[i] = &cp
	}
	return out
}

func clonedFields(fs []*ast.Field) []*ast.Field {
	out := make([]*ast.Field, len(fs))
	for i, f := range fs {
		cf := *f
		out[i] = &cf
	}
	return out
}

func cloneBlock(b *ast.BlockExpr) *ast.BlockExpr {
	if b == nil {
		return nil
	}
	c := *b
	c.Stmts = append([]ast.Stmt(nil), b.Stmts...)
	return &c
}

// substituteDeclNode rewrites the syntactic type references inside a
// cloned function/type declaration's signature in place, using the
// AST-level Substitutor (spec.md §4.9).
func substituteDeclNode(sub *Substitution, n ast.Node) {
	s := NewSubstitutor(sub)
	switch x := n.(type) {
	case *ast.FuncDecl:
		for _, p := range x.Params {
			p.Type = s.Type(p.Type)
			if p.Default != nil {
				p.Default = s.Expr(p.Default)
			}
		}
		x.Return = s.Type(x.Return)
	case *ast.TypeDecl:
		for _, f := range x.Fields {
			f.Type = s.Type(f.Type)
		}
		for i, m := range x.Members {
			x.Members[i] = s.Type(m)
		}
		x.RangeElem = s.Type(x.RangeElem)
		x.AliasTarget = s.Type(x.AliasTarget)
	}
}
