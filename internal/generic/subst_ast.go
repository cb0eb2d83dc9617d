package generic

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// Substitutor walks a cloned AST subtree, replacing every occurrence of a
// generic-parameter identifier with its bound value or type (spec.md
// §4.9). It operates name-to-name (by the owning generic clause's
// parameter names) rather than through the scope graph, since a cloned
// subtree has not yet been re-entered by the checker when substitution
// runs (spec.md §4.6 step 3 happens before step 6 "re-enter the clone
// through the normal checker").
type Substitutor struct {
	byName map[string]Binding
}

// NewSubstitutor builds a name-indexed view of sub's bindings.
func NewSubstitutor(sub *Substitution) *Substitutor {
	s := &Substitutor{byName: make(map[string]Binding, len(sub.Bindings))}
	for decl, b := range sub.Bindings {
		s.byName[decl.Name] = b
	}
	return s
}

// Type rewrites a syntactic type reference, replacing a bare name that
// matches a bound generic-type-parameter with a ResolvedTypeExpr, and
// otherwise recursing structurally.
func (s *Substitutor) Type(te ast.TypeExpr) ast.TypeExpr {
	if te == nil {
		return nil
	}
	switch t := te.(type) {
	case *ast.NamedTypeExpr:
		if id, ok := t.Path.(*ast.Identifier); ok {
			if b, ok := s.byName[id.Name]; ok && b.Type != nil && len(t.Args) == 0 {
				return &ast.ResolvedTypeExpr{Resolved: b.Type, Pos: t.Pos}
			}
		}
		args := make([]ast.TypeExpr, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Type(a)
		}
		return &ast.NamedTypeExpr{Path: t.Path, Args: args, Pos: t.Pos}
	case *ast.PointerTypeExpr:
		return &ast.PointerTypeExpr{Elem: s.Type(t.Elem), Mutable: t.Mutable, Pos: t.Pos}
	case *ast.SliceTypeExpr:
		return &ast.SliceTypeExpr{Elem: s.Type(t.Elem), Pos: t.Pos}
	case *ast.ArrayTypeExpr:
		return &ast.ArrayTypeExpr{Elem: s.Type(t.Elem), Size: s.Expr(t.Size), Pos: t.Pos}
	case *ast.TupleTypeExpr:
		elems := make([]ast.TypeExpr, len(t.Elements))
		for i, e := range t.Elements {
			elems[i] = s.Type(e)
		}
		return &ast.TupleTypeExpr{Elements: elems, Pos: t.Pos}
	case *ast.FuncTypeExpr:
		params := make([]ast.TypeExpr, len(t.Params))
		for i, p := range t.Params {
			params[i] = s.Type(p)
		}
		return &ast.FuncTypeExpr{Params: params, Return: s.Type(t.Return), Pos: t.Pos}
	case *ast.RangeTypeExpr:
		return &ast.RangeTypeExpr{Elem: s.Type(t.Elem), Open: t.Open, Pos: t.Pos}
	default:
		return te
	}
}

// Expr rewrites an expression subtree, replacing a bare identifier that
// matches a bound generic-const-parameter with a ResolvedExpr, and
// otherwise recursing structurally over the node kinds that can contain
// such a reference (array sizes, binary/call arguments).
func (s *Substitutor) Expr(e ast.Expr) ast.Expr {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case *ast.Identifier:
		if b, ok := s.byName[x.Name]; ok && b.Const != nil {
			return &ast.ResolvedExpr{Resolved: b.Const, Pos: x.Pos}
		}
		return x
	case *ast.BinaryExpr:
		return &ast.BinaryExpr{Op: x.Op, Left: s.Expr(x.Left), Right: s.Expr(x.Right), Pos: x.Pos}
	case *ast.UnaryExpr:
		return &ast.UnaryExpr{Op: x.Op, Operand: s.Expr(x.Operand), Pos: x.Pos}
	case *ast.CallExpr:
		args := make([]ast.Expr, len(x.Args))
		for i, a := range x.Args {
			args[i] = s.Expr(a)
		}
		return &ast.CallExpr{Callee: x.Callee, Args: args, FieldNames: x.FieldNames, GenericArgs: x.GenericArgs, Pos: x.Pos}
	case *ast.AsExpr:
		return &ast.AsExpr{Operand: s.Expr(x.Operand), Target: s.Type(x.Target), Pos: x.Pos}
	default:
		return e
	}
}

// ResolvedType extracts the opaque resolved type payload from a
// ResolvedTypeExpr, or nil if te is not one.
func ResolvedType(te ast.TypeExpr) types.Type {
	r, ok := te.(*ast.ResolvedTypeExpr)
	if !ok {
		return nil
	}
	t, _ := r.Resolved.(types.Type)
	return t
}

// ResolvedConst extracts the opaque resolved constant payload from a
// ResolvedExpr, or nil if e is not one.
func ResolvedConst(e ast.Expr) *types.ConstVal {
	r, ok := e.(*ast.ResolvedExpr)
	if !ok {
		return nil
	}
	c, _ := r.Resolved.(*types.ConstVal)
	return c
}
