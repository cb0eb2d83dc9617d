package generic

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// Binding is one generic-parameter's substitution target: either a
// concrete Type or a constant Value (spec.md §3 "Substitution": "a finite
// map from generic-parameter declarations to either a concrete type or a
// constant value").
type Binding struct {
	Type  types.Type
	Const *types.ConstVal
}

// Substitution is a finite map from generic-parameter declarations to
// bindings, paired with the AST subtree it applies to (spec.md §3).
type Substitution struct {
	Bindings map[*types.Declaration]Binding
	Subtree  ast.Node
}

// NewSubstitution creates an empty substitution over subtree.
func NewSubstitution(subtree ast.Node) *Substitution {
	return &Substitution{Bindings: make(map[*types.Declaration]Binding), Subtree: subtree}
}

// IsIdentity reports whether s binds nothing, i.e. applying it is the
// identity transform (spec.md §8 "Substitution with the identity map is
// the identity on the AST").
func (s *Substitution) IsIdentity() bool { return len(s.Bindings) == 0 }

// Bind records decl ↦ binding, rejecting an inconsistent re-binding
// unless allowDuplication is set (spec.md §4.8: "Duplicate bindings to
// inconsistent values are rejected unless flagged as 'duplication'").
func (s *Substitution) Bind(decl *types.Declaration, b Binding, allowDuplication bool) bool {
	if existing, ok := s.Bindings[decl]; ok {
		if allowDuplication {
			return true
		}
		return bindingEqual(existing, b)
	}
	s.Bindings[decl] = b
	return true
}

func bindingEqual(a, b Binding) bool {
	if a.Type != nil && b.Type != nil {
		return a.Type.Equal(b.Type)
	}
	if a.Const != nil && b.Const != nil {
		return a.Const.String() == b.Const.String()
	}
	return false
}

// ApplyType performs the structural rewrite spec.md §4.9 describes:
// pointer, array, slice, tuple, record, variant, function, and range all
// recurse, substituting each TGeneric reference with its bound
// type/constant, yielding a new structurally equal type whose parametric
// size/constant fields are resolved.
func (s *Substitution) ApplyType(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	switch tt := t.(type) {
	case *types.TGeneric:
		if b, ok := s.Bindings[tt.Decl]; ok && b.Type != nil {
			return b.Type
		}
		return tt
	case *types.TPointer:
		return &types.TPointer{Elem: s.ApplyType(tt.Elem), Mutable: tt.Mutable}
	case *types.TArray:
		size, sizeExpr := s.resolveSize(tt)
		return &types.TArray{Elem: s.ApplyType(tt.Elem), Size: size, SizeExpr: sizeExpr}
	case *types.TSlice:
		return &types.TSlice{Elem: s.ApplyType(tt.Elem)}
	case *types.TTuple:
		elems := make([]types.Type, len(tt.Elements))
		for i, e := range tt.Elements {
			elems[i] = s.ApplyType(e)
		}
		return &types.TTuple{Elements: elems}
	case *types.TFunction:
		params := make([]types.Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = s.ApplyType(p)
		}
		return &types.TFunction{Params: params, Return: s.ApplyType(tt.Return), Variadic: tt.Variadic}
	case *types.TRecord:
		if tt.Decl != nil {
			return &types.TRecord{Name: tt.Name, Decl: tt.Decl, Fields: tt.Fields, Args: s.mergeArgs(tt.Args)}
		}
		fields := make([]types.RecordField, len(tt.Fields))
		for i, f := range tt.Fields {
			fields[i] = types.RecordField{Name: f.Name, Type: s.ApplyType(f.Type)}
		}
		return &types.TRecord{Fields: fields}
	case *types.TVariant:
		if tt.Decl != nil {
			return &types.TVariant{Name: tt.Name, Decl: tt.Decl, Members: tt.Members, Args: s.mergeArgs(tt.Args)}
		}
		members := make([]types.Type, len(tt.Members))
		for i, m := range tt.Members {
			members[i] = s.ApplyType(m)
		}
		return &types.TVariant{Members: members}
	case *types.TRange:
		if tt.Decl != nil {
			return &types.TRange{Name: tt.Name, Decl: tt.Decl, Elem: tt.Elem, Open: tt.Open, Args: s.mergeArgs(tt.Args)}
		}
		return &types.TRange{Elem: s.ApplyType(tt.Elem), Open: tt.Open}
	default:
		return t
	}
}

func (s *Substitution) mergeArgs(existing map[*types.Declaration]types.Type) map[*types.Declaration]types.Type {
	out := make(map[*types.Declaration]types.Type, len(existing))
	for d, t := range existing {
		out[d] = s.ApplyType(t)
	}
	for d, b := range s.Bindings {
		if b.Type != nil {
			if _, ok := out[d]; !ok {
				out[d] = b.Type
			}
		}
	}
	return out
}

// resolveSize substitutes a parametric array size (Size < 0) by looking
// up the generic-const declaration tt.SizeExpr refers to in s.Bindings
// (spec.md §4.9: "a new structurally equal type whose parametric
// size/constant fields are resolved"); concrete sizes, and identifiers
// that do not resolve against this substitution, pass through unchanged.
func (s *Substitution) resolveSize(tt *types.TArray) (int, ast.Expr) {
	if tt.Size >= 0 {
		return tt.Size, tt.SizeExpr
	}
	id, ok := tt.SizeExpr.(*ast.Identifier)
	if !ok {
		return tt.Size, tt.SizeExpr
	}
	for decl, b := range s.Bindings {
		if decl.Name == id.Name && b.Const != nil {
			return int(b.Const.Int), nil
		}
	}
	return tt.Size, tt.SizeExpr
}
