package generic

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

// Matcher deduces generic-type-parameter bindings by unifying a call's
// argument types against its parameter type shapes (spec.md §4.8), so an
// explicit `f!(T)(args)` instantiation is needed only when deduction is
// ambiguous or impossible.
//
// Grounded on other_examples/…malphas-lang…checker.go's `inferTypeArgs`
// (walk parameter/argument pairs, recording a binding whenever a bare
// type-parameter reference is met) and other_examples/…mafm-poly…infer.go's
// structural unification, adapted from their fresh-type-variable scheme to
// this spec's closed set of declared generic-type-parameters.
type Matcher struct {
	typeParams        map[*types.Declaration]bool
	bindings          map[*types.Declaration]types.Type
	constParamsByName map[string]*types.Declaration
	constBindings     map[*types.Declaration]*types.ConstVal
}

// NewMatcher prepares a deduction pass against the given set of
// generic-type-parameter and generic-const-parameter declarations (a
// function/type's own clause). constParams is indexed by name, since a
// parametric array size (`[T; N]`) is written as a bare identifier
// expression in the parameter type, not yet resolved to a declaration.
func NewMatcher(typeParams, constParams []*types.Declaration) *Matcher {
	m := &Matcher{
		typeParams:        make(map[*types.Declaration]bool, len(typeParams)),
		bindings:          make(map[*types.Declaration]types.Type),
		constParamsByName: make(map[string]*types.Declaration, len(constParams)),
		constBindings:     make(map[*types.Declaration]*types.ConstVal),
	}
	for _, d := range typeParams {
		m.typeParams[d] = true
	}
	for _, d := range constParams {
		m.constParamsByName[d.Name] = d
	}
	return m
}

// Unify attempts to deduce bindings by matching argType's shape against
// paramType's shape. It returns false when a compound parameter shape
// (pointer, slice, array, tuple, function, record, variant, range) does
// not match the argument's, or when a parameter would be bound to two
// different types. A non-generic leaf parameter type (bool, integer, ...)
// is accepted without comparing it to the argument.
func (m *Matcher) Unify(paramType, argType types.Type) bool {
	if paramType == nil || argType == nil {
		return false
	}
	if g, ok := paramType.(*types.TGeneric); ok && m.typeParams[g.Decl] {
		if existing, ok := m.bindings[g.Decl]; ok {
			return existing.Equal(argType)
		}
		m.bindings[g.Decl] = argType
		return true
	}
	switch pt := paramType.(type) {
	case *types.TPointer:
		at, ok := argType.(*types.TPointer)
		return ok && pt.Mutable == at.Mutable && m.Unify(pt.Elem, at.Elem)
	case *types.TSlice:
		at, ok := argType.(*types.TSlice)
		return ok && m.Unify(pt.Elem, at.Elem)
	case *types.TArray:
		at, ok := argType.(*types.TArray)
		if !ok {
			return false
		}
		if pt.Size < 0 {
			if !m.bindConstSize(pt.SizeExpr, at.Size) {
				return false
			}
		} else if pt.Size != at.Size {
			return false
		}
		return m.Unify(pt.Elem, at.Elem)
	case *types.TTuple:
		at, ok := argType.(*types.TTuple)
		if !ok || len(at.Elements) != len(pt.Elements) {
			return false
		}
		for i := range pt.Elements {
			if !m.Unify(pt.Elements[i], at.Elements[i]) {
				return false
			}
		}
		return true
	case *types.TFunction:
		at, ok := argType.(*types.TFunction)
		if !ok || len(at.Params) != len(pt.Params) {
			return false
		}
		for i := range pt.Params {
			if !m.Unify(pt.Params[i], at.Params[i]) {
				return false
			}
		}
		return m.Unify(pt.Return, at.Return)
	case *types.TRecord:
		at, ok := argType.(*types.TRecord)
		if !ok {
			return false
		}
		if pt.Decl != nil || at.Decl != nil {
			if pt.Decl != at.Decl {
				return false
			}
			return m.unifyArgs(pt.Args, at.Args)
		}
		if len(pt.Fields) != len(at.Fields) {
			return false
		}
		for i := range pt.Fields {
			if pt.Fields[i].Name != at.Fields[i].Name || !m.Unify(pt.Fields[i].Type, at.Fields[i].Type) {
				return false
			}
		}
		return true
	case *types.TVariant:
		at, ok := argType.(*types.TVariant)
		if !ok {
			return false
		}
		if pt.Decl != nil || at.Decl != nil {
			if pt.Decl != at.Decl {
				return false
			}
			return m.unifyArgs(pt.Args, at.Args)
		}
		if len(pt.Members) != len(at.Members) {
			return false
		}
		for i := range pt.Members {
			if !m.Unify(pt.Members[i], at.Members[i]) {
				return false
			}
		}
		return true
	case *types.TRange:
		at, ok := argType.(*types.TRange)
		if !ok {
			return false
		}
		if pt.Decl != nil || at.Decl != nil {
			return pt.Decl == at.Decl && m.unifyArgs(pt.Args, at.Args)
		}
		return pt.Open == at.Open && m.Unify(pt.Elem, at.Elem)
	default:
		// Non-generic leaf categories (bool, integer, float, char, string,
		// behaviour, workspace, unknown): deduction contributes nothing,
		// compatibility is the caller's (expression checker's) concern.
		return true
	}
}

// bindConstSize binds the generic-const parameter an unresolved array
// size expression refers to (spec.md §4.8: "generic-const references
// inside [T; N]"), to the concrete size supplied by the argument array.
// It reports no mismatch (true) when sizeExpr does not name a governing
// const parameter at all (size is parametric for some other reason the
// matcher does not track).
func (m *Matcher) bindConstSize(sizeExpr ast.Expr, size int) bool {
	id, ok := sizeExpr.(*ast.Identifier)
	if !ok {
		return true
	}
	decl, ok := m.constParamsByName[id.Name]
	if !ok {
		return true
	}
	cv := &types.ConstVal{Kind: types.CatInteger, Int: int64(size)}
	if existing, bound := m.constBindings[decl]; bound {
		return existing.Int == cv.Int
	}
	m.constBindings[decl] = cv
	return true
}

func (m *Matcher) unifyArgs(param, arg map[*types.Declaration]types.Type) bool {
	for decl, pt := range param {
		at, ok := arg[decl]
		if !ok {
			continue
		}
		if !m.Unify(pt, at) {
			return false
		}
	}
	return true
}

// Bindings returns the raw deduced map, letting the caller decide how to
// report any type parameter left unbound (spec.md §4.8: "a type parameter
// that cannot be deduced from any argument is a checker error unless an
// explicit generic argument supplies it").
func (m *Matcher) Bindings() map[*types.Declaration]types.Type {
	return m.bindings
}

// Missing returns the subset of typeParams with no deduced binding, in
// declaration order.
func (m *Matcher) Missing(order []*types.Declaration) []*types.Declaration {
	var missing []*types.Declaration
	for _, d := range order {
		if _, ok := m.bindings[d]; !ok {
			missing = append(missing, d)
		}
	}
	return missing
}

// ConstBindings returns the raw deduced const-parameter map (spec.md
// §4.8), mirroring Bindings for type parameters.
func (m *Matcher) ConstBindings() map[*types.Declaration]*types.ConstVal {
	return m.constBindings
}

// MissingConst returns the subset of constParams with no deduced
// binding, in declaration order.
func (m *Matcher) MissingConst(order []*types.Declaration) []*types.Declaration {
	var missing []*types.Declaration
	for _, d := range order {
		if _, ok := m.constBindings[d]; !ok {
			missing = append(missing, d)
		}
	}
	return missing
}
