// Package concept implements the constraint (concept) engine of spec.md
// §4.5/§4.6: given a concept's required prototypes and a candidate type's
// bound generic arguments, decide whether a matching function or property
// exists for every prototype — structurally analogous to typeclass/
// dictionary coherence checking.
//
// Grounded directly on the teacher's internal/types/instances.go
// (InstanceEnv: coherence-checked lookup keyed by "ClassName:NormalizedType")
// and dictionaries.go (DictionaryRegistry: per-method lookup keyed by
// namespace/class/type/method), generalized from the teacher's fixed
// built-in classes (Num, Eq, Ord) and registered dictionaries to this
// spec's user-declared `concept` blocks and structural prototype matching
// against ordinary function/property declarations (no dictionary-passing
// at this layer; spec.md places code generation out of scope).
package concept

import (
	"github.com/sunholo/ailang/internal/generic"
	"github.com/sunholo/ailang/internal/types"
)

// Prototype is one required signature from a concept body, with its
// generic-parameter references already substituted for the candidate
// argument(s) being tested (spec.md §4.5 "concept declarations").
type Prototype struct {
	Name       string
	Sig        *types.TFunction
	IsProperty bool
}

// Requirements substitutes every prototype in conceptDecl's body through
// sub, yielding the concrete signatures a candidate argument set must
// satisfy.
func Requirements(conceptDecl *types.Declaration, sub *generic.Substitution) []Prototype {
	out := make([]Prototype, 0, len(conceptDecl.Members))
	for _, m := range conceptDecl.Members {
		fn, ok := m.Annotation.Type.(*types.TFunction)
		if !ok {
			continue
		}
		out = append(out, Prototype{
			Name:       m.Name,
			Sig:        sub.ApplyType(fn).(*types.TFunction),
			IsProperty: m.Kind == types.KindProperty,
		})
	}
	return out
}

// Lookup resolves candidate functions/properties visible to a concept
// test by name; the caller supplies it backed by the scope graph (spec.md
// §4.5: "searched the same way an ordinary call would resolve its
// callee").
type Lookup func(name string) []*types.Declaration

// Engine runs concept tests and owns no state itself; per-workspace
// caching of concrete results lives on workspace.Workspace (spec.md §9
// Open Question: "cache only concept tests whose arguments are fully
// concrete").
type Engine struct {
	lookup Lookup
}

// NewEngine creates a concept engine resolving candidate prototypes via
// lookup.
func NewEngine(lookup Lookup) *Engine {
	return &Engine{lookup: lookup}
}

// Result is the outcome of testing one concept against one argument set:
// whether every prototype was matched, and which (if any) were not.
type Result struct {
	OK      bool
	Missing []Prototype
}

// Test checks every requirement against the candidates Lookup returns for
// its name, succeeding only if every requirement finds an exact
// signature match (spec.md §4.5: "a concept holds for a set of type
// arguments iff every required prototype has a matching declaration").
func (e *Engine) Test(reqs []Prototype) Result {
	var missing []Prototype
	for _, req := range reqs {
		if !e.satisfies(req) {
			missing = append(missing, req)
		}
	}
	return Result{OK: len(missing) == 0, Missing: missing}
}

func (e *Engine) satisfies(req Prototype) bool {
	for _, cand := range e.lookup(req.Name) {
		if (cand.Kind == types.KindProperty) != req.IsProperty {
			continue
		}
		sig, ok := cand.Annotation.Type.(*types.TFunction)
		if !ok {
			continue
		}
		if sig.Equal(req.Sig) {
			return true
		}
	}
	return false
}

// IsConcrete reports whether every argument in args is free of unresolved
// generic-parameter references, the gate spec.md §9 draws around concept-
// result caching.
func IsConcrete(args []generic.Arg) bool {
	for _, a := range args {
		if a.Type != nil && !typeIsConcrete(a.Type) {
			return false
		}
	}
	return true
}

func typeIsConcrete(t types.Type) bool {
	switch tt := t.(type) {
	case *types.TGeneric:
		return false
	case *types.TPointer:
		return typeIsConcrete(tt.Elem)
	case *types.TSlice:
		return typeIsConcrete(tt.Elem)
	case *types.TArray:
		return tt.Size >= 0 && typeIsConcrete(tt.Elem)
	case *types.TTuple:
		for _, e := range tt.Elements {
			if !typeIsConcrete(e) {
				return false
			}
		}
		return true
	case *types.TFunction:
		for _, p := range tt.Params {
			if !typeIsConcrete(p) {
				return false
			}
		}
		return typeIsConcrete(tt.Return)
	case *types.TRecord:
		for _, a := range tt.Args {
			if !typeIsConcrete(a) {
				return false
			}
		}
		return true
	case *types.TVariant:
		for _, a := range tt.Args {
			if !typeIsConcrete(a) {
				return false
			}
		}
		return true
	case *types.TRange:
		for _, a := range tt.Args {
			if !typeIsConcrete(a) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
