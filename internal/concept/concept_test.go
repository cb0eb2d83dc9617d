package concept

import (
	"testing"

	"github.com/sunholo/ailang/internal/generic"
	"github.com/sunholo/ailang/internal/types"
)

func addableConceptDecl() *types.Declaration {
	tparam := &types.Declaration{Kind: types.KindGenericTypeParameter, Name: "T"}
	tparam.Annotation.Type = &types.TGeneric{Decl: tparam}

	plus := &types.Declaration{Kind: types.KindFunction, Name: "plus"}
	plus.Annotation.Type = &types.TFunction{
		Params: []types.Type{tparam.Annotation.Type, tparam.Annotation.Type},
		Return: tparam.Annotation.Type,
	}

	concept := &types.Declaration{Kind: types.KindConcept, Name: "Addable"}
	concept.Members = []*types.Declaration{tparam, plus}
	return concept
}

func TestRequirementsSubstitutesBoundTypeParameter(t *testing.T) {
	concept := addableConceptDecl()
	sub := generic.NewSubstitution(nil)
	for _, m := range concept.Members {
		if m.Kind == types.KindGenericTypeParameter {
			sub.Bind(m, generic.Binding{Type: types.I32}, false)
		}
	}

	reqs := Requirements(concept, sub)
	if len(reqs) != 1 {
		t.Fatalf("expected exactly one function requirement (the type-parameter member is filtered out), got %+v", reqs)
	}
	if reqs[0].Name != "plus" {
		t.Fatalf("expected requirement named plus, got %q", reqs[0].Name)
	}
	if !reqs[0].Sig.Params[0].Equal(types.I32) || !reqs[0].Sig.Return.Equal(types.I32) {
		t.Fatalf("expected plus's signature to be substituted to (i32, i32) i32, got %s", reqs[0].Sig)
	}
}

func TestEngineTestSucceedsWhenACandidateMatches(t *testing.T) {
	candidate := &types.Declaration{Kind: types.KindFunction, Name: "plus"}
	candidate.Annotation.Type = &types.TFunction{Params: []types.Type{types.I32, types.I32}, Return: types.I32}

	engine := NewEngine(func(name string) []*types.Declaration {
		if name == "plus" {
			return []*types.Declaration{candidate}
		}
		return nil
	})

	reqs := []Prototype{{Name: "plus", Sig: &types.TFunction{Params: []types.Type{types.I32, types.I32}, Return: types.I32}}}
	result := engine.Test(reqs)
	if !result.OK {
		t.Fatalf("expected the concept to be satisfied, got missing %+v", result.Missing)
	}
}

func TestEngineTestFailsWhenNoCandidateMatchesSignature(t *testing.T) {
	candidate := &types.Declaration{Kind: types.KindFunction, Name: "plus"}
	candidate.Annotation.Type = &types.TFunction{Params: []types.Type{types.String, types.String}, Return: types.String}

	engine := NewEngine(func(name string) []*types.Declaration {
		return []*types.Declaration{candidate}
	})

	reqs := []Prototype{{Name: "plus", Sig: &types.TFunction{Params: []types.Type{types.I32, types.I32}, Return: types.I32}}}
	result := engine.Test(reqs)
	if result.OK {
		t.Fatalf("expected the concept to fail: candidate's signature is over string, not i32")
	}
	if len(result.Missing) != 1 || result.Missing[0].Name != "plus" {
		t.Fatalf("expected plus reported missing, got %+v", result.Missing)
	}
}

func TestEngineTestDistinguishesPropertiesFromFunctions(t *testing.T) {
	candidate := &types.Declaration{Kind: types.KindFunction, Name: "describe"}
	candidate.Annotation.Type = &types.TFunction{Return: types.String}

	engine := NewEngine(func(name string) []*types.Declaration {
		return []*types.Declaration{candidate}
	})

	// The requirement wants a property, but the only candidate is an
	// ordinary function of the same name and signature.
	reqs := []Prototype{{Name: "describe", Sig: &types.TFunction{Return: types.String}, IsProperty: true}}
	result := engine.Test(reqs)
	if result.OK {
		t.Fatalf("expected a property requirement not to be satisfied by a same-named ordinary function")
	}
}

func TestIsConcreteRejectsUnresolvedGenericParameter(t *testing.T) {
	tparam := &types.Declaration{Kind: types.KindGenericTypeParameter, Name: "T"}
	if IsConcrete([]generic.Arg{{Type: &types.TGeneric{Decl: tparam}}}) {
		t.Fatalf("a bare generic parameter reference must not be concrete")
	}
	if !IsConcrete([]generic.Arg{{Type: types.I32}}) {
		t.Fatalf("i32 should be concrete")
	}
}

func TestIsConcreteRecursesIntoCompoundTypes(t *testing.T) {
	tparam := &types.Declaration{Kind: types.KindGenericTypeParameter, Name: "T"}
	nested := &types.TSlice{Elem: &types.TGeneric{Decl: tparam}}
	if IsConcrete([]generic.Arg{{Type: nested}}) {
		t.Fatalf("a slice of an unresolved generic parameter must not be concrete")
	}
	if !IsConcrete([]generic.Arg{{Type: &types.TSlice{Elem: types.I32}}}) {
		t.Fatalf("a slice of i32 should be concrete")
	}
}
