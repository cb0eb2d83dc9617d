package check

import (
	"fmt"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/concept"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/generic"
	"github.com/sunholo/ailang/internal/scope"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/workspace"
)

// pass1RegisterNames walks every top-level declaration in ws and defines
// it in the workspace's root environment, without yet resolving any type
// reference (spec.md §2 pass 1: "register top-level names").
func (c *Checker) pass1RegisterNames(ws *workspace.Workspace) {
	root := c.Graph.Begin(ws)
	ws.RootEnv = ws
	root.MarkKind(scope.KindWorkspace)
	defer c.Graph.End()

	for _, su := range ws.Sources {
		for _, stmt := range su.Decls {
			c.registerStmt(root, ws, stmt)
		}
	}
}

func (c *Checker) registerStmt(env *scope.Environment, ws *workspace.Workspace, stmt ast.Stmt) {
	switch d := stmt.(type) {
	case *ast.TypeDecl:
		kind := typeDeclKind(d.Kind)
		decl := &types.Declaration{Kind: kind, Name: d.Name, Node: d, Generic: d.Generic, Workspace: ws.Name}
		existing := env.Define(scope.Types, d.Name, decl)
		if existing == decl {
			ws.TypeDecls = append(ws.TypeDecls, decl)
		} else {
			c.reportf(diag.CHK002, "decl", d.Pos, "type %q already declared in this workspace", d.Name)
		}

	case *ast.ExtendDecl:
		decl := &types.Declaration{Kind: types.KindExtend, Name: "extend " + d.Target.String(), Node: d, Workspace: ws.Name}
		ws.TypeDecls = append(ws.TypeDecls, decl)

	case *ast.FuncDecl:
		kind := types.KindFunction
		if d.IsProperty {
			kind = types.KindProperty
		}
		decl := &types.Declaration{Kind: kind, Name: d.Name, Node: d, Generic: d.Generic, Hidden: d.Hidden, Workspace: ws.Name}
		existing := env.Define(scope.Functions, d.Name, decl)
		if existing == decl {
			ws.Funcs = append(ws.Funcs, decl)
			if d.Name == "start" {
				if c.Comp.EntryPoint != nil {
					c.reportf(diag.CHK008, "decl", d.Pos, "duplicate entry point %q", d.Name)
				} else {
					c.Comp.EntryPoint = decl
				}
			}
		} else {
			c.reportf(diag.CHK002, "decl", d.Pos, "function %q already declared in this workspace", d.Name)
		}

	case *ast.ConceptDecl:
		decl := &types.Declaration{Kind: types.KindConcept, Name: d.Name, Node: d, Generic: d.Generic, Workspace: ws.Name}
		existing := env.Define(scope.Concepts, d.Name, decl)
		if existing != decl {
			c.reportf(diag.CHK002, "decl", d.Pos, "concept %q already declared in this workspace", d.Name)
		}

	case *ast.ValDecl:
		kind := types.KindVar
		if !d.Mutable {
			kind = types.KindConst
		}
		if len(d.Names) > 1 {
			if d.Mutable {
				kind = types.KindVarTupled
			} else {
				kind = types.KindConstTupled
			}
		}
		for _, name := range d.Names {
			decl := &types.Declaration{Kind: kind, Name: name, Node: d, Workspace: ws.Name}
			env.Define(scope.Values, name, decl)
			ws.Globals = append(ws.Globals, decl)
		}

	case *ast.ConstDecl:
		decl := &types.Declaration{Kind: types.KindConst, Name: d.Name, Node: d, Workspace: ws.Name}
		env.Define(scope.Values, d.Name, decl)
		ws.Globals = append(ws.Globals, decl)

	case *ast.TestDecl:
		decl := &types.Declaration{Kind: types.KindTest, Name: d.Name, Node: d, Workspace: ws.Name}
		ws.Tests = append(ws.Tests, decl)

	case *ast.ExternDecl:
		decl := &types.Declaration{Kind: types.KindExtern, Name: d.Name, Node: d, Workspace: ws.Name}
		existing := env.Define(scope.Functions, d.Name, decl)
		if existing == decl {
			ws.Funcs = append(ws.Funcs, decl)
		}
	}
}

func typeDeclKind(k ast.TypeKind) types.Kind {
	switch k {
	case ast.TypeRecord:
		return types.KindTypeRecord
	case ast.TypeVariant:
		return types.KindTypeVariant
	case ast.TypeRange:
		return types.KindTypeRange
	case ast.TypeAlias:
		return types.KindTypeAlias
	case ast.TypeBehaviour:
		return types.KindTypeBehaviour
	default:
		return types.KindTypeRecord
	}
}

// pass2VisitHeaders resolves behaviour lists on extend/type-behaviour
// declarations and concept prototype signatures, so pass 3 can rely on
// every behaviour/concept name already being a Declaration rather than a
// bare TypeExpr (spec.md §2 pass 2).
func (c *Checker) pass2VisitHeaders(ws *workspace.Workspace) {
	env := c.Graph.EnvFor(ws)
	c.Graph.Begin(ws)
	defer c.Graph.End()

	for _, decl := range ws.TypeDecls {
		switch d := decl.Node.(type) {
		case *ast.TypeDecl:
			if d.Kind == ast.TypeBehaviour {
				for _, proto := range d.Prototypes {
					c.registerPrototype(decl, proto)
				}
			}
		case *ast.ExtendDecl:
			for _, b := range d.Behaviours {
				if bd := c.lookupBehaviour(env, b); bd != nil {
					decl.Behaviours = append(decl.Behaviours, bd)
				}
			}
		}
	}

	for _, d := range allConceptDecls(env) {
		cd, _ := d.Node.(*ast.ConceptDecl)
		if cd == nil {
			continue
		}
		c.Graph.Begin(cd)
		cEnv := c.Graph.Current()
		var genericMembers []*types.Declaration
		if cd.Generic != nil {
			genericMembers = c.defineGenericClause(cEnv, cd.Generic)
		}
		for _, proto := range cd.Prototypes {
			kind := types.KindFunction
			if proto.IsProperty {
				kind = types.KindProperty
			}
			params := make([]types.Type, 0, len(proto.Params))
			for _, pt := range proto.Params {
				params = append(params, c.resolveTypeExpr(cEnv, pt))
			}
			ret := c.resolveTypeExpr(cEnv, proto.Return)
			if ret == nil {
				ret = types.Unknown
			}
			member := &types.Declaration{Kind: kind, Name: proto.Name, Node: proto, Parent: d, Workspace: ws.Name}
			member.Annotation.Type = &types.TFunction{Params: params, Return: ret}
			d.Members = append(d.Members, member)
		}
		d.Members = append(d.Members, genericMembers...)
		c.Graph.End()
	}
}

func (c *Checker) registerPrototype(owner *types.Declaration, proto *ast.FuncDecl) {
	kind := types.KindFunction
	if proto.IsProperty {
		kind = types.KindProperty
	}
	member := &types.Declaration{Kind: kind, Name: proto.Name, Node: proto, Parent: owner, Workspace: owner.Workspace}
	owner.Members = append(owner.Members, member)
}

func (c *Checker) lookupBehaviour(env *scope.Environment, te ast.TypeExpr) *types.Declaration {
	named, ok := te.(*ast.NamedTypeExpr)
	if !ok {
		return nil
	}
	name := ast.Last(named.Path)
	if d, ok := env.Lookup(scope.Types, name, true); ok {
		return d
	}
	return nil
}

func allConceptDecls(env *scope.Environment) []*types.Declaration {
	var out []*types.Declaration
	for _, name := range env.AllSymbols() {
		if d, ok := env.Lookup(scope.Concepts, name, false); ok {
			out = append(out, d)
		}
	}
	return out
}

// lookupConstraint resolves a generic type parameter's constraint
// TypeExpr to the concept or behaviour declaration it names, trying the
// concept namespace first since concept constraints are the common case
// (spec.md §4.6: "T: Addable" constrains T by a concept; "T: Drawable"
// may equally name a behaviour).
func lookupConstraint(env *scope.Environment, te ast.TypeExpr) *types.Declaration {
	named, ok := te.(*ast.NamedTypeExpr)
	if !ok {
		return nil
	}
	name := ast.Last(named.Path)
	if d, ok := env.Lookup(scope.Concepts, name, true); ok {
		return d
	}
	if d, ok := env.Lookup(scope.Types, name, true); ok {
		return d
	}
	return nil
}

// boundTypeFor finds the concrete type sub binds a same-named generic
// type parameter to. bindGenericClause constructs a fresh *types.Declaration
// per instantiation request (rather than reusing the owner's own
// defineGenericClause declarations), so matching by name is the only
// reliable way to recover the binding here.
func boundTypeFor(sub *generic.Substitution, name string) types.Type {
	for decl, b := range sub.Bindings {
		if decl.Name == name && b.Type != nil {
			return b.Type
		}
	}
	return nil
}

// checkGenericConstraints is wired into generic.Instantiator as its
// ConstraintChecker (spec.md §4.6 step 4): for every type parameter of
// decl's own generic clause that declares a concept/behaviour constraint,
// verify it holds for the type sub binds that parameter to.
func (c *Checker) checkGenericConstraints(decl *types.Declaration, sub *generic.Substitution) (bool, string, string) {
	if decl.Generic == nil {
		return true, "", ""
	}
	env := c.Graph.Current()
	for _, tp := range decl.Generic.TypeParams {
		if tp.Constraint == nil {
			continue
		}
		bound := boundTypeFor(sub, tp.Name)
		if bound == nil {
			continue
		}
		cd := lookupConstraint(env, tp.Constraint)
		if cd == nil {
			continue // an unresolved constraint name is reported elsewhere (RES001)
		}
		if cd.Kind == types.KindConcept {
			if ok, reason := c.satisfiesConcept(env, cd, bound); !ok {
				return false, tp.Name, reason
			}
			continue
		}
		if !types.Implements(bound, cd) {
			return false, tp.Name, fmt.Sprintf("%s does not implement %s", bound, cd.Name)
		}
	}
	return true, "", ""
}

// satisfiesConcept tests a concept's required prototypes against a bound
// type by substituting the concept's own type parameter (the first
// KindGenericTypeParameter member defineGenericClause registered for it)
// with bound, then running the concept engine the same way
// checkBehaviourConformance does for behaviours.
//
// A fully concrete application is looked up in and recorded to the
// workspace's concept cache first (spec.md §9 Open Question 3: "only
// fully concrete applications should ever reach this cache"); a
// partially-applied bound type is recomputed every time rather than
// risk caching a result that depends on a still-unresolved parameter.
func (c *Checker) satisfiesConcept(env *scope.Environment, cd *types.Declaration, bound types.Type) (bool, string) {
	concrete := concept.IsConcrete([]generic.Arg{{Type: bound}})
	var mangled string
	if concrete && c.curWS != nil {
		mangled = generic.Mangle(cd.Name, []generic.Arg{{Type: bound}})
		if holds, cached := c.curWS.LookupConcept(mangled); cached {
			if holds {
				return true, ""
			}
			return false, fmt.Sprintf("%s does not satisfy concept %s (cached)", bound, cd.Name)
		}
	}

	csub := generic.NewSubstitution(cd.Node)
	for _, m := range cd.Members {
		if m.Kind == types.KindGenericTypeParameter {
			csub.Bind(m, generic.Binding{Type: bound}, false)
			break
		}
	}
	reqs := concept.Requirements(cd, csub)
	res := c.conceptEngine(env).Test(reqs)
	if concrete && c.curWS != nil {
		c.curWS.CacheConcept(mangled, res.OK)
	}
	if res.OK {
		return true, ""
	}
	return false, fmt.Sprintf("%s does not satisfy concept %s: missing %s", bound, cd.Name, res.Missing[0].Name)
}

// pass3BuildBodies resolves every type declaration's fields/members,
// every const's type, and every concept/extend body, annotating each
// Declaration's Annotation.Type (spec.md §2 pass 3).
func (c *Checker) pass3BuildBodies(ws *workspace.Workspace) {
	c.Graph.Begin(ws)
	defer c.Graph.End()
	env := c.Graph.Current()

	for _, decl := range ws.TypeDecls {
		switch d := decl.Node.(type) {
		case *ast.TypeDecl:
			c.buildTypeDecl(env, decl, d)
		case *ast.ExtendDecl:
			c.buildExtend(env, decl, d)
		}
	}

	for _, decl := range ws.Globals {
		c.buildGlobalSignature(env, decl)
	}

	for _, decl := range ws.Funcs {
		c.buildFuncSignature(env, decl)
	}
}

func (c *Checker) buildTypeDecl(env *scope.Environment, decl *types.Declaration, d *ast.TypeDecl) {
	c.Graph.Begin(d)
	defer c.Graph.End()
	tyEnv := c.Graph.Current()

	var genericMembers []*types.Declaration
	if d.Generic != nil {
		genericMembers = c.defineGenericClause(tyEnv, d.Generic)
	}

	switch d.Kind {
	case ast.TypeRecord:
		fields := make([]types.RecordField, 0, len(d.Fields))
		for _, f := range d.Fields {
			ft := c.resolveTypeExpr(tyEnv, f.Type)
			fields = append(fields, types.RecordField{Name: f.Name, Type: ft})
			fieldDecl := &types.Declaration{Kind: types.KindField, Name: f.Name, Node: f, Parent: decl, Hidden: f.Hidden, Workspace: decl.Workspace}
			fieldDecl.Annotation.Type = ft
			decl.Members = append(decl.Members, fieldDecl)
		}
		decl.Annotation.Type = &types.TRecord{Name: d.Name, Decl: decl, Fields: fields}

	case ast.TypeVariant:
		members := make([]types.Type, 0, len(d.Members))
		for _, m := range d.Members {
			members = append(members, c.resolveTypeExpr(tyEnv, m))
		}
		decl.Annotation.Type = &types.TVariant{Name: d.Name, Decl: decl, Members: members}

	case ast.TypeRange:
		elem := c.resolveTypeExpr(tyEnv, d.RangeElem)
		decl.Annotation.Type = &types.TRange{Name: d.Name, Decl: decl, Elem: elem, Open: d.RangeOpen}

	case ast.TypeAlias:
		decl.Annotation.Type = c.resolveTypeExpr(tyEnv, d.AliasTarget)

	case ast.TypeBehaviour:
		decl.Annotation.Type = &types.TBehaviour{Name: d.Name, Decl: decl}
		for _, proto := range d.Prototypes {
			c.buildFuncSignatureNode(tyEnv, protoMemberFor(decl, proto.Name), proto)
		}
	}
	decl.Members = append(decl.Members, genericMembers...)
}

func protoMemberFor(owner *types.Declaration, name string) *types.Declaration {
	for _, m := range owner.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func (c *Checker) buildExtend(env *scope.Environment, decl *types.Declaration, d *ast.ExtendDecl) {
	c.checkExtendArgsConcrete(env, d)
	target := c.resolveTypeExpr(env, d.Target)
	decl.Annotation.Type = target
	propagateBehaviours(target, decl.Behaviours)
	for _, m := range d.Members {
		c.registerStmt(env, c.curWS, m)
	}
}

// propagateBehaviours copies an extend's resolved behaviour list onto the
// target type's own declaration, so "does T implement B" (checkAs's
// behaviour-pointer coercion, spec.md §4.4) can be answered by looking at
// T's declaration alone rather than having to re-discover every extend
// block that ever mentioned T.
func propagateBehaviours(target types.Type, behaviours []*types.Declaration) {
	td := types.DeclOf(target)
	if td == nil {
		return
	}
	for _, b := range behaviours {
		already := false
		for _, existing := range td.Behaviours {
			if existing == b {
				already = true
				break
			}
		}
		if !already {
			td.Behaviours = append(td.Behaviours, b)
		}
	}
}

// checkExtendArgsConcrete enforces the open-question decision recorded in
// DESIGN.md for `extend G!(arg, …) { … }`: every generic argument must
// already resolve to a concrete, non-generic type before the extend body
// is registered. A reference to an enclosing generic parameter (a
// *types.TGeneric placeholder) is rejected with GEN004, naming the first
// offending argument, rather than silently instantiating against it.
func (c *Checker) checkExtendArgsConcrete(env *scope.Environment, d *ast.ExtendDecl) {
	named, ok := d.Target.(*ast.NamedTypeExpr)
	if !ok || len(named.Args) == 0 {
		return
	}
	for _, a := range named.Args {
		if _, isConst := a.(*ast.ConstTypeExpr); isConst {
			continue // a literal constant argument is always concrete
		}
		if _, isGeneric := c.resolveTypeExpr(env, a).(*types.TGeneric); isGeneric {
			c.reportf(diag.GEN004, "decl", named.Pos,
				"extend %s requires fully concrete generic arguments, %s is not concrete", named, a)
			return
		}
	}
}

// resolveGenericArg resolves one slot of an explicit generic-argument
// list (`f!(T, 4)(args)`, `List!(T, 4){...}`) to either a type or a
// constant binding (spec.md §4.6 step 1 "bind any explicit generic
// arguments"), depending on whether the slot is an ordinary type
// reference or a ConstTypeExpr.
func (c *Checker) resolveGenericArg(env *scope.Environment, te ast.TypeExpr) generic.Arg {
	if ce, ok := te.(*ast.ConstTypeExpr); ok {
		cv, err := c.Eval.Evaluate(ce.Value)
		if err != nil {
			c.reportf(diag.GEN001, "generic", ce.Pos, "generic-const argument must be a constant expression")
			return generic.Arg{}
		}
		return generic.Arg{Const: &cv}
	}
	return generic.Arg{Type: c.resolveTypeExpr(env, te)}
}

func (c *Checker) buildGlobalSignature(env *scope.Environment, decl *types.Declaration) {
	switch d := decl.Node.(type) {
	case *ast.ValDecl:
		if d.Type != nil {
			decl.Annotation.Type = c.resolveTypeExpr(env, d.Type)
		}
	case *ast.ConstDecl:
		if d.Type != nil {
			decl.Annotation.Type = c.resolveTypeExpr(env, d.Type)
		}
	}
}

func (c *Checker) buildFuncSignature(env *scope.Environment, decl *types.Declaration) {
	switch d := decl.Node.(type) {
	case *ast.FuncDecl:
		c.buildFuncSignatureNode(env, decl, d)
	case *ast.ExternDecl:
		params := make([]types.Type, 0, len(d.Params))
		for _, p := range d.Params {
			params = append(params, c.resolveTypeExpr(env, p.Type))
		}
		ret := c.resolveTypeExpr(env, d.Return)
		decl.Annotation.Type = &types.TFunction{Params: params, Return: ret}
	}
}

func (c *Checker) buildFuncSignatureNode(env *scope.Environment, decl *types.Declaration, d *ast.FuncDecl) {
	if decl == nil || d == nil {
		return
	}
	c.Graph.Begin(d)
	defer c.Graph.End()
	fnEnv := c.Graph.Current()

	if d.Generic != nil && len(decl.Members) == 0 {
		decl.Members = append(decl.Members, c.defineGenericClause(fnEnv, d.Generic)...)
	}

	params := make([]types.Type, 0, len(d.Params))
	variadic := false
	for i, p := range d.Params {
		params = append(params, c.resolveTypeExpr(fnEnv, p.Type))
		if p.Variadic && i == len(d.Params)-1 {
			variadic = true
		}
	}
	ret := c.resolveTypeExpr(fnEnv, d.Return)
	if ret == nil {
		ret = types.Unknown
	}
	decl.Annotation.Type = &types.TFunction{Params: params, Return: ret, Variadic: variadic}
}

// defineGenericClause binds every type/const parameter of gc into env's
// own Types/Values namespaces, so that a bare reference to one inside the
// declaration's own signature or body resolves instead of erroring CHK001
// (spec.md §4.6: "a generic declaration's own body sees its parameters as
// ordinary, if unresolved, types"). Returns every parameter declaration
// (type params first, then const params, matching bindGenericClause's and
// the mangler's positional ordering) so the caller can store them on
// decl.Members and both genericTypeParamDecls and genericConstParamDecls
// can filter the set they need.
func (c *Checker) defineGenericClause(env *scope.Environment, gc *ast.GenericClause) []*types.Declaration {
	params := make([]*types.Declaration, 0, len(gc.TypeParams)+len(gc.ConstParams))
	for _, tp := range gc.TypeParams {
		d := &types.Declaration{Kind: types.KindGenericTypeParameter, Name: tp.Name, Node: tp}
		d.Annotation.Type = &types.TGeneric{Decl: d}
		env.Define(scope.Types, tp.Name, d)
		params = append(params, d)
	}
	for _, cp := range gc.ConstParams {
		d := &types.Declaration{Kind: types.KindGenericConstParameter, Name: cp.Name, Node: cp}
		d.Annotation.Type = c.resolveTypeExpr(env, cp.Type)
		env.Define(scope.Values, cp.Name, d)
		params = append(params, d)
	}
	return params
}

// resolveTypeExpr turns a syntactic type reference into a types.Type,
// resolving named types through the current scope, instantiating generic
// arguments on demand, and unwrapping an already-resolved
// ast.ResolvedTypeExpr spliced in by the generic substitution engine
// (spec.md §4.9).
func (c *Checker) resolveTypeExpr(env *scope.Environment, te ast.TypeExpr) types.Type {
	if te == nil {
		return nil
	}
	switch t := te.(type) {
	case *ast.ResolvedTypeExpr:
		if rt := generic.ResolvedType(t); rt != nil {
			return rt
		}
		return types.Unknown

	case *ast.NamedTypeExpr:
		name := ast.Last(t.Path)
		if bt := builtinType(name); bt != nil {
			return bt
		}
		decl, ok := env.Lookup(scope.Types, name, true)
		if !ok {
			c.reportf(diag.CHK001, "decl", t.Pos, "unknown type %q", name)
			return types.Unknown
		}
		if len(t.Args) == 0 {
			if decl.Annotation.Type == nil {
				return &types.TGeneric{Decl: decl}
			}
			return decl.Annotation.Type
		}
		args := make([]generic.Arg, 0, len(t.Args))
		for _, a := range t.Args {
			args = append(args, c.resolveGenericArg(env, a))
		}
		inst := c.Gen.Instantiate(c.curWS, generic.Request{Decl: decl, Args: args})
		if inst == nil {
			return types.Unknown
		}
		if inst.Annotation.Type == nil {
			c.buildTypeDecl(env, inst, inst.Node.(*ast.TypeDecl))
		}
		return inst.Annotation.Type

	case *ast.PointerTypeExpr:
		return &types.TPointer{Elem: c.resolveTypeExpr(env, t.Elem), Mutable: t.Mutable}

	case *ast.SliceTypeExpr:
		return &types.TSlice{Elem: c.resolveTypeExpr(env, t.Elem)}

	case *ast.ArrayTypeExpr:
		size := -1
		var sizeExpr ast.Expr
		if t.Size != nil {
			if cv, err := c.Eval.Evaluate(t.Size); err == nil && cv.Kind == types.CatInteger {
				size = int(cv.Int)
			} else {
				sizeExpr = t.Size
			}
		}
		return &types.TArray{Elem: c.resolveTypeExpr(env, t.Elem), Size: size, SizeExpr: sizeExpr}

	case *ast.TupleTypeExpr:
		elems := make([]types.Type, 0, len(t.Elements))
		for _, e := range t.Elements {
			elems = append(elems, c.resolveTypeExpr(env, e))
		}
		return &types.TTuple{Elements: elems}

	case *ast.FuncTypeExpr:
		params := make([]types.Type, 0, len(t.Params))
		for _, p := range t.Params {
			params = append(params, c.resolveTypeExpr(env, p))
		}
		return &types.TFunction{Params: params, Return: c.resolveTypeExpr(env, t.Return)}

	case *ast.RangeTypeExpr:
		return &types.TRange{Elem: c.resolveTypeExpr(env, t.Elem), Open: t.Open}

	default:
		return types.Unknown
	}
}

// builtinType maps a primitive type keyword to its canonical Type value
// (spec.md §4.4 "literal suffixes" / §3 type categories).
func builtinType(name string) types.Type {
	switch name {
	case "bool":
		return types.Bool
	case "char":
		return types.Char
	case "chars":
		return types.Chars
	case "string":
		return types.String
	case "i32":
		return types.I32
	case "f32":
		return types.F32
	case "i8":
		return &types.TInteger{Bits: 8, Signed: true}
	case "i16":
		return &types.TInteger{Bits: 16, Signed: true}
	case "i64":
		return &types.TInteger{Bits: 64, Signed: true}
	case "i128":
		return &types.TInteger{Bits: 128, Signed: true}
	case "i256":
		return &types.TInteger{Bits: 256, Signed: true}
	case "u8":
		return &types.TInteger{Bits: 8, Signed: false}
	case "u16":
		return &types.TInteger{Bits: 16, Signed: false}
	case "u32":
		return &types.TInteger{Bits: 32, Signed: false}
	case "u64":
		return &types.TInteger{Bits: 64, Signed: false}
	case "u128":
		return &types.TInteger{Bits: 128, Signed: false}
	case "u256":
		return &types.TInteger{Bits: 256, Signed: false}
	case "isize":
		return &types.TInteger{Signed: true, Size: true}
	case "usize":
		return &types.TInteger{Signed: false, Size: true}
	case "f64":
		return &types.TFloat{Bits: 64}
	case "f128":
		return &types.TFloat{Bits: 128}
	case "f256":
		return &types.TFloat{Bits: 256}
	default:
		return nil
	}
}
