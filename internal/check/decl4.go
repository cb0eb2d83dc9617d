package check

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/concept"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/scope"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/workspace"
)

// pass4CheckFunctions checks every function/test/global initializer body
// and every extend/behaviour-default body in ws (spec.md §2 pass 4). A
// generic declaration's own body is never checked directly — only its
// on-demand instantiations are, the first time checkFuncBody sees them
// (spec.md §3 invariant).
func (c *Checker) pass4CheckFunctions(ws *workspace.Workspace) {
	c.Graph.Begin(ws)
	defer c.Graph.End()

	for _, decl := range ws.Funcs {
		fd, ok := decl.Node.(*ast.FuncDecl)
		if !ok {
			continue
		}
		c.checkFuncBody(decl, fd)
	}
	for _, decl := range ws.Globals {
		c.checkGlobalInit(decl)
	}
	for _, decl := range ws.Tests {
		c.checkTest(decl)
	}
	for _, decl := range ws.TypeDecls {
		switch d := decl.Node.(type) {
		case *ast.ExtendDecl:
			c.checkExtendMembers(decl, d)
		case *ast.TypeDecl:
			if d.Kind == ast.TypeBehaviour {
				c.checkBehaviourDefaults(decl, d)
			}
		}
	}
}

// checkFuncBody checks d's body against its already-built signature,
// binding parameters and pushing function/loop scope (spec.md §4.4,
// §4.5). Externs, generic templates, and already-visited instantiations
// are skipped.
func (c *Checker) checkFuncBody(decl *types.Declaration, d *ast.FuncDecl) {
	if decl == nil || d == nil || d.Extern || d.Body == nil {
		return
	}
	if decl.IsGeneric() {
		return
	}
	if decl.Annotation.Visited {
		return
	}
	decl.Annotation.Visited = true

	c.Graph.Begin(d)
	defer c.Graph.End()
	fnEnv := c.Graph.Current()
	fnEnv.MarkKind(scope.KindFunction, scope.KindLoop)

	sig, _ := decl.Annotation.Type.(*types.TFunction)
	for i, p := range d.Params {
		pt := types.Type(types.Unknown)
		if sig != nil && i < len(sig.Params) {
			pt = sig.Params[i]
		}
		pdecl := &types.Declaration{Kind: types.KindParameter, Name: p.Name, Node: p}
		pdecl.Annotation.Type = pt
		fnEnv.Define(scope.Values, p.Name, pdecl)
	}

	savedReturn := c.returnType
	if sig != nil {
		c.returnType = sig.Return
	} else {
		c.returnType = types.Unknown
	}
	bodyType := c.checkBlock(fnEnv, d.Body)
	if sig != nil && !types.IsUnknown(sig.Return) && !types.IsUnknown(bodyType) && !sig.Return.Equal(bodyType) {
		c.reportf(diag.CHK001, "check", d.Pos, "function %q returns %s, body yields %s", d.Name, sig.Return, bodyType)
	}
	c.returnType = savedReturn
}

// checkGlobalInit type-checks a top-level val/var/const initializer and,
// for const, attempts to fold it via the external evaluator (spec.md §4.5,
// §6).
func (c *Checker) checkGlobalInit(decl *types.Declaration) {
	if decl == nil || decl.Annotation.Visited {
		return
	}
	decl.Annotation.Visited = true
	env := c.Graph.Current()

	switch d := decl.Node.(type) {
	case *ast.ValDecl:
		if d.Init == nil {
			return
		}
		it := c.checkExpr(env, d.Init)
		if len(d.Names) > 1 {
			if tup, ok := it.(*types.TTuple); ok {
				if idx := indexOf(d.Names, decl.Name); idx >= 0 && idx < len(tup.Elements) {
					it = tup.Elements[idx]
				}
			}
		}
		if decl.Annotation.Type == nil {
			decl.Annotation.Type = it
		} else if !types.IsUnknown(it) && !decl.Annotation.Type.Equal(it) {
			c.reportf(diag.CHK001, "check", d.Pos, "cannot assign %s to declared %s", it, decl.Annotation.Type)
		}

	case *ast.ConstDecl:
		if d.Init == nil {
			return
		}
		it := c.checkExpr(env, d.Init)
		if decl.Annotation.Type == nil {
			decl.Annotation.Type = it
		} else if !types.IsUnknown(it) && !decl.Annotation.Type.Equal(it) {
			c.reportf(diag.CHK001, "check", d.Pos, "cannot assign %s to declared %s", it, decl.Annotation.Type)
		}
		if cv, err := c.Eval.Evaluate(d.Init); err == nil {
			decl.Annotation.Value = &cv
		} else {
			decl.Annotation.ValueEvalErr = true
		}
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// checkTest checks one `test "name" { … }` block's body (spec.md §4.5).
func (c *Checker) checkTest(decl *types.Declaration) {
	td, ok := decl.Node.(*ast.TestDecl)
	if !ok || td.Body == nil {
		return
	}
	c.Graph.Begin(td)
	defer c.Graph.End()
	env := c.Graph.Current()
	env.MarkKind(scope.KindTest)
	c.checkBlock(env, td.Body)
}

// checkExtendMembers checks every function/property body nested in an
// extend block, then verifies the extend satisfies every behaviour it
// declares conformance to (spec.md §4.5 "extend declarations", CHK009).
func (c *Checker) checkExtendMembers(decl *types.Declaration, ext *ast.ExtendDecl) {
	env := c.Graph.EnvFor(c.curWS)
	if env == nil {
		return
	}
	for _, m := range ext.Members {
		if fd, ok := m.(*ast.FuncDecl); ok {
			if md, ok := env.Lookup(scope.Functions, fd.Name, false); ok {
				c.checkFuncBody(md, fd)
			}
		}
	}
	c.checkBehaviourConformance(env, decl, ext)
}

// checkBehaviourDefaults checks the bodies of a behaviour's own defaulted
// prototype implementations (spec.md §4.5 "behaviour declarations").
func (c *Checker) checkBehaviourDefaults(decl *types.Declaration, td *ast.TypeDecl) {
	for _, proto := range td.Prototypes {
		if !proto.Defaulted || proto.Body == nil {
			continue
		}
		if md := protoMemberFor(decl, proto.Name); md != nil {
			c.checkFuncBody(md, proto)
		}
	}
}

// checkBehaviourConformance reports CHK009 for every behaviour prototype
// an extend declares but does not implement with a matching signature
// (spec.md §4.5).
func (c *Checker) checkBehaviourConformance(env *scope.Environment, decl *types.Declaration, ext *ast.ExtendDecl) {
	if len(decl.Behaviours) == 0 {
		return
	}
	engine := c.conceptEngine(env)
	for _, b := range decl.Behaviours {
		reqs := make([]concept.Prototype, 0, len(b.Members))
		for _, m := range b.Members {
			fn, ok := m.Annotation.Type.(*types.TFunction)
			if !ok {
				continue
			}
			reqs = append(reqs, concept.Prototype{Name: m.Name, Sig: fn, IsProperty: m.Kind == types.KindProperty})
		}
		res := engine.Test(reqs)
		if !res.OK {
			for _, missing := range res.Missing {
				c.reportf(diag.CHK009, "check", ext.Pos, "extend %s does not satisfy behaviour %s: missing %s", ext.Target, b.Name, missing.Name)
			}
		}
	}
}
