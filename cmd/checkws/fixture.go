package main

import (
	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/workspace"
)

// buildDemoCompilation constructs a small, hand-built Compilation in place
// of a real parser (spec.md §6's "Compilation object" is the parser's
// output; this core has no parser of its own, see internal/workspace's
// package doc). It gives `check`/`describe` something concrete to run the
// five passes over: a `core` workspace with one record type, one
// behaviour, and a generic `identity!(T)` function, plus a second
// workspace that `use`s core and extends the record with the behaviour.
func buildDemoCompilation() *workspace.Compilation {
	comp := workspace.NewCompilation()

	pointRecord := &ast.TypeDecl{
		Name: "Point",
		Kind: ast.TypeRecord,
		Fields: []*ast.Field{
			{Name: "x", Type: namedType("i32")},
			{Name: "y", Type: namedType("i32")},
		},
	}

	showable := &ast.TypeDecl{
		Name: "Showable",
		Kind: ast.TypeBehaviour,
		Prototypes: []*ast.FuncDecl{
			{Name: "describe", IsProperty: true, Return: namedType("string")},
		},
	}

	identity := &ast.FuncDecl{
		Name:    "identity",
		Generic: &ast.GenericClause{TypeParams: []*ast.GenericTypeParam{{Name: "T"}}},
		Params:  []*ast.Parameter{{Name: "x", Type: namedType("T")}},
		Return:  namedType("T"),
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{
			&ast.ExprStmt{X: &ast.Identifier{Name: "x"}},
		}},
	}

	origin := &ast.ConstDecl{
		Name: "origin",
		Init: &ast.CallExpr{
			Callee:     &ast.Identifier{Name: "Point"},
			Args:       []ast.Expr{&ast.IntLit{Text: "0"}, &ast.IntLit{Text: "0"}},
			FieldNames: []string{"x", "y"},
		},
	}

	coreUnit := &ast.SourceUnit{
		Workspace: &ast.WorkspaceDecl{Name: workspace.CoreWorkspaceName},
		Decls:     []ast.Stmt{pointRecord, showable, identity, origin},
		Path:      "core/core.ail",
	}
	comp.AddSourceUnit("demo", coreUnit)

	describePoint := &ast.FuncDecl{
		Name:       "describe",
		IsProperty: true,
		Return:     namedType("string"),
		Body: &ast.BlockExpr{Stmts: []ast.Stmt{
			&ast.ExprStmt{X: &ast.StringLit{Value: "a point", HeapString: true}},
		}},
	}
	pointExtend := &ast.ExtendDecl{
		Target:     namedType("Point"),
		Behaviours: []ast.TypeExpr{namedType("Showable")},
		Members:    []ast.Stmt{describePoint},
	}

	appUnit := &ast.SourceUnit{
		Workspace: &ast.WorkspaceDecl{Name: "app"},
		Uses:      []*ast.UseDecl{{Workspace: workspace.CoreWorkspaceName}},
		Decls:     []ast.Stmt{pointExtend},
		Path:      "app/app.ail",
	}
	comp.AddSourceUnit("demo", appUnit)

	return comp
}

func namedType(name string) ast.TypeExpr {
	return &ast.NamedTypeExpr{Path: &ast.Identifier{Name: name}}
}
