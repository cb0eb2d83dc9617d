package wsimport

import (
	"testing"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/scope"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/workspace"
)

func unit(wsName string, uses ...string) *ast.SourceUnit {
	su := &ast.SourceUnit{
		Workspace: &ast.WorkspaceDecl{Name: wsName},
		Path:      wsName + "/u.ail",
	}
	for _, u := range uses {
		su.Uses = append(su.Uses, &ast.UseDecl{Workspace: u})
	}
	return su
}

func TestBuildEdgesRejectsSelfImport(t *testing.T) {
	comp := workspace.NewCompilation()
	comp.AddSourceUnit("pkg", unit("a", "a"))

	sink := diag.NewCollector()
	New(sink).BuildEdges(comp)

	if len(sink.Reports) != 1 || sink.Reports[0].Code != "IMP002" {
		t.Fatalf("expected a single IMP002 self-import diagnostic, got %+v", sink.Reports)
	}
}

func TestBuildEdgesRejectsUnknownWorkspace(t *testing.T) {
	comp := workspace.NewCompilation()
	comp.AddSourceUnit("pkg", unit("a", "nosuch"))

	sink := diag.NewCollector()
	New(sink).BuildEdges(comp)

	if len(sink.Reports) != 1 || sink.Reports[0].Code != "IMP001" {
		t.Fatalf("expected a single IMP001 unknown-workspace diagnostic, got %+v", sink.Reports)
	}
}

func TestBuildEdgesDetectsCycle(t *testing.T) {
	comp := workspace.NewCompilation()
	comp.AddSourceUnit("pkg", unit("a", "b"))
	comp.AddSourceUnit("pkg", unit("b", "a"))

	sink := diag.NewCollector()
	New(sink).BuildEdges(comp)

	var cyclic int
	for _, r := range sink.Reports {
		if r.Code == "IMP003" {
			cyclic++
		}
	}
	if cyclic == 0 {
		t.Fatalf("expected at least one IMP003 cyclic-import diagnostic, got %+v", sink.Reports)
	}
}

func TestBuildEdgesWiresValidImport(t *testing.T) {
	comp := workspace.NewCompilation()
	comp.AddSourceUnit("pkg", unit("a", "b"))
	comp.AddSourceUnit("pkg", unit("b"))

	sink := diag.NewCollector()
	New(sink).BuildEdges(comp)

	if len(sink.Reports) != 0 {
		t.Fatalf("valid import should raise no diagnostics, got %+v", sink.Reports)
	}
	if comp.Workspaces["a"].Imports["b"] != comp.Workspaces["b"] {
		t.Fatalf("expected workspace a to have its Imports[\"b\"] wired to workspace b")
	}
}

// TestInjectCoreInjectsEveryNamespace is the regression test for the fix
// that made injectCore walk all four namespaces of the core workspace's
// root environment (spec.md §4.2: "all of its top-level symbols injected
// ... into every other workspace's root environment"), not just Values.
func TestInjectCoreInjectsEveryNamespace(t *testing.T) {
	comp := workspace.NewCompilation()
	core := comp.AddSourceUnit("pkg", unit(workspace.CoreWorkspaceName))
	app := comp.AddSourceUnit("pkg", unit("app"))

	sg := scope.NewGraph()
	coreEnv := sg.Begin(comp.Workspaces[workspace.CoreWorkspaceName])
	coreEnv.Define(scope.Values, "origin", &types.Declaration{Kind: types.KindConst, Name: "origin"})
	coreEnv.Define(scope.Functions, "identity", &types.Declaration{Kind: types.KindFunction, Name: "identity"})
	coreEnv.Define(scope.Types, "Point", &types.Declaration{Kind: types.KindTypeRecord, Name: "Point"})
	coreEnv.Define(scope.Concepts, "Addable", &types.Declaration{Kind: types.KindConcept, Name: "Addable"})
	sg.End()
	core.RootEnv = core

	appEnv := sg.Begin(comp.Workspaces["app"])
	sg.End()
	app.RootEnv = app

	New(diag.NewCollector()).InjectCore(comp, sg)

	for _, tc := range []struct {
		ns   scope.Namespace
		name string
	}{
		{scope.Values, "origin"},
		{scope.Functions, "identity"},
		{scope.Types, "Point"},
		{scope.Concepts, "Addable"},
	} {
		if _, ok := appEnv.Lookup(tc.ns, tc.name, false); !ok {
			t.Errorf("expected core symbol %q to be injected into app's root environment in namespace %v", tc.name, tc.ns)
		}
	}
	if comp.Workspaces["app"].Imports[workspace.CoreWorkspaceName] != comp.Workspaces[workspace.CoreWorkspaceName] {
		t.Errorf("expected InjectCore to also wire app's Imports[core]")
	}
}

func TestInjectCoreNoopWithoutCoreWorkspace(t *testing.T) {
	comp := workspace.NewCompilation()
	comp.AddSourceUnit("pkg", unit("app"))
	sg := scope.NewGraph()

	// Must not panic when no `core` workspace exists.
	New(diag.NewCollector()).InjectCore(comp, sg)
}
