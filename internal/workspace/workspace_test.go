package workspace

import (
	"testing"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/types"
)

func TestAddSourceUnitGroupsMultipleSourcesIntoOneWorkspace(t *testing.T) {
	comp := NewCompilation()
	su1 := &ast.SourceUnit{Workspace: &ast.WorkspaceDecl{Name: "app"}, Path: "app/a.ail"}
	su2 := &ast.SourceUnit{Workspace: &ast.WorkspaceDecl{Name: "app"}, Path: "app/b.ail"}

	ws1 := comp.AddSourceUnit("pkg", su1)
	ws2 := comp.AddSourceUnit("pkg", su2)

	if ws1 != ws2 {
		t.Fatalf("expected two source units declaring the same workspace name to share one Workspace")
	}
	if len(ws1.Sources) != 2 {
		t.Fatalf("expected both source units appended to the workspace, got %d", len(ws1.Sources))
	}
	if len(comp.Packages["pkg"].Workspaces) != 1 {
		t.Fatalf("expected the package to list the workspace exactly once, got %+v", comp.Packages["pkg"].Workspaces)
	}
}

func TestAddSourceUnitUsesFilePathForAnonymousWorkspace(t *testing.T) {
	comp := NewCompilation()
	su := &ast.SourceUnit{Path: "scratch/x.ail"}

	ws := comp.AddSourceUnit("pkg", su)
	if ws.Name != "scratch/x.ail" {
		t.Fatalf("expected an anonymous source unit to fall back to its file path as the workspace name, got %q", ws.Name)
	}
}

func TestAddSourceUnitCreatesDistinctWorkspacesForDistinctNames(t *testing.T) {
	comp := NewCompilation()
	comp.AddSourceUnit("pkg", &ast.SourceUnit{Workspace: &ast.WorkspaceDecl{Name: "app"}, Path: "app/a.ail"})
	comp.AddSourceUnit("pkg", &ast.SourceUnit{Workspace: &ast.WorkspaceDecl{Name: "util"}, Path: "util/u.ail"})

	if len(comp.Workspaces) != 2 {
		t.Fatalf("expected two distinct workspaces, got %d", len(comp.Workspaces))
	}
	if len(comp.Packages["pkg"].Workspaces) != 2 {
		t.Fatalf("expected the package to list both workspace names, got %+v", comp.Packages["pkg"].Workspaces)
	}
}

func TestCacheInstantiationReturnsExistingEntryOnRepeatedInsert(t *testing.T) {
	ws := NewWorkspace("app", "pkg")
	first := &types.Declaration{Name: "identity$i32"}
	second := &types.Declaration{Name: "identity$i32-but-different-object"}

	got1 := ws.CacheInstantiation("identity$i32", first)
	got2 := ws.CacheInstantiation("identity$i32", second)

	if got1 != first {
		t.Fatalf("expected the first insert to return the declaration just stored")
	}
	if got2 != first {
		t.Fatalf("expected a repeated insert under the same mangled name to return the original cached declaration, not overwrite it")
	}
	if d, ok := ws.LookupInstantiation("identity$i32"); !ok || d != first {
		t.Fatalf("expected LookupInstantiation to return the originally cached declaration")
	}
}

func TestLookupInstantiationMissReportsFalse(t *testing.T) {
	ws := NewWorkspace("app", "pkg")
	if _, ok := ws.LookupInstantiation("nothing"); ok {
		t.Fatalf("expected a lookup miss on an empty cache to report false")
	}
}

func TestConceptCacheRoundTrips(t *testing.T) {
	ws := NewWorkspace("app", "pkg")
	ws.CacheConcept("Addable$i32", true)
	ws.CacheConcept("Addable$string", false)

	if holds, ok := ws.LookupConcept("Addable$i32"); !ok || !holds {
		t.Fatalf("expected Addable$i32 cached as satisfied")
	}
	if holds, ok := ws.LookupConcept("Addable$string"); !ok || holds {
		t.Fatalf("expected Addable$string cached as unsatisfied")
	}
	if _, ok := ws.LookupConcept("Addable$bool"); ok {
		t.Fatalf("expected no entry for a concept application never cached")
	}
}
