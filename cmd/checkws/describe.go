package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/sunholo/ailang/internal/ast"
	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/resolve"
	"github.com/sunholo/ailang/internal/scope"
	"github.com/sunholo/ailang/internal/types"
	"github.com/sunholo/ailang/internal/wsconfig"
)

// runDescribe runs the checker once over the demonstration workspaces to
// populate their scope graphs, then starts a liner-backed REPL: the user
// types a dotted path (e.g. "Point" or "origin.x") and sees how the name
// resolver would resolve it, mirroring internal/repl/repl.go's use of
// liner for the teacher's interactive shell (spec.md §4.3).
func runDescribe(manifestPath string) {
	if _, err := wsconfig.Load(manifestPath); err != nil {
		fmt.Printf("%s no manifest at %s; using the built-in demo workspaces\n", yellow("note:"), manifestPath)
	}

	comp := buildDemoCompilation()
	sink := diag.NewCollector()
	c := check.New(comp, sink, nil, nil)
	if err := c.Check(); err != nil {
		fmt.Printf("%s %v\n", red("abort:"), err)
		return
	}

	ws, ok := comp.Workspaces["app"]
	if !ok {
		fmt.Printf("%s demo workspace %q not found\n", red("Error"), "app")
		return
	}
	env := c.Graph.EnvFor(ws)
	if env == nil {
		fmt.Printf("%s workspace %q has no root scope\n", red("Error"), ws.Name)
		return
	}
	resolver := resolve.New(comp, ws, sink, make(map[ast.Node]bool))

	fmt.Println(bold("describe: type a dotted path, Ctrl-D to quit"))
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt(cyan("> "))
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Printf("%s %v\n", red("Error"), err)
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		describePath(resolver, sink, env, input)
	}
}

func describePath(resolver *resolve.Resolver, sink *diag.Collector, env *scope.Environment, input string) {
	segs := strings.Split(input, ".")
	before := len(sink.Reports)
	res, n, ok := resolver.ResolvePath(env, segs, ast.Pos{})
	if !ok {
		for _, r := range sink.Reports[before:] {
			printReport(r)
		}
		return
	}
	if res.Workspace != "" {
		fmt.Printf("  %s workspace %s\n", cyan("→"), res.Workspace)
		return
	}
	fmt.Printf("  %s %s %s : %s\n", cyan("→"), padToColumn(kindLabel(res.Decl), 12), res.Decl.Name, res.Decl.Annotation.Type)
	if n < len(segs) {
		fmt.Printf("    (%s) further member access %q is not resolved by this demo REPL\n",
			yellow("note"), strings.Join(segs[n:], "."))
	}
}

func kindLabel(d *types.Declaration) string { return d.Kind.String() }
