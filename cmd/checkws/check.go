package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/sunholo/ailang/internal/check"
	"github.com/sunholo/ailang/internal/diag"
	"github.com/sunholo/ailang/internal/wsconfig"
)

// runCheck loads the workspace manifest (logging, not failing, when it is
// absent — this demonstration CLI has no parser to populate real source
// units, see fixture.go), builds the demonstration Compilation, runs the
// five-pass checker, and prints every diagnostic it collects, colored by
// severity (spec.md §6 "Diagnostic publisher interface").
func runCheck(manifestPath string) {
	if m, err := wsconfig.Load(manifestPath); err != nil {
		log.Printf("%s: no manifest at %s (%v); using the built-in demo workspaces", yellow("note"), manifestPath, err)
	} else {
		log.Printf("loaded manifest %s: core workspace %q, %d declared package(s)", manifestPath, m.CoreWorkspace, len(m.Packages))
	}

	comp := buildDemoCompilation()
	sink := diag.NewCollector()
	c := check.New(comp, sink, nil, nil)

	if err := c.Check(); err != nil {
		fmt.Printf("%s %v\n", red("abort:"), err)
		return
	}

	reports := sink.Sorted()
	if len(reports) == 0 {
		fmt.Printf("%s no diagnostics across %d workspace(s)\n", cyan("✓"), len(comp.Workspaces))
		return
	}
	for _, r := range reports {
		printReport(r)
	}
	if sink.HasErrors() {
		fmt.Printf("\n%s %d diagnostic(s), code generation must not proceed\n", red("✗"), len(reports))
	} else {
		fmt.Printf("\n%s %d warning(s), no errors\n", yellow("!"), len(reports))
	}
}

func printReport(r *diag.Report) {
	label := cyan(r.Code)
	if r.Severity == diag.SeverityError {
		label = red(r.Code)
	} else if r.Severity == diag.SeverityWarning {
		label = yellow(r.Code)
	}
	pos := r.Primary.Start
	fmt.Printf("%s [%s] %s:%d:%d: %s\n", label, r.Phase, pos.File, pos.Line, pos.Column, r.Message)
	for _, n := range r.Notes {
		fmt.Printf("    %s %s\n", cyan("note:"), n.Label)
	}
}

// padToColumn right-pads s with spaces to col display columns, counting
// wide runes (e.g. CJK identifiers carried through from source) as two
// columns so describe's REPL output stays aligned (spec.md §6: the
// diagnostic publisher is responsible for column-accurate rendering).
func padToColumn(s string, col int) string {
	w := diag.DisplayWidth(s)
	if w >= col {
		return s
	}
	return s + strings.Repeat(" ", col-w)
}
