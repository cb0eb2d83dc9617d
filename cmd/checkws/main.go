package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
)

var (
	// Version info - set by ldflags during build
	Version = "dev"
	Commit  = "unknown"

	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		manifest    = flag.String("manifest", "workspace.yaml", "Path to the workspace manifest")
	)
	flag.Parse()
	log.SetFlags(0)

	if *versionFlag {
		fmt.Printf("checkws %s (%s)\n", bold(Version), Commit)
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "check":
		runCheck(*manifest)
	case "describe":
		runDescribe(*manifest)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(bold("checkws - workspace semantic checker"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  checkws [-manifest workspace.yaml] check")
	fmt.Println("  checkws [-manifest workspace.yaml] describe")
	fmt.Println()
	fmt.Println("check     run the five-pass checker over the loaded workspaces and print diagnostics")
	fmt.Println("describe  start an interactive REPL that resolves a typed path against the checked scope graph")
}
