package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/vela-lang/vela/internal/checker"
	"github.com/vela-lang/vela/internal/scenario"
)

var (
	// Version info - set by ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	command := flag.Arg(0)

	switch command {
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing scenario file argument\n", red("Error"))
			fmt.Println("Usage: velac check <scenario.yaml>")
			os.Exit(1)
		}
		checkScenario(flag.Arg(1))

	case "check-dir":
		path := "."
		if flag.NArg() >= 2 {
			path = flag.Arg(1)
		}
		checkDir(path)

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command '%s'\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("velac %s\n", bold(Version))
	if Commit != "unknown" {
		fmt.Printf("Commit: %s\n", Commit)
	}
	if BuildTime != "unknown" {
		fmt.Printf("Built:  %s\n", BuildTime)
	}
	fmt.Println("\nA binary-expression type checker and narrowing linter")
}

func printHelp() {
	fmt.Println(bold("velac - binary-expression type checker"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  velac <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file.yaml>     Check a single scenario\n", cyan("check"))
	fmt.Printf("  %s [dir]       Check every *.yaml scenario in a directory\n", cyan("check-dir"))
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --version        Print version information")
	fmt.Println("  --help           Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s\n", cyan("velac check testdata/scenarios/typeof_narrow.yaml"))
	fmt.Printf("  %s\n", cyan("velac check-dir testdata/scenarios"))
}

func checkScenario(path string) {
	s, err := scenario.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	ok := report(path, s)
	if !ok {
		os.Exit(1)
	}
}

func checkDir(dir string) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	if len(matches) == 0 {
		fmt.Fprintf(os.Stderr, "%s: no *.yaml scenarios found in %s\n", yellow("Warning"), dir)
		return
	}

	allOK := true
	for _, path := range matches {
		s, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			allOK = false
			continue
		}
		if !report(path, s) {
			allOK = false
		}
	}
	if !allOK {
		os.Exit(1)
	}
}

// report runs one scenario and prints its result type, facts, and any
// diagnostics. It returns false if the scenario produced a propagated
// error or a reported diagnostic whose kind is not recoverable.
func report(path string, s *scenario.Scenario) bool {
	result, err := scenario.Run(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", red("Error"), path, err)
		return false
	}

	ok := true
	fmt.Printf("%s %s\n", bold(s.Name), cyan(path))

	if result.Err != nil {
		fmt.Printf("  %s %v\n", red("error:"), result.Err)
		ok = false
	} else {
		fmt.Printf("  %s %s\n", green("type:"), result.Type)
	}

	for _, d := range result.Diagnostics {
		severity := yellow("warning:")
		if !d.Recoverable() {
			severity = red("error:")
			ok = false
		}
		fmt.Printf("  %s %s\n", severity, d.Error())
	}

	printFacts(result.Facts)
	return ok
}

func printFacts(a *checker.Analyzer) {
	if len(a.CurFacts.True.Facts) == 0 && len(a.CurFacts.True.Vars) == 0 &&
		len(a.CurFacts.False.Facts) == 0 && len(a.CurFacts.False.Vars) == 0 {
		return
	}
	fmt.Printf("  %s\n", cyan("facts:"))
	for name, ty := range a.CurFacts.True.Vars {
		fmt.Printf("    true.%s: %s\n", name, ty)
	}
	for name, excludes := range a.CurFacts.False.Excludes {
		fmt.Printf("    false.%s excludes: %v\n", name, excludes)
	}
}
