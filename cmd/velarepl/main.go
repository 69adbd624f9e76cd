// Command velarepl is a line-oriented REPL for trying binary expressions
// against a small declared-variable environment, built the way
// internal/repl/repl.go drives ailang's REPL: github.com/peterh/liner for
// history/editing, github.com/fatih/color for status coloring.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/vela-lang/vela/internal/checker"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/scenario"
)

var (
	Version   = "dev"
	BuildTime = "unknown"

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// REPL holds the session's persistent declared-variable environment: types
// entered via :var survive across expression evaluations, the way ailang's
// REPL keeps its let-bindings live across inputs.
type REPL struct {
	vars    map[string]scenario.TypeDecl
	refs    map[string]scenario.TypeDecl
	cfg     config.CheckerConfig
	history []string
}

func newREPL() *REPL {
	return &REPL{
		vars: make(map[string]scenario.TypeDecl),
		refs: make(map[string]scenario.TypeDecl),
		cfg:  config.Default(),
	}
}

func main() {
	var helpFlag = flag.Bool("help", false, "Show help")
	flag.Parse()

	if *helpFlag {
		fmt.Println(bold("velarepl - interactive binary-expression checker"))
		fmt.Println("Run with no arguments to start the REPL.")
		return
	}

	newREPL().Start(os.Stdin, os.Stdout)
}

func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".velarepl_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	line.SetMultiLineMode(true)
	line.SetCompleter(func(input string) (c []string) {
		if strings.HasPrefix(input, ":") {
			commands := []string{":help", ":quit", ":var", ":ref", ":vars", ":clear", ":history", ":config"}
			for _, cmd := range commands {
				if strings.HasPrefix(cmd, input) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	fmt.Fprintf(out, "%s %s\n", bold("velarepl"), bold(Version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	for {
		input, err := line.Prompt("vela> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if strings.HasPrefix(input, ":quit") || strings.HasPrefix(input, ":q") || strings.HasPrefix(input, ":exit") {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.handleCommand(input, out)
			continue
		}

		r.evalExpr(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func (r *REPL) handleCommand(input string, out io.Writer) {
	fields := strings.Fields(input)
	cmd := fields[0]

	switch cmd {
	case ":help":
		fmt.Fprintln(out, bold("Commands:"))
		fmt.Fprintln(out, "  :var <name> <kind=...,...>   declare a variable's type")
		fmt.Fprintln(out, "  :ref <name> <kind=...,...>   declare a type reference")
		fmt.Fprintln(out, "  :vars                        list declared vars and refs")
		fmt.Fprintln(out, "  :clear                       clear declared vars/refs")
		fmt.Fprintln(out, "  :history                     show input history")
		fmt.Fprintln(out, "  :config <bool-field>=<true|false>  toggle a CheckerConfig field")
		fmt.Fprintln(out, "  :quit                        exit")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Anything else is parsed as the YAML body of a binary `expr:` tree")
		fmt.Fprintln(out, "(kind, op, l, r, ...), evaluated against the declared vars/refs")
		fmt.Fprintln(out, "as if inside the condition of an if test.")

	case ":var", ":ref":
		if len(fields) < 3 {
			fmt.Fprintf(out, "%s: usage: %s <name> <key=value,...>\n", red("Error"), cmd)
			return
		}
		name := fields[1]
		rest := strings.Join(fields[2:], " ")
		decl, err := parseInlineTypeDecl(rest)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			return
		}
		if cmd == ":var" {
			r.vars[name] = decl
		} else {
			r.refs[name] = decl
		}
		fmt.Fprintf(out, "%s %s\n", green("ok:"), name)

	case ":vars":
		for name, d := range r.vars {
			fmt.Fprintf(out, "  var %s: %s\n", name, summarizeDecl(d))
		}
		for name, d := range r.refs {
			fmt.Fprintf(out, "  ref %s: %s\n", name, summarizeDecl(d))
		}

	case ":clear":
		r.vars = make(map[string]scenario.TypeDecl)
		r.refs = make(map[string]scenario.TypeDecl)
		fmt.Fprintln(out, green("cleared"))

	case ":history":
		for i, h := range r.history {
			fmt.Fprintf(out, "  %d: %s\n", i+1, h)
		}

	case ":config":
		if len(fields) < 2 {
			fmt.Fprintf(out, "%s: usage: :config <field>=<true|false>\n", red("Error"))
			return
		}
		if err := r.applyConfigFlag(fields[1]); err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			return
		}
		fmt.Fprintf(out, "%s %+v\n", green("ok:"), r.cfg)

	default:
		fmt.Fprintf(out, "%s: unknown command '%s' (try :help)\n", yellow("Warning"), cmd)
	}
}

func (r *REPL) applyConfigFlag(assignment string) error {
	parts := strings.SplitN(assignment, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected <field>=<true|false>, got %q", assignment)
	}
	val := parts[1] == "true"
	switch parts[0] {
	case "enable_unknown_widening":
		r.cfg.EnableUnknownWidening = val
	case "strict_switch_case_overlap":
		r.cfg.StrictSwitchCaseOverlap = val
	case "allow_different_classes_in_relational":
		r.cfg.AllowDifferentClassesInRelational = val
	default:
		return fmt.Errorf("unknown config field %q", parts[0])
	}
	return nil
}

// parseInlineTypeDecl accepts a tiny "key=value,key=value" shorthand and
// turns it into the same scenario.TypeDecl a YAML scenario file would
// declare, e.g. "kind=keyword,keyword=string" or "kind=class,class_name=C".
// Only kind, keyword, lit_kind, lit_str, class_name and ref_name are
// accepted; union members and other nested fields are rejected.
func parseInlineTypeDecl(s string) (scenario.TypeDecl, error) {
	var d scenario.TypeDecl
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return d, fmt.Errorf("expected key=value pairs, got %q", pair)
		}
		key, val := strings.TrimSpace(kv[0]), strings.TrimSpace(kv[1])
		switch key {
		case "kind":
			d.Kind = val
		case "keyword":
			d.Keyword = val
		case "lit_kind":
			d.LitKind = val
		case "lit_str":
			d.LitStr = val
		case "class_name":
			d.ClassName = val
		case "ref_name":
			d.RefName = val
		default:
			return d, fmt.Errorf("unsupported shorthand field %q (use a scenario file for complex types)", key)
		}
	}
	if d.Kind == "" {
		return d, fmt.Errorf("missing required field: kind")
	}
	return d, nil
}

func summarizeDecl(d scenario.TypeDecl) string {
	t, err := d.Build()
	if err != nil {
		return fmt.Sprintf("<invalid: %v>", err)
	}
	return t.String()
}

func (r *REPL) evalExpr(body string, out io.Writer) {
	full := "name: repl\nexpr:\n" + indent(body, "  ")
	s, err := scenario.Parse([]byte(full))
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}
	s.Vars = r.vars
	s.Refs = r.refs
	s.InCondOfCondExpr = true

	result, err := scenario.RunWithConfig(s, r.cfg)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}

	if result.Err != nil {
		fmt.Fprintf(out, "%s %v\n", red("error:"), result.Err)
	} else {
		fmt.Fprintf(out, "%s %s\n", green("type:"), result.Type)
	}
	for _, d := range result.Diagnostics {
		severity := yellow("warning:")
		if !d.Recoverable() {
			severity = red("error:")
		}
		fmt.Fprintf(out, "%s %s\n", severity, d.Error())
	}
	printFacts(result.Facts, out)
}

func printFacts(a *checker.Analyzer, out io.Writer) {
	if len(a.CurFacts.True.Vars) == 0 && len(a.CurFacts.False.Excludes) == 0 {
		return
	}
	fmt.Fprintf(out, "%s\n", cyan("facts:"))
	for name, ty := range a.CurFacts.True.Vars {
		fmt.Fprintf(out, "  true.%s: %s\n", name, ty)
	}
	for name, excludes := range a.CurFacts.False.Excludes {
		fmt.Fprintf(out, "  false.%s excludes: %v\n", name, excludes)
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
