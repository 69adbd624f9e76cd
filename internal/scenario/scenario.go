// Package scenario loads a binary-expression check as a YAML document, the
// way internal/eval_harness loads a BenchmarkSpec: yaml.Unmarshal plus a
// required-field validation pass. A Scenario names a variable environment,
// an expression to check, and the Config toggles to run it under; cmd/velac
// and cmd/velarepl both build on Run to turn a file/line into a checker
// result without owning their own copy of the YAML shapes.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vela-lang/vela/internal/checker"
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/names"
	"github.com/vela-lang/vela/internal/types"
)

// TypeDecl is the YAML shape of a types.Type. Exactly one of its fields
// should be set, selected by Kind.
type TypeDecl struct {
	Kind string `yaml:"kind"`

	// kind: keyword
	Keyword string `yaml:"keyword,omitempty"`

	// kind: lit
	LitKind string  `yaml:"lit_kind,omitempty"`
	LitStr  string  `yaml:"lit_str,omitempty"`
	LitNum  float64 `yaml:"lit_num,omitempty"`
	LitBool bool    `yaml:"lit_bool,omitempty"`

	// kind: union | intersection
	Members []TypeDecl `yaml:"members,omitempty"`

	// kind: class
	ClassName  string    `yaml:"class_name,omitempty"`
	SuperClass *TypeDecl `yaml:"super_class,omitempty"`

	// kind: class_def (the constructor/declaration type of ClassName)
	// reuses ClassName.

	// kind: type_lit
	Properties map[string]TypeDecl `yaml:"properties,omitempty"`

	// kind: ref
	RefName string `yaml:"ref_name,omitempty"`
}

var keywords = map[string]*types.TKeyword{
	"any":       types.Any,
	"unknown":   types.Unknown,
	"never":     types.Never,
	"void":      types.Void,
	"undefined": types.Undefined,
	"null":      types.Null,
	"string":    types.String,
	"number":    types.Number,
	"boolean":   types.Boolean,
	"bigint":    types.BigIntKwd,
	"symbol":    types.SymbolKwd,
	"object":    types.Object,
}

// Build turns a TypeDecl into a types.Type.
func (d TypeDecl) Build() (types.Type, error) {
	switch d.Kind {
	case "keyword":
		kw, ok := keywords[d.Keyword]
		if !ok {
			return nil, fmt.Errorf("unknown keyword %q", d.Keyword)
		}
		return kw, nil

	case "lit":
		switch d.LitKind {
		case "string":
			return &types.TLit{Lit: types.Literal{Kind: types.LitStr, Str: d.LitStr}}, nil
		case "number":
			return &types.TLit{Lit: types.Literal{Kind: types.LitNum, Num: d.LitNum}}, nil
		case "boolean":
			return &types.TLit{Lit: types.Literal{Kind: types.LitBool, Bool: d.LitBool}}, nil
		default:
			return nil, fmt.Errorf("unknown lit_kind %q", d.LitKind)
		}

	case "union":
		members, err := buildAll(d.Members)
		if err != nil {
			return nil, err
		}
		return types.Union(members), nil

	case "intersection":
		members, err := buildAll(d.Members)
		if err != nil {
			return nil, err
		}
		return types.Intersection(members), nil

	case "class", "class_def":
		if d.ClassName == "" {
			return nil, fmt.Errorf("class/class_def requires class_name")
		}
		def := &types.ClassDef{Name: d.ClassName}
		if d.SuperClass != nil {
			super, err := d.SuperClass.Build()
			if err != nil {
				return nil, err
			}
			def.SuperClass = super
		}
		if d.Kind == "class_def" {
			return &types.TClassDef{Def: def}, nil
		}
		return &types.TClass{Def: def}, nil

	case "type_lit":
		members := make([]types.TypeElement, 0, len(d.Properties))
		for key, propDecl := range d.Properties {
			propTy, err := propDecl.Build()
			if err != nil {
				return nil, err
			}
			members = append(members, types.TypeElement{Kind: types.ElemProperty, Key: key, Type: propTy})
		}
		return &types.TTypeLit{Members: members}, nil

	case "ref":
		if d.RefName == "" {
			return nil, fmt.Errorf("ref requires ref_name")
		}
		return &types.TRef{Name: d.RefName}, nil

	default:
		return nil, fmt.Errorf("unknown type kind %q", d.Kind)
	}
}

func buildAll(decls []TypeDecl) ([]types.Type, error) {
	out := make([]types.Type, len(decls))
	for i, m := range decls {
		t, err := m.Build()
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// ExprDecl is the YAML shape of a checker.Expr. Exactly one field applies,
// selected by Kind.
type ExprDecl struct {
	Kind string `yaml:"kind"`

	// kind: ident
	Ident string `yaml:"ident,omitempty"`

	// kind: member
	Obj      *ExprDecl `yaml:"obj,omitempty"`
	Prop     string    `yaml:"prop,omitempty"`
	Computed bool      `yaml:"computed,omitempty"`

	// kind: paren | typeof
	Inner *ExprDecl `yaml:"inner,omitempty"`

	// kind: string_lit
	Str string `yaml:"str,omitempty"`

	// kind: binary
	Op string    `yaml:"op,omitempty"`
	L  *ExprDecl `yaml:"l,omitempty"`
	R  *ExprDecl `yaml:"r,omitempty"`
}

// Build turns an ExprDecl into a checker.Expr.
func (d ExprDecl) Build() (checker.Expr, error) {
	switch d.Kind {
	case "ident":
		if d.Ident == "" {
			return nil, fmt.Errorf("ident expr requires ident")
		}
		return &checker.Ident{Sym: d.Ident}, nil

	case "member":
		if d.Obj == nil {
			return nil, fmt.Errorf("member expr requires obj")
		}
		obj, err := d.Obj.Build()
		if err != nil {
			return nil, err
		}
		return &checker.Member{Obj: obj, Prop: d.Prop, Computed: d.Computed}, nil

	case "paren":
		if d.Inner == nil {
			return nil, fmt.Errorf("paren expr requires inner")
		}
		inner, err := d.Inner.Build()
		if err != nil {
			return nil, err
		}
		return &checker.Paren{Inner: inner}, nil

	case "typeof":
		if d.Inner == nil {
			return nil, fmt.Errorf("typeof expr requires inner")
		}
		inner, err := d.Inner.Build()
		if err != nil {
			return nil, err
		}
		return &checker.UnaryTypeof{Arg: inner}, nil

	case "string_lit":
		return &checker.StringLit{Value: d.Str}, nil

	case "null_lit":
		return &checker.NullLit{}, nil

	case "binary":
		if d.L == nil || d.R == nil {
			return nil, fmt.Errorf("binary expr requires l and r")
		}
		l, err := d.L.Build()
		if err != nil {
			return nil, err
		}
		r, err := d.R.Build()
		if err != nil {
			return nil, err
		}
		return &checker.BinaryExpr{Op: d.Op, L: l, R: r}, nil

	default:
		return nil, fmt.Errorf("unknown expr kind %q", d.Kind)
	}
}

// Scenario is a complete, YAML-loadable binary-expression check: a variable
// environment plus an expression to run ValidateBin over.
type Scenario struct {
	Name string `yaml:"name"`

	// Vars declares the type of every identifier the expression's Ident
	// nodes may reference (checker.EnvResolver.Vars).
	Vars map[string]TypeDecl `yaml:"vars"`

	// Refs declares named type references the expression resolves through
	// typeof/instanceof (checker.EnvResolver.Refs).
	Refs map[string]TypeDecl `yaml:"refs"`

	// InCondOfCondExpr seeds Ctx.InCondOfCondExpr, the way checking an `if`
	// test's condition would (required for most narrowing to fire).
	InCondOfCondExpr bool `yaml:"in_cond_of_cond_expr"`

	// ConfigPath optionally loads a CheckerConfig YAML file instead of
	// config.Default().
	ConfigPath string `yaml:"config_path,omitempty"`

	Expr ExprDecl `yaml:"expr"`
}

// Load reads and validates a Scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse validates a Scenario from raw YAML bytes (used by cmd/velarepl,
// which reads a scenario body from stdin rather than a file).
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario missing required field: name")
	}
	if s.Expr.Kind == "" {
		return nil, fmt.Errorf("scenario missing required field: expr")
	}
	return &s, nil
}

// Result is the outcome of running a Scenario's expression through
// checker.Analyzer.ValidateBin.
type Result struct {
	Type        types.Type
	Err         error
	Facts       *checker.Analyzer
	Diagnostics []*checker.Diagnostic
}

// identEval resolves every Expr kind Build() can produce directly, with no
// recursion into ValidateBin except for nested BinaryExpr (matching the
// dispatcher's own EvalFunc contract, §6).
func identEval(a *checker.Analyzer, e checker.Expr, contextualType types.Type) (types.Type, error) {
	switch v := e.(type) {
	case *checker.Ident:
		n, ok := names.New(v.Sym)
		if !ok {
			return nil, fmt.Errorf("scenario: invalid identifier %q", v.Sym)
		}
		return a.Resolver.TypeOfVar(n, checker.TypeOfModeRValue)
	case *checker.Member:
		objTy, err := identEval(a, v.Obj, nil)
		if err != nil {
			return nil, err
		}
		return a.Resolver.AccessProperty(objTy, v.Prop, checker.TypeOfModeRValue, checker.IdCtx{})
	case *checker.Paren:
		return identEval(a, v.Inner, contextualType)
	case *checker.UnaryTypeof:
		return types.String, nil
	case *checker.StringLit:
		return &types.TLit{Lit: types.Literal{Kind: types.LitStr, Str: v.Value}}, nil
	case *checker.NullLit:
		return types.Null, nil
	case *checker.BinaryExpr:
		return a.ValidateBin("", v, nil, identEval)
	default:
		return nil, fmt.Errorf("scenario: unsupported expression node %T", e)
	}
}

// Run builds an EnvResolver from the scenario's declarations and evaluates
// its expression through a fresh Analyzer, the entry point both cmd/velac
// and cmd/velarepl call. The Config comes from s.ConfigPath, falling back to
// config.Default() when unset.
func Run(s *Scenario) (*Result, error) {
	cfg := config.Default()
	if s.ConfigPath != "" {
		loaded, err := config.Load(s.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: config: %w", s.Name, err)
		}
		cfg = *loaded
	}
	return RunWithConfig(s, cfg)
}

// RunWithConfig is Run with an explicit CheckerConfig override, letting a
// caller that already holds a config (e.g. a REPL session with toggles
// applied interactively) skip s.ConfigPath entirely.
func RunWithConfig(s *Scenario, cfg config.CheckerConfig) (*Result, error) {
	vars, err := buildTypeMap(s.Vars)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: vars: %w", s.Name, err)
	}
	refs, err := buildTypeMap(s.Refs)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: refs: %w", s.Name, err)
	}

	resolver := checker.NewEnvResolver(vars, refs)
	a := checker.NewAnalyzerWithConfig(resolver, cfg)
	a.Ctx.InCondOfCondExpr = s.InCondOfCondExpr

	expr, err := s.Expr.Build()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: expr: %w", s.Name, err)
	}
	bin, ok := expr.(*checker.BinaryExpr)
	if !ok {
		return nil, fmt.Errorf("scenario %q: expr must be a binary expression at the top level", s.Name)
	}

	resultTy, evalErr := a.ValidateBin(s.Name, bin, nil, identEval)
	return &Result{
		Type:        resultTy,
		Err:         evalErr,
		Facts:       a,
		Diagnostics: resolver.Diagnostics(),
	}, nil
}

func buildTypeMap(decls map[string]TypeDecl) (map[string]types.Type, error) {
	out := make(map[string]types.Type, len(decls))
	for name, d := range decls {
		t, err := d.Build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}
