package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/facts"
	"github.com/vela-lang/vela/internal/names"
	"github.com/vela-lang/vela/internal/types"
)

// factInstallExpr is a test-only Expr whose "evaluation" directly installs
// facts on the analyzer, standing in for whatever sub-expression machinery
// (out of scope, §1) would normally produce those facts, e.g. a nested
// `typeof` comparison or another binary expression's own narrowing.
type factInstallExpr struct {
	resultType types.Type
	install    func(a *Analyzer)
}

func (*factInstallExpr) exprNode() {}

func testEval(a *Analyzer, e Expr, _ types.Type) (types.Type, error) {
	switch v := e.(type) {
	case *factInstallExpr:
		if v.install != nil {
			v.install(a)
		}
		return v.resultType, nil
	case *Ident:
		n, ok := names.New(v.Sym)
		if !ok {
			return nil, NewInvalidBinaryOpError("", "ident", nil, nil)
		}
		return a.Resolver.TypeOfVar(n, TypeOfModeRValue)
	case *UnaryTypeof:
		// typeof E always evaluates to the "string" runtime type, regardless
		// of E's static type (§4.3.1 operates on the AST shape, not on this
		// value).
		return types.String, nil
	case *StringLit:
		return &types.TLit{Lit: types.Literal{Kind: types.LitStr, Str: v.Value}}, nil
	case *NullLit:
		return types.Null, nil
	case *BinaryExpr:
		return a.ValidateBin("", v, nil, testEval)
	default:
		return types.Any, nil
	}
}

func mustName(t *testing.T, sym string) names.Name {
	t.Helper()
	n, ok := names.New(sym)
	require.True(t, ok, "names.New(%q) failed", sym)
	return n
}

// S1: typeof x === "string" with x: string|number, in an if test.
func TestScenarioS1TypeofEquality(t *testing.T) {
	r := NewEnvResolver(map[string]types.Type{
		"x": types.Union([]types.Type{types.String, types.Number}),
	}, nil)
	a := NewAnalyzer(r)
	a.Ctx.InCondOfCondExpr = true

	bin := &BinaryExpr{
		Op: "===",
		L:  &UnaryTypeof{Arg: &Ident{Sym: "x"}},
		R:  &StringLit{Value: "string"},
	}

	result, err := a.ValidateBin("s1", bin, nil, testEval)
	require.NoError(t, err)
	assert.True(t, result.Equals(types.Boolean), "expected boolean result, got %s", result)

	x := mustName(t, "x")
	assert.Equal(t, facts.TypeofString, a.CurFacts.True.Facts[x.Key()], "expected true-branch fact TypeofString for x")
	assert.Equal(t, facts.NETypeofString, a.CurFacts.False.Facts[x.Key()], "expected false-branch fact NETypeofString for x")
}

// S2: x === 1 with x: 1|2|3.
func TestScenarioS2GenericEquality(t *testing.T) {
	lit1 := &types.TLit{Lit: types.Literal{Kind: types.LitNum, Num: 1}}
	lit2 := &types.TLit{Lit: types.Literal{Kind: types.LitNum, Num: 2}}
	lit3 := &types.TLit{Lit: types.Literal{Kind: types.LitNum, Num: 3}}

	r := NewEnvResolver(map[string]types.Type{
		"x": types.Union([]types.Type{lit1, lit2, lit3}),
	}, nil)
	a := NewAnalyzer(r)
	a.Ctx.InCondOfCondExpr = true

	bin := &BinaryExpr{
		Op: "===",
		L:  &Ident{Sym: "x"},
		R:  &factInstallExpr{resultType: lit1},
	}

	result, err := a.ValidateBin("s2", bin, nil, testEval)
	require.NoError(t, err)
	assert.True(t, result.Equals(types.Boolean), "expected boolean result, got %s", result)

	x := mustName(t, "x")
	trueVar, ok := a.CurFacts.True.Vars[x.Key()]
	require.True(t, ok, "expected true-branch vars[x] to be set")
	assert.True(t, trueVar.Equals(lit1), "expected true-branch vars[x] = 1, got %s", trueVar)

	excl := a.CurFacts.False.Excludes[x.Key()]
	if assert.Len(t, excl, 1) {
		assert.True(t, excl[0].Equals(lit1), "expected false-branch excludes[x] = [1], got %v", excl)
	}
}

// S3: a && b composed fact installation.
func TestScenarioS3LogicalAndComposition(t *testing.T) {
	r := NewEnvResolver(nil, nil)
	a := NewAnalyzer(r)

	x := mustName(t, "x")
	y := mustName(t, "y")

	aExpr := &factInstallExpr{
		resultType: types.Boolean,
		install: func(a *Analyzer) {
			a.CurFacts.True.SetFact(x, facts.Truthy)
			a.CurFacts.False.SetFact(x, facts.Falsy)
		},
	}
	bExpr := &factInstallExpr{
		resultType: types.Number,
		install: func(a *Analyzer) {
			a.CurFacts.True.SetFact(y, facts.Truthy)
		},
	}

	bin := &BinaryExpr{Op: "&&", L: aExpr, R: bExpr}
	result, err := a.ValidateBin("s3", bin, nil, testEval)
	require.NoError(t, err)
	assert.True(t, result.Equals(types.Number), "expected result type to be typeof b (number), got %s", result)

	assert.Equal(t, facts.Truthy, a.CurFacts.True.Facts[x.Key()], "expected parent true_facts[x] = Truthy")
	assert.Equal(t, facts.Truthy, a.CurFacts.True.Facts[y.Key()], "expected parent true_facts[y] = Truthy")
	assert.Equal(t, facts.Falsy, a.CurFacts.False.Facts[x.Key()], "expected parent false_facts[x] = Falsy")
	_, ok := a.CurFacts.False.Facts[y.Key()]
	assert.False(t, ok, "expected parent false_facts to have no entry for y")
}

// S4: "a" in obj where obj: {a: number}|{b: number}.
func TestScenarioS4InNarrowing(t *testing.T) {
	objA := &types.TTypeLit{Members: []types.TypeElement{
		{Kind: types.ElemProperty, Key: "a", Type: types.Number},
	}}
	objB := &types.TTypeLit{Members: []types.TypeElement{
		{Kind: types.ElemProperty, Key: "b", Type: types.Number},
	}}

	r := NewEnvResolver(map[string]types.Type{
		"obj": types.Union([]types.Type{objA, objB}),
	}, nil)
	a := NewAnalyzer(r)
	a.Ctx.InCondOfCondExpr = true

	bin := &BinaryExpr{
		Op: "in",
		L:  &StringLit{Value: "a"},
		R:  &Ident{Sym: "obj"},
	}

	result, err := a.ValidateBin("s4", bin, nil, testEval)
	require.NoError(t, err)
	assert.True(t, result.Equals(types.Boolean), "expected boolean result, got %s", result)

	obj := mustName(t, "obj")
	got, ok := a.CurFacts.True.Vars[obj.Key()]
	require.True(t, ok, "expected true-branch vars[obj] to be set")
	assert.True(t, got.Equals(objA), "expected true-branch vars[obj] = {a: number}, got %s", got)
}

// S5: x instanceof C where x: C|D.
func TestScenarioS5InstanceofNarrowing(t *testing.T) {
	classCDef := &types.ClassDef{Name: "C"}
	classC := &types.TClass{Def: classCDef}
	classD := &types.TClass{Def: &types.ClassDef{Name: "D"}}

	r := NewEnvResolver(map[string]types.Type{
		"x": types.Union([]types.Type{classC, classD}),
	}, map[string]types.Type{
		// C resolves through the environment to its class-def (constructor)
		// type, the same shape a `class C {}` declaration's name carries,
		// not the instance type that x itself holds.
		"C": &types.TClassDef{Def: classCDef},
	})
	a := NewAnalyzer(r)
	a.Ctx.InCondOfCondExpr = true

	bin := &BinaryExpr{
		Op: "instanceof",
		L:  &Ident{Sym: "x"},
		R:  &Ident{Sym: "C"},
	}

	eval := func(a *Analyzer, e Expr, ctxType types.Type) (types.Type, error) {
		if id, ok := e.(*Ident); ok && id.Sym == "C" {
			return &types.TRef{Name: "C"}, nil
		}
		return testEval(a, e, ctxType)
	}

	result, err := a.ValidateBin("s5", bin, nil, eval)
	require.NoError(t, err)
	assert.True(t, result.Equals(types.Boolean), "expected boolean result, got %s", result)

	x := mustName(t, "x")
	trueVar, ok := a.CurFacts.True.Vars[x.Key()]
	require.True(t, ok, "expected true-branch vars[x] to be set")
	assert.True(t, trueVar.Equals(classC), "expected true-branch vars[x] = C, got %s", trueVar)

	excl := a.CurFacts.False.Excludes[x.Key()]
	if assert.Len(t, excl, 1) {
		assert.True(t, excl[0].Equals(classC), "expected false-branch excludes[x] = [C], got %v", excl)
	}
}

// S6: "a" + 1, null + 1, unknown_var + 1.
func TestScenarioS6PlusOperator(t *testing.T) {
	r := NewEnvResolver(map[string]types.Type{
		"unknown_var": types.Unknown,
	}, nil)

	t.Run("string plus number", func(t *testing.T) {
		a := NewAnalyzer(r)
		bin := &BinaryExpr{Op: "+", L: &StringLit{Value: "a"}, R: &factInstallExpr{resultType: &types.TLit{Lit: types.Literal{Kind: types.LitNum, Num: 1}}}}
		result, err := a.ValidateBin("s6a", bin, nil, testEval)
		require.NoError(t, err)
		assert.True(t, result.Equals(types.String), "expected string, got %s", result)
		assert.Empty(t, r.Diagnostics())
	})

	t.Run("null plus number", func(t *testing.T) {
		a := NewAnalyzer(r)
		bin := &BinaryExpr{Op: "+", L: &NullLit{}, R: &factInstallExpr{resultType: &types.TLit{Lit: types.Literal{Kind: types.LitNum, Num: 1}}}}
		_, err := a.ValidateBin("s6b", bin, nil, testEval)
		diag, ok := err.(*Diagnostic)
		require.True(t, ok, "expected *Diagnostic error, got %T: %v", err, err)
		assert.Equal(t, KindTS2365, diag.Kind)
	})

	t.Run("unknown plus number", func(t *testing.T) {
		a := NewAnalyzer(r)
		bin := &BinaryExpr{Op: "+", L: &Ident{Sym: "unknown_var"}, R: &factInstallExpr{resultType: &types.TLit{Lit: types.Literal{Kind: types.LitNum, Num: 1}}}}
		_, err := a.ValidateBin("s6c", bin, nil, testEval)
		diag, ok := err.(*Diagnostic)
		require.True(t, ok, "expected *Diagnostic error, got %T: %v", err, err)
		assert.Equal(t, KindUnknownOperand, diag.Kind)
	})
}
