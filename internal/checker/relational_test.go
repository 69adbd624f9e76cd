package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/types"
)

func TestCanCompareRelativelyIdenticalTypes(t *testing.T) {
	a := NewAnalyzer(NewEnvResolver(nil, nil))
	assert.True(t, a.canCompareRelatively(types.String, types.String), "expected identical types to compare relatively")
}

func TestCanCompareRelativelyStringLiterals(t *testing.T) {
	a := NewAnalyzer(NewEnvResolver(nil, nil))
	lhs := &types.TLit{Lit: types.Literal{Kind: types.LitStr, Str: "a"}}
	rhs := &types.TLit{Lit: types.Literal{Kind: types.LitStr, Str: "b"}}
	assert.True(t, a.canCompareRelatively(lhs, rhs), "expected two string literals to always compare relatively")
}

func TestCanCompareRelativelyEmptyClassesDisallowed(t *testing.T) {
	a := NewAnalyzer(NewEnvResolver(nil, nil))
	lc := &types.TClass{Def: &types.ClassDef{Name: "A"}}
	rc := &types.TClass{Def: &types.ClassDef{Name: "B"}}
	assert.False(t, a.canCompareRelatively(lc, rc), "expected two unrelated empty classes to be rejected by default config")
}

func TestCanCompareRelativelyEmptyClassesAllowedByConfig(t *testing.T) {
	cfg := config.Default()
	cfg.AllowDifferentClassesInRelational = true
	a := NewAnalyzerWithConfig(NewEnvResolver(nil, nil), cfg)
	lc := &types.TClass{Def: &types.ClassDef{Name: "A"}}
	rc := &types.TClass{Def: &types.ClassDef{Name: "B"}}
	assert.True(t, a.canCompareRelatively(lc, rc), "expected AllowDifferentClassesInRelational to permit comparing unrelated empty classes")
}

func TestValidateRelativeComparisonOperandsReportsCannotCompare(t *testing.T) {
	r := NewEnvResolver(nil, nil)
	a := NewAnalyzer(r)
	lc := &types.TClass{Def: &types.ClassDef{Name: "A"}}
	rc := &types.TClass{Def: &types.ClassDef{Name: "B"}}

	a.validateRelativeComparisonOperands("span", "<", lc, rc)

	diags := r.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, KindCannotCompareWithOp, diags[0].Kind)
}

func TestCanCompareTypeElementsRelativelyDifferingArity(t *testing.T) {
	a := NewAnalyzer(NewEnvResolver(nil, nil))
	l := []types.TypeElement{{Kind: types.ElemMethod, Key: "f", Params: []types.Type{types.String}}}
	r := []types.TypeElement{{Kind: types.ElemMethod, Key: "f", Params: []types.Type{types.String, types.Number}}}
	assert.True(t, a.canCompareTypeElementsRelatively(l, r), "expected differing-arity methods with the same key to compare relatively")
}
