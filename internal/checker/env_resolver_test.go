package checker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/types"
)

func TestEnvResolverTypeOfVar(t *testing.T) {
	r := NewEnvResolver(map[string]types.Type{"x": types.String}, nil)
	n := mustName(t, "x")

	got, err := r.TypeOfVar(n, TypeOfModeRValue)
	require.NoError(t, err)
	assert.True(t, got.Equals(types.String), "expected string, got %s", got)

	_, err = r.TypeOfVar(mustName(t, "y"), TypeOfModeRValue)
	assert.Error(t, err, "expected error for unbound variable")
}

func TestEnvResolverAccessProperty(t *testing.T) {
	obj := &types.TTypeLit{Members: []types.TypeElement{
		{Kind: types.ElemProperty, Key: "a", Type: types.Number},
	}}
	r := NewEnvResolver(nil, nil)

	got, err := r.AccessProperty(obj, "a", TypeOfModeRValue, IdCtx{})
	require.NoError(t, err)
	assert.True(t, got.Equals(types.Number), "expected number, got %s", got)

	_, err = r.AccessProperty(obj, "b", TypeOfModeRValue, IdCtx{})
	assert.Error(t, err, "expected error for missing property")
}

func TestEnvResolverKindsOfTypeElements(t *testing.T) {
	obj := &types.TTypeLit{Members: []types.TypeElement{
		{Kind: types.ElemProperty, Key: "a", Type: types.Number},
		{Kind: types.ElemMethod, Key: "f", Type: types.Any},
	}}
	r := NewEnvResolver(nil, nil)

	got := r.KindsOfTypeElements(obj)
	want := []types.TypeElementKind{types.ElemProperty, types.ElemMethod}
	assert.Empty(t, cmp.Diff(want, got), "KindsOfTypeElements mismatch (-want +got)")
}

func TestEnvResolverDiagnosticsAccumulate(t *testing.T) {
	r := NewEnvResolver(nil, nil)
	r.Report(NewUnknownOperandError("plus_test"))
	r.Report(NewInvalidRhsInInstanceOfError("instanceof_test", types.String))

	got := make([]DiagnosticKind, 0, len(r.Diagnostics()))
	for _, d := range r.Diagnostics() {
		got = append(got, d.Kind)
	}
	want := []DiagnosticKind{KindUnknownOperand, KindInvalidRhsInInstanceOf}
	assert.Empty(t, cmp.Diff(want, got), "accumulated diagnostic kinds mismatch (-want +got)")
}

func TestEnvResolverAssign(t *testing.T) {
	r := NewEnvResolver(nil, nil)

	err := r.Assign(types.Union([]types.Type{types.String, types.Number}), types.String)
	assert.NoError(t, err, "expected string assignable to string|number")

	err = r.Assign(types.String, types.Number)
	assert.Error(t, err, "expected number not assignable to string")
}
