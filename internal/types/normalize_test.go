package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdempotent(t *testing.T) {
	tests := []struct {
		name string
		t    Type
	}{
		{"plain keyword", String},
		{"flat union", Union([]Type{String, Number})},
		{"nested union", &TUnion{Types: []Type{&TUnion{Types: []Type{String, Number}}, Boolean}}},
		{"duplicate members", &TUnion{Types: []Type{String, String, Number}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Normalize(tt.t)
			twice := Normalize(once)
			assert.True(t, once.Equals(twice), "Normalize not idempotent: once=%s twice=%s", once, twice)
		})
	}
}

func TestGeneralizeLitIdempotent(t *testing.T) {
	lit := &TLit{Lit: Literal{Kind: LitStr, Str: "x"}}
	once := GeneralizeLit(lit, Marks{})
	twice := GeneralizeLit(once, Marks{})
	assert.True(t, once.Equals(twice), "GeneralizeLit not idempotent: once=%s twice=%s", once, twice)
	assert.True(t, IsKwd(once, KwString), "expected string literal to generalize to string keyword, got %s", once)
}

func TestGeneralizeLitRespectsNoGeneralize(t *testing.T) {
	lit := &TLit{Lit: Literal{Kind: LitNum, Num: 1}, NoGeneralize: true}
	got := GeneralizeLit(lit, Marks{})
	assert.True(t, got.Equals(lit), "expected NoGeneralize literal to survive GeneralizeLit, got %s", got)
}

func TestRemoveFalsyIdempotent(t *testing.T) {
	u := Union([]Type{Null, Undefined, String, &TLit{Lit: Literal{Kind: LitNum, Num: 0}}})
	once := RemoveFalsy(u)
	twice := RemoveFalsy(once)
	assert.True(t, once.Equals(twice), "RemoveFalsy not idempotent: once=%s twice=%s", once, twice)
	assert.True(t, once.Equals(String), "expected only string to survive RemoveFalsy, got %s", once)
}

func TestRemoveFalsyAllFalsyCollapsesToNever(t *testing.T) {
	u := Union([]Type{Null, Undefined})
	got := RemoveFalsy(u)
	assert.True(t, IsNever(got), "expected never when all members are falsy, got %s", got)
}

func TestPreventGeneralizeBlocksForceGeneralizeNot(t *testing.T) {
	// PreventGeneralize is a mark consulted by GeneralizeLit, not by
	// ForceGeneralizeTopLevelLiterals (§4.1: that helper is unconditional).
	lit := &TLit{Lit: Literal{Kind: LitStr, Str: "x"}}
	marked := PreventGeneralize(lit).(*TLit)
	require.True(t, marked.NoGeneralize, "expected PreventGeneralize to set NoGeneralize")
	assert.True(t, GeneralizeLit(marked, Marks{}).Equals(marked), "expected GeneralizeLit to skip a NoGeneralize literal")
	forced := ForceGeneralizeTopLevelLiterals(marked)
	assert.True(t, IsKwd(forced, KwString), "expected ForceGeneralizeTopLevelLiterals to ignore NoGeneralize, got %s", forced)
}

type stubResolver struct {
	refs map[string]Type
}

func (s stubResolver) ResolveRef(name string, _ []Type) (Type, bool) {
	t, ok := s.refs[name]
	return t, ok
}

func TestExpandTopRefUnresolved(t *testing.T) {
	r := stubResolver{refs: map[string]Type{}}
	_, err := ExpandTopRef(r, &TRef{Name: "Missing"})
	require.Error(t, err)
	_, ok := err.(*ErrUnresolvedReference)
	assert.True(t, ok, "expected *ErrUnresolvedReference, got %T", err)
}

func TestExpandFullyResolvesCyclesWithoutLooping(t *testing.T) {
	// A -> B -> A: ExpandFully must terminate via its visited set (§9).
	r := stubResolver{refs: map[string]Type{}}
	r.refs["A"] = &TRef{Name: "B"}
	r.refs["B"] = &TRef{Name: "A"}

	got, err := ExpandFully(r, &TRef{Name: "A"}, false, nil)
	require.NoError(t, err)
	ref, ok := got.(*TRef)
	require.True(t, ok, "expected expansion to stop at the revisited Ref, got %s", got)
	assert.Equal(t, "A", ref.Name)
}

func TestExpandFullyPreserveRef(t *testing.T) {
	r := stubResolver{refs: map[string]Type{"A": String}}
	got, err := ExpandFully(r, &TRef{Name: "A"}, true, nil)
	require.NoError(t, err)
	ref, ok := got.(*TRef)
	require.True(t, ok, "expected preserveRef=true to leave the Ref untouched, got %s", got)
	assert.Equal(t, "A", ref.Name)
}
