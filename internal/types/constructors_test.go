package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionFlattensAndDedupes(t *testing.T) {
	nested := Union([]Type{
		Union([]Type{String, Number}),
		Number,
		String,
	})
	u, ok := nested.(*TUnion)
	require.True(t, ok, "expected *TUnion, got %T", nested)
	assert.Len(t, u.Types, 2, "expected 2 deduped members: %s", u)
}

func TestUnionSingleMemberCollapses(t *testing.T) {
	got := Union([]Type{String, String})
	assert.True(t, got.Equals(String), "expected a single-member union to collapse to its member, got %s", got)
}

func TestUnionEmptyIsNever(t *testing.T) {
	got := Union(nil)
	assert.True(t, IsNever(got), "expected Union(nil) to be never, got %s", got)
}

func TestIntersectionFlattensAndDedupes(t *testing.T) {
	nested := Intersection([]Type{
		Intersection([]Type{String, Number}),
		Number,
	})
	i, ok := nested.(*TIntersection)
	require.True(t, ok, "expected *TIntersection, got %T", nested)
	assert.Len(t, i.Types, 2, "expected 2 deduped members: %s", i)
}

func TestUnionEqualsIgnoresMemberOrder(t *testing.T) {
	a := Union([]Type{String, Number})
	b := Union([]Type{Number, String})
	assert.True(t, a.Equals(b), "expected Union member order to not affect Equals: %s vs %s", a, b)
}
