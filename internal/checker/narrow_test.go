package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vela-lang/vela/internal/types"
)

// isValidLhsOfInstanceof's Union/Intersection quantifiers mirror stc's
// validate_rhs_of_instanceof sibling (bin.rs ~1099-1101): a union is valid
// if any member is, an intersection is valid only if every member is.
func TestIsValidLhsOfInstanceofUnionIsAnyOf(t *testing.T) {
	someObject := &types.TInterface{Name: "SomeObject"}
	u := types.Union([]types.Type{types.Number, someObject})
	assert.True(t, isValidLhsOfInstanceof(u), "(number | SomeObject) is a valid instanceof LHS because SomeObject is valid")
}

func TestIsValidLhsOfInstanceofIntersectionIsAllOf(t *testing.T) {
	objLit := &types.TTypeLit{Members: []types.TypeElement{
		{Kind: types.ElemProperty, Key: "foo", Type: types.Number},
	}}
	i := types.Intersection([]types.Type{types.String, objLit})
	assert.False(t, isValidLhsOfInstanceof(i), "(string & {foo: number}) is not a valid instanceof LHS because string is invalid")
}

func TestIsValidLhsOfInstanceofIntersectionAllValidPasses(t *testing.T) {
	objLit := &types.TTypeLit{Members: []types.TypeElement{
		{Kind: types.ElemProperty, Key: "foo", Type: types.Number},
	}}
	i := types.Intersection([]types.Type{&types.TInterface{Name: "A"}, objLit})
	assert.True(t, isValidLhsOfInstanceof(i))
}

func TestIsValidLhsOfInstanceofUnionAllInvalidFails(t *testing.T) {
	u := types.Union([]types.Type{types.Number, types.String})
	assert.False(t, isValidLhsOfInstanceof(u))
}
