package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolEq(t *testing.T, got *bool, want *bool) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		assert.Fail(t, "nilness mismatch", "got %v, want %v", got, want)
	default:
		assert.Equal(t, *want, *got)
	}
}

func TestExtendsBasics(t *testing.T) {
	tr := true
	fa := false

	tests := []struct {
		name     string
		sub, sup Type
		want     *bool
	}{
		{"same keyword", String, String, &tr},
		{"sup any", Number, Any, &tr},
		{"sub any undecidable", Any, Number, nil},
		{"never extends everything", Never, String, &tr},
		{"nothing extends never", String, Never, &fa},
		{"lit extends its keyword", &TLit{Lit: Literal{Kind: LitStr, Str: "x"}}, String, &tr},
		{"lit does not extend other keyword", &TLit{Lit: Literal{Kind: LitStr, Str: "x"}}, Number, &fa},
		{"union all extend", Union([]Type{String, &TLit{Lit: Literal{Kind: LitStr, Str: "x"}}}), String, &tr},
		{"sup union any member", String, Union([]Type{Number, String}), &tr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extends(ExtendsOpts{}, tt.sub, tt.sup)
			boolEq(t, got, tt.want)
		})
	}
}

func TestExtendsDisallowDifferentClasses(t *testing.T) {
	a := &TClass{Def: &ClassDef{Name: "A"}}
	b := &TClass{Def: &ClassDef{Name: "B"}}

	// Default: unrelated classes are not extends-related.
	r := Extends(ExtendsOpts{}, a, b)
	if assert.NotNil(t, r, "expected a decidable result for unrelated classes") {
		assert.False(t, *r, "expected unrelated classes to not extend by default")
	}

	sub := &TClass{Def: &ClassDef{Name: "Sub", SuperClass: b}}
	r = Extends(ExtendsOpts{}, sub, b)
	if assert.NotNil(t, r, "expected Sub to extend its superclass B") {
		assert.True(t, *r, "expected Sub to extend its superclass B")
	}
	r = Extends(ExtendsOpts{DisallowDifferentClasses: true}, sub, b)
	if assert.NotNil(t, r, "expected a decidable result under DisallowDifferentClasses") {
		assert.False(t, *r, "expected DisallowDifferentClasses to reject the superclass chain too")
	}
}

func TestHasOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"any overlaps anything", Any, Never, true},
		{"never overlaps nothing", Never, String, false},
		{"same keyword overlaps", String, String, true},
		{"distinct keywords", String, Number, false},
		{"nullish family overlaps", Null, Undefined, true},
		{"nullish vs string", Null, String, false},
		{"union overlaps if any member does", Union([]Type{String, Number}), Number, true},
		{"literal overlaps its keyword", &TLit{Lit: Literal{Kind: LitStr, Str: "x"}}, String, true},
		{"distinct literals", &TLit{Lit: Literal{Kind: LitStr, Str: "x"}}, &TLit{Lit: Literal{Kind: LitStr, Str: "y"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasOverlap(tt.a, tt.b), "HasOverlap(%s, %s)", tt.a, tt.b)
		})
	}
}
