package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/internal/types"
)

func TestExtractNameForAssignment(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
		ok   bool
	}{
		{"ident", &Ident{Sym: "x"}, "x", true},
		{"member", &Member{Obj: &Ident{Sym: "x"}, Prop: "y"}, "x.y", true},
		{"paren", &Paren{Inner: &Ident{Sym: "x"}}, "x", true},
		{"assign target", &AssignExpr{Target: &Ident{Sym: "x"}, Value: &Ident{Sym: "y"}}, "x", true},
		{"computed member fails", &Member{Obj: &Ident{Sym: "x"}, Prop: "y", Computed: true}, "", false},
		{"string lit fails", &StringLit{Value: "x"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ExtractNameForAssignment(tt.expr)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, n.String())
			}
		})
	}
}

func TestResolveQueryImportUnimplemented(t *testing.T) {
	r := NewEnvResolver(nil, nil)
	_, err := resolveQuery(r, "span", QueryExprRef{IsImport: true})
	diag, ok := err.(*Diagnostic)
	require.True(t, ok, "expected *Diagnostic, got %T: %v", err, err)
	assert.Equal(t, KindUnimplementedQueryImport, diag.Kind)
}

func TestAssignToQueryType(t *testing.T) {
	r := NewEnvResolver(map[string]types.Type{
		"x": types.Union([]types.Type{types.String, types.Number}),
	}, nil)

	err := AssignToQueryType(r, "span", QueryExprRef{EntityName: []string{"x"}}, types.String)
	assert.NoError(t, err, "expected string assignable to typeof x")

	err = AssignToQueryType(r, "span", QueryExprRef{EntityName: []string{"x"}}, types.Boolean)
	assert.Error(t, err, "expected boolean not assignable to typeof x (string|number)")
}

func TestAssignFromQueryType(t *testing.T) {
	r := NewEnvResolver(map[string]types.Type{
		"x": types.String,
	}, nil)

	err := AssignFromQueryType(r, "span", types.Union([]types.Type{types.String, types.Number}), QueryExprRef{EntityName: []string{"x"}})
	assert.NoError(t, err, "expected typeof x (string) assignable to string|number")
}
