package checker

import (
	"github.com/vela-lang/vela/internal/names"
	"github.com/vela-lang/vela/internal/types"
)

// ExtractNameForAssignment turns an AST expression into a dotted Name
// (§4.5). It returns (Name{}, false) for shapes that don't denote an
// assignable name.
func ExtractNameForAssignment(e Expr) (names.Name, bool) {
	switch v := e.(type) {
	case *Paren:
		return ExtractNameForAssignment(v.Inner)

	case *AssignExpr:
		return ExtractNameForAssignment(v.Target)

	case *Member:
		if v.Computed {
			// A computed property never contributes a name here: Member
			// does not record whether the index is a string literal.
			// ExtractComputedStringName handles the string-literal case.
			return names.Name{}, false
		}
		objName, ok := ExtractNameForAssignment(v.Obj)
		if !ok {
			return names.Name{}, false
		}
		return objName.Append(v.Prop), true

	case *Ident:
		return names.New(v.Sym)

	default:
		return names.Name{}, false
	}
}

// ExtractComputedStringName mirrors ExtractNameForAssignment for a
// `Member{Computed:true}` whose index is itself a string literal, which
// the caller resolves before calling (the Expr surface here has no
// literal-valued computed-property node beyond StringLit).
func ExtractComputedStringName(obj Expr, prop string) (names.Name, bool) {
	objName, ok := ExtractNameForAssignment(obj)
	if !ok {
		return names.Name{}, false
	}
	return objName.Append(prop), true
}

// QueryExprRef is the minimal `typeof E` shape C5 needs: either a dotted
// entity name or an `import(...)` form (out of scope).
type QueryExprRef struct {
	EntityName []string
	IsImport   bool
}

// resolveQuery resolves a `typeof E` reference to its underlying type via
// the resolver. The import(...) variant reports Unimplemented (§7).
func resolveQuery(r Resolver, span string, query QueryExprRef) (types.Type, error) {
	if query.IsImport {
		return nil, NewUnimplementedQueryImportError(span)
	}
	return r.ResolveTypeof(query.EntityName)
}

// AssignToQueryType assigns rhs to an LHS typed `typeof E` by resolving E
// through the environment and redirecting the assignment to the resolved
// type (§4.5).
func AssignToQueryType(r Resolver, span string, lhsQuery QueryExprRef, rhs types.Type) error {
	resolved, err := resolveQuery(r, span, lhsQuery)
	if err != nil {
		return err
	}
	return r.Assign(resolved, rhs)
}

// AssignFromQueryType assigns an RHS typed `typeof E` to lhs by resolving
// E through the environment and redirecting the assignment to the
// resolved type (§4.5).
func AssignFromQueryType(r Resolver, span string, lhs types.Type, rhsQuery QueryExprRef) error {
	resolved, err := resolveQuery(r, span, rhsQuery)
	if err != nil {
		return err
	}
	return r.Assign(lhs, resolved)
}
