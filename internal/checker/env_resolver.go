package checker

import (
	"fmt"

	"github.com/vela-lang/vela/internal/facts"
	"github.com/vela-lang/vela/internal/names"
	"github.com/vela-lang/vela/internal/types"
)

// EnvResolver is a straightforward Resolver backed by a flat variable
// declaration environment and C1's structural helpers. It is a complete,
// working implementation of the external-collaborator surface (§6) for
// callers (cmd/velac, cmd/velarepl, tests) that don't need a full module
// system: declaration-site resolution is "look up the name in a map",
// and the assignability/subtype/overlap oracles delegate straight to
// internal/types (Extends, HasOverlap) the way the core itself would once
// wired to a real environment.
type EnvResolver struct {
	Vars  map[string]types.Type
	Refs  map[string]types.Type
	diags []*Diagnostic
}

// NewEnvResolver builds an EnvResolver over the given variable/reference
// declarations.
func NewEnvResolver(vars, refs map[string]types.Type) *EnvResolver {
	if vars == nil {
		vars = map[string]types.Type{}
	}
	if refs == nil {
		refs = map[string]types.Type{}
	}
	return &EnvResolver{Vars: vars, Refs: refs}
}

func (e *EnvResolver) Diagnostics() []*Diagnostic { return e.diags }

func (e *EnvResolver) TypeOfVar(id names.Name, _ TypeOfMode) (types.Type, error) {
	if t, ok := e.Vars[id.Key()]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unbound variable: %s", id.String())
}

func (e *EnvResolver) ResolveTypeof(entityName []string) (types.Type, error) {
	n, ok := names.New(entityName...)
	if !ok {
		return nil, fmt.Errorf("invalid entity name")
	}
	return e.TypeOfVar(n, TypeOfModeRValue)
}

func (e *EnvResolver) AccessProperty(obj types.Type, key string, _ TypeOfMode, _ IdCtx) (types.Type, error) {
	members, ok := objectMembersOf(obj)
	if !ok {
		return nil, fmt.Errorf("type %s has no properties", obj)
	}
	for _, m := range members {
		if m.Key == key {
			return m.Type, nil
		}
	}
	return nil, fmt.Errorf("property %q not found on %s", key, obj)
}

func objectMembersOf(t types.Type) ([]types.TypeElement, bool) {
	switch v := t.(type) {
	case *types.TTypeLit:
		return v.Members, true
	case *types.TInterface:
		return v.Members, true
	}
	return nil, false
}

// ResolveRef implements types.RefResolver.
func (e *EnvResolver) ResolveRef(name string, _ []types.Type) (types.Type, bool) {
	t, ok := e.Refs[name]
	return t, ok
}

func (e *EnvResolver) Assign(lhs, rhs types.Type) error {
	if r := types.Extends(types.ExtendsOpts{}, rhs, lhs); r == nil || *r {
		return nil
	}
	return fmt.Errorf("type %s is not assignable to type %s", rhs, lhs)
}

func (e *EnvResolver) AssignWithOpts(_ AssignOpts, lhs, rhs types.Type) error {
	return e.Assign(lhs, rhs)
}

func (e *EnvResolver) AssignParams(lhsParams, rhsParams []types.Type) error {
	if len(lhsParams) != len(rhsParams) {
		return fmt.Errorf("parameter count mismatch: %d vs %d", len(lhsParams), len(rhsParams))
	}
	for i := range lhsParams {
		if err := e.Assign(lhsParams[i], rhsParams[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *EnvResolver) Extends(opts types.ExtendsOpts, sub, sup types.Type) *bool {
	return types.Extends(opts, sub, sup)
}

func (e *EnvResolver) HasOverlap(a, b types.Type) bool {
	return types.HasOverlap(a, b)
}

func (e *EnvResolver) ExpandFully(t types.Type, preserveRef bool) (types.Type, error) {
	return types.ExpandFully(e, t, preserveRef, nil)
}

func (e *EnvResolver) ExpandTopRef(t types.Type) (types.Type, error) {
	return types.ExpandTopRef(e, t)
}

func (e *EnvResolver) Normalize(t types.Type) types.Type {
	return types.Normalize(t)
}

func (e *EnvResolver) FilterTypesWithProperty(t types.Type, prop string) (types.Type, error) {
	u, ok := t.(*types.TUnion)
	if !ok {
		if _, err := e.AccessProperty(t, prop, TypeOfModeRValue, IdCtx{}); err != nil {
			return t, nil
		}
		return t, nil
	}
	var kept []types.Type
	for _, m := range u.Types {
		if _, err := e.AccessProperty(m, prop, TypeOfModeRValue, IdCtx{}); err == nil {
			kept = append(kept, m)
		}
	}
	return types.Union(kept), nil
}

func (e *EnvResolver) MakeInstanceOrReport(t types.Type) types.Type {
	return t
}

func (e *EnvResolver) ApplyTypeFactsToType(t types.Type, tf facts.TypeFacts) types.Type {
	if tf.Has(facts.NENull) {
		t = removeFromUnion(t, types.Null)
	}
	if tf.Has(facts.NEUndefined) {
		t = removeFromUnion(t, types.Undefined)
	}
	return t
}

func removeFromUnion(t types.Type, remove types.Type) types.Type {
	u, ok := t.(*types.TUnion)
	if !ok {
		if t.Equals(remove) {
			return types.Never
		}
		return t
	}
	var kept []types.Type
	for _, m := range u.Types {
		if !m.Equals(remove) {
			kept = append(kept, m)
		}
	}
	return types.Union(kept)
}

func (e *EnvResolver) DenyNullOrUndefined(_ string, t types.Type) error {
	if types.IsKwd(t, types.KwNull) {
		return fmt.Errorf("object is possibly 'null'")
	}
	if types.IsKwd(t, types.KwUndefined) {
		return fmt.Errorf("object is possibly 'undefined'")
	}
	return nil
}

func (e *EnvResolver) KindsOfTypeElements(t types.Type) []types.TypeElementKind {
	members, ok := objectMembersOf(t)
	if !ok {
		return nil
	}
	kinds := make([]types.TypeElementKind, len(members))
	for i, m := range members {
		kinds[i] = m.Kind
	}
	return kinds
}

func (e *EnvResolver) CanBeCastedToNumberInRHS(t types.Type) bool {
	if types.IsNum(t) {
		return true
	}
	if types.IsKwd(t, types.KwBigInt) {
		return true
	}
	if types.IsKwd(t, types.KwBoolean) || types.IsBooleanLike(t) {
		return true
	}
	if types.IsEnumType(t) {
		return true
	}
	return false
}

func (e *EnvResolver) MayGeneralize(t types.Type) bool {
	switch v := t.(type) {
	case *types.TLit:
		return !v.NoGeneralize
	case *types.TUnion:
		return !v.NoGeneralize
	case *types.TIntersection:
		return !v.NoGeneralize
	}
	return true
}

func (e *EnvResolver) Report(d *Diagnostic) {
	e.diags = append(e.diags, d)
}

func (e *EnvResolver) Marks() types.Marks {
	return types.Marks{}
}
