package types

import "fmt"

// RefResolver resolves a named type reference to its definition. It is the
// sole external collaborator C1 needs (§6): module/declaration resolution
// lives outside this core.
type RefResolver interface {
	ResolveRef(name string, args []Type) (Type, bool)
}

// ErrUnresolvedReference is returned by ExpandTopRef when the resolver
// doesn't know the reference.
type ErrUnresolvedReference struct {
	Name string
}

func (e *ErrUnresolvedReference) Error() string {
	return fmt.Sprintf("unresolved reference: %s", e.Name)
}

// Normalize performs one level of canonicalization: it doesn't expand Ref
// by default, but it does flatten/dedupe unions and intersections and peel
// trivial wrapping. Normalize is idempotent.
func Normalize(t Type) Type {
	switch v := t.(type) {
	case *TUnion:
		return Fixed(v)
	case *TIntersection:
		return Fixed(v)
	default:
		return t
	}
}

// ExpandTopRef resolves one layer of Ref via resolver. It fails with
// ErrUnresolvedReference if the name is unknown.
func ExpandTopRef(resolver RefResolver, t Type) (Type, error) {
	ref, ok := t.(*TRef)
	if !ok {
		return t, nil
	}
	resolved, found := resolver.ResolveRef(ref.Name, ref.Args)
	if !found {
		return nil, &ErrUnresolvedReference{Name: ref.Name}
	}
	return resolved, nil
}

// ExpandFully recursively expands Ref nodes. preserveRef=false forces
// resolution of the top-level Ref even when the context would otherwise
// have prevented it (ignore_expand_prevention_for_top in the teacher
// source); this core has no separate "prevention" context flag.
// preserveRef=true leaves every Ref unexpanded, at the top level and
// inside unions, intersections and arrays alike. Callers in the
// dispatcher always pass preserveRef=false.
func ExpandFully(resolver RefResolver, t Type, preserveRef bool, visited map[string]bool) (Type, error) {
	if visited == nil {
		visited = make(map[string]bool)
	}

	switch v := t.(type) {
	case *TRef:
		if preserveRef {
			return t, nil
		}
		if visited[v.Name] {
			// Cyclic reference: the oracle is assumed to terminate (§9),
			// so we stop expanding rather than loop forever.
			return t, nil
		}
		visited[v.Name] = true
		resolved, found := resolver.ResolveRef(v.Name, v.Args)
		if !found {
			return nil, &ErrUnresolvedReference{Name: v.Name}
		}
		return ExpandFully(resolver, resolved, preserveRef, visited)

	case *TUnion:
		members := make([]Type, len(v.Types))
		for i, m := range v.Types {
			exp, err := ExpandFully(resolver, m, preserveRef, visited)
			if err != nil {
				return nil, err
			}
			members[i] = exp
		}
		return Union(members), nil

	case *TIntersection:
		members := make([]Type, len(v.Types))
		for i, m := range v.Types {
			exp, err := ExpandFully(resolver, m, preserveRef, visited)
			if err != nil {
				return nil, err
			}
			members[i] = exp
		}
		return Intersection(members), nil

	case *TArray:
		elem, err := ExpandFully(resolver, v.Element, preserveRef, visited)
		if err != nil {
			return nil, err
		}
		return &TArray{Element: elem}, nil

	default:
		return t, nil
	}
}

// Marks carries widening/narrowing markers consulted by GeneralizeLit (§6).
// This core tracks only the prevent-generalize bit directly on type nodes
// (NoGeneralize), so Marks is an intentionally empty placeholder kept for
// signature parity with the external-collaborator surface.
type Marks struct{}

// PreventGeneralize marks a type so further widening passes skip it
// (prevent_generalize, §4.3.3/§9): a type-level mark, not a structural
// change.
func PreventGeneralize(t Type) Type {
	switch v := t.(type) {
	case *TLit:
		cp := *v
		cp.NoGeneralize = true
		return &cp
	case *TUnion:
		cp := *v
		cp.NoGeneralize = true
		return &cp
	case *TIntersection:
		cp := *v
		cp.NoGeneralize = true
		return &cp
	default:
		return t
	}
}

func isMarkedNoGeneralize(t Type) bool {
	switch v := t.(type) {
	case *TLit:
		return v.NoGeneralize
	case *TUnion:
		return v.NoGeneralize
	case *TIntersection:
		return v.NoGeneralize
	}
	return false
}

// GeneralizeLit widens literal types to their base keyword, except where a
// literal was marked as explicitly requested (prevent_generalize).
func GeneralizeLit(t Type, _ Marks) Type {
	if isMarkedNoGeneralize(t) {
		return t
	}
	switch v := t.(type) {
	case *TLit:
		return Kwd(v.Lit.Keyword())
	case *TUnion:
		members := make([]Type, len(v.Types))
		for i, m := range v.Types {
			members[i] = GeneralizeLit(m, Marks{})
		}
		return Union(members)
	default:
		return t
	}
}

// ForceGeneralizeTopLevelLiterals widens unconditionally at the outermost
// union member, ignoring the prevent_generalize mark.
func ForceGeneralizeTopLevelLiterals(t Type) Type {
	switch v := t.(type) {
	case *TLit:
		return Kwd(v.Lit.Keyword())
	case *TUnion:
		members := make([]Type, len(v.Types))
		for i, m := range v.Types {
			if lit, ok := m.(*TLit); ok {
				members[i] = Kwd(lit.Lit.Keyword())
			} else {
				members[i] = m
			}
		}
		return Union(members)
	default:
		return t
	}
}

// RemoveFalsy removes null, undefined, false, 0, "", 0n from a union,
// collapsing to never if the result is empty.
func RemoveFalsy(t Type) Type {
	if isFalsy(t) {
		return Never
	}
	if u, ok := t.(*TUnion); ok {
		var kept []Type
		for _, m := range u.Types {
			if !isFalsy(m) {
				kept = append(kept, m)
			}
		}
		if len(kept) == 0 {
			return Never
		}
		return Union(kept)
	}
	return t
}

func isFalsy(t Type) bool {
	switch v := t.(type) {
	case *TKeyword:
		return v.Kind == KwNull || v.Kind == KwUndefined
	case *TLit:
		switch v.Lit.Kind {
		case LitBool:
			return v.Lit.Bool == false
		case LitNum:
			return v.Lit.Num == 0
		case LitStr:
			return v.Lit.Str == ""
		case LitBigInt:
			return v.Lit.BigInt == "0"
		}
	}
	return false
}
