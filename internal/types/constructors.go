package types

// Union is the smart constructor: it flattens nested unions and removes
// structural duplicates (by Equals), matching the `fixed()` invariant that
// a Union after construction contains no nested unions and no dupes.
func Union(ts []Type) Type {
	flat := flattenUnion(ts)
	deduped := dedupe(flat)
	if len(deduped) == 1 {
		return deduped[0]
	}
	if len(deduped) == 0 {
		return Never
	}
	return &TUnion{Types: deduped}
}

func flattenUnion(ts []Type) []Type {
	var out []Type
	for _, t := range ts {
		if u, ok := t.(*TUnion); ok {
			out = append(out, flattenUnion(u.Types)...)
		} else {
			out = append(out, t)
		}
	}
	return out
}

func dedupe(ts []Type) []Type {
	var out []Type
	for _, t := range ts {
		found := false
		for _, o := range out {
			if t.Equals(o) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, t)
		}
	}
	return out
}

// Intersection is the smart constructor for Intersection, flattening
// nested intersections and removing duplicates.
func Intersection(ts []Type) Type {
	var flat []Type
	for _, t := range ts {
		if i, ok := t.(*TIntersection); ok {
			flat = append(flat, i.Types...)
		} else {
			flat = append(flat, t)
		}
	}
	deduped := dedupe(flat)
	if len(deduped) == 1 {
		return deduped[0]
	}
	return &TIntersection{Types: deduped}
}

// Fixed re-flattens and dedupes a Union/Intersection in place, returning the
// canonical form (used after mapping over union members during narrowing).
func Fixed(t Type) Type {
	switch v := t.(type) {
	case *TUnion:
		return Union(v.Types)
	case *TIntersection:
		return Intersection(v.Types)
	default:
		return t
	}
}
