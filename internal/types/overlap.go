package types

// HasOverlap reports whether l and r could denote the same runtime value,
// the structural relation behind `===`/`!==`/`==`/`!=`/`switch` compatibility
// checks (§4.4, NoOverlap diagnostic). It is conservative: when in doubt it
// answers true, since the corresponding diagnostics are best-effort lint
// warnings rather than soundness-critical checks.
func HasOverlap(l, r Type) bool {
	if IsAny(l) || IsAny(r) || IsKwd(l, KwUnknown) || IsKwd(r, KwUnknown) {
		return true
	}
	if IsNever(l) || IsNever(r) {
		return false
	}

	if lu, ok := l.(*TUnion); ok {
		for _, m := range lu.Types {
			if HasOverlap(m, r) {
				return true
			}
		}
		return false
	}
	if ru, ok := r.(*TUnion); ok {
		for _, m := range ru.Types {
			if HasOverlap(l, m) {
				return true
			}
		}
		return false
	}

	if li, ok := l.(*TIntersection); ok {
		for _, m := range li.Types {
			if !HasOverlap(m, r) {
				return false
			}
		}
		return true
	}
	if ri, ok := r.(*TIntersection); ok {
		for _, m := range ri.Types {
			if !HasOverlap(l, m) {
				return false
			}
		}
		return true
	}

	if ll, ok := l.(*TLit); ok {
		if rl, ok := r.(*TLit); ok {
			return ll.Lit.Kind == rl.Lit.Kind && ll.Lit.Equals(rl.Lit)
		}
		return overlapsLitKeyword(ll, r)
	}
	if rl, ok := r.(*TLit); ok {
		return overlapsLitKeyword(rl, l)
	}

	lk, lok := l.(*TKeyword)
	rk, rok := r.(*TKeyword)
	if lok && rok {
		return keywordsOverlap(lk.Kind, rk.Kind)
	}

	if IsEnumVariant(l) || IsEnumVariant(r) {
		return enumOverlap(l, r)
	}

	if lt, ok := l.(*TTuple); ok {
		if rt, ok := r.(*TTuple); ok {
			if len(lt.Elements) != len(rt.Elements) {
				return false
			}
			for i := range lt.Elements {
				if !HasOverlap(lt.Elements[i], rt.Elements[i]) {
					return false
				}
			}
			return true
		}
	}

	// Distinct class/ref/interface/object-like nominal shapes: assume
	// overlap is possible, since structural subtyping between object types
	// is resolved by the caller's Extends/overlap of members, not here.
	return true
}

func overlapsLitKeyword(lit *TLit, other Type) bool {
	kw, ok := other.(*TKeyword)
	if !ok {
		return true
	}
	return keywordsOverlap(lit.Lit.Keyword(), kw.Kind)
}

func keywordsOverlap(a, b KeywordKind) bool {
	if a == KwAny || b == KwAny || a == KwUnknown || b == KwUnknown {
		return true
	}
	if a == b {
		return true
	}
	// null/undefined/void form one nullish family that overlaps internally
	// but not with anything else; every other keyword pair is distinct.
	nullish := func(k KeywordKind) bool {
		return k == KwNull || k == KwUndefined || k == KwVoid
	}
	return nullish(a) && nullish(b)
}

func enumOverlap(l, r Type) bool {
	lv, lok := l.(*TEnumVariant)
	rv, rok := r.(*TEnumVariant)
	if lok && rok {
		return lv.Enum == rv.Enum && lv.Variant == rv.Variant
	}
	le, leok := l.(*TEnum)
	re, reok := r.(*TEnum)
	if lok && reok {
		return lv.Enum == re.Name
	}
	if rok && leok {
		return rv.Enum == le.Name
	}
	if leok && reok {
		return le.Name == re.Name
	}
	return true
}
