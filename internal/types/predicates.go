package types

// IsKwd reports whether t (normalized one level by the caller if needed)
// is the keyword k.
func IsKwd(t Type, k KeywordKind) bool {
	kw, ok := t.(*TKeyword)
	return ok && kw.Kind == k
}

func IsNum(t Type) bool {
	if IsKwd(t, KwNumber) {
		return true
	}
	lit, ok := t.(*TLit)
	return ok && lit.Lit.Kind == LitNum
}

func IsStr(t Type) bool {
	if IsKwd(t, KwString) {
		return true
	}
	lit, ok := t.(*TLit)
	return ok && lit.Lit.Kind == LitStr
}

func IsAny(t Type) bool { return IsKwd(t, KwAny) }

func IsNever(t Type) bool { return IsKwd(t, KwNever) }

func IsNumLit(t Type) bool {
	lit, ok := t.(*TLit)
	return ok && lit.Lit.Kind == LitNum
}

func IsStrLit(t Type) bool {
	lit, ok := t.(*TLit)
	return ok && lit.Lit.Kind == LitStr
}

func IsTypeParam(t Type) bool {
	_, ok := t.(*TParam)
	return ok
}

func IsInterface(t Type) bool {
	_, ok := t.(*TInterface)
	return ok
}

func IsRefType(t Type) bool {
	_, ok := t.(*TRef)
	return ok
}

func IsEnumType(t Type) bool {
	switch t.(type) {
	case *TEnum, *TEnumVariant:
		return true
	}
	return false
}

// IsStrLitOrUnion reports whether t is a string literal, or a union all of
// whose members are string literals (recursively).
func IsStrLitOrUnion(t Type) bool {
	if u, ok := t.(*TUnion); ok {
		for _, m := range u.Types {
			if !IsStrLitOrUnion(m) {
				return false
			}
		}
		return len(u.Types) > 0
	}
	return IsStrLit(t)
}

// IsStrOrUnion reports whether t is string-like (keyword or literal), or a
// union all of whose members are string-like.
func IsStrOrUnion(t Type) bool {
	if u, ok := t.(*TUnion); ok {
		for _, m := range u.Types {
			if !IsStrOrUnion(m) {
				return false
			}
		}
		return len(u.Types) > 0
	}
	return IsStr(t)
}

// IsEnumVariant reports whether t is a concrete enum variant.
func IsEnumVariant(t Type) bool {
	_, ok := t.(*TEnumVariant)
	return ok
}

// IsIntersectionType reports whether t is an Intersection.
func IsIntersectionType(t Type) bool {
	_, ok := t.(*TIntersection)
	return ok
}

// IsUnionType reports whether t is a Union.
func IsUnionType(t Type) bool {
	_, ok := t.(*TUnion)
	return ok
}

// IsTuple / IsArray report whether t is a Tuple / an Array.
func IsTuple(t Type) bool {
	_, ok := t.(*TTuple)
	return ok
}

func IsArray(t Type) bool {
	_, ok := t.(*TArray)
	return ok
}

// AsBoolKnown reports whether t's runtime truthiness is statically known
// (a boolean literal), returning (value, true) if so.
func AsBoolKnown(t Type) (bool, bool) {
	lit, ok := t.(*TLit)
	if !ok || lit.Lit.Kind != LitBool {
		return false, false
	}
	return lit.Lit.Bool, true
}

// IsBooleanLike reports whether t is the boolean keyword or a boolean literal.
func IsBooleanLike(t Type) bool {
	if IsKwd(t, KwBoolean) {
		return true
	}
	lit, ok := t.(*TLit)
	return ok && lit.Lit.Kind == LitBool
}
