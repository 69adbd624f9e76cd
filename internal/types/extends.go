package types

// ExtendsOpts tunes the Extends relation (spec's `extends` query, three
// valued: Some(true)/Some(false)/None when undecidable locally).
type ExtendsOpts struct {
	// DisallowDifferentClasses makes two class types with different names
	// never extend each other, without walking the superclass chain (used
	// by instanceof narrowing, §4.3.4).
	DisallowDifferentClasses bool
}

func boolPtr(b bool) *bool { return &b }

// Extends decides whether sub is assignable to sup under TypeScript-like
// structural extends semantics. It returns nil when the answer depends on
// information this package doesn't have locally (an unresolved Ref or an
// unconstrained type parameter): callers fall back to conservative
// handling in that case (§9).
func Extends(opts ExtendsOpts, sub, sup Type) *bool {
	if sub == nil || sup == nil {
		return nil
	}

	if IsAny(sup) || IsKwd(sup, KwUnknown) {
		return boolPtr(true)
	}
	if IsAny(sub) {
		return nil
	}
	if IsNever(sub) {
		return boolPtr(true)
	}
	if IsNever(sup) {
		return boolPtr(false)
	}

	if sub.Equals(sup) {
		return boolPtr(true)
	}

	if _, ok := sub.(*TRef); ok {
		return nil
	}
	if _, ok := sup.(*TRef); ok {
		return nil
	}

	if p, ok := sub.(*TParam); ok {
		if p.Constraint == nil {
			return nil
		}
		return Extends(opts, p.Constraint, sup)
	}
	if _, ok := sup.(*TParam); ok {
		return nil
	}

	// sub is a union: every member must extend sup.
	if su, ok := sub.(*TUnion); ok {
		allTrue, anyUnknown := true, false
		for _, m := range su.Types {
			r := Extends(opts, m, sup)
			if r == nil {
				anyUnknown = true
				continue
			}
			if !*r {
				return boolPtr(false)
			}
		}
		if anyUnknown {
			return nil
		}
		return boolPtr(allTrue)
	}

	// sup is a union: sub must extend at least one member.
	if ru, ok := sup.(*TUnion); ok {
		anyUnknown := false
		for _, m := range ru.Types {
			r := Extends(opts, sub, m)
			if r == nil {
				anyUnknown = true
				continue
			}
			if *r {
				return boolPtr(true)
			}
		}
		if anyUnknown {
			return nil
		}
		return boolPtr(false)
	}

	// sub is an intersection: at least one conjunct extending sup suffices.
	if si, ok := sub.(*TIntersection); ok {
		anyUnknown := false
		for _, m := range si.Types {
			r := Extends(opts, m, sup)
			if r == nil {
				anyUnknown = true
				continue
			}
			if *r {
				return boolPtr(true)
			}
		}
		if anyUnknown {
			return nil
		}
		return boolPtr(false)
	}

	// sup is an intersection: sub must extend every conjunct.
	if ri, ok := sup.(*TIntersection); ok {
		for _, m := range ri.Types {
			r := Extends(opts, sub, m)
			if r == nil {
				return nil
			}
			if !*r {
				return boolPtr(false)
			}
		}
		return boolPtr(true)
	}

	if lit, ok := sub.(*TLit); ok {
		if kw, ok := sup.(*TKeyword); ok {
			return boolPtr(lit.Lit.Keyword() == kw.Kind)
		}
		return boolPtr(false)
	}

	if ev, ok := sub.(*TEnumVariant); ok {
		if en, ok := sup.(*TEnum); ok {
			return boolPtr(ev.Enum == en.Name)
		}
		return boolPtr(false)
	}

	if _, ok := sub.(*TKeyword); ok {
		return boolPtr(false)
	}

	if subTup, ok := sub.(*TTuple); ok {
		supTup, ok := sup.(*TTuple)
		if !ok {
			if supArr, ok := sup.(*TArray); ok {
				for _, e := range subTup.Elements {
					r := Extends(opts, e, supArr.Element)
					if r == nil {
						return nil
					}
					if !*r {
						return boolPtr(false)
					}
				}
				return boolPtr(true)
			}
			return boolPtr(false)
		}
		if len(subTup.Elements) != len(supTup.Elements) {
			return boolPtr(false)
		}
		for i := range subTup.Elements {
			r := Extends(opts, subTup.Elements[i], supTup.Elements[i])
			if r == nil {
				return nil
			}
			if !*r {
				return boolPtr(false)
			}
		}
		return boolPtr(true)
	}

	if subArr, ok := sub.(*TArray); ok {
		supArr, ok := sup.(*TArray)
		if !ok {
			return boolPtr(false)
		}
		return Extends(opts, subArr.Element, supArr.Element)
	}

	if subCls, ok := sub.(*TClass); ok {
		supCls, ok := sup.(*TClass)
		if !ok {
			if supIface, ok := sup.(*TInterface); ok {
				return boolPtr(membersSatisfy(subCls.Def.Body, supIface.Members))
			}
			return boolPtr(false)
		}
		if subCls.Def.Name == supCls.Def.Name {
			return boolPtr(true)
		}
		if opts.DisallowDifferentClasses {
			return boolPtr(false)
		}
		cur := subCls.Def.SuperClass
		for cur != nil {
			c, ok := cur.(*TClass)
			if !ok {
				break
			}
			if c.Def.Name == supCls.Def.Name {
				return boolPtr(true)
			}
			cur = c.Def.SuperClass
		}
		return boolPtr(false)
	}

	subObj, subIsObj := objectMembers(sub)
	supObj, supIsObj := objectMembers(sup)
	if subIsObj && supIsObj {
		return boolPtr(membersSatisfy(subObj, supObj))
	}

	return boolPtr(false)
}

func objectMembers(t Type) ([]TypeElement, bool) {
	switch v := t.(type) {
	case *TTypeLit:
		return v.Members, true
	case *TInterface:
		return v.Members, true
	case *TClassDef:
		return v.Def.Body, true
	}
	return nil, false
}

// membersSatisfy reports whether every member sup requires is present and
// compatible in sub (width + depth structural subtyping, no optionality
// tracked at this layer).
func membersSatisfy(sub, sup []TypeElement) bool {
	for _, want := range sup {
		found := false
		for _, have := range sub {
			if have.Key != want.Key || have.Kind != want.Kind {
				continue
			}
			switch want.Kind {
			case ElemProperty:
				if have.Type == nil || want.Type == nil {
					found = true
					break
				}
				r := Extends(ExtendsOpts{}, have.Type, want.Type)
				found = r == nil || *r
			case ElemMethod:
				found = len(have.Params) == len(want.Params)
			default:
				found = true
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
