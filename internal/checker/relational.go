package checker

import "github.com/vela-lang/vela/internal/types"

// validateRelativeComparisonOperands implements §4.4.2.
func (a *Analyzer) validateRelativeComparisonOperands(span, op string, l, r types.Type) {
	gl := types.ForceGeneralizeTopLevelLiterals(l)
	gr := types.ForceGeneralizeTopLevelLiterals(r)

	gl = a.expandTopRefBestEffort(gl)
	gr = a.expandTopRefBestEffort(gr)

	if ltl, ok := gl.(*types.TTypeLit); ok {
		if rtl, ok := gr.(*types.TTypeLit); ok {
			if a.indexSignaturesIncompatible(ltl, rtl) {
				a.Resolver.Report(NewCannotCompareWithOpError(span, op, l, r))
				return
			}
		}
	}

	if !a.canCompareRelatively(gl, gr) {
		a.Resolver.Report(NewCannotCompareWithOpError(span, op, l, r))
	}
}

func (a *Analyzer) expandTopRefBestEffort(t types.Type) types.Type {
	if !types.IsRefType(t) {
		return t
	}
	expanded, err := a.Resolver.ExpandTopRef(t)
	if err != nil {
		return t
	}
	return expanded
}

// indexSignaturesIncompatible scans both TypeLits for index signatures
// sharing the same parameter type whose value types are mutually
// non-assignable.
func (a *Analyzer) indexSignaturesIncompatible(l, r *types.TTypeLit) bool {
	for _, lm := range l.Members {
		if lm.Kind != types.ElemIndex {
			continue
		}
		for _, rm := range r.Members {
			if rm.Kind != types.ElemIndex {
				continue
			}
			if !lm.IndexParamType.Equals(rm.IndexParamType) {
				continue
			}
			err1 := a.Resolver.Assign(rm.IndexValueType, lm.IndexValueType)
			err2 := a.Resolver.Assign(lm.IndexValueType, rm.IndexValueType)
			if err1 != nil && err2 != nil {
				return true
			}
		}
	}
	return false
}

// canCompareRelatively implements can_compare_relatively.
func (a *Analyzer) canCompareRelatively(l, r types.Type) bool {
	if l.Equals(r) {
		return true
	}
	if types.IsStrLit(l) && types.IsStrLit(r) {
		return true
	}

	if types.IsTypeParam(l) || types.IsTypeParam(r) {
		lp, lok := l.(*types.TParam)
		rp, rok := r.(*types.TParam)
		if lok && rok {
			_ = lp
			_ = rp
			return true
		}
		other := r
		if !lok {
			other = l
		}
		switch other.(type) {
		case *types.TTuple, *types.TArray:
			return false
		}
		if types.IsKwd(other, types.KwBoolean) || types.IsKwd(other, types.KwNumber) || types.IsKwd(other, types.KwString) || types.IsKwd(other, types.KwVoid) || types.IsEnumType(other) {
			return false
		}
		return true
	}

	if ltl, ok := l.(*types.TTypeLit); ok && len(ltl.Members) == 0 {
		return true
	}
	if rtl, ok := r.(*types.TTypeLit); ok && len(rtl.Members) == 0 {
		return true
	}

	if lc, ok := l.(*types.TClass); ok {
		if rc, ok := r.(*types.TClass); ok {
			lEmpty := lc.Def.SuperClass == nil && len(lc.Def.Body) == 0
			rEmpty := rc.Def.SuperClass == nil && len(rc.Def.Body) == 0
			if lc.Def.SuperClass == nil && rc.Def.SuperClass == nil && (lEmpty || rEmpty) && !a.Config.AllowDifferentClassesInRelational {
				return false
			}
		}
	}

	if ltl, ok := l.(*types.TTypeLit); ok {
		if rtl, ok := r.(*types.TTypeLit); ok {
			if a.canCompareTypeElementsRelatively(ltl.Members, rtl.Members) {
				return true
			}
		}
	}

	return a.Resolver.HasOverlap(l, r)
}

// canCompareTypeElementsRelatively implements can_compare_type_elements_relatively:
// method signatures matching by key but differing in arity or parameter
// types compare relatively (return true). Per §9's open question, the
// computed return-type comparison result is intentionally discarded here,
// preserving the source's own (possibly latent) behavior rather than
// inventing a use for it.
func (a *Analyzer) canCompareTypeElementsRelatively(l, r []types.TypeElement) bool {
	for _, lm := range l {
		if lm.Kind != types.ElemMethod {
			continue
		}
		for _, rm := range r {
			if rm.Kind != types.ElemMethod || rm.Key != lm.Key {
				continue
			}
			if len(lm.Params) != len(rm.Params) {
				return true
			}
			for i := range lm.Params {
				if !lm.Params[i].Equals(rm.Params[i]) {
					return true
				}
			}
			// ret_ty_res computed and discarded (§9 open question).
			_ = a.Resolver.Extends(types.ExtendsOpts{}, lm.RetTy, rm.RetTy)
		}
	}
	return false
}
