package checker

import (
	"github.com/vela-lang/vela/internal/facts"
	"github.com/vela-lang/vela/internal/names"
	"github.com/vela-lang/vela/internal/types"
)

// narrowTypeofEquality implements §4.3.1: `typeof X === "kw"` (or the
// disequality/strict variants) installs typeof facts on X regardless of
// in_cond_of_cond_expr.
func (a *Analyzer) narrowTypeofEquality(op string, l, r Expr) bool {
	name, kw, ok := matchTypeofEquality(l, r)
	if !ok {
		return false
	}

	var trueFacts, falseFacts facts.TypeFacts
	switch op {
	case "===", "==":
		trueFacts, falseFacts = facts.TypeofEq(kw)
	case "!==", "!=":
		trueFacts, falseFacts = facts.TypeofNeq(kw)
	default:
		return false
	}

	a.CurFacts.True.SetFact(name, trueFacts)
	a.CurFacts.False.SetFact(name, falseFacts)
	return true
}

// matchTypeofEquality recognizes `typeof X OP "lit"` in either operand
// order and returns X's Name and the literal keyword spelling.
func matchTypeofEquality(l, r Expr) (names.Name, string, bool) {
	if n, kw, ok := typeofLitPair(l, r); ok {
		return n, kw, true
	}
	return typeofLitPair(r, l)
}

func typeofLitPair(maybeTypeof, maybeLit Expr) (names.Name, string, bool) {
	tf, ok := unwrapParen(maybeTypeof).(*UnaryTypeof)
	if !ok {
		return names.Name{}, "", false
	}
	lit, ok := unwrapParen(maybeLit).(*StringLit)
	if !ok {
		return names.Name{}, "", false
	}
	n, ok := ExtractNameForAssignment(tf.Arg)
	if !ok {
		return names.Name{}, "", false
	}
	return n, lit.Value, true
}

// narrowUnknownWidening implements §4.3.2: one operand is `unknown`, the
// other concrete; `===`/`==` installs a deep var-replacement fact, the
// disequality forms install an excludes-list fact instead.
func (a *Analyzer) narrowUnknownWidening(op string, lExpr, rExpr Expr, lt, rt types.Type) bool {
	if !a.Config.EnableUnknownWidening {
		return false
	}
	var unknownExpr, concreteExpr Expr
	var concreteTy types.Type
	switch {
	case types.IsKwd(lt, typeUnknownKind) && !types.IsKwd(rt, typeUnknownKind):
		unknownExpr, concreteExpr, concreteTy = lExpr, rExpr, rt
	case types.IsKwd(rt, typeUnknownKind) && !types.IsKwd(lt, typeUnknownKind):
		unknownExpr, concreteExpr, concreteTy = rExpr, lExpr, lt
	default:
		return false
	}
	_ = concreteExpr

	switch op {
	case "===", "==":
	case "!==", "!=":
	default:
		return false
	}

	name, ok := ExtractNameForAssignment(unknownExpr)
	if !ok {
		return false
	}

	switch op {
	case "===", "==":
		a.CurFacts.True.SetVar(name, concreteTy)
	case "!==", "!=":
		a.CurFacts.True.AppendExclude(name, concreteTy)
	}
	return true
}

// typeUnknownKind avoids importing the types.KeywordKind constant name
// directly in every call site above.
const typeUnknownKind = types.KwUnknown

// narrowGenericEquality implements §4.3.3.
func (a *Analyzer) narrowGenericEquality(op string, lExpr, rExpr Expr, lt, rt types.Type) error {
	if !a.Ctx.InCondOfCondExpr {
		return nil
	}
	if op != "===" && op != "!==" {
		return nil
	}

	nameExpr, nameTy, otherTy, ok := pickNameSide(lExpr, rExpr, lt, rt)
	if !ok {
		return nil
	}
	_ = nameTy

	refinedName, refinedTy, err := a.calcTypeFactsForEquality(nameExpr, otherTy)
	if err != nil {
		return err
	}
	if refinedTy == nil {
		return nil
	}

	generalized := types.PreventGeneralize(refinedTy)

	switch op {
	case "===":
		a.CurFacts.False.AppendExclude(refinedName, refinedTy)
		a.CurFacts.True.SetVar(refinedName, generalized)
	case "!==":
		a.CurFacts.True.AppendExclude(refinedName, refinedTy)
		a.CurFacts.False.SetVar(refinedName, generalized)
	}
	return nil
}

// pickNameSide picks whichever side extracts to a Name and isn't the
// identifier `undefined` or the `null` literal, returning that side's
// expr/type and the other side's type.
func pickNameSide(lExpr, rExpr Expr, lt, rt types.Type) (Expr, types.Type, types.Type, bool) {
	if !IsUndefinedIdent(lExpr) && !IsNullLit(lExpr) {
		if _, ok := ExtractNameForAssignment(lExpr); ok {
			return lExpr, lt, rt, true
		}
	}
	if !IsUndefinedIdent(rExpr) && !IsNullLit(rExpr) {
		if _, ok := ExtractNameForAssignment(rExpr); ok {
			return rExpr, rt, lt, true
		}
	}
	return nil, nil, nil, false
}

// calcTypeFactsForEquality implements calc_type_facts_for_equality
// (§4.3.3 points 1-3).
func (a *Analyzer) calcTypeFactsForEquality(nameExpr Expr, otherTy types.Type) (names.Name, types.Type, error) {
	name, ok := ExtractNameForAssignment(nameExpr)
	if !ok {
		return names.Name{}, nil, nil
	}

	switch name.Len() {
	case 1:
		curTy, err := a.Resolver.TypeOfVar(name, TypeOfModeRValue)
		if err != nil {
			return names.Name{}, nil, err
		}
		return name, narrowWithEquality(curTy, otherTy), nil

	case 2:
		objName, _ := name.Parent()
		prop := name.Last()

		objTy, err := a.Resolver.TypeOfVar(objName, TypeOfModeRValue)
		if err != nil {
			return names.Name{}, nil, err
		}
		expanded, err := a.Resolver.ExpandFully(objTy, false)
		if err != nil {
			return names.Name{}, nil, err
		}

		u, ok := expanded.(*types.TUnion)
		if !ok {
			return objName, expanded, nil
		}

		var kept []types.Type
		for _, member := range u.Types {
			propTy, err := a.Resolver.AccessProperty(member, prop, TypeOfModeRValue, IdCtx{})
			if err != nil {
				continue
			}
			if types.IsTypeParam(propTy) || propTy.Equals(otherTy) {
				kept = append(kept, member)
			}
		}
		return objName, types.Union(kept), nil

	default:
		return names.Name{}, nil, NewUnimplementedDeepFactsError("", name.Len())
	}
}

// narrowWithEquality implements narrow_with_equality (§4.3.3 rules 1-5).
func narrowWithEquality(orig, eq types.Type) types.Type {
	if orig.Equals(eq) {
		return orig
	}
	normOrig := types.Normalize(orig)
	normEq := types.Normalize(eq)
	if normOrig.Equals(normEq) {
		return orig
	}

	if u, ok := orig.(*types.TUnion); ok {
		var kept []types.Type
		for _, m := range u.Types {
			narrowed := narrowWithEquality(m, eq)
			if !types.IsNever(narrowed) {
				kept = append(kept, narrowed)
			}
		}
		return types.Union(kept)
	}

	if a, ok := orig.(*types.TEnumVariant); ok {
		if b, ok := eq.(*types.TEnumVariant); ok {
			if a.Enum != b.Enum || a.Variant != b.Variant {
				return types.Never
			}
		}
	}

	return eq
}

// narrowWithInstanceof implements §4.3.4's narrow_with_instanceof.
func (a *Analyzer) narrowWithInstanceof(ty, origTy types.Type) (types.Type, error) {
	normOrig := types.Normalize(origTy)

	if ref, ok := normOrig.(*types.TRef); ok {
		expanded, err := a.Resolver.ExpandTopRef(ref)
		if err != nil {
			return nil, err
		}
		return a.narrowWithInstanceof(ty, expanded)
	}
	if q, ok := normOrig.(*types.TQuery); ok {
		resolved, err := a.Resolver.ResolveTypeof(q.Expr.EntityName)
		if err != nil {
			return nil, err
		}
		return a.narrowWithInstanceof(ty, resolved)
	}

	if u, ok := normOrig.(*types.TUnion); ok {
		var kept []types.Type
		for _, m := range u.Types {
			narrowed, err := a.narrowWithInstanceof(ty, m)
			if err != nil {
				return nil, err
			}
			if !types.IsNever(narrowed) {
				kept = append(kept, narrowed)
			}
		}
		return types.Union(kept), nil
	}

	if (types.IsKwd(normOrig, types.KwString) || types.IsKwd(normOrig, types.KwNumber) || types.IsKwd(normOrig, types.KwBoolean)) && types.IsInterface(ty) {
		return types.Never, nil
	}

	if cd, ok := ty.(*types.TClassDef); ok {
		return a.narrowWithInstanceof(&types.TClass{Def: cd.Def}, normOrig)
	}

	if ext := a.Resolver.Extends(types.ExtendsOpts{DisallowDifferentClasses: true}, normOrig, ty); ext != nil {
		if *ext {
			return liftClassDef(normOrig), nil
		}
		if types.IsInterface(normOrig) && types.IsInterface(ty) {
			return liftClassDef(ty), nil
		}
		if !a.Resolver.HasOverlap(normOrig, ty) {
			return types.Never, nil
		}
	}

	return liftClassDef(ty), nil
}

func liftClassDef(t types.Type) types.Type {
	if cd, ok := t.(*types.TClassDef); ok {
		return &types.TClass{Def: cd.Def}
	}
	return t
}

// isValidLhsOfInstanceof implements is_valid_lhs_of_instanceof (§4.4).
func isValidLhsOfInstanceof(t types.Type) bool {
	if types.IsAny(t) || types.IsKwd(t, types.KwObject) {
		return true
	}
	switch t.(type) {
	case *types.TTypeLit, *types.TInterface, *types.TClass, *types.TThis, *types.TParam, *types.TMapped, *types.TRef:
		return true
	}
	if u, ok := t.(*types.TUnion); ok {
		for _, m := range u.Types {
			if isValidLhsOfInstanceof(m) {
				return true
			}
		}
		return false
	}
	if i, ok := t.(*types.TIntersection); ok {
		for _, m := range i.Types {
			if !isValidLhsOfInstanceof(m) {
				return false
			}
		}
		return len(i.Types) > 0
	}
	return false
}

// validateRhsOfInstanceof implements §4.4.1.
func (a *Analyzer) validateRhsOfInstanceof(span string, t types.Type) (types.Type, error) {
	norm := types.Normalize(t)

	if types.IsAny(norm) {
		return norm, nil
	}

	switch v := norm.(type) {
	case *types.TKeyword:
		switch v.Kind {
		case types.KwString, types.KwNumber, types.KwBoolean, types.KwVoid:
			a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
			return norm, nil
		}
	case *types.TLit:
		a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
		return norm, nil
	case *types.TClass:
		a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
		return norm, nil
	case *types.TRef:
		if v.Name == "Object" {
			a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
			return norm, nil
		}
		return a.Resolver.MakeInstanceOrReport(norm), nil
	case *types.TSymbol:
		a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
		return norm, nil
	case *types.TTypeLit:
		if len(v.Members) == 0 {
			a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
			return norm, nil
		}
		if err := a.Resolver.Assign(&types.TRef{Name: "Function"}, norm); err != nil {
			a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
		}
		return norm, nil
	case *types.TInterface:
		if len(v.Members) == 0 {
			a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
			return norm, nil
		}
		if err := a.Resolver.Assign(&types.TRef{Name: "Function"}, norm); err != nil {
			a.Resolver.Report(NewInvalidRhsInInstanceOfError(span, norm))
		}
		return norm, nil
	case *types.TUnion:
		members := make([]types.Type, len(v.Types))
		for i, m := range v.Types {
			exp, err := a.validateRhsOfInstanceof(span, m)
			if err != nil {
				return nil, err
			}
			members[i] = exp
		}
		return types.Union(members), nil
	case *types.TClassDef:
		return norm, nil
	}

	return a.Resolver.MakeInstanceOrReport(norm), nil
}

// narrowInstanceof implements the `instanceof` branch of §4.3.4, steps 1-4.
func (a *Analyzer) narrowInstanceof(span string, lExpr, rExpr Expr, rhsTy types.Type) error {
	if !a.Ctx.InCondOfCondExpr {
		return nil
	}
	id, ok := unwrapParen(lExpr).(*Ident)
	if !ok {
		return nil
	}
	name, ok := names.New(id.Sym)
	if !ok {
		return nil
	}

	origTy, err := a.Resolver.TypeOfVar(name, TypeOfModeRValue)
	if err != nil {
		return err
	}

	validatedRhs, err := a.validateRhsOfInstanceof(span, rhsTy)
	if err != nil {
		return err
	}

	cannotNarrow := types.IsAny(origTy) && isObjectOrFunctionRef(validatedRhs)
	if cannotNarrow {
		return nil
	}

	narrowed, err := a.narrowWithInstanceof(validatedRhs, origTy)
	if err != nil {
		return err
	}

	// TODO: maybe we need to check for intersection or union here too.
	if types.IsTypeParam(origTy) {
		merged := types.Fixed(types.Intersection([]types.Type{origTy, narrowed}))
		a.CurFacts.True.SetVar(name, merged)
		return nil
	}

	a.CurFacts.True.SetVar(name, narrowed)
	a.CurFacts.False.AppendExclude(name, narrowed)
	return nil
}

func isObjectOrFunctionRef(t types.Type) bool {
	if types.IsKwd(t, types.KwObject) {
		return true
	}
	ref, ok := t.(*types.TRef)
	return ok && (ref.Name == "Object" || ref.Name == "Function")
}

// narrowIn implements §4.3.5.
func (a *Analyzer) narrowIn(lExpr, rExpr Expr, rt types.Type) error {
	if !a.Ctx.InCondOfCondExpr {
		return nil
	}
	lit, ok := unwrapParen(lExpr).(*StringLit)
	if !ok {
		return nil
	}
	name, ok := ExtractNameForAssignment(rExpr)
	if !ok {
		return nil
	}

	filtered, err := a.Resolver.FilterTypesWithProperty(rt, lit.Value)
	if err != nil {
		return err
	}
	a.CurFacts.True.SetVar(name, filtered)
	return nil
}

// isValidForSwitchCase implements is_valid_for_switch_case (§4.4).
func (a *Analyzer) isValidForSwitchCase(l, r types.Type) bool {
	if l.Equals(r) {
		return true
	}
	if types.IsNumLit(l) && types.IsNumLit(r) {
		return false
	}
	if a.Ctx.InSwitchCaseTest && !a.Config.StrictSwitchCaseOverlap {
		if types.IsIntersectionType(l) {
			return true
		}
	}
	return a.Resolver.HasOverlap(l, r)
}

// isValidLhsOfIn implements is_valid_lhs_of_in (§4.4 `in` rule).
func isValidLhsOfIn(t types.Type) bool {
	if types.IsAny(t) {
		return true
	}
	switch v := t.(type) {
	case *types.TKeyword:
		switch v.Kind {
		case types.KwString, types.KwNumber, types.KwBigInt, types.KwSymbol:
			return true
		}
		return false
	case *types.TLit:
		return v.Lit.Kind == types.LitStr || v.Lit.Kind == types.LitNum || v.Lit.Kind == types.LitBigInt
	case *types.TEnum, *types.TEnumVariant, *types.TParam, *types.TSymbol:
		return true
	case *types.TOperator:
		return v.Op == types.OpKeyOf
	case *types.TUnion:
		for _, m := range v.Types {
			if !isValidLhsOfIn(m) {
				return false
			}
		}
		return len(v.Types) > 0
	}
	return false
}

// isValidRhsOfIn implements is_valid_rhs_of_in (§4.4 `in` rule).
func isValidRhsOfIn(t types.Type) bool {
	if types.IsAny(t) || types.IsKwd(t, types.KwObject) {
		return true
	}
	switch v := t.(type) {
	case *types.TTypeLit, *types.TParam, *types.TMapped, *types.TArray, *types.TTuple, *types.TIndexedAccess, *types.TInterface:
		return true
	case *types.TUnion:
		for _, m := range v.Types {
			if !isValidRhsOfIn(m) {
				return false
			}
		}
		return len(v.Types) > 0
	}
	return false
}

// checkForMixedNullishCoalescing implements §4.4 step 2.
func checkForMixedNullishCoalescing(op string, l, r Expr) bool {
	if op == "??" {
		return operandIsUnparenthesizedLogical(l) || operandIsUnparenthesizedLogical(r)
	}
	if op == "&&" || op == "||" {
		return operandIsUnparenthesizedNullish(l) || operandIsUnparenthesizedNullish(r)
	}
	return false
}

func operandIsUnparenthesizedLogical(e Expr) bool {
	return !isParenthesized(e) && isBinaryWithOp(e, "&&", "||")
}

func operandIsUnparenthesizedNullish(e Expr) bool {
	return !isParenthesized(e) && isBinaryWithOp(e, "??")
}
