package checker

import (
	"github.com/vela-lang/vela/internal/facts"
	"github.com/vela-lang/vela/internal/types"
)

// EvalFunc evaluates an operand expression under the current analyzer
// state and returns its static type. The actual expression-evaluation
// machinery (beyond binary expressions) is out of scope (§1); the
// dispatcher is handed this one hook so it can recurse into L/R without
// owning a full expression-checker itself.
type EvalFunc func(a *Analyzer, e Expr, contextualType types.Type) (types.Type, error)

// ValidateBin is the core's single entry point (§6): given a binary
// expression and an optional contextual type annotation, it computes the
// result type, updates cur_facts, and reports diagnostics.
func (a *Analyzer) ValidateBin(span string, bin *BinaryExpr, typeAnn types.Type, eval EvalFunc) (types.Type, error) {
	op := bin.Op
	prevFacts := a.CurFacts

	if checkForMixedNullishCoalescing(op, bin.L, bin.R) {
		a.Resolver.Report(NewNullishCoalescingMixedError(span))
	}

	savedShouldStoreTruthy := a.Ctx.ShouldStoreTruthyForAccess
	a.Ctx.ShouldStoreTruthyForAccess = op == "&&"

	lt, lErr := a.evalOperand(bin.L, nil, eval)

	a.Ctx.ShouldStoreTruthyForAccess = savedShouldStoreTruthy

	seedTrue, seedSetsParentFalse := a.seedForRHS(op, prevFacts)

	a.CurFacts = prevFacts

	var rContextType types.Type
	switch op {
	case "&&", "||", "??":
		rContextType = typeAnn
		if rContextType == nil && (op == "||" || op == "??") {
			rContextType = truthyFacet(lt)
		}
	}

	savedShouldStoreTruthy = a.Ctx.ShouldStoreTruthyForAccess
	a.Ctx.ShouldStoreTruthyForAccess = false
	var rt types.Type
	var rErr error
	childFacts, werr := a.WithChild(ChildFlow, seedTrue, func() error {
		rt, rErr = a.evalOperand(bin.R, rContextType, eval)
		return rErr
	})
	a.Ctx.ShouldStoreTruthyForAccess = savedShouldStoreTruthy
	if werr != nil && rErr == nil {
		rErr = werr
	}

	if lErr != nil || rErr != nil {
		el := &ErrorList{}
		el.Add(lErr)
		el.Add(rErr)
		return nil, el
	}

	a.validateBinInner(span, op, lt, rt)

	a.mergeFactsAfterRHS(op, prevFacts, childFacts, seedSetsParentFalse)

	return a.applyOperatorRule(span, op, bin.L, bin.R, lt, rt)
}

// evalOperand expands a Ref result fully, matching the dispatcher
// preamble's "If LHS/RHS is a Ref type, expand_fully with
// preserve_ref=false" step. Reposition-to-span (bin.rs 82-86/150-154) is a
// documented no-op here: this core's Type carries no span field (see
// DESIGN.md).
func (a *Analyzer) evalOperand(e Expr, contextType types.Type, eval EvalFunc) (types.Type, error) {
	t, err := eval(a, e, contextType)
	if err != nil {
		return nil, err
	}
	if types.IsRefType(t) {
		expanded, err := a.Resolver.ExpandFully(t, false)
		if err != nil {
			return nil, err
		}
		return expanded, nil
	}
	return t, nil
}

// seedForRHS computes the seed facts table from §4.2 for evaluating R. Its
// second result is true only for the `&&` row; mergeFactsAfterRHS receives
// it but does not consult it (the `&&` merge uses Merge on both branches).
func (a *Analyzer) seedForRHS(op string, prevFacts facts.Facts) (facts.CondFacts, bool) {
	switch op {
	case "&&":
		return prevFacts.True, true
	case "||":
		return prevFacts.False.Clone(), false
	default:
		return facts.NewCondFacts(), false
	}
}

// mergeFactsAfterRHS implements the post-merge column of §4.2's table.
func (a *Analyzer) mergeFactsAfterRHS(op string, prevFacts facts.Facts, childFacts facts.Facts, _ bool) {
	switch op {
	case "&&":
		// §4.2's "&&" row merges both branches with the CondFacts "+=" monoid
		// (bitwise AND on facts, append on excludes, later-wins on vars): the
		// false branch keeps whatever the saved parent false_facts already
		// had even when R's false facts say nothing about the same name,
		// since `!a` alone can make `a && b` false regardless of b. Only
		// `||`'s true-branch composition drops vacant keys (§4.2/§9).
		merged := prevFacts
		merged.True.Merge(childFacts.True)
		merged.False.Merge(childFacts.False)
		a.CurFacts = merged

	case "||":
		lhs := prevFacts
		lhs.True.AndKeys(childFacts.True)
		merged := facts.Empty()
		merged.True.Merge(lhs.True)
		merged.False.Merge(lhs.False)
		a.CurFacts = merged

	default:
		a.CurFacts = prevFacts
	}
}

// truthyFacet returns the truthy-narrowed facet of t (`remove_falsy`),
// used as the contextual type fed to R when `||`/`??` has no annotation.
func truthyFacet(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	return types.RemoveFalsy(t)
}

// validateBinInner implements validate_bin_inner (§4.4 step 7): operand
// validation that only produces diagnostics, never changes the result
// type.
func (a *Analyzer) validateBinInner(span, op string, lt, rt types.Type) {
	switch op {
	case "+":
		// handled inline in the `+` result-typing rule below: no separate
		// validate_bin_inner diagnostics beyond the result rule itself.

	case "*", "/", "%", "-", "<<", ">>", ">>>", "&", "|", "^", "**":
		if (op == "&" || op == "|" || op == "^") && types.IsBooleanLike(lt) && types.IsBooleanLike(rt) {
			a.Resolver.Report(NewTS2447Error(span))
			return
		}
		a.validateNumericOperand(span, op, "lhs", lt)
		a.validateNumericOperand(span, op, "rhs", rt)

	case "===", "!==", "==", "!=":
		if !a.isValidForSwitchCase(lt, rt) {
			if a.Ctx.InSwitchCaseTest {
				a.Resolver.Report(NewSwitchCaseTestNotCompatibleError(span, lt, rt))
			} else {
				a.Resolver.Report(NewNoOverlapError(span, lt, rt))
			}
		}

	case "instanceof":
		if !isValidLhsOfInstanceof(lt) {
			a.Resolver.Report(NewInvalidLhsInInstanceOfError(span, lt))
		}

	case "in":
		if err := a.Resolver.DenyNullOrUndefined(span, lt); err != nil {
			reportNullOrUndefined(a, span, lt)
		} else if !isValidLhsOfIn(lt) {
			a.Resolver.Report(NewTS2360Error(span, lt))
		}
		if err := a.Resolver.DenyNullOrUndefined(span, rt); err != nil {
			reportNullOrUndefined(a, span, rt)
		} else if !isValidRhsOfIn(rt) {
			a.Resolver.Report(NewTS2361Error(span, rt))
		}

	case "&&":
		if types.IsKwd(lt, types.KwVoid) {
			a.Resolver.Report(NewTS1345Error(span))
		}
	}
}

func reportNullOrUndefined(a *Analyzer, span string, t types.Type) {
	if types.IsKwd(t, types.KwNull) {
		a.Resolver.Report(NewObjectIsPossiblyNullError(span))
	} else {
		a.Resolver.Report(NewObjectIsPossiblyUndefinedError(span))
	}
}

func (a *Analyzer) validateNumericOperand(span, op, side string, t types.Type) {
	if types.IsAny(t) {
		return
	}
	if a.Resolver.CanBeCastedToNumberInRHS(t) {
		return
	}
	if types.IsKwd(t, types.KwUndefined) {
		a.Resolver.Report(NewObjectIsPossiblyUndefinedError(span))
		return
	}
	if types.IsKwd(t, types.KwNull) {
		a.Resolver.Report(NewObjectIsPossiblyNullError(span))
		return
	}
	if side == "lhs" {
		a.Resolver.Report(NewWrongTypeForLhsOfNumericOperationError(span, op, t))
	} else {
		a.Resolver.Report(NewWrongTypeForRhsOfNumericOperationError(span, op, t))
	}
}

// applyOperatorRule implements the per-operator result-typing rules and
// triggers §4.3 narrowing for the operators that narrow.
func (a *Analyzer) applyOperatorRule(span, op string, lExpr, rExpr Expr, lt, rt types.Type) (types.Type, error) {
	switch op {
	case "+":
		return a.ruleAdd(span, lt, rt)

	case "*", "/", "%", "-", "<<", ">>", ">>>", "&", "|", "^", "**":
		if types.IsKwd(lt, types.KwUnknown) || types.IsKwd(rt, types.KwUnknown) {
			return nil, NewUnknownOperandError(span)
		}
		return types.Number, nil

	case "===", "!==", "==", "!=":
		if a.narrowTypeofEquality(op, lExpr, rExpr) {
			return types.Boolean, nil
		}
		a.narrowUnknownWidening(op, lExpr, rExpr, lt, rt)
		if err := a.narrowGenericEquality(op, lExpr, rExpr, lt, rt); err != nil {
			return nil, err
		}
		return types.Boolean, nil

	case "instanceof":
		if err := a.narrowInstanceof(span, lExpr, rExpr, rt); err != nil {
			return nil, err
		}
		return types.Boolean, nil

	case "<", "<=", ">", ">=":
		if err := a.Resolver.DenyNullOrUndefined(span, lt); err != nil {
			reportNullOrUndefined(a, span, lt)
		}
		if err := a.Resolver.DenyNullOrUndefined(span, rt); err != nil {
			reportNullOrUndefined(a, span, rt)
		}
		a.validateRelativeComparisonOperands(span, op, lt, rt)
		return types.Boolean, nil

	case "in":
		if err := a.narrowIn(lExpr, rExpr, rt); err != nil {
			return nil, err
		}
		return types.Boolean, nil

	case "||":
		return a.ruleOr(rExpr, lt, rt)

	case "&&":
		return a.ruleAnd(rExpr, lt, rt)

	case "??":
		return a.ruleNullish(lt, rt)
	}

	return nil, NewInvalidBinaryOpError(span, op, lt, rt)
}

// ruleAdd implements the `+` rule (§4.4).
func (a *Analyzer) ruleAdd(span string, lt, rt types.Type) (types.Type, error) {
	if types.IsKwd(lt, types.KwUnknown) || types.IsKwd(rt, types.KwUnknown) {
		return nil, NewUnknownOperandError(span)
	}
	if types.IsNum(lt) && types.IsNum(rt) {
		return types.Number, nil
	}
	stringLike := func(t types.Type) bool { return types.IsStr(t) }
	if stringLike(lt) || stringLike(rt) {
		return types.String, nil
	}
	if types.IsAny(lt) {
		if stringLike(rt) {
			return types.String, nil
		}
		return types.Any, nil
	}
	if types.IsAny(rt) {
		if stringLike(lt) {
			return types.String, nil
		}
		return types.Any, nil
	}
	if types.IsKwd(lt, types.KwNull) || types.IsKwd(lt, types.KwUndefined) || types.IsKwd(rt, types.KwNull) || types.IsKwd(rt, types.KwUndefined) {
		return nil, NewTS2365Error(span, "+", lt, rt)
	}
	if a.Resolver.CanBeCastedToNumberInRHS(lt) && a.Resolver.CanBeCastedToNumberInRHS(rt) {
		return types.Number, nil
	}
	return nil, NewInvalidBinaryOpError(span, "+", lt, rt)
}

// isBareIdentExpr reports whether e is a bare identifier, used by `||`'s
// can_generalize rule ("LHS can generalize unless RHS is a bare
// identifier").
func isBareIdentExpr(e Expr) bool {
	_, ok := unwrapParen(e).(*Ident)
	return ok
}

func boolKnown(t types.Type) (bool, bool) {
	return types.AsBoolKnown(t)
}

// ruleOr implements the `||` rule (§4.4).
func (a *Analyzer) ruleOr(rExpr Expr, l, r types.Type) (types.Type, error) {
	if types.IsKwd(l, types.KwUnknown) || types.IsKwd(r, types.KwUnknown) {
		return nil, &Diagnostic{Kind: KindUnknownOperand, Message: "object is of type 'unknown'"}
	}
	if l.Equals(r) {
		return l, nil
	}

	canGeneralizeL := !isBareIdentExpr(rExpr)
	gl, gr := l, r
	if canGeneralizeL || a.Resolver.MayGeneralize(gl) {
		gl = types.GeneralizeLit(gl, a.Resolver.Marks())
	}
	if a.Resolver.MayGeneralize(gr) {
		gr = types.GeneralizeLit(gr, a.Resolver.Marks())
	}
	if gl.Equals(gr) {
		return gl, nil
	}
	l, r = gl, gr

	if types.IsAny(l) {
		return types.Any, nil
	}
	if types.IsNever(l) {
		return l, nil
	}
	if types.IsStrLitOrUnion(l) && types.IsStrLitOrUnion(r) {
		return types.Union([]types.Type{l, r}), nil
	}
	if known, ok := boolKnown(l); ok {
		if known {
			return l, nil
		}
		return r, nil
	}
	return types.Union([]types.Type{types.RemoveFalsy(l), r}), nil
}

// ruleAnd implements the `&&` rule (§4.4).
func (a *Analyzer) ruleAnd(rExpr Expr, l, r types.Type) (types.Type, error) {
	if types.IsKwd(l, types.KwUnknown) || types.IsKwd(r, types.KwUnknown) {
		return nil, &Diagnostic{Kind: KindUnknownOperand, Message: "object is of type 'unknown'"}
	}
	if l.Equals(r) {
		return l, nil
	}
	canGeneralizeL := !isBareIdentExpr(rExpr)
	gl, gr := l, r
	if canGeneralizeL || a.Resolver.MayGeneralize(gl) {
		gl = types.GeneralizeLit(gl, a.Resolver.Marks())
	}
	if a.Resolver.MayGeneralize(gr) {
		gr = types.GeneralizeLit(gr, a.Resolver.Marks())
	}
	if gl.Equals(gr) {
		return gl, nil
	}
	l, r = gl, gr

	if types.IsAny(l) {
		return types.Any, nil
	}
	if types.IsNever(l) {
		return l, nil
	}
	if known, ok := boolKnown(l); ok {
		if known {
			return r, nil
		}
		return l, nil
	}
	return r, nil
}

// ruleNullish implements the `??` rule (§4.4).
func (a *Analyzer) ruleNullish(l, r types.Type) (types.Type, error) {
	lMayGeneralize := a.Resolver.MayGeneralize(l)
	rMayGeneralize := a.Resolver.MayGeneralize(r)

	l = types.RemoveFalsy(l)

	if lMayGeneralize {
		l = types.GeneralizeLit(l, a.Resolver.Marks())
	}
	if rMayGeneralize {
		r = types.GeneralizeLit(r, a.Resolver.Marks())
	}

	if l.Equals(r) {
		return l, nil
	}

	result := types.Union([]types.Type{l, r})
	if !lMayGeneralize {
		result = types.PreventGeneralize(result)
	}
	return result, nil
}
