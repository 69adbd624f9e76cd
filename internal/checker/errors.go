package checker

import (
	"fmt"
	"strings"

	"github.com/vela-lang/vela/internal/types"
)

// DiagnosticKind identifies a distinct binary-expression diagnostic (§7).
type DiagnosticKind string

const (
	// Recoverable: reported to storage, analysis continues with a
	// best-effort type.
	KindNoOverlap                         DiagnosticKind = "no_overlap"
	KindSwitchCaseTestNotCompatible       DiagnosticKind = "switch_case_test_not_compatible"
	KindInvalidLhsInInstanceOf            DiagnosticKind = "invalid_lhs_in_instanceof"
	KindInvalidRhsInInstanceOf            DiagnosticKind = "invalid_rhs_in_instanceof"
	KindObjectIsPossiblyNull              DiagnosticKind = "object_is_possibly_null"
	KindObjectIsPossiblyUndefined         DiagnosticKind = "object_is_possibly_undefined"
	KindWrongTypeForLhsOfNumericOperation DiagnosticKind = "wrong_type_for_lhs_of_numeric_operation"
	KindWrongTypeForRhsOfNumericOperation DiagnosticKind = "wrong_type_for_rhs_of_numeric_operation"
	KindTS1345                            DiagnosticKind = "ts1345_void_operand"
	KindTS2360                            DiagnosticKind = "ts2360_invalid_lhs_of_in"
	KindTS2361                            DiagnosticKind = "ts2361_invalid_rhs_of_in"
	KindTS2447                            DiagnosticKind = "ts2447_bitwise_on_boolean"
	KindCannotCompareWithOp               DiagnosticKind = "cannot_compare_with_op"
	KindNullishCoalescingMixedWithLogical DiagnosticKind = "nullish_coalescing_mixed_with_logical_without_paren"

	// Propagated: the dispatcher short-circuits with an error result.
	KindUnknownOperand  DiagnosticKind = "unknown_operand"
	KindTS2365          DiagnosticKind = "ts2365_null_undefined_in_plus"
	KindInvalidBinaryOp DiagnosticKind = "invalid_binary_op"

	// Internal unimplemented: must be surfaced, never silently approximated.
	KindUnimplementedQueryImport DiagnosticKind = "unimplemented_query_import_type"
	KindUnimplementedDeepFacts   DiagnosticKind = "unimplemented_deep_facts_length_ge_3"
)

// Recoverable reports whether a diagnostic of this kind is reported and
// analysis continues, as opposed to propagated (which short-circuits).
func (k DiagnosticKind) Recoverable() bool {
	switch k {
	case KindUnknownOperand, KindTS2365, KindInvalidBinaryOp,
		KindUnimplementedQueryImport, KindUnimplementedDeepFacts:
		return false
	default:
		return true
	}
}

// Diagnostic is a single reported error (§7). Span is left as an opaque
// string: the span/position encoding itself is an external-collaborator
// concern (out of scope, §1); the core only ever needs to carry one
// forward verbatim.
type Diagnostic struct {
	Kind     DiagnosticKind
	Span     string
	Message  string
	Expected types.Type
	Actual   types.Type
}

func (d *Diagnostic) Error() string {
	var parts []string
	if d.Span != "" {
		parts = append(parts, d.Span)
	}
	parts = append(parts, d.Message)
	if d.Expected != nil && d.Actual != nil {
		parts = append(parts, fmt.Sprintf("(expected %s, got %s)", d.Expected, d.Actual))
	}
	return strings.Join(parts, ": ")
}

// ErrorList aggregates diagnostics raised while evaluating both operands
// of a binary expression when at least one side's evaluation failed (§7:
// "the dispatcher still evaluates the other ... and then reports
// Errors{errors} if any operand is missing").
type ErrorList struct {
	Errors []error
}

func (l *ErrorList) Error() string {
	parts := make([]string, len(l.Errors))
	for i, e := range l.Errors {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func (l *ErrorList) Add(err error) {
	if err != nil {
		l.Errors = append(l.Errors, err)
	}
}

func (l *ErrorList) HasErrors() bool { return len(l.Errors) > 0 }

func newDiag(kind DiagnosticKind, span, msg string) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span, Message: msg}
}

func NewNoOverlapError(span string, l, r types.Type) *Diagnostic {
	d := newDiag(KindNoOverlap, span, "this comparison appears to be unintentional because the types have no overlap")
	d.Expected, d.Actual = l, r
	return d
}

func NewSwitchCaseTestNotCompatibleError(span string, l, r types.Type) *Diagnostic {
	d := newDiag(KindSwitchCaseTestNotCompatible, span, "type is not comparable to the switch discriminant")
	d.Expected, d.Actual = l, r
	return d
}

func NewInvalidLhsInInstanceOfError(span string, lhs types.Type) *Diagnostic {
	d := newDiag(KindInvalidLhsInInstanceOf, span, "the left-hand side of an 'instanceof' expression must be of type 'any', an object type or a type parameter")
	d.Actual = lhs
	return d
}

func NewInvalidRhsInInstanceOfError(span string, rhs types.Type) *Diagnostic {
	d := newDiag(KindInvalidRhsInInstanceOf, span, "the right-hand side of an 'instanceof' expression must be of type 'any' or a type assignable to the 'Function' interface type")
	d.Actual = rhs
	return d
}

func NewObjectIsPossiblyNullError(span string) *Diagnostic {
	return newDiag(KindObjectIsPossiblyNull, span, "object is possibly 'null'")
}

func NewObjectIsPossiblyUndefinedError(span string) *Diagnostic {
	return newDiag(KindObjectIsPossiblyUndefined, span, "object is possibly 'undefined'")
}

func NewWrongTypeForLhsOfNumericOperationError(span, op string, actual types.Type) *Diagnostic {
	d := newDiag(KindWrongTypeForLhsOfNumericOperation, span, fmt.Sprintf("the left-hand side of a '%s' operation must be of type 'any', 'number' or 'bigint'", op))
	d.Actual = actual
	return d
}

func NewWrongTypeForRhsOfNumericOperationError(span, op string, actual types.Type) *Diagnostic {
	d := newDiag(KindWrongTypeForRhsOfNumericOperation, span, fmt.Sprintf("the right-hand side of a '%s' operation must be of type 'any', 'number' or 'bigint'", op))
	d.Actual = actual
	return d
}

func NewTS1345Error(span string) *Diagnostic {
	return newDiag(KindTS1345, span, "an expression of type 'void' cannot be tested for truthiness")
}

func NewTS2360Error(span string, actual types.Type) *Diagnostic {
	d := newDiag(KindTS2360, span, "the left-hand side of an 'in' expression must be of type 'any', 'string', 'number', or 'symbol'")
	d.Actual = actual
	return d
}

func NewTS2361Error(span string, actual types.Type) *Diagnostic {
	d := newDiag(KindTS2361, span, "the right-hand side of an 'in' expression must not be a primitive")
	d.Actual = actual
	return d
}

func NewTS2447Error(span string) *Diagnostic {
	return newDiag(KindTS2447, span, "the '&', '|', and '^' operators are incompatible with boolean operand types; consider using '&&', '||', or '!' instead")
}

func NewCannotCompareWithOpError(span, op string, l, r types.Type) *Diagnostic {
	d := newDiag(KindCannotCompareWithOp, span, fmt.Sprintf("operator '%s' cannot be applied to types '%s' and '%s'", op, l, r))
	d.Expected, d.Actual = l, r
	return d
}

func NewNullishCoalescingMixedError(span string) *Diagnostic {
	return newDiag(KindNullishCoalescingMixedWithLogical, span, "'??' expressions must have parentheses when mixed with '&&' or '||' expressions")
}

func NewUnknownOperandError(span string) *Diagnostic {
	return newDiag(KindUnknownOperand, span, "object is of type 'unknown'")
}

func NewTS2365Error(span, op string, l, r types.Type) *Diagnostic {
	d := newDiag(KindTS2365, span, fmt.Sprintf("operator '%s' cannot be applied to types '%s' and '%s'", op, l, r))
	d.Expected, d.Actual = l, r
	return d
}

func NewInvalidBinaryOpError(span, op string, l, r types.Type) *Diagnostic {
	d := newDiag(KindInvalidBinaryOp, span, fmt.Sprintf("invalid binary operation '%s' between '%s' and '%s'", op, l, r))
	d.Expected, d.Actual = l, r
	return d
}

func NewUnimplementedQueryImportError(span string) *Diagnostic {
	return newDiag(KindUnimplementedQueryImport, span, "assignment through an 'import(...)' query type is not implemented")
}

func NewUnimplementedDeepFactsError(span string, depth int) *Diagnostic {
	return newDiag(KindUnimplementedDeepFacts, span, fmt.Sprintf("deep facts for dotted names of length %d are not supported", depth))
}
