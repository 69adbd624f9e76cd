// Package types implements the structural type algebra (C1) described by
// the binary-expression checker: a tagged-variant Type with structural,
// span-free equality, plus the normalization and predicate helpers the
// narrowing kernel and operator dispatcher build on.
package types

import (
	"fmt"
	"strings"
)

// Type is the tagged-variant type value. Implementations carry no source
// span: Equals ("type_eq") is defined to ignore spans by construction.
type Type interface {
	String() string
	Equals(Type) bool
	typeNode()
}

// Literal is the payload of a Lit type.
type Literal struct {
	Kind   LiteralKind
	Str    string
	Num    float64
	Bool   bool
	BigInt string
}

type LiteralKind int

const (
	LitStr LiteralKind = iota
	LitNum
	LitBool
	LitBigInt
)

func (l Literal) String() string {
	switch l.Kind {
	case LitStr:
		return fmt.Sprintf("%q", l.Str)
	case LitNum:
		return fmt.Sprintf("%v", l.Num)
	case LitBool:
		return fmt.Sprintf("%v", l.Bool)
	case LitBigInt:
		return l.BigInt + "n"
	default:
		return "<lit>"
	}
}

func (l Literal) Equals(o Literal) bool {
	if l.Kind != o.Kind {
		return false
	}
	switch l.Kind {
	case LitStr:
		return l.Str == o.Str
	case LitNum:
		return l.Num == o.Num
	case LitBool:
		return l.Bool == o.Bool
	case LitBigInt:
		return l.BigInt == o.BigInt
	}
	return false
}

// Keyword returns the base keyword this literal generalizes to.
func (l Literal) Keyword() KeywordKind {
	switch l.Kind {
	case LitStr:
		return KwString
	case LitNum:
		return KwNumber
	case LitBool:
		return KwBoolean
	case LitBigInt:
		return KwBigInt
	default:
		return KwAny
	}
}

// --- Keyword ---

type TKeyword struct {
	Kind KeywordKind
}

func (t *TKeyword) typeNode() {}
func (t *TKeyword) String() string { return t.Kind.String() }
func (t *TKeyword) Equals(o Type) bool {
	ot, ok := o.(*TKeyword)
	return ok && ot.Kind == t.Kind
}

func Kwd(k KeywordKind) *TKeyword { return &TKeyword{Kind: k} }

var (
	Any       = Kwd(KwAny)
	Unknown   = Kwd(KwUnknown)
	Never     = Kwd(KwNever)
	Void      = Kwd(KwVoid)
	Undefined = Kwd(KwUndefined)
	Null      = Kwd(KwNull)
	String    = Kwd(KwString)
	Number    = Kwd(KwNumber)
	Boolean   = Kwd(KwBoolean)
	BigIntKwd = Kwd(KwBigInt)
	SymbolKwd = Kwd(KwSymbol)
	Object    = Kwd(KwObject)
)

// --- Lit ---

type TLit struct {
	Lit Literal
	// NoGeneralize marks a literal produced by equality narrowing or the
	// `??` rule as not eligible for widening by GeneralizeLit
	// (prevent_generalize).
	NoGeneralize bool
}

func (t *TLit) typeNode() {}
func (t *TLit) String() string { return t.Lit.String() }
func (t *TLit) Equals(o Type) bool {
	ot, ok := o.(*TLit)
	return ok && t.Lit.Equals(ot.Lit)
}

// --- Ref (named type reference, resolved through the environment) ---

type TRef struct {
	Name string
	Args []Type
}

func (t *TRef) typeNode() {}
func (t *TRef) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}
func (t *TRef) Equals(o Type) bool {
	ot, ok := o.(*TRef)
	if !ok || ot.Name != t.Name || len(ot.Args) != len(t.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(ot.Args[i]) {
			return false
		}
	}
	return true
}

// --- Query (typeof E) ---

// QueryExpr is the minimal shape of `typeof E`: either an entity name
// (dotted identifier chain, resolvable via resolve_typeof) or an
// import(...) form, which is out of scope (§4.5).
type QueryExpr struct {
	EntityName []string
	IsImport   bool
}

type TQuery struct {
	Expr QueryExpr
}

func (t *TQuery) typeNode() {}
func (t *TQuery) String() string {
	if t.Expr.IsImport {
		return "typeof import(...)"
	}
	return "typeof " + strings.Join(t.Expr.EntityName, ".")
}
func (t *TQuery) Equals(o Type) bool {
	ot, ok := o.(*TQuery)
	if !ok || ot.Expr.IsImport != t.Expr.IsImport {
		return false
	}
	if len(ot.Expr.EntityName) != len(t.Expr.EntityName) {
		return false
	}
	for i := range t.Expr.EntityName {
		if t.Expr.EntityName[i] != ot.Expr.EntityName[i] {
			return false
		}
	}
	return true
}

// --- Union / Intersection ---

type TUnion struct {
	Types        []Type
	NoGeneralize bool
}

func (t *TUnion) typeNode() {}
func (t *TUnion) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}
func (t *TUnion) Equals(o Type) bool {
	ot, ok := o.(*TUnion)
	if !ok || len(ot.Types) != len(t.Types) {
		return false
	}
	return sameMemberSet(t.Types, ot.Types)
}

type TIntersection struct {
	Types        []Type
	NoGeneralize bool
}

func (t *TIntersection) typeNode() {}
func (t *TIntersection) String() string {
	parts := make([]string, len(t.Types))
	for i, m := range t.Types {
		parts[i] = m.String()
	}
	return strings.Join(parts, " & ")
}
func (t *TIntersection) Equals(o Type) bool {
	ot, ok := o.(*TIntersection)
	if !ok || len(ot.Types) != len(t.Types) {
		return false
	}
	return sameMemberSet(t.Types, ot.Types)
}

func sameMemberSet(a, b []Type) bool {
	used := make([]bool, len(b))
	for _, m := range a {
		found := false
		for i, n := range b {
			if used[i] {
				continue
			}
			if m.Equals(n) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// --- Class / ClassDef / Interface ---

type ClassDef struct {
	Name       string
	SuperClass Type // nil if none
	Body       []TypeElement
}

type TClassDef struct {
	Def *ClassDef
}

func (t *TClassDef) typeNode() {}
func (t *TClassDef) String() string { return "class " + t.Def.Name }
func (t *TClassDef) Equals(o Type) bool {
	ot, ok := o.(*TClassDef)
	return ok && t.Def.Name == ot.Def.Name
}

type TClass struct {
	Def *ClassDef
}

func (t *TClass) typeNode() {}
func (t *TClass) String() string { return t.Def.Name }
func (t *TClass) Equals(o Type) bool {
	ot, ok := o.(*TClass)
	return ok && t.Def.Name == ot.Def.Name
}

type TInterface struct {
	Name    string
	Members []TypeElement
}

func (t *TInterface) typeNode() {}
func (t *TInterface) String() string { return "interface " + t.Name }
func (t *TInterface) Equals(o Type) bool {
	ot, ok := o.(*TInterface)
	return ok && t.Name == ot.Name
}

// --- TypeLit / members ---

type TypeElementKind int

const (
	ElemProperty TypeElementKind = iota
	ElemMethod
	ElemIndex
)

// TypeElement is a member of a TypeLit/Interface: a property, a method
// signature, or an index signature.
type TypeElement struct {
	Kind TypeElementKind

	// ElemProperty / ElemMethod
	Key string
	Type Type // property type, or method "function type" payload

	// ElemMethod
	Params     []Type
	RetTy      Type
	TypeParams int // arity of generic params, for arity comparisons

	// ElemIndex
	IndexParamType Type
	IndexValueType Type
}

type TTypeLit struct {
	Members []TypeElement
}

func (t *TTypeLit) typeNode() {}
func (t *TTypeLit) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.Key
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}
func (t *TTypeLit) Equals(o Type) bool {
	ot, ok := o.(*TTypeLit)
	if !ok || len(ot.Members) != len(t.Members) {
		return false
	}
	for i := range t.Members {
		if t.Members[i].Key != ot.Members[i].Key || t.Members[i].Kind != ot.Members[i].Kind {
			return false
		}
	}
	return true
}

// --- Tuple / Array ---

type TTuple struct {
	Elements []Type
}

func (t *TTuple) typeNode() {}
func (t *TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (t *TTuple) Equals(o Type) bool {
	ot, ok := o.(*TTuple)
	if !ok || len(ot.Elements) != len(t.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equals(ot.Elements[i]) {
			return false
		}
	}
	return true
}

type TArray struct {
	Element Type
}

func (t *TArray) typeNode() {}
func (t *TArray) String() string { return t.Element.String() + "[]" }
func (t *TArray) Equals(o Type) bool {
	ot, ok := o.(*TArray)
	return ok && t.Element.Equals(ot.Element)
}

// --- Mapped / IndexedAccess ---

type TMapped struct {
	Param   string
	InKeyOf Type
	Value   Type
}

func (t *TMapped) typeNode() {}
func (t *TMapped) String() string {
	return fmt.Sprintf("{ [%s in keyof %s]: %s }", t.Param, t.InKeyOf, t.Value)
}
func (t *TMapped) Equals(o Type) bool {
	ot, ok := o.(*TMapped)
	return ok && t.Param == ot.Param && t.InKeyOf.Equals(ot.InKeyOf) && t.Value.Equals(ot.Value)
}

type TIndexedAccess struct {
	Obj   Type
	Index Type
}

func (t *TIndexedAccess) typeNode() {}
func (t *TIndexedAccess) String() string { return fmt.Sprintf("%s[%s]", t.Obj, t.Index) }
func (t *TIndexedAccess) Equals(o Type) bool {
	ot, ok := o.(*TIndexedAccess)
	return ok && t.Obj.Equals(ot.Obj) && t.Index.Equals(ot.Index)
}

// --- Param (type parameter) / Enum / EnumVariant ---

type TParam struct {
	Name       string
	Constraint Type // nil if unconstrained
}

func (t *TParam) typeNode() {}
func (t *TParam) String() string { return t.Name }
func (t *TParam) Equals(o Type) bool {
	ot, ok := o.(*TParam)
	return ok && t.Name == ot.Name
}

type TEnum struct {
	Name     string
	Variants []string
}

func (t *TEnum) typeNode() {}
func (t *TEnum) String() string { return t.Name }
func (t *TEnum) Equals(o Type) bool {
	ot, ok := o.(*TEnum)
	return ok && t.Name == ot.Name
}

type TEnumVariant struct {
	Enum    string
	Variant string
}

func (t *TEnumVariant) typeNode() {}
func (t *TEnumVariant) String() string { return t.Enum + "." + t.Variant }
func (t *TEnumVariant) Equals(o Type) bool {
	ot, ok := o.(*TEnumVariant)
	return ok && t.Enum == ot.Enum && t.Variant == ot.Variant
}

// --- Operator (e.g. keyof T) / This / Symbol ---

type TypeOperatorOp int

const (
	OpKeyOf TypeOperatorOp = iota
	OpUnique
	OpReadonly
)

type TOperator struct {
	Op TypeOperatorOp
	Ty Type
}

func (t *TOperator) typeNode() {}
func (t *TOperator) String() string { return "keyof " + t.Ty.String() }
func (t *TOperator) Equals(o Type) bool {
	ot, ok := o.(*TOperator)
	return ok && t.Op == ot.Op && t.Ty.Equals(ot.Ty)
}

type TThis struct{}

func (t *TThis) typeNode() {}
func (t *TThis) String() string { return "this" }
func (t *TThis) Equals(o Type) bool {
	_, ok := o.(*TThis)
	return ok
}

type TSymbol struct {
	Name string
}

func (t *TSymbol) typeNode() {}
func (t *TSymbol) String() string {
	if t.Name == "" {
		return "symbol"
	}
	return "symbol(" + t.Name + ")"
}
func (t *TSymbol) Equals(o Type) bool {
	ot, ok := o.(*TSymbol)
	return ok && t.Name == ot.Name
}
