package checker

// Expr is the minimal expression-node surface C3/C4/C5 need to consume.
// Full parsing and AST construction are out of scope (§1): this is just
// enough shape for name extraction, typeof detection, and literal tests.
type Expr interface {
	exprNode()
}

// Ident is a bare identifier reference.
type Ident struct {
	Sym string
}

func (*Ident) exprNode() {}

// Member is `Obj.Prop` (Computed=false, non-computed identifier property)
// or `Obj[Prop]` (Computed=true). ExtractNameForAssignment rejects every
// computed Member; ExtractComputedStringName builds the name for a
// computed string-literal index whose value the caller already knows.
type Member struct {
	Obj      Expr
	Prop     string
	Computed bool
}

func (*Member) exprNode() {}

// Paren is a parenthesized expression, transparent to name extraction.
type Paren struct {
	Inner Expr
}

func (*Paren) exprNode() {}

// AssignExpr is `Target = Value`; §4.5 only looks at Target.
type AssignExpr struct {
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}

// UnaryTypeof is `typeof Arg`.
type UnaryTypeof struct {
	Arg Expr
}

func (*UnaryTypeof) exprNode() {}

// StringLit is a string literal, including a template with a single quasi
// and no substitutions (§4.3.1 treats those as equivalent to a plain
// string literal).
type StringLit struct {
	Value string
}

func (*StringLit) exprNode() {}

// NullLit is the `null` literal.
type NullLit struct{}

func (*NullLit) exprNode() {}

// BinaryExpr is `L op R`; op is one of the operator strings in §4.4
// ("+", "-", "*", "/", "%", "<<", ">>", ">>>", "&", "|", "^", "**",
// "===", "!==", "==", "!=", "instanceof", "<", "<=", ">", ">=", "in",
// "&&", "||", "??"). Parenthesization is tracked separately via Paren so
// check_for_mixed_nullish_coalescing can see through it.
type BinaryExpr struct {
	Op   string
	L, R Expr
}

func (*BinaryExpr) exprNode() {}

// IsUndefinedIdent reports whether e is the bare identifier `undefined`,
// excluded from generic-equality-narrowing name extraction (§4.3.3).
func IsUndefinedIdent(e Expr) bool {
	id, ok := e.(*Ident)
	return ok && id.Sym == "undefined"
}

// IsNullLit reports whether e is the `null` literal.
func IsNullLit(e Expr) bool {
	_, ok := e.(*NullLit)
	return ok
}

// unwrapParen strips any number of surrounding Paren wrappers.
func unwrapParen(e Expr) Expr {
	for {
		p, ok := e.(*Paren)
		if !ok {
			return e
		}
		e = p.Inner
	}
}

// isBinaryWithOp reports whether e itself (a Paren wrapper is not looked
// through) is a BinaryExpr with one of the given operators, for the
// mixed-nullish-coalescing check (§4.4 step 2).
func isBinaryWithOp(e Expr, ops ...string) bool {
	b, ok := e.(*BinaryExpr)
	if !ok {
		return false
	}
	for _, op := range ops {
		if b.Op == op {
			return true
		}
	}
	return false
}

// isParenthesized reports whether e is directly wrapped in Paren (one
// level is enough: "not parenthesized" in §4.4 step 2 means the immediate
// operand, not some nested sub-expression).
func isParenthesized(e Expr) bool {
	_, ok := e.(*Paren)
	return ok
}
