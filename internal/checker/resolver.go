package checker

import (
	"github.com/vela-lang/vela/internal/facts"
	"github.com/vela-lang/vela/internal/names"
	"github.com/vela-lang/vela/internal/types"
)

// TypeOfMode distinguishes how an identifier's type should be resolved
// (read access vs. a storage/write-target access), passed through to
// TypeOfVar/AccessProperty unchanged (§6).
type TypeOfMode int

const (
	TypeOfModeRValue TypeOfMode = iota
	TypeOfModeLValue
)

// IdCtx carries the identifier context accompanying a property access.
type IdCtx struct {
	Span string
}

// AssignOpts tunes the Assign oracle (denyUnknown, etc.); kept minimal
// since the decision procedure itself is out of scope (§1).
type AssignOpts struct {
	DenyUnknownObjectType bool
}

// Resolver is everything the core consumes from the surrounding analyzer
// (§6): declaration-site resolution, the assignability/subtype oracles,
// and the helpers layered on top of C1. The core depends only on this
// interface, never on a concrete implementation.
type Resolver interface {
	TypeOfVar(id names.Name, mode TypeOfMode) (types.Type, error)
	ResolveTypeof(entityName []string) (types.Type, error)
	AccessProperty(obj types.Type, key string, mode TypeOfMode, ctx IdCtx) (types.Type, error)

	Assign(lhs, rhs types.Type) error
	AssignWithOpts(opts AssignOpts, lhs, rhs types.Type) error
	AssignParams(lhsParams, rhsParams []types.Type) error

	Extends(opts types.ExtendsOpts, sub, sup types.Type) *bool
	HasOverlap(a, b types.Type) bool

	ExpandFully(t types.Type, preserveRef bool) (types.Type, error)
	ExpandTopRef(t types.Type) (types.Type, error)
	Normalize(t types.Type) types.Type

	FilterTypesWithProperty(t types.Type, prop string) (types.Type, error)
	MakeInstanceOrReport(t types.Type) types.Type
	ApplyTypeFactsToType(t types.Type, tf facts.TypeFacts) types.Type
	DenyNullOrUndefined(span string, t types.Type) error
	KindsOfTypeElements(t types.Type) []types.TypeElementKind
	CanBeCastedToNumberInRHS(t types.Type) bool
	MayGeneralize(t types.Type) bool

	Report(d *Diagnostic)
	Marks() types.Marks
}
