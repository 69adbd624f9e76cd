package checker

import (
	"github.com/vela-lang/vela/internal/config"
	"github.com/vela-lang/vela/internal/facts"
)

// ChildKind distinguishes why a child scope was opened; only Flow is used
// by the dispatcher today, but the kind is threaded through so future
// callers (loops, conditionals outside this core's scope) can extend it
// without changing with_child's signature.
type ChildKind int

const (
	ChildFlow ChildKind = iota
)

// Ctx carries the flags the narrowing kernel and dispatcher consult (§3
// "Analyzer context").
type Ctx struct {
	InCondOfCondExpr             bool
	InSwitchCaseTest             bool
	ShouldStoreTruthyForAccess   bool
	PreserveRef                  bool
	IgnoreExpandPreventionForTop bool

	// generalizeLiterals gates CanGeneralizeLiterals; it is not in the
	// spec's flag list verbatim but backs can_generalize_literals().
	generalizeLiterals bool
}

// CanGeneralizeLiterals reports whether literal generalization is
// currently permitted in this context.
func (c Ctx) CanGeneralizeLiterals() bool { return c.generalizeLiterals }

// Analyzer is the single owner of cur_facts and the active Ctx for one
// expression-checking walk (§5: single-threaded cooperative, one owner).
type Analyzer struct {
	Resolver Resolver
	CurFacts facts.Facts
	Ctx      Ctx
	Config   config.CheckerConfig

	errs ErrorList
}

// NewAnalyzer starts a fresh Analyzer with empty facts, default context, and
// the default CheckerConfig (§4.4's default `disallow_different_classes`
// behavior, unknown widening enabled, lenient switch-case overlap).
func NewAnalyzer(r Resolver) *Analyzer {
	return NewAnalyzerWithConfig(r, config.Default())
}

// NewAnalyzerWithConfig starts a fresh Analyzer under an explicit
// CheckerConfig, the way cmd/velac and cmd/velarepl load one from YAML.
func NewAnalyzerWithConfig(r Resolver, cfg config.CheckerConfig) *Analyzer {
	return &Analyzer{
		Resolver: r,
		CurFacts: facts.Empty(),
		Ctx:      Ctx{generalizeLiterals: true},
		Config:   cfg,
	}
}

// TakeFacts returns cur_facts and resets it to empty.
func (a *Analyzer) TakeFacts() facts.Facts {
	return a.CurFacts.Take()
}

// SetFacts overwrites cur_facts.
func (a *Analyzer) SetFacts(f facts.Facts) {
	a.CurFacts = f
}

// CloneFacts returns a deep copy of cur_facts.
func (a *Analyzer) CloneFacts() facts.Facts {
	return a.CurFacts.Clone()
}

// WithChild evaluates body in a child scope seeded with seedTrue as the
// child's true_facts and empty false_facts, then restores the parent's
// context and facts on every exit path — a stack-discipline resource
// (§5). The child's own facts are discarded unless body copies something
// out of them before returning; callers that want to merge call Merge
// explicitly afterward (§4.2's per-operator table drives exactly what to
// merge, so WithChild never merges on the caller's behalf).
func (a *Analyzer) WithChild(kind ChildKind, seedTrue facts.CondFacts, body func() error) (facts.Facts, error) {
	savedFacts := a.CurFacts
	savedCtx := a.Ctx

	a.CurFacts = facts.Facts{True: seedTrue, False: facts.NewCondFacts()}

	err := body()

	childFacts := a.CurFacts
	a.CurFacts = savedFacts
	a.Ctx = savedCtx
	return childFacts, err
}

// AddErr accumulates an operand-evaluation error without short-circuiting
// the sibling operand's evaluation (§7: "the dispatcher still evaluates
// the other ... and then reports Errors{errors} if any operand is
// missing").
func (a *Analyzer) AddErr(err error) {
	a.errs.Add(err)
}

func (a *Analyzer) takeAccumulatedErrors() error {
	if !a.errs.HasErrors() {
		return nil
	}
	out := a.errs
	a.errs = ErrorList{}
	return &out
}
