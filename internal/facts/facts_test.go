package facts

import (
	"testing"

	"github.com/vela-lang/vela/internal/names"
	"github.com/vela-lang/vela/internal/types"
)

func mustName(t *testing.T, sym string) names.Name {
	t.Helper()
	n, ok := names.New(sym)
	if !ok {
		t.Fatalf("names.New(%q) failed", sym)
	}
	return n
}

func TestCondFactsMergeIdentity(t *testing.T) {
	x := mustName(t, "x")
	c := NewCondFacts()
	c.SetFact(x, Truthy)
	c.SetVar(x, types.String)
	c.AppendExclude(x, types.Null)

	before := c.Clone()
	c.Merge(NewCondFacts())

	if before.Facts["x"] != c.Facts["x"] {
		t.Errorf("merging the identity changed Facts: %v vs %v", before.Facts, c.Facts)
	}
	if len(before.Excludes["x"]) != len(c.Excludes["x"]) {
		t.Errorf("merging the identity changed Excludes")
	}
}

func TestCondFactsMergeAssociative(t *testing.T) {
	x := mustName(t, "x")

	a := NewCondFacts()
	a.SetFact(x, Truthy)
	b := NewCondFacts()
	b.SetFact(x, NENull)
	c := NewCondFacts()
	c.SetFact(x, NEUndefined)

	left := a.Clone()
	left.Merge(b)
	left.Merge(c)

	right := b.Clone()
	right.Merge(c)
	ab := a.Clone()
	ab.Merge(right)

	if left.Facts["x"] != ab.Facts["x"] {
		t.Errorf("Merge not associative: (a+b)+c=%v a+(b+c)=%v", left.Facts["x"], ab.Facts["x"])
	}
}

func TestCondFactsMergeFactsIsAnd(t *testing.T) {
	x := mustName(t, "x")
	a := NewCondFacts()
	a.SetFact(x, Truthy|NENull)
	b := NewCondFacts()
	b.SetFact(x, Truthy)

	a.Merge(b)
	want := (Truthy | NENull).And(Truthy)
	if a.Facts["x"] != want {
		t.Errorf("expected Facts merge to AND bits, got %v want %v", a.Facts["x"], want)
	}
}

func TestCondFactsMergeVarsLaterWins(t *testing.T) {
	x := mustName(t, "x")
	a := NewCondFacts()
	a.SetVar(x, types.String)
	b := NewCondFacts()
	b.SetVar(x, types.Number)

	a.Merge(b)
	if !a.Vars["x"].Equals(types.Number) {
		t.Errorf("expected later assignment to win, got %s", a.Vars["x"])
	}
}

func TestCondFactsMergeExcludesAppends(t *testing.T) {
	x := mustName(t, "x")
	a := NewCondFacts()
	a.AppendExclude(x, types.Null)
	b := NewCondFacts()
	b.AppendExclude(x, types.Undefined)

	a.Merge(b)
	if len(a.Excludes["x"]) != 2 {
		t.Errorf("expected excludes to append across merges, got %v", a.Excludes["x"])
	}
}

func TestAndKeysDropsVacantEntries(t *testing.T) {
	x := mustName(t, "x")
	y := mustName(t, "y")

	c := NewCondFacts()
	c.SetFact(x, Truthy)
	c.SetFact(y, Truthy)

	other := NewCondFacts()
	other.SetFact(x, Truthy)
	// y is vacant in other.

	c.AndKeys(other)

	if _, ok := c.Facts["x"]; !ok {
		t.Errorf("expected x to survive AndKeys (present on both sides)")
	}
	if _, ok := c.Facts["y"]; ok {
		t.Errorf("expected vacant y to be dropped, not inherited (§4.2/§9)")
	}
}

func TestFactsTakeResetsToEmpty(t *testing.T) {
	f := Empty()
	x := mustName(t, "x")
	f.True.SetFact(x, Truthy)

	taken := f.Take()
	if len(taken.True.Facts) == 0 {
		t.Fatal("expected Take to return the pre-reset value")
	}
	if len(f.True.Facts) != 0 {
		t.Errorf("expected Take to reset the receiver to empty, got %v", f.True.Facts)
	}
}

func TestTypeofEqNeqSwapBranches(t *testing.T) {
	eqTrue, eqFalse := TypeofEq("string")
	neqTrue, neqFalse := TypeofNeq("string")
	if eqTrue != neqFalse || eqFalse != neqTrue {
		t.Errorf("expected TypeofNeq to be TypeofEq with branches swapped")
	}
}
