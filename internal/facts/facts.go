// Package facts implements the flow-sensitive fact store (C2): the
// TypeFacts bitset, the CondFacts monoid, and the Facts pair the
// narrowing kernel and operator dispatcher read and mutate.
package facts

import (
	"github.com/vela-lang/vela/internal/names"
	"github.com/vela-lang/vela/internal/types"
)

// TypeFacts is a bitset of orthogonal refinements, closed under AND/OR.
type TypeFacts uint32

const (
	None TypeFacts = 0

	Truthy TypeFacts = 1 << iota
	Falsy
	NEUndefined
	EQUndefined
	NENull
	EQNull

	// Typeof<kw>/NETypeof<kw>: one bit per primitive keyword spelling a
	// `typeof x === "..."` test can observe.
	TypeofString
	TypeofNumber
	TypeofBoolean
	TypeofBigInt
	TypeofSymbol
	TypeofObject
	TypeofFunction
	TypeofUndefined

	NETypeofString
	NETypeofNumber
	NETypeofBoolean
	NETypeofBigInt
	NETypeofSymbol
	NETypeofObject
	NETypeofFunction
	NETypeofUndefined
)

var typeofBits = map[string]TypeFacts{
	"string":    TypeofString,
	"number":    TypeofNumber,
	"boolean":   TypeofBoolean,
	"bigint":    TypeofBigInt,
	"symbol":    TypeofSymbol,
	"object":    TypeofObject,
	"function":  TypeofFunction,
	"undefined": TypeofUndefined,
}

var negTypeofBits = map[string]TypeFacts{
	"string":    NETypeofString,
	"number":    NETypeofNumber,
	"boolean":   NETypeofBoolean,
	"bigint":    NETypeofBigInt,
	"symbol":    NETypeofSymbol,
	"object":    NETypeofObject,
	"function":  NETypeofFunction,
	"undefined": NETypeofUndefined,
}

// TypeofEq returns the facts pair (true-branch, false-branch) for
// `typeof x === "kw"`: the true branch asserts the positive bit, the
// false branch asserts the negative bit. An unrecognized spelling yields
// None for both (it can never hold, but that's a diagnostic-layer
// concern, not this bitset's).
func TypeofEq(kw string) (trueFacts, falseFacts TypeFacts) {
	return typeofBits[kw], negTypeofBits[kw]
}

// TypeofNeq is TypeofEq with branches swapped, for `typeof x !== "kw"`.
func TypeofNeq(kw string) (trueFacts, falseFacts TypeFacts) {
	f, t := TypeofEq(kw)
	return t, f
}

// And intersects two fact sets (both must hold).
func (f TypeFacts) And(o TypeFacts) TypeFacts { return f & o }

// Or unions two fact sets (either may hold).
func (f TypeFacts) Or(o TypeFacts) TypeFacts { return f | o }

// Has reports whether every bit in want is set in f.
func (f TypeFacts) Has(want TypeFacts) bool { return f&want == want }

// CondFacts is facts/vars/excludes keyed by dotted Name, forming a monoid
// under += (Merge); Merge is not commutative, since vars take the later
// assignment and excludes keep append order.
type CondFacts struct {
	Facts    map[string]TypeFacts
	Vars     map[string]types.Type
	Excludes map[string][]types.Type

	// names mirrors the Name value behind each Facts/Vars/Excludes key, so
	// callers can iterate Name values instead of raw strings.
	names map[string]names.Name
}

// NewCondFacts returns an empty CondFacts (the monoid identity).
func NewCondFacts() CondFacts {
	return CondFacts{
		Facts:    make(map[string]TypeFacts),
		Vars:     make(map[string]types.Type),
		Excludes: make(map[string][]types.Type),
		names:    make(map[string]names.Name),
	}
}

func (c *CondFacts) remember(n names.Name) {
	if c.names == nil {
		c.names = make(map[string]names.Name)
	}
	c.names[n.Key()] = n
}

// SetFact ANDs bits into the current fact set for n (first write simply
// stores, matching the "+=" merge rule applied to a fresh entry).
func (c *CondFacts) SetFact(n names.Name, tf TypeFacts) {
	if c.Facts == nil {
		c.Facts = make(map[string]TypeFacts)
	}
	c.remember(n)
	k := n.Key()
	if existing, ok := c.Facts[k]; ok {
		c.Facts[k] = existing.And(tf)
	} else {
		c.Facts[k] = tf
	}
}

// SetVar installs a wholesale replacement type for n (later assignment
// wins on merge, per §3's CondFacts += rule).
func (c *CondFacts) SetVar(n names.Name, t types.Type) {
	if c.Vars == nil {
		c.Vars = make(map[string]types.Type)
	}
	c.remember(n)
	c.Vars[n.Key()] = t
}

// AppendExclude appends t to n's excludes list.
func (c *CondFacts) AppendExclude(n names.Name, t types.Type) {
	if c.Excludes == nil {
		c.Excludes = make(map[string][]types.Type)
	}
	c.remember(n)
	k := n.Key()
	c.Excludes[k] = append(c.Excludes[k], t)
}

// Clone returns a deep copy of c.
func (c CondFacts) Clone() CondFacts {
	out := NewCondFacts()
	for k, v := range c.Facts {
		out.Facts[k] = v
	}
	for k, v := range c.Vars {
		out.Vars[k] = v
	}
	for k, vs := range c.Excludes {
		cp := make([]types.Type, len(vs))
		copy(cp, vs)
		out.Excludes[k] = cp
	}
	for k, n := range c.names {
		out.names[k] = n
	}
	return out
}

// Merge implements the CondFacts "+=" monoid operation: bitwise AND on
// facts, map-merge on vars (o wins, "the later assignment"), append on
// excludes. Merge is associative and has NewCondFacts() as identity.
func (c *CondFacts) Merge(o CondFacts) {
	for k, v := range o.Facts {
		if cur, ok := c.Facts[k]; ok {
			if c.Facts == nil {
				c.Facts = make(map[string]TypeFacts)
			}
			c.Facts[k] = cur.And(v)
		} else {
			if c.Facts == nil {
				c.Facts = make(map[string]TypeFacts)
			}
			c.Facts[k] = v
		}
	}
	for k, v := range o.Vars {
		if c.Vars == nil {
			c.Vars = make(map[string]types.Type)
		}
		c.Vars[k] = v
	}
	for k, vs := range o.Excludes {
		if c.Excludes == nil {
			c.Excludes = make(map[string][]types.Type)
		}
		c.Excludes[k] = append(c.Excludes[k], vs...)
	}
	for k, n := range o.names {
		if c.names == nil {
			c.names = make(map[string]names.Name)
		}
		c.names[k] = n
	}
}

// AndKeys intersects c in place against o, keeping only entries present in
// both maps ("vacant entry is dropped, not inherited", §4.2/§9) — used by
// the `||` composer's per-key AND of true_facts.
func (c *CondFacts) AndKeys(o CondFacts) {
	for k, v := range c.Facts {
		if ov, ok := o.Facts[k]; ok {
			c.Facts[k] = v.And(ov)
		} else {
			delete(c.Facts, k)
			delete(c.names, k)
		}
	}
}

// Facts is the true/false branch fact pair the analyzer holds at each
// program point.
type Facts struct {
	True  CondFacts
	False CondFacts
}

// Empty returns a fresh Facts pair (both branches at the monoid identity).
func Empty() Facts {
	return Facts{True: NewCondFacts(), False: NewCondFacts()}
}

// Clone deep-copies both branches.
func (f Facts) Clone() Facts {
	return Facts{True: f.True.Clone(), False: f.False.Clone()}
}

// Take returns the current value and resets the receiver to Empty().
func (f *Facts) Take() Facts {
	cur := *f
	*f = Empty()
	return cur
}
