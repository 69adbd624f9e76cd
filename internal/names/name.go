// Package names implements dotted identifier chains (the key of every fact
// map in internal/facts) with NFC-stable equality and hashing, the way
// internal/lexer normalizes source text before tokenizing.
package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Name is a non-empty ordered sequence of identifier symbols representing a
// dotted chain such as `a.b.c`. Names have value equality and a canonical
// hash; they are never mutated after construction.
type Name struct {
	symbols []string
}

// New builds a Name from one or more identifier symbols, NFC-normalizing
// each one so that lexically equivalent source produces an identical Name
// regardless of the source encoding (mirrors lexer.Normalize's NFC step,
// applied per-symbol instead of to a whole source buffer; no BOM is
// stripped here).
func New(symbols ...string) (Name, bool) {
	if len(symbols) == 0 {
		return Name{}, false
	}
	norm := make([]string, len(symbols))
	for i, s := range symbols {
		if s == "" {
			return Name{}, false
		}
		norm[i] = normalizeSymbol(s)
	}
	return Name{symbols: norm}, true
}

func normalizeSymbol(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// Len reports the number of dotted segments.
func (n Name) Len() int { return len(n.symbols) }

// Head returns the leading (root variable) symbol.
func (n Name) Head() string { return n.symbols[0] }

// Symbols returns the underlying segment slice; callers must not mutate it.
func (n Name) Symbols() []string { return n.symbols }

// Append returns a new Name with sym appended, representing `n.sym`.
func (n Name) Append(sym string) Name {
	next := make([]string, len(n.symbols)+1)
	copy(next, n.symbols)
	next[len(n.symbols)] = normalizeSymbol(sym)
	return Name{symbols: next}
}

// Parent returns the name with its last segment removed and whether one
// exists (false for a length-1 name).
func (n Name) Parent() (Name, bool) {
	if len(n.symbols) <= 1 {
		return Name{}, false
	}
	return Name{symbols: n.symbols[:len(n.symbols)-1]}, true
}

// Last returns the final dotted segment.
func (n Name) Last() string { return n.symbols[len(n.symbols)-1] }

// Equals reports value equality between two Names.
func (n Name) Equals(o Name) bool {
	if len(n.symbols) != len(o.symbols) {
		return false
	}
	for i := range n.symbols {
		if n.symbols[i] != o.symbols[i] {
			return false
		}
	}
	return true
}

// Key returns the canonical hash key used by fact maps (Go map keys need
// comparability; the dotted-join with a separator unlikely to appear in a
// source identifier is the canonical hash).
func (n Name) Key() string {
	return strings.Join(n.symbols, "\x00")
}

// String renders the dotted form, e.g. "a.b.c".
func (n Name) String() string {
	return strings.Join(n.symbols, ".")
}
