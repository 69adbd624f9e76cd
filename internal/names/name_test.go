package names

import "testing"

func TestNewRejectsEmpty(t *testing.T) {
	if _, ok := New(); ok {
		t.Error("expected New() with no symbols to fail")
	}
	if _, ok := New("a", ""); ok {
		t.Error("expected New() with an empty symbol to fail")
	}
}

func TestNameEquals(t *testing.T) {
	a, _ := New("a", "b")
	b, _ := New("a", "b")
	c, _ := New("a", "c")

	if !a.Equals(b) {
		t.Errorf("expected %s to equal %s", a, b)
	}
	if a.Equals(c) {
		t.Errorf("expected %s to not equal %s", a, c)
	}
}

func TestNameNFCNormalizesForEquality(t *testing.T) {
	// "é" as a precomposed code point vs. "e" + combining acute accent:
	// both spellings of the same dotted-name segment must hash/compare equal.
	precomposed := "café"
	decomposed := "café"

	a, ok := New(precomposed)
	if !ok {
		t.Fatal("New failed")
	}
	b, ok := New(decomposed)
	if !ok {
		t.Fatal("New failed")
	}

	if !a.Equals(b) {
		t.Errorf("expected NFC-equivalent symbols to produce equal Names: %q vs %q", a, b)
	}
	if a.Key() != b.Key() {
		t.Errorf("expected NFC-equivalent symbols to produce equal Keys: %q vs %q", a.Key(), b.Key())
	}
}

func TestNameAppendAndParent(t *testing.T) {
	a, _ := New("obj")
	ab := a.Append("prop")
	if ab.String() != "obj.prop" {
		t.Errorf("expected dotted string form, got %q", ab.String())
	}
	if ab.Last() != "prop" {
		t.Errorf("expected Last() to be prop, got %q", ab.Last())
	}

	parent, ok := ab.Parent()
	if !ok || !parent.Equals(a) {
		t.Errorf("expected Parent() of obj.prop to be obj, got %q ok=%v", parent, ok)
	}

	_, ok = a.Parent()
	if ok {
		t.Error("expected a length-1 Name to have no Parent")
	}
}

func TestNameKeyIsStableAcrossCalls(t *testing.T) {
	a, _ := New("a", "b", "c")
	b, _ := New("a", "b", "c")
	if a.Key() != b.Key() {
		t.Errorf("expected identical dotted chains to produce identical Keys")
	}
}
