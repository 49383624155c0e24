package grammar

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// TermSet is an ordered set of terminal strings. The empty string is a legal
// member and stands for epsilon. Iteration order is lexicographic, which
// keeps every dump and every derived table deterministic.
type TermSet struct {
	set *treeset.Set
}

// NewTermSet creates a terminal set holding the given elements.
func NewTermSet(elems ...string) *TermSet {
	t := &TermSet{set: treeset.NewWithStringComparator()}
	for _, e := range elems {
		t.set.Add(e)
	}
	return t
}

// Add inserts terminals into the set.
func (t *TermSet) Add(elems ...string) {
	for _, e := range elems {
		t.set.Add(e)
	}
}

// Contains checks membership.
func (t *TermSet) Contains(elem string) bool {
	return t.set.Contains(elem)
}

// Size returns the number of members.
func (t *TermSet) Size() int {
	return t.set.Size()
}

// Values returns the members in lexicographic order.
func (t *TermSet) Values() []string {
	vals := make([]string, 0, t.set.Size())
	it := t.set.Iterator()
	for it.Next() {
		vals = append(vals, it.Value().(string))
	}
	return vals
}

// Each calls f for every member, in order.
func (t *TermSet) Each(f func(elem string)) {
	it := t.set.Iterator()
	for it.Next() {
		f(it.Value().(string))
	}
}

// Copy returns an independent copy of the set.
func (t *TermSet) Copy() *TermSet {
	c := NewTermSet()
	t.Each(func(e string) { c.Add(e) })
	return c
}

// Union adds all members of other to t.
func (t *TermSet) Union(other *TermSet) {
	if other == nil {
		return
	}
	other.Each(func(e string) { t.Add(e) })
}

// Retain removes every member of t that is not also a member of other,
// i.e. t becomes the intersection of t and other.
func (t *TermSet) Retain(other *TermSet) {
	for _, e := range t.Values() {
		if other == nil || !other.Contains(e) {
			t.set.Remove(e)
		}
	}
}

// Equals reports whether both sets hold the same members.
func (t *TermSet) Equals(other *TermSet) bool {
	if t.Size() != other.Size() {
		return false
	}
	eq := true
	t.Each(func(e string) {
		if !other.Contains(e) {
			eq = false
		}
	})
	return eq
}

// String renders the members space-separated, with the empty string shown
// as 'epsilon'. Every member is preceded by a space, matching the layout of
// the driver's set reports.
func (t *TermSet) String() string {
	var b strings.Builder
	t.Each(func(e string) {
		b.WriteString(" ")
		if e == "" {
			b.WriteString("epsilon")
		} else {
			b.WriteString(e)
		}
	})
	return b.String()
}
