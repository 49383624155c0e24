package ll

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Seq is a sequence of terminal strings of bounded length, the member type
// of PFIRST and PFOLLOW sets. The one-element sequence Seq{""} is the
// nullable marker and denotes the empty string.
type Seq []string

// EpsilonSeq is the nullable marker.
func EpsilonSeq() Seq {
	return Seq{""}
}

// IsEpsilon reports whether the sequence is the nullable marker.
func (s Seq) IsEpsilon() bool {
	return len(s) == 1 && s[0] == ""
}

// strip removes epsilon markers from a sequence.
func (s Seq) strip() Seq {
	out := Seq{}
	for _, t := range s {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Key is the sequence's lookahead key: its terminal strings concatenated.
// The nullable marker stringifies to "".
func (s Seq) Key() string {
	return strings.Join(s.strip(), "")
}

// encode is an unambiguous form used for set ordering.
func (s Seq) encode() string {
	return strings.Join(s, "\x1f")
}

// String renders the sequence bracketed, with epsilon spelled out.
func (s Seq) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		if t == "" {
			parts[i] = "epsilon"
		} else {
			parts[i] = t
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// concatSeqs joins two sequences, dropping epsilon markers and truncating
// the result to k terminals. An empty result collapses back to the marker.
func concatSeqs(a, b Seq, k int) Seq {
	joined := append(a.strip(), b.strip()...)
	if len(joined) > k {
		joined = joined[:k]
	}
	if len(joined) == 0 {
		return EpsilonSeq()
	}
	return joined
}

// --- Sequence sets ----------------------------------------------------------

func seqComparator(x, y interface{}) int {
	return utils.StringComparator(x.(Seq).encode(), y.(Seq).encode())
}

// SeqSet is an ordered set of terminal sequences. Iteration order follows
// the sequences' encoded forms, which keeps dumps and tables deterministic.
type SeqSet struct {
	set *treeset.Set
}

// NewSeqSet creates a sequence set holding the given members.
func NewSeqSet(seqs ...Seq) *SeqSet {
	s := &SeqSet{set: treeset.NewWith(seqComparator)}
	for _, q := range seqs {
		s.set.Add(q)
	}
	return s
}

// Add inserts sequences into the set.
func (s *SeqSet) Add(seqs ...Seq) {
	for _, q := range seqs {
		s.set.Add(q)
	}
}

// Contains checks membership.
func (s *SeqSet) Contains(q Seq) bool {
	return s.set.Contains(q)
}

// Size returns the number of members.
func (s *SeqSet) Size() int {
	return s.set.Size()
}

// Values returns the members in encoded order.
func (s *SeqSet) Values() []Seq {
	vals := make([]Seq, 0, s.set.Size())
	it := s.set.Iterator()
	for it.Next() {
		vals = append(vals, it.Value().(Seq))
	}
	return vals
}

// Each calls f for every member, in order.
func (s *SeqSet) Each(f func(q Seq)) {
	it := s.set.Iterator()
	for it.Next() {
		f(it.Value().(Seq))
	}
}

// Copy returns an independent copy of the set.
func (s *SeqSet) Copy() *SeqSet {
	c := NewSeqSet()
	s.Each(func(q Seq) { c.Add(q) })
	return c
}

// Union adds all members of other to s.
func (s *SeqSet) Union(other *SeqSet) {
	if other == nil {
		return
	}
	other.Each(func(q Seq) { s.Add(q) })
}

// Retain intersects s with other in place.
func (s *SeqSet) Retain(other *SeqSet) {
	for _, q := range s.Values() {
		if other == nil || !other.Contains(q) {
			s.set.Remove(q)
		}
	}
}

// Equals reports whether both sets hold the same members.
func (s *SeqSet) Equals(other *SeqSet) bool {
	if s.Size() != other.Size() {
		return false
	}
	eq := true
	s.Each(func(q Seq) {
		if !other.Contains(q) {
			eq = false
		}
	})
	return eq
}

// String renders the members space-separated, each preceded by a space,
// matching the layout of the driver's set reports.
func (s *SeqSet) String() string {
	var b strings.Builder
	s.Each(func(q Seq) {
		b.WriteString(" ")
		b.WriteString(q.String())
	})
	return b.String()
}

// Concat computes { trunc_k(strip(a) ++ strip(b)) : a ∈ A, b ∈ B }.
func Concat(A, B *SeqSet, k int) *SeqSet {
	out := NewSeqSet()
	A.Each(func(a Seq) {
		B.Each(func(b Seq) {
			out.Add(concatSeqs(a, b, k))
		})
	})
	return out
}

// selfExpand approximates k levels of self-recursion without a fixed point:
// the accumulator is re-concatenated with itself plus epsilon, k times.
func selfExpand(acc *SeqSet, k int) *SeqSet {
	eps := NewSeqSet(EpsilonSeq())
	for i := 0; i < k; i++ {
		base := acc.Copy()
		base.Union(eps)
		acc = Concat(base, acc, k)
	}
	return acc
}
