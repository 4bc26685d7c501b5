// Package ints implements a compact set of small non-negative integers,
// used for grammar node IDs.
package ints

import (
	"math/bits"
)

const wordBits = 64

// Set is a bit set, zero value is an empty set. Negative items are ignored.
type Set struct {
	words []uint64
}

func NewSet(items ...int) *Set {
	return (&Set{}).Add(items...)
}

func split(item int) (word int, mask uint64) {
	return item / wordBits, uint64(1) << (item % wordBits)
}

func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}
		w, mask := split(item)
		for w >= len(s.words) {
			s.words = append(s.words, 0)
		}
		s.words[w] |= mask
	}
	return s
}

func (s *Set) Remove(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}
		w, mask := split(item)
		if w < len(s.words) {
			s.words[w] &^= mask
		}
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 {
		return false
	}
	w, mask := split(item)
	return w < len(s.words) && s.words[w]&mask != 0
}

func (s *Set) Len() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (s *Set) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

func (s *Set) Copy() *Set {
	return &Set{append([]uint64(nil), s.words...)}
}

// Union adds all items of t to s.
func (s *Set) Union(t *Set) *Set {
	if len(t.words) > len(s.words) {
		s.words = append(s.words, make([]uint64, len(t.words)-len(s.words))...)
	}
	for i, w := range t.words {
		s.words[i] |= w
	}
	return s
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			result = append(result, i*wordBits+b)
			w &^= uint64(1) << b
		}
	}
	return result
}
