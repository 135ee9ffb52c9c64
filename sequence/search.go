// Package sequence implements subsequence search over slices of comparable
// elements. The elements do not have to be characters: searching a pattern of
// token word-forms inside a sentence works the same way as searching a
// substring.
package sequence

import (
	"iter"

	"github.com/pkg/errors"
)

// ErrEmptyPattern is returned by Find and FindAll when the pattern has no
// elements.
var ErrEmptyPattern = errors.New("sequence: empty pattern")

// Match is one occurrence of a pattern inside a searched sequence. Start and
// End are both indices into the sequence, End inclusive, so the occurrence
// covers seq[m.Start : m.End+1].
type Match struct {
	Start int
	End   int
}

// Find returns a lazy iterator over every occurrence of pattern inside seq,
// in ascending start order. Occurrences may overlap. Elements are compared
// with ==, so any comparable element type works.
//
// The iterator is single pass and may be abandoned early without side
// effects. The scan is Knuth-Morris-Pratt: a shift table over pattern is
// built once and seq is read strictly left to right with no backtracking,
// O(len(seq)+len(pattern)) overall.
func Find[E comparable](seq, pattern []E) (iter.Seq[Match], error) {
	if len(pattern) == 0 {
		return nil, errors.WithStack(ErrEmptyPattern)
	}
	shifts := shiftTable(pattern)
	return func(yield func(Match) bool) {
		start := 0
		matched := 0
		for _, item := range seq {
			for matched == len(pattern) || matched >= 0 && pattern[matched] != item {
				start += shifts[matched]
				matched -= shifts[matched]
			}
			matched++
			if matched == len(pattern) {
				if !yield(Match{Start: start, End: start + len(pattern) - 1}) {
					return
				}
			}
		}
	}, nil
}

// FindAll is like Find but collects every match eagerly.
func FindAll[E comparable](seq, pattern []E) ([]Match, error) {
	matches, err := Find(seq, pattern)
	if err != nil {
		return nil, err
	}
	var out []Match
	for m := range matches {
		out = append(out, m)
	}
	return out, nil
}

// shiftTable computes, for every matched-prefix length l in
// [0, len(pattern)], how far the candidate start position advances after a
// mismatch that follows l matched elements.
func shiftTable[E comparable](pattern []E) []int {
	shifts := make([]int, len(pattern)+1)
	for i := range shifts {
		shifts[i] = 1
	}
	shift := 1
	for pos := range pattern {
		for shift <= pos && pattern[pos] != pattern[pos-shift] {
			shift += shifts[pos-shift]
		}
		shifts[pos+1] = shift
	}
	return shifts
}
