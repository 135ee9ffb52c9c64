package sequence

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func starts(t *testing.T, seq, pattern string) []int {
	t.Helper()
	matches, err := FindAll([]byte(seq), []byte(pattern))
	require.NoError(t, err)
	var out []int
	for _, m := range matches {
		assert.Equal(t, m.Start+len(pattern)-1, m.End)
		out = append(out, m.Start)
	}
	return out
}

func TestFindStrings(t *testing.T) {
	tests := []struct {
		name     string
		seq      string
		pattern  string
		expected []int
	}{
		{"empty sequence", "", "come", nil},
		{"single match", "caraamicamiacomestai", "come", []int{12}},
		{"no match", "caraamicamiacomestai", "amico", nil},
		{"two matches", "caraamicamiacomestai", "am", []int{4, 8}},
		{"overlapping self repeats", "aaaa", "aa", []int{0, 1, 2}},
		{"pattern equals sequence", "abc", "abc", []int{0}},
		{"single element pattern", "abcabc", "b", []int{1, 4}},
		{"pattern longer than sequence", "ab", "abc", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, starts(t, tt.seq, tt.pattern))
		})
	}
}

func TestFindNonCharacterElements(t *testing.T) {
	matches, err := FindAll([]int{4, 8, 5, 6, 4, 8}, []int{4, 8})
	require.NoError(t, err)
	assert.Equal(t, []Match{{Start: 0, End: 1}, {Start: 4, End: 5}}, matches)

	words, err := FindAll(
		[]string{"the", "next", "two", "weeks", "or", "the", "next", "day"},
		[]string{"the", "next"})
	require.NoError(t, err)
	assert.Equal(t, []Match{{Start: 0, End: 1}, {Start: 5, End: 6}}, words)
}

func TestFindEmptyPattern(t *testing.T) {
	_, err := Find([]byte("abc"), nil)
	assert.ErrorIs(t, err, ErrEmptyPattern)

	_, err = FindAll([]byte("abc"), []byte{})
	assert.ErrorIs(t, err, ErrEmptyPattern)
}

func TestFindAbandonEarly(t *testing.T) {
	matches, err := Find([]byte("aaaaaaaa"), []byte("aa"))
	require.NoError(t, err)
	var first *Match
	for m := range matches {
		first = &m
		break
	}
	require.NotNil(t, first)
	assert.Equal(t, Match{Start: 0, End: 1}, *first)
}

// naiveFind is the quadratic reference implementation the KMP scan is checked
// against.
func naiveFind(seq, pattern []byte) []Match {
	var out []Match
	for i := 0; i+len(pattern) <= len(seq); i++ {
		matched := true
		for j := range pattern {
			if seq[i+j] != pattern[j] {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, Match{Start: i, End: i + len(pattern) - 1})
		}
	}
	return out
}

func TestFindMatchesNaiveReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("ab c")
	for range 500 {
		seq := make([]byte, rng.Intn(40))
		for i := range seq {
			seq[i] = alphabet[rng.Intn(len(alphabet))]
		}
		pattern := make([]byte, 1+rng.Intn(5))
		for i := range pattern {
			pattern[i] = alphabet[rng.Intn(len(alphabet))]
		}
		got, err := FindAll(seq, pattern)
		require.NoError(t, err)
		assert.Equal(t, naiveFind(seq, pattern), got,
			"seq=%q pattern=%q", seq, pattern)
	}
}
