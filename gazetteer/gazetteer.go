// Package gazetteer loads phrase lists and marks which tokens of a sentence
// fall inside a known phrase. The resulting mask is used as a lexical-match
// feature by sequence classifiers.
package gazetteer

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"

	"github.com/gonlp/go-tempann/sequence"
)

// Mask values: a token is either inside some gazetteer match or outside all
// of them.
const (
	Inside  = "I"
	Outside = "O"
)

// Entry is one gazetteer phrase as an ordered list of word forms.
type Entry []string

// Matcher matches a fixed collection of gazetteer entries against token
// word-form sequences. A Matcher is immutable after construction and safe
// for concurrent use.
type Matcher struct {
	entries       []Entry
	caseSensitive bool
}

// NewMatcher builds a Matcher over the given entries. When caseSensitive is
// false, entries and sentences are folded to a canonical case before
// comparison. Empty entries are dropped: they can never match.
func NewMatcher(entries []Entry, caseSensitive bool) *Matcher {
	m := &Matcher{caseSensitive: caseSensitive}
	for _, e := range entries {
		if len(e) == 0 {
			continue
		}
		if !caseSensitive {
			e = foldEntry(e)
		}
		m.entries = append(m.entries, e)
	}
	return m
}

// Mask returns one value per input token: Inside if the token index is
// covered by at least one entry occurrence, Outside otherwise. Coverage from
// different entries is unioned; there is no precedence between entries. An
// empty entry collection yields an all-Outside mask.
func (m *Matcher) Mask(wordForms []string) []string {
	mask := make([]string, len(wordForms))
	for i := range mask {
		mask[i] = Outside
	}
	seq := wordForms
	if !m.caseSensitive {
		seq = foldEntry(wordForms)
	}
	for _, entry := range m.entries {
		matches, err := sequence.FindAll(seq, entry)
		if err != nil {
			// Empty entries are dropped at construction.
			continue
		}
		for _, match := range matches {
			for i := match.Start; i <= match.End; i++ {
				mask[i] = Inside
			}
		}
	}
	return mask
}

func foldEntry(words []string) []string {
	// A cases.Caser is stateful, so each fold gets its own.
	folder := cases.Fold()
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = folder.String(w)
	}
	return out
}

// mmapThreshold is the file size above which Load memory-maps the gazetteer
// file instead of reading it through a buffered scanner.
const mmapThreshold = 1 << 20

// Load reads a gazetteer file: one entry per line, word forms separated by
// whitespace, blank lines and lines starting with '#' ignored. Large files
// are memory-mapped.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "gazetteer: open %q", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "gazetteer: stat %q", path)
	}
	if info.Size() < mmapThreshold {
		return scanEntries(bufio.NewScanner(f))
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "gazetteer: mmap %q", path)
	}
	defer data.Unmap()
	// strings.Fields below copies out of the mapping, so entries stay
	// valid after Unmap.
	return scanEntries(bufio.NewScanner(bytes.NewReader(data)))
}

func scanEntries(sc *bufio.Scanner) ([]Entry, error) {
	var entries []Entry
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, strings.Fields(line))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "gazetteer: scan")
	}
	return entries, nil
}
