// Package labels converts gold span annotations into per-token sequence
// classification labels.
//
// Labels follow the IOBEW convention: "O" for tokens outside every span, and
// "<symbol>-<tag>" otherwise, where the symbol is one of B (begin), I
// (inside), E (end) or W (whole) and the tag is the span's tag name, e.g.
// "B-TIMEX3". Which symbols are usable is restricted by an Alphabet; a
// symbol outside the declared alphabet collapses to I, never to O.
package labels

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/gonlp/go-tempann/document"
)

// Label symbols.
const (
	Outside = 'O'
	Begin   = 'B'
	Inside  = 'I'
	End     = 'E'
	Whole   = 'W'
)

// OutsideLabel is the full label of a token outside every span. It carries no
// tag suffix.
const OutsideLabel = "O"

// Alphabet is the set of usable non-O label symbols. O is always implicitly
// a member.
type Alphabet struct {
	symbols map[byte]bool
}

// NewAlphabet builds an Alphabet from a symbol string such as "IO" or "BIO".
// Only B, I, E, W and O are accepted; O is allowed in the string but is
// always a member regardless.
func NewAlphabet(symbols string) (Alphabet, error) {
	a := Alphabet{symbols: make(map[byte]bool)}
	for i := 0; i < len(symbols); i++ {
		switch symbols[i] {
		case Begin, Inside, End, Whole:
			a.symbols[symbols[i]] = true
		case Outside:
			// Implicit member.
		default:
			return Alphabet{}, errors.Errorf("labels: symbol %q not one of BIEWO", symbols[i])
		}
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on an invalid symbol string.
// Intended for package-level defaults and tests.
func MustAlphabet(symbols string) Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Contains reports whether the symbol is usable under this alphabet. O is
// always usable.
func (a Alphabet) Contains(symbol byte) bool {
	return symbol == Outside || a.symbols[symbol]
}

// String returns the declared symbols in the fixed BIEW order, followed by O.
func (a Alphabet) String() string {
	var sb strings.Builder
	for _, s := range []byte{Begin, Inside, End, Whole} {
		if a.symbols[s] {
			sb.WriteByte(s)
		}
	}
	sb.WriteByte(Outside)
	return sb.String()
}

// encodeRule relates one token range to one annotation range. Rules are
// checked in order per annotation and the first hit wins; matchless
// annotations are skipped.
type encodeRule struct {
	symbol byte
	match  func(tokStart, tokEnd, annStart, annEnd int) bool
}

var encodeRules = []encodeRule{
	{Whole, func(ts, te, as, ae int) bool { return as == ts && ae == te }},
	{End, func(ts, te, as, ae int) bool { return ae == te }},
	{Begin, func(ts, te, as, ae int) bool { return as == ts }},
	{Inside, func(ts, te, as, ae int) bool { return as < ts && ae > te }},
}

// Encode assigns the sequence label for one token against the document's
// gold annotations, which must be supplied in a fixed, reproducible order
// (document order of the source markup). The first annotation that relates
// to the token decides both symbol and tag: its symbol is the
// highest-priority matching rule (W > E > B > I) whose symbol the alphabet
// declares, degrading to I when every matching rule's symbol is undeclared.
// A token an exact span covers is therefore W under {B,I,E,W} but B under
// {B,I,O}. If no annotation relates to the token at all, the label is "O" —
// an O result is never replaced by I.
func Encode(token document.Token, annotations []document.Annotation, alpha Alphabet) string {
	for _, ann := range annotations {
		matched := false
		for _, r := range encodeRules {
			if !r.match(token.Start, token.End, ann.Start, ann.End) {
				continue
			}
			matched = true
			if alpha.Contains(r.symbol) {
				return string(r.symbol) + "-" + ann.Tag
			}
		}
		if matched {
			// Related, but only through symbols outside the alphabet.
			return string(Inside) + "-" + ann.Tag
		}
	}
	return OutsideLabel
}

// Split separates a non-O label into its symbol and tag parts. For "O" (or
// anything without a "-" separator) it returns the whole label as symbol and
// an empty tag.
func Split(label string) (symbol, tag string) {
	if sym, rest, ok := strings.Cut(label, "-"); ok {
		return sym, rest
	}
	return label, ""
}
