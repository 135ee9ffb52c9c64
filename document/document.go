// Package document defines the data model shared by the annotation codec,
// the corpus readers and the output writers.
//
// A Document bundles the raw text of one input file together with the token
// layer produced by an external linguistic parser and the stand-off span
// annotations extracted from the source markup. All offsets are byte offsets
// into the text the tokens were computed over, so text[Start:End] slices out
// the covered characters directly.
package document

import (
	"github.com/pkg/errors"
)

// ErrInvalidDocument is the class of malformed-document errors: token list
// not ordered by offset, or an annotation with End <= Start. Failures are
// local to the one document being processed.
var ErrInvalidDocument = errors.New("document: invalid document")

// Token is one token emitted by the external parser: a [Start, End) byte
// range into the document text plus the linguistic attributes the parser
// computed for it. The codec never interprets the linguistic attributes.
type Token struct {
	WordForm       string
	Lemma          string
	PartOfSpeech   string
	NamedEntityTag string

	// Start and End are byte offsets, End exclusive.
	Start int
	End   int

	// PredictedLabel is filled at inference time by the external
	// classifier, either "O" or "<symbol>-<tag>".
	PredictedLabel string

	// Attributes holds per-token feature values keyed by feature name,
	// including the gold class label under the CLASS key during training.
	Attributes map[string]string
}

// ClassAttribute is the Attributes key under which the gold sequence label is
// stored during training.
const ClassAttribute = "CLASS"

// Annotation is one stand-off span annotation: a tag name (e.g. "TIMEX3" or
// "EVENT"), its source attributes, and a [Start, End) byte range into the
// same text the tokens are offset into.
type Annotation struct {
	Tag        string
	Attributes map[string]string
	Start      int
	End        int
}

// Sentence is one parser sentence with its tokens in document order.
// ParseTree and Dependencies hold the parser's syntactic output verbatim when
// available; the codec carries them through without interpreting them.
type Sentence struct {
	Text         string
	Tokens       []Token
	ParseTree    string
	Dependencies string
}

// Document is the root of one parsed input document.
type Document struct {
	Name  string
	Path  string
	DocID string
	Title string

	// DCT is the document creation time value, DCTText its verbatim
	// source text.
	DCT     string
	DCTText string

	// Text is the raw document text. TextOffset is the number of leading
	// characters the upstream parser stripped before tokenizing, so a
	// token offset maps to Text at offset+TextOffset.
	Text       string
	TextOffset int

	Sentences []Sentence

	// GoldAnnotations is ordered as in the source markup. The encoder's
	// tie-break rule depends on this ordering being reproducible.
	GoldAnnotations []Annotation
}

// Tokens returns every token of the document in order, flattened across
// sentences.
func (d *Document) Tokens() []Token {
	var out []Token
	for _, s := range d.Sentences {
		out = append(out, s.Tokens...)
	}
	return out
}

// Validate checks the offset invariants: tokens ordered and non-overlapping,
// each token and annotation with End > Start. It returns an error wrapping
// ErrInvalidDocument on the first violation.
func (d *Document) Validate() error {
	prevEnd := -1
	for si, s := range d.Sentences {
		for ti, tok := range s.Tokens {
			if tok.End <= tok.Start {
				return errors.Wrapf(ErrInvalidDocument,
					"token %d of sentence %d has range [%d, %d)", ti, si, tok.Start, tok.End)
			}
			if tok.Start < prevEnd {
				return errors.Wrapf(ErrInvalidDocument,
					"token %d of sentence %d starts at %d before previous token end %d",
					ti, si, tok.Start, prevEnd)
			}
			prevEnd = tok.End
		}
	}
	for i, ann := range d.GoldAnnotations {
		if ann.End <= ann.Start {
			return errors.Wrapf(ErrInvalidDocument,
				"annotation %d (%s) has range [%d, %d)", i, ann.Tag, ann.Start, ann.End)
		}
	}
	return nil
}
