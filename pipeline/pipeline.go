// Package pipeline wires the codec together for whole documents: encoding
// gold annotations into per-token training labels, attaching gazetteer
// features, and decoding classifier predictions back into rendered spans.
// The statistical classifier itself stays behind the Labeler interface.
package pipeline

import (
	"github.com/pkg/errors"

	"github.com/gonlp/go-tempann/document"
	"github.com/gonlp/go-tempann/gazetteer"
	"github.com/gonlp/go-tempann/labels"
	"github.com/gonlp/go-tempann/render"
)

// Labeler assigns one predicted label per token of a sentence, either "O" or
// "<symbol>-<tag>". Implemented by the external sequence classifier.
type Labeler interface {
	Label(tokens []document.Token) ([]string, error)
}

// EncodeGold stores the gold sequence label of every token under its CLASS
// attribute, using the document's gold annotations in their source order.
// The document is validated first; a malformed document fails without
// touching any token.
func EncodeGold(doc *document.Document, alpha labels.Alphabet) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	for si := range doc.Sentences {
		tokens := doc.Sentences[si].Tokens
		for ti := range tokens {
			if tokens[ti].Attributes == nil {
				tokens[ti].Attributes = make(map[string]string)
			}
			tokens[ti].Attributes[document.ClassAttribute] =
				labels.Encode(tokens[ti], doc.GoldAnnotations, alpha)
		}
	}
	return nil
}

// GoldLabels returns the CLASS attribute of every token, flattened across
// sentences, in document order.
func GoldLabels(doc *document.Document) []string {
	var out []string
	for _, s := range doc.Sentences {
		for _, tok := range s.Tokens {
			out = append(out, tok.Attributes[document.ClassAttribute])
		}
	}
	return out
}

// AttachGazetteerFeature stores the gazetteer mask value of every token
// under its GAZETTEER attribute, one sentence at a time.
func AttachGazetteerFeature(doc *document.Document, matcher *gazetteer.Matcher, key string) {
	for si := range doc.Sentences {
		tokens := doc.Sentences[si].Tokens
		forms := make([]string, len(tokens))
		for i, tok := range tokens {
			forms[i] = tok.WordForm
		}
		mask := matcher.Mask(forms)
		for i := range tokens {
			if tokens[i].Attributes == nil {
				tokens[i].Attributes = make(map[string]string)
			}
			tokens[i].Attributes[key] = mask[i]
		}
	}
}

// Annotate runs the labeler over every sentence, records the predictions on
// the tokens, and decodes the full label stream into spans. Spans may merge
// across sentence boundaries when the predicted tag continues.
func Annotate(doc *document.Document, labeler Labeler) ([]render.Span, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	for si := range doc.Sentences {
		tokens := doc.Sentences[si].Tokens
		predicted, err := labeler.Label(tokens)
		if err != nil {
			return nil, errors.Wrapf(err, "pipeline: labeling sentence %d of %q", si, doc.Name)
		}
		if len(predicted) != len(tokens) {
			return nil, errors.Errorf("pipeline: labeler returned %d labels for %d tokens in %q",
				len(predicted), len(tokens), doc.Name)
		}
		for ti := range tokens {
			tokens[ti].PredictedLabel = predicted[ti]
		}
	}
	tokens := doc.Tokens()
	predicted := make([]string, len(tokens))
	for i, tok := range tokens {
		predicted[i] = tok.PredictedLabel
	}
	return render.Decode(doc.Text, doc.TextOffset, tokens, predicted)
}

// GazetteerLabeler is a rule baseline: tokens covered by the gazetteer are
// labeled "I-<Tag>", everything else "O". Useful for smoke-testing the
// decode path and as a fallback when no trained model is available.
type GazetteerLabeler struct {
	Matcher *gazetteer.Matcher
	Tag     string
}

// Compile time assert that GazetteerLabeler implements Labeler.
var _ Labeler = GazetteerLabeler{}

// Label implements Labeler.
func (g GazetteerLabeler) Label(tokens []document.Token) ([]string, error) {
	forms := make([]string, len(tokens))
	for i, tok := range tokens {
		forms[i] = tok.WordForm
	}
	mask := g.Matcher.Mask(forms)
	out := make([]string, len(tokens))
	for i, v := range mask {
		if v == gazetteer.Inside {
			out[i] = string(labels.Inside) + "-" + g.Tag
		} else {
			out[i] = labels.OutsideLabel
		}
	}
	return out, nil
}
