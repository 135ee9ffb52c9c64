// Package render turns per-token predicted labels back into span annotations
// and writes those spans into the document text as inline markup, without
// disturbing the offsets of the surrounding characters.
package render

import (
	"github.com/pkg/errors"

	"github.com/gonlp/go-tempann/document"
	"github.com/gonlp/go-tempann/labels"
)

// Span is one decoded annotation: a tag name, a per-tag sequence number
// starting at 1, the [Start, End) byte range in token-offset space, and the
// original text covered.
type Span struct {
	Tag   string
	ID    int
	Start int
	End   int
	Text  string
}

// Decode groups contiguous tokens carrying the same predicted tag into
// spans. predicted holds one label per token, either "O" or "<symbol>-<tag>";
// a label with a different tag (or "O") closes the span in progress, and a
// span may legally end on the last token. Span.Text is sliced out of text,
// whose token offsets are shifted by offset (the upstream left-strip
// correction).
//
// By construction the returned spans are non-overlapping and in ascending
// start order, which is exactly what the renderers require.
func Decode(text string, offset int, tokens []document.Token, predicted []string) ([]Span, error) {
	if len(tokens) != len(predicted) {
		return nil, errors.Errorf("render: %d tokens but %d predicted labels", len(tokens), len(predicted))
	}

	var spans []Span
	ids := make(map[string]int)
	open := false
	var cur Span

	flush := func() {
		ids[cur.Tag]++
		cur.ID = ids[cur.Tag]
		cur.Text = text[cur.Start+offset : cur.End+offset]
		spans = append(spans, cur)
		open = false
	}

	for i, tok := range tokens {
		label := predicted[i]
		if label == labels.OutsideLabel {
			if open {
				flush()
			}
			continue
		}
		_, tag := labels.Split(label)
		if open && tag == cur.Tag {
			cur.End = tok.End
			continue
		}
		if open {
			flush()
		}
		cur = Span{Tag: tag, Start: tok.Start, End: tok.End}
		open = true
	}
	if open {
		flush()
	}
	return spans, nil
}
