// Package writers renders annotated documents into output formats: TimeML
// markup for evaluation, and tabular (TSV or Parquet) attribute matrices for
// sequence-classifier training.
package writers

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gonlp/go-tempann/document"
	"github.com/gonlp/go-tempann/render"
)

// Writer returns a string representation of one annotated document.
type Writer interface {
	Write(doc *document.Document) (string, error)
}

// TimeMLWriter emits a TempEval-3 TimeML document: XML prologue, DOCID, DCT,
// TITLE, and the document text with the predicted spans rendered inline. It
// uses the index-stable overwrite renderer, so span order never matters.
type TimeMLWriter struct{}

// Compile time assert that TimeMLWriter implements Writer.
var _ Writer = TimeMLWriter{}

// Write renders doc. The predicted labels are taken from each token's
// PredictedLabel field; the output text is re-parseable by the TempEval-3
// reader.
func (TimeMLWriter) Write(doc *document.Document) (string, error) {
	tokens := doc.Tokens()
	predicted := make([]string, len(tokens))
	for i, tok := range tokens {
		predicted[i] = tok.PredictedLabel
	}
	spans, err := render.Decode(doc.Text, doc.TextOffset, tokens, predicted)
	if err != nil {
		return "", errors.Wrapf(err, "writers: decoding labels of %q", doc.Name)
	}

	buf := render.NewBuffer(doc.Text)
	if err := render.RenderOverwrite(buf, spans, doc.TextOffset, TimeMLTags); err != nil {
		return "", errors.Wrapf(err, "writers: rendering %q", doc.Name)
	}

	var out strings.Builder
	out.WriteString("<?xml version=\"1.0\" ?>\n")
	out.WriteString(`<TimeML xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:noNamespaceSchemaLocation="http://timeml.org/timeMLdocs/TimeML_1.2.1.xsd">` + "\n\n")
	fmt.Fprintf(&out, "<DOCID>%s</DOCID>\n\n", doc.DocID)
	fmt.Fprintf(&out, `<DCT><TIMEX3 tid="t0" type="DATE" value="%s" temporalFunction="false" functionInDocument="CREATION_TIME">%s</TIMEX3></DCT>`+"\n\n",
		doc.DCT, doc.DCTText)
	fmt.Fprintf(&out, "<TITLE>%s</TITLE>\n\n", doc.Title)
	fmt.Fprintf(&out, "<TEXT>%s</TEXT>\n\n", buf.String())
	out.WriteString("</TimeML>\n")
	return out.String(), nil
}

// TimeMLTags is the render.TagFormatter for TimeML output. EVENT spans get
// an eid, TIMEX3 spans a tid, both from the span's per-tag sequence number.
// Type, class and value attributes are left for a downstream normaliser.
func TimeMLTags(s render.Span) (string, string) {
	closing := "</" + s.Tag + ">"
	switch s.Tag {
	case "EVENT":
		return fmt.Sprintf(`<EVENT class="" eid="e%d">`, s.ID), closing
	case "TIMEX3":
		return fmt.Sprintf(`<TIMEX3 tid="t%d" type="" value="">`, s.ID), closing
	default:
		return "<" + s.Tag + ">", closing
	}
}
