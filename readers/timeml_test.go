package readers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonlp/go-tempann/document"
)

const sampleTML = `<?xml version="1.0" ?>
<TimeML xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:noNamespaceSchemaLocation="http://timeml.org/timeMLdocs/TimeML_1.2.1.xsd">
<DOCID>wsj_0001</DOCID>
<DCT><TIMEX3 tid="t0" type="DATE" value="1989-11-02" temporalFunction="false" functionInDocument="CREATION_TIME">1989-11-02</TIMEX3></DCT>
<TITLE>Example</TITLE>
<TEXT>He <EVENT class="OCCURRENCE" eid="e1">left</EVENT> on <TIMEX3 tid="t1" type="DATE" value="XXXX-WXX-1">Monday</TIMEX3></TEXT>
</TimeML>
`

func TestParseContent(t *testing.T) {
	r := NewTempEval3Reader()
	doc, err := r.ParseContent([]byte(sampleTML), "wsj_0001")
	require.NoError(t, err)

	assert.Equal(t, "wsj_0001", doc.DocID)
	assert.Equal(t, "Example", doc.Title)
	assert.Equal(t, "1989-11-02", doc.DCT)
	assert.Equal(t, "1989-11-02", doc.DCTText)
	assert.Equal(t, "He left on Monday", doc.Text)
	assert.Equal(t, 0, doc.TextOffset)

	require.Len(t, doc.GoldAnnotations, 2)
	event := doc.GoldAnnotations[0]
	assert.Equal(t, "EVENT", event.Tag)
	assert.Equal(t, "left", doc.Text[event.Start:event.End])
	assert.Equal(t, map[string]string{"class": "OCCURRENCE", "eid": "e1"}, event.Attributes)

	timex := doc.GoldAnnotations[1]
	assert.Equal(t, "TIMEX3", timex.Tag)
	assert.Equal(t, "Monday", doc.Text[timex.Start:timex.End])

	require.Len(t, doc.Sentences, 1)
	tokens := doc.Tokens()
	require.Len(t, tokens, 4)
	assert.Equal(t, "left", tokens[1].WordForm)
	assert.Equal(t, 3, tokens[1].Start)
	assert.Equal(t, 7, tokens[1].End)
}

func TestParseContentLeadingWhitespace(t *testing.T) {
	tml := `<TimeML><DOCID>d1</DOCID><TEXT>
  He <EVENT eid="e1">left</EVENT>.</TEXT></TimeML>`
	doc, err := NewTempEval3Reader().ParseContent([]byte(tml), "d1")
	require.NoError(t, err)

	// Three leading whitespace bytes stripped by the upstream parser.
	assert.Equal(t, 3, doc.TextOffset)
	require.Len(t, doc.GoldAnnotations, 1)
	ann := doc.GoldAnnotations[0]
	// Annotation offsets are relative to the stripped text; adding the
	// correction back lands on the raw text.
	assert.Equal(t, "left", doc.Text[ann.Start+doc.TextOffset:ann.End+doc.TextOffset])

	// Token offsets live in the same corrected space.
	tokens := doc.Tokens()
	require.NotEmpty(t, tokens)
	assert.Equal(t, "He", tokens[0].WordForm)
	assert.Equal(t, 0, tokens[0].Start)
}

func TestParseContentMalformedXML(t *testing.T) {
	_, err := NewTempEval3Reader().ParseContent([]byte("<TimeML><TEXT>oops"), "bad")
	assert.Error(t, err)
}

func TestParseContentEmptyAnnotationRejected(t *testing.T) {
	tml := `<TimeML><TEXT>a <EVENT eid="e1"></EVENT>b</TEXT></TimeML>`
	_, err := NewTempEval3Reader().ParseContent([]byte(tml), "empty")
	assert.ErrorIs(t, err, document.ErrInvalidDocument)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wsj_0001.tml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTML), 0o644))

	doc, err := NewTempEval3Reader().Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "wsj_0001", doc.Name)
	assert.Equal(t, path, doc.Path)
}
