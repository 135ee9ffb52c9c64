package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonlp/go-tempann/document"
)

const sample = "He left on Monday"

func sampleTokens() []document.Token {
	return []document.Token{
		{WordForm: "He", Start: 0, End: 2},
		{WordForm: "left", Start: 3, End: 7},
		{WordForm: "on", Start: 8, End: 10},
		{WordForm: "Monday", Start: 11, End: 17},
	}
}

func TestDecodeSingleSpan(t *testing.T) {
	spans, err := Decode(sample, 0, sampleTokens(), []string{"O", "B-EVENT", "O", "O"})
	require.NoError(t, err)
	assert.Equal(t, []Span{
		{Tag: "EVENT", ID: 1, Start: 3, End: 7, Text: "left"},
	}, spans)
}

func TestDecodeMergeAcrossTokens(t *testing.T) {
	tokens := []document.Token{
		{Start: 0, End: 2}, {Start: 3, End: 7}, {Start: 8, End: 14}, {Start: 15, End: 16},
	}
	text := "ab cdef ghijkl m"
	spans, err := Decode(text, 0, tokens, []string{"O", "B-TIMEX3", "I-TIMEX3", "O"})
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, Span{Tag: "TIMEX3", ID: 1, Start: 3, End: 14, Text: "cdef ghijkl"}, spans[0])
}

func TestDecodeTagChangeClosesSpan(t *testing.T) {
	tokens := sampleTokens()
	spans, err := Decode(sample, 0, tokens, []string{"O", "I-EVENT", "I-TIMEX3", "I-TIMEX3"})
	require.NoError(t, err)
	assert.Equal(t, []Span{
		{Tag: "EVENT", ID: 1, Start: 3, End: 7, Text: "left"},
		{Tag: "TIMEX3", ID: 1, Start: 8, End: 17, Text: "on Monday"},
	}, spans)
}

func TestDecodeSpanEndsOnLastToken(t *testing.T) {
	spans, err := Decode(sample, 0, sampleTokens(), []string{"O", "O", "O", "I-TIMEX3"})
	require.NoError(t, err)
	assert.Equal(t, []Span{
		{Tag: "TIMEX3", ID: 1, Start: 11, End: 17, Text: "Monday"},
	}, spans)
}

func TestDecodePerTagIDs(t *testing.T) {
	tokens := sampleTokens()
	spans, err := Decode(sample, 0, tokens, []string{"I-EVENT", "I-TIMEX3", "I-EVENT", "I-TIMEX3"})
	require.NoError(t, err)
	require.Len(t, spans, 4)
	assert.Equal(t, 1, spans[0].ID)
	assert.Equal(t, 1, spans[1].ID)
	assert.Equal(t, 2, spans[2].ID)
	assert.Equal(t, 2, spans[3].ID)
}

func TestDecodeLengthMismatch(t *testing.T) {
	_, err := Decode(sample, 0, sampleTokens(), []string{"O"})
	assert.Error(t, err)
}

func TestDecodeWithOffset(t *testing.T) {
	// Two leading characters stripped upstream: token offsets lag the raw
	// text by 2.
	raw := "  He left on Monday"
	spans, err := Decode(raw, 2, sampleTokens(), []string{"O", "B-EVENT", "O", "O"})
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, "left", spans[0].Text)
	assert.Equal(t, 3, spans[0].Start)
}

func TestRenderOverwrite(t *testing.T) {
	spans, err := Decode(sample, 0, sampleTokens(), []string{"O", "B-EVENT", "O", "I-TIMEX3"})
	require.NoError(t, err)

	buf := NewBuffer(sample)
	require.NoError(t, RenderOverwrite(buf, spans, 0, nil))
	assert.Equal(t, "He <EVENT>left</EVENT> on <TIMEX3>Monday</TIMEX3>", buf.String())
}

func TestRenderOverwriteOrderIndependent(t *testing.T) {
	spans, err := Decode(sample, 0, sampleTokens(), []string{"O", "B-EVENT", "O", "I-TIMEX3"})
	require.NoError(t, err)
	reversed := []Span{spans[1], spans[0]}

	forward := NewBuffer(sample)
	backward := NewBuffer(sample)
	require.NoError(t, RenderOverwrite(forward, spans, 0, nil))
	require.NoError(t, RenderOverwrite(backward, reversed, 0, nil))
	assert.Equal(t, forward.String(), backward.String())
}

func TestRenderOverwriteIdempotentAcrossCopies(t *testing.T) {
	spans, err := Decode(sample, 0, sampleTokens(), []string{"O", "B-EVENT", "I-EVENT", "O"})
	require.NoError(t, err)

	first := NewBuffer(sample)
	second := NewBuffer(sample)
	require.NoError(t, RenderOverwrite(first, spans, 0, nil))
	require.NoError(t, RenderOverwrite(second, spans, 0, nil))
	assert.Equal(t, first.String(), second.String())
}

func TestRenderOverwriteRejectsOverlap(t *testing.T) {
	buf := NewBuffer(sample)
	overlapping := []Span{
		{Tag: "EVENT", ID: 1, Start: 3, End: 10, Text: "left on"},
		{Tag: "TIMEX3", ID: 1, Start: 8, End: 17, Text: "on Monday"},
	}
	err := RenderOverwrite(buf, overlapping, 0, nil)
	assert.ErrorIs(t, err, ErrOverlap)
	// Failing loudly means the buffer was not touched.
	assert.Equal(t, sample, buf.String())
}

func TestRenderOverwriteWithOffset(t *testing.T) {
	raw := "  He left on Monday"
	spans, err := Decode(raw, 2, sampleTokens(), []string{"O", "B-EVENT", "O", "O"})
	require.NoError(t, err)

	buf := NewBuffer(raw)
	require.NoError(t, RenderOverwrite(buf, spans, 2, nil))
	assert.Equal(t, "  He <EVENT>left</EVENT> on Monday", buf.String())
}

func TestRenderInsertParity(t *testing.T) {
	spans, err := Decode(sample, 0, sampleTokens(), []string{"O", "B-EVENT", "O", "I-TIMEX3"})
	require.NoError(t, err)

	overwrite := NewBuffer(sample)
	insert := NewBuffer(sample)
	require.NoError(t, RenderOverwrite(overwrite, spans, 0, nil))
	require.NoError(t, RenderInsert(insert, spans, 0, nil))
	assert.Equal(t, overwrite.String(), insert.String())
}

func TestRenderInsertRejectsDisorder(t *testing.T) {
	spans := []Span{
		{Tag: "TIMEX3", ID: 1, Start: 11, End: 17, Text: "Monday"},
		{Tag: "EVENT", ID: 1, Start: 3, End: 7, Text: "left"},
	}
	err := RenderInsert(NewBuffer(sample), spans, 0, nil)
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestRenderInsertRejectsZeroWidth(t *testing.T) {
	spans := []Span{{Tag: "EVENT", ID: 1, Start: 3, End: 3}}
	assert.Error(t, RenderInsert(NewBuffer(sample), spans, 0, nil))
}

func TestBufferJoinInvariant(t *testing.T) {
	buf := NewBuffer(sample)
	assert.Equal(t, sample, buf.String())
	assert.Equal(t, len(sample), buf.Len())
}

func TestRoundTripAlignedSpans(t *testing.T) {
	// Encoding gold spans to labels then decoding the labels must
	// reproduce the (tag, start, end) set exactly when token boundaries
	// align with span boundaries. Exercised here with the decoder side of
	// the pair; the full loop lives in the pipeline tests.
	spans, err := Decode(sample, 0, sampleTokens(), []string{"O", "B-EVENT", "B-TIMEX3", "I-TIMEX3"})
	require.NoError(t, err)
	assert.Equal(t, []Span{
		{Tag: "EVENT", ID: 1, Start: 3, End: 7, Text: "left"},
		{Tag: "TIMEX3", ID: 1, Start: 8, End: 17, Text: "on Monday"},
	}, spans)
}
