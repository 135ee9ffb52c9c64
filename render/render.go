package render

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// ErrOverlap is returned by RenderOverwrite when two spans share characters.
// The decoder never produces overlapping spans, so hitting this means the
// span list came from somewhere else and would corrupt the buffer.
var ErrOverlap = errors.New("render: overlapping spans")

// TagFormatter produces the opening and closing markup strings for one span.
type TagFormatter func(Span) (open, close string)

// PlainTags is the default TagFormatter: "<TAG>" and "</TAG>" with no
// attributes.
func PlainTags(s Span) (string, string) {
	return fmt.Sprintf("<%s>", s.Tag), fmt.Sprintf("</%s>", s.Tag)
}

// RenderOverwrite writes the spans into buf by replacing the segment at each
// span's first character with the full open+text+close markup and blanking
// the remaining covered segments. Every write targets a fixed original-byte
// index, so span order does not matter and no offset bookkeeping is needed.
// offset shifts span coordinates into buffer space (the upstream left-strip
// correction).
//
// Spans must be non-overlapping; overlap fails with ErrOverlap before any
// segment is touched.
func RenderOverwrite(buf *Buffer, spans []Span, offset int, format TagFormatter) error {
	if format == nil {
		format = PlainTags
	}
	if err := checkDisjoint(spans); err != nil {
		return err
	}
	for _, sp := range spans {
		start, end := sp.Start+offset, sp.End+offset
		if start < 0 || end > buf.Len() || end <= start {
			return errors.Errorf("render: span %s%d [%d, %d) outside buffer of %d segments",
				sp.Tag, sp.ID, start, end, buf.Len())
		}
		open, closing := format(sp)
		if err := buf.Overwrite(start, open+sp.Text+closing); err != nil {
			return err
		}
		for i := start + 1; i < end; i++ {
			if err := buf.Overwrite(i, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderInsert is the legacy insertion renderer, kept only for bit-for-bit
// parity with output produced by the cumulative-offset scheme. It inserts an
// opening segment at each span's start and a closing segment after its last
// character, then advances a running drift by exactly 2 slots per span: the
// buffer indexes segments, not bytes, so each insertion shifts later indices
// by one slot regardless of the inserted text's length.
//
// Spans must arrive in strictly ascending start order and non-overlapping;
// any other input is rejected. Nested or zero-width spans are unsupported.
// Prefer RenderOverwrite.
func RenderInsert(buf *Buffer, spans []Span, offset int, format TagFormatter) error {
	if format == nil {
		format = PlainTags
	}
	drift := 0
	prevEnd := -1
	for _, sp := range spans {
		if sp.End <= sp.Start {
			return errors.Errorf("render: span %s%d has empty range [%d, %d)", sp.Tag, sp.ID, sp.Start, sp.End)
		}
		if sp.Start < prevEnd {
			return errors.WithStack(ErrOverlap)
		}
		prevEnd = sp.End
		open, closing := format(sp)
		if err := buf.Insert(sp.Start+offset+drift, open); err != nil {
			return err
		}
		if err := buf.Insert(sp.End+offset+drift+1, closing); err != nil {
			return err
		}
		drift += 2
	}
	return nil
}

// checkDisjoint rejects span lists with overlapping character ranges. The
// input order is irrelevant.
func checkDisjoint(spans []Span) error {
	if len(spans) < 2 {
		return nil
	}
	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start < sorted[i-1].End {
			return errors.Wrapf(ErrOverlap, "%s%d [%d, %d) and %s%d [%d, %d)",
				sorted[i-1].Tag, sorted[i-1].ID, sorted[i-1].Start, sorted[i-1].End,
				sorted[i].Tag, sorted[i].ID, sorted[i].Start, sorted[i].End)
		}
	}
	return nil
}
