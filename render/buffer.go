package render

import (
	"strings"

	"github.com/pkg/errors"
)

// Buffer exposes a document text as an ordered sequence of atomic segments,
// one segment per byte initially. Rendering mutates the sequence by
// overwriting segments in place or inserting new multi-byte segments; at
// every point String joins the segments back into either the original text
// or a well-formed annotated variant of it.
type Buffer struct {
	segments []string
}

// NewBuffer wraps text in a fresh Buffer.
func NewBuffer(text string) *Buffer {
	segments := make([]string, len(text))
	for i := range segments {
		segments[i] = text[i : i+1]
	}
	return &Buffer{segments: segments}
}

// Len returns the current number of segments.
func (b *Buffer) Len() int {
	return len(b.segments)
}

// Overwrite replaces the segment at index i with s.
func (b *Buffer) Overwrite(i int, s string) error {
	if i < 0 || i >= len(b.segments) {
		return errors.Errorf("render: overwrite index %d out of range [0, %d)", i, len(b.segments))
	}
	b.segments[i] = s
	return nil
}

// Insert places s as a new segment before index i, shifting every later
// segment one slot right. i == Len() appends.
func (b *Buffer) Insert(i int, s string) error {
	if i < 0 || i > len(b.segments) {
		return errors.Errorf("render: insert index %d out of range [0, %d]", i, len(b.segments))
	}
	b.segments = append(b.segments, "")
	copy(b.segments[i+1:], b.segments[i:])
	b.segments[i] = s
	return nil
}

// String joins all segments in order.
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, s := range b.segments {
		sb.WriteString(s)
	}
	return sb.String()
}
