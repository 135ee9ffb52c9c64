// Package readers parses annotated corpus files into the document data
// model. A reader extracts the raw text, the gold span annotations with
// their character ranges, and the document metadata; the token layer is
// filled by a pluggable sentence splitter standing in for the external
// linguistic parser.
package readers

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/gonlp/go-tempann/document"
	"github.com/gonlp/go-tempann/tokenize"
)

// Reader parses one corpus file into a Document.
type Reader interface {
	Parse(path string) (*document.Document, error)
	// Glob returns the filename pattern of files this reader accepts,
	// e.g. "*.tml".
	Glob() string
}

// SentenceSplitter produces the sentence/token layer for a raw text. offset
// is the number of leading characters stripped upstream; token offsets are
// relative to the stripped text.
type SentenceSplitter func(text string, offset int) []document.Sentence

// TempEval3Reader reads TempEval-3 TimeML files (.tml). It extracts
// DOCID, DCT, TITLE and TEXT, collects gold TIMEX3/EVENT/SIGNAL annotations
// stand-off with byte ranges into the text, and computes the left-strip
// offset correction.
type TempEval3Reader struct {
	tagsToSpot map[string]bool
	split      SentenceSplitter
}

// Compile time assert that TempEval3Reader implements Reader.
var _ Reader = &TempEval3Reader{}

// NewTempEval3Reader returns a reader spotting the TIMEX3, EVENT and SIGNAL
// tags, with the built-in whitespace/punctuation splitter.
func NewTempEval3Reader() *TempEval3Reader {
	return &TempEval3Reader{
		tagsToSpot: map[string]bool{"TIMEX3": true, "EVENT": true, "SIGNAL": true},
		split:      tokenize.Sentences,
	}
}

// WithSplitter replaces the sentence splitter, e.g. with the output adapter
// of a real parser.
func (r *TempEval3Reader) WithSplitter(split SentenceSplitter) *TempEval3Reader {
	r.split = split
	return r
}

// Glob implements Reader.
func (r *TempEval3Reader) Glob() string {
	return "*.tml"
}

// Parse reads and parses the file at path.
func (r *TempEval3Reader) Parse(path string) (*document.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "readers: read %q", path)
	}
	doc, err := r.ParseContent(content, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// ParseContent parses raw TimeML content. name becomes the document name.
func (r *TempEval3Reader) ParseContent(content []byte, name string) (*document.Document, error) {
	doc := &document.Document{Name: name}

	dec := xml.NewDecoder(bytes.NewReader(content))
	var (
		text     strings.Builder
		anns     []document.Annotation
		openAnns []int
		inText   bool
		inDCT    bool
		capture  *string
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "readers: malformed XML in %q", name)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch local := t.Name.Local; {
			case local == "TEXT":
				inText = true
			case inText && r.tagsToSpot[local]:
				attrs := make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					attrs[a.Name.Local] = a.Value
				}
				anns = append(anns, document.Annotation{
					Tag:        local,
					Attributes: attrs,
					Start:      text.Len(),
				})
				openAnns = append(openAnns, len(anns)-1)
			case local == "DOCID":
				capture = &doc.DocID
			case local == "TITLE":
				capture = &doc.Title
			case local == "DCT":
				inDCT = true
			case inDCT && local == "TIMEX3":
				for _, a := range t.Attr {
					if a.Name.Local == "value" {
						doc.DCT = a.Value
					}
				}
				capture = &doc.DCTText
			}
		case xml.EndElement:
			switch local := t.Name.Local; {
			case local == "TEXT":
				inText = false
			case inText && r.tagsToSpot[local]:
				if len(openAnns) == 0 {
					return nil, errors.Wrapf(document.ErrInvalidDocument,
						"unbalanced </%s> in %q", local, name)
				}
				idx := openAnns[len(openAnns)-1]
				openAnns = openAnns[:len(openAnns)-1]
				anns[idx].End = text.Len()
			case local == "DCT":
				inDCT = false
			default:
				capture = nil
			}
		case xml.CharData:
			if inText {
				text.Write(t)
			}
			if capture != nil {
				*capture += string(t)
			}
		}
	}

	raw := text.String()
	// The external parser strips leading whitespace before tokenizing;
	// annotation and token offsets are kept relative to the stripped text
	// and the correction is added back at render time.
	leftChars := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	for i := range anns {
		anns[i].Start -= leftChars
		anns[i].End -= leftChars
	}

	doc.Text = raw
	doc.TextOffset = leftChars
	doc.GoldAnnotations = anns
	doc.DocID = strings.TrimSpace(doc.DocID)
	doc.Title = strings.TrimSpace(doc.Title)
	doc.DCTText = strings.TrimSpace(doc.DCTText)
	if r.split != nil {
		doc.Sentences = r.split(raw, leftChars)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}
