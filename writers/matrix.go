package writers

import (
	"io"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"

	"github.com/gonlp/go-tempann/document"
)

// AttributeMatrixWriter writes the token attribute matrix consumed by
// sequence-labeling toolkits: one row per token with the attribute values in
// sorted key order plus the label as the last column, sentences separated by
// a blank line.
type AttributeMatrixWriter struct {
	Separator     string
	IncludeHeader bool
}

// Compile time assert that AttributeMatrixWriter implements Writer.
var _ Writer = AttributeMatrixWriter{}

// Write renders the matrix for one document. The label column holds the gold
// CLASS attribute when present, the predicted label otherwise.
func (w AttributeMatrixWriter) Write(doc *document.Document) (string, error) {
	sep := w.Separator
	if sep == "" {
		sep = "\t"
	}
	var rows []string
	if w.IncludeHeader {
		if keys := headerKeys(doc); keys != nil {
			rows = append(rows, strings.Join(keys, sep))
		}
	}
	for _, sentence := range doc.Sentences {
		for _, tok := range sentence.Tokens {
			keys := make([]string, 0, len(tok.Attributes))
			for k := range tok.Attributes {
				if k != document.ClassAttribute {
					keys = append(keys, k)
				}
			}
			sort.Strings(keys)
			row := make([]string, 0, len(keys)+1)
			for _, k := range keys {
				row = append(row, tok.Attributes[k])
			}
			row = append(row, tokenLabel(tok))
			rows = append(rows, strings.Join(row, sep))
		}
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n"), nil
}

func headerKeys(doc *document.Document) []string {
	for _, s := range doc.Sentences {
		for _, tok := range s.Tokens {
			var keys []string
			for k := range tok.Attributes {
				if k != document.ClassAttribute {
					keys = append(keys, k)
				}
			}
			sort.Strings(keys)
			return append(keys, document.ClassAttribute)
		}
	}
	return nil
}

func tokenLabel(tok document.Token) string {
	if label, ok := tok.Attributes[document.ClassAttribute]; ok {
		return label
	}
	return tok.PredictedLabel
}

// MatrixRow is the Parquet schema of one token row.
type MatrixRow struct {
	Doc            string `parquet:"doc"`
	Sentence       int32  `parquet:"sentence"`
	TokenIndex     int32  `parquet:"token"`
	WordForm       string `parquet:"word_form"`
	Lemma          string `parquet:"lemma"`
	PartOfSpeech   string `parquet:"pos"`
	NamedEntityTag string `parquet:"ne"`
	Start          int32  `parquet:"start"`
	End            int32  `parquet:"end"`
	Gazetteer      string `parquet:"gazetteer"`
	Label          string `parquet:"label"`
}

// GazetteerAttribute is the Attributes key holding the gazetteer mask value.
const GazetteerAttribute = "GAZETTEER"

// WriteParquetMatrix writes the token rows of all documents as one Parquet
// file, the columnar form of the attribute matrix for large corpora.
func WriteParquetMatrix(w io.Writer, docs []*document.Document) error {
	pw := parquet.NewGenericWriter[MatrixRow](w)
	for _, doc := range docs {
		var rows []MatrixRow
		for si, sentence := range doc.Sentences {
			for ti, tok := range sentence.Tokens {
				rows = append(rows, MatrixRow{
					Doc:            doc.Name,
					Sentence:       int32(si),
					TokenIndex:     int32(ti),
					WordForm:       tok.WordForm,
					Lemma:          tok.Lemma,
					PartOfSpeech:   tok.PartOfSpeech,
					NamedEntityTag: tok.NamedEntityTag,
					Start:          int32(tok.Start),
					End:            int32(tok.End),
					Gazetteer:      tok.Attributes[GazetteerAttribute],
					Label:          tokenLabel(tok),
				})
			}
		}
		if len(rows) == 0 {
			continue
		}
		if _, err := pw.Write(rows); err != nil {
			return errors.Wrapf(err, "writers: parquet rows of %q", doc.Name)
		}
	}
	if err := pw.Close(); err != nil {
		return errors.Wrap(err, "writers: closing parquet writer")
	}
	return nil
}
