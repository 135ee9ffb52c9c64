package pipeline

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gonlp/go-tempann/document"
	"github.com/gonlp/go-tempann/labels"
	"github.com/gonlp/go-tempann/readers"
	"github.com/gonlp/go-tempann/writers"
)

// Batch processes every corpus file in a folder with one reader/writer pair.
// A malformed document is skipped and logged, never aborting the rest of the
// batch; documents are otherwise independent of each other.
type Batch struct {
	Reader  readers.Reader
	Writer  writers.Writer
	Labeler Labeler
}

// Result summarises one batch run.
type Result struct {
	// RunID identifies the run in logs and artifact names.
	RunID     string
	Processed []string
	Skipped   []string
}

// Annotate labels every document in inDir and writes the rendered output to
// outDir under the input file's base name.
func (b Batch) Annotate(inDir, outDir string) (*Result, error) {
	paths, err := b.inputs(inDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "pipeline: creating output dir %q", outDir)
	}

	res := &Result{RunID: uuid.NewString()}
	klog.Infof("Run %s: annotating %d documents from %s", res.RunID, len(paths), inDir)
	for i, path := range paths {
		base := filepath.Base(path)
		doc, err := b.Reader.Parse(path)
		if err != nil {
			klog.Errorf("[%d/%d] Document %s skipped: %v", i+1, len(paths), base, err)
			res.Skipped = append(res.Skipped, path)
			continue
		}
		if _, err := Annotate(doc, b.Labeler); err != nil {
			klog.Errorf("[%d/%d] Document %s skipped: %v", i+1, len(paths), base, err)
			res.Skipped = append(res.Skipped, path)
			continue
		}
		out, err := b.Writer.Write(doc)
		if err != nil {
			klog.Errorf("[%d/%d] Document %s skipped: %v", i+1, len(paths), base, err)
			res.Skipped = append(res.Skipped, path)
			continue
		}
		target := filepath.Join(outDir, base)
		if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
			return nil, errors.Wrapf(err, "pipeline: writing %q", target)
		}
		klog.V(1).Infof("[%d/%d] Document %s annotated.", i+1, len(paths), base)
		res.Processed = append(res.Processed, target)
	}
	return res, nil
}

// EncodeCorpus parses every document in inDir and encodes its gold
// annotations into token CLASS attributes, returning the documents that
// parsed cleanly. Used to build training matrices.
func (b Batch) EncodeCorpus(inDir string, alpha labels.Alphabet) ([]*document.Document, *Result, error) {
	paths, err := b.inputs(inDir)
	if err != nil {
		return nil, nil, err
	}
	res := &Result{RunID: uuid.NewString()}
	klog.Infof("Run %s: encoding %d documents from %s", res.RunID, len(paths), inDir)
	var docs []*document.Document
	for i, path := range paths {
		base := filepath.Base(path)
		doc, err := b.Reader.Parse(path)
		if err == nil {
			err = EncodeGold(doc, alpha)
		}
		if err != nil {
			klog.Errorf("[%d/%d] Document %s skipped: %v", i+1, len(paths), base, err)
			res.Skipped = append(res.Skipped, path)
			continue
		}
		docs = append(docs, doc)
		res.Processed = append(res.Processed, path)
	}
	return docs, res, nil
}

func (b Batch) inputs(dir string) ([]string, error) {
	pattern := filepath.Join(dir, b.Reader.Glob())
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline: bad glob %q", pattern)
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("pipeline: no input files match %q", pattern)
	}
	return paths, nil
}
