package main

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gonlp/go-tempann/pipeline"
	"github.com/gonlp/go-tempann/writers"
)

var encodeFormat string

var encodeCmd = &cobra.Command{
	Use:   "encode <corpus-dir>",
	Short: "Encode gold span annotations into a training matrix",
	Long: `Encode parses every TimeML file in the corpus directory, converts the
gold TIMEX3/EVENT/SIGNAL spans into per-token sequence labels under the
configured alphabet, attaches the gazetteer feature, and writes the token
attribute matrix into the artifact store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		alpha, err := cfg.alphabet()
		if err != nil {
			return err
		}
		matcher, err := cfg.matcher()
		if err != nil {
			return err
		}

		docs, res, err := cfg.batch().EncodeCorpus(args[0], alpha)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			pipeline.AttachGazetteerFeature(doc, matcher, writers.GazetteerAttribute)
		}

		store, err := pipeline.NewStore(cfg.Store)
		if err != nil {
			return err
		}
		switch encodeFormat {
		case "parquet":
			var buf bytes.Buffer
			if err := writers.WriteParquetMatrix(&buf, docs); err != nil {
				return err
			}
			if err := store.Save("matrix-"+res.RunID+".parquet", buf.Bytes()); err != nil {
				return err
			}
		default:
			w := writers.AttributeMatrixWriter{IncludeHeader: false}
			var sb strings.Builder
			for _, doc := range docs {
				out, err := w.Write(doc)
				if err != nil {
					return err
				}
				sb.WriteString(out)
				sb.WriteString("\n")
			}
			if err := store.Save("matrix-"+res.RunID+".tsv", []byte(sb.String())); err != nil {
				return err
			}
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	encodeCmd.Flags().StringVar(&encodeFormat, "format", "tsv", "matrix format: tsv or parquet")
}
