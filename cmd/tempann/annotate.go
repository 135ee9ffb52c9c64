package main

import (
	"github.com/spf13/cobra"

	"github.com/gonlp/go-tempann/pipeline"
	"github.com/gonlp/go-tempann/writers"
)

var (
	annotateOut string
	annotateTag string
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <input-dir>",
	Short: "Annotate documents and write TimeML output",
	Long: `Annotate labels every document in the input directory and renders the
predicted spans back into the text as TimeML markup. Without a trained
classifier wired in, the gazetteer baseline labeler is used, tagging
gazetteer phrases with the configured tag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		matcher, err := cfg.matcher()
		if err != nil {
			return err
		}

		batch := cfg.batch()
		batch.Writer = writers.TimeMLWriter{}
		batch.Labeler = pipeline.GazetteerLabeler{Matcher: matcher, Tag: annotateTag}

		res, err := batch.Annotate(args[0], annotateOut)
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func init() {
	annotateCmd.Flags().StringVarP(&annotateOut, "output", "o", "output", "output directory")
	annotateCmd.Flags().StringVar(&annotateTag, "tag", "TIMEX3", "tag used by the baseline labeler")
}
