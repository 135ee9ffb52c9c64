package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gonlp/go-tempann/gazetteer"
	"github.com/gonlp/go-tempann/labels"
	"github.com/gonlp/go-tempann/pipeline"
	"github.com/gonlp/go-tempann/readers"
)

var (
	configPath string

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

var rootCmd = &cobra.Command{
	Use:           "tempann",
	Short:         "Temporal/event span annotation for TimeML corpora",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML run configuration file")
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(annotateCmd)
}

// Config is the YAML run configuration.
type Config struct {
	// Alphabet declares the usable label symbols, e.g. "BIO" or "IO".
	Alphabet string `yaml:"alphabet"`
	// Gazetteers lists phrase-list files used for the lexical feature
	// and the baseline labeler.
	Gazetteers []string `yaml:"gazetteers"`
	// CaseSensitive controls gazetteer matching.
	CaseSensitive bool `yaml:"case_sensitive"`
	// Store is the artifact directory for encoded matrices.
	Store string `yaml:"store"`
}

func loadConfig() (*Config, error) {
	cfg := &Config{Alphabet: "IO", Store: "artifacts"}
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %q", configPath)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %q", configPath)
	}
	return cfg, nil
}

func (c *Config) alphabet() (labels.Alphabet, error) {
	return labels.NewAlphabet(c.Alphabet)
}

func (c *Config) matcher() (*gazetteer.Matcher, error) {
	var entries []gazetteer.Entry
	for _, path := range c.Gazetteers {
		loaded, err := gazetteer.Load(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	return gazetteer.NewMatcher(entries, c.CaseSensitive), nil
}

func (c *Config) batch() pipeline.Batch {
	return pipeline.Batch{Reader: readers.NewTempEval3Reader()}
}

func printResult(cmd *cobra.Command, res *pipeline.Result) {
	cmd.Println(headerStyle.Render("Run " + res.RunID))
	cmd.Println(okStyle.Render("  processed:"), len(res.Processed))
	if len(res.Skipped) > 0 {
		cmd.Println(skippedStyle.Render("  skipped:  "), len(res.Skipped))
		for _, path := range res.Skipped {
			cmd.Println("    -", path)
		}
	}
}
