package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencapitol/gavel/internal/corpus"
	"github.com/opencapitol/gavel/internal/store"
)

var (
	corpusOutDir string
	corpusName   string
	minTokenLen  int
	minDocLen    int
	minDictCount int
)

// corpusCmd represents the corpus command
var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Assemble the parsed statements into a topic-modeling corpus",
	Long: `Corpus reads every parsed hearing from the database and builds the
dataset files: a flat corpus CSV, a metadata index CSV with one line
per document, an LDA-C bag-of-words file with its vocabulary, and a
word dictionary.

Documents are lowercased, punctuation-stripped, stopword-filtered, and
dropped entirely when too short.

Example:
  gavel corpus --out-dir ./dataset
  gavel corpus --min-doc-length 10 --name financial`,
	RunE: runCorpus,
}

func init() {
	rootCmd.AddCommand(corpusCmd)

	corpusCmd.Flags().StringVar(&corpusOutDir, "out-dir", "", "output directory (default: config corpus.output_dir)")
	corpusCmd.Flags().StringVar(&corpusName, "name", "", "corpus base name (default: config corpus.name)")
	corpusCmd.Flags().IntVar(&minTokenLen, "min-token-length", 0, "drop tokens at or below this length")
	corpusCmd.Flags().IntVar(&minDocLen, "min-doc-length", 0, "drop documents with at or below this many tokens")
	corpusCmd.Flags().IntVar(&minDictCount, "min-dict-count", 0, "drop words in fewer than this many documents")
}

func runCorpus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if corpusOutDir != "" {
		cfg.Corpus.OutputDir = corpusOutDir
	}
	if corpusName != "" {
		cfg.Corpus.Name = corpusName
	}
	if minTokenLen > 0 {
		cfg.Corpus.MinTokenLength = minTokenLen
	}
	if minDocLen > 0 {
		cfg.Corpus.MinDocLength = minDocLen
	}
	if minDictCount > 0 {
		cfg.Corpus.MinDictCount = minDictCount
	}

	log, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st, err := store.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	hearings, err := st.Parsed(context.Background())
	if err != nil {
		return err
	}
	if len(hearings) == 0 {
		fmt.Fprintln(os.Stderr, "No parsed hearings found, so no processing will be done.")
		return nil
	}

	assembler := corpus.NewAssembler(corpus.Options{
		MinTokenLength: cfg.Corpus.MinTokenLength,
		MinDocLength:   cfg.Corpus.MinDocLength,
		MinDictCount:   cfg.Corpus.MinDictCount,
	})

	ds, err := assembler.Build(hearings, nil, nil)
	if err != nil {
		return err
	}

	writer := corpus.NewWriter(cfg.Corpus.OutputDir, cfg.Corpus.Name)
	if err := writer.Write(ds); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote corpus: %d documents, %d dictionary words (%s)\n",
		len(ds.Documents), ds.Dict.Len(), cfg.Corpus.OutputDir)

	return nil
}
