package main

import (
	"github.com/spf13/cobra"

	"qdpi-hq/tna/pkg/cli"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Show the loaded vocabulary",
	Long: `Load the vocabulary named by vocabulary.path and print its size, the
QDPI special tokens, the other special token groups and the model info.

Examples:
  tna vocab
  tna vocab --config tna.yaml --format json
  TNA_VOCABULARY_PATH=./other_vocab.yaml tna vocab`,
	Args: cobra.NoArgs,
	RunE: runVocab,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}

func runVocab(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, true, nil)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.print(newVocabReport(a.svc.Store())); err != nil {
		return cli.NewCommandError("vocab", err)
	}
	return nil
}
