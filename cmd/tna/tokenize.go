package main

import (
	"github.com/spf13/cobra"

	"qdpi-hq/tna/pkg/cli"
)

var tokenizeFlags struct {
	file string
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [TEXT...]",
	Short: "Split text into vocabulary tokens",
	Long: `Tokenize text with the configured strategy and show each token with its
vocabulary id. Special tokens are marked with "*"; tokens outside the
vocabulary show "?" as their id.

Text is taken from the arguments, from --file, or from stdin.

Examples:
  tna tokenize "<X_READ> Hello <Y_INDEX>"
  echo "Some sample text" | tna tokenize
  tna tokenize --file notes.txt --format json`,
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)

	tokenizeCmd.Flags().StringVar(&tokenizeFlags.file, "file", "", "read text from file")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args, tokenizeFlags.file)
	if err != nil {
		return cli.NewCommandError("tokenize", err)
	}

	a, err := newApp(cmd, true, nil)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.svc.Tokenize(cmd.Context(), text)
	if err != nil {
		return cli.NewCommandError("tokenize", err)
	}

	if err := a.print(newTokenizeReport(res)); err != nil {
		return cli.NewCommandError("tokenize", err)
	}
	return nil
}
