package main

import (
	"github.com/spf13/cobra"

	"qdpi-hq/tna/pkg/cli"
	"qdpi-hq/tna/pkg/config"
)

var estimateFlags struct {
	file          string
	tokensPerUnit float64
}

var estimateCmd = &cobra.Command{
	Use:   "estimate [TEXT...]",
	Short: "Estimate the cost of text",
	Long: `Count the tokens in text and divide by tokens per unit. The cost is shown
as a decimal and as the exact fraction it was computed from.

Text is taken from the arguments, from --file, or from stdin.

Examples:
  tna estimate "Some sample text"
  tna estimate --tokens-per-unit 1000 --file notes.txt
  tna estimate --format json < notes.txt`,
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVar(&estimateFlags.file, "file", "", "read text from file")
	estimateCmd.Flags().Float64Var(&estimateFlags.tokensPerUnit, "tokens-per-unit", 0, "override costs.tokens_per_unit")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd, args, estimateFlags.file)
	if err != nil {
		return cli.NewCommandError("estimate", err)
	}

	var mutate func(*config.Config)
	if cmd.Flags().Changed("tokens-per-unit") {
		mutate = func(cfg *config.Config) {
			cfg.Costs.TokensPerUnit = estimateFlags.tokensPerUnit
		}
	}

	a, err := newApp(cmd, true, mutate)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := a.svc.Estimate(cmd.Context(), text)
	if err != nil {
		return cli.NewCommandError("estimate", err)
	}

	if err := a.print(newEstimateReport(res)); err != nil {
		return cli.NewCommandError("estimate", err)
	}
	return nil
}
