package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/estimator"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/output"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/plan"
)

func newEstimateCmd(o *options) *cobra.Command {
	var (
		full       bool
		format     string
		skuFile    string
		presetFile string
	)

	cmd := &cobra.Command{
		Use:   "estimate <plan.json>",
		Short: "Estimate the cost of a Terraform plan",
		Long: `Price a plan produced by "terraform show -json". A plan with a prior
state is reported as a comparison of the current and planned cost.
Use "-" to read the plan from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("full") {
				full = o.cfg.Output.Detailed
			}
			if format == "" {
				format = o.cfg.Output.DefaultFormat
			}
			if skuFile == "" {
				skuFile = o.cfg.Catalog.SKUFile
			}
			if presetFile == "" {
				presetFile = o.cfg.Catalog.PresetFile
			}

			formatter, err := output.Default().Get(output.Format(format))
			if err != nil {
				return err
			}
			est, err := estimator.FromFiles(skuFile, presetFile, estimator.WithLogger(o.logger))
			if err != nil {
				return err
			}
			doc, err := readPlan(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			report, err := est.EstimatePlan(cmd.Context(), doc, full)
			if err != nil {
				return err
			}
			return formatter.Render(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "include per-SKU usage rows")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (table, json)")
	cmd.Flags().StringVar(&skuFile, "skus", "", "price list file (overrides config)")
	cmd.Flags().StringVar(&presetFile, "presets", "", "preset catalog file (overrides config)")
	return cmd
}

func readPlan(path string, stdin io.Reader) (*plan.Document, error) {
	if path == "-" {
		return plan.Decode(stdin)
	}
	return plan.Load(path)
}
