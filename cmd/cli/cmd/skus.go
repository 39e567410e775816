package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/adapters/billing"
)

func newSkusCmd(o *options) *cobra.Command {
	skus := &cobra.Command{
		Use:   "skus",
		Short: "Manage the SKU price list",
	}

	var (
		token    string
		endpoint string
		out      string
	)
	fetch := &cobra.Command{
		Use:   "fetch",
		Short: "Download the SKU price list from the billing API",
		Long: `Download every SKU from the Yandex Cloud billing API and write them to
the price list file. The token defaults to YC_BILLING_TOKEN; obtain one with
"yc iam create-token".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bc := o.cfg.Billing
			if token != "" {
				bc.Token = token
			}
			if endpoint != "" {
				bc.Endpoint = endpoint
			}
			if out == "" {
				out = o.cfg.Catalog.SKUFile
			}

			f := billing.New(billing.Config{
				Endpoint: bc.Endpoint,
				Token:    bc.Token,
				PageSize: bc.PageSize,
				Timeout:  time.Duration(bc.TimeoutSeconds) * time.Second,
			}, billing.WithLogger(o.logger))

			n, err := f.Save(cmd.Context(), out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d SKUs to %s\n", n, out)
			return nil
		},
	}
	fetch.Flags().StringVar(&token, "token", "", "IAM token (default $YC_BILLING_TOKEN)")
	fetch.Flags().StringVar(&endpoint, "endpoint", "", "billing API endpoint (overrides config)")
	fetch.Flags().StringVarP(&out, "output", "o", "", "output file (default catalog sku_file)")

	skus.AddCommand(fetch)
	return skus
}
