// Package cmd provides the CLI commands for yc-tf-cost.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/config"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

// options carries the persistent flags and the state they produce
type options struct {
	cfgFile  string
	envFiles []string
	verbose  bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "yc-tf-cost",
		Short: "Estimate Yandex Cloud costs of Terraform plans",
		Long: `yc-tf-cost prices the resources of a Terraform plan against a snapshot
of the Yandex Cloud SKU catalog.

Examples:
  terraform show -json plan.out > plan.json
  yc-tf-cost estimate plan.json
  yc-tf-cost estimate --full --format json plan.json
  yc-tf-cost skus fetch --output sku.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.init()
		},
	}

	root.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (.json or .hcl)")
	root.PersistentFlags().StringSliceVar(&o.envFiles, "env-file", []string{".env"}, ".env files to load")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(newEstimateCmd(o))
	root.AddCommand(newSkusCmd(o))
	root.AddCommand(newConfigCmd(o))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logging.Sync()
	return newRootCmd().ExecuteContext(ctx)
}

func (o *options) init() error {
	cfg := config.Default()
	if o.cfgFile != "" {
		loaded, err := config.Load(o.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv(o.envFiles...); err != nil {
		return err
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logging.Logger
	return nil
}
