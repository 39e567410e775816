// Package main is the entry point for the yc-tf-cost HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/api"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/estimator"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/config"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/logging"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgFile := flag.String("config", "", "config file (.json or .hcl)")
	envFile := flag.String("env-file", ".env", ".env file to load")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *cfgFile != "" {
		loaded, err := config.Load(*cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv(*envFile); err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()
	logger := logging.Logger

	est, err := estimator.FromFiles(cfg.Catalog.SKUFile, cfg.Catalog.PresetFile,
		estimator.WithLogger(logger.Named("estimator")))
	if err != nil {
		return err
	}

	server := api.NewServer(est, version,
		api.WithLogger(logger.Named("api")),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server", zap.String("version", version), zap.String("addr", cfg.Server.Addr))
	return server.ListenAndServe(ctx, cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second, 15*time.Second)
}
