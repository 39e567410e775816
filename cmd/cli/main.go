// Package main is the entry point for the yc-tf-cost CLI.
package main

import (
	"os"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
