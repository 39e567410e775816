package estimator

import (
	"go.uber.org/zap"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/presets"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/rates"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/rules"
)

// FromFiles loads the price list and the preset catalog and returns an
// estimator over the default rule registry. Either file failing to load is
// fatal for the caller.
func FromFiles(skuFile, presetFile string, opts ...Option) (*Estimator, error) {
	prices, err := rates.Load(skuFile)
	if err != nil {
		return nil, err
	}
	catalog, err := presets.Load(presetFile)
	if err != nil {
		return nil, err
	}

	e := New(prices, rules.Default(), append([]Option{WithPresets(catalog)}, opts...)...)
	e.logger.Info("catalogs loaded",
		zap.String("sku_file", skuFile),
		zap.Int("skus", prices.Len()),
		zap.String("preset_file", presetFile),
		zap.Int("families", catalog.Families()))
	return e, nil
}
