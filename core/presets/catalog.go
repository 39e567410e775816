// Package presets resolves managed database resource presets to their
// compute shape and hardware platform.
package presets

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

// Platforms
const (
	PlatformStandardV1 = "standard-v1"
	PlatformStandardV2 = "standard-v2"
	PlatformStandardV3 = "standard-v3"
	PlatformHighFreqV3 = "highfreq-v3"
	PlatformUnknown    = ""
)

// prefixes are checked in order, so longer prefixes must come first.
var prefixes = []struct {
	prefix   string
	platform string
}{
	{"s3f", PlatformHighFreqV3},
	{"m3f", PlatformHighFreqV3},
	{"c3f", PlatformHighFreqV3},
	{"i3f", PlatformHighFreqV3},
	{"hm1", PlatformStandardV1},
	{"hm2", PlatformStandardV2},
	{"hm3", PlatformStandardV3},
	{"s1", PlatformStandardV1},
	{"b1", PlatformStandardV1},
	{"s2", PlatformStandardV2},
	{"b2", PlatformStandardV2},
	{"m2", PlatformStandardV2},
	{"i2", PlatformStandardV2},
	{"s3", PlatformStandardV3},
	{"m3", PlatformStandardV3},
	{"c3", PlatformStandardV3},
	{"i3", PlatformStandardV3},
}

// PlatformOf classifies a preset id by its prefix. Unrecognised prefixes
// return PlatformUnknown.
func PlatformOf(presetID string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(presetID, p.prefix) {
			return p.platform
		}
	}
	return PlatformUnknown
}

// Spec is the resolved shape of a preset
type Spec struct {
	Family       string  `json:"family"`
	PresetID     string  `json:"preset_id"`
	Cores        float64 `json:"cores"`
	CoreFraction int     `json:"core_fraction"`
	Memory       float64 `json:"memory"`
	Platform     string  `json:"platform"`
}

type shape struct {
	Cores        float64 `json:"cores"`
	CoreFraction int     `json:"core_fraction"`
	Memory       float64 `json:"memory"`
}

// Catalog maps family -> preset id -> shape
type Catalog struct {
	families map[string]map[string]shape
}

// Load reads a preset catalog file
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Config("open preset catalog", err).WithContext("path", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes {"<family>":{"<preset>":{"cores","core_fraction","memory"}}}
func Parse(r io.Reader) (*Catalog, error) {
	families := make(map[string]map[string]shape)
	if err := json.NewDecoder(r).Decode(&families); err != nil {
		return nil, errors.Parsing("decode preset catalog", err)
	}
	for _, presets := range families {
		for id, s := range presets {
			if s.CoreFraction == 0 {
				s.CoreFraction = 100
				presets[id] = s
			}
		}
	}
	return &Catalog{families: families}, nil
}

// Resolve returns the shape and platform of presetID within family.
func (c *Catalog) Resolve(family, presetID string) (Spec, error) {
	presets, ok := c.families[family]
	if !ok {
		return Spec{}, errors.NotFound("preset family", family)
	}
	s, ok := presets[presetID]
	if !ok {
		return Spec{}, errors.NotFound("preset", family+"/"+presetID)
	}
	return Spec{
		Family:       family,
		PresetID:     presetID,
		Cores:        s.Cores,
		CoreFraction: s.CoreFraction,
		Memory:       s.Memory,
		Platform:     PlatformOf(presetID),
	}, nil
}

// Families returns the number of families loaded
func (c *Catalog) Families() int {
	return len(c.families)
}
