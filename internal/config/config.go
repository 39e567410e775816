// Package config provides configuration management.
//
// Configuration is layered: built-in defaults, then an optional file (JSON or
// HCL, chosen by extension), then .env files and YC_COST_* environment
// variables.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/logging"
)

// Environment variables recognised by LoadEnv.
const (
	EnvSKUFile      = "YC_COST_SKU_FILE"
	EnvPresetFile   = "YC_COST_PRESET_FILE"
	EnvLogLevel     = "YC_COST_LOG_LEVEL"
	EnvLogFormat    = "YC_COST_LOG_FORMAT"
	EnvAddr         = "YC_COST_ADDR"
	EnvBillingURL   = "YC_BILLING_ENDPOINT"
	EnvBillingToken = "YC_BILLING_TOKEN"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Catalog locates the static price list and preset catalog
	Catalog CatalogConfig `json:"catalog"`

	// Billing configures the SKU fetcher
	Billing BillingConfig `json:"billing"`

	// Server configures the HTTP front end
	Server ServerConfig `json:"server"`

	// Output contains output-related settings
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig points at the catalog source files
type CatalogConfig struct {
	// SKUFile is the price list produced by the SKU fetcher
	SKUFile string `json:"sku_file"`

	// PresetFile is the managed database preset catalog
	PresetFile string `json:"preset_file"`
}

// BillingConfig configures access to the billing API
type BillingConfig struct {
	// Endpoint is the billing API base URL
	Endpoint string `json:"endpoint"`

	// Token is an IAM token; usually supplied through YC_BILLING_TOKEN
	Token string `json:"token,omitempty"`

	// PageSize is the number of SKUs requested per page
	PageSize int `json:"page_size"`

	// TimeoutSeconds bounds each HTTP request
	TimeoutSeconds int `json:"timeout_seconds"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// ReadTimeoutSeconds bounds reading a request
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// MaxBodyBytes limits the accepted plan size
	MaxBodyBytes int64 `json:"max_body_bytes"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (table, json)
	DefaultFormat string `json:"default_format"`

	// Detailed includes usage rows by default
	Detailed bool `json:"detailed"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			SKUFile:    "sku.json",
			PresetFile: "mdb.json",
		},
		Billing: BillingConfig{
			Endpoint:       "https://billing.api.cloud.yandex.net",
			PageSize:       1000,
			TimeoutSeconds: 60,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			ReadTimeoutSeconds: 30,
			MaxBodyBytes:       32 << 20,
		},
		Output: OutputConfig{
			DefaultFormat: "table",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("read config", err)
	}

	config := Default()
	switch filepath.Ext(path) {
	case ".hcl":
		var file hclFile
		if err := hclsimple.Decode(filepath.Base(path), data, nil, &file); err != nil {
			return nil, errors.Parsing("decode "+path, err)
		}
		file.apply(config)
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return nil, errors.Parsing("decode "+path, err)
		}
	}

	return config, nil
}

// LoadEnv loads the given .env files, skipping those that do not exist, and
// applies recognised environment variables to c. Variables already set in the
// process environment win over .env values.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Config("load "+f, err)
		}
	}

	setString(&c.Catalog.SKUFile, EnvSKUFile)
	setString(&c.Catalog.PresetFile, EnvPresetFile)
	setString(&c.Logging.Level, EnvLogLevel)
	setString(&c.Logging.Format, EnvLogFormat)
	setString(&c.Server.Addr, EnvAddr)
	setString(&c.Billing.Endpoint, EnvBillingURL)
	setString(&c.Billing.Token, EnvBillingToken)
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Save saves configuration to a file as JSON. The billing token is never
// written.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	clean := *c
	clean.Billing.Token = ""
	data, err := json.MarshalIndent(&clean, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// hclFile is the HCL form of Config. Every field is optional so that values
// absent from the file keep their defaults.
type hclFile struct {
	Version *string     `hcl:"version,optional"`
	Catalog *hclCatalog `hcl:"catalog,block"`
	Billing *hclBilling `hcl:"billing,block"`
	Server  *hclServer  `hcl:"server,block"`
	Output  *hclOutput  `hcl:"output,block"`
	Logging *hclLogging `hcl:"logging,block"`
}

type hclCatalog struct {
	SKUFile    *string `hcl:"sku_file,optional"`
	PresetFile *string `hcl:"preset_file,optional"`
}

type hclBilling struct {
	Endpoint       *string `hcl:"endpoint,optional"`
	PageSize       *int    `hcl:"page_size,optional"`
	TimeoutSeconds *int    `hcl:"timeout_seconds,optional"`
}

type hclServer struct {
	Addr               *string `hcl:"addr,optional"`
	ReadTimeoutSeconds *int    `hcl:"read_timeout_seconds,optional"`
	MaxBodyBytes       *int64  `hcl:"max_body_bytes,optional"`
}

type hclOutput struct {
	DefaultFormat *string `hcl:"default_format,optional"`
	Detailed      *bool   `hcl:"detailed,optional"`
}

type hclLogging struct {
	Level       *string `hcl:"level,optional"`
	Format      *string `hcl:"format,optional"`
	Output      *string `hcl:"output,optional"`
	Development *bool   `hcl:"development,optional"`
}

func (f *hclFile) apply(c *Config) {
	assign(&c.Version, f.Version)
	if b := f.Catalog; b != nil {
		assign(&c.Catalog.SKUFile, b.SKUFile)
		assign(&c.Catalog.PresetFile, b.PresetFile)
	}
	if b := f.Billing; b != nil {
		assign(&c.Billing.Endpoint, b.Endpoint)
		assign(&c.Billing.PageSize, b.PageSize)
		assign(&c.Billing.TimeoutSeconds, b.TimeoutSeconds)
	}
	if b := f.Server; b != nil {
		assign(&c.Server.Addr, b.Addr)
		assign(&c.Server.ReadTimeoutSeconds, b.ReadTimeoutSeconds)
		assign(&c.Server.MaxBodyBytes, b.MaxBodyBytes)
	}
	if b := f.Output; b != nil {
		assign(&c.Output.DefaultFormat, b.DefaultFormat)
		assign(&c.Output.Detailed, b.Detailed)
	}
	if b := f.Logging; b != nil {
		assign(&c.Logging.Level, b.Level)
		assign(&c.Logging.Format, b.Format)
		assign(&c.Logging.Output, b.Output)
		assign(&c.Logging.Development, b.Development)
	}
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// String renders c as indented JSON with the token masked.
func (c *Config) String() string {
	clean := *c
	if clean.Billing.Token != "" {
		clean.Billing.Token = "***"
	}
	data, _ := json.MarshalIndent(&clean, "", "  ")
	return string(data)
}
