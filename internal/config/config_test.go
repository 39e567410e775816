package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.SKUFile != "sku.json" || cfg.Catalog.PresetFile != "mdb.json" {
		t.Errorf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadJSONOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.json")
	writeFile(t, path, `{"catalog":{"sku_file":"/data/sku.json"},"output":{"detailed":true}}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.SKUFile != "/data/sku.json" {
		t.Errorf("SKUFile = %q", cfg.Catalog.SKUFile)
	}
	if cfg.Catalog.PresetFile != "mdb.json" {
		t.Errorf("PresetFile lost its default: %q", cfg.Catalog.PresetFile)
	}
	if !cfg.Output.Detailed {
		t.Error("Output.Detailed not applied")
	}
}

func TestLoadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.hcl")
	writeFile(t, path, `
catalog {
  preset_file = "/etc/yc-cost/mdb.json"
}

billing {
  page_size = 250
}

logging {
  level  = "debug"
  format = "json"
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.PresetFile != "/etc/yc-cost/mdb.json" {
		t.Errorf("PresetFile = %q", cfg.Catalog.PresetFile)
	}
	if cfg.Catalog.SKUFile != "sku.json" {
		t.Errorf("SKUFile lost its default: %q", cfg.Catalog.SKUFile)
	}
	if cfg.Billing.PageSize != 250 {
		t.Errorf("PageSize = %d", cfg.Billing.PageSize)
	}
	if cfg.Billing.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds lost its default: %d", cfg.Billing.TimeoutSeconds)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.json")
	writeFile(t, path, `{"catalog":`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "YC_COST_SKU_FILE=/from/dotenv/sku.json\nYC_COST_ADDR=:9999\n")

	t.Setenv(EnvSKUFile, "")
	os.Unsetenv(EnvSKUFile)
	t.Setenv(EnvAddr, "")
	os.Unsetenv(EnvAddr)
	t.Setenv(EnvBillingToken, "t1.secret")

	cfg := Default()
	if err := cfg.LoadEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.Catalog.SKUFile != "/from/dotenv/sku.json" {
		t.Errorf("SKUFile = %q", cfg.Catalog.SKUFile)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Billing.Token != "t1.secret" {
		t.Errorf("Token = %q", cfg.Billing.Token)
	}
}

func TestSaveOmitsToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cost.json")
	cfg := Default()
	cfg.Billing.Token = "t1.secret"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Billing.Token != "" {
		t.Errorf("token was persisted: %q", loaded.Billing.Token)
	}
	if cfg.Billing.Token != "t1.secret" {
		t.Error("Save mutated the receiver")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
