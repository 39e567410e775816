package estimator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/plan"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/presets"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/rates"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/rules"
)

const priceList = `{"skus": [
	{"id": "dn2k3vqlk9snp1jv351u", "name": "Intel Ice Lake. 100% vCPU", "pricingUnit": "core*hour",
	 "pricingVersions": [{"effectiveTime": "2024-01-01T00:00:00Z", "pricingExpressions": [{"rates": [{"unitPrice": "1.5"}]}]}]},
	{"id": "dn2ilq72mjc3bej6j74p", "name": "Intel Ice Lake. RAM", "pricingUnit": "gbyte*hour",
	 "pricingVersions": [{"effectiveTime": "2024-01-01T00:00:00Z", "pricingExpressions": [{"rates": [{"unitPrice": "0.4"}]}]}]},
	{"id": "dn2al287u6jr3a710u8g", "name": "Standard network storage", "pricingUnit": "gbyte*hour",
	 "pricingVersions": [{"effectiveTime": "2024-01-01T00:00:00Z", "pricingExpressions": [{"rates": [{"unitPrice": "1"}]}]}]}
]}`

func newEstimator(t *testing.T) *Estimator {
	t.Helper()
	catalog, err := rates.Parse(strings.NewReader(priceList))
	if err != nil {
		t.Fatalf("parse price list: %v", err)
	}
	preset, err := presets.Parse(strings.NewReader(`{"mysql": {"s2.micro": {"cores": 2, "memory": 8}}}`))
	if err != nil {
		t.Fatalf("parse presets: %v", err)
	}
	ids := 0
	return New(catalog, rules.Default(),
		WithPresets(preset),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("estimate-%d", ids)
		}),
		WithClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }),
	)
}

func instance(name string, cores, memory int) plan.Resource {
	return plan.NewResource("yandex_compute_instance", name, map[string]interface{}{
		"resources": []interface{}{map[string]interface{}{"cores": float64(cores), "memory": float64(memory)}},
	})
}

func disk(name string, size int) plan.Resource {
	return plan.NewResource("yandex_compute_disk", name, map[string]interface{}{"size": float64(size)})
}

func TestEstimateTotals(t *testing.T) {
	e := newEstimator(t)
	s, err := e.Estimate(context.Background(), []plan.Resource{instance("web", 2, 4)}, false)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}

	// 2 × 1.5 + 4 × 0.4
	if want := decimal.RequireFromString("4.6"); !s.Hourly.Equal(want) {
		t.Errorf("hourly = %s, want %s", s.Hourly, want)
	}
	if want := s.Hourly.Mul(decimal.NewFromInt(744)); !s.Monthly.Equal(want) {
		t.Errorf("monthly = %s, want %s", s.Monthly, want)
	}
	if s.ID != "estimate-1" {
		t.Errorf("id = %q, want estimate-1", s.ID)
	}
	if s.Currency != "RUB" {
		t.Errorf("currency = %q", s.Currency)
	}
	if s.Usage != nil {
		t.Errorf("usage rows returned without detailed flag")
	}
}

func TestEstimateDetailed(t *testing.T) {
	e := newEstimator(t)
	s, err := e.Estimate(context.Background(), []plan.Resource{instance("web", 2, 4), instance("web", 1, 1)}, true)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if len(s.Usage) != 2 {
		t.Fatalf("usage rows = %d, want 2", len(s.Usage))
	}
	if s.Usage[0].SKU != "dn2k3vqlk9snp1jv351u" || s.Usage[0].Amount.String() != "3" {
		t.Errorf("first row = %s × %s, want cpu × 3", s.Usage[0].SKU, s.Usage[0].Amount)
	}

	total := decimal.Zero
	for _, r := range s.Usage {
		total = total.Add(r.Cost)
	}
	if !total.Equal(s.Hourly) {
		t.Errorf("sum of row costs %s != hourly %s", total, s.Hourly)
	}
}

func TestEstimateSkipsAndFailures(t *testing.T) {
	e := newEstimator(t)
	resources := []plan.Resource{
		plan.NewResource("yandex_vpc_network", "net", map[string]interface{}{"name": "net"}),
		plan.NewResource("yandex_compute_instance", "broken", map[string]interface{}{}),
		plan.NewResource("yandex_mdb_mysql_cluster", "db", map[string]interface{}{
			"resources": []interface{}{map[string]interface{}{"resource_preset_id": "unknown"}},
		}),
		disk("data", 10),
	}

	s, err := e.Estimate(context.Background(), resources, false)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if diff := cmp.Diff([]string{"yandex_vpc_network.net"}, s.Skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}
	if len(s.Failed) != 2 {
		t.Fatalf("failed = %+v, want 2 entries", s.Failed)
	}
	if s.Failed[0].Resource != "yandex_compute_instance.broken" {
		t.Errorf("failed[0] = %q", s.Failed[0].Resource)
	}
	if !s.Hourly.Equal(decimal.NewFromInt(10)) {
		t.Errorf("hourly = %s, want 10", s.Hourly)
	}
}

func TestEstimateCancelled(t *testing.T) {
	e := newEstimator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Estimate(ctx, []plan.Resource{disk("data", 1)}, false); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestDetailedEmptyPass(t *testing.T) {
	e := newEstimator(t)

	s, err := e.Estimate(context.Background(), nil, true)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	if s.Usage == nil || len(s.Usage) != 0 {
		t.Fatalf("usage = %#v, want empty non-nil list", s.Usage)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"usage":[]`) {
		t.Errorf("summary JSON = %s, want an empty usage list", raw)
	}

	c, err := e.Compare(context.Background(), nil, []plan.Resource{disk("d", 10)}, true)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	raw, err = json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	current, ok := got["current_usage"].([]interface{})
	if !ok || len(current) != 0 {
		t.Errorf("current_usage = %v, want []", got["current_usage"])
	}
	planned, ok := got["planned_usage"].([]interface{})
	if !ok || len(planned) != 1 {
		t.Errorf("planned_usage = %v, want 1 row", got["planned_usage"])
	}
}

func TestSummaryJSONOmitsUsageWhenNotDetailed(t *testing.T) {
	e := newEstimator(t)
	s, err := e.Estimate(context.Background(), nil, false)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), `"usage"`) {
		t.Errorf("summary JSON = %s, want no usage key", raw)
	}
}

func TestFailedResourceLoggedAsError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := newEstimator(t)
	e.logger = zap.New(core)

	resources := []plan.Resource{
		plan.NewResource("yandex_mdb_mysql_cluster", "db", map[string]interface{}{
			"resources": []interface{}{map[string]interface{}{"resource_preset_id": "unknown"}},
		}),
	}
	if _, err := e.Estimate(context.Background(), resources, false); err != nil {
		t.Fatal(err)
	}

	entries := logs.FilterMessage("resource not estimated").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("level = %s, want error", entries[0].Level)
	}
	if got := entries[0].ContextMap()["resource"]; got != "yandex_mdb_mysql_cluster.db" {
		t.Errorf("resource field = %v", got)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name           string
		prior, planned []plan.Resource
		wantPercentage string
		wantChanges    bool
	}{
		{"growth", []plan.Resource{disk("d", 100)}, []plan.Resource{disk("d", 150)}, "50", true},
		{"shrink", []plan.Resource{disk("d", 200)}, []plan.Resource{disk("d", 50)}, "-75", true},
		{"empty prior", nil, []plan.Resource{disk("d", 10)}, "0", true},
		{"unchanged", []plan.Resource{disk("d", 10)}, []plan.Resource{disk("d", 10)}, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEstimator(t)
			c, err := e.Compare(context.Background(), tt.prior, tt.planned, false)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if got := c.Difference.Percentage.String(); got != tt.wantPercentage {
				t.Errorf("percentage = %s, want %s", got, tt.wantPercentage)
			}
			if c.HasChanges != tt.wantChanges {
				t.Errorf("has_changes = %v, want %v", c.HasChanges, tt.wantChanges)
			}
			wantHourly := c.Planned.Hourly.Sub(c.Current.Hourly)
			if !c.Difference.Hourly.Equal(wantHourly) {
				t.Errorf("hourly delta = %s, want %s", c.Difference.Hourly, wantHourly)
			}
		})
	}
}

func TestCompareThreshold(t *testing.T) {
	e := newEstimator(t)
	// 0.005 RUB/hour apart is noise
	prior := []plan.Resource{plan.NewResource("yandex_compute_disk", "d", map[string]interface{}{"size": 1.0})}
	planned := []plan.Resource{plan.NewResource("yandex_compute_disk", "d", map[string]interface{}{"size": 1.005})}

	c, err := e.Compare(context.Background(), prior, planned, false)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if c.HasChanges {
		t.Errorf("has_changes = true for delta %s", c.Difference.Hourly)
	}
}

func TestEstimatePlan(t *testing.T) {
	e := newEstimator(t)

	doc, err := plan.Decode(strings.NewReader(`{
		"planned_values": {"root_module": {"resources": [
			{"address": "yandex_compute_disk.d", "mode": "managed", "type": "yandex_compute_disk", "name": "d", "values": {"size": 20}}
		]}}
	}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	report, err := e.EstimatePlan(context.Background(), doc, false)
	if err != nil {
		t.Fatalf("EstimatePlan() error = %v", err)
	}
	if report.Comparison != nil || report.Summary == nil {
		t.Fatalf("plan without prior state must produce a summary")
	}

	doc, err = plan.Decode(strings.NewReader(`{
		"prior_state": {"values": {"root_module": {"resources": [
			{"address": "yandex_compute_disk.d", "mode": "managed", "type": "yandex_compute_disk", "name": "d", "values": {"size": 10}}
		]}}},
		"planned_values": {"root_module": {"resources": [
			{"address": "yandex_compute_disk.d", "mode": "managed", "type": "yandex_compute_disk", "name": "d", "values": {"size": 20}}
		]}}
	}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	report, err = e.EstimatePlan(context.Background(), doc, true)
	if err != nil {
		t.Fatalf("EstimatePlan() error = %v", err)
	}
	if report.Comparison == nil {
		t.Fatalf("plan with prior state must produce a comparison")
	}
	if got := report.Comparison.Difference.Percentage.String(); got != "100" {
		t.Errorf("percentage = %s, want 100", got)
	}
}

func TestSummaryJSON(t *testing.T) {
	e := newEstimator(t)
	s, err := e.Estimate(context.Background(), []plan.Resource{disk("d", 3), instance("vm", 1, 1)}, true)
	if err != nil {
		t.Fatalf("Estimate() error = %v", err)
	}
	s.Hourly = decimal.RequireFromString("4.9049")
	s.Monthly = decimal.RequireFromString("3649.2456")

	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["hourly"] != 4.9 || got["monthly"] != 3649.25 {
		t.Errorf("totals = %v / %v, want rounded to 2 decimals", got["hourly"], got["monthly"])
	}
	usage, ok := got["usage"].([]interface{})
	if !ok || len(usage) != 3 {
		t.Fatalf("usage = %v", got["usage"])
	}
	row := usage[0].(map[string]interface{})
	for _, key := range []string{"sku_id", "sku_name", "unit", "amount", "cost", "resource_name", "resource_type"} {
		if _, ok := row[key]; !ok {
			t.Errorf("usage row missing %q", key)
		}
	}
}

func TestComparisonJSON(t *testing.T) {
	e := newEstimator(t)
	c, err := e.Compare(context.Background(), []plan.Resource{disk("d", 100)}, []plan.Resource{disk("d", 150)}, false)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	raw, err := json.Marshal(&Report{Comparison: c})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got struct {
		Current    map[string]float64 `json:"current"`
		Planned    map[string]float64 `json:"planned"`
		Difference map[string]float64 `json:"difference"`
		Currency   string             `json:"currency"`
		HasChanges bool               `json:"has_changes"`
		Usage      []interface{}      `json:"current_usage"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := map[string]float64{"hourly": 50, "monthly": 37200, "percentage": 50}
	if diff := cmp.Diff(want, got.Difference); diff != "" {
		t.Errorf("difference mismatch (-want +got):\n%s", diff)
	}
	if got.Current["hourly"] != 100 || got.Planned["hourly"] != 150 {
		t.Errorf("current/planned = %v / %v", got.Current, got.Planned)
	}
	if got.Currency != "RUB" || !got.HasChanges {
		t.Errorf("currency = %q, has_changes = %v", got.Currency, got.HasChanges)
	}
	if got.Usage != nil {
		t.Errorf("usage rendered without detailed flag")
	}
}
