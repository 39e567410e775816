package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/estimator"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/ledger"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/rules"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

func totals(hourly string) estimator.Totals {
	h := decimal.RequireFromString(hourly)
	return estimator.Totals{Hourly: h, Monthly: h.Mul(decimal.NewFromInt(estimator.HoursPerMonth))}
}

func summaryReport() *estimator.Report {
	return &estimator.Report{Summary: &estimator.Summary{
		ID:       "e1",
		Totals:   totals("4.6"),
		Currency: estimator.Currency,
		Usage: []ledger.Row{{
			SKU:          "dn2k3vqlk9snp1jv351u",
			Name:         "Intel Ice Lake. 100% vCPU",
			Unit:         "core*hour",
			Amount:       decimal.NewFromInt(2),
			Cost:         decimal.RequireFromString("3"),
			ResourceName: "web",
			ResourceType: "yandex_compute_instance",
		}},
		Warnings: []rules.Warning{{Resource: "yandex_compute_instance.fast", Attribute: "cpu", Outcome: rules.Unpriced, Detail: "compute cpu highfreq-v3/100%"}},
		Skipped:  []string{"yandex_vpc_network.net"},
	}}
}

func TestTableSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTable().Render(&buf, summaryReport()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"COST ESTIMATE (RUB)",
		"4.60",
		"3,422.40",
		"yandex_compute_instance.web",
		"Intel Ice Lake. 100% vCPU",
		"warning: yandex_compute_instance.fast cpu unpriced",
		"skipped 1 unsupported resources: yandex_vpc_network.net",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableComparison(t *testing.T) {
	report := &estimator.Report{Comparison: &estimator.Comparison{
		Current: &estimator.Summary{Totals: totals("100")},
		Planned: &estimator.Summary{Totals: totals("150")},
		Difference: estimator.Difference{
			Hourly:     decimal.NewFromInt(50),
			Monthly:    decimal.NewFromInt(37200),
			Percentage: decimal.NewFromInt(50),
		},
		Currency:   estimator.Currency,
		HasChanges: true,
	}}

	var buf bytes.Buffer
	if err := NewTable().Render(&buf, report); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"COST COMPARISON (RUB)", "74,400.00", "111,600.00", "+37,200.00", "+50.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "USAGE") {
		t.Errorf("usage section rendered without usage rows")
	}
}

func TestTableComparisonWithEmptyCurrentUsage(t *testing.T) {
	report := &estimator.Report{Comparison: &estimator.Comparison{
		Current: &estimator.Summary{Totals: totals("0"), Usage: []ledger.Row{}},
		Planned: &estimator.Summary{Totals: totals("1"), Usage: []ledger.Row{{
			SKU:          "dn229q5mnmp58t58tfel",
			Name:         "Public IP address",
			Amount:       decimal.NewFromInt(1),
			Cost:         decimal.NewFromInt(1),
			ResourceName: "ip",
			ResourceType: "yandex_vpc_address",
		}}},
		Currency:   estimator.Currency,
		HasChanges: true,
	}}

	var buf bytes.Buffer
	if err := NewTable().Render(&buf, report); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"CURRENT USAGE\n  (none)", "PLANNED USAGE", "Public IP address"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSON().Render(&buf, summaryReport()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got struct {
		Hourly   float64 `json:"hourly"`
		Monthly  float64 `json:"monthly"`
		Currency string  `json:"currency"`
		Usage    []struct {
			SKU  string  `json:"sku_id"`
			Cost float64 `json:"cost"`
		} `json:"usage"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Hourly != 4.6 || got.Monthly != 3422.4 || got.Currency != "RUB" {
		t.Errorf("got %+v", got)
	}
	if len(got.Usage) != 1 || got.Usage[0].Cost != 3 {
		t.Errorf("usage = %+v", got.Usage)
	}
}

func TestRegistry(t *testing.T) {
	r := Default()

	for _, format := range []Format{FormatTable, FormatJSON} {
		f, err := r.Get(format)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", format, err)
		}
		if f.Format() != format {
			t.Errorf("Get(%s).Format() = %s", format, f.Format())
		}
	}

	_, err := r.Get("html")
	if !errors.IsType(err, errors.TypeNotSupported) {
		t.Errorf("Get(html) error = %v, want NOT_SUPPORTED", err)
	}
	if len(r.Formats()) != 2 {
		t.Errorf("Formats() = %v", r.Formats())
	}
}
