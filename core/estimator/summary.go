package estimator

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/ledger"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/rules"
)

// Totals is the cost of a pass per hour and per billing month
type Totals struct {
	Hourly  decimal.Decimal
	Monthly decimal.Decimal
}

// Difference is planned minus current. Percentage is relative to the
// current hourly cost and is zero when that cost is zero.
type Difference struct {
	Hourly     decimal.Decimal
	Monthly    decimal.Decimal
	Percentage decimal.Decimal
}

// Failure is a resource whose rule returned an error
type Failure struct {
	Resource     string `json:"resource"`
	ResourceType string `json:"resource_type"`
	Error        string `json:"error"`
}

// Summary is the result of one estimation pass
type Summary struct {
	ID string
	Totals
	Currency string

	// Usage is set for detailed estimates only
	Usage []ledger.Row

	Warnings []rules.Warning
	Skipped  []string
	Failed   []Failure

	EstimatedAt time.Time
	Duration    time.Duration
}

// Comparison is the result of comparing prior and planned passes
type Comparison struct {
	ID         string
	Current    *Summary
	Planned    *Summary
	Difference Difference
	Currency   string
	HasChanges bool
}

// Report holds either a Summary or a Comparison
type Report struct {
	Summary    *Summary
	Comparison *Comparison
}

// money renders a decimal as a JSON number rounded to kopecks
func money(d decimal.Decimal) json.Number {
	return json.Number(d.Round(2).String())
}

type totalsJSON struct {
	Hourly  json.Number `json:"hourly"`
	Monthly json.Number `json:"monthly"`
}

func (t Totals) toJSON() totalsJSON {
	return totalsJSON{Hourly: money(t.Hourly), Monthly: money(t.Monthly)}
}

type differenceJSON struct {
	Hourly     json.Number `json:"hourly"`
	Monthly    json.Number `json:"monthly"`
	Percentage json.Number `json:"percentage"`
}

type rowJSON struct {
	SKU          string      `json:"sku_id"`
	Name         string      `json:"sku_name"`
	Unit         string      `json:"unit"`
	Amount       json.Number `json:"amount"`
	Cost         json.Number `json:"cost"`
	ResourceName string      `json:"resource_name"`
	ResourceType string      `json:"resource_type"`
}

// rowsJSON returns nil for a pass without usage rows, and a pointer to a
// possibly empty list for a detailed one.
func rowsJSON(rows []ledger.Row) *[]rowJSON {
	if rows == nil {
		return nil
	}
	out := make([]rowJSON, len(rows))
	for i, r := range rows {
		out[i] = rowJSON{
			SKU:          r.SKU,
			Name:         r.Name,
			Unit:         r.Unit,
			Amount:       json.Number(r.Amount.String()),
			Cost:         money(r.Cost),
			ResourceName: r.ResourceName,
			ResourceType: r.ResourceType,
		}
	}
	return &out
}

// MarshalJSON renders {hourly, monthly, currency} plus usage rows and
// diagnostics when present.
func (s *Summary) MarshalJSON() ([]byte, error) {
	t := s.Totals.toJSON()
	return json.Marshal(struct {
		ID       string          `json:"id,omitempty"`
		Hourly   json.Number     `json:"hourly"`
		Monthly  json.Number     `json:"monthly"`
		Currency string          `json:"currency"`
		Usage    *[]rowJSON      `json:"usage,omitempty"`
		Warnings []rules.Warning `json:"warnings,omitempty"`
		Skipped  []string        `json:"skipped,omitempty"`
		Failed   []Failure       `json:"failed,omitempty"`
	}{
		ID:       s.ID,
		Hourly:   t.Hourly,
		Monthly:  t.Monthly,
		Currency: s.Currency,
		Usage:    rowsJSON(s.Usage),
		Warnings: s.Warnings,
		Skipped:  s.Skipped,
		Failed:   s.Failed,
	})
}

// MarshalJSON renders {current, planned, difference, currency, has_changes}
// plus current_usage and planned_usage for detailed comparisons.
func (c *Comparison) MarshalJSON() ([]byte, error) {
	var warnings []rules.Warning
	var skipped []string
	var failed []Failure
	for _, s := range []*Summary{c.Current, c.Planned} {
		warnings = append(warnings, s.Warnings...)
		skipped = append(skipped, s.Skipped...)
		failed = append(failed, s.Failed...)
	}

	return json.Marshal(struct {
		ID           string          `json:"id,omitempty"`
		Current      totalsJSON      `json:"current"`
		Planned      totalsJSON      `json:"planned"`
		Difference   differenceJSON  `json:"difference"`
		Currency     string          `json:"currency"`
		HasChanges   bool            `json:"has_changes"`
		CurrentUsage *[]rowJSON      `json:"current_usage,omitempty"`
		PlannedUsage *[]rowJSON      `json:"planned_usage,omitempty"`
		Warnings     []rules.Warning `json:"warnings,omitempty"`
		Skipped      []string        `json:"skipped,omitempty"`
		Failed       []Failure       `json:"failed,omitempty"`
	}{
		ID:      c.ID,
		Current: c.Current.Totals.toJSON(),
		Planned: c.Planned.Totals.toJSON(),
		Difference: differenceJSON{
			Hourly:     money(c.Difference.Hourly),
			Monthly:    money(c.Difference.Monthly),
			Percentage: money(c.Difference.Percentage),
		},
		Currency:     c.Currency,
		HasChanges:   c.HasChanges,
		CurrentUsage: rowsJSON(c.Current.Usage),
		PlannedUsage: rowsJSON(c.Planned.Usage),
		Warnings:     warnings,
		Skipped:      skipped,
		Failed:       failed,
	})
}

// MarshalJSON renders whichever result the report holds
func (r *Report) MarshalJSON() ([]byte, error) {
	if r.Comparison != nil {
		return r.Comparison.MarshalJSON()
	}
	if r.Summary != nil {
		return r.Summary.MarshalJSON()
	}
	return []byte("null"), nil
}
