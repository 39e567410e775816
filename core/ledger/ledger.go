// Package ledger collects usage records for one estimation pass and prices
// them against a rate source.
package ledger

import (
	"github.com/shopspring/decimal"
)

// PriceSource is the read side of the rate catalog
type PriceSource interface {
	PriceOf(sku string) decimal.Decimal
	NameOf(sku string) string
	UnitOf(sku string) string
}

// Record is a single billable quantity of a SKU attributed to a resource
type Record struct {
	SKU          string
	Amount       decimal.Decimal
	ResourceName string
	ResourceType string
}

// Row is an aggregated usage line
type Row struct {
	SKU          string
	Name         string
	Unit         string
	Amount       decimal.Decimal
	Cost         decimal.Decimal
	ResourceName string
	ResourceType string
}

type rowKey struct {
	sku, name, unit, resourceName, resourceType string
}

// Ledger is an append-only list of usage records. It is not safe for
// concurrent use; each pass owns its own ledger.
type Ledger struct {
	prices  PriceSource
	records []Record
}

// New creates an empty ledger priced by prices
func New(prices PriceSource) *Ledger {
	return &Ledger{prices: prices}
}

// Record appends a usage record. Amounts are not validated.
func (l *Ledger) Record(sku string, amount float64, resourceName, resourceType string) {
	l.RecordDecimal(sku, decimal.NewFromFloat(amount), resourceName, resourceType)
}

// RecordDecimal appends a usage record with an exact amount
func (l *Ledger) RecordDecimal(sku string, amount decimal.Decimal, resourceName, resourceType string) {
	l.records = append(l.records, Record{
		SKU:          sku,
		Amount:       amount,
		ResourceName: resourceName,
		ResourceType: resourceType,
	})
}

// Records returns a copy of the raw records in insertion order
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of raw records
func (l *Ledger) Len() int {
	return len(l.records)
}

// Aggregate groups records by (sku, name, unit, resource name, resource
// type), summing amount and cost. Rows are ordered by first occurrence of
// their key.
func (l *Ledger) Aggregate() []Row {
	index := make(map[rowKey]int)
	var rows []Row

	for _, r := range l.records {
		name := l.prices.NameOf(r.SKU)
		unit := l.prices.UnitOf(r.SKU)
		cost := r.Amount.Mul(l.prices.PriceOf(r.SKU))

		key := rowKey{r.SKU, name, unit, r.ResourceName, r.ResourceType}
		if i, ok := index[key]; ok {
			rows[i].Amount = rows[i].Amount.Add(r.Amount)
			rows[i].Cost = rows[i].Cost.Add(cost)
			continue
		}

		index[key] = len(rows)
		rows = append(rows, Row{
			SKU:          r.SKU,
			Name:         name,
			Unit:         unit,
			Amount:       r.Amount,
			Cost:         cost,
			ResourceName: r.ResourceName,
			ResourceType: r.ResourceType,
		})
	}
	return rows
}

// TotalCost is the sum of amount times unit price over all raw records
func (l *Ledger) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.records {
		total = total.Add(r.Amount.Mul(l.prices.PriceOf(r.SKU)))
	}
	return total
}

// Reset clears all records
func (l *Ledger) Reset() {
	l.records = l.records[:0]
}
