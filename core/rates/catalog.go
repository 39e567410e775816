// Package rates provides the SKU price list used to price usage records.
//
// The catalog is loaded once from the billing API snapshot written by the
// SKU fetcher and is read-only afterwards. Lookups never fail: an unknown SKU
// prices at zero with an empty name and unit.
package rates

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

// Entry is a single SKU with its pricing history
type Entry struct {
	ID       string
	Name     string
	Unit     string
	Versions []Version
}

// Version is one pricing version of a SKU
type Version struct {
	EffectiveTime string
	UnitPrice     decimal.Decimal
	// Priced is false when the version carried no rate
	Priced bool
}

// Latest returns the version with the greatest effective time. Versions
// whose timestamp parses as RFC 3339 are ordered by instant and rank above
// those that do not; the raw string breaks remaining ties. The result does
// not depend on the order of Versions.
func (e *Entry) Latest() (Version, bool) {
	if len(e.Versions) == 0 {
		return Version{}, false
	}
	latest := e.Versions[0]
	latestKey := keyOf(latest.EffectiveTime)
	for _, v := range e.Versions[1:] {
		if k := keyOf(v.EffectiveTime); k.after(latestKey) {
			latest, latestKey = v, k
		}
	}
	return latest, true
}

// effectiveKey orders effective times by (parsed, instant, raw)
type effectiveKey struct {
	parsed bool
	at     time.Time
	raw    string
}

func keyOf(raw string) effectiveKey {
	at, err := time.Parse(time.RFC3339, raw)
	return effectiveKey{parsed: err == nil, at: at, raw: raw}
}

func (k effectiveKey) after(o effectiveKey) bool {
	if k.parsed != o.parsed {
		return k.parsed
	}
	if k.parsed && !k.at.Equal(o.at) {
		return k.at.After(o.at)
	}
	return k.raw > o.raw
}

// Catalog is an immutable SKU index
type Catalog struct {
	entries map[string]*Entry
}

// New builds a catalog from entries. Later duplicates replace earlier ones.
func New(entries []Entry) *Catalog {
	c := &Catalog{entries: make(map[string]*Entry, len(entries))}
	for i := range entries {
		e := entries[i]
		c.entries[e.ID] = &e
	}
	return c
}

// Load reads a price list file
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Config("open price list", err).WithContext("path", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a price list in the billing API format:
// {"skus":[{"id","name","pricingUnit","pricingVersions":[...]}]}
func Parse(r io.Reader) (*Catalog, error) {
	var doc skuDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Parsing("decode price list", err)
	}

	entries := make([]Entry, 0, len(doc.SKUs))
	for _, s := range doc.SKUs {
		if s.ID == "" {
			continue
		}
		e := Entry{ID: s.ID, Name: s.Name, Unit: s.PricingUnit}
		for _, pv := range s.PricingVersions {
			v := Version{EffectiveTime: pv.EffectiveTime}
			if len(pv.PricingExpressions) > 0 && len(pv.PricingExpressions[0].Rates) > 0 {
				price, err := decimal.NewFromString(pv.PricingExpressions[0].Rates[0].UnitPrice)
				if err != nil {
					return nil, errors.Parsing("unit price of "+s.ID, err)
				}
				v.UnitPrice = price
				v.Priced = true
			}
			e.Versions = append(e.Versions, v)
		}
		entries = append(entries, e)
	}
	return New(entries), nil
}

// PriceOf returns the current unit price of sku, or zero when the SKU is
// unknown or unpriced.
func (c *Catalog) PriceOf(sku string) decimal.Decimal {
	e, ok := c.entries[sku]
	if !ok {
		return decimal.Zero
	}
	v, ok := e.Latest()
	if !ok || !v.Priced {
		return decimal.Zero
	}
	return v.UnitPrice
}

// NameOf returns the display name of sku, or "" when unknown.
func (c *Catalog) NameOf(sku string) string {
	if e, ok := c.entries[sku]; ok {
		return e.Name
	}
	return ""
}

// UnitOf returns the pricing unit of sku, or "" when unknown.
func (c *Catalog) UnitOf(sku string) string {
	if e, ok := c.entries[sku]; ok {
		return e.Unit
	}
	return ""
}

// Has reports whether sku is present
func (c *Catalog) Has(sku string) bool {
	_, ok := c.entries[sku]
	return ok
}

// Len returns the number of SKUs
func (c *Catalog) Len() int {
	return len(c.entries)
}

type skuDocument struct {
	SKUs []struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		PricingUnit     string `json:"pricingUnit"`
		PricingVersions []struct {
			EffectiveTime      string `json:"effectiveTime"`
			PricingExpressions []struct {
				Rates []struct {
					UnitPrice string `json:"unitPrice"`
				} `json:"rates"`
			} `json:"pricingExpressions"`
		} `json:"pricingVersions"`
	} `json:"skus"`
}
