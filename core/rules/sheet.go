package rules

import (
	"fmt"
)

// anyFraction keys a CPU SKU that applies to every core fraction
const anyFraction = 0

// Tier selects a row of a price sheet
type Tier struct {
	Platform     string
	CoreFraction int
	Preemptible  bool
}

func (t Tier) String() string {
	s := fmt.Sprintf("%s/%d%%", t.Platform, t.CoreFraction)
	if t.Preemptible {
		s += "/preemptible"
	}
	return s
}

// fractions maps a core fraction to a CPU SKU
type fractions map[int]string

// platformSKUs lists the SKUs of one platform tier
type platformSKUs struct {
	CPU fractions
	RAM string
	GPU string
}

// priceSheet is the declarative SKU table of one service.
type priceSheet struct {
	service     string
	regular     map[string]platformSKUs
	preemptible map[string]platformSKUs

	// unpriced lists platforms that exist but have no published price
	unpriced map[string]bool
}

func (s *priceSheet) row(t Tier) (platformSKUs, Outcome, bool) {
	if s.unpriced[t.Platform] {
		return platformSKUs{}, Unpriced, false
	}
	rows := s.regular
	if t.Preemptible {
		rows = s.preemptible
	}
	p, ok := rows[t.Platform]
	if !ok {
		return platformSKUs{}, Unmapped, false
	}
	return p, "", true
}

// CPU returns the core SKU for t
func (s *priceSheet) CPU(t Tier) (string, Outcome) {
	p, outcome, ok := s.row(t)
	if !ok {
		return "", outcome
	}
	if sku, ok := p.CPU[t.CoreFraction]; ok {
		return sku, ""
	}
	if sku, ok := p.CPU[anyFraction]; ok {
		return sku, ""
	}
	return "", Unmapped
}

// RAM returns the memory SKU for t
func (s *priceSheet) RAM(t Tier) (string, Outcome) {
	p, outcome, ok := s.row(t)
	if !ok {
		return "", outcome
	}
	if p.RAM == "" {
		return "", Unmapped
	}
	return p.RAM, ""
}

// GPU returns the accelerator SKU for t
func (s *priceSheet) GPU(t Tier) (string, Outcome) {
	p, outcome, ok := s.row(t)
	if !ok {
		return "", outcome
	}
	if p.GPU == "" {
		return "", Unmapped
	}
	return p.GPU, ""
}

// diskSheet maps a disk type to its storage SKU
type diskSheet struct {
	service string
	types   map[string]string
}

// SKU returns the storage SKU for diskType
func (d *diskSheet) SKU(diskType string) (string, bool) {
	sku, ok := d.types[diskType]
	return sku, ok
}

// shape is the per-instance compute footprint of a resource or role
type shape struct {
	Tier   Tier
	Cores  float64
	Memory float64
	GPUs   float64
}

// compute records cores, memory and GPUs of count instances of sh.
func (u *usage) compute(sheet *priceSheet, sh shape, count float64) {
	if sku, outcome := sheet.CPU(sh.Tier); outcome == "" {
		u.add(sku, sh.Cores*count)
	} else if sh.Cores > 0 {
		u.warn("cpu", outcome, fmt.Sprintf("%s cpu %s", sheet.service, sh.Tier))
	}

	if sku, outcome := sheet.RAM(sh.Tier); outcome == "" {
		u.add(sku, sh.Memory*count)
	} else if sh.Memory > 0 {
		u.warn("ram", outcome, fmt.Sprintf("%s ram %s", sheet.service, sh.Tier))
	}

	if sh.GPUs > 0 {
		if sku, outcome := sheet.GPU(sh.Tier); outcome == "" {
			u.add(sku, sh.GPUs*count)
		} else {
			u.warn("gpu", outcome, fmt.Sprintf("%s gpu %s", sheet.service, sh.Tier))
		}
	}
}

// storage records size GB of diskType for count instances.
func (u *usage) storage(sheet *diskSheet, diskType string, size, count float64) {
	if size <= 0 {
		return
	}
	sku, ok := sheet.SKU(diskType)
	if !ok {
		u.warn("disk", Unmapped, fmt.Sprintf("%s disk type %q", sheet.service, diskType))
		return
	}
	u.add(sku, size*count)
}

// publicIPs records n public addresses
func (u *usage) publicIPs(n float64) {
	if n > 0 {
		u.add(PublicIPSKU, n)
	}
}
