// Package plan decodes `terraform show -json` plan documents into the flat
// resource lists the estimator walks.
package plan

import (
	"encoding/json"
	"io"
	"os"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

// Document is the subset of the Terraform JSON plan format the estimator
// reads.
type Document struct {
	// FormatVersion is the plan format version
	FormatVersion string `json:"format_version"`

	// TerraformVersion is the Terraform version
	TerraformVersion string `json:"terraform_version"`

	// PlannedValues contains planned values
	PlannedValues *StateValues `json:"planned_values,omitempty"`

	// PriorState is the state before the plan
	PriorState *State `json:"prior_state,omitempty"`
}

// State represents Terraform state
type State struct {
	FormatVersion    string       `json:"format_version"`
	TerraformVersion string       `json:"terraform_version"`
	Values           *StateValues `json:"values,omitempty"`
}

// StateValues wraps the root module
type StateValues struct {
	RootModule Module `json:"root_module"`
}

// Module is a module with resources and nested modules
type Module struct {
	Address      string           `json:"address,omitempty"`
	Resources    []ResourceValues `json:"resources,omitempty"`
	ChildModules []Module         `json:"child_modules,omitempty"`
}

// ResourceValues is a resource as it appears in the plan
type ResourceValues struct {
	Address      string                 `json:"address"`
	Mode         string                 `json:"mode"`
	Type         string                 `json:"type"`
	Name         string                 `json:"name"`
	Index        interface{}            `json:"index,omitempty"`
	ProviderName string                 `json:"provider_name"`
	Values       map[string]interface{} `json:"values"`
}

// Resource is a declared managed resource ready for rule dispatch
type Resource struct {
	Address string
	Type    string
	Name    string
	Values  Values
}

// NewResource builds a Resource from a raw values map
func NewResource(resourceType, name string, values map[string]interface{}) Resource {
	return Resource{
		Address: resourceType + "." + name,
		Type:    resourceType,
		Name:    name,
		Values:  NewValues(values),
	}
}

// Load reads and decodes a plan file
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "open plan", err).WithContext("path", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes a plan document
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Parsing("decode plan", err)
	}
	return &doc, nil
}

// HasPrior reports whether the plan carries a prior state
func (d *Document) HasPrior() bool {
	return d.PriorState != nil && d.PriorState.Values != nil
}

// Planned returns the planned resources, child modules flattened depth first
func (d *Document) Planned() []Resource {
	if d.PlannedValues == nil {
		return nil
	}
	return d.PlannedValues.RootModule.Flatten()
}

// Prior returns the resources of the prior state
func (d *Document) Prior() []Resource {
	if !d.HasPrior() {
		return nil
	}
	return d.PriorState.Values.RootModule.Flatten()
}

// Flatten lists the managed resources of m and its child modules.
// Data sources are skipped.
func (m *Module) Flatten() []Resource {
	var out []Resource
	m.flatten(&out)
	return out
}

func (m *Module) flatten(out *[]Resource) {
	for _, rv := range m.Resources {
		if rv.Mode == "data" {
			continue
		}
		address := rv.Address
		if address == "" {
			address = rv.Type + "." + rv.Name
		}
		*out = append(*out, Resource{
			Address: address,
			Type:    rv.Type,
			Name:    rv.Name,
			Values:  NewValues(rv.Values),
		})
	}
	for i := range m.ChildModules {
		m.ChildModules[i].flatten(out)
	}
}
