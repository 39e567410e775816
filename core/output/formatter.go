// Package output renders estimation reports for humans and machines.
package output

import (
	"io"
	"sort"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/estimator"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is a human-readable box table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the report to w
	Render(w io.Writer, report *estimator.Report) error
}

// Registry maps formats to formatters
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding formatters
func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	for _, f := range formatters {
		r.Register(f)
	}
	return r
}

// Default returns a registry with the table and JSON formatters
func Default() *Registry {
	return NewRegistry(NewTable(), NewJSON())
}

// Register adds or replaces a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for format
func (r *Registry) Get(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotSupported("output format " + string(format)).
			WithContext("available", r.Formats())
	}
	return f, nil
}

// Formats lists the registered formats in sorted order
func (r *Registry) Formats() []Format {
	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
