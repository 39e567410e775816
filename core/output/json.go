package output

import (
	"encoding/json"
	"io"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/estimator"
)

// JSONFormatter writes the report as indented JSON
type JSONFormatter struct {
	indent string
}

// NewJSON creates a JSON formatter indenting with four spaces
func NewJSON() *JSONFormatter {
	return &JSONFormatter{indent: "    "}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

// Render writes the report to w
func (f *JSONFormatter) Render(w io.Writer, report *estimator.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.indent)
	return enc.Encode(report)
}
