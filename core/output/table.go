package output

import (
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/estimator"
	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/core/ledger"
)

// boxWidth is the outer width of summary boxes
const boxWidth = 75

// TableFormatter draws the report as box tables with grouped numbers
type TableFormatter struct {
	tag language.Tag
}

// TableOption configures a TableFormatter
type TableOption func(*TableFormatter)

// WithLanguage sets the locale used for number grouping
func WithLanguage(tag language.Tag) TableOption {
	return func(f *TableFormatter) { f.tag = tag }
}

// NewTable creates a table formatter
func NewTable(opts ...TableOption) *TableFormatter {
	f := &TableFormatter{tag: language.English}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format returns FormatTable
func (f *TableFormatter) Format() Format { return FormatTable }

// Render writes the report to w
func (f *TableFormatter) Render(w io.Writer, report *estimator.Report) error {
	t := &table{w: w, p: message.NewPrinter(f.tag)}

	switch {
	case report.Comparison != nil:
		c := report.Comparison
		t.comparison(c)
		if c.Current.Usage != nil || c.Planned.Usage != nil {
			t.usage("CURRENT USAGE", c.Current.Usage)
			t.usage("PLANNED USAGE", c.Planned.Usage)
		}
		t.diagnostics(c.Current)
		t.diagnostics(c.Planned)
	case report.Summary != nil:
		s := report.Summary
		t.summary(s)
		if s.Usage != nil {
			t.usage("USAGE", s.Usage)
		}
		t.diagnostics(s)
	}
	return t.err
}

// table accumulates the first write error
type table struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (t *table) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = t.p.Fprintf(t.w, format, args...)
}

func (t *table) rule(left, right string) {
	t.printf("%s%s%s\n", left, strings.Repeat("─", boxWidth-2), right)
}

func (t *table) line(label, value string) {
	t.printf("│ %-46s %24s │\n", truncate(label, 46), value)
}

func (t *table) title(title string) {
	t.rule("┌", "┐")
	t.printf("│ %-71s │\n", title)
	t.rule("├", "┤")
}

func (t *table) summary(s *estimator.Summary) {
	t.title("COST ESTIMATE (" + s.Currency + ")")
	t.line("Hourly", t.money(s.Hourly))
	t.line("Monthly (744 h)", t.money(s.Monthly))
	t.rule("└", "┘")
}

func (t *table) comparison(c *estimator.Comparison) {
	t.title("COST COMPARISON (" + c.Currency + ")")
	t.line("Current hourly", t.money(c.Current.Hourly))
	t.line("Current monthly", t.money(c.Current.Monthly))
	t.line("Planned hourly", t.money(c.Planned.Hourly))
	t.line("Planned monthly", t.money(c.Planned.Monthly))
	t.rule("├", "┤")
	t.line("Difference hourly", t.signed(c.Difference.Hourly))
	t.line("Difference monthly", t.signed(c.Difference.Monthly))
	t.line("Difference", t.signed(c.Difference.Percentage)+"%")
	if !c.HasChanges {
		t.line("No cost changes", "")
	}
	t.rule("└", "┘")
}

func (t *table) usage(title string, rows []ledger.Row) {
	t.printf("\n%s\n", title)
	if len(rows) == 0 {
		t.printf("  (none)\n")
		return
	}
	t.printf("%-32s %-40s %12s %-12s %12s\n", "RESOURCE", "SKU", "AMOUNT", "UNIT", "COST")
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = r.SKU
		}
		t.printf("%-32s %-40s %12s %-12s %12s\n",
			truncate(r.ResourceType+"."+r.ResourceName, 32),
			truncate(name, 40),
			t.amount(r.Amount),
			truncate(r.Unit, 12),
			t.money(r.Cost))
	}
}

func (t *table) diagnostics(s *estimator.Summary) {
	for _, w := range s.Warnings {
		t.printf("warning: %s %s %s: %s\n", w.Resource, w.Attribute, w.Outcome, w.Detail)
	}
	for _, f := range s.Failed {
		t.printf("error: %s: %s\n", f.Resource, f.Error)
	}
	if len(s.Skipped) > 0 {
		t.printf("skipped %d unsupported resources: %s\n", len(s.Skipped), strings.Join(s.Skipped, ", "))
	}
}

func (t *table) money(d decimal.Decimal) string {
	return t.p.Sprintf("%.2f", d.InexactFloat64())
}

func (t *table) signed(d decimal.Decimal) string {
	s := t.money(d)
	if d.IsPositive() {
		return "+" + s
	}
	return s
}

// amount prints whole quantities without a fraction
func (t *table) amount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return t.p.Sprintf("%d", d.IntPart())
	}
	return t.p.Sprintf("%.4f", d.InexactFloat64())
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}
