package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/takeoff-cli/internal/estimate"
	"github.com/sells-group/takeoff-cli/internal/model"
	"github.com/sells-group/takeoff-cli/internal/tree"
)

// newPrinter returns a number-localizing printer. Unknown tags fall back
// to English.
func newPrinter(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// money renders an amount with two decimals and locale grouping. The
// float conversion is display-only.
func money(p *message.Printer, d decimal.Decimal) string {
	return p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

func qty(p *message.Printer, d decimal.Decimal) string {
	f := d.InexactFloat64()
	if d.Equal(d.Truncate(0)) {
		return p.Sprintf("%d", d.IntPart())
	}
	return p.Sprintf("%.3f", f)
}

// formatEstimate writes the category table, totals and warnings.
func formatEstimate(out io.Writer, p *message.Printer, est *estimate.Estimate) {
	md := est.Metadata
	_, _ = fmt.Fprintf(out, "Documents:   %d\n", len(md.Documents))
	_, _ = fmt.Fprintf(out, "Project:     %s\n", md.ProjectType)
	_, _ = fmt.Fprintf(out, "Generated:   %s\n", md.GeneratedAt.Format("2006-01-02 15:04"))
	_, _ = fmt.Fprintf(out, "Valid until: %s\n\n", md.ValidUntil.Format("2006-01-02"))

	mats := tree.CategoryTotals(est.Materials)
	labor := tree.CategoryTotals(est.Labor)
	categories := make([]string, 0, len(mats))
	for k := range mats {
		categories = append(categories, k)
	}
	for k := range labor {
		if _, ok := mats[k]; !ok {
			categories = append(categories, k)
		}
	}
	sort.Strings(categories)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintf(w, "CATEGORY\tMATERIALS\tLABOR\tTOTAL\t\n")
	for _, c := range categories {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			c, money(p, mats[c]), money(p, labor[c]), money(p, mats[c].Add(labor[c])))
	}
	_ = w.Flush()
	_, _ = fmt.Fprintln(out)

	formatTotals(out, p, est.Totals, md.Currency)

	if len(est.Warnings) > 0 {
		_, _ = fmt.Fprintln(out)
		formatWarnings(out, est.Warnings)
	}
}

func formatTotals(out io.Writer, p *message.Printer, t model.ProjectTotals, currency string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := []struct {
		label string
		v     decimal.Decimal
	}{
		{"Materials", t.Materials},
		{"Labor", t.Labor},
		{"Overhead", t.Overhead},
		{"Discounts", t.Discounts.Neg()},
		{"Before tax", t.BeforeTax},
		{"Tax", t.Tax},
		{"After tax", t.AfterTax},
		{"Final price", t.FinalPrice},
	}
	for _, r := range rows {
		_, _ = fmt.Fprintf(w, "%s:\t%s\t%s\t\n", r.label, money(p, r.v), currency)
	}
	_ = w.Flush()
}

// formatWarnings lists warnings most severe first.
func formatWarnings(out io.Writer, ws []model.Warning) {
	sorted := append([]model.Warning(nil), ws...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity.Rank() < sorted[j].Severity.Rank()
	})

	_, _ = fmt.Fprintf(out, "Warnings (%d):\n", len(sorted))
	for _, wn := range sorted {
		where := wn.Document
		if wn.Location != "" {
			where += " / " + wn.Location
		}
		_, _ = fmt.Fprintf(out, "  [%s] %s: %s\n", wn.Severity, where, wn.Message)
		if wn.Recommendation != "" {
			_, _ = fmt.Fprintf(out, "      -> %s\n", wn.Recommendation)
		}
	}
}

// formatLines writes line items as a table.
func formatLines(out io.Writer, p *message.Printer, lines []model.LineItem) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tPATH\tQTY\tUNIT\tUNIT PRICE\tPRICE")
	_, _ = fmt.Fprintln(w, "----\t----\t---\t----\t----------\t-----")
	for _, l := range lines {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.Kind, l.Path, qty(p, l.Quantity), l.Unit, money(p, l.UnitPrice), money(p, l.Price))
	}
	_ = w.Flush()
}
