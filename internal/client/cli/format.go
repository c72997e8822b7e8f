package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/message"

	"github.com/dmitrijs2005/tailorhub/internal/common"
)

const currencySymbol = "₹"

func formatAmount(p *message.Printer, v float64) string {
	return currencySymbol + p.Sprintf("%.2f", v)
}

func (a *App) amount(v float64) string {
	return formatAmount(a.printer, v)
}

// table renders rows with aligned columns and prints them through printlnFn.
func table(header []string, rows [][]string) {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	_ = w.Flush()
	printlnFn(strings.TrimRight(b.String(), "\n"))
}

func stars(rating float64) string {
	return fmt.Sprintf("%.1f★", rating)
}

func orDash(s string) string {
	if common.Blank(s) {
		return "-"
	}
	return s
}
