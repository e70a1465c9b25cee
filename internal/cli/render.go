package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockbook/internal/domain/models"
	"github.com/mamadbah2/stockbook/internal/service/reporting"
)

func (a *App) amount(v decimal.Decimal) string {
	return reporting.FormatAmount(v, a.Currency)
}

func productsMarkdown(products []models.Product, currency string) string {
	var b strings.Builder
	b.WriteString("# Products\n\n")
	if len(products) == 0 {
		b.WriteString("No products found.\n")
		return b.String()
	}
	b.WriteString("| Name | Price | Stock |\n")
	b.WriteString("|:---|---:|---:|\n")
	for _, p := range products {
		fmt.Fprintf(&b, "| %s | %s | %d |\n", cell(p.Name), reporting.FormatAmount(p.Price, currency), p.Stock)
	}
	return b.String()
}

func transactionsMarkdown(transactions []models.Transaction, currency string) string {
	var b strings.Builder
	b.WriteString("# Sales\n\n")
	if len(transactions) == 0 {
		b.WriteString("No transactions found.\n")
		return b.String()
	}
	b.WriteString("| Date | Product | Quantity | Total |\n")
	b.WriteString("|:---|:---|---:|---:|\n")
	for _, tx := range transactions {
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", tx.Date, cell(tx.Product), tx.Quantity, reporting.FormatAmount(tx.Total, currency))
	}
	return b.String()
}

func reportMarkdown(report models.Report, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Summary %s to %s\n\n", report.Start, report.End)
	fmt.Fprintf(&b, "- **Transactions:** %d\n", report.Count)
	fmt.Fprintf(&b, "- **Total amount:** %s\n\n", reporting.FormatAmount(report.Total, currency))
	if len(report.Products) == 0 {
		return b.String()
	}
	b.WriteString("| Product | Quantity | Total |\n")
	b.WriteString("|:---|---:|---:|\n")
	for _, p := range report.Products {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", cell(p.Product), p.Quantity, reporting.FormatAmount(p.Total, currency))
	}
	return b.String()
}

// cell escapes the table separator in user supplied names.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
