package sheets

import (
	"context"
	"fmt"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

const (
	summaryWriteRange = "Summary!A:D"
	productWriteRange = "ProductSummary!A:E"
)

// SummaryExporter appends each published report to the spreadsheet: one row
// on the Summary sheet and one row per product on the ProductSummary sheet.
// Amounts are written as decimal strings so the sheet parses them exactly.
type SummaryExporter struct {
	repo Repository
}

// NewSummaryExporter wraps repo.
func NewSummaryExporter(repo Repository) *SummaryExporter {
	return &SummaryExporter{repo: repo}
}

// Name identifies this exporter as a report publisher.
func (e *SummaryExporter) Name() string { return "sheets" }

// Publish writes report rows.
func (e *SummaryExporter) Publish(ctx context.Context, report models.Report) error {
	period := fmt.Sprintf("%s..%s", report.Start, report.End)

	start, end := report.Start.String(), report.End.String()

	summary := [][]interface{}{{start, end, report.Count, report.Total.String()}}
	if err := e.repo.AppendRows(ctx, summaryWriteRange, summary); err != nil {
		return fmt.Errorf("export summary %s: %w", period, err)
	}

	products := make([][]interface{}, 0, len(report.Products))
	for _, p := range report.Products {
		products = append(products, []interface{}{start, end, p.Product, p.Quantity, p.Total.String()})
	}
	if err := e.repo.AppendRows(ctx, productWriteRange, products); err != nil {
		return fmt.Errorf("export product summary %s: %w", period, err)
	}
	return nil
}
