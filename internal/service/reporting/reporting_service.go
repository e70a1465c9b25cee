package reporting

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

const ruleWidth = 50

// TransactionSource exposes the recorded sales to report on.
type TransactionSource interface {
	Transactions() []models.Transaction
}

// Service builds sales summaries over date ranges.
type Service struct {
	source   TransactionSource
	currency string
	logger   *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(source TransactionSource, currency string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, currency: currency, logger: logger}
}

// Currency returns the ISO code amounts are formatted with.
func (s *Service) Currency() string { return s.currency }

// Summarize aggregates the source's transactions between start and end inclusive.
func (s *Service) Summarize(start, end models.Date) (models.Report, error) {
	report, err := Summarize(s.source.Transactions(), start, end)
	if err != nil {
		return models.Report{}, err
	}
	s.logger.Debug("summary generated",
		zap.Stringer("start", start),
		zap.Stringer("end", end),
		zap.Int("transactions", report.Count))
	return report, nil
}

// Daily summarizes a single day.
func (s *Service) Daily(day models.Date) (models.Report, error) {
	return s.Summarize(day, day)
}

// Summarize filters transactions to start <= date <= end and aggregates the
// count, the total amount and per-product totals in first-seen order.
func Summarize(transactions []models.Transaction, start, end models.Date) (models.Report, error) {
	if start.After(end) {
		return models.Report{}, models.Invalid("start", "start date %s cannot be later than end date %s", start, end)
	}

	report := models.Report{
		Start:    start,
		End:      end,
		Total:    decimal.Zero,
		Products: []models.ProductSummary{},
	}
	index := make(map[string]int)

	for _, tx := range transactions {
		if !tx.Date.Between(start, end) {
			continue
		}

		report.Count++
		report.Total = report.Total.Add(tx.Total)

		i, seen := index[tx.Product]
		if !seen {
			i = len(report.Products)
			index[tx.Product] = i
			report.Products = append(report.Products, models.ProductSummary{Product: tx.Product, Total: decimal.Zero})
		}
		report.Products[i].Quantity += tx.Quantity
		report.Products[i].Total = report.Products[i].Total.Add(tx.Total)
	}

	return report, nil
}

// FormatText renders report as the plain-text summary shown to shop staff.
func (s *Service) FormatText(report models.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Summary Report (%s to %s)\n", report.Start, report.End)
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n\n")

	fmt.Fprintf(&b, "Total Transactions: %d\n", report.Count)
	fmt.Fprintf(&b, "Total Amount: %s\n\n", FormatAmount(report.Total, s.currency))

	b.WriteString("Product-wise Summary:\n")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	for _, p := range report.Products {
		fmt.Fprintf(&b, "\nProduct: %s\n", p.Product)
		fmt.Fprintf(&b, "Total Quantity Sold: %d\n", p.Quantity)
		fmt.Fprintf(&b, "Total Amount: %s\n", FormatAmount(p.Total, s.currency))
	}

	return b.String()
}
