package ledger

import (
	"strings"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

// SearchMode selects which collection Search filters.
type SearchMode string

const (
	SearchProducts     SearchMode = "product"
	SearchTransactions SearchMode = "transaction"
)

// ParseSearchMode accepts "product(s)" or "transaction(s)", case-insensitively.
func ParseSearchMode(value string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "product", "products", "":
		return SearchProducts, nil
	case "transaction", "transactions", "sale", "sales":
		return SearchTransactions, nil
	default:
		return "", models.Invalid("mode", "unknown search mode %q, want product or transaction", value)
	}
}

// SearchResult holds the matches of a Search. Only the slice matching Mode is set.
type SearchResult struct {
	Mode         SearchMode           `json:"mode"`
	Products     []models.Product     `json:"products,omitempty"`
	Transactions []models.Transaction `json:"transactions,omitempty"`
}

// Search filters products or transactions whose product name contains keyword,
// ignoring case. An empty keyword matches everything.
func (l *Ledger) Search(mode SearchMode, keyword string) (SearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(keyword))

	switch mode {
	case SearchProducts:
		matches := []models.Product{}
		for _, p := range l.Products() {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				matches = append(matches, p)
			}
		}
		return SearchResult{Mode: mode, Products: matches}, nil
	case SearchTransactions:
		matches := []models.Transaction{}
		for _, tx := range l.Transactions() {
			if strings.Contains(strings.ToLower(tx.Product), needle) {
				matches = append(matches, tx)
			}
		}
		return SearchResult{Mode: mode, Transactions: matches}, nil
	default:
		return SearchResult{}, models.Invalid("mode", "unknown search mode %q", mode)
	}
}
