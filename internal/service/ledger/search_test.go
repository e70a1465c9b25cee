package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

func TestSearch(t *testing.T) {
	l, _, _ := newTestLedger(t)
	for _, name := range []string{"Green Tea", "Black Tea", "Coffee"} {
		_, err := l.AddProduct(name, dec("2"), 10)
		require.NoError(t, err)
	}
	_, err := l.RecordSale("Green Tea", 1, models.NewDate(2024, 1, 1))
	require.NoError(t, err)
	_, err = l.RecordSale("Coffee", 2, models.NewDate(2024, 1, 2))
	require.NoError(t, err)

	res, err := l.Search(SearchProducts, "TEA")
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Equal(t, "Black Tea", res.Products[0].Name)
	assert.Nil(t, res.Transactions)

	res, err = l.Search(SearchTransactions, "cof")
	require.NoError(t, err)
	require.Len(t, res.Transactions, 1)
	assert.Equal(t, "Coffee", res.Transactions[0].Product)

	res, err = l.Search(SearchProducts, "")
	require.NoError(t, err)
	assert.Len(t, res.Products, 3)

	res, err = l.Search(SearchProducts, "juice")
	require.NoError(t, err)
	assert.Empty(t, res.Products)

	_, err = l.Search(SearchMode("stock"), "tea")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestParseSearchMode(t *testing.T) {
	for in, want := range map[string]SearchMode{
		"product":      SearchProducts,
		"Products":     SearchProducts,
		"":             SearchProducts,
		"transaction":  SearchTransactions,
		" SALES ":      SearchTransactions,
		"transactions": SearchTransactions,
	} {
		got, err := ParseSearchMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSearchMode("customers")
	assert.ErrorIs(t, err, models.ErrValidation)
}
