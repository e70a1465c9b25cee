package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockbook/internal/domain/models"
	"github.com/mamadbah2/stockbook/internal/service/ledger"
	"github.com/mamadbah2/stockbook/internal/service/reporting"
)

// stubInventory returns err from every mutation.
type stubInventory struct {
	err error
}

func (s stubInventory) AddProduct(name string, price decimal.Decimal, stock int) (models.Product, error) {
	return models.Product{Name: name, Price: price, Stock: stock}, s.err
}

func (s stubInventory) EditProduct(name string, price decimal.Decimal, stock int) (models.Product, error) {
	return models.Product{Name: name, Price: price, Stock: stock}, s.err
}

func (s stubInventory) DeleteProduct(name string) (models.Product, error) {
	return models.Product{Name: name}, s.err
}

func (s stubInventory) RecordSale(name string, quantity int, date models.Date) (models.Transaction, error) {
	return models.Transaction{Product: name, Quantity: quantity, Date: date}, s.err
}

func (stubInventory) Product(string) (models.Product, bool) { return models.Product{}, false }
func (stubInventory) Products() []models.Product           { return nil }
func (stubInventory) Transactions() []models.Transaction {
	return []models.Transaction{{Date: models.Today(), Product: "A", Quantity: 1, Total: decimal.NewFromInt(5)}}
}

func (stubInventory) Search(mode ledger.SearchMode, _ string) (ledger.SearchResult, error) {
	return ledger.SearchResult{Mode: mode}, nil
}

type recordingMessenger struct {
	to      string
	reports []models.Report
	err     error
}

func (m *recordingMessenger) SendReport(_ context.Context, to string, report models.Report) error {
	m.to = to
	m.reports = append(m.reports, report)
	return m.err
}

type stubArchive struct {
	reports []models.ArchivedReport
	limit   int64
}

func (a *stubArchive) LatestReports(_ context.Context, limit int64) ([]models.ArchivedReport, error) {
	a.limit = limit
	return a.reports, nil
}

func newEngine(h *InventoryHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/products", h.CreateProduct)
	r.DELETE("/products/:name", h.DeleteProduct)
	r.POST("/summary/send", h.SendSummary)
	r.GET("/summary/archive", h.ArchivedReports)
	return r
}

func call(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLogWriteFailureStillSucceedsWithWarning(t *testing.T) {
	inv := stubInventory{err: &models.LogWriteError{Action: "x", Err: errors.New("disk full")}}
	r := newEngine(NewInventoryHandler(inv, reporting.NewService(inv, "USD", nil), nil, nil, nil))

	rec := call(t, r, http.MethodPost, "/products", map[string]any{"name": "A", "price": "1", "stock": 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["warning"], "activity log")
	assert.Equal(t, "A", body["result"].(map[string]any)["name"])
}

func TestPersistenceFailureIsInternalError(t *testing.T) {
	inv := stubInventory{err: &models.IOError{Op: "rename", Path: "products.json", Err: errors.New("read-only")}}
	r := newEngine(NewInventoryHandler(inv, reporting.NewService(inv, "USD", nil), nil, nil, nil))

	rec := call(t, r, http.MethodDelete, "/products/A", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "read-only")
}

func TestSendSummaryDefaultsToToday(t *testing.T) {
	inv := stubInventory{}
	messenger := &recordingMessenger{}
	r := newEngine(NewInventoryHandler(inv, reporting.NewService(inv, "USD", nil), messenger, nil, nil))

	rec := call(t, r, http.MethodPost, "/summary/send", map[string]any{"to": "62811"})
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	require.Len(t, messenger.reports, 1)
	assert.Equal(t, "62811", messenger.to)
	assert.Equal(t, models.Today(), messenger.reports[0].Start)
	assert.Equal(t, 1, messenger.reports[0].Count)

	rec = call(t, r, http.MethodPost, "/summary/send", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	messenger.err = errors.New("api down")
	rec = call(t, r, http.MethodPost, "/summary/send", map[string]any{"to": "62811"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestArchivedReports(t *testing.T) {
	inv := stubInventory{}
	archive := &stubArchive{reports: []models.ArchivedReport{{Start: "2024-01-01", End: "2024-01-01", Count: 2, Total: "10"}}}
	r := newEngine(NewInventoryHandler(inv, reporting.NewService(inv, "USD", nil), nil, archive, nil))

	rec := call(t, r, http.MethodGet, "/summary/archive", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":"10"`)
	assert.Equal(t, int64(30), archive.limit)

	rec = call(t, r, http.MethodGet, "/summary/archive?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), archive.limit)
}

func TestArchivedReportsRejectsBadLimit(t *testing.T) {
	inv := stubInventory{}
	archive := &stubArchive{}
	r := newEngine(NewInventoryHandler(inv, reporting.NewService(inv, "USD", nil), nil, archive, nil))

	for _, limit := range []string{"0", "-3", "ten"} {
		rec := call(t, r, http.MethodGet, "/summary/archive?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
		assert.Contains(t, rec.Body.String(), "limit", limit)
	}
	assert.Zero(t, archive.limit)
}
