package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbook/internal/domain/models"
	"github.com/mamadbah2/stockbook/internal/service/ledger"
)

// Inventory is the ledger surface the HTTP layer drives.
type Inventory interface {
	AddProduct(name string, price decimal.Decimal, stock int) (models.Product, error)
	EditProduct(name string, price decimal.Decimal, stock int) (models.Product, error)
	DeleteProduct(name string) (models.Product, error)
	RecordSale(name string, quantity int, date models.Date) (models.Transaction, error)
	Product(name string) (models.Product, bool)
	Products() []models.Product
	Transactions() []models.Transaction
	Search(mode ledger.SearchMode, keyword string) (ledger.SearchResult, error)
}

// Reports builds and renders summaries.
type Reports interface {
	Summarize(start, end models.Date) (models.Report, error)
	FormatText(report models.Report) string
}

// Messenger delivers reports to chat recipients.
type Messenger interface {
	SendReport(ctx context.Context, to string, report models.Report) error
}

// Archive lists previously archived reports.
type Archive interface {
	LatestReports(ctx context.Context, limit int64) ([]models.ArchivedReport, error)
}

// InventoryHandler adapts the ledger and the reporting service to HTTP.
type InventoryHandler struct {
	inventory Inventory
	reports   Reports
	messenger Messenger
	archive   Archive
	logger    *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter. messenger and
// archive are optional.
func NewInventoryHandler(inventory Inventory, reports Reports, messenger Messenger, archive Archive, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{
		inventory: inventory,
		reports:   reports,
		messenger: messenger,
		archive:   archive,
		logger:    logger,
	}
}

type productRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock"`
}

type saleRequest struct {
	Product  string      `json:"product"`
	Quantity int         `json:"quantity"`
	Date     models.Date `json:"date"`
}

type sendSummaryRequest struct {
	To    string      `json:"to" binding:"required"`
	Start models.Date `json:"start"`
	End   models.Date `json:"end"`
}

// ListProducts returns all products sorted by name.
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.inventory.Products()})
}

// GetProduct returns a single product.
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	name := c.Param("name")
	p, ok := h.inventory.Product(name)
	if !ok {
		h.fail(c, &models.NotFoundError{Name: name})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProduct adds a product.
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Stock == nil {
		h.fail(c, models.Invalid("stock", "stock is required"))
		return
	}

	p, err := h.inventory.AddProduct(req.Name, req.Price, *req.Stock)
	h.respond(c, http.StatusCreated, p, err)
}

// UpdateProduct replaces price and stock of an existing product.
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Stock == nil {
		h.fail(c, models.Invalid("stock", "stock is required"))
		return
	}

	p, err := h.inventory.EditProduct(c.Param("name"), req.Price, *req.Stock)
	h.respond(c, http.StatusOK, p, err)
}

// DeleteProduct removes a product.
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	p, err := h.inventory.DeleteProduct(c.Param("name"))
	h.respond(c, http.StatusOK, p, err)
}

// ListSales returns every recorded transaction.
func (h *InventoryHandler) ListSales(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transactions": h.inventory.Transactions()})
}

// RecordSale sells stock. A missing date means today.
func (h *InventoryHandler) RecordSale(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	tx, err := h.inventory.RecordSale(req.Product, req.Quantity, req.Date)
	h.respond(c, http.StatusCreated, tx, err)
}

// Search filters products or transactions by product name.
func (h *InventoryHandler) Search(c *gin.Context) {
	mode, err := ledger.ParseSearchMode(c.Query("mode"))
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.inventory.Search(mode, c.Query("q"))
	h.respond(c, http.StatusOK, res, err)
}

// Summary aggregates sales between start and end. Both default to today;
// format=text returns the plain-text report.
func (h *InventoryHandler) Summary(c *gin.Context) {
	report, ok := h.summarize(c, c.Query("start"), c.Query("end"))
	if !ok {
		return
	}

	if strings.EqualFold(c.Query("format"), "text") {
		c.String(http.StatusOK, h.reports.FormatText(report))
		return
	}
	c.JSON(http.StatusOK, report)
}

// SendSummary delivers a summary to a WhatsApp recipient.
func (h *InventoryHandler) SendSummary(c *gin.Context) {
	if h.messenger == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report delivery is not configured"})
		return
	}

	var req sendSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	start, end := req.Start, req.End
	if start.IsZero() {
		start = models.Today()
	}
	if end.IsZero() {
		end = start
	}
	report, err := h.reports.Summarize(start, end)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.messenger.SendReport(c.Request.Context(), req.To, report); err != nil {
		h.logger.Error("failed sending summary", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.Status(http.StatusAccepted)
}

const defaultArchiveLimit = 30

// ArchivedReports lists the most recent archived summaries.
func (h *InventoryHandler) ArchivedReports(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report archive is not configured"})
		return
	}

	limitValue := c.DefaultQuery("limit", strconv.Itoa(defaultArchiveLimit))
	limit, err := strconv.ParseInt(limitValue, 10, 64)
	if err != nil || limit <= 0 {
		h.fail(c, models.Invalid("limit", "limit must be a positive integer, got %q", limitValue))
		return
	}

	reports, err := h.archive.LatestReports(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed listing archived reports", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to read archive"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func (h *InventoryHandler) summarize(c *gin.Context, startValue, endValue string) (models.Report, bool) {
	start := models.Today()
	if startValue != "" {
		parsed, err := models.ParseDate(startValue)
		if err != nil {
			h.fail(c, models.Invalid("start", "%v", err))
			return models.Report{}, false
		}
		start = parsed
	}

	end := start
	if endValue != "" {
		parsed, err := models.ParseDate(endValue)
		if err != nil {
			h.fail(c, models.Invalid("end", "%v", err))
			return models.Report{}, false
		}
		end = parsed
	}

	report, err := h.reports.Summarize(start, end)
	if err != nil {
		h.fail(c, err)
		return models.Report{}, false
	}
	return report, true
}

// respond writes body with status on success. A LogWriteError still counts as
// success because the change was saved; the client gets a warning instead.
func (h *InventoryHandler) respond(c *gin.Context, status int, body any, err error) {
	if err == nil {
		c.JSON(status, body)
		return
	}
	if errors.Is(err, models.ErrLogWrite) {
		h.logger.Warn("mutation committed without activity log entry", zap.Error(err))
		c.JSON(status, gin.H{"result": body, "warning": err.Error()})
		return
	}
	h.fail(c, err)
}

func (h *InventoryHandler) badRequest(c *gin.Context, err error) {
	h.logger.Warn("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

func (h *InventoryHandler) fail(c *gin.Context, err error) {
	var short *models.InsufficientStockError
	switch {
	case errors.As(err, &short):
		c.JSON(http.StatusConflict, gin.H{
			"error":     err.Error(),
			"requested": short.Requested,
			"available": short.Available,
		})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("inventory operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
