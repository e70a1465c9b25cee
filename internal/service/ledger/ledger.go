package ledger

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

// Store loads and saves the full inventory state.
type Store interface {
	Load() (models.Snapshot, error)
	Save(snap models.Snapshot) error
}

// Journal records one line per successful mutation.
type Journal interface {
	Append(action string) error
}

// Ledger is the authoritative in-memory owner of products and transactions.
// Every successful mutation saves the whole state once and appends one
// journal line before returning. A failed mutation changes nothing.
type Ledger struct {
	mu           sync.RWMutex
	products     map[string]models.Product
	transactions []models.Transaction

	store   Store
	journal Journal
	logger  *zap.Logger
	today   func() models.Date
}

// New builds a Ledger and loads its initial state from store.
func New(store Store, journal Journal, logger *zap.Logger) (*Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	snap, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	if snap.Products == nil {
		snap.Products = make(map[string]models.Product)
	}

	logger.Info("inventory loaded",
		zap.Int("products", len(snap.Products)),
		zap.Int("transactions", len(snap.Transactions)))

	return &Ledger{
		products:     snap.Products,
		transactions: snap.Transactions,
		store:        store,
		journal:      journal,
		logger:       logger,
		today:        models.Today,
	}, nil
}

// AddProduct registers a new product. Names that already exist are rejected.
func (l *Ledger) AddProduct(name string, price decimal.Decimal, stock int) (models.Product, error) {
	name = normalizeName(name)
	if name == "" {
		return models.Product{}, models.Invalid("name", "product name is required")
	}
	if err := validatePriceAndStock(price, stock); err != nil {
		return models.Product{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.products[name]; exists {
		return models.Product{}, models.Invalid("name", "product %q already exists", name)
	}

	product := models.Product{Name: name, Price: price, Stock: stock}
	next := l.cloneProducts()
	next[name] = product

	action := fmt.Sprintf("Added product: %s (Price: %s, Stock: %d)", name, price, stock)
	if err := l.commit(next, l.transactions, action); err != nil {
		return product, err
	}
	return product, nil
}

// EditProduct replaces the price and stock of an existing product.
func (l *Ledger) EditProduct(name string, price decimal.Decimal, stock int) (models.Product, error) {
	name = normalizeName(name)
	if err := validatePriceAndStock(price, stock); err != nil {
		return models.Product{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	old, ok := l.products[name]
	if !ok {
		return models.Product{}, &models.NotFoundError{Name: name}
	}

	product := models.Product{Name: name, Price: price, Stock: stock}
	next := l.cloneProducts()
	next[name] = product

	action := fmt.Sprintf("Edited product: %s (Price: %s -> %s, Stock: %d -> %d)", name, old.Price, price, old.Stock, stock)
	if err := l.commit(next, l.transactions, action); err != nil {
		return product, err
	}
	return product, nil
}

// DeleteProduct removes a product. Past transactions naming it are kept.
func (l *Ledger) DeleteProduct(name string) (models.Product, error) {
	name = normalizeName(name)
	l.mu.Lock()
	defer l.mu.Unlock()

	old, ok := l.products[name]
	if !ok {
		return models.Product{}, &models.NotFoundError{Name: name}
	}

	next := l.cloneProducts()
	delete(next, name)

	action := fmt.Sprintf("Deleted product: %s (Price: %s, Stock: %d)", name, old.Price, old.Stock)
	if err := l.commit(next, l.transactions, action); err != nil {
		return old, err
	}
	return old, nil
}

// RecordSale sells quantity units of a product on date (today when zero).
// The stock decrement and the transaction append happen together or not at all.
func (l *Ledger) RecordSale(name string, quantity int, date models.Date) (models.Transaction, error) {
	name = normalizeName(name)
	if quantity <= 0 {
		return models.Transaction{}, models.Invalid("quantity", "quantity must be positive, got %d", quantity)
	}
	if date.IsZero() {
		date = l.today()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	product, ok := l.products[name]
	if !ok {
		return models.Transaction{}, models.Invalid("product", "unknown product %q", name)
	}
	if quantity > product.Stock {
		return models.Transaction{}, &models.InsufficientStockError{
			Product:   name,
			Requested: quantity,
			Available: product.Stock,
		}
	}

	tx := models.Transaction{
		Date:     date,
		Product:  name,
		Quantity: quantity,
		Total:    product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}

	updated := product
	updated.Stock -= quantity
	nextProducts := l.cloneProducts()
	nextProducts[name] = updated

	nextTransactions := make([]models.Transaction, len(l.transactions), len(l.transactions)+1)
	copy(nextTransactions, l.transactions)
	nextTransactions = append(nextTransactions, tx)

	action := fmt.Sprintf("Recorded sale: %s (Date: %s, Quantity: %d, Total: %s, Stock: %d -> %d)",
		name, date, quantity, tx.Total, product.Stock, updated.Stock)
	if err := l.commit(nextProducts, nextTransactions, action); err != nil {
		return tx, err
	}
	return tx, nil
}

// Product returns the product called name.
func (l *Ledger) Product(name string) (models.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.products[normalizeName(name)]
	return p, ok
}

// Products returns every product sorted by name.
func (l *Ledger) Products() []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Product, 0, len(l.products))
	for _, name := range slices.Sorted(maps.Keys(l.products)) {
		out = append(out, l.products[name])
	}
	return out
}

// ProductNames returns every product name sorted.
func (l *Ledger) ProductNames() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Sorted(maps.Keys(l.products))
}

// Transactions returns a copy of all transactions in the order they were recorded.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.transactions)
}

// commit saves the candidate state, installs it and writes the journal line.
// Callers hold l.mu. A save failure leaves the in-memory state untouched.
// A journal failure is reported as a LogWriteError after the state is installed.
func (l *Ledger) commit(products map[string]models.Product, transactions []models.Transaction, action string) error {
	if err := l.store.Save(models.Snapshot{Products: products, Transactions: transactions}); err != nil {
		l.logger.Error("failed to save inventory", zap.String("action", action), zap.Error(err))
		return fmt.Errorf("save inventory: %w", err)
	}

	l.products = products
	l.transactions = transactions

	if l.journal == nil {
		return nil
	}
	if err := l.journal.Append(action); err != nil {
		l.logger.Warn("failed to append activity log", zap.String("action", action), zap.Error(err))
		return &models.LogWriteError{Action: action, Err: err}
	}

	l.logger.Debug("inventory mutated", zap.String("action", action))
	return nil
}

func (l *Ledger) cloneProducts() map[string]models.Product {
	return maps.Clone(l.products)
}

// normalizeName strips surrounding whitespace. Every operation taking a
// product name applies it, so lookups match what AddProduct stored.
func normalizeName(name string) string { return strings.TrimSpace(name) }

func validatePriceAndStock(price decimal.Decimal, stock int) error {
	if !price.IsPositive() {
		return models.Invalid("price", "price must be positive, got %s", price)
	}
	if stock < 0 {
		return models.Invalid("stock", "stock must not be negative, got %d", stock)
	}
	return nil
}
