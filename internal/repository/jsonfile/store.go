// Package jsonfile persists the inventory as two JSON documents,
// products.json and sales.json, under a single data directory.
package jsonfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockbook/internal/domain/models"
)

const (
	productsFile = "products.json"
	salesFile    = "sales.json"
)

// productRecord is the value stored for each name in products.json.
type productRecord struct {
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// Store reads and writes the inventory files. It holds no state besides its
// directory and may be shared.
type Store struct {
	dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// ProductsPath returns the location of products.json.
func (s *Store) ProductsPath() string { return filepath.Join(s.dir, productsFile) }

// SalesPath returns the location of sales.json.
func (s *Store) SalesPath() string { return filepath.Join(s.dir, salesFile) }

// EnsureDir creates the data directory if it does not exist.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &models.IOError{Op: "mkdir", Path: s.dir, Err: err}
	}
	return nil
}

// Load reads both files. A missing file yields an empty collection.
func (s *Store) Load() (models.Snapshot, error) {
	snap := models.Snapshot{Products: make(map[string]models.Product)}

	var records map[string]productRecord
	found, err := readJSON(s.ProductsPath(), &records)
	if err != nil {
		return models.Snapshot{}, err
	}
	if found {
		for name, rec := range records {
			snap.Products[name] = models.Product{Name: name, Price: rec.Price, Stock: rec.Stock}
		}
	}

	var transactions []models.Transaction
	if _, err := readJSON(s.SalesPath(), &transactions); err != nil {
		return models.Snapshot{}, err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	snap.Transactions = transactions

	return snap, nil
}

// Save rewrites both files in full. Both documents are staged to temporary
// files before either is renamed into place, so a failed write leaves the
// previous pair untouched. sales.json is renamed first: a recorded sale whose
// stock decrement is missing can be reconciled, a lost decrement cannot.
func (s *Store) Save(snap models.Snapshot) error {
	records := make(map[string]productRecord, len(snap.Products))
	for name, p := range snap.Products {
		records[name] = productRecord{Price: p.Price, Stock: p.Stock}
	}
	transactions := snap.Transactions
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	salesTmp, err := stageJSON(s.SalesPath(), transactions)
	if err != nil {
		return err
	}
	productsTmp, err := stageJSON(s.ProductsPath(), records)
	if err != nil {
		_ = os.Remove(salesTmp)
		return err
	}

	if err := os.Rename(salesTmp, s.SalesPath()); err != nil {
		_ = os.Remove(salesTmp)
		_ = os.Remove(productsTmp)
		return &models.IOError{Op: "rename", Path: s.SalesPath(), Err: err}
	}
	if err := os.Rename(productsTmp, s.ProductsPath()); err != nil {
		_ = os.Remove(productsTmp)
		return &models.IOError{Op: "rename", Path: s.ProductsPath(), Err: err}
	}
	return nil
}

func readJSON(path string, out any) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &models.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return false, &models.IOError{Op: "decode", Path: path, Err: err}
	}
	return true, nil
}

// stageJSON encodes value into path+".tmp" and returns the temporary path.
// The caller renames it over path.
func stageJSON(path string, value any) (string, error) {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return "", &models.IOError{Op: "create", Path: tmp, Err: err}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", &models.IOError{Op: "encode", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", &models.IOError{Op: "close", Path: tmp, Err: err}
	}
	return tmp, nil
}
