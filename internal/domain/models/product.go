package models

import "github.com/shopspring/decimal"

// Product is a named, priced, stocked inventory item. Name is the unique,
// case-sensitive key.
type Product struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// Transaction is an immutable record of a single sale.
type Transaction struct {
	Date     Date            `json:"date"`
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// Snapshot is the full persisted state of the inventory.
type Snapshot struct {
	Products     map[string]Product
	Transactions []Transaction
}
