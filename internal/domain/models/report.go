package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSummary aggregates the sales of one product inside a report.
type ProductSummary struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// Report is the aggregation of transactions over an inclusive date range.
type Report struct {
	Start    Date             `json:"start"`
	End      Date             `json:"end"`
	Count    int              `json:"count"`
	Total    decimal.Decimal  `json:"total"`
	Products []ProductSummary `json:"products"`
}

// ArchivedReport is the document stored in MongoDB for each scheduled summary.
// Decimal values are kept as strings so no precision is lost.
type ArchivedReport struct {
	Start     string                  `bson:"start" json:"start"`
	End       string                  `bson:"end" json:"end"`
	Count     int                     `bson:"count" json:"count"`
	Total     string                  `bson:"total" json:"total"`
	Products  []ArchivedProductTotals `bson:"products" json:"products"`
	CreatedAt time.Time               `bson:"created_at" json:"created_at"`
}

// ArchivedProductTotals is the per-product line of an ArchivedReport.
type ArchivedProductTotals struct {
	Product  string `bson:"product" json:"product"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Total    string `bson:"total" json:"total"`
}

// Archive converts r into its storage document.
func (r Report) Archive(createdAt time.Time) ArchivedReport {
	doc := ArchivedReport{
		Start:     r.Start.String(),
		End:       r.End.String(),
		Count:     r.Count,
		Total:     r.Total.String(),
		Products:  make([]ArchivedProductTotals, 0, len(r.Products)),
		CreatedAt: createdAt,
	}
	for _, p := range r.Products {
		doc.Products = append(doc.Products, ArchivedProductTotals{
			Product:  p.Product,
			Quantity: p.Quantity,
			Total:    p.Total.String(),
		})
	}
	return doc
}
