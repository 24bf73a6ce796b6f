package models

import (
	"time"
)

type Invoice struct {
	Number       string    `db:"no_invoice"`
	CustomerCode string    `db:"code_customer"`
	CustomerName string    `db:"name_customer"`
	TotalValue   float64   `db:"value_total"`
	PrintDate    time.Time `db:"date_print"`
	City         string    `db:"city"`
	State        string    `db:"state"`
}

// InvoiceLine is one sold item of an invoice. Lines are identified by
// (invoice number, line number) together.
type InvoiceLine struct {
	InvoiceNumber string  `db:"no_invoice"`
	LineNumber    int     `db:"no_item"`
	ItemCode      string  `db:"code_ean"`
	Description   string  `db:"description_product"`
	UnitPrice     float64 `db:"value_unitary"`
	Quantity      int     `db:"quantity"`
	LineTotal     float64 `db:"value_total"`
	Taxes         float64 `db:"value_taxes"`
}
