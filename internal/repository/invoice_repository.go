package repository

import (
	"context"

	"invoice-recon/internal/models"
	"invoice-recon/internal/search"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type InvoiceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInvoiceRepository(db *pgxpool.Pool, logger *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{
		db:     db,
		logger: logger,
	}
}

const invoiceColumns = "nf.no_invoice, nf.code_customer, nf.name_customer, nf.value_total, nf.date_print, nf.city, nf.state"
const lineColumns = "inf.no_invoice, inf.no_item, inf.code_ean, inf.description_product, inf.value_unitary, inf.quantity, inf.value_total, inf.value_taxes"

// LinesByItemCodes returns invoice lines referencing any of the given item
// codes, joined with their invoice headers. perCodeLimit bounds how many
// lines one code may contribute; 0 means unbounded.
func (r *InvoiceRepository) LinesByItemCodes(ctx context.Context, codes []string, perCodeLimit int) ([]search.LineRecord, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := squirrel.Select(lineColumns + ", " + invoiceColumns).
		From("item_invoice inf").
		Join("invoice nf ON nf.no_invoice = inf.no_invoice").
		Where(squirrel.Eq{"inf.code_ean": codes}).
		OrderBy("inf.code_ean", "nf.no_invoice", "inf.no_item").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perCode := make(map[string]int, len(codes))
	var records []search.LineRecord
	for rows.Next() {
		var rec search.LineRecord
		if err := rows.Scan(
			&rec.Line.InvoiceNumber, &rec.Line.LineNumber, &rec.Line.ItemCode, &rec.Line.Description,
			&rec.Line.UnitPrice, &rec.Line.Quantity, &rec.Line.LineTotal, &rec.Line.Taxes,
			&rec.Invoice.Number, &rec.Invoice.CustomerCode, &rec.Invoice.CustomerName,
			&rec.Invoice.TotalValue, &rec.Invoice.PrintDate, &rec.Invoice.City, &rec.Invoice.State,
		); err != nil {
			return nil, err
		}
		if perCodeLimit > 0 && perCode[rec.Line.ItemCode] >= perCodeLimit {
			continue
		}
		perCode[rec.Line.ItemCode]++
		records = append(records, rec)
	}

	return records, rows.Err()
}

// InvoicesByCustomer returns all invoice headers of one customer code.
func (r *InvoiceRepository) InvoicesByCustomer(ctx context.Context, customerCode string) ([]models.Invoice, error) {
	query := squirrel.Select("no_invoice", "code_customer", "name_customer", "value_total", "date_print", "city", "state").
		From("invoice").
		Where(squirrel.Eq{"code_customer": customerCode}).
		OrderBy("date_print DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.Number, &inv.CustomerCode, &inv.CustomerName, &inv.TotalValue, &inv.PrintDate, &inv.City, &inv.State); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

// InvoiceCriteria is the ad-hoc filter of the invoice search endpoint. A zero
// field is not filtered on.
type InvoiceCriteria struct {
	Customer string
	State    string
	ItemCode string
	Price    float64
	Margin   float64
	Limit    uint64
}

// SearchByCriteria filters invoice lines by customer name fragment, state,
// item code and/or a price band around Price (relative Margin, default 5%).
func (r *InvoiceRepository) SearchByCriteria(ctx context.Context, crit InvoiceCriteria) ([]search.LineRecord, error) {
	query := squirrel.Select(lineColumns + ", " + invoiceColumns).
		From("invoice nf").
		Join("item_invoice inf ON nf.no_invoice = inf.no_invoice").
		OrderBy("nf.no_invoice", "inf.no_item").
		PlaceholderFormat(squirrel.Dollar)

	if crit.Customer != "" {
		query = query.Where(squirrel.ILike{"nf.name_customer": "%" + crit.Customer + "%"})
	}
	if crit.State != "" {
		query = query.Where("LOWER(nf.state) = LOWER(?)", crit.State)
	}
	if crit.ItemCode != "" {
		query = query.Where(squirrel.Eq{"inf.code_ean": crit.ItemCode})
	}
	if crit.Price > 0 {
		margin := crit.Margin
		if margin <= 0 {
			margin = 0.05
		}
		query = query.Where("inf.value_unitary BETWEEN ? AND ?",
			crit.Price*(1-margin), crit.Price*(1+margin))
	}
	if crit.Limit > 0 {
		query = query.Limit(crit.Limit)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []search.LineRecord
	for rows.Next() {
		var rec search.LineRecord
		if err := rows.Scan(
			&rec.Line.InvoiceNumber, &rec.Line.LineNumber, &rec.Line.ItemCode, &rec.Line.Description,
			&rec.Line.UnitPrice, &rec.Line.Quantity, &rec.Line.LineTotal, &rec.Line.Taxes,
			&rec.Invoice.Number, &rec.Invoice.CustomerCode, &rec.Invoice.CustomerName,
			&rec.Invoice.TotalValue, &rec.Invoice.PrintDate, &rec.Invoice.City, &rec.Invoice.State,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CreateInvoice inserts one header with its lines (seed job only).
func (r *InvoiceRepository) CreateInvoice(ctx context.Context, invoice models.Invoice, lines []models.InvoiceLine) error {
	header := squirrel.Insert("invoice").
		Columns("no_invoice", "code_customer", "name_customer", "value_total", "date_print", "city", "state").
		Values(invoice.Number, invoice.CustomerCode, invoice.CustomerName, invoice.TotalValue, invoice.PrintDate, invoice.City, invoice.State).
		Suffix("ON CONFLICT (no_invoice) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := header.ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(lines) == 0 {
		return nil
	}

	builder := squirrel.Insert("item_invoice").
		Columns("no_invoice", "no_item", "code_ean", "description_product", "value_unitary", "quantity", "value_total", "value_taxes").
		Suffix("ON CONFLICT (no_invoice, no_item) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)
	for _, line := range lines {
		builder = builder.Values(invoice.Number, line.LineNumber, line.ItemCode, line.Description, line.UnitPrice, line.Quantity, line.LineTotal, line.Taxes)
	}

	sql, args, err = builder.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Counts returns the number of invoices and invoice lines, for the status
// endpoint.
func (r *InvoiceRepository) Counts(ctx context.Context) (invoices int64, lines int64, err error) {
	err = r.db.QueryRow(ctx, "SELECT (SELECT COUNT(*) FROM invoice), (SELECT COUNT(*) FROM item_invoice)").
		Scan(&invoices, &lines)
	return invoices, lines, err
}
