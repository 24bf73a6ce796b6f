package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"invoice-recon/internal/models"
	"invoice-recon/internal/repository"
	"invoice-recon/internal/service"
	"invoice-recon/pkg/config"
	"invoice-recon/pkg/logger"
	"invoice-recon/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type productFixture struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type invoiceFixture struct {
	Number       string        `json:"number"`
	CustomerCode string        `json:"customer_code"`
	CustomerName string        `json:"customer_name"`
	TotalValue   float64       `json:"total_value"`
	PrintDate    string        `json:"print_date"`
	City         string        `json:"city"`
	State        string        `json:"state"`
	Lines        []lineFixture `json:"lines"`
}

type lineFixture struct {
	LineNumber  int     `json:"line_number"`
	ItemCode    string  `json:"item_code"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
	Taxes       float64 `json:"taxes"`
}

func main() {
	productsPath := flag.String("products", "cmd/seed/data/products.json", "product catalog fixture")
	invoicesPath := flag.String("invoices", "cmd/seed/data/invoices.json", "invoice history fixture")
	embed := flag.Bool("embed", true, "compute embeddings for products that lack one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := createSchema(ctx, db); err != nil {
		appLogger.Fatal("Failed to create schema", zap.Error(err))
	}
	appLogger.Info("Schema ready")

	productRepo := repository.NewProductRepository(db, appLogger)
	invoiceRepo := repository.NewInvoiceRepository(db, appLogger)

	if err := seedProducts(ctx, productRepo, *productsPath, appLogger); err != nil {
		appLogger.Fatal("Failed to seed products", zap.Error(err))
	}
	if err := seedInvoices(ctx, invoiceRepo, *invoicesPath, appLogger); err != nil {
		appLogger.Fatal("Failed to seed invoices", zap.Error(err))
	}

	if *embed {
		if cfg.Embedding.APIKey == "" {
			appLogger.Warn("No embedding API key configured, skipping embedding pass")
		} else if err := embedProducts(ctx, cfg, productRepo, appLogger); err != nil {
			appLogger.Fatal("Embedding pass failed", zap.Error(err))
		}
	}

	products, _ := productRepo.Count(ctx)
	invoices, lines, _ := invoiceRepo.Counts(ctx)
	appLogger.Info("Seeding completed",
		zap.Int64("products", products),
		zap.Int64("invoices", invoices),
		zap.Int64("invoice_lines", lines),
	)
}

func createSchema(ctx context.Context, db *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			code VARCHAR(64) NOT NULL UNIQUE,
			description TEXT NOT NULL,
			embedding REAL[],
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS invoice (
			no_invoice VARCHAR(32) PRIMARY KEY,
			code_customer VARCHAR(32) NOT NULL,
			name_customer VARCHAR(255) NOT NULL,
			value_total NUMERIC(12,2) NOT NULL,
			date_print DATE NOT NULL,
			city VARCHAR(128),
			state VARCHAR(8)
		)`,
		`CREATE TABLE IF NOT EXISTS item_invoice (
			no_invoice VARCHAR(32) NOT NULL REFERENCES invoice(no_invoice),
			no_item INT NOT NULL,
			code_ean VARCHAR(64) NOT NULL,
			description_product TEXT NOT NULL,
			value_unitary NUMERIC(12,2) NOT NULL,
			quantity INT NOT NULL,
			value_total NUMERIC(12,2) NOT NULL,
			value_taxes NUMERIC(12,2) NOT NULL DEFAULT 0,
			PRIMARY KEY (no_invoice, no_item)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_item_invoice_code_ean ON item_invoice (code_ean)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_code_customer ON invoice (code_customer)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func seedProducts(ctx context.Context, repo *repository.ProductRepository, path string, appLogger *zap.Logger) error {
	var fixtures []productFixture
	if err := readJSON(path, &fixtures); err != nil {
		return err
	}

	products := make([]models.Product, 0, len(fixtures))
	for _, f := range fixtures {
		products = append(products, models.Product{
			Code:        strings.TrimSpace(f.Code),
			Description: sanitizeUTF8(f.Description),
		})
	}

	if err := repo.CreateBatch(ctx, products); err != nil {
		return err
	}
	appLogger.Info("Products seeded", zap.Int("count", len(products)), zap.String("path", path))
	return nil
}

func seedInvoices(ctx context.Context, repo *repository.InvoiceRepository, path string, appLogger *zap.Logger) error {
	var fixtures []invoiceFixture
	if err := readJSON(path, &fixtures); err != nil {
		return err
	}

	for _, f := range fixtures {
		printDate, err := time.Parse(dateLayout, f.PrintDate)
		if err != nil {
			appLogger.Warn("Skipping invoice with invalid print date",
				zap.String("invoice", f.Number),
				zap.String("date_print", f.PrintDate),
			)
			continue
		}

		invoice := models.Invoice{
			Number:       f.Number,
			CustomerCode: f.CustomerCode,
			CustomerName: sanitizeUTF8(f.CustomerName),
			TotalValue:   f.TotalValue,
			PrintDate:    printDate,
			City:         f.City,
			State:        f.State,
		}

		lines := make([]models.InvoiceLine, 0, len(f.Lines))
		for _, l := range f.Lines {
			lines = append(lines, models.InvoiceLine{
				InvoiceNumber: f.Number,
				LineNumber:    l.LineNumber,
				ItemCode:      l.ItemCode,
				Description:   sanitizeUTF8(l.Description),
				UnitPrice:     l.UnitPrice,
				Quantity:      l.Quantity,
				LineTotal:     l.LineTotal,
				Taxes:         l.Taxes,
			})
		}

		if err := repo.CreateInvoice(ctx, invoice, lines); err != nil {
			return err
		}
	}

	appLogger.Info("Invoices seeded", zap.Int("count", len(fixtures)), zap.String("path", path))
	return nil
}

func embedProducts(ctx context.Context, cfg *config.Config, repo *repository.ProductRepository, appLogger *zap.Logger) error {
	embedder, err := service.NewEmbeddingService(ctx, &cfg.Embedding, appLogger)
	if err != nil {
		return err
	}

	missing, err := repo.ListMissingEmbeddings(ctx)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		appLogger.Info("All products already vectorized")
		return nil
	}

	appLogger.Info("Computing embeddings", zap.Int("products", len(missing)))
	for i, product := range missing {
		vector, err := embedder.EmbedDocument(ctx, product.Description)
		if err != nil {
			appLogger.Error("Embedding failed, continuing",
				zap.String("code", product.Code),
				zap.Error(err),
			)
			continue
		}
		if err := repo.UpsertEmbedding(ctx, product.Code, vector); err != nil {
			return err
		}
		if (i+1)%50 == 0 {
			appLogger.Info("Embedding progress", zap.Int("done", i+1), zap.Int("total", len(missing)))
		}
	}
	return nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// sanitizeUTF8 strips invalid UTF-8 sequences so text columns never trip
// PostgreSQL encoding errors.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}
	return result.String()
}
