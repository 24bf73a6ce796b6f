package repository

import (
	"context"
	"time"

	"invoice-recon/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProductRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProductRepository(db *pgxpool.Pool, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

// ListAll returns the whole catalog ordered by insertion (id). The order is
// load-bearing: it is the deterministic tie-break of the search engine.
func (r *ProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	query := squirrel.Select("id", "code", "description", "embedding", "created_at", "updated_at").
		From("products").
		OrderBy("id ASC").
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

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var embedding pgtype.FlatArray[float32]
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &embedding, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Embedding = []float32(embedding)
		products = append(products, p)
	}

	return products, rows.Err()
}

// ListMissingEmbeddings returns products the embedding batch job has not
// vectorized yet.
func (r *ProductRepository) ListMissingEmbeddings(ctx context.Context) ([]models.Product, error) {
	query := squirrel.Select("id", "code", "description", "created_at", "updated_at").
		From("products").
		Where("embedding IS NULL").
		OrderBy("id ASC").
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

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) CreateBatch(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	now := time.Now()
	builder := squirrel.Insert("products").
		Columns("code", "description", "created_at", "updated_at").
		Suffix("ON CONFLICT (code) DO UPDATE SET description = EXCLUDED.description, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, p := range products {
		builder = builder.Values(p.Code, p.Description, now, now)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// UpsertEmbedding stores the vector the external embedding job produced for
// one product code.
func (r *ProductRepository) UpsertEmbedding(ctx context.Context, code string, vector []float32) error {
	embedding := pgtype.FlatArray[float32](vector)

	query := squirrel.Update("products").
		Set("embedding", embedding).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"code": code}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Embedding upsert matched no product", zap.String("code", code))
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}
