package repository

import (
	"context"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog is any source of newsletters to rank.
type Catalog interface {
	ListNewsletters(ctx context.Context) ([]domain.Newsletter, error)
}

// Repository is the Postgres-backed catalog.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var (
	_ Catalog = (*Repository)(nil)
	_ Catalog = (*FileCatalog)(nil)
)
