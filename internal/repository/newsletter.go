package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
)

// List all newsletters in insertion order
func (r *Repository) ListNewsletters(ctx context.Context) ([]domain.Newsletter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, created_at
		FROM newsletters
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query newsletters: %w", err)
	}
	defer rows.Close()

	var items []domain.Newsletter
	for rows.Next() {
		var n domain.Newsletter
		if err := rows.Scan(&n.ID, &n.Title, &n.Description, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan newsletter: %w", err)
		}
		items = append(items, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over newsletters: %w", err)
	}
	return items, nil
}

// Count newsletters in the catalog
func (r *Repository) CountNewsletters(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM newsletters`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count newsletters: %w", err)
	}
	return total, nil
}
