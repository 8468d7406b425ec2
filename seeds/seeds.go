package seeds

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
	"github.com/actuallystonmai/newsletter-finder/internal/logging"
)

//go:embed newsletters.json
var catalogJSON []byte

// Newsletters returns the built-in catalog.
func Newsletters() ([]domain.Newsletter, error) {
	var items []domain.Newsletter
	if err := json.Unmarshal(catalogJSON, &items); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return items, nil
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	items, err := Newsletters()
	if err != nil {
		return err
	}

	// Truncate existing data before insert
	logging.Info().Msg("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `TRUNCATE newsletters RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	logging.Info().Int("count", len(items)).Msg("[seed] inserting newsletters")
	query, args := insertStatement(items, time.Now().UTC())
	if query == "" {
		return nil
	}
	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("seed newsletters: %w", err)
	}

	logging.Info().Msg("[seed] seeding complete")
	return nil
}

func insertStatement(items []domain.Newsletter, now time.Time) (string, []any) {
	rows := []string{}
	args := []any{}

	for _, n := range items {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, n.Title, n.Description, now)
	}

	if len(rows) == 0 {
		return "", nil
	}

	query := "INSERT INTO newsletters (title, description, created_at) VALUES " + strings.Join(rows, ", ")
	return query, args
}
