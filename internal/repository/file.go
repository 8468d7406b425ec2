package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/newsletter-finder/internal/domain"
)

// FileCatalog reads newsletters from a JSON array of {"title","description"}
// objects. The file is re-read on every call so edits apply without a restart.
type FileCatalog struct {
	path string
}

func NewFileCatalog(path string) *FileCatalog {
	return &FileCatalog{path: path}
}

func (f *FileCatalog) ListNewsletters(ctx context.Context) ([]domain.Newsletter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.path, err)
	}

	var items []domain.Newsletter
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", f.path, err)
	}
	return items, nil
}
