package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsletters.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileCatalogList(t *testing.T) {
	path := writeCatalog(t, `[
		{"title":"Morning Brew","description":"Business news in five minutes"},
		{"title":"TLDR","description":"Daily tech summaries"}
	]`)

	items, err := NewFileCatalog(path).ListNewsletters(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Morning Brew", items[0].Title)
	assert.Equal(t, "Daily tech summaries", items[1].Description)
}

func TestFileCatalogMissingFile(t *testing.T) {
	_, err := NewFileCatalog(filepath.Join(t.TempDir(), "absent.json")).ListNewsletters(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileCatalogMalformed(t *testing.T) {
	path := writeCatalog(t, `{"title":"not an array"`)

	_, err := NewFileCatalog(path).ListNewsletters(context.Background())
	require.ErrorContains(t, err, "parse catalog")
}

func TestFileCatalogCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileCatalog(writeCatalog(t, `[]`)).ListNewsletters(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestShippedCatalogParses(t *testing.T) {
	items, err := NewFileCatalog("../../seeds/newsletters.json").ListNewsletters(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, items)
	for _, n := range items {
		assert.NotEmpty(t, n.Title)
		assert.NotEmpty(t, n.Description)
	}
}
