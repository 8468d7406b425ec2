package domain

import "errors"

var (
	ErrEmptyQuery   = errors.New("empty query")
	ErrCatalogEmpty = errors.New("newsletter catalog is empty")
)
