// Package store persists portfolio records keyed by slug.
package store

import (
	"context"
	"fmt"

	"github.com/careernova/portfolio-engine/internal/types"
)

// NotFoundError reports a slug with no stored portfolio.
type NotFoundError struct {
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("portfolio not found: %s", e.Slug)
}

// PortfolioStore is the persistence contract for portfolio records.
// Get returns a NotFoundError for unknown slugs.
type PortfolioStore interface {
	Get(ctx context.Context, slug string) (types.PortfolioRecord, error)
	Put(ctx context.Context, rec types.PortfolioRecord) error
	Delete(ctx context.Context, slug string) error
}
