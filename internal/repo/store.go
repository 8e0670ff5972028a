package repo

import (
	"context"

	"github.com/shopspring/decimal"
)

// Row is one record as returned by the store, keyed by field name.
// Values are untyped; use the Decode* functions to obtain entities.
type Row map[string]any

// Store is read-only access to the relational store.
type Store interface {
	// Count returns the number of rows of q.Collection matching q.Where.
	// Projection, ordering and limit are ignored.
	Count(ctx context.Context, q Query) (int, error)
	// List returns the rows matching q, projected, ordered and limited as requested.
	List(ctx context.Context, q Query) ([]Row, error)
}

// Summer is implemented by stores that can aggregate a numeric field server-side.
type Summer interface {
	Sum(ctx context.Context, q Query, field string) (decimal.Decimal, error)
}
