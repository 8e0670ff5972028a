package dashboard

import (
	"errors"
	"fmt"
)

var ErrAggregation = errors.New("dashboard aggregation failed")

// Names of the six reads issued by Load.
const (
	QuerySaleCount     = "sale_count"
	QueryProductCount  = "product_count"
	QueryCustomerCount = "customer_count"
	QueryRevenue       = "revenue"
	QueryRecentSales   = "recent_sales"
	QueryLowStock      = "low_stock"
)

// AggregationError reports a failed Load. It wraps the first sub-query error;
// no partial snapshot accompanies it.
type AggregationError struct {
	Query string
	Err   error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("load dashboard: %s: %v", e.Query, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

func (e *AggregationError) Is(target error) bool { return target == ErrAggregation }
