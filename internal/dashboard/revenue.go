package dashboard

import (
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
	"github.com/shopspring/decimal"
)

// TotalRevenue sums field across rows using exact decimal arithmetic.
// A missing, null or non-numeric value counts as zero for that row.
func TotalRevenue(rows []repo.Row, field string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if d, err := repo.AsDecimal(r[field]); err == nil {
			total = total.Add(d)
		}
	}
	return total
}
