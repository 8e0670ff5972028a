package dashboard

import "github.com/rogerio-castellano/pdv-dashboard/internal/models"

// DefaultLowStockThreshold is the restock threshold in units.
const DefaultLowStockThreshold = 10

// LowStock keeps the active products whose stock is below threshold, in input order.
func LowStock(products []models.Product, threshold int) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsActive && p.StockQuantity < threshold {
			out = append(out, p)
		}
	}
	return out
}
