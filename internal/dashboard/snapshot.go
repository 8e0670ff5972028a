package dashboard

import (
	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// Snapshot is the aggregated result of one Load. It is never mutated after
// construction; every caller of Load receives its own deep copy.
type Snapshot struct {
	TotalSales       int              `json:"total_sales"`
	TotalProducts    int              `json:"total_products"`
	TotalCustomers   int              `json:"total_customers"`
	TotalRevenue     decimal.Decimal  `json:"total_revenue"`
	RecentSales      []models.Sale    `json:"recent_sales"`
	LowStockProducts []models.Product `json:"low_stock_products"`
}

// EmptySnapshot is the all-zero state shown before the first successful load.
func EmptySnapshot() Snapshot {
	return Snapshot{
		TotalRevenue:     decimal.Zero,
		RecentSales:      []models.Sale{},
		LowStockProducts: []models.Product{},
	}
}

// clone copies the lists and every optional field they point to, so no two
// callers share memory.
func (s Snapshot) clone() Snapshot {
	sales := make([]models.Sale, len(s.RecentSales))
	for i, sale := range s.RecentSales {
		sale.DiscountAmount = clonePtr(sale.DiscountAmount)
		sale.Status = clonePtr(sale.Status)
		sale.CustomerName = clonePtr(sale.CustomerName)
		sale.CustomerPhone = clonePtr(sale.CustomerPhone)
		sale.Notes = clonePtr(sale.Notes)
		sale.CustomerID = clonePtr(sale.CustomerID)
		sales[i] = sale
	}
	products := make([]models.Product, len(s.LowStockProducts))
	for i, p := range s.LowStockProducts {
		p.Description = clonePtr(p.Description)
		p.CategoryID = clonePtr(p.CategoryID)
		p.Barcode = clonePtr(p.Barcode)
		p.ImageURL = clonePtr(p.ImageURL)
		products[i] = p
	}
	s.RecentSales = sales
	s.LowStockProducts = products
	return s
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
