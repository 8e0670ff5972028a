package dashboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
)

func TestLowStock(t *testing.T) {
	low := models.Product{ID: uuid.New(), Name: "Coffee", StockQuantity: 3, IsActive: true}
	plenty := models.Product{ID: uuid.New(), Name: "Sugar", StockQuantity: 15, IsActive: true}
	inactive := models.Product{ID: uuid.New(), Name: "Tea", StockQuantity: 2, IsActive: false}

	got := LowStock([]models.Product{low, plenty, inactive}, 10)
	if len(got) != 1 {
		t.Fatalf("expected 1 low stock product, got %d", len(got))
	}
	if got[0].ID != low.ID {
		t.Errorf("expected %s, got %s", low.Name, got[0].Name)
	}
}

func TestLowStock_Boundary(t *testing.T) {
	products := []models.Product{
		{Name: "at threshold", StockQuantity: 10, IsActive: true},
		{Name: "just below", StockQuantity: 9, IsActive: true},
		{Name: "empty", StockQuantity: 0, IsActive: true},
	}
	got := LowStock(products, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got[0].Name != "just below" || got[1].Name != "empty" {
		t.Errorf("expected input order to be kept, got %q, %q", got[0].Name, got[1].Name)
	}
}

func TestLowStock_Empty(t *testing.T) {
	got := LowStock(nil, 10)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
