package repo

import (
	"github.com/google/uuid"
	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

func optID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

func optStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optMoney(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

func SaleRow(s models.Sale) Row {
	return Row{
		"id":              s.ID.String(),
		"sale_number":     s.SaleNumber,
		"total_amount":    s.TotalAmount,
		"discount_amount": optMoney(s.DiscountAmount),
		"final_amount":    s.FinalAmount,
		"payment_method":  s.PaymentMethod,
		"status":          optStr(s.Status),
		"customer_name":   optStr(s.CustomerName),
		"customer_phone":  optStr(s.CustomerPhone),
		"notes":           optStr(s.Notes),
		"created_at":      s.CreatedAt,
		"customer_id":     optID(s.CustomerID),
	}
}

func SaleItemRow(it models.SaleItem) Row {
	return Row{
		"id":           it.ID.String(),
		"sale_id":      it.SaleID.String(),
		"product_id":   optID(it.ProductID),
		"product_name": it.ProductName,
		"quantity":     it.Quantity,
		"unit_price":   it.UnitPrice,
		"total_price":  it.TotalPrice,
		"created_at":   it.CreatedAt,
	}
}

func ProductRow(p models.Product) Row {
	return Row{
		"id":             p.ID.String(),
		"name":           p.Name,
		"description":    optStr(p.Description),
		"price":          p.Price,
		"stock_quantity": p.StockQuantity,
		"category_id":    optID(p.CategoryID),
		"barcode":        optStr(p.Barcode),
		"image_url":      optStr(p.ImageURL),
		"is_active":      p.IsActive,
		"created_at":     p.CreatedAt,
		"updated_at":     p.UpdatedAt,
	}
}

func CategoryRow(c models.Category) Row {
	return Row{
		"id":          c.ID.String(),
		"name":        c.Name,
		"description": optStr(c.Description),
		"created_at":  c.CreatedAt,
		"updated_at":  c.UpdatedAt,
	}
}

func CustomerRow(c models.Customer) Row {
	return Row{
		"id":         c.ID.String(),
		"name":       c.Name,
		"phone":      optStr(c.Phone),
		"email":      optStr(c.Email),
		"address":    optStr(c.Address),
		"notes":      optStr(c.Notes),
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}
}

func PaymentMethodRow(pm models.PaymentMethod) Row {
	return Row{
		"id":         pm.ID.String(),
		"name":       pm.Name,
		"is_active":  pm.IsActive,
		"is_default": pm.IsDefault,
		"created_at": pm.CreatedAt,
	}
}

func PdvSettingRow(s models.PdvSetting) Row {
	return Row{
		"id":         s.ID.String(),
		"pdv_name":   s.PdvName,
		"created_at": s.CreatedAt,
		"updated_at": s.UpdatedAt,
	}
}

func ActivityLogRow(l models.ActivityLog) Row {
	r := Row{
		"id":          l.ID.String(),
		"action":      l.Action,
		"table_name":  l.TableName,
		"record_id":   optStr(l.RecordID),
		"description": l.Description,
		"old_data":    nil,
		"new_data":    nil,
		"created_at":  l.CreatedAt,
	}
	if l.OldData != nil {
		r["old_data"] = []byte(l.OldData)
	}
	if l.NewData != nil {
		r["new_data"] = []byte(l.NewData)
	}
	return r
}
