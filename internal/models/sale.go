package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the header of a checkout transaction.
// FinalAmount = TotalAmount - DiscountAmount (zero when absent).
type Sale struct {
	ID             uuid.UUID        `json:"id"`
	SaleNumber     string           `json:"sale_number"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	DiscountAmount *decimal.Decimal `json:"discount_amount,omitempty"`
	FinalAmount    decimal.Decimal  `json:"final_amount"`
	PaymentMethod  string           `json:"payment_method"`
	Status         *string          `json:"status,omitempty"`
	CustomerName   *string          `json:"customer_name,omitempty"`
	CustomerPhone  *string          `json:"customer_phone,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
	CustomerID     *uuid.UUID       `json:"customer_id,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// SaleItem is one line of a sale. ProductName and UnitPrice are copied from the
// product at sale time so that later catalog edits do not rewrite history.
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	SaleID      uuid.UUID       `json:"sale_id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}
