package repo

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

var errNull = errors.New("unexpected null")

// rowReader decodes typed fields out of a Row, remembering the first failure.
// A field absent from the row (not projected) decodes to its zero value; a
// present field of the wrong shape is a MalformedRow error.
type rowReader struct {
	c   Collection
	r   Row
	err error
}

func (rr *rowReader) get(f string, required bool) (any, bool) {
	if rr.err != nil {
		return nil, false
	}
	v, present := rr.r[f]
	if !present {
		return nil, false
	}
	if v == nil {
		if required {
			rr.err = malformed(rr.c, f, errNull)
		}
		return nil, false
	}
	return v, true
}

func (rr *rowReader) fail(f string, err error) {
	if err != nil && rr.err == nil {
		rr.err = malformed(rr.c, f, err)
	}
}

func (rr *rowReader) id(f string) uuid.UUID {
	v, ok := rr.get(f, true)
	if !ok {
		return uuid.Nil
	}
	id, err := asUUID(v)
	rr.fail(f, err)
	return id
}

func (rr *rowReader) optID(f string) *uuid.UUID {
	v, ok := rr.get(f, false)
	if !ok {
		return nil
	}
	id, err := asUUID(v)
	rr.fail(f, err)
	return &id
}

func (rr *rowReader) str(f string) string {
	v, ok := rr.get(f, true)
	if !ok {
		return ""
	}
	s, err := asString(v)
	rr.fail(f, err)
	return s
}

func (rr *rowReader) optStr(f string) *string {
	v, ok := rr.get(f, false)
	if !ok {
		return nil
	}
	s, err := asString(v)
	rr.fail(f, err)
	return &s
}

func (rr *rowReader) money(f string) decimal.Decimal {
	v, ok := rr.get(f, true)
	if !ok {
		return decimal.Zero
	}
	d, err := AsDecimal(v)
	rr.fail(f, err)
	return d
}

func (rr *rowReader) optMoney(f string) *decimal.Decimal {
	v, ok := rr.get(f, false)
	if !ok {
		return nil
	}
	d, err := AsDecimal(v)
	rr.fail(f, err)
	return &d
}

func (rr *rowReader) integer(f string) int {
	v, ok := rr.get(f, true)
	if !ok {
		return 0
	}
	n, err := asInt(v)
	rr.fail(f, err)
	return n
}

// flag decodes a nullable boolean; NULL reads as false.
func (rr *rowReader) flag(f string) bool {
	v, ok := rr.get(f, false)
	if !ok {
		return false
	}
	b, err := asBool(v)
	rr.fail(f, err)
	return b
}

func (rr *rowReader) ts(f string) time.Time {
	v, ok := rr.get(f, true)
	if !ok {
		return time.Time{}
	}
	t, err := asTime(v)
	rr.fail(f, err)
	return t
}

func (rr *rowReader) raw(f string) json.RawMessage {
	v, ok := rr.get(f, false)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []byte:
		return json.RawMessage(t)
	case string:
		return json.RawMessage(t)
	}
	b, err := json.Marshal(v)
	rr.fail(f, err)
	return b
}

func DecodeSale(r Row) (models.Sale, error) {
	rr := &rowReader{c: Sales, r: r}
	s := models.Sale{
		ID:             rr.id("id"),
		SaleNumber:     rr.str("sale_number"),
		TotalAmount:    rr.money("total_amount"),
		DiscountAmount: rr.optMoney("discount_amount"),
		FinalAmount:    rr.money("final_amount"),
		PaymentMethod:  rr.str("payment_method"),
		Status:         rr.optStr("status"),
		CustomerName:   rr.optStr("customer_name"),
		CustomerPhone:  rr.optStr("customer_phone"),
		Notes:          rr.optStr("notes"),
		CustomerID:     rr.optID("customer_id"),
		CreatedAt:      rr.ts("created_at"),
	}
	return s, rr.err
}

func DecodeSaleItem(r Row) (models.SaleItem, error) {
	rr := &rowReader{c: SaleItems, r: r}
	it := models.SaleItem{
		ID:          rr.id("id"),
		SaleID:      rr.id("sale_id"),
		ProductID:   rr.optID("product_id"),
		ProductName: rr.str("product_name"),
		Quantity:    rr.integer("quantity"),
		UnitPrice:   rr.money("unit_price"),
		TotalPrice:  rr.money("total_price"),
		CreatedAt:   rr.ts("created_at"),
	}
	return it, rr.err
}

func DecodeProduct(r Row) (models.Product, error) {
	rr := &rowReader{c: Products, r: r}
	p := models.Product{
		ID:            rr.id("id"),
		Name:          rr.str("name"),
		Description:   rr.optStr("description"),
		Price:         rr.money("price"),
		StockQuantity: rr.integer("stock_quantity"),
		CategoryID:    rr.optID("category_id"),
		Barcode:       rr.optStr("barcode"),
		ImageURL:      rr.optStr("image_url"),
		IsActive:      rr.flag("is_active"),
		CreatedAt:     rr.ts("created_at"),
		UpdatedAt:     rr.ts("updated_at"),
	}
	return p, rr.err
}

func DecodeCategory(r Row) (models.Category, error) {
	rr := &rowReader{c: Categories, r: r}
	c := models.Category{
		ID:          rr.id("id"),
		Name:        rr.str("name"),
		Description: rr.optStr("description"),
		CreatedAt:   rr.ts("created_at"),
		UpdatedAt:   rr.ts("updated_at"),
	}
	return c, rr.err
}

func DecodeCustomer(r Row) (models.Customer, error) {
	rr := &rowReader{c: Customers, r: r}
	c := models.Customer{
		ID:        rr.id("id"),
		Name:      rr.str("name"),
		Phone:     rr.optStr("phone"),
		Email:     rr.optStr("email"),
		Address:   rr.optStr("address"),
		Notes:     rr.optStr("notes"),
		CreatedAt: rr.ts("created_at"),
		UpdatedAt: rr.ts("updated_at"),
	}
	return c, rr.err
}

func DecodePaymentMethod(r Row) (models.PaymentMethod, error) {
	rr := &rowReader{c: PaymentMethods, r: r}
	pm := models.PaymentMethod{
		ID:        rr.id("id"),
		Name:      rr.str("name"),
		IsActive:  rr.flag("is_active"),
		IsDefault: rr.flag("is_default"),
		CreatedAt: rr.ts("created_at"),
	}
	return pm, rr.err
}

func DecodePdvSetting(r Row) (models.PdvSetting, error) {
	rr := &rowReader{c: PdvSettings, r: r}
	s := models.PdvSetting{
		ID:        rr.id("id"),
		PdvName:   rr.str("pdv_name"),
		CreatedAt: rr.ts("created_at"),
		UpdatedAt: rr.ts("updated_at"),
	}
	return s, rr.err
}

func DecodeActivityLog(r Row) (models.ActivityLog, error) {
	rr := &rowReader{c: ActivityLogs, r: r}
	l := models.ActivityLog{
		ID:          rr.id("id"),
		Action:      rr.str("action"),
		TableName:   rr.str("table_name"),
		RecordID:    rr.optStr("record_id"),
		Description: rr.str("description"),
		OldData:     rr.raw("old_data"),
		NewData:     rr.raw("new_data"),
		CreatedAt:   rr.ts("created_at"),
	}
	return l, rr.err
}

// DecodeAll decodes every row with fn, stopping at the first malformed one.
func DecodeAll[T any](rows []Row, fn func(Row) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
