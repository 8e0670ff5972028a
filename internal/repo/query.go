package repo

import (
	"fmt"
	"slices"
)

// Collection names a table of the relational store.
type Collection string

const (
	Sales          Collection = "sales"
	SaleItems      Collection = "sale_items"
	Products       Collection = "products"
	Categories     Collection = "categories"
	Customers      Collection = "customers"
	PaymentMethods Collection = "payment_methods"
	PdvSettings    Collection = "pdv_settings"
	ActivityLogs   Collection = "activity_logs"
)

// schema lists the readable fields of each collection in column order.
// Field names are part of the store's compatibility surface.
var schema = map[Collection][]string{
	Sales: {"id", "sale_number", "total_amount", "discount_amount", "final_amount", "payment_method",
		"status", "customer_name", "customer_phone", "notes", "created_at", "customer_id"},
	SaleItems: {"id", "sale_id", "product_id", "product_name", "quantity", "unit_price", "total_price", "created_at"},
	Products: {"id", "name", "description", "price", "stock_quantity", "category_id", "barcode", "image_url",
		"is_active", "created_at", "updated_at"},
	Categories:     {"id", "name", "description", "created_at", "updated_at"},
	Customers:      {"id", "name", "phone", "email", "address", "notes", "created_at", "updated_at"},
	PaymentMethods: {"id", "name", "is_active", "is_default", "created_at"},
	PdvSettings:    {"id", "pdv_name", "created_at", "updated_at"},
	ActivityLogs:   {"id", "action", "table_name", "record_id", "description", "old_data", "new_data", "created_at"},
}

func hasField(c Collection, field string) bool {
	return slices.Contains(schema[c], field)
}

// Op is a comparison operator usable in a Condition.
type Op string

const (
	OpEq  Op = "="
	OpNeq Op = "<>"
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="
)

func (o Op) valid() bool {
	switch o {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return true
	}
	return false
}

// Condition is a single field comparison. Conditions of a query are ANDed.
type Condition struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, v any) Condition  { return Condition{Field: field, Op: OpEq, Value: v} }
func Neq(field string, v any) Condition { return Condition{Field: field, Op: OpNeq, Value: v} }
func Lt(field string, v any) Condition  { return Condition{Field: field, Op: OpLt, Value: v} }
func Lte(field string, v any) Condition { return Condition{Field: field, Op: OpLte, Value: v} }
func Gt(field string, v any) Condition  { return Condition{Field: field, Op: OpGt, Value: v} }
func Gte(field string, v any) Condition { return Condition{Field: field, Op: OpGte, Value: v} }

// Order is one sort key of a listing.
type Order struct {
	Field string
	Desc  bool
}

// Query describes a read against one collection.
// Empty Fields selects every field; Limit <= 0 means unbounded.
type Query struct {
	Collection Collection
	Fields     []string
	Where      []Condition
	OrderBy    []Order
	Limit      int
}

// From starts a query over c.
func From(c Collection) Query {
	return Query{Collection: c}
}

func (q Query) Select(fields ...string) Query {
	q.Fields = fields
	return q
}

func (q Query) Filter(conds ...Condition) Query {
	q.Where = append(slices.Clone(q.Where), conds...)
	return q
}

// Order appends a sort key; later keys break ties left by earlier ones.
func (q Query) Order(field string, desc bool) Query {
	q.OrderBy = append(slices.Clone(q.OrderBy), Order{Field: field, Desc: desc})
	return q
}

func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

// columns returns the effective projection.
func (q Query) columns() []string {
	if len(q.Fields) == 0 {
		return schema[q.Collection]
	}
	return q.Fields
}

// Validate checks every collection and field reference against the schema.
func (q Query) Validate(op string) error {
	if _, ok := schema[q.Collection]; !ok {
		return invalidQuery(op, q.Collection, "unknown collection")
	}
	for _, f := range q.Fields {
		if !hasField(q.Collection, f) {
			return invalidQuery(op, q.Collection, "unknown field %q", f)
		}
	}
	for _, c := range q.Where {
		if !hasField(q.Collection, c.Field) {
			return invalidQuery(op, q.Collection, "unknown field %q in predicate", c.Field)
		}
		if !c.Op.valid() {
			return invalidQuery(op, q.Collection, "unsupported operator %q", c.Op)
		}
		if c.Value == nil {
			return invalidQuery(op, q.Collection, "nil value for %q", c.Field)
		}
	}
	for _, o := range q.OrderBy {
		if !hasField(q.Collection, o.Field) {
			return invalidQuery(op, q.Collection, "unknown order field %q", o.Field)
		}
	}
	if q.Limit < 0 {
		return invalidQuery(op, q.Collection, "negative limit %d", q.Limit)
	}
	return nil
}

func (q Query) String() string {
	s := fmt.Sprintf("%s%v where=%v", q.Collection, q.columns(), q.Where)
	for _, o := range q.OrderBy {
		s += fmt.Sprintf(" order=%s desc=%t", o.Field, o.Desc)
	}
	if q.Limit > 0 {
		s += fmt.Sprintf(" limit=%d", q.Limit)
	}
	return s
}
