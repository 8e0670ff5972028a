package repo

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// InMemoryStore is an in-memory implementation of Store and Summer.
// Rows keep insertion order, which is the order List returns when no OrderBy is given.
type InMemoryStore struct {
	mu   sync.RWMutex
	rows map[Collection][]Row
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{rows: make(map[Collection][]Row)}
}

// Insert appends a copy of r to collection c. Unknown fields are rejected.
func (s *InMemoryStore) Insert(c Collection, r Row) error {
	if _, ok := schema[c]; !ok {
		return invalidQuery("insert", c, "unknown collection")
	}
	for f := range r {
		if !hasField(c, f) {
			return invalidQuery("insert", c, "unknown field %q", f)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[c] = append(s.rows[c], maps.Clone(r))
	return nil
}

// Count implements Store.
func (s *InMemoryStore) Count(ctx context.Context, q Query) (int, error) {
	matched, err := s.match(ctx, "count", q)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// List implements Store.
func (s *InMemoryStore) List(ctx context.Context, q Query) ([]Row, error) {
	matched, err := s.match(ctx, "list", q)
	if err != nil {
		return nil, err
	}

	if len(q.OrderBy) > 0 {
		slices.SortStableFunc(matched, func(a, b Row) int {
			for _, o := range q.OrderBy {
				if c := orderRows(a[o.Field], b[o.Field], o.Desc); c != 0 {
					return c
				}
			}
			return 0
		})
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	cols := q.columns()
	out := make([]Row, len(matched))
	for i, r := range matched {
		p := make(Row, len(cols))
		for _, f := range cols {
			p[f] = r[f]
		}
		out[i] = p
	}
	return out, nil
}

// Sum implements Summer. Rows whose field is missing or not numeric count as zero.
func (s *InMemoryStore) Sum(ctx context.Context, q Query, field string) (decimal.Decimal, error) {
	if !hasField(q.Collection, field) {
		return decimal.Zero, invalidQuery("sum", q.Collection, "unknown field %q", field)
	}
	matched, err := s.match(ctx, "sum", q)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range matched {
		if d, err := AsDecimal(r[field]); err == nil {
			total = total.Add(d)
		}
	}
	return total, nil
}

func (s *InMemoryStore) match(ctx context.Context, op string, q Query) ([]Row, error) {
	if err := q.Validate(op); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &StoreError{Kind: Unavailable, Op: op, Collection: q.Collection, Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Row
	for _, r := range s.rows[q.Collection] {
		if matchesConditions(r, q.Where) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func matchesConditions(r Row, conds []Condition) bool {
	for _, c := range conds {
		cmp, ok := compareValues(r[c.Field], c.Value)
		if !ok {
			// NULL or incomparable values never satisfy a predicate, as in SQL.
			return false
		}
		switch c.Op {
		case OpEq:
			ok = cmp == 0
		case OpNeq:
			ok = cmp != 0
		case OpLt:
			ok = cmp < 0
		case OpLte:
			ok = cmp <= 0
		case OpGt:
			ok = cmp > 0
		case OpGte:
			ok = cmp >= 0
		}
		if !ok {
			return false
		}
	}
	return true
}

// orderRows sorts nil values last in both directions.
func orderRows(a, b any, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	cmp, _ := compareValues(a, b)
	if desc {
		return -cmp
	}
	return cmp
}

func (s *InMemoryStore) AddSale(sale models.Sale) error {
	return s.Insert(Sales, SaleRow(sale))
}

func (s *InMemoryStore) AddSaleItem(it models.SaleItem) error {
	return s.Insert(SaleItems, SaleItemRow(it))
}

func (s *InMemoryStore) AddProduct(p models.Product) error {
	return s.Insert(Products, ProductRow(p))
}

func (s *InMemoryStore) AddCategory(c models.Category) error {
	return s.Insert(Categories, CategoryRow(c))
}

func (s *InMemoryStore) AddCustomer(c models.Customer) error {
	return s.Insert(Customers, CustomerRow(c))
}

func (s *InMemoryStore) AddPaymentMethod(pm models.PaymentMethod) error {
	return s.Insert(PaymentMethods, PaymentMethodRow(pm))
}

func (s *InMemoryStore) AddPdvSetting(ps models.PdvSetting) error {
	return s.Insert(PdvSettings, PdvSettingRow(ps))
}

func (s *InMemoryStore) AddActivityLog(l models.ActivityLog) error {
	return s.Insert(ActivityLogs, ActivityLogRow(l))
}
