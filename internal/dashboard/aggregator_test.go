package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
	"github.com/shopspring/decimal"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newSale(n int, amount string) models.Sale {
	return models.Sale{
		ID:            uuid.New(),
		SaleNumber:    fmt.Sprintf("V%04d", n),
		TotalAmount:   decimal.RequireFromString(amount),
		FinalAmount:   decimal.RequireFromString(amount),
		PaymentMethod: "dinheiro",
		CreatedAt:     base.Add(time.Duration(n) * time.Hour),
	}
}

func newProduct(name string, stock int, active bool) models.Product {
	return models.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString("9.90"),
		StockQuantity: stock,
		IsActive:      active,
		CreatedAt:     base,
		UpdatedAt:     base,
	}
}

func seededStore(t *testing.T) *repo.InMemoryStore {
	t.Helper()
	s := repo.NewInMemoryStore()
	amounts := []string{"100.00", "250.50", "75.25", "10.00", "20.00", "30.00", "40.00"}
	// inserted out of chronological order on purpose
	for _, n := range []int{3, 1, 7, 5, 2, 6, 4} {
		if err := s.AddSale(newSale(n, amounts[n-1])); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range []models.Product{
		newProduct("Coffee", 3, true),
		newProduct("Sugar", 15, true),
		newProduct("Tea", 2, false),
		newProduct("Milk", 9, true),
	} {
		if err := s.AddProduct(p); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"Ana", "Bruno"} {
		if err := s.AddCustomer(models.Customer{ID: uuid.New(), Name: name, CreatedAt: base, UpdatedAt: base}); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestLoad(t *testing.T) {
	agg := NewAggregator(seededStore(t), DefaultConfig(), quietLog)

	snap, err := agg.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.TotalSales != 7 {
		t.Errorf("expected 7 sales, got %d", snap.TotalSales)
	}
	if snap.TotalProducts != 4 {
		t.Errorf("expected 4 products, got %d", snap.TotalProducts)
	}
	if snap.TotalCustomers != 2 {
		t.Errorf("expected 2 customers, got %d", snap.TotalCustomers)
	}
	if want := decimal.RequireFromString("525.75"); !snap.TotalRevenue.Equal(want) {
		t.Errorf("expected revenue %s, got %s", want, snap.TotalRevenue)
	}

	if len(snap.RecentSales) != 5 {
		t.Fatalf("expected 5 recent sales, got %d", len(snap.RecentSales))
	}
	for i, want := range []string{"V0007", "V0006", "V0005", "V0004", "V0003"} {
		if snap.RecentSales[i].SaleNumber != want {
			t.Errorf("recent sale %d: expected %s, got %s", i, want, snap.RecentSales[i].SaleNumber)
		}
	}
	for i := 1; i < len(snap.RecentSales); i++ {
		if !snap.RecentSales[i-1].CreatedAt.After(snap.RecentSales[i].CreatedAt) {
			t.Errorf("recent sales not strictly newest first at %d", i)
		}
	}

	if len(snap.LowStockProducts) != 2 {
		t.Fatalf("expected 2 low stock products, got %d", len(snap.LowStockProducts))
	}
	for _, p := range snap.LowStockProducts {
		if !p.IsActive || p.StockQuantity >= 10 {
			t.Errorf("unexpected low stock product %+v", p)
		}
	}
}

func TestLoad_ExampleRevenue(t *testing.T) {
	s := repo.NewInMemoryStore()
	for i, amount := range []string{"100.00", "250.50", "75.25"} {
		if err := s.AddSale(newSale(i+1, amount)); err != nil {
			t.Fatal(err)
		}
	}
	snap, err := NewAggregator(s, DefaultConfig(), quietLog).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.TotalRevenue.Equal(decimal.RequireFromString("425.75")) {
		t.Errorf("expected 425.75, got %s", snap.TotalRevenue)
	}
	if len(snap.RecentSales) != 3 {
		t.Errorf("expected min(5, 3) = 3 recent sales, got %d", len(snap.RecentSales))
	}
}

func TestLoad_EmptyStore(t *testing.T) {
	snap, err := NewAggregator(repo.NewInMemoryStore(), DefaultConfig(), quietLog).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.TotalSales != 0 || snap.TotalProducts != 0 || snap.TotalCustomers != 0 {
		t.Errorf("expected zero counts, got %+v", snap)
	}
	if !snap.TotalRevenue.IsZero() {
		t.Errorf("expected zero revenue, got %s", snap.TotalRevenue)
	}
	if snap.RecentSales == nil || len(snap.RecentSales) != 0 {
		t.Errorf("expected empty recent sales, got %#v", snap.RecentSales)
	}
	if snap.LowStockProducts == nil || len(snap.LowStockProducts) != 0 {
		t.Errorf("expected empty low stock list, got %#v", snap.LowStockProducts)
	}
}

func TestLoad_Repeatable(t *testing.T) {
	agg := NewAggregator(seededStore(t), DefaultConfig(), quietLog)

	first, err := agg.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := agg.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical snapshots\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestLoad_RevenueSumModeMatchesRows(t *testing.T) {
	store := seededStore(t)
	rows, err := NewAggregator(store, DefaultConfig(), quietLog).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.RevenueMode = RevenueSum
	sum, err := NewAggregator(store, cfg, quietLog).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !rows.TotalRevenue.Equal(sum.TotalRevenue) {
		t.Errorf("sum mode %s differs from rows mode %s", sum.TotalRevenue, rows.TotalRevenue)
	}
}

// faultyStore fails the read selected by fail.
type faultyStore struct {
	repo.Store
	fail func(op string, q repo.Query) bool
}

func (f *faultyStore) Count(ctx context.Context, q repo.Query) (int, error) {
	if f.fail("count", q) {
		return 0, &repo.StoreError{Kind: repo.Unavailable, Op: "count", Collection: q.Collection, Err: errors.New("connection refused")}
	}
	return f.Store.Count(ctx, q)
}

func (f *faultyStore) List(ctx context.Context, q repo.Query) ([]repo.Row, error) {
	if f.fail("list", q) {
		return nil, &repo.StoreError{Kind: repo.Unavailable, Op: "list", Collection: q.Collection, Err: errors.New("connection refused")}
	}
	return f.Store.List(ctx, q)
}

func TestLoad_FailsWhenAnyQueryFails(t *testing.T) {
	tests := []struct {
		query string
		fail  func(op string, q repo.Query) bool
	}{
		{QuerySaleCount, func(op string, q repo.Query) bool { return op == "count" && q.Collection == repo.Sales }},
		{QueryProductCount, func(op string, q repo.Query) bool { return op == "count" && q.Collection == repo.Products }},
		{QueryCustomerCount, func(op string, q repo.Query) bool { return op == "count" && q.Collection == repo.Customers }},
		{QueryRevenue, func(op string, q repo.Query) bool {
			return op == "list" && q.Collection == repo.Sales && len(q.OrderBy) == 0
		}},
		{QueryRecentSales, func(op string, q repo.Query) bool {
			return op == "list" && q.Collection == repo.Sales && len(q.OrderBy) > 0
		}},
		{QueryLowStock, func(op string, q repo.Query) bool { return op == "list" && q.Collection == repo.Products }},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			store := &faultyStore{Store: seededStore(t), fail: tt.fail}
			snap, err := NewAggregator(store, DefaultConfig(), quietLog).Load(context.Background())
			if err == nil {
				t.Fatalf("expected error, got snapshot %+v", snap)
			}
			if !errors.Is(err, ErrAggregation) {
				t.Errorf("expected ErrAggregation, got %v", err)
			}
			if !errors.Is(err, repo.ErrUnavailable) {
				t.Errorf("expected wrapped store error, got %v", err)
			}
			var ae *AggregationError
			if !errors.As(err, &ae) || ae.Query != tt.query {
				t.Errorf("expected failing query %q, got %v", tt.query, err)
			}
			if !reflect.DeepEqual(snap, Snapshot{}) {
				t.Errorf("expected no partial snapshot, got %+v", snap)
			}
		})
	}
}

func TestLoad_MalformedRowFails(t *testing.T) {
	s := repo.NewInMemoryStore()
	row := repo.SaleRow(newSale(1, "10.00"))
	row["created_at"] = "yesterday"
	if err := s.Insert(repo.Sales, row); err != nil {
		t.Fatal(err)
	}

	_, err := NewAggregator(s, DefaultConfig(), quietLog).Load(context.Background())
	if !errors.Is(err, repo.ErrMalformedRow) {
		t.Fatalf("expected malformed row error, got %v", err)
	}
	var ae *AggregationError
	if !errors.As(err, &ae) || ae.Query != QueryRecentSales {
		t.Errorf("expected recent_sales to fail, got %v", err)
	}
}

// unfilteredStore ignores predicates, standing in for a loosened store-side filter.
type unfilteredStore struct{ repo.Store }

func (u unfilteredStore) List(ctx context.Context, q repo.Query) ([]repo.Row, error) {
	q.Where = nil
	return u.Store.List(ctx, q)
}

func TestLoad_LowStockFilteredEvenIfStoreIsNot(t *testing.T) {
	snap, err := NewAggregator(unfilteredStore{seededStore(t)}, DefaultConfig(), quietLog).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.LowStockProducts) != 2 {
		t.Fatalf("expected 2 low stock products, got %d", len(snap.LowStockProducts))
	}
	for _, p := range snap.LowStockProducts {
		if p.Name != "Coffee" && p.Name != "Milk" {
			t.Errorf("unexpected product %s", p.Name)
		}
	}
}

// slowStore blocks every call until the context ends.
type slowStore struct{ repo.Store }

func (slowStore) Count(ctx context.Context, q repo.Query) (int, error) {
	<-ctx.Done()
	return 0, &repo.StoreError{Kind: repo.Unavailable, Op: "count", Collection: q.Collection, Err: ctx.Err()}
}

func TestLoad_Timeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LoadTimeout = 20 * time.Millisecond

	_, err := NewAggregator(slowStore{seededStore(t)}, cfg, quietLog).Load(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if !errors.Is(err, ErrAggregation) {
		t.Errorf("expected aggregation error, got %v", err)
	}
}

// gatedStore counts sale counts and holds them until the gate opens.
type gatedStore struct {
	repo.Store
	gate  chan struct{}
	calls atomic.Int32
}

func (g *gatedStore) Count(ctx context.Context, q repo.Query) (int, error) {
	if q.Collection == repo.Sales {
		g.calls.Add(1)
		<-g.gate
	}
	return g.Store.Count(ctx, q)
}

func TestLoad_ConcurrentCallsShareInflightLoad(t *testing.T) {
	store := &gatedStore{Store: seededStore(t), gate: make(chan struct{})}
	agg := NewAggregator(store, DefaultConfig(), quietLog)

	var wg sync.WaitGroup
	results := make([]Snapshot, 3)
	errs := make([]error, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = agg.Load(context.Background())
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(store.gate)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("load %d failed: %v", i, err)
		}
	}
	if n := store.calls.Load(); n != 1 {
		t.Errorf("expected a single sale count query, got %d", n)
	}

	// each caller owns its snapshot
	results[0].RecentSales[0].SaleNumber = "changed"
	if results[1].RecentSales[0].SaleNumber == "changed" {
		t.Errorf("snapshots share backing arrays")
	}
}

// blockingStore holds sale counts until the gate opens or the call's context ends.
type blockingStore struct {
	repo.Store
	gate  chan struct{}
	calls atomic.Int32
}

func (b *blockingStore) Count(ctx context.Context, q repo.Query) (int, error) {
	if q.Collection == repo.Sales {
		b.calls.Add(1)
		select {
		case <-b.gate:
		case <-ctx.Done():
			return 0, &repo.StoreError{Kind: repo.Unavailable, Op: "count", Collection: q.Collection, Err: ctx.Err()}
		}
	}
	return b.Store.Count(ctx, q)
}

func TestLoad_CanceledCallerDoesNotFailOthers(t *testing.T) {
	store := &blockingStore{Store: seededStore(t), gate: make(chan struct{})}
	agg := NewAggregator(store, DefaultConfig(), quietLog)

	first, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()

	firstErr := make(chan error, 1)
	go func() {
		_, err := agg.Load(first)
		firstErr <- err
	}()
	for store.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	type result struct {
		snap Snapshot
		err  error
	}
	second := make(chan result, 1)
	go func() {
		snap, err := agg.Load(context.Background())
		second <- result{snap, err}
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected canceled caller to get context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("canceled caller kept waiting for the shared load")
	}

	close(store.gate)
	res := <-second
	if res.err != nil {
		t.Fatalf("caller that was never canceled failed: %v", res.err)
	}
	if res.snap.TotalSales != 7 {
		t.Errorf("expected 7 sales, got %d", res.snap.TotalSales)
	}
	if n := store.calls.Load(); n != 1 {
		t.Errorf("expected one shared sale count query, got %d", n)
	}
}
