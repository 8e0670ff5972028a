package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// RevenueMode selects how total revenue is computed.
type RevenueMode string

const (
	// RevenueRows fetches every sale's final_amount and sums client-side.
	RevenueRows RevenueMode = "rows"
	// RevenueSum asks the store for SUM(final_amount) when it supports it.
	RevenueSum RevenueMode = "sum"
)

type Config struct {
	LowStockThreshold int
	RecentSalesLimit  int
	RevenueMode       RevenueMode
	// LoadTimeout bounds a whole load; zero means no deadline.
	LoadTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		LowStockThreshold: DefaultLowStockThreshold,
		RecentSalesLimit:  5,
		RevenueMode:       RevenueRows,
	}
}

// Aggregator builds dashboard snapshots from the store.
type Aggregator struct {
	store repo.Store
	cfg   Config
	log   *slog.Logger

	inflight singleflight.Group
}

func NewAggregator(store repo.Store, cfg Config, log *slog.Logger) *Aggregator {
	def := DefaultConfig()
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = def.LowStockThreshold
	}
	if cfg.RecentSalesLimit <= 0 {
		cfg.RecentSalesLimit = def.RecentSalesLimit
	}
	if cfg.RevenueMode == "" {
		cfg.RevenueMode = def.RevenueMode
	}
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{store: store, cfg: cfg, log: log}
}

// Load issues the six dashboard reads concurrently and merges them into a Snapshot.
// If any read fails the whole load fails with an *AggregationError and no snapshot.
// Calls made while a load is in flight share its result. The shared load is not
// tied to any one caller's cancellation; a caller whose ctx ends stops waiting
// and gets ctx.Err() while the others keep going.
func (a *Aggregator) Load(ctx context.Context) (Snapshot, error) {
	shared := context.WithoutCancel(ctx)
	ch := a.inflight.DoChan("load", func() (any, error) {
		return a.load(shared)
	})

	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Snapshot{}, res.Err
		}
		return res.Val.(Snapshot).clone(), nil
	}
}

func (a *Aggregator) load(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	if a.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.LoadTimeout)
		defer cancel()
	}

	var (
		totalSales     int
		totalProducts  int
		totalCustomers int
		revenue        decimal.Decimal
		recent         []models.Sale
		lowStock       []models.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	run := func(name string, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(gctx); err != nil {
				return &AggregationError{Query: name, Err: err}
			}
			return nil
		})
	}

	run(QuerySaleCount, func(ctx context.Context) (err error) {
		totalSales, err = a.store.Count(ctx, repo.From(repo.Sales))
		return err
	})
	run(QueryProductCount, func(ctx context.Context) (err error) {
		totalProducts, err = a.store.Count(ctx, repo.From(repo.Products))
		return err
	})
	run(QueryCustomerCount, func(ctx context.Context) (err error) {
		totalCustomers, err = a.store.Count(ctx, repo.From(repo.Customers))
		return err
	})
	run(QueryRevenue, func(ctx context.Context) (err error) {
		revenue, err = a.revenue(ctx)
		return err
	})
	run(QueryRecentSales, func(ctx context.Context) error {
		rows, err := a.store.List(ctx, repo.From(repo.Sales).
			Order("created_at", true).
			Order("id", true).
			Take(a.cfg.RecentSalesLimit))
		if err != nil {
			return err
		}
		recent, err = repo.DecodeAll(rows, repo.DecodeSale)
		return err
	})
	run(QueryLowStock, func(ctx context.Context) error {
		rows, err := a.store.List(ctx, repo.From(repo.Products).Filter(
			repo.Lt("stock_quantity", a.cfg.LowStockThreshold),
			repo.Eq("is_active", true),
		))
		if err != nil {
			return err
		}
		products, err := repo.DecodeAll(rows, repo.DecodeProduct)
		if err != nil {
			return err
		}
		lowStock = LowStock(products, a.cfg.LowStockThreshold)
		return nil
	})

	err := g.Wait()
	loadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		loadsTotal.WithLabelValues("error").Inc()
		query := ""
		var ae *AggregationError
		if errors.As(err, &ae) {
			query = ae.Query
			queryFailures.WithLabelValues(query).Inc()
		}
		a.log.Warn("dashboard load failed", "query", query, "err", err, "elapsed", time.Since(start))
		return Snapshot{}, err
	}
	loadsTotal.WithLabelValues("ok").Inc()

	snap := Snapshot{
		TotalSales:       totalSales,
		TotalProducts:    totalProducts,
		TotalCustomers:   totalCustomers,
		TotalRevenue:     revenue,
		RecentSales:      recent,
		LowStockProducts: lowStock,
	}.clone()

	a.log.Debug("dashboard loaded",
		"sales", snap.TotalSales,
		"products", snap.TotalProducts,
		"customers", snap.TotalCustomers,
		"revenue", snap.TotalRevenue.String(),
		"low_stock", len(snap.LowStockProducts),
		"elapsed", time.Since(start),
	)
	return snap, nil
}

func (a *Aggregator) revenue(ctx context.Context) (decimal.Decimal, error) {
	q := repo.From(repo.Sales).Select("final_amount")
	if a.cfg.RevenueMode == RevenueSum {
		if s, ok := a.store.(repo.Summer); ok {
			return s.Sum(ctx, q, "final_amount")
		}
	}
	rows, err := a.store.List(ctx, q)
	if err != nil {
		return decimal.Zero, err
	}
	return TotalRevenue(rows, "final_amount"), nil
}
