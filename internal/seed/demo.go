package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/pdv-dashboard/internal/auth"
	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
	"github.com/rogerio-castellano/pdv-dashboard/internal/repo"
	"github.com/shopspring/decimal"
)

const DemoPdvName = "PDV Demo"

type demoProduct struct {
	name     string
	category int
	price    string
	stock    int
	active   bool
}

var demoProducts = []demoProduct{
	{"Café 500g", 1, "18.90", 4, true},
	{"Açúcar 1kg", 1, "5.49", 32, true},
	{"Refrigerante 2L", 0, "9.99", 7, true},
	{"Água 500ml", 0, "2.50", 120, true},
	{"Chá Mate", 0, "6.75", 1, false},
}

type demoSale struct {
	customer int // -1 for walk-in
	payment  string
	discount string
	items    map[int]int // product index -> quantity
}

var demoSales = []demoSale{
	{-1, "Dinheiro", "", map[int]int{0: 2, 1: 1}},
	{0, "PIX", "5.00", map[int]int{2: 3}},
	{1, "Cartão de Crédito", "", map[int]int{3: 12}},
	{-1, "Cartão de Débito", "", map[int]int{0: 1}},
	{0, "PIX", "", map[int]int{1: 4, 2: 1}},
	{-1, "Dinheiro", "1.50", map[int]int{3: 6}},
}

// Demo fills an empty in-memory store with a small but complete catalog and
// sales history so the dashboard has something to show in memory mode.
func Demo(store *repo.InMemoryStore, now time.Time) error {
	if err := store.AddPdvSetting(models.PdvSetting{ID: uuid.New(), PdvName: DemoPdvName, CreatedAt: now, UpdatedAt: now}); err != nil {
		return err
	}

	for i, name := range []string{"Dinheiro", "PIX", "Cartão de Crédito", "Cartão de Débito"} {
		pm := models.PaymentMethod{ID: uuid.New(), Name: name, IsActive: true, IsDefault: i == 0, CreatedAt: now}
		if err := store.AddPaymentMethod(pm); err != nil {
			return err
		}
	}

	categories := make([]models.Category, 0, 2)
	for _, name := range []string{"Bebidas", "Mercearia"} {
		c := models.Category{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
		if err := store.AddCategory(c); err != nil {
			return err
		}
		categories = append(categories, c)
	}

	products := make([]models.Product, 0, len(demoProducts))
	for _, dp := range demoProducts {
		p := models.Product{
			ID:            uuid.New(),
			Name:          dp.name,
			Price:         decimal.RequireFromString(dp.price),
			StockQuantity: dp.stock,
			CategoryID:    &categories[dp.category].ID,
			IsActive:      dp.active,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := store.AddProduct(p); err != nil {
			return err
		}
		products = append(products, p)
	}

	customers := make([]models.Customer, 0, 2)
	for _, c := range []struct{ name, phone string }{{"Maria Souza", "(11) 98888-1111"}, {"João Lima", "(11) 97777-2222"}} {
		phone := c.phone
		cust := models.Customer{ID: uuid.New(), Name: c.name, Phone: &phone, CreatedAt: now, UpdatedAt: now}
		if err := store.AddCustomer(cust); err != nil {
			return err
		}
		customers = append(customers, cust)
	}

	for i, ds := range demoSales {
		createdAt := now.Add(-time.Duration(len(demoSales)-i) * time.Hour)
		sale := models.Sale{
			ID:            uuid.New(),
			SaleNumber:    fmt.Sprintf("VENDA-%05d", i+1),
			PaymentMethod: ds.payment,
			CreatedAt:     createdAt,
		}
		if ds.customer >= 0 {
			c := customers[ds.customer]
			sale.CustomerID = &c.ID
			sale.CustomerName = &c.Name
			sale.CustomerPhone = c.Phone
		}

		var items []models.SaleItem
		total := decimal.Zero
		for idx, qty := range ds.items {
			p := products[idx]
			line := p.Price.Mul(decimal.NewFromInt(int64(qty)))
			total = total.Add(line)
			items = append(items, models.SaleItem{
				ID:          uuid.New(),
				SaleID:      sale.ID,
				ProductID:   &p.ID,
				ProductName: p.Name,
				Quantity:    qty,
				UnitPrice:   p.Price,
				TotalPrice:  line,
				CreatedAt:   createdAt,
			})
		}
		sale.TotalAmount = total
		sale.FinalAmount = total
		if ds.discount != "" {
			d := decimal.RequireFromString(ds.discount)
			sale.DiscountAmount = &d
			sale.FinalAmount = total.Sub(d)
		}
		status := "completed"
		sale.Status = &status

		if err := store.AddSale(sale); err != nil {
			return err
		}
		for _, it := range items {
			if err := store.AddSaleItem(it); err != nil {
				return err
			}
		}

		newData, err := json.Marshal(sale)
		if err != nil {
			return err
		}
		id := sale.ID.String()
		entry := models.ActivityLog{
			ID:          uuid.New(),
			Action:      "INSERT",
			TableName:   string(repo.Sales),
			RecordID:    &id,
			Description: "sale " + sale.SaleNumber + " registered",
			NewData:     newData,
			CreatedAt:   createdAt,
		}
		if err := store.AddActivityLog(entry); err != nil {
			return err
		}
	}
	return nil
}

// Admin creates the sign-in account unless it already exists.
func Admin(ctx context.Context, users repo.UserRepository, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = users.CreateUser(ctx, models.User{Email: email, PasswordHash: hash})
	if errors.Is(err, repo.ErrDuplicateUser) {
		return nil
	}
	return err
}
