package export

import (
	"fmt"
	"io"

	"github.com/rogerio-castellano/pdv-dashboard/internal/dashboard"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet     = "Summary"
	RecentSalesSheet = "Recent Sales"
	LowStockSheet    = "Low Stock"
)

// Workbook renders one snapshot as a spreadsheet. Amounts are written as
// numbers; formatting them for a locale is left to the reader.
func Workbook(pdvName string, snap dashboard.Snapshot) (_ *excelize.File, err error) {
	f := excelize.NewFile()
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()

	if err = f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"PDV", pdvName},
		{"Total sales", snap.TotalSales},
		{"Total products", snap.TotalProducts},
		{"Total customers", snap.TotalCustomers},
		{"Total revenue", snap.TotalRevenue.InexactFloat64()},
	}
	if err = writeRows(f, SummarySheet, summary); err != nil {
		return nil, err
	}

	if _, err = f.NewSheet(RecentSalesSheet); err != nil {
		return nil, err
	}
	sales := [][]any{{"Sale number", "Customer", "Payment method", "Final amount", "Created at"}}
	for _, s := range snap.RecentSales {
		customer := ""
		if s.CustomerName != nil {
			customer = *s.CustomerName
		}
		sales = append(sales, []any{s.SaleNumber, customer, s.PaymentMethod, s.FinalAmount.InexactFloat64(), s.CreatedAt})
	}
	if err = writeRows(f, RecentSalesSheet, sales); err != nil {
		return nil, err
	}

	if _, err = f.NewSheet(LowStockSheet); err != nil {
		return nil, err
	}
	low := [][]any{{"Product", "Stock", "Price"}}
	for _, p := range snap.LowStockProducts {
		low = append(low, []any{p.Name, p.StockQuantity, p.Price.InexactFloat64()})
	}
	if err = writeRows(f, LowStockSheet, low); err != nil {
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Write renders the snapshot straight to w.
func Write(w io.Writer, pdvName string, snap dashboard.Snapshot) error {
	f, err := Workbook(pdvName, snap)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}
