package models

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportInventoryExcel renders the current registry (optionally filtered)
// as a workbook with a valuation footer.
func ExportInventoryExcel(ctx context.Context, filter *ItemFilter) (*excelize.File, error) {

	items, err := ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Name", "SKU", "Category", "Supplier", "Quantity", "MinStockLevel", "Status", "CostPrice", "SellingPrice", "StockValue"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, header)
	}

	for i, item := range items {
		row := i + 2
		stockValue := item.CostPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		f.SetCellValue(sheet, "A"+fmt.Sprint(row), item.Name)
		f.SetCellValue(sheet, "B"+fmt.Sprint(row), item.Sku)
		f.SetCellValue(sheet, "C"+fmt.Sprint(row), item.Category)
		f.SetCellValue(sheet, "D"+fmt.Sprint(row), item.Supplier)
		f.SetCellValue(sheet, "E"+fmt.Sprint(row), item.Quantity)
		f.SetCellValue(sheet, "F"+fmt.Sprint(row), item.MinStockLevel)
		f.SetCellValue(sheet, "G"+fmt.Sprint(row), string(item.StockStatus()))
		f.SetCellValue(sheet, "H"+fmt.Sprint(row), item.CostPrice.String())
		f.SetCellValue(sheet, "I"+fmt.Sprint(row), item.SellingPrice.String())
		f.SetCellValue(sheet, "J"+fmt.Sprint(row), stockValue.String())
	}

	valuation := ValuateStock(items)
	totalRow := len(items) + 3
	f.SetCellValue(sheet, "A"+fmt.Sprint(totalRow), "Totals")
	f.SetCellValue(sheet, "E"+fmt.Sprint(totalRow), valuation.UnitCount)
	f.SetCellValue(sheet, "H"+fmt.Sprint(totalRow), valuation.CostValue.String())
	f.SetCellValue(sheet, "I"+fmt.Sprint(totalRow), valuation.SellingValue.String())

	return f, nil
}
