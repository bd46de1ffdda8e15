package models_test

import (
	"testing"

	"bitbucket.org/mmdatafocus/storestock_backend/models"
)

func TestExportInventoryExcel(t *testing.T) {
	ctx := setupStore(t, "store-1")

	mustCreateItem(t, ctx, &models.NewItem{
		Name: "Rice", Sku: "RICE001", Category: "Groceries",
		CostPrice: dec("45"), SellingPrice: dec("60"),
		Quantity: 10, MinStockLevel: 20,
	})

	workbook, err := models.ExportInventoryExcel(ctx, nil)
	if err != nil {
		t.Fatalf("ExportInventoryExcel: %v", err)
	}
	defer workbook.Close()

	header, err := workbook.GetCellValue("Sheet1", "A1")
	if err != nil || header != "Name" {
		t.Fatalf("A1 = %q, %v", header, err)
	}
	sku, err := workbook.GetCellValue("Sheet1", "B2")
	if err != nil || sku != "RICE001" {
		t.Fatalf("B2 = %q, %v", sku, err)
	}
	status, err := workbook.GetCellValue("Sheet1", "G2")
	if err != nil || status != "low" {
		t.Fatalf("G2 = %q, %v", status, err)
	}
	total, err := workbook.GetCellValue("Sheet1", "J2")
	if err != nil || total != "450" {
		t.Fatalf("J2 = %q, %v", total, err)
	}
}
