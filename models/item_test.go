package models_test

import (
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
)

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		quantity int
		min      int
		want     models.StockStatus
	}{
		{0, 20, models.StockStatusLow},
		{20, 20, models.StockStatusLow},
		{21, 20, models.StockStatusMedium},
		{25, 20, models.StockStatusMedium},
		{40, 20, models.StockStatusMedium},
		{41, 20, models.StockStatusGood},
		{45, 20, models.StockStatusGood},
		{0, 0, models.StockStatusLow},
		{1, 0, models.StockStatusGood},
	}
	for _, c := range cases {
		if got := models.ClassifyStock(c.quantity, c.min); got != c.want {
			t.Errorf("ClassifyStock(%d, %d) = %s, want %s", c.quantity, c.min, got, c.want)
		}
	}
}

func TestCreateItemBooksOpeningStock(t *testing.T) {
	ctx := setupStore(t, "store-1")

	item := mustCreateItem(t, ctx, &models.NewItem{
		Name: "Rice", Sku: "RICE001", Category: "Groceries",
		CostPrice: dec("45"), SellingPrice: dec("60"),
		Quantity: 150, MinStockLevel: 20,
	})
	if item.Quantity != 150 {
		t.Fatalf("quantity = %d, want 150", item.Quantity)
	}

	transactions, err := models.ListIncomingTransactions(ctx)
	if err != nil {
		t.Fatalf("ListIncomingTransactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("incoming count = %d, want 1", len(transactions))
	}
	opening := transactions[0]
	if opening.ItemId != item.ID || opening.Quantity != 150 {
		t.Errorf("opening transaction = item %d qty %d, want item %d qty 150", opening.ItemId, opening.Quantity, item.ID)
	}
	if opening.Notes != "Opening stock" {
		t.Errorf("opening notes = %q", opening.Notes)
	}
	if !opening.TotalCost.Equal(dec("6750")) {
		t.Errorf("opening total cost = %s, want 6750", opening.TotalCost)
	}
	if opening.TransactionNumber != "IN-1" {
		t.Errorf("opening transaction number = %q, want IN-1", opening.TransactionNumber)
	}
}

func TestCreateItemZeroQuantityBooksNothing(t *testing.T) {
	ctx := setupStore(t, "store-1")

	mustCreateItem(t, ctx, &models.NewItem{Name: "Bread", Sku: "BREAD001"})

	transactions, err := models.ListIncomingTransactions(ctx)
	if err != nil {
		t.Fatalf("ListIncomingTransactions: %v", err)
	}
	if len(transactions) != 0 {
		t.Fatalf("incoming count = %d, want 0", len(transactions))
	}
}

func TestCreateItemCollectsAllViolations(t *testing.T) {
	ctx := setupStore(t, "store-1")

	_, err := models.CreateItem(ctx, &models.NewItem{
		Name: "", Sku: "", CostPrice: dec("-1"), Quantity: -5,
	})

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Violations) != 4 {
		t.Fatalf("violations = %v, want 4 entries", verr.Violations)
	}
}

func TestDuplicateSkuIsCaseInsensitive(t *testing.T) {
	ctx := setupStore(t, "store-1")

	mustCreateItem(t, ctx, &models.NewItem{Name: "Rice", Sku: "RICE001"})

	_, err := models.CreateItem(ctx, &models.NewItem{Name: "Other Rice", Sku: "rice001"})
	var skuErr *models.DuplicateSkuError
	if !errors.As(err, &skuErr) {
		t.Fatalf("expected DuplicateSkuError, got %v", err)
	}

	// updating an item keeping its own sku is fine
	item := mustCreateItem(t, ctx, &models.NewItem{Name: "Oil", Sku: "OIL001"})
	ownSku := "OIL001"
	if _, err := models.UpdateItem(ctx, item.ID, &models.UpdateItemInput{Sku: &ownSku}); err != nil {
		t.Fatalf("UpdateItem with own sku: %v", err)
	}
	// taking another item's sku is not
	takenSku := "Rice001"
	if _, err := models.UpdateItem(ctx, item.ID, &models.UpdateItemInput{Sku: &takenSku}); !errors.As(err, &skuErr) {
		t.Fatalf("expected DuplicateSkuError, got %v", err)
	}
}

func TestUpdateItemLeavesOmittedFieldsAlone(t *testing.T) {
	ctx := setupStore(t, "store-1")

	item := mustCreateItem(t, ctx, &models.NewItem{
		Name:          "Rice",
		Sku:           "RICE001",
		Category:      "Groceries",
		CostPrice:     dec("45"),
		Quantity:      150,
		MinStockLevel: 20,
	})

	name := "Rice Premium"
	updated, err := models.UpdateItem(ctx, item.ID, &models.UpdateItemInput{Name: &name})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Name != "Rice Premium" {
		t.Fatalf("name = %q, want Rice Premium", updated.Name)
	}

	stored, err := models.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if stored.Quantity != 150 || stored.MinStockLevel != 20 {
		t.Fatalf("quantity/min = %d/%d, want 150/20", stored.Quantity, stored.MinStockLevel)
	}
	if !stored.CostPrice.Equal(dec("45")) {
		t.Fatalf("cost price = %s, want 45", stored.CostPrice)
	}
	if stored.Category != "Groceries" {
		t.Fatalf("category = %q, want Groceries", stored.Category)
	}
}

func TestGetItemScopedToStore(t *testing.T) {
	ctx := setupStore(t, "store-1")
	item := mustCreateItem(t, ctx, &models.NewItem{Name: "Rice", Sku: "RICE001"})

	if _, err := models.GetItem(ctx, item.ID); err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if _, err := models.GetItem(ctx, item.ID+999); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}

	otherCtx := utils.SetStoreIdInContext(ctx, "store-2")
	if _, err := models.GetItem(otherCtx, item.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected record not found from another store, got %v", err)
	}
}

func TestListItemsFilters(t *testing.T) {
	ctx := setupStore(t, "store-1")

	mustCreateItem(t, ctx, &models.NewItem{
		Name: "Rice - Basmati", Sku: "RICE001", Category: "Groceries",
		Quantity: 150, MinStockLevel: 20,
	})
	mustCreateItem(t, ctx, &models.NewItem{
		Name: "Cooking Oil", Sku: "OIL001", Category: "Groceries",
		Quantity: 8, MinStockLevel: 10,
	})
	mustCreateItem(t, ctx, &models.NewItem{
		Name: "Milk", Sku: "MILK001", Category: "Dairy",
		Quantity: 25, MinStockLevel: 15,
	})

	search, err := models.ListItems(ctx, &models.ItemFilter{Search: "rice"})
	if err != nil {
		t.Fatalf("ListItems search: %v", err)
	}
	if len(search) != 1 || search[0].Sku != "RICE001" {
		t.Fatalf("search results = %v", skus(search))
	}

	category, err := models.ListItems(ctx, &models.ItemFilter{Category: "Groceries"})
	if err != nil {
		t.Fatalf("ListItems category: %v", err)
	}
	if len(category) != 2 {
		t.Fatalf("category results = %v", skus(category))
	}

	low := models.StockStatusLow
	lowItems, err := models.ListItems(ctx, &models.ItemFilter{StockStatus: &low})
	if err != nil {
		t.Fatalf("ListItems low: %v", err)
	}
	if len(lowItems) != 1 || lowItems[0].Sku != "OIL001" {
		t.Fatalf("low results = %v", skus(lowItems))
	}

	medium := models.StockStatusMedium
	mediumItems, err := models.ListItems(ctx, &models.ItemFilter{StockStatus: &medium})
	if err != nil {
		t.Fatalf("ListItems medium: %v", err)
	}
	if len(mediumItems) != 1 || mediumItems[0].Sku != "MILK001" {
		t.Fatalf("medium results = %v", skus(mediumItems))
	}

	sorted, err := models.ListItems(ctx, &models.ItemFilter{SortBy: "quantity"})
	if err != nil {
		t.Fatalf("ListItems sorted: %v", err)
	}
	if len(sorted) != 3 || sorted[0].Sku != "OIL001" || sorted[2].Sku != "RICE001" {
		t.Fatalf("sorted results = %v", skus(sorted))
	}
}

func TestListCategories(t *testing.T) {
	ctx := setupStore(t, "store-1")

	mustCreateItem(t, ctx, &models.NewItem{Name: "Rice", Sku: "RICE001", Category: "Groceries"})
	mustCreateItem(t, ctx, &models.NewItem{Name: "Milk", Sku: "MILK001", Category: "Dairy"})
	mustCreateItem(t, ctx, &models.NewItem{Name: "Oil", Sku: "OIL001", Category: "Groceries"})
	mustCreateItem(t, ctx, &models.NewItem{Name: "Misc", Sku: "MISC001"})

	categories, err := models.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Dairy" || categories[1] != "Groceries" {
		t.Fatalf("categories = %v", categories)
	}
}

func TestDeleteItemKeepsHistory(t *testing.T) {
	ctx := setupStore(t, "store-1")
	item := mustCreateItem(t, ctx, &models.NewItem{
		Name: "Rice", Sku: "RICE001", Quantity: 10, CostPrice: dec("45"),
	})

	if _, err := models.DeleteItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, err := models.GetItem(ctx, item.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("expected record not found after delete, got %v", err)
	}

	transactions, err := models.ListIncomingTransactions(ctx)
	if err != nil {
		t.Fatalf("ListIncomingTransactions: %v", err)
	}
	if len(transactions) != 1 || transactions[0].ItemName != "Rice" {
		t.Fatalf("history after delete = %d rows", len(transactions))
	}
}

func skus(items []*models.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Sku)
	}
	return out
}
