package models_test

import (
	"testing"

	"bitbucket.org/mmdatafocus/storestock_backend/models"
)

func TestSeedDemoData(t *testing.T) {
	ctx := setupStore(t, "store-1")

	if err := models.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData: %v", err)
	}

	items, err := models.ListItems(ctx, nil)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("item count = %d, want 5", len(items))
	}

	// seeding goes through the ledger, so quantities match it exactly
	incoming, err := models.ListIncomingTransactions(ctx)
	if err != nil {
		t.Fatalf("ListIncomingTransactions: %v", err)
	}
	outgoing, err := models.ListOutgoingTransactions(ctx)
	if err != nil {
		t.Fatalf("ListOutgoingTransactions: %v", err)
	}
	totals := make(map[int]int)
	for _, tr := range incoming {
		totals[tr.ItemId] += tr.Quantity
	}
	for _, tr := range outgoing {
		totals[tr.ItemId] -= tr.Quantity
	}
	for _, item := range items {
		if totals[item.ID] != item.Quantity {
			t.Errorf("item %s: ledger %d, stored %d", item.Sku, totals[item.ID], item.Quantity)
		}
	}

	// seeded sales come from the demo script
	rice := findSku(t, items, "RICE001")
	if rice.Quantity != 198 {
		t.Errorf("rice quantity = %d, want 198 (150 opening + 50 received - 2 sold)", rice.Quantity)
	}
	milk := findSku(t, items, "MILK001")
	if milk.Quantity != 70 {
		t.Errorf("milk quantity = %d, want 70 (45 opening + 30 received - 5 sold)", milk.Quantity)
	}

	// a second run against a populated store is a no-op
	if err := models.SeedDemoData(ctx); err != nil {
		t.Fatalf("second SeedDemoData: %v", err)
	}
	again, err := models.ListItems(ctx, nil)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(again) != 5 {
		t.Fatalf("item count after reseed = %d, want 5", len(again))
	}
}

func findSku(t *testing.T, items []*models.Item, sku string) *models.Item {
	t.Helper()
	for _, item := range items {
		if item.Sku == sku {
			return item
		}
	}
	t.Fatalf("sku %s not found", sku)
	return nil
}
