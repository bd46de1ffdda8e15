package models_test

import (
	"context"
	"testing"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/shopspring/decimal"
)

// setupStore gives each test a fresh in-memory database scoped to one store.
func setupStore(t *testing.T, storeId string) context.Context {
	t.Helper()
	config.ConnectTestDatabase()
	models.MigrateTable()

	ctx := utils.SetStoreIdInContext(context.Background(), storeId)
	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Test")
	return ctx
}

func mustCreateItem(t *testing.T, ctx context.Context, input *models.NewItem) *models.Item {
	t.Helper()
	item, err := models.CreateItem(ctx, input)
	if err != nil {
		t.Fatalf("CreateItem %s: %v", input.Sku, err)
	}
	return item
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
