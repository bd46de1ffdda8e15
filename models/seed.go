package models

import (
	"context"
	"errors"
	"fmt"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/shopspring/decimal"
)

// SeedDemoData loads the demo catalog and a little transaction history into
// an empty store. Everything goes through the ledger functions so the seeded
// quantities satisfy the ledger invariant. No-op when the store has items.
func SeedDemoData(ctx context.Context) error {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return errors.New("store id is required")
	}

	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&Item{}).
		Where("store_id = ?", storeId).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demoItems := []*NewItem{
		{
			Name: "Rice - Basmati 1kg", Sku: "RICE001", Category: "Groceries",
			Description: "Premium Basmati Rice", Supplier: "ABC Distributors",
			CostPrice: decimal.NewFromInt(45), SellingPrice: decimal.NewFromInt(60),
			Quantity: 150, MinStockLevel: 20,
		},
		{
			Name: "Cooking Oil - 1L", Sku: "OIL001", Category: "Groceries",
			Description: "Refined Cooking Oil", Supplier: "XYZ Foods",
			CostPrice: decimal.NewFromInt(120), SellingPrice: decimal.NewFromInt(150),
			Quantity: 8, MinStockLevel: 10,
		},
		{
			Name: "Milk - 500ml", Sku: "MILK001", Category: "Dairy",
			Description: "Fresh Milk", Supplier: "Local Dairy",
			CostPrice: decimal.NewFromInt(25), SellingPrice: decimal.NewFromInt(32),
			Quantity: 45, MinStockLevel: 15,
		},
		{
			Name: "Bread - White", Sku: "BREAD001", Category: "Bakery",
			Description: "Fresh White Bread", Supplier: "City Bakery",
			CostPrice: decimal.NewFromInt(18), SellingPrice: decimal.NewFromInt(25),
			Quantity: 25, MinStockLevel: 10,
		},
		{
			Name: "Sugar - 1kg", Sku: "SUGAR001", Category: "Groceries",
			Description: "White Sugar", Supplier: "Sweet Suppliers",
			CostPrice: decimal.NewFromInt(40), SellingPrice: decimal.NewFromInt(50),
			Quantity: 75, MinStockLevel: 20,
		},
	}

	itemsBySku := make(map[string]*Item, len(demoItems))
	for _, input := range demoItems {
		item, err := CreateItem(ctx, input)
		if err != nil {
			return fmt.Errorf("seed item %s: %w", input.Sku, err)
		}
		itemsBySku[item.Sku] = item
	}

	incoming := []*NewIncomingTransaction{
		{
			ItemId: itemsBySku["RICE001"].ID, Quantity: 50, CostPrice: decimal.NewFromInt(45),
			Supplier: "ABC Distributors", InvoiceNumber: "INV-2024-001", Notes: "Good quality batch",
		},
		{
			ItemId: itemsBySku["MILK001"].ID, Quantity: 30, CostPrice: decimal.NewFromInt(25),
			Supplier: "Local Dairy", InvoiceNumber: "INV-2024-002",
		},
	}
	for _, input := range incoming {
		if _, err := CreateIncomingTransaction(ctx, input); err != nil {
			return fmt.Errorf("seed incoming transaction: %w", err)
		}
	}

	outgoing := []*NewOutgoingTransaction{
		{
			ItemId: itemsBySku["RICE001"].ID, Quantity: 2, SellingPrice: decimal.NewFromInt(60),
			CustomerName: "John Doe", PaymentMethod: "cash",
		},
		{
			ItemId: itemsBySku["MILK001"].ID, Quantity: 5, SellingPrice: decimal.NewFromInt(32),
			CustomerName: "Jane Smith", PaymentMethod: "card",
		},
	}
	for _, input := range outgoing {
		if _, err := CreateOutgoingTransaction(ctx, input); err != nil {
			return fmt.Errorf("seed outgoing transaction: %w", err)
		}
	}

	return nil
}

// SeedAdminUser creates (or keeps) the store's admin login.
func SeedAdminUser(ctx context.Context, storeId string, name string, email string, password string) (*User, error) {
	db := config.GetDB()
	var existing User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}

	return CreateUser(ctx, &NewUser{
		StoreId:  storeId,
		Name:     name,
		Email:    email,
		Password: password,
	})
}
