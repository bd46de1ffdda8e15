package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Item struct {
	ID            int             `gorm:"primary_key" json:"id"`
	StoreId       string          `gorm:"index;not null" json:"store_id"`
	Name          string          `gorm:"size:255;not null" json:"name" binding:"required"`
	Sku           string          `gorm:"size:100;not null;index" json:"sku" binding:"required"`
	Category      string          `gorm:"size:100;index" json:"category"`
	Description   string          `gorm:"type:text" json:"description"`
	Supplier      string          `gorm:"size:255" json:"supplier"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_price"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"selling_price"`
	Quantity      int             `gorm:"not null;default:0" json:"quantity"`
	MinStockLevel int             `gorm:"not null;default:0" json:"min_stock_level"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewItem struct {
	Name          string          `json:"name"`
	Sku           string          `json:"sku"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Supplier      string          `json:"supplier"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int             `json:"quantity"`
	MinStockLevel int             `json:"min_stock_level"`
}

// ClassifyStock is the single stock-level rule used by registry filtering and
// the dashboard: low when at or under the restock threshold, medium up to
// twice the threshold, good above that.
func ClassifyStock(quantity int, minStockLevel int) StockStatus {
	switch {
	case quantity <= minStockLevel:
		return StockStatusLow
	case quantity <= 2*minStockLevel:
		return StockStatusMedium
	default:
		return StockStatusGood
	}
}

func (item *Item) StockStatus() StockStatus {
	return ClassifyStock(item.Quantity, item.MinStockLevel)
}

// sqlite rejects FOR UPDATE and serializes writers on its own
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// validate input for both create & update. (id = 0 for create)
// Collects every broken constraint instead of stopping at the first.
func (input *NewItem) validate(ctx context.Context, storeId string, id int) error {
	verr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		verr.Add("name is required")
	}
	if strings.TrimSpace(input.Sku) == "" {
		verr.Add("sku is required")
	}
	if input.CostPrice.IsNegative() {
		verr.Add("cost price must not be negative")
	}
	if input.SellingPrice.IsNegative() {
		verr.Add("selling price must not be negative")
	}
	if input.Quantity < 0 {
		verr.Add("quantity must not be negative")
	}
	if input.MinStockLevel < 0 {
		verr.Add("min stock level must not be negative")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	// sku must be unique across the store's other items, case-insensitively
	count, err := utils.ResourceCountWhere[Item](ctx, storeId, "LOWER(sku) = ? AND NOT id = ?",
		strings.ToLower(strings.TrimSpace(input.Sku)), id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &DuplicateSkuError{Sku: input.Sku}
	}
	return nil
}

func CreateItem(ctx context.Context, input *NewItem) (*Item, error) {

	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	if err := input.validate(ctx, storeId, 0); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := Item{
		StoreId:       storeId,
		Name:          input.Name,
		Sku:           strings.TrimSpace(input.Sku),
		Category:      input.Category,
		Description:   input.Description,
		Supplier:      input.Supplier,
		CostPrice:     input.CostPrice,
		SellingPrice:  input.SellingPrice,
		Quantity:      input.Quantity,
		MinStockLevel: input.MinStockLevel,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// The opening quantity is booked as an incoming transaction so the
	// ledger reproduces the on-hand count from day one.
	if input.Quantity > 0 {
		_, err := appendIncoming(tx, ctx, storeId, &item, input.Quantity, item.CostPrice, IncomingMetadata{
			Supplier: item.Supplier,
			Notes:    "Opening stock",
		}, now)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	clearCategoryCache(storeId)
	return &item, nil
}

func GetItem(ctx context.Context, id int) (*Item, error) {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}
	return utils.FetchModel[Item](ctx, storeId, id)
}

type ItemFilter struct {
	// Search matches name or sku as a case-insensitive substring.
	Search      string
	Category    string
	StockStatus *StockStatus
	SortBy      string
}

// ListItems never mutates state; default order is insertion (id) order.
func ListItems(ctx context.Context, filter *ItemFilter) ([]*Item, error) {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("store_id = ?", storeId)

	if filter != nil {
		if s := strings.TrimSpace(filter.Search); s != "" {
			pattern := "%" + strings.ToLower(s) + "%"
			dbCtx = dbCtx.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
		}
		if filter.Category != "" {
			dbCtx = dbCtx.Where("category = ?", filter.Category)
		}
		if filter.StockStatus != nil {
			switch *filter.StockStatus {
			case StockStatusLow:
				dbCtx = dbCtx.Where("quantity <= min_stock_level")
			case StockStatusMedium:
				dbCtx = dbCtx.Where("quantity > min_stock_level AND quantity <= 2 * min_stock_level")
			case StockStatusGood:
				dbCtx = dbCtx.Where("quantity > 2 * min_stock_level")
			}
		}
	}

	order := "id"
	if filter != nil {
		switch filter.SortBy {
		case "name":
			order = "name"
		case "quantity":
			order = "quantity"
		case "created_at":
			order = "created_at"
		}
	}

	var results []*Item
	if err := dbCtx.Order(order).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateItemInput is a partial edit: nil fields keep their stored values.
type UpdateItemInput struct {
	Name          *string          `json:"name"`
	Sku           *string          `json:"sku"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Supplier      *string          `json:"supplier"`
	CostPrice     *decimal.Decimal `json:"cost_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	Quantity      *int             `json:"quantity"`
	MinStockLevel *int             `json:"min_stock_level"`
}

// UpdateItem merges the supplied fields over the stored item and validates
// the merged result as a whole, so a partial edit can still fail on a
// constraint it did not touch.
func UpdateItem(ctx context.Context, id int, input *UpdateItemInput) (*Item, error) {

	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	item, err := utils.FetchModel[Item](ctx, storeId, id)
	if err != nil {
		return nil, err
	}

	merged := NewItem{
		Name:          item.Name,
		Sku:           item.Sku,
		Category:      item.Category,
		Description:   item.Description,
		Supplier:      item.Supplier,
		CostPrice:     item.CostPrice,
		SellingPrice:  item.SellingPrice,
		Quantity:      item.Quantity,
		MinStockLevel: item.MinStockLevel,
	}
	if input.Name != nil {
		merged.Name = *input.Name
	}
	if input.Sku != nil {
		merged.Sku = *input.Sku
	}
	if input.Category != nil {
		merged.Category = *input.Category
	}
	if input.Description != nil {
		merged.Description = *input.Description
	}
	if input.Supplier != nil {
		merged.Supplier = *input.Supplier
	}
	if input.CostPrice != nil {
		merged.CostPrice = *input.CostPrice
	}
	if input.SellingPrice != nil {
		merged.SellingPrice = *input.SellingPrice
	}
	if input.Quantity != nil {
		merged.Quantity = *input.Quantity
	}
	if input.MinStockLevel != nil {
		merged.MinStockLevel = *input.MinStockLevel
	}

	if err := merged.validate(ctx, storeId, id); err != nil {
		return nil, err
	}

	// Editing quantity here is an administrative correction outside the
	// ledger; the rebuild tool reports the resulting drift.
	db := config.GetDB()
	err = db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"Name":          merged.Name,
		"Sku":           strings.TrimSpace(merged.Sku),
		"Category":      merged.Category,
		"Description":   merged.Description,
		"Supplier":      merged.Supplier,
		"CostPrice":     merged.CostPrice,
		"SellingPrice":  merged.SellingPrice,
		"Quantity":      merged.Quantity,
		"MinStockLevel": merged.MinStockLevel,
	}).Error
	if err != nil {
		return nil, err
	}

	clearCategoryCache(storeId)
	return item, nil
}

// DeleteItem removes the item only; historical transactions keep their
// item id and name snapshot (weak relation).
func DeleteItem(ctx context.Context, id int) (*Item, error) {

	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	item, err := utils.FetchModel[Item](ctx, storeId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, err
	}

	clearCategoryCache(storeId)
	return item, nil
}

// ApplyStockDelta is the only quantity writer on the ledger path. It locks
// the item row inside the caller's transaction, so the stock check and the
// quantity write are one critical section; concurrent writes for other items
// proceed independently.
func ApplyStockDelta(tx *gorm.DB, ctx context.Context, storeId string, itemId int, delta int, timestamp time.Time) (*Item, error) {

	var item Item
	if err := lockForUpdate(tx.WithContext(ctx)).Where("store_id = ?", storeId).
		First(&item, itemId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}

	newQuantity := item.Quantity + delta
	if newQuantity < 0 {
		return nil, &InsufficientStockError{Available: item.Quantity, Requested: -delta}
	}

	if err := tx.WithContext(ctx).Model(&item).Updates(map[string]interface{}{
		"quantity":   newQuantity,
		"updated_at": timestamp,
	}).Error; err != nil {
		return nil, err
	}
	item.Quantity = newQuantity
	item.UpdatedAt = timestamp
	return &item, nil
}

func ListCategories(ctx context.Context) ([]string, error) {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	cacheKey := "CategoryList:" + storeId
	var categories []string
	exists, err := config.GetRedisObject(cacheKey, &categories)
	if err != nil {
		return nil, err
	}
	if exists {
		return categories, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&Item{}).
		Where("store_id = ? AND category <> ''", storeId).
		Distinct().Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}

	if err := config.SetRedisObject(cacheKey, &categories, time.Hour); err != nil {
		return nil, err
	}
	return categories, nil
}

func clearCategoryCache(storeId string) {
	if err := config.RemoveRedisKey("CategoryList:" + storeId); err != nil {
		config.LogError(config.GetLogger(), "item.go", "clearCategoryCache", "RemoveRedisKey", storeId, err)
	}
}
