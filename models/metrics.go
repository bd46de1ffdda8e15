package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/shopspring/decimal"
)

// The metrics layer is read-only and recomputes from current registry and
// ledger state on every call; nothing here is cached.

type DashboardStats struct {
	TotalItems          int64           `json:"total_items"`
	LowStockItems       int64           `json:"low_stock_items"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	TodaySales          decimal.Decimal `json:"today_sales"`
	WeekSales           decimal.Decimal `json:"week_sales"`
	MonthSales          decimal.Decimal `json:"month_sales"`
}

type ProfitAnalysis struct {
	ProfitPerUnit decimal.Decimal `json:"profit_per_unit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

type StockValuation struct {
	UnitCount    int64           `json:"unit_count"`
	CostValue    decimal.Decimal `json:"cost_value"`
	SellingValue decimal.Decimal `json:"selling_value"`
}

// GetDashboardStats aggregates the dashboard numbers relative to a
// caller-supplied reference time: todaySales covers now's calendar day,
// week/month the trailing 7/30 days ending at now.
func GetDashboardStats(ctx context.Context, now time.Time) (*DashboardStats, error) {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	db := config.GetDB()
	stats := DashboardStats{}

	if err := db.WithContext(ctx).Model(&Item{}).
		Where("store_id = ?", storeId).
		Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&Item{}).
		Where("store_id = ? AND quantity <= min_stock_level", storeId).
		Count(&stats.LowStockItems).Error; err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(&Item{}).
		Where("store_id = ?", storeId).
		Select("COALESCE(SUM(quantity * cost_price), 0)").
		Scan(&stats.TotalInventoryValue).Error; err != nil {
		return nil, err
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var err error
	stats.TodaySales, err = sumSalesBetween(ctx, storeId, startOfDay, startOfDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	stats.WeekSales, err = sumSalesBetween(ctx, storeId, now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, err
	}
	stats.MonthSales, err = sumSalesBetween(ctx, storeId, now.AddDate(0, 0, -30), now)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// half-open window [from, to)
func sumSalesBetween(ctx context.Context, storeId string, from time.Time, to time.Time) (decimal.Decimal, error) {
	db := config.GetDB()
	total := decimal.Zero
	if err := db.WithContext(ctx).Model(&OutgoingTransaction{}).
		Where("store_id = ? AND sale_date >= ? AND sale_date < ?", storeId, from, to).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ListLowStockItems returns every item at or under its restock threshold,
// most urgent (lowest quantity) first.
func ListLowStockItems(ctx context.Context) ([]*Item, error) {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}

	db := config.GetDB()
	var results []*Item
	if err := db.WithContext(ctx).
		Where("store_id = ? AND quantity <= min_stock_level", storeId).
		Order("quantity, id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// RecentOutgoingTransactions feeds the dashboard's recent-activity list.
func RecentOutgoingTransactions(ctx context.Context, limit int) ([]*OutgoingTransaction, error) {
	storeId, ok := utils.GetStoreIdFromContext(ctx)
	if !ok || storeId == "" {
		return nil, errors.New("store id is required")
	}
	if limit <= 0 {
		limit = 5
	}

	db := config.GetDB()
	var results []*OutgoingTransaction
	if err := db.WithContext(ctx).Where("store_id = ?", storeId).
		Order("sale_date DESC, id DESC").Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// AnalyzeProfit computes per-unit profit and margin. A zero cost price gives
// margin 0 rather than a division error.
func AnalyzeProfit(costPrice decimal.Decimal, sellingPrice decimal.Decimal) ProfitAnalysis {
	profit := sellingPrice.Sub(costPrice)
	margin := decimal.Zero
	if !costPrice.IsZero() {
		margin = profit.Div(costPrice).Mul(decimal.NewFromInt(100))
	}
	return ProfitAnalysis{ProfitPerUnit: profit, MarginPercent: margin}
}

// ValuateStock totals units and monetary worth over an arbitrary item
// subset, e.g. a filtered registry view.
func ValuateStock(items []*Item) StockValuation {
	valuation := StockValuation{
		CostValue:    decimal.Zero,
		SellingValue: decimal.Zero,
	}
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		valuation.UnitCount += int64(item.Quantity)
		valuation.CostValue = valuation.CostValue.Add(qty.Mul(item.CostPrice))
		valuation.SellingValue = valuation.SellingValue.Add(qty.Mul(item.SellingPrice))
	}
	return valuation
}
