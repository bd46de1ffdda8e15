package workflow

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ItemDrift is one item whose stored quantity disagrees with the ledger.
type ItemDrift struct {
	ItemId         int    `json:"item_id"`
	Sku            string `json:"sku"`
	Name           string `json:"name"`
	StoredQuantity int    `json:"stored_quantity"`
	LedgerQuantity int    `json:"ledger_quantity"`
}

func acquireRebuildLock(tx *gorm.DB, storeId string) error {
	// GET_LOCK is connection-scoped, so this must run on the same *gorm.DB
	// that does the rebuild. sqlite serializes writers on its own.
	if tx.Dialector.Name() != "mysql" {
		return nil
	}
	lockName := fmt.Sprintf("inv_rebuild:%s", storeId)
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", lockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire rebuild lock for store_id=%s", storeId)
	}
	return nil
}

func releaseRebuildLock(tx *gorm.DB, storeId string) {
	if tx.Dialector.Name() != "mysql" {
		return
	}
	lockName := fmt.Sprintf("inv_rebuild:%s", storeId)
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&_ok).Error
}

// ledgerQuantities computes incoming minus outgoing per item from the
// transaction tables. Items with no transactions simply don't appear.
func ledgerQuantities(tx *gorm.DB, ctx context.Context, storeId string) (map[int]int, error) {
	type row struct {
		ItemId int
		Qty    int
	}

	totals := make(map[int]int)

	var incoming []row
	if err := tx.WithContext(ctx).Model(&models.IncomingTransaction{}).
		Select("item_id, COALESCE(SUM(quantity), 0) AS qty").
		Where("store_id = ?", storeId).
		Group("item_id").
		Scan(&incoming).Error; err != nil {
		return nil, err
	}
	for _, r := range incoming {
		totals[r.ItemId] += r.Qty
	}

	var outgoing []row
	if err := tx.WithContext(ctx).Model(&models.OutgoingTransaction{}).
		Select("item_id, COALESCE(SUM(quantity), 0) AS qty").
		Where("store_id = ?", storeId).
		Group("item_id").
		Scan(&outgoing).Error; err != nil {
		return nil, err
	}
	for _, r := range outgoing {
		totals[r.ItemId] -= r.Qty
	}

	return totals, nil
}

// RebuildInventory re-derives every item quantity for a store from the
// ledger and reports the items that drifted. Drift comes from
// administrative quantity edits, which bypass the transaction tables.
// With apply set, stored quantities are rewritten to the ledger values
// inside a single transaction.
func RebuildInventory(ctx context.Context, logger *logrus.Logger, storeId string, apply bool) ([]ItemDrift, error) {
	if logger == nil {
		logger = config.GetLogger()
	}
	if storeId == "" {
		return nil, fmt.Errorf("rebuild inventory: store id is required")
	}

	db := config.GetDB()
	if db == nil {
		return nil, fmt.Errorf("rebuild inventory: db is nil")
	}

	if err := acquireRebuildLock(db, storeId); err != nil {
		return nil, err
	}
	defer releaseRebuildLock(db, storeId)

	actor, _ := utils.GetUserNameFromContext(ctx)
	logger.WithFields(logrus.Fields{
		"store_id": storeId,
		"apply":    apply,
		"actor":    actor,
	}).Info("inv.rebuild.start")

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	totals, err := ledgerQuantities(tx, ctx, storeId)
	if err != nil {
		return nil, err
	}

	var items []*models.Item
	if err := tx.WithContext(ctx).Where("store_id = ?", storeId).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	drifts := make([]ItemDrift, 0)
	now := time.Now().UTC()
	for _, item := range items {
		ledgerQty := totals[item.ID]
		if ledgerQty == item.Quantity {
			continue
		}
		drifts = append(drifts, ItemDrift{
			ItemId:         item.ID,
			Sku:            item.Sku,
			Name:           item.Name,
			StoredQuantity: item.Quantity,
			LedgerQuantity: ledgerQty,
		})
		if apply {
			if err := tx.WithContext(ctx).Model(&models.Item{}).
				Where("store_id = ? AND id = ?", storeId, item.ID).
				Updates(map[string]interface{}{
					"quantity":   ledgerQty,
					"updated_at": now,
				}).Error; err != nil {
				return nil, err
			}
		}
	}

	if apply {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	logger.WithFields(logrus.Fields{
		"store_id":    storeId,
		"apply":       apply,
		"item_count":  len(items),
		"drift_count": len(drifts),
	}).Info("inv.rebuild.end")

	return drifts, nil
}
