package utils

import (
	"context"
	"strings"
	"sync"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"gorm.io/gorm"
)

var sequenceMutex sync.Mutex

// GetSequence hands out the next per-store sequence number for model T,
// used for human-facing transaction numbers. Redis keeps the counter warm
// across instances; a fresh (or absent) counter is resynced from the
// committed max under the package mutex. The resync query runs on the
// caller's tx so it sees rows written earlier in the same transaction.
func GetSequence[T any](tx *gorm.DB, ctx context.Context, storeId string) (int64, error) {
	sequenceMutex.Lock()
	defer sequenceMutex.Unlock()

	cacheKey := storeId + "-" + strings.ToLower(GetTypeName[T]()) + "_seq"
	var model T

	seqNo, err := config.IncrRedisCounter(ctx, cacheKey)
	if err != nil {
		return 0, err
	}
	if seqNo <= 1 {
		// first increment after a restart, or no redis at all
		var dbSeq *int64
		if err := tx.WithContext(ctx).Model(&model).Select("max(sequence_no)").
			Where("store_id = ?", storeId).
			Scan(&dbSeq).Error; err != nil {
			return 0, err
		}
		if dbSeq == nil {
			seqNo = 1
		} else {
			seqNo = *dbSeq + 1
		}
		if err := config.SetRedisObject(cacheKey, &seqNo, 0); err != nil {
			return 0, err
		}
	}
	return seqNo, nil
}
