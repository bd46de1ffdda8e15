package utils

import (
	"context"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
)

/* DB fetching */

// fetch model from db
// (ctx's store_id is used in query's WHERE, may return RecordNotFound)
func FetchModel[T any](ctx context.Context, storeId string, id int) (*T, error) {

	db := config.GetDB()
	var result T
	err := db.WithContext(ctx).Where("store_id = ?", storeId).First(&result, id).Error
	if err != nil {
		return nil, ErrorRecordNotFound
	}
	return &result, nil
}
