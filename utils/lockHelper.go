package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"github.com/bsm/redislock"
)

// StoreLock obtains a best-effort cross-instance lock for a store and returns
// its release func. Correctness of stock mutations never depends on this: the
// row lock taken inside the ledger transaction is the real serialization
// point, so an unconfigured redis simply skips the extra fence.
func StoreLock(ctx context.Context, storeId string, lockType string, moduleName string, functionName string) (func(), error) {
	locker := config.GetRedisLock()
	if locker == nil {
		return func() {}, nil
	}

	logger := config.GetLogger()
	lockKey := fmt.Sprintf("%s:%s", lockType, storeId)
	lock, err := locker.Obtain(ctx, lockKey, 30*time.Second, nil)
	if err == redislock.ErrNotObtained {
		config.LogError(logger, moduleName, functionName, "Could not obtain lock for store", storeId, err)
		return nil, errors.New("could not obtain lock for store")
	} else if err != nil {
		config.LogError(logger, moduleName, functionName, "Error obtaining lock for store", storeId, err)
		return nil, err
	}

	return func() {
		_ = lock.Release(ctx)
	}, nil
}
