package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/models"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
	"bitbucket.org/mmdatafocus/storestock_backend/workflow"
)

func main() {
	storeId := flag.String("store-id", "", "Store to rebuild (required)")
	apply := flag.Bool("apply", false, "Rewrite drifted quantities to the ledger values (default: report only)")
	flag.Parse()

	if strings.TrimSpace(*storeId) == "" {
		fmt.Fprintln(os.Stderr, "-store-id is required")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx := utils.SetStoreIdInContext(context.Background(), strings.TrimSpace(*storeId))
	ctx = utils.SetUserNameInContext(ctx, "InventoryRebuild")

	drifts, err := workflow.RebuildInventory(ctx, config.GetLogger(), strings.TrimSpace(*storeId), *apply)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rebuild failed: %v\n", err)
		os.Exit(1)
	}

	if len(drifts) == 0 {
		fmt.Println("no drift: stored quantities match the ledger")
		return
	}

	for _, d := range drifts {
		fmt.Printf("item=%d sku=%s stored=%d ledger=%d\n", d.ItemId, d.Sku, d.StoredQuantity, d.LedgerQuantity)
	}
	if *apply {
		fmt.Printf("applied ledger quantities to %d item(s)\n", len(drifts))
	} else {
		fmt.Printf("%d item(s) drifted; rerun with -apply to fix\n", len(drifts))
	}
}
