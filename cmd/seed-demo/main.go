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
)

func main() {
	storeId := flag.String("store-id", "", "Store to seed (required)")
	adminName := flag.String("admin-name", "Admin", "Admin user display name")
	adminEmail := flag.String("admin-email", "", "Optional: create an admin user with this email")
	adminPassword := flag.String("admin-password", "", "Password for the admin user (required with -admin-email)")
	flag.Parse()

	if strings.TrimSpace(*storeId) == "" {
		fmt.Fprintln(os.Stderr, "-store-id is required")
		os.Exit(1)
	}
	if strings.TrimSpace(*adminEmail) != "" && strings.TrimSpace(*adminPassword) == "" {
		fmt.Fprintln(os.Stderr, "-admin-password is required with -admin-email")
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	ctx := utils.SetStoreIdInContext(context.Background(), strings.TrimSpace(*storeId))
	ctx = utils.SetUserNameInContext(ctx, "SeedDemo")

	if strings.TrimSpace(*adminEmail) != "" {
		user, err := models.SeedAdminUser(ctx, strings.TrimSpace(*storeId), *adminName, strings.TrimSpace(*adminEmail), *adminPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("admin user ready: id=%d email=%s\n", user.ID, user.Email)
	}

	if err := models.SeedDemoData(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed demo data: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("demo data seeded for store %s\n", *storeId)
}
