package models

import (
	"log"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Item{},
		&IncomingTransaction{}, &OutgoingTransaction{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
