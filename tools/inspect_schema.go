package main

import (
	"flag"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/localnerve/jam-build-breezemeta/internal/models"
)

// Prints the sqlite DDL gorm creates for a model set, to compare against
// the storage types reported in metadata documents.
func main() {
	set := flag.String("models", "accounts", "model set to migrate: accounts or northwind")
	flag.Parse()

	var all []any
	switch *set {
	case "accounts":
		all = models.Accounts()
	case "northwind":
		all = models.Northwind()
	default:
		log.Fatalf("unknown model set %q", *set)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	if err := db.AutoMigrate(all...); err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var ddl string
		db.Raw("SELECT sql FROM sqlite_master WHERE name = ?", table).Scan(&ddl)
		fmt.Println(ddl)
	}
}
