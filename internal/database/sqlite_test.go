package database

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/petalworks/registry/backend/internal/registry"
)

func TestOpenSQLiteMigratesRegistrySchema(testContext *testing.T) {
	databasePath := filepath.Join(testContext.TempDir(), "registry.db")

	db, err := OpenSQLite(databasePath, zap.NewNop())
	if err != nil {
		testContext.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		testContext.Fatalf("failed to access sql handle: %v", err)
	}
	defer sqlDB.Close()

	for _, table := range []string{"gifts", "reservations", "messages"} {
		if !db.Migrator().HasTable(table) {
			testContext.Fatalf("expected table %q to exist", table)
		}
	}

	reservedBy := "Alice"
	gift := registry.Gift{
		ID:            "gift-1",
		Title:         "Toaster",
		Description:   "d",
		ImageURL:      "u",
		PersonalNote:  "n",
		PurchaseLinks: []string{"https://example.com"},
		Reserved:      true,
		ReservedBy:    &reservedBy,
	}
	if err := db.Create(&gift).Error; err != nil {
		testContext.Fatalf("failed to insert gift: %v", err)
	}

	var stored registry.Gift
	if err := db.Where("id = ?", "gift-1").Take(&stored).Error; err != nil {
		testContext.Fatalf("failed to reload gift: %v", err)
	}
	if len(stored.PurchaseLinks) != 1 || stored.PurchaseLinks[0] != "https://example.com" {
		testContext.Fatalf("expected purchase links round trip, got %#v", stored.PurchaseLinks)
	}
	if stored.ReservedBy == nil || *stored.ReservedBy != "Alice" {
		testContext.Fatalf("expected reservedBy round trip, got %#v", stored.ReservedBy)
	}
}

func TestOpenSQLiteRequiresPath(testContext *testing.T) {
	if _, err := OpenSQLite("", zap.NewNop()); err == nil {
		testContext.Fatalf("expected an error for a missing path")
	}
}
