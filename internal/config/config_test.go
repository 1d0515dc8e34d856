package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(NewViper())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddress != "0.0.0.0:8080" {
		t.Fatalf("unexpected address: %s", cfg.HTTPAddress)
	}
	if cfg.PathPrefix != "/api" {
		t.Fatalf("unexpected path prefix: %s", cfg.PathPrefix)
	}
	if cfg.StoreDriver != StoreDriverSQLite {
		t.Fatalf("unexpected store driver: %s", cfg.StoreDriver)
	}
	if cfg.SeedStore {
		t.Fatalf("expected seeding to default off")
	}
}

func TestLoadRejectsUnknownStoreDriver(t *testing.T) {
	configViper := NewViper()
	configViper.Set("store.driver", "postgres")

	if _, err := Load(configViper); err == nil {
		t.Fatalf("expected an error for an unknown store driver")
	}
}

func TestLoadRejectsMissingDatabasePath(t *testing.T) {
	configViper := NewViper()
	configViper.Set("database.path", "")

	if _, err := Load(configViper); err == nil {
		t.Fatalf("expected an error for a missing database path")
	}
}

func TestLoadRejectsRelativePathPrefix(t *testing.T) {
	configViper := NewViper()
	configViper.Set("http.path_prefix", "api")

	if _, err := Load(configViper); err == nil {
		t.Fatalf("expected an error for a prefix without a leading slash")
	}
}

func TestLoadAllowsMemoryDriverWithoutDatabase(t *testing.T) {
	configViper := NewViper()
	configViper.Set("store.driver", StoreDriverMemory)
	configViper.Set("database.path", "")

	cfg, err := Load(configViper)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Fatalf("unexpected store driver: %s", cfg.StoreDriver)
	}
}
