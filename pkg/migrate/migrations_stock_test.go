package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStockMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_stock.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS variant_stocks",
		"FOREIGN KEY (variant_id) REFERENCES variants(id) ON DELETE CASCADE",
		"CHECK (quantity >= 0)",
		"CHECK (reserved >= 0)",
		"CONSTRAINT ux_variant_warehouse UNIQUE (variant_id, warehouse_id)",
		"DROP TABLE IF EXISTS variant_stocks",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestCompatibilityMigrationContainsUniqueScopes(t *testing.T) {
	content := readMigration(t, "*_create_compatibility.sql")

	checks := []string{
		"CREATE TYPE sync_status AS ENUM ('pending', 'synced', 'conflict', 'missing')",
		"CONSTRAINT ux_compat_cache_scope UNIQUE NULLS NOT DISTINCT (product_id, shop_id)",
		"CONSTRAINT ux_value_shop UNIQUE (attribute_value_id, shop_id)",
		"CONSTRAINT ux_vehicle_feature_shop UNIQUE (vehicle_product_id, ps_feature_id, shop_id)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
