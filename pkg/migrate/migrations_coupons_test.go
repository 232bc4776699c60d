package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCouponsMigrationGuardsDiscountValues(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_coupons_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no coupons migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS coupons",
		"CREATE UNIQUE INDEX IF NOT EXISTS coupons_code_key ON coupons (code)",
		"CHECK (start_date <= end_date)",
		// A percentage coupon must stay within (0, 100]. Flat amounts are
		// only bounded below.
		"CHECK (discount_type <> 'percentage' OR (discount_value > 0 AND discount_value <= 100))",
		"CHECK (used_count >= 0)",
		"DROP TABLE IF EXISTS coupons",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
