package coupons

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("ATELIERNOIR_DB_DSN")
	if dsn == "" {
		t.Skip("ATELIERNOIR_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}

func createTestCoupon(t *testing.T, tx *gorm.DB, code string, start, end time.Time, active bool) *models.Coupon {
	t.Helper()

	coupon := &models.Coupon{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  enums.DiscountTypePercentage,
		DiscountValue: 20,
		StartDate:     start,
		EndDate:       end,
		IsActive:      active,
	}
	if err := tx.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	return coupon
}

func TestFindActiveByCodeWindowBoundaries(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		ctx := context.Background()

		start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC)
		code := "WINDOW" + strings.ToUpper(uuid.NewString()[:8])
		createTestCoupon(t, tx, code, start, end, true)

		// Both boundary instants are inside the window.
		if _, err := repo.FindActiveByCode(ctx, code, start); err != nil {
			t.Fatalf("lookup at start_date: %v", err)
		}
		if _, err := repo.FindActiveByCode(ctx, code, end); err != nil {
			t.Fatalf("lookup at end_date: %v", err)
		}

		if _, err := repo.FindActiveByCode(ctx, code, start.Add(-time.Second)); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected not found before window, got %v", err)
		}
		if _, err := repo.FindActiveByCode(ctx, code, end.Add(time.Second)); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected not found after window, got %v", err)
		}

		return gorm.ErrInvalidTransaction
	})
	if err == nil {
		t.Fatal("expected rollback sentinel")
	}
}

func TestFindActiveByCodeSkipsInactive(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		ctx := context.Background()

		now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
		code := "PAUSED" + strings.ToUpper(uuid.NewString()[:8])
		createTestCoupon(t, tx, code, now.Add(-24*time.Hour), now.Add(24*time.Hour), false)

		if _, err := repo.FindActiveByCode(ctx, code, now); !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("expected not found for disabled coupon, got %v", err)
		}

		return gorm.ErrInvalidTransaction
	})
	if err == nil {
		t.Fatal("expected rollback sentinel")
	}
}

func TestIncrementUsageBumpsCounter(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		ctx := context.Background()

		now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
		code := "ORDER" + strings.ToUpper(uuid.NewString()[:8])
		createTestCoupon(t, tx, code, now.Add(-24*time.Hour), now.Add(24*time.Hour), true)

		if err := repo.IncrementUsage(ctx, code); err != nil {
			t.Fatalf("increment usage: %v", err)
		}

		found, err := repo.FindActiveByCode(ctx, code, now)
		if err != nil {
			t.Fatalf("reload coupon: %v", err)
		}
		if found.UsedCount != 1 {
			t.Fatalf("expected used_count 1, got %d", found.UsedCount)
		}

		return gorm.ErrInvalidTransaction
	})
	if err == nil {
		t.Fatal("expected rollback sentinel")
	}
}

func TestFindActiveByCodeNormalizesCase(t *testing.T) {
	db := openTestDB(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		ctx := context.Background()

		now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
		suffix := strings.ToUpper(uuid.NewString()[:8])
		stored := "NOIR" + suffix
		createTestCoupon(t, tx, stored, now.Add(-24*time.Hour), now.Add(24*time.Hour), true)

		found, err := repo.FindActiveByCode(ctx, "  "+strings.ToLower(stored)+" ", now)
		if err != nil {
			t.Fatalf("lowercase lookup: %v", err)
		}
		if found.Code != stored {
			t.Fatalf("expected stored code %q, got %q", stored, found.Code)
		}

		return gorm.ErrInvalidTransaction
	})
	if err == nil {
		t.Fatal("expected rollback sentinel")
	}
}
