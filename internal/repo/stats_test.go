package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/table-reservations/internal/domain"
)

func newStatsDB(t *testing.T, migrate bool) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if migrate {
		if err := AutoMigrate(db); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestStateStats_NoTable(t *testing.T) {
	db := newStatsDB(t, false)
	if _, _, err := StateStats(context.Background(), db); err == nil {
		t.Fatalf("expected error due to missing state_blobs table")
	}
}

func TestStateStats_Empty(t *testing.T) {
	db := newStatsDB(t, true)
	count, last, err := StateStats(context.Background(), db)
	if err != nil {
		t.Fatalf("StateStats error: %v", err)
	}
	if count != 0 || last != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, last)
	}
}

func TestStateStats_LatestWrite(t *testing.T) {
	db := newStatsDB(t, true)

	t1 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	rows := []domain.StateBlob{
		{Key: "restaurant_tables", Value: []byte(`[]`), UpdatedAt: t1},
		{Key: "restaurant_reservations", Value: []byte(`[]`), UpdatedAt: t2},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, last, err := StateStats(context.Background(), db)
	if err != nil {
		t.Fatalf("StateStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("count=%d want 2", count)
	}
	if last == nil || !last.Equal(t2) {
		t.Fatalf("last=%v want %v", last, t2)
	}
}
