package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/table-reservations/internal/domain"
)

// StateStats returns how many state blobs exist and when the most recent one
// was written. When the table is empty, lastWrite is nil. The health endpoint
// uses it to prove the database is reachable.
func StateStats(ctx context.Context, db *gorm.DB) (count int64, lastWrite *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.StateBlob{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Avoid MAX() which comes back as TEXT in SQLite.
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
