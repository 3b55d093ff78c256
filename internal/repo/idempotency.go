// Package repo – idempotency records
//
// This file provides the GORM-backed store for Idempotency-Key handling on
// POST /reservations: a key maps to the reservation the first request created,
// until the record expires.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/table-reservations/internal/domain"
)

// ErrDuplicate indicates that an idempotency record already exists for the key.
var ErrDuplicate = errors.New("duplicate")

// GetIdempotency returns a non-expired record or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("idem_key = ? AND expires_at > ?", key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// CreateIdempotency inserts a record and returns ErrDuplicate on unique violation.
// An expired record under the same key is replaced.
func CreateIdempotency(ctx context.Context, db *gorm.DB, key, reservationID string, ttl time.Duration) (*domain.Idempotency, error) {
	now := time.Now().UTC()
	rec := &domain.Idempotency{
		ID:            uuid.NewString(),
		Key:           key,
		ReservationID: reservationID,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idem_key = ? AND expires_at <= ?", key, now).Delete(&domain.Idempotency{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}

// PurgeExpiredIdempotency deletes records that expired before now and returns
// how many were removed.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	return res.RowsAffected, res.Error
}

// isUniqueViolation recognises duplicate-key errors across dialects.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// glebarez/sqlite, pgx and the MySQL driver return plain-text errors
	// unless TranslateError is enabled.
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key value") ||
		strings.Contains(low, "duplicate entry")
}

// GormIdempotency adapts the functions above to the middleware's store
// interface.
type GormIdempotency struct {
	DB *gorm.DB
}

// Lookup returns the reservation id recorded for key, or ErrNotFound.
func (g *GormIdempotency) Lookup(ctx context.Context, key string) (string, error) {
	rec, err := GetIdempotency(ctx, g.DB, key, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return rec.ReservationID, nil
}

// Remember records key → reservationID for ttl.
func (g *GormIdempotency) Remember(ctx context.Context, key, reservationID string, ttl time.Duration) error {
	_, err := CreateIdempotency(ctx, g.DB, key, reservationID, ttl)
	return err
}
