package domain

import "time"

// Idempotency records the reservation produced by a POST that carried an
// Idempotency-Key header, so a retried request returns the same reservation
// instead of booking the table twice.
type Idempotency struct {
	ID            string    `gorm:"type:varchar(36);primaryKey"`
	Key           string    `gorm:"column:idem_key;type:varchar(200);not null;uniqueIndex:ux_idempotency_key"`
	ReservationID string    `gorm:"type:varchar(36);not null"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt     time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
