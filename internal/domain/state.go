package domain

import "time"

// Keys of the persisted state blobs. The first four match the keys the
// browser application stored its collections under, so exported data can be
// imported unchanged.
const (
	StateKeyReservations = "restaurant_reservations"
	StateKeyTables       = "restaurant_tables"
	StateKeyPresets      = "restaurant_layout_presets"
	StateKeyDeletedLog   = "restaurant_deleted_reservations"
)

// StateKeys lists every persisted blob key.
func StateKeys() []string {
	return []string{StateKeyReservations, StateKeyTables, StateKeyPresets, StateKeyDeletedLog}
}

// StateBlob stores one JSON-encoded collection under a fixed key.
//
// Fields:
//   - Key: one of the StateKey* constants (primary key, column state_key).
//   - Value: the JSON array of the collection.
//   - UpdatedAt: time of the last write, managed by GORM.
type StateBlob struct {
	Key       string    `gorm:"column:state_key;type:varchar(64);primaryKey"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name for StateBlob.
func (StateBlob) TableName() string { return "state_blobs" }
