// Package services implements the reservation/table state engine: the table
// registry, the reservation store and its derived per-table status, the
// undoable layout editor, layout presets and the deleted-reservation audit
// log, composed behind the Engine façade.
//
// This file centralizes the service-level error values so callers can branch
// on them with errors.Is. Translation into HTTP status codes happens in the
// handlers package.
package services

import (
	"errors"
	"fmt"

	"github.com/tbourn/table-reservations/internal/timewindow"
)

// Lookup errors. The specific variants wrap ErrNotFound.
var (
	// ErrNotFound indicates the operation targeted an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTableNotFound is returned for unknown table ids.
	ErrTableNotFound = fmt.Errorf("table %w", ErrNotFound)

	// ErrReservationNotFound is returned for unknown reservation ids.
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)

	// ErrPresetNotFound is returned for unknown layout preset ids.
	ErrPresetNotFound = fmt.Errorf("layout preset %w", ErrNotFound)
)

// Validation errors.
var (
	// ErrInsufficientTables is returned when combine is given fewer than two
	// distinct tables.
	ErrInsufficientTables = errors.New("at least two tables are required to combine")

	// ErrTableCombined is returned when a table already belongs to a combined
	// group, or when a reservation targets a hidden group member.
	ErrTableCombined = errors.New("table is part of a combined group")

	// ErrInvalidTimeFormat is returned for malformed HH:MM values.
	ErrInvalidTimeFormat = timewindow.ErrInvalidTimeFormat

	// ErrInvalidDate is returned for malformed YYYY-MM-DD values.
	ErrInvalidDate = timewindow.ErrInvalidDate

	// ErrInvalidSeats is returned for seat counts below one.
	ErrInvalidSeats = errors.New("seats must be at least 1")

	// ErrInvalidShape is returned for shapes other than round, square or rectangle.
	ErrInvalidShape = errors.New("shape must be round, square or rectangle")

	// ErrInvalidPosition is returned for negative layout coordinates.
	ErrInvalidPosition = errors.New("position must not be negative")

	// ErrInvalidTableID is returned when a layout contains a blank id.
	ErrInvalidTableID = errors.New("table id must not be empty")

	// ErrDuplicateTable is returned when a layout contains the same id twice.
	ErrDuplicateTable = errors.New("duplicate table id in layout")

	// ErrInvalidPartySize is returned for party sizes below one.
	ErrInvalidPartySize = errors.New("party size must be at least 1")

	// ErrMissingGuestName is returned when a non walk-in reservation has no
	// guest name.
	ErrMissingGuestName = errors.New("guest name is required")

	// ErrEmptyName is returned when a preset name is blank.
	ErrEmptyName = errors.New("name must not be empty")
)

// ErrConflictingReservation is returned when a reservation would overlap
// another reservation of the same table on the same date.
var ErrConflictingReservation = errors.New("table already reserved in this time window")

// ErrStorageFailure marks a failed state read or write. The Engine logs and
// swallows it; it never reaches callers of the public API.
var ErrStorageFailure = errors.New("state storage failure")
