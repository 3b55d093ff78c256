// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they bind and validate input, call the
// reservation engine through narrow interfaces, and translate results into
// HTTP responses (including conditional responses and idempotent replays).
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/table-reservations/internal/domain"
	"github.com/tbourn/table-reservations/internal/search"
	"github.com/tbourn/table-reservations/internal/services"
)

//
// Service contracts (context-aware)
//

// FloorService covers the floor plan: tables, their live status, layout
// editing with undo, and saved presets.
type FloorService interface {
	Version() uint64
	DefaultWindow() (date, clock string)

	Tables(ctx context.Context) []domain.Table
	VisibleTables(ctx context.Context) []domain.Table
	TableStatus(ctx context.Context, date, clock string) (services.StatusView, error)
	ReservationForWindow(ctx context.Context, tableID, date, clock string) (*domain.Reservation, error)

	UpdateSeats(ctx context.Context, updates []services.SeatUpdate) (bool, error)
	UpdateShape(ctx context.Context, id string, shape domain.Shape) (bool, error)
	UpdatePosition(ctx context.Context, id string, x, y float64) (bool, error)
	CombineTables(ctx context.Context, ids []string) (domain.Table, error)
	UncombineTable(ctx context.Context, id string) (bool, error)
	LoadLayout(ctx context.Context, tables []domain.Table) error
	Undo(ctx context.Context) bool
	CanUndo(ctx context.Context) bool

	Presets(ctx context.Context) []domain.LayoutPreset
	SavePreset(ctx context.Context, name string, tables []domain.Table) (domain.LayoutPreset, error)
	LoadPreset(ctx context.Context, id string) (domain.LayoutPreset, error)
	RenamePreset(ctx context.Context, id, name string) (domain.LayoutPreset, error)
	DeletePreset(ctx context.Context, id string) error
}

// BookingService covers live reservations and the deleted-reservation log.
type BookingService interface {
	Reservations(ctx context.Context) []domain.Reservation
	ReservationsForDate(ctx context.Context, date string) ([]domain.Reservation, error)
	SearchReservations(ctx context.Context, q string, limit int) []search.Result
	Reservation(ctx context.Context, id string) (domain.Reservation, error)
	CreateReservation(ctx context.Context, in domain.ReservationInput) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, id string, p domain.ReservationPatch) (domain.Reservation, error)
	CancelReservation(ctx context.Context, id string) (domain.DeletedReservation, error)
	DeleteAllReservations(ctx context.Context) int

	DeletedReservations(ctx context.Context) []domain.DeletedReservation
	ClearDeletedLog(ctx context.Context) int
	ExportDeletedLog(ctx context.Context) (filename, body string)
}

// IdempotencyStore records which reservation an Idempotency-Key created.
// Lookup returns an error wrapping repo.ErrNotFound when nothing is recorded.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, reservationID string, ttl time.Duration) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the reservation API.
type Handlers struct {
	floor   FloorService
	booking BookingService

	idem    IdempotencyStore
	idemTTL time.Duration
}

// New constructs a Handlers instance. A nil idem store disables recording of
// Idempotency-Key results.
func New(floor FloorService, booking BookingService, idem IdempotencyStore, idemTTL time.Duration) *Handlers {
	if idemTTL <= 0 {
		idemTTL = 24 * time.Hour
	}
	return &Handlers{floor: floor, booking: booking, idem: idem, idemTTL: idemTTL}
}

// notModified sets a weak ETag derived from the engine version and reports
// whether the client already holds it. scope keeps representations of
// different resources from sharing a tag.
func (h *Handlers) notModified(c *gin.Context, scope string) bool {
	etag := fmt.Sprintf(`W/"%s:%d"`, scope, h.floor.Version())
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}
