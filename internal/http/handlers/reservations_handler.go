// Reservation HTTP handlers.
//
// This file exposes REST endpoints for reservations:
//   - GET    /reservations          (all, one date, or a guest search)
//   - GET    /reservations/{id}
//   - POST   /reservations          (create, Idempotency-Key aware)
//   - PATCH  /reservations/{id}     (partial update)
//   - DELETE /reservations/{id}     (cancel into the deleted log)
//   - DELETE /reservations          (clear every reservation)
//
// Idempotency:
// A retried POST carrying a key the server already recorded returns the
// reservation created the first time with `Idempotent-Replay: true` instead of
// booking the table twice.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/table-reservations/internal/domain"
	"github.com/tbourn/table-reservations/internal/http/middleware"
	"github.com/tbourn/table-reservations/internal/search"
	"github.com/tbourn/table-reservations/internal/utils"
)

// HeaderIdempotentReplay marks a response served from an earlier request.
const HeaderIdempotentReplay = "Idempotent-Replay"

const maxSearchLimit = 50

//
// DTOs
//

// CreateReservationRequest is the JSON payload for booking a table.
type CreateReservationRequest struct {
	TableID    string `json:"tableId" binding:"required" example:"t2"`
	GuestName  string `json:"guestName" example:"John Smith"`
	GuestPhone string `json:"guestPhone" example:"(555) 123-4567"`
	PartySize  int    `json:"partySize" example:"2"`
	Date       string `json:"date" binding:"required" example:"2024-06-01"`
	Time       string `json:"time" binding:"required" example:"19:00"`
	Notes      string `json:"notes,omitempty" example:"Anniversary dinner"`
	// WalkIn books a drop-in guest; guestName is ignored.
	WalkIn bool `json:"walkIn,omitempty"`
}

func (r CreateReservationRequest) input() domain.ReservationInput {
	return domain.ReservationInput{
		TableID:    strings.TrimSpace(r.TableID),
		GuestName:  strings.TrimSpace(r.GuestName),
		GuestPhone: strings.TrimSpace(r.GuestPhone),
		PartySize:  r.PartySize,
		Date:       strings.TrimSpace(r.Date),
		Time:       strings.TrimSpace(r.Time),
		Notes:      strings.TrimSpace(r.Notes),
		WalkIn:     r.WalkIn,
	}
}

// SearchResponse lists guest-search hits, best first.
type SearchResponse struct {
	Query   string          `json:"query" example:"smith"`
	Results []search.Result `json:"results"`
}

// DeleteAllResponse reports how many reservations were removed.
type DeleteAllResponse struct {
	Deleted int `json:"deleted" example:"4"`
}

//
// Handlers
//

// ListReservations godoc
// @ID          listReservations
// @Summary     List reservations
// @Description Without parameters returns every reservation. date narrows to one day. q runs a guest search over names, phone digits and notes.
// @Tags        Reservations
// @Produce     json
//
// @Param       date   query  string  false "Date (YYYY-MM-DD)"         example(2024-06-01)
// @Param       q      query  string  false "Guest search"              example(smith)
// @Param       limit  query  int     false "Search result cap (1..50)" default(10)
//
// @Success     200  {array}   domain.Reservation
// @Success     200  {object}  handlers.SearchResponse "When q is set"
// @Failure     422  {object}  handlers.ErrorResponse "Malformed date"
// @Router      /reservations [get]
func (h *Handlers) ListReservations(c *gin.Context) {
	ctx := c.Request.Context()

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		limit := utils.Limit(c.Query("limit"), search.DefaultLimit, maxSearchLimit)
		ok(c, http.StatusOK, SearchResponse{Query: q, Results: h.booking.SearchReservations(ctx, q, limit)})
		return
	}

	if date := strings.TrimSpace(c.Query("date")); date != "" {
		rs, err := h.booking.ReservationsForDate(ctx, date)
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, http.StatusOK, rs)
		return
	}

	ok(c, http.StatusOK, h.booking.Reservations(ctx))
}

// GetReservation godoc
// @ID          getReservation
// @Summary     Get a reservation
// @Tags        Reservations
// @Produce     json
//
// @Param       id  path  string  true  "Reservation ID"
//
// @Success     200  {object}  domain.Reservation
// @Failure     404  {object}  handlers.ErrorResponse "Reservation not found"
// @Router      /reservations/{id} [get]
func (h *Handlers) GetReservation(c *gin.Context) {
	id := c.Param("id")
	middleware.Annotate(c, "reservation_id", id)
	r, err := h.booking.Reservation(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// CreateReservation godoc
// @ID          createReservation
// @Summary     Book a table
// @Description Books the table for the 90-minute window starting at time on date. Rejected with 409 when another reservation on the table overlaps. A repeated Idempotency-Key returns the first result.
// @Tags        Reservations
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                               false "Retry-safe key (up to 200 token chars)"
// @Param       body             body    handlers.CreateReservationRequest   true  "Reservation"
//
// @Success     201  {object}  domain.Reservation
// @Success     200  {object}  domain.Reservation "Idempotent replay"
// @Header      200  {string}  Idempotent-Replay "true"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Table not found"
// @Failure     409  {object}  handlers.ErrorResponse "Conflicting reservation or combined member"
// @Failure     422  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /reservations [post]
func (h *Handlers) CreateReservation(c *gin.Context) {
	ctx := c.Request.Context()
	lg := middleware.LoggerFrom(c)

	if id, replay := middleware.ReplayID(c); replay {
		middleware.Annotate(c, "reservation_id", id)
		r, err := h.booking.Reservation(ctx, id)
		if err == nil {
			c.Header(HeaderIdempotentReplay, "true")
			ok(c, http.StatusOK, r)
			return
		}
		// The original was cancelled since; treat the retry as a new request.
		lg.Debug().Str("reservation_id", id).Msg("idempotent replay target gone")
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tableId, date and time are required")
		return
	}

	r, err := h.booking.CreateReservation(ctx, req.input())
	if err != nil {
		failErr(c, err)
		return
	}

	if key, has := middleware.GetIdempotencyKey(c); has && h.idem != nil {
		if err := h.idem.Remember(ctx, key, r.ID, h.idemTTL); err != nil {
			lg.Warn().Err(err).Str("reservation_id", r.ID).Msg("idempotency key not recorded")
		}
	}

	middleware.Annotate(c, "reservation_id", r.ID)
	c.Header("Location", "/reservations/"+r.ID)
	ok(c, http.StatusCreated, r)
}

// UpdateReservation godoc
// @ID          updateReservation
// @Summary     Update a reservation
// @Description Merges the supplied fields. Moving to another table, date or time is checked for conflicts against every other reservation.
// @Tags        Reservations
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                    true  "Reservation ID"
// @Param       body  body  domain.ReservationPatch   true  "Fields to change"
//
// @Success     200  {object}  domain.Reservation
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Reservation or table not found"
// @Failure     409  {object}  handlers.ErrorResponse "Conflicting reservation"
// @Failure     422  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /reservations/{id} [patch]
func (h *Handlers) UpdateReservation(c *gin.Context) {
	var p domain.ReservationPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid body")
		return
	}
	id := c.Param("id")
	middleware.Annotate(c, "reservation_id", id)
	r, err := h.booking.UpdateReservation(c.Request.Context(), id, p)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// CancelReservation godoc
// @ID          cancelReservation
// @Summary     Cancel a reservation
// @Description Removes the reservation and appends a copy to the deleted-reservations log.
// @Tags        Reservations
// @Produce     json
//
// @Param       id  path  string  true  "Reservation ID"
//
// @Success     200  {object}  domain.DeletedReservation
// @Failure     404  {object}  handlers.ErrorResponse "Reservation not found"
// @Router      /reservations/{id} [delete]
func (h *Handlers) CancelReservation(c *gin.Context) {
	id := c.Param("id")
	middleware.Annotate(c, "reservation_id", id)
	d, err := h.booking.CancelReservation(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// DeleteAllReservations godoc
// @ID          deleteAllReservations
// @Summary     Delete every reservation
// @Description Logs each reservation to the deleted-reservations log, then clears them.
// @Tags        Reservations
// @Produce     json
// @Success     200  {object}  handlers.DeleteAllResponse
// @Router      /reservations [delete]
func (h *Handlers) DeleteAllReservations(c *gin.Context) {
	n := h.booking.DeleteAllReservations(c.Request.Context())
	middleware.LoggerFrom(c).Info().Int("deleted", n).Msg("all reservations deleted")
	ok(c, http.StatusOK, DeleteAllResponse{Deleted: n})
}
