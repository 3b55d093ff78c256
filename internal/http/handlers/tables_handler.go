// Floor plan HTTP handlers.
//
// This file exposes REST endpoints for tables and layout editing:
//   - GET    /tables                    (list, ETag support)
//   - GET    /tables/status             (reserved/available for a window)
//   - GET    /tables/{id}/reservation   (occupant of a window)
//   - PUT    /tables/seats              (batch seat update)
//   - PUT    /tables/{id}/shape
//   - PUT    /tables/{id}/position
//   - POST   /tables/combine
//   - POST   /tables/{id}/uncombine
//   - PUT    /layout                    (replace the whole layout)
//   - GET    /layout/undo, POST /layout/undo
//   - GET    /time-slots
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/table-reservations/internal/domain"
	"github.com/tbourn/table-reservations/internal/services"
	"github.com/tbourn/table-reservations/internal/timewindow"
	"github.com/tbourn/table-reservations/internal/sysutil"
)

//
// DTOs
//

// UpdateSeatsRequest is the JSON payload for a batch seat update.
type UpdateSeatsRequest struct {
	Updates []services.SeatUpdate `json:"updates" binding:"required,min=1"`
}

// UpdateShapeRequest is the JSON payload for changing a table's shape.
type UpdateShapeRequest struct {
	Shape domain.Shape `json:"shape" binding:"required" example:"round"`
}

// UpdatePositionRequest is the JSON payload for moving a table.
type UpdatePositionRequest struct {
	X *float64 `json:"x" binding:"required" example:"160"`
	Y *float64 `json:"y" binding:"required" example:"80"`
}

// CombineRequest names the tables to merge; the first id becomes the primary.
type CombineRequest struct {
	TableIDs []string `json:"tableIds" binding:"required" example:"t5,t6"`
}

// LoadLayoutRequest replaces the whole layout.
type LoadLayoutRequest struct {
	Tables []domain.Table `json:"tables" binding:"required"`
}

// LayoutChangeResponse reports whether a layout edit changed anything and the
// floor plan after it.
type LayoutChangeResponse struct {
	Changed bool           `json:"changed"`
	Tables  []domain.Table `json:"tables"`
}

// UndoResponse reports the undo state.
type UndoResponse struct {
	Undone  bool `json:"undone"`
	CanUndo bool `json:"canUndo"`
}

// WindowReservationResponse wraps the occupant of a window, if any.
type WindowReservationResponse struct {
	Reservation *domain.Reservation `json:"reservation"`
}

// TimeSlotsResponse lists bookable start times and the default window.
type TimeSlotsResponse struct {
	Slots       []string `json:"slots"`
	DefaultDate string   `json:"defaultDate" example:"2024-06-01"`
	DefaultTime string   `json:"defaultTime" example:"19:00"`
}

// window reads ?date= and ?time=, falling back to today and the nearest slot.
func (h *Handlers) window(c *gin.Context) (date, clock string) {
	date, clock = strings.TrimSpace(c.Query("date")), strings.TrimSpace(c.Query("time"))
	if date == "" || clock == "" {
		dd, dt := h.floor.DefaultWindow()
		if date == "" {
			date = dd
		}
		if clock == "" {
			clock = dt
		}
	}
	return date, clock
}

func (h *Handlers) layoutChanged(c *gin.Context, changed bool) {
	ok(c, http.StatusOK, LayoutChangeResponse{Changed: changed, Tables: h.floor.VisibleTables(c.Request.Context())})
}

//
// Handlers
//

// ListTables godoc
// @ID          listTables
// @Summary     List tables
// @Description Returns the tables drawn on the floor plan. With all=true hidden members of combined groups are included. Supports weak ETag via If-None-Match.
// @Tags        Tables
// @Produce     json
//
// @Param       all            query   bool    false "Include combined secondaries"
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"tables:12\")
//
// @Success     200  {array}   domain.Table
// @Header      200  {string}  ETag  "Weak ETag for current layout"
// @Success     304  {string}  string "Not Modified"
// @Router      /tables [get]
func (h *Handlers) ListTables(c *gin.Context) {
	all := sysutil.IsTruthy(c.Query("all"))
	scope := "tables"
	if all {
		scope = "tables-all"
	}
	if h.notModified(c, scope) {
		return
	}
	if all {
		ok(c, http.StatusOK, h.floor.Tables(c.Request.Context()))
		return
	}
	ok(c, http.StatusOK, h.floor.VisibleTables(c.Request.Context()))
}

// TableStatus godoc
// @ID          tableStatus
// @Summary     Table availability for a window
// @Description Marks each visible table reserved or available for the 90-minute window starting at time on date. Defaults to today and the nearest slot.
// @Tags        Tables
// @Produce     json
//
// @Param       date  query  string  false "Date (YYYY-MM-DD)"  example(2024-06-01)
// @Param       time  query  string  false "Start time (HH:MM)" example(19:00)
//
// @Success     200  {object}  services.StatusView
// @Failure     422  {object}  handlers.ErrorResponse "Malformed date or time"
// @Router      /tables/status [get]
func (h *Handlers) TableStatus(c *gin.Context) {
	date, clock := h.window(c)
	v, err := h.floor.TableStatus(c.Request.Context(), date, clock)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

// TableReservation godoc
// @ID          tableReservation
// @Summary     Reservation occupying a table
// @Description Returns the reservation on the table, or on any table of its combined group, whose window overlaps the one starting at time on date.
// @Tags        Tables
// @Produce     json
//
// @Param       id    path   string  true  "Table ID"           example(t2)
// @Param       date  query  string  false "Date (YYYY-MM-DD)"  example(2024-06-01)
// @Param       time  query  string  false "Start time (HH:MM)" example(19:00)
//
// @Success     200  {object}  handlers.WindowReservationResponse
// @Failure     404  {object}  handlers.ErrorResponse "Table not found"
// @Failure     422  {object}  handlers.ErrorResponse "Malformed date or time"
// @Router      /tables/{id}/reservation [get]
func (h *Handlers) TableReservation(c *gin.Context) {
	date, clock := h.window(c)
	r, err := h.floor.ReservationForWindow(c.Request.Context(), c.Param("id"), date, clock)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, WindowReservationResponse{Reservation: r})
}

// UpdateSeats godoc
// @ID          updateSeats
// @Summary     Update seat counts
// @Description Applies every seat change or none of them. Unknown ids are skipped.
// @Tags        Layout
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.UpdateSeatsRequest  true  "Seat updates"
//
// @Success     200  {object}  handlers.LayoutChangeResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse "Seats below one"
// @Router      /tables/seats [put]
func (h *Handlers) UpdateSeats(c *gin.Context) {
	var req UpdateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "updates required")
		return
	}
	changed, err := h.floor.UpdateSeats(c.Request.Context(), req.Updates)
	if err != nil {
		failErr(c, err)
		return
	}
	h.layoutChanged(c, changed)
}

// UpdateShape godoc
// @ID          updateShape
// @Summary     Change a table's shape
// @Tags        Layout
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                        true  "Table ID"  example(t4)
// @Param       body  body  handlers.UpdateShapeRequest   true  "round, square or rectangle"
//
// @Success     200  {object}  handlers.LayoutChangeResponse "changed=false for unknown ids"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse "Unknown shape"
// @Router      /tables/{id}/shape [put]
func (h *Handlers) UpdateShape(c *gin.Context) {
	var req UpdateShapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "shape required")
		return
	}
	changed, err := h.floor.UpdateShape(c.Request.Context(), c.Param("id"), req.Shape)
	if err != nil {
		failErr(c, err)
		return
	}
	h.layoutChanged(c, changed)
}

// UpdatePosition godoc
// @ID          updatePosition
// @Summary     Move a table
// @Tags        Layout
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                          true  "Table ID"  example(t1)
// @Param       body  body  handlers.UpdatePositionRequest  true  "New coordinates"
//
// @Success     200  {object}  handlers.LayoutChangeResponse "changed=false for unknown ids"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse "Negative coordinates"
// @Router      /tables/{id}/position [put]
func (h *Handlers) UpdatePosition(c *gin.Context) {
	var req UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "x and y required")
		return
	}
	changed, err := h.floor.UpdatePosition(c.Request.Context(), c.Param("id"), *req.X, *req.Y)
	if err != nil {
		failErr(c, err)
		return
	}
	h.layoutChanged(c, changed)
}

// CombineTables godoc
// @ID          combineTables
// @Summary     Combine tables
// @Description Merges two or more standalone tables into one group drawn at the first table. Seats are summed; the label joins table numbers in ascending order.
// @Tags        Layout
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CombineRequest  true  "Tables to combine"
//
// @Success     201  {object}  domain.Table
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Table not found"
// @Failure     409  {object}  handlers.ErrorResponse "Table already combined"
// @Failure     422  {object}  handlers.ErrorResponse "Fewer than two tables"
// @Router      /tables/combine [post]
func (h *Handlers) CombineTables(c *gin.Context) {
	var req CombineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tableIds required")
		return
	}
	t, err := h.floor.CombineTables(c.Request.Context(), req.TableIDs)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, t)
}

// UncombineTable godoc
// @ID          uncombineTable
// @Summary     Split a combined group
// @Description Restores every member of the group containing the table to its pre-combine placement. A standalone table is a no-op.
// @Tags        Layout
// @Produce     json
//
// @Param       id  path  string  true  "Any table of the group"  example(t5)
//
// @Success     200  {object}  handlers.LayoutChangeResponse
// @Failure     404  {object}  handlers.ErrorResponse "Table not found"
// @Router      /tables/{id}/uncombine [post]
func (h *Handlers) UncombineTable(c *gin.Context) {
	changed, err := h.floor.UncombineTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	h.layoutChanged(c, changed)
}

// LoadLayout godoc
// @ID          loadLayout
// @Summary     Replace the layout
// @Description Replaces every table at once. The previous layout can be restored with undo.
// @Tags        Layout
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoadLayoutRequest  true  "New layout"
//
// @Success     200  {object}  handlers.LayoutChangeResponse
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse "Invalid table"
// @Router      /layout [put]
func (h *Handlers) LoadLayout(c *gin.Context) {
	var req LoadLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tables required")
		return
	}
	if err := h.floor.LoadLayout(c.Request.Context(), req.Tables); err != nil {
		failErr(c, err)
		return
	}
	h.layoutChanged(c, true)
}

// CanUndo godoc
// @ID          canUndo
// @Summary     Undo availability
// @Tags        Layout
// @Produce     json
// @Success     200  {object}  handlers.UndoResponse
// @Router      /layout/undo [get]
func (h *Handlers) CanUndo(c *gin.Context) {
	ok(c, http.StatusOK, UndoResponse{CanUndo: h.floor.CanUndo(c.Request.Context())})
}

// Undo godoc
// @ID          undoLayout
// @Summary     Undo the last layout edit
// @Description Restores the layout before the most recent change. Reservations are not affected.
// @Tags        Layout
// @Produce     json
// @Success     200  {object}  handlers.UndoResponse
// @Router      /layout/undo [post]
func (h *Handlers) Undo(c *gin.Context) {
	ctx := c.Request.Context()
	undone := h.floor.Undo(ctx)
	ok(c, http.StatusOK, UndoResponse{Undone: undone, CanUndo: h.floor.CanUndo(ctx)})
}

// TimeSlots godoc
// @ID          timeSlots
// @Summary     Bookable start times
// @Description Lists start times from 11:00 to 22:00 every 30 minutes plus the default date and slot.
// @Tags        Tables
// @Produce     json
// @Success     200  {object}  handlers.TimeSlotsResponse
// @Router      /time-slots [get]
func (h *Handlers) TimeSlots(c *gin.Context) {
	date, clock := h.floor.DefaultWindow()
	ok(c, http.StatusOK, TimeSlotsResponse{Slots: timewindow.Slots(), DefaultDate: date, DefaultTime: clock})
}
