// Deleted-reservation log HTTP handlers.
//
//   - GET    /deleted-reservations          (newest first by default)
//   - DELETE /deleted-reservations
//   - GET    /deleted-reservations/export   (plain-text download)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/table-reservations/internal/domain"
	"github.com/tbourn/table-reservations/internal/utils"
)

// ClearLogResponse reports how many audit entries were removed.
type ClearLogResponse struct {
	Cleared int `json:"cleared" example:"3"`
}

// ListDeleted godoc
// @ID          listDeletedReservations
// @Summary     Deleted-reservation log
// @Tags        Audit
// @Produce     json
//
// @Param       order  query  string  false "desc (newest first) or asc"  Enums(desc, asc) default(desc)
// @Param       limit  query  int     false "Maximum entries (0 = all)"    default(0)
//
// @Success     200  {array}   domain.DeletedReservation
// @Failure     400  {object}  handlers.ErrorResponse "Bad order"
// @Router      /deleted-reservations [get]
func (h *Handlers) ListDeleted(c *gin.Context) {
	order := strings.ToLower(strings.TrimSpace(c.DefaultQuery("order", "desc")))
	if order != "desc" && order != "asc" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "order must be asc or desc")
		return
	}

	entries := h.booking.DeletedReservations(c.Request.Context())
	out := make([]domain.DeletedReservation, len(entries))
	if order == "desc" {
		for i, e := range entries {
			out[len(entries)-1-i] = e
		}
	} else {
		copy(out, entries)
	}

	if limit := utils.Limit(c.Query("limit"), 0, 0); limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	ok(c, http.StatusOK, out)
}

// ClearDeleted godoc
// @ID          clearDeletedReservations
// @Summary     Clear the deleted-reservation log
// @Tags        Audit
// @Produce     json
// @Success     200  {object}  handlers.ClearLogResponse
// @Router      /deleted-reservations [delete]
func (h *Handlers) ClearDeleted(c *gin.Context) {
	ok(c, http.StatusOK, ClearLogResponse{Cleared: h.booking.ClearDeletedLog(c.Request.Context())})
}

// ExportDeleted godoc
// @ID          exportDeletedReservations
// @Summary     Export the deleted-reservation log
// @Description Downloads the log as a text report named deleted_reservations_YYYY-MM-DD.txt.
// @Tags        Audit
// @Produce     plain
// @Success     200  {string}  string "Report"
// @Header      200  {string}  Content-Disposition "attachment; filename=..."
// @Router      /deleted-reservations/export [get]
func (h *Handlers) ExportDeleted(c *gin.Context) {
	name, body := h.booking.ExportDeletedLog(c.Request.Context())
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
