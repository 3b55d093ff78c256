// Layout preset HTTP handlers.
//
//   - GET    /presets
//   - POST   /presets               (save current or supplied layout)
//   - POST   /presets/{id}/load     (undoable)
//   - PUT    /presets/{id}/name
//   - DELETE /presets/{id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/table-reservations/internal/domain"
)

// SavePresetRequest names a preset. Without tables the current layout is
// saved.
type SavePresetRequest struct {
	Name   string         `json:"name" binding:"required" example:"Friday private dining"`
	Tables []domain.Table `json:"tables,omitempty"`
}

// RenamePresetRequest is the JSON payload for renaming a preset.
type RenamePresetRequest struct {
	Name string `json:"name" binding:"required" example:"Weekend brunch"`
}

// ListPresets godoc
// @ID          listPresets
// @Summary     List layout presets
// @Tags        Presets
// @Produce     json
// @Success     200  {array}  domain.LayoutPreset
// @Router      /presets [get]
func (h *Handlers) ListPresets(c *gin.Context) {
	ok(c, http.StatusOK, h.floor.Presets(c.Request.Context()))
}

// SavePreset godoc
// @ID          savePreset
// @Summary     Save a layout preset
// @Tags        Presets
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SavePresetRequest  true  "Preset name and optional tables"
//
// @Success     201  {object}  domain.LayoutPreset
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse "Empty name or invalid layout"
// @Router      /presets [post]
func (h *Handlers) SavePreset(c *gin.Context) {
	var req SavePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}
	p, err := h.floor.SavePreset(c.Request.Context(), req.Name, req.Tables)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// LoadPreset godoc
// @ID          loadPreset
// @Summary     Apply a layout preset
// @Description Replaces the layout with a copy of the preset. Undo restores the previous layout.
// @Tags        Presets
// @Produce     json
//
// @Param       id  path  string  true  "Preset ID"
//
// @Success     200  {object}  handlers.LayoutChangeResponse
// @Failure     404  {object}  handlers.ErrorResponse "Preset not found"
// @Router      /presets/{id}/load [post]
func (h *Handlers) LoadPreset(c *gin.Context) {
	if _, err := h.floor.LoadPreset(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	h.layoutChanged(c, true)
}

// RenamePreset godoc
// @ID          renamePreset
// @Summary     Rename a layout preset
// @Tags        Presets
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                        true  "Preset ID"
// @Param       body  body  handlers.RenamePresetRequest  true  "New name"
//
// @Success     200  {object}  domain.LayoutPreset
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse "Preset not found"
// @Failure     422  {object}  handlers.ErrorResponse "Empty name"
// @Router      /presets/{id}/name [put]
func (h *Handlers) RenamePreset(c *gin.Context) {
	var req RenamePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name required")
		return
	}
	p, err := h.floor.RenamePreset(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePreset godoc
// @ID          deletePreset
// @Summary     Delete a layout preset
// @Tags        Presets
//
// @Param       id  path  string  true  "Preset ID"
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Preset not found"
// @Router      /presets/{id} [delete]
func (h *Handlers) DeletePreset(c *gin.Context) {
	if err := h.floor.DeletePreset(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}
