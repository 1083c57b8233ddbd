package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addColorRequest struct {
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

type reorderColorsRequest struct {
	IDs []uint64 `json:"ids"`
}

// AddColor appends a swatch to the bridge's colors section.
func (h *BridgeHandler) AddColor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body addColorRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return
	}
	updated, err := h.svc.AddColor(c.Request.Context(), getUserID(c), id, body.Hex, body.Name)
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bridge": updated})
}

// DeleteColor removes a swatch.
func (h *BridgeHandler) DeleteColor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	colorID, ok := parseIDParam(c, "colorId")
	if !ok {
		return
	}
	updated, err := h.svc.DeleteColor(c.Request.Context(), getUserID(c), id, colorID)
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bridge": updated})
}

// ReorderColors stores the drag and drop order of the bridge's swatches.
func (h *BridgeHandler) ReorderColors(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body reorderColorsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return
	}
	updated, err := h.svc.ReorderColors(c.Request.Context(), getUserID(c), id, body.IDs)
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bridge": updated})
}
