package handlers

import (
	"net/http"

	"github.com/brandbridge/bridgeboard/internal/bridge"
	"github.com/gin-gonic/gin"
)

// BridgeHandler serves bridge CRUD for the signed-in user.
type BridgeHandler struct {
	svc *bridge.Service
}

// NewBridgeHandler constructs a BridgeHandler.
func NewBridgeHandler(svc *bridge.Service) *BridgeHandler {
	return &BridgeHandler{svc: svc}
}

type nameRequest struct {
	Name string `json:"name"`
}

type slugRequest struct {
	Slug string `json:"slug"`
}

// List returns the user's bridges and all section types.
func (h *BridgeHandler) List(c *gin.Context) {
	overview, err := h.svc.List(c.Request.Context(), getUserID(c))
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Get returns one bridge with its section types joined against its groups.
func (h *BridgeHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), getUserID(c), id)
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Create makes a new bridge from {name}.
func (h *BridgeHandler) Create(c *gin.Context) {
	var body nameRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return
	}
	created, err := h.svc.Create(c.Request.Context(), getUserID(c), body.Name)
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bridge": created})
}

// UpdateName renames a bridge. PUT /bridges/:id shares this handler.
func (h *BridgeHandler) UpdateName(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body nameRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return
	}
	updated, err := h.svc.UpdateName(c.Request.Context(), getUserID(c), id, body.Name)
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bridge": updated})
}

// UpdateSlug sets a bridge slug from {slug}.
func (h *BridgeHandler) UpdateSlug(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body slugRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
		return
	}
	updated, err := h.svc.UpdateSlug(c.Request.Context(), getUserID(c), id, body.Slug)
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bridge": updated})
}

// Delete removes a bridge and returns the remaining list.
func (h *BridgeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	overview, err := h.svc.Delete(c.Request.Context(), getUserID(c), id)
	if err != nil {
		writeBridgeError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
