package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	dbutil "github.com/brandbridge/bridgeboard/internal/db"
	"github.com/brandbridge/bridgeboard/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler manages user accounts.
type UserHandler struct {
	db *gorm.DB
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List returns all users with their bridge counts, optionally filtered by username.
func (h *UserHandler) List(c *gin.Context) {
	usernameQ := strings.TrimSpace(c.Query("username"))

	q := h.db.WithContext(c.Request.Context()).Model(&models.User{})
	if usernameQ != "" {
		pattern := dbutil.NormalizeLikePattern(h.db, "%"+usernameQ+"%")
		q = q.Where(dbutil.CaseInsensitiveLikeExpr(h.db, "username"), pattern)
	}

	var rows []models.User
	if errFind := q.Order("created_at DESC, id DESC").Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list users failed"})
		return
	}

	type countRow struct {
		UserID uint64
		Total  int64
	}
	var counts []countRow
	if errCount := h.db.WithContext(c.Request.Context()).Model(&models.Bridge{}).
		Select("user_id, COUNT(*) AS total").
		Group("user_id").
		Scan(&counts).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "count bridges failed"})
		return
	}
	bridgeCounts := make(map[uint64]int64, len(counts))
	for _, row := range counts {
		bridgeCounts[row.UserID] = row.Total
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, gin.H{
			"id":           row.ID,
			"username":     row.Username,
			"email":        row.Email,
			"disabled":     row.Disabled,
			"is_admin":     row.IsAdmin,
			"bridge_count": bridgeCounts[row.ID],
			"created_at":   row.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// Disable blocks a user from signing in.
func (h *UserHandler) Disable(c *gin.Context) {
	h.setDisabled(c, true)
}

// Enable lets a disabled user sign in again.
func (h *UserHandler) Enable(c *gin.Context) {
	h.setDisabled(c, false)
}

func (h *UserHandler) setDisabled(c *gin.Context, disabled bool) {
	id, errParse := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if adminID, _ := c.Get("adminID"); adminID == id && disabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot disable yourself"})
		return
	}
	res := h.db.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"disabled": disabled, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update user failed"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
