package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"membership-api/internal/database"
	"membership-api/internal/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Content endpoints expose the keyed JSON store the admin panel edits: bonus
// courses, onboarding videos, popup contents, notifications, theme defaults.
// Keys under user_ are internal markers and not editable here.

func contentKeyAllowed(key string) bool {
	return key != "" && !strings.HasPrefix(key, "user_")
}

// GetContent returns the stored JSON blob for a key.
// GET /api/admin/content/:key
func GetContent(c *gin.Context) {
	key := c.Param("key")
	if !contentKeyAllowed(key) {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid content key")
		return
	}

	value, err := database.GetItem(key)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.ErrorJSON(c, http.StatusNotFound, "Content not found")
			return
		}
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to load content")
		return
	}

	response.SuccessJSON(c, gin.H{"key": key, "value": json.RawMessage(value)})
}

// PutContent stores a JSON blob under a key, replacing any previous value.
// PUT /api/admin/content/:key
func PutContent(c *gin.Context) {
	key := c.Param("key")
	if !contentKeyAllowed(key) {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid content key")
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		response.ErrorJSON(c, http.StatusBadRequest, "Empty request body")
		return
	}
	if !json.Valid(body) {
		response.ErrorJSON(c, http.StatusBadRequest, "Body must be valid JSON")
		return
	}

	if err := database.SetItem(key, string(body)); err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to store content")
		return
	}

	response.SuccessJSON(c, gin.H{"key": key})
}

// DeleteContent removes a stored blob.
// DELETE /api/admin/content/:key
func DeleteContent(c *gin.Context) {
	key := c.Param("key")
	if !contentKeyAllowed(key) {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid content key")
		return
	}

	if err := database.DeleteItem(key); err != nil {
		response.ErrorJSON(c, http.StatusInternalServerError, "Failed to delete content")
		return
	}

	response.SuccessJSON(c, gin.H{"key": key, "deleted": true})
}
