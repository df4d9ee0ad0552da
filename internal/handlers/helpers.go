package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/models"
)

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Code: status, Message: message})
}

// currentUserID reads the authenticated user id the middleware stored.
// Writes the error response itself when the id is missing or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		fail(c, http.StatusUnauthorized, "missing access token")
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid access token")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(str)
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid access token")
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// pagination parses page/pageSize query params with the given default
// page size, clamping nonsense values back to the defaults.
func pagination(c *gin.Context, defaultSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultSize)))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	return page, pageSize
}
