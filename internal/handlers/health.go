package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"wardrobe-backend/internal/models"
)

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}
