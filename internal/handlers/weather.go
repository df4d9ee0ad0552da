package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/supabase"
)

// WeatherHandler persists a client-fetched weather snapshot on the
// profile row so other devices can reuse it without refetching.
type WeatherHandler struct {
	db  *supabase.DatabaseClient
	log *zap.Logger
}

func NewWeatherHandler(db *supabase.DatabaseClient, log *zap.Logger) *WeatherHandler {
	return &WeatherHandler{db: db, log: log}
}

func (h *WeatherHandler) SaveCache(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.WeatherCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.WeatherData) == 0 {
		fail(c, http.StatusBadRequest, "missing weather data")
		return
	}

	if err := h.db.UpdateWeatherCache(userID, req.WeatherData); err != nil {
		fail(c, http.StatusInternalServerError, "failed to save weather cache")
		return
	}

	c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

func (h *WeatherHandler) GetCache(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.db.GetProfile(userID)
	if err != nil {
		fail(c, http.StatusNotFound, "user profile not found")
		return
	}

	resp := models.WeatherCacheResponse{UpdatedAt: profile.WeatherUpdatedAt}
	if len(profile.CachedWeather) > 0 {
		if err := json.Unmarshal(profile.CachedWeather, &resp.WeatherData); err != nil {
			h.log.Warn("failed to decode cached weather", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}
