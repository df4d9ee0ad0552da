package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/supabase"
)

type UsersHandler struct {
	db *supabase.DatabaseClient
}

func NewUsersHandler(db *supabase.DatabaseClient) *UsersHandler {
	return &UsersHandler{db: db}
}

func (h *UsersHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.db.GetProfile(userID)
	if err != nil {
		fail(c, http.StatusNotFound, "user profile not found")
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		ID:        profile.ID.String(),
		Nickname:  profile.Nickname,
		AvatarURL: profile.AvatarURL,
		City:      profile.City,
	})
}

func (h *UsersHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if len(updates) == 0 {
		fail(c, http.StatusBadRequest, "no valid fields to update")
		return
	}

	profile, err := h.db.UpdateProfile(userID, updates)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to update user profile")
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		ID:        profile.ID.String(),
		Nickname:  profile.Nickname,
		AvatarURL: profile.AvatarURL,
		City:      profile.City,
	})
}
