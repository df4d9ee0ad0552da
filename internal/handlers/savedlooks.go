package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"wardrobe-backend/internal/looks"
	"wardrobe-backend/internal/models"
)

type SavedLooksHandler struct {
	composer *looks.Composer
}

func NewSavedLooksHandler(composer *looks.Composer) *SavedLooksHandler {
	return &SavedLooksHandler{composer: composer}
}

func (h *SavedLooksHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateSavedLookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CoverImageURL == "" {
		fail(c, http.StatusBadRequest, "missing cover image")
		return
	}

	result, err := h.composer.Create(userID, looks.CreateInput{
		CoverImageURL:     req.CoverImageURL,
		ClothingImageURLs: req.ClothingImageURLs,
		AITaskID:          req.AITaskID,
		RecommendationID:  req.RecommendationID,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to save look")
		return
	}

	c.JSON(http.StatusOK, models.IDResponse{ID: result.LookID.String()})
}

func (h *SavedLooksHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c, 20)

	list, total, err := h.composer.List(userID, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list looks")
		return
	}

	c.JSON(http.StatusOK, models.SavedLookListResponse{
		List:     list,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

func (h *SavedLooksHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.composer.Delete(id, userID); err != nil {
		if errors.Is(err, looks.ErrNotFound) {
			fail(c, http.StatusNotFound, "look not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to delete look")
		return
	}

	c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

func (h *SavedLooksHandler) Publish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.composer.Publish(id, userID)
	if err != nil {
		if errors.Is(err, looks.ErrNotFound) {
			fail(c, http.StatusNotFound, "look not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to publish look")
		return
	}

	c.JSON(http.StatusOK, models.PublishResponse{PostID: result.PostID.String()})
}
