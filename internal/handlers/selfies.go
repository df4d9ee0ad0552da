package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe-backend/internal/models"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// SelfieStore is the slice of the data service the selfies router
// needs; tests substitute an in-memory fake.
type SelfieStore interface {
	InsertSelfie(selfie models.Selfie) error
	ListSelfies(userID uuid.UUID) ([]models.Selfie, error)
	GetSelfie(id, userID uuid.UUID) (*models.Selfie, error)
	ClearDefaultSelfie(userID uuid.UUID) error
	SetDefaultSelfie(id uuid.UUID) error
	DeleteSelfie(id, userID uuid.UUID) error
	LatestSelfie(userID uuid.UUID) (*models.Selfie, error)
}

type SelfiesHandler struct {
	db      SelfieStore
	storage ObjectStorage
	bucket  string
	log     *zap.Logger
}

func NewSelfiesHandler(db SelfieStore, storage ObjectStorage, bucket string, log *zap.Logger) *SelfiesHandler {
	return &SelfiesHandler{
		db:      db,
		storage: storage,
		bucket:  bucket,
		log:     log,
	}
}

func (h *SelfiesHandler) CreateUploadURL(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Filename == "" || req.ContentType == "" {
		fail(c, http.StatusBadRequest, "missing filename or content type")
		return
	}
	if !allowedImageTypes[req.ContentType] {
		fail(c, http.StatusBadRequest, "unsupported image format")
		return
	}

	imagePath := fmt.Sprintf("%s/%s_%s", userID.String(), uuid.New().String(), req.Filename)

	target, err := h.storage.CreateUploadURL(h.bucket, imagePath)
	if err != nil {
		h.log.Error("upload URL creation failed", zap.String("path", imagePath), zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to create upload URL")
		return
	}

	c.JSON(http.StatusOK, models.UploadURLResponse{
		UploadURL:    target.URL,
		ImagePath:    imagePath,
		ManualUpload: target.Manual,
	})
}

func (h *SelfiesHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateSelfieRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImagePath == "" {
		fail(c, http.StatusBadRequest, "missing image path")
		return
	}
	if !strings.HasPrefix(req.ImagePath, userID.String()+"/") {
		fail(c, http.StatusBadRequest, "invalid image path")
		return
	}

	if req.IsDefault {
		if err := h.db.ClearDefaultSelfie(userID); err != nil {
			h.log.Warn("failed to clear default selfies", zap.Error(err))
		}
	}

	selfie := models.Selfie{
		ID:        uuid.New(),
		UserID:    userID,
		ImagePath: req.ImagePath,
		IsDefault: req.IsDefault,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.db.InsertSelfie(selfie); err != nil {
		fail(c, http.StatusInternalServerError, "failed to create selfie")
		return
	}

	c.JSON(http.StatusOK, models.IDResponse{ID: selfie.ID.String()})
}

func (h *SelfiesHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	selfies, err := h.db.ListSelfies(userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list selfies")
		return
	}

	list := make([]models.SelfieResponse, len(selfies))
	for i, s := range selfies {
		list[i] = models.SelfieResponse{
			ID:        s.ID.String(),
			ImagePath: s.ImagePath,
			ImageURL:  h.storage.PublicURL(h.bucket, s.ImagePath),
			IsDefault: s.IsDefault,
			CreatedAt: s.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.SelfieListResponse{List: list})
}

func (h *SelfiesHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	selfie, err := h.db.GetSelfie(id, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "selfie not found")
		return
	}

	// Storage removal is best-effort; the row delete is what counts.
	if err := h.storage.Remove(h.bucket, []string{selfie.ImagePath}); err != nil {
		h.log.Warn("failed to remove selfie object", zap.String("path", selfie.ImagePath), zap.Error(err))
	}

	if err := h.db.DeleteSelfie(id, userID); err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete selfie")
		return
	}

	// Deleting the default promotes the newest remaining selfie.
	if selfie.IsDefault {
		latest, err := h.db.LatestSelfie(userID)
		if err != nil {
			h.log.Warn("failed to find replacement default selfie", zap.Error(err))
		} else if latest != nil {
			if err := h.db.SetDefaultSelfie(latest.ID); err != nil {
				h.log.Warn("failed to promote default selfie", zap.Error(err))
			}
		}
	}

	c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

func (h *SelfiesHandler) SetDefault(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.db.GetSelfie(id, userID); err != nil {
		fail(c, http.StatusNotFound, "selfie not found")
		return
	}

	if err := h.db.ClearDefaultSelfie(userID); err != nil {
		h.log.Warn("failed to clear default selfies", zap.Error(err))
	}
	if err := h.db.SetDefaultSelfie(id); err != nil {
		fail(c, http.StatusInternalServerError, "failed to set default selfie")
		return
	}

	c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
