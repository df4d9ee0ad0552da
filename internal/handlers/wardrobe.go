package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/supabase"
)

var validCategories = map[string]bool{
	"tops":        true,
	"bottoms":     true,
	"dresses":     true,
	"outerwear":   true,
	"shoes":       true,
	"accessories": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// WardrobeStore is the slice of the data service the wardrobe router
// needs. The production implementation is the Supabase PostgREST
// client; tests substitute an in-memory fake.
type WardrobeStore interface {
	CategoryByName(name string) (*models.WardrobeCategory, error)
	CreateCategory(name string) (*models.WardrobeCategory, error)
	ListCategories() ([]models.WardrobeCategory, error)
	InsertWardrobeItem(item models.WardrobeItem) (*models.WardrobeItem, error)
	ListWardrobeItems(userID uuid.UUID, categoryID *uuid.UUID) ([]models.WardrobeItem, error)
	GetWardrobeItem(id, userID uuid.UUID) (*models.WardrobeItem, error)
	UpdateWardrobeItem(id, userID uuid.UUID, updates map[string]interface{}) (*models.WardrobeItem, error)
	DeleteWardrobeItem(id, userID uuid.UUID) error
}

// ObjectStorage is the storage surface the image routers need;
// implemented by the Supabase storage client.
type ObjectStorage interface {
	CreateUploadURL(bucket, path string) (supabase.UploadTarget, error)
	PublicURL(bucket, path string) string
	Remove(bucket string, paths []string) error
}

type WardrobeHandler struct {
	db      WardrobeStore
	storage ObjectStorage
	bucket  string
	log     *zap.Logger
}

func NewWardrobeHandler(db WardrobeStore, storage ObjectStorage, bucket string, log *zap.Logger) *WardrobeHandler {
	return &WardrobeHandler{
		db:      db,
		storage: storage,
		bucket:  bucket,
		log:     log,
	}
}

// wardrobePrefix is the object-key prefix every owned wardrobe image
// lives under.
func wardrobePrefix(userID uuid.UUID) string {
	return "wardrobe/" + userID.String() + "/"
}

// categoryNames maps category id to display name, degrading to an empty
// map when the lookup fails so listings still render.
func (h *WardrobeHandler) categoryNames() map[uuid.UUID]string {
	names := map[uuid.UUID]string{}
	categories, err := h.db.ListCategories()
	if err != nil {
		h.log.Warn("failed to load categories", zap.Error(err))
		return names
	}
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}
	return names
}

func (h *WardrobeHandler) itemResponse(item models.WardrobeItem, names map[uuid.UUID]string) models.WardrobeItemResponse {
	resp := models.WardrobeItemResponse{
		ID:        item.ID.String(),
		Name:      item.Metadata.Name,
		ImagePath: item.ImagePath,
		ImageURL:  h.storage.PublicURL(h.bucket, item.ImagePath),
		CreatedAt: item.CreatedAt,
	}
	if item.CategoryID != nil {
		resp.Category = names[*item.CategoryID]
	}
	return resp
}

func (h *WardrobeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var categoryID *uuid.UUID
	if name := c.Query("category"); name != "" {
		category, err := h.db.CategoryByName(name)
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to list wardrobe items")
			return
		}
		if category == nil {
			// Unknown category matches nothing.
			c.JSON(http.StatusOK, models.WardrobeListResponse{List: []models.WardrobeItemResponse{}})
			return
		}
		categoryID = &category.ID
	}

	items, err := h.db.ListWardrobeItems(userID, categoryID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list wardrobe items")
		return
	}

	names := h.categoryNames()
	list := make([]models.WardrobeItemResponse, len(items))
	for i, item := range items {
		list[i] = h.itemResponse(item, names)
	}

	c.JSON(http.StatusOK, models.WardrobeListResponse{List: list})
}

func (h *WardrobeHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.db.GetWardrobeItem(id, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "wardrobe item not found")
		return
	}

	c.JSON(http.StatusOK, h.itemResponse(*item, h.categoryNames()))
}

func (h *WardrobeHandler) CreateUploadURL(c *gin.Context) {
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

	safeName := unsafeFilenameChars.ReplaceAllString(req.Filename, "_")
	imagePath := fmt.Sprintf("%s%d_%s", wardrobePrefix(userID), time.Now().UnixMilli(), safeName)

	target, err := h.storage.CreateUploadURL(h.bucket, imagePath)
	if err != nil {
		h.log.Error("upload URL creation failed", zap.String("path", imagePath), zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to create upload URL")
		return
	}

	c.JSON(http.StatusOK, models.UploadURLResponse{
		UploadURL:    target.URL,
		ImagePath:    imagePath,
		ImageURL:     h.storage.PublicURL(h.bucket, imagePath),
		ManualUpload: target.Manual,
	})
}

func (h *WardrobeHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateWardrobeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Category == "" || req.ImagePath == "" {
		fail(c, http.StatusBadRequest, "missing name, category or image path")
		return
	}
	if !strings.HasPrefix(req.ImagePath, wardrobePrefix(userID)) {
		fail(c, http.StatusBadRequest, "invalid image path")
		return
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if !validCategories[category] {
		fail(c, http.StatusBadRequest, "unknown category")
		return
	}

	categoryID, err := h.findOrCreateCategory(category)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to resolve category")
		return
	}

	item, err := h.db.InsertWardrobeItem(models.WardrobeItem{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		ImagePath:  req.ImagePath,
		Metadata:   models.ItemMetadata{Name: req.Name},
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to create wardrobe item")
		return
	}

	c.JSON(http.StatusOK, h.itemResponse(*item, h.categoryNames()))
}

func (h *WardrobeHandler) findOrCreateCategory(name string) (*uuid.UUID, error) {
	category, err := h.db.CategoryByName(name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		category, err = h.db.CreateCategory(name)
		if err != nil {
			return nil, err
		}
	}
	return &category.ID, nil
}

func (h *WardrobeHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateWardrobeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["metadata"] = models.ItemMetadata{Name: *req.Name}
	}
	if req.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*req.Category))
		if category == "" {
			updates["category_id"] = nil
		} else {
			if !validCategories[category] {
				fail(c, http.StatusBadRequest, "unknown category")
				return
			}
			categoryID, err := h.findOrCreateCategory(category)
			if err != nil {
				fail(c, http.StatusInternalServerError, "failed to resolve category")
				return
			}
			updates["category_id"] = categoryID.String()
		}
	}
	if len(updates) == 0 {
		fail(c, http.StatusBadRequest, "no valid fields to update")
		return
	}

	item, err := h.db.UpdateWardrobeItem(id, userID, updates)
	if err != nil {
		fail(c, http.StatusNotFound, "wardrobe item not found")
		return
	}

	c.JSON(http.StatusOK, h.itemResponse(*item, h.categoryNames()))
}

func (h *WardrobeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.db.GetWardrobeItem(id, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "wardrobe item not found")
		return
	}

	if err := h.storage.Remove(h.bucket, []string{item.ImagePath}); err != nil {
		h.log.Warn("failed to remove wardrobe object", zap.String("path", item.ImagePath), zap.Error(err))
	}

	if err := h.db.DeleteWardrobeItem(id, userID); err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete wardrobe item")
		return
	}

	c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// SetDefault exists for route parity with selfies; wardrobe items have
// no default flag.
func (h *WardrobeHandler) SetDefault(c *gin.Context) {
	fail(c, http.StatusBadRequest, "wardrobe items do not support a default flag")
}
