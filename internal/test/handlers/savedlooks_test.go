package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"wardrobe-backend/internal/handlers"
	"wardrobe-backend/internal/looks"
	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/models"
)

// lookStore is an in-memory looks.Store for handler tests.
type lookStore struct {
	looks    map[uuid.UUID]models.SavedLook
	items    []models.SavedLookItem
	wardrobe []models.WardrobeItem
	profiles map[uuid.UUID]models.Profile
	posts    []models.CommunityPost
	images   []models.CommunityPostImage
}

func newLookStore() *lookStore {
	return &lookStore{
		looks:    map[uuid.UUID]models.SavedLook{},
		profiles: map[uuid.UUID]models.Profile{},
	}
}

func (s *lookStore) InsertSavedLook(look models.SavedLook) error {
	s.looks[look.ID] = look
	return nil
}

func (s *lookStore) SavedLooksPage(userID uuid.UUID, limit, offset int) ([]models.SavedLook, int64, error) {
	var mine []models.SavedLook
	for _, look := range s.looks {
		if look.UserID == userID {
			mine = append(mine, look)
		}
	}
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (s *lookStore) GetSavedLook(id, userID uuid.UUID) (*models.SavedLook, error) {
	look, ok := s.looks[id]
	if !ok || look.UserID != userID {
		return nil, fmt.Errorf("no rows")
	}
	return &look, nil
}

func (s *lookStore) DeleteSavedLook(id, userID uuid.UUID) error {
	delete(s.looks, id)
	return nil
}

func (s *lookStore) InsertLookItems(items []models.SavedLookItem) error {
	s.items = append(s.items, items...)
	return nil
}

func (s *lookStore) LookItems(lookID uuid.UUID) ([]models.SavedLookItem, error) {
	var out []models.SavedLookItem
	for _, item := range s.items {
		if item.SavedLookID == lookID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *lookStore) DeleteLookItems(lookID uuid.UUID) error {
	var kept []models.SavedLookItem
	for _, item := range s.items {
		if item.SavedLookID != lookID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

func (s *lookStore) WardrobeItemsByPaths(userID uuid.UUID, paths []string) ([]models.WardrobeItem, error) {
	wanted := map[string]bool{}
	for _, p := range paths {
		wanted[p] = true
	}
	var out []models.WardrobeItem
	for _, item := range s.wardrobe {
		if item.UserID == userID && wanted[item.ImagePath] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *lookStore) WardrobeItemsByIDs(ids []uuid.UUID) ([]models.WardrobeItem, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.WardrobeItem
	for _, item := range s.wardrobe {
		if wanted[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *lookStore) GetProfile(id uuid.UUID) (*models.Profile, error) {
	profile, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return &profile, nil
}

func (s *lookStore) InsertPost(post models.CommunityPost) error {
	s.posts = append(s.posts, post)
	return nil
}

func (s *lookStore) InsertPostImages(images []models.CommunityPostImage) error {
	s.images = append(s.images, images...)
	return nil
}

func looksRouter(store *lookStore, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewSavedLooksHandler(looks.NewComposer(store, zap.NewNop()))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
	})
	router.POST("/saved-looks", handler.Create)
	router.GET("/saved-looks", handler.List)
	router.DELETE("/saved-looks/:id", handler.Delete)
	router.POST("/saved-looks/:id/publish", handler.Publish)
	return router
}

func TestSavedLooksCreate_MissingCover(t *testing.T) {
	router := looksRouter(newLookStore(), uuid.New())

	req, _ := http.NewRequest("POST", "/saved-looks", strings.NewReader(`{"clothing_image_urls":["u/a.jpg"]}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cover image")
}

func TestSavedLooksCreateAndList(t *testing.T) {
	store := newLookStore()
	userID := uuid.New()
	store.wardrobe = append(store.wardrobe, models.WardrobeItem{
		ID: uuid.New(), UserID: userID, ImagePath: "u/a.jpg",
	})
	router := looksRouter(store, userID)

	body := `{"cover_image_url":"u/cover.jpg","clothing_image_urls":["u/a.jpg","u/missing.jpg"]}`
	req, _ := http.NewRequest("POST", "/saved-looks", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/saved-looks", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SavedLookListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	require.Len(t, resp.List, 1)
	assert.Equal(t, "u/cover.jpg", resp.List[0].CoverImageURL)
	// Only the owned, matching path comes back.
	assert.Equal(t, []string{"u/a.jpg"}, resp.List[0].ClothingImageURLs)
}

func TestSavedLooksDelete_NotFound(t *testing.T) {
	router := looksRouter(newLookStore(), uuid.New())

	req, _ := http.NewRequest("DELETE", "/saved-looks/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSavedLooksPublish(t *testing.T) {
	store := newLookStore()
	userID := uuid.New()
	store.profiles[userID] = models.Profile{ID: userID, Nickname: "sam"}
	router := looksRouter(store, userID)

	req, _ := http.NewRequest("POST", "/saved-looks", strings.NewReader(`{"cover_image_url":"u/cover.jpg"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var created models.IDResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req, _ = http.NewRequest("POST", "/saved-looks/"+created.ID+"/publish", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PublishResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, store.posts, 1)
	assert.Equal(t, store.posts[0].ID.String(), resp.PostID)
	require.Len(t, store.images, 1)
	assert.Equal(t, "u/cover.jpg", store.images[0].ImageURL)
}
