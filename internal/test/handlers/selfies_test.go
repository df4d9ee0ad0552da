package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"wardrobe-backend/internal/handlers"
	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/models"
)

// selfieStore is an in-memory handlers.SelfieStore.
type selfieStore struct {
	selfies map[uuid.UUID]models.Selfie
}

func newSelfieStore() *selfieStore {
	return &selfieStore{selfies: map[uuid.UUID]models.Selfie{}}
}

func (s *selfieStore) InsertSelfie(selfie models.Selfie) error {
	s.selfies[selfie.ID] = selfie
	return nil
}

func (s *selfieStore) ListSelfies(userID uuid.UUID) ([]models.Selfie, error) {
	var out []models.Selfie
	for _, selfie := range s.selfies {
		if selfie.UserID == userID {
			out = append(out, selfie)
		}
	}
	return out, nil
}

func (s *selfieStore) GetSelfie(id, userID uuid.UUID) (*models.Selfie, error) {
	selfie, ok := s.selfies[id]
	if !ok || selfie.UserID != userID {
		return nil, fmt.Errorf("no rows")
	}
	return &selfie, nil
}

func (s *selfieStore) ClearDefaultSelfie(userID uuid.UUID) error {
	for id, selfie := range s.selfies {
		if selfie.UserID == userID && selfie.IsDefault {
			selfie.IsDefault = false
			s.selfies[id] = selfie
		}
	}
	return nil
}

func (s *selfieStore) SetDefaultSelfie(id uuid.UUID) error {
	selfie, ok := s.selfies[id]
	if !ok {
		return fmt.Errorf("no rows")
	}
	selfie.IsDefault = true
	s.selfies[id] = selfie
	return nil
}

func (s *selfieStore) DeleteSelfie(id, userID uuid.UUID) error {
	delete(s.selfies, id)
	return nil
}

func (s *selfieStore) LatestSelfie(userID uuid.UUID) (*models.Selfie, error) {
	var latest *models.Selfie
	for _, selfie := range s.selfies {
		if selfie.UserID != userID {
			continue
		}
		selfie := selfie
		if latest == nil || selfie.CreatedAt.After(latest.CreatedAt) {
			latest = &selfie
		}
	}
	return latest, nil
}

func selfiesRouter(store *selfieStore, storage *fakeStorage, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := handlers.NewSelfiesHandler(store, storage, "selfies", zap.NewNop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
	})
	router.POST("/selfies/upload-url", handler.CreateUploadURL)
	router.POST("/selfies", handler.Create)
	router.GET("/selfies", handler.List)
	router.DELETE("/selfies/:id", handler.Delete)
	router.POST("/selfies/:id/default", handler.SetDefault)
	return router
}

func TestSelfiesCreate_PathOutsideNamespace(t *testing.T) {
	userID := uuid.New()
	router := selfiesRouter(newSelfieStore(), &fakeStorage{}, userID)

	body := `{"image_path":"` + uuid.New().String() + `/a.jpg"}`
	req, _ := http.NewRequest("POST", "/selfies", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelfiesUploadURL_UnsupportedContentType(t *testing.T) {
	router := selfiesRouter(newSelfieStore(), &fakeStorage{}, uuid.New())

	body := `{"filename":"a.pdf","content_type":"application/pdf"}`
	req, _ := http.NewRequest("POST", "/selfies/upload-url", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelfiesDelete_PromotesNewestRemainingDefault(t *testing.T) {
	store := newSelfieStore()
	userID := uuid.New()
	storage := &fakeStorage{}
	router := selfiesRouter(store, storage, userID)

	now := time.Now().UTC()
	defaultSelfie := models.Selfie{
		ID: uuid.New(), UserID: userID,
		ImagePath: userID.String() + "/old.jpg",
		IsDefault: true, CreatedAt: now.Add(-2 * time.Hour),
	}
	newest := models.Selfie{
		ID: uuid.New(), UserID: userID,
		ImagePath: userID.String() + "/new.jpg",
		CreatedAt: now.Add(-time.Hour),
	}
	store.selfies[defaultSelfie.ID] = defaultSelfie
	store.selfies[newest.ID] = newest

	req, _ := http.NewRequest("DELETE", "/selfies/"+defaultSelfie.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, store.selfies, defaultSelfie.ID)
	assert.True(t, store.selfies[newest.ID].IsDefault)
	assert.Contains(t, storage.removed, defaultSelfie.ImagePath)
}

func TestSelfiesDelete_NonDefaultLeavesDefaultAlone(t *testing.T) {
	store := newSelfieStore()
	userID := uuid.New()
	router := selfiesRouter(store, &fakeStorage{}, userID)

	now := time.Now().UTC()
	defaultSelfie := models.Selfie{
		ID: uuid.New(), UserID: userID,
		ImagePath: userID.String() + "/keep.jpg",
		IsDefault: true, CreatedAt: now.Add(-2 * time.Hour),
	}
	other := models.Selfie{
		ID: uuid.New(), UserID: userID,
		ImagePath: userID.String() + "/drop.jpg",
		CreatedAt: now.Add(-time.Hour),
	}
	store.selfies[defaultSelfie.ID] = defaultSelfie
	store.selfies[other.ID] = other

	req, _ := http.NewRequest("DELETE", "/selfies/"+other.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.selfies[defaultSelfie.ID].IsDefault)
}

func TestSelfiesCreateDefault_ClearsPreviousDefault(t *testing.T) {
	store := newSelfieStore()
	userID := uuid.New()
	router := selfiesRouter(store, &fakeStorage{}, userID)

	existing := models.Selfie{
		ID: uuid.New(), UserID: userID,
		ImagePath: userID.String() + "/old.jpg",
		IsDefault: true, CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	store.selfies[existing.ID] = existing

	body := `{"image_path":"` + userID.String() + `/new.jpg","is_default":true}`
	req, _ := http.NewRequest("POST", "/selfies", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var created models.IDResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.False(t, store.selfies[existing.ID].IsDefault)

	createdID, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.True(t, store.selfies[createdID].IsDefault)
}
