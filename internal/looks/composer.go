// Package looks implements the saved-look composer: assembling a look
// from a cover image plus slot-ordered wardrobe item references, and
// republishing that composition into the community feed.
package looks

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe-backend/internal/models"
)

// ErrNotFound is returned when a look does not exist or is not owned by
// the caller. Handlers map it to 404.
var ErrNotFound = errors.New("saved look not found")

// Store is the slice of the data service the composer needs. The
// production implementation is the Supabase PostgREST client; tests
// substitute an in-memory fake.
type Store interface {
	InsertSavedLook(look models.SavedLook) error
	SavedLooksPage(userID uuid.UUID, limit, offset int) ([]models.SavedLook, int64, error)
	GetSavedLook(id, userID uuid.UUID) (*models.SavedLook, error)
	DeleteSavedLook(id, userID uuid.UUID) error
	InsertLookItems(items []models.SavedLookItem) error
	LookItems(lookID uuid.UUID) ([]models.SavedLookItem, error)
	DeleteLookItems(lookID uuid.UUID) error
	WardrobeItemsByPaths(userID uuid.UUID, paths []string) ([]models.WardrobeItem, error)
	WardrobeItemsByIDs(ids []uuid.UUID) ([]models.WardrobeItem, error)
	GetProfile(id uuid.UUID) (*models.Profile, error)
	InsertPost(post models.CommunityPost) error
	InsertPostImages(images []models.CommunityPostImage) error
}

type Composer struct {
	store Store
	log   *zap.Logger
}

func NewComposer(store Store, log *zap.Logger) *Composer {
	return &Composer{store: store, log: log}
}

// CreateInput is the validated creation request.
type CreateInput struct {
	CoverImageURL     string
	ClothingImageURLs []string
	AITaskID          *string
	RecommendationID  *string
}

// CreateResult reports the primary outcome plus the best-effort
// association write. ItemsErr being non-nil means the look exists but
// its wardrobe associations were not stored.
type CreateResult struct {
	LookID      uuid.UUID
	ItemsLinked int
	ItemsErr    error
}

// PublishResult mirrors CreateResult for the community-feed copy: the
// post row exists once PostID is set, ImagesErr records a failed image
// batch.
type PublishResult struct {
	PostID    uuid.UUID
	ImagesErr error
}

// AssignSlots maps client-supplied image URLs to owned wardrobe items
// by exact path equality. Slot labels are slot_k with k the 1-based
// position in the original list; positions with no matching item are
// skipped without renumbering, so slot_2 may be followed by slot_4.
func AssignSlots(lookID uuid.UUID, urls []string, items []models.WardrobeItem) []models.SavedLookItem {
	byPath := make(map[string]uuid.UUID, len(items))
	for _, item := range items {
		byPath[item.ImagePath] = item.ID
	}

	var refs []models.SavedLookItem
	for i, url := range urls {
		itemID, ok := byPath[url]
		if !ok {
			continue
		}
		refs = append(refs, models.SavedLookItem{
			SavedLookID:    lookID,
			WardrobeItemID: itemID,
			Slot:           fmt.Sprintf("slot_%d", i+1),
		})
	}
	return refs
}

// ResolveImagePaths maps slot-ordered association rows back to image
// paths. Associations whose wardrobe item no longer exists are dropped;
// a dangling reference is tolerated, not an error.
func ResolveImagePaths(refs []models.SavedLookItem, items []models.WardrobeItem) []string {
	byID := make(map[uuid.UUID]string, len(items))
	for _, item := range items {
		byID[item.ID] = item.ImagePath
	}

	paths := make([]string, 0, len(refs))
	for _, ref := range refs {
		if path, ok := byID[ref.WardrobeItemID]; ok && path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// PostImages builds the image rows for a published look: the cover at
// sort order 0, then the clothing images in slot order. The cover keeps
// position 0 even when it duplicates the first clothing image.
func PostImages(postID uuid.UUID, coverImageURL string, clothingImageURLs []string) []models.CommunityPostImage {
	images := make([]models.CommunityPostImage, 0, len(clothingImageURLs)+1)
	images = append(images, models.CommunityPostImage{
		ID:        uuid.New(),
		PostID:    postID,
		ImageURL:  coverImageURL,
		SortOrder: 0,
	})
	for i, url := range clothingImageURLs {
		images = append(images, models.CommunityPostImage{
			ID:        uuid.New(),
			PostID:    postID,
			ImageURL:  url,
			SortOrder: i + 1,
		})
	}
	return images
}

// Create stores the look row first, then best-effort links the supplied
// clothing images to the caller's wardrobe items. Association failures
// never fail the creation.
func (c *Composer) Create(userID uuid.UUID, input CreateInput) (CreateResult, error) {
	look := models.SavedLook{
		ID:               uuid.New(),
		UserID:           userID,
		AITaskID:         input.AITaskID,
		RecommendationID: input.RecommendationID,
		CoverImageURL:    input.CoverImageURL,
		CreatedAt:        time.Now().UTC(),
	}
	if err := c.store.InsertSavedLook(look); err != nil {
		return CreateResult{}, err
	}

	result := CreateResult{LookID: look.ID}
	if len(input.ClothingImageURLs) == 0 {
		return result, nil
	}

	items, err := c.store.WardrobeItemsByPaths(userID, input.ClothingImageURLs)
	if err != nil {
		result.ItemsErr = err
		c.log.Warn("wardrobe item lookup failed, look saved without associations",
			zap.String("look_id", look.ID.String()), zap.Error(err))
		return result, nil
	}

	refs := AssignSlots(look.ID, input.ClothingImageURLs, items)
	if len(refs) == 0 {
		return result, nil
	}

	if err := c.store.InsertLookItems(refs); err != nil {
		result.ItemsErr = err
		c.log.Warn("look item insert failed, look saved without associations",
			zap.String("look_id", look.ID.String()), zap.Error(err))
		return result, nil
	}

	result.ItemsLinked = len(refs)
	return result, nil
}

// List returns one page of the caller's looks with each look's clothing
// image paths reassembled from its association rows. Wardrobe lookups
// are batched per look, not per slot.
func (c *Composer) List(userID uuid.UUID, page, pageSize int) ([]models.SavedLookSummary, int64, error) {
	offset := (page - 1) * pageSize
	lookRows, total, err := c.store.SavedLooksPage(userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]models.SavedLookSummary, 0, len(lookRows))
	for _, look := range lookRows {
		summaries = append(summaries, models.SavedLookSummary{
			ID:                look.ID.String(),
			CoverImageURL:     look.CoverImageURL,
			CreatedAt:         look.CreatedAt,
			ClothingImageURLs: c.clothingPaths(look.ID),
		})
	}
	return summaries, total, nil
}

// clothingPaths runs the two remaining round-trips for one look and the
// in-memory reassembly. Failures degrade to an empty list.
func (c *Composer) clothingPaths(lookID uuid.UUID) []string {
	refs, err := c.store.LookItems(lookID)
	if err != nil {
		c.log.Warn("failed to load look items", zap.String("look_id", lookID.String()), zap.Error(err))
		return []string{}
	}
	if len(refs) == 0 {
		return []string{}
	}

	ids := make([]uuid.UUID, len(refs))
	for i, ref := range refs {
		ids[i] = ref.WardrobeItemID
	}
	items, err := c.store.WardrobeItemsByIDs(ids)
	if err != nil {
		c.log.Warn("failed to load wardrobe items", zap.String("look_id", lookID.String()), zap.Error(err))
		return []string{}
	}

	return ResolveImagePaths(refs, items)
}

// Delete verifies ownership, clears the join rows, then deletes the
// look itself. Only the look-row delete is reported to the caller; a
// failed join-row delete is logged and both deletes are still
// attempted.
func (c *Composer) Delete(id, userID uuid.UUID) error {
	if _, err := c.store.GetSavedLook(id, userID); err != nil {
		return ErrNotFound
	}

	if err := c.store.DeleteLookItems(id); err != nil {
		c.log.Warn("failed to delete look items", zap.String("look_id", id.String()), zap.Error(err))
	}

	return c.store.DeleteSavedLook(id, userID)
}

// Publish copies a look into the community feed: a public post whose
// image list is the cover at sort order 0 followed by the resolved
// clothing images in slot order. The copy never mutates the look. A
// failed image batch leaves the post standing; a missing display name
// is fatal because a post without attributable authorship is
// disallowed.
func (c *Composer) Publish(id, userID uuid.UUID) (PublishResult, error) {
	look, err := c.store.GetSavedLook(id, userID)
	if err != nil {
		return PublishResult{}, ErrNotFound
	}

	clothing := c.clothingPaths(look.ID)

	profile, err := c.store.GetProfile(userID)
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to load author profile: %w", err)
	}

	now := time.Now().UTC()
	post := models.CommunityPost{
		ID:            uuid.New(),
		UserID:        userID,
		CoverImageURL: look.CoverImageURL,
		Description:   fmt.Sprintf("%s shared an outfit", profile.Nickname),
		Visibility:    "public",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := c.store.InsertPost(post); err != nil {
		return PublishResult{}, err
	}

	result := PublishResult{PostID: post.ID}
	if err := c.store.InsertPostImages(PostImages(post.ID, look.CoverImageURL, clothing)); err != nil {
		result.ImagesErr = err
		c.log.Warn("post image insert failed, post published without images",
			zap.String("post_id", post.ID.String()), zap.Error(err))
	}
	return result, nil
}
