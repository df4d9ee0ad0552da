package looks_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"wardrobe-backend/internal/looks"
	"wardrobe-backend/internal/models"
)

// fakeStore is an in-memory Store for composer tests.
type fakeStore struct {
	looks    map[uuid.UUID]models.SavedLook
	items    []models.SavedLookItem
	wardrobe []models.WardrobeItem
	profiles map[uuid.UUID]models.Profile
	posts    []models.CommunityPost
	images   []models.CommunityPostImage

	insertItemsErr  error
	insertImagesErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		looks:    map[uuid.UUID]models.SavedLook{},
		profiles: map[uuid.UUID]models.Profile{},
	}
}

func (f *fakeStore) InsertSavedLook(look models.SavedLook) error {
	f.looks[look.ID] = look
	return nil
}

func (f *fakeStore) SavedLooksPage(userID uuid.UUID, limit, offset int) ([]models.SavedLook, int64, error) {
	var mine []models.SavedLook
	for _, look := range f.looks {
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

func (f *fakeStore) GetSavedLook(id, userID uuid.UUID) (*models.SavedLook, error) {
	look, ok := f.looks[id]
	if !ok || look.UserID != userID {
		return nil, fmt.Errorf("no rows")
	}
	return &look, nil
}

func (f *fakeStore) DeleteSavedLook(id, userID uuid.UUID) error {
	delete(f.looks, id)
	return nil
}

func (f *fakeStore) InsertLookItems(items []models.SavedLookItem) error {
	if f.insertItemsErr != nil {
		return f.insertItemsErr
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeStore) LookItems(lookID uuid.UUID) ([]models.SavedLookItem, error) {
	var out []models.SavedLookItem
	for _, item := range f.items {
		if item.SavedLookID == lookID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteLookItems(lookID uuid.UUID) error {
	var kept []models.SavedLookItem
	for _, item := range f.items {
		if item.SavedLookID != lookID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeStore) WardrobeItemsByPaths(userID uuid.UUID, paths []string) ([]models.WardrobeItem, error) {
	wanted := map[string]bool{}
	for _, p := range paths {
		wanted[p] = true
	}
	var out []models.WardrobeItem
	for _, item := range f.wardrobe {
		if item.UserID == userID && wanted[item.ImagePath] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) WardrobeItemsByIDs(ids []uuid.UUID) ([]models.WardrobeItem, error) {
	wanted := map[uuid.UUID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []models.WardrobeItem
	for _, item := range f.wardrobe {
		if wanted[item.ID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) GetProfile(id uuid.UUID) (*models.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return &profile, nil
}

func (f *fakeStore) InsertPost(post models.CommunityPost) error {
	f.posts = append(f.posts, post)
	return nil
}

func (f *fakeStore) InsertPostImages(images []models.CommunityPostImage) error {
	if f.insertImagesErr != nil {
		return f.insertImagesErr
	}
	f.images = append(f.images, images...)
	return nil
}

func (f *fakeStore) addWardrobeItem(userID uuid.UUID, path string) models.WardrobeItem {
	item := models.WardrobeItem{ID: uuid.New(), UserID: userID, ImagePath: path}
	f.wardrobe = append(f.wardrobe, item)
	return item
}

func newComposer(store *fakeStore) *looks.Composer {
	return looks.NewComposer(store, zap.NewNop())
}

func TestAssignSlots_LabelsByOriginalPosition(t *testing.T) {
	lookID := uuid.New()
	itemA := models.WardrobeItem{ID: uuid.New(), ImagePath: "u/a.jpg"}
	itemC := models.WardrobeItem{ID: uuid.New(), ImagePath: "u/c.jpg"}

	refs := looks.AssignSlots(lookID, []string{"u/a.jpg", "u/b.jpg", "u/c.jpg"}, []models.WardrobeItem{itemA, itemC})

	require.Len(t, refs, 2)
	assert.Equal(t, "slot_1", refs[0].Slot)
	assert.Equal(t, itemA.ID, refs[0].WardrobeItemID)
	// The unmatched middle URL is skipped without renumbering.
	assert.Equal(t, "slot_3", refs[1].Slot)
	assert.Equal(t, itemC.ID, refs[1].WardrobeItemID)
}

func TestAssignSlots_NoMatches(t *testing.T) {
	refs := looks.AssignSlots(uuid.New(), []string{"u/x.jpg"}, nil)
	assert.Empty(t, refs)
}

func TestResolveImagePaths_DropsDanglingRefs(t *testing.T) {
	itemID := uuid.New()
	refs := []models.SavedLookItem{
		{WardrobeItemID: itemID, Slot: "slot_1"},
		{WardrobeItemID: uuid.New(), Slot: "slot_2"},
	}
	items := []models.WardrobeItem{{ID: itemID, ImagePath: "u/a.jpg"}}

	paths := looks.ResolveImagePaths(refs, items)

	assert.Equal(t, []string{"u/a.jpg"}, paths)
}

func TestPostImages_CoverFirst(t *testing.T) {
	postID := uuid.New()
	images := looks.PostImages(postID, "cover.jpg", []string{"a.jpg", "b.jpg"})

	require.Len(t, images, 3)
	assert.Equal(t, "cover.jpg", images[0].ImageURL)
	assert.Equal(t, 0, images[0].SortOrder)
	assert.Equal(t, "a.jpg", images[1].ImageURL)
	assert.Equal(t, 1, images[1].SortOrder)
	assert.Equal(t, "b.jpg", images[2].ImageURL)
	assert.Equal(t, 2, images[2].SortOrder)
}

func TestComposerCreate_LinksMatchingItems(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.addWardrobeItem(userID, "u/a.jpg")

	result, err := newComposer(store).Create(userID, looks.CreateInput{
		CoverImageURL:     "u/cover.jpg",
		ClothingImageURLs: []string{"u/a.jpg", "u/b.jpg"},
	})

	require.NoError(t, err)
	assert.NoError(t, result.ItemsErr)
	assert.Equal(t, 1, result.ItemsLinked)
	require.Len(t, store.items, 1)
	assert.Equal(t, "slot_1", store.items[0].Slot)
	assert.Contains(t, store.looks, result.LookID)
}

func TestComposerCreate_ItemInsertFailureKeepsLook(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.addWardrobeItem(userID, "u/a.jpg")
	store.insertItemsErr = errors.New("insert failed")

	result, err := newComposer(store).Create(userID, looks.CreateInput{
		CoverImageURL:     "u/cover.jpg",
		ClothingImageURLs: []string{"u/a.jpg"},
	})

	require.NoError(t, err)
	assert.Error(t, result.ItemsErr)
	assert.Equal(t, 0, result.ItemsLinked)
	assert.Contains(t, store.looks, result.LookID)
}

func TestComposerCreate_OtherUsersItemsNeverMatch(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	store.addWardrobeItem(uuid.New(), "u/a.jpg")

	result, err := newComposer(store).Create(userID, looks.CreateInput{
		CoverImageURL:     "u/cover.jpg",
		ClothingImageURLs: []string{"u/a.jpg"},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.ItemsLinked)
	assert.Empty(t, store.items)
}

func TestComposerList_ReassemblesClothingPaths(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	composer := newComposer(store)

	store.addWardrobeItem(userID, "u/a.jpg")
	result, err := composer.Create(userID, looks.CreateInput{
		CoverImageURL:     "u/cover.jpg",
		ClothingImageURLs: []string{"u/a.jpg"},
	})
	require.NoError(t, err)

	summaries, total, err := composer.List(userID, 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, summaries, 1)
	assert.Equal(t, result.LookID.String(), summaries[0].ID)
	assert.Equal(t, []string{"u/a.jpg"}, summaries[0].ClothingImageURLs)
}

func TestComposerList_EmptyPage(t *testing.T) {
	store := newFakeStore()

	summaries, total, err := newComposer(store).List(uuid.New(), 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, summaries)
}

func TestComposerDelete_UnknownLook(t *testing.T) {
	store := newFakeStore()

	err := newComposer(store).Delete(uuid.New(), uuid.New())

	assert.ErrorIs(t, err, looks.ErrNotFound)
}

func TestComposerDelete_RemovesLookAndItems(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	composer := newComposer(store)
	store.addWardrobeItem(userID, "u/a.jpg")

	result, err := composer.Create(userID, looks.CreateInput{
		CoverImageURL:     "u/cover.jpg",
		ClothingImageURLs: []string{"u/a.jpg"},
	})
	require.NoError(t, err)

	require.NoError(t, composer.Delete(result.LookID, userID))
	assert.Empty(t, store.items)
	assert.NotContains(t, store.looks, result.LookID)

	assert.ErrorIs(t, composer.Delete(result.LookID, userID), looks.ErrNotFound)
}

func TestComposerPublish_CoverThenClothing(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	composer := newComposer(store)
	store.profiles[userID] = models.Profile{ID: userID, Nickname: "sam"}
	store.addWardrobeItem(userID, "u/a.jpg")
	store.addWardrobeItem(userID, "u/b.jpg")

	created, err := composer.Create(userID, looks.CreateInput{
		CoverImageURL:     "u/cover.jpg",
		ClothingImageURLs: []string{"u/a.jpg", "u/b.jpg"},
	})
	require.NoError(t, err)

	result, err := composer.Publish(created.LookID, userID)

	require.NoError(t, err)
	assert.NoError(t, result.ImagesErr)
	require.Len(t, store.posts, 1)
	assert.Equal(t, "public", store.posts[0].Visibility)
	assert.Equal(t, "sam shared an outfit", store.posts[0].Description)

	require.Len(t, store.images, 3)
	assert.Equal(t, "u/cover.jpg", store.images[0].ImageURL)
	assert.Equal(t, 0, store.images[0].SortOrder)
	assert.Equal(t, "u/a.jpg", store.images[1].ImageURL)
	assert.Equal(t, "u/b.jpg", store.images[2].ImageURL)
}

func TestComposerPublish_NoItemsStillPostsCover(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	composer := newComposer(store)
	store.profiles[userID] = models.Profile{ID: userID, Nickname: "sam"}

	created, err := composer.Create(userID, looks.CreateInput{CoverImageURL: "u/cover.jpg"})
	require.NoError(t, err)

	result, err := composer.Publish(created.LookID, userID)

	require.NoError(t, err)
	require.Len(t, store.images, 1)
	assert.Equal(t, "u/cover.jpg", store.images[0].ImageURL)
	assert.Equal(t, store.posts[0].ID, result.PostID)
}

func TestComposerPublish_MissingProfileIsFatal(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	composer := newComposer(store)

	created, err := composer.Create(userID, looks.CreateInput{CoverImageURL: "u/cover.jpg"})
	require.NoError(t, err)

	_, err = composer.Publish(created.LookID, userID)

	assert.Error(t, err)
	assert.Empty(t, store.posts)
}

func TestComposerPublish_ImageFailureKeepsPost(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	composer := newComposer(store)
	store.profiles[userID] = models.Profile{ID: userID, Nickname: "sam"}
	store.insertImagesErr = errors.New("insert failed")

	created, err := composer.Create(userID, looks.CreateInput{CoverImageURL: "u/cover.jpg"})
	require.NoError(t, err)

	result, err := composer.Publish(created.LookID, userID)

	require.NoError(t, err)
	assert.Error(t, result.ImagesErr)
	require.Len(t, store.posts, 1)
	assert.Empty(t, store.images)
}

func TestComposerPublish_UnknownLook(t *testing.T) {
	store := newFakeStore()

	_, err := newComposer(store).Publish(uuid.New(), uuid.New())

	assert.ErrorIs(t, err, looks.ErrNotFound)
}
