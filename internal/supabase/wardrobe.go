package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"wardrobe-backend/internal/models"
)

const wardrobeColumns = "id,user_id,image_path,created_at,category_id,metadata"

// CategoryByName returns nil without error when no category matches.
func (d *DatabaseClient) CategoryByName(name string) (*models.WardrobeCategory, error) {
	var categories []models.WardrobeCategory
	_, err := d.c.Supabase.From("wardrobe_categories").
		Select("id,name", "", false).
		Eq("name", name).
		Limit(1, "").
		ExecuteTo(&categories)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if len(categories) == 0 {
		return nil, nil
	}
	return &categories[0], nil
}

func (d *DatabaseClient) CreateCategory(name string) (*models.WardrobeCategory, error) {
	var categories []models.WardrobeCategory
	_, err := d.c.Supabase.From("wardrobe_categories").
		Insert(map[string]interface{}{"name": name}, false, "", "representation", "").
		ExecuteTo(&categories)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("category insert returned no row")
	}
	return &categories[0], nil
}

func (d *DatabaseClient) ListCategories() ([]models.WardrobeCategory, error) {
	var categories []models.WardrobeCategory
	_, err := d.c.Supabase.From("wardrobe_categories").
		Select("id,name", "", false).
		ExecuteTo(&categories)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (d *DatabaseClient) InsertWardrobeItem(item models.WardrobeItem) (*models.WardrobeItem, error) {
	var items []models.WardrobeItem
	_, err := d.c.Supabase.From("wardrobe_items").
		Insert(item, false, "", "representation", "").
		ExecuteTo(&items)
	if err != nil {
		return nil, fmt.Errorf("failed to insert wardrobe item: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("wardrobe item insert returned no row")
	}
	return &items[0], nil
}

func (d *DatabaseClient) ListWardrobeItems(userID uuid.UUID, categoryID *uuid.UUID) ([]models.WardrobeItem, error) {
	query := d.c.Supabase.From("wardrobe_items").
		Select(wardrobeColumns, "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if categoryID != nil {
		query = query.Eq("category_id", categoryID.String())
	}

	var items []models.WardrobeItem
	if _, err := query.ExecuteTo(&items); err != nil {
		return nil, fmt.Errorf("failed to list wardrobe items: %w", err)
	}
	return items, nil
}

func (d *DatabaseClient) GetWardrobeItem(id, userID uuid.UUID) (*models.WardrobeItem, error) {
	var item models.WardrobeItem
	_, err := d.c.Supabase.From("wardrobe_items").
		Select(wardrobeColumns, "", false).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Single().
		ExecuteTo(&item)
	if err != nil {
		return nil, fmt.Errorf("failed to get wardrobe item: %w", err)
	}
	return &item, nil
}

func (d *DatabaseClient) UpdateWardrobeItem(id, userID uuid.UUID, updates map[string]interface{}) (*models.WardrobeItem, error) {
	var items []models.WardrobeItem
	_, err := d.c.Supabase.From("wardrobe_items").
		Update(updates, "representation", "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		ExecuteTo(&items)
	if err != nil {
		return nil, fmt.Errorf("failed to update wardrobe item: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("wardrobe item %s not found", id)
	}
	return &items[0], nil
}

func (d *DatabaseClient) DeleteWardrobeItem(id, userID uuid.UUID) error {
	_, _, err := d.c.Supabase.From("wardrobe_items").
		Delete("minimal", "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete wardrobe item: %w", err)
	}
	return nil
}

// WardrobeItemsByPaths is the batched lookup behind saved-look slot
// assignment. Filtering on user_id keeps another user's items from ever
// matching, even on identical image paths.
func (d *DatabaseClient) WardrobeItemsByPaths(userID uuid.UUID, paths []string) ([]models.WardrobeItem, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	var items []models.WardrobeItem
	_, err := d.c.Supabase.From("wardrobe_items").
		Select("id,image_path", "", false).
		Eq("user_id", userID.String()).
		In("image_path", paths).
		ExecuteTo(&items)
	if err != nil {
		return nil, fmt.Errorf("failed to match wardrobe items: %w", err)
	}
	return items, nil
}

func (d *DatabaseClient) WardrobeItemsByIDs(ids []uuid.UUID) ([]models.WardrobeItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.WardrobeItem
	_, err := d.c.Supabase.From("wardrobe_items").
		Select("id,image_path", "", false).
		In("id", uuidStrings(ids)).
		ExecuteTo(&items)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wardrobe items: %w", err)
	}
	return items, nil
}
