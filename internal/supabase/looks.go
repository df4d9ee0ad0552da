package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"wardrobe-backend/internal/models"
)

func (d *DatabaseClient) InsertSavedLook(look models.SavedLook) error {
	_, _, err := d.c.Supabase.From("saved_looks").
		Insert(look, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert saved look: %w", err)
	}
	return nil
}

// SavedLooksPage returns one page of the caller's looks newest-first
// plus the exact total.
func (d *DatabaseClient) SavedLooksPage(userID uuid.UUID, limit, offset int) ([]models.SavedLook, int64, error) {
	var looks []models.SavedLook
	count, err := d.c.Supabase.From("saved_looks").
		Select("id,cover_image_url,created_at", "exact", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		ExecuteTo(&looks)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list saved looks: %w", err)
	}
	return looks, count, nil
}

func (d *DatabaseClient) GetSavedLook(id, userID uuid.UUID) (*models.SavedLook, error) {
	var look models.SavedLook
	_, err := d.c.Supabase.From("saved_looks").
		Select("id,user_id,cover_image_url,created_at", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Single().
		ExecuteTo(&look)
	if err != nil {
		return nil, fmt.Errorf("failed to get saved look: %w", err)
	}
	return &look, nil
}

func (d *DatabaseClient) DeleteSavedLook(id, userID uuid.UUID) error {
	_, _, err := d.c.Supabase.From("saved_looks").
		Delete("minimal", "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete saved look: %w", err)
	}
	return nil
}

// InsertLookItems writes all association rows in one batched call.
func (d *DatabaseClient) InsertLookItems(items []models.SavedLookItem) error {
	if len(items) == 0 {
		return nil
	}
	_, _, err := d.c.Supabase.From("saved_look_items").
		Insert(items, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert look items: %w", err)
	}
	return nil
}

// LookItems returns a look's association rows in slot-label order.
func (d *DatabaseClient) LookItems(lookID uuid.UUID) ([]models.SavedLookItem, error) {
	var items []models.SavedLookItem
	_, err := d.c.Supabase.From("saved_look_items").
		Select("saved_look_id,wardrobe_item_id,slot", "", false).
		Eq("saved_look_id", lookID.String()).
		Order("slot", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&items)
	if err != nil {
		return nil, fmt.Errorf("failed to list look items: %w", err)
	}
	return items, nil
}

func (d *DatabaseClient) DeleteLookItems(lookID uuid.UUID) error {
	_, _, err := d.c.Supabase.From("saved_look_items").
		Delete("minimal", "").
		Eq("saved_look_id", lookID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete look items: %w", err)
	}
	return nil
}
