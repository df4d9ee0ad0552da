package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"wardrobe-backend/internal/models"
)

func (d *DatabaseClient) InsertSelfie(selfie models.Selfie) error {
	_, _, err := d.c.Supabase.From("selfies").
		Insert(selfie, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert selfie: %w", err)
	}
	return nil
}

func (d *DatabaseClient) ListSelfies(userID uuid.UUID) ([]models.Selfie, error) {
	var selfies []models.Selfie
	_, err := d.c.Supabase.From("selfies").
		Select("id,image_path,is_default,created_at", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&selfies)
	if err != nil {
		return nil, fmt.Errorf("failed to list selfies: %w", err)
	}
	return selfies, nil
}

func (d *DatabaseClient) GetSelfie(id, userID uuid.UUID) (*models.Selfie, error) {
	var selfie models.Selfie
	_, err := d.c.Supabase.From("selfies").
		Select("id,image_path,is_default,created_at", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Single().
		ExecuteTo(&selfie)
	if err != nil {
		return nil, fmt.Errorf("failed to get selfie: %w", err)
	}
	return &selfie, nil
}

// ClearDefaultSelfie unsets is_default on every selfie the user owns.
func (d *DatabaseClient) ClearDefaultSelfie(userID uuid.UUID) error {
	_, _, err := d.c.Supabase.From("selfies").
		Update(map[string]interface{}{"is_default": false}, "minimal", "").
		Eq("user_id", userID.String()).
		Execute()
	return err
}

func (d *DatabaseClient) SetDefaultSelfie(id uuid.UUID) error {
	_, _, err := d.c.Supabase.From("selfies").
		Update(map[string]interface{}{"is_default": true}, "minimal", "").
		Eq("id", id.String()).
		Execute()
	return err
}

func (d *DatabaseClient) DeleteSelfie(id, userID uuid.UUID) error {
	_, _, err := d.c.Supabase.From("selfies").
		Delete("minimal", "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete selfie: %w", err)
	}
	return nil
}

// LatestSelfie returns the newest selfie the user owns, or nil when the
// user has none.
func (d *DatabaseClient) LatestSelfie(userID uuid.UUID) (*models.Selfie, error) {
	var selfies []models.Selfie
	_, err := d.c.Supabase.From("selfies").
		Select("id,image_path,is_default,created_at", "", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(1, "").
		ExecuteTo(&selfies)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest selfie: %w", err)
	}
	if len(selfies) == 0 {
		return nil, nil
	}
	return &selfies[0], nil
}
