package supabase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"wardrobe-backend/internal/models"
)

// DatabaseClient issues row-level queries against the Supabase tables
// through PostgREST. Every method is one network call; multi-entity
// reads are assembled by the callers from batched lookups.
type DatabaseClient struct {
	c *Client
}

func NewDatabaseClient(client *Client) *DatabaseClient {
	return &DatabaseClient{c: client}
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

const profileColumns = "id,nickname,avatar_url,city,cached_weather,weather_updated_at"

func (d *DatabaseClient) CreateProfile(profile models.Profile) error {
	_, _, err := d.c.Supabase.From("profiles").
		Insert(profile, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetProfile(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	_, err := d.c.Supabase.From("profiles").
		Select(profileColumns, "", false).
		Eq("id", id.String()).
		Single().
		ExecuteTo(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (d *DatabaseClient) ProfilesByIDs(ids []uuid.UUID) ([]models.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []models.Profile
	_, err := d.c.Supabase.From("profiles").
		Select("id,nickname,avatar_url", "", false).
		In("id", uuidStrings(ids)).
		ExecuteTo(&profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	return profiles, nil
}

func (d *DatabaseClient) UpdateProfile(id uuid.UUID, updates map[string]interface{}) (*models.Profile, error) {
	var profiles []models.Profile
	_, err := d.c.Supabase.From("profiles").
		Update(updates, "representation", "").
		Eq("id", id.String()).
		ExecuteTo(&profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile %s not found", id)
	}
	return &profiles[0], nil
}

func (d *DatabaseClient) TouchLastLogin(id uuid.UUID) error {
	_, _, err := d.c.Supabase.From("profiles").
		Update(map[string]interface{}{
			"last_login_at": time.Now().UTC(),
		}, "minimal", "").
		Eq("id", id.String()).
		Execute()
	return err
}

func (d *DatabaseClient) UpdateWeatherCache(id uuid.UUID, weather map[string]interface{}) error {
	_, _, err := d.c.Supabase.From("profiles").
		Update(map[string]interface{}{
			"cached_weather":     weather,
			"weather_updated_at": time.Now().UTC(),
		}, "minimal", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update weather cache: %w", err)
	}
	return nil
}
