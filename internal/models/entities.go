package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Row types as stored in (and decoded from) the Supabase tables.
// JSON tags match the column names PostgREST returns.

type Profile struct {
	ID               uuid.UUID       `json:"id"`
	Nickname         string          `json:"nickname"`
	AvatarURL        string          `json:"avatar_url,omitempty"`
	City             string          `json:"city,omitempty"`
	CachedWeather    json.RawMessage `json:"cached_weather,omitempty"`
	WeatherUpdatedAt *time.Time      `json:"weather_updated_at,omitempty"`
	LastLoginAt      *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Selfie struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ImagePath string    `json:"image_path"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

type WardrobeCategory struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemMetadata is the free-form jsonb column on wardrobe_items. Only the
// display name is used today.
type ItemMetadata struct {
	Name string `json:"name,omitempty"`
}

type WardrobeItem struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	CategoryID *uuid.UUID   `json:"category_id,omitempty"`
	ImagePath  string       `json:"image_path"`
	Metadata   ItemMetadata `json:"metadata"`
	CreatedAt  time.Time    `json:"created_at"`
}

type AITask struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	TaskType     string          `json:"task_type"`
	Status       string          `json:"status"`
	InputPayload json.RawMessage `json:"input_payload,omitempty"`
	ResultURL    string          `json:"result_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type SavedLook struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	AITaskID         *string   `json:"ai_task_id,omitempty"`
	RecommendationID *string   `json:"recommendation_id,omitempty"`
	CoverImageURL    string    `json:"cover_image_url"`
	CreatedAt        time.Time `json:"created_at"`
}

// SavedLookItem joins a saved look to a wardrobe item. Slot labels are
// slot_1..slot_N; ordering is the label's lexical order, not insertion
// order.
type SavedLookItem struct {
	SavedLookID    uuid.UUID `json:"saved_look_id"`
	WardrobeItemID uuid.UUID `json:"wardrobe_item_id"`
	Slot           string    `json:"slot"`
}

type CommunityPost struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	CoverImageURL string     `json:"cover_image_url"`
	Description   string     `json:"description,omitempty"`
	Visibility    string     `json:"visibility"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

type CommunityPostImage struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	ImageURL  string    `json:"image_url"`
	SortOrder int       `json:"sort_order"`
}

type CommunityLike struct {
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommunityComment struct {
	ID        uuid.UUID  `json:"id"`
	PostID    uuid.UUID  `json:"post_id"`
	UserID    uuid.UUID  `json:"user_id"`
	Content   string     `json:"content"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
