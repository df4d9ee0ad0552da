package models

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetRequest serves both reset flows: email alone sends a recovery
// mail, token plus new_password applies the change.
type ResetRequest struct {
	Email       string `json:"email,omitempty"`
	Token       string `json:"token,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}

type UpdateProfileRequest struct {
	Nickname  *string `json:"nickname,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	City      *string `json:"city,omitempty"`
}

type UploadURLRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type CreateSelfieRequest struct {
	ImagePath string `json:"image_path"`
	IsDefault bool   `json:"is_default"`
}

type CreateWardrobeItemRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImagePath string `json:"image_path"`
}

type UpdateWardrobeItemRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
}

type CreateAITaskRequest struct {
	TaskType          string   `json:"task_type"`
	SelfieURL         string   `json:"selfie_url"`
	ClothingImageURLs []string `json:"clothing_image_urls"`
}

type CreateSavedLookRequest struct {
	CoverImageURL     string   `json:"cover_image_url"`
	ClothingImageURLs []string `json:"clothing_image_urls"`
	AITaskID          *string  `json:"ai_task_id,omitempty"`
	RecommendationID  *string  `json:"recommendation_id,omitempty"`
}

type CreatePostRequest struct {
	Images      []string `json:"images"`
	Description string   `json:"description,omitempty"`
	Visibility  string   `json:"visibility,omitempty"`
}

type CreateCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id,omitempty"`
}

type WeatherCacheRequest struct {
	WeatherData map[string]interface{} `json:"weatherData"`
}
