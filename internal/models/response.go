package models

import "time"

// ErrorResponse is the single failure body every handler returns.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

type ProfileResponse struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url,omitempty"`
	City      string `json:"city,omitempty"`
}

type UploadURLResponse struct {
	UploadURL    string `json:"upload_url"`
	ImagePath    string `json:"image_path"`
	ImageURL     string `json:"image_url,omitempty"`
	ManualUpload bool   `json:"manual_upload,omitempty"`
}

type SelfieResponse struct {
	ID        string    `json:"id"`
	ImagePath string    `json:"image_path"`
	ImageURL  string    `json:"image_url"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

type SelfieListResponse struct {
	List []SelfieResponse `json:"list"`
}

type WardrobeItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	ImagePath string    `json:"image_path"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type WardrobeListResponse struct {
	List []WardrobeItemResponse `json:"list"`
}

type AITaskResponse struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status"`
	// ResultURL is present once the task has finished.
	ResultURL string `json:"result_url,omitempty"`
}

type SavedLookSummary struct {
	ID                string    `json:"id"`
	CoverImageURL     string    `json:"cover_image_url"`
	CreatedAt         time.Time `json:"created_at"`
	ClothingImageURLs []string  `json:"clothing_image_urls"`
}

type SavedLookListResponse struct {
	List     []SavedLookSummary `json:"list"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Total    int64              `json:"total"`
}

type PublishResponse struct {
	PostID string `json:"post_id"`
}

type PostSummary struct {
	ID            string    `json:"id"`
	CoverImageURL string    `json:"cover_image_url"`
	Username      string    `json:"username"`
	Avatar        string    `json:"avatar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type PostListResponse struct {
	List     []PostSummary `json:"list"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Total    int64         `json:"total"`
}

type PostImageResponse struct {
	ImageURL  string `json:"image_url"`
	SortOrder int    `json:"sort_order"`
}

type PostDetailResponse struct {
	ID          string              `json:"id"`
	Images      []PostImageResponse `json:"images"`
	Username    string              `json:"username"`
	Avatar      string              `json:"avatar,omitempty"`
	Description string              `json:"description,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

type LikesResponse struct {
	Likes int64 `json:"likes"`
}

type CommentAuthor struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	User      CommentAuthor `json:"user"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}

type CommentListResponse struct {
	List     []CommentResponse `json:"list"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Total    int64             `json:"total"`
}

type WeatherCacheResponse struct {
	WeatherData map[string]interface{} `json:"weatherData"`
	UpdatedAt   *time.Time             `json:"updatedAt,omitempty"`
}
