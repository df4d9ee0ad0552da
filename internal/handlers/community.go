package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe-backend/internal/models"
)

// CommunityStore is the slice of the data service the community feed
// needs. The production implementation is the Supabase PostgREST
// client; tests substitute an in-memory fake.
type CommunityStore interface {
	InsertPost(post models.CommunityPost) error
	HardDeletePost(id uuid.UUID) error
	SoftDeletePost(id, userID uuid.UUID) (bool, error)
	PublicPostsPage(limit, offset int) ([]models.CommunityPost, int64, error)
	GetVisiblePost(id, viewerID uuid.UUID) (*models.CommunityPost, error)
	GetPost(id uuid.UUID) (*models.CommunityPost, error)
	InsertPostImages(images []models.CommunityPostImage) error
	PostImages(postID uuid.UUID) ([]models.CommunityPostImage, error)
	HasLike(postID, userID uuid.UUID) (bool, error)
	InsertLike(like models.CommunityLike) error
	DeleteLike(postID, userID uuid.UUID) error
	CountLikes(postID uuid.UUID) (int64, error)
	CommentsPage(postID uuid.UUID, limit, offset int) ([]models.CommunityComment, int64, error)
	InsertComment(comment models.CommunityComment) error
	ProfilesByIDs(ids []uuid.UUID) ([]models.Profile, error)
}

type CommunityHandler struct {
	store CommunityStore
	log   *zap.Logger
}

func NewCommunityHandler(store CommunityStore, log *zap.Logger) *CommunityHandler {
	return &CommunityHandler{store: store, log: log}
}

// profilesFor batch-loads author profiles for a set of posts or
// comments. A failed lookup degrades to an empty map so feeds still
// render without author names.
func (h *CommunityHandler) profilesFor(ids []uuid.UUID) map[uuid.UUID]models.Profile {
	byID := map[uuid.UUID]models.Profile{}
	seen := map[uuid.UUID]bool{}
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	profiles, err := h.store.ProfilesByIDs(unique)
	if err != nil {
		h.log.Warn("failed to load author profiles", zap.Error(err))
		return byID
	}
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return byID
}

func (h *CommunityHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Images) == 0 {
		fail(c, http.StatusBadRequest, "at least one image is required")
		return
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = "public"
	}
	if visibility != "public" && visibility != "private" {
		fail(c, http.StatusBadRequest, "visibility must be public or private")
		return
	}

	now := time.Now().UTC()
	post := models.CommunityPost{
		ID:            uuid.New(),
		UserID:        userID,
		CoverImageURL: req.Images[0],
		Description:   req.Description,
		Visibility:    visibility,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.store.InsertPost(post); err != nil {
		fail(c, http.StatusInternalServerError, "failed to create post")
		return
	}

	images := make([]models.CommunityPostImage, len(req.Images))
	for i, url := range req.Images {
		images[i] = models.CommunityPostImage{
			ID:        uuid.New(),
			PostID:    post.ID,
			ImageURL:  url,
			SortOrder: i,
		}
	}
	// A direct post without its images is worthless, so unlike the
	// publish flow the post row is rolled back here.
	if err := h.store.InsertPostImages(images); err != nil {
		h.log.Error("post image insert failed, rolling back post",
			zap.String("post_id", post.ID.String()), zap.Error(err))
		if rbErr := h.store.HardDeletePost(post.ID); rbErr != nil {
			h.log.Error("post rollback failed", zap.String("post_id", post.ID.String()), zap.Error(rbErr))
		}
		fail(c, http.StatusInternalServerError, "failed to create post")
		return
	}

	c.JSON(http.StatusOK, models.IDResponse{ID: post.ID.String()})
}

func (h *CommunityHandler) ListPosts(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	page, pageSize := pagination(c, 6)

	posts, total, err := h.store.PublicPostsPage(pageSize, (page-1)*pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	authorIDs := make([]uuid.UUID, len(posts))
	for i, post := range posts {
		authorIDs[i] = post.UserID
	}
	profiles := h.profilesFor(authorIDs)

	list := make([]models.PostSummary, len(posts))
	for i, post := range posts {
		author := profiles[post.UserID]
		list[i] = models.PostSummary{
			ID:            post.ID.String(),
			CoverImageURL: post.CoverImageURL,
			Username:      author.Nickname,
			Avatar:        author.AvatarURL,
			CreatedAt:     post.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.PostListResponse{
		List:     list,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

func (h *CommunityHandler) GetPost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.store.GetVisiblePost(id, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "post not found")
		return
	}

	imageRows, err := h.store.PostImages(post.ID)
	if err != nil {
		h.log.Warn("failed to load post images", zap.String("post_id", post.ID.String()), zap.Error(err))
	}
	images := make([]models.PostImageResponse, len(imageRows))
	for i, img := range imageRows {
		images[i] = models.PostImageResponse{ImageURL: img.ImageURL, SortOrder: img.SortOrder}
	}

	author := h.profilesFor([]uuid.UUID{post.UserID})[post.UserID]

	c.JSON(http.StatusOK, models.PostDetailResponse{
		ID:          post.ID.String(),
		Images:      images,
		Username:    author.Nickname,
		Avatar:      author.AvatarURL,
		Description: post.Description,
		CreatedAt:   post.CreatedAt,
	})
}

func (h *CommunityHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.store.SoftDeletePost(id, userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to delete post")
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "post not found")
		return
	}

	c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// ToggleLike flips the caller's like on a post and returns the new
// count.
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := h.store.GetPost(id); err != nil {
		fail(c, http.StatusNotFound, "post not found")
		return
	}

	liked, err := h.store.HasLike(id, userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to toggle like")
		return
	}
	if liked {
		err = h.store.DeleteLike(id, userID)
	} else {
		err = h.store.InsertLike(models.CommunityLike{
			PostID:    id,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		})
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to toggle like")
		return
	}

	count, err := h.store.CountLikes(id)
	if err != nil {
		// The toggle itself succeeded, but an unknown count is worse
		// than an error: zero would read as "all likes gone".
		h.log.Error("failed to count likes", zap.String("post_id", id.String()), zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to count likes")
		return
	}

	c.JSON(http.StatusOK, models.LikesResponse{Likes: count})
}

func (h *CommunityHandler) ListComments(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize := pagination(c, 20)

	if _, err := h.store.GetPost(id); err != nil {
		fail(c, http.StatusNotFound, "post not found")
		return
	}

	comments, total, err := h.store.CommentsPage(id, pageSize, (page-1)*pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to list comments")
		return
	}

	authorIDs := make([]uuid.UUID, len(comments))
	for i, comment := range comments {
		authorIDs[i] = comment.UserID
	}
	profiles := h.profilesFor(authorIDs)

	list := make([]models.CommentResponse, len(comments))
	for i, comment := range comments {
		author := profiles[comment.UserID]
		list[i] = models.CommentResponse{
			ID: comment.ID.String(),
			User: models.CommentAuthor{
				ID:        comment.UserID.String(),
				Nickname:  author.Nickname,
				AvatarURL: author.AvatarURL,
			},
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, models.CommentListResponse{
		List:     list,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	})
}

func (h *CommunityHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		fail(c, http.StatusBadRequest, "comment content is required")
		return
	}

	if _, err := h.store.GetPost(id); err != nil {
		fail(c, http.StatusNotFound, "post not found")
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid parent comment id")
			return
		}
		parentID = &parsed
	}

	comment := models.CommunityComment{
		ID:        uuid.New(),
		PostID:    id,
		UserID:    userID,
		Content:   content,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.InsertComment(comment); err != nil {
		fail(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	c.JSON(http.StatusOK, models.IDResponse{ID: comment.ID.String()})
}
