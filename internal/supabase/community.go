package supabase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"wardrobe-backend/internal/models"
)

const postColumns = "id,user_id,cover_image_url,description,visibility,created_at,updated_at"

func (d *DatabaseClient) InsertPost(post models.CommunityPost) error {
	_, _, err := d.c.Supabase.From("community_posts").
		Insert(post, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// HardDeletePost removes the row outright. Only used to roll back a
// post whose image rows could not be written.
func (d *DatabaseClient) HardDeletePost(id uuid.UUID) error {
	_, _, err := d.c.Supabase.From("community_posts").
		Delete("minimal", "").
		Eq("id", id.String()).
		Execute()
	return err
}

// SoftDeletePost stamps deleted_at on an owned, not-yet-deleted post.
// Returns false when no row matched.
func (d *DatabaseClient) SoftDeletePost(id, userID uuid.UUID) (bool, error) {
	var posts []models.CommunityPost
	_, err := d.c.Supabase.From("community_posts").
		Update(map[string]interface{}{
			"deleted_at": time.Now().UTC(),
			"updated_at": time.Now().UTC(),
		}, "representation", "").
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Is("deleted_at", "null").
		ExecuteTo(&posts)
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}
	return len(posts) > 0, nil
}

func (d *DatabaseClient) PublicPostsPage(limit, offset int) ([]models.CommunityPost, int64, error) {
	var posts []models.CommunityPost
	count, err := d.c.Supabase.From("community_posts").
		Select(postColumns, "exact", false).
		Eq("visibility", "public").
		Is("deleted_at", "null").
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		ExecuteTo(&posts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, count, nil
}

// GetVisiblePost fetches a post the viewer may see: public, or their
// own. Soft-deleted posts are never returned.
func (d *DatabaseClient) GetVisiblePost(id, viewerID uuid.UUID) (*models.CommunityPost, error) {
	var post models.CommunityPost
	_, err := d.c.Supabase.From("community_posts").
		Select(postColumns, "", false).
		Eq("id", id.String()).
		Or(fmt.Sprintf("visibility.eq.public,user_id.eq.%s", viewerID.String()), "").
		Is("deleted_at", "null").
		Single().
		ExecuteTo(&post)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// GetPost returns any non-deleted post regardless of visibility.
func (d *DatabaseClient) GetPost(id uuid.UUID) (*models.CommunityPost, error) {
	var post models.CommunityPost
	_, err := d.c.Supabase.From("community_posts").
		Select("id,visibility", "", false).
		Eq("id", id.String()).
		Is("deleted_at", "null").
		Single().
		ExecuteTo(&post)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// InsertPostImages writes all image rows in one batched call.
func (d *DatabaseClient) InsertPostImages(images []models.CommunityPostImage) error {
	if len(images) == 0 {
		return nil
	}
	_, _, err := d.c.Supabase.From("community_post_images").
		Insert(images, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert post images: %w", err)
	}
	return nil
}

func (d *DatabaseClient) PostImages(postID uuid.UUID) ([]models.CommunityPostImage, error) {
	var images []models.CommunityPostImage
	_, err := d.c.Supabase.From("community_post_images").
		Select("image_url,sort_order", "", false).
		Eq("post_id", postID.String()).
		Order("sort_order", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&images)
	if err != nil {
		return nil, fmt.Errorf("failed to list post images: %w", err)
	}
	return images, nil
}

func (d *DatabaseClient) HasLike(postID, userID uuid.UUID) (bool, error) {
	var likes []models.CommunityLike
	_, err := d.c.Supabase.From("community_likes").
		Select("post_id,user_id", "", false).
		Eq("post_id", postID.String()).
		Eq("user_id", userID.String()).
		Limit(1, "").
		ExecuteTo(&likes)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return len(likes) > 0, nil
}

func (d *DatabaseClient) InsertLike(like models.CommunityLike) error {
	_, _, err := d.c.Supabase.From("community_likes").
		Insert(like, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

func (d *DatabaseClient) DeleteLike(postID, userID uuid.UUID) error {
	_, _, err := d.c.Supabase.From("community_likes").
		Delete("minimal", "").
		Eq("post_id", postID.String()).
		Eq("user_id", userID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}

func (d *DatabaseClient) CountLikes(postID uuid.UUID) (int64, error) {
	_, count, err := d.c.Supabase.From("community_likes").
		Select("post_id", "exact", true).
		Eq("post_id", postID.String()).
		Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (d *DatabaseClient) CommentsPage(postID uuid.UUID, limit, offset int) ([]models.CommunityComment, int64, error) {
	var comments []models.CommunityComment
	count, err := d.c.Supabase.From("community_comments").
		Select("id,post_id,user_id,content,parent_id,created_at", "exact", false).
		Eq("post_id", postID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		ExecuteTo(&comments)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, count, nil
}

func (d *DatabaseClient) InsertComment(comment models.CommunityComment) error {
	_, _, err := d.c.Supabase.From("community_comments").
		Insert(comment, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}
