package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"wardrobe-backend/internal/models"
)

func (d *DatabaseClient) InsertAITask(task models.AITask) error {
	_, _, err := d.c.Supabase.From("ai_tasks").
		Insert(task, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert ai task: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetAITask(id, userID uuid.UUID) (*models.AITask, error) {
	var task models.AITask
	_, err := d.c.Supabase.From("ai_tasks").
		Select("id,status,result_url,input_payload,updated_at", "", false).
		Eq("id", id.String()).
		Eq("user_id", userID.String()).
		Single().
		ExecuteTo(&task)
	if err != nil {
		return nil, fmt.Errorf("failed to get ai task: %w", err)
	}
	return &task, nil
}

func (d *DatabaseClient) UpdateAITask(id uuid.UUID, updates map[string]interface{}) error {
	_, _, err := d.c.Supabase.From("ai_tasks").
		Update(updates, "minimal", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update ai task: %w", err)
	}
	return nil
}
