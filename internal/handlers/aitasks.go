package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/supabase"
)

// simulatedProcessingDelay stands in for the real generation pipeline.
const simulatedProcessingDelay = 5 * time.Second

type AITasksHandler struct {
	db          *supabase.DatabaseClient
	supabaseURL string
	log         *zap.Logger
}

func NewAITasksHandler(db *supabase.DatabaseClient, supabaseURL string, log *zap.Logger) *AITasksHandler {
	return &AITasksHandler{
		db:          db,
		supabaseURL: supabaseURL,
		log:         log,
	}
}

func (h *AITasksHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.CreateAITaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TaskType != "image" && req.TaskType != "video" {
		fail(c, http.StatusBadRequest, "task_type must be image or video")
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"selfie_url":          req.SelfieURL,
		"clothing_image_urls": req.ClothingImageURLs,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to create task")
		return
	}

	task := models.AITask{
		ID:           uuid.New(),
		UserID:       userID,
		TaskType:     req.TaskType,
		Status:       "pending",
		InputPayload: payload,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := h.db.InsertAITask(task); err != nil {
		fail(c, http.StatusInternalServerError, "failed to create task")
		return
	}

	c.JSON(http.StatusOK, models.AITaskResponse{ID: task.ID.String(), Status: task.Status})
}

func (h *AITasksHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.db.GetAITask(id, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "task not found")
		return
	}

	c.JSON(http.StatusOK, models.AITaskResponse{
		ID:        id.String(),
		Status:    task.Status,
		ResultURL: task.ResultURL,
	})
}

// Process moves a pending task to processing and finishes it in the
// background after a fixed delay.
func (h *AITasksHandler) Process(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := h.db.GetAITask(id, userID)
	if err != nil {
		fail(c, http.StatusNotFound, "task not found")
		return
	}
	if task.Status != "pending" {
		fail(c, http.StatusBadRequest, fmt.Sprintf("task is %s, not pending", task.Status))
		return
	}

	if err := h.db.UpdateAITask(id, map[string]interface{}{
		"status":     "processing",
		"updated_at": time.Now().UTC(),
	}); err != nil {
		fail(c, http.StatusInternalServerError, "failed to start processing")
		return
	}

	go h.finishTask(id, userID)

	c.JSON(http.StatusOK, models.AITaskResponse{ID: id.String(), Status: "processing"})
}

func (h *AITasksHandler) finishTask(id, userID uuid.UUID) {
	time.Sleep(simulatedProcessingDelay)

	resultURL := fmt.Sprintf("%s/storage/v1/object/public/ai-results/%s/%s_result.jpg",
		h.supabaseURL, userID.String(), id.String())

	err := h.db.UpdateAITask(id, map[string]interface{}{
		"status":     "finished",
		"result_url": resultURL,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("task completion update failed", zap.String("task_id", id.String()), zap.Error(err))
		if err := h.db.UpdateAITask(id, map[string]interface{}{
			"status":     "failed",
			"updated_at": time.Now().UTC(),
		}); err != nil {
			h.log.Error("task failure update failed", zap.String("task_id", id.String()), zap.Error(err))
		}
	}
}
