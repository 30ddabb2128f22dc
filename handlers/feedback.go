package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ajmal7799/FitStack-sub001/models"
	"github.com/ajmal7799/FitStack-sub001/services/feedback"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// FeedbackHandler exposes feedback submission and trainer feedback listing.
type FeedbackHandler struct {
	Feedback feedback.FeedbackService
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(svc feedback.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Feedback: svc}
}

// SubmitFeedbackHandler handles POST /api/feedback.
func (h *FeedbackHandler) SubmitFeedbackHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GetLogger().Warn("Invalid feedback request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	fb, err := h.Feedback.Submit(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": fb})
}

// GetTrainerFeedbackHandler handles GET /api/trainers/:id/feedback.
func (h *FeedbackHandler) GetTrainerFeedbackHandler(c *gin.Context) {
	trainerID := c.Param("id")
	if trainerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing trainer ID in path"})
		return
	}

	feedbacks, err := h.Feedback.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedbacks})
}
