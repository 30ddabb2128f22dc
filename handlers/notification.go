package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	notificationRepo "github.com/ajmal7799/FitStack-sub001/database/repository/notification"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// NotificationHandler serves the caller's stored in-app notifications.
type NotificationHandler struct {
	Repo notificationRepo.NotificationRepository
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(repo notificationRepo.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{Repo: repo}
}

// ListNotificationsHandler handles GET /api/notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	notifications, err := h.Repo.ListByRecipient(c.Request.Context(), caller, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
