package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajmal7799/FitStack-sub001/services/videosession"
	"github.com/ajmal7799/FitStack-sub001/utils"
)

// SessionHandler exposes the video-session lifecycle over HTTP.
type SessionHandler struct {
	Sessions videosession.VideoSessionService
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(svc videosession.VideoSessionService) *SessionHandler {
	return &SessionHandler{Sessions: svc}
}

// JoinSessionHandler handles POST /api/sessions/:slotId/join.
func (h *SessionHandler) JoinSessionHandler(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotId")
	if slotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slot ID in path"})
		return
	}

	resp, err := h.Sessions.Join(c.Request.Context(), caller, slotID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EndSessionHandler handles POST /api/sessions/:slotId/end.
func (h *SessionHandler) EndSessionHandler(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotId")
	if slotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slot ID in path"})
		return
	}

	session, err := h.Sessions.End(c.Request.Context(), caller, slotID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session ended", "session": session})
}

// CancelSessionHandler handles POST /api/sessions/:slotId/cancel.
func (h *SessionHandler) CancelSessionHandler(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotId")
	if slotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slot ID in path"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	if err := h.Sessions.Cancel(c.Request.Context(), caller, slotID, body.Reason); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled"})
}

// GetSessionHandler handles GET /api/sessions/:slotId.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}
	slotID := c.Param("slotId")
	if slotID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing slot ID in path"})
		return
	}

	session, err := h.Sessions.Get(c.Request.Context(), caller, slotID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ListSessionsHandler handles GET /api/sessions.
func (h *SessionHandler) ListSessionsHandler(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	sessions, err := h.Sessions.ListByParticipant(c.Request.Context(), caller)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
